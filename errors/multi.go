package errors

import "strings"

// Append clubs together all provided errors. Nil values are ignored.
//
// If given errors are implementing the multi error interface as
// defined in this package, their content is flattened into the result.
// The first non-nil error determines the code returned by the
// combined error, consistent with a fail-fast validation flow.
func Append(errs ...error) error {
	var res multiError
	for _, e := range errs {
		switch e := e.(type) {
		case nil:
			continue
		case multiError:
			res = append(res, e...)
		default:
			res = append(res, e)
		}
	}
	if len(res) == 0 {
		return nil
	}
	return res
}

type multiError []error

func (errs multiError) Error() string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return errs[0].Error()
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Cause returns the cause of the first error, so that the combined
// error can be tested with (*Error).Is against its leading failure.
func (errs multiError) Cause() error {
	if len(errs) == 0 {
		return nil
	}
	if c, ok := errs[0].(causer); ok {
		return c.Cause()
	}
	return errs[0]
}
