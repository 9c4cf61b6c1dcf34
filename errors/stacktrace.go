package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// stackTracer is implemented by errors that carry a recorded call
// stack, as produced by github.com/pkg/errors.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace walks the cause chain and returns the first recorded
// stack trace, or nil if none of the wrapped errors carries one.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// Format implements fmt.Formatter so that %+v prints the deepest stack
// trace below this wrap, while %v shows a compressed one-line origin.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprint(s, e.Error())
			if st := stackTrace(e); st != nil {
				st.Format(s, verb)
			}
			return
		}
		fmt.Fprint(s, e.Error())
		if st := stackTrace(e); len(st) > 0 {
			// only the innermost frame, compressed
			fmt.Fprintf(s, " [%n:%d]", st[0], st[0])
		}
	case 's':
		fmt.Fprint(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	default:
		fmt.Fprint(s, e.Error())
	}
}
