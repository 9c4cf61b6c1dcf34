/*
Package errors implements the error handling used across covenant.

The idea is to reuse as many root errors from this package as possible
and define package specific errors only when a caller must be able to
distinguish the failure programmatically. The wallet package is a good
example: it registers one root error per rejection reason so that
clients can react to each precondition failure separately.

To register a custom error use Register(code, description). For
reusing errors use ErrXyz.New and ErrXyz.Newf. The code allows a
client to distinguish types of errors without parsing messages.

There is also support for stacktraces. Ensure you create the error
using ErrXyz.New("...") or errors.Wrap(err, "...") at the point of
creation so we attach a stacktrace. If you wrap multiple times, only
the first wrap records the stack.

Once you have an error, you can use fmt verbs to get more context:
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
