package errors

import (
	"fmt"
	"strings"
)

// Append combines given errors into a single error instance. Nil values are
// ignored. If no error is left, nil is returned. A single error is returned
// as it is.
//
// Use it to collect all problems of a validation instead of failing on the
// first one.
func Append(errs ...error) error {
	var res []error
	for _, err := range errs {
		switch e := err.(type) {
		case nil:
			continue
		case *multiErr:
			res = append(res, e.errs...)
		default:
			res = append(res, e)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	}
	return &multiErr{errs: res}
}

// multiErr is a list of errors that is an error itself. The first error
// determines the code.
type multiErr struct {
	errs []error
}

func (e *multiErr) Error() string {
	msgs := make([]string, len(e.errs))
	for i, err := range e.errs {
		msgs[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(e.errs), strings.Join(msgs, "\n\t"))
}
