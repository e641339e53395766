package pipeline

import "fmt"

// InputError reports that the input image could not be loaded. It is the
// only error that aborts a run; nothing is written to the output directory
// after it.
//
// Err wraps os.ErrNotExist for a missing file and imaging.ErrDecode for an
// unreadable one.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("cannot load input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
