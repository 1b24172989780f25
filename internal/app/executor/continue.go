package executor

import "errors"

// continueError marks a failure that ends the pipeline without discarding
// its effects.
type continueError struct {
	err error
}

func (e *continueError) Error() string { return e.err.Error() }

func (e *continueError) Unwrap() error { return e.err }

// Continue marks err as continuable: the executor stops the pipeline, commits
// and closes the operation normally, and returns err to the caller. A nil
// err stays nil.
func Continue(err error) error {
	if err == nil {
		return nil
	}
	return &continueError{err: err}
}

// IsContinuable reports whether err, or an error it wraps, was marked with
// Continue.
func IsContinuable(err error) bool {
	var ce *continueError
	return errors.As(err, &ce)
}
