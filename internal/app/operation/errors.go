package operation

import (
	"errors"
	"fmt"
)

// Error kinds. Every error produced by this package wraps exactly one of
// them, except action failures: business errors pass through unchanged and
// recovered panics wrap ErrActionPanic, which belongs to no kind.
var (
	ErrConfig       = errors.New("operation: configuration error")
	ErrProtocol     = errors.New("operation: protocol violation")
	ErrCollaborator = errors.New("operation: collaborator failure")
)

// Configuration errors.
var (
	ErrServiceNotConfigured = fmt.Errorf("%w: service not configured", ErrConfig)
)

// Protocol errors.
var (
	ErrAlreadyStarted     = fmt.Errorf("%w: operation already started", ErrProtocol)
	ErrAlreadyClosed      = fmt.Errorf("%w: operation already closed", ErrProtocol)
	ErrNotStarted         = fmt.Errorf("%w: operation not started", ErrProtocol)
	ErrNotSealed          = fmt.Errorf("%w: operation not sealed", ErrProtocol)
	ErrSealed             = fmt.Errorf("%w: operation sealed", ErrProtocol)
	ErrClosed             = fmt.Errorf("%w: operation closed", ErrProtocol)
	ErrNilAction          = fmt.Errorf("%w: nil action", ErrProtocol)
	ErrInputType          = fmt.Errorf("%w: action input type mismatch", ErrProtocol)
	ErrNotifierMissing    = fmt.Errorf("%w: no notifier configured", ErrProtocol)
	ErrDispatcherMissing  = fmt.Errorf("%w: no dispatcher configured", ErrProtocol)
	ErrDaoClosedOutOfBand = fmt.Errorf("%w: dao was closed outside of the execution cycle", ErrProtocol)
)

// ErrActionPanic is returned in place of a panic raised by an action. Like a
// business error it aborts the operation.
var ErrActionPanic = errors.New("operation: action panicked")

// CollaboratorError reports a failed call to a collaborator service.
// errors.Is matches both ErrCollaborator and the underlying cause.
type CollaboratorError struct {
	Service string
	Op      string
	Err     error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("operation: %s %s: %v", e.Service, e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() []error {
	return []error{ErrCollaborator, e.Err}
}

func collaboratorErr(service, op string, err error) error {
	if err == nil {
		return nil
	}
	return &CollaboratorError{Service: service, Op: op, Err: err}
}
