package binding

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBinding         = errors.New("invalid binding")
	ErrNonInvertibleTransform = errors.New("value transformer is not invertible")
	ErrDanglingEndpoint       = errors.New("bound object no longer exists")
	ErrUnsupportedAction      = errors.New("unsupported action")

	ErrMissingTriggerBinding = errors.New("missing action binding(s) for trigger")
	ErrMissingActionBinding  = errors.New("missing trigger binding for action")
	ErrMissingGetterBinding  = errors.New("missing getter binding(s) for property")
	ErrMissingSetterBinding  = errors.New("missing setter binding(s) for property")

	errRecovered = errors.New("recovered panic")
)

// Direction tells which way an update travelled.
type Direction int

const (
	Forward Direction = iota // source to target
	Reverse                  // target to source
)

// String returns "forward" or "reverse".
func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}

	return "forward"
}

// UpdateError describes an update a binding had to drop. The binding stays
// active.
type UpdateError struct {
	Binding   Binding
	Direction Direction
	Err       error
}

// Error describes the binding, the direction and the cause.
func (e *UpdateError) Error() string {
	return fmt.Sprintf("binding %s: %s update dropped: %v", e.Binding.ID(), e.Direction, e.Err)
}

// Unwrap returns the cause of the dropped update.
func (e *UpdateError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives updates dropped by a binding.
type ErrorHandler func(err *UpdateError)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidBinding, fmt.Sprintf(format, args...))
}

func reason(err error) string {
	switch {
	case errors.Is(err, errRecovered):
		return "panic"
	case errors.Is(err, ErrNonInvertibleTransform):
		return "non_invertible"
	case errors.Is(err, ErrUnsupportedAction):
		return "unsupported_action"
	case errors.Is(err, ErrDanglingEndpoint):
		return "dangling_endpoint"
	default:
		return "error"
	}
}
