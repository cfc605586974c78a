package core

import "errors"

// Kind identifies the fault a CoreError describes.
type Kind uint8

const (
	// KindNotFound means a lookup found no matching entity.
	KindNotFound Kind = iota + 1

	// KindInvalidInput means a supplied value failed validation.
	KindInvalidInput
)

// String returns the kind identifier used in logs.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// Sentinel errors for matching with errors.Is.
var (
	ErrNotFound     = &CoreError{Kind: KindNotFound}
	ErrInvalidInput = &CoreError{Kind: KindInvalidInput}
)

// CoreError is the error type raised by the core and engine packages.
type CoreError struct {
	Kind Kind
	Msg  string
}

// NotFound creates a KindNotFound error carrying msg.
func NotFound(msg string) *CoreError {
	return &CoreError{Kind: KindNotFound, Msg: msg}
}

// InvalidInput creates a KindInvalidInput error carrying msg.
func InvalidInput(msg string) *CoreError {
	return &CoreError{Kind: KindInvalidInput, Msg: msg}
}

// Error renders the error for display.
func (e *CoreError) Error() string {
	switch e.Kind {
	case KindNotFound:
		return "Not found: " + e.Msg
	case KindInvalidInput:
		return "Invalid input: " + e.Msg
	default:
		return e.Msg
	}
}

// Is reports whether target is a CoreError of the same kind.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// KindOf returns the kind of the first CoreError in err's chain.
func KindOf(err error) (Kind, bool) {
	var ce *CoreError
	if !errors.As(err, &ce) {
		return 0, false
	}

	return ce.Kind, true
}
