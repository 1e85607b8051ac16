package api

import (
	"errors"
	"fmt"
)

// Kind classifies gateway failures.
type Kind int

const (
	// KindTransport means no response was received.
	KindTransport Kind = iota
	// KindRemote means the service answered with a non-success status.
	KindRemote
	// KindDecode means a success response was not valid JSON.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRemote:
		return "remote"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Fallback messages, one per failure class.
const (
	MsgNetwork = "network error"
	MsgDecode  = "invalid response from server"
)

var (
	ErrUnsupportedMethod = errors.New("api: unsupported method")
	ErrBodyRequired      = errors.New("api: body required")
	ErrBodyNotAllowed    = errors.New("api: body not allowed")
)

// Error is a failed gateway call. Error() returns the human-readable
// message only, so it can be shown to visitors as is.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func httpStatusMessage(status int) string {
	return fmt.Sprintf("HTTP error, status %d", status)
}

// IsKind reports whether err is a gateway Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
