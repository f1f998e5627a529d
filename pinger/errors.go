package pinger

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// ErrorKind classifies transport failures.
type ErrorKind int

const (
	PermissionDenied ErrorKind = iota + 1
	ProtocolUnavailable
	SendFailed
	ReceiveFailed
)

func (k ErrorKind) String() string {
	switch k {
	case PermissionDenied:
		return "permission denied"
	case ProtocolUnavailable:
		return "protocol unavailable"
	case SendFailed:
		return "send failed"
	case ReceiveFailed:
		return "receive failed"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Fatal reports whether every following probe would fail the same way.
func (k ErrorKind) Fatal() bool {
	return k == PermissionDenied || k == ProtocolUnavailable
}

// TransportError is returned by every Conn operation.
type TransportError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err carries a TransportError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Kind == kind
}

// openError classifies a socket creation failure. Anything that is not a
// privilege problem means the raw icmp endpoint is not available here.
func openError(err error) *TransportError {
	kind := ProtocolUnavailable
	if errors.Is(err, os.ErrPermission) {
		kind = PermissionDenied
	}
	return &TransportError{Kind: kind, Op: "open", Err: err}
}
