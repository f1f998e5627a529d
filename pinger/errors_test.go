package pinger

import (
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestOpenErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{
			name: "eperm",
			err:  &net.OpError{Op: "listen", Net: network, Err: os.NewSyscallError("socket", syscall.EPERM)},
			want: PermissionDenied,
		},
		{
			name: "eacces",
			err:  &net.OpError{Op: "listen", Net: network, Err: syscall.EACCES},
			want: PermissionDenied,
		},
		{
			name: "no protocol",
			err:  &net.OpError{Op: "listen", Net: network, Err: syscall.EPROTONOSUPPORT},
			want: ProtocolUnavailable,
		},
		{
			name: "unknown network",
			err:  net.UnknownNetworkError(network),
			want: ProtocolUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := openError(tt.err)
			assert.Equal(t, tt.want, err.Kind)
			assert.True(t, IsKind(err, tt.want))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestTransportError(t *testing.T) {
	cause := errors.New("boom")
	err := errors.Wrap(&TransportError{Kind: SendFailed, Op: "send", Err: cause}, "probe")

	assert.True(t, IsKind(err, SendFailed))
	assert.False(t, IsKind(err, ReceiveFailed))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "probe: send: send failed: boom", err.Error())
	assert.False(t, IsKind(cause, SendFailed))
}

func TestErrorKindFatal(t *testing.T) {
	assert.True(t, PermissionDenied.Fatal())
	assert.True(t, ProtocolUnavailable.Fatal())
	assert.False(t, SendFailed.Fatal())
	assert.False(t, ReceiveFailed.Fatal())
	assert.Equal(t, "ErrorKind(9)", ErrorKind(9).String())
}
