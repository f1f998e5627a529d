package pinger

import (
	"encoding/binary"
	"math"
	"net/netip"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/ipv4"
)

const (
	// IPv4HeaderLen is the header length assumed for received datagrams.
	// Options are not supported.
	IPv4HeaderLen = 20
	// EchoHeaderLen is the length of the ICMP echo header.
	EchoHeaderLen = 8
	// TimestampLen is the length of the payload carrying the send time.
	TimestampLen = 8

	// EchoRequestLen is the on-wire length of an encoded request.
	EchoRequestLen = EchoHeaderLen + TimestampLen

	minReplyLen       = IPv4HeaderLen + EchoHeaderLen
	minTimestampedLen = minReplyLen + TimestampLen
)

// ErrTruncated is returned by Decode when the buffer is too short to hold
// an IPv4 header followed by an ICMP echo header.
var ErrTruncated = errors.New("truncated icmp packet")

// Packet is a raw datagram read from the transport.
type Packet struct {
	Bytes []byte
	Len   int
	TTL   int
	Src   netip.Addr
}

// EchoReply is the ICMP portion of a received datagram.
type EchoReply struct {
	Type     uint8
	Code     uint8
	Checksum uint16
	ID       uint16
	Seq      uint16

	// SentTime is the timestamp embedded by the sender, in seconds since
	// the Unix epoch. Only set when HasTimestamp is true.
	SentTime     float64
	HasTimestamp bool

	// ChecksumOK reports whether the ICMP portion verifies. Decode does not
	// reject packets on this.
	ChecksumOK bool
}

// Encode builds an ICMP echo request carrying sentTime as its payload.
// The timestamp is written in the host's native float64 layout, so the
// reply can only be read back by a host with the same byte order.
func Encode(id, seq uint16, sentTime float64) []byte {
	b := make([]byte, EchoRequestLen)
	b[0] = byte(ipv4.ICMPTypeEcho)
	b[1] = 0
	// b[2:4] stays zero while the checksum is computed
	binary.BigEndian.PutUint16(b[4:6], id)
	binary.BigEndian.PutUint16(b[6:8], seq)
	binary.NativeEndian.PutUint64(b[8:], math.Float64bits(sentTime))

	binary.BigEndian.PutUint16(b[2:4], Checksum(b))
	return b
}

// Decode parses the ICMP echo header following a 20 byte IPv4 header.
func Decode(buf []byte) (*EchoReply, error) {
	if len(buf) < minReplyLen {
		return nil, errors.Wrapf(ErrTruncated, "%d bytes", len(buf))
	}

	msg := buf[IPv4HeaderLen:]
	r := &EchoReply{
		Type:       msg[0],
		Code:       msg[1],
		Checksum:   binary.BigEndian.Uint16(msg[2:4]),
		ID:         binary.BigEndian.Uint16(msg[4:6]),
		Seq:        binary.BigEndian.Uint16(msg[6:8]),
		ChecksumOK: VerifyChecksum(msg),
	}

	if len(buf) >= minTimestampedLen {
		r.SentTime = math.Float64frombits(binary.NativeEndian.Uint64(msg[EchoHeaderLen:]))
		r.HasTimestamp = true
	}

	return r, nil
}

// Timestamp converts t into the float seconds carried in the payload.
func Timestamp(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
