// This file code is based on https://github.com/go-ping/ping
package pinger

import (
	"net"
	"net/netip"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/ipv4"
)

const (
	network = "ip4:icmp"

	// receive buffer, large enough for any reply to a 16 byte request
	recvBufferSize = 1500
	defaultTTL     = 64
)

// Conn is a raw ICMP endpoint. Received datagrams keep their IPv4 header.
type Conn struct {
	ip  *net.IPConn
	raw *ipv4.RawConn
	buf []byte

	closeOnce sync.Once
	closeErr  error
}

// Open creates a raw ICMP endpoint. Raw sockets need elevated privilege on
// most platforms, the lack of it is reported as PermissionDenied.
func Open() (*Conn, error) {
	pc, err := net.ListenPacket(network, "0.0.0.0")
	if err != nil {
		return nil, openError(err)
	}
	ip, ok := pc.(*net.IPConn)
	if !ok {
		pc.Close()
		return nil, openError(errors.Errorf("unexpected connection type %T", pc))
	}

	raw, err := ipv4.NewRawConn(ip)
	if err != nil {
		ip.Close()
		return nil, openError(err)
	}
	if err := raw.SetControlMessage(ipv4.FlagTTL, true); err != nil {
		ip.Close()
		return nil, openError(err)
	}

	return &Conn{
		ip:  ip,
		raw: raw,
		buf: make([]byte, recvBufferSize),
	}, nil
}

// Send writes pkt, an encoded ICMP message, to dst.
func (c *Conn) Send(dst netip.Addr, pkt []byte) error {
	if !dst.Is4() {
		return &TransportError{Kind: SendFailed, Op: "send", Err: errors.Errorf("%s is not an IPv4 address", dst)}
	}

	h := &ipv4.Header{
		Version:  ipv4.Version,
		Len:      ipv4.HeaderLen,
		TotalLen: ipv4.HeaderLen + len(pkt),
		TTL:      defaultTTL,
		Protocol: ipv4.ICMPTypeEcho.Protocol(),
		Dst:      dst.AsSlice(),
	}
	if err := c.raw.WriteTo(h, pkt, nil); err != nil {
		return &TransportError{Kind: SendFailed, Op: "send", Err: err}
	}
	return nil
}

// Receive waits up to maxWait for one datagram. It returns nil, nil when
// nothing arrived in time. Each call arms its own deadline, so callers can
// wait again with whatever budget is left.
func (c *Conn) Receive(maxWait time.Duration) (*Packet, error) {
	if err := c.ip.SetReadDeadline(time.Now().Add(maxWait)); err != nil {
		return nil, &TransportError{Kind: ReceiveFailed, Op: "receive", Err: err}
	}

	h, p, cm, err := c.raw.ReadFrom(c.buf)
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return nil, nil
		}
		return nil, &TransportError{Kind: ReceiveFailed, Op: "receive", Err: err}
	}

	n := h.Len + len(p)
	pkt := &Packet{
		Bytes: append([]byte(nil), c.buf[:n]...),
		Len:   n,
		TTL:   h.TTL,
	}
	if cm != nil && cm.TTL > 0 {
		pkt.TTL = cm.TTL
	}
	if src, ok := netip.AddrFromSlice(h.Src); ok {
		pkt.Src = src.Unmap()
	}
	return pkt, nil
}

// Close releases the socket. It is safe to call more than once.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.ip.Close()
	})
	return c.closeErr
}
