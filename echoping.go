package echoping

/**
 * A single host ICMP echo client.
 *
 * Every probe owns its endpoint: it opens a raw socket, sends one echo
 * request, waits for the reply carrying our identifier and closes the socket
 * again. Nothing survives between probes except the identifier, which the
 * caller picks once and passes in. Replies are matched on identifier only,
 * anything else that shows up on the raw socket is dropped and the wait goes
 * on until the timeout budget runs out.
 **/

import (
	"context"
	"io"
	"net/netip"
	"time"

	"github.com/drgkaleda/go-echoping/pinger"
	"github.com/sirupsen/logrus"
)

// Sequence number carried by every request. Replies are not matched on it.
const Sequence = 1

// Endpoint is an open ICMP transport. *pinger.Conn implements it.
type Endpoint interface {
	Send(dst netip.Addr, pkt []byte) error
	Receive(maxWait time.Duration) (*pinger.Packet, error)
	Close() error
}

// Observer is notified about probe outcomes. Calls are made synchronously
// from the probing goroutine.
type Observer interface {
	ObserveResult(r Result)
	ObserveDiscard(reason string)
	ObserveError(err error)
}

// Discard reasons passed to Observer.ObserveDiscard.
const (
	DiscardTruncated   = "truncated"
	DiscardMismatched  = "mismatched"
	DiscardNoTimestamp = "no_timestamp"
	DiscardChecksum    = "bad_checksum"
)

type Pinger struct {
	// Timeout is the default wait used by Session. Default is 1s.
	Timeout time.Duration

	// VerifyChecksum drops replies whose ICMP checksum does not verify.
	// Off by default: replies are trusted as received.
	VerifyChecksum bool

	open     func() (Endpoint, error)
	now      func() time.Time
	log      logrus.FieldLogger
	observer Observer
}

// New returns a Pinger using raw ICMP sockets and the wall clock.
func New() *Pinger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return &Pinger{
		Timeout: time.Second,
		open: func() (Endpoint, error) {
			return pinger.Open()
		},
		now: time.Now,
		log: log,
	}
}

// SetTransport replaces the function used to open an endpoint per probe.
func (p *Pinger) SetTransport(open func() (Endpoint, error)) {
	p.open = open
}

// SetClock replaces the time source used for timestamps and deadlines.
func (p *Pinger) SetClock(now func() time.Time) {
	p.now = now
}

func (p *Pinger) SetLogger(log logrus.FieldLogger) {
	p.log = log
}

func (p *Pinger) SetObserver(o Observer) {
	p.observer = o
}

// Probe sends one echo request to dst and waits up to timeout for the reply
// carrying id. Open and send failures are returned as errors, a missing reply
// is a Timeout result. When ctx is cancelled the wait is interrupted and
// ctx.Err() is returned.
func (p *Pinger) Probe(ctx context.Context, dst netip.Addr, id uint16, timeout time.Duration) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	ep, err := p.open()
	if err != nil {
		return Result{}, p.failed(err)
	}
	defer ep.Close()

	// unblocks Receive on interrupt
	stop := context.AfterFunc(ctx, func() {
		ep.Close()
	})
	defer stop()

	if err := p.sendRequest(ep, dst, id); err != nil {
		return Result{}, p.interrupted(ctx, err)
	}

	r, err := p.awaitReply(ep, id, timeout)
	if err != nil {
		return Result{}, p.interrupted(ctx, err)
	}

	p.log.WithFields(logrus.Fields{
		"dst":    dst,
		"id":     id,
		"status": r.Status,
		"rtt_ms": r.RTT,
	}).Debug("probe finished")
	if p.observer != nil {
		p.observer.ObserveResult(r)
	}
	return r, nil
}

func (p *Pinger) discard(reason string, pkt *pinger.Packet) {
	p.log.WithFields(logrus.Fields{
		"src":    pkt.Src,
		"len":    pkt.Len,
		"reason": reason,
	}).Debug("packet discarded")
	if p.observer != nil {
		p.observer.ObserveDiscard(reason)
	}
}

func (p *Pinger) failed(err error) error {
	p.log.WithError(err).Debug("probe failed")
	if p.observer != nil {
		p.observer.ObserveError(err)
	}
	return err
}

// interrupted prefers the context error over whatever the closed endpoint
// returned.
func (p *Pinger) interrupted(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return p.failed(err)
}
