package echoping

import (
	"context"
	"net"
	"net/netip"
	"time"

	"github.com/drgkaleda/go-echoping/pinger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrResolve is returned when the target host has no usable IPv4 address.
var ErrResolve = errors.New("cannot resolve host")

// Resolve looks host up once. Literal addresses are returned as is.
func Resolve(host string) (netip.Addr, error) {
	ipaddr, err := net.ResolveIPAddr("ip4", host)
	if err != nil {
		return netip.Addr{}, errors.Wrapf(ErrResolve, "%s: %v", host, err)
	}
	addr, ok := netip.AddrFromSlice(ipaddr.IP)
	if !ok {
		return netip.Addr{}, errors.Wrapf(ErrResolve, "%s: bad address %v", host, ipaddr.IP)
	}
	return addr.Unmap(), nil
}

// Session probes one destination at a fixed interval until its context is
// cancelled or Count probes were sent.
type Session struct {
	Pinger   *Pinger
	Dst      netip.Addr
	ID       uint16
	Interval time.Duration
	// Count limits the number of probes, 0 means no limit
	Count    int
	Reporter Reporter
	Log      logrus.FieldLogger
}

// Run returns nil when ctx is cancelled. Failures that would repeat on every
// probe, such as missing raw socket privilege, end the run and are returned.
// Other transport failures are reported and the next probe goes ahead.
func (s *Session) Run(ctx context.Context) error {
	log := s.Log
	if log == nil {
		log = s.Pinger.log
	}

	for n := 0; s.Count == 0 || n < s.Count; n++ {
		r, err := s.Pinger.Probe(ctx, s.Dst, s.ID, s.Pinger.Timeout)
		switch {
		case ctx.Err() != nil:
			return nil
		case err != nil:
			var te *pinger.TransportError
			if errors.As(err, &te) && te.Kind.Fatal() {
				return errors.Wrap(err, "probe")
			}
			log.WithError(err).WithField("dst", s.Dst).Warn("probe failed")
			s.Reporter.Error(s.Dst, err)
		default:
			s.Reporter.Report(s.Dst, r)
		}

		if s.Count != 0 && n+1 >= s.Count {
			break
		}
		if !sleep(ctx, s.Interval) {
			return nil
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
