package echoping

import (
	"time"

	"github.com/drgkaleda/go-echoping/pinger"
)

// awaitReply reads until a reply carrying id arrives or timeout has passed
// since the first read. The remaining budget is recomputed on every pass.
func (p *Pinger) awaitReply(ep Endpoint, id uint16, timeout time.Duration) (Result, error) {
	start := p.now()

	for {
		remaining := timeout - p.now().Sub(start)
		if remaining <= 0 {
			return timedOut(), nil
		}

		pkt, err := ep.Receive(remaining)
		if err != nil {
			return Result{}, err
		}
		if pkt == nil {
			return timedOut(), nil
		}
		received := p.now()

		reply, err := pinger.Decode(pkt.Bytes)
		if err != nil {
			p.discard(DiscardTruncated, pkt)
			continue
		}
		if p.VerifyChecksum && !reply.ChecksumOK {
			p.discard(DiscardChecksum, pkt)
			continue
		}
		// replies to other pingers on this host
		if reply.ID != id {
			p.discard(DiscardMismatched, pkt)
			continue
		}
		if !reply.HasTimestamp {
			p.discard(DiscardNoTimestamp, pkt)
			continue
		}

		rtt := (pinger.Timestamp(received) - reply.SentTime) * 1000
		return succeeded(rtt, pkt), nil
	}
}
