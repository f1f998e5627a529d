package echoping

import (
	"net/netip"

	"github.com/drgkaleda/go-echoping/pinger"
)

func (p *Pinger) sendRequest(ep Endpoint, dst netip.Addr, id uint16) error {
	pkt := pinger.Encode(id, Sequence, pinger.Timestamp(p.now()))
	return ep.Send(dst, pkt)
}
