package echoping

import (
	"net/netip"

	"github.com/drgkaleda/go-echoping/pinger"
)

type Status int

const (
	StatusTimeout Status = iota
	StatusSuccess
)

func (s Status) String() string {
	if s == StatusSuccess {
		return "success"
	}
	return "timeout"
}

// Result is the outcome of one probe.
type Result struct {
	Status Status
	// RTT in milliseconds, only meaningful on success
	RTT float64
	Src netip.Addr
	TTL int
}

func (r Result) Success() bool {
	return r.Status == StatusSuccess
}

func timedOut() Result {
	return Result{Status: StatusTimeout}
}

func succeeded(rtt float64, pkt *pinger.Packet) Result {
	return Result{
		Status: StatusSuccess,
		RTT:    rtt,
		Src:    pkt.Src,
		TTL:    pkt.TTL,
	}
}
