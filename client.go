package echoping

import (
	"fmt"
	"io"
	"net/netip"
)

// Reporter renders probe outcomes as they are produced.
type Reporter interface {
	Report(dst netip.Addr, r Result)
	Error(dst netip.Addr, err error)
}

// TextReporter writes one line per probe.
type TextReporter struct {
	W io.Writer
}

func (t *TextReporter) Report(dst netip.Addr, r Result) {
	fmt.Fprintln(t.W, FormatResult(dst, r))
}

func (t *TextReporter) Error(dst netip.Addr, err error) {
	fmt.Fprintf(t.W, "Ping to %s failed: %v\n", dst, err)
}

func FormatResult(dst netip.Addr, r Result) string {
	if !r.Success() {
		return "Request timed out."
	}
	return fmt.Sprintf("Reply from %s: time=%.2f ms", dst, r.RTT)
}
