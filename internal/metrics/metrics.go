package metrics

import (
	"net/http"

	echoping "github.com/drgkaleda/go-echoping"
	"github.com/drgkaleda/go-echoping/pinger"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	probesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "echoping_probes_total",
		Help: "Echo probes by outcome",
	}, []string{"result"})

	rttMilliseconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "echoping_rtt_milliseconds",
		Help:    "Round trip time of answered probes",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 14), // 0.25ms to ~2s
	})

	discardedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "echoping_discarded_packets_total",
		Help: "Received packets dropped while waiting for a reply",
	}, []string{"reason"})

	probeErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "echoping_probe_errors_total",
		Help: "Probes that failed at the transport",
	}, []string{"kind"})
)

// Observer feeds probe outcomes into the package collectors.
type Observer struct{}

var _ echoping.Observer = Observer{}

func (Observer) ObserveResult(r echoping.Result) {
	probesTotal.WithLabelValues(r.Status.String()).Inc()
	if r.Success() {
		rttMilliseconds.Observe(r.RTT)
	}
}

func (Observer) ObserveDiscard(reason string) {
	discardedTotal.WithLabelValues(reason).Inc()
}

func (Observer) ObserveError(err error) {
	kind := "other"
	var te *pinger.TransportError
	if errors.As(err, &te) {
		kind = te.Kind.String()
	}
	probeErrorsTotal.WithLabelValues(kind).Inc()
}

// Serve exposes the default registry on addr. It blocks.
func Serve(addr, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
