package observability

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	recordsDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yomo_codec",
			Subsystem: "tlv",
			Name:      "records_decoded_total",
			Help:      "TLV records decoded by scanners.",
		},
		[]string{"tag"},
	)
	payloadBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "yomo_codec",
			Subsystem: "tlv",
			Name:      "payload_bytes_total",
			Help:      "Payload bytes copied out of scanned buffers.",
		},
	)
	decodeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yomo_codec",
			Subsystem: "tlv",
			Name:      "decode_errors_total",
			Help:      "Scanner decode failures by reason.",
		},
		[]string{"reason"},
	)
)

// Register adds the codec collectors to reg. Collectors already present on
// reg are skipped, so repeated calls are safe.
func Register(reg prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) && are.ExistingCollector == c {
				continue
			}
			return err
		}
	}
	return nil
}

// RegisterMetrics registers the codec collectors on the default registry.
func RegisterMetrics() error {
	return Register(prometheus.DefaultRegisterer)
}

func Collectors() []prometheus.Collector {
	return []prometheus.Collector{recordsDecoded, payloadBytes, decodeErrors}
}

// Recorders only count. Exposing the counters is the caller's choice.
func RecordDecoded(tag string, payloadLen int) {
	recordsDecoded.WithLabelValues(tag).Inc()
	payloadBytes.Add(float64(payloadLen))
}

func RecordDecodeError(reason string) {
	decodeErrors.WithLabelValues(reason).Inc()
}
