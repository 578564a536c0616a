// Package metrics exposes the codec's Prometheus counters.
//
// Scanners always count decoded records, payload bytes, and failures. Nothing
// is exported until a caller registers the collectors:
//
//	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
//		return err
//	}
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xiaojian-hong/yomo-codec/internal/observability"
)

// Register adds the codec collectors to reg. Calling it again with the same
// registry is a no-op.
func Register(reg prometheus.Registerer) error {
	return observability.Register(reg)
}

// Collectors returns the codec collectors for callers that wire their own
// registry or wrap them with prometheus.WrapRegistererWith.
func Collectors() []prometheus.Collector {
	return observability.Collectors()
}
