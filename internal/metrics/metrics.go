// Package metrics holds the prometheus collectors describing binding
// activity. Collectors are registered on Registry rather than the global
// prometheus registry so hosts decide whether to expose them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kvbind"

// Binding kinds used as the "kind" label.
const (
	KindValue  = "value"
	KindAction = "action"
)

// Registry is the registry all kvbind collectors are registered on.
var Registry = prometheus.NewRegistry()

var (
	// ActiveBindings counts bindings that are bound. A binding leaves the
	// count when it is unbound, when a lookup or notification finds one of
	// its objects collected, or when all of its objects have been collected.
	ActiveBindings = promauto.With(Registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "bindings_active",
		Help:      "Number of bindings not yet unbound or retired after their objects were collected.",
	}, []string{"kind"})

	// Propagations counts successful value writes and action invocations.
	Propagations = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "propagations_total",
		Help:      "Number of values written or actions invoked by bindings.",
	}, []string{"kind", "direction"})

	// DroppedUpdates counts updates that did not reach their target.
	DroppedUpdates = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dropped_updates_total",
		Help:      "Number of binding updates dropped, by reason.",
	}, []string{"reason"})
)

// Handler serves Registry in the prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
