// Package metrics wires the runtime's counters to Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry implements kernel.Metrics on top of Prometheus collectors. It is
// defined without importing the kernel package so either side can be used
// independently; Runtime only needs the method set to match.
type Registry struct {
	actorsCreated      prometheus.Counter
	actorsReleased     prometheus.Counter
	messagesSent       prometheus.Counter
	messagesDispatched prometheus.Counter
	readyQueueDepth    prometheus.Gauge
	registrySize       prometheus.Gauge
}

// NewRegistry creates and registers the Prometheus collectors backing the
// runtime's Metrics hook.
func NewRegistry() *Registry {
	return &Registry{
		actorsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hive_actors_created_total",
			Help: "Total number of actors created.",
		}),
		actorsReleased: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hive_actors_released_total",
			Help: "Total number of actors released and destroyed.",
		}),
		messagesSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hive_messages_sent_total",
			Help: "Total number of messages successfully enqueued via Send.",
		}),
		messagesDispatched: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hive_messages_dispatched_total",
			Help: "Total number of dispatcher turns that delivered a message.",
		}),
		readyQueueDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "hive_ready_queue_depth",
			Help: "Approximate number of actors currently pending in the ready queue.",
		}),
		registrySize: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "hive_registry_actors",
			Help: "Current number of registered actors.",
		}),
	}
}

func (r *Registry) ActorCreated()          { r.actorsCreated.Inc() }
func (r *Registry) ActorReleased()         { r.actorsReleased.Inc() }
func (r *Registry) MessageSent()           { r.messagesSent.Inc() }
func (r *Registry) MessageDispatched()     { r.messagesDispatched.Inc() }
func (r *Registry) ReadyQueueDepth(n int)  { r.readyQueueDepth.Set(float64(n)) }
func (r *Registry) RegistrySize(n int)     { r.registrySize.Set(float64(n)) }

// Handler returns an HTTP handler exposing the collectors at /metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.Handler()
}
