package analytics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const CATEGORY_TRANSACTIONS = "Transactions"

type Event struct {
	Category   string
	Event      string
	Properties map[string]any
}

var EventsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sigconfirm_events_total",
		Help: "User decisions on signature requests.",
	},
	[]string{"category", "event", "type"},
)

var registry = prometheus.NewRegistry()

func init() {
	registry.MustRegister(EventsTotal)
}

// Track records an event. It never blocks on a consumer.
func Track(e Event) {
	t := ""
	if v, ok := e.Properties["type"]; ok {
		t = fmt.Sprint(v)
	}

	EventsTotal.WithLabelValues(e.Category, e.Event, t).Inc()

	log.Info().
		Str("category", e.Category).
		Str("event", e.Event).
		Fields(e.Properties).
		Msg("analytics")
}

func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
