package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipebox_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recipebox_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	authAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipebox_auth_attempts_total",
		Help: "Register and login attempts by result",
	}, []string{"action", "result"})

	recipeEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipebox_recipe_events_total",
		Help: "Recipe mutations by kind",
	}, []string{"event"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipebox_cache_lookups_total",
		Help: "Recipe cache lookups by result",
	}, []string{"result"})
)

const (
	EventCreated     = "created"
	EventEdited      = "edited"
	EventDeleted     = "deleted"
	EventVisibility  = "visibility"
	EventRated       = "rated"
	EventCommented   = "commented"
	EventUncommented = "comment_deleted"
	EventSaved       = "saved"
	EventUnsaved     = "unsaved"
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func ObserveAuth(action, result string) {
	authAttempts.WithLabelValues(action, result).Inc()
}

func RecipeEvent(event string) {
	recipeEvents.WithLabelValues(event).Inc()
}

func CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(result).Inc()
}
