package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	redemptions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "access_code_redemptions_total",
			Help: "Redemption attempts by outcome (success, invalid, already_used, unavailable, error).",
		},
		[]string{"outcome"},
	)

	codesIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "access_codes_issued_total",
			Help: "Access codes created through the admin surface.",
		},
	)

	journeyShown = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journey_messages_shown_total",
			Help: "Journey messages handed to the presentation layer, per day index.",
		},
		[]string{"day"},
	)

	journeyDue = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "journey_messages_due",
			Help: "Validated profiles with an unshown message for the current day, as of the last sweep.",
		},
	)

	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "HTTP request latency distribution in milliseconds.",
			Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600, 3000},
		},
		[]string{"method", "route", "status"},
	)
)

// Register installs all collectors exactly once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			redemptions,
			codesIssued,
			journeyShown,
			journeyDue,
			httpLatency,
		)
	})
}

func IncRedemption(outcome string) { redemptions.WithLabelValues(outcome).Inc() }

func IncCodeIssued() { codesIssued.Inc() }

func IncJourneyShown(day int) { journeyShown.WithLabelValues(strconv.Itoa(day)).Inc() }

func SetJourneyDue(n int) { journeyDue.Set(float64(n)) }

func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	httpLatency.WithLabelValues(method, route, strconv.Itoa(status)).
		Observe(float64(elapsed.Milliseconds()))
}
