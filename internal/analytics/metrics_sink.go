package analytics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
)

// MetricsSink turns quiz events into Prometheus metrics.
type MetricsSink struct {
	eventsTotal          *prometheus.CounterVec
	recommendationsTotal *prometheus.CounterVec
	loftInches           prometheus.Histogram
}

// NewMetricsSink registers the quiz metrics with reg.
func NewMetricsSink(reg prometheus.Registerer) *MetricsSink {
	factory := promauto.With(reg)

	return &MetricsSink{
		// Labels: event
		eventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "loftfit",
				Subsystem: "quiz",
				Name:      "events_total",
				Help:      "Total number of quiz analytics events by name",
			},
			[]string{"event"},
		),
		// Labels: product, bucket
		recommendationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "loftfit",
				Subsystem: "quiz",
				Name:      "recommendations_total",
				Help:      "Total number of completed quizzes by primary product and loft bucket",
			},
			[]string{"product", "bucket"},
		),
		loftInches: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "loftfit",
				Subsystem: "quiz",
				Name:      "loft_inches",
				Help:      "Required loft computed for completed quizzes",
				Buckets:   prometheus.LinearBuckets(2.5, 0.5, 9),
			},
		),
	}
}

func (s *MetricsSink) Name() string { return "metrics" }

func (s *MetricsSink) Publish(_ context.Context, event entities.Event) error {
	s.eventsTotal.WithLabelValues(event.Name).Inc()

	if event.Name != entities.EventQuizComplete {
		return nil
	}

	product, _ := event.Payload["primary_product_id"].(string)
	bucket, _ := event.Payload["loft_bucket"].(string)
	s.recommendationsTotal.WithLabelValues(product, bucket).Inc()

	if loft, ok := event.Payload["loft_inches"].(float64); ok {
		s.loftInches.Observe(loft)
	}
	return nil
}
