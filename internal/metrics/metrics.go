package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "trivia"

// Quiz outcomes
const (
	QuizServed    = "served"
	QuizExhausted = "exhausted"
)

// Collector is a prometheus.Collector that collects metrics about the
// trivia API.
type Collector struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	quizQuestions   *prometheus.CounterVec
	subscribers     prometheus.GaugeFunc
}

// NewCollector returns a new Collector. subscribers reports the number of
// live event subscribers.
func NewCollector(subscribers func() int) *Collector {
	return &Collector{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "http_requests_total",
				Help:      "The number of HTTP requests served.",
			}, []string{"method", "path", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "The time taken to serve an HTTP request.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			}, []string{"method", "path"},
		),
		quizQuestions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "quiz_questions_total",
				Help:      "The number of quiz requests by outcome.",
			}, []string{"outcome"},
		),
		subscribers: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "event_subscribers",
				Help:      "The number of connected question event subscribers.",
			}, func() float64 { return float64(subscribers()) },
		),
	}
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.requests.Describe(ch)
	c.requestDuration.Describe(ch)
	c.quizQuestions.Describe(ch)
	c.subscribers.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.requests.Collect(ch)
	c.requestDuration.Collect(ch)
	c.quizQuestions.Collect(ch)
	c.subscribers.Collect(ch)
}

// ObserveQuiz counts a quiz request with the given outcome
func (c *Collector) ObserveQuiz(outcome string) {
	c.quizQuestions.WithLabelValues(outcome).Inc()
}

// Middleware records the count and latency of every request. Requests are
// labelled by route pattern, not raw path.
func (c *Collector) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			if err != nil {
				// commit the error response so its status is known
				ctx.Error(err)
			}

			path := ctx.Path()
			if path == "" {
				path = "unmatched"
			}
			method := ctx.Request().Method
			code := strconv.Itoa(ctx.Response().Status)

			c.requests.WithLabelValues(method, path, code).Inc()
			c.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// Handler serves the metrics gathered by registry
func Handler(registry *prometheus.Registry) echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
