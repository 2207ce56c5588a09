package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "darkops_http_request_duration_seconds",
			Help:    "Time spent serving HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "darkops_sessions_created_total",
			Help: "Total number of learner sessions created",
		},
	)

	ProgressUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "darkops_progress_updates_total",
			Help: "Total number of progress updates",
		},
		[]string{"attack_id", "result"}, // result: created/updated/completed
	)

	QuizSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "darkops_quiz_submissions_total",
			Help: "Total number of graded quiz batches",
		},
		[]string{"attack_id"},
	)

	QuizAnswersCorrect = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "darkops_quiz_answers_correct_total",
			Help: "Total number of correct quiz answers",
		},
		[]string{"attack_id"},
	)
)

// Middleware records request latency by route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
