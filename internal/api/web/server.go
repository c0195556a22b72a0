package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Thorongil80/fireplan-alarm-divera/internal/domain/alarm"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/logger"
)

// Status is the live pipeline snapshot rendered by /status and /metrics.
type Status struct {
	// State is the coordinator state: idle, processing or shutting down.
	State string `json:"state"`
	// QueueDepth is the number of alarms waiting in the hand-off queue.
	QueueDepth int `json:"queue_depth"`
	// QueueCapacity is the configured capacity of the hand-off queue.
	QueueCapacity int `json:"queue_capacity"`
	// Received counts alarms accepted since start.
	Received uint64 `json:"received"`
	// Dispatched counts processing cycles that reached submission.
	Dispatched uint64 `json:"dispatched"`
	// Submitted counts records delivered to Fireplan.
	Submitted uint64 `json:"submitted"`
	// Failed counts records that could not be delivered.
	Failed uint64 `json:"failed"`
}

// AlarmSink accepts one inbound alarm for asynchronous processing.
// An error means the bridge is shutting down and took nothing.
type AlarmSink interface {
	Enqueue(ctx context.Context, eventID string, in alarm.InboundAlarm) error
}

// StatusSource provides the live pipeline snapshot.
type StatusSource interface {
	Status() Status
}

// Server exposes the ingest and observability endpoints.
type Server struct {
	// authToken is the shared secret the webhook must present on /submit.
	authToken string
	// sink receives accepted alarms.
	sink AlarmSink
	// status provides the pipeline snapshot.
	status StatusSource
	// engine is the configured gin router.
	engine *gin.Engine
	// started is used to render the uptime on /metrics.
	started time.Time
}

// New wires the sink and status source into a gin handler with all routes registered.
func New(authToken string, sink AlarmSink, status StatusSource) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		authToken: authToken,
		sink:      sink,
		status:    status,
		started:   time.Now(),
	}

	engine := gin.New()
	engine.Use(s.requestLogger(), gin.Recovery())

	engine.GET("/", s.landing)
	engine.GET("/health", s.health)
	engine.GET("/ready", s.ready)
	engine.GET("/version", s.version)
	engine.GET("/status", s.state)
	engine.GET("/time", s.clock)
	engine.GET("/metrics", s.metrics)
	engine.GET("/echo/:msg", s.echo)
	engine.GET("/help", s.help)
	engine.GET("/ping", s.ping)
	engine.POST("/submit", s.submit)

	s.engine = engine

	return s
}

// Router returns the handler serving all routes, ready to be mounted
// into an http.Server.
func (s *Server) Router() http.Handler {
	return s.engine
}

// requestLogger logs one line per completed request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.InfoKV(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"client", c.ClientIP(),
		)
	}
}
