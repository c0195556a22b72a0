package web

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ps "github.com/mitchellh/go-ps"

	"github.com/Thorongil80/fireplan-alarm-divera/internal/domain/alarm"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/logger"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/version"
)

// submit authenticates the webhook call, decodes the alarm, and hands it to
// the pipeline. The response only confirms the hand-off; processing happens
// asynchronously.
func (s *Server) submit(c *gin.Context) {
	if c.Query("token") != s.authToken {
		logger.WarnKV(c.Request.Context(), "submit with invalid token", "client", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})

		return
	}

	var in alarm.InboundAlarm
	if err := c.ShouldBindJSON(&in); err != nil {
		logger.WarnKV(c.Request.Context(), "submit with malformed payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   fmt.Sprintf("JSON parse error: %v", err),
			"example": examplePayload(),
		})

		return
	}

	eventID := uuid.NewString()
	if err := s.sink.Enqueue(c.Request.Context(), eventID, in); err != nil {
		logger.WarnKV(c.Request.Context(), "alarm rejected during shutdown", "event_id", eventID)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "shutting down"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "submitted", "event_id": eventID})
}

// examplePayload mirrors the documented webhook payload. It is returned with
// 400 responses so integrators can fix their request without leaving curl.
func examplePayload() alarm.InboundAlarm {
	return alarm.InboundAlarm{
		ID:       247,
		Number:   "E-123",
		Title:    "FEUER3",
		Text:     "Unklare Rauchentwicklung im Hafen",
		Address:  "Hauptstraße 247, 12345 Musterstadt",
		Lat:      "1.23456",
		Lng:      "12.34567",
		Priority: 1,
		Cluster:  []string{"Untereinheit 1"},
		Group:    []string{"Gruppe 1", "Gruppe 2"},
		Vehicle:  []string{"HLF-1", "LF-10"},
		TsCreate: 1769601252,
		TsUpdate: 1769601252,
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "READY",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) version(c *gin.Context) {
	c.String(http.StatusOK, version.Full())
}

// state renders the pipeline snapshot as JSON.
func (s *Server) state(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"pipeline": s.status.Status(),
	})
}

func (s *Server) clock(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"utc": time.Now().UTC().Format(time.RFC3339)})
}

func (s *Server) echo(c *gin.Context) {
	c.String(http.StatusOK, c.Param("msg"))
}

func (s *Server) ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func (s *Server) help(c *gin.Context) {
	c.String(http.StatusOK, helpText)
}

// landing renders the HTML card shown when the service URL is opened
// in a browser.
func (s *Server) landing(c *gin.Context) {
	page := fmt.Sprintf(landingPage,
		time.Now().UTC().Format(time.RFC3339),
		version.Short(),
	)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// metrics renders a small operator page. The numbers come from the Go
// runtime, the process table, and the pipeline counters.
func (s *Server) metrics(c *gin.Context) {
	var mem runtime.MemStats

	runtime.ReadMemStats(&mem)

	processes := 0
	if list, err := ps.Processes(); err == nil {
		processes = len(list)
	} else {
		logger.WarnKV(c.Request.Context(), "process inventory unavailable", "error", err)
	}

	st := s.status.Status()

	page := fmt.Sprintf(metricsPage,
		version.Full(),
		time.Since(s.started).Round(time.Second),
		runtime.NumGoroutine(),
		mem.Alloc/1024,
		mem.Sys/1024,
		processes,
		st.State,
		st.QueueDepth,
		st.QueueCapacity,
		st.Received,
		st.Dispatched,
		st.Submitted,
		st.Failed,
	)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
