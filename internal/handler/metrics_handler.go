package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/brgy-tracker-api/internal/dto"
	"github.com/noah-isme/brgy-tracker-api/internal/service"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// Ping implements Pinger.
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	checks  map[string]Pinger
	logger  *zap.Logger
}

// NewMetricsHandler constructs a metrics handler. checks are consulted by
// Ready, keyed by dependency name.
func NewMetricsHandler(metrics *service.MetricsService, checks map[string]Pinger, logger *zap.Logger) *MetricsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetricsHandler{metrics: metrics, checks: checks, logger: logger}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health godoc
// @Summary Liveness probe
// @Tags Meta
// @Produce json
// @Success 200 {object} dto.HealthStatus
// @Router /health [get]
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthStatus{Status: "ok"})
}

// Ready godoc
// @Summary Readiness probe
// @Tags Meta
// @Produce json
// @Success 200 {object} dto.HealthStatus
// @Failure 503 {object} dto.HealthStatus
// @Router /ready [get]
func (h *MetricsHandler) Ready(c *gin.Context) {
	status := dto.HealthStatus{Status: "ready", Checks: make(map[string]string, len(h.checks))}
	code := http.StatusOK
	for name, check := range h.checks {
		if err := check.Ping(c.Request.Context()); err != nil {
			h.logger.Warn("readiness check failed", zap.String("check", name), zap.Error(err))
			status.Checks[name] = "unavailable"
			status.Status = "unavailable"
			code = http.StatusServiceUnavailable
			continue
		}
		status.Checks[name] = "ok"
	}
	c.JSON(code, status)
}
