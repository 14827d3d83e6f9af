package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Storage   string    `json:"storage,omitempty"`
}

// Pinger is satisfied by every storage backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	serviceName string
	version     string
	storage     Pinger
}

func NewHealthHandler(serviceName, version string, storage Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		storage:     storage,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	storageStatus := "disabled"
	if h.storage != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.storage.Ping(pingCtx); err != nil {
			storageStatus = "down"
		} else {
			storageStatus = "up"
		}
	}

	status := "healthy"
	code := http.StatusOK
	if storageStatus == "down" {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Storage:   storageStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
