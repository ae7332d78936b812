package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Generator string    `json:"generator,omitempty"`
}

type HealthHandler struct {
	serviceName  string
	version      string
	hasGenerator bool
}

func NewHealthHandler(serviceName, version string, hasGenerator bool) *HealthHandler {
	return &HealthHandler{
		serviceName:  serviceName,
		version:      version,
		hasGenerator: hasGenerator,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	generatorStatus := "configured"
	if !h.hasGenerator {
		generatorStatus = "missing_api_key"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Generator: generatorStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
