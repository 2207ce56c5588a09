package handlers

import (
	"context"
	"net/http"
	"time"

	"darkops-lab/internal/service"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	Service *service.StatusService
	// Ping reports storage reachability for /health. Nil means always up.
	Ping func(ctx context.Context) error
}

func NewStatusHandler(s *service.StatusService, ping func(ctx context.Context) error) *StatusHandler {
	return &StatusHandler{Service: s, Ping: ping}
}

type statusCheckRequest struct {
	ClientName string `json:"client_name" binding:"required"`
}

func (h *StatusHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "DarkOps Lab API"})
}

func (h *StatusHandler) CreateStatusCheck(c *gin.Context) {
	var req statusCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	check, err := h.Service.CreateStatusCheck(c.Request.Context(), req.ClientName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, check)
}

func (h *StatusHandler) ListStatusChecks(c *gin.Context) {
	checks, err := h.Service.ListStatusChecks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, checks)
}

func (h *StatusHandler) Health(c *gin.Context) {
	if h.Ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "details": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
