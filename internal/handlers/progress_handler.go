package handlers

import (
	"net/http"

	"darkops-lab/internal/service"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	Service *service.ProgressService
}

func NewProgressHandler(s *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{Service: s}
}

// Step and time values are stored as sent; only presence is checked.
type progressRequest struct {
	SessionID   string `json:"session_id" binding:"required"`
	AttackID    string `json:"attack_id" binding:"required"`
	CurrentStep *int   `json:"current_step" binding:"required"`
	TimeSpent   *int   `json:"time_spent"`
}

func (h *ProgressHandler) RecordProgress(c *gin.Context) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	timeSpent := 0
	if req.TimeSpent != nil {
		timeSpent = *req.TimeSpent
	}

	progress, err := h.Service.RecordProgress(c.Request.Context(), req.SessionID, req.AttackID, *req.CurrentStep, timeSpent)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *ProgressHandler) GetProgress(c *gin.Context) {
	records, err := h.Service.GetProgress(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
