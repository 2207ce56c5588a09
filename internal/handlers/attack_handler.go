package handlers

import (
	"net/http"

	"darkops-lab/internal/service"

	"github.com/gin-gonic/gin"
)

type AttackHandler struct {
	Service *service.AttackService
}

func NewAttackHandler(s *service.AttackService) *AttackHandler {
	return &AttackHandler{Service: s}
}

func (h *AttackHandler) ListAttacks(c *gin.Context) {
	attacks, err := h.Service.ListAttacks(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attacks)
}

func (h *AttackHandler) GetAttack(c *gin.Context) {
	attack, err := h.Service.GetAttack(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attack)
}

func (h *AttackHandler) ReloadCatalog(c *gin.Context) {
	if err := h.Service.Reload(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
