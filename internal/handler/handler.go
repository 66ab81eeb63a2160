package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler hosts the operational endpoints that belong to no domain.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
