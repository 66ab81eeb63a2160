package consultation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medtrack/consult-api/internal/handler"
	"github.com/medtrack/consult-api/internal/model"
	"github.com/medtrack/consult-api/internal/service/consultation"
	apperrors "github.com/medtrack/consult-api/pkg/errors"
)

type Handler struct {
	svc *consultation.Service
}

func NewHandler(svc *consultation.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the consultation endpoints. Reads are open to any
// authenticated account; writes additionally pass the given permission
// check.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, write gin.HandlerFunc) {
	r.GET("/psych_consultas", h.List)
	r.GET("/psych_consultas/:id", h.Get)
	r.POST("/psych_consultas", write, h.Create)
	r.PUT("/psych_consultas/:id", write, h.Replace)
	r.PATCH("/psych_consultas/:id", write, h.Patch)
	r.DELETE("/psych_consultas/:id", write, h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindError(c, err)
		return
	}

	created, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := consultationID(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	found, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *Handler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	consultations, err := h.svc.List(c.Request.Context(), skip, limit)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, consultations)
}

func (h *Handler) Replace(c *gin.Context) {
	id, err := consultationID(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	var req model.ReplaceConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindError(c, err)
		return
	}

	updated, err := h.svc.Replace(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) Patch(c *gin.Context) {
	id, err := consultationID(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	var req model.PatchConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindError(c, err)
		return
	}

	updated, err := h.svc.Patch(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := consultationID(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Consultation deleted successfully"})
}

// consultationID parses the path parameter. A non-numeric id can never
// name a stored record, so it reads as not found rather than bad request.
func consultationID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NotFound("consultation")
	}
	return id, nil
}
