package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/portfolio-labs/advisory-scheduler/internal/httperr"
	"github.com/portfolio-labs/advisory-scheduler/internal/middleware"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
	ucAvailability "github.com/portfolio-labs/advisory-scheduler/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	upsert     *ucAvailability.UpsertWindow
	deactivate *ucAvailability.DeactivateWindow
	list       *ucAvailability.ListWindows
}

func NewAvailabilityHandler(
	upsert *ucAvailability.UpsertWindow,
	deactivate *ucAvailability.DeactivateWindow,
	list *ucAvailability.ListWindows,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		upsert:     upsert,
		deactivate: deactivate,
		list:       list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type WindowRequest struct {
	DayOfWeek string `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

func (r WindowRequest) input() ucAvailability.WindowInput {
	return ucAvailability.WindowInput{
		DayOfWeek: models.DayOfWeek(r.DayOfWeek),
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AvailabilityHandler) List(c *gin.Context) {
	windows, err := h.list.ForOwner(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, windows)
}

func (h *AvailabilityHandler) Create(c *gin.Context) {
	var req WindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	w, err := h.upsert.Create(c.Request.Context(), middleware.UserID(c), req.input())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, w)
}

func (h *AvailabilityHandler) Update(c *gin.Context) {
	windowID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_window_id", "")
		return
	}

	var req WindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	w, err := h.upsert.Update(c.Request.Context(), windowID, middleware.UserID(c), req.input())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, w)
}

func (h *AvailabilityHandler) Deactivate(c *gin.Context) {
	windowID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_window_id", "")
		return
	}

	if err := h.deactivate.Execute(c.Request.Context(), windowID, middleware.UserID(c)); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
