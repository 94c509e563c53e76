package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/portfolio-labs/advisory-scheduler/internal/httperr"
	"github.com/portfolio-labs/advisory-scheduler/internal/middleware"
	ucAdvisory "github.com/portfolio-labs/advisory-scheduler/internal/usecase/advisory"
)

// ======================================================
// HANDLER
// ======================================================

type AdvisoryHandler struct {
	create   *ucAdvisory.CreateAdvisory
	approve  *ucAdvisory.ApproveAdvisory
	reject   *ucAdvisory.RejectAdvisory
	cancel   *ucAdvisory.CancelAdvisory
	complete *ucAdvisory.CompleteAdvisory
	list     *ucAdvisory.ListAdvisories
}

func NewAdvisoryHandler(
	create *ucAdvisory.CreateAdvisory,
	approve *ucAdvisory.ApproveAdvisory,
	reject *ucAdvisory.RejectAdvisory,
	cancel *ucAdvisory.CancelAdvisory,
	complete *ucAdvisory.CompleteAdvisory,
	list *ucAdvisory.ListAdvisories,
) *AdvisoryHandler {
	return &AdvisoryHandler{
		create:   create,
		approve:  approve,
		reject:   reject,
		cancel:   cancel,
		complete: complete,
		list:     list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAdvisoryRequest struct {
	ProgrammerID string    `json:"programmer_id" binding:"required"`
	ScheduledAt  time.Time `json:"scheduled_at" binding:"required"`
	Comment      string    `json:"comment"`
}

type AdvisoryActionRequest struct {
	Message string `json:"message"`
}

// ======================================================
// HELPERS
// ======================================================

// bindOptionalJSON fills req when a body is present. The message on an
// approve or reject is optional, so an absent body is not an error;
// only malformed JSON is.
func bindOptionalJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func pagination(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return limit, offset
}

func advisoryID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_advisory_id", "")
		return uuid.Nil, false
	}
	return id, true
}

// ======================================================
// EXTERNAL SIDE
// ======================================================

func (h *AdvisoryHandler) Create(c *gin.Context) {
	var req CreateAdvisoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	programmerID, err := uuid.Parse(req.ProgrammerID)
	if err != nil {
		httperr.BadRequest(c, "invalid_programmer_id", "")
		return
	}

	adv, err := h.create.Execute(c.Request.Context(), ucAdvisory.CreateAdvisoryInput{
		ExternalID:   middleware.UserID(c),
		ProgrammerID: programmerID,
		ScheduledAt:  req.ScheduledAt,
		Comment:      req.Comment,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, adv)
}

func (h *AdvisoryHandler) ListMine(c *gin.Context) {
	limit, offset := pagination(c)

	advisories, err := h.list.ForExternal(c.Request.Context(), middleware.UserID(c), limit, offset)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, advisories)
}

func (h *AdvisoryHandler) Cancel(c *gin.Context) {
	id, ok := advisoryID(c)
	if !ok {
		return
	}

	adv, err := h.cancel.Execute(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, adv)
}

// ======================================================
// PROGRAMMER SIDE
// ======================================================

func (h *AdvisoryHandler) ListForProgrammer(c *gin.Context) {
	limit, offset := pagination(c)

	advisories, err := h.list.ForProgrammer(
		c.Request.Context(),
		middleware.UserID(c),
		c.Query("status"),
		limit,
		offset,
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, advisories)
}

func (h *AdvisoryHandler) Approve(c *gin.Context) {
	id, ok := advisoryID(c)
	if !ok {
		return
	}

	var req AdvisoryActionRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	adv, err := h.approve.Execute(c.Request.Context(), id, middleware.UserID(c), req.Message)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, adv)
}

func (h *AdvisoryHandler) Reject(c *gin.Context) {
	id, ok := advisoryID(c)
	if !ok {
		return
	}

	var req AdvisoryActionRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	adv, err := h.reject.Execute(c.Request.Context(), id, middleware.UserID(c), req.Message)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, adv)
}

func (h *AdvisoryHandler) Complete(c *gin.Context) {
	id, ok := advisoryID(c)
	if !ok {
		return
	}

	adv, err := h.complete.Execute(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, adv)
}
