package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/portfolio-labs/advisory-scheduler/internal/httperr"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
	ucAvailability "github.com/portfolio-labs/advisory-scheduler/internal/usecase/availability"
)

type PublicHandler struct {
	db      *gorm.DB
	windows *ucAvailability.ListWindows
}

func NewPublicHandler(db *gorm.DB, windows *ucAvailability.ListWindows) *PublicHandler {
	return &PublicHandler{db: db, windows: windows}
}

type programmerSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// ListProgrammers is the directory requesters browse before booking.
func (h *PublicHandler) ListProgrammers(c *gin.Context) {
	var programmers []programmerSummary
	if err := h.db.
		Model(&models.User{}).
		Where("role = ? AND active = true", models.RoleProgrammer).
		Order("name ASC").
		Scan(&programmers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_programmers", "")
		return
	}

	c.JSON(http.StatusOK, programmers)
}

func (h *PublicHandler) ProgrammerAvailability(c *gin.Context) {
	programmerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_programmer_id", "")
		return
	}

	windows, err := h.windows.Public(c.Request.Context(), programmerID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, windows)
}
