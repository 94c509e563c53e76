package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/portfolio-labs/advisory-scheduler/internal/httperr"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
	ucAdvisory "github.com/portfolio-labs/advisory-scheduler/internal/usecase/advisory"
)

type AdminHandler struct {
	db   *gorm.DB
	list *ucAdvisory.ListAdvisories
}

func NewAdminHandler(db *gorm.DB, list *ucAdvisory.ListAdvisories) *AdminHandler {
	return &AdminHandler{db: db, list: list}
}

// ListAdvisories is the admin overview across all programmers, newest
// first, optionally filtered by status.
func (h *AdminHandler) ListAdvisories(c *gin.Context) {
	limit, offset := pagination(c)
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	q := h.db.Model(&models.Advisory{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var advisories []models.Advisory
	if err := q.
		Order("scheduled_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&advisories).Error; err != nil {
		httperr.Internal(c, "failed_to_list_advisories", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  advisories,
		"total": len(advisories),
	})
}

func (h *AdminHandler) Stats(c *gin.Context) {
	counts, err := h.list.CountByStatus(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"advisories_by_status": counts})
}
