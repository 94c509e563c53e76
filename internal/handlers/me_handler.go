package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/portfolio-labs/advisory-scheduler/internal/httperr"
	"github.com/portfolio-labs/advisory-scheduler/internal/middleware"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := middleware.UserID(c)

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "")
		return
	}

	c.JSON(http.StatusOK, user)
}
