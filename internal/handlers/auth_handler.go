package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/portfolio-labs/advisory-scheduler/internal/config"
	"github.com/portfolio-labs/advisory-scheduler/internal/httperr"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
	"github.com/portfolio-labs/advisory-scheduler/internal/token"
)

type AuthHandler struct {
	db     *gorm.DB
	tokens *token.Service
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, tokens *token.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = models.RoleExternal
	}
	if role != models.RoleExternal && role != models.RoleProgrammer {
		httperr.BadRequest(c, "invalid_role", "role must be EXTERNAL or PROGRAMMER")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "an account with that email already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "")
		return
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         role,
		Active:       true,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "")
		return
	}

	h.respondWithSession(c, http.StatusCreated, &user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "")
			return
		}
		httperr.Internal(c, "internal_error", "")
		return
	}

	if !user.Active {
		httperr.Unauthorized(c, "account_disabled", "")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "")
		return
	}

	h.respondWithSession(c, http.StatusOK, &user)
}

// Refresh exchanges a refresh token for a fresh access token and the
// next refresh token in the rotation chain. The presented token is
// single-use: it is revoked here and replaying it later fails.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()

	old, user, err := h.tokens.ValidateRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	next, err := h.tokens.RotateRefreshToken(ctx, old)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	accessToken, err := h.tokens.IssueAccessToken(user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": next.Token,
		"token_type":    "Bearer",
		"expires_in":    int64(h.config.AccessTokenTTL.Seconds()),
		"user":          userPayload(user),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.tokens.RevokeToken(c.Request.Context(), req.RefreshToken); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// --------- Helpers ---------

func (h *AuthHandler) respondWithSession(c *gin.Context, status int, user *models.User) {
	accessToken, err := h.tokens.IssueAccessToken(user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "")
		return
	}

	refreshToken, err := h.tokens.CreateRefreshToken(c.Request.Context(), user)
	if err != nil {
		httperr.Internal(c, "failed_to_create_refresh_token", "")
		return
	}

	c.JSON(status, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken.Token,
		"token_type":    "Bearer",
		"expires_in":    int64(h.config.AccessTokenTTL.Seconds()),
		"user":          userPayload(user),
	})
}

func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"phone": user.Phone,
		"role":  user.Role,
	}
}
