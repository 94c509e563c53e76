package token

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/portfolio-labs/advisory-scheduler/internal/apperr"
	"github.com/portfolio-labs/advisory-scheduler/internal/clock"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
)

// AccessClaims is the identity carried by a signed access token.
type AccessClaims struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// Service issues stateless JWT access tokens and manages the rotating
// refresh-token chain.
type Service struct {
	repo       Repository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	clock      clock.Clock
}

func NewService(
	repo Repository,
	secret string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
	clk clock.Clock,
) *Service {
	return &Service{
		repo:       repo,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		clock:      clk,
	}
}

// --------- Access tokens (stateless) ---------

func (s *Service) IssueAccessToken(user *models.User) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.accessTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// ParseAccessToken verifies signature and expiry; validity is fully
// self-contained, nothing is looked up.
func (s *Service) ParseAccessToken(value string) (*AccessClaims, error) {
	t, err := jwt.Parse(value, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.ExpiredToken("token_expired", "access token expired")
		}
		return nil, apperr.InvalidToken("invalid_token", "access token is invalid")
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok || !t.Valid {
		return nil, apperr.InvalidToken("invalid_token_claims", "access token claims are invalid")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, apperr.InvalidToken("invalid_token_subject", "access token subject is invalid")
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &AccessClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
	}, nil
}

// --------- Refresh tokens (stateful, rotating) ---------

func (s *Service) CreateRefreshToken(
	ctx context.Context,
	user *models.User,
) (*models.RefreshToken, error) {

	now := s.clock.Now()
	t := &models.RefreshToken{
		ID:        uuid.New(),
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.refreshTTL),
		CreatedAt: now,
	}

	if err := s.repo.SaveToken(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// ValidateRefreshToken resolves a presented value to a usable token and
// its owner. Revocation is checked before expiry so a replayed rotated
// token is always reported as revoked.
func (s *Service) ValidateRefreshToken(
	ctx context.Context,
	value string,
) (*models.RefreshToken, *models.User, error) {

	t, err := s.repo.GetByValue(ctx, value)
	if err != nil {
		return nil, nil, err
	}

	if t.RevokedAt != nil {
		return nil, nil, apperr.RevokedToken("token_revoked", "refresh token was revoked")
	}

	if !t.ExpiresAt.After(s.clock.Now()) {
		return nil, nil, apperr.ExpiredToken("token_expired", "refresh token expired")
	}

	user, err := s.repo.GetUser(ctx, t.UserID)
	if err != nil {
		return nil, nil, err
	}

	return t, user, nil
}

// RotateRefreshToken enforces single-use semantics: the old token is
// revoked and linked to its successor in the same transaction.
func (s *Service) RotateRefreshToken(
	ctx context.Context,
	old *models.RefreshToken,
) (*models.RefreshToken, error) {

	now := s.clock.Now()
	next := &models.RefreshToken{
		ID:        uuid.New(),
		Token:     uuid.NewString(),
		UserID:    old.UserID,
		ExpiresAt: now.Add(s.refreshTTL),
		CreatedAt: now,
	}

	revokedAt := now
	old.RevokedAt = &revokedAt
	old.ReplacedByToken = &next.Token

	if err := s.repo.RotateToken(ctx, old, next); err != nil {
		return nil, err
	}

	return next, nil
}

func (s *Service) RevokeToken(ctx context.Context, value string) error {
	return s.repo.RevokeToken(ctx, value, s.clock.Now())
}

func (s *Service) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return s.repo.RevokeAllForUser(ctx, userID, s.clock.Now())
}
