package token

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/portfolio-labs/advisory-scheduler/internal/models"
)

type Repository interface {
	SaveToken(
		ctx context.Context,
		t *models.RefreshToken,
	) error

	// GetByValue reports an InvalidToken error for unknown values.
	GetByValue(
		ctx context.Context,
		value string,
	) (*models.RefreshToken, error)

	// RotateToken revokes old and persists next in one transaction.
	// When old was already revoked by a concurrent rotation the call
	// fails with RevokedToken and next is not persisted.
	RotateToken(
		ctx context.Context,
		old *models.RefreshToken,
		next *models.RefreshToken,
	) error

	RevokeToken(
		ctx context.Context,
		value string,
		at time.Time,
	) error

	RevokeAllForUser(
		ctx context.Context,
		userID uuid.UUID,
		at time.Time,
	) error

	GetUser(
		ctx context.Context,
		id uuid.UUID,
	) (*models.User, error)
}
