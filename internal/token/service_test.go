package token

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-labs/advisory-scheduler/internal/apperr"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"

	"github.com/google/uuid"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type memTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.RefreshToken
	users  map[uuid.UUID]*models.User
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{
		tokens: make(map[string]*models.RefreshToken),
		users:  make(map[uuid.UUID]*models.User),
	}
}

func (r *memTokenRepo) addUser() *models.User {
	u := &models.User{
		ID:     uuid.New(),
		Email:  uuid.NewString() + "@example.com",
		Name:   "token user",
		Role:   models.RoleExternal,
		Active: true,
	}
	r.users[u.ID] = u
	return u
}

func (r *memTokenRepo) SaveToken(_ context.Context, t *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *t
	r.tokens[t.Token] = &copied
	return nil
}

func (r *memTokenRepo) GetByValue(_ context.Context, value string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[value]
	if !ok {
		return nil, apperr.InvalidToken("invalid_token", "refresh token is not recognized")
	}
	copied := *t
	return &copied, nil
}

func (r *memTokenRepo) RotateToken(
	_ context.Context,
	old *models.RefreshToken,
	next *models.RefreshToken,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tokens[old.Token]
	if !ok {
		return apperr.InvalidToken("invalid_token", "refresh token is not recognized")
	}
	if stored.RevokedAt != nil {
		return apperr.RevokedToken("token_revoked", "refresh token was already rotated")
	}

	stored.RevokedAt = old.RevokedAt
	stored.ReplacedByToken = old.ReplacedByToken

	copied := *next
	r.tokens[next.Token] = &copied
	return nil
}

func (r *memTokenRepo) RevokeToken(_ context.Context, value string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tokens[value]
	if !ok {
		return apperr.InvalidToken("invalid_token", "refresh token is not recognized")
	}
	if stored.RevokedAt == nil {
		stored.RevokedAt = &at
	}
	return nil
}

func (r *memTokenRepo) RevokeAllForUser(_ context.Context, userID uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &at
		}
	}
	return nil
}

func (r *memTokenRepo) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFound("user_not_found", "user does not exist")
	}
	copied := *u
	return &copied, nil
}

var _ Repository = (*memTokenRepo)(nil)

func newTestService(repo Repository, clk fixedClock) *Service {
	return NewService(repo, "test-secret", 15*time.Minute, 7*24*time.Hour, clk)
}

func TestAccessTokens(t *testing.T) {
	repo := newMemTokenRepo()
	user := repo.addUser()

	// The jwt library checks expiry against the wall clock, so the
	// issuing clock has to sit near real time here.
	svc := newTestService(repo, fixedClock{now: time.Now()})

	t.Run("issued token round-trips its claims", func(t *testing.T) {
		value, err := svc.IssueAccessToken(user)
		require.NoError(t, err)

		claims, err := svc.ParseAccessToken(value)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.Email, claims.Email)
		assert.Equal(t, user.Role, claims.Role)
	})

	t.Run("a token signed with another secret is invalid", func(t *testing.T) {
		other := NewService(repo, "other-secret", 15*time.Minute, 7*24*time.Hour, fixedClock{now: time.Now()})
		value, err := other.IssueAccessToken(user)
		require.NoError(t, err)

		_, err = svc.ParseAccessToken(value)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidToken))
	})

	t.Run("garbage is invalid", func(t *testing.T) {
		_, err := svc.ParseAccessToken("not-a-jwt")
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidToken))
	})

	t.Run("an expired token is reported as expired", func(t *testing.T) {
		stale := newTestService(repo, fixedClock{now: time.Now().Add(-time.Hour)})
		value, err := stale.IssueAccessToken(user)
		require.NoError(t, err)

		_, err = svc.ParseAccessToken(value)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindExpiredToken))
		assert.Equal(t, "token_expired", apperr.CodeOf(err))
	})
}

func TestRefreshTokenLifecycle(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	setup := func() (*memTokenRepo, *Service, *models.User) {
		repo := newMemTokenRepo()
		user := repo.addUser()
		return repo, newTestService(repo, fixedClock{now: now}), user
	}

	t.Run("create then validate resolves the owner", func(t *testing.T) {
		_, svc, user := setup()

		created, err := svc.CreateRefreshToken(context.Background(), user)
		require.NoError(t, err)
		assert.True(t, created.Usable(now))

		got, owner, err := svc.ValidateRefreshToken(context.Background(), created.Token)
		require.NoError(t, err)
		assert.Equal(t, created.Token, got.Token)
		assert.Equal(t, user.ID, owner.ID)
	})

	t.Run("unknown value is invalid", func(t *testing.T) {
		_, svc, _ := setup()

		_, _, err := svc.ValidateRefreshToken(context.Background(), uuid.NewString())
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidToken))
	})

	t.Run("rotation revokes the old token and links its successor", func(t *testing.T) {
		repo, svc, user := setup()

		old, err := svc.CreateRefreshToken(context.Background(), user)
		require.NoError(t, err)

		next, err := svc.RotateRefreshToken(context.Background(), old)
		require.NoError(t, err)
		assert.NotEqual(t, old.Token, next.Token)

		stored, err := repo.GetByValue(context.Background(), old.Token)
		require.NoError(t, err)
		require.NotNil(t, stored.RevokedAt)
		require.NotNil(t, stored.ReplacedByToken)
		assert.Equal(t, next.Token, *stored.ReplacedByToken)

		// The successor validates, the rotated original does not.
		_, _, err = svc.ValidateRefreshToken(context.Background(), next.Token)
		require.NoError(t, err)

		_, _, err = svc.ValidateRefreshToken(context.Background(), old.Token)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindRevokedToken))
	})

	t.Run("a token can be rotated only once", func(t *testing.T) {
		_, svc, user := setup()

		old, err := svc.CreateRefreshToken(context.Background(), user)
		require.NoError(t, err)

		first := *old
		_, err = svc.RotateRefreshToken(context.Background(), &first)
		require.NoError(t, err)

		replay := *old
		_, err = svc.RotateRefreshToken(context.Background(), &replay)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindRevokedToken))
	})

	t.Run("revocation wins over expiry", func(t *testing.T) {
		_, svc, user := setup()

		created, err := svc.CreateRefreshToken(context.Background(), user)
		require.NoError(t, err)
		require.NoError(t, svc.RevokeToken(context.Background(), created.Token))

		// Validate well past expiry; the revoked state must still be
		// what gets reported.
		late := newTestService(svc.repo, fixedClock{now: now.Add(30 * 24 * time.Hour)})
		_, _, err = late.ValidateRefreshToken(context.Background(), created.Token)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindRevokedToken))
	})

	t.Run("an expired token is reported as expired", func(t *testing.T) {
		_, svc, user := setup()

		created, err := svc.CreateRefreshToken(context.Background(), user)
		require.NoError(t, err)

		late := newTestService(svc.repo, fixedClock{now: now.Add(30 * 24 * time.Hour)})
		_, _, err = late.ValidateRefreshToken(context.Background(), created.Token)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindExpiredToken))
	})

	t.Run("revoke all invalidates every live token for the user", func(t *testing.T) {
		_, svc, user := setup()

		first, err := svc.CreateRefreshToken(context.Background(), user)
		require.NoError(t, err)
		second, err := svc.CreateRefreshToken(context.Background(), user)
		require.NoError(t, err)

		require.NoError(t, svc.RevokeAllForUser(context.Background(), user.ID))

		for _, value := range []string{first.Token, second.Token} {
			_, _, err := svc.ValidateRefreshToken(context.Background(), value)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.KindRevokedToken))
		}
	})
}
