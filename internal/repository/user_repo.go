// internal/repository/user_repo.go
package repository

import (
	"context"
	"time"

	"exptr-api/internal/domain"
)

// UserRepository defines the interface for user and session data operations.
// Session rows live here rather than in a repository of their own because a
// session never exists apart from its user.
type UserRepository interface {
	// CreateUser adds a new user. A duplicate email surfaces util.ErrDuplicateEntry.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// UpdateUser overwrites email, password hash and updated_at by id.
	UpdateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByID retrieves a user by their ID.
	GetUserByID(ctx context.Context, q DBExecutor, id int64) (*domain.User, error)
	// GetUserByEmail retrieves a user by their email.
	GetUserByEmail(ctx context.Context, q DBExecutor, email string) (*domain.User, error)

	// SetSession installs the user's session token. The insert-or-update is a
	// single atomic statement, so concurrent logins cannot create two rows.
	// A refresh replaces the token and updated_at but keeps created_at.
	SetSession(ctx context.Context, q DBExecutor, userID int64, sessionToken string, now time.Time) error
	// GetSessionByToken resolves a bearer token to its session row.
	GetSessionByToken(ctx context.Context, q DBExecutor, sessionToken string) (*domain.UserSession, error)
	// GetSessionByUserID retrieves the user's live session, if any.
	GetSessionByUserID(ctx context.Context, q DBExecutor, userID int64) (*domain.UserSession, error)
	// DeleteSession removes the user's session. Deleting an absent session is a no-op.
	DeleteSession(ctx context.Context, q DBExecutor, userID int64) error
	// DeleteOutdatedSessions removes sessions created strictly before olderThan
	// and returns how many rows went away.
	DeleteOutdatedSessions(ctx context.Context, q DBExecutor, olderThan time.Time) (int64, error)
}
