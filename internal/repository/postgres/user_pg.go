// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"exptr-api/internal/domain"
	"exptr-api/internal/repository"
	"exptr-api/internal/util"

	"github.com/jmoiron/sqlx"
)

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct {
	// Methods receive a DBExecutor directly, so no connection is stored here.
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{}
}

// CreateUser inserts a new user using the provided DBExecutor.
func (r *UserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `INSERT INTO users (authn_id, email, password_hash, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query, user.AuthnID, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", mapError(err))
	}
	return nil
}

// UpdateUser overwrites the user's mutable fields by id.
func (r *UserRepository) UpdateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `UPDATE users SET email = $1, password_hash = $2, updated_at = $3 WHERE id = $4`
	result, err := q.ExecContext(ctx, query, user.Email, user.PasswordHash, user.UpdatedAt, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", user.ID, mapError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating user %d: %w", user.ID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("update user %d: %w", user.ID, util.ErrNotFound)
	}
	return nil
}

// GetUserByID retrieves a user by their ID using the provided DBExecutor.
func (r *UserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, authn_id, email, password_hash, created_at, updated_at FROM users WHERE id = $1`
	err := q.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by their email using the provided DBExecutor.
func (r *UserRepository) GetUserByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, authn_id, email, password_hash, created_at, updated_at FROM users WHERE email = $1`
	err := q.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email '%s': %w", email, err)
	}
	return &user, nil
}

// SetSession installs or refreshes the user's session in one statement.
// The unique index on user_id makes the upsert race-free under concurrent
// logins; created_at is only written on first insert.
func (r *UserRepository) SetSession(ctx context.Context, q repository.DBExecutor, userID int64, sessionToken string, now time.Time) error {
	query := `INSERT INTO user_sessions (user_id, token, created_at, updated_at)
              VALUES ($1, $2, $3, $3)
              ON CONFLICT (user_id) DO UPDATE SET token = EXCLUDED.token, updated_at = EXCLUDED.updated_at`
	if _, err := q.ExecContext(ctx, query, userID, sessionToken, now); err != nil {
		return fmt.Errorf("failed to set session for user %d: %w", userID, mapError(err))
	}
	return nil
}

// GetSessionByToken resolves a bearer token to its session row.
func (r *UserRepository) GetSessionByToken(ctx context.Context, q repository.DBExecutor, sessionToken string) (*domain.UserSession, error) {
	var session domain.UserSession
	query := `SELECT id, user_id, token, created_at, updated_at FROM user_sessions WHERE token = $1`
	err := q.GetContext(ctx, &session, query, sessionToken)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session by token: %w", err)
	}
	return &session, nil
}

// GetSessionByUserID retrieves the user's live session.
func (r *UserRepository) GetSessionByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.UserSession, error) {
	var session domain.UserSession
	query := `SELECT id, user_id, token, created_at, updated_at FROM user_sessions WHERE user_id = $1`
	err := q.GetContext(ctx, &session, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session for user %d: %w", userID, err)
	}
	return &session, nil
}

// DeleteSession removes the user's session row. Idempotent.
func (r *UserRepository) DeleteSession(ctx context.Context, q repository.DBExecutor, userID int64) error {
	query := `DELETE FROM user_sessions WHERE user_id = $1`
	if _, err := q.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete session for user %d: %w", userID, err)
	}
	return nil
}

// DeleteOutdatedSessions purges sessions created strictly before olderThan.
// A session created exactly at the boundary survives.
func (r *UserRepository) DeleteOutdatedSessions(ctx context.Context, q repository.DBExecutor, olderThan time.Time) (int64, error) {
	query := `DELETE FROM user_sessions WHERE created_at < $1`
	result, err := q.ExecContext(ctx, query, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to delete outdated sessions: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected after deleting outdated sessions: %w", err)
	}
	return rowsAffected, nil
}
