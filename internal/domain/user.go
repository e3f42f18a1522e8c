// internal/domain/user.go
package domain

import "time"

// User represents a registered account.
type User struct {
	ID           int64     `db:"id" json:"id"`                 // Primary key, BIGSERIAL in DB
	AuthnID      []byte    `db:"authn_id" json:"-"`            // Optional external identity reference
	Email        string    `db:"email" json:"email"`           // Unique email
	PasswordHash string    `db:"password_hash" json:"-"`       // bcrypt hash, never serialized
	CreatedAt    time.Time `db:"created_at" json:"created_at"` // Timestamp of creation
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"` // Timestamp of last update
}

// NewUser creates a new User instance with the given credential hash.
func NewUser(email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// UserSession is the single live session of a user. The user_id column
// carries a unique index, so a user can never hold two rows.
type UserSession struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Token     string    `db:"token" json:"token"` // Opaque bearer credential (a stored JWT)
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SessionTTL is the freshness window after which a session counts as outdated.
const SessionTTL = time.Hour

// Outdated reports whether the session fell out of the freshness window at
// the given instant. A session created exactly SessionTTL ago is still fresh.
func (s *UserSession) Outdated(now time.Time) bool {
	return s.CreatedAt.Before(now.Add(-SessionTTL))
}
