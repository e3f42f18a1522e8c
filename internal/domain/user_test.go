// internal/domain/user_test.go
package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserSessionOutdated(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		outdated  bool
	}{
		{"fresh session", now.Add(-30 * time.Minute), false},
		// The boundary is exclusive: exactly one hour old still counts as fresh.
		{"exactly at the freshness boundary", now.Add(-SessionTTL), false},
		{"one second past the boundary", now.Add(-SessionTTL - time.Second), true},
		{"long dead", now.Add(-24 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &UserSession{CreatedAt: tt.createdAt}
			assert.Equal(t, tt.outdated, s.Outdated(now))
		})
	}
}

func TestNewUser(t *testing.T) {
	user := NewUser("a@x.com", "hash")
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}
