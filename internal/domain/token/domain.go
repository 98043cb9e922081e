package token

import (
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes the two single-use token families. The values are
// stored verbatim in the database.
type Kind string

const (
	KindEmailVerification Kind = "EMAIL_VERIFICATION"
	KindPasswordReset     Kind = "PASSWORD_RESET"
)

// TTL returns the validity window for a freshly issued token of this kind.
func (k Kind) TTL() time.Duration {
	if k == KindPasswordReset {
		return time.Hour
	}
	return 24 * time.Hour
}

// SingleUseToken is a persisted verification or password-reset token.
// A token is valid iff UsedAt is nil and the expiry is in the future;
// consumption sets UsedAt and is never reversed.
type SingleUseToken struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Value     string     `json:"-"`
	Kind      Kind       `json:"kind"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

func (t *SingleUseToken) Valid(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
