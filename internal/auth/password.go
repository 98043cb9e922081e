package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var ErrWeakPassword = errors.New("password is too weak")

// Hasher wraps bcrypt with a fixed cost. The cost is chosen at construction
// so hashing stays in the tens-of-milliseconds range; callers must not hold
// locks across Hash or Check.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Check reports whether plain matches digest. A malformed digest is just a
// mismatch, never an error surfaced to the caller.
func (h *Hasher) Check(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// ValidatePasswordStrength enforces the registration/reset policy:
// at least 8 characters with one upper, one lower, and one digit.
func ValidatePasswordStrength(plain string) error {
	if len(plain) < 8 {
		return fmt.Errorf("%w: must be at least 8 characters", ErrWeakPassword)
	}
	var upper, lower, digit bool
	for _, r := range plain {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		return fmt.Errorf("%w: must contain an uppercase letter", ErrWeakPassword)
	}
	if !lower {
		return fmt.Errorf("%w: must contain a lowercase letter", ErrWeakPassword)
	}
	if !digit {
		return fmt.Errorf("%w: must contain a digit", ErrWeakPassword)
	}
	return nil
}

// NewSingleUseValue returns a URL-safe random token value with nBytes of
// entropy. Verification and reset links embed it verbatim.
func NewSingleUseValue(nBytes int) (string, error) {
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
