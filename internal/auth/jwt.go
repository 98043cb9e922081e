package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenKind tags a bearer token as access or refresh. Verification checks
// the kind so the two can never be swapped.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

type Claims struct {
	jwt.RegisteredClaims
	Email string    `json:"email"`
	Kind  TokenKind `json:"kind"`
}

type CodecConfig struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Now        func() time.Time
}

// Codec signs and verifies bearer tokens with HS256. It is stateless and
// safe for concurrent use.
type Codec struct {
	cfg CodecConfig
}

func NewCodec(cfg CodecConfig) *Codec {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 30 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Codec{cfg: cfg}
}

func (c *Codec) Issue(userID uuid.UUID, email string, kind TokenKind) (string, error) {
	ttl := c.cfg.AccessTTL
	if kind == TokenRefresh {
		ttl = c.cfg.RefreshTTL
	}
	now := c.cfg.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
		Kind:  kind,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.cfg.Secret)
}

// IssuePair mints an access and a refresh token. The two are independently
// signed and independently verifiable.
func (c *Codec) IssuePair(userID uuid.UUID, email string) (access, refresh string, err error) {
	if access, err = c.Issue(userID, email, TokenAccess); err != nil {
		return "", "", err
	}
	if refresh, err = c.Issue(userID, email, TokenRefresh); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Verify parses the token and checks signature, expiry, and kind. Every
// failure collapses into ErrInvalidToken; callers treat it uniformly as
// unauthenticated.
func (c *Codec) Verify(tokenString string, expected TokenKind) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.cfg.Secret, nil
	}, jwt.WithTimeFunc(c.cfg.Now))
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Kind != expected {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// UserID returns the subject as a UUID. Verify has already checked that
// it parses.
func (cl *Claims) UserID() uuid.UUID {
	id, _ := uuid.Parse(cl.Subject)
	return id
}
