package token

import (
	"context"

	"github.com/google/uuid"
)

// Repo persists single-use tokens. FindValid only filters on the stored
// value and kind; Consume is the operation that atomically flips a
// still-valid token to used, so callers redeem by consuming, not by
// re-checking what FindValid returned.
type Repo interface {
	Create(ctx context.Context, t *SingleUseToken) error
	FindValid(ctx context.Context, value string, kind Kind) (*SingleUseToken, error)
	Consume(ctx context.Context, id uuid.UUID) error
	InvalidateActive(ctx context.Context, userID uuid.UUID, kind Kind) error
}
