package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/iamnidhikrishna/EduNLP-X/internal/domain/token"
)

var _ token.Repo = (*TokenRepo)(nil)

// TokenRepo persists single-use verification and reset tokens.
type TokenRepo struct {
	db *DB
}

func NewTokenRepo(db *DB) *TokenRepo { return &TokenRepo{db: db} }

const (
	qTokenInsert = `
INSERT INTO single_use_tokens (user_id, token_value, kind, expires_at)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at;`

	qTokenFindValid = `
SELECT id, user_id, token_value, kind, created_at, expires_at, used_at
FROM single_use_tokens
WHERE token_value = $1 AND kind = $2 AND used_at IS NULL AND expires_at > NOW()
LIMIT 1;`

	// The WHERE clause re-checks validity so two concurrent consumers of
	// the same token cannot both succeed: the row lock serializes them and
	// the loser matches zero rows.
	qTokenConsume = `
UPDATE single_use_tokens
SET used_at = NOW()
WHERE id = $1 AND used_at IS NULL AND expires_at > NOW();`

	qTokenInvalidateActive = `
UPDATE single_use_tokens
SET used_at = NOW()
WHERE user_id = $1 AND kind = $2 AND used_at IS NULL AND expires_at > NOW();`
)

func (r *TokenRepo) Create(ctx context.Context, t *token.SingleUseToken) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	row := r.db.execQueryer(ctx).QueryRow(ctx, qTokenInsert, t.UserID, t.Value, t.Kind, t.ExpiresAt)
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return fmt.Errorf("token insert: %w", mapErr(err))
	}
	return nil
}

func (r *TokenRepo) FindValid(ctx context.Context, value string, kind token.Kind) (*token.SingleUseToken, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var t token.SingleUseToken
	if err := scanToken(r.db.execQueryer(ctx).QueryRow(ctx, qTokenFindValid, value, kind), &t); err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (r *TokenRepo) Consume(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.execQueryer(ctx).Exec(ctx, qTokenConsume, id)
	if err != nil {
		return fmt.Errorf("token consume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TokenRepo) InvalidateActive(ctx context.Context, userID uuid.UUID, kind token.Kind) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.execQueryer(ctx).Exec(ctx, qTokenInvalidateActive, userID, kind); err != nil {
		return fmt.Errorf("token invalidate: %w", err)
	}
	return nil
}

func scanToken(row pgx.Row, out *token.SingleUseToken) error {
	return row.Scan(&out.ID, &out.UserID, &out.Value, &out.Kind, &out.CreatedAt, &out.ExpiresAt, &out.UsedAt)
}
