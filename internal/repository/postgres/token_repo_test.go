package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamnidhikrishna/EduNLP-X/internal/domain/token"
)

func newMockTokenRepo(t *testing.T) (*TokenRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewTokenRepo(NewDBWithPool(mock)), mock
}

func TestTokenRepo_Consume(t *testing.T) {
	repo, mock := newMockTokenRepo(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE single_use_tokens`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.Consume(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepo_Consume_AlreadyUsed(t *testing.T) {
	repo, mock := newMockTokenRepo(t)
	id := uuid.New()

	// Zero rows matched: the token was consumed or expired in between.
	mock.ExpectExec(`UPDATE single_use_tokens`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Consume(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepo_FindValid(t *testing.T) {
	repo, mock := newMockTokenRepo(t)

	id := uuid.New()
	userID := uuid.New()
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"id", "user_id", "token_value", "kind", "created_at", "expires_at", "used_at"}).
		AddRow(id, userID, "value-1", token.KindPasswordReset, now, now.Add(time.Hour), nil)

	mock.ExpectQuery(`SELECT id, user_id, token_value, kind`).
		WithArgs("value-1", token.KindPasswordReset).
		WillReturnRows(rows)

	got, err := repo.FindValid(context.Background(), "value-1", token.KindPasswordReset)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, userID, got.UserID)
	assert.Nil(t, got.UsedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepo_FindValid_NotFound(t *testing.T) {
	repo, mock := newMockTokenRepo(t)

	mock.ExpectQuery(`SELECT id, user_id, token_value, kind`).
		WithArgs("missing", token.KindEmailVerification).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "token_value", "kind", "created_at", "expires_at", "used_at"}))

	_, err := repo.FindValid(context.Background(), "missing", token.KindEmailVerification)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepo_InvalidateActive(t *testing.T) {
	repo, mock := newMockTokenRepo(t)
	userID := uuid.New()

	mock.ExpectExec(`UPDATE single_use_tokens`).
		WithArgs(userID, token.KindPasswordReset).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	require.NoError(t, repo.InvalidateActive(context.Background(), userID, token.KindPasswordReset))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepo_Create(t *testing.T) {
	repo, mock := newMockTokenRepo(t)

	userID := uuid.New()
	expires := time.Now().UTC().Add(time.Hour)

	mock.ExpectQuery(`INSERT INTO single_use_tokens`).
		WithArgs(userID, "value-2", token.KindPasswordReset, expires).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.New(), time.Now().UTC()))

	tok := &token.SingleUseToken{UserID: userID, Value: "value-2", Kind: token.KindPasswordReset, ExpiresAt: expires}
	require.NoError(t, repo.Create(context.Background(), tok))
	assert.NotEqual(t, uuid.Nil, tok.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
