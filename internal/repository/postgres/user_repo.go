package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/iamnidhikrishna/EduNLP-X/internal/domain/user"
)

var _ user.Repo = (*UserRepo)(nil)

type UserRepo struct {
	db *DB
}

func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, email, password_hash, first_name, last_name, role,
       phone_number, is_active, is_verified, last_login_at, created_at, updated_at`

const (
	qUserInsert = `
INSERT INTO users (email, password_hash, first_name, last_name, role, phone_number, is_active, is_verified)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + userColumns + `;`

	qUserByID = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1;`

	qUserByEmail = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1;`

	qUserUpdate = `
UPDATE users
SET email         = $2,
    password_hash = $3,
    first_name    = $4,
    last_name     = $5,
    role          = $6,
    phone_number  = $7,
    is_active     = $8,
    is_verified   = $9,
    updated_at    = NOW()
WHERE id = $1
RETURNING ` + userColumns + `;`

	qUserTouchLogin = `
UPDATE users SET last_login_at = NOW() WHERE id = $1;`
)

func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	row := r.db.execQueryer(ctx).QueryRow(ctx, qUserInsert,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.PhoneNumber, u.IsActive, u.IsVerified)
	if err := scanUser(row, u); err != nil {
		return fmt.Errorf("user insert: %w", mapErr(err))
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var u user.User
	if err := scanUser(r.db.execQueryer(ctx).QueryRow(ctx, qUserByID, id), &u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var u user.User
	if err := scanUser(r.db.execQueryer(ctx).QueryRow(ctx, qUserByEmail, email), &u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, u *user.User) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	row := r.db.execQueryer(ctx).QueryRow(ctx, qUserUpdate,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.PhoneNumber, u.IsActive, u.IsVerified)
	if err := scanUser(row, u); err != nil {
		return fmt.Errorf("user update: %w", mapErr(err))
	}
	return nil
}

func (r *UserRepo) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.execQueryer(ctx).Exec(ctx, qUserTouchLogin, id); err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row, out *user.User) error {
	return row.Scan(
		&out.ID, &out.Email, &out.PasswordHash, &out.FirstName, &out.LastName, &out.Role,
		&out.PhoneNumber, &out.IsActive, &out.IsVerified, &out.LastLoginAt, &out.CreatedAt, &out.UpdatedAt,
	)
}
