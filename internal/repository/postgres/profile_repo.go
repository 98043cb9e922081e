package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/iamnidhikrishna/EduNLP-X/internal/domain/user"
)

var _ user.ProfileRepo = (*ProfileRepo)(nil)

type ProfileRepo struct {
	db *DB
}

func NewProfileRepo(db *DB) *ProfileRepo { return &ProfileRepo{db: db} }

const (
	qProfileInsert = `
INSERT INTO user_profiles (user_id, progress_data, study_goals, notification_preferences, ui_preferences)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at;`

	qProfileByUserID = `
SELECT id, user_id, progress_data, study_goals, notification_preferences, ui_preferences, created_at, updated_at
FROM user_profiles
WHERE user_id = $1;`

	qProfileUpdate = `
UPDATE user_profiles
SET progress_data            = $2,
    study_goals              = $3,
    notification_preferences = $4,
    ui_preferences           = $5,
    updated_at               = NOW()
WHERE user_id = $1
RETURNING id, user_id, progress_data, study_goals, notification_preferences, ui_preferences, created_at, updated_at;`
)

func (r *ProfileRepo) Create(ctx context.Context, p *user.Profile) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	row := r.db.execQueryer(ctx).QueryRow(ctx, qProfileInsert,
		p.UserID, p.ProgressData, p.StudyGoals, p.Notifications, p.UIPreferences)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("profile insert: %w", mapErr(err))
	}
	return nil
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*user.Profile, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var p user.Profile
	if err := scanProfile(r.db.execQueryer(ctx).QueryRow(ctx, qProfileByUserID, userID), &p); err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *ProfileRepo) Update(ctx context.Context, p *user.Profile) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	row := r.db.execQueryer(ctx).QueryRow(ctx, qProfileUpdate,
		p.UserID, p.ProgressData, p.StudyGoals, p.Notifications, p.UIPreferences)
	if err := scanProfile(row, p); err != nil {
		return fmt.Errorf("profile update: %w", mapErr(err))
	}
	return nil
}

func scanProfile(row pgx.Row, out *user.Profile) error {
	return row.Scan(&out.ID, &out.UserID, &out.ProgressData, &out.StudyGoals,
		&out.Notifications, &out.UIPreferences, &out.CreatedAt, &out.UpdatedAt)
}
