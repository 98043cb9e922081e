// Package user implements profile management on top of the auth core:
// viewing and updating the account, its learning profile, and the
// dashboard summary.
package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iamnidhikrishna/EduNLP-X/internal/domain/user"
)

type Usecase struct {
	users    user.Repo
	profiles user.ProfileRepo
	log      *zap.Logger
}

func NewUsecase(users user.Repo, profiles user.ProfileRepo, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{users: users, profiles: profiles, log: log.With(zap.String("component", "user.usecase"))}
}

type UpdateInput struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
}

func (u *Usecase) Update(ctx context.Context, userID uuid.UUID, in UpdateInput) (*user.User, error) {
	rec, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if in.FirstName != nil {
		rec.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		rec.LastName = *in.LastName
	}
	if in.PhoneNumber != nil {
		rec.PhoneNumber = *in.PhoneNumber
	}
	if err := u.users.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return rec, nil
}

func (u *Usecase) Profile(ctx context.Context, userID uuid.UUID) (*user.Profile, error) {
	return u.profiles.GetByUserID(ctx, userID)
}

type ProfileUpdateInput struct {
	ProgressData  map[string]any
	StudyGoals    map[string]any
	Notifications map[string]any
	UIPreferences map[string]any
}

func (u *Usecase) UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileUpdateInput) (*user.Profile, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if in.ProgressData != nil {
		p.ProgressData = in.ProgressData
	}
	if in.StudyGoals != nil {
		p.StudyGoals = in.StudyGoals
	}
	if in.Notifications != nil {
		p.Notifications = in.Notifications
	}
	if in.UIPreferences != nil {
		p.UIPreferences = in.UIPreferences
	}
	if err := u.profiles.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

type Dashboard struct {
	User    *user.User    `json:"user"`
	Profile *user.Profile `json:"profile"`
}

func (u *Usecase) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	rec, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &Dashboard{User: rec, Profile: p}, nil
}
