package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Role         Role       `json:"role"`
	PhoneNumber  string     `json:"phone_number,omitempty"`
	IsActive     bool       `json:"is_active"`
	IsVerified   bool       `json:"is_verified"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Profile holds per-user learning state. Created empty at registration,
// filled in as the student uses the platform.
type Profile struct {
	ID            uuid.UUID      `json:"id"`
	UserID        uuid.UUID      `json:"user_id"`
	ProgressData  map[string]any `json:"progress_data"`
	StudyGoals    map[string]any `json:"study_goals"`
	Notifications map[string]any `json:"notification_preferences"`
	UIPreferences map[string]any `json:"ui_preferences"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// DefaultProfile returns the empty profile attached to a freshly
// registered user.
func DefaultProfile(userID uuid.UUID) *Profile {
	return &Profile{
		UserID:       userID,
		ProgressData: map[string]any{},
		StudyGoals:   map[string]any{},
		Notifications: map[string]any{
			"email_notifications": true,
			"push_notifications":  true,
			"quiz_reminders":      true,
		},
		UIPreferences: map[string]any{
			"theme":    "light",
			"language": "en",
		},
	}
}
