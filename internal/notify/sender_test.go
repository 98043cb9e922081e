package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	failFirst int
	calls     int
	to        string
	subject   string
	body      string
}

func (r *recordingSender) Send(_ context.Context, to, subject, body string) error {
	r.calls++
	if r.calls <= r.failFirst {
		return errors.New("connection refused")
	}
	r.to, r.subject, r.body = to, subject, body
	return nil
}

func TestSender_VerificationEmail(t *testing.T) {
	rec := &recordingSender{}
	s := NewSender(rec, SenderConfig{FrontendBaseURL: "https://app.example"}, nil)

	err := s.SendVerificationEmail(context.Background(), "a@b.com", "Ann Lee", "tok-123")
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", rec.to)
	assert.Contains(t, rec.subject, "Verify")
	assert.Contains(t, rec.body, "https://app.example/verify-email?token=tok-123")
	assert.Contains(t, rec.body, "Ann Lee")
}

func TestSender_ResetEmail(t *testing.T) {
	rec := &recordingSender{}
	s := NewSender(rec, SenderConfig{FrontendBaseURL: "https://app.example"}, nil)

	err := s.SendPasswordResetEmail(context.Background(), "a@b.com", "Ann Lee", "tok-456")
	require.NoError(t, err)

	assert.Contains(t, rec.body, "https://app.example/reset-password?token=tok-456")
}

func TestSender_RetriesTransientFailure(t *testing.T) {
	rec := &recordingSender{failFirst: 2}
	s := NewSender(rec, SenderConfig{FrontendBaseURL: "https://app.example"}, nil)

	err := s.SendVerificationEmail(context.Background(), "a@b.com", "Ann Lee", "tok-789")
	require.NoError(t, err)
	assert.Equal(t, 3, rec.calls)
}
