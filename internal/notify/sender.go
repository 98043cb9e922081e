package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/iamnidhikrishna/EduNLP-X/internal/obs/retry"
)

// EmailSender is what the Sender needs from the transport. *Mailer
// satisfies it; tests plug in a recorder.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SenderConfig struct {
	// FrontendBaseURL is where the verification and reset links point,
	// e.g. "https://app.edunlpx.example".
	FrontendBaseURL string `mapstructure:"frontend_base_url"`
}

// Sender composes the account emails and delivers them with retries. It
// implements the orchestrator's Notifier port.
type Sender struct {
	mail EmailSender
	cfg  SenderConfig
	log  *zap.Logger
}

func NewSender(mail EmailSender, cfg SenderConfig, log *zap.Logger) *Sender {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sender{mail: mail, cfg: cfg, log: log.With(zap.String("component", "notify.sender"))}
}

func (s *Sender) SendVerificationEmail(ctx context.Context, email, name, tokenValue string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", s.cfg.FrontendBaseURL, tokenValue)
	body := fmt.Sprintf(
		"Hello %s!\n\n"+
			"Welcome to EduNLP-X. Please confirm your email address by opening the link below:\n\n"+
			"%s\n\n"+
			"The link is valid for 24 hours. If you did not create an account, you can ignore this email.\n\n"+
			"— EduNLP-X",
		name, link,
	)
	return s.deliver(ctx, email, "Verify your EduNLP-X account", body)
}

func (s *Sender) SendPasswordResetEmail(ctx context.Context, email, name, tokenValue string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.FrontendBaseURL, tokenValue)
	body := fmt.Sprintf(
		"Hello %s!\n\n"+
			"We received a request to reset your EduNLP-X password. Open the link below to choose a new one:\n\n"+
			"%s\n\n"+
			"The link is valid for 1 hour. If you did not request a reset, no action is needed; your password is unchanged.\n\n"+
			"— EduNLP-X",
		name, link,
	)
	return s.deliver(ctx, email, "Reset your EduNLP-X password", body)
}

func (s *Sender) deliver(ctx context.Context, to, subject, body string) error {
	return retry.Do(ctx, func() error {
		return s.mail.Send(ctx, to, subject, body)
	}, retry.DefaultEmailPolicy(s.log))
}
