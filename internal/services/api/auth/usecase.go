package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	coreauth "github.com/iamnidhikrishna/EduNLP-X/internal/auth"
	"github.com/iamnidhikrishna/EduNLP-X/internal/domain"
	"github.com/iamnidhikrishna/EduNLP-X/internal/domain/token"
	"github.com/iamnidhikrishna/EduNLP-X/internal/domain/user"
	"github.com/iamnidhikrishna/EduNLP-X/internal/obs"
)

var (
	ErrDuplicateEmail         = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidToken           = errors.New("invalid token")
	ErrInvalidOrExpiredToken  = errors.New("invalid or expired token")
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")

	// ErrWeakPassword is surfaced unchanged from the strength policy.
	ErrWeakPassword = coreauth.ErrWeakPassword
)

// Transactor scopes a flow's reads and writes to one database transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier delivers account emails. Calls are fire-and-forget: delivery
// failure never rolls back the token that was created for the email.
type Notifier interface {
	SendVerificationEmail(ctx context.Context, email, name, tokenValue string) error
	SendPasswordResetEmail(ctx context.Context, email, name, tokenValue string) error
}

type Config struct {
	SingleUseTokenBytes int
	Now                 func() time.Time
}

// Usecase composes the hasher, the token codec, and the single-use token
// store into the register/login/refresh/verify/reset flows. It keeps no
// state between calls; everything lives in the user and token records.
type Usecase struct {
	users    user.Repo
	profiles user.ProfileRepo
	tokens   token.Repo
	tx       Transactor
	hasher   *coreauth.Hasher
	codec    *coreauth.Codec
	notifier Notifier
	log      *zap.Logger
	cfg      Config
}

func NewUsecase(
	users user.Repo,
	profiles user.ProfileRepo,
	tokens token.Repo,
	tx Transactor,
	hasher *coreauth.Hasher,
	codec *coreauth.Codec,
	notifier Notifier,
	log *zap.Logger,
	cfg Config,
) *Usecase {
	if cfg.SingleUseTokenBytes <= 0 {
		cfg.SingleUseTokenBytes = 32
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{
		users:    users,
		profiles: profiles,
		tokens:   tokens,
		tx:       tx,
		hasher:   hasher,
		codec:    codec,
		notifier: notifier,
		log:      log.With(zap.String("component", "auth.usecase")),
		cfg:      cfg,
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Role        user.Role
	PhoneNumber string
}

// Register creates an unverified, active user with an empty profile.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*user.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := coreauth.ValidatePasswordStrength(in.Password); err != nil {
		return nil, err
	}
	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = user.RoleStudent
	}
	newUser := &user.User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		PhoneNumber:  in.PhoneNumber,
		IsActive:     true,
		IsVerified:   false,
	}

	err = u.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := u.users.Create(ctx, newUser); err != nil {
			return err
		}
		return u.profiles.Create(ctx, user.DefaultProfile(newUser.ID))
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	mRegistered.Inc()
	u.log.Info("user registered", zap.String("email", newUser.Email))
	return newUser, nil
}

// Login verifies credentials and mints an access+refresh pair. A missing
// user, an inactive account, and a wrong password all collapse into
// ErrInvalidCredentials so callers cannot enumerate accounts.
func (u *Usecase) Login(ctx context.Context, email, password string) (*user.User, string, string, error) {
	email = normalizeEmail(email)

	// The generic error hides the reason from the caller; the trace-tagged
	// log keeps it for operators.
	log := obs.WithTrace(ctx, u.log)

	rec, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		mLoginFailed.Inc()
		log.Warn("login: unknown email", zap.String("email", email))
		return nil, "", "", ErrInvalidCredentials
	}
	if !u.hasher.Check(password, rec.PasswordHash) {
		mLoginFailed.Inc()
		log.Warn("login: password mismatch", zap.String("email", email))
		return nil, "", "", ErrInvalidCredentials
	}
	if !rec.IsActive {
		mLoginFailed.Inc()
		log.Warn("login: inactive account", zap.String("email", email))
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := u.codec.IssuePair(rec.ID, rec.Email)
	if err != nil {
		return nil, "", "", fmt.Errorf("issue tokens: %w", err)
	}

	if err := u.users.TouchLastLogin(ctx, rec.ID); err != nil {
		log.Warn("login: touch last login", zap.Error(err))
	}

	mLoginOK.Inc()
	return rec, access, refresh, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The previous
// access token does not need to still be valid.
func (u *Usecase) Refresh(ctx context.Context, refreshToken string) (*user.User, string, string, error) {
	claims, err := u.codec.Verify(refreshToken, coreauth.TokenRefresh)
	if err != nil {
		return nil, "", "", ErrInvalidToken
	}

	rec, err := u.users.GetByID(ctx, claims.UserID())
	if err != nil || !rec.IsActive {
		return nil, "", "", ErrInvalidToken
	}

	access, refresh, err := u.codec.IssuePair(rec.ID, rec.Email)
	if err != nil {
		return nil, "", "", fmt.Errorf("issue tokens: %w", err)
	}
	return rec, access, refresh, nil
}

// CurrentUser resolves an access token to its active user.
func (u *Usecase) CurrentUser(ctx context.Context, accessToken string) (*user.User, error) {
	claims, err := u.codec.Verify(accessToken, coreauth.TokenAccess)
	if err != nil {
		return nil, ErrInvalidToken
	}
	rec, err := u.users.GetByID(ctx, claims.UserID())
	if err != nil || !rec.IsActive {
		return nil, ErrInvalidToken
	}
	return rec, nil
}

// SendVerification issues a fresh EMAIL_VERIFICATION token and hands it to
// the notifier. Already-verified users get a silent success.
func (u *Usecase) SendVerification(ctx context.Context, userID uuid.UUID) error {
	rec, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if rec.IsVerified {
		return nil
	}

	tok, err := u.createToken(ctx, rec.ID, token.KindEmailVerification)
	if err != nil {
		return fmt.Errorf("create verification token: %w", err)
	}

	u.sendAsync("verification email", func(ctx context.Context) error {
		return u.notifier.SendVerificationEmail(ctx, rec.Email, rec.FullName(), tok.Value)
	})
	return nil
}

// VerifyEmail consumes a verification token and marks the user verified.
// Consumption and the user update commit together.
func (u *Usecase) VerifyEmail(ctx context.Context, tokenValue string) error {
	err := u.tx.WithTx(ctx, func(ctx context.Context) error {
		tok, err := u.tokens.FindValid(ctx, tokenValue, token.KindEmailVerification)
		if err != nil {
			return ErrInvalidOrExpiredToken
		}
		if err := u.tokens.Consume(ctx, tok.ID); err != nil {
			return ErrInvalidOrExpiredToken
		}
		rec, err := u.users.GetByID(ctx, tok.UserID)
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		rec.IsVerified = true
		return u.users.Update(ctx, rec)
	})
	if err != nil {
		return err
	}
	mVerified.Inc()
	return nil
}

// ForgotPassword always reports success. Whether the account exists, is
// inactive, or the store fails, the caller sees the same result; the real
// outcome is only logged.
func (u *Usecase) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	log := obs.WithTrace(ctx, u.log)

	rec, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		log.Info("forgot password: no such account", zap.String("email", email))
		return nil
	}
	if !rec.IsActive {
		log.Info("forgot password: inactive account", zap.String("email", email))
		return nil
	}

	var tok *token.SingleUseToken
	err = u.tx.WithTx(ctx, func(ctx context.Context) error {
		// At most one active reset token per user: retire the others first.
		if err := u.tokens.InvalidateActive(ctx, rec.ID, token.KindPasswordReset); err != nil {
			return err
		}
		tok, err = u.createToken(ctx, rec.ID, token.KindPasswordReset)
		return err
	})
	if err != nil {
		log.Error("forgot password: issue reset token", zap.Error(err))
		return nil
	}

	u.sendAsync("password reset email", func(ctx context.Context) error {
		return u.notifier.SendPasswordResetEmail(ctx, rec.Email, rec.FullName(), tok.Value)
	})
	return nil
}

// ResetPassword redeems a reset token and replaces the credential. The
// token lookup, consumption, and password write share one transaction, so
// of two concurrent redemptions exactly one succeeds.
func (u *Usecase) ResetPassword(ctx context.Context, tokenValue, newPassword string) error {
	if err := coreauth.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}
	// Hash before entering the transaction: bcrypt is deliberately slow
	// and must not run under row locks.
	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = u.tx.WithTx(ctx, func(ctx context.Context) error {
		tok, err := u.tokens.FindValid(ctx, tokenValue, token.KindPasswordReset)
		if err != nil {
			return ErrInvalidOrExpiredToken
		}
		if err := u.tokens.Consume(ctx, tok.ID); err != nil {
			return ErrInvalidOrExpiredToken
		}
		rec, err := u.users.GetByID(ctx, tok.UserID)
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		rec.PasswordHash = hash
		return u.users.Update(ctx, rec)
	})
	if err != nil {
		return err
	}
	mPasswordReset.Inc()
	return nil
}

// ChangePassword replaces the credential after the caller proves knowledge
// of the current one.
func (u *Usecase) ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword string) error {
	rec, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if !u.hasher.Check(current, rec.PasswordHash) {
		u.log.Warn("change password: current mismatch", zap.String("email", rec.Email))
		return ErrInvalidCurrentPassword
	}
	if err := coreauth.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}
	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	rec.PasswordHash = hash
	if err := u.users.Update(ctx, rec); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Deactivate soft-disables the account. Outstanding bearer tokens keep
// failing CurrentUser/Refresh from this point on.
func (u *Usecase) Deactivate(ctx context.Context, userID uuid.UUID) error {
	rec, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	rec.IsActive = false
	if err := u.users.Update(ctx, rec); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	u.log.Info("account deactivated", zap.String("email", rec.Email))
	return nil
}

func (u *Usecase) createToken(ctx context.Context, userID uuid.UUID, kind token.Kind) (*token.SingleUseToken, error) {
	value, err := coreauth.NewSingleUseValue(u.cfg.SingleUseTokenBytes)
	if err != nil {
		return nil, err
	}
	tok := &token.SingleUseToken{
		UserID:    userID,
		Value:     value,
		Kind:      kind,
		ExpiresAt: u.cfg.Now().Add(kind.TTL()),
	}
	if err := u.tokens.Create(ctx, tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// sendAsync hands an email off to the notifier without tying its fate to
// the calling request.
func (u *Usecase) sendAsync(what string, send func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := send(ctx); err != nil {
			mEmailFailed.Inc()
			u.log.Error("send "+what, zap.Error(err))
		}
	}()
}
