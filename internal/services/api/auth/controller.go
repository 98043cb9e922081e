package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iamnidhikrishna/EduNLP-X/internal/domain/user"
)

const ctxUserKey = "auth.user"

// Controller exposes the auth flows over HTTP. It does request binding and
// status mapping only; every decision lives in the Usecase.
type Controller struct {
	uc  *Usecase
	log *zap.Logger
}

func NewController(uc *Usecase, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{uc: uc, log: log.With(zap.String("component", "auth.controller"))}
}

func (c *Controller) Register(r gin.IRouter) {
	g := r.Group("/auth")
	g.POST("/register", c.register)
	g.POST("/login", c.login)
	g.POST("/refresh", c.refresh)
	g.POST("/logout", c.logout)
	g.POST("/verify-email", c.verifyEmail)
	g.POST("/forgot-password", c.forgotPassword)
	g.POST("/reset-password", c.resetPassword)

	authed := g.Group("", c.RequireUser())
	authed.GET("/me", c.me)
	authed.POST("/send-verification", c.sendVerification)
	authed.POST("/change-password", c.changePassword)
	authed.POST("/deactivate", c.deactivate)
}

// RequireUser authenticates the request with the bearer access token and
// stashes the user in the gin context.
func (c *Controller) RequireUser() gin.HandlerFunc {
	return func(g *gin.Context) {
		raw := bearerToken(g.GetHeader("Authorization"))
		if raw == "" {
			g.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		u, err := c.uc.CurrentUser(g.Request.Context(), raw)
		if err != nil {
			g.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}
		g.Set(ctxUserKey, u)
		g.Next()
	}
}

// CurrentUser returns the user set by RequireUser.
func CurrentUser(g *gin.Context) (*user.User, bool) {
	v, ok := g.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

type registerRequest struct {
	Email       string    `json:"email" binding:"required,email"`
	Password    string    `json:"password" binding:"required"`
	FirstName   string    `json:"first_name" binding:"required"`
	LastName    string    `json:"last_name" binding:"required"`
	Role        user.Role `json:"role"`
	PhoneNumber string    `json:"phone_number"`
}

func (c *Controller) register(g *gin.Context) {
	var req registerRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := c.uc.Register(g.Request.Context(), RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		c.fail(g, err)
		return
	}
	g.JSON(http.StatusCreated, u)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	TokenType    string     `json:"token_type"`
	User         *user.User `json:"user"`
}

func (c *Controller) login(g *gin.Context) {
	var req loginRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, access, refresh, err := c.uc.Login(g.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, tokenResponse{AccessToken: access, RefreshToken: refresh, TokenType: "bearer", User: u})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (c *Controller) refresh(g *gin.Context) {
	var req refreshRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, access, refresh, err := c.uc.Refresh(g.Request.Context(), req.RefreshToken)
	if err != nil {
		c.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, tokenResponse{AccessToken: access, RefreshToken: refresh, TokenType: "bearer", User: u})
}

// logout is a client-side operation with stateless JWTs: the client drops
// its tokens. Server-side revocation would need a denylist, which is an
// extension point, not part of this core.
func (c *Controller) logout(g *gin.Context) {
	g.JSON(http.StatusOK, gin.H{"message": "successfully logged out"})
}

func (c *Controller) me(g *gin.Context) {
	u, ok := CurrentUser(g)
	if !ok {
		g.JSON(http.StatusInternalServerError, gin.H{"error": "user missing from context"})
		return
	}
	g.JSON(http.StatusOK, u)
}

func (c *Controller) sendVerification(g *gin.Context) {
	u, ok := CurrentUser(g)
	if !ok {
		g.JSON(http.StatusInternalServerError, gin.H{"error": "user missing from context"})
		return
	}
	if err := c.uc.SendVerification(g.Request.Context(), u.ID); err != nil {
		c.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, gin.H{"message": "verification email sent"})
}

type verifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

func (c *Controller) verifyEmail(g *gin.Context) {
	var req verifyEmailRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := c.uc.VerifyEmail(g.Request.Context(), req.Token); err != nil {
		c.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, gin.H{"message": "email verified"})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

func (c *Controller) forgotPassword(g *gin.Context) {
	var req forgotPasswordRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Always the same answer: the flow never reveals whether the account
	// exists.
	_ = c.uc.ForgotPassword(g.Request.Context(), req.Email)
	g.JSON(http.StatusOK, gin.H{"message": "if the account exists, a reset email has been sent"})
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (c *Controller) resetPassword(g *gin.Context) {
	var req resetPasswordRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := c.uc.ResetPassword(g.Request.Context(), req.Token, req.NewPassword); err != nil {
		c.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, gin.H{"message": "password reset"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

func (c *Controller) changePassword(g *gin.Context) {
	u, ok := CurrentUser(g)
	if !ok {
		g.JSON(http.StatusInternalServerError, gin.H{"error": "user missing from context"})
		return
	}
	var req changePasswordRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := c.uc.ChangePassword(g.Request.Context(), u.ID, req.CurrentPassword, req.NewPassword); err != nil {
		c.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

func (c *Controller) deactivate(g *gin.Context) {
	u, ok := CurrentUser(g)
	if !ok {
		g.JSON(http.StatusInternalServerError, gin.H{"error": "user missing from context"})
		return
	}
	if err := c.uc.Deactivate(g.Request.Context(), u.ID); err != nil {
		c.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, gin.H{"message": "account deactivated"})
}

// fail maps usecase errors onto HTTP statuses. Anything unrecognized is a
// logged 500 with a generic body.
func (c *Controller) fail(g *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrWeakPassword):
		g.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrDuplicateEmail):
		g.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidCredentials):
		g.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect email or password"})
	case errors.Is(err, ErrInvalidToken):
		g.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	case errors.Is(err, ErrInvalidOrExpiredToken):
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired token"})
	case errors.Is(err, ErrInvalidCurrentPassword):
		g.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.log.Error("unhandled error", zap.Error(err))
		g.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
