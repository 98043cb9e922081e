package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iamnidhikrishna/EduNLP-X/internal/domain"
	authsvc "github.com/iamnidhikrishna/EduNLP-X/internal/services/api/auth"
)

type Controller struct {
	uc  *Usecase
	log *zap.Logger
}

func NewController(uc *Usecase, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{uc: uc, log: log.With(zap.String("component", "user.controller"))}
}

// Register mounts the profile routes. requireUser comes from the auth
// controller so the whole group shares one authentication path.
func (c *Controller) Register(r gin.IRouter, requireUser gin.HandlerFunc) {
	g := r.Group("/users", requireUser)
	g.PUT("/me", c.update)
	g.GET("/me/profile", c.profile)
	g.PUT("/me/profile", c.updateProfile)
	g.GET("/me/dashboard", c.dashboard)
}

type updateRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
}

func (c *Controller) update(g *gin.Context) {
	u, ok := authsvc.CurrentUser(g)
	if !ok {
		g.JSON(http.StatusInternalServerError, gin.H{"error": "user missing from context"})
		return
	}
	var req updateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := c.uc.Update(g.Request.Context(), u.ID, UpdateInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		c.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, rec)
}

func (c *Controller) profile(g *gin.Context) {
	u, ok := authsvc.CurrentUser(g)
	if !ok {
		g.JSON(http.StatusInternalServerError, gin.H{"error": "user missing from context"})
		return
	}
	p, err := c.uc.Profile(g.Request.Context(), u.ID)
	if err != nil {
		c.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, p)
}

type profileUpdateRequest struct {
	ProgressData  map[string]any `json:"progress_data"`
	StudyGoals    map[string]any `json:"study_goals"`
	Notifications map[string]any `json:"notification_preferences"`
	UIPreferences map[string]any `json:"ui_preferences"`
}

func (c *Controller) updateProfile(g *gin.Context) {
	u, ok := authsvc.CurrentUser(g)
	if !ok {
		g.JSON(http.StatusInternalServerError, gin.H{"error": "user missing from context"})
		return
	}
	var req profileUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := c.uc.UpdateProfile(g.Request.Context(), u.ID, ProfileUpdateInput{
		ProgressData:  req.ProgressData,
		StudyGoals:    req.StudyGoals,
		Notifications: req.Notifications,
		UIPreferences: req.UIPreferences,
	})
	if err != nil {
		c.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, p)
}

func (c *Controller) dashboard(g *gin.Context) {
	u, ok := authsvc.CurrentUser(g)
	if !ok {
		g.JSON(http.StatusInternalServerError, gin.H{"error": "user missing from context"})
		return
	}
	d, err := c.uc.Dashboard(g.Request.Context(), u.ID)
	if err != nil {
		c.fail(g, err)
		return
	}
	g.JSON(http.StatusOK, d)
}

func (c *Controller) fail(g *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		g.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.log.Error("unhandled error", zap.Error(err))
	g.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
