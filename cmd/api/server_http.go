package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	coreauth "github.com/iamnidhikrishna/EduNLP-X/internal/auth"
	config "github.com/iamnidhikrishna/EduNLP-X/internal/config/api"
	"github.com/iamnidhikrishna/EduNLP-X/internal/notify"
	"github.com/iamnidhikrishna/EduNLP-X/internal/obs"
	pg "github.com/iamnidhikrishna/EduNLP-X/internal/repository/postgres"
	authsvc "github.com/iamnidhikrishna/EduNLP-X/internal/services/api/auth"
	learningsvc "github.com/iamnidhikrishna/EduNLP-X/internal/services/api/learning"
	usersvc "github.com/iamnidhikrishna/EduNLP-X/internal/services/api/user"
)

func buildHTTPServer(cfg *config.Config, logger *zap.Logger, db *pg.DB) *http.Server {
	users := pg.NewUserRepo(db)
	profiles := pg.NewProfileRepo(db)
	tokens := pg.NewTokenRepo(db)
	tx := pg.NewTransactor(db, logger)

	hasher := coreauth.NewHasher(cfg.Auth.BcryptCost)
	codec := coreauth.NewCodec(coreauth.CodecConfig{
		Secret:     []byte(cfg.Auth.JWTSecret),
		AccessTTL:  cfg.Auth.AccessTTL,
		RefreshTTL: cfg.Auth.RefreshTTL,
	})

	mailer := notify.NewMailer(cfg.SMTP, logger)
	sender := notify.NewSender(mailer, cfg.Notify, logger)

	authUC := authsvc.NewUsecase(users, profiles, tokens, tx, hasher, codec, sender, logger, authsvc.Config{})
	authCtrl := authsvc.NewController(authUC, logger)

	userUC := usersvc.NewUsecase(users, profiles, logger)
	userCtrl := usersvc.NewController(userUC, logger)

	learningCtrl := learningsvc.NewController()

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/healthz", func(g *gin.Context) {
		hctx, cancel := context.WithTimeout(g.Request.Context(), 500*time.Millisecond)
		defer cancel()
		if err := db.Pool.Ping(hctx); err != nil {
			g.String(http.StatusServiceUnavailable, "unhealthy: db")
			return
		}
		g.String(http.StatusOK, "ok")
	})

	api := engine.Group("/api")
	authCtrl.Register(api)
	userCtrl.Register(api, authCtrl.RequireUser())
	learningCtrl.Register(api, authCtrl.RequireUser())

	handler := otelhttp.NewHandler(engine, "api", otelhttp.WithSpanNameFormatter(
		func(_ string, r *http.Request) string { return r.Method + " " + r.URL.Path },
	))

	return &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
}

func buildMetricsServer(cfg *config.Config, logger *zap.Logger, db *pg.DB) *http.Server {
	return obs.BootstrapMetricsServer(cfg.Server.MetricsAddr, func(ctx context.Context) error {
		return db.Pool.Ping(ctx)
	}, logger)
}

func serveHTTP(srv *http.Server, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("http listening", zap.String("addr", cfg.Server.HTTPAddr))
	return srv.ListenAndServe()
}
