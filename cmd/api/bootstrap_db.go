package main

import (
	"context"

	config "github.com/iamnidhikrishna/EduNLP-X/internal/config/api"
	pg "github.com/iamnidhikrishna/EduNLP-X/internal/repository/postgres"
)

func initDB(ctx context.Context, cfg *config.Config) (*pg.DB, error) {
	return pg.NewDB(ctx, cfg.DB)
}
