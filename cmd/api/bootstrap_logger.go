package main

import (
	"go.uber.org/zap"

	config "github.com/iamnidhikrishna/EduNLP-X/internal/config/api"
	"github.com/iamnidhikrishna/EduNLP-X/internal/obs"
)

func initLogger(cfg *config.Config) (*zap.Logger, error) {
	return obs.NewLogger(*cfg.Log.AsLoggerConfig(cfg.App))
}
