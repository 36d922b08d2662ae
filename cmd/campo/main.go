package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/campo-minato/internal/app"
	"github.com/vancomm/campo-minato/internal/config"
	"github.com/vancomm/campo-minato/internal/mines"
)

func setupMinesLog(logger *slog.Logger) {
	level := logrus.InfoLevel
	if config.Development() {
		level = logrus.DebugLevel
		mines.Log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		mines.Log.SetFormatter(&logrus.JSONFormatter{})
	}
	mines.Log.SetLevel(level)

	path := config.LogFile()
	if path == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		logger.Error("unable to open game log file", slog.String("path", path), slog.Any("error", err))
		return
	}
	mines.Log.AddHook(hook)
}

func main() {
	envErr := godotenv.Load()

	var logger *slog.Logger
	if config.Development() {
		logger = slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		)
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	if envErr != nil && !os.IsNotExist(envErr) {
		logger.Warn("unable to load .env", slog.Any("error", envErr))
	}

	setupMinesLog(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(logger)
	if err != nil {
		logger.Error("failed to configure server", slog.Any("error", err))
		os.Exit(1)
	}

	if err := a.Start(ctx); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
