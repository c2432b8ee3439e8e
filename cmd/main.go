package main

import (
	"log/slog"
	"os"

	application "github.com/eighttenaric/gmc-editor/application"
	configs "github.com/eighttenaric/gmc-editor/configs"
	redisdb "github.com/eighttenaric/gmc-editor/internal/database/redis"
	"github.com/eighttenaric/gmc-editor/internal/session"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	config, err := configs.LoadConfig(".")
	if err != nil {
		panic(err)
	}

	// Sessions live in Redis when configured, otherwise in process memory.
	// Use REDIS_URL if available (Dokku), otherwise build from individual params
	var sessions session.Store
	var redisClient *redisdb.Client
	switch {
	case config.RedisURL != "":
		redisClient, err = redisdb.NewClientFromURL(config.RedisURL)
	case config.RedisHost != "":
		redisClient, err = redisdb.NewClient(redisdb.Config{
			Host:     config.RedisHost,
			Port:     config.RedisPort,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})
	}
	if err != nil {
		panic("error starting redis: " + err.Error())
	}
	if redisClient != nil {
		defer redisClient.Close()
		sessions = session.NewRedisStore(redisClient.Client)
	} else {
		sessions = session.NewMemoryStore()
	}

	// Configure encoder
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	// Console core: all levels (Info+) to stdout
	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	consoleCore := zapcore.NewCore(
		consoleEncoder,
		zapcore.AddSync(os.Stdout),
		zap.InfoLevel,
	)

	var logger *zap.Logger

	// If log path is configured, add file core for Warn+ only
	if config.LogPath != "" {
		logFile, err := os.OpenFile(config.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			panic("failed to open log file: " + err.Error())
		}

		// File encoder without colors
		fileEncoderConfig := encoderConfig
		fileEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder // No colors for file
		fileEncoder := zapcore.NewConsoleEncoder(fileEncoderConfig)

		// File core: only Warn and Error levels
		fileCore := zapcore.NewCore(
			fileEncoder,
			zapcore.AddSync(logFile),
			zap.WarnLevel,
		)

		// Combine both cores
		logger = zap.New(zapcore.NewTee(consoleCore, fileCore))
	} else {
		logger = zap.New(consoleCore)
	}
	defer logger.Sync()

	app := application.Application{
		Config:   *config,
		Logger:   logger,
		Sessions: sessions,
	}

	if err := app.Run(app.Mount()); err != nil {
		slog.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
