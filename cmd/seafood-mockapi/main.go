package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/todayseafood/seafood/internal/logging"
	"github.com/todayseafood/seafood/internal/mockapi"
	"github.com/todayseafood/seafood/pkg/version"
	"go.uber.org/zap"
)

func main() {
	// A .env file in the working directory is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatal(err)
	}

	config, err := mockapi.GetConfigFromEnvironment()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(config.Log)
	defer logger.Sync() // nolint: errcheck

	logger.Info(
		"Starting 오늘의 수산 mock API server",
		zap.String("version", version.Version()),
		zap.String("commit", version.Commit()),
	)

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	if err := mockapi.NewServer(config, logger).ListenAndServe(ctx); err != nil {
		logger.Fatal("mock API server stopped", zap.Error(err))
	}
}
