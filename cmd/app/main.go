package main

import (
	"MunBotGolang/internal/config"
	"MunBotGolang/pkg/log"
	"MunBotGolang/pkg/redis"
	"MunBotGolang/pkg/smtp"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	sessionStore := redis.New()
	smtpMailer := smtp.New()

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithDatabase(),
		config.WithSessionStore(sessionStore),
		config.WithSMTPMailer(smtpMailer),
		config.WithMiddleware(),
		config.WithWhatsappClient(),
		config.WithGeminiClient(),
		config.WithIntentClassifier(),
		config.WithFAQMatcher(),
		config.WithFulfillmentClients(),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	if err := server.RegisterHandler(); err != nil {
		logger.Fatal(err)
	}

	jobsCtx, cancelJobs := context.WithCancel(context.Background())
	server.RunJobs(jobsCtx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")
	cancelJobs()
}
