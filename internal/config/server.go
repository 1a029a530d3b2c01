package config

import (
	"MunBotGolang/database/postgres"
	chatHandler "MunBotGolang/internal/api/chat/handler"
	chatRepository "MunBotGolang/internal/api/chat/repository"
	chatService "MunBotGolang/internal/api/chat/service"
	documentHandler "MunBotGolang/internal/api/document/handler"
	documentRepository "MunBotGolang/internal/api/document/repository"
	documentService "MunBotGolang/internal/api/document/service"
	"MunBotGolang/internal/fulfillment"
	"MunBotGolang/internal/jobs"
	"MunBotGolang/internal/middleware"
	"MunBotGolang/pkg/gemini"
	"MunBotGolang/pkg/nlp"
	"MunBotGolang/pkg/openai"
	"MunBotGolang/pkg/redis"
	"MunBotGolang/pkg/smtp"
	"MunBotGolang/pkg/utils"
	"MunBotGolang/pkg/whatsapp"
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine          *fiber.App
	db              *sqlx.DB
	log             *logrus.Logger
	middleware      middleware.Middleware
	validator       *validator.Validate
	utils           utils.IUtils
	handlers        []handler
	sessionStore    redis.ISessionStore
	smtpMailer      smtp.ItfSmtp
	whatsappClient  whatsapp.IWhatsappSender
	geminiClient    gemini.IGemini
	classifier      openai.IClassifier
	matcher         nlp.IMatcher
	complaintClient fulfillment.IComplaintClient
	schedulerClient fulfillment.ISchedulerClient
	docsClient      fulfillment.IDocsClient
	sweeper         *jobs.SessionSweeper
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithSessionStore(store redis.ISessionStore) ServerOption {
	return func(s *Server) error {
		s.sessionStore = store
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithWhatsappClient() ServerOption {
	return func(s *Server) error {
		if os.Getenv("DISABLE_WHATSAPP") == "true" {
			if s.log != nil {
				s.log.Warn("WhatsApp client disabled, staff notifications will be skipped")
			}
			return nil
		}

		client, err := whatsapp.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize WhatsApp client: %v", err)
			}
			return fmt.Errorf("failed to create WhatsApp client: %w", err)
		}
		s.whatsappClient = client
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithIntentClassifier() ServerOption {
	return func(s *Server) error {
		s.classifier = openai.NewClassifier()
		return nil
	}
}

func WithFAQMatcher() ServerOption {
	return func(s *Server) error {
		entries, err := chatService.LoadFAQEntries(os.Getenv("FAQ_SEED_PATH"))
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to load FAQ entries: %v", err)
			}
			return fmt.Errorf("failed to load FAQ entries: %w", err)
		}
		s.matcher = nlp.NewMatcher(entries)
		return nil
	}
}

func WithFulfillmentClients() ServerOption {
	return func(s *Server) error {
		s.complaintClient = fulfillment.NewComplaintClient()
		s.schedulerClient = fulfillment.NewSchedulerClient()
		s.docsClient = fulfillment.NewDocsClient()
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() error {
	// Document Domain
	docsRepo := documentRepository.New(s.db, s.log)
	documentsServices := documentService.NewDocumentsService(s.log, docsRepo, os.Getenv("DOCUMENTS_SEED_PATH"))
	if err := documentsServices.Load(context.Background()); err != nil {
		return fmt.Errorf("failed to load document catalog: %w", err)
	}
	documentHandlers := documentHandler.New(s.log, s.validator, s.middleware, documentsServices)

	// Chat Domain
	chatRepo := chatRepository.New(s.db, s.log)
	chatServices := chatService.NewChatService(
		s.log,
		s.matcher,
		documentsServices,
		s.sessionStore,
		chatRepo,
		s.classifier,
		s.geminiClient,
		s.complaintClient,
		s.schedulerClient,
		s.docsClient,
		s.smtpMailer,
		s.whatsappClient,
		s.utils,
	)
	chatHandlers := chatHandler.New(s.log, s.validator, s.middleware, chatServices)

	s.sweeper = jobs.NewSessionSweeper(s.log, s.sessionStore, chatRepo)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, chatHandlers, documentHandlers)

	return nil
}

// RunJobs starts the background workers and returns immediately.
func (s *Server) RunJobs(ctx context.Context) {
	if s.sweeper != nil {
		go s.sweeper.Start(ctx)
	}
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	if err := s.engine.Listen(fmt.Sprintf(":%s", port)); err != nil {
		if s.whatsappClient != nil {
			s.whatsappClient.Disconnect()
		}
		return err
	}

	return nil
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
