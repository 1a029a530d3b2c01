package documentHandler

import (
	documentService "MunBotGolang/internal/api/document/service"
	"MunBotGolang/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type DocumentsHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	documentsService documentService.IDocumentsService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ds documentService.IDocumentsService,
) *DocumentsHandler {
	return &DocumentsHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		documentsService: ds,
	}
}

func (h *DocumentsHandler) Start(srv fiber.Router) {
	documents := srv.Group("/documents")

	documents.Get("", h.ListDocuments)
	documents.Get("/:name", h.GetDocument)

	documents.Post("/", h.middleware.NewAdminTokenMiddleware, h.CreateDocument)
	documents.Post("/reload", h.middleware.NewAdminTokenMiddleware, h.ReloadDocuments)
	documents.Post("/:name/fields", h.middleware.NewAdminTokenMiddleware, h.AddDocumentField)
}
