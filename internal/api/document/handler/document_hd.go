package documentHandler

import (
	"MunBotGolang/internal/api/document"
	contextPkg "MunBotGolang/pkg/context"
	"MunBotGolang/pkg/handlerUtil"
	"MunBotGolang/pkg/log"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *DocumentsHandler) ListDocuments(ctx *fiber.Ctx) error {
	docs := h.documentsService.GetAll()

	summaries := make([]document.DocumentSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, document.DocumentSummary{
			Nombre: doc.Name,
			Tipo:   doc.Type,
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(document.DocumentListResponse{
		Documents: summaries,
		Total:     len(summaries),
	})
}

func (h *DocumentsHandler) GetDocument(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	name := ctx.Params("name")
	if name == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("document name is required"), ctx.Path())
	}

	doc, ok := h.documentsService.GetByName(name)
	if !ok {
		return errHandler.Handle(ctx, requestID, document.ErrDocumentNotFound, ctx.Path(), "get_document")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, doc)
}

func (h *DocumentsHandler) CreateDocument(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing create document request")

	var req document.CreateDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.documentsService.CreateDocument(c, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_document")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, fiber.Map{
			"message": "Document created successfully",
		})
	}
}

func (h *DocumentsHandler) AddDocumentField(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	name := ctx.Params("name")
	if name == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("document name is required"), ctx.Path())
	}

	var req document.AddFieldRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.documentsService.AddField(c, name, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "add_document_field")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Document field updated successfully",
		})
	}
}

func (h *DocumentsHandler) ReloadDocuments(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing reload documents request")

	if err := h.documentsService.Reload(c); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "reload_documents")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message": "Document cache reloaded successfully",
	})
}
