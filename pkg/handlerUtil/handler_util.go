package handlerUtil

import (
	"MunBotGolang/internal/api/chat"
	"MunBotGolang/internal/api/document"
	"MunBotGolang/pkg/log"
	"MunBotGolang/pkg/response"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	// Chat domain errors
	if errors.Is(err, chat.ErrSessionNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Session not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Session not found",
			"code":    "SESSION_NOT_FOUND",
		})
	}

	if errors.Is(err, chat.ErrEmptyMessage) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Empty message")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Message must not be empty",
			"code":    "EMPTY_MESSAGE",
		})
	}

	if errors.Is(err, chat.ErrCollaboratorUnavailable) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Collaborator unavailable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "A downstream service is unavailable, try again later",
			"code":    "COLLABORATOR_UNAVAILABLE",
		})
	}

	// Document domain errors
	if errors.Is(err, document.ErrDocumentNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Document not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Document not found",
			"code":    "DOCUMENT_NOT_FOUND",
		})
	}

	if errors.Is(err, document.ErrDocumentAlreadyExists) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Document already exists")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Document already exists",
			"code":    "DOCUMENT_ALREADY_EXISTS",
		})
	}

	if errors.Is(err, document.ErrInvalidField) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid document field")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid document field",
			"code":    "INVALID_FIELD",
		})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
