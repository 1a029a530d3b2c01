package middleware

import (
	"crypto/subtle"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type adminTokenMiddleware struct {
}

func newAdminTokenMiddleware() *adminTokenMiddleware {
	return &adminTokenMiddleware{}
}

// NewAdminTokenMiddleware guards the document administration endpoints with a
// static bearer token.
func (m *middleware) NewAdminTokenMiddleware(ctx *fiber.Ctx) error {
	expected := os.Getenv("ADMIN_API_TOKEN")
	if expected == "" {
		m.log.WithFields(logrus.Fields{
			"path": ctx.Path(),
		}).Warn("ADMIN_API_TOKEN is not configured, rejecting admin request")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	authHeader := ctx.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	supplied := strings.TrimPrefix(authHeader, "Bearer ")
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(expected)) != 1 {
		m.log.WithFields(logrus.Fields{
			"path": ctx.Path(),
			"ip":   ctx.IP(),
		}).Warn("Invalid admin token")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	return ctx.Next()
}
