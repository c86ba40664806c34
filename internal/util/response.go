package util

import (
	"errors"
	"log"
	"runtime/debug"

	"github.com/arifwib/interview-coach/internal/config"
	"github.com/arifwib/interview-coach/internal/usecase"
	"github.com/gofiber/fiber/v2"
)

// StatusFromError maps usecase error categories onto HTTP status codes.
// Anything uncategorized is a server fault.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, usecase.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, usecase.ErrUpstream):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorResponse writes the standard {error} body for err. Categorized errors
// carry their own caller-facing message; everything else gets the generic
// fallback with the underlying detail logged server-side (and echoed as
// dev_message outside production).
func ErrorResponse(c *fiber.Ctx, err error, fallbackMessage string) error {
	code := StatusFromError(err)

	message := err.Error()
	body := fiber.Map{"error": message}

	if code == fiber.StatusInternalServerError {
		log.Printf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
		body["error"] = fallbackMessage
		if config.LoadAppConfig().Env != "production" {
			body["dev_message"] = message
			body["trace"] = string(debug.Stack())
		}
	}

	return c.Status(code).JSON(body)
}
