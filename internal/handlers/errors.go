package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/moodlog/api/internal/types"
)

// ErrorHandler is the app-wide Fiber error handler. It maps the typed error
// taxonomy to status codes and the standard JSON error envelope; anything
// untyped is an internal error.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "internal"

	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
		errorType = "http"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
