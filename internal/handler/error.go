package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"go-inventory-api/internal/apperr"
	"go-inventory-api/internal/service"
)

// respondError maps domain error kinds to HTTP statuses. Contention maps to
// 409 like the other conflicts; it is the only kind clients should retry.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	retryable := false

	switch {
	case apperr.IsValidation(err):
		status = fiber.StatusBadRequest
	case apperr.IsNotFound(err):
		status = fiber.StatusNotFound
	case apperr.IsInsufficientStock(err),
		apperr.IsInvalidTransition(err),
		apperr.IsReferentialConflict(err):
		status = fiber.StatusConflict
	case apperr.IsContention(err):
		status = fiber.StatusConflict
		retryable = true
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserInactive):
		status = fiber.StatusUnauthorized
	}

	body := fiber.Map{"error": err.Error()}
	if status == fiber.StatusInternalServerError {
		body = fiber.Map{"error": "Internal Server Error"}
	}
	if retryable {
		body["retryable"] = true
	}
	return c.Status(status).JSON(body)
}
