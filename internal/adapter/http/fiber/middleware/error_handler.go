package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/free-mobile-netstat/fmns-api/internal/domain"
)

// ErrorHandler maps the domain error taxonomy to HTTP statuses.
// Handlers return domain errors as-is; only unexpected failures reach
// the log as 500s.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := statusFromError(err)

		if code == fiber.StatusInternalServerError {
			log.Error("Internal Server Error", zap.Error(err), zap.String("path", c.Path()))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidStats),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrDateRangeTooWide):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrDeviceNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrDeviceExists):
		return fiber.StatusConflict
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
