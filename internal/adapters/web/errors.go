package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"bizcard/internal/domain"
	"bizcard/pkg/log"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrCardNotFound), errors.Is(err, domain.ErrSocialAccountNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCardID), errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrRateLimited):
		return fiber.StatusTooManyRequests
	case errors.Is(err, domain.ErrSnapshotUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrSnapshotFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// friendlyError returns a neutral message that is safe to show to visitors.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, domain.ErrCardNotFound):
		return "This card couldn't be found. It may be private or no longer available."
	case errors.Is(err, domain.ErrSocialAccountNotFound):
		return "That social account couldn't be found."
	case errors.Is(err, domain.ErrInvalidCardID):
		return "That doesn't look like a valid card link."
	case errors.Is(err, domain.ErrInvalidInput):
		return "Some of the submitted details couldn't be read. Please check them and try again."
	case errors.Is(err, domain.ErrUnauthenticated):
		return "Please sign in to manage your cards."
	case errors.Is(err, domain.ErrRateLimited):
		return "Too many requests. Please wait a moment and try again."
	case errors.Is(err, domain.ErrSnapshotUnavailable):
		return "Card images are not available right now."
	case errors.Is(err, domain.ErrSnapshotFailed):
		return "This card's image couldn't be generated. Please try again in a moment."
	default:
		return "Something went wrong on our side. Please try again in a moment."
	}
}

// writeAPIError sends err as a JSON error body with its mapped status.
func writeAPIError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.GlobalErrorCtx(c.UserContext(), "request failed", "path", c.Path(), "error", err)
	} else {
		log.GlobalDebugCtx(c.UserContext(), "request rejected", "path", c.Path(), "status", status, "error", err)
	}
	return c.Status(status).JSON(errorJSON{Error: friendlyError(err)})
}
