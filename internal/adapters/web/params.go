package web

import (
	"github.com/gofiber/fiber/v2"

	"bizcard/internal/domain"
)

// ParseCardID reads a UUID route parameter. It returns
// domain.ErrInvalidCardID for anything that is not a canonical UUID so
// malformed ids never reach storage.
func ParseCardID(c *fiber.Ctx, param string) (string, error) {
	id := c.Params(param)
	if err := domain.ValidateID(id); err != nil {
		return "", err
	}
	return id, nil
}
