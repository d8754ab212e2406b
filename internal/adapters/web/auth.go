package web

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"bizcard/internal/domain"
	"bizcard/pkg/log"
)

const (
	// HeaderUserID carries the user id asserted by the upstream gateway.
	HeaderUserID = "X-User-ID"
	// HeaderGatewaySecret proves the request passed through the gateway.
	HeaderGatewaySecret = "X-Gateway-Secret"

	AuthModeHeader = "header"
	AuthModeDev    = "dev"

	userIDLocal = "user_id"
)

// AuthConfig controls how callers are identified.
type AuthConfig struct {
	// Mode is "header" (trust the gateway headers) or "dev" (fall back to
	// DevUserID when no header is sent).
	Mode          string
	GatewaySecret string
	DevUserID     string
}

// Authenticate resolves the caller's user id and rejects the request with
// 401 when there is none. Session handling lives in the gateway; this only
// reads what it asserts.
func Authenticate(cfg AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.GatewaySecret != "" {
			got := c.Get(HeaderGatewaySecret)
			if subtle.ConstantTimeCompare([]byte(got), []byte(cfg.GatewaySecret)) != 1 {
				log.GlobalWarnCtx(c.UserContext(), "gateway secret mismatch", "ip", c.IP())
				return writeAPIError(c, domain.ErrUnauthenticated)
			}
		}

		userID := strings.TrimSpace(c.Get(HeaderUserID))
		if userID == "" && cfg.Mode == AuthModeDev {
			userID = cfg.DevUserID
		}
		if userID == "" {
			return writeAPIError(c, domain.ErrUnauthenticated)
		}

		c.Locals(userIDLocal, userID)
		c.SetUserContext(log.WithUserID(c.UserContext(), userID))
		return c.Next()
	}
}

// UserID returns the id set by Authenticate, or "".
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDLocal).(string)
	return id
}
