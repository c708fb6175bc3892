package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/stormarket/stormarket/internal/auth"
	"github.com/stormarket/stormarket/internal/common"
)

// authRequired extracts the bearer token, verifies it, and injects the user
// id into the request context consumed by the services.
func (s *Server) authRequired() fiber.Handler {
	secret := []byte(s.config.SecretKey)
	return func(c *fiber.Ctx) error {
		header := c.Get(common.AccessTokenHeaderName)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return s.respondError(c, common.ErrNotAuthenticated)
		}

		userID, err := auth.GetUserIDFromToken(token, secret)
		if err != nil {
			return s.respondError(c, common.ErrNotAuthenticated)
		}

		c.SetUserContext(auth.WithUserID(c.UserContext(), userID))
		return c.Next()
	}
}
