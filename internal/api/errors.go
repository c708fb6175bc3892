package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/stormarket/stormarket/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps the service error taxonomy onto HTTP statuses.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, common.ErrNotAuthenticated) || errors.Is(err, common.ErrInvalidToken):
		status = fiber.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrDealExpired),
		errors.Is(err, common.ErrDealFailed),
		errors.Is(err, common.ErrDealPending),
		errors.Is(err, common.ErrShareLinkExpired),
		errors.Is(err, common.ErrShareLinkExhausted),
		errors.Is(err, common.ErrSharePassword):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, common.ErrRemoteReadFailure) || errors.Is(err, common.ErrRemoteWriteFailure):
		status = fiber.StatusBadGateway
	}

	if status == fiber.StatusInternalServerError {
		s.log.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err)
	}

	return c.Status(status).JSON(errorResponse{Error: err.Error()})
}
