package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/toursite/internal/common"
)

// errorHandler turns handler errors into {"error": msg} responses.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code, msg := fiber.StatusInternalServerError, common.ErrorInternal.Error()

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code, msg = fe.Code, fe.Message
	case errors.Is(err, common.ErrorNotFound):
		code, msg = fiber.StatusNotFound, err.Error()
	case errors.Is(err, common.ErrorSlugTaken):
		code, msg = fiber.StatusConflict, err.Error()
	case errors.Is(err, common.ErrorValidation):
		code, msg = fiber.StatusBadRequest, err.Error()
	default:
		s.logger.Error(c.UserContext(), "request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(fiber.Map{"error": msg})
}

func badRequest(msg string) error {
	return fiber.NewError(fiber.StatusBadRequest, msg)
}
