package server

import (
	"github.com/gofiber/fiber/v2"
)

// getDebugState dumps every alive entity and its component values.
func (s *Server) getDebugState(ctx *fiber.Ctx) error {
	state, err := s.world.DebugState()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return ctx.JSON(state)
}
