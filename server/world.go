package server

import (
	"github.com/gofiber/fiber/v2"
)

// getWorld reports the world's registered components and entity count.
func (s *Server) getWorld(ctx *fiber.Ctx) error {
	return ctx.JSON(s.world.Stats())
}
