package server

import (
	"github.com/gofiber/fiber/v2"
)

type GetHealthResponse struct {
	IsServerRunning bool   `json:"is_server_running"`
	Namespace       string `json:"namespace"`
	InstanceID      string `json:"instance_id"`
	Tick            uint64 `json:"tick"`
}

func (s *Server) getHealth(ctx *fiber.Ctx) error {
	resp := GetHealthResponse{
		IsServerRunning: true,
		Namespace:       s.world.Namespace(),
		InstanceID:      s.world.InstanceID(),
	}
	if s.sched != nil {
		resp.Tick = s.sched.Tick()
	}
	return ctx.JSON(resp)
}
