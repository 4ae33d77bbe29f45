package server

import (
	"github.com/gofiber/fiber/v2"

	"pkg.world.dev/lazyecs"
	"pkg.world.dev/lazyecs/cql"
	"pkg.world.dev/lazyecs/types"
)

type CQLQueryRequest struct {
	CQL string `json:"cql"`
}

type CQLQueryResponse struct {
	Results types.EntityStateResponse `json:"results"`
}

// postCQL evaluates a CQL expression against the world and returns the
// matching entities with their component values, in the same per-entity
// shape as the debug state dump.
func (s *Server) postCQL(ctx *fiber.Ctx) error {
	req := new(CQLQueryRequest)
	if err := ctx.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to parse request body: "+err.Error())
	}

	resultFilter, err := cql.Parse(req.CQL, s.world.ComponentByName)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	results := make(types.EntityStateResponse, 0)
	var eachErr error
	searchErr := lazyecs.NewSearch(s.world, resultFilter).Each(
		func(id types.EntityID) bool {
			var elem types.EntityStateElement
			elem, eachErr = s.world.EntityState(id)
			if eachErr != nil {
				return false
			}
			results = append(results, elem)
			return true
		},
	)
	if searchErr != nil {
		return fiber.NewError(fiber.StatusInternalServerError, searchErr.Error())
	}
	if eachErr != nil {
		return fiber.NewError(fiber.StatusInternalServerError, eachErr.Error())
	}

	return ctx.JSON(CQLQueryResponse{Results: results})
}
