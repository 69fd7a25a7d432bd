package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/availlant/channelpulse/internal/middleware"
	"github.com/availlant/channelpulse/internal/service"
)

type StatsHandler struct {
	svc *service.ChannelService
}

func NewStatsHandler(svc *service.ChannelService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.svc.Stats(c.Context(), middleware.UserID(c))
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}

	return c.JSON(stats)
}
