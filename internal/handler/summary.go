package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/availlant/channelpulse/internal/middleware"
	"github.com/availlant/channelpulse/internal/service"
)

type SummaryHandler struct {
	svc *service.SummaryService
}

func NewSummaryHandler(svc *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{svc: svc}
}

// GetSummary handles GET /api/channels/summary?range=<expr>
func (h *SummaryHandler) GetSummary(c fiber.Ctx) error {
	rangeExpr, errMsg := middleware.ValidateRangeExpr(c.Query("range"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.Summary(c.Context(), middleware.UserID(c), rangeExpr)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build summary")
	}

	return c.JSON(resp)
}
