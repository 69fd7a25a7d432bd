package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/availlant/channelpulse/internal/middleware"
	"github.com/availlant/channelpulse/internal/service"
)

type ExportHandler struct {
	svc *service.SummaryService
}

func NewExportHandler(svc *service.SummaryService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Export handles GET /api/channels/export?range=<expr>
// Streams the filtered combined series as a CSV attachment.
func (h *ExportHandler) Export(c fiber.Ctx) error {
	rangeExpr, errMsg := middleware.ValidateRangeExpr(c.Query("range"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	data, err := h.svc.ExportCSV(c.Context(), middleware.UserID(c), rangeExpr)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build export")
	}

	filename := fmt.Sprintf("channelpulse-%s-%s.csv", rangeExpr, time.Now().Format("20060102"))
	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(data)
}
