package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/availlant/channelpulse/internal/middleware"
	"github.com/availlant/channelpulse/internal/service"
)

type ChannelHandler struct {
	svc *service.ChannelService
}

func NewChannelHandler(svc *service.ChannelService) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

// List handles GET /api/channels
func (h *ChannelHandler) List(c fiber.Ctx) error {
	resp, err := h.svc.List(c.Context(), middleware.UserID(c))
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load channels")
	}
	return c.JSON(resp)
}

// Delete handles DELETE /api/channels?name=<channelName>
//
// The name travels as a query parameter because channel names come straight
// from folder names and routinely contain spaces and unicode.
func (h *ChannelHandler) Delete(c fiber.Ctx) error {
	name, errMsg := middleware.ValidateChannelName(c.Query("name"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	err := h.svc.Delete(c.Context(), middleware.UserID(c), name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Channel not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete channel")
	}

	return c.JSON(fiber.Map{"deleted": name})
}
