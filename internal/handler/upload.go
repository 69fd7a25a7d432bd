package handler

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/availlant/channelpulse/internal/middleware"
	"github.com/availlant/channelpulse/internal/model"
	"github.com/availlant/channelpulse/internal/service"
)

type UploadHandler struct {
	svc *service.IngestService
}

func NewUploadHandler(svc *service.IngestService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// Upload handles POST /api/channels/upload
//
// Expects multipart form data with one or more files under the "files" field.
// File names may carry folder prefixes ("MyChannel/views.csv") when the
// client uploaded a directory tree.
func (h *UploadHandler) Upload(c fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "Expected multipart form data")
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "No files uploaded")
	}

	files := make([]model.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "Unreadable file: "+fh.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "Unreadable file: "+fh.Filename)
		}
		files = append(files, model.File{Name: fh.Filename, Data: data})
	}

	start := time.Now()
	resp, err := h.svc.Upload(c.Context(), middleware.UserID(c), files)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to store upload")
	}

	Metrics.UploadsTotal.Inc()
	Metrics.IngestDuration.Observe(time.Since(start).Seconds())
	for _, r := range resp.Results {
		Metrics.RowsUpserted.Add(float64(r.RowsUpserted))
	}

	return c.JSON(resp)
}
