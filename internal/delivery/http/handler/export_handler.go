package handler

import (
	"learnpath/internal/delivery/http/middleware"
	"learnpath/internal/pkg/response"
	"learnpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ExportHandler struct {
	uc *usecase.ExportUsecase
}

type emailExportRequest struct {
	Address string `json:"address"`
}

func NewExportHandler(uc *usecase.ExportUsecase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

func (h *ExportHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/:id/export/email", h.Email)
	r.Post("/:id/export/pdf", h.PDF)
	r.Get("/:id/export/copy", h.Copy)
}

// Email queues the recommendations for email delivery. 202 means queued;
// the delivery itself is fire-and-forget.
func (h *ExportHandler) Email(c fiber.Ctx) error {
	id, err := sessionIDFromParams(c)
	if err != nil {
		return err
	}

	var req emailExportRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.EmailRecommendations(c.Context(), id, req.Address); err != nil {
		return mapAssessmentError(err)
	}
	return response.Success(c, fiber.StatusAccepted, response.MessageOK, fiber.Map{"queued": true})
}

func (h *ExportHandler) PDF(c fiber.Ctx) error {
	id, err := sessionIDFromParams(c)
	if err != nil {
		return err
	}

	if err := h.uc.GeneratePDF(c.Context(), id); err != nil {
		return mapAssessmentError(err)
	}
	return response.Success(c, fiber.StatusAccepted, response.MessageOK, fiber.Map{"queued": true})
}

// Copy returns the visible course list as indented JSON, the exact bytes a
// clipboard copy would carry.
func (h *ExportHandler) Copy(c fiber.Ctx) error {
	id, err := sessionIDFromParams(c)
	if err != nil {
		return err
	}

	prefs, tab, err := preferencesFromQuery(c)
	if err != nil {
		return err
	}

	payload, err := h.uc.CopyPayload(c.Context(), id, tab, prefs)
	if err != nil {
		return mapAssessmentError(err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(fiber.StatusOK).Send(payload)
}
