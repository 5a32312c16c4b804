package handler

import (
	"errors"
	"io"
	"strings"

	"learnpath/internal/delivery/http/middleware"
	"learnpath/internal/domain/assessment"
	"learnpath/internal/extract"
	"learnpath/internal/pkg/response"
	"learnpath/internal/scraper"

	"github.com/gofiber/fiber/v3"
)

// ExtractHandler hosts the stateless extraction contracts: parse a resume
// file or scrape a LinkedIn profile and return the recognized skills,
// without touching any session.
type ExtractHandler struct {
	linkedin scraper.LinkedInExtractor
}

type extractLinkedInRequest struct {
	URL string `json:"url"`
}

func NewExtractHandler(linkedin scraper.LinkedInExtractor) *ExtractHandler {
	return &ExtractHandler{linkedin: linkedin}
}

func (h *ExtractHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/parse-resume", h.ParseResume)
	r.Post("/extract-linkedin", h.ExtractLinkedIn)
}

func (h *ExtractHandler) ParseResume(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing file upload", nil, err)
	}
	if fh.Size > maxResumeBytes {
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "Resume too large", nil, nil)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file upload", nil, err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxResumeBytes+1))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file upload", nil, err)
	}

	skills, err := extract.ResumeSkills(fh.Header.Get("Content-Type"), content)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedFormat) {
			return middleware.NewAppError(fiber.StatusUnsupportedMediaType, assessment.FileErrorUnsupportedType, nil, err)
		}
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Could not parse resume", nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"skills": nonNil(skills)})
}

func (h *ExtractHandler) ExtractLinkedIn(c fiber.Ctx) error {
	var req extractLinkedInRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	url := strings.TrimSpace(req.URL)
	if !strings.Contains(url, "linkedin.com/") {
		return middleware.NewAppError(fiber.StatusBadRequest, assessment.FileErrorInvalidLinkedIn, nil, nil)
	}

	skills, err := h.linkedin.ExtractSkills(c.Context(), url)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadGateway, "Could not extract skills from profile", nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"skills": nonNil(skills)})
}

func nonNil(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}
