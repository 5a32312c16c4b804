package handler

import (
	"errors"
	"io"

	"learnpath/internal/delivery/http/dto"
	"learnpath/internal/delivery/http/middleware"
	"learnpath/internal/domain/assessment"
	"learnpath/internal/pkg/response"
	"learnpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// maxResumeBytes caps resume uploads; the body limit on the app is set
// slightly above this so the handler produces the friendlier error.
const maxResumeBytes = 10 << 20

type AssessmentHandler struct {
	uc *usecase.AssessmentUsecase
}

type setGoalRequest struct {
	CareerGoal string `json:"career_goal"`
}

type setSourceRequest struct {
	Source string `json:"source"`
	Skills string `json:"skills"`
	URL    string `json:"url"`
}

func NewAssessmentHandler(uc *usecase.AssessmentUsecase) *AssessmentHandler {
	return &AssessmentHandler{uc: uc}
}

func (h *AssessmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("", h.Create)
	r.Get("/:id", h.Get)
	r.Put("/:id/goal", h.SetGoal)
	r.Put("/:id/source", h.SetSource)
	r.Post("/:id/resume", h.UploadResume)
	r.Post("/:id/advance", h.Advance)
	r.Post("/:id/retreat", h.Retreat)
	r.Delete("/:id/file-error", h.DismissFileError)
}

func (h *AssessmentHandler) Create(c fiber.Ctx) error {
	var owner *uuid.UUID
	if id, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID); ok {
		owner = &id
	}
	sess := h.uc.StartSession(owner)
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewAssessmentSessionResponse(sess))
}

func (h *AssessmentHandler) Get(c fiber.Ctx) error {
	id, err := sessionIDFromParams(c)
	if err != nil {
		return err
	}
	sess, err := h.uc.GetSession(id)
	if err != nil {
		return mapAssessmentError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssessmentSessionResponse(sess))
}

func (h *AssessmentHandler) SetGoal(c fiber.Ctx) error {
	id, err := sessionIDFromParams(c)
	if err != nil {
		return err
	}

	var req setGoalRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	sess, err := h.uc.SetCareerGoal(id, req.CareerGoal)
	if err != nil {
		return mapAssessmentError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssessmentSessionResponse(sess))
}

// SetSource switches the active skill source. A linkedin URL that fails
// validation is NOT an HTTP error: the session comes back with its inline
// file error set, same as the ui contract for rejected input.
func (h *AssessmentHandler) SetSource(c fiber.Ctx) error {
	id, err := sessionIDFromParams(c)
	if err != nil {
		return err
	}

	var req setSourceRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	source, err := assessment.ParseSkillSource(req.Source)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown skill source", nil, err)
	}

	var sess assessment.Session
	switch source {
	case assessment.SourceManual:
		sess, err = h.uc.SetManualSkills(id, req.Skills)
	case assessment.SourceLinkedIn:
		sess, err = h.uc.SetLinkedInURL(id, req.URL)
		if err == nil && sess.FileError == "" {
			sess, err = h.uc.ExtractLinkedIn(c.Context(), id)
		}
	case assessment.SourceResume:
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume uploads go through the resume endpoint", nil, nil)
	}
	if err != nil {
		return mapAssessmentError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssessmentSessionResponse(sess))
}

// UploadResume accepts a multipart "file" part. A file failing the MIME
// gate still returns 200 with the session's file error set.
func (h *AssessmentHandler) UploadResume(c fiber.Ctx) error {
	id, err := sessionIDFromParams(c)
	if err != nil {
		return err
	}

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

	sess, err := h.uc.UploadResume(id, fh.Filename, fh.Header.Get("Content-Type"), content)
	if err != nil {
		return mapAssessmentError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssessmentSessionResponse(sess))
}

func (h *AssessmentHandler) Advance(c fiber.Ctx) error {
	id, err := sessionIDFromParams(c)
	if err != nil {
		return err
	}

	sess, analyzing, err := h.uc.Advance(id)
	if err != nil {
		return mapAssessmentError(err)
	}
	data := fiber.Map{
		"session":   dto.NewAssessmentSessionResponse(sess),
		"analyzing": analyzing,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *AssessmentHandler) Retreat(c fiber.Ctx) error {
	id, err := sessionIDFromParams(c)
	if err != nil {
		return err
	}

	sess, err := h.uc.Retreat(id)
	if err != nil {
		return mapAssessmentError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssessmentSessionResponse(sess))
}

func (h *AssessmentHandler) DismissFileError(c fiber.Ctx) error {
	id, err := sessionIDFromParams(c)
	if err != nil {
		return err
	}

	sess, err := h.uc.DismissFileError(id)
	if err != nil {
		return mapAssessmentError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssessmentSessionResponse(sess))
}

func sessionIDFromParams(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid session id", nil, err)
	}
	return id, nil
}

func mapAssessmentError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, usecase.ErrSessionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Assessment session not found", nil, err)
	case errors.Is(err, usecase.ErrNotSubmittable):
		return middleware.NewAppError(fiber.StatusConflict, "Assessment is not ready to submit", nil, err)
	case errors.Is(err, usecase.ErrAnalysisNotReady):
		return middleware.NewAppError(fiber.StatusConflict, "Analysis has not completed", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
