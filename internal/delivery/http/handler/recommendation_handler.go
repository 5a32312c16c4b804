package handler

import (
	"errors"

	"learnpath/internal/delivery/http/dto"
	"learnpath/internal/delivery/http/middleware"
	"learnpath/internal/domain/recommend"
	"learnpath/internal/pkg/response"
	"learnpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendationHandler struct {
	uc *usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc *usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:id/recommendations", h.View)
}

// View serves one derived recommendations page. Preference query params
// accept only their closed value sets; absent params fall back to defaults.
func (h *RecommendationHandler) View(c fiber.Ctx) error {
	id, err := sessionIDFromParams(c)
	if err != nil {
		return err
	}

	prefs, tab, err := preferencesFromQuery(c)
	if err != nil {
		return err
	}

	view, err := h.uc.View(c.Context(), id, tab, prefs)
	if err != nil {
		return mapAssessmentError(err)
	}

	resp := dto.NewRecommendationViewResponse(view, string(prefs.View), string(prefs.Sort), string(prefs.Provider))
	return response.Success(c, fiber.StatusOK, response.MessageOK, resp)
}

func preferencesFromQuery(c fiber.Ctx) (recommend.Preferences, string, error) {
	prefs := recommend.DefaultPreferences()

	var err error
	if prefs.View, err = recommend.ParseViewMode(c.Query("view")); err != nil {
		return prefs, "", badPreference("view", c.Query("view"), err)
	}
	if prefs.Sort, err = recommend.ParseSortBy(c.Query("sort")); err != nil {
		return prefs, "", badPreference("sort", c.Query("sort"), err)
	}
	if prefs.Provider, err = recommend.ParseProviderFilter(c.Query("provider")); err != nil {
		return prefs, "", badPreference("provider", c.Query("provider"), err)
	}

	tab := c.Query("category")
	if tab == "" {
		tab = recommend.TabAll
	}
	return prefs, tab, nil
}

func badPreference(name, value string, err error) error {
	if !errors.Is(err, recommend.ErrUnknownPreference) {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return middleware.NewAppError(fiber.StatusBadRequest, "Unknown "+name+" value", fiber.Map{name: value}, err)
}
