package usecase

import (
	"context"
	"log"
	"time"

	"learnpath/internal/domain/course"
	"learnpath/internal/domain/gap"
	"learnpath/internal/domain/recommend"
	"learnpath/internal/infrastructure/cache"
	"learnpath/internal/providers"
	"learnpath/internal/repository"
	"learnpath/internal/session"

	"github.com/google/uuid"
)

// RecommendationView is one derived page of recommendations: the tab row,
// the active tab's filtered and sorted courses, and the layout class for
// the chosen view mode.
type RecommendationView struct {
	Analysis Analysis
	Tabs     []string
	View     recommend.View
}

// RecommendationUsecase serves recommendation reads. Every read starts from
// the session's cached analysis; on a cache miss the analysis is recomputed
// from the live session so a Redis restart never blanks the page.
type RecommendationUsecase struct {
	sessions   *session.Store
	catalog    repository.CourseRepository
	aggregator *providers.Aggregator
	cache      *cache.Redis
	searchOpts providers.SearchOptions
	cacheTTL   time.Duration
	logger     *log.Logger
}

func NewRecommendationUsecase(
	sessions *session.Store,
	catalog repository.CourseRepository,
	aggregator *providers.Aggregator,
	redis *cache.Redis,
	searchOpts providers.SearchOptions,
	cacheTTL time.Duration,
	logger *log.Logger,
) *RecommendationUsecase {
	if logger == nil {
		logger = log.Default()
	}
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}
	return &RecommendationUsecase{
		sessions:   sessions,
		catalog:    catalog,
		aggregator: aggregator,
		cache:      redis,
		searchOpts: searchOpts,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// Analysis returns the session's completed analysis, from cache when
// possible.
func (u *RecommendationUsecase) Analysis(ctx context.Context, sessionID uuid.UUID) (Analysis, error) {
	if u.cache != nil {
		var cached Analysis
		hit, err := u.cache.GetJSON(ctx, recommendationsKey(sessionID), &cached)
		if err != nil {
			u.logger.Printf("[Recommend] cache read for session %s: %v", sessionID, err)
		}
		if hit {
			return cached, nil
		}
	}
	return u.recompute(ctx, sessionID)
}

// View derives the page for one tab and preference set. Unknown preference
// values have already been rejected at the edge; an unknown tab simply
// matches no category.
func (u *RecommendationUsecase) View(ctx context.Context, sessionID uuid.UUID, activeTab string, prefs recommend.Preferences) (RecommendationView, error) {
	analysis, err := u.Analysis(ctx, sessionID)
	if err != nil {
		return RecommendationView{}, err
	}
	return RecommendationView{
		Analysis: analysis,
		Tabs:     recommend.Tabs(analysis.Categories),
		View:     recommend.Derive(analysis.Courses, analysis.Categories, activeTab, prefs),
	}, nil
}

func (u *RecommendationUsecase) recompute(ctx context.Context, sessionID uuid.UUID) (Analysis, error) {
	sess, err := u.sessions.Get(sessionID)
	if err != nil {
		return Analysis{}, ErrSessionNotFound
	}
	if !sess.CanSubmit() {
		return Analysis{}, ErrAnalysisNotReady
	}

	res := gap.Analyze(sess.CareerGoal, sess.CurrentSkills())

	courses := u.lookupCourses(ctx, res.Missing)

	analysis := Analysis{
		SessionID:  sessionID,
		CareerGoal: sess.CareerGoal,
		CareerPath: res.CareerPath,
		Missing:    res.Missing,
		Partial:    res.Partial,
		Strengths:  res.Strengths,
		Categories: res.Categories,
		Focus:      res.Focus,
		Courses:    courses,
		CreatedAt:  time.Now().UTC(),
	}
	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, recommendationsKey(sessionID), analysis, u.cacheTTL); err != nil {
			u.logger.Printf("[Recommend] cache write for session %s: %v", sessionID, err)
		}
	}
	return analysis, nil
}

func (u *RecommendationUsecase) lookupCourses(ctx context.Context, missing []string) []course.Course {
	if u.catalog != nil {
		items, err := u.catalog.ListBySkills(ctx, missing, catalogLimit)
		if err != nil {
			u.logger.Printf("[Recommend] catalog lookup: %v", err)
		}
		if len(items) > 0 {
			return items
		}
	}
	if u.aggregator == nil {
		return nil
	}
	return providers.Courses(u.aggregator.SearchAll(ctx, missing, u.searchOpts))
}
