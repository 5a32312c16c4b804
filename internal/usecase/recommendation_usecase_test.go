package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"learnpath/internal/domain/assessment"
	"learnpath/internal/domain/course"
	"learnpath/internal/domain/recommend"
	"learnpath/internal/providers"
	"learnpath/internal/repository"
	"learnpath/internal/session"

	"github.com/google/uuid"
)

type stubCatalog struct {
	items []course.Course
	err   error
}

func (s stubCatalog) UpsertCourses(context.Context, []course.Course) error { return nil }
func (s stubCatalog) ListBySkills(context.Context, []string, int) ([]course.Course, error) {
	return s.items, s.err
}
func (s stubCatalog) ListAll(context.Context, int) ([]course.Course, error) {
	return s.items, s.err
}

var _ repository.CourseRepository = stubCatalog{}

func newTestRecommendationUsecase(catalog repository.CourseRepository) (*RecommendationUsecase, *session.Store) {
	store := session.NewStore(time.Minute)
	uc := NewRecommendationUsecase(store, catalog, nil, nil, providers.SearchOptions{}, time.Minute, nil)
	return uc, store
}

func submittedSession(t *testing.T, store *session.Store) uuid.UUID {
	t.Helper()
	sess := store.Create()
	err := store.Update(sess.ID, func(s *assessment.Session) error {
		s.SetCareerGoal("Data Scientist")
		s.SelectManual("Python, Tableau")
		return nil
	})
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return sess.ID
}

func TestAnalysisUnknownSession(t *testing.T) {
	uc, _ := newTestRecommendationUsecase(stubCatalog{})
	if _, err := uc.Analysis(context.Background(), uuid.New()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestAnalysisRequiresSubmittableSession(t *testing.T) {
	uc, store := newTestRecommendationUsecase(stubCatalog{})
	sess := store.Create()
	if _, err := uc.Analysis(context.Background(), sess.ID); !errors.Is(err, ErrAnalysisNotReady) {
		t.Fatalf("err = %v, want ErrAnalysisNotReady", err)
	}
}

func TestAnalysisRecomputesFromSession(t *testing.T) {
	catalog := stubCatalog{items: []course.Course{
		{Title: "SQL Bootcamp", Provider: "Udemy", Skills: []string{"SQL"}},
	}}
	uc, store := newTestRecommendationUsecase(catalog)
	id := submittedSession(t, store)

	analysis, err := uc.Analysis(context.Background(), id)
	if err != nil {
		t.Fatalf("Analysis: %v", err)
	}
	if analysis.CareerPath != "Data Scientist" {
		t.Fatalf("career path = %q", analysis.CareerPath)
	}
	if len(analysis.Courses) != 1 || analysis.Courses[0].Title != "SQL Bootcamp" {
		t.Fatalf("courses = %+v", analysis.Courses)
	}
	if len(analysis.Categories) == 0 {
		t.Fatalf("no gap categories derived")
	}
}

func TestViewAppliesTabAndPreferences(t *testing.T) {
	catalog := stubCatalog{items: []course.Course{
		{Title: "SQL Bootcamp", Provider: "Udemy", Skills: []string{"SQL"}},
		{Title: "Stats 101", Provider: "Coursera", Skills: []string{"Statistics"}},
	}}
	uc, store := newTestRecommendationUsecase(catalog)
	id := submittedSession(t, store)

	prefs := recommend.DefaultPreferences()
	prefs.Provider = recommend.ProviderUdemy

	view, err := uc.View(context.Background(), id, recommend.TabAll, prefs)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(view.View.Courses) != 1 || view.View.Courses[0].Title != "SQL Bootcamp" {
		t.Fatalf("filtered courses = %+v", view.View.Courses)
	}
	if len(view.Tabs) == 0 || view.Tabs[0] != recommend.TabAll {
		t.Fatalf("tabs = %v", view.Tabs)
	}
	if view.View.LayoutClass != "course-grid" {
		t.Fatalf("layout = %q", view.View.LayoutClass)
	}
}
