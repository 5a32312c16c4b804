package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"learnpath/internal/delivery/http/middleware"
	"learnpath/internal/domain/course"
	"learnpath/internal/providers"
	"learnpath/internal/session"
	"learnpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type stubCatalog struct {
	items []course.Course
}

func (s stubCatalog) UpsertCourses(context.Context, []course.Course) error { return nil }
func (s stubCatalog) ListBySkills(context.Context, []string, int) ([]course.Course, error) {
	return s.items, nil
}
func (s stubCatalog) ListAll(context.Context, int) ([]course.Course, error) {
	return s.items, nil
}

type stubExtractor struct{}

func (stubExtractor) ExtractSkills(context.Context, string) ([]string, error) {
	return []string{"Python"}, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	store := session.NewStore(time.Minute)
	catalog := stubCatalog{items: []course.Course{
		{Title: "SQL Bootcamp", Provider: "Udemy", Price: "$19.99", Skills: []string{"SQL"}},
	}}

	assessments := usecase.NewAssessmentUsecase(store, nil, catalog, nil, stubExtractor{}, nil, providers.SearchOptions{}, time.Minute, nil)
	recommendations := usecase.NewRecommendationUsecase(store, catalog, nil, nil, providers.SearchOptions{}, time.Minute, nil)
	exports := usecase.NewExportUsecase(recommendations, nil, nil, nil)

	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewErrorMiddleware().Middleware())

	group := app.Group("/api/v1/assessments")
	NewAssessmentHandler(assessments).RegisterRoutes(group)
	NewRecommendationHandler(recommendations).RegisterRoutes(group)
	NewExportHandler(exports).RegisterRoutes(group)
	return app
}

func postJSON(t *testing.T, app *fiber.App, method, path string, body any) semanticResponse {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("%s %s decode: %v", method, path, err)
	}
	return sr
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()

	sr := postJSON(t, app, "POST", "/api/v1/assessments", nil)
	if sr.Status != fiber.StatusCreated {
		t.Fatalf("create session status = %d (%s)", sr.Status, sr.Message)
	}
	var data struct {
		ID   string `json:"id"`
		Step int    `json:"step"`
	}
	if err := json.Unmarshal(sr.Data, &data); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if data.Step != 1 {
		t.Fatalf("new session step = %d", data.Step)
	}
	return data.ID
}

func TestAssessmentFlowOverHTTP(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app)

	sr := postJSON(t, app, "PUT", "/api/v1/assessments/"+id+"/goal", map[string]string{"career_goal": "Data Scientist"})
	if sr.Status != fiber.StatusOK {
		t.Fatalf("set goal status = %d (%s)", sr.Status, sr.Message)
	}

	sr = postJSON(t, app, "PUT", "/api/v1/assessments/"+id+"/source", map[string]string{"source": "manual", "skills": "Python, SQL"})
	if sr.Status != fiber.StatusOK {
		t.Fatalf("set source status = %d (%s)", sr.Status, sr.Message)
	}

	postJSON(t, app, "POST", "/api/v1/assessments/"+id+"/advance", nil)
	postJSON(t, app, "POST", "/api/v1/assessments/"+id+"/advance", nil)

	sr = postJSON(t, app, "POST", "/api/v1/assessments/"+id+"/advance", nil)
	if sr.Status != fiber.StatusOK {
		t.Fatalf("final advance status = %d (%s)", sr.Status, sr.Message)
	}
	var adv struct {
		Analyzing bool `json:"analyzing"`
		Session   struct {
			Step int `json:"step"`
		} `json:"session"`
	}
	if err := json.Unmarshal(sr.Data, &adv); err != nil {
		t.Fatalf("decode advance: %v", err)
	}
	if !adv.Analyzing || adv.Session.Step != 3 {
		t.Fatalf("final advance = %+v", adv)
	}

	sr = postJSON(t, app, "GET", "/api/v1/assessments/"+id+"/recommendations?provider=udemy", nil)
	if sr.Status != fiber.StatusOK {
		t.Fatalf("recommendations status = %d (%s)", sr.Status, sr.Message)
	}
	var view struct {
		Tabs    []string `json:"tabs"`
		Courses []struct {
			Title string `json:"title"`
		} `json:"courses"`
	}
	if err := json.Unmarshal(sr.Data, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if len(view.Courses) != 1 || view.Courses[0].Title != "SQL Bootcamp" {
		t.Fatalf("courses = %+v", view.Courses)
	}
	if len(view.Tabs) == 0 || view.Tabs[0] != "all" {
		t.Fatalf("tabs = %v", view.Tabs)
	}
}

func TestSetGoalRejectsBlankOverHTTP(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app)

	sr := postJSON(t, app, "PUT", "/api/v1/assessments/"+id+"/goal", map[string]string{"career_goal": "  "})
	if sr.Status != fiber.StatusBadRequest {
		t.Fatalf("blank goal status = %d", sr.Status)
	}
}

func TestUnknownSessionIs404(t *testing.T) {
	app := newTestApp(t)

	sr := postJSON(t, app, "GET", "/api/v1/assessments/6b1f6f60-51c2-4ad6-9a8f-0d5f8b8c7d11", nil)
	if sr.Status != fiber.StatusNotFound {
		t.Fatalf("unknown session status = %d", sr.Status)
	}
}

func TestUnknownPreferenceValueIs400(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app)

	sr := postJSON(t, app, "GET", "/api/v1/assessments/"+id+"/recommendations?sort=popularity", nil)
	if sr.Status != fiber.StatusBadRequest {
		t.Fatalf("unknown sort status = %d (%s)", sr.Status, sr.Message)
	}
}

func TestCopyEndpointReturnsIndentedJSON(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app)

	postJSON(t, app, "PUT", "/api/v1/assessments/"+id+"/goal", map[string]string{"career_goal": "Data Scientist"})
	postJSON(t, app, "PUT", "/api/v1/assessments/"+id+"/source", map[string]string{"source": "manual", "skills": "Python"})

	req := httptest.NewRequest("GET", "/api/v1/assessments/"+id+"/export/copy", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("copy request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("copy status = %d", resp.StatusCode)
	}

	var list []course.Course
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("copy payload not a JSON list: %v", err)
	}
	if len(list) != 1 || list[0].Title != "SQL Bootcamp" {
		t.Fatalf("copy payload = %+v", list)
	}
}
