package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"learnpath/internal/domain/course"
	"learnpath/internal/domain/recommend"

	"github.com/google/uuid"
)

type stubAnalyses struct {
	analysis Analysis
	err      error
}

func (s stubAnalyses) Analysis(context.Context, uuid.UUID) (Analysis, error) {
	return s.analysis, s.err
}

func (s stubAnalyses) View(_ context.Context, _ uuid.UUID, tab string, prefs recommend.Preferences) (RecommendationView, error) {
	if s.err != nil {
		return RecommendationView{}, s.err
	}
	return RecommendationView{
		Analysis: s.analysis,
		Tabs:     recommend.Tabs(s.analysis.Categories),
		View:     recommend.Derive(s.analysis.Courses, s.analysis.Categories, tab, prefs),
	}, nil
}

type recordingEmailSender struct {
	mu      sync.Mutex
	address string
	count   int
	done    chan struct{}
}

func (r *recordingEmailSender) SendRecommendations(_ context.Context, address string, _ []course.Course) error {
	r.mu.Lock()
	r.address = address
	r.count++
	r.mu.Unlock()
	close(r.done)
	return nil
}

func sampleAnalysis() Analysis {
	return Analysis{
		SessionID:  uuid.New(),
		CareerGoal: "Data Scientist",
		CareerPath: "Data Scientist",
		Courses: []course.Course{
			{Title: "SQL Bootcamp", Provider: "Udemy", Price: "$19.99", Skills: []string{"SQL"}},
			{Title: "Stats 101", Provider: "Coursera", Price: "Free to audit", Skills: []string{"Statistics"}},
		},
	}
}

func TestEmailRecommendationsRejectsBlankAddress(t *testing.T) {
	uc := NewExportUsecase(stubAnalyses{analysis: sampleAnalysis()}, nil, nil, nil)

	for _, addr := range []string{"", "   "} {
		if err := uc.EmailRecommendations(context.Background(), uuid.New(), addr); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("EmailRecommendations(%q) = %v, want ErrInvalidInput", addr, err)
		}
	}
}

func TestEmailRecommendationsKeepsAddressFreeText(t *testing.T) {
	sender := &recordingEmailSender{done: make(chan struct{})}
	uc := NewExportUsecase(stubAnalyses{analysis: sampleAnalysis()}, sender, nil, nil)

	if err := uc.EmailRecommendations(context.Background(), uuid.New(), "bob"); err != nil {
		t.Fatalf("EmailRecommendations(%q) = %v, want nil", "bob", err)
	}

	select {
	case <-sender.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("delivery never ran")
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if sender.address != "bob" {
		t.Fatalf("delivered to %q, want the address passed through unchanged", sender.address)
	}
}

func TestEmailRecommendationsDelivers(t *testing.T) {
	sender := &recordingEmailSender{done: make(chan struct{})}
	uc := NewExportUsecase(stubAnalyses{analysis: sampleAnalysis()}, sender, nil, nil)

	if err := uc.EmailRecommendations(context.Background(), uuid.New(), "jane@example.com"); err != nil {
		t.Fatalf("EmailRecommendations: %v", err)
	}

	select {
	case <-sender.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("delivery never ran")
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if sender.address != "jane@example.com" || sender.count != 1 {
		t.Fatalf("delivered to %q, count %d", sender.address, sender.count)
	}
}

func TestEmailRecommendationsPropagatesAnalysisError(t *testing.T) {
	uc := NewExportUsecase(stubAnalyses{err: ErrSessionNotFound}, nil, nil, nil)
	if err := uc.EmailRecommendations(context.Background(), uuid.New(), "jane@example.com"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestCopyPayloadIsIndentedJSONOfVisibleList(t *testing.T) {
	analysis := sampleAnalysis()
	uc := NewExportUsecase(stubAnalyses{analysis: analysis}, nil, nil, nil)

	payload, err := uc.CopyPayload(context.Background(), analysis.SessionID, recommend.TabAll, recommend.DefaultPreferences())
	if err != nil {
		t.Fatalf("CopyPayload: %v", err)
	}

	want, err := json.MarshalIndent(analysis.Courses, "", "  ")
	if err != nil {
		t.Fatalf("marshal want: %v", err)
	}
	if !bytes.Equal(payload, want) {
		t.Fatalf("payload:\n%s\nwant:\n%s", payload, want)
	}
}

func TestCopyPayloadRespectsPreferences(t *testing.T) {
	analysis := sampleAnalysis()
	uc := NewExportUsecase(stubAnalyses{analysis: analysis}, nil, nil, nil)

	prefs := recommend.DefaultPreferences()
	prefs.Provider = recommend.ProviderCoursera

	payload, err := uc.CopyPayload(context.Background(), analysis.SessionID, recommend.TabAll, prefs)
	if err != nil {
		t.Fatalf("CopyPayload: %v", err)
	}

	var got []course.Course
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Stats 101" {
		t.Fatalf("filtered payload = %+v", got)
	}
}
