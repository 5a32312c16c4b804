package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"learnpath/internal/domain/assessment"
	"learnpath/internal/providers"
	"learnpath/internal/session"

	"github.com/google/uuid"
)

type stubExtractor struct {
	skills []string
	err    error
}

func (s stubExtractor) ExtractSkills(context.Context, string) ([]string, error) {
	return s.skills, s.err
}

func newTestAssessmentUsecase(extractor stubExtractor) (*AssessmentUsecase, *session.Store) {
	store := session.NewStore(time.Minute)
	uc := NewAssessmentUsecase(store, nil, nil, nil, extractor, nil, providers.SearchOptions{}, time.Minute, nil)
	return uc, store
}

// waitFor polls the session until cond holds or the deadline passes.
func waitFor(t *testing.T, store *session.Store, id uuid.UUID, cond func(assessment.Session) bool) assessment.Session {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		snap, err := store.Get(id)
		if err != nil {
			t.Fatalf("get session: %v", err)
		}
		if cond(snap) {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
	return assessment.Session{}
}

func TestGetSessionUnknown(t *testing.T) {
	uc, _ := newTestAssessmentUsecase(stubExtractor{})
	if _, err := uc.GetSession(uuid.New()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestSetCareerGoalRejectsBlank(t *testing.T) {
	uc, _ := newTestAssessmentUsecase(stubExtractor{})
	sess := uc.StartSession(nil)
	if _, err := uc.SetCareerGoal(sess.ID, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestUploadResumeRejectedMIMEKeepsSourceAndSkipsExtraction(t *testing.T) {
	uc, store := newTestAssessmentUsecase(stubExtractor{})
	sess := uc.StartSession(nil)

	snap, err := uc.UploadResume(sess.ID, "cv.txt", "text/plain", []byte("Python"))
	if err != nil {
		t.Fatalf("UploadResume: %v", err)
	}
	if snap.FileError != assessment.FileErrorUnsupportedType {
		t.Fatalf("file error = %q", snap.FileError)
	}
	if snap.Loading {
		t.Fatalf("rejected upload started extraction")
	}

	live, _ := store.Get(sess.ID)
	if live.SkillSource != assessment.SourceManual {
		t.Fatalf("source changed to %q", live.SkillSource)
	}
}

func TestUploadResumeExtractsSkills(t *testing.T) {
	uc, store := newTestAssessmentUsecase(stubExtractor{})
	sess := uc.StartSession(nil)

	content := []byte("(Proficient in Python and SQL)\x00\x01")
	snap, err := uc.UploadResume(sess.ID, "cv.pdf", "application/pdf", content)
	if err != nil {
		t.Fatalf("UploadResume: %v", err)
	}
	if snap.SkillSource != assessment.SourceResume {
		t.Fatalf("source = %q", snap.SkillSource)
	}

	done := waitFor(t, store, sess.ID, func(s assessment.Session) bool {
		return !s.Loading && len(s.ExtractedSkills) > 0
	})
	found := map[string]bool{}
	for _, s := range done.ExtractedSkills {
		found[s] = true
	}
	if !found["Python"] || !found["SQL"] {
		t.Fatalf("extracted = %v", done.ExtractedSkills)
	}
}

func TestExtractLinkedInRequiresCommittedURL(t *testing.T) {
	uc, _ := newTestAssessmentUsecase(stubExtractor{skills: []string{"Go"}})
	sess := uc.StartSession(nil)

	if _, err := uc.ExtractLinkedIn(context.Background(), sess.ID); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestExtractLinkedInPopulatesSkills(t *testing.T) {
	uc, store := newTestAssessmentUsecase(stubExtractor{skills: []string{"Go", "Docker"}})
	sess := uc.StartSession(nil)

	if _, err := uc.SetLinkedInURL(sess.ID, "https://linkedin.com/in/jane"); err != nil {
		t.Fatalf("SetLinkedInURL: %v", err)
	}
	if _, err := uc.ExtractLinkedIn(context.Background(), sess.ID); err != nil {
		t.Fatalf("ExtractLinkedIn: %v", err)
	}

	done := waitFor(t, store, sess.ID, func(s assessment.Session) bool {
		return !s.Loading && len(s.ExtractedSkills) == 2
	})
	if done.ExtractedSkills[0] != "Go" {
		t.Fatalf("extracted = %v", done.ExtractedSkills)
	}
}

// slowProfileExtractor stalls on one profile URL until released so a later
// scrape can finish first.
type slowProfileExtractor struct {
	release chan struct{}
}

func (s *slowProfileExtractor) ExtractSkills(_ context.Context, url string) ([]string, error) {
	if strings.Contains(url, "jane") {
		<-s.release
		return []string{"Stale"}, nil
	}
	return []string{"Go", "Docker"}, nil
}

func TestExtractLinkedInOverlappingCallsLastWriteWins(t *testing.T) {
	extractor := &slowProfileExtractor{release: make(chan struct{})}
	store := session.NewStore(time.Minute)
	uc := NewAssessmentUsecase(store, nil, nil, nil, extractor, nil, providers.SearchOptions{}, time.Minute, nil)
	sess := uc.StartSession(nil)

	_, _ = uc.SetLinkedInURL(sess.ID, "https://linkedin.com/in/jane")
	if _, err := uc.ExtractLinkedIn(context.Background(), sess.ID); err != nil {
		t.Fatalf("first ExtractLinkedIn: %v", err)
	}

	// Second request while the first scrape is still running; it must not
	// be rejected or skipped.
	_, _ = uc.SetLinkedInURL(sess.ID, "https://linkedin.com/in/john")
	if _, err := uc.ExtractLinkedIn(context.Background(), sess.ID); err != nil {
		t.Fatalf("overlapping ExtractLinkedIn: %v", err)
	}

	waitFor(t, store, sess.ID, func(s assessment.Session) bool {
		return !s.Loading && len(s.ExtractedSkills) == 2
	})

	// Let the stale first scrape finish; its result must be dropped.
	close(extractor.release)
	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		snap, err := store.Get(sess.ID)
		if err != nil {
			t.Fatalf("get session: %v", err)
		}
		if len(snap.ExtractedSkills) != 2 || snap.ExtractedSkills[0] != "Go" {
			t.Fatalf("stale extraction overwrote skills: %v", snap.ExtractedSkills)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestExtractLinkedInFailureIsSilent(t *testing.T) {
	uc, store := newTestAssessmentUsecase(stubExtractor{err: errors.New("profile is private")})
	sess := uc.StartSession(nil)

	_, _ = uc.SetLinkedInURL(sess.ID, "https://linkedin.com/in/jane")
	if _, err := uc.ExtractLinkedIn(context.Background(), sess.ID); err != nil {
		t.Fatalf("ExtractLinkedIn surfaced scrape failure: %v", err)
	}

	done := waitFor(t, store, sess.ID, func(s assessment.Session) bool {
		return !s.Loading
	})
	if len(done.ExtractedSkills) != 0 {
		t.Fatalf("failed extraction wrote skills: %v", done.ExtractedSkills)
	}
	if done.FileError != "" {
		t.Fatalf("failed extraction surfaced error: %q", done.FileError)
	}
}

func TestAdvanceBeforeFinalStepNeverAnalyzes(t *testing.T) {
	uc, _ := newTestAssessmentUsecase(stubExtractor{})
	sess := uc.StartSession(nil)

	snap, analyzing, err := uc.Advance(sess.ID)
	if err != nil || analyzing {
		t.Fatalf("advance = analyzing %v, err %v", analyzing, err)
	}
	if snap.Step != assessment.StepSkills {
		t.Fatalf("step = %d", snap.Step)
	}
}

func TestAdvanceAtFinalStepRequiresSubmittableSession(t *testing.T) {
	uc, _ := newTestAssessmentUsecase(stubExtractor{})
	sess := uc.StartSession(nil)
	uc.Advance(sess.ID)
	uc.Advance(sess.ID)

	if _, _, err := uc.Advance(sess.ID); !errors.Is(err, ErrNotSubmittable) {
		t.Fatalf("err = %v, want ErrNotSubmittable", err)
	}
}

func TestAdvanceAtFinalStepRunsAnalysis(t *testing.T) {
	uc, store := newTestAssessmentUsecase(stubExtractor{})
	sess := uc.StartSession(nil)

	uc.SetCareerGoal(sess.ID, "Data Scientist")
	uc.SetManualSkills(sess.ID, "Python, SQL")
	uc.Advance(sess.ID)
	uc.Advance(sess.ID)

	snap, analyzing, err := uc.Advance(sess.ID)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if !analyzing {
		t.Fatalf("final-step advance did not start analysis")
	}
	if snap.Step != assessment.FinalStep {
		t.Fatalf("final-step advance moved counter to %d", snap.Step)
	}

	waitFor(t, store, sess.ID, func(s assessment.Session) bool {
		return !s.Loading
	})
}

func TestRetreatThroughUsecase(t *testing.T) {
	uc, _ := newTestAssessmentUsecase(stubExtractor{})
	sess := uc.StartSession(nil)

	snap, err := uc.Retreat(sess.ID)
	if err != nil {
		t.Fatalf("Retreat: %v", err)
	}
	if snap.Step != assessment.StepGoal {
		t.Fatalf("retreat at first step moved counter to %d", snap.Step)
	}
}
