package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"learnpath/internal/domain/assessment"
	"learnpath/internal/domain/course"
	"learnpath/internal/domain/gap"
	"learnpath/internal/extract"
	"learnpath/internal/infrastructure/cache"
	"learnpath/internal/providers"
	"learnpath/internal/repository"
	"learnpath/internal/scraper"
	"learnpath/internal/session"
	"learnpath/internal/ws"

	"github.com/google/uuid"
)

const (
	analysisTimeout   = 60 * time.Second
	extractionTimeout = 45 * time.Second
	catalogLimit      = 60
)

// AssessmentUsecase drives the multi-step assessment flow: session state,
// skill intake from all three sources, and the analyze pipeline that turns
// a submitted session into cached recommendations.
type AssessmentUsecase struct {
	sessions    *session.Store
	submissions repository.AssessmentRepository
	catalog     repository.CourseRepository
	aggregator  *providers.Aggregator
	linkedin    scraper.LinkedInExtractor
	cache       *cache.Redis
	searchOpts  providers.SearchOptions
	cacheTTL    time.Duration
	logger      *log.Logger
}

func NewAssessmentUsecase(
	sessions *session.Store,
	submissions repository.AssessmentRepository,
	catalog repository.CourseRepository,
	aggregator *providers.Aggregator,
	linkedin scraper.LinkedInExtractor,
	redis *cache.Redis,
	searchOpts providers.SearchOptions,
	cacheTTL time.Duration,
	logger *log.Logger,
) *AssessmentUsecase {
	if logger == nil {
		logger = log.Default()
	}
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}
	return &AssessmentUsecase{
		sessions:    sessions,
		submissions: submissions,
		catalog:     catalog,
		aggregator:  aggregator,
		linkedin:    linkedin,
		cache:       redis,
		searchOpts:  searchOpts,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

func (u *AssessmentUsecase) StartSession(userID *uuid.UUID) assessment.Session {
	sess := u.sessions.Create()
	if userID != nil {
		id := *userID
		_ = u.sessions.Update(sess.ID, func(s *assessment.Session) error {
			s.UserID = &id
			return nil
		})
	}
	snap, _ := u.sessions.Get(sess.ID)
	return snap
}

func (u *AssessmentUsecase) GetSession(id uuid.UUID) (assessment.Session, error) {
	snap, err := u.sessions.Get(id)
	if err != nil {
		return assessment.Session{}, ErrSessionNotFound
	}
	return snap, nil
}

func (u *AssessmentUsecase) SetCareerGoal(id uuid.UUID, goal string) (assessment.Session, error) {
	if strings.TrimSpace(goal) == "" {
		return assessment.Session{}, ErrInvalidInput
	}
	return u.update(id, func(s *assessment.Session) error {
		s.SetCareerGoal(goal)
		return nil
	})
}

func (u *AssessmentUsecase) SetManualSkills(id uuid.UUID, skills string) (assessment.Session, error) {
	return u.update(id, func(s *assessment.Session) error {
		s.SelectManual(skills)
		return nil
	})
}

// UploadResume validates the file against the session's MIME gate and, when
// accepted, kicks off skill extraction in the background. The returned
// snapshot carries the inline file error on rejection; upload itself never
// fails the request.
func (u *AssessmentUsecase) UploadResume(id uuid.UUID, name, mimeType string, content []byte) (assessment.Session, error) {
	var seq uint64
	var mt string
	snap, err := u.update(id, func(s *assessment.Session) error {
		if err := s.AttachResume(name, mimeType, content); err != nil {
			return nil
		}
		mt = s.ResumeFile.MIMEType
		seq = s.BeginExtraction()
		return nil
	})
	if err != nil {
		return assessment.Session{}, err
	}
	if seq > 0 {
		buf := make([]byte, len(content))
		copy(buf, content)
		go u.runResumeExtraction(id, seq, mt, buf)
	}
	return snap, nil
}

func (u *AssessmentUsecase) SetLinkedInURL(id uuid.UUID, url string) (assessment.Session, error) {
	return u.update(id, func(s *assessment.Session) error {
		_ = s.SetLinkedInURL(url)
		return nil
	})
}

// ExtractLinkedIn starts a background scrape of the session's committed
// LinkedIn URL. Overlapping calls are resolved last-write-wins by the
// session's extraction sequence: every call scrapes, only the latest
// result lands.
func (u *AssessmentUsecase) ExtractLinkedIn(ctx context.Context, id uuid.UUID) (assessment.Session, error) {
	var seq uint64
	var profileURL string
	snap, err := u.update(id, func(s *assessment.Session) error {
		if s.SkillSource != assessment.SourceLinkedIn || s.LinkedInURL == "" {
			return ErrInvalidInput
		}
		profileURL = s.LinkedInURL
		seq = s.BeginExtraction()
		return nil
	})
	if err != nil {
		return assessment.Session{}, err
	}

	go u.runLinkedInExtraction(id, seq, profileURL)
	return snap, nil
}

// Advance moves the flow forward. At the review step the counter stays put
// and the analyze pipeline runs instead; analyzing reports whether it was
// started. Analysis failures never surface to the caller: they are logged
// and the session's loading flag is cleared.
func (u *AssessmentUsecase) Advance(id uuid.UUID) (snap assessment.Session, analyzing bool, err error) {
	var sub repository.Submission
	snap, err = u.update(id, func(s *assessment.Session) error {
		if !s.Advance() {
			return nil
		}
		if !s.CanSubmit() {
			return ErrNotSubmittable
		}
		analyzing = true
		if s.UserID != nil {
			uid := *s.UserID
			sub.UserID = &uid
		}
		sub.SessionID = s.ID
		sub.CareerGoal = s.CareerGoal
		sub.SkillSource = string(s.SkillSource)
		sub.CurrentSkills = s.CurrentSkills()
		s.Loading = true
		return nil
	})
	if err != nil {
		return assessment.Session{}, false, err
	}
	if analyzing {
		go u.runAnalysis(sub)
	}
	return snap, analyzing, nil
}

func (u *AssessmentUsecase) Retreat(id uuid.UUID) (assessment.Session, error) {
	return u.update(id, func(s *assessment.Session) error {
		s.Retreat()
		return nil
	})
}

func (u *AssessmentUsecase) DismissFileError(id uuid.UUID) (assessment.Session, error) {
	return u.update(id, func(s *assessment.Session) error {
		s.FileError = ""
		return nil
	})
}

func (u *AssessmentUsecase) History(ctx context.Context, userID uuid.UUID, limit int) ([]repository.Submission, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return u.submissions.ListByUser(ctx, userID, limit)
}

func (u *AssessmentUsecase) update(id uuid.UUID, fn func(*assessment.Session) error) (assessment.Session, error) {
	err := u.sessions.Update(id, fn)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return assessment.Session{}, ErrSessionNotFound
		}
		return assessment.Session{}, err
	}
	snap, err := u.sessions.Get(id)
	if err != nil {
		return assessment.Session{}, ErrSessionNotFound
	}
	return snap, nil
}

func (u *AssessmentUsecase) runResumeExtraction(id uuid.UUID, seq uint64, mimeType string, content []byte) {
	skills, err := extract.ResumeSkills(mimeType, content)
	if err != nil {
		u.logger.Printf("[Assessment] resume extraction failed for session %s: %v", id, err)
	}
	u.finishExtraction(id, seq, skills, err != nil, string(assessment.SourceResume))
}

func (u *AssessmentUsecase) runLinkedInExtraction(id uuid.UUID, seq uint64, profileURL string) {
	ctx, cancel := context.WithTimeout(context.Background(), extractionTimeout)
	defer cancel()

	skills, err := u.linkedin.ExtractSkills(ctx, profileURL)
	if err != nil {
		u.logger.Printf("[Assessment] linkedin extraction failed for session %s: %v", id, err)
	}
	u.finishExtraction(id, seq, skills, err != nil, string(assessment.SourceLinkedIn))
}

func (u *AssessmentUsecase) finishExtraction(id uuid.UUID, seq uint64, skills []string, failed bool, source string) {
	err := u.sessions.Update(id, func(s *assessment.Session) error {
		s.FinishExtraction(seq, skills, failed)
		return nil
	})
	if err != nil {
		// Session expired or was deleted while extraction ran.
		return
	}
	if !failed {
		ws.NotifyExtractionCompleted(id, source, len(skills))
	}
}

// runAnalysis is the submit pipeline: gap analysis, course lookup (catalog
// first, live providers on a cold catalog), cache, persist, notify. Any
// failure is logged and swallowed; the session just stops loading.
func (u *AssessmentUsecase) runAnalysis(sub repository.Submission) {
	ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
	defer cancel()

	defer func() {
		_ = u.sessions.Update(sub.SessionID, func(s *assessment.Session) error {
			s.Loading = false
			return nil
		})
	}()

	res := gap.Analyze(sub.CareerGoal, sub.CurrentSkills)

	courses := u.coursesForGaps(ctx, res.Missing)

	analysis := Analysis{
		SessionID:  sub.SessionID,
		CareerGoal: sub.CareerGoal,
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
		if err := u.cache.SetJSON(ctx, recommendationsKey(sub.SessionID), analysis, u.cacheTTL); err != nil {
			u.logger.Printf("[Assessment] caching analysis for session %s: %v", sub.SessionID, err)
		}
	}

	sub.MissingSkills = res.Missing
	sub.Recommendations = courses
	if u.submissions != nil {
		if err := u.submissions.SaveSubmission(ctx, sub); err != nil {
			u.logger.Printf("[Assessment] persisting submission for session %s: %v", sub.SessionID, err)
		}
	}

	ws.NotifyAnalysisCompleted(sub.SessionID, res.CareerPath, len(courses))
}

// coursesForGaps reads the catalog by missing skills and falls back to a
// live provider search when the catalog has nothing. Fresh provider results
// are upserted so the next submission hits the catalog.
func (u *AssessmentUsecase) coursesForGaps(ctx context.Context, missing []string) []course.Course {
	if u.catalog != nil {
		items, err := u.catalog.ListBySkills(ctx, missing, catalogLimit)
		if err != nil {
			u.logger.Printf("[Assessment] catalog lookup: %v", err)
		}
		if len(items) > 0 {
			return items
		}
	}

	if u.aggregator == nil {
		return nil
	}
	results := u.aggregator.SearchAll(ctx, missing, u.searchOpts)
	items := providers.Courses(results)
	if len(items) > 0 && u.catalog != nil {
		if err := u.catalog.UpsertCourses(ctx, items); err != nil {
			u.logger.Printf("[Assessment] catalog upsert: %v", err)
		}
	}
	return items
}
