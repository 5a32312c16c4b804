package assessment

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SkillSource is the method by which the user's skills are gathered.
// Exactly one source payload is active per session at a time.
type SkillSource string

const (
	SourceManual   SkillSource = "manual"
	SourceResume   SkillSource = "resume"
	SourceLinkedIn SkillSource = "linkedin"
)

// Steps of the assessment flow. Advance at StepReview does not move the
// counter; it signals that the analyze action must run.
const (
	StepGoal   = 1
	StepSkills = 2
	StepReview = 3

	FinalStep = StepReview
)

const (
	FileErrorUnsupportedType = "Please upload a PDF or Word document"
	FileErrorInvalidLinkedIn = "Please enter a valid LinkedIn profile URL"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported resume file type")
	ErrInvalidLinkedInURL  = errors.New("invalid linkedin url")
	ErrUnknownSkillSource  = errors.New("unknown skill source")
)

var allowedResumeMIME = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

type ResumeFile struct {
	Name     string
	MIMEType string
	Content  []byte
}

// Session is the exclusive single-owner state of one assessment flow. All
// mutation goes through the store, which serializes access per session.
type Session struct {
	ID     uuid.UUID
	UserID *uuid.UUID

	CareerGoal      string
	SkillSource     SkillSource
	ManualSkills    string
	ResumeFile      *ResumeFile
	LinkedInURL     string
	ExtractedSkills []string

	Step    int
	Loading bool

	// FileError is the inline, dismissable validation message. Empty means
	// no pending error.
	FileError string

	// extractionSeq implements last-write-wins for overlapping extraction
	// calls: a finishing call whose sequence is stale is ignored.
	extractionSeq uint64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewSession() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:          uuid.New(),
		SkillSource: SourceManual,
		Step:        StepGoal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func ParseSkillSource(raw string) (SkillSource, error) {
	switch SkillSource(strings.ToLower(strings.TrimSpace(raw))) {
	case SourceManual:
		return SourceManual, nil
	case SourceResume:
		return SourceResume, nil
	case SourceLinkedIn:
		return SourceLinkedIn, nil
	}
	return "", ErrUnknownSkillSource
}

// Advance moves to the next step. At the final step the counter stays put
// and Advance reports true: the caller must run the analyze action exactly
// once per such call.
func (s *Session) Advance() (analyze bool) {
	s.touch()
	if s.Step < FinalStep {
		s.Step++
		return false
	}
	return true
}

// Retreat moves back one step, a no-op at the first step.
func (s *Session) Retreat() {
	s.touch()
	if s.Step > StepGoal {
		s.Step--
	}
}

func (s *Session) SetCareerGoal(goal string) {
	s.CareerGoal = strings.TrimSpace(goal)
	s.touch()
}

// SelectManual switches to manual entry. The text is only checked for
// non-emptiness at submit time.
func (s *Session) SelectManual(skills string) {
	s.SkillSource = SourceManual
	s.ManualSkills = skills
	s.touch()
}

// AttachResume accepts the upload when its MIME type is PDF, legacy Word or
// Word XML. Any other type sets the fixed file error and leaves the active
// skill source unchanged.
func (s *Session) AttachResume(name, mimeType string, content []byte) error {
	s.touch()
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if _, ok := allowedResumeMIME[mt]; !ok {
		s.FileError = FileErrorUnsupportedType
		return ErrUnsupportedFileType
	}
	s.SkillSource = SourceResume
	s.ResumeFile = &ResumeFile{Name: name, MIMEType: mt, Content: content}
	s.FileError = ""
	return nil
}

// SetLinkedInURL commits the URL when it looks like a LinkedIn profile link.
// Validation is substring containment of "linkedin.com/"; a failing URL is
// not committed and sets the fixed file error.
func (s *Session) SetLinkedInURL(url string) error {
	s.touch()
	url = strings.TrimSpace(url)
	if !strings.Contains(url, "linkedin.com/") {
		s.FileError = FileErrorInvalidLinkedIn
		return ErrInvalidLinkedInURL
	}
	s.SkillSource = SourceLinkedIn
	s.LinkedInURL = url
	s.FileError = ""
	return nil
}

// CanSubmit reports whether the analyze action may run: the career goal and
// the active source's payload must both be present.
func (s *Session) CanSubmit() bool {
	if s.CareerGoal == "" {
		return false
	}
	switch s.SkillSource {
	case SourceManual:
		return strings.TrimSpace(s.ManualSkills) != ""
	case SourceLinkedIn:
		return s.LinkedInURL != ""
	case SourceResume:
		return s.ResumeFile != nil
	}
	return false
}

// BeginExtraction marks an extraction call in flight and returns its
// sequence token.
func (s *Session) BeginExtraction() uint64 {
	s.extractionSeq++
	s.Loading = true
	s.touch()
	return s.extractionSeq
}

// FinishExtraction records the outcome of the extraction call identified by
// seq. Stale calls (a newer one started since) are dropped. Failures clear
// the loading flag and change nothing else.
func (s *Session) FinishExtraction(seq uint64, skills []string, failed bool) {
	if seq != s.extractionSeq {
		return
	}
	s.Loading = false
	s.touch()
	if failed {
		return
	}
	s.ExtractedSkills = skills
}

// CurrentSkills returns the skills of the active source: extracted skills
// for resume/linkedin, the split manual text otherwise.
func (s *Session) CurrentSkills() []string {
	switch s.SkillSource {
	case SourceResume, SourceLinkedIn:
		out := make([]string, len(s.ExtractedSkills))
		copy(out, s.ExtractedSkills)
		return out
	default:
		parts := strings.Split(s.ManualSkills, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
		return out
	}
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}
