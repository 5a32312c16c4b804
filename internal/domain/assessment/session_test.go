package assessment

import (
	"errors"
	"testing"
)

func TestAdvanceStopsAtFinalStep(t *testing.T) {
	s := NewSession()
	if s.Step != StepGoal {
		t.Fatalf("new session step = %d, want %d", s.Step, StepGoal)
	}

	if analyze := s.Advance(); analyze {
		t.Fatalf("advance from step 1 should not trigger analyze")
	}
	if analyze := s.Advance(); analyze {
		t.Fatalf("advance from step 2 should not trigger analyze")
	}
	if s.Step != FinalStep {
		t.Fatalf("step = %d, want %d", s.Step, FinalStep)
	}

	if analyze := s.Advance(); !analyze {
		t.Fatalf("advance at final step must trigger analyze")
	}
	if s.Step != FinalStep {
		t.Fatalf("advance at final step moved the counter to %d", s.Step)
	}
}

func TestRetreatStopsAtFirstStep(t *testing.T) {
	s := NewSession()
	s.Advance()
	s.Retreat()
	if s.Step != StepGoal {
		t.Fatalf("step = %d, want %d", s.Step, StepGoal)
	}
	s.Retreat()
	if s.Step != StepGoal {
		t.Fatalf("retreat at first step moved the counter to %d", s.Step)
	}
}

func TestAttachResumeMIMEGate(t *testing.T) {
	accepted := []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"Application/PDF",
		"application/pdf; charset=utf-8",
	}
	for _, mt := range accepted {
		s := NewSession()
		if err := s.AttachResume("cv.pdf", mt, []byte("x")); err != nil {
			t.Fatalf("AttachResume(%q) = %v, want nil", mt, err)
		}
		if s.SkillSource != SourceResume {
			t.Fatalf("AttachResume(%q) left source %q", mt, s.SkillSource)
		}
		if s.FileError != "" {
			t.Fatalf("AttachResume(%q) left file error %q", mt, s.FileError)
		}
	}

	rejected := []string{"text/plain", "image/png", "application/zip", ""}
	for _, mt := range rejected {
		s := NewSession()
		s.SelectManual("Python")
		err := s.AttachResume("cv.txt", mt, []byte("x"))
		if !errors.Is(err, ErrUnsupportedFileType) {
			t.Fatalf("AttachResume(%q) = %v, want ErrUnsupportedFileType", mt, err)
		}
		if s.FileError != FileErrorUnsupportedType {
			t.Fatalf("file error = %q, want %q", s.FileError, FileErrorUnsupportedType)
		}
		if s.SkillSource != SourceManual {
			t.Fatalf("rejected upload changed source to %q", s.SkillSource)
		}
		if s.ResumeFile != nil {
			t.Fatalf("rejected upload stored the file")
		}
	}
}

func TestSetLinkedInURLValidation(t *testing.T) {
	s := NewSession()

	err := s.SetLinkedInURL("https://example.com/in/jane")
	if !errors.Is(err, ErrInvalidLinkedInURL) {
		t.Fatalf("err = %v, want ErrInvalidLinkedInURL", err)
	}
	if s.LinkedInURL != "" {
		t.Fatalf("failing URL was committed: %q", s.LinkedInURL)
	}
	if s.FileError != FileErrorInvalidLinkedIn {
		t.Fatalf("file error = %q, want %q", s.FileError, FileErrorInvalidLinkedIn)
	}

	if err := s.SetLinkedInURL("https://www.linkedin.com/in/jane"); err != nil {
		t.Fatalf("valid URL rejected: %v", err)
	}
	if s.SkillSource != SourceLinkedIn {
		t.Fatalf("source = %q, want linkedin", s.SkillSource)
	}
	if s.FileError != "" {
		t.Fatalf("success did not clear file error: %q", s.FileError)
	}
}

func TestCanSubmit(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Session)
		want  bool
	}{
		{"empty session", func(s *Session) {}, false},
		{"goal only", func(s *Session) { s.SetCareerGoal("Data Scientist") }, false},
		{"manual skills only", func(s *Session) { s.SelectManual("Python") }, false},
		{"goal and manual skills", func(s *Session) {
			s.SetCareerGoal("Data Scientist")
			s.SelectManual("Python, SQL")
		}, true},
		{"goal and blank manual skills", func(s *Session) {
			s.SetCareerGoal("Data Scientist")
			s.SelectManual("   ")
		}, false},
		{"goal and linkedin url", func(s *Session) {
			s.SetCareerGoal("Data Scientist")
			_ = s.SetLinkedInURL("https://linkedin.com/in/jane")
		}, true},
		{"goal and rejected linkedin url", func(s *Session) {
			s.SetCareerGoal("Data Scientist")
			_ = s.SetLinkedInURL("https://example.com/jane")
		}, false},
		{"goal and resume", func(s *Session) {
			s.SetCareerGoal("Data Scientist")
			_ = s.AttachResume("cv.pdf", "application/pdf", []byte("x"))
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			tt.setup(s)
			if got := s.CanSubmit(); got != tt.want {
				t.Fatalf("CanSubmit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFinishExtractionLastWriteWins(t *testing.T) {
	s := NewSession()
	_ = s.SetLinkedInURL("https://linkedin.com/in/jane")

	first := s.BeginExtraction()
	second := s.BeginExtraction()

	// The stale first call lands after the second started: dropped.
	s.FinishExtraction(first, []string{"Old"}, false)
	if !s.Loading {
		t.Fatalf("stale finish cleared the loading flag")
	}
	if len(s.ExtractedSkills) != 0 {
		t.Fatalf("stale finish wrote skills: %v", s.ExtractedSkills)
	}

	s.FinishExtraction(second, []string{"Python", "SQL"}, false)
	if s.Loading {
		t.Fatalf("current finish left loading set")
	}
	if len(s.ExtractedSkills) != 2 {
		t.Fatalf("extracted skills = %v", s.ExtractedSkills)
	}
}

func TestFinishExtractionFailureIsSilent(t *testing.T) {
	s := NewSession()
	_ = s.SetLinkedInURL("https://linkedin.com/in/jane")
	s.ExtractedSkills = []string{"Python"}

	seq := s.BeginExtraction()
	s.FinishExtraction(seq, nil, true)

	if s.Loading {
		t.Fatalf("failed extraction left loading set")
	}
	if len(s.ExtractedSkills) != 1 || s.ExtractedSkills[0] != "Python" {
		t.Fatalf("failed extraction changed skills: %v", s.ExtractedSkills)
	}
	if s.FileError != "" {
		t.Fatalf("failed extraction surfaced an error: %q", s.FileError)
	}
}

func TestCurrentSkillsManualSplit(t *testing.T) {
	s := NewSession()
	s.SelectManual(" Python , SQL ,, Machine Learning ")

	got := s.CurrentSkills()
	want := []string{"Python", "SQL", "Machine Learning"}
	if len(got) != len(want) {
		t.Fatalf("CurrentSkills() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("CurrentSkills()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCurrentSkillsUsesExtractedForLinkedIn(t *testing.T) {
	s := NewSession()
	s.SelectManual("Python")
	_ = s.SetLinkedInURL("https://linkedin.com/in/jane")
	s.ExtractedSkills = []string{"Go", "Docker"}

	got := s.CurrentSkills()
	if len(got) != 2 || got[0] != "Go" || got[1] != "Docker" {
		t.Fatalf("CurrentSkills() = %v, want extracted skills", got)
	}

	// Returned slice is a copy.
	got[0] = "mutated"
	if s.ExtractedSkills[0] != "Go" {
		t.Fatalf("CurrentSkills() aliases session state")
	}
}

func TestParseSkillSource(t *testing.T) {
	for _, raw := range []string{"manual", " Resume ", "LINKEDIN"} {
		if _, err := ParseSkillSource(raw); err != nil {
			t.Fatalf("ParseSkillSource(%q) = %v", raw, err)
		}
	}
	if _, err := ParseSkillSource("github"); !errors.Is(err, ErrUnknownSkillSource) {
		t.Fatalf("want ErrUnknownSkillSource, got %v", err)
	}
}
