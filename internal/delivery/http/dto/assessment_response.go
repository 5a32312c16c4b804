package dto

import (
	"time"

	"learnpath/internal/domain/assessment"

	"github.com/google/uuid"
)

// AssessmentSessionResponse is the wire shape of one live session. CanSubmit
// is derived server side so clients never re-implement the submit gate.
type AssessmentSessionResponse struct {
	ID              uuid.UUID `json:"id"`
	Step            int       `json:"step"`
	FinalStep       int       `json:"final_step"`
	CareerGoal      string    `json:"career_goal"`
	SkillSource     string    `json:"skill_source"`
	ManualSkills    string    `json:"manual_skills,omitempty"`
	ResumeFileName  string    `json:"resume_file_name,omitempty"`
	LinkedInURL     string    `json:"linkedin_url,omitempty"`
	ExtractedSkills []string  `json:"extracted_skills"`
	CanSubmit       bool      `json:"can_submit"`
	Loading         bool      `json:"loading"`
	FileError       string    `json:"file_error,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewAssessmentSessionResponse(s assessment.Session) AssessmentSessionResponse {
	resp := AssessmentSessionResponse{
		ID:              s.ID,
		Step:            s.Step,
		FinalStep:       assessment.FinalStep,
		CareerGoal:      s.CareerGoal,
		SkillSource:     string(s.SkillSource),
		ManualSkills:    s.ManualSkills,
		LinkedInURL:     s.LinkedInURL,
		ExtractedSkills: s.ExtractedSkills,
		CanSubmit:       s.CanSubmit(),
		Loading:         s.Loading,
		FileError:       s.FileError,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	if s.ResumeFile != nil {
		resp.ResumeFileName = s.ResumeFile.Name
	}
	if resp.ExtractedSkills == nil {
		resp.ExtractedSkills = []string{}
	}
	return resp
}
