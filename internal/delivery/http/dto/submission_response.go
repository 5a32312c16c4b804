package dto

import (
	"time"

	"learnpath/internal/domain/course"
	"learnpath/internal/repository"

	"github.com/google/uuid"
)

// SubmissionResponse is one entry of a user's assessment history.
type SubmissionResponse struct {
	ID              uuid.UUID       `json:"id"`
	SessionID       uuid.UUID       `json:"session_id"`
	CareerGoal      string          `json:"career_goal"`
	SkillSource     string          `json:"skill_source"`
	CurrentSkills   []string        `json:"current_skills"`
	MissingSkills   []string        `json:"missing_skills"`
	Recommendations []course.Course `json:"recommendations"`
	CreatedAt       time.Time       `json:"created_at"`
}

func NewSubmissionResponses(subs []repository.Submission) []SubmissionResponse {
	out := make([]SubmissionResponse, 0, len(subs))
	for _, s := range subs {
		recs := s.Recommendations
		if recs == nil {
			recs = []course.Course{}
		}
		out = append(out, SubmissionResponse{
			ID:              s.ID,
			SessionID:       s.SessionID,
			CareerGoal:      s.CareerGoal,
			SkillSource:     s.SkillSource,
			CurrentSkills:   emptyIfNil(s.CurrentSkills),
			MissingSkills:   emptyIfNil(s.MissingSkills),
			Recommendations: recs,
			CreatedAt:       s.CreatedAt,
		})
	}
	return out
}
