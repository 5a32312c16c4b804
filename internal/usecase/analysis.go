package usecase

import (
	"time"

	"learnpath/internal/domain/course"
	"learnpath/internal/domain/gap"

	"github.com/google/uuid"
)

// Analysis is the completed result of one assessment submission: the gap
// buckets plus the course snapshot recommendations are derived from. It is
// what gets cached per session and what every recommendation read starts
// from.
type Analysis struct {
	SessionID  uuid.UUID            `json:"session_id"`
	CareerGoal string               `json:"career_goal"`
	CareerPath string               `json:"career_path"`
	Missing    []string             `json:"missing_skills"`
	Partial    []string             `json:"partial_skills"`
	Strengths  []string             `json:"strengths"`
	Categories []course.GapCategory `json:"categories"`
	Focus      []gap.FocusArea      `json:"focus_areas"`
	Courses    []course.Course      `json:"courses"`
	CreatedAt  time.Time            `json:"created_at"`
}

func recommendationsKey(sessionID uuid.UUID) string {
	return "recs:" + sessionID.String()
}
