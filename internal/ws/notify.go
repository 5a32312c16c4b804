package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// AnalysisCompletedEvent tells subscribers that an assessment finished its
// analyze step and recommendations are ready.
type AnalysisCompletedEvent struct {
	Type        string `json:"type"`
	SessionID   string `json:"session_id"`
	CareerPath  string `json:"career_path"`
	CourseCount int    `json:"course_count"`
	Timestamp   string `json:"timestamp"`
}

// ExtractionCompletedEvent tells subscribers that a resume or LinkedIn
// extraction call returned for a session.
type ExtractionCompletedEvent struct {
	Type       string `json:"type"`
	SessionID  string `json:"session_id"`
	Source     string `json:"source"`
	SkillCount int    `json:"skill_count"`
	Timestamp  string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func NotifyAnalysisCompleted(sessionID uuid.UUID, careerPath string, courseCount int) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := AnalysisCompletedEvent{
		Type:        "analysis_completed",
		SessionID:   sessionID.String(),
		CareerPath:  careerPath,
		CourseCount: courseCount,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}

func NotifyExtractionCompleted(sessionID uuid.UUID, source string, skillCount int) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := ExtractionCompletedEvent{
		Type:       "extraction_completed",
		SessionID:  sessionID.String(),
		Source:     source,
		SkillCount: skillCount,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}
