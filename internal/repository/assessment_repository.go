package repository

import (
	"context"
	"encoding/json"
	"time"

	"learnpath/internal/database"
	"learnpath/internal/domain/course"

	"github.com/google/uuid"
)

// Submission is one completed assessment: what the user asked for, what
// they had, and the recommendation snapshot produced for them.
type Submission struct {
	ID              uuid.UUID
	SessionID       uuid.UUID
	UserID          *uuid.UUID
	CareerGoal      string
	SkillSource     string
	CurrentSkills   []string
	MissingSkills   []string
	Recommendations []course.Course
	CreatedAt       time.Time
}

// AssessmentRepository stores completed assessment submissions. The live
// multi-step session state never touches the database; only the final
// analyze result is persisted.
type AssessmentRepository interface {
	SaveSubmission(ctx context.Context, sub Submission) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Submission, error)
}

type PostgresAssessmentRepository struct {
	db database.DB
}

func NewPostgresAssessmentRepository(db database.DB) *PostgresAssessmentRepository {
	return &PostgresAssessmentRepository{db: db}
}

func (r *PostgresAssessmentRepository) SaveSubmission(ctx context.Context, sub Submission) error {
	id := sub.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	recs, err := json.Marshal(sub.Recommendations)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO assessment_submissions
			(id, session_id, user_id, career_goal, skill_source, current_skills, missing_skills, recommendations)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, sub.SessionID, sub.UserID, sub.CareerGoal, sub.SkillSource,
		sub.CurrentSkills, sub.MissingSkills, recs,
	)
	return err
}

func (r *PostgresAssessmentRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, session_id, user_id, career_goal, skill_source, current_skills, missing_skills, recommendations, created_at
		FROM assessment_submissions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Submission, 0)
	for rows.Next() {
		var sub Submission
		var recs []byte
		if err := rows.Scan(
			&sub.ID, &sub.SessionID, &sub.UserID, &sub.CareerGoal, &sub.SkillSource,
			&sub.CurrentSkills, &sub.MissingSkills, &recs, &sub.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(recs) > 0 {
			if err := json.Unmarshal(recs, &sub.Recommendations); err != nil {
				return nil, err
			}
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ AssessmentRepository = (*PostgresAssessmentRepository)(nil)
