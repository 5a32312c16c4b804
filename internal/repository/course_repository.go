package repository

import (
	"context"
	"strings"

	"learnpath/internal/database"
	"learnpath/internal/domain/course"

	"github.com/google/uuid"
)

// CourseRepository is the persistent course catalog. Provider refreshes
// upsert into it; recommendation lookups read from it.
type CourseRepository interface {
	UpsertCourses(ctx context.Context, items []course.Course) error
	ListBySkills(ctx context.Context, skills []string, limit int) ([]course.Course, error)
	ListAll(ctx context.Context, limit int) ([]course.Course, error)
}

type PostgresCourseRepository struct {
	db database.DB
}

func NewPostgresCourseRepository(db database.DB) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db}
}

// UpsertCourses keys on (provider, url) so a re-fetched course updates in
// place instead of duplicating.
func (r *PostgresCourseRepository) UpsertCourses(ctx context.Context, items []course.Course) error {
	for _, c := range items {
		id := c.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		_, err := r.db.Exec(ctx, `
			INSERT INTO courses (id, title, provider, rating, reviews, description, skills, price, duration, language, url, image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (provider, url) DO UPDATE SET
				title = EXCLUDED.title,
				rating = EXCLUDED.rating,
				reviews = EXCLUDED.reviews,
				description = EXCLUDED.description,
				skills = EXCLUDED.skills,
				price = EXCLUDED.price,
				duration = EXCLUDED.duration,
				language = EXCLUDED.language,
				image_url = EXCLUDED.image_url`,
			id, c.Title, c.Provider, c.Rating, c.Reviews, c.Description, c.Skills,
			c.Price, c.Duration, c.Language, c.URL, c.ImageURL,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// ListBySkills returns catalog courses covering at least one of the given
// skills, newest first.
func (r *PostgresCourseRepository) ListBySkills(ctx context.Context, skills []string, limit int) ([]course.Course, error) {
	clean := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		clean = append(clean, s)
	}
	if len(clean) == 0 {
		return r.ListAll(ctx, limit)
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, title, provider, rating, reviews, description, skills, price, duration, language, url, image_url, created_at
		FROM courses
		WHERE skills && $1
		ORDER BY created_at DESC, id
		LIMIT $2`,
		clean, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourses(rows)
}

func (r *PostgresCourseRepository) ListAll(ctx context.Context, limit int) ([]course.Course, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, title, provider, rating, reviews, description, skills, price, duration, language, url, image_url, created_at
		FROM courses
		ORDER BY created_at DESC, id
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourses(rows)
}

func scanCourses(rows database.Rows) ([]course.Course, error) {
	out := make([]course.Course, 0)
	for rows.Next() {
		var c course.Course
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Provider, &c.Rating, &c.Reviews, &c.Description,
			&c.Skills, &c.Price, &c.Duration, &c.Language, &c.URL, &c.ImageURL, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ CourseRepository = (*PostgresCourseRepository)(nil)
