package seeder

import (
	"context"
	"fmt"

	"learnpath/internal/database"
)

// CoursesSeeder loads a small starter catalog so recommendations work
// before the first provider refresh.
type CoursesSeeder struct{}

func (CoursesSeeder) Name() string { return "courses" }

func (CoursesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "courses",
		"id", "title", "provider", "rating", "description", "skills", "price", "duration", "url", "image_url", "created_at",
	); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Title       string
		Provider    string
		Rating      *float64
		Description string
		Skills      []string
		Price       string
		Duration    string
		URL         string
	}{
		{
			Title:       "Machine Learning Specialization",
			Provider:    "Coursera",
			Rating:      ratingPtr(4.9),
			Description: "Foundational machine learning with supervised and unsupervised methods.",
			Skills:      []string{"Machine Learning", "Python", "Regression"},
			Price:       "Free to audit, Certificate available",
			Duration:    "3 months",
			URL:         "https://www.coursera.org/specializations/machine-learning-introduction",
		},
		{
			Title:       "The Complete Python Bootcamp",
			Provider:    "Udemy",
			Rating:      ratingPtr(4.6),
			Description: "Python from zero to advanced, with projects.",
			Skills:      []string{"Python"},
			Price:       "$19.99",
			Duration:    "22 hours",
			URL:         "https://www.udemy.com/course/complete-python-bootcamp/",
		},
		{
			Title:       "Docker and Kubernetes: The Complete Guide",
			Provider:    "Udemy",
			Rating:      ratingPtr(4.7),
			Description: "Build, test and deploy containerized applications.",
			Skills:      []string{"Docker", "Kubernetes", "CI/CD"},
			Price:       "$24.99",
			Duration:    "21 hours",
			URL:         "https://www.udemy.com/course/docker-and-kubernetes-the-complete-guide/",
		},
		{
			Title:       "Introduction to Statistics",
			Provider:    "edX",
			Rating:      nil,
			Description: "Probability, hypothesis testing and regression for data work.",
			Skills:      []string{"Statistics", "Regression"},
			Price:       "Free to audit, Certificate available",
			Duration:    "Self-paced",
			URL:         "https://www.edx.org/learn/statistics/introduction-to-statistics",
		},
		{
			Title:       "Terraform on AWS",
			Provider:    "Udemy",
			Rating:      ratingPtr(4.5),
			Description: "Infrastructure as Code on AWS with Terraform.",
			Skills:      []string{"Terraform", "AWS", "Infrastructure as Code"},
			Price:       "$14.99",
			Duration:    "12 hours",
			URL:         "https://www.udemy.com/course/terraform-on-aws/",
		},
	}

	for _, it := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO courses (id, title, provider, rating, description, skills, price, duration, url)
			VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (provider, url) DO NOTHING`,
			it.Title, it.Provider, it.Rating, it.Description, it.Skills, it.Price, it.Duration, it.URL,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func ratingPtr(v float64) *float64 { return &v }
