package gap

import (
	"testing"
)

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func TestAnalyzeBucketsSkills(t *testing.T) {
	res := Analyze("Data Scientist", []string{"python", "Machine Vision", "Tableau"})

	if res.CareerPath != "Data Scientist" {
		t.Fatalf("career path = %q", res.CareerPath)
	}
	// Exact match after normalization.
	if !contains(res.Strengths, "Python") {
		t.Fatalf("Python not a strength: %v", res.Strengths)
	}
	if !contains(res.Strengths, "Tableau") {
		t.Fatalf("Tableau not a strength: %v", res.Strengths)
	}
	// "Machine Vision" shares the word "machine" with "Machine Learning".
	if !contains(res.Partial, "Machine Learning") {
		t.Fatalf("Machine Learning not partial: %v", res.Partial)
	}
	if !contains(res.Missing, "SQL") {
		t.Fatalf("SQL not missing: %v", res.Missing)
	}
	if contains(res.Missing, "Python") {
		t.Fatalf("strength leaked into missing: %v", res.Missing)
	}
}

func TestAnalyzeCategoriesDropEmpty(t *testing.T) {
	// Knowing every technical skill leaves no Technical gap category.
	res := Analyze("Data Scientist", []string{
		"Python", "R", "SQL", "Machine Learning", "Deep Learning", "Statistics",
	})
	for _, cat := range res.Categories {
		if cat.Name == "Technical" {
			t.Fatalf("Technical category present despite no gaps: %v", cat.Skills)
		}
		if len(cat.Skills) == 0 {
			t.Fatalf("empty category %q emitted", cat.Name)
		}
	}
}

func TestAnalyzeFocusPriorityOrder(t *testing.T) {
	res := Analyze("Data Scientist", nil)

	if len(res.Focus) == 0 {
		t.Fatalf("no focus areas for empty skill set")
	}
	for i := 1; i < len(res.Focus); i++ {
		if res.Focus[i-1].Priority < res.Focus[i].Priority {
			t.Fatalf("focus not sorted: %v before %v", res.Focus[i-1], res.Focus[i])
		}
	}
	// Single-word technical skills score 5/1 and must lead.
	if res.Focus[0].Priority != 5 {
		t.Fatalf("top priority = %v, want 5", res.Focus[0].Priority)
	}
}

func TestAnalyzeUnknownGoalFallsBack(t *testing.T) {
	res := Analyze("underwater basket weaving", nil)
	if res.CareerPath != "Software Engineer" {
		t.Fatalf("fallback path = %q, want Software Engineer", res.CareerPath)
	}
}

func TestScoreFocusDifficultyClamp(t *testing.T) {
	fa := scoreFocus("CI/CD", "Concepts")
	if fa.Difficulty < 1 || fa.Difficulty > 3 {
		t.Fatalf("difficulty out of range: %d", fa.Difficulty)
	}
	if fa.Importance != 3 {
		t.Fatalf("concepts importance = %d, want 3", fa.Importance)
	}
}
