package gap

import (
	"sort"
	"strings"

	"learnpath/internal/domain/course"
	"learnpath/internal/taxonomy"
)

// Result buckets a career path's required skills against what the user
// already has.
type Result struct {
	CareerPath string
	Missing    []string
	Partial    []string
	Strengths  []string

	// Categories holds the missing skills grouped by taxonomy category, in
	// taxonomy order, with empty categories dropped. These drive the
	// recommendation tab row.
	Categories []course.GapCategory

	// Focus is the prioritized study order for the missing skills.
	Focus []FocusArea
}

// FocusArea scores one missing skill. Priority is importance over
// difficulty, so important-but-quick skills sort first.
type FocusArea struct {
	Skill      string  `json:"skill"`
	Importance int     `json:"importance"`
	Difficulty int     `json:"difficulty"`
	Priority   float64 `json:"priority"`
}

// Analyze compares the user's current skills against the requirements of
// the career goal. A requirement matched exactly (after normalization) is a
// strength; one sharing a word with a current skill is a partial match;
// everything else is missing.
func Analyze(careerGoal string, currentSkills []string) Result {
	path := taxonomy.Lookup(careerGoal)

	current := make(map[string]struct{}, len(currentSkills))
	currentWords := make(map[string]struct{}, len(currentSkills)*2)
	for _, s := range currentSkills {
		norm := taxonomy.Normalize(s)
		if norm == "" {
			continue
		}
		current[norm] = struct{}{}
		for _, w := range strings.Fields(norm) {
			currentWords[w] = struct{}{}
		}
	}

	res := Result{CareerPath: path.Title}
	for _, cat := range path.Categories {
		var missingInCat []string
		for _, req := range cat.Skills {
			norm := taxonomy.Normalize(req)
			switch classify(norm, current, currentWords) {
			case matchExact:
				res.Strengths = append(res.Strengths, req)
			case matchPartial:
				res.Partial = append(res.Partial, req)
			default:
				res.Missing = append(res.Missing, req)
				missingInCat = append(missingInCat, req)
				res.Focus = append(res.Focus, scoreFocus(req, cat.Name))
			}
		}
		if len(missingInCat) > 0 {
			res.Categories = append(res.Categories, course.GapCategory{Name: cat.Name, Skills: missingInCat})
		}
	}

	sort.SliceStable(res.Focus, func(i, j int) bool {
		return res.Focus[i].Priority > res.Focus[j].Priority
	})
	return res
}

type matchKind int

const (
	matchNone matchKind = iota
	matchPartial
	matchExact
)

func classify(norm string, current, currentWords map[string]struct{}) matchKind {
	if _, ok := current[norm]; ok {
		return matchExact
	}
	for _, w := range strings.Fields(norm) {
		if _, ok := currentWords[w]; ok {
			return matchPartial
		}
	}
	return matchNone
}

// scoreFocus assigns importance by taxonomy category and estimates
// difficulty by how many words name the skill (multi-word skills are
// broader topics).
func scoreFocus(skill, category string) FocusArea {
	importance := 2
	switch category {
	case taxonomy.CategoryTechnical:
		importance = 5
	case taxonomy.CategoryTools:
		importance = 4
	case taxonomy.CategoryConcepts:
		importance = 3
	}

	difficulty := len(strings.Fields(skill))
	if difficulty < 1 {
		difficulty = 1
	}
	if difficulty > 3 {
		difficulty = 3
	}

	return FocusArea{
		Skill:      skill,
		Importance: importance,
		Difficulty: difficulty,
		Priority:   float64(importance) / float64(difficulty),
	}
}
