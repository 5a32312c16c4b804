package taxonomy

import (
	"strings"
	"unicode"
)

// Category groups skills of one kind inside a career path. Order matters:
// categories render as tabs in this order.
type Category struct {
	Name   string
	Skills []string
}

// CareerPath is the skill profile expected for one career goal.
type CareerPath struct {
	Key        string
	Title      string
	Categories []Category
}

const (
	CategoryTechnical  = "Technical"
	CategoryTools      = "Tools"
	CategoryConcepts   = "Concepts"
	CategorySoftSkills = "Soft Skills"
)

var careerPaths = []CareerPath{
	{
		Key:   "data_scientist",
		Title: "Data Scientist",
		Categories: []Category{
			{Name: CategoryTechnical, Skills: []string{"Python", "R", "SQL", "Machine Learning", "Deep Learning", "Statistics"}},
			{Name: CategoryTools, Skills: []string{"Pandas", "TensorFlow", "Jupyter", "Tableau", "Git", "Docker"}},
			{Name: CategoryConcepts, Skills: []string{"Regression", "Classification", "Clustering", "Neural Networks"}},
			{Name: CategorySoftSkills, Skills: []string{"Problem Solving", "Communication", "Data Visualization"}},
		},
	},
	{
		Key:   "software_engineer",
		Title: "Software Engineer",
		Categories: []Category{
			{Name: CategoryTechnical, Skills: []string{"JavaScript", "TypeScript", "Python", "Java", "Go", "SQL"}},
			{Name: CategoryTools, Skills: []string{"Git", "Docker", "Kubernetes", "Jenkins", "AWS"}},
			{Name: CategoryConcepts, Skills: []string{"Microservices", "API Design", "System Design", "CI/CD", "TDD"}},
			{Name: CategorySoftSkills, Skills: []string{"Problem Solving", "Teamwork", "Communication", "Leadership"}},
		},
	},
	{
		Key:   "devops_engineer",
		Title: "DevOps Engineer",
		Categories: []Category{
			{Name: CategoryTechnical, Skills: []string{"Terraform", "Ansible", "Python", "Bash", "Linux"}},
			{Name: CategoryTools, Skills: []string{"Docker", "Kubernetes", "Jenkins", "Prometheus", "Grafana", "AWS"}},
			{Name: CategoryConcepts, Skills: []string{"Infrastructure as Code", "GitOps", "Site Reliability", "Serverless"}},
			{Name: CategorySoftSkills, Skills: []string{"Problem Solving", "Communication", "Incident Management"}},
		},
	},
}

// Paths returns the known career paths in declaration order.
func Paths() []CareerPath {
	out := make([]CareerPath, len(careerPaths))
	copy(out, careerPaths)
	return out
}

// Lookup resolves a free-text career goal to a career path. The goal is
// normalized and matched against path keys and titles; unknown goals fall
// back to the closest title containing a shared word, then to the software
// engineer profile.
func Lookup(goal string) CareerPath {
	norm := Normalize(goal)
	if norm == "" {
		return careerPaths[1]
	}
	key := strings.ReplaceAll(norm, " ", "_")
	for _, p := range careerPaths {
		if p.Key == key || Normalize(p.Title) == norm {
			return p
		}
	}
	words := strings.Fields(norm)
	for _, p := range careerPaths {
		title := Normalize(p.Title)
		for _, w := range words {
			if strings.Contains(title, w) {
				return p
			}
		}
	}
	return careerPaths[1]
}

// Normalize lowercases and strips everything but letters, digits and single
// spaces.
func Normalize(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}
	b := strings.Builder{}
	b.Grow(len(input))
	lastWasSpace := false
	for _, r := range input {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
			lastWasSpace = false
		case unicode.IsSpace(r) || r == '_' || r == '-' || r == '/':
			if b.Len() == 0 || lastWasSpace {
				continue
			}
			b.WriteByte(' ')
			lastWasSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// AllSkills returns every known skill name across all career paths, used as
// the vocabulary for free-text extraction.
func AllSkills() []string {
	seen := make(map[string]struct{}, 128)
	out := make([]string, 0, 128)
	for _, p := range careerPaths {
		for _, cat := range p.Categories {
			for _, s := range cat.Skills {
				key := Normalize(s)
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				out = append(out, s)
			}
		}
	}
	return out
}
