package taxonomy

import "strings"

// skillPrefixes are phrases that commonly introduce a skill list in resumes
// and profile summaries. Text following a prefix gets a closer look.
var skillPrefixes = []string{
	"proficient in",
	"experience with",
	"experienced in",
	"knowledge of",
	"skilled in",
	"expertise in",
	"certified in",
	"worked with",
	"familiar with",
	"background in",
}

// ExtractSkills scans free text for known skill names. Matching is done on
// normalized text with word boundaries so "Go" does not match "Google".
// The result preserves taxonomy vocabulary order and canonical casing.
func ExtractSkills(text string) []string {
	norm := " " + Normalize(text) + " "
	if strings.TrimSpace(norm) == "" {
		return []string{}
	}

	out := make([]string, 0, 16)
	for _, skill := range AllSkills() {
		needle := " " + Normalize(skill) + " "
		if strings.Contains(norm, needle) {
			out = append(out, skill)
		}
	}
	return out
}

// HasSkillPrefix reports whether the text contains any of the resume skill
// lead-in phrases. Used to decide whether a text block is worth extracting
// from at all.
func HasSkillPrefix(text string) bool {
	low := strings.ToLower(text)
	for _, p := range skillPrefixes {
		if strings.Contains(low, p) {
			return true
		}
	}
	return false
}
