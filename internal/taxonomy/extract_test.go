package taxonomy

import "testing"

func hasSkill(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func TestExtractSkillsFindsKnownSkills(t *testing.T) {
	text := "Proficient in Python and SQL, experienced in Docker and machine learning pipelines."
	got := ExtractSkills(text)

	for _, want := range []string{"Python", "SQL", "Docker", "Machine Learning"} {
		if !hasSkill(got, want) {
			t.Fatalf("ExtractSkills missed %q: %v", want, got)
		}
	}
}

func TestExtractSkillsWordBoundary(t *testing.T) {
	got := ExtractSkills("I searched Google for golang tutorials")
	if hasSkill(got, "Go") {
		t.Fatalf("matched Go inside other words: %v", got)
	}

	got = ExtractSkills("We write services in Go and deploy with Docker")
	if !hasSkill(got, "Go") {
		t.Fatalf("missed standalone Go: %v", got)
	}
}

func TestExtractSkillsEmptyText(t *testing.T) {
	if got := ExtractSkills("   "); len(got) != 0 {
		t.Fatalf("ExtractSkills on blank text = %v", got)
	}
}

func TestHasSkillPrefix(t *testing.T) {
	if !HasSkillPrefix("I am proficient in distributed systems") {
		t.Fatalf("missed 'proficient in'")
	}
	if HasSkillPrefix("I enjoy long walks") {
		t.Fatalf("false positive")
	}
}

func TestLookup(t *testing.T) {
	if p := Lookup("devops engineer"); p.Key != "devops_engineer" {
		t.Fatalf("Lookup(devops engineer) = %q", p.Key)
	}
	if p := Lookup("Data-Scientist"); p.Key != "data_scientist" {
		t.Fatalf("Lookup(Data-Scientist) = %q", p.Key)
	}
	if p := Lookup("chef"); p.Key != "software_engineer" {
		t.Fatalf("unknown goal fell back to %q", p.Key)
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  Machine   Learning ": "machine learning",
		"CI/CD":                 "ci cd",
		"Node.js":               "nodejs",
		"":                      "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
