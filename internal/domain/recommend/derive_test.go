package recommend

import (
	"errors"
	"testing"

	"learnpath/internal/domain/course"
)

func ratingPtr(v float64) *float64 { return &v }

func sampleCourses() []course.Course {
	return []course.Course{
		{Title: "Python Basics", Provider: "Coursera", Rating: ratingPtr(4.5), Price: "$49.99", Skills: []string{"Python"}},
		{Title: "Advanced SQL", Provider: "Udemy", Rating: ratingPtr(4.7), Price: "$19.99", Skills: []string{"SQL"}},
		{Title: "Docker Deep Dive", Provider: "edX", Rating: nil, Price: "Free to audit", Skills: []string{"Docker"}},
		{Title: "ML Foundations", Provider: "Coursera", Rating: ratingPtr(4.7), Price: "$29.99", Skills: []string{"Machine Learning", "Python"}},
	}
}

func sampleGaps() []course.GapCategory {
	return []course.GapCategory{
		{Name: "Technical", Skills: []string{"Python", "SQL"}},
		{Name: "Tools", Skills: []string{"Docker"}},
	}
}

func titles(items []course.Course) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.Title
	}
	return out
}

func assertOrder(t *testing.T, got []course.Course, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", titles(got), want)
	}
	for i := range want {
		if got[i].Title != want[i] {
			t.Fatalf("position %d: got %v, want %v", i, titles(got), want)
		}
	}
}

func TestDeriveAllTabKeepsInputOrder(t *testing.T) {
	v := Derive(sampleCourses(), sampleGaps(), TabAll, DefaultPreferences())
	assertOrder(t, v.Courses, "Python Basics", "Advanced SQL", "Docker Deep Dive", "ML Foundations")
}

func TestDeriveCategoryFilterIsExactIntersection(t *testing.T) {
	v := Derive(sampleCourses(), sampleGaps(), "Technical", DefaultPreferences())
	assertOrder(t, v.Courses, "Python Basics", "Advanced SQL", "ML Foundations")

	v = Derive(sampleCourses(), sampleGaps(), "Tools", DefaultPreferences())
	assertOrder(t, v.Courses, "Docker Deep Dive")

	// Case-sensitive: "python" is not "Python".
	gaps := []course.GapCategory{{Name: "Technical", Skills: []string{"python"}}}
	v = Derive(sampleCourses(), gaps, "Technical", DefaultPreferences())
	if len(v.Courses) != 0 {
		t.Fatalf("lowercase gap skill matched: %v", titles(v.Courses))
	}
}

func TestDeriveUnknownTabMatchesNothing(t *testing.T) {
	v := Derive(sampleCourses(), sampleGaps(), "Nonsense", DefaultPreferences())
	if len(v.Courses) != 0 {
		t.Fatalf("unknown tab returned %v", titles(v.Courses))
	}
}

func TestDeriveSortRatingDescendingAbsentLast(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.Sort = SortRating
	v := Derive(sampleCourses(), sampleGaps(), TabAll, prefs)
	// 4.7 ties keep input order; nil rating sinks to the end.
	assertOrder(t, v.Courses, "Advanced SQL", "ML Foundations", "Python Basics", "Docker Deep Dive")
}

func TestDeriveSortPriceAscending(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.Sort = SortPrice
	v := Derive(sampleCourses(), sampleGaps(), TabAll, prefs)
	assertOrder(t, v.Courses, "Docker Deep Dive", "Advanced SQL", "ML Foundations", "Python Basics")
}

func TestDeriveProviderFilterApplied(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.Provider = ProviderCoursera
	v := Derive(sampleCourses(), sampleGaps(), TabAll, prefs)
	assertOrder(t, v.Courses, "Python Basics", "ML Foundations")
}

func TestDeriveViewModeOnlyChangesLayout(t *testing.T) {
	grid := Derive(sampleCourses(), sampleGaps(), TabAll, DefaultPreferences())

	prefs := DefaultPreferences()
	prefs.View = ViewList
	list := Derive(sampleCourses(), sampleGaps(), TabAll, prefs)

	if grid.LayoutClass != "course-grid" || list.LayoutClass != "course-list" {
		t.Fatalf("layout classes = %q, %q", grid.LayoutClass, list.LayoutClass)
	}
	if len(grid.Courses) != len(list.Courses) {
		t.Fatalf("view mode changed membership: %d vs %d", len(grid.Courses), len(list.Courses))
	}
	for i := range grid.Courses {
		if grid.Courses[i].Title != list.Courses[i].Title {
			t.Fatalf("view mode changed order at %d", i)
		}
	}
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	in := sampleCourses()
	prefs := DefaultPreferences()
	prefs.Sort = SortPrice
	Derive(in, sampleGaps(), TabAll, prefs)
	assertOrder(t, in, "Python Basics", "Advanced SQL", "Docker Deep Dive", "ML Foundations")
}

func TestTabs(t *testing.T) {
	tabs := Tabs(sampleGaps())
	want := []string{TabAll, "Technical", "Tools"}
	if len(tabs) != len(want) {
		t.Fatalf("Tabs() = %v, want %v", tabs, want)
	}
	for i := range want {
		if tabs[i] != want[i] {
			t.Fatalf("Tabs() = %v, want %v", tabs, want)
		}
	}
}

func TestPreferenceParsers(t *testing.T) {
	if v, err := ParseViewMode(""); err != nil || v != ViewGrid {
		t.Fatalf("ParseViewMode(\"\") = %v, %v", v, err)
	}
	if s, err := ParseSortBy("rating"); err != nil || s != SortRating {
		t.Fatalf("ParseSortBy(rating) = %v, %v", s, err)
	}
	if p, err := ParseProviderFilter("udemy"); err != nil || p != ProviderUdemy {
		t.Fatalf("ParseProviderFilter(udemy) = %v, %v", p, err)
	}
	if _, err := ParseSortBy("popularity"); !errors.Is(err, ErrUnknownPreference) {
		t.Fatalf("want ErrUnknownPreference, got %v", err)
	}
}
