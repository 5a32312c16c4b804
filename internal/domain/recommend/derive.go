package recommend

import (
	"sort"
	"strings"

	"learnpath/internal/domain/course"
)

// View is the derived, render-ready slice of the recommendation list.
// LayoutClass depends only on the view mode; membership and order depend
// only on the filters and sort.
type View struct {
	LayoutClass string
	Tab         string
	Courses     []course.Course
}

// Derive computes the courses to display for the given preferences and
// active category tab. It is a pure function: the input slice is never
// reordered or mutated in place.
//
// Filtering order: category tab first, then provider. The provider filter
// was wired but never applied in the interface this service replaced; it is
// applied here deliberately.
func Derive(courses []course.Course, gaps []course.GapCategory, activeTab string, prefs Preferences) View {
	out := make([]course.Course, 0, len(courses))

	active := findCategory(gaps, activeTab)
	for _, c := range courses {
		if active != nil && !active.Matches(c) {
			continue
		}
		if prefs.Provider != ProviderAll && !providerEquals(c.Provider, prefs.Provider) {
			continue
		}
		out = append(out, c)
	}

	sortCourses(out, prefs.Sort)

	return View{
		LayoutClass: layoutClass(prefs.View),
		Tab:         activeTab,
		Courses:     out,
	}
}

// Tabs returns the tab row for the given gap categories: the "all" tab
// followed by each category name in order.
func Tabs(gaps []course.GapCategory) []string {
	out := make([]string, 0, len(gaps)+1)
	out = append(out, TabAll)
	for _, g := range gaps {
		out = append(out, g.Name)
	}
	return out
}

func findCategory(gaps []course.GapCategory, tab string) *course.GapCategory {
	tab = strings.TrimSpace(tab)
	if tab == "" || strings.EqualFold(tab, TabAll) {
		return nil
	}
	for i := range gaps {
		if gaps[i].Name == tab {
			return &gaps[i]
		}
	}
	// Unknown tab filters everything out rather than silently widening.
	return &course.GapCategory{Name: tab}
}

func providerEquals(provider string, filter ProviderFilter) bool {
	return strings.EqualFold(strings.TrimSpace(provider), string(filter))
}

// sortCourses applies the mandated total orders: rating descending (absent
// ratings last), price ascending, and input order for relevance. All sorts
// are stable so ties preserve the incoming order.
func sortCourses(items []course.Course, by SortBy) {
	switch by {
	case SortRating:
		sort.SliceStable(items, func(i, j int) bool {
			ri, rj := items[i].Rating, items[j].Rating
			if ri == nil {
				return false
			}
			if rj == nil {
				return true
			}
			return *ri > *rj
		})
	case SortPrice:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].NumericPrice() < items[j].NumericPrice()
		})
	case SortRelevance:
		// input order
	}
}

func layoutClass(v ViewMode) string {
	if v == ViewList {
		return "course-list"
	}
	return "course-grid"
}
