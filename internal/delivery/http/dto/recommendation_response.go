package dto

import (
	"time"

	"learnpath/internal/domain/course"
	"learnpath/internal/domain/gap"
	"learnpath/internal/usecase"
)

// GapSummaryResponse is the analysis header above the course list.
type GapSummaryResponse struct {
	CareerGoal string          `json:"career_goal"`
	CareerPath string          `json:"career_path"`
	Missing    []string        `json:"missing_skills"`
	Partial    []string        `json:"partial_skills"`
	Strengths  []string        `json:"strengths"`
	Focus      []gap.FocusArea `json:"focus_areas"`
	AnalyzedAt time.Time       `json:"analyzed_at"`
}

// RecommendationViewResponse is one derived recommendations page: the tab
// row, the echoed preferences and the filtered, sorted course list.
type RecommendationViewResponse struct {
	Gap         GapSummaryResponse `json:"gap"`
	Tabs        []string           `json:"tabs"`
	ActiveTab   string             `json:"active_tab"`
	View        string             `json:"view"`
	Sort        string             `json:"sort"`
	Provider    string             `json:"provider"`
	LayoutClass string             `json:"layout_class"`
	Total       int                `json:"total"`
	Courses     []course.Course    `json:"courses"`
}

func NewRecommendationViewResponse(rv usecase.RecommendationView, view, sort, provider string) RecommendationViewResponse {
	courses := rv.View.Courses
	if courses == nil {
		courses = []course.Course{}
	}
	return RecommendationViewResponse{
		Gap: GapSummaryResponse{
			CareerGoal: rv.Analysis.CareerGoal,
			CareerPath: rv.Analysis.CareerPath,
			Missing:    emptyIfNil(rv.Analysis.Missing),
			Partial:    emptyIfNil(rv.Analysis.Partial),
			Strengths:  emptyIfNil(rv.Analysis.Strengths),
			Focus:      rv.Analysis.Focus,
			AnalyzedAt: rv.Analysis.CreatedAt,
		},
		Tabs:        rv.Tabs,
		ActiveTab:   rv.View.Tab,
		View:        view,
		Sort:        sort,
		Provider:    provider,
		LayoutClass: rv.View.LayoutClass,
		Total:       len(courses),
		Courses:     courses,
	}
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
