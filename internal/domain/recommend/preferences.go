package recommend

import (
	"errors"
	"strings"
)

var ErrUnknownPreference = errors.New("unknown preference value")

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

type SortBy string

const (
	SortRelevance SortBy = "relevance"
	SortRating    SortBy = "rating"
	SortPrice     SortBy = "price"
)

type ProviderFilter string

const (
	ProviderAll      ProviderFilter = "all"
	ProviderCoursera ProviderFilter = "coursera"
	ProviderUdemy    ProviderFilter = "udemy"
	ProviderEdx      ProviderFilter = "edx"
)

// TabAll is the implicit first category tab. Selecting it disables
// skill-based filtering entirely.
const TabAll = "all"

// Preferences is the presentational derivation input. It never mutates the
// course list it is applied to.
type Preferences struct {
	View     ViewMode
	Sort     SortBy
	Provider ProviderFilter
}

func DefaultPreferences() Preferences {
	return Preferences{View: ViewGrid, Sort: SortRelevance, Provider: ProviderAll}
}

func ParseViewMode(raw string) (ViewMode, error) {
	switch ViewMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return ViewGrid, nil
	case ViewGrid:
		return ViewGrid, nil
	case ViewList:
		return ViewList, nil
	}
	return "", ErrUnknownPreference
}

func ParseSortBy(raw string) (SortBy, error) {
	switch SortBy(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return SortRelevance, nil
	case SortRelevance:
		return SortRelevance, nil
	case SortRating:
		return SortRating, nil
	case SortPrice:
		return SortPrice, nil
	}
	return "", ErrUnknownPreference
}

func ParseProviderFilter(raw string) (ProviderFilter, error) {
	switch ProviderFilter(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return ProviderAll, nil
	case ProviderAll:
		return ProviderAll, nil
	case ProviderCoursera:
		return ProviderCoursera, nil
	case ProviderUdemy:
		return ProviderUdemy, nil
	case ProviderEdx:
		return ProviderEdx, nil
	}
	return "", ErrUnknownPreference
}
