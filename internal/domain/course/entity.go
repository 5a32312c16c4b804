package course

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Course is the unified representation of a course regardless of which
// provider it came from. Instances are immutable once loaded; the view
// deriver never mutates them.
type Course struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Provider    string    `json:"provider"`
	Rating      *float64  `json:"rating,omitempty"`
	Reviews     int       `json:"reviews,omitempty"`
	Description string    `json:"description"`
	Skills      []string  `json:"skills"`
	Price       string    `json:"price"`
	Duration    string    `json:"duration,omitempty"`
	Language    string    `json:"language,omitempty"`
	URL         string    `json:"url,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NumericPrice coerces the free-form price field into a number for sorting
// and range filtering. Unparseable prices (including "Free to audit" style
// strings) coerce to 0.
func (c Course) NumericPrice() float64 {
	return ParsePrice(c.Price)
}

func ParsePrice(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	start := -1
	end := -1
	for i, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			if start < 0 {
				start = i
			}
			end = i + 1
			continue
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		return 0
	}
	v, err := strconv.ParseFloat(strings.Trim(raw[start:end], "."), 64)
	if err != nil {
		return 0
	}
	return v
}

// GapCategory names a group of skills the user is presumed to be missing.
// Categories are ordered; the tab row renders them in this order after the
// implicit "all" tab.
type GapCategory struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// Matches reports whether the course covers at least one skill in the
// category's gap list. Matching is case-sensitive exact, same as the tab
// filter contract.
func (g GapCategory) Matches(c Course) bool {
	for _, want := range g.Skills {
		for _, have := range c.Skills {
			if have == want {
				return true
			}
		}
	}
	return false
}
