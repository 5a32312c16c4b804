package providers

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"learnpath/internal/domain/course"
	"learnpath/internal/taxonomy"
)

// Provider searches one course catalog for courses covering the given
// skills, mapped into the unified Course entity.
type Provider interface {
	Name() string
	Search(ctx context.Context, skills []string, limit int) ([]course.Course, error)
}

// SearchOptions narrows aggregate results after the provider fan-out.
type SearchOptions struct {
	LimitPerProvider int
	MinPrice         float64
	MaxPrice         float64 // 0 means unbounded
}

// ProviderResult captures one provider's outcome. A failing provider never
// fails the aggregate; its error rides alongside the others' courses.
type ProviderResult struct {
	Provider string
	Courses  []course.Course
	Err      error
}

// Aggregator fans a search out to every configured provider concurrently,
// with a per-provider timeout.
type Aggregator struct {
	providers []Provider
	timeout   time.Duration
	logger    *log.Logger
}

func NewAggregator(logger *log.Logger, providers ...Provider) *Aggregator {
	ps := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p == nil {
			continue
		}
		ps = append(ps, p)
	}
	return &Aggregator{providers: ps, timeout: 10 * time.Second, logger: logger}
}

// SearchAll queries every provider and returns their results in provider
// registration order.
func (a *Aggregator) SearchAll(ctx context.Context, skills []string, opts SearchOptions) []ProviderResult {
	if a == nil || len(a.providers) == 0 {
		return nil
	}
	limit := opts.LimitPerProvider
	if limit <= 0 {
		limit = 10
	}

	results := make([]ProviderResult, len(a.providers))
	var mu sync.Mutex

	p := newPool(len(a.providers), len(a.providers))
	p.setRateLimit(0)
	done := p.run(ctx)

	for i, prov := range a.providers {
		i, prov := i, prov
		p.submit(func(ctx context.Context) error {
			callCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			items, err := prov.Search(callCtx, skills, limit)
			if err != nil && a.logger != nil {
				a.logger.Printf("[Providers] %s search failed: %v", prov.Name(), err)
			}

			mu.Lock()
			results[i] = ProviderResult{Provider: prov.Name(), Courses: applyPriceRange(items, opts), Err: err}
			mu.Unlock()
			return err
		})
	}
	p.close()
	for range done {
	}

	return results
}

// Courses flattens results in provider order, dropping failed providers.
func Courses(results []ProviderResult) []course.Course {
	out := make([]course.Course, 0, 32)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		out = append(out, r.Courses...)
	}
	return out
}

func applyPriceRange(items []course.Course, opts SearchOptions) []course.Course {
	if opts.MinPrice <= 0 && opts.MaxPrice <= 0 {
		return items
	}
	out := make([]course.Course, 0, len(items))
	for _, c := range items {
		p := c.NumericPrice()
		if p < opts.MinPrice {
			continue
		}
		if opts.MaxPrice > 0 && p > opts.MaxPrice {
			continue
		}
		out = append(out, c)
	}
	return out
}

// DeriveSkills tags a mapped course with the taxonomy skills its title and
// description mention, so category-tab filtering works on provider results.
func DeriveSkills(title, description string) []string {
	return taxonomy.ExtractSkills(title + " " + description)
}

// SkillsQuery joins skills the way the upstream catalog search syntaxes
// expect.
func SkillsQuery(skills []string) string {
	clean := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		clean = append(clean, s)
	}
	return strings.Join(clean, " OR ")
}
