package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"learnpath/internal/app"
	"learnpath/internal/config"
	"learnpath/internal/providers"
	"learnpath/internal/repository"
	"learnpath/internal/taxonomy"
)

const (
	refreshLockKey = "catalog:refresh"
	refreshLockTTL = 10 * time.Minute
)

// Refreshes the course catalog from the live providers. Run it on a
// schedule so recommendation reads stay on the warm catalog path.
func main() {
	skillsFlag := flag.String("skills", "", "comma-separated skills to refresh (default: full taxonomy)")
	limit := flag.Int("limit", 10, "courses per provider per skill batch")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	skills := parseSkills(*skillsFlag)
	if len(skills) == 0 {
		skills = taxonomy.AllSkills()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Single-flight across instances: a scheduled run that finds the lock
	// held leaves the refresh to whoever holds it.
	ok, err := c.Redis.SetIfNotExists(ctx, refreshLockKey, time.Now().UTC().Format(time.RFC3339), refreshLockTTL)
	if err == nil && !ok {
		log.Printf("[Catalog] refresh already running elsewhere, skipping")
		return
	}
	defer func() {
		_ = c.Redis.Delete(context.Background(), refreshLockKey)
	}()

	aggregator := c.Aggregator()
	catalog := repository.NewPostgresCourseRepository(c.DB)

	total := 0
	for _, batch := range batches(skills, 5) {
		results := aggregator.SearchAll(ctx, batch, providers.SearchOptions{LimitPerProvider: *limit})
		items := providers.Courses(results)
		if len(items) == 0 {
			continue
		}
		if err := catalog.UpsertCourses(ctx, items); err != nil {
			log.Fatalf("catalog upsert failed: %v", err)
		}
		total += len(items)
	}

	log.Printf("[Catalog] refreshed %d courses across %d skills", total, len(skills))
}

func parseSkills(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func batches(skills []string, size int) [][]string {
	if size <= 0 {
		size = 5
	}
	var out [][]string
	for len(skills) > size {
		out = append(out, skills[:size])
		skills = skills[size:]
	}
	if len(skills) > 0 {
		out = append(out, skills)
	}
	return out
}
