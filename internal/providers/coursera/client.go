package coursera

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"learnpath/internal/domain/course"
	"learnpath/internal/providers"

	"github.com/google/uuid"
)

const defaultBaseURL = "https://api.coursera.org/api/courses.v1"

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func New(baseURL, apiKey string) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Name() string { return "Coursera" }

type searchResponse struct {
	Elements []courseElement `json:"elements"`
}

type courseElement struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	Workload     string   `json:"workload"`
	PartnerLogo  string   `json:"partnerLogo"`
	Languages    []string `json:"primaryLanguages"`
	Certificates []string `json:"certificates"`
}

func (c *Client) Search(ctx context.Context, skills []string, limit int) ([]course.Course, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("nil coursera client")
	}
	if limit <= 0 {
		limit = 10
	}

	q := url.Values{}
	q.Set("q", providers.SkillsQuery(skills))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("fields", "name,slug,description,workload,primaryLanguages,partnerLogo,certificates")

	endpoint := c.baseURL + "/search?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("coursera search failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(rb)))
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	mapped := make([]course.Course, 0, len(out.Elements))
	for _, el := range out.Elements {
		language := "English"
		if len(el.Languages) > 0 && strings.TrimSpace(el.Languages[0]) != "" {
			language = el.Languages[0]
		}
		duration := el.Workload
		if strings.TrimSpace(duration) == "" {
			duration = "Flexible"
		}
		mapped = append(mapped, course.Course{
			ID:          uuid.New(),
			Title:       el.Name,
			Provider:    "Coursera",
			Description: el.Description,
			Skills:      providers.DeriveSkills(el.Name, el.Description),
			Price:       "Free to audit, Certificate available",
			Duration:    duration,
			Language:    language,
			URL:         "https://www.coursera.org/learn/" + el.Slug,
			ImageURL:    el.PartnerLogo,
			CreatedAt:   time.Now().UTC(),
		})
	}
	return mapped, nil
}

var _ providers.Provider = (*Client)(nil)
