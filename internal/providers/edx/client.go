package edx

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

const defaultBaseURL = "https://api.edx.org/catalog/v1"

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

func (c *Client) Name() string { return "edX" }

type catalogResponse struct {
	Results []catalogRow `json:"results"`
}

type catalogRow struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ShortDesc    string `json:"short_description"`
	MarketingURL string `json:"marketing_url"`
	ImageURL     string `json:"image_url"`
	Price        string `json:"price"`
	PacingType   string `json:"pacing_type"`
}

func (c *Client) Search(ctx context.Context, skills []string, limit int) ([]course.Course, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("nil edx client")
	}
	if limit <= 0 {
		limit = 10
	}

	q := url.Values{}
	q.Set("q", providers.SkillsQuery(skills))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("fields", "title,short_description,marketing_url,image_url,price,pacing_type")

	endpoint := c.baseURL + "/courses/?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("X-Edx-Api-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("edx search failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(rb)))
	}

	var out catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	mapped := make([]course.Course, 0, len(out.Results))
	for _, row := range out.Results {
		price := row.Price
		if strings.TrimSpace(price) == "" {
			price = "Free to audit, Certificate available"
		}
		duration := row.PacingType
		if strings.TrimSpace(duration) == "" {
			duration = "Self-paced"
		}
		mapped = append(mapped, course.Course{
			ID:          uuid.New(),
			Title:       row.Title,
			Provider:    "edX",
			Description: row.ShortDesc,
			Skills:      providers.DeriveSkills(row.Title, row.ShortDesc),
			Price:       price,
			Duration:    duration,
			URL:         row.MarketingURL,
			ImageURL:    row.ImageURL,
			CreatedAt:   time.Now().UTC(),
		})
	}
	return mapped, nil
}

var _ providers.Provider = (*Client)(nil)
