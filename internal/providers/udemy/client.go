package udemy

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

const defaultBaseURL = "https://www.udemy.com/api-2.0"

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

func (c *Client) Name() string { return "Udemy" }

type listResponse struct {
	Results []courseRow `json:"results"`
}

type courseRow struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Headline   string  `json:"headline"`
	URL        string  `json:"url"`
	Image      string  `json:"image_480x270"`
	Price      string  `json:"price"`
	AvgRating  float64 `json:"avg_rating"`
	NumReviews int     `json:"num_reviews"`
}

func (c *Client) Search(ctx context.Context, skills []string, limit int) ([]course.Course, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("nil udemy client")
	}
	if limit <= 0 {
		limit = 10
	}

	q := url.Values{}
	q.Set("search", providers.SkillsQuery(skills))
	q.Set("page_size", strconv.Itoa(limit))
	q.Set("ordering", "relevance")
	q.Set("fields[course]", "title,headline,url,image_480x270,price,avg_rating,num_reviews")

	endpoint := c.baseURL + "/courses/?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
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
		return nil, fmt.Errorf("udemy search failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(rb)))
	}

	var out listResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	mapped := make([]course.Course, 0, len(out.Results))
	for _, row := range out.Results {
		rating := row.AvgRating
		courseURL := row.URL
		if strings.HasPrefix(courseURL, "/") {
			courseURL = "https://www.udemy.com" + courseURL
		}
		price := row.Price
		if price != "" && !strings.HasPrefix(price, "$") {
			price = "$" + price
		}
		mapped = append(mapped, course.Course{
			ID:          uuid.New(),
			Title:       row.Title,
			Provider:    "Udemy",
			Rating:      &rating,
			Reviews:     row.NumReviews,
			Description: row.Headline,
			Skills:      providers.DeriveSkills(row.Title, row.Headline),
			Price:       price,
			URL:         courseURL,
			ImageURL:    row.Image,
			CreatedAt:   time.Now().UTC(),
		})
	}
	return mapped, nil
}

var _ providers.Provider = (*Client)(nil)
