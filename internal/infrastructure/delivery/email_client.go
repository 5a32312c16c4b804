package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"learnpath/internal/domain/course"
)

// EmailSender hands a recommendation list to the external email-delivery
// collaborator. Fire-and-forget: the caller does not retry or confirm.
type EmailSender interface {
	SendRecommendations(ctx context.Context, address string, recommendations []course.Course) error
}

type httpEmailClient struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

type sendEmailRequest struct {
	Address         string          `json:"address"`
	Recommendations []course.Course `json:"recommendations"`
}

func NewEmailClient(baseURL string, logger *log.Logger) EmailSender {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	return &httpEmailClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
		logger:  logger,
	}
}

func (c *httpEmailClient) SendRecommendations(ctx context.Context, address string, recommendations []course.Course) error {
	if c == nil || c.client == nil {
		return errors.New("nil email client")
	}
	endpoint := c.baseURL + "/send"

	b, err := json.Marshal(sendEmailRequest{Address: strings.TrimSpace(address), Recommendations: recommendations})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		if c.logger != nil {
			c.logger.Printf("[Email] send failed endpoint=%s status=%d body=%q", endpoint, resp.StatusCode, bodyStr)
		}
		return fmt.Errorf("email send failed: status=%d body=%s", resp.StatusCode, bodyStr)
	}
	return nil
}

var _ EmailSender = (*httpEmailClient)(nil)
