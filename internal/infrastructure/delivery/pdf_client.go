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

// PDFGenerator asks the external PDF-generation collaborator to render the
// recommendation list. Fire-and-forget like email delivery.
type PDFGenerator interface {
	GenerateRecommendations(ctx context.Context, recommendations []course.Course) error
}

type httpPDFClient struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

type generatePDFRequest struct {
	Recommendations []course.Course `json:"recommendations"`
}

func NewPDFClient(baseURL string, logger *log.Logger) PDFGenerator {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	return &httpPDFClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

func (c *httpPDFClient) GenerateRecommendations(ctx context.Context, recommendations []course.Course) error {
	if c == nil || c.client == nil {
		return errors.New("nil pdf client")
	}
	endpoint := c.baseURL + "/generate"

	b, err := json.Marshal(generatePDFRequest{Recommendations: recommendations})
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
			c.logger.Printf("[PDF] generate failed endpoint=%s status=%d body=%q", endpoint, resp.StatusCode, bodyStr)
		}
		return fmt.Errorf("pdf generate failed: status=%d body=%s", resp.StatusCode, bodyStr)
	}
	return nil
}

var _ PDFGenerator = (*httpPDFClient)(nil)
