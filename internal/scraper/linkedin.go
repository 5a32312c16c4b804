package scraper

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"learnpath/internal/taxonomy"

	"github.com/chromedp/chromedp"
	"github.com/gocolly/colly/v2"
)

// LinkedInExtractor pulls skill names out of a public LinkedIn profile.
type LinkedInExtractor interface {
	ExtractSkills(ctx context.Context, profileURL string) ([]string, error)
}

// LinkedInScraper fetches the profile page statically first and falls back
// to a headless browser when the static page carries no usable text
// (LinkedIn renders most profile sections client side).
type LinkedInScraper struct {
	logger   *log.Logger
	headless bool
}

func NewLinkedInScraper(logger *log.Logger, headless bool) *LinkedInScraper {
	return &LinkedInScraper{logger: logger, headless: headless}
}

// minProfileText is the threshold below which the static fetch is treated
// as an empty shell and the headless fallback kicks in.
const minProfileText = 200

func (s *LinkedInScraper) ExtractSkills(ctx context.Context, profileURL string) ([]string, error) {
	if s == nil {
		return nil, fmt.Errorf("nil scraper")
	}
	profileURL = strings.TrimSpace(profileURL)
	if !strings.Contains(profileURL, "linkedin.com/") {
		return nil, fmt.Errorf("not a linkedin url: %q", profileURL)
	}

	text, err := s.fetchStatic(ctx, profileURL)
	if err != nil && s.logger != nil {
		s.logger.Printf("[LinkedIn] static fetch failed url=%s err=%v", profileURL, err)
	}

	if len(text) < minProfileText && s.headless {
		headlessText, herr := s.fetchHeadless(ctx, profileURL)
		if herr != nil {
			if s.logger != nil {
				s.logger.Printf("[LinkedIn] headless fetch failed url=%s err=%v", profileURL, herr)
			}
		} else {
			text = headlessText
		}
	}

	if strings.TrimSpace(text) == "" {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("empty profile page")
	}

	return taxonomy.ExtractSkills(text), nil
}

func (s *LinkedInScraper) fetchStatic(ctx context.Context, profileURL string) (string, error) {
	host := hostFromURL(profileURL)
	var c *colly.Collector
	if host == "" {
		c = colly.NewCollector()
	} else {
		c = colly.NewCollector(colly.AllowedDomains(host, "www."+strings.TrimPrefix(host, "www.")))
	}
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 1, Delay: 400 * time.Millisecond})

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", browserUserAgent)
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})

	var b strings.Builder
	appendText := func(raw string) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return
		}
		b.WriteString(raw)
		b.WriteByte(' ')
	}

	// Profile summary and the skills section of the public profile page.
	c.OnHTML("meta[name=description]", func(e *colly.HTMLElement) {
		appendText(e.Attr("content"))
	})
	c.OnHTML("section.summary, section[data-section=summary]", func(e *colly.HTMLElement) {
		appendText(e.Text)
	})
	c.OnHTML("section.skills li, ul.skills-list li", func(e *colly.HTMLElement) {
		appendText(e.Text)
	})
	c.OnHTML("section.experience li", func(e *colly.HTMLElement) {
		appendText(e.Text)
	})

	var reqErr error
	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if err := c.Visit(profileURL); err != nil {
		return "", err
	}
	c.Wait()
	if reqErr != nil {
		return "", reqErr
	}
	return b.String(), nil
}

const browserUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

func (s *LinkedInScraper) fetchHeadless(ctx context.Context, profileURL string) (string, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(browserUserAgent),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, 25*time.Second)
	defer reqCancel()

	var text string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(profileURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.EvaluateAsDevTools(`document.body.innerText`, &text),
	)
	if err != nil {
		return "", err
	}
	return text, nil
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(u.Host)
}

var _ LinkedInExtractor = (*LinkedInScraper)(nil)
