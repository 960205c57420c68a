package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// JobPosting is the scraped plain-text view of a job advertisement, used to
// fill the interview record's job fields when the caller passes a URL
// instead of pasting a description.
type JobPosting struct {
	Title       string
	Description string
	URL         string
}

type Fetcher struct {
	http      *http.Client
	userAgent string
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		http:      &http.Client{Timeout: 15 * time.Second},
		userAgent: "mockmate/1.0",
	}
}

const maxDescriptionLen = 8000

func (f *Fetcher) FetchJobPosting(ctx context.Context, rawURL string) (*JobPosting, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch job posting: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("job posting returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse job posting: %w", err)
	}

	doc.Find("script, style, nav, header, footer, .ad, .advertisement").Remove()

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	var parts []string
	doc.Find("p, h2, h3, li, pre").Each(func(_ int, s *goquery.Selection) {
		if text := cleanText(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	description := strings.Join(parts, "\n\n")
	if len(description) > maxDescriptionLen {
		description = description[:maxDescriptionLen]
	}
	if description == "" {
		return nil, fmt.Errorf("no readable content at %s", rawURL)
	}

	return &JobPosting{Title: title, Description: description, URL: rawURL}, nil
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
