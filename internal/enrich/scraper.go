// Package enrich fills missing article metadata from the article page's OG tags.
package enrich

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/city-pulse/internal/domain"
	"github.com/samvad-hq/city-pulse/internal/logger"
	"github.com/samvad-hq/city-pulse/pkg/httpclient"
)

const (
	maxHTMLBodyBytes = 1 << 20 // 1 MiB
)

// Scraper fetches article pages and extracts metadata from OG tags.
type Scraper struct {
	client  httpclient.Client
	delay   time.Duration
	headers map[string]string
	log     logger.Logger
}

// NewScraper constructs a scraper. delay throttles consecutive page fetches.
func NewScraper(client httpclient.Client, delay time.Duration, log logger.Logger) *Scraper {
	if client == nil {
		client = httpclient.NewRestyClient(10 * time.Second)
	}
	return &Scraper{
		client:  client,
		delay:   delay,
		headers: map[string]string{"Accept": "text/html"},
		log:     logger.Ensure(log),
	}
}

// Enrich fetches the page of every article missing a description or image and
// fills only the empty fields. Failures keep the article unchanged.
func (s *Scraper) Enrich(ctx context.Context, articles []domain.Article) []domain.Article {
	// seed output with originals so we can return what we have on abort
	out := append([]domain.Article(nil), articles...)

	fetched := 0
	for i, art := range articles {
		if !needsEnrichment(art) {
			continue
		}

		if fetched > 0 && s.delay > 0 {
			timer := time.NewTimer(s.delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return out
			case <-timer.C:
			}
		}
		select {
		case <-ctx.Done():
			return out
		default:
		}
		fetched++

		enriched, err := s.fetchAndParse(ctx, art)
		if err != nil {
			s.log.WarnObj("article metadata scrape failed", "metadata_error", map[string]any{
				"url":   art.URL,
				"error": err.Error(),
			})
			continue
		}
		out[i] = enriched
	}

	return out
}

func needsEnrichment(a domain.Article) bool {
	return a.URL != "" && (strings.TrimSpace(a.Description) == "" || strings.TrimSpace(a.Image) == "")
}

func (s *Scraper) fetchAndParse(ctx context.Context, art domain.Article) (domain.Article, error) {
	resp, err := s.client.Get(ctx, art.URL, s.headers)
	if err != nil {
		return art, fmt.Errorf("http fetch: %w", err)
	}

	if resp.StatusCode() != 200 {
		snippet := strings.TrimSpace(string(resp.Body()))
		if len(snippet) > 1024 {
			snippet = snippet[:1024]
		}
		return art, fmt.Errorf("status %d body: %s", resp.StatusCode(), snippet)
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	meta, err := parseMeta(body)
	if err != nil {
		return art, err
	}
	updated := art
	if strings.TrimSpace(updated.Description) == "" && meta.Description != "" {
		updated.Description = meta.Description
	}
	if strings.TrimSpace(updated.Image) == "" && meta.ImageURL != "" {
		updated.Image = meta.ImageURL
	}

	return updated, nil
}

func parseMeta(body []byte) (pageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return pageMeta{}, fmt.Errorf("parse html: %w", err)
	}

	extract := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	return pageMeta{
		Description: firstNonEmpty(
			extract(`meta[property="og:description"]`),
			extract(`meta[name="description"]`),
		),
		ImageURL: firstNonEmpty(
			extract(`meta[property="og:image"]`),
			extract(`meta[name="twitter:image"]`),
		),
	}, nil
}

type pageMeta struct {
	Description string
	ImageURL    string
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
