package news

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/samvad-hq/city-pulse/internal/domain"
	"github.com/samvad-hq/city-pulse/internal/logger"
)

// Enricher fills in missing article metadata after a fetch.
type Enricher interface {
	Enrich(ctx context.Context, articles []domain.Article) []domain.Article
}

// Snapshot is the feed as presentation code sees it.
type Snapshot struct {
	City      string
	Articles  []domain.Article
	Err       error
	UpdatedAt time.Time
}

// Feed holds the displayed article list. A failed refresh never replaces the list.
type Feed struct {
	fetcher  Fetcher
	enricher Enricher
	log      logger.Logger
	now      func() time.Time

	mu       sync.RWMutex
	city     string
	articles []domain.Article
	err      error
	updated  time.Time
}

// NewFeed wires a feed. enricher may be nil.
func NewFeed(fetcher Fetcher, enricher Enricher, log logger.Logger) (*Feed, error) {
	if fetcher == nil {
		return nil, errors.New("news fetcher must not be nil")
	}
	return &Feed{
		fetcher:  fetcher,
		enricher: enricher,
		log:      logger.Ensure(log),
		now:      time.Now,
	}, nil
}

// Refresh fetches news for city. On success the list and city are replaced; on
// failure the previous list is kept and the error is recorded and returned.
func (f *Feed) Refresh(ctx context.Context, city string) ([]domain.Article, error) {
	city = strings.TrimSpace(city)
	start := f.now()

	articles, err := f.fetcher.FetchArticles(ctx, city)
	if err != nil {
		f.mu.Lock()
		f.err = err
		f.mu.Unlock()
		f.log.WarnObj("news refresh failed; keeping previous feed", "news_refresh", map[string]any{
			"city":  city,
			"error": err.Error(),
		})
		return nil, err
	}

	if f.enricher != nil {
		articles = f.enricher.Enrich(ctx, articles)
	}

	f.mu.Lock()
	f.city = city
	f.articles = append([]domain.Article{}, articles...)
	f.err = nil
	f.updated = f.now()
	f.mu.Unlock()

	f.log.InfoObj("news refreshed", "news_refresh", map[string]any{
		"city":       city,
		"articles":   len(articles),
		"elapsed_ms": f.now().Sub(start).Milliseconds(),
	})
	return articles, nil
}

// Snapshot returns a copy of the current feed state.
func (f *Feed) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return Snapshot{
		City:      f.city,
		Articles:  append([]domain.Article{}, f.articles...),
		Err:       f.err,
		UpdatedAt: f.updated,
	}
}
