// Package bookmarks owns the persisted bookmark collection and its in-memory mirror.
package bookmarks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/samvad-hq/city-pulse/internal/codec"
	"github.com/samvad-hq/city-pulse/internal/domain"
	"github.com/samvad-hq/city-pulse/internal/logger"
)

// BookmarksKey is the storage key holding the JSON array of bookmarked articles.
const BookmarksKey = "@city_pulse/bookmarks"

// KV is the subset of storage.Store the bookmark store needs.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Store is the only reader and writer of the persisted bookmark collection.
// Every mutation rewrites the whole collection.
type Store struct {
	kv  KV
	log logger.Logger

	// mu serializes read-modify-write cycles so concurrent mutations in this
	// process cannot drop each other's changes.
	mu sync.Mutex
}

// NewStore builds a bookmark store over kv.
func NewStore(kv KV, log logger.Logger) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("bookmark storage must not be nil")
	}
	return &Store{kv: kv, log: logger.Ensure(log)}, nil
}

// List returns the persisted bookmarks in insertion order. A missing or
// undecodable value reads as an empty collection.
func (s *Store) List(ctx context.Context) ([]domain.Article, error) {
	raw, ok, err := s.kv.Get(ctx, BookmarksKey)
	if err != nil {
		return nil, &PersistenceError{Op: "read", Key: BookmarksKey, Err: err}
	}
	if !ok {
		return []domain.Article{}, nil
	}

	articles, err := codec.DeserializeArticles(raw)
	if err != nil {
		var decodeErr *codec.DecodeError
		if errors.As(err, &decodeErr) {
			s.log.WarnObj("stored bookmarks unreadable; treating as empty", "bookmark_read", map[string]any{
				"key":   BookmarksKey,
				"error": err.Error(),
			})
			return []domain.Article{}, nil
		}
		return nil, err
	}
	return articles, nil
}

// Add appends article unless a bookmark with the same URL exists. Duplicate adds
// return nil without writing.
func (s *Store) Add(ctx context.Context, article domain.Article) error {
	if strings.TrimSpace(article.URL) == "" {
		return ErrInvalidArticle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.List(ctx)
	if err != nil {
		return err
	}
	if indexOf(current, article.URL) >= 0 {
		s.log.DebugObj("bookmark already present", "bookmark_add", map[string]any{"url": article.URL})
		return nil
	}

	return s.write(ctx, append(current, article))
}

// Remove drops the bookmark keyed by url. The collection is written back even
// when nothing matched.
func (s *Store) Remove(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.List(ctx)
	if err != nil {
		return err
	}

	kept := current[:0]
	for _, a := range current {
		if a.URL != url {
			kept = append(kept, a)
		}
	}
	return s.write(ctx, kept)
}

// IsBookmarked reports whether url is in the persisted collection.
func (s *Store) IsBookmarked(ctx context.Context, url string) (bool, error) {
	current, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	return indexOf(current, url) >= 0, nil
}

func (s *Store) write(ctx context.Context, articles []domain.Article) error {
	raw, err := codec.SerializeArticles(articles)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: BookmarksKey, Err: err}
	}
	if err := s.kv.Set(ctx, BookmarksKey, raw); err != nil {
		s.log.ErrorObj("bookmark write failed", "bookmark_write", map[string]any{
			"key":   BookmarksKey,
			"count": len(articles),
			"error": err.Error(),
		})
		return &PersistenceError{Op: "write", Key: BookmarksKey, Err: err}
	}
	return nil
}

func indexOf(articles []domain.Article, url string) int {
	for i, a := range articles {
		if a.URL == url {
			return i
		}
	}
	return -1
}
