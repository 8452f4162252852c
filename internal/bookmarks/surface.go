package bookmarks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samvad-hq/city-pulse/internal/domain"
	"github.com/samvad-hq/city-pulse/internal/logger"
	"github.com/samvad-hq/city-pulse/pkg/publishers"
)

// State is the lifecycle of a Surface.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Backend is the bookmark store contract the surface mirrors.
type Backend interface {
	List(ctx context.Context) ([]domain.Article, error)
	Add(ctx context.Context, article domain.Article) error
	Remove(ctx context.Context, url string) error
}

// EventPublisher forwards bookmark changes downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Change describes a confirmed mutation of the bookmark collection.
type Change struct {
	Action    publishers.Action
	Article   domain.Article
	Bookmarks []domain.Article
}

// Surface is the in-memory mirror of the bookmark collection that presentation
// code reads from. It only changes after the backend confirms a mutation.
type Surface struct {
	backend   Backend
	publisher EventPublisher
	log       logger.Logger

	// opMu orders load and mutations against each other.
	opMu sync.Mutex

	mu        sync.RWMutex
	state     State
	bookmarks []domain.Article

	subMu     sync.Mutex
	subs      map[int]func(Change)
	nextSubID int
}

// NewSurface builds a surface over backend. publisher may be nil.
func NewSurface(backend Backend, publisher EventPublisher, log logger.Logger) (*Surface, error) {
	if backend == nil {
		return nil, fmt.Errorf("bookmark backend must not be nil")
	}
	return &Surface{
		backend:   backend,
		publisher: publisher,
		log:       logger.Ensure(log),
		bookmarks: []domain.Article{},
		subs:      make(map[int]func(Change)),
	}, nil
}

// Load reads the persisted collection once. A backend failure leaves the surface
// ready with no bookmarks. Calling Load again after it finished is a no-op.
func (s *Surface) Load(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.state != StateUninitialized {
		s.mu.Unlock()
		return
	}
	s.state = StateLoading
	s.mu.Unlock()

	loaded, err := s.backend.List(ctx)
	if err != nil {
		s.log.ErrorObj("bookmark load failed; starting empty", "bookmark_load", map[string]any{
			"error": err.Error(),
		})
		loaded = []domain.Article{}
	}

	s.mu.Lock()
	s.bookmarks = append([]domain.Article{}, loaded...)
	s.state = StateReady
	s.mu.Unlock()

	s.log.DebugObj("bookmarks loaded", "bookmark_load", map[string]any{"count": len(loaded)})
}

// AddBookmark persists article and then mirrors it locally.
func (s *Surface) AddBookmark(ctx context.Context, article domain.Article) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.backend.Add(ctx, article); err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}

	s.mu.Lock()
	added := indexOf(s.bookmarks, article.URL) < 0
	if added {
		s.bookmarks = append(s.bookmarks, article)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if added {
		s.notify(ctx, Change{Action: publishers.ActionAdded, Article: article, Bookmarks: snapshot})
	}
	return nil
}

// RemoveBookmark deletes the bookmark keyed by url and then drops it locally.
func (s *Surface) RemoveBookmark(ctx context.Context, url string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.backend.Remove(ctx, url); err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}

	s.mu.Lock()
	idx := indexOf(s.bookmarks, url)
	var removed domain.Article
	if idx >= 0 {
		removed = s.bookmarks[idx]
		s.bookmarks = append(s.bookmarks[:idx:idx], s.bookmarks[idx+1:]...)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if idx >= 0 {
		s.notify(ctx, Change{Action: publishers.ActionRemoved, Article: removed, Bookmarks: snapshot})
	}
	return nil
}

// IsBookmarked is a local lookup with no I/O.
func (s *Surface) IsBookmarked(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.bookmarks, url) >= 0
}

// Bookmarks returns a copy of the mirrored collection.
func (s *Surface) Bookmarks() []domain.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Loading reports whether the initial load has not finished yet.
func (s *Surface) Loading() bool {
	return s.State() != StateReady
}

// State returns the current lifecycle state.
func (s *Surface) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn for every confirmed change. The returned func cancels it.
func (s *Surface) Subscribe(fn func(Change)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Surface) snapshotLocked() []domain.Article {
	return append([]domain.Article{}, s.bookmarks...)
}

func (s *Surface) notify(ctx context.Context, change Change) {
	s.subMu.Lock()
	listeners := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.subMu.Unlock()

	for _, fn := range listeners {
		fn(change)
	}

	if s.publisher == nil {
		return
	}
	evt := publishers.NewEvent(change.Action, change.Article, time.Now())
	if _, err := s.publisher.Publish(ctx, evt); err != nil {
		s.log.WarnObj("bookmark event publish failed", "bookmark_event", map[string]any{
			"event_id": evt.ID,
			"action":   string(evt.Action),
			"url":      evt.Article.URL,
			"error":    err.Error(),
		})
	}
}
