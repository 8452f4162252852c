package app

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/samvad-hq/city-pulse/internal/config"
	"github.com/samvad-hq/city-pulse/internal/domain"
	"github.com/samvad-hq/city-pulse/internal/storage"
	"github.com/samvad-hq/city-pulse/pkg/httpclient"
	"github.com/samvad-hq/city-pulse/pkg/publishers"
)

type stubResponse struct {
	status int
	body   string
}

func (r stubResponse) Body() []byte    { return []byte(r.body) }
func (r stubResponse) StatusCode() int { return r.status }

type stubClient struct {
	mu   sync.Mutex
	urls []string
	body string
}

func (c *stubClient) Get(_ context.Context, url string, _ map[string]string) (httpclient.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.urls = append(c.urls, url)
	return stubResponse{status: 200, body: c.body}, nil
}

type capturePublisher struct {
	mu     sync.Mutex
	events []publishers.Event
	closed bool
}

func (c *capturePublisher) ID() string   { return "capture" }
func (c *capturePublisher) Type() string { return publishers.TypeHTTP }

func (c *capturePublisher) Publish(_ context.Context, evt publishers.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, evt)
	return nil
}

func (c *capturePublisher) Close() error {
	c.closed = true
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		AppName:        "city-pulse",
		StorageType:    storage.TypeMemory,
		NewsAPIKey:     "key",
		NewsAPIBaseURL: "https://news.test",
		NewsTimeout:    time.Second,
	}
}

func TestNewWiresBookmarksAndPublishers(t *testing.T) {
	dir := t.TempDir()
	pubFile := filepath.Join(dir, "publishers.yaml")
	content := `
publishers:
  - id: audit
    type: http
    http:
      url: https://hooks.test/bookmarks
`
	if err := os.WriteFile(pubFile, []byte(content), 0o644); err != nil {
		t.Fatalf("write publishers file: %v", err)
	}

	capture := &capturePublisher{}
	reg := publishers.NewRegistry(map[string]publishers.Builder{
		publishers.TypeHTTP: func(context.Context, publishers.PublisherConfig, publishers.Logger) (publishers.Publisher, error) {
			return capture, nil
		},
	})

	cfg := testConfig()
	cfg.PublishersFile = pubFile
	ctx := context.Background()

	a, err := New(ctx, cfg, nil, Options{PublisherRegistry: reg, NewsClient: &stubClient{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	a.Surface.Load(ctx)
	art := domain.Article{Title: "T", URL: "https://x/1"}
	if err := a.Surface.AddBookmark(ctx, art); err != nil {
		t.Fatalf("AddBookmark: %v", err)
	}
	ok, err := a.Bookmarks.IsBookmarked(ctx, art.URL)
	if err != nil || !ok {
		t.Fatalf("expected persisted bookmark, ok=%v err=%v", ok, err)
	}
	if len(capture.events) != 1 || capture.events[0].Action != publishers.ActionAdded {
		t.Fatalf("expected one added event, got %+v", capture.events)
	}

	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !capture.closed {
		t.Fatalf("expected publisher closed")
	}
}

func TestNewsUsesSelectedCity(t *testing.T) {
	ctx := context.Background()
	client := &stubClient{body: `{"status":"ok","articles":[{"title":"Rain","url":"https://n/1","publishedAt":"2024-01-01"}]}`}
	a, err := New(ctx, testConfig(), nil, Options{Store: storage.NewMemoryStore(), NewsClient: client})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if _, err := a.ResolveCity(ctx, ""); err == nil {
		t.Fatalf("expected error without selection")
	}
	if _, err := a.Selection.Select(ctx, "seattle"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	city, err := a.ResolveCity(ctx, "")
	if err != nil || city != "seattle" {
		t.Fatalf("ResolveCity = %q, %v", city, err)
	}

	articles, err := a.Feed.Refresh(ctx, city)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(articles) != 1 || articles[0].URL != "https://n/1" {
		t.Fatalf("unexpected articles %+v", articles)
	}
	if len(client.urls) != 1 {
		t.Fatalf("expected one request, got %d", len(client.urls))
	}
}

func TestNewRejectsDisabledStorage(t *testing.T) {
	cfg := testConfig()
	cfg.StorageType = "none"
	if _, err := New(context.Background(), cfg, nil, Options{}); err == nil {
		t.Fatalf("expected storage error")
	}
}
