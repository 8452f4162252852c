package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/samvad-hq/city-pulse/internal/domain"
	"github.com/samvad-hq/city-pulse/pkg/httpclient"
)

type mockResponse struct {
	body   []byte
	status int
}

func (r mockResponse) Body() []byte    { return r.body }
func (r mockResponse) StatusCode() int { return r.status }

type mockClient struct {
	pages map[string]mockResponse
	calls []string
}

func (m *mockClient) Get(_ context.Context, url string, _ map[string]string) (httpclient.Response, error) {
	m.calls = append(m.calls, url)
	resp, ok := m.pages[url]
	if !ok {
		return nil, errors.New("unreachable")
	}
	return resp, nil
}

const samplePage = `<html><head>
<title>Fallback</title>
<meta property="og:description" content=" Flooding closes roads ">
<meta property="og:image" content="https://img/og.jpg">
</head><body></body></html>`

func TestScraperFillsOnlyMissingFields(t *testing.T) {
	client := &mockClient{pages: map[string]mockResponse{
		"https://news/1": {body: []byte(samplePage), status: 200},
		"https://news/2": {body: []byte(samplePage), status: 200},
	}}
	s := NewScraper(client, 0, nil)

	in := []domain.Article{
		{Title: "one", URL: "https://news/1"},
		{Title: "two", URL: "https://news/2", Description: "keep me"},
		{Title: "three", URL: "https://news/3", Description: "full", Image: "https://img/3.jpg"},
	}
	out := s.Enrich(context.Background(), in)

	if out[0].Description != "Flooding closes roads" || out[0].Image != "https://img/og.jpg" {
		t.Fatalf("expected og metadata on first article, got %+v", out[0])
	}
	if out[1].Description != "keep me" || out[1].Image != "https://img/og.jpg" {
		t.Fatalf("existing description overwritten: %+v", out[1])
	}
	if out[2] != in[2] {
		t.Fatalf("complete article changed: %+v", out[2])
	}
	if len(client.calls) != 2 {
		t.Fatalf("expected 2 page fetches, got %v", client.calls)
	}
}

func TestScraperKeepsArticleOnFailure(t *testing.T) {
	client := &mockClient{pages: map[string]mockResponse{
		"https://news/404": {body: []byte("gone"), status: 404},
	}}
	s := NewScraper(client, 0, nil)

	in := []domain.Article{{Title: "a", URL: "https://news/404"}, {Title: "b", URL: "https://news/down"}}
	out := s.Enrich(context.Background(), in)
	if out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("failed scrapes should keep originals, got %+v", out)
	}
}

func TestScraperStopsOnCancelledContext(t *testing.T) {
	client := &mockClient{pages: map[string]mockResponse{}}
	s := NewScraper(client, 0, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := []domain.Article{{Title: "a", URL: "https://news/a"}}
	out := s.Enrich(ctx, in)
	if len(client.calls) != 0 {
		t.Fatalf("expected no fetches after cancel, got %v", client.calls)
	}
	if len(out) != 1 || out[0] != in[0] {
		t.Fatalf("expected originals returned, got %+v", out)
	}
}
