package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/samvad-hq/city-pulse/internal/app"
	"github.com/samvad-hq/city-pulse/internal/config"
	"github.com/samvad-hq/city-pulse/internal/storage"
	"github.com/samvad-hq/city-pulse/pkg/httpclient"
)

type cannedResponse struct{ body string }

func (r cannedResponse) Body() []byte    { return []byte(r.body) }
func (r cannedResponse) StatusCode() int { return 200 }

func cannedClient(body string) httpclient.Client {
	return httpclient.ClientFunc(func(context.Context, string, map[string]string) (httpclient.Response, error) {
		return cannedResponse{body: body}, nil
	})
}

const newsBody = `{"status":"ok","articles":[
 {"title":"Ferry schedule changes","url":"https://n/ferry","publishedAt":"2024-05-01T10:00:00Z"},
 {"title":null,"url":"https://n/untitled","publishedAt":"2024-05-01T09:00:00Z"}
]}`

func setupCLI(t *testing.T) func(args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	store := storage.NewMemoryStore()
	cfg := &config.Config{
		StorageType:    storage.TypeMemory,
		NewsAPIBaseURL: "https://news.test",
		NewsTimeout:    time.Second,
	}
	factory := func(ctx context.Context) (*app.App, error) {
		return app.New(ctx, cfg, nil, app.Options{Store: store, NewsClient: cannedClient(newsBody)})
	}
	return func(args ...string) (string, error) {
		root := NewRootCommand(factory)
		buf := new(bytes.Buffer)
		root.SetOut(buf)
		root.SetErr(buf)
		root.SetArgs(args)
		err := root.Execute()
		return buf.String(), err
	}
}

func TestCitiesSearch(t *testing.T) {
	run := setupCLI(t)
	out, err := run("cities", "san")
	if err != nil {
		t.Fatalf("cities: %v", err)
	}
	if !strings.Contains(out, "San Diego") || !strings.Contains(out, "San Francisco") || strings.Contains(out, "Boston") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestCitySelectAndShow(t *testing.T) {
	run := setupCLI(t)
	if out, _ := run("city", "show"); !strings.Contains(out, "no city selected") {
		t.Fatalf("unexpected output: %s", out)
	}
	if _, err := run("city", "select", "New", "York"); err != nil {
		t.Fatalf("select: %v", err)
	}
	out, err := run("city", "show")
	if err != nil || !strings.Contains(out, "New York (new-york)") {
		t.Fatalf("show = %q, %v", out, err)
	}
	if _, err := run("city", "select", "atlantis"); err == nil {
		t.Fatalf("expected unknown city error")
	}
}

func TestNewsSaveThenBookmarksLifecycle(t *testing.T) {
	run := setupCLI(t)
	if _, err := run("news"); err == nil {
		t.Fatalf("expected error without a city")
	}

	out, err := run("news", "seattle", "--save", "1")
	if err != nil {
		t.Fatalf("news: %v", err)
	}
	if !strings.Contains(out, "Ferry schedule changes") || !strings.Contains(out, "Untitled") {
		t.Fatalf("unexpected news output:\n%s", out)
	}

	out, _ = run("bookmarks", "check", "https://n/ferry")
	if strings.TrimSpace(out) != "bookmarked" {
		t.Fatalf("check = %q", out)
	}

	if _, err := run("bookmarks", "add", "https://n/other", "--title", "Other"); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, _ = run("bookmarks", "add", "https://n/other")
	if !strings.Contains(out, "already bookmarked") {
		t.Fatalf("duplicate add output %q", out)
	}

	out, err = run("bookmarks", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.Index(out, "https://n/ferry") > strings.Index(out, "https://n/other") {
		t.Fatalf("bookmarks not in insertion order:\n%s", out)
	}

	if _, err := run("bookmarks", "remove", "https://n/ferry"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	out, _ = run("bookmarks", "check", "https://n/ferry")
	if strings.TrimSpace(out) != "not bookmarked" {
		t.Fatalf("check after remove = %q", out)
	}
}

func TestAddRequiresURL(t *testing.T) {
	run := setupCLI(t)
	if _, err := run("bookmarks", "add", " "); err == nil {
		t.Fatalf("expected invalid article error")
	}
}

func TestAlertsCriticalFirst(t *testing.T) {
	run := setupCLI(t)
	out, err := run("alerts")
	if err != nil {
		t.Fatalf("alerts: %v", err)
	}
	critical := strings.Index(out, "Emergency Evacuation Notice")
	low := strings.Index(out, "Air Quality Alert")
	if critical < 0 || low < 0 || critical > low {
		t.Fatalf("unexpected alert order:\n%s", out)
	}
	if !strings.Contains(out, "#9C27B0") {
		t.Fatalf("missing severity color:\n%s", out)
	}
}
