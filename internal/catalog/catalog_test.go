package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samvad-hq/city-pulse/internal/domain"
	"github.com/samvad-hq/city-pulse/internal/storage"
)

func TestDefaultCitiesSortedByDisplayName(t *testing.T) {
	all := DefaultCities().All()
	if len(all) != 16 {
		t.Fatalf("expected 16 cities, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if strings.ToLower(all[i-1].DisplayName) > strings.ToLower(all[i].DisplayName) {
			t.Fatalf("cities out of order at %d: %q > %q", i, all[i-1].DisplayName, all[i].DisplayName)
		}
	}
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	cities := DefaultCities()

	got := cities.Search("SAN")
	if len(got) != 2 || got[0].Name != "san-diego" || got[1].Name != "san-francisco" {
		t.Fatalf("unexpected search result %+v", got)
	}
	if got := cities.Search("  "); len(got) != 16 {
		t.Fatalf("blank query should return every city, got %d", len(got))
	}
	if got := cities.Search("los-ang"); len(got) != 1 || got[0].DisplayName != "Los Angeles" {
		t.Fatalf("slug search failed: %+v", got)
	}
	if got := cities.Search("atlantis"); len(got) != 0 {
		t.Fatalf("expected no match, got %+v", got)
	}
}

func TestLoadCitiesYAMLSortsAndValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cities.yaml")
	content := `
cities:
  - name: Pune
    display_name: Pune
  - name: bangalore
    display_name: Bangalore
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write cities file: %v", err)
	}
	cities, err := LoadCities(path)
	if err != nil {
		t.Fatalf("LoadCities: %v", err)
	}
	all := cities.All()
	if len(all) != 2 || all[0].Name != "bangalore" || all[1].Name != "pune" {
		t.Fatalf("unexpected cities %+v", all)
	}

	dup := filepath.Join(dir, "dup.json")
	if err := os.WriteFile(dup, []byte(`{"cities":[{"name":"a"},{"name":"A"}]}`), 0o644); err != nil {
		t.Fatalf("write dup file: %v", err)
	}
	if _, err := LoadCities(dup); err == nil {
		t.Fatalf("expected duplicate city error")
	}
}

func TestLoadCitiesEmptyPathUsesDefaults(t *testing.T) {
	cities, err := LoadCities("")
	if err != nil {
		t.Fatalf("LoadCities: %v", err)
	}
	if _, ok := cities.ByName("Seattle"); !ok {
		t.Fatalf("expected default cities")
	}
}

func TestAlertsSortedBySeverityThenNewest(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	alerts := Alerts(now)

	wantIDs := []string{"alert-4", "alert-1", "alert-2", "alert-3"}
	for i, id := range wantIDs {
		if alerts[i].ID != id {
			t.Fatalf("position %d: got %s want %s", i, alerts[i].ID, id)
		}
	}
	if !alerts[0].Timestamp.Equal(now.Add(-30 * time.Minute)) {
		t.Fatalf("unexpected critical timestamp %v", alerts[0].Timestamp)
	}
}

func TestSortAlertsTieBreaksOnTimestamp(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	alerts := []domain.Alert{
		{ID: "old", Severity: domain.SeverityHigh, Timestamp: base},
		{ID: "low", Severity: domain.SeverityLow, Timestamp: base.Add(time.Hour)},
		{ID: "new", Severity: domain.SeverityHigh, Timestamp: base.Add(time.Minute)},
	}
	SortAlerts(alerts)
	if alerts[0].ID != "new" || alerts[1].ID != "old" || alerts[2].ID != "low" {
		t.Fatalf("unexpected order %v %v %v", alerts[0].ID, alerts[1].ID, alerts[2].ID)
	}
}

func TestSeverityColor(t *testing.T) {
	cases := map[domain.Severity]string{
		domain.SeverityLow:      "#4CAF50",
		domain.SeverityMedium:   "#FF9800",
		domain.SeverityHigh:     "#F44336",
		domain.SeverityCritical: "#9C27B0",
		"unknown":               "",
	}
	for sev, want := range cases {
		if got := SeverityColor(sev); got != want {
			t.Fatalf("%s: got %q want %q", sev, got, want)
		}
	}
}

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingKV) Set(context.Context, string, string) error         { return f.err }

func TestSelectionPersistsChosenCity(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	sel, err := NewSelection(kv, nil, nil)
	if err != nil {
		t.Fatalf("NewSelection: %v", err)
	}

	if _, ok := sel.Current(ctx); ok {
		t.Fatalf("expected no selection on empty storage")
	}
	if _, err := sel.Select(ctx, "Atlantis"); err == nil {
		t.Fatalf("expected unknown city error")
	}
	city, err := sel.Select(ctx, "New-York")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if city.DisplayName != "New York" {
		t.Fatalf("unexpected city %+v", city)
	}

	reopened, _ := NewSelection(kv, DefaultCities(), nil)
	got, ok := reopened.Current(ctx)
	if !ok || got.Name != "new-york" {
		t.Fatalf("selection not persisted: %+v ok=%v", got, ok)
	}
}

func TestSelectionReadFailureMeansNoSelection(t *testing.T) {
	boom := errors.New("disk gone")
	sel, _ := NewSelection(failingKV{err: boom}, nil, nil)
	if _, ok := sel.Current(context.Background()); ok {
		t.Fatalf("expected no selection on read failure")
	}
	if _, err := sel.Select(context.Background(), "miami"); !errors.Is(err, boom) {
		t.Fatalf("expected write failure to propagate, got %v", err)
	}
}
