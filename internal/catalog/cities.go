// Package catalog holds the static city list, the selected city and the emergency alerts.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samvad-hq/city-pulse/internal/domain"
	"gopkg.in/yaml.v3"
)

var defaultCities = []domain.City{
	{Name: "atlanta", DisplayName: "Atlanta"},
	{Name: "austin", DisplayName: "Austin"},
	{Name: "boston", DisplayName: "Boston"},
	{Name: "chicago", DisplayName: "Chicago"},
	{Name: "dallas", DisplayName: "Dallas"},
	{Name: "denver", DisplayName: "Denver"},
	{Name: "houston", DisplayName: "Houston"},
	{Name: "los-angeles", DisplayName: "Los Angeles"},
	{Name: "miami", DisplayName: "Miami"},
	{Name: "new-york", DisplayName: "New York"},
	{Name: "philadelphia", DisplayName: "Philadelphia"},
	{Name: "phoenix", DisplayName: "Phoenix"},
	{Name: "san-diego", DisplayName: "San Diego"},
	{Name: "san-francisco", DisplayName: "San Francisco"},
	{Name: "seattle", DisplayName: "Seattle"},
	{Name: "washington-dc", DisplayName: "Washington DC"},
}

type citiesFile struct {
	Cities []domain.City `json:"cities" yaml:"cities"`
}

// Cities is an immutable, display-name-sorted city list.
type Cities struct {
	list []domain.City
	idx  map[string]domain.City
}

// DefaultCities returns the built-in city list.
func DefaultCities() *Cities {
	c, _ := newCities(defaultCities)
	return c
}

// LoadCities reads a YAML/JSON city list. An empty path yields the defaults.
func LoadCities(path string) (*Cities, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultCities(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cities file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read cities file: %w", err)
	}

	parsed, err := parseCities(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(parsed.Cities) == 0 {
		return nil, errors.New("cities file contains no cities entries")
	}
	return newCities(parsed.Cities)
}

func parseCities(data []byte, ext string) (citiesFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		ext string
		fn  func([]byte, any) error
	}{
		{ext: ".yaml", fn: yaml.Unmarshal},
		{ext: ".yml", fn: yaml.Unmarshal},
		{ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var f citiesFile
		if err := d.fn(data, &f); err == nil {
			return f, nil
		}
	}
	return citiesFile{}, errors.New("cities file format not recognized (expected YAML or JSON)")
}

func newCities(in []domain.City) (*Cities, error) {
	c := &Cities{
		list: make([]domain.City, 0, len(in)),
		idx:  make(map[string]domain.City, len(in)),
	}
	for i, city := range in {
		city.Name = strings.ToLower(strings.TrimSpace(city.Name))
		city.DisplayName = strings.TrimSpace(city.DisplayName)
		if city.Name == "" {
			return nil, fmt.Errorf("cities[%d]: name is required", i)
		}
		if city.DisplayName == "" {
			city.DisplayName = city.Name
		}
		if _, exists := c.idx[city.Name]; exists {
			return nil, fmt.Errorf("duplicate city name %q", city.Name)
		}
		c.idx[city.Name] = city
		c.list = append(c.list, city)
	}
	sort.SliceStable(c.list, func(i, j int) bool {
		return strings.ToLower(c.list[i].DisplayName) < strings.ToLower(c.list[j].DisplayName)
	})
	return c, nil
}

// All returns every city sorted by display name.
func (c *Cities) All() []domain.City {
	return append([]domain.City(nil), c.list...)
}

// Search returns cities whose display name or slug contains query, case-insensitively.
// A blank query returns every city.
func (c *Cities) Search(query string) []domain.City {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.All()
	}
	out := make([]domain.City, 0)
	for _, city := range c.list {
		if strings.Contains(strings.ToLower(city.DisplayName), q) || strings.Contains(city.Name, q) {
			out = append(out, city)
		}
	}
	return out
}

// ByName looks up a city by slug.
func (c *Cities) ByName(name string) (domain.City, bool) {
	city, ok := c.idx[strings.ToLower(strings.TrimSpace(name))]
	return city, ok
}
