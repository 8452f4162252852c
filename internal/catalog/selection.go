package catalog

import (
	"context"
	"fmt"

	"github.com/samvad-hq/city-pulse/internal/domain"
	"github.com/samvad-hq/city-pulse/internal/logger"
)

// SelectedCityKey is the storage key for the chosen city slug.
const SelectedCityKey = "@city_pulse/selected_city"

// KV is the storage subset the selection needs.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Selection persists the user's chosen city.
type Selection struct {
	kv     KV
	cities *Cities
	log    logger.Logger
}

// NewSelection builds a Selection validated against cities.
func NewSelection(kv KV, cities *Cities, log logger.Logger) (*Selection, error) {
	if kv == nil {
		return nil, fmt.Errorf("selection storage must not be nil")
	}
	if cities == nil {
		cities = DefaultCities()
	}
	return &Selection{kv: kv, cities: cities, log: logger.Ensure(log)}, nil
}

// Current returns the saved city. Read failures and unknown slugs report no selection.
func (s *Selection) Current(ctx context.Context) (domain.City, bool) {
	raw, ok, err := s.kv.Get(ctx, SelectedCityKey)
	if err != nil {
		s.log.ErrorObj("failed to load saved city", "city_selection", map[string]any{"error": err.Error()})
		return domain.City{}, false
	}
	if !ok {
		return domain.City{}, false
	}
	city, known := s.cities.ByName(raw)
	if !known {
		s.log.WarnObj("saved city no longer listed", "city_selection", map[string]any{"city": raw})
		return domain.City{}, false
	}
	return city, true
}

// Select saves name as the current city.
func (s *Selection) Select(ctx context.Context, name string) (domain.City, error) {
	city, ok := s.cities.ByName(name)
	if !ok {
		return domain.City{}, fmt.Errorf("unknown city %q", name)
	}
	if err := s.kv.Set(ctx, SelectedCityKey, city.Name); err != nil {
		return domain.City{}, fmt.Errorf("save selected city: %w", err)
	}
	return city, nil
}
