package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/city-pulse/internal/bookmarks"
	"github.com/samvad-hq/city-pulse/internal/catalog"
	"github.com/samvad-hq/city-pulse/internal/config"
	"github.com/samvad-hq/city-pulse/internal/enrich"
	"github.com/samvad-hq/city-pulse/internal/logger"
	"github.com/samvad-hq/city-pulse/internal/storage"
	"github.com/samvad-hq/city-pulse/pkg/httpclient"
	"github.com/samvad-hq/city-pulse/pkg/news"
	"github.com/samvad-hq/city-pulse/pkg/publishers"
)

const (
	userAgent     = "city-pulse/1.0"
	newsRetries   = 2
	newsRetryWait = time.Second
)

// App wires storage, bookmarks, news and the city catalog for one process.
type App struct {
	cfg *config.Config
	log logger.Logger

	store     storage.Store
	fanout    *publishers.Fanout
	Bookmarks *bookmarks.Store
	Surface   *bookmarks.Surface
	Feed      *news.Feed
	Cities    *catalog.Cities
	Selection *catalog.Selection
}

// Options overrides collaborators, mostly for tests.
type Options struct {
	// Store replaces the storage backend chosen by cfg.StorageType.
	Store storage.Store
	// NewsClient replaces the resty client used for NewsAPI and enrichment.
	NewsClient httpclient.Client
	// PublisherRegistry replaces publishers.DefaultRegistry.
	PublisherRegistry publishers.Registry
}

// New builds the application runtime from config.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, opts Options) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}

	a := &App{cfg: cfg, log: log, store: opts.Store}

	if a.store == nil {
		store, err := storage.NewStore(cfg.StorageType, storage.Options{
			BBoltPath:     cfg.BBoltPath,
			RedisAddr:     cfg.RedisAddr,
			RedisPassword: cfg.RedisPassword,
			RedisDB:       cfg.RedisDB,
			KeyPrefix:     cfg.RedisPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("init storage: %w", err)
		}
		a.store = store
		log.InfoObj("storage initialized", "storage_config", map[string]any{
			"type": cfg.StorageType,
			"path": cfg.BBoltPath,
		})
	}

	fanout, err := buildFanout(ctx, cfg.PublishersFile, opts.PublisherRegistry, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.fanout = fanout

	if err := a.wireBookmarks(); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.wireNews(opts.NewsClient); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.wireCatalog(); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

func buildFanout(ctx context.Context, path string, reg publishers.Registry, log logger.Logger) (*publishers.Fanout, error) {
	if strings.TrimSpace(path) == "" {
		return publishers.NewFanout(nil), nil
	}
	cfgReg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	if reg == nil {
		reg = publishers.DefaultRegistry()
	}
	enabled := cfgReg.Enabled()
	pubs, err := publishers.BuildAll(ctx, reg, enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{"id": pubCfg.ID, "type": pubCfg.Type})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubs), nil
}

func (a *App) wireBookmarks() error {
	store, err := bookmarks.NewStore(a.store, a.log)
	if err != nil {
		return fmt.Errorf("init bookmarks: %w", err)
	}
	var pub bookmarks.EventPublisher
	if a.fanout.Size() > 0 {
		pub = a.fanout
	}
	surface, err := bookmarks.NewSurface(store, pub, a.log)
	if err != nil {
		return fmt.Errorf("init bookmark surface: %w", err)
	}
	a.Bookmarks = store
	a.Surface = surface
	return nil
}

func (a *App) wireNews(client httpclient.Client) error {
	if client == nil {
		client = httpclient.NewRestyClient(a.cfg.NewsTimeout,
			httpclient.WithRetry(newsRetries, newsRetryWait),
			httpclient.WithUserAgent(userAgent),
		)
	}
	fetcher, err := news.NewNewsAPIFetcher(client, a.cfg.NewsAPIBaseURL, a.cfg.NewsAPIKey)
	if err != nil {
		return fmt.Errorf("init news fetcher: %w", err)
	}

	var enricher news.Enricher
	if a.cfg.EnrichMetadata {
		enricher = enrich.NewScraper(client, a.cfg.EnrichDelay, a.log)
		a.log.InfoObj("article enrichment enabled", "enrich_config", map[string]any{
			"delay_ms": a.cfg.EnrichDelay.Milliseconds(),
		})
	}

	feed, err := news.NewFeed(fetcher, enricher, a.log)
	if err != nil {
		return fmt.Errorf("init news feed: %w", err)
	}
	a.Feed = feed
	return nil
}

func (a *App) wireCatalog() error {
	cities, err := catalog.LoadCities(a.cfg.CitiesFile)
	if err != nil {
		return fmt.Errorf("load cities: %w", err)
	}
	selection, err := catalog.NewSelection(a.store, cities, a.log)
	if err != nil {
		return fmt.Errorf("init city selection: %w", err)
	}
	a.Cities = cities
	a.Selection = selection
	return nil
}

// ResolveCity picks the city for a news request: the explicit name when given,
// the saved selection otherwise.
func (a *App) ResolveCity(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) != "" {
		if city, ok := a.Cities.ByName(name); ok {
			return city.Name, nil
		}
		return strings.TrimSpace(name), nil
	}
	if city, ok := a.Selection.Current(ctx); ok {
		return city.Name, nil
	}
	return "", errors.New("no city given and none selected")
}

// Close releases publishers and the storage backend.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	if a.fanout != nil {
		if err := a.fanout.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publishers: %w", err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.ErrorObj("storage close failed", "error", err.Error())
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	return errors.Join(errs...)
}
