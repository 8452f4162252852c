package storage

import (
	"context"
	"fmt"
	"strings"
)

// Package storage provides the durable key-value substrate bookmarks and the city selection live in.

// Store is a string-keyed durable store. An absent key is reported with ok=false, never an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}

// Options configures concrete store implementations.
type Options struct {
	// BBoltPath is the database file for the bbolt backend.
	BBoltPath string
	// Redis connection settings for the redis backend.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// KeyPrefix namespaces redis keys so Clear only touches this app's data.
	KeyPrefix string
}

const (
	TypeBBolt  = "bbolt"
	TypeRedis  = "redis"
	TypeMemory = "memory"

	defaultKeyPrefix = "citypulse:"
)

// NewStore creates the configured storage backend.
func NewStore(typ string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case TypeMemory:
		return NewMemoryStore(), nil
	case TypeBBolt:
		if strings.TrimSpace(opts.BBoltPath) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(opts.BBoltPath)
	case TypeRedis:
		if strings.TrimSpace(opts.RedisAddr) == "" {
			return nil, fmt.Errorf("redis storage requires an address")
		}
		return openRedis(opts)
	case "", "none", "disabled":
		return nil, fmt.Errorf("storage type %q cannot hold bookmarks; use %s, %s or %s", typ, TypeBBolt, TypeRedis, TypeMemory)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	opts.BBoltPath = strings.TrimSpace(opts.BBoltPath)
	opts.RedisAddr = strings.TrimSpace(opts.RedisAddr)
	if strings.TrimSpace(opts.KeyPrefix) == "" {
		opts.KeyPrefix = defaultKeyPrefix
	}
	return opts
}
