package publishers

import (
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/city-pulse/internal/domain"
)

// Action names what happened to a bookmark.
type Action string

const (
	ActionAdded   Action = "added"
	ActionRemoved Action = "removed"
)

// Event represents the payload published downstream when a bookmark changes.
type Event struct {
	ID         string         `json:"id"`
	Action     Action         `json:"action"`
	Article    domain.Article `json:"article"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// NewEvent constructs an Event for the given action + article.
func NewEvent(action Action, article domain.Article, at time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Action:     action,
		Article:    article,
		OccurredAt: at.UTC(),
	}
}
