package bookmarks

import (
	"errors"
	"fmt"
)

// ErrInvalidArticle is returned when an article has no URL to key the bookmark on.
var ErrInvalidArticle = errors.New("article url is required")

// PersistenceError reports a failed read or write against the storage collaborator.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("bookmarks %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
