// Package news fetches city news articles from NewsAPI and holds the displayed feed.
package news

import (
	"context"
	"fmt"
	"net/http"

	"github.com/samvad-hq/city-pulse/internal/domain"
	"github.com/samvad-hq/city-pulse/pkg/httpclient"
)

// Fetcher retrieves the articles for a city search term.
type Fetcher interface {
	FetchArticles(ctx context.Context, city string) ([]domain.Article, error)
}

// HTTPClient aliases the shared httpclient.Client interface for clarity within news.
type HTTPClient = httpclient.Client

// Error is returned for any failed fetch. StatusCode is zero when no HTTP
// response was received.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("news: %s (status %d): %v", e.Message, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("news: %s (status %d)", e.Message, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("news: %s: %v", e.Message, e.Err)
	default:
		return "news: " + e.Message
	}
}

func (e *Error) Unwrap() error { return e.Err }

const (
	msgInvalidKey   = "invalid API key"
	msgRateLimited  = "rate limit exceeded, please try again later"
	msgUnavailable  = "news service is temporarily unavailable"
	msgFetchFailed  = "failed to fetch news"
	msgErrorStatus  = "news API returned an error status"
	msgUnexpected   = "an unexpected error occurred while fetching news"
	untitledArticle = "Untitled"
)

// statusError maps a non-200 response to the user-facing error for its cause.
func statusError(status int, apiMessage string) *Error {
	switch status {
	case http.StatusUnauthorized:
		return &Error{StatusCode: status, Message: msgInvalidKey}
	case http.StatusTooManyRequests:
		return &Error{StatusCode: status, Message: msgRateLimited}
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return &Error{StatusCode: status, Message: msgUnavailable}
	default:
		msg := apiMessage
		if msg == "" {
			msg = msgFetchFailed
		}
		return &Error{StatusCode: status, Message: msg}
	}
}
