// Package httpclient is the HTTP transport shared by the news fetcher, the
// metadata enricher and the webhook publisher.
package httpclient

import "context"

// Response is the part of an HTTP response callers inspect.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client performs GET requests. Tests inject fakes through it.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, url string, headers map[string]string) (Response, error)

// Get calls f.
func (f ClientFunc) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	return f(ctx, url, headers)
}
