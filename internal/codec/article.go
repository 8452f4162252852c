// Package codec converts articles to and from their stored JSON text.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/samvad-hq/city-pulse/internal/domain"
)

// DecodeError reports text that is not a valid article encoding.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode article: %s: %v", e.Reason, e.Err)
	}
	return "decode article: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// wireArticle uses pointers so absent and null fields can be told apart from empty strings.
type wireArticle struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	URL         *string `json:"url"`
	Date        *string `json:"date"`
}

func (w wireArticle) article() (domain.Article, error) {
	fields := []struct {
		name string
		val  *string
	}{
		{"title", w.Title},
		{"description", w.Description},
		{"image", w.Image},
		{"url", w.URL},
		{"date", w.Date},
	}
	for _, f := range fields {
		if f.val == nil {
			return domain.Article{}, &DecodeError{Reason: fmt.Sprintf("missing field %q", f.name)}
		}
	}
	return domain.Article{
		Title:       *w.Title,
		Description: *w.Description,
		Image:       *w.Image,
		URL:         *w.URL,
		Date:        *w.Date,
	}, nil
}

// SerializeArticle encodes a single article as a JSON object.
func SerializeArticle(a domain.Article) (string, error) {
	raw, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("encode article: %w", err)
	}
	return string(raw), nil
}

// DeserializeArticle is the inverse of SerializeArticle. It never normalizes field values.
func DeserializeArticle(text string) (domain.Article, error) {
	var w wireArticle
	if err := json.Unmarshal([]byte(text), &w); err != nil {
		return domain.Article{}, &DecodeError{Reason: "malformed article", Err: err}
	}
	return w.article()
}

// SerializeArticles encodes a collection as a JSON array. A nil slice encodes as [].
func SerializeArticles(articles []domain.Article) (string, error) {
	if articles == nil {
		articles = []domain.Article{}
	}
	raw, err := json.Marshal(articles)
	if err != nil {
		return "", fmt.Errorf("encode articles: %w", err)
	}
	return string(raw), nil
}

// DeserializeArticles decodes a JSON array of articles. A non-array value or any
// malformed element fails the whole decode.
func DeserializeArticles(text string) ([]domain.Article, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elems); err != nil {
		return nil, &DecodeError{Reason: "malformed article list", Err: err}
	}
	if elems == nil {
		return nil, &DecodeError{Reason: "article list is null"}
	}

	out := make([]domain.Article, 0, len(elems))
	for i, elem := range elems {
		a, err := DeserializeArticle(string(elem))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}
