package codec

import (
	"errors"
	"testing"
	"testing/quick"

	"github.com/samvad-hq/city-pulse/internal/domain"
)

func TestArticleRoundTrip(t *testing.T) {
	roundTrip := func(title, description, image, url, date string) bool {
		in := domain.Article{Title: title, Description: description, Image: image, URL: url, Date: date}
		text, err := SerializeArticle(in)
		if err != nil {
			return false
		}
		out, err := DeserializeArticle(text)
		return err == nil && out == in
	}
	if err := quick.Check(roundTrip, &quick.Config{MaxCount: 200}); err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
}

func TestArticleRoundTripKeepsWhitespaceAndMarkup(t *testing.T) {
	in := domain.Article{
		Title:       "  <b>Storm</b> & rain  ",
		Description: "",
		Image:       "",
		URL:         "https://x/1?a=1&b=2",
		Date:        "2024-01-01T00:00:00.000Z",
	}
	text, err := SerializeArticle(in)
	if err != nil {
		t.Fatalf("SerializeArticle: %v", err)
	}
	out, err := DeserializeArticle(text)
	if err != nil {
		t.Fatalf("DeserializeArticle: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v want %+v", out, in)
	}
}

func TestDeserializeArticleRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"garbage":       "{not json",
		"array":         `[1,2]`,
		"missing url":   `{"title":"t","description":"","image":"","date":"d"}`,
		"null field":    `{"title":"t","description":null,"image":"","url":"u","date":"d"}`,
		"wrong type":    `{"title":1,"description":"","image":"","url":"u","date":"d"}`,
		"literal null":  `null`,
		"empty object":  `{}`,
		"empty string":  ``,
		"number":        `42`,
		"string":        `"hello"`,
		"truncated obj": `{"title":"t"`,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DeserializeArticle(text)
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected DecodeError, got %v", err)
			}
		})
	}
}

func TestDeserializeArticleToleratesUnknownFields(t *testing.T) {
	a, err := DeserializeArticle(`{"title":"t","description":"d","image":"i","url":"u","date":"x","source":"newsapi"}`)
	if err != nil {
		t.Fatalf("DeserializeArticle: %v", err)
	}
	if a.URL != "u" || a.Title != "t" {
		t.Fatalf("unexpected article %+v", a)
	}
}

func TestArticlesRoundTripPreservesOrder(t *testing.T) {
	in := []domain.Article{
		{Title: "A", URL: "https://x/1", Date: "2024-01-01T00:00:00.000Z"},
		{Title: "B", URL: "https://x/2", Date: "2024-01-02T00:00:00.000Z"},
		{Title: "C", URL: "https://x/3", Date: "2024-01-03T00:00:00.000Z"},
	}
	text, err := SerializeArticles(in)
	if err != nil {
		t.Fatalf("SerializeArticles: %v", err)
	}
	out, err := DeserializeArticles(text)
	if err != nil {
		t.Fatalf("DeserializeArticles: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d articles, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("article %d mismatch: got %+v want %+v", i, out[i], in[i])
		}
	}
}

func TestSerializeArticlesNilIsEmptyArray(t *testing.T) {
	text, err := SerializeArticles(nil)
	if err != nil {
		t.Fatalf("SerializeArticles: %v", err)
	}
	if text != "[]" {
		t.Fatalf("expected [], got %s", text)
	}
}

func TestDeserializeArticlesRejectsNonArrays(t *testing.T) {
	for _, text := range []string{`{"title":"t"}`, `null`, `"x"`, `[{"title":"only"}]`, `[1]`} {
		_, err := DeserializeArticles(text)
		var decodeErr *DecodeError
		if !errors.As(err, &decodeErr) {
			t.Fatalf("%s: expected DecodeError, got %v", text, err)
		}
	}
}
