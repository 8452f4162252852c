package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/samvad-hq/city-pulse/internal/domain"
)

const (
	// DefaultBaseURL is the public NewsAPI endpoint.
	DefaultBaseURL   = "https://newsapi.org"
	everythingPath   = "/v2/everything"
	apiKeyHeader     = "X-Api-Key"
	defaultLanguage  = "en"
	defaultSortOrder = "publishedAt"
)

// newsAPIResponse is the /v2/everything payload. Error responses carry code/message.
type newsAPIResponse struct {
	Status       string          `json:"status"`
	TotalResults int             `json:"totalResults"`
	Articles     []newsAPIRecord `json:"articles"`
	Code         string          `json:"code"`
	Message      string          `json:"message"`
}

type newsAPIRecord struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URLToImage  *string `json:"urlToImage"`
	URL         *string `json:"url"`
	PublishedAt string  `json:"publishedAt"`
}

// NewsAPIFetcher implements Fetcher against NewsAPI.org.
type NewsAPIFetcher struct {
	client  HTTPClient
	baseURL string
	apiKey  string
}

// NewNewsAPIFetcher builds a fetcher. An empty baseURL uses DefaultBaseURL.
func NewNewsAPIFetcher(client HTTPClient, baseURL, apiKey string) (*NewsAPIFetcher, error) {
	if client == nil {
		return nil, fmt.Errorf("news http client must not be nil")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse news base url: %w", err)
	}
	return &NewsAPIFetcher{client: client, baseURL: baseURL, apiKey: strings.TrimSpace(apiKey)}, nil
}

// FetchArticles returns the newest English articles matching city.
func (f *NewsAPIFetcher) FetchArticles(ctx context.Context, city string) ([]domain.Article, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, &Error{Message: "city is required"}
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("sortBy", defaultSortOrder)
	q.Set("language", defaultLanguage)
	endpoint := f.baseURL + everythingPath + "?" + q.Encode()

	headers := map[string]string{"Accept": "application/json"}
	if f.apiKey != "" {
		headers[apiKeyHeader] = f.apiKey
	}

	resp, err := f.client.Get(ctx, endpoint, headers)
	if err != nil {
		return nil, &Error{Message: msgFetchFailed, Err: err}
	}

	var payload newsAPIResponse
	decodeErr := json.Unmarshal(resp.Body(), &payload)

	if resp.StatusCode() != http.StatusOK {
		return nil, statusError(resp.StatusCode(), payload.Message)
	}
	if decodeErr != nil {
		return nil, &Error{StatusCode: resp.StatusCode(), Message: msgUnexpected, Err: decodeErr}
	}
	if payload.Status != "ok" {
		return nil, &Error{StatusCode: resp.StatusCode(), Message: msgErrorStatus}
	}

	return mapRecords(payload.Articles), nil
}

// mapRecords converts API records, dropping records without a url since the url
// is the article identity.
func mapRecords(records []newsAPIRecord) []domain.Article {
	out := make([]domain.Article, 0, len(records))
	for _, r := range records {
		link := deref(r.URL)
		if strings.TrimSpace(link) == "" {
			continue
		}
		title := deref(r.Title)
		if title == "" {
			title = untitledArticle
		}
		out = append(out, domain.Article{
			Title:       title,
			Description: deref(r.Description),
			Image:       deref(r.URLToImage),
			URL:         link,
			Date:        r.PublishedAt,
		})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
