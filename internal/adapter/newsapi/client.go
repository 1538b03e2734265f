package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"newstracker/internal/domain/model"
	"newstracker/internal/domain/ports"
)

const (
	// DefaultEndpoint is the article search endpoint of newsapi.org.
	DefaultEndpoint = "https://newsapi.org/v2/everything"

	// DefaultErrorMessage is reported when the endpoint fails without a message.
	DefaultErrorMessage = "Failed to fetch news"

	statusOK       = "ok"
	removedMarker  = "[Removed]"
	maxErrorBody   = 1024
	maxPayloadSize = 8 << 20
)

// Client implements ArticleProvider using the newsapi.org "everything" endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	logger     ports.Logger
}

var _ ports.ArticleProvider = (*Client)(nil)

// New creates a new news search client.
func New(endpoint, apiKey string, timeout time.Duration, logger ports.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// APIError is an error status reported in the response body.
type APIError struct {
	HTTPStatus int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return DefaultErrorMessage
}

type searchResponse struct {
	Status       string          `json:"status"`
	TotalResults int             `json:"totalResults"`
	Code         string          `json:"code"`
	Message      string          `json:"message"`
	Articles     []searchArticle `json:"articles"`
}

type searchArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

// SearchArticles returns the articles matching query, newest first as
// reported by the endpoint.
func (c *Client) SearchArticles(ctx context.Context, query string) ([]model.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}

	endpoint, err := c.searchURL(query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = stripRequestURL(err)
		if c.logger != nil {
			c.logger.Error(ctx, "news search request failed", "query", query, "error", err)
		}
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var payload searchResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		if resp.StatusCode != http.StatusOK {
			if c.logger != nil {
				c.logger.Error(ctx, "news search returned non-JSON error",
					"query", query,
					"httpStatus", resp.StatusCode,
					"body", string(data[:min(len(data), maxErrorBody)]))
			}
			return nil, &APIError{HTTPStatus: resp.StatusCode}
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if payload.Status != statusOK {
		if c.logger != nil {
			c.logger.Error(ctx, "news search returned error status",
				"query", query,
				"httpStatus", resp.StatusCode,
				"code", payload.Code)
		}
		return nil, &APIError{
			HTTPStatus: resp.StatusCode,
			Code:       payload.Code,
			Message:    payload.Message,
		}
	}

	articles := convertArticles(payload.Articles)
	if c.logger != nil {
		c.logger.Debug(ctx, "news search completed",
			"query", query,
			"totalResults", payload.TotalResults,
			"articles", len(articles))
	}
	return articles, nil
}

func (c *Client) searchURL(query string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	params := u.Query()
	params.Set("q", query)
	params.Set("sortBy", "publishedAt")
	params.Set("apiKey", c.apiKey)
	u.RawQuery = params.Encode()
	return u.String(), nil
}

func convertArticles(items []searchArticle) []model.Article {
	articles := make([]model.Article, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		link := strings.TrimSpace(item.URL)
		if link == "" || strings.TrimSpace(item.Title) == removedMarker {
			continue
		}
		key := canonicalURL(link)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}

		articles = append(articles, model.Article{
			Title:       strings.TrimSpace(item.Title),
			Description: htmlToText(item.Description),
			SourceName:  strings.TrimSpace(item.Source.Name),
			Author:      strings.TrimSpace(item.Author),
			URL:         link,
			ImageURL:    strings.TrimSpace(item.URLToImage),
			PublishedAt: parseTime(item.PublishedAt),
		})
	}
	return articles
}

// canonicalURL lowercases the scheme and host only; paths and queries are
// case-sensitive.
func canonicalURL(link string) string {
	link = strings.TrimSpace(link)
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String()
}

// stripRequestURL drops the request URL, which carries the API key, from
// transport errors.
func stripRequestURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func parseTime(val string) time.Time {
	if val == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}
	}
	return t
}
