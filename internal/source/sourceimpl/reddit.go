package sourceimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/source"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/retry"
)

const (
	defaultAuthURL = "https://www.reddit.com/api/v1/access_token"
	defaultAPIURL  = "https://oauth.reddit.com"
)

type RedditPost struct {
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Score     int     `json:"score"`
	Subreddit string  `json:"subreddit"`
	Created   float64 `json:"created_utc"`
	SelfText  string  `json:"selftext"`
}

type redditListing struct {
	Kind string `json:"kind"`
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Kind string     `json:"kind"`
			Data RedditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type RedditOpts struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	Timeout      time.Duration
	AuthURL      string
	APIURL       string
	Retry        retry.Config
}

// RedditClient talks to the Reddit API with an application-only OAuth token.
type RedditClient struct {
	httpClient *http.Client
	opts       RedditOpts
	logger     logger.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

var _ source.Live = (*RedditClient)(nil)

func NewRedditClient(opts RedditOpts, log logger.Logger) *RedditClient {
	if opts.AuthURL == "" {
		opts.AuthURL = defaultAuthURL
	}
	if opts.APIURL == "" {
		opts.APIURL = defaultAPIURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	return &RedditClient{
		httpClient: &http.Client{Timeout: opts.Timeout},
		opts:       opts,
		logger:     log.WithComponent("RedditClient"),
	}
}

func (c *RedditClient) Search(ctx context.Context, topic string, limit int) ([]domain.RawPost, error) {
	q := url.Values{}
	q.Set("q", topic)
	q.Set("sort", "relevance")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("raw_json", "1")

	return c.listing(ctx, "search", "/r/all/search", q)
}

func (c *RedditClient) Hot(ctx context.Context, limit int) ([]domain.RawPost, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("raw_json", "1")

	return c.listing(ctx, "hot", "/r/all/hot", q)
}

func (c *RedditClient) listing(ctx context.Context, name, path string, q url.Values) ([]domain.RawPost, error) {
	var listing redditListing
	op := func() error {
		token, err := c.accessToken(ctx)
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.APIURL+path+"?"+q.Encode(), nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("User-Agent", c.opts.UserAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to connect to Reddit API: %w", err)
		}
		defer safeClose(resp.Body, c.logger)

		if resp.StatusCode == http.StatusUnauthorized {
			c.resetToken()
		}
		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("reddit API returned status code %d", resp.StatusCode)
			if permanentStatus(resp.StatusCode) {
				return backoff.Permanent(err)
			}
			return err
		}

		listing = redditListing{}
		if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
			return fmt.Errorf("failed to decode Reddit API response: %w", err)
		}
		return nil
	}

	if err := retry.Do(ctx, c.logger, "reddit "+name, op, c.opts.Retry); err != nil {
		return nil, err
	}

	posts := make([]domain.RawPost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		posts = append(posts, child.Data.toRaw())
	}

	c.logger.Debug("Received posts from Reddit API", "listing", name, "count", len(posts))
	return posts, nil
}

func (c *RedditClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(c.opts.ClientID, c.opts.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to request Reddit token: %w", err)
	}
	defer safeClose(resp.Body, c.logger)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reddit token endpoint returned status code %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("failed to decode Reddit token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("reddit token endpoint returned an empty token")
	}

	c.token = tok.AccessToken
	// Refresh a minute early.
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	return c.token, nil
}

// permanentStatus reports client errors that a retry cannot fix. 401 gets a
// fresh token and 429 clears after the window, so both stay retryable.
func permanentStatus(code int) bool {
	return code >= 400 && code < 500 &&
		code != http.StatusUnauthorized && code != http.StatusTooManyRequests
}

func (c *RedditClient) resetToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

func (p RedditPost) toRaw() domain.RawPost {
	return domain.RawPost{
		Title:     p.Title,
		Body:      p.SelfText,
		URL:       p.URL,
		Score:     p.Score,
		Subreddit: p.Subreddit,
		CreatedAt: time.Unix(int64(p.Created), 0).UTC(),
	}
}

func safeClose(closer io.Closer, log logger.Logger) {
	if err := closer.Close(); err != nil {
		log.Error("Error closing response body", "error", err)
	}
}
