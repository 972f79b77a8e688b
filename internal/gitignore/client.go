package gitignore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/NicabarNimble/git-minus/internal/errors"
	"github.com/NicabarNimble/git-minus/internal/logging"
)

const userAgent = "git--/1.0"

// Client fetches templates from the ignore template service
type Client struct {
	BaseURL    string       // endpoint the comma-joined tags are appended to
	HTTPClient *http.Client // no timeout unless the caller sets one
	Logger     *slog.Logger
	Strict     bool // turn non-2xx answers into a ServiceError instead of accepting the body
}

// NewClient creates a client for baseURL
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
		Logger:     logger,
	}
}

// URL returns the request URL for tags. An empty tag list yields the bare
// endpoint with a trailing slash. Commas stay literal, so a single
// "python,macos" argument requests the same list as two tags.
func (c *Client) URL(tags []string) string {
	escaped := make([]string, len(tags))
	for i, tag := range tags {
		escaped[i] = escapeTag(tag)
	}
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.Join(escaped, ",")
}

func escapeTag(tag string) string {
	return strings.ReplaceAll(url.PathEscape(tag), "%2C", ",")
}

// Fetch returns the raw template text for tags. Tags are never validated
// locally; whatever the service answers is returned.
func (c *Client) Fetch(ctx context.Context, tags []string) (string, error) {
	logger := logging.OrNop(c.Logger)
	reqURL := c.URL(tags)

	logger.Debug("requesting gitignore template", slog.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", errors.New(errors.OpGitignore, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("User-Agent", userAgent)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", errors.New(errors.OpGitignore, fmt.Errorf("request failed: %w", err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.New(errors.OpGitignore, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		svcErr := errors.NewServiceError(errors.OpGitignore, resp.StatusCode, firstLine(string(body)))
		if c.Strict {
			return "", svcErr
		}
		logger.Warn("template service returned an error status, using the body as-is",
			slog.Int("status", resp.StatusCode),
			slog.String("message", svcErr.Message))
	}

	logger.Debug("received gitignore template", slog.Int("bytes", len(body)))
	return string(body), nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
