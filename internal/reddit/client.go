package reddit

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

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"reddit-persona/internal/domain"
)

const (
	defaultBaseURL   = "https://www.reddit.com"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	pageSize         = 25
)

// ErrInvalidProfileURL indica que la URL no apunta a un perfil de usuario.
var ErrInvalidProfileURL = errors.New("invalid reddit profile url")

// Client consume los endpoints JSON publicos de Reddit. Va detras de un
// rate limiter para no golpear el endpoint sin autenticar.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// NewClient construye el cliente publico. baseURL y userAgent vacios
// toman los defaults.
func NewClient(baseURL, userAgent string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
		limiter:   rate.NewLimiter(rate.Every(1*time.Second), 1),
		logger:    logger,
	}
}

// ExtractUsername saca el nombre de usuario de una URL de perfil.
// Acepta formatos /user/<name> y /u/<name>.
func ExtractUsername(profileURL string) (string, error) {
	trimmed := strings.TrimSpace(profileURL)
	var rest string
	switch {
	case strings.Contains(trimmed, "/user/"):
		rest = trimmed[strings.Index(trimmed, "/user/")+len("/user/"):]
	case strings.Contains(trimmed, "/u/"):
		rest = trimmed[strings.Index(trimmed, "/u/")+len("/u/"):]
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidProfileURL, profileURL)
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidProfileURL, profileURL)
	}
	return rest, nil
}

// FetchUserContent trae posts y comentarios del usuario, mitad y mitad,
// paginando con el cursor "after". Items borrados o removidos se saltan.
func (c *Client) FetchUserContent(ctx context.Context, username string, limit int) ([]domain.RawContent, error) {
	if limit <= 0 {
		limit = 50
	}

	posts, err := c.fetchListing(ctx, username, "submitted", domain.KindPost, limit/2)
	if err != nil {
		return nil, fmt.Errorf("fetch posts for %s: %w", username, err)
	}
	comments, err := c.fetchListing(ctx, username, "comments", domain.KindComment, limit-limit/2)
	if err != nil {
		return nil, fmt.Errorf("fetch comments for %s: %w", username, err)
	}

	c.logger.Info("fetched user content",
		zap.String("username", username),
		zap.Int("posts", len(posts)),
		zap.Int("comments", len(comments)),
	)
	return append(posts, comments...), nil
}

func (c *Client) fetchListing(ctx context.Context, username, feed string, kind domain.ContentKind, limit int) ([]domain.RawContent, error) {
	var out []domain.RawContent
	after := ""

	for len(out) < limit {
		page, next, err := c.fetchPage(ctx, username, feed, after, limit-len(out))
		if err != nil {
			return nil, err
		}
		for _, child := range page {
			if len(out) >= limit {
				break
			}
			raw, ok := toRawContent(child, kind)
			if !ok {
				continue
			}
			out = append(out, raw)
		}
		if next == "" {
			break
		}
		after = next
	}
	return out, nil
}

func (c *Client) fetchPage(ctx context.Context, username, feed, after string, remaining int) ([]listingChild, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}

	q := url.Values{}
	size := remaining
	if size > pageSize {
		size = pageSize
	}
	q.Set("limit", fmt.Sprintf("%d", size))
	if after != "" {
		q.Set("after", after)
	}
	endpoint := fmt.Sprintf("%s/user/%s/%s.json?%s", c.baseURL, url.PathEscape(username), feed, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, "", fmt.Errorf("reddit http error: status=%d", resp.StatusCode)
	}

	var listing listingResponse
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, "", fmt.Errorf("unmarshal listing: %w", err)
	}
	return listing.Data.Children, listing.Data.After, nil
}

// toRawContent mapea un child del listing al registro crudo del dominio.
// Devuelve false para contenido borrado o removido.
func toRawContent(child listingChild, kind domain.ContentKind) (domain.RawContent, bool) {
	d := child.Data

	if kind == domain.KindPost {
		if d.RemovedByCategory != "" || d.Title == "[deleted]" {
			return domain.RawContent{}, false
		}
	} else {
		if d.Body == "[deleted]" || d.Body == "[removed]" {
			return domain.RawContent{}, false
		}
	}

	id := d.Name
	if id == "" {
		id = string(kind) + "_" + d.ID
	}

	raw := domain.RawContent{
		ID:        id,
		Kind:      kind,
		Title:     d.Title,
		Subreddit: d.Subreddit,
		Score:     d.Score,
		CreatedAt: time.Unix(int64(d.CreatedUTC), 0).UTC(),
		Permalink: "https://reddit.com" + d.Permalink,
	}
	if kind == domain.KindPost {
		raw.Body = d.Selftext
	} else {
		raw.Body = d.Body
	}
	return raw, true
}

type listingResponse struct {
	Data struct {
		Children []listingChild `json:"children"`
		After    string         `json:"after"`
	} `json:"data"`
}

type listingChild struct {
	Data struct {
		ID                string  `json:"id"`
		Name              string  `json:"name"`
		Title             string  `json:"title"`
		Selftext          string  `json:"selftext"`
		Body              string  `json:"body"`
		Subreddit         string  `json:"subreddit"`
		Score             int     `json:"score"`
		CreatedUTC        float64 `json:"created_utc"`
		Permalink         string  `json:"permalink"`
		RemovedByCategory string  `json:"removed_by_category"`
	} `json:"data"`
}
