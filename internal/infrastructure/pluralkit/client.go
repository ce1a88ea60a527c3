// Package pluralkit implements the upstream system-tracking API client.
package pluralkit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/CloveTwilight3/doughmination-backend/internal/api/metrics"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.pluralkit.me/v2"
	requestTimeout = 15 * time.Second
)

// Config carries the upstream API settings.
type Config struct {
	BaseURL   string
	Token     string
	SystemRef string // system ID, or "@me" with a token
}

// Client talks to the PluralKit v2 REST API. It implements
// ports.SystemClient.
type Client struct {
	baseURL   string
	token     string
	systemRef string
	http      *http.Client
	log       zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	systemRef := cfg.SystemRef
	if systemRef == "" {
		systemRef = "@me"
	}
	return &Client{
		baseURL:   baseURL,
		token:     cfg.Token,
		systemRef: systemRef,
		http:      &http.Client{Timeout: requestTimeout},
		log:       log,
	}
}

// wire types for the upstream payloads

type pkMember struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Pronouns    string `json:"pronouns"`
	Color       string `json:"color"`
	Description string `json:"description"`
	AvatarURL   string `json:"avatar_url"`
}

type pkFronters struct {
	Timestamp time.Time  `json:"timestamp"`
	Members   []pkMember `json:"members"`
}

type pkSwitch struct {
	Timestamp time.Time `json:"timestamp"`
	Members   []string  `json:"members"`
}

func (c *Client) GetSystem(ctx context.Context) (*ports.SystemInfo, error) {
	var sys struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Tag         string `json:"tag"`
		AvatarURL   string `json:"avatar_url"`
	}
	if err := c.get(ctx, "system", c.systemPath(""), &sys); err != nil {
		return nil, err
	}

	members, err := c.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.SystemInfo{
		ID:          sys.ID,
		Name:        sys.Name,
		Description: sys.Description,
		Tag:         sys.Tag,
		AvatarURL:   sys.AvatarURL,
		MemberCount: len(members),
	}, nil
}

func (c *Client) ListMembers(ctx context.Context) ([]domain.Member, error) {
	var raw []pkMember
	if err := c.get(ctx, "members", c.systemPath("/members"), &raw); err != nil {
		return nil, err
	}
	members := make([]domain.Member, 0, len(raw))
	for _, m := range raw {
		members = append(members, m.toDomain())
	}
	return members, nil
}

// GetFronters returns the current front. An upstream 204 means no switch
// has ever been registered; that is an empty front, not an error.
func (c *Client) GetFronters(ctx context.Context) (*domain.Fronters, error) {
	var raw pkFronters
	if err := c.get(ctx, "fronters", c.systemPath("/fronters"), &raw); err != nil {
		return nil, err
	}
	members := make([]domain.Member, 0, len(raw.Members))
	for _, m := range raw.Members {
		members = append(members, m.toDomain())
	}
	return &domain.Fronters{Timestamp: raw.Timestamp, Members: members}, nil
}

// SetFront registers a new switch with the given members in front. An empty
// list switches everyone out.
func (c *Client) SetFront(ctx context.Context, memberIDs []string) error {
	if memberIDs == nil {
		memberIDs = []string{}
	}
	body := map[string][]string{"members": memberIDs}
	return c.do(ctx, "switch", http.MethodPost, c.systemPath("/switches"), body, nil)
}

func (c *Client) ListSwitches(ctx context.Context, since time.Time) ([]domain.Switch, error) {
	// The API pages backwards with `before`; the newest page filtered
	// client-side covers the insight windows in use.
	path := c.systemPath("/switches") + "?limit=100"

	var raw []pkSwitch
	if err := c.get(ctx, "switches", path, &raw); err != nil {
		return nil, err
	}

	switches := make([]domain.Switch, 0, len(raw))
	for _, sw := range raw {
		if !since.IsZero() && sw.Timestamp.Before(since) {
			continue
		}
		switches = append(switches, domain.Switch{Timestamp: sw.Timestamp, MemberIDs: sw.Members})
	}
	return switches, nil
}

func (m pkMember) toDomain() domain.Member {
	return domain.Member{
		ID:          m.ID,
		Name:        m.Name,
		DisplayName: m.DisplayName,
		Pronouns:    m.Pronouns,
		Color:       m.Color,
		Description: m.Description,
		AvatarURL:   m.AvatarURL,
	}
}

func (c *Client) systemPath(suffix string) string {
	return "/systems/" + c.systemRef + suffix
}

func (c *Client) get(ctx context.Context, endpoint, path string, out any) error {
	return c.do(ctx, endpoint, http.MethodGet, path, nil, out)
}

// do performs one upstream request, recording its latency. Responses other
// than 2xx become errors; a 204 leaves out untouched (zero value).
func (c *Client) do(ctx context.Context, endpoint, method, path string, body, out any) error {
	start := time.Now()
	err := c.doOnce(ctx, method, path, body, out)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint, outcome).Observe(time.Since(start).Seconds())
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: upstream %s %s", domain.ErrMemberNotFound, method, path)
	default:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("upstream error response")
		return fmt.Errorf("upstream %s %s: status %d: %s", method, path, resp.StatusCode, snippet)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
