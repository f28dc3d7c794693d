package contributions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/christopherklint97/contribcal/internal/heatmap"
)

// DefaultBaseURL serves GitHub contribution calendars as JSON.
const DefaultBaseURL = "https://github-contributions-api.jogruber.de/v4"

// ErrRequestFailed is returned for any failed fetch: transport errors,
// non-2xx responses and bodies that don't match the expected shape.
var ErrRequestFailed = errors.New("failed to fetch contributions")

// FetchError describes a failed fetch. It matches ErrRequestFailed with errors.Is.
type FetchError struct {
	Username   string
	Year       int
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching contributions for %s (%d): status %d: %v", e.Username, e.Year, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetching contributions for %s (%d): %v", e.Username, e.Year, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrRequestFailed, e.Err}
}

// Set is one year of contributions as returned by the source.
type Set struct {
	Contributions []heatmap.Day
	// Total holds the source's own per-year totals, when it reports them.
	Total map[int]int
}

// Calendar aggregates the set into the heat-map grid for year.
func (s *Set) Calendar(year int) heatmap.Calendar {
	return heatmap.Aggregate(s.Contributions, year, s.Total)
}

// Client fetches contribution calendars. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for baseURL. A zero timeout leaves the
// http.Client default in place.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type response struct {
	Contributions []record       `json:"contributions"`
	Total         map[string]int `json:"total"`
}

// record mirrors heatmap.Day with a looser count so that integral values
// written as 3.0 still decode.
type record struct {
	Date  string      `json:"date"`
	Count json.Number `json:"count"`
	Level int         `json:"level"`
}

// Fetch issues a single request for username's contributions in year.
func (c *Client) Fetch(ctx context.Context, username string, year int) (*Set, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	fail := func(status int, err error) error {
		return &FetchError{Username: username, Year: year, StatusCode: status, Err: err}
	}

	path := fmt.Sprintf("/%s?y=%d", url.PathEscape(username), year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("contributions request", "user", username, "year", year, "path", path)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("contributions transport error", "user", username, "year", year, "error", err, "elapsed", time.Since(start))
		return nil, fail(0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fail(resp.StatusCode, fmt.Errorf("reading response: %w", err))
	}

	c.logger.Debug("contributions response", "user", username, "year", year, "status", resp.StatusCode, "bytes", len(body), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("contributions request failed", "user", username, "year", year, "status", resp.StatusCode, "response", truncate(string(body), 200))
		return nil, fail(resp.StatusCode, fmt.Errorf("unexpected response: %s", truncate(string(body), 200)))
	}

	set, err := parse(body)
	if err != nil {
		c.logger.Error("contributions response malformed", "user", username, "year", year, "error", err)
		return nil, fail(resp.StatusCode, err)
	}

	return set, nil
}

func parse(body []byte) (*Set, error) {
	var raw *response
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("parsing response: expected an object, got null")
	}

	days := make([]heatmap.Day, 0, len(raw.Contributions))
	for i, r := range raw.Contributions {
		if _, err := heatmap.ParseDate(r.Date); err != nil {
			return nil, fmt.Errorf("contribution %d: invalid date %q", i, r.Date)
		}
		count, err := parseCount(r.Count)
		if err != nil {
			return nil, fmt.Errorf("contribution %d (%s): %w", i, r.Date, err)
		}
		if r.Level < 0 || r.Level > heatmap.MaxLevel {
			return nil, fmt.Errorf("contribution %d (%s): level %d out of range", i, r.Date, r.Level)
		}
		days = append(days, heatmap.Day{Date: r.Date, Count: count, Level: r.Level})
	}

	set := &Set{Contributions: days}
	if len(raw.Total) > 0 {
		set.Total = make(map[int]int, len(raw.Total))
		for k, v := range raw.Total {
			// The source also reports keys such as "lastYear".
			year, err := strconv.Atoi(k)
			if err != nil {
				continue
			}
			set.Total[year] = v
		}
	}

	return set, nil
}

func parseCount(n json.Number) (int, error) {
	if n == "" {
		return 0, fmt.Errorf("missing count")
	}
	var count int
	if v, err := n.Int64(); err == nil {
		count = int(v)
	} else {
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, fmt.Errorf("count %s is not a whole number", n)
		}
		count = int(f)
	}
	if count < 0 {
		return 0, fmt.Errorf("negative count %d", count)
	}
	return count, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
