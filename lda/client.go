package lda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// DefaultBaseURL is the Senate LDA filings endpoint.
const DefaultBaseURL = "https://lda.senate.gov/api/v1/filings/"

// ClientConfig controls the API client. Registered credentials raise
// the server-side rate limit; anonymous access works but is throttled
// harder, so PageWait defaults generously.
type ClientConfig struct {
	BaseURL  string
	APIKey   string
	PageSize int
	PageWait time.Duration
	HTTP     *http.Client
}

// ApplyDefaults fills unset fields in place.
func (c *ClientConfig) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.PageSize <= 0 {
		c.PageSize = 25
	}
	if c.PageWait <= 0 {
		c.PageWait = 2 * time.Second
	}
	if c.HTTP == nil {
		c.HTTP = &http.Client{Timeout: 60 * time.Second}
	}
}

// Client fetches filings from the LDA API, following pagination.
type Client struct {
	cfg    ClientConfig
	logger *log.Logger
}

func NewClient(cfg ClientConfig, logger *log.Logger) *Client {
	cfg.ApplyDefaults()
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{cfg: cfg, logger: logger}
}

type page struct {
	Count   int       `json:"count"`
	Next    string    `json:"next"`
	Results []*Filing `json:"results"`
}

// Fetch runs every expansion of q and returns the combined, deduplicated
// dataset. Quoted phrases in q become a post-filter, since the API
// treats quotes as ordinary characters.
func (c *Client) Fetch(ctx context.Context, q Query) (*Dataset, error) {
	keep := ExactSearchFilter(q)
	var filings []*Filing
	for _, sub := range BuildQueries(q) {
		got, err := c.fetchOne(ctx, sub)
		if err != nil {
			return nil, err
		}
		for _, f := range got {
			if keep(f) {
				filings = append(filings, f)
			}
		}
	}
	c.logger.Printf("lda: fetched %d filings", len(filings))
	return NewDataset(filings), nil
}

func (c *Client) fetchOne(ctx context.Context, q Query) ([]*Filing, error) {
	vals := q.Values()
	vals.Set("page_size", fmt.Sprint(c.cfg.PageSize))
	next := c.cfg.BaseURL + "?" + vals.Encode()

	var filings []*Filing
	for pageNum := 1; next != ""; pageNum++ {
		if pageNum > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.cfg.PageWait):
			}
		}
		pg, err := c.getPage(ctx, next)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNum, err)
		}
		filings = append(filings, pg.Results...)
		if pageNum == 1 && pg.Count > 0 {
			c.logger.Printf("lda: %d filings across query %v", pg.Count, q)
		}
		next = pg.Next
	}
	return filings, nil
}

func (c *Client) getPage(ctx context.Context, rawURL string) (*page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Token "+c.cfg.APIKey)
	}
	resp, err := c.cfg.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("lda: status %d: %s", resp.StatusCode, body)
	}
	var pg page
	if err := json.NewDecoder(resp.Body).Decode(&pg); err != nil {
		return nil, fmt.Errorf("lda: decode: %w", err)
	}
	return &pg, nil
}
