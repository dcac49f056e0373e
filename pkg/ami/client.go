package ami

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// CatalogURL is the Ubuntu cloud image locator table for EC2.
const CatalogURL = "https://cloud-images.ubuntu.com/locator/ec2/releasesTable?_=1588199609256"

// DefaultTimeout bounds a single catalog fetch.
const DefaultTimeout = 30 * time.Second

// Client looks up images in the locator catalog. It holds no state between
// calls and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	endpoint   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for the catalog fetch.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a new catalog client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger:   slog.Default(),
		endpoint: CatalogURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FindLatestImage returns the newest image ID matching q using a default client.
func FindLatestImage(ctx context.Context, q Query) (string, error) {
	return NewClient().FindLatest(ctx, q)
}

// FindLatest returns the image ID of the newest record matching q.
func (c *Client) FindLatest(ctx context.Context, q Query) (string, error) {
	rec, err := c.Latest(ctx, q)
	if err != nil {
		return "", err
	}
	return rec.ImageID()
}

// Latest returns the newest record matching q.
func (c *Client) Latest(ctx context.Context, q Query) (Record, error) {
	records, err := c.Records(ctx)
	if err != nil {
		return Record{}, err
	}

	matched := Filter(records, q)
	c.logger.Debug("filtered catalog", "total", len(records), "matched", len(matched), "region", q.Region)

	rec, err := SelectLatest(matched)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %s", err, describe(q))
	}
	c.logger.Debug("selected record", "date", rec.PublishDate, "release", rec.ReleaseName)
	return rec, nil
}

// List returns every record matching q, oldest first. An empty result is not an error.
func (c *Client) List(ctx context.Context, q Query) ([]Record, error) {
	records, err := c.Records(ctx)
	if err != nil {
		return nil, err
	}
	return SortByDate(Filter(records, q)), nil
}

// Records fetches, patches and decodes the full catalog.
func (c *Client) Records(ctx context.Context) ([]Record, error) {
	body, err := c.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	patched, err := PatchTail(body)
	if err != nil {
		return nil, err
	}

	records, err := DecodeCatalog(patched)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("decoded catalog", "records", len(records))
	return records, nil
}

// Fetch retrieves the raw catalog document.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrNetwork, err)
	}

	c.logger.Debug("fetching catalog", "url", c.endpoint)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrNetwork, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %w", ErrNetwork, err)
	}

	c.logger.Debug("fetched catalog", "bytes", len(body), "elapsed", time.Since(start))
	return body, nil
}

// describe renders the supplied criteria of q for error messages.
func describe(q Query) string {
	s := "region=" + q.Region
	for _, kv := range [][2]string{
		{"release", q.ReleaseName},
		{"release_number", q.ReleaseNumber},
		{"instance_type", q.InstanceType},
		{"arch", q.Architecture},
	} {
		if kv[1] != "" {
			s += " " + kv[0] + "=" + kv[1]
		}
	}
	return s
}
