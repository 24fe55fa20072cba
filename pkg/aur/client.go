// Package aur provides a client for the Arch User Repository RPC interface.
//
// The client covers the three queries the tool needs: free-text search,
// exact record lookup, and batch info for upgrade scanning. Search results
// are cached on disk so repeated interactive queries stay off the network;
// info queries always go to the network because they feed version
// comparisons.
package aur

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/aurum/pkg/httputil"
)

// DefaultBaseURL is the canonical AUR endpoint.
const DefaultBaseURL = "https://aur.archlinux.org"

const (
	httpTimeout = 10 * time.Second
	userAgent   = "aurum"
)

var (
	// ErrNotFound is returned when a package has no record in the index.
	ErrNotFound = errors.New("package not found")

	// ErrNetwork is returned for transport failures: timeouts, connection
	// errors, and non-2xx responses.
	ErrNetwork = errors.New("network error")
)

// Package is one package record from the index.
type Package struct {
	Name         string  `json:"Name"`
	PackageBase  string  `json:"PackageBase"`
	Version      string  `json:"Version"`
	Description  string  `json:"Description"`
	URL          string  `json:"URL"`
	Votes        int     `json:"NumVotes"`
	Popularity   float64 `json:"Popularity"`
	Maintainer   string  `json:"Maintainer"`
	OutOfDate    int64   `json:"OutOfDate"`
	LastModified int64   `json:"LastModified"`
}

// Client queries the AUR RPC v5 interface with caching and retries.
type Client struct {
	http    *http.Client
	cache   *httputil.Cache
	baseURL string
}

// New returns a Client for the index at baseURL (DefaultBaseURL when
// empty). Search responses are cached in cache under an "rpc:" namespace;
// a nil cache disables caching.
func New(baseURL string, cache *httputil.Cache) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if cache != nil {
		cache = cache.Namespace("rpc:")
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   cache,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Search returns every record matching term by name or description. With
// refresh set the cache is bypassed and the result stored fresh.
func (c *Client) Search(ctx context.Context, term string, refresh bool) ([]Package, error) {
	var results []Package
	err := c.cached(ctx, "search:"+term, refresh, &results, func() error {
		q := url.Values{}
		q.Set("type", "search")
		q.Set("arg", term)
		resp, err := c.rpc(ctx, q)
		if err != nil {
			return err
		}
		results = resp.Results
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Info returns the exact records for the given names in one query. Names
// absent from the index are simply missing from the result; only transport
// and query failures produce an error. Info never reads the cache: its
// results feed version comparisons and must be current.
func (c *Client) Info(ctx context.Context, names ...string) ([]Package, error) {
	if len(names) == 0 {
		return nil, nil
	}
	q := url.Values{}
	q.Set("type", "info")
	for _, n := range names {
		q.Add("arg[]", n)
	}

	var resp *rpcResponse
	err := httputil.RetryWithBackoff(ctx, func() error {
		r, err := c.rpc(ctx, q)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Lookup finds the single record whose name equals name, comparing
// case-insensitively. The exact query is tried first; on a miss the search
// results are scanned so differently-cased requests still resolve. Returns
// ErrNotFound when no record matches.
func (c *Client) Lookup(ctx context.Context, name string, refresh bool) (*Package, error) {
	recs, err := c.Info(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(recs) > 0 {
		p := recs[0]
		return &p, nil
	}

	results, err := c.Search(ctx, name, refresh)
	if err != nil {
		return nil, err
	}
	for i := range results {
		if strings.EqualFold(results[i].Name, name) {
			p := results[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// cached serves v from the cache when possible, otherwise runs fetch with
// retries and stores what it produced.
func (c *Client) cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if c.cache != nil && !refresh {
		if ok, _ := c.cache.Get(key, v); ok {
			return nil
		}
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if c.cache != nil {
		_ = c.cache.Set(key, v)
	}
	return nil
}

type rpcResponse struct {
	Version     int       `json:"version"`
	Type        string    `json:"type"`
	ResultCount int       `json:"resultcount"`
	Results     []Package `json:"results"`
	Error       string    `json:"error"`
}

func (c *Client) rpc(ctx context.Context, query url.Values) (*rpcResponse, error) {
	query.Set("v", "5")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rpc/?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	var body rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding index response: %w", err)
	}
	if body.Type == "error" {
		return nil, fmt.Errorf("index query rejected: %s", body.Error)
	}
	return &body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: rate limited (status %d)", ErrNetwork, code)
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
