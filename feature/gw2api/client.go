package gw2api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client fetches entity payloads and aggregates from the external APIs.
// All methods are pure reads with bounded timeouts.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a new API client based on the configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Custom transport with strict timeouts so a stalled upstream can never
	// hang a worker past the deadline.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}
}

// Entities fetches the payloads for the given ids from an endpoint
// (e.g. "/v2/items") in every configured language.
//
// The returned map only contains ids for which all languages were returned;
// partial-language coverage is not a supported state, those ids appear in the
// second return value with the reason. Batching is the caller's
// responsibility, id lists should stay within a few hundred per call.
func (c *Client) Entities(ctx context.Context, endpoint string, ids []int) (map[int]LocalizedEntity, map[int]error, error) {
	if len(ids) == 0 {
		return map[int]LocalizedEntity{}, nil, nil
	}

	idList := make([]string, len(ids))
	for i, id := range ids {
		idList[i] = strconv.Itoa(id)
	}
	idParam := strings.Join(idList, ",")

	entities := make(map[int]LocalizedEntity, len(ids))
	problems := make(map[int]error)

	for _, lang := range Languages {
		query := url.Values{}
		query.Set("ids", idParam)
		query.Set("lang", string(lang))

		body, err := c.get(ctx, c.cfg.BaseURL+endpoint+"?"+query.Encode())
		if err != nil {
			return nil, nil, err
		}

		var elements []json.RawMessage
		if err := json.Unmarshal(body, &elements); err != nil {
			return nil, nil, fmt.Errorf("%w: invalid response for %s", ErrSourceUnavailable, endpoint)
		}

		for _, raw := range elements {
			var entity Entity
			if err := json.Unmarshal(raw, &entity); err != nil {
				// Decode the id alone so the malformed element can still be
				// attributed and isolated instead of failing the batch.
				var probe struct {
					ID int `json:"id"`
				}
				if probeErr := json.Unmarshal(raw, &probe); probeErr == nil && probe.ID != 0 {
					problems[probe.ID] = fmt.Errorf("malformed %s payload for id %d: %w", lang, probe.ID, err)
				}
				continue
			}

			if entities[entity.ID] == nil {
				entities[entity.ID] = make(LocalizedEntity, len(Languages))
			}
			entity.Raw = raw
			entities[entity.ID][lang] = entity
		}
	}

	// Drop ids without full language coverage. Ids the API did not return at
	// all are not an error, the API omits unknown ids.
	for id, localized := range entities {
		if len(localized) != len(Languages) {
			problems[id] = fmt.Errorf("incomplete language coverage for id %d (%d/%d)", id, len(localized), len(Languages))
			delete(entities, id)
		}
	}

	return entities, problems, nil
}

// EntityIDs fetches the complete id list of an endpoint.
func (c *Client) EntityIDs(ctx context.Context, endpoint string) ([]int, error) {
	body, err := c.get(ctx, c.cfg.BaseURL+endpoint)
	if err != nil {
		return nil, err
	}

	var ids []int
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, fmt.Errorf("%w: invalid id list for %s", ErrSourceUnavailable, endpoint)
	}

	return ids, nil
}

// Build fetches the current numeric game build.
func (c *Client) Build(ctx context.Context) (int, error) {
	body, err := c.get(ctx, c.cfg.BaseURL+"/v2/build")
	if err != nil {
		return 0, err
	}

	var build struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(body, &build); err != nil {
		return 0, fmt.Errorf("%w: invalid build response", ErrSourceUnavailable)
	}

	return build.ID, nil
}

// Unlocks fetches the aggregate unlock statistics for a tracked collection
// (e.g. "skins").
func (c *Client) Unlocks(ctx context.Context, statsID string) (*UnlockStats, error) {
	body, err := c.get(ctx, c.cfg.UnlocksURL+"?id="+url.QueryEscape(statsID))
	if err != nil {
		return nil, err
	}

	var stats UnlockStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("%w: invalid unlock statistics", ErrSourceUnavailable)
	}
	if stats.Total <= 0 {
		return nil, fmt.Errorf("%w: unlock statistics without total", ErrSourceUnavailable)
	}

	return &stats, nil
}

// IconURL builds the CDN URL for an icon at the given pixel size (16, 32, 64).
func (c *Client) IconURL(signature string, id, size int) string {
	return fmt.Sprintf("%s/%s/%d-%dpx.png", c.cfg.IconCDNURL, signature, id, size)
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrSourceUnavailable, rawURL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	return body, nil
}
