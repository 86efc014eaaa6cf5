// Package baserow talks to the hosted Baserow tables that hold the flower,
// supplier and supplier-charge records.
package baserow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultAPIURL is used when no BASEROW_API_URL is configured.
const DefaultAPIURL = "https://api.baserow.io"

// pageSize is the largest page Baserow hands out for row listings.
const pageSize = 200

// Config holds the connection details for the Baserow API.
type Config struct {
	APIURL           string
	Token            string
	FlowersTableID   string
	SuppliersTableID string
	ChargesTableID   string
	HTTPClient       *http.Client
}

// Client is a Baserow row API client. It implements store.Store.
type Client struct {
	baseURL *url.URL
	token   string
	tables  Config
	http    *http.Client
}

// APIError is a non-success response from Baserow.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewClient validates the configuration and builds a client.
func NewClient(cfg Config) (*Client, error) {
	// 1. --- Required settings ---
	if cfg.Token == "" {
		return nil, errors.New("missing BASEROW_TOKEN environment variable")
	}
	if cfg.FlowersTableID == "" {
		return nil, errors.New("missing BASEROW_FLOWERS_TABLE_ID environment variable")
	}
	if cfg.SuppliersTableID == "" {
		return nil, errors.New("missing BASEROW_SUPPLIERS_TABLE_ID environment variable")
	}
	if cfg.ChargesTableID == "" {
		return nil, errors.New("missing BASEROW_CHARGES_TABLE_ID environment variable")
	}

	// 2. --- Base URL ---
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	base, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid BASEROW_API_URL: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &Client{baseURL: base, token: cfg.Token, tables: cfg, http: httpClient}, nil
}

// tablePath is the row endpoint of a table, addressed by field name rather than field ID.
func tablePath(tableID string) string {
	return fmt.Sprintf("/api/database/rows/table/%s/?user_field_names=true", tableID)
}

// listPage is the envelope Baserow wraps row listings in.
type listPage[Row any] struct {
	Count   int    `json:"count"`
	Next    string `json:"next"`
	Results []Row  `json:"results"`
}

// listRows follows Baserow's pagination until every row of the table has been read.
func listRows[Row any](ctx context.Context, c *Client, tableID string) ([]Row, error) {
	next := tablePath(tableID) + fmt.Sprintf("&size=%d", pageSize)

	var rows []Row
	for next != "" {
		var page listPage[Row]
		if err := c.do(ctx, http.MethodGet, next, nil, &page); err != nil {
			return nil, err
		}
		rows = append(rows, page.Results...)
		next = page.Next
	}
	return rows, nil
}

// do sends one request. A relative path is resolved against the API URL;
// absolute URLs (Baserow's "next" links) are used as they are.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	// 1. --- Build the URL ---
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("invalid Baserow path %q: %w", path, err)
	}
	target := c.baseURL.ResolveReference(ref)

	// 2. --- Encode the body ---
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode Baserow request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// 3. --- Send ---
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("baserow request failed: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read Baserow response: %w", err)
	}

	// 4. --- Map failures to a descriptive message ---
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &APIError{StatusCode: res.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode Baserow response: %w", err)
	}
	return nil
}

// errorMessage picks "error", then "detail", then a generic message.
func errorMessage(raw []byte) string {
	var payload struct {
		Error  string          `json:"error"`
		Detail json.RawMessage `json:"detail"`
	}
	_ = json.Unmarshal(raw, &payload)

	if payload.Error != "" {
		return payload.Error
	}
	if len(payload.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(payload.Detail, &detail); err == nil && detail != "" {
			return detail
		}
		if text := strings.TrimSpace(string(payload.Detail)); text != "" && text != "null" {
			return text
		}
	}
	return "Baserow request failed"
}
