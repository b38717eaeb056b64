// Package suirpc fetches normalized Move package interfaces from a Sui
// fullnode over JSON-RPC 2.0.
package suirpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/movediff-labs/movediff/drivers/move/normalized"
)

const (
	// DefaultEndpoint is the public mainnet fullnode.
	DefaultEndpoint = "https://fullnode.mainnet.sui.io:443"

	httpClientTimeout = 30 * time.Second
	defaultUserAgent  = "movediff/0.1.0"

	methodNormalizedModules = "sui_getNormalizedMoveModulesByPackage"
	methodGetObject         = "sui_getObject"
)

// Client issues JSON-RPC requests against a single fullnode endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	userAgent  string
}

// NewClient creates a Client for the given endpoint URL. An empty endpoint
// selects DefaultEndpoint.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		httpClient: &http.Client{Timeout: httpClientTimeout},
		endpoint:   endpoint,
		userAgent:  defaultUserAgent,
	}
}

// FetchInterface returns the package's normalized modules keyed by name.
func (c *Client) FetchInterface(ctx context.Context, packageID string) (map[string]normalized.ModuleInterface, error) {
	raw, err := c.FetchRawInterface(ctx, packageID)
	if err != nil {
		return nil, err
	}

	modules, err := normalized.ParseModules(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding normalized modules of %s: %w", packageID, err)
	}
	return modules, nil
}

// FetchRawInterface returns the undecoded normalized-module JSON for the
// package.
func (c *Client) FetchRawInterface(ctx context.Context, packageID string) ([]byte, error) {
	result, err := c.call(ctx, methodNormalizedModules, []any{packageID})
	if err != nil {
		return nil, fmt.Errorf("fetching normalized modules of %s: %w", packageID, err)
	}
	return []byte(result.Raw), nil
}

// FetchVersion returns the on-chain version label of the package object.
func (c *Client) FetchVersion(ctx context.Context, packageID string) (string, error) {
	result, err := c.call(ctx, methodGetObject, []any{packageID, map[string]any{}})
	if err != nil {
		return "", fmt.Errorf("fetching object %s: %w", packageID, err)
	}

	version := result.Get("data.version")
	if !version.Exists() {
		return "", fmt.Errorf("object %s has no version in response", packageID)
	}
	return version.String(), nil
}

// call performs a single JSON-RPC request and returns the result field.
func (c *Client) call(ctx context.Context, method string, params []any) (gjson.Result, error) {
	payload, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("encoding request for %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("building request for %s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	log.Debugf("rpc %s -> %s", method, c.endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("calling %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, c.endpoint)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("reading response for %s: %w", method, err)
	}

	if rpcErr := gjson.GetBytes(body, "error"); rpcErr.Exists() {
		return gjson.Result{}, fmt.Errorf("rpc error from %s: %s (code %d)",
			method, rpcErr.Get("message").String(), rpcErr.Get("code").Int())
	}

	result := gjson.GetBytes(body, "result")
	if !result.Exists() {
		return gjson.Result{}, fmt.Errorf("response for %s has no result", method)
	}
	return result, nil
}
