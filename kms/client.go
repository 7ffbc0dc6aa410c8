// Package kms is a client for the custodial key-management service. The
// service holds all private key material; this package only lists wallets and
// accounts and submits raw payloads for signing.
package kms

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	pathGetWallets        = "/public/v1/query/list_wallets"
	pathGetWalletAccounts = "/public/v1/query/list_accounts"
	pathSignRawPayload    = "/public/v1/submit/sign_raw_payload"

	// The digest submitted for signing is already final; the service must
	// sign it as-is.
	encodingHex      = "HEX"
	hashFunctionNone = "NONE"
)

// Client is an HTTP client for the key-management service.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client, e.g. to control timeouts.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(k *Client) {
		k.client = c
	}
}

// NewClient creates a new key-management service client.
func NewClient(endpoint, apiKey string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("endpoint required")
	}

	c := &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		apiKey:   apiKey,
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// GetWallets lists the wallets of a custodial organization.
func (c *Client) GetWallets(ctx context.Context, organizationID string) ([]Wallet, error) {
	var out getWalletsResponse
	err := c.post(ctx, pathGetWallets, getWalletsRequest{OrganizationID: organizationID}, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}

	return out.Wallets, nil
}

// GetWalletAccounts lists the accounts of one wallet.
func (c *Client) GetWalletAccounts(ctx context.Context, organizationID, walletID string) ([]Account, error) {
	var out getWalletAccountsResponse
	err := c.post(ctx, pathGetWalletAccounts, getWalletAccountsRequest{
		OrganizationID: organizationID,
		WalletID:       walletID,
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for wallet %s: %w", walletID, err)
	}

	return out.Accounts, nil
}

// SignRawPayload submits a digest for signing with the account identified by
// signWith. The payload is hex-encoded and the service applies no further
// hashing. Exactly one round trip; a response without both signature halves
// is an error.
func (c *Client) SignRawPayload(ctx context.Context, organizationID, signWith string, payload []byte) (*SignatureParts, error) {
	var out signRawPayloadResponse
	err := c.post(ctx, pathSignRawPayload, signRawPayloadRequest{
		OrganizationID: organizationID,
		SignWith:       signWith,
		Payload:        "0x" + hex.EncodeToString(payload),
		Encoding:       encodingHex,
		HashFunction:   hashFunctionNone,
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to sign payload: %w", err)
	}

	result := out.Activity.Result.SignRawPayloadResult
	if result == nil || result.R == "" || result.S == "" {
		return nil, fmt.Errorf("sign response is missing signature parts")
	}

	return result, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	reqBody, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("key service http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
