package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is the boundary to the on-chain program. All reads and writes of
// chain state go through it; the program's internals are opaque to this
// service.
type Client interface {
	CreateCampaign(ctx context.Context, meta CampaignMetadata, locationIDs []int64) (int64, string, error)
	RegisterBooth(ctx context.Context, meta BoothMetadata, owner string) (int64, string, error)
	AddLocationToCampaign(ctx context.Context, campaignID, locationID int64) (string, error)
	GetCampaigns(ctx context.Context) ([]Campaign, error)
}

// GatewayClient talks to the program gateway, an HTTP service that builds,
// signs and submits the actual Solana transactions.
type GatewayClient struct {
	baseURL    string
	network    string
	httpClient *http.Client
}

func NewGatewayClient(baseURL, network string, timeout time.Duration) *GatewayClient {
	return &GatewayClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		network: network,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *GatewayClient) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

func (c *GatewayClient) CreateCampaign(ctx context.Context, meta CampaignMetadata, locationIDs []int64) (int64, string, error) {
	if locationIDs == nil {
		locationIDs = []int64{}
	}
	payload := map[string]any{
		"name":            meta.Name,
		"description":     meta.Description,
		"content_uri":     meta.ContentURI,
		"start_date":      meta.StartDate,
		"duration_days":   meta.DurationDays,
		"additional_info": meta.AdditionalInfo(),
		"location_ids":    locationIDs,
	}

	var out txResponse
	if err := c.post(ctx, "/campaigns", payload, &out); err != nil {
		return 0, "", err
	}
	return out.CampaignID, out.Signature, nil
}

func (c *GatewayClient) RegisterBooth(ctx context.Context, meta BoothMetadata, owner string) (int64, string, error) {
	payload := map[string]any{
		"name":         meta.Name,
		"address":      meta.Address,
		"display_type": meta.DisplayType,
		"display_size": meta.DisplaySize,
		"owner":        owner,
	}

	var out txResponse
	if err := c.post(ctx, "/booths", payload, &out); err != nil {
		return 0, "", err
	}
	return out.DeviceID, out.Signature, nil
}

func (c *GatewayClient) AddLocationToCampaign(ctx context.Context, campaignID, locationID int64) (string, error) {
	payload := map[string]any{
		"campaign_id": campaignID,
		"location_id": locationID,
	}

	var out txResponse
	if err := c.post(ctx, fmt.Sprintf("/campaigns/%d/locations", campaignID), payload, &out); err != nil {
		return "", err
	}
	return out.Signature, nil
}

func (c *GatewayClient) GetCampaigns(ctx context.Context) ([]Campaign, error) {
	url := c.baseURL + "/campaigns?network=" + c.network

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp)
	}

	var campaigns []Campaign
	if err := json.NewDecoder(resp.Body).Decode(&campaigns); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return campaigns, nil
}

func (c *GatewayClient) post(ctx context.Context, path string, payload any, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Solana-Network", c.network)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// decodeError maps a gateway error payload onto the client's sentinel errors,
// keeping the gateway's message so callers can pass it through verbatim.
func (c *GatewayClient) decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		switch e.Error {
		case "wrong_network", "network_mismatch":
			return fmt.Errorf("%w: %s", ErrWrongNetwork, e.Message)
		case "transaction_failed", "transaction_reverted", "signature_rejected":
			return fmt.Errorf("%w: %s", ErrTransactionFailed, e.Message)
		}
	}

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: status=%d body=%s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return fmt.Errorf("%w: status=%d body=%s", ErrTransactionFailed, resp.StatusCode, strings.TrimSpace(string(body)))
}
