package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"soulboard/internal/chain"
)

func TestSyncChainCountsUnknownCampaigns(t *testing.T) {
	repo := newMockCampaignRepo()
	repo.updateBookedFn = func(chainID int64, locations []int64) error {
		if chainID == 2 {
			return sql.ErrNoRows
		}
		return nil
	}

	chainClient := &mockChainClient{
		getCampaignsFn: func(ctx context.Context) ([]chain.Campaign, error) {
			return []chain.Campaign{
				{ID: 1, Name: "Known", BookedLocations: []int64{7}},
				{ID: 2, Name: "Unknown", BookedLocations: []int64{8}},
			}, nil
		},
	}
	h := NewSyncHandler(repo, chainClient)

	req := httptest.NewRequest(http.MethodPost, "/sync/chain", nil)
	w := httptest.NewRecorder()
	h.SyncChain(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var resp SyncChainResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Synced != 1 || resp.Unknown != 1 || len(resp.Errors) != 0 {
		t.Fatalf("unexpected sync result %+v", resp)
	}
}

func TestSyncChainGatewayDown(t *testing.T) {
	chainClient := &mockChainClient{
		getCampaignsFn: func(ctx context.Context) ([]chain.Campaign, error) {
			return nil, chain.ErrUnavailable
		},
	}
	h := NewSyncHandler(newMockCampaignRepo(), chainClient)

	req := httptest.NewRequest(http.MethodPost, "/sync/chain", nil)
	w := httptest.NewRecorder()
	h.SyncChain(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 got %d (%s)", w.Code, w.Body.String())
	}
}
