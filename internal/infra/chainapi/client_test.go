package chainapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchEpochGroupDataSnakeCase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/current_epoch_group_data" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"epoch_group_data": {
				"epoch_index": "12",
				"total_weight": "1000",
				"validation_weights": [
					{"member_address": "gonka1abc", "weight": "300", "confirmation_weight": "250"},
					{"member_address": "gonka1def", "weight": "700", "confirmation_weight": "650"}
				]
			}
		}`))
	}))
	defer srv.Close()

	data, err := NewClient(srv.URL, 5*time.Second).FetchEpochGroupData(context.Background())
	if err != nil {
		t.Fatalf("FetchEpochGroupData failed: %v", err)
	}

	if data.EpochIndex != 12 {
		t.Errorf("expected epoch 12, got %d", data.EpochIndex)
	}
	if data.TotalWeight != 1000 {
		t.Errorf("expected total weight 1000, got %d", data.TotalWeight)
	}
	if len(data.Weights) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(data.Weights))
	}

	entry, ok := data.Find("gonka1abc")
	if !ok {
		t.Fatal("expected gonka1abc entry")
	}
	if entry.ConfirmationWeight != 250 || entry.Weight != 300 {
		t.Errorf("unexpected entry: %+v", entry)
	}
}

func TestFetchEpochGroupDataCamelCase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"epochGroupData": {
				"epochIndex": 3,
				"totalWeight": 500,
				"validationWeights": [
					{"memberAddress": "gonka1abc", "weight": 100, "confirmationWeight": 90}
				]
			}
		}`))
	}))
	defer srv.Close()

	data, err := NewClient(srv.URL, 5*time.Second).FetchEpochGroupData(context.Background())
	if err != nil {
		t.Fatalf("FetchEpochGroupData failed: %v", err)
	}

	if data.EpochIndex != 3 {
		t.Errorf("expected epoch 3, got %d", data.EpochIndex)
	}
	entry, ok := data.Find("gonka1abc")
	if !ok {
		t.Fatal("expected gonka1abc entry under camelCase keys")
	}
	if entry.ConfirmationWeight != 90 {
		t.Errorf("expected confirmation weight 90, got %d", entry.ConfirmationWeight)
	}
}

func TestFetchEpochGroupDataFlatBlock(t *testing.T) {
	// Some deployments return the block at the top level.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"epoch_index": 5, "total_weight": 100, "validation_weights": []}`))
	}))
	defer srv.Close()

	data, err := NewClient(srv.URL, 5*time.Second).FetchEpochGroupData(context.Background())
	if err != nil {
		t.Fatalf("FetchEpochGroupData failed: %v", err)
	}
	if data.EpochIndex != 5 {
		t.Errorf("expected epoch 5, got %d", data.EpochIndex)
	}
}

func TestFetchEpochGroupDataHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, 5*time.Second).FetchEpochGroupData(context.Background()); err == nil {
		t.Fatal("expected error for 503 response")
	}
}
