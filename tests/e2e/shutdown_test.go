package e2e

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkolbas/gonka-notifier/internal/control"
)

func TestGracefulShutdown(t *testing.T) {
	var fetches atomic.Int64

	// Report endpoint returning all-PASS checks, so no Telegram traffic
	// happens during the test.
	node := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"checks": [{"id": "node_sync", "status": "PASS", "message": "ok", "details": {}}]}`))
	}))
	defer node.Close()

	u, err := url.Parse(node.URL)
	if err != nil {
		t.Fatalf("parse node url: %v", err)
	}
	adminPort, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("parse node port: %v", err)
	}

	cfg := control.Config{
		APIServer:          u.Hostname(),
		AdminPort:          adminPort,
		BotToken:           "test-token",
		ChatID:             "test-chat",
		MissedPctThreshold: 3.0,
		PctDecimals:        2,
		Interval:           time.Second,
		OpsPort:            18099,
	}

	monitor, err := control.NewMonitor(cfg)
	if err != nil {
		t.Fatalf("Failed to create monitor: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := monitor.Start(ctx); err != nil {
		t.Fatalf("Failed to start monitor: %v", err)
	}

	// Let at least one cycle run.
	deadline := time.After(5 * time.Second)
	for fetches.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("monitor never fetched the report")
		case <-time.After(20 * time.Millisecond):
		}
	}

	// Ops server answers while running.
	resp, err := http.Get("http://127.0.0.1:18099/health")
	if err != nil {
		t.Fatalf("health endpoint unreachable: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 from /health, got %d", resp.StatusCode)
	}

	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()

	if err := monitor.Stop(stopCtx); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}
