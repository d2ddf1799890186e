//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func TestRemoteAPI_MainEndpoints(t *testing.T) {
	baseURL := strings.TrimRight(envOr("E2E_BASE_URL", "http://localhost:8080"), "/")
	client := &http.Client{Timeout: 20 * time.Second}

	t.Run("healthz", func(t *testing.T) {
		status, body, err := doRequest(client, http.MethodGet, baseURL+"/healthz", nil)
		if err != nil {
			t.Fatalf("healthz request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("healthz status=%d body=%s", status, string(body))
		}
	})

	t.Run("snapshot cycle", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/agent/snapshot", map[string]any{
			"free_text": "You are standing in Lumbridge.",
		})
		if status != http.StatusOK {
			t.Fatalf("snapshot status=%d body=%s", status, string(body))
		}
		var res map[string]any
		if err := json.Unmarshal(body, &res); err != nil {
			t.Fatalf("unmarshal cycle result: %v body=%s", err, string(body))
		}
		if _, ok := res["suggestion"]; !ok {
			t.Fatalf("cycle result missing suggestion: %s", string(body))
		}
		if _, ok := res["tutorial_complete"]; !ok {
			t.Fatalf("cycle result missing tutorial_complete: %s", string(body))
		}
	})

	t.Run("status and journal read views", func(t *testing.T) {
		status, body, err := doRequest(client, http.MethodGet, baseURL+"/api/agent/status", nil)
		if err != nil {
			t.Fatalf("status request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("status status=%d body=%s", status, string(body))
		}
		view := map[string]any{}
		if err := json.Unmarshal(body, &view); err != nil {
			t.Fatalf("unmarshal status: %v body=%s", err, string(body))
		}
		state := asMap(view["state"])
		if _, ok := state["location"]; !ok {
			t.Fatalf("status view missing state.location: %s", string(body))
		}

		status, body, err = doRequest(client, http.MethodGet, baseURL+"/api/agent/journal?limit=5", nil)
		if err != nil {
			t.Fatalf("journal request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("journal status=%d body=%s", status, string(body))
		}
		journal := map[string]any{}
		if err := json.Unmarshal(body, &journal); err != nil {
			t.Fatalf("unmarshal journal: %v body=%s", err, string(body))
		}
		if records := asSlice(journal["records"]); records == nil {
			t.Fatalf("journal view missing records: %s", string(body))
		}
	})

	t.Run("knowledge lookup", func(t *testing.T) {
		status, body, err := doRequest(client, http.MethodGet, baseURL+"/api/knowledge?q=lumbridge", nil)
		if err != nil {
			t.Fatalf("knowledge request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("knowledge status=%d body=%s", status, string(body))
		}

		status, body, err = doRequest(client, http.MethodGet, baseURL+"/api/knowledge", nil)
		if err != nil {
			t.Fatalf("knowledge request: %v", err)
		}
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400 for missing query, got %d body=%s", status, string(body))
		}
	})

	t.Run("journal rejects unknown kind", func(t *testing.T) {
		status, body, err := doRequest(client, http.MethodGet, baseURL+"/api/agent/journal?kind=nonsense", nil)
		if err != nil {
			t.Fatalf("journal request: %v", err)
		}
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", status, string(body))
		}
	})
}

func mustJSON(t *testing.T, client *http.Client, method, url string, body map[string]any) (int, []byte) {
	t.Helper()
	status, respBody, err := doRequest(client, method, url, body)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return status, respBody
}

func doRequest(client *http.Client, method, url string, body map[string]any) (int, []byte, error) {
	var payloadBytes []byte
	if body != nil {
		var err error
		payloadBytes, err = json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
	}

	var lastStatus int
	var lastBody []byte
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var payload io.Reader
		if len(payloadBytes) > 0 {
			payload = bytes.NewReader(payloadBytes)
		}
		req, err := http.NewRequest(method, url, payload)
		if err != nil {
			return 0, nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		lastStatus, lastBody, lastErr = resp.StatusCode, respBody, nil
		if resp.StatusCode >= 500 {
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		return resp.StatusCode, respBody, nil
	}
	if lastErr != nil {
		return 0, nil, lastErr
	}
	return lastStatus, lastBody, nil
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}
