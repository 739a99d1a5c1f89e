package vision

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeUpstream answers chat completion requests with a fixed content
// string.
func fakeUpstream(t *testing.T, content string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestExtractChassisNumber(t *testing.T) {
	server := fakeUpstream(t, "  wdb1234567\n")
	client := NewClient(server.URL, "key", "model")

	chassis, err := client.ExtractChassisNumber(context.Background(), []byte("img"), "image/jpeg")
	if err != nil {
		t.Fatalf("ExtractChassisNumber: %v", err)
	}
	if chassis != "WDB1234567" {
		t.Errorf("expected normalized chassis, got %q", chassis)
	}
}

func TestExtractChassisNumberNotFound(t *testing.T) {
	server := fakeUpstream(t, "NOT_FOUND")
	client := NewClient(server.URL, "key", "model")

	_, err := client.ExtractChassisNumber(context.Background(), []byte("img"), "image/jpeg")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestExtractChassisNumberNotConfigured(t *testing.T) {
	client := NewClient("", "", "")

	_, err := client.ExtractChassisNumber(context.Background(), []byte("img"), "image/jpeg")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestParseCommand(t *testing.T) {
	server := fakeUpstream(t, "```json\n{\"intent\": \"sell_vehicle\", \"entities\": {\"chassis_number\": \"CH1\"}}\n```")
	client := NewClient(server.URL, "key", "model")

	cmd, err := client.ParseCommand(context.Background(), "sell vehicle CH1")
	if err != nil {
		t.Fatalf("ParseCommand: %v", err)
	}
	if cmd.Intent != "sell_vehicle" {
		t.Errorf("expected sell_vehicle, got %q", cmd.Intent)
	}
	if cmd.Entities["chassis_number"] != "CH1" {
		t.Errorf("expected chassis entity, got %v", cmd.Entities)
	}
}

func TestParseCommandDefaultsUnknown(t *testing.T) {
	server := fakeUpstream(t, `{}`)
	client := NewClient(server.URL, "key", "model")

	cmd, err := client.ParseCommand(context.Background(), "mumble")
	if err != nil {
		t.Fatalf("ParseCommand: %v", err)
	}
	if cmd.Intent != "unknown" || cmd.Entities == nil {
		t.Errorf("expected unknown intent with empty entities, got %+v", cmd)
	}
}

func TestUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "rate limited"},
		})
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "key", "model")
	_, err := client.ExtractChassisNumber(context.Background(), []byte("img"), "image/jpeg")
	if err == nil {
		t.Fatal("expected error from failing upstream")
	}
}
