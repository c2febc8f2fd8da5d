package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/haonguyen-dev/meeting-notes/pkg/config"
)

// mockAssemblyAI serves the upload, submit and poll endpoints. pollStatuses
// is consumed one status per poll; the last one repeats.
func mockAssemblyAI(t *testing.T, pollStatuses []map[string]interface{}) *httptest.Server {
	t.Helper()
	var polls int64

	mux := http.NewServeMux()
	mux.HandleFunc("/v2/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("upload: expected POST got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.assemblyai.com/upload/abc"})
	})
	mux.HandleFunc("/v2/transcript", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("submit: expected POST got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "job-123", "status": "queued"})
	})
	mux.HandleFunc("/v2/transcript/", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&polls, 1)
		idx := int(n) - 1
		if idx >= len(pollStatuses) {
			idx = len(pollStatuses) - 1
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(pollStatuses[idx])
	})

	return httptest.NewServer(mux)
}

func testClient(baseURL string, timeout time.Duration) *AssemblyAIClient {
	return NewAssemblyAIClientWithBaseURL(&config.AssemblyAIConfig{
		APIKey:       "test-key",
		PollInterval: 10 * time.Millisecond,
		PollTimeout:  timeout,
	}, nil, baseURL)
}

func TestTranscribeCompletes(t *testing.T) {
	ts := mockAssemblyAI(t, []map[string]interface{}{
		{"id": "job-123", "status": "processing"},
		{"id": "job-123", "status": "completed", "text": "hello world"},
	})
	defer ts.Close()

	client := testClient(ts.URL, time.Second)

	got, err := client.Transcribe(context.Background(), strings.NewReader("audio"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello world" {
		t.Fatalf("unexpected transcript %q", got)
	}
}

func TestTranscribeEmptyTextIsValid(t *testing.T) {
	ts := mockAssemblyAI(t, []map[string]interface{}{
		{"id": "job-123", "status": "completed", "text": nil},
	})
	defer ts.Close()

	client := testClient(ts.URL, time.Second)

	got, err := client.Transcribe(context.Background(), strings.NewReader("audio"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty transcript, got %q", got)
	}
}

func TestTranscribeJobError(t *testing.T) {
	ts := mockAssemblyAI(t, []map[string]interface{}{
		{"id": "job-123", "status": "error", "error": "audio too short"},
	})
	defer ts.Close()

	client := testClient(ts.URL, time.Second)

	_, err := client.Transcribe(context.Background(), strings.NewReader("audio"))
	if err == nil || !strings.Contains(err.Error(), "audio too short") {
		t.Fatalf("expected job error, got %v", err)
	}
}

func TestTranscribePollTimeout(t *testing.T) {
	ts := mockAssemblyAI(t, []map[string]interface{}{
		{"id": "job-123", "status": "processing"},
	})
	defer ts.Close()

	client := testClient(ts.URL, 25*time.Millisecond)

	_, err := client.Transcribe(context.Background(), strings.NewReader("audio"))
	if !errors.Is(err, ErrPollTimeout) {
		t.Fatalf("expected ErrPollTimeout, got %v", err)
	}
}

func TestTranscribeContextCanceled(t *testing.T) {
	ts := mockAssemblyAI(t, []map[string]interface{}{
		{"id": "job-123", "status": "processing"},
	})
	defer ts.Close()

	client := testClient(ts.URL, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	_, err := client.Transcribe(ctx, strings.NewReader("audio"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}
