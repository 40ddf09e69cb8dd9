package algolia

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(serverURL string) *Client {
	return NewClient(ClientOptions{
		AppID:     "TESTAPP",
		APIKey:    "test-key",
		IndexName: "products",
		BaseURL:   serverURL + "/1/",
	})
}

func TestClient_TotalRecords(t *testing.T) {
	var receivedPath string
	var receivedBody []byte
	var receivedAppID, receivedKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		receivedAppID = r.Header.Get("x-algolia-application-id")
		receivedKey = r.Header.Get("x-algolia-api-key")
		receivedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"nbHits":1523,"hits":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	count, err := client.TotalRecords(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1523 {
		t.Errorf("expected count 1523, got %d", count)
	}
	if receivedPath != "/1/indexes/products/query" {
		t.Errorf("unexpected path: %s", receivedPath)
	}
	if receivedAppID != "TESTAPP" || receivedKey != "test-key" {
		t.Errorf("auth headers not set: app=%q key=%q", receivedAppID, receivedKey)
	}
	if string(receivedBody) != `{"params":"hitsPerPage=0&getRankingInfo=0&query=*"}` {
		t.Errorf("unexpected query body: %s", receivedBody)
	}
}

func TestClient_RecentLogs(t *testing.T) {
	var receivedQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"logs":[
			{"timestamp":"2026-08-01T10:00:00.000Z","method":"DELETE","url":"/1/indexes/products/sku-1","answer_code":"200"},
			{"timestamp":"2026-08-01T10:05:00.000Z","method":"PUT","url":"/1/indexes/products/sku-2","answer_code":"200"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	logs, err := client.RecentLogs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(logs))
	}
	if logs[0].Method != "DELETE" || logs[1].Timestamp != "2026-08-01T10:05:00.000Z" {
		t.Errorf("log entries decoded incorrectly: %+v", logs)
	}
	if receivedQuery != "indexName=products&type=build&offset=1&length=1000" {
		t.Errorf("unexpected logs query: %s", receivedQuery)
	}
}

func TestClient_RecentLogs_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	logs, err := client.RecentLogs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("expected no log entries, got %d", len(logs))
	}
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantErr   error
		wantFatal bool
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized, true},
		{"forbidden", http.StatusForbidden, ErrUnauthorized, true},
		{"index missing", http.StatusNotFound, ErrIndexNotFound, true},
		{"server error", http.StatusInternalServerError, nil, false},
		{"bad gateway", http.StatusBadGateway, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := newTestClient(server.URL)

			_, err := client.TotalRecords(context.Background())
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if Fatal(err) != tt.wantFatal {
				t.Errorf("Fatal(%v) = %v, want %v", err, Fatal(err), tt.wantFatal)
			}
		})
	}
}

func TestClient_ConnectionErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestClient(server.URL)

	_, err := client.TotalRecords(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if Fatal(err) {
		t.Errorf("connection error should be transient, got fatal: %v", err)
	}
}

func TestClient_ErrorsOmitAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.TotalRecords(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := err.Error(); strings.Contains(got, "test-key") {
		t.Errorf("error message leaks the API key: %s", got)
	}
}
