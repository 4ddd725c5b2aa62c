package carbon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOCRClientExtractsText(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Write([]byte(`{"text": "Pongal 40.00\nVada 15.00"}`))
	}))
	defer server.Close()

	client := NewOCRClient(OCRConfig{ServiceURL: server.URL, Language: "eng"})
	text := client.ExtractText(context.Background(), "https://bucket.s3.region.amazonaws.com/receipts/abc")

	if text != "Pongal 40.00\nVada 15.00" {
		t.Errorf("text = %q", text)
	}
	if gotBody["image_url"] != "https://bucket.s3.region.amazonaws.com/receipts/abc" {
		t.Errorf("image_url = %q", gotBody["image_url"])
	}
	if gotBody["language"] != "eng" {
		t.Errorf("language = %q", gotBody["language"])
	}
}

func TestOCRClientDefaultsLanguage(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"text": ""}`))
	}))
	defer server.Close()

	client := NewOCRClient(OCRConfig{ServiceURL: server.URL})
	client.ExtractText(context.Background(), "https://example.com/img")

	if gotBody["language"] != "eng" {
		t.Errorf("language = %q, want default eng", gotBody["language"])
	}
}

// OCR failures degrade to empty text; the caller decides what that means.
func TestOCRClientFailuresYieldEmptyString(t *testing.T) {
	errorServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "ocr exploded", http.StatusBadGateway)
	}))
	defer errorServer.Close()

	garbageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer garbageServer.Close()

	tests := []struct {
		name string
		url  string
	}{
		{"server error", errorServer.URL},
		{"garbage response", garbageServer.URL},
		{"unreachable", "http://127.0.0.1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewOCRClient(OCRConfig{ServiceURL: tt.url})
			if text := client.ExtractText(context.Background(), "https://example.com/img"); text != "" {
				t.Errorf("expected empty text, got %q", text)
			}
		})
	}
}
