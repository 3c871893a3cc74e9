package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/pkg/config"
)

func motivatorConfig(endpoint string) config.MotivatorConfig {
	return config.MotivatorConfig{
		APIKey:   "test-key",
		Model:    "gemini-3-flash-preview",
		Endpoint: endpoint,
		Timeout:  2 * time.Second,
	}
}

func TestMotivatorServiceGenerate(t *testing.T) {
	var gotPath, gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var req generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			gotPrompt = req.Contents[0].Parts[0].Text
		}
		w.Header().Set("Content-Type", "application/json")
		body := `{"candidates":[{"content":{"parts":[{"text":"  Zo'r natija, Alisher! Davom et!  "}]}}]}`
		_, err := w.Write([]byte(body))
		require.NoError(t, err)
	}))
	defer server.Close()

	svc := NewMotivatorService(server.Client(), motivatorConfig(server.URL), zap.NewNop())
	msg := svc.Generate(context.Background(), "Alisher", 150)

	assert.Equal(t, "Zo'r natija, Alisher! Davom et!", msg)
	assert.Equal(t, "/models/gemini-3-flash-preview:generateContent", gotPath)
	assert.Contains(t, gotPrompt, "Alisher")
	assert.Contains(t, gotPrompt, "150")
}

func TestMotivatorServiceFallbackWithoutAPIKey(t *testing.T) {
	cfg := motivatorConfig("http://unused")
	cfg.APIKey = ""
	svc := NewMotivatorService(nil, cfg, zap.NewNop())

	msg := svc.Generate(context.Background(), "Zuxra", 620)
	assert.Equal(t, fallbackErrorMessage, msg)
}

func TestMotivatorServiceFallbackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := NewMotivatorService(server.Client(), motivatorConfig(server.URL), zap.NewNop())
	msg := svc.Generate(context.Background(), "Javohir", 85)
	assert.Equal(t, fallbackErrorMessage, msg)
}

func TestMotivatorServiceFallbackOnEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := strings.NewReader(`{"candidates":[]}`).WriteTo(w)
		require.NoError(t, err)
	}))
	defer server.Close()

	svc := NewMotivatorService(server.Client(), motivatorConfig(server.URL), zap.NewNop())
	msg := svc.Generate(context.Background(), "Javohir", 85)
	assert.Equal(t, fallbackEmptyMessage, msg)
}

func TestMotivatorServiceFallbackOnUnreachableProvider(t *testing.T) {
	cfg := motivatorConfig("http://127.0.0.1:1")
	cfg.Timeout = 200 * time.Millisecond
	svc := NewMotivatorService(&http.Client{}, cfg, zap.NewNop())

	msg := svc.Generate(context.Background(), "Javohir", 85)
	assert.Equal(t, fallbackErrorMessage, msg)
}
