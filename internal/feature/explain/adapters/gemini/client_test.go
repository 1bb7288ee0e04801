package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Get2Core/fs-project/internal/feature/explain/adapters/gemini"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv(gemini.EnvKeyAPIKey, "")
	t.Setenv(gemini.EnvKeyModel, "")

	cfg := gemini.LoadConfig()
	assert.False(t, cfg.Configured())
	assert.Equal(t, gemini.DefaultModel, cfg.Model)

	t.Setenv(gemini.EnvKeyAPIKey, "k")
	t.Setenv(gemini.EnvKeyModel, "gemini-test")
	cfg = gemini.LoadConfig()
	assert.True(t, cfg.Configured())
	assert.Equal(t, "gemini-test", cfg.Model)
}

func TestGeminiGenerator_Generate(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-test:generateContent"), r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"재무 상태가 양호합니다."}]}}]}`)
	}))
	defer srv.Close()

	g, err := gemini.NewGeminiGenerator(context.Background(), gemini.Config{APIKey: "k", Model: "gemini-test", BaseURL: srv.URL}, srv.Client())
	require.NoError(t, err)

	out, err := g.Generate(context.Background(), "설명해주세요")
	require.NoError(t, err)
	assert.Equal(t, "재무 상태가 양호합니다.", out)

	cfg, ok := gotBody["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing: %v", gotBody)
	assert.EqualValues(t, 8192, cfg["maxOutputTokens"])
	safety, ok := gotBody["safetySettings"].([]any)
	require.True(t, ok)
	assert.Len(t, safety, 4)
}

func TestGeminiGenerator_Generate_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`)
	}))
	defer srv.Close()

	g, err := gemini.NewGeminiGenerator(context.Background(), gemini.Config{APIKey: "k", BaseURL: srv.URL}, srv.Client())
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESOURCE_EXHAUSTED")
}
