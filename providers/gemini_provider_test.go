package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiProvider_GenerateReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Equal(t, "What's the weather?", req.Contents[0].Parts[0].Text)
		assert.Equal(t, 0.7, req.Config.Temperature)
		assert.Equal(t, 500, req.Config.MaxOutputTokens)

		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "Sunny."}]}}]}`))
	}))
	defer server.Close()

	provider := NewGeminiProvider("test-key", server.URL, "gemini-2.0-flash")

	reply, err := provider.GenerateReply(context.Background(), "What's the weather?")
	require.NoError(t, err)
	assert.Equal(t, "Sunny.", reply)
}

func TestGeminiProvider_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	provider := NewGeminiProvider("test-key", server.URL, "gemini-2.0-flash")

	reply, err := provider.GenerateReply(context.Background(), "hello")
	require.NoError(t, err, "an empty candidate list is not an error")
	assert.Empty(t, reply)
}

func TestGeminiProvider_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewGeminiProvider("test-key", server.URL, "gemini-2.0-flash")

	_, err := provider.GenerateReply(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 429 error")
}
