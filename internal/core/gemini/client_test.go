package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvokeShortCircuitsWithoutKey(t *testing.T) {
	for _, key := range []string{"", "   ", "${GEMINI_API_KEY}"} {
		// Unreachable base URL proves no network call is attempted.
		c := NewClient("http://127.0.0.1:0", "gemini-2.0-flash", key)
		_, err := c.Invoke(context.Background(), "hello", GenerationParams{Temperature: 0.7, MaxOutputTokens: 1024})
		require.ErrorIs(t, err, ErrNotConfigured, "key=%q", key)

		var terr *TransportError
		require.False(t, errors.As(err, &terr), "configuration error must not be a transport failure")
	}
}

func TestInvokeRequestShape(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "gemini-2.0-flash", "secret")
	raw, err := c.Invoke(context.Background(), "line one\n\"quoted\"", GenerationParams{Temperature: 0.2, MaxOutputTokens: 4096})
	require.NoError(t, err)

	require.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", gotPath)
	require.Equal(t, "secret", gotKey)

	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	require.Equal(t, "line one\n\"quoted\"", gotBody.Contents[0].Parts[0].Text)
	require.Equal(t, 0.2, gotBody.GenerationConfig.Temperature)
	require.Equal(t, 40, gotBody.GenerationConfig.TopK)
	require.Equal(t, 0.95, gotBody.GenerationConfig.TopP)
	require.Equal(t, 4096, gotBody.GenerationConfig.MaxOutputTokens)
	require.Len(t, gotBody.SafetySettings, 4)
	for _, s := range gotBody.SafetySettings {
		require.Equal(t, "BLOCK_MEDIUM_AND_ABOVE", s.Threshold)
	}

	require.Equal(t, "ok", Interpret(raw))
}

func TestInvokeReturnsNon2xxBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "gemini-2.0-flash", "secret")
	raw, err := c.Invoke(context.Background(), "hello", GenerationParams{Temperature: 0.7, MaxOutputTokens: 1024})
	require.NoError(t, err, "error payloads flow to the interpreter, not the error path")
	require.Equal(t, "API Error: bad key", Interpret(raw))
}

func TestInvokeTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, "gemini-2.0-flash", "secret")
	_, err := c.Invoke(context.Background(), "hello", GenerationParams{Temperature: 0.7, MaxOutputTokens: 1024})

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
}
