package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteSuccess(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "All good."}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk-test", 0)
	text, err := c.Complete(context.Background(), "gpt-4o-mini", []ChatMessage{
		{Role: "system", Content: "You are helpful."},
		{Role: "user", Content: "hi"},
	}, 0.5)

	require.NoError(t, err)
	assert.Equal(t, "All good.", text)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.Equal(t, 0.5, gotReq.Temperature)
	assert.Len(t, gotReq.Messages, 2)
}

func TestCompleteWithoutKeyFailsImmediately(t *testing.T) {
	// The base URL is unroutable; an unconfigured client must not touch it.
	c := NewClient("http://192.0.2.1", "", 0)

	_, err := c.Complete(context.Background(), "gpt-4o-mini", nil, 0)
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, reqErr.Reason, "no API key")
	assert.False(t, c.Configured())
}

func TestCompleteNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk-test", 0)
	_, err := c.Complete(context.Background(), "gpt-4o-mini", nil, 0)
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusTooManyRequests, reqErr.Status)
	assert.Contains(t, reqErr.Reason, "rate limited")
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk-test", 0)
	_, err := c.Complete(context.Background(), "gpt-4o-mini", nil, 0)
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, reqErr.Reason, "no completion content")
}

func TestCompleteContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, "sk-test", 0)
	_, err := c.Complete(ctx, "gpt-4o-mini", nil, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
