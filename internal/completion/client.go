// Package completion is the HTTP client for the remote chat-completion
// service. The service is consumed as an opaque OpenAI-style endpoint: a
// single POST with {model, messages, temperature} and bearer-token auth.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ChatMessage is one turn on the wire, reduced to role and content.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RequestError marks any failure of the completion call: missing credential,
// network error, non-2xx status, or a response with no usable content. The
// controller folds it into the conversation as a retryable error turn.
type RequestError struct {
	Status int
	Reason string
	Err    error
}

func (e *RequestError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("completion request: %v", e.Err)
	case e.Status != 0:
		return fmt.Sprintf("completion request: status %d: %s", e.Status, e.Reason)
	default:
		return fmt.Sprintf("completion request: %s", e.Reason)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Client calls the chat-completions endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a completion client. The timeout bounds the whole
// request; expiry follows the same failure path as any network error.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured reports whether a credential is present. An unconfigured client
// fails every call immediately without attempting the network.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat-completion request and returns the assistant text
// from the first choice. Every failure is a *RequestError.
func (c *Client) Complete(ctx context.Context, model string, messages []ChatMessage, temperature float64) (string, error) {
	if !c.Configured() {
		return "", &RequestError{Reason: "no API key configured"}
	}

	body, err := json.Marshal(completionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		return "", &RequestError{Reason: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &RequestError{Reason: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &RequestError{Reason: "send request", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RequestError{Reason: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &RequestError{Status: resp.StatusCode, Reason: truncateBody(respBody)}
	}

	var result completionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &RequestError{Reason: "decode response", Err: err}
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", &RequestError{Reason: "response contained no completion content"}
	}

	return result.Choices[0].Message.Content, nil
}

func truncateBody(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 300 {
		return s[:300] + "..."
	}
	return s
}
