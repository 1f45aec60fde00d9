package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"matero/config"
	"matero/models"
)

// HTTPChatClient talks to the completion microservice over HTTP. The
// single-shot endpoint answers one JSON object; the stream endpoint answers a
// chunked body with inline action markers.
type HTTPChatClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPChatClient builds a client from the application configuration.
func NewHTTPChatClient() *HTTPChatClient {
	timeout := time.Duration(config.AppConfig.AITimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPChatClient{
		baseURL:    strings.TrimRight(config.AppConfig.AIServiceURL, "/"),
		apiKey:     config.AppConfig.AIServiceKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewHTTPChatClientWith is intended for tests; it avoids config and network
// defaults by accepting an explicit base URL and client.
func NewHTTPChatClientWith(baseURL string, httpClient *http.Client) *HTTPChatClient {
	return &HTTPChatClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type chatRequest struct {
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream,omitempty"`
}

type chatResponse struct {
	Reply  string          `json:"reply"`
	Action json.RawMessage `json:"action,omitempty"`
}

func (c *HTTPChatClient) newRequest(ctx context.Context, path string, body chatRequest) (*http.Request, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

// Send performs a single-shot completion returning {reply, action}.
func (c *HTTPChatClient) Send(ctx context.Context, messages []Message) (*ChatResult, error) {
	req, err := c.newRequest(ctx, "/chat", chatRequest{Messages: messages})
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return nil, fmt.Errorf("ai chat status %d: %s", resp.StatusCode, string(raw))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("ai chat decode: %w", err)
	}

	result := &ChatResult{}
	// The reply may still carry inline markers; strip them either way.
	display, embedded := ExtractAction(out.Reply)
	result.Reply = display
	result.Action = embedded
	if len(out.Action) > 0 && string(out.Action) != "null" {
		var action models.AssistantAction
		if err := json.Unmarshal(out.Action, &action); err == nil {
			result.Action = &action
		}
	}
	return result, nil
}

// SendStream performs a streaming completion, forwarding display text through
// onChunk as it arrives. Action markers are stripped before text reaches
// onChunk; the embedded payload is parsed once the stream ends.
func (c *HTTPChatClient) SendStream(ctx context.Context, messages []Message, onChunk func(string)) (*ChatResult, error) {
	req, err := c.newRequest(ctx, "/chat/stream", chatRequest{Messages: messages, Stream: true})
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai stream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return nil, fmt.Errorf("ai stream status %d: %s", resp.StatusCode, string(raw))
	}

	var full strings.Builder
	stream := newActionStream(func(text string) {
		full.WriteString(text)
		if onChunk != nil {
			onChunk(text)
		}
	})

	buf := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			stream.Write(string(buf[:n]))
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("ai stream read: %w", readErr)
		}
	}

	action := stream.Close()
	return &ChatResult{Reply: full.String(), Action: action}, nil
}
