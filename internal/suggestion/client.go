package suggestion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/config"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected completion status")
	ErrEmptyCompletion  = errors.New("completion has no content")
)

const (
	maxErrorBody = 512

	DefaultTimeout = 30 * time.Second
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client talks to an OpenAI-compatible chat completions endpoint such as Open WebUI.
type Client struct {
	httpClient *http.Client

	url         string
	model       string
	apiKey      string
	temperature float64
	maxTokens   int
}

// NewClient builds a client for conf. A non-positive timeout is replaced with DefaultTimeout so a call never waits forever.
func NewClient(conf config.Suggestion) *Client {
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		url:         conf.URL,
		model:       conf.Model,
		apiKey:      conf.APIKey,
		temperature: conf.Temperature,
		maxTokens:   conf.MaxTokens,
	}
}

// Complete sends prompt as a single user message and returns the trimmed reply text.
func (that *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:       that.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: that.temperature,
		MaxTokens:   that.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, that.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if that.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+that.apiKey)
	}

	resp, err := that.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(text)))
	}

	var completion completionResponse
	if err = json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEmptyCompletion, err)
	}

	if len(completion.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
