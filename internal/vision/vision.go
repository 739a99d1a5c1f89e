// Package vision calls an OpenAI-compatible chat completions endpoint
// to read chassis numbers from photos and to parse spoken inventory
// commands into structured intents.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no upstream endpoint is set.
var ErrNotConfigured = errors.New("vision service not configured")

// ErrNotFound is returned when the model reports that no chassis number
// is visible in the image.
var ErrNotFound = errors.New("no chassis number found in image")

// Client talks to the upstream model API.
type Client struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// NewClient creates a vision client. An empty baseURL yields a client
// whose calls fail with ErrNotConfigured.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Model:   model,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Configured reports whether an upstream endpoint is set.
func (c *Client) Configured() bool {
	return c.BaseURL != ""
}

const chassisPrompt = `You are reading a photo of a vehicle identification plate or sticker.
Extract the chassis number (VIN) visible in the image.
Respond with ONLY the chassis number, uppercase, no spaces.
If no chassis number is visible, respond with exactly NOT_FOUND.`

// ExtractChassisNumber sends an image to the model and returns the
// chassis number it reads.
func (c *Client) ExtractChassisNumber(ctx context.Context, image []byte, mime string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	dataURI := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(image))
	req := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: chassisPrompt},
					{Type: "image_url", ImageURL: &imageURL{URL: dataURI}},
				},
			},
		},
		MaxTokens: 50,
	}

	answer, err := c.complete(ctx, req)
	if err != nil {
		return "", err
	}

	answer = strings.ToUpper(strings.TrimSpace(answer))
	if answer == "" || answer == "NOT_FOUND" {
		return "", ErrNotFound
	}
	return answer, nil
}

const commandPrompt = `You convert spoken vehicle inventory commands into JSON.
Respond with ONLY a JSON object of the form:
{"intent": "...", "entities": {...}}
Supported intents: add_vehicle, sell_vehicle, reserve_vehicle, transfer_vehicle, search, unknown.
Entity keys when present: manufacturer, category, year, color, chassis_number, location, price.
Command: `

// Command is a parsed voice instruction.
type Command struct {
	Intent   string            `json:"intent"`
	Entities map[string]string `json:"entities"`
}

// ParseCommand turns transcribed speech into a structured command.
func (c *Client) ParseCommand(ctx context.Context, text string) (*Command, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	req := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{
				Role:    "user",
				Content: []contentPart{{Type: "text", Text: commandPrompt + text}},
			},
		},
		MaxTokens: 200,
	}

	answer, err := c.complete(ctx, req)
	if err != nil {
		return nil, err
	}

	// Models sometimes wrap JSON in a markdown fence.
	answer = strings.TrimSpace(answer)
	answer = strings.TrimPrefix(answer, "```json")
	answer = strings.TrimPrefix(answer, "```")
	answer = strings.TrimSuffix(answer, "```")

	cmd := &Command{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(answer)), cmd); err != nil {
		return nil, fmt.Errorf("decoding command response: %w", err)
	}
	if cmd.Intent == "" {
		cmd.Intent = "unknown"
	}
	if cmd.Entities == nil {
		cmd.Entities = map[string]string{}
	}
	return cmd, nil
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) complete(ctx context.Context, req chatRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("calling model API: %w", err)
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding model response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("model API error: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("model API returned status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("model API returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
