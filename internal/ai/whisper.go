package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const whisperURL = "https://api.openai.com/v1/audio/transcriptions"

// WhisperClient is the fallback transcriber using OpenAI's audio API.
type WhisperClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

type whisperResponse struct {
	Text string `json:"text"`
}

func NewWhisperClient(apiKey string, timeout time.Duration) *WhisperClient {
	return &WhisperClient{
		apiKey:  apiKey,
		model:   "whisper-1",
		baseURL: whisperURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *WhisperClient) Name() string { return "whisper" }

func (c *WhisperClient) Transcribe(ctx context.Context, audio []byte) (*Transcript, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("openai api key not set: %w", ErrProviderUnavailable)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "audio.mp3")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("write audio: %w", err)
	}
	if err := writer.WriteField("model", c.model); err != nil {
		return nil, fmt.Errorf("write model field: %w", err)
	}
	if err := writer.WriteField("temperature", "0"); err != nil {
		return nil, fmt.Errorf("write temperature field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w: %w", err, ErrProviderUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api error (%d): %s: %w", resp.StatusCode, string(body), ErrProviderUnavailable)
	}

	var out whisperResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	// Whisper reports no confidence score.
	return &Transcript{Text: out.Text, Confidence: 0.9, Provider: c.Name()}, nil
}
