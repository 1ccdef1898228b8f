package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const assemblyaiBaseURL = "https://api.assemblyai.com/v2"

// AssemblyAIClient implements the upload / transcribe / poll flow of the
// AssemblyAI v2 API.
type AssemblyAIClient struct {
	apiKey       string
	baseURL      string
	client       *http.Client
	pollInterval time.Duration
}

type assemblyUploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type assemblyTranscriptRequest struct {
	AudioURL          string `json:"audio_url"`
	SpeakerLabels     bool   `json:"speaker_labels"`
	SentimentAnalysis bool   `json:"sentiment_analysis"`
	EntityDetection   bool   `json:"entity_detection"`
	Summarization     bool   `json:"summarization"`
	SummaryType       string `json:"summary_type,omitempty"`
}

type assemblyTranscriptResponse struct {
	ID         string  `json:"id"`
	Status     string  `json:"status"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error"`
}

func NewAssemblyAIClient(apiKey string, timeout time.Duration) *AssemblyAIClient {
	return &AssemblyAIClient{
		apiKey:       apiKey,
		baseURL:      assemblyaiBaseURL,
		client:       &http.Client{Timeout: timeout},
		pollInterval: 2 * time.Second,
	}
}

func (c *AssemblyAIClient) Name() string { return "assemblyai" }

func (c *AssemblyAIClient) Transcribe(ctx context.Context, audio []byte) (*Transcript, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("assemblyai api key not set: %w", ErrProviderUnavailable)
	}

	uploadURL, err := c.upload(ctx, audio)
	if err != nil {
		return nil, err
	}

	transcriptID, err := c.createTranscript(ctx, uploadURL)
	if err != nil {
		return nil, err
	}

	return c.poll(ctx, transcriptID)
}

func (c *AssemblyAIClient) upload(ctx context.Context, audio []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	var out assemblyUploadResponse
	if err := c.do(req, &out); err != nil {
		return "", fmt.Errorf("upload audio: %w", err)
	}
	if out.UploadURL == "" {
		return "", fmt.Errorf("empty upload url in response")
	}
	return out.UploadURL, nil
}

func (c *AssemblyAIClient) createTranscript(ctx context.Context, audioURL string) (string, error) {
	body, err := json.Marshal(assemblyTranscriptRequest{
		AudioURL:          audioURL,
		SpeakerLabels:     true,
		SentimentAnalysis: true,
		EntityDetection:   true,
		Summarization:     true,
		SummaryType:       "bullets",
	})
	if err != nil {
		return "", fmt.Errorf("marshal transcript request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transcript", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create transcript request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	var out assemblyTranscriptResponse
	if err := c.do(req, &out); err != nil {
		return "", fmt.Errorf("create transcript: %w", err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("empty transcript id in response")
	}
	return out.ID, nil
}

func (c *AssemblyAIClient) poll(ctx context.Context, transcriptID string) (*Transcript, error) {
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transcript/"+transcriptID, nil)
		if err != nil {
			return nil, fmt.Errorf("create poll request: %w", err)
		}
		req.Header.Set("Authorization", c.apiKey)

		var out assemblyTranscriptResponse
		if err := c.do(req, &out); err != nil {
			return nil, fmt.Errorf("poll transcript: %w", err)
		}

		switch out.Status {
		case "completed":
			confidence := out.Confidence
			if confidence == 0 {
				confidence = 0.8
			}
			return &Transcript{Text: out.Text, Confidence: confidence, Provider: c.Name()}, nil
		case "error":
			return nil, fmt.Errorf("transcription failed: %s: %w", out.Error, ErrProviderUnavailable)
		}

		select {
		case <-time.After(c.pollInterval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (c *AssemblyAIClient) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w: %w", err, ErrProviderUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("api error (%d): %s: %w", resp.StatusCode, string(body), ErrProviderUnavailable)
	}
	return json.Unmarshal(body, out)
}
