// Package ai wraps the external model providers behind small interfaces
// so the rest of the system can degrade gracefully when they are down.
package ai

import (
	"context"
	"errors"
)

// ErrProviderUnavailable marks failures that should trigger the next
// provider in a fallback chain.
var ErrProviderUnavailable = errors.New("ai provider unavailable")

// TextGenerator produces a completion for a prompt. Implementations are
// plain HTTP clients around chat-completion APIs.
type TextGenerator interface {
	Name() string
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Transcriber converts audio bytes to text.
type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, audio []byte) (*Transcript, error)
}

// Transcript is a transcription result with the provider that produced it.
type Transcript struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Provider   string  `json:"provider"`
}

// GeneratedContent is the structured payload expected back from the model
// when generating notification content.
type GeneratedContent struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	Priority   string `json:"priority"`
	Actionable bool   `json:"actionable"`
}

// ExtractedTask is one actionable item pulled out of free text.
type ExtractedTask struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Priority       string  `json:"priority"`
	EstimatedHours float64 `json:"estimated_hours,omitempty"`
	DueDate        string  `json:"due_date,omitempty"`
	Assignee       string  `json:"assignee,omitempty"`
}

// TaskExtraction is the full result of task extraction.
type TaskExtraction struct {
	Tasks      []ExtractedTask `json:"tasks"`
	Summary    string          `json:"summary"`
	Confidence float64         `json:"confidence"`
}

// ProjectInsight is a single AI-generated observation about a project.
type ProjectInsight struct {
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Actionable  bool    `json:"actionable"`
	Confidence  float64 `json:"confidence"`
}

// InsightReport groups insights with an overall health score in [0, 1].
type InsightReport struct {
	Insights      []ProjectInsight `json:"insights"`
	OverallHealth float64          `json:"overall_health"`
}
