package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"projecthub_backend/internal/config"
	"projecthub_backend/internal/logger"
)

const defaultSystemPrompt = "You are an AI assistant helping with project management and task analysis."

// Service is the high-level entry point for AI operations. Generation and
// transcription each run through an ordered provider fallback chain.
type Service struct {
	generator   TextGenerator
	transcriber Transcriber
}

func NewService(cfg config.AIConfig) *Service {
	genTimeout := time.Duration(cfg.GenTimeoutSec) * time.Second
	transTimeout := time.Duration(cfg.TransTimeoutSec) * time.Second

	return &Service{
		generator: NewGeneratorChain(
			NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.MaxTokens, genTimeout),
			NewGroqClient(cfg.GroqKey, cfg.GroqModel, cfg.MaxTokens, genTimeout),
		),
		transcriber: NewTranscriberChain(
			NewAssemblyAIClient(cfg.AssemblyAIKey, transTimeout),
			NewWhisperClient(cfg.OpenAIKey, transTimeout),
		),
	}
}

// NewServiceWith wires explicit providers, used by tests.
func NewServiceWith(generator TextGenerator, transcriber Transcriber) *Service {
	return &Service{generator: generator, transcriber: transcriber}
}

// GenerateNotificationContent asks the model for personalized notification
// copy. It is strict: a malformed or incomplete response is an error, so the
// caller can fall back to the static template.
func (s *Service) GenerateNotificationContent(ctx context.Context, userData map[string]interface{}, notificationType string) (*GeneratedContent, error) {
	userJSON, err := json.MarshalIndent(userData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal user data: %w", err)
	}

	prompt := fmt.Sprintf(`Generate personalized notification content for a project management user.

User Data: %s
Notification Type: %s

Create engaging, actionable content that:
- Is personalized to their current projects and tasks
- Provides clear value and next steps
- Uses an encouraging, professional tone
- Highlights important deadlines or opportunities

Return as JSON:
{
  "title": "Notification title",
  "message": "Detailed notification message",
  "priority": "medium",
  "actionable": true
}`, userJSON, notificationType)

	raw, err := s.generator.Generate(ctx, defaultSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var content GeneratedContent
	if err := json.Unmarshal([]byte(extractJSON(raw)), &content); err != nil {
		return nil, fmt.Errorf("parse generated content: %w", err)
	}
	if content.Title == "" || content.Message == "" {
		return nil, fmt.Errorf("generated content missing title or message")
	}
	return &content, nil
}

// ExtractTasks pulls actionable tasks out of free text. Failure is not
// fatal: the caller gets an empty extraction with zero confidence.
func (s *Service) ExtractTasks(ctx context.Context, text, extraContext string) *TaskExtraction {
	prompt := fmt.Sprintf(`Analyze the following text and extract actionable tasks. For each task, provide:
- A clear, actionable title
- A detailed description
- Priority level (urgent, high, medium, low)
- Estimated hours (if determinable)
- Suggested due date (if mentioned)
- Suggested assignee (if mentioned)

Text to analyze: %s
%s
Return your response as a JSON object with this structure:
{
  "tasks": [
    {
      "title": "Task title",
      "description": "Detailed description",
      "priority": "high",
      "estimated_hours": 2,
      "due_date": "2024-01-15",
      "assignee": "John Doe"
    }
  ],
  "summary": "Brief summary of the discussion",
  "confidence": 0.85
}`, text, contextLine(extraContext))

	raw, err := s.generator.Generate(ctx, defaultSystemPrompt, prompt)
	if err != nil {
		logger.WithError(err).Error("task extraction failed")
		return &TaskExtraction{Tasks: []ExtractedTask{}, Summary: "Task extraction failed", Confidence: 0}
	}

	var extraction TaskExtraction
	if err := json.Unmarshal([]byte(extractJSON(raw)), &extraction); err != nil {
		logger.WithError(err).Error("task extraction returned unparseable output")
		return &TaskExtraction{Tasks: []ExtractedTask{}, Summary: "Task extraction failed", Confidence: 0}
	}
	if extraction.Tasks == nil {
		extraction.Tasks = []ExtractedTask{}
	}
	return &extraction
}

// GenerateProjectInsights analyzes project data for risks and trends.
// On failure it returns no insights and a neutral health score.
func (s *Service) GenerateProjectInsights(ctx context.Context, projectData map[string]interface{}) *InsightReport {
	projectJSON, err := json.MarshalIndent(projectData, "", "  ")
	if err != nil {
		logger.WithError(err).Error("marshal project data for insights")
		return &InsightReport{Insights: []ProjectInsight{}, OverallHealth: 0.5}
	}

	prompt := fmt.Sprintf(`Analyze the following project data and generate insights:

Project: %s

Provide insights about:
- Productivity trends
- Team efficiency
- Burnout risk
- Deadline risks
- Resource allocation
- Process improvements

Return as JSON:
{
  "insights": [
    {
      "type": "productivity",
      "title": "Insight title",
      "description": "Detailed description",
      "priority": "medium",
      "actionable": true,
      "confidence": 0.8
    }
  ],
  "overall_health": 0.75
}`, projectJSON)

	raw, err := s.generator.Generate(ctx, defaultSystemPrompt, prompt)
	if err != nil {
		logger.WithError(err).Error("insight generation failed")
		return &InsightReport{Insights: []ProjectInsight{}, OverallHealth: 0.5}
	}

	var report InsightReport
	if err := json.Unmarshal([]byte(extractJSON(raw)), &report); err != nil {
		logger.WithError(err).Error("insight generation returned unparseable output")
		return &InsightReport{Insights: []ProjectInsight{}, OverallHealth: 0.5}
	}
	if report.Insights == nil {
		report.Insights = []ProjectInsight{}
	}
	return &report
}

// Transcribe converts audio to text through the provider chain.
func (s *Service) Transcribe(ctx context.Context, audio []byte) (*Transcript, error) {
	return s.transcriber.Transcribe(ctx, audio)
}

func contextLine(extraContext string) string {
	if extraContext == "" {
		return ""
	}
	return fmt.Sprintf("\nContext: %s\n", extraContext)
}

// extractJSON trims markdown fences and surrounding prose that models wrap
// around JSON payloads.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if start := strings.IndexAny(raw, "{["); start >= 0 {
		endByte := byte('}')
		if raw[start] == '[' {
			endByte = ']'
		}
		if end := strings.LastIndexByte(raw, endByte); end > start {
			return raw[start : end+1]
		}
	}
	return raw
}
