package ai

import (
	"context"
	"errors"
	"fmt"

	"projecthub_backend/internal/logger"
)

// GeneratorChain tries each generator in order and returns the first
// success. All providers failing yields a joined error.
type GeneratorChain struct {
	generators []TextGenerator
}

func NewGeneratorChain(generators ...TextGenerator) *GeneratorChain {
	return &GeneratorChain{generators: generators}
}

func (c *GeneratorChain) Name() string { return "chain" }

func (c *GeneratorChain) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if len(c.generators) == 0 {
		return "", fmt.Errorf("no generators configured: %w", ErrProviderUnavailable)
	}

	var errs []error
	for _, g := range c.generators {
		out, err := g.Generate(ctx, systemPrompt, userPrompt)
		if err == nil {
			return out, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		logger.Warn("ai provider failed, trying next", "provider", g.Name(), "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", g.Name(), err))
	}
	return "", fmt.Errorf("all generators failed: %w", errors.Join(errs...))
}

// TranscriberChain is the transcription counterpart of GeneratorChain.
type TranscriberChain struct {
	transcribers []Transcriber
}

func NewTranscriberChain(transcribers ...Transcriber) *TranscriberChain {
	return &TranscriberChain{transcribers: transcribers}
}

func (c *TranscriberChain) Name() string { return "chain" }

func (c *TranscriberChain) Transcribe(ctx context.Context, audio []byte) (*Transcript, error) {
	if len(c.transcribers) == 0 {
		return nil, fmt.Errorf("no transcribers configured: %w", ErrProviderUnavailable)
	}

	var errs []error
	for _, t := range c.transcribers {
		out, err := t.Transcribe(ctx, audio)
		if err == nil {
			return out, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn("transcription provider failed, trying next", "provider", t.Name(), "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", t.Name(), err))
	}
	return nil, fmt.Errorf("all transcribers failed: %w", errors.Join(errs...))
}
