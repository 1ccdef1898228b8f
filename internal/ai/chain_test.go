package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	name   string
	output string
	err    error
	calls  int
}

func (s *stubGenerator) Name() string { return s.name }

func (s *stubGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	return s.output, s.err
}

type stubTranscriber struct {
	name   string
	output *Transcript
	err    error
	calls  int
}

func (s *stubTranscriber) Name() string { return s.name }

func (s *stubTranscriber) Transcribe(ctx context.Context, audio []byte) (*Transcript, error) {
	s.calls++
	return s.output, s.err
}

func TestGeneratorChainFirstSuccess(t *testing.T) {
	primary := &stubGenerator{name: "primary", output: "hello"}
	fallback := &stubGenerator{name: "fallback", output: "unused"}
	chain := NewGeneratorChain(primary, fallback)

	out, err := chain.Generate(context.Background(), "sys", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, fallback.calls, "fallback must not be called when primary succeeds")
}

func TestGeneratorChainFallsBack(t *testing.T) {
	primary := &stubGenerator{name: "primary", err: ErrProviderUnavailable}
	fallback := &stubGenerator{name: "fallback", output: "rescued"}
	chain := NewGeneratorChain(primary, fallback)

	out, err := chain.Generate(context.Background(), "sys", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "rescued", out)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestGeneratorChainAllFail(t *testing.T) {
	primary := &stubGenerator{name: "primary", err: errors.New("boom")}
	fallback := &stubGenerator{name: "fallback", err: errors.New("also boom")}
	chain := NewGeneratorChain(primary, fallback)

	_, err := chain.Generate(context.Background(), "sys", "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primary")
	assert.Contains(t, err.Error(), "fallback")
}

func TestGeneratorChainEmpty(t *testing.T) {
	chain := NewGeneratorChain()
	_, err := chain.Generate(context.Background(), "sys", "prompt")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestGeneratorChainCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	primary := &stubGenerator{name: "primary", err: errors.New("boom")}
	fallback := &stubGenerator{name: "fallback", output: "unreachable"}
	chain := NewGeneratorChain(primary, fallback)

	_, err := chain.Generate(ctx, "sys", "prompt")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, fallback.calls, "cancelled context must stop the chain")
}

func TestTranscriberChainFallsBack(t *testing.T) {
	primary := &stubTranscriber{name: "assemblyai", err: ErrProviderUnavailable}
	fallback := &stubTranscriber{name: "whisper", output: &Transcript{Text: "meeting notes", Confidence: 0.9, Provider: "whisper"}}
	chain := NewTranscriberChain(primary, fallback)

	out, err := chain.Transcribe(context.Background(), []byte("audio"))
	require.NoError(t, err)
	assert.Equal(t, "meeting notes", out.Text)
	assert.Equal(t, "whisper", out.Provider)
}
