package llm

import (
	"context"
	"fmt"

	"github.com/PabloGalante/farum-triage/internal/domain"
)

// MockLLM answers deterministically from the prompt context. Used in local mode.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) GenerateReply(ctx context.Context, prompt string, convCtx domain.PromptContext) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if convCtx.Emotion != "" && convCtx.Emotion != domain.EmotionNeutral {
		return fmt.Sprintf("I hear you. It sounds like you're feeling %s. Tell me a bit more about what's going on?", convCtx.Emotion), nil
	}
	return fmt.Sprintf("I hear you. You said %q. How does that make you feel?", prompt), nil
}
