package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-triage/internal/domain"
)

func TestBuildSystemPrompt(t *testing.T) {
	plain := BuildSystemPrompt(domain.PromptContext{Emotion: domain.EmotionNeutral})
	assert.NotContains(t, plain, "About this conversation")

	hinted := BuildSystemPrompt(domain.PromptContext{
		Emotion: domain.EmotionSad,
		Intent:  domain.IntentSeekingAdvice,
		Topic:   "relationship_loss",
	})
	assert.Contains(t, hinted, "feeling sad")
	assert.Contains(t, hinted, "seeking advice")
	assert.Contains(t, hinted, "relationship loss")
}

func TestMockLLM(t *testing.T) {
	m := NewMockLLM()

	reply, err := m.GenerateReply(context.Background(), "hi", domain.PromptContext{Emotion: domain.EmotionAnxious})
	require.NoError(t, err)
	assert.Contains(t, reply, "anxious")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.GenerateReply(ctx, "hi", domain.PromptContext{})
	assert.ErrorIs(t, err, context.Canceled)
}
