package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/PabloGalante/farum-triage/internal/domain"
)

const defaultModel = "gemini-2.5-flash-lite"

type VertexClient struct {
	client    *genai.Client
	modelName string
}

// NewVertexClient creates a Generator backed by Vertex AI (Gemini).
func NewVertexClient(ctx context.Context, projectID, location, modelName string) (*VertexClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("gcp project and location must be set")
	}
	if modelName == "" {
		modelName = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &VertexClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// GenerateReply implements domain.Generator using Vertex AI.
func (v *VertexClient) GenerateReply(
	ctx context.Context,
	userMessage string,
	convCtx domain.PromptContext,
) (string, error) {
	system := BuildSystemPrompt(convCtx)

	// recent turns as conversation
	var contents []*genai.Content
	for _, t := range convCtx.History {
		var role genai.Role
		switch t.Speaker {
		case domain.SpeakerSystem:
			role = genai.RoleModel
		default:
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(userMessage, genai.RoleUser))

	temp := float32(0.7)
	topP := float32(0.9)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   512,
	}

	res, err := v.client.Models.GenerateContent(ctx, v.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("vertex generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("vertex returned empty text")
	}

	return text, nil
}
