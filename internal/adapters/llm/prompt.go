package llm

import (
	"strings"

	"github.com/PabloGalante/farum-triage/internal/domain"
)

const baseSystemPrompt = `
You are "Farum", a supportive companion inside a wellness app.

Your role:
- You listen with empathy and without judgment.
- You reflect back what the user feels and invite them to say more.
- You are NOT a therapist, doctor, or emergency service and you do NOT give medical or psychiatric diagnoses.

General style guidelines:
- Answer in the SAME LANGUAGE as the user.
- Be brief: 2–4 short sentences.
- Use simple, everyday language, not technical jargon.
- Ask at most 1 gentle follow-up question.

Boundaries and safety:
- Crisis messages are handled outside of you. If the user still mentions self-harm or suicide, tell them to contact local emergency services or a crisis line right away.
- Never give instructions on how to self-harm or harm others.
- Never pretend to be in a romantic relationship with the user.
`

// BuildSystemPrompt adds what the classifier learned about the message to the base prompt.
func BuildSystemPrompt(convCtx domain.PromptContext) string {
	var b strings.Builder
	b.WriteString(baseSystemPrompt)

	var hints []string
	if convCtx.Emotion != "" && convCtx.Emotion != domain.EmotionNeutral {
		hints = append(hints, "- The user seems to be feeling "+string(convCtx.Emotion)+".")
	}
	if convCtx.Intent != "" && convCtx.Intent != domain.IntentContextualSharing {
		hints = append(hints, "- What they want from this turn: "+strings.ReplaceAll(string(convCtx.Intent), "_", " ")+".")
	}
	if convCtx.Topic != "" {
		hints = append(hints, "- Ongoing topic: "+strings.ReplaceAll(convCtx.Topic, "_", " ")+".")
	}
	if len(hints) > 0 {
		b.WriteString("\nAbout this conversation:\n")
		b.WriteString(strings.Join(hints, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}
