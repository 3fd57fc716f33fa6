package intake

import (
	"context"
	"strings"

	"fundline/internal/adapters/ai"
	"fundline/internal/domain/application"
	"fundline/internal/orchestrator"
)

const rewritePersona = `You are Alex, a sharp but warm loan advisor at a lending firm.
Rewrite the given question in your own voice: friendly, confident, one or two
sentences, no emojis. Keep every factual element of the question intact. If the
question offers answer options, do not list them; the UI shows them. Reply with
the rewritten text only.`

const cofounderPersona = `You are Alex, an AI co-founder for a lending business. You help with loan
scenarios, credit pulls, market research, and lead capture. Use your tools when
the user asks for an action. Be direct and concrete; format dollar amounts with
comma grouping.`

// rewriteInPersona asks the model to restate the engine's robotic text
// in the advisor voice. Any failure falls back to the original text.
// Validation rejections and option prompts pass through untouched so
// their wording stays exact.
func (s *Service) rewriteInPersona(ctx context.Context, text string, update application.Update) string {
	if s.provider == nil || text == "" {
		return text
	}
	if update.Rejected || update.UIType != application.MessageText {
		return text
	}

	resp, err := s.provider.Chat(ctx, ai.ChatRequest{
		Model:        s.model,
		SystemPrompt: rewritePersona,
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: text},
		},
		Temperature: 0.7,
	})
	if err != nil {
		s.log.Warnw("Persona rewrite failed, using engine text", "error", err)
		return text
	}

	rewritten := strings.TrimSpace(resp.Text)
	if rewritten == "" {
		return text
	}
	return orchestrator.FormatCurrency(rewritten)
}
