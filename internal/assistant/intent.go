package assistant

import (
	"context"
	"log/slog"

	"github.com/seojinpark/nabi/internal/jsonx"
	"github.com/seojinpark/nabi/internal/prompts"
)

// Classify buckets an instruction into notion_command vs general_chat.
// Classification fails open: any model or parse failure yields general_chat
// so a misread instruction degrades to a conversational answer instead of
// blocking the user.
func (s *Service) Classify(ctx context.Context, instruction string) IntentDecision {
	fallback := IntentDecision{
		Intent:      IntentChat,
		Explanation: "의도 분석 실패, 일반 대화로 처리",
	}

	raw, err := s.model.Complete(ctx, s.prompts.Get(prompts.Intent), instruction, 0.3)
	if err != nil {
		s.logger.Warn("intent classification failed", slog.String("error", err.Error()))
		return fallback
	}

	var decision IntentDecision
	if err := jsonx.Unmarshal(raw, &decision); err != nil {
		s.logger.Warn("intent response was not JSON", slog.String("raw", raw))
		return fallback
	}
	if decision.Intent != IntentCommand {
		decision.Intent = IntentChat
	}
	return decision
}
