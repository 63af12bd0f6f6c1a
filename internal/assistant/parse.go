package assistant

import (
	"context"
	"log/slog"

	"github.com/seojinpark/nabi/internal/jsonx"
	"github.com/seojinpark/nabi/internal/prompts"
)

// fallbackDescriptor treats the whole instruction as freeform content to be
// saved as a new workspace page, so the user's text is never dropped on a
// parse failure.
func fallbackDescriptor(instruction string) ActionDescriptor {
	return ActionDescriptor{
		Action: ActionCreatePageInWorkspace,
		Parameters: map[string]any{
			"title":          "새 페이지",
			"content_prompt": instruction,
		},
		Description: "JSON 파싱 실패로 기본 작업 수행",
	}
}

// Parse turns a natural-language command into an action descriptor. On any
// model or JSON failure it returns the create_page_in_workspace fallback
// with the instruction carried verbatim as the content prompt.
func (s *Service) Parse(ctx context.Context, instruction string) ActionDescriptor {
	raw, err := s.model.Complete(ctx, s.prompts.Get(prompts.Parser),
		"다음 사용자 명령을 노션 작업으로 변환해주세요: "+instruction, 0.7)
	if err != nil {
		s.logger.Warn("command parsing failed", slog.String("error", err.Error()))
		return fallbackDescriptor(instruction)
	}

	var descriptor ActionDescriptor
	if err := jsonx.Unmarshal(raw, &descriptor); err != nil {
		s.logger.Warn("parser response was not JSON", slog.String("raw", raw))
		return fallbackDescriptor(instruction)
	}
	if descriptor.Action == "" {
		return fallbackDescriptor(instruction)
	}
	if descriptor.Parameters == nil {
		descriptor.Parameters = map[string]any{}
	}
	s.logger.Debug("parsed command",
		slog.String("action", string(descriptor.Action)),
		slog.String("description", descriptor.Description))
	return descriptor
}
