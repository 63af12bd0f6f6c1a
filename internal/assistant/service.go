package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seojinpark/nabi/internal/history"
	"github.com/seojinpark/nabi/internal/llm"
	"github.com/seojinpark/nabi/internal/notion"
	"github.com/seojinpark/nabi/internal/prompts"
)

// Service is the top-level command processor. Its outward contract is
// "always returns text, never raises": every failure path renders a
// human-readable description of the problem.
type Service struct {
	model   llm.Model
	ws      Workspace
	prompts *prompts.Store
	log     history.CommandLog
	logger  *slog.Logger
	window  Window
}

// NewService creates the command processor. log may be nil to disable the
// command log.
func NewService(model llm.Model, ws Workspace, store *prompts.Store, log history.CommandLog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		store = prompts.NewStore("", logger)
	}
	return &Service{model: model, ws: ws, prompts: store, log: log, logger: logger}
}

// Window exposes the conversation window for tests.
func (s *Service) Window() *Window {
	return &s.window
}

// ProcessCommand runs the full pipeline for one instruction: classify,
// then either dispatch a structured action or answer conversationally.
func (s *Service) ProcessCommand(ctx context.Context, command string) string {
	decision := s.Classify(ctx, command)
	s.logger.Info("command classified",
		slog.String("intent", string(decision.Intent)),
		slog.String("explanation", decision.Explanation))

	var result string
	var action ActionKind

	if decision.Intent == IntentCommand {
		descriptor := s.Parse(ctx, command)
		action = descriptor.Action
		result = s.Dispatch(ctx, descriptor)
	} else {
		result = s.chat(ctx, command)
	}

	s.record(command, decision.Intent, action, result)
	return result
}

func (s *Service) chat(ctx context.Context, command string) string {
	response, err := s.model.Chat(ctx, s.prompts.Get(prompts.Chat), s.window.Turns(), command)
	if err != nil {
		return fmt.Sprintf("대화 처리 오류: %v", err)
	}
	s.window.Append(llm.RoleUser, command)
	s.window.Append(llm.RoleAssistant, response)
	return response
}

// generateContent asks the model for Notion-ready content of the given type.
func (s *Service) generateContent(ctx context.Context, prompt, contentType string) (string, error) {
	full := prompts.ContentInstruction(contentType) + "\n\n" + prompt
	return s.model.Complete(ctx, "You are a helpful assistant.", full, 0.7)
}

// SaveSummary saves titled free text as a new workspace page. Narrow entry
// point used by the HTTP and MCP surfaces.
func (s *Service) SaveSummary(ctx context.Context, title, content string) string {
	if title == "" {
		title = "새 페이지"
	}
	blocks := BuildBlocks(content, "text")
	resp, err := s.ws.CreatePageInWorkspace(ctx, title, "", blocks)
	if err != nil {
		return fmt.Sprintf("요약 저장 중 오류 발생: %v", err)
	}
	id, _ := resp["id"].(string)
	url, _ := resp["url"].(string)
	return fmt.Sprintf("요약 '%s' 저장 완료 (ID: %s)\n링크: %s", title, id, url)
}

// DeletePage archives the first page whose title matches name. A canonical
// ID bypasses resolution.
func (s *Service) DeletePage(ctx context.Context, name string) string {
	pageID := name
	if !notion.IsCanonicalID(pageID) {
		resolved, err := s.ws.FindPageByName(ctx, name)
		if err != nil {
			return fmt.Sprintf("페이지 '%s'을(를) 찾을 수 없습니다.", name)
		}
		pageID = resolved
	}
	if _, err := s.ws.ArchivePage(ctx, pageID); err != nil {
		return fmt.Sprintf("페이지 삭제 중 오류 발생: %v", err)
	}
	return fmt.Sprintf("페이지 삭제(보관) 완료: %s", pageID)
}

func (s *Service) record(command string, intent Intent, action ActionKind, result string) {
	if s.log == nil {
		return
	}
	err := s.log.Append(history.Entry{
		Command: command,
		Intent:  string(intent),
		Action:  string(action),
		Result:  result,
	})
	if err != nil {
		s.logger.Warn("command log append failed", slog.String("error", err.Error()))
	}
}
