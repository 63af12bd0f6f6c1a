package assistant

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/seojinpark/nabi/internal/llm"
	"github.com/seojinpark/nabi/internal/testutil"
)

func newTestService(model llm.Model, ws Workspace) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(model, ws, nil, nil, logger)
}

func pageRecord(id, title string) map[string]any {
	return map[string]any{
		"id":     id,
		"object": "page",
		"properties": map[string]any{
			"이름": map[string]any{
				"type":  "title",
				"title": []any{map[string]any{"plain_text": title}},
			},
		},
	}
}

func databaseRecord(id, title string, properties map[string]any) map[string]any {
	return map[string]any{
		"id":         id,
		"object":     "database",
		"title":      []any{map[string]any{"plain_text": title}},
		"properties": properties,
	}
}

func TestClassify_Command(t *testing.T) {
	model := &testutil.ScriptedModel{Responses: []string{
		`{"intent": "notion_command", "explanation": "페이지 생성 요청"}`,
	}}
	svc := newTestService(model, &testutil.FakeWorkspace{})

	decision := svc.Classify(context.Background(), "회의록 페이지 만들어줘")
	if decision.Intent != IntentCommand {
		t.Errorf("intent = %q", decision.Intent)
	}
	if decision.Explanation != "페이지 생성 요청" {
		t.Errorf("explanation = %q", decision.Explanation)
	}
}

func TestClassify_InvalidJSONFallsOpen(t *testing.T) {
	model := &testutil.ScriptedModel{Responses: []string{"JSON이 아닌 자유 답변"}}
	svc := newTestService(model, &testutil.FakeWorkspace{})

	decision := svc.Classify(context.Background(), "안녕")
	if decision.Intent != IntentChat {
		t.Errorf("intent = %q, want general_chat fallback", decision.Intent)
	}
}

func TestClassify_ModelErrorFallsOpen(t *testing.T) {
	model := &testutil.ScriptedModel{Err: io.ErrUnexpectedEOF}
	svc := newTestService(model, &testutil.FakeWorkspace{})

	decision := svc.Classify(context.Background(), "안녕")
	if decision.Intent != IntentChat {
		t.Errorf("intent = %q", decision.Intent)
	}
}

func TestClassify_UnknownIntentNormalized(t *testing.T) {
	model := &testutil.ScriptedModel{Responses: []string{`{"intent": "something_else"}`}}
	svc := newTestService(model, &testutil.FakeWorkspace{})

	decision := svc.Classify(context.Background(), "안녕")
	if decision.Intent != IntentChat {
		t.Errorf("intent = %q", decision.Intent)
	}
}

func TestParse_InvalidJSONFallback(t *testing.T) {
	model := &testutil.ScriptedModel{Responses: []string{"그냥 대답"}}
	svc := newTestService(model, &testutil.FakeWorkspace{})

	d := svc.Parse(context.Background(), "오늘 일기 써줘")
	if d.Action != ActionCreatePageInWorkspace {
		t.Errorf("action = %q", d.Action)
	}
	if d.Parameters["title"] != "새 페이지" {
		t.Errorf("title = %v", d.Parameters["title"])
	}
	if d.Parameters["content_prompt"] != "오늘 일기 써줘" {
		t.Errorf("content_prompt = %v, want instruction verbatim", d.Parameters["content_prompt"])
	}
}

func TestParse_EmptyActionFallback(t *testing.T) {
	model := &testutil.ScriptedModel{Responses: []string{`{"parameters": {}}`}}
	svc := newTestService(model, &testutil.FakeWorkspace{})

	d := svc.Parse(context.Background(), "뭔가 해줘")
	if d.Action != ActionCreatePageInWorkspace {
		t.Errorf("action = %q", d.Action)
	}
}

func TestParse_NilParametersNormalized(t *testing.T) {
	model := &testutil.ScriptedModel{Responses: []string{`{"action": "get_databases"}`}}
	svc := newTestService(model, &testutil.FakeWorkspace{})

	d := svc.Parse(context.Background(), "데이터베이스 목록")
	if d.Action != ActionGetDatabases {
		t.Errorf("action = %q", d.Action)
	}
	if d.Parameters == nil {
		t.Error("parameters should never be nil")
	}
}

func TestProcessCommand_ChatAppendsWindow(t *testing.T) {
	model := &testutil.ScriptedModel{Responses: []string{
		`{"intent": "general_chat"}`,
		"안녕하세요! 무엇을 도와드릴까요?",
	}}
	svc := newTestService(model, &testutil.FakeWorkspace{})

	result := svc.ProcessCommand(context.Background(), "안녕")
	if result != "안녕하세요! 무엇을 도와드릴까요?" {
		t.Errorf("result = %q", result)
	}
	if svc.Window().Len() != 2 {
		t.Errorf("window len = %d, want 2", svc.Window().Len())
	}
}

func TestProcessCommand_ChatErrorBecomesText(t *testing.T) {
	model := &testutil.ScriptedModel{Err: io.ErrUnexpectedEOF}
	svc := newTestService(model, &testutil.FakeWorkspace{})

	result := svc.ProcessCommand(context.Background(), "안녕")
	if !strings.HasPrefix(result, "대화 처리 오류:") {
		t.Errorf("result = %q", result)
	}
	if svc.Window().Len() != 0 {
		t.Errorf("failed exchange should not enter the window, len = %d", svc.Window().Len())
	}
}

func TestSaveSummary(t *testing.T) {
	ws := &testutil.FakeWorkspace{}
	svc := newTestService(&testutil.ScriptedModel{}, ws)

	result := svc.SaveSummary(context.Background(), "주간 회고", "첫 문단.\n\n둘째 문단.")
	if !strings.Contains(result, "요약 '주간 회고' 저장 완료") {
		t.Errorf("result = %q", result)
	}
	if len(ws.WorkspaceCreates) != 1 {
		t.Fatalf("WorkspaceCreates = %d", len(ws.WorkspaceCreates))
	}
	if got := len(ws.WorkspaceCreates[0].Children); got != 2 {
		t.Errorf("children = %d, want 2 paragraphs", got)
	}
}

func TestSaveSummary_EmptyTitleDefault(t *testing.T) {
	ws := &testutil.FakeWorkspace{}
	svc := newTestService(&testutil.ScriptedModel{}, ws)

	result := svc.SaveSummary(context.Background(), "", "내용")
	if !strings.Contains(result, "요약 '새 페이지' 저장 완료") {
		t.Errorf("result = %q", result)
	}
}

func TestDeletePage_ByName(t *testing.T) {
	ws := &testutil.FakeWorkspace{Pages: []map[string]any{pageRecord("page-1", "회의록")}}
	svc := newTestService(&testutil.ScriptedModel{}, ws)

	result := svc.DeletePage(context.Background(), "회의")
	if result != "페이지 삭제(보관) 완료: page-1" {
		t.Errorf("result = %q", result)
	}
	if len(ws.ArchivedPages) != 1 || ws.ArchivedPages[0] != "page-1" {
		t.Errorf("ArchivedPages = %v", ws.ArchivedPages)
	}
}

func TestDeletePage_NotFound(t *testing.T) {
	ws := &testutil.FakeWorkspace{}
	svc := newTestService(&testutil.ScriptedModel{}, ws)

	result := svc.DeletePage(context.Background(), "없는 페이지")
	if result != "페이지 '없는 페이지'을(를) 찾을 수 없습니다." {
		t.Errorf("result = %q", result)
	}
}

func TestDeletePage_CanonicalIDBypassesResolution(t *testing.T) {
	ws := &testutil.FakeWorkspace{}
	svc := newTestService(&testutil.ScriptedModel{}, ws)

	id := "a1b2c3d4-e5f6-a7b8-c9d0-e1f2a3b4c5d6"
	result := svc.DeletePage(context.Background(), id)
	if result != "페이지 삭제(보관) 완료: "+id {
		t.Errorf("result = %q", result)
	}
}
