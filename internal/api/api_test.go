package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/seojinpark/nabi/internal/assistant"
	"github.com/seojinpark/nabi/internal/testutil"
)

func newTestRouter(model *testutil.ScriptedModel, ws *testutil.FakeWorkspace) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := assistant.NewService(model, ws, nil, nil, logger)
	return NewRouter(svc, nil, false, "")
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeCommandResponse(t *testing.T, rec *httptest.ResponseRecorder) CommandResponse {
	t.Helper()
	var resp CommandResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestProcessCommand(t *testing.T) {
	model := &testutil.ScriptedModel{Responses: []string{
		`{"intent": "general_chat"}`,
		"안녕하세요!",
	}}
	h := newTestRouter(model, &testutil.FakeWorkspace{})

	rec := doRequest(t, h, http.MethodPost, "/command", `{"command": "안녕"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if resp := decodeCommandResponse(t, rec); resp.Result != "안녕하세요!" {
		t.Errorf("result = %q", resp.Result)
	}
}

func TestProcessCommand_EmptyCommand(t *testing.T) {
	h := newTestRouter(&testutil.ScriptedModel{}, &testutil.FakeWorkspace{})

	rec := doRequest(t, h, http.MethodPost, "/command", `{"command": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp errResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "명령이 제공되지 않았습니다." {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestProcessCommand_InvalidBody(t *testing.T) {
	h := newTestRouter(&testutil.ScriptedModel{}, &testutil.FakeWorkspace{})

	rec := doRequest(t, h, http.MethodPost, "/command", "{잘못된 JSON")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestGetDatabases(t *testing.T) {
	ws := &testutil.FakeWorkspace{
		Databases: []map[string]any{{
			"id":     "db-1",
			"object": "database",
			"title":  []any{map[string]any{"plain_text": "KT 프로젝트"}},
		}},
	}
	h := newTestRouter(&testutil.ScriptedModel{}, ws)

	rec := doRequest(t, h, http.MethodGet, "/databases", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeCommandResponse(t, rec)
	if !strings.Contains(resp.Result, "KT 프로젝트") {
		t.Errorf("result = %q", resp.Result)
	}
}

func TestSaveSummary_MissingContent(t *testing.T) {
	h := newTestRouter(&testutil.ScriptedModel{}, &testutil.FakeWorkspace{})

	rec := doRequest(t, h, http.MethodPost, "/summary", `{"title": "회고"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestSaveSummary(t *testing.T) {
	ws := &testutil.FakeWorkspace{}
	h := newTestRouter(&testutil.ScriptedModel{}, ws)

	rec := doRequest(t, h, http.MethodPost, "/summary", `{"title": "주간 회고", "content": "이번 주 내용"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeCommandResponse(t, rec)
	if !strings.Contains(resp.Result, "요약 '주간 회고' 저장 완료") {
		t.Errorf("result = %q", resp.Result)
	}
}

func TestDeletePage_EscapedName(t *testing.T) {
	ws := &testutil.FakeWorkspace{
		Pages: []map[string]any{{
			"id":     "page-1",
			"object": "page",
			"properties": map[string]any{
				"이름": map[string]any{
					"type":  "title",
					"title": []any{map[string]any{"plain_text": "회의록"}},
				},
			},
		}},
	}
	h := newTestRouter(&testutil.ScriptedModel{}, ws)

	rec := doRequest(t, h, http.MethodDelete, "/pages/%ED%9A%8C%EC%9D%98%EB%A1%9D", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(ws.ArchivedPages) != 1 || ws.ArchivedPages[0] != "page-1" {
		t.Errorf("ArchivedPages = %v", ws.ArchivedPages)
	}
}

func TestHistory_NilLog(t *testing.T) {
	h := newTestRouter(&testutil.ScriptedModel{}, &testutil.FakeWorkspace{})

	rec := doRequest(t, h, http.MethodGet, "/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp HistoryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Entries) != 0 {
		t.Errorf("entries = %v", resp.Entries)
	}
}

func TestAuthMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := assistant.NewService(&testutil.ScriptedModel{}, &testutil.FakeWorkspace{}, nil, nil, logger)
	h := NewRouter(svc, nil, true, "secret-token")

	rec := doRequest(t, h, http.MethodGet, "/databases", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/databases", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong token: status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/databases", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid token: status = %d", rec.Code)
	}
}
