package notion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seojinpark/nabi/internal/apperr"
)

func searchResult(titles ...string) map[string]any {
	results := make([]any, 0, len(titles))
	for i, title := range titles {
		results = append(results, map[string]any{
			"id":     "id-" + string(rune('a'+i)),
			"object": "database",
			"title":  []any{map[string]any{"plain_text": title}},
		})
	}
	return map[string]any{"results": results}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New("secret-key", nil)
	c.SetBaseURL(srv.URL)
	return c
}

func TestClientHeaders(t *testing.T) {
	var gotAuth, gotVersion string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Notion-Version")
		json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
	})

	if _, err := c.ListDatabases(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotVersion != "2022-06-28" {
		t.Errorf("Notion-Version = %q", gotVersion)
	}
}

func TestClientAPIError_RawBody(t *testing.T) {
	body := `{"object":"error","status":400,"message":"body failed validation"}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(body))
	})

	_, err := c.GetDatabase(context.Background(), "db-1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if apiErr.Body != body {
		t.Errorf("body = %q, want raw response verbatim", apiErr.Body)
	}
}

func TestFindDatabaseByName_FirstMatchWins(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchResult("Projects A", "Projects B"))
	})

	id, err := c.FindDatabaseByName(context.Background(), "Projects")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "id-a" {
		t.Errorf("id = %q, want first listed match", id)
	}
}

func TestFindDatabaseByName_CaseInsensitiveSubstring(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchResult("KT 프로젝트 관리"))
	})

	id, err := c.FindDatabaseByName(context.Background(), "kt 프로젝트")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "id-a" {
		t.Errorf("id = %q", id)
	}
}

func TestFindDatabaseByName_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchResult("회의록"))
	})

	_, err := c.FindDatabaseByName(context.Background(), "없는 이름")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreatePageInWorkspace_UsesMostRecentPage(t *testing.T) {
	var createPayload map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			json.NewEncoder(w).Encode(map[string]any{"results": []any{
				map[string]any{"id": "parent-1", "object": "page"},
				map[string]any{"id": "parent-2", "object": "page"},
			}})
		case "/pages":
			json.NewDecoder(r.Body).Decode(&createPayload)
			json.NewEncoder(w).Encode(map[string]any{"id": "new-page"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	page, err := c.CreatePageInWorkspace(context.Background(), "새 페이지", "📝", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page["id"] != "new-page" {
		t.Errorf("id = %v", page["id"])
	}

	parent := createPayload["parent"].(map[string]any)
	if parent["page_id"] != "parent-1" {
		t.Errorf("parent page_id = %v, want first listed page", parent["page_id"])
	}
	icon := createPayload["icon"].(map[string]any)
	if icon["type"] != "emoji" || icon["emoji"] != "📝" {
		t.Errorf("icon = %v", icon)
	}
}

func TestCreatePageInWorkspace_EmptyWorkspace(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
	})

	_, err := c.CreatePageInWorkspace(context.Background(), "새 페이지", "", nil)
	if err == nil {
		t.Fatal("expected error for empty workspace")
	}
}

func TestCreateDatabase_DefaultProperties(t *testing.T) {
	var payload map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&payload)
		json.NewEncoder(w).Encode(map[string]any{"id": "db-1"})
	})

	if _, err := c.CreateDatabase(context.Background(), "parent-1", "새 DB", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	props := payload["properties"].(map[string]any)
	for _, name := range []string{"Name", "Description", "Status", "생성일"} {
		if _, ok := props[name]; !ok {
			t.Errorf("default schema missing %q", name)
		}
	}
}
