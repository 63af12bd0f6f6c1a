// Package testutil provides scripted fakes for the language model and the
// Notion workspace used across package tests.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/seojinpark/nabi/internal/apperr"
	"github.com/seojinpark/nabi/internal/llm"
	"github.com/seojinpark/nabi/internal/notion"
)

// ScriptedModel returns canned responses in order. Once the script is
// exhausted it returns Err (or an error if Err is nil).
type ScriptedModel struct {
	Responses []string
	Err       error

	// Prompts records every user prompt passed to Complete or Chat.
	Prompts []string

	next int
}

func (m *ScriptedModel) pop(user string) (string, error) {
	m.Prompts = append(m.Prompts, user)
	if m.next < len(m.Responses) {
		resp := m.Responses[m.next]
		m.next++
		return resp, nil
	}
	if m.Err != nil {
		return "", m.Err
	}
	return "", errors.New("scripted model: no responses left")
}

func (m *ScriptedModel) Complete(_ context.Context, _, user string, _ float32) (string, error) {
	return m.pop(user)
}

func (m *ScriptedModel) Chat(_ context.Context, _ string, _ []llm.Message, user string) (string, error) {
	return m.pop(user)
}

var _ llm.Model = (*ScriptedModel)(nil)

// FakeWorkspace is an in-memory stand-in for the Notion workspace. Listings
// and query results are fixed fixtures; writes are recorded for assertions.
type FakeWorkspace struct {
	Databases    []map[string]any
	Pages        []map[string]any
	DatabaseByID map[string]map[string]any
	QueryResults []map[string]any
	Children     []map[string]any

	// Err, when set, is returned from every call.
	Err error

	CreatedPages      []CreatedPage
	CreatedDatabases  []CreatedDatabase
	UpdatedPages      []string
	ArchivedPages     []string
	QueryFilters      []map[string]any
	QueriedDatabases  []string
	WorkspaceCreates  []CreatedPage
	ResolvedDatabases []string
}

// CreatedPage records one page creation call.
type CreatedPage struct {
	ParentID   string
	Title      string
	Properties map[string]any
	Children   []notion.Block
}

// CreatedDatabase records one database creation call.
type CreatedDatabase struct {
	ParentPageID string
	Title        string
	Properties   map[string]any
}

func (f *FakeWorkspace) ListDatabases(context.Context) ([]map[string]any, error) {
	return f.Databases, f.Err
}

func (f *FakeWorkspace) ListPages(context.Context) ([]map[string]any, error) {
	return f.Pages, f.Err
}

func (f *FakeWorkspace) GetDatabase(_ context.Context, id string) (map[string]any, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if db, ok := f.DatabaseByID[id]; ok {
		return db, nil
	}
	return nil, &notion.APIError{StatusCode: 404, Body: `{"object":"error"}`}
}

func (f *FakeWorkspace) QueryDatabase(_ context.Context, id string, filter map[string]any) ([]map[string]any, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.QueriedDatabases = append(f.QueriedDatabases, id)
	f.QueryFilters = append(f.QueryFilters, filter)
	return f.QueryResults, nil
}

func (f *FakeWorkspace) CreateDatabase(_ context.Context, parentPageID, title string, properties map[string]any) (map[string]any, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.CreatedDatabases = append(f.CreatedDatabases, CreatedDatabase{parentPageID, title, properties})
	return map[string]any{"id": "db-created", "url": "https://notion.so/db-created"}, nil
}

func (f *FakeWorkspace) CreatePage(_ context.Context, databaseID string, properties map[string]any, children []notion.Block) (map[string]any, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.CreatedPages = append(f.CreatedPages, CreatedPage{ParentID: databaseID, Properties: properties, Children: children})
	return map[string]any{"id": "page-created", "url": "https://notion.so/page-created"}, nil
}

func (f *FakeWorkspace) CreatePageInWorkspace(_ context.Context, title, icon string, children []notion.Block) (map[string]any, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.WorkspaceCreates = append(f.WorkspaceCreates, CreatedPage{Title: title, Children: children})
	id := fmt.Sprintf("wspage-%d", len(f.WorkspaceCreates))
	return map[string]any{"id": id, "url": "https://notion.so/" + id}, nil
}

func (f *FakeWorkspace) UpdatePage(_ context.Context, pageID string, _ map[string]any) (map[string]any, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.UpdatedPages = append(f.UpdatedPages, pageID)
	return map[string]any{"id": pageID}, nil
}

func (f *FakeWorkspace) GetBlockChildren(_ context.Context, _ string) ([]map[string]any, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Children, nil
}

func (f *FakeWorkspace) ArchivePage(_ context.Context, pageID string) (map[string]any, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.ArchivedPages = append(f.ArchivedPages, pageID)
	return map[string]any{"id": pageID, "archived": true}, nil
}

func (f *FakeWorkspace) FindDatabaseByName(_ context.Context, name string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	f.ResolvedDatabases = append(f.ResolvedDatabases, name)
	return findByTitle(f.Databases, name)
}

func (f *FakeWorkspace) FindPageByName(_ context.Context, name string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	return findByTitle(f.Pages, name)
}

func findByTitle(records []map[string]any, name string) (string, error) {
	needle := strings.ToLower(name)
	for _, record := range records {
		if strings.Contains(strings.ToLower(notion.RecordTitle(record)), needle) {
			id, _ := record["id"].(string)
			return id, nil
		}
	}
	return "", fmt.Errorf("'%s' %w", name, apperr.ErrNotFound)
}
