// Package assistant implements the command interpretation pipeline: intent
// classification, natural-language command parsing, schema validation, and
// dispatch against the Notion workspace.
package assistant

import (
	"context"

	"github.com/seojinpark/nabi/internal/notion"
)

// Intent is the two-way bucket an instruction falls into.
type Intent string

const (
	IntentCommand Intent = "notion_command"
	IntentChat    Intent = "general_chat"
)

// IntentDecision is the classifier output for one instruction.
type IntentDecision struct {
	Intent      Intent `json:"intent"`
	Explanation string `json:"explanation"`
}

// ActionKind is the closed set of operations a parsed command can request.
type ActionKind string

const (
	ActionCreatePage            ActionKind = "create_page"
	ActionCreateDatabase        ActionKind = "create_database"
	ActionCreatePageInWorkspace ActionKind = "create_page_in_workspace"
	ActionUpdatePage            ActionKind = "update_page"
	ActionQueryDatabase         ActionKind = "query_database"
	ActionGetDatabases          ActionKind = "get_databases"
	ActionGenerateContent       ActionKind = "generate_content"
)

// ActionDescriptor is the structured form of a natural-language command.
type ActionDescriptor struct {
	Action      ActionKind     `json:"action"`
	Parameters  map[string]any `json:"parameters"`
	Description string         `json:"description"`
}

// Workspace is the remote document workspace contract the dispatcher needs.
// *notion.Client satisfies it; tests substitute a scripted fake.
type Workspace interface {
	ListDatabases(ctx context.Context) ([]map[string]any, error)
	ListPages(ctx context.Context) ([]map[string]any, error)
	GetDatabase(ctx context.Context, databaseID string) (map[string]any, error)
	QueryDatabase(ctx context.Context, databaseID string, filter map[string]any) ([]map[string]any, error)
	CreateDatabase(ctx context.Context, parentPageID, title string, properties map[string]any) (map[string]any, error)
	CreatePage(ctx context.Context, databaseID string, properties map[string]any, children []notion.Block) (map[string]any, error)
	CreatePageInWorkspace(ctx context.Context, title, icon string, children []notion.Block) (map[string]any, error)
	UpdatePage(ctx context.Context, pageID string, properties map[string]any) (map[string]any, error)
	GetBlockChildren(ctx context.Context, blockID string) ([]map[string]any, error)
	ArchivePage(ctx context.Context, pageID string) (map[string]any, error)
	FindDatabaseByName(ctx context.Context, name string) (string, error)
	FindPageByName(ctx context.Context, name string) (string, error)
}

var _ Workspace = (*notion.Client)(nil)
