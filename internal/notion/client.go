package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	apiVersion     = "2022-06-28"
)

// APIError is a non-2xx response from the workspace API. The raw response
// body is kept verbatim so callers can surface it to the user unchanged.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion API %d: %s", e.StatusCode, e.Body)
}

// Client is a keyed HTTP client for the Notion API. All calls are
// synchronous request/response; no listing or schema is cached.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a Notion client authenticated with apiKey.
func New(apiKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// SetBaseURL overrides the API endpoint (used by tests).
func (c *Client) SetBaseURL(url string) {
	c.baseURL = strings.TrimSuffix(url, "/")
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (map[string]any, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("notion: marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("notion: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("notion request", slog.String("method", method), slog.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("notion: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("notion: read response: %w", err)
	}

	c.logger.Debug("notion response",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	result := map[string]any{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("notion: decode response: %w", err)
	}
	return result, nil
}

func resultsOf(response map[string]any) []map[string]any {
	raw, _ := response["results"].([]any)
	records := make([]map[string]any, 0, len(raw))
	for _, r := range raw {
		if m, ok := r.(map[string]any); ok {
			records = append(records, m)
		}
	}
	return records
}

// Search queries the workspace search endpoint. filter and sort may be nil.
func (c *Client) Search(ctx context.Context, query string, filter, sort map[string]any) ([]map[string]any, error) {
	payload := map[string]any{}
	if query != "" {
		payload["query"] = query
	}
	if filter != nil {
		payload["filter"] = filter
	}
	if sort != nil {
		payload["sort"] = sort
	}
	resp, err := c.do(ctx, http.MethodPost, "/search", payload)
	if err != nil {
		return nil, err
	}
	return resultsOf(resp), nil
}

func lastEditedSort() map[string]any {
	return map[string]any{"direction": "descending", "timestamp": "last_edited_time"}
}

// ListDatabases returns every database the integration can see, most
// recently edited first.
func (c *Client) ListDatabases(ctx context.Context) ([]map[string]any, error) {
	return c.Search(ctx, "",
		map[string]any{"value": "database", "property": "object"},
		lastEditedSort())
}

// ListPages returns every page the integration can see, most recently
// edited first.
func (c *Client) ListPages(ctx context.Context) ([]map[string]any, error) {
	return c.Search(ctx, "",
		map[string]any{"value": "page", "property": "object"},
		lastEditedSort())
}

// GetDatabase fetches a database record, including its property schema.
func (c *Client) GetDatabase(ctx context.Context, databaseID string) (map[string]any, error) {
	return c.do(ctx, http.MethodGet, "/databases/"+databaseID, nil)
}

// QueryDatabase runs a filtered query against a database. filter may be nil.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, filter map[string]any) ([]map[string]any, error) {
	payload := map[string]any{}
	if len(filter) > 0 {
		payload["filter"] = filter
	}
	resp, err := c.do(ctx, http.MethodPost, "/databases/"+databaseID+"/query", payload)
	if err != nil {
		return nil, err
	}
	return resultsOf(resp), nil
}

// DefaultDatabaseProperties is the schema used when a database is created
// without explicit properties.
func DefaultDatabaseProperties() map[string]any {
	return map[string]any{
		"Name":        map[string]any{"title": map[string]any{}},
		"Description": map[string]any{"rich_text": map[string]any{}},
		"Status": map[string]any{
			"select": map[string]any{
				"options": []any{
					map[string]any{"name": "진행 중", "color": "blue"},
					map[string]any{"name": "완료", "color": "green"},
					map[string]any{"name": "대기 중", "color": "yellow"},
				},
			},
		},
		"생성일": map[string]any{"date": map[string]any{}},
	}
}

// CreateDatabase creates a database under parentPageID. A nil properties
// map falls back to DefaultDatabaseProperties.
func (c *Client) CreateDatabase(ctx context.Context, parentPageID, title string, properties map[string]any) (map[string]any, error) {
	if len(properties) == 0 {
		properties = DefaultDatabaseProperties()
	}
	payload := map[string]any{
		"parent": map[string]any{"type": "page_id", "page_id": parentPageID},
		"title": []any{
			map[string]any{"type": "text", "text": map[string]any{"content": title}},
		},
		"properties": properties,
	}
	return c.do(ctx, http.MethodPost, "/databases", payload)
}

// CreatePage creates a page inside a database with validated properties
// and optional content blocks.
func (c *Client) CreatePage(ctx context.Context, databaseID string, properties map[string]any, children []Block) (map[string]any, error) {
	payload := map[string]any{
		"parent":     map[string]any{"database_id": databaseID},
		"properties": properties,
	}
	if len(children) > 0 {
		payload["children"] = children
	}
	return c.do(ctx, http.MethodPost, "/pages", payload)
}

// CreatePageInWorkspace creates a standalone page. The API requires a parent,
// so the most recently edited page is used as one; an empty workspace is a
// descriptive failure. icon is an emoji or an image URL.
func (c *Client) CreatePageInWorkspace(ctx context.Context, title, icon string, children []Block) (map[string]any, error) {
	pages, err := c.ListPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("부모 페이지 검색 실패: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("사용 가능한 페이지를 찾을 수 없습니다")
	}
	parentID, _ := pages[0]["id"].(string)
	c.logger.Debug("using parent page", slog.String("parent_id", parentID))

	payload := map[string]any{
		"parent":     map[string]any{"type": "page_id", "page_id": parentID},
		"properties": map[string]any{"title": TitleValue(title)["title"]},
	}
	if icon != "" {
		if strings.HasPrefix(icon, "http") {
			payload["icon"] = map[string]any{"type": "external", "external": map[string]any{"url": icon}}
		} else {
			payload["icon"] = map[string]any{"type": "emoji", "emoji": icon}
		}
	}
	if len(children) > 0 {
		payload["children"] = children
	}
	return c.do(ctx, http.MethodPost, "/pages", payload)
}

// UpdatePage patches page properties. No schema validation is applied here;
// the caller decides how strict to be.
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties map[string]any) (map[string]any, error) {
	payload := map[string]any{"properties": properties}
	return c.do(ctx, http.MethodPatch, "/pages/"+pageID, payload)
}

// GetPage fetches a single page record.
func (c *Client) GetPage(ctx context.Context, pageID string) (map[string]any, error) {
	return c.do(ctx, http.MethodGet, "/pages/"+pageID, nil)
}

// GetBlockChildren lists the child blocks of a page or block.
func (c *Client) GetBlockChildren(ctx context.Context, blockID string) ([]map[string]any, error) {
	resp, err := c.do(ctx, http.MethodGet, "/blocks/"+blockID+"/children", nil)
	if err != nil {
		return nil, err
	}
	return resultsOf(resp), nil
}

// AppendBlockChildren appends content blocks to an existing page or block.
func (c *Client) AppendBlockChildren(ctx context.Context, blockID string, children []Block) (map[string]any, error) {
	payload := map[string]any{"children": children}
	return c.do(ctx, http.MethodPatch, "/blocks/"+blockID+"/children", payload)
}

// ArchivePage archives (soft-deletes) a page.
func (c *Client) ArchivePage(ctx context.Context, pageID string) (map[string]any, error) {
	payload := map[string]any{"archived": true}
	return c.do(ctx, http.MethodPatch, "/pages/"+pageID, payload)
}
