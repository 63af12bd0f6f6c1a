package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/seojinpark/nabi/internal/apperr"
	"github.com/seojinpark/nabi/internal/notion"
)

func stringParam(params map[string]any, key, fallback string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func mapParam(params map[string]any, key string) map[string]any {
	m, _ := params[key].(map[string]any)
	return m
}

// Dispatch routes a validated action descriptor to the matching operation.
// Every branch converts failures into human-readable text; nothing escapes
// this boundary as an error.
func (s *Service) Dispatch(ctx context.Context, d ActionDescriptor) string {
	params := d.Parameters
	if params == nil {
		params = map[string]any{}
	}

	switch d.Action {
	case ActionCreateDatabase:
		return s.createDatabase(ctx, params)
	case ActionCreatePageInWorkspace:
		return s.createPageInWorkspace(ctx, params)
	case ActionCreatePage:
		return s.createPage(ctx, params)
	case ActionUpdatePage:
		return s.updatePage(ctx, params)
	case ActionQueryDatabase:
		return s.queryDatabase(ctx, params)
	case ActionGetDatabases:
		return s.getDatabases(ctx)
	case ActionGenerateContent:
		return s.generateContentAction(ctx, params)
	default:
		return fmt.Sprintf("지원하지 않는 작업: %s", d.Action)
	}
}

func (s *Service) createDatabase(ctx context.Context, params map[string]any) string {
	title := stringParam(params, "title", "새 데이터베이스")
	parentPageID := stringParam(params, "parent_page_id", "")

	// Without a parent page the database has nowhere to live, so a
	// workspace page named after the database is created first.
	if parentPageID == "" {
		page, err := s.ws.CreatePageInWorkspace(ctx, title+" 페이지", "", nil)
		if err != nil {
			return fmt.Sprintf("부모 페이지 생성 실패: %v", err)
		}
		parentPageID, _ = page["id"].(string)
		s.logger.Debug("created parent page", slog.String("page_id", parentPageID))
	}

	resp, err := s.ws.CreateDatabase(ctx, parentPageID, title, mapParam(params, "properties"))
	if err != nil {
		return fmt.Sprintf("데이터베이스 생성 실패: %v", err)
	}
	id, _ := resp["id"].(string)
	url, _ := resp["url"].(string)
	return fmt.Sprintf("데이터베이스 '%s' 생성 완료 (ID: %s)\n링크: %s", title, id, url)
}

func (s *Service) createPageInWorkspace(ctx context.Context, params map[string]any) string {
	title := stringParam(params, "title", "새 페이지")
	icon := stringParam(params, "icon", "")

	var children []notion.Block
	if prompt := stringParam(params, "content_prompt", ""); prompt != "" {
		contentType := stringParam(params, "content_type", "text")
		content, err := s.generateContent(ctx, prompt, contentType)
		if err != nil {
			return fmt.Sprintf("콘텐츠 생성 중 오류 발생: %v", err)
		}
		children = BuildBlocks(content, contentType)
	}

	resp, err := s.ws.CreatePageInWorkspace(ctx, title, icon, children)
	if err != nil {
		return fmt.Sprintf("페이지 생성 실패: %v", err)
	}
	id, _ := resp["id"].(string)
	url, _ := resp["url"].(string)
	return fmt.Sprintf("워크스페이스에 페이지 '%s' 생성 완료 (ID: %s)\n링크: %s", title, id, url)
}

// resolveDatabaseID turns a model-supplied database reference (name or ID)
// into a canonical ID. Returns "" when the name matches nothing.
func (s *Service) resolveDatabaseID(ctx context.Context, reference string) string {
	if reference == "" || notion.IsCanonicalID(reference) {
		return reference
	}
	name := notion.StripDatabaseSuffix(reference)
	id, err := s.ws.FindDatabaseByName(ctx, name)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			s.logger.Warn("database resolution failed", slog.String("error", err.Error()))
		}
		return ""
	}
	return id
}

func (s *Service) createPage(ctx context.Context, params map[string]any) string {
	parentID := s.resolveDatabaseID(ctx, stringParam(params, "parent_id", ""))

	if parentID == "" {
		databases, err := s.ws.ListDatabases(ctx)
		if err != nil {
			return fmt.Sprintf("페이지 생성 중 오류 발생: %v", err)
		}
		if len(databases) > 0 {
			parentID, _ = databases[0]["id"].(string)
			s.logger.Debug("no database resolved, using first listed",
				slog.String("database_id", parentID))
		} else {
			// No database exists anywhere: degrade to a workspace page so
			// the request never hard-fails.
			return s.createPageInWorkspace(ctx, params)
		}
	}

	database, err := s.ws.GetDatabase(ctx, parentID)
	if err != nil {
		return fmt.Sprintf("데이터베이스 조회 실패: %v", err)
	}
	schema := notion.SchemaOf(database)

	title := stringParam(params, "title", "새 페이지")
	properties, warnings := MapProperties(mapParam(params, "properties"), title, schema)
	for _, w := range warnings {
		s.logger.Debug("property dropped", slog.String("reason", w))
	}

	var children []notion.Block
	if prompt := stringParam(params, "content_prompt", ""); prompt != "" {
		contentType := stringParam(params, "content_type", "text")
		content, err := s.generateContent(ctx, prompt, contentType)
		if err != nil {
			return fmt.Sprintf("콘텐츠 생성 중 오류 발생: %v", err)
		}
		children = BuildBlocks(content, contentType)
	} else if raw, ok := params["children"].([]any); ok {
		children = notion.RawBlocks(raw)
	}

	resp, err := s.ws.CreatePage(ctx, parentID, properties, children)
	if err != nil {
		return fmt.Sprintf("페이지 생성 실패: %v", err)
	}
	id, _ := resp["id"].(string)
	url, _ := resp["url"].(string)
	return fmt.Sprintf("페이지 생성 완료: %s\n링크: %s", id, url)
}

func (s *Service) updatePage(ctx context.Context, params map[string]any) string {
	pageID := stringParam(params, "page_id", "")
	resp, err := s.ws.UpdatePage(ctx, pageID, mapParam(params, "properties"))
	if err != nil {
		return fmt.Sprintf("페이지 업데이트 중 오류 발생: %v", err)
	}
	id := "알 수 없음"
	if v, ok := resp["id"].(string); ok {
		id = v
	}
	return fmt.Sprintf("페이지 업데이트 완료: %s", id)
}

func (s *Service) queryDatabase(ctx context.Context, params map[string]any) string {
	reference := stringParam(params, "database_id", "")
	databaseID := reference
	if databaseID != "" && !notion.IsCanonicalID(databaseID) {
		name := notion.StripDatabaseSuffix(databaseID)
		id, err := s.ws.FindDatabaseByName(ctx, name)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return fmt.Sprintf("데이터베이스 '%s'을(를) 찾을 수 없습니다.", name)
			}
			return fmt.Sprintf("데이터베이스 쿼리 중 오류 발생: %v", err)
		}
		databaseID = id
	}

	database, err := s.ws.GetDatabase(ctx, databaseID)
	if err != nil {
		return fmt.Sprintf("데이터베이스 조회 실패: %v", err)
	}
	schema := notion.SchemaOf(database)

	filter := translateFilter(mapParam(params, "filter"), schema)
	pages, err := s.ws.QueryDatabase(ctx, databaseID, filter)
	if err != nil {
		return fmt.Sprintf("데이터베이스 쿼리 중 오류 발생: %v", err)
	}
	if len(pages) == 0 {
		return "데이터베이스에서 페이지를 찾을 수 없습니다."
	}

	return s.formatQueryResults(ctx, notion.RecordTitle(database), pages)
}

// translateFilter converts the simplified {property, text|equals|contains}
// filter the parser emits into the remote filter shape, dispatching on the
// property's schema type. An unknown property falls back to the schema's
// title property; a filter that already uses the remote shape passes
// through unchanged.
func translateFilter(filter map[string]any, schema notion.Schema) map[string]any {
	if len(filter) == 0 {
		return nil
	}
	name, ok := filter["property"].(string)
	if !ok {
		return filter
	}

	value, condition := filterCondition(filter)
	if value == nil {
		return filter
	}

	def, ok := schema[name]
	if !ok || def.Type == notion.TypeUnknown {
		if titleProp, found := schema.TitleProperty(); found {
			name = titleProp
			def = schema[titleProp]
		} else {
			return filter
		}
	}

	typeKey := string(def.Type)
	// Text-shaped types only support substring conditions sensibly when the
	// caller asked for free text.
	if condition == "text" {
		switch def.Type {
		case notion.TypeTitle, notion.TypeRichText:
			condition = "contains"
		default:
			condition = "equals"
		}
	}

	return map[string]any{
		"property": name,
		typeKey:    map[string]any{condition: value},
	}
}

func filterCondition(filter map[string]any) (any, string) {
	for _, key := range []string{"contains", "equals", "text"} {
		if v, ok := filter[key]; ok {
			return v, key
		}
	}
	// The parser occasionally nests the condition one level down, e.g.
	// {"property": "상태", "select": {"equals": "진행 중"}}; treat that as
	// already remote-shaped.
	return nil, ""
}

func (s *Service) getDatabases(ctx context.Context) string {
	databases, err := s.ws.ListDatabases(ctx)
	if err != nil {
		return fmt.Sprintf("데이터베이스 목록 가져오기 중 오류 발생: %v", err)
	}
	if len(databases) == 0 {
		return "사용 가능한 데이터베이스가 없습니다."
	}

	lines := []string{"사용 가능한 데이터베이스:"}
	for _, db := range databases {
		id, _ := db["id"].(string)
		line := fmt.Sprintf("- %s (ID: %s)", notion.RecordTitle(db), id)
		if url, ok := db["url"].(string); ok && url != "" {
			line += fmt.Sprintf("\n  링크: %s", url)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (s *Service) generateContentAction(ctx context.Context, params map[string]any) string {
	prompt := stringParam(params, "prompt", "")
	if prompt == "" {
		return "콘텐츠 생성을 위한 프롬프트가 필요합니다."
	}
	content, err := s.generateContent(ctx, prompt, stringParam(params, "content_type", "text"))
	if err != nil {
		return fmt.Sprintf("콘텐츠 생성 중 오류 발생: %v", err)
	}
	return content
}
