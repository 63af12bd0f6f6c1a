package assistant

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/seojinpark/nabi/internal/notion"
)

// formatQueryResults renders heterogeneous query records into a readable
// report. Rendering never fails the overall call: a content-fetch error
// becomes an inline warning line on the affected record.
func (s *Service) formatQueryResults(ctx context.Context, databaseName string, pages []map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "'%s' 데이터베이스 조회 결과: %d개의 페이지 찾음", databaseName, len(pages))

	for i, page := range pages {
		id, _ := page["id"].(string)
		shortID := id
		if len(shortID) > 8 {
			shortID = shortID[:8] + "..."
		}
		url, _ := page["url"].(string)
		if url == "" {
			url = "링크 없음"
		}

		fmt.Fprintf(&b, "\n\n%d. %s (ID: %s)", i+1, notion.RecordTitle(page), shortID)
		fmt.Fprintf(&b, "\n   링크: %s", url)

		props, _ := page["properties"].(map[string]any)
		for _, name := range sortedPropertyNames(props) {
			prop, ok := props[name].(map[string]any)
			if !ok || prop["type"] == "title" {
				continue
			}
			value := propertyDisplayValue(prop)
			if strings.TrimSpace(value) == "" {
				continue
			}
			fmt.Fprintf(&b, "\n   %s: %s", name, value)
		}

		if object, _ := page["object"].(string); object == "page" {
			s.appendPageContent(ctx, &b, id)
		}
	}

	return b.String()
}

func sortedPropertyNames(props map[string]any) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Service) appendPageContent(ctx context.Context, b *strings.Builder, pageID string) {
	blocks, err := s.ws.GetBlockChildren(ctx, pageID)
	if err != nil {
		fmt.Fprintf(b, "\n   (내용을 불러오지 못했습니다: %v)", err)
		return
	}
	for _, block := range blocks {
		line := notion.BlockText(block)
		if line == "" {
			continue
		}
		fmt.Fprintf(b, "\n   %s", line)
	}
}

// propertyDisplayValue extracts a scalar display value from a raw property
// record, dispatching on its wire type. Unknown or unsupported types render
// as an empty string and are omitted from the report.
func propertyDisplayValue(prop map[string]any) string {
	typ, _ := prop["type"].(string)

	switch notion.ParsePropertyType(typ) {
	case notion.TypeRichText:
		items, _ := prop["rich_text"].([]any)
		return notion.PlainText(items)

	case notion.TypeNumber:
		if n, ok := prop["number"].(float64); ok {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		return ""

	case notion.TypeSelect:
		sel, _ := prop["select"].(map[string]any)
		if sel == nil {
			return ""
		}
		name, _ := sel["name"].(string)
		return name

	case notion.TypeMultiSelect:
		items, _ := prop["multi_select"].([]any)
		var names []string
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				if name, ok := m["name"].(string); ok && name != "" {
					names = append(names, name)
				}
			}
		}
		return strings.Join(names, ", ")

	case notion.TypeDate:
		return dateDisplayValue(prop["date"])

	case notion.TypeCheckbox:
		if checked, _ := prop["checkbox"].(bool); checked {
			return "✅"
		}
		return "❌"

	case notion.TypeURL:
		v, _ := prop["url"].(string)
		return v

	case notion.TypeEmail:
		v, _ := prop["email"].(string)
		return v

	case notion.TypePhoneNumber:
		v, _ := prop["phone_number"].(string)
		return v

	case notion.TypePeople:
		items, _ := prop["people"].([]any)
		var names []string
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				if name, ok := m["name"].(string); ok && name != "" {
					names = append(names, name)
				}
			}
		}
		return strings.Join(names, ", ")

	case notion.TypeFormula:
		return formulaDisplayValue(prop["formula"])

	default:
		return ""
	}
}

// formulaDisplayValue inspects whichever of string/number/boolean/date the
// computed formula populated.
func formulaDisplayValue(raw any) string {
	formula, _ := raw.(map[string]any)
	if formula == nil {
		return ""
	}
	if v, ok := formula["string"].(string); ok {
		return v
	}
	if v, ok := formula["number"].(float64); ok {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if v, ok := formula["boolean"].(bool); ok {
		if v {
			return "✅"
		}
		return "❌"
	}
	if _, ok := formula["date"]; ok {
		return dateDisplayValue(formula["date"])
	}
	return ""
}

func dateDisplayValue(raw any) string {
	date, _ := raw.(map[string]any)
	if date == nil {
		return ""
	}
	start, _ := date["start"].(string)
	end, _ := date["end"].(string)
	if start != "" && end != "" {
		return start + " ~ " + end
	}
	return start
}
