package assistant

import (
	"fmt"

	"github.com/seojinpark/nabi/internal/notion"
)

// propertyAliases reconciles the English property names the model tends to
// emit with the Korean names the target databases actually use. Untranslated
// names pass through unchanged.
var propertyAliases = map[string]string{
	"Name":        "이름",
	"Description": "설명",
	"Status":      "상태",
	"Date":        "날짜",
	"Tags":        "태그",
	"Priority":    "우선순위",
	"Assignee":    "담당자",
	"Created":     "생성일",
	"Updated":     "수정일",
}

func aliasName(name string, schema notion.Schema) string {
	// Only translate when the original name is absent from the schema;
	// an exact schema match always wins over the alias table.
	if _, ok := schema[name]; ok {
		return name
	}
	if alias, ok := propertyAliases[name]; ok {
		return alias
	}
	return name
}

// hasWrapper reports whether value already carries the wire wrapper for key.
func hasWrapper(value any, key string) bool {
	m, ok := value.(map[string]any)
	if !ok {
		return false
	}
	_, ok = m[key]
	return ok
}

func coerceTitle(value any) map[string]any {
	switch v := value.(type) {
	case []any:
		return map[string]any{"title": v}
	case map[string]any:
		if _, ok := v["title"]; ok {
			return v
		}
		return notion.TitleValue(fmt.Sprint(value))
	default:
		return notion.TitleValue(fmt.Sprint(value))
	}
}

// MapProperties validates a model-supplied parameter bag against a live
// database schema: alias translation, schema membership filtering, per-type
// coercion, and title auto-injection. It never fails; everything that cannot
// be mapped is dropped and reported in the returned warnings.
func MapProperties(parameters map[string]any, fallbackTitle string, schema notion.Schema) (map[string]any, []string) {
	validated := map[string]any{}
	var warnings []string

	for name, value := range parameters {
		mapped := aliasName(name, schema)
		def, ok := schema[mapped]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("속성 '%s' 제외됨 (데이터베이스에 없음)", name))
			continue
		}

		switch def.Type {
		case notion.TypeTitle:
			validated[mapped] = coerceTitle(value)

		case notion.TypeRichText, notion.TypeNumber, notion.TypeSelect,
			notion.TypeMultiSelect, notion.TypeDate, notion.TypePeople,
			notion.TypeFiles, notion.TypeCheckbox, notion.TypeURL,
			notion.TypeEmail, notion.TypePhoneNumber:
			if hasWrapper(value, string(def.Type)) {
				validated[mapped] = value
			} else {
				warnings = append(warnings, fmt.Sprintf("속성 '%s' 제외됨 (형식 불일치: %s)", name, def.Type))
			}

		case notion.TypeFormula, notion.TypeRollup:
			warnings = append(warnings, fmt.Sprintf("속성 '%s' 제외됨 (읽기 전용: %s)", name, def.Type))

		case notion.TypeRelation:
			warnings = append(warnings, fmt.Sprintf("속성 '%s' 제외됨 (relation은 지원되지 않음)", name))

		default:
			warnings = append(warnings, fmt.Sprintf("속성 '%s' 제외됨 (지원되지 않는 타입)", name))
		}
	}

	// Every page write must set exactly one title property. If nothing above
	// produced one, populate the schema's title property from the action's
	// title parameter.
	if !anyTitle(validated) {
		if titleProp, ok := schema.TitleProperty(); ok {
			if fallbackTitle == "" {
				fallbackTitle = "새 페이지"
			}
			validated[titleProp] = notion.TitleValue(fallbackTitle)
		}
	}

	return validated, warnings
}

func anyTitle(properties map[string]any) bool {
	for _, value := range properties {
		if hasWrapper(value, "title") {
			return true
		}
	}
	return false
}
