// Package notion implements a keyed HTTP client for the Notion workspace API
// along with the wire types the command pipeline needs: property schemas,
// content blocks, and title extraction for heterogeneous records.
package notion

import "encoding/json"

// PropertyType is the closed set of Notion property types the pipeline
// understands. Anything the remote adds later parses as TypeUnknown and is
// dropped by the property mapper.
type PropertyType string

const (
	TypeTitle       PropertyType = "title"
	TypeRichText    PropertyType = "rich_text"
	TypeNumber      PropertyType = "number"
	TypeSelect      PropertyType = "select"
	TypeMultiSelect PropertyType = "multi_select"
	TypeDate        PropertyType = "date"
	TypeCheckbox    PropertyType = "checkbox"
	TypeURL         PropertyType = "url"
	TypeEmail       PropertyType = "email"
	TypePhoneNumber PropertyType = "phone_number"
	TypePeople      PropertyType = "people"
	TypeFiles       PropertyType = "files"
	TypeFormula     PropertyType = "formula"
	TypeRelation    PropertyType = "relation"
	TypeRollup      PropertyType = "rollup"
	TypeUnknown     PropertyType = ""
)

var knownTypes = map[string]PropertyType{
	"title":        TypeTitle,
	"rich_text":    TypeRichText,
	"number":       TypeNumber,
	"select":       TypeSelect,
	"multi_select": TypeMultiSelect,
	"date":         TypeDate,
	"checkbox":     TypeCheckbox,
	"url":          TypeURL,
	"email":        TypeEmail,
	"phone_number": TypePhoneNumber,
	"people":       TypePeople,
	"files":        TypeFiles,
	"formula":      TypeFormula,
	"relation":     TypeRelation,
	"rollup":       TypeRollup,
}

// ParsePropertyType maps a remote type string onto the closed enumeration.
func ParsePropertyType(s string) PropertyType {
	if t, ok := knownTypes[s]; ok {
		return t
	}
	return TypeUnknown
}

// Property is one entry of a database schema.
type Property struct {
	Type PropertyType
}

// Schema maps property names to their definitions. It is fetched fresh from
// the remote for every operation; the remote is the single source of truth.
type Schema map[string]Property

// TitleProperty returns the name of the schema's title-typed property.
func (s Schema) TitleProperty() (string, bool) {
	for name, p := range s {
		if p.Type == TypeTitle {
			return name, true
		}
	}
	return "", false
}

// SchemaOf extracts the property schema from a raw database record.
func SchemaOf(database map[string]any) Schema {
	schema := Schema{}
	props, _ := database["properties"].(map[string]any)
	for name, raw := range props {
		def, _ := raw.(map[string]any)
		typ, _ := def["type"].(string)
		schema[name] = Property{Type: ParsePropertyType(typ)}
	}
	return schema
}

// BlockType is the kind of a content block produced by the block builder.
type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockHeading   BlockType = "heading"
	BlockBullet    BlockType = "bulleted_list_item"
	BlockTodo      BlockType = "to_do"
)

// Block is one unit of page content. Either a typed block (Type + Text,
// plus Checked for to-dos) or a raw wire-shaped block carried through
// unchanged in Raw (used when the action parser supplies children directly).
type Block struct {
	Type    BlockType
	Text    string
	Checked bool
	Raw     map[string]any
}

// MarshalJSON renders the block in the Notion block wire shape.
func (b Block) MarshalJSON() ([]byte, error) {
	if b.Raw != nil {
		return json.Marshal(b.Raw)
	}

	richText := []any{
		map[string]any{"type": "text", "text": map[string]any{"content": b.Text}},
	}

	switch b.Type {
	case BlockTodo:
		return json.Marshal(map[string]any{
			"object": "block",
			"type":   "to_do",
			"to_do":  map[string]any{"rich_text": richText, "checked": b.Checked},
		})
	case BlockBullet:
		return json.Marshal(map[string]any{
			"object":             "block",
			"type":               "bulleted_list_item",
			"bulleted_list_item": map[string]any{"rich_text": richText},
		})
	case BlockHeading:
		return json.Marshal(map[string]any{
			"object":    "block",
			"type":      "heading_2",
			"heading_2": map[string]any{"rich_text": richText},
		})
	default:
		return json.Marshal(map[string]any{
			"object":    "block",
			"type":      "paragraph",
			"paragraph": map[string]any{"rich_text": richText},
		})
	}
}

// RawBlocks wraps already wire-shaped block payloads so they can be sent
// alongside builder output.
func RawBlocks(raw []any) []Block {
	blocks := make([]Block, 0, len(raw))
	for _, r := range raw {
		if m, ok := r.(map[string]any); ok {
			blocks = append(blocks, Block{Raw: m})
		}
	}
	return blocks
}

// TitleValue wraps plain text in the title property wire shape.
func TitleValue(text string) map[string]any {
	return map[string]any{
		"title": []any{
			map[string]any{"text": map[string]any{"content": text}},
		},
	}
}

// PlainText concatenates the plain_text spans of a rich text array.
func PlainText(richText []any) string {
	out := ""
	for _, item := range richText {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if s, ok := m["plain_text"].(string); ok {
			out += s
		}
	}
	return out
}

// RecordTitle extracts a display title from a database or page record.
// Databases carry a top-level title array; pages carry a title-typed
// property. Returns "제목 없음" when no title can be found.
func RecordTitle(record map[string]any) string {
	if items, ok := record["title"].([]any); ok {
		if t := PlainText(items); t != "" {
			return t
		}
	}
	props, _ := record["properties"].(map[string]any)
	for _, raw := range props {
		prop, ok := raw.(map[string]any)
		if !ok || prop["type"] != "title" {
			continue
		}
		if items, ok := prop["title"].([]any); ok {
			if t := PlainText(items); t != "" {
				return t
			}
		}
	}
	return "제목 없음"
}
