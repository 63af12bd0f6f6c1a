package notion

import "fmt"

// BlockText renders a raw block record as a line of plain text. Unknown
// block types render as an empty string and are skipped by callers.
func BlockText(block map[string]any) string {
	typ, _ := block["type"].(string)
	body, _ := block[typ].(map[string]any)
	if body == nil {
		return ""
	}
	richText, _ := body["rich_text"].([]any)
	text := PlainText(richText)

	switch typ {
	case "paragraph":
		return text
	case "heading_1":
		return "# " + text
	case "heading_2":
		return "## " + text
	case "heading_3":
		return "### " + text
	case "bulleted_list_item", "numbered_list_item":
		return "• " + text
	case "to_do":
		if checked, _ := body["checked"].(bool); checked {
			return "☑ " + text
		}
		return "☐ " + text
	case "quote":
		return "> " + text
	case "callout":
		emoji := ""
		if icon, ok := body["icon"].(map[string]any); ok {
			emoji, _ = icon["emoji"].(string)
		}
		if emoji != "" {
			return emoji + " " + text
		}
		return text
	case "code":
		language, _ := body["language"].(string)
		return fmt.Sprintf("```%s\n%s\n```", language, text)
	case "toggle":
		return "▸ " + text
	case "divider":
		return "---"
	default:
		return ""
	}
}
