package notion

import "testing"

func rawBlock(typ string, text string, extra map[string]any) map[string]any {
	body := map[string]any{
		"rich_text": []any{map[string]any{"plain_text": text}},
	}
	for k, v := range extra {
		body[k] = v
	}
	return map[string]any{"type": typ, typ: body}
}

func TestBlockText(t *testing.T) {
	cases := []struct {
		name  string
		block map[string]any
		want  string
	}{
		{"paragraph", rawBlock("paragraph", "본문입니다", nil), "본문입니다"},
		{"heading_1", rawBlock("heading_1", "제목", nil), "# 제목"},
		{"heading_3", rawBlock("heading_3", "소제목", nil), "### 소제목"},
		{"bullet", rawBlock("bulleted_list_item", "항목", nil), "• 항목"},
		{"numbered", rawBlock("numbered_list_item", "항목", nil), "• 항목"},
		{"todo unchecked", rawBlock("to_do", "할 일", nil), "☐ 할 일"},
		{"todo checked", rawBlock("to_do", "끝난 일", map[string]any{"checked": true}), "☑ 끝난 일"},
		{"quote", rawBlock("quote", "인용", nil), "> 인용"},
		{"callout with emoji", rawBlock("callout", "주의", map[string]any{"icon": map[string]any{"emoji": "💡"}}), "💡 주의"},
		{"callout without emoji", rawBlock("callout", "주의", nil), "주의"},
		{"code", rawBlock("code", "print(1)", map[string]any{"language": "python"}), "```python\nprint(1)\n```"},
		{"toggle", rawBlock("toggle", "펼치기", nil), "▸ 펼치기"},
		{"divider", rawBlock("divider", "", nil), "---"},
		{"unknown type", rawBlock("child_database", "", nil), ""},
		{"missing body", map[string]any{"type": "paragraph"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BlockText(tc.block); got != tc.want {
				t.Errorf("BlockText = %q, want %q", got, tc.want)
			}
		})
	}
}
