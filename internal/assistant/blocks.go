package assistant

import (
	"strings"

	"github.com/seojinpark/nabi/internal/notion"
)

const todoMarker = "- [ ]"

// BuildBlocks turns generated free text into an ordered list of content
// blocks. contentType "text" splits on blank-line boundaries into
// paragraphs; "todo" and "bullet" split on lines, honoring the "- [ ]" and
// "-" prefixes the generation instructions ask for. Empty segments are
// skipped. Anything else is treated as text.
func BuildBlocks(text, contentType string) []notion.Block {
	var blocks []notion.Block

	switch contentType {
	case "todo", "bullet":
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			switch {
			case strings.HasPrefix(line, todoMarker):
				blocks = append(blocks, notion.Block{
					Type: notion.BlockTodo,
					Text: strings.TrimSpace(line[len(todoMarker):]),
				})
			case strings.HasPrefix(line, "-"):
				blocks = append(blocks, notion.Block{
					Type: notion.BlockBullet,
					Text: strings.TrimSpace(line[1:]),
				})
			default:
				blocks = append(blocks, notion.Block{
					Type: notion.BlockParagraph,
					Text: line,
				})
			}
		}
	default:
		for _, paragraph := range strings.Split(text, "\n\n") {
			paragraph = strings.TrimSpace(paragraph)
			if paragraph == "" {
				continue
			}
			blocks = append(blocks, notion.Block{
				Type: notion.BlockParagraph,
				Text: paragraph,
			})
		}
	}

	return blocks
}
