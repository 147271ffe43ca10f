package publisher

import (
	"fmt"
	"strings"
)

// BuildPlanMarkdown は、トピック・分析・各画像のプラン内容を一覧にした Markdown を生成します。
// 画像へのリンクは zip 内の相対パスです。
func BuildPlanMarkdown(m Manifest) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", m.Topic))
	sb.WriteString(fmt.Sprintf("- archetype: %s\n", m.Archetype))
	sb.WriteString(fmt.Sprintf("- aspect_ratio: %s\n", m.AspectRatio))
	if m.OutputLanguage != "" {
		sb.WriteString(fmt.Sprintf("- language: %s\n", m.OutputLanguage))
	}
	sb.WriteString("\n")

	if a := m.Analysis; a != nil {
		sb.WriteString("## Analysis\n\n")
		if len(a.Keywords) > 0 {
			sb.WriteString(fmt.Sprintf("- keywords: %s\n", strings.Join(a.Keywords, ", ")))
		}
		writeField(&sb, "content_direction", a.ContentDirection)
		writeField(&sb, "style_analysis", a.StyleAnalysis)
		writeField(&sb, "art_direction", a.ArtDirection)
		sb.WriteString("\n")
	}

	for _, it := range m.Items {
		sb.WriteString(fmt.Sprintf("## %02d %s\n\n", it.Item.Order, it.Item.Role))
		sb.WriteString(fmt.Sprintf("![%s](%s)\n\n", it.Item.Role, it.File))
		writeField(&sb, "description", it.Item.Description)
		writeField(&sb, "composition", it.Item.Composition)
		writeField(&sb, "copy", it.Item.Copy)
		writeField(&sb, "layout", it.Item.LayoutSuggestion)
		if len(it.EditHistory) > 0 {
			sb.WriteString("- edits:\n")
			for _, e := range it.EditHistory {
				sb.WriteString(fmt.Sprintf("  - %s\n", oneLine(e)))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeField(sb *strings.Builder, key, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	sb.WriteString(fmt.Sprintf("- %s: %s\n", key, oneLine(value)))
}

// oneLine は改行を空白に置き換え、リスト項目が崩れないようにします。
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
