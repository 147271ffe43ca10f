package prompts

import (
	"fmt"
	"strings"
	"text/template"
)

var templateFuncs = template.FuncMap{
	"inc":  func(i int) int { return i + 1 },
	"join": strings.Join,
}

// templateSet は埋め込みテンプレートを名前ごとに解析済みで保持します。
type templateSet struct {
	templates map[string]*template.Template
}

// newTemplateSet は埋め込みテンプレートをすべて解析します。
func newTemplateSet() (*templateSet, error) {
	parsed := make(map[string]*template.Template, len(templateSources))
	for name, content := range templateSources {
		if strings.TrimSpace(content) == "" {
			return nil, fmt.Errorf("プロンプトテンプレート '%s' (go:embed) の読み込みに失敗しました: 内容が空です", name)
		}

		tmpl, err := template.New(name).Funcs(templateFuncs).Option("missingkey=error").Parse(content)
		if err != nil {
			return nil, fmt.Errorf("プロンプト '%s' の解析に失敗: %w", name, err)
		}
		parsed[name] = tmpl
	}
	return &templateSet{templates: parsed}, nil
}

// render は指定されたテンプレートを実行し、前後の空白を除いた文字列を返します。
func (s *templateSet) render(name string, data any) (string, error) {
	tmpl, ok := s.templates[name]
	if !ok {
		return "", fmt.Errorf("不明なテンプレートです: '%s'", name)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("プロンプトテンプレート '%s' の実行に失敗しました: %w", name, err)
	}
	return strings.TrimSpace(sb.String()), nil
}
