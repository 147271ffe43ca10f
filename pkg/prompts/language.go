package prompts

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultOutputLanguage は出力言語が未指定のときに使う言語名です。
const DefaultOutputLanguage = "Simplified Chinese"

// ResolveLanguage は出力言語の指定をプロンプトに埋め込む英語名へ正規化します。
// "ja" や "zh-Hans" のような BCP 47 タグは表示名に変換し、それ以外の文字列はそのまま返します。
func ResolveLanguage(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultOutputLanguage
	}

	tag, err := language.Parse(s)
	if err != nil {
		return s
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return s
}
