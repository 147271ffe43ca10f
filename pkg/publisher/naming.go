package publisher

import (
	"fmt"
	"regexp"
)

// unsafeNameRegex は ASCII 英数字と CJK 統合漢字（U+4E00〜U+9FA5）以外の1文字に一致します。
var unsafeNameRegex = regexp.MustCompile(`[^a-zA-Z0-9\x{4E00}-\x{9FA5}]`)

// FileName は書き出し時の画像ファイル名を返します。
// 例: FileName(3, "Cover Hero!") は "03_Cover_Hero_.jpg" です。
func FileName(order int, role string) string {
	return fmt.Sprintf("%02d_%s.jpg", order, unsafeNameRegex.ReplaceAllString(role, "_"))
}
