package publisher

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
// ファイル名に ".." を含めてベースの外へ出ることは許しません。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	if strings.TrimSpace(fileName) == "" {
		return "", fmt.Errorf("ファイル名が空です")
	}
	rel := path.Clean(filepath.ToSlash(fileName))
	if rel == ".." || strings.HasPrefix(rel, "../") || path.IsAbs(rel) {
		return "", fmt.Errorf("出力先がベースディレクトリの外です: %s", fileName)
	}

	if IsRemote(baseDir) {
		u, err := url.Parse(baseDir)
		if err != nil || u.Host == "" {
			return "", fmt.Errorf("無効なGCS URIです: %s", baseDir)
		}
		// オブジェクト名はエスケープせずにそのまま連結します
		return strings.TrimSuffix(baseDir, "/") + "/" + rel, nil
	}

	if baseDir == "" {
		baseDir = "."
	}
	return filepath.Join(baseDir, filepath.FromSlash(rel)), nil
}

// IsRemote は p が gs:// で始まるかを返します。
func IsRemote(p string) bool {
	return strings.HasPrefix(strings.ToLower(p), "gs://")
}
