package publisher

import (
	"bytes"
	"context"
	"fmt"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// AssetManager は生成物の保存パスと永続化を管理します。
// 保存先はローカルのディレクトリでも gs:// でも構いません。
type AssetManager struct {
	writer  remoteio.OutputWriter
	baseDir string
}

// NewAssetManager は baseDir 配下に保存する AssetManager を作ります。
func NewAssetManager(writer remoteio.OutputWriter, baseDir string) *AssetManager {
	return &AssetManager{
		writer:  writer,
		baseDir: baseDir,
	}
}

// Save はデータを保存し、その保存先のパスを返します。
func (am *AssetManager) Save(ctx context.Context, fileName string, data []byte, contentType string) (string, error) {
	fullPath, err := ResolveOutputPath(am.baseDir, fileName)
	if err != nil {
		return "", err
	}
	if err := am.writer.Write(ctx, fullPath, bytes.NewReader(data), contentType); err != nil {
		return "", fmt.Errorf("asset_manager: %s の保存に失敗しました: %w", fileName, err)
	}
	return fullPath, nil
}
