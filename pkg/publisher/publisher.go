package publisher

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/shouni/go-redset-kit/pkg/domain"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir   string
	ArchiveName string
	// Unpack が true なら zip とは別に画像とプラン一覧を展開して保存します。
	Unpack bool
}

// PublishResult はパブリッシュ処理で保存されたファイルの情報です。
type PublishResult struct {
	ArchivePath  string
	MarkdownPath string
	ImagePaths   []string
}

// DefaultArchiveName は Options.ArchiveName が空のときの zip ファイル名です。
const DefaultArchiveName = ArchiveFolder + ".zip"

// Publisher は書き出し結果を remoteio.OutputWriter 経由でローカルまたは GCS に保存します。
type Publisher struct {
	writer  remoteio.OutputWriter
	archive *ArchiveWriter
}

// NewPublisher は Publisher を作ります。
func NewPublisher(writer remoteio.OutputWriter, archive *ArchiveWriter) *Publisher {
	return &Publisher{writer: writer, archive: archive}
}

// Publish は zip を保存し、必要なら画像とプラン一覧を展開して保存します。
func (p *Publisher) Publish(ctx context.Context, images []domain.GeneratedImage, m Manifest, opts Options) (PublishResult, error) {
	result := PublishResult{}
	assets := NewAssetManager(p.writer, opts.OutputDir)

	name := opts.ArchiveName
	if name == "" {
		name = DefaultArchiveName
	}

	entries, err := p.archive.Entries(images)
	if err != nil {
		return result, err
	}

	var buf bytes.Buffer
	if err := WriteEntries(&buf, entries, m); err != nil {
		return result, err
	}
	archivePath, err := assets.Save(ctx, name, buf.Bytes(), "application/zip")
	if err != nil {
		return result, err
	}
	result.ArchivePath = archivePath
	slog.Info("zip を保存しました", "path", archivePath, "bytes", buf.Len())

	if !opts.Unpack {
		return result, nil
	}

	for _, e := range entries {
		saved, err := assets.Save(ctx, path.Join(ArchiveFolder, e.Name), e.Data, "image/jpeg")
		if err != nil {
			return result, fmt.Errorf("画像の書き込みに失敗しました: %w", err)
		}
		result.ImagePaths = append(result.ImagePaths, saved)
	}

	md, err := assets.Save(ctx, PlanMarkdownName, []byte(BuildPlanMarkdown(WithEntries(m, entries))), "text/markdown; charset=utf-8")
	if err != nil {
		return result, fmt.Errorf("markdownファイルの書き込みに失敗しました: %w", err)
	}
	result.MarkdownPath = md

	return result, nil
}
