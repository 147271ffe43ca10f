package publisher

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/shouni/go-redset-kit/pkg/catalog"
	"github.com/shouni/go-redset-kit/pkg/domain"

	"github.com/shouni/gemini-image-kit/imgutil"
)

const (
	// ArchiveFolder は zip 内で画像を置くフォルダ名です。
	ArchiveFolder = "redset_images"
	// ManifestName は zip 直下に置くメタデータのファイル名です。
	ManifestName = "manifest.json"
	// PlanMarkdownName は zip 直下に置くプラン一覧のファイル名です。
	PlanMarkdownName = "plan.md"
	// DefaultJPEGQuality は JPEG 変換時の既定品質です。
	DefaultJPEGQuality = 92
)

// ErrNothingToExport は完成済みの画像が1枚もないことを示します。
var ErrNothingToExport = errors.New("no completed images to export")

// Manifest は書き出し時点のプランと分析のメタデータです。
type Manifest struct {
	Topic          string               `json:"topic"`
	Archetype      catalog.Kind         `json:"archetype"`
	OutputLanguage string               `json:"output_language"`
	AspectRatio    string               `json:"aspect_ratio"`
	Analysis       *domain.PlanAnalysis `json:"analysis,omitempty"`
	Items          []ManifestItem       `json:"items"`
	ExportedAt     time.Time            `json:"exported_at"`
}

// ManifestItem は書き出した画像1枚分の情報です。
type ManifestItem struct {
	File        string          `json:"file"`
	Item        domain.PlanItem `json:"item"`
	EditHistory []string        `json:"edit_history"`
}

// Entry は zip に格納する画像1枚分です。Data は JPEG に変換済みです。
type Entry struct {
	Name  string
	Data  []byte
	Image domain.GeneratedImage
}

// ArchiveWriter は完成済みの画像を JPEG に揃えて zip にまとめます。
type ArchiveWriter struct {
	quality int
}

// NewArchiveWriter は ArchiveWriter を作ります。quality が範囲外なら DefaultJPEGQuality を使います。
func NewArchiveWriter(quality int) *ArchiveWriter {
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &ArchiveWriter{quality: quality}
}

// Entries は完成済みかつデータを持つ画像だけを、プラン順のファイル名つきで返します。
func (a *ArchiveWriter) Entries(images []domain.GeneratedImage) ([]Entry, error) {
	var out []Entry
	for _, img := range images {
		if img.Status != domain.StatusCompleted || !img.HasData() {
			continue
		}
		data, err := a.toJPEG(img.Data, img.MIMEType)
		if err != nil {
			return nil, fmt.Errorf("画像 %d の JPEG 変換に失敗しました: %w", img.PlanItem.Order, err)
		}
		out = append(out, Entry{
			Name:  FileName(img.PlanItem.Order, img.PlanItem.Role),
			Data:  data,
			Image: img,
		})
	}
	if len(out) == 0 {
		return nil, ErrNothingToExport
	}
	return out, nil
}

// Write は画像を ArchiveFolder 配下に、マニフェストとプラン一覧を直下に置いた zip を w に書き込みます。
func (a *ArchiveWriter) Write(w io.Writer, images []domain.GeneratedImage, m Manifest) error {
	entries, err := a.Entries(images)
	if err != nil {
		return err
	}
	return WriteEntries(w, entries, m)
}

// WriteEntries は変換済みの Entry 群から zip を書き込みます。
func WriteEntries(w io.Writer, entries []Entry, m Manifest) error {
	m = WithEntries(m, entries)

	zw := zip.NewWriter(w)
	for _, e := range entries {
		if err := writeZipFile(zw, path.Join(ArchiveFolder, e.Name), e.Data); err != nil {
			return err
		}
	}

	manifest, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("マニフェストの JSON 化に失敗しました: %w", err)
	}
	if err := writeZipFile(zw, ManifestName, manifest); err != nil {
		return err
	}
	if err := writeZipFile(zw, PlanMarkdownName, []byte(BuildPlanMarkdown(m))); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("zip の書き込みに失敗しました: %w", err)
	}
	return nil
}

// WithEntries はマニフェストの Items を書き出し対象の画像から作り直したコピーを返します。
func WithEntries(m Manifest, entries []Entry) Manifest {
	m.Items = make([]ManifestItem, 0, len(entries))
	for _, e := range entries {
		m.Items = append(m.Items, ManifestItem{
			File:        path.Join(ArchiveFolder, e.Name),
			Item:        e.Image.PlanItem,
			EditHistory: e.Image.EditHistory,
		})
	}
	if m.ExportedAt.IsZero() {
		m.ExportedAt = time.Now()
	}
	return m
}

func (a *ArchiveWriter) toJPEG(data []byte, mimeType string) ([]byte, error) {
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if mimeType == "image/jpeg" {
		return data, nil
	}
	return imgutil.CompressToJPEG(bytes.NewReader(data), a.quality)
}

func writeZipFile(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("zip エントリ %s の作成に失敗しました: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("zip エントリ %s の書き込みに失敗しました: %w", name, err)
	}
	return nil
}
