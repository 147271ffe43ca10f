package publisher

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/shouni/go-redset-kit/pkg/catalog"
	"github.com/shouni/go-redset-kit/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type mockWriter struct {
	WriteFunc    func(ctx context.Context, path string, r io.Reader, contentType string) error
	written      map[string][]byte
	contentTypes map[string]string
}

func (m *mockWriter) Write(ctx context.Context, path string, r io.Reader, contentType string) error {
	if m.written == nil {
		m.written = map[string][]byte{}
		m.contentTypes = map[string]string{}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.written[path] = data
	m.contentTypes[path] = contentType
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, path, bytes.NewReader(data), contentType)
	}
	return nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func sampleImages(t *testing.T) []domain.GeneratedImage {
	t.Helper()
	cover := domain.NewCompletedImage(domain.PlanItem{ID: "a", Order: 1, Role: "封面大片", Copy: "春日"}, pngBytes(t), "image/png")
	cover.ApplyEdit(cover.Data, "image/png", "warmer light")
	pending := domain.NewPendingImage(domain.PlanItem{ID: "b", Order: 2, Role: "产品主图"})
	detail := domain.NewCompletedImage(domain.PlanItem{ID: "c", Order: 3, Role: "Cover Hero!"}, pngBytes(t), "")
	return []domain.GeneratedImage{cover, pending, detail}
}

func readZip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		out[f.Name] = b
	}
	return out
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name  string
		order int
		role  string
		want  string
	}{
		{name: "記号と空白は _ になる", order: 3, role: "Cover Hero!", want: "03_Cover_Hero_.jpg"},
		{name: "CJK 統合漢字は残る", order: 1, role: "封面大片", want: "01_封面大片.jpg"},
		{name: "ひらがなは範囲外", order: 12, role: "ページあ", want: "12_____.jpg"},
		{name: "ページ役割", order: 2, role: "Page 1", want: "02_Page_1.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.order, tt.role))
		})
	}
}

func TestArchiveWriter_Write(t *testing.T) {
	aw := NewArchiveWriter(0)
	m := Manifest{Topic: "spring serum", Archetype: catalog.KindSocial, AspectRatio: "3:4", Analysis: &domain.PlanAnalysis{StyleAnalysis: "soft"}}

	t.Run("完成済みの画像だけを JPEG で格納し、マニフェストを付けること", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, aw.Write(&buf, sampleImages(t), m))

		files := readZip(t, buf.Bytes())
		require.Contains(t, files, "redset_images/01_封面大片.jpg")
		require.Contains(t, files, "redset_images/03_Cover_Hero_.jpg")
		assert.NotContains(t, files, "redset_images/02_产品主图.jpg")
		assert.Equal(t, "image/jpeg", http.DetectContentType(files["redset_images/01_封面大片.jpg"]))

		var got Manifest
		require.NoError(t, json.Unmarshal(files[ManifestName], &got))
		assert.Equal(t, "spring serum", got.Topic)
		require.Len(t, got.Items, 2)
		assert.Equal(t, "redset_images/01_封面大片.jpg", got.Items[0].File)
		assert.Equal(t, []string{"warmer light"}, got.Items[0].EditHistory)
		assert.False(t, got.ExportedAt.IsZero())

		md := string(files[PlanMarkdownName])
		assert.Contains(t, md, "# spring serum")
		assert.Contains(t, md, "![封面大片](redset_images/01_封面大片.jpg)")
		assert.Contains(t, md, "  - warmer light")
	})

	t.Run("完成済みの画像がなければ ErrNothingToExport になること", func(t *testing.T) {
		var buf bytes.Buffer
		err := aw.Write(&buf, []domain.GeneratedImage{domain.NewPendingImage(domain.PlanItem{ID: "x", Order: 1})}, m)
		assert.ErrorIs(t, err, ErrNothingToExport)
	})

	t.Run("デコードできない画像はエラーになること", func(t *testing.T) {
		broken := domain.NewCompletedImage(domain.PlanItem{ID: "x", Order: 1, Role: "Cover"}, []byte("not an image"), "image/png")
		var buf bytes.Buffer
		assert.Error(t, aw.Write(&buf, []domain.GeneratedImage{broken}, m))
	})
}

func TestPublisher_Publish(t *testing.T) {
	t.Run("zip と展開済みの画像・プラン一覧を保存すること", func(t *testing.T) {
		w := &mockWriter{}
		p := NewPublisher(w, NewArchiveWriter(80))

		res, err := p.Publish(context.Background(), sampleImages(t), Manifest{Topic: "t"}, Options{OutputDir: "out", Unpack: true})
		require.NoError(t, err)

		assert.Equal(t, filepath.Join("out", DefaultArchiveName), res.ArchivePath)
		assert.Equal(t, filepath.Join("out", PlanMarkdownName), res.MarkdownPath)
		assert.Equal(t, []string{
			filepath.Join("out", ArchiveFolder, "01_封面大片.jpg"),
			filepath.Join("out", ArchiveFolder, "03_Cover_Hero_.jpg"),
		}, res.ImagePaths)
		assert.Len(t, w.written, 4)
		assert.Equal(t, "application/zip", w.contentTypes[res.ArchivePath])
		assert.Equal(t, "image/jpeg", w.contentTypes[res.ImagePaths[0]])
	})

	t.Run("gs:// の出力先にも同じ構成で保存すること", func(t *testing.T) {
		w := &mockWriter{}
		p := NewPublisher(w, NewArchiveWriter(80))

		res, err := p.Publish(context.Background(), sampleImages(t), Manifest{Topic: "t"}, Options{OutputDir: "gs://bucket/sets/", Unpack: true})
		require.NoError(t, err)
		assert.Equal(t, "gs://bucket/sets/"+DefaultArchiveName, res.ArchivePath)
		assert.Equal(t, "gs://bucket/sets/"+ArchiveFolder+"/01_封面大片.jpg", res.ImagePaths[0])
	})

	t.Run("書き込みに失敗したらエラーを返すこと", func(t *testing.T) {
		w := &mockWriter{WriteFunc: func(context.Context, string, io.Reader, string) error {
			return errors.New("disk full")
		}}
		p := NewPublisher(w, NewArchiveWriter(80))

		_, err := p.Publish(context.Background(), sampleImages(t), Manifest{Topic: "t"}, Options{OutputDir: "out"})
		assert.ErrorContains(t, err, "disk full")
	})

	t.Run("Unpack でなければ zip だけを保存すること", func(t *testing.T) {
		w := &mockWriter{}
		p := NewPublisher(w, NewArchiveWriter(80))

		res, err := p.Publish(context.Background(), sampleImages(t), Manifest{Topic: "t"}, Options{OutputDir: "out", ArchiveName: "set.zip"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("out", "set.zip"), res.ArchivePath)
		assert.Len(t, w.written, 1)
		assert.Empty(t, res.ImagePaths)
	})
}

func TestResolveOutputPath(t *testing.T) {
	got, err := ResolveOutputPath("out", "redset_images/01_a.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "redset_images", "01_a.jpg"), got)

	_, err = ResolveOutputPath("out", "../escape.zip")
	assert.Error(t, err)

	_, err = ResolveOutputPath("out", " ")
	assert.Error(t, err)

	got, err = ResolveOutputPath("", "a.zip")
	require.NoError(t, err)
	assert.Equal(t, "a.zip", got)

	got, err = ResolveOutputPath("gs://bucket/out", "redset_images/01_a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "gs://bucket/out/redset_images/01_a.jpg", got)

	_, err = ResolveOutputPath("gs://bucket/out", "../../other/a.zip")
	assert.Error(t, err)

	_, err = ResolveOutputPath("gs://", "a.zip")
	assert.Error(t, err)
}
