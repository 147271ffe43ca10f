package brief

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/shouni/go-redset-kit/pkg/catalog"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"gopkg.in/yaml.v3"
)

// Brief は CLI で1回の制作を記述する YAML ファイルの内容なのだ。
type Brief struct {
	Topic       string       `yaml:"topic"`
	Archetype   catalog.Kind `yaml:"archetype"`
	Language    string       `yaml:"language"`
	AspectRatio string       `yaml:"aspect_ratio"`
	References  []Reference  `yaml:"references"`
	Concept     Concept      `yaml:"concept"`
	Edits       []Edit       `yaml:"edits"`

	baseDir string
}

// Reference は参照画像1枚分の指定なのだ。path はブリーフファイルからの相対パスでもよいのだ。
type Reference struct {
	Path     string `yaml:"path"`
	Material bool   `yaml:"material"`
	Style    bool   `yaml:"style"`
}

// Concept はコンセプト工程を使うかと、どの候補を採用するか（1 始まり）なのだ。
type Concept struct {
	Enabled bool `yaml:"enabled"`
	Select  int  `yaml:"select"`
}

// Edit は生成後に適用する編集指示なのだ。Order はプラン項目の Order（1 始まり）なのだ。
type Edit struct {
	Order       int    `yaml:"order"`
	Instruction string `yaml:"instruction"`
}

// LoadedReference はファイルから読み込んだ参照画像なのだ。
type LoadedReference struct {
	Path     string
	Data     []byte
	MIMEType string
	Material bool
	Style    bool
}

// Load はブリーフファイルを reader 経由で読み込んで検証するのだ。ローカルでも gs:// でもよいのだ。
func Load(ctx context.Context, reader remoteio.InputReader, uri string) (*Brief, error) {
	data, err := readAll(ctx, reader, uri)
	if err != nil {
		return nil, fmt.Errorf("ブリーフファイル '%s' の読み込みに失敗したのだ: %w", uri, err)
	}
	return Parse(data, baseOf(uri))
}

// Parse は YAML を解釈するのだ。参照画像の相対パスは baseDir から解決するのだ。
func Parse(data []byte, baseDir string) (*Brief, error) {
	var b Brief
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("ブリーフの YAML 解析に失敗したのだ: %w", err)
	}
	b.baseDir = baseDir
	if b.Archetype == "" {
		b.Archetype = catalog.KindSocial
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate は必須項目と値の範囲を確かめるのだ。
func (b *Brief) Validate() error {
	if strings.TrimSpace(b.Topic) == "" {
		return fmt.Errorf("ブリーフに topic がないのだ")
	}
	if _, err := catalog.Lookup(b.Archetype); err != nil {
		return err
	}
	for i, r := range b.References {
		if strings.TrimSpace(r.Path) == "" {
			return fmt.Errorf("references[%d] に path がないのだ", i)
		}
	}
	if b.Concept.Select < 0 {
		return fmt.Errorf("concept.select は 1 以上で指定してほしいのだ: %d", b.Concept.Select)
	}
	for i, e := range b.Edits {
		if e.Order < 1 {
			return fmt.Errorf("edits[%d].order は 1 以上で指定してほしいのだ: %d", i, e.Order)
		}
		if strings.TrimSpace(e.Instruction) == "" {
			return fmt.Errorf("edits[%d] に instruction がないのだ", i)
		}
	}
	return nil
}

// LoadReferences は参照画像を順に読み込み、MIME タイプをバイト列から判定するのだ。
func (b *Brief) LoadReferences(ctx context.Context, reader remoteio.InputReader) ([]LoadedReference, error) {
	out := make([]LoadedReference, 0, len(b.References))
	for _, r := range b.References {
		p := b.resolve(r.Path)
		data, err := readAll(ctx, reader, p)
		if err != nil {
			return nil, fmt.Errorf("参照画像 '%s' の読み込みに失敗したのだ: %w", p, err)
		}
		mimeType := http.DetectContentType(data)
		if !strings.HasPrefix(mimeType, "image/") {
			return nil, fmt.Errorf("参照画像 '%s' は画像ではないのだ (%s)", p, mimeType)
		}
		out = append(out, LoadedReference{
			Path:     p,
			Data:     data,
			MIMEType: mimeType,
			Material: r.Material,
			Style:    r.Style,
		})
	}
	return out, nil
}

// ConceptIndex は採用するコンセプト候補の 0 始まりの位置なのだ。未指定なら先頭なのだ。
func (b *Brief) ConceptIndex() int {
	if b.Concept.Select <= 0 {
		return 0
	}
	return b.Concept.Select - 1
}

// resolve は参照画像のパスをブリーフの場所から解決するのだ。
func (b *Brief) resolve(p string) string {
	if isRemote(p) || filepath.IsAbs(p) || b.baseDir == "" {
		return p
	}
	if isRemote(b.baseDir) {
		return strings.TrimSuffix(b.baseDir, "/") + "/" + path.Clean(filepath.ToSlash(p))
	}
	return filepath.Join(b.baseDir, p)
}

func baseOf(uri string) string {
	if isRemote(uri) {
		if i := strings.LastIndex(uri, "/"); i > len("gs://") {
			return uri[:i]
		}
		return uri
	}
	return filepath.Dir(uri)
}

func isRemote(p string) bool {
	return strings.HasPrefix(strings.ToLower(p), "gs://")
}

func readAll(ctx context.Context, reader remoteio.InputReader, uri string) ([]byte, error) {
	rc, err := reader.Open(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
