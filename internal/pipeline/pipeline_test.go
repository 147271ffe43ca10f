package pipeline

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/shouni/go-redset-kit/internal/brief"
	"github.com/shouni/go-redset-kit/internal/builder"
	"github.com/shouni/go-redset-kit/internal/config"
	"github.com/shouni/go-redset-kit/pkg/catalog"
	"github.com/shouni/go-redset-kit/pkg/generator"
	"github.com/shouni/go-redset-kit/pkg/publisher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

const socialPlanJSON = "```json\n" + `{
  "analysis": {"keywords": ["spring"], "contentDirection": "fresh", "styleAnalysis": "soft pastel", "bestReferenceIndex": 0},
  "planItems": [
    {"order": 1, "role": "产品主图", "description": "hero", "composition": "centered", "copywriting": "新品"},
    {"order": 2, "role": "封面大片", "description": "cover", "composition": "top clean", "copywriting": "春日"}
  ]
}` + "\n```"

const conceptJSON = `{"analysis": "pastel bottle", "roles": ["bottle"], "imagePrompt": "a bottle"}`

// --- Mocks ---

type fakeAI struct {
	GenerateContentFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

	mu     sync.Mutex
	models []string
}

func (f *fakeAI) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	f.models = append(f.models, model)
	f.mu.Unlock()
	return f.GenerateContentFunc(ctx, model, contents, config)
}

// localIO はローカルファイルシステムに読み書きする入出力なのだ。
type localIO struct{}

func (localIO) Open(_ context.Context, uri string) (io.ReadCloser, error) {
	return os.Open(uri)
}

func (localIO) List(_ context.Context, _ string, _ func(string) error) error {
	return nil
}

func (localIO) Write(_ context.Context, path string, r io.Reader, _ string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func response(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content:      &genai.Content{Parts: parts},
		FinishReason: genai.FinishReasonStop,
	}}}
}

// newFakeAI はテキストモデルには text を、画像モデルには PNG を返すのだ。
func newFakeAI(t *testing.T, text string) *fakeAI {
	img := pngBytes(t)
	return &fakeAI{GenerateContentFunc: func(_ context.Context, model string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		if model == generator.DefaultTextModel {
			return response(&genai.Part{Text: text}), nil
		}
		return response(&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: img}}), nil
	}}
}

func newAppContext(t *testing.T, ai generator.ContentGenerator, opts config.GenerateOptions) *builder.AppContext {
	t.Helper()
	cfg := &config.Config{OutputDir: t.TempDir()}
	cfg.Apply(opts)
	appCtx, err := builder.BuildAppContextWith(ai, cfg, localIO{}, localIO{})
	require.NoError(t, err)
	return appCtx
}

func writeBrief(t *testing.T, body string) *brief.Brief {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bottle.png"), pngBytes(t), 0o644))
	path := filepath.Join(dir, "brief.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	b, err := brief.Load(context.Background(), localIO{}, path)
	require.NoError(t, err)
	return b
}

const briefYAML = `
topic: spring serum
archetype: social
references:
  - path: bottle.png
    material: true
edits:
  - order: 1
    instruction: warmer light
  - order: 9
    instruction: ignored
`

// --- Tests ---

func TestRun(t *testing.T) {
	t.Run("プランから書き出しまで通しで実行できること", func(t *testing.T) {
		ai := newFakeAI(t, socialPlanJSON)
		appCtx := newAppContext(t, ai, config.GenerateOptions{Unpack: true})
		b := writeBrief(t, briefYAML)

		res, err := Run(context.Background(), appCtx, b)
		require.NoError(t, err)

		data, err := os.ReadFile(res.ArchivePath)
		require.NoError(t, err)
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		require.NoError(t, err)
		var names []string
		for _, f := range zr.File {
			names = append(names, f.Name)
		}
		assert.Contains(t, names, "redset_images/01_封面大片.jpg")
		assert.Contains(t, names, "redset_images/02_产品主图.jpg")
		assert.Contains(t, names, publisher.ManifestName)

		require.Len(t, res.ImagePaths, 2)
		md, err := os.ReadFile(res.MarkdownPath)
		require.NoError(t, err)
		assert.Contains(t, string(md), "  - warmer light")

		// プラン1回、画像2枚、編集1回
		assert.Len(t, ai.models, 4)
		assert.Equal(t, 0, appCtx.Sessions.Count())
	})

	t.Run("プランが作れなければ何も書き出さないこと", func(t *testing.T) {
		ai := newFakeAI(t, `{"analysis": {}, "planItems": []}`)
		appCtx := newAppContext(t, ai, config.GenerateOptions{})
		b := writeBrief(t, briefYAML)

		_, err := Run(context.Background(), appCtx, b)
		assert.Error(t, err)
		entries, _ := os.ReadDir(appCtx.Config.OutputDir)
		assert.Empty(t, entries)
	})
}

func TestRunPlan(t *testing.T) {
	ai := newFakeAI(t, socialPlanJSON)
	appCtx := newAppContext(t, ai, config.GenerateOptions{})
	b := writeBrief(t, briefYAML)

	path, err := RunPlan(context.Background(), appCtx, b)
	require.NoError(t, err)
	assert.Equal(t, PlanJSONName, filepath.Base(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got struct {
		Plan []struct {
			Order int    `json:"order"`
			Role  string `json:"role"`
		} `json:"plan"`
	}
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got.Plan, 2)
	assert.Equal(t, catalog.SocialCoverRole, got.Plan[0].Role)
	assert.Equal(t, 1, got.Plan[0].Order)
	assert.Len(t, ai.models, 1)
}

func TestRunConcept(t *testing.T) {
	ai := newFakeAI(t, conceptJSON)
	appCtx := newAppContext(t, ai, config.GenerateOptions{})
	b := writeBrief(t, briefYAML)

	paths, err := RunConcept(context.Background(), appCtx, b)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.True(t, strings.HasSuffix(paths[0], "concept_01.png"))
	assert.True(t, strings.HasSuffix(paths[2], ConceptJSONName))
}

func TestApplyOverrides(t *testing.T) {
	b := &brief.Brief{Topic: "t", Archetype: catalog.KindSocial, Concept: brief.Concept{Enabled: true}}

	require.NoError(t, ApplyOverrides(b, config.GenerateOptions{Archetype: "comic", AspectRatio: "1:1", SkipConcept: true, ConceptSelect: 2}))
	assert.Equal(t, catalog.KindComic, b.Archetype)
	assert.Equal(t, "1:1", b.AspectRatio)
	assert.False(t, b.Concept.Enabled)
	assert.Equal(t, 1, b.ConceptIndex())

	assert.Error(t, ApplyOverrides(b, config.GenerateOptions{Archetype: "poster"}))
}
