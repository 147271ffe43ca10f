package prompts

import (
	"github.com/shouni/go-redset-kit/pkg/catalog"
	"github.com/shouni/go-redset-kit/pkg/domain"

	"google.golang.org/genai"
)

// ConceptRequest はコンセプト生成（分析 + マスター画像）の入力です。
type ConceptRequest struct {
	Topic       string
	References  []domain.ReferenceImage
	Archetype   catalog.Archetype
	AspectRatio string
}

// PlanRequest はプラン生成の入力です。
// References の並びは、モデルが返す bestReferenceIndex の解決にそのまま使われます。
type PlanRequest struct {
	Topic          string
	References     []domain.ReferenceImage
	Archetype      catalog.Archetype
	OutputLanguage string
	AspectRatio    string
	ArtDirection   string
}

// ImageRequest は PlanItem 1件分の画像生成の入力です。
type ImageRequest struct {
	Item             domain.PlanItem
	References       []domain.ReferenceImage
	PreviousImage    []byte
	PreviousMIMEType string
	Analysis         *domain.PlanAnalysis
	Archetype        catalog.Archetype
	OutputLanguage   string
	AspectRatio      string
}

// ContinuityAvailable は直前画像を含めたリクエストが組めるかを返します。
// アーキタイプが連続性を禁止している場合は、直前画像があっても false です。
func (r ImageRequest) ContinuityAvailable() bool {
	return r.Archetype.AllowContinuity && len(r.PreviousImage) > 0
}

// EditRequest は生成済み画像1枚の編集入力です。参照画像と分析はセッションのスナップショットから渡されます。
type EditRequest struct {
	Image         []byte
	ImageMIMEType string
	Instruction   string
	References    []domain.ReferenceImage
	Analysis      *domain.PlanAnalysis
	AspectRatio   string
}

// Prompt は1回のモデル呼び出し分のリクエスト内容です。
type Prompt struct {
	System string
	Parts  []*genai.Part
	Schema *genai.Schema
}
