package prompts

import (
	"encoding/json"
	"fmt"

	"github.com/shouni/go-redset-kit/pkg/arbiter"
	"github.com/shouni/go-redset-kit/pkg/catalog"
	"github.com/shouni/go-redset-kit/pkg/domain"

	"google.golang.org/genai"
)

// Composer は各生成呼び出しのプロンプト（システム指示・タグ付き画像パート・スキーマ）を組み立てます。
// 画像パートは常に主参照、補助参照、直前画像の順に並び、各画像の直後にその扱いを説明するタグ文が続きます。
type Composer struct {
	tmpl *templateSet
}

// NewComposer は埋め込みテンプレートを解析して Composer を初期化します。
func NewComposer() (*Composer, error) {
	tmpl, err := newTemplateSet()
	if err != nil {
		return nil, err
	}
	return &Composer{tmpl: tmpl}, nil
}

// ConceptAnalysis はコンセプト分析（JSON 出力）のプロンプトを組み立てます。
func (c *Composer) ConceptAnalysis(req ConceptRequest) (*Prompt, error) {
	data := conceptData{
		ConceptRequest: req,
		HasReferences:  len(usable(req.References)) > 0,
		Negative:       NegativeConstraints,
	}

	system, err := c.tmpl.render(templateConceptSystem, data)
	if err != nil {
		return nil, err
	}
	task, err := c.tmpl.render(templateConceptTask, data)
	if err != nil {
		return nil, err
	}

	parts := conceptReferenceParts(req.References)
	parts = append(parts, genai.NewPartFromText(task))

	return &Prompt{System: system, Parts: parts, Schema: ConceptSchema(req.Archetype)}, nil
}

// ConceptImage は分析結果からマスター画像を生成するプロンプトを組み立てます。
func (c *Composer) ConceptImage(req ConceptRequest, result ConceptAnalysis) (*Prompt, error) {
	text, err := c.tmpl.render(templateConceptImage, conceptData{
		ConceptRequest: req,
		Result:         result,
		Negative:       NegativeConstraints,
	})
	if err != nil {
		return nil, err
	}

	parts := conceptReferenceParts(req.References)
	parts = append(parts, genai.NewPartFromText(text))
	return &Prompt{Parts: parts}, nil
}

// Plan はプラン生成のプロンプトを組み立てます。
// 参照画像は配列の順序を保ったまま添字付きのタグで渡し、モデルが返す添字と配列を一致させます。
func (c *Composer) Plan(req PlanRequest) (*Prompt, error) {
	data := planData{
		PlanRequest: req,
		Language:    ResolveLanguage(req.OutputLanguage),
		Negative:    NegativeConstraints,
	}
	if req.Archetype.Roles.IsEnum() {
		roles, err := roleCatalogJSON(req.Archetype)
		if err != nil {
			return nil, err
		}
		data.Roles = roles
	}

	var parts []*genai.Part
	for i, ref := range req.References {
		if !ref.IsUsable() {
			continue
		}
		parts = appendTaggedImage(parts, ref.Data, ref.MIMEType, planReferenceTag(i, ref))
		data.ReferenceCount++
		if i == 0 {
			data.HasAnchor = true
		}
	}

	system, err := c.tmpl.render(templatePlanSystem, data)
	if err != nil {
		return nil, err
	}
	task, err := c.tmpl.render(templatePlanTask, data)
	if err != nil {
		return nil, err
	}
	parts = append(parts, genai.NewPartFromText(task))

	return &Prompt{System: system, Parts: parts, Schema: PlanSchema(req.Archetype)}, nil
}

// Image は PlanItem 1件分の画像生成プロンプトを組み立てます。
// includePrevious が true でも、アーキタイプが連続性を許可し直前画像がある場合にだけ直前画像を含めます。
// 使い道のフラグがどちらも立っていない参照画像は主参照にも補助参照にもなりません。
func (c *Composer) Image(req ImageRequest, includePrevious bool) (*Prompt, error) {
	refs := usable(req.References)
	primary := arbiter.SelectPrimary(refs, req.Analysis)
	aux := arbiter.Auxiliaries(refs, primary)
	withPrevious := includePrevious && req.ContinuityAvailable()

	data := imageData{
		ImageRequest:    req,
		Language:        ResolveLanguage(req.OutputLanguage),
		IsCover:         req.Archetype.IsCover(req.Item.Role),
		IncludePrevious: withPrevious,
		Negative:        NegativeConstraints,
	}
	if req.Archetype.Roles.IsEnum() {
		if rt, ok := catalog.FindRole(req.Item.Role); ok {
			data.Role = &roleGuide{Name: rt.Name, Description: rt.Description, CreativeFocus: rt.CreativeFocus, OutputGuide: rt.OutputGuide}
		}
	}

	text, err := c.tmpl.render(templateImage, data)
	if err != nil {
		return nil, err
	}

	var parts []*genai.Part
	if primary != nil {
		parts = appendTaggedImage(parts, primary.Data, primary.MIMEType, primaryTag(*primary))
	}
	parts = append(parts, auxiliaryParts(aux)...)
	if withPrevious {
		parts = appendTaggedImage(parts, req.PreviousImage, req.PreviousMIMEType, previousTag)
	}
	parts = append(parts, genai.NewPartFromText(text))

	return &Prompt{Parts: parts}, nil
}

// Edit は生成済み画像の局所編集プロンプトを組み立てます。
func (c *Composer) Edit(req EditRequest) (*Prompt, error) {
	refs := usable(req.References)
	primary := arbiter.SelectPrimary(refs, req.Analysis)
	aux := arbiter.Auxiliaries(refs, primary)

	text, err := c.tmpl.render(templateEdit, editData{
		EditRequest: req,
		HasPrimary:  primary != nil,
		Negative:    NegativeConstraints,
	})
	if err != nil {
		return nil, err
	}

	var parts []*genai.Part
	if primary != nil {
		parts = appendTaggedImage(parts, primary.Data, primary.MIMEType, editPrimaryTag)
	}
	parts = append(parts, auxiliaryParts(aux)...)
	parts = appendTaggedImage(parts, req.Image, req.ImageMIMEType, editTargetTag)
	parts = append(parts, genai.NewPartFromText(text))

	return &Prompt{Parts: parts}, nil
}

// conceptReferenceParts は分析前の段階で、素材参照を主参照とするタグ付き画像パートを返します。
func conceptReferenceParts(refs []domain.ReferenceImage) []*genai.Part {
	refs = usable(refs)
	primary := arbiter.SelectPrimary(refs, nil)
	if primary == nil {
		return nil
	}
	parts := appendTaggedImage(nil, primary.Data, primary.MIMEType, primaryTag(*primary))
	return append(parts, auxiliaryParts(arbiter.Auxiliaries(refs, primary))...)
}

func auxiliaryParts(aux []arbiter.Auxiliary) []*genai.Part {
	var parts []*genai.Part
	for _, a := range aux {
		parts = appendTaggedImage(parts, a.Reference.Data, a.Reference.MIMEType, auxiliaryTag(a.Usage))
	}
	return parts
}

func usable(refs []domain.ReferenceImage) []domain.ReferenceImage {
	var out []domain.ReferenceImage
	for _, r := range refs {
		if r.IsUsable() {
			out = append(out, r)
		}
	}
	return out
}

// roleCatalogJSON は列挙型の役割カタログを、定義順を保った JSON 文字列にします。
func roleCatalogJSON(a catalog.Archetype) (string, error) {
	guides := make([]roleGuide, 0, len(a.Roles.Enum))
	for _, name := range a.Roles.Enum {
		rt, ok := catalog.FindRole(name)
		if !ok {
			return "", fmt.Errorf("役割テンプレート '%s' が見つかりません", name)
		}
		guides = append(guides, roleGuide{Name: rt.Name, Description: rt.Description, CreativeFocus: rt.CreativeFocus, OutputGuide: rt.OutputGuide})
	}
	b, err := json.MarshalIndent(guides, "", "  ")
	if err != nil {
		return "", fmt.Errorf("役割テンプレートの JSON 化に失敗しました: %w", err)
	}
	return string(b), nil
}
