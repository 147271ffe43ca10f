package domain

// PlanAnalysis はひとつのプランに対するモデルのクリエイティブ分析結果です。
// BestReferenceID はプラン生成時に解決済みの ID で、インデックスは保持しません。
type PlanAnalysis struct {
	Keywords         []string `json:"keywords"`
	ContentDirection string   `json:"content_direction"`
	StyleAnalysis    string   `json:"style_analysis"`
	BestReferenceID  string   `json:"best_reference_id,omitempty"`
	ArtDirection     string   `json:"art_direction,omitempty"`
}

// Clone はスライスを含めたコピーを返します。
func (a *PlanAnalysis) Clone() *PlanAnalysis {
	if a == nil {
		return nil
	}
	c := *a
	c.Keywords = append([]string(nil), a.Keywords...)
	return &c
}

// PlanItem は1枚分（画像・スライド・漫画ページ）の生成単位です。
type PlanItem struct {
	ID               string   `json:"id"`
	Order            int      `json:"order"`
	Role             string   `json:"role"`
	Description      string   `json:"description"`
	Composition      string   `json:"composition"`
	Copy             string   `json:"copy,omitempty"`
	LayoutSuggestion string   `json:"layout_suggestion,omitempty"`
	InheritanceFocus []string `json:"inheritance_focus,omitempty"`
}

// Clone は InheritanceFocus を含めたコピーを返します。
func (p PlanItem) Clone() PlanItem {
	c := p
	c.InheritanceFocus = append([]string(nil), p.InheritanceFocus...)
	return c
}

// Plan は順序付きの PlanItem 列です。
type Plan []PlanItem
