package workflow

import (
	"fmt"
	"strings"

	"github.com/shouni/go-redset-kit/pkg/catalog"
	"github.com/shouni/go-redset-kit/pkg/domain"
)

// Step はワークフローの現在の工程です。
type Step string

const (
	StepInput      Step = "input"
	StepConcept    Step = "concept"
	StepPlanReview Step = "plan_review"
	StepGenerating Step = "generating"
	StepEditor     Step = "editor"
	StepExport     Step = "export"
)

// Brief は制作の前提となるトピックと出力条件です。
type Brief struct {
	Topic          string
	Archetype      catalog.Kind
	OutputLanguage string
	// AspectRatio が空ならアーキタイプの既定値を使います。
	AspectRatio string
}

// PlanItemUpdate は PlanItem の部分更新です。nil の項目は変更しません。
// Role はアーキタイプの役割カタログで許される値に限られ、表紙の役割は先頭の項目だけが持てます。
type PlanItemUpdate struct {
	Role             *string
	Description      *string
	Composition      *string
	Copy             *string
	LayoutSuggestion *string
	// InheritanceFocus が nil でなければ丸ごと置き換えます。
	InheritanceFocus []string
}

// validateRole は index 番目の項目の役割を role に変えてよいかを確かめます。
func (u PlanItemUpdate) validateRole(a catalog.Archetype, index int, current string) error {
	if u.Role == nil {
		return nil
	}
	role := strings.TrimSpace(*u.Role)
	if !a.Roles.Allows(role) {
		return fmt.Errorf("%w: 役割 %q は %s では使えません", domain.ErrInvalidPlanEdit, role, a.Kind)
	}
	switch {
	case index > 0 && a.IsCover(role):
		return fmt.Errorf("%w: 表紙の役割 %q は先頭の項目だけに使えます", domain.ErrInvalidPlanEdit, role)
	case index == 0 && a.IsCover(current) && !a.IsCover(role):
		return fmt.Errorf("%w: 先頭の項目は表紙の役割のままにしてください", domain.ErrInvalidPlanEdit)
	}
	return nil
}

func (u PlanItemUpdate) apply(item *domain.PlanItem) {
	if u.Role != nil {
		item.Role = strings.TrimSpace(*u.Role)
	}
	if u.Description != nil {
		item.Description = *u.Description
	}
	if u.Composition != nil {
		item.Composition = *u.Composition
	}
	if u.Copy != nil {
		item.Copy = *u.Copy
	}
	if u.LayoutSuggestion != nil {
		item.LayoutSuggestion = *u.LayoutSuggestion
	}
	if u.InheritanceFocus != nil {
		item.InheritanceFocus = append([]string{}, u.InheritanceFocus...)
	}
}

// Progress は一括生成で1件処理するたびに通知される進捗です。
type Progress struct {
	// Index は 1 始まりの位置です。
	Index int
	Total int
	Image domain.GeneratedImage
	Err   error
}
