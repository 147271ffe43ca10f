package prompts

import (
	_ "embed"
)

const (
	templateConceptSystem = "concept_system"
	templateConceptTask   = "concept_task"
	templateConceptImage  = "concept_image"
	templatePlanSystem    = "plan_system"
	templatePlanTask      = "plan_task"
	templateImage         = "image"
	templateEdit          = "edit"
)

var (
	//go:embed templates/concept_system.md
	conceptSystemPrompt string
	//go:embed templates/concept_task.md
	conceptTaskPrompt string
	//go:embed templates/concept_image.md
	conceptImagePrompt string
	//go:embed templates/plan_system.md
	planSystemPrompt string
	//go:embed templates/plan_task.md
	planTaskPrompt string
	//go:embed templates/image.md
	imagePrompt string
	//go:embed templates/edit.md
	editPrompt string
)

// templateSources はテンプレート名と埋め込み文字列を紐づけるマップです。
var templateSources = map[string]string{
	templateConceptSystem: conceptSystemPrompt,
	templateConceptTask:   conceptTaskPrompt,
	templateConceptImage:  conceptImagePrompt,
	templatePlanSystem:    planSystemPrompt,
	templatePlanTask:      planTaskPrompt,
	templateImage:         imagePrompt,
	templateEdit:          editPrompt,
}

// conceptData は concept_* テンプレートに渡すデータです。
type conceptData struct {
	ConceptRequest
	HasReferences bool
	Result        ConceptAnalysis
	Negative      string
}

// planData は plan_* テンプレートに渡すデータです。
type planData struct {
	PlanRequest
	Language       string
	Roles          string
	ReferenceCount int
	// HasAnchor は添字 0 の参照画像が使用可能で、プロンプトに含まれているかです。
	HasAnchor bool
	Negative  string
}

// imageData は image テンプレートに渡すデータです。
type imageData struct {
	ImageRequest
	Language        string
	IsCover         bool
	Role            *roleGuide
	IncludePrevious bool
	Negative        string
}

// editData は edit テンプレートに渡すデータです。
type editData struct {
	EditRequest
	HasPrimary bool
	Negative   string
}

type roleGuide struct {
	Name          string   `json:"role"`
	Description   string   `json:"description"`
	CreativeFocus string   `json:"creativeFocus"`
	OutputGuide   []string `json:"outputGuide"`
}
