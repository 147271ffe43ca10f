package prompts

import (
	"github.com/shouni/go-redset-kit/pkg/catalog"

	"google.golang.org/genai"
)

// ConceptAnalysis はコンセプト分析呼び出しが返す JSON です。
type ConceptAnalysis struct {
	Analysis     string   `json:"analysis"`
	Roles        []string `json:"roles"`
	ImagePrompt  string   `json:"imagePrompt"`
	ArtDirection string   `json:"artDirection,omitempty"`
}

// PlanResponse はプラン生成呼び出しが返す JSON です。
// BestReferenceIndex は呼び出しに渡した参照画像配列の添字で、呼び出し直後に ID へ解決されます。
type PlanResponse struct {
	Analysis struct {
		Keywords           []string `json:"keywords"`
		ContentDirection   string   `json:"contentDirection"`
		StyleAnalysis      string   `json:"styleAnalysis"`
		BestReferenceIndex *int     `json:"bestReferenceIndex"`
	} `json:"analysis"`
	PlanItems []PlanItemResponse `json:"planItems"`
}

// PlanItemResponse はプランの1項目分の JSON です。
type PlanItemResponse struct {
	Order            int      `json:"order"`
	Role             string   `json:"role"`
	Description      string   `json:"description"`
	Composition      string   `json:"composition"`
	Copywriting      string   `json:"copywriting"`
	Layout           string   `json:"layout"`
	InheritanceFocus []string `json:"inheritanceFocus"`
}

func stringSchema(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

func stringArraySchema(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Description: desc, Items: &genai.Schema{Type: genai.TypeString}}
}

// ConceptSchema はコンセプト分析の出力スキーマを返します。
func ConceptSchema(a catalog.Archetype) *genai.Schema {
	s := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"analysis":    stringSchema("How the topic and the reference style are blended."),
			"roles":       stringArraySchema("Every role that must appear together in the concept image."),
			"imagePrompt": stringSchema("Detailed image generation prompt for the concept image."),
		},
		Required: []string{"analysis", "roles", "imagePrompt"},
	}
	if a.UsesArtDirection {
		s.Properties["artDirection"] = stringSchema("Reusable art direction shared by every page.")
		s.Required = append(s.Required, "artDirection")
	}
	return s
}

// PlanSchema はプラン生成の出力スキーマを返します。
// 役割が列挙型のアーキタイプでは role に enum 制約を付けます。
func PlanSchema(a catalog.Archetype) *genai.Schema {
	role := &genai.Schema{Type: genai.TypeString}
	if a.Roles.IsEnum() {
		role.Enum = append([]string(nil), a.Roles.Enum...)
	} else {
		role.Description = a.Roles.Cover + ", " + a.PageRole(1) + ", " + a.PageRole(2) + ", etc."
	}

	item := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"order":            {Type: genai.TypeInteger},
			"role":             role,
			"description":      stringSchema("Scene or storyboard description."),
			"composition":      stringSchema("Composition and framing."),
			"copywriting":      stringSchema("On-image text in the output language."),
			"layout":           stringSchema("Text placement and hierarchy."),
			"inheritanceFocus": stringArraySchema("Visual elements carried over from sibling items."),
		},
		Required: []string{"order", "role", "description", "composition", "copywriting", "layout", "inheritanceFocus"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"analysis": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"keywords":           stringArraySchema("Core keywords."),
					"contentDirection":   stringSchema("Overall narrative or content flow."),
					"styleAnalysis":      stringSchema("Overall visual style analysis."),
					"bestReferenceIndex": {Type: genai.TypeInteger, Description: "Array index of the reference image that best represents the global style."},
				},
				Required: []string{"keywords", "contentDirection", "styleAnalysis"},
			},
			"planItems": {Type: genai.TypeArray, Items: item},
		},
		Required: []string{"analysis", "planItems"},
	}
}
