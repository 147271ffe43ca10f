package catalog

import (
	"fmt"
	"strings"
)

// Kind は出力アーキタイプの識別子です。値は Kinds() が返す3種に閉じています。
type Kind string

const (
	KindSocial Kind = "social"
	KindSlides Kind = "slides"
	KindComic  Kind = "comic"
)

// RoleCatalog は、プランの role に使える値の定義です。
// Enum が空でなければ role はその中から選ばせ、空なら Cover と PageFormat による自由形式です。
type RoleCatalog struct {
	Enum       []string
	Cover      string
	PageFormat string
}

// IsEnum は role が列挙値に制限されているかを返します。
func (rc RoleCatalog) IsEnum() bool {
	return len(rc.Enum) > 0
}

// Allows は role がカタログ上有効かを返します。自由形式の場合は空文字以外を許可します。
func (rc RoleCatalog) Allows(role string) bool {
	if !rc.IsEnum() {
		return strings.TrimSpace(role) != ""
	}
	for _, r := range rc.Enum {
		if r == role {
			return true
		}
	}
	return false
}

// ItemRange はプランの枚数範囲です。
type ItemRange struct {
	Min int
	Max int
}

// Archetype はアーキタイプ1種分のペルソナ・構図ルール・文字ルール・連続性可否・役割カタログをまとめたレコードです。
type Archetype struct {
	Kind  Kind
	Label string

	ConceptPersona    string
	ConceptRules      []string
	ConceptSheet      string
	ConceptImageRules []string

	PlanPersona string
	PlanRules   []string
	ItemRange   ItemRange

	ImagePersona     string
	CompositionRules []string
	CoverRules       []string
	TextRules        []string
	DefaultStyle     string
	PhotoNote        string

	// AllowContinuity が false のアーキタイプでは、直前の生成画像をリクエストに含めません。
	AllowContinuity  bool
	UsesArtDirection bool
	Roles            RoleCatalog

	DefaultAspectRatio string
}

// IsCover は role がこのアーキタイプの表紙役割かを判定します。
func (a Archetype) IsCover(role string) bool {
	role = strings.TrimSpace(role)
	if a.Roles.IsEnum() {
		return role == a.Roles.Cover
	}
	return strings.EqualFold(role, a.Roles.Cover) || role == "封面"
}

// PageRole は自由形式カタログで n ページ目の役割名を返します。
func (a Archetype) PageRole(n int) string {
	if a.Roles.PageFormat == "" {
		return ""
	}
	return fmt.Sprintf(a.Roles.PageFormat, n)
}

var archetypes = map[Kind]Archetype{
	KindSocial: {
		Kind:           KindSocial,
		Label:          "short-form social image set (Xiaohongshu style)",
		ConceptPersona: "You are a world-class Visual Director defining the Master Visual Identity (key visual) for a set of social media images.",
		ConceptRules: []string{
			"SUBJECT / CONTENT comes strictly from the user's topic and the references tagged as MATERIAL.",
			"STYLE / AESTHETICS comes strictly from the references tagged as STYLE.",
			"Visualize the subject wearing the style; do not merely describe a reference image.",
			"Identify every role the campaign needs (hero product, model or spokesperson, key props) and stage them together in one frame.",
		},
		ConceptSheet: "commercial Key Visual (KV)",
		ConceptImageRules: []string{
			"Use MATERIAL images for shape and identity.",
			"Use STYLE images for lighting, colors and rendering style.",
			"High quality professional photography or 3D render.",
			"Keep the top 30% clean for a later text overlay.",
		},
		PlanPersona: "You are the Creative Director and layout designer for a commercial image set published on Xiaohongshu.",
		PlanRules: []string{
			"Plan layout first and style second: decide role, layout structure, copy and copy position for every image.",
			"Think in four layers: background, props or stage, main subject, and a typeset text layer.",
			"Pick the content archetype that fits the topic: brand/premium product, people/lifestyle, catalog/food/electronics, space/store visit, or infographic/tutorial.",
			"Every role must come from the role template list; the first item (order 1) must be the cover role and it appears exactly once.",
			"A complete set flows from cover to selling points to scenes to details to a closing call to action.",
		},
		ItemRange:    ItemRange{Min: 6, Max: 9},
		ImagePersona: "You are a world-class commercial product CGI artist and photographer.",
		CompositionRules: []string{
			"Single focal subject per image with deliberate empty space for typography.",
			"High quality commercial rendering with crisp detail and minimal noise.",
			"The primary reference defines lighting type and direction, color temperature and saturation, and how materials such as metal, ceramic, glass or fabric are rendered.",
			"Keep that style and change only composition and content; never invent a new style.",
		},
		TextRules: []string{
			"Render the planned copy as real typography: main title, subtitle and short selling-point lines matching the empty-space structure.",
		},
		DefaultStyle:       "standard commercial visual style anchored on the primary reference",
		AllowContinuity:    true,
		Roles:              RoleCatalog{Enum: SocialRoleNames(), Cover: SocialCoverRole},
		DefaultAspectRatio: "3:4",
	},
	KindSlides: {
		Kind:           KindSlides,
		Label:          "slide-deck pages",
		ConceptPersona: "You are a presentation Art Director defining the master look of a slide deck.",
		ConceptRules: []string{
			"SUBJECT / CONTENT comes from the user's topic and the references tagged as MATERIAL.",
			"STYLE comes from the references tagged as STYLE: palette, typography mood, illustration or photo treatment.",
			"Define a reusable art direction that keeps every slide visually consistent: background system, accent colors, title placement and image treatment.",
			"Identify the recurring visual elements (hero object, icon family, character) and show them together in one master slide.",
		},
		ConceptSheet: "master title slide",
		ConceptImageRules: []string{
			"Use MATERIAL images for the recurring subject.",
			"Use STYLE images for palette and rendering.",
			"Large clean title area; body areas may be simplified to neutral placeholder blocks.",
		},
		PlanPersona: "You are a presentation designer turning a topic into a coherent slide deck.",
		PlanRules: []string{
			"The first item is the title slide with role \"Cover\"; following items are \"Page 1\", \"Page 2\" and so on.",
			"Each slide has one message: a title plus short body points, never a wall of text.",
			"Every slide must follow the shared art direction so the deck reads as one design system.",
		},
		ItemRange:    ItemRange{Min: 5, Max: 10},
		ImagePersona: "You are a senior presentation designer producing one finished slide.",
		CompositionRules: []string{
			"Title plus body layout: a clear title zone and a body zone with a supporting visual.",
			"Keep the background system, margins and accent colors identical to the primary reference.",
		},
		CoverRules: []string{
			"Title slide: a large title, an optional subtitle and the hero visual; no body text.",
		},
		TextRules: []string{
			"The slide title and the key numbers must be rendered legibly.",
			"Longer body copy may be simplified to tidy placeholder text blocks.",
		},
		DefaultStyle:       "clean presentation style anchored on the primary reference",
		AllowContinuity:    true,
		UsesArtDirection:   true,
		Roles:              RoleCatalog{Cover: "Cover", PageFormat: "Page %d"},
		DefaultAspectRatio: "16:9",
	},
	KindComic: {
		Kind:           KindComic,
		Label:          "sequential illustrated science comic",
		ConceptPersona: "You are the Lead Character Designer for a science comic, creating the Master Character and Style Sheet.",
		ConceptRules: []string{
			"CHARACTER / OBJECT roles come from the user's topic and the references tagged as MATERIAL.",
			"ART STYLE comes from the references tagged as STYLE.",
			"Create characters that fit the topic, drawn in the style of the references.",
			"Identify every character the topic needs (presenter, student audience, mascot or tool) and draw them all together in one sheet.",
		},
		ConceptSheet: "Master Character Sheet",
		ConceptImageRules: []string{
			"Use STYLE images for line weight and shading.",
			"Full body, neutral or welcoming poses, all characters together.",
			"Clean neutral background, no text, no panels.",
		},
		PlanPersona: "You are a storyboard expert for educational comics. Each knowledge point becomes one vertical comic page.",
		PlanRules: []string{
			"The first item must be the cover with role \"Cover\"; following items are \"Page 1\", \"Page 2\" and so on.",
			"The cover has a big title, the main characters and poster-like appeal.",
			"Each inner page describes three or more panels with composition, every line of dialogue or narration, and the lettering layout.",
			"Fixed style: cartoon, bright, clean lines, suitable for middle-school readers.",
			"Scientific terms are bold; information must be accurate, easy and fun.",
		},
		ItemRange:    ItemRange{Min: 4, Max: 10},
		ImagePersona: "You are a professional educational comic artist creating clear, fun science comics for teenagers.",
		CompositionRules: []string{
			"Vertical multi-panel page; split panels exactly as Panel 1, Panel 2 and so on in the description.",
			"Every panel has a clear subject and action with room for speech bubbles and narration boxes.",
			"Line weight, coloring method and palette must match the primary reference like pages of the same serialized comic.",
			"Faces, hair and costume details match the primary reference exactly; composition, pose, expression and scene may change.",
		},
		CoverRules: []string{
			"Comic volume cover or poster: one full-page illustration, no panel grid.",
			"Main characters in the center with lively, exaggerated action.",
			"Reserve a prominent title area at the top or bottom.",
		},
		TextRules: []string{
			"Dialogue and narration appear only inside speech bubbles and narration boxes; no extra paragraphs.",
		},
		DefaultStyle:       "standard science comic style anchored on the primary reference",
		PhotoNote:          "If a reference is a real photograph, extract only character features and scene ideas and draw them in the comic style of the primary reference.",
		AllowContinuity:    false,
		Roles:              RoleCatalog{Cover: "Cover", PageFormat: "Page %d"},
		DefaultAspectRatio: "3:4",
	},
}

// Lookup は Kind に対応する Archetype を返します。
func Lookup(kind Kind) (Archetype, error) {
	a, ok := archetypes[Kind(strings.ToLower(strings.TrimSpace(string(kind))))]
	if !ok {
		return Archetype{}, fmt.Errorf("unknown archetype %q (want one of %v)", kind, Kinds())
	}
	return a, nil
}

// MustLookup は Lookup の panic 版です。既知の定数に対してのみ使います。
func MustLookup(kind Kind) Archetype {
	a, err := Lookup(kind)
	if err != nil {
		panic(err)
	}
	return a
}

// Kinds は定義済みのアーキタイプ一覧を固定順で返します。
func Kinds() []Kind {
	return []Kind{KindSocial, KindSlides, KindComic}
}
