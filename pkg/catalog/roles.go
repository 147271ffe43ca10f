package catalog

// RoleTemplate はソーシャル画像の役割ごとのレイアウト指針です。
type RoleTemplate struct {
	Name          string   `json:"-"`
	Description   string   `json:"description"`
	CreativeFocus string   `json:"creativeFocus"`
	OutputGuide   []string `json:"outputGuide"`
}

// SocialCoverRole はソーシャル画像プランの先頭に1回だけ置く封面の役割名です。
const SocialCoverRole = "封面大片"

// socialRoles は定義順を保持した役割テンプレート一覧です。先頭は必ず封面です。
var socialRoles = []RoleTemplate{
	// 品牌商业 / 高级产品
	{
		Name:          SocialCoverRole,
		Description:   "Brand key-visual cover that sets the tone for the whole set.",
		CreativeFocus: "Hero subject and brand mood readable at a glance; strong impact, minimal information.",
		OutputGuide: []string{
			"Keep the top 35-45% clean (sky or smooth gradient)",
			"Product centered or slightly below center, occupying 40-60% of the frame",
			"Reserve a clear area for one main title and one short subtitle; no clusters of small text",
		},
	},
	{
		Name:          "产品主图",
		Description:   "Authoritative hero shot of a single product, stressing form and finish.",
		CreativeFocus: "The viewer recognizes what the product looks like and its character within one second.",
		OutputGuide: []string{
			"Product centered or slightly low, occupying 50-70% of the frame",
			"Simple background structure; window frames or soft depth allowed but never dominant",
			"Leave a little space at one side or the bottom for the product name and 1-2 key points",
		},
	},
	{
		Name:          "系列展示",
		Description:   "Several products in one frame, stressing series identity and family resemblance.",
		CreativeFocus: "The viewer perceives a complete series rather than scattered items.",
		OutputGuide: []string{
			"Arrange 2-4 products symmetrically or rhythmically with even spacing",
			"Simple geometric framing may unify the set; avoid heavy decoration",
			"Leave clear space at the top or middle for the series name or claim",
		},
	},
	{
		Name:          "卖点详解",
		Description:   "Information layout breaking down the selling points around a core product.",
		CreativeFocus: "3-5 key points understood quickly in a scannable structure.",
		OutputGuide: []string{
			"Product still and centered at a moderate 40-60% of the frame",
			"Information columns on the left and right, 1-3 short labels per side, optional small icons",
			"Clean light gradient or subtle texture background without extra decoration",
		},
	},
	{
		Name:          "工艺细节",
		Description:   "Close-up that magnifies material, texture and craftsmanship.",
		CreativeFocus: "Convey refined workmanship and attention to detail.",
		OutputGuide: []string{
			"Crop boldly to the key detail, filling over 60% of the frame",
			"Shallow depth of field with a soft background in neutral or theme-matched tones",
			"Keep a narrow strip at one side for 1-2 short lines of text",
		},
	},
	{
		Name:          "购买指南",
		Description:   "Shopping-guide layout focused on how to choose and buy.",
		CreativeFocus: "Help the decision by combining products with price or benefit information.",
		OutputGuide: []string{
			"Several products in one or two rows with a clear hierarchy",
			"Reserve the bottom 25-35% for a price or offer band",
			"A short title at the top such as a buying tip or bundle comparison; no long paragraphs",
		},
	},
	{
		Name:          "品牌故事",
		Description:   "Atmospheric scene with props that tells brand culture and emotion.",
		CreativeFocus: "The viewer feels the brand's character, heritage or lifestyle.",
		OutputGuide: []string{
			"Product at the left or right third and clearly visible",
			"A vertical copy area on the other side for 2-4 lines of story text",
			"Few props with a unified theme; lighting mood consistent with the brand",
		},
	},
	{
		Name:          "引导关注",
		Description:   "Closing call-to-action card prompting follow, add friend or visit store.",
		CreativeFocus: "The next step is obvious and the instruction is explicit.",
		OutputGuide: []string{
			"Solid or lightly textured background, as simple as possible",
			"A large CTA copy area in the middle or lower part",
			"At most one small icon or product thumbnail",
		},
	},

	// 人物 / 目录 / 空间 / 信息图
	{
		Name:          "人物展示",
		Description:   "Half-body or bust portrait highlighting face and upper-body detail.",
		CreativeFocus: "Emphasize the person's aura, makeup, accessories or relation to the product.",
		OutputGuide:   []string{"Person centered or slightly to one side, upper body around 50% of the frame", "Space at the other side or top for text", "Blurred, softly layered background"},
	},
	{
		Name:          "动态抓拍",
		Description:   "Candid shot with a sense of motion and real-life atmosphere.",
		CreativeFocus: "Natural, unposed feeling that builds closeness.",
		OutputGuide:   []string{"Subject to one side, motion direction matching the empty space", "Slight motion blur allowed", "Keep 20-30% clean space at one side"},
	},
	{
		Name:          "整体展示",
		Description:   "Full-body or overall look for outfits, posture or space.",
		CreativeFocus: "Show the complete effect, such as a whole outfit.",
		OutputGuide:   []string{"Full body completely in frame", "Person placed to one side", "Tidy background"},
	},
	{
		Name:          "情绪特写",
		Description:   "Close emotional shot of a face or a gesture.",
		CreativeFocus: "Amplify emotion and tension so the viewer resonates.",
		OutputGuide:   []string{"Focus on the expression or key gesture", "Simple soft background", "Small area reserved for a short line"},
	},
	{
		Name:          "材质细节",
		Description:   "Large texture or material backdrop used as an information base.",
		CreativeFocus: "Make the viewer feel how it would feel to the touch.",
		OutputGuide:   []string{"Texture fills the frame", "A cleaner area at the top or center", "Soft color layering", "No unrelated objects"},
	},
	{
		Name:          "使用场景",
		Description:   "The product in use within a real or staged scene.",
		CreativeFocus: "Help the viewer imagine themselves using it.",
		OutputGuide:   []string{"Product or set clearly visible", "A corner reserved for steps or notes", "Limited environmental props"},
	},
	{
		Name:          "包装展示",
		Description:   "Dedicated shot of the box, bottle or other packaging.",
		CreativeFocus: "Highlight packaging design, opening structure and layering.",
		OutputGuide:   []string{"Packaging in the lower half of the frame", "Title area at the top", "Supporting props neatly arranged"},
	},
	{
		Name:          "产品全景",
		Description:   "Standard catalog hero suitable for listings and detail pages.",
		CreativeFocus: "Show the whole product clearly and without distraction.",
		OutputGuide:   []string{"Product centered or slightly high", "Solid or soft gradient background", "Space reserved above and below", "Crisp silhouette"},
	},
	{
		Name:          "环境展示",
		Description:   "Wide shot of a space introducing a store or scene atmosphere.",
		CreativeFocus: "Convey what kind of space this is.",
		OutputGuide:   []string{"Main building or space in the middle band", "Horizontal strips left at top and bottom", "Clear structural lines"},
	},
	{
		Name:          "广角全景",
		Description:   "Ultra-wide panorama stressing open views or a striking scene.",
		CreativeFocus: "Create a blockbuster feel for vlog covers or scene intros.",
		OutputGuide:   []string{"Stable horizon", "Title band in the middle or upper area", "Subject need not be large but layers must read clearly"},
	},
	{
		Name:          "角落一隅",
		Description:   "Refined composition of a small corner expressing everyday delicacy.",
		CreativeFocus: "A sense of a small beauty just discovered.",
		OutputGuide:   []string{"Focus concentrated in one corner", "Empty space along the opposite diagonal", "Few, carefully chosen elements"},
	},
	{
		Name:          "门头展示",
		Description:   "Frontal view of a storefront or building entrance.",
		CreativeFocus: "The viewer clearly remembers the facade and signboard text.",
		OutputGuide:   []string{"Frontal or slight perspective", "Space reserved above", "Signboard text legible"},
	},
	{
		Name:          "步骤演示",
		Description:   "Step-by-step demonstration of an operation or process.",
		CreativeFocus: "Clear logic; the sequence is obvious at a glance.",
		OutputGuide:   []string{"Hands or product in the upper middle", "Margins left for step numbers", "Only one action per image"},
	},
	{
		Name:          "对比展示",
		Description:   "Split layout comparing before and after, good and bad, or sizes.",
		CreativeFocus: "Strengthen the before-versus-after or A-versus-B contrast.",
		OutputGuide:   []string{"Symmetric split screen", "A divider line in the middle", "One core object per side"},
	},
	{
		Name:          "核心卖点",
		Description:   "Layout around a single product stressing 3-5 key selling points.",
		CreativeFocus: "The viewer remembers why to buy it at a glance.",
		OutputGuide:   []string{"Large product share", "Selling points distributed as callouts", "Keep to 3-5 points"},
	},
	{
		Name:          "图文详解",
		Description:   "Text-heavy mixed layout for detailed explanations or tutorials.",
		CreativeFocus: "Carry more information while staying clean and orderly.",
		OutputGuide:   []string{"Main image placed in one corner", "Over 60% of the area for typeset text", "Text grouped in blocks", "Simple background"},
	},
}

// SocialRoles は役割テンプレートを定義順で返します。
func SocialRoles() []RoleTemplate {
	out := make([]RoleTemplate, len(socialRoles))
	copy(out, socialRoles)
	return out
}

// SocialRoleNames は JSON スキーマの enum に使う役割名一覧を返します。
func SocialRoleNames() []string {
	names := make([]string, len(socialRoles))
	for i, r := range socialRoles {
		names[i] = r.Name
	}
	return names
}

// FindRole は役割名からテンプレートを探します。
func FindRole(name string) (RoleTemplate, bool) {
	for _, r := range socialRoles {
		if r.Name == name {
			return r, true
		}
	}
	return RoleTemplate{}, false
}
