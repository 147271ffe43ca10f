package prompts

import (
	"fmt"
	"net/http"

	"github.com/shouni/go-redset-kit/pkg/arbiter"
	"github.com/shouni/go-redset-kit/pkg/domain"

	"google.golang.org/genai"
)

// NegativeConstraints は、すべての生成指示の末尾に付ける禁止事項です。
// 構成用のラベルは作者向けであり、画面に描かせないためのものです。
const NegativeConstraints = `### NEGATIVE CONSTRAINTS ###
- Never render page numbers, "Page 1", "Panel 1", headers, footers or section labels on the canvas.
- The section headings and labels in this instruction are for the author only; never draw them as text.
- Do not add UI elements, watermarks, signatures or annotations.`

func usageLabel(u arbiter.Usage) string {
	switch u {
	case arbiter.UsageMaterial:
		return "MATERIAL: shape, identity, product content"
	case arbiter.UsageStyle:
		return "STYLE: lighting, color, rendering"
	default:
		return "MATERIAL + STYLE"
	}
}

func primaryTag(ref domain.ReferenceImage) string {
	return fmt.Sprintf("[PRIMARY REFERENCE · %s] This is the identity and style anchor of the project, so faces, hairstyle, costume, body proportions, product shape, line style, coloring and palette in every output must match it closely.",
		usageLabel(arbiter.UsageOf(ref)))
}

func auxiliaryTag(u arbiter.Usage) string {
	switch u {
	case arbiter.UsageMaterial:
		return "[AUXILIARY REFERENCE · MATERIAL] Use this image only for secondary subject shape, product details and props, never overriding the identity or style of the primary reference."
	case arbiter.UsageStyle:
		return "[AUXILIARY REFERENCE · STYLE] Use this image only for lighting, color and material hints, never overriding the identity or style of the primary reference."
	default:
		return "[AUXILIARY REFERENCE · MATERIAL + STYLE] Use this image for secondary subject details and lighting hints, never overriding the identity or style of the primary reference."
	}
}

const previousTag = "[PREVIOUS GENERATED IMAGE] Use this image only for shot continuity, scene layout and recurring props, while style and identity still follow the primary reference rather than its accidental deviations."

const editPrimaryTag = "[CORE IDENTITY REFERENCE] Keep the faces, hairstyle, costume, logo and shape of the person or product in this image exactly, so the edit never changes its identity."

const editTargetTag = "[IMAGE TO EDIT] Apply the edit instruction that follows to this image only."

func planReferenceTag(index int, ref domain.ReferenceImage) string {
	role := "Supporting reference"
	if index == 0 {
		role = "Confirmed style anchor candidate"
	}
	return fmt.Sprintf("[REFERENCE INDEX %d · %s] %s for this plan.", index, usageLabel(arbiter.UsageOf(ref)), role)
}

// imagePart は画像バイト列を Part に変換します。MIME タイプが空ならバイト列から推定します。
func imagePart(data []byte, mimeType string) *genai.Part {
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return genai.NewPartFromBytes(data, mimeType)
}

// appendTaggedImage は画像と、その直後のタグ文を追加します。
func appendTaggedImage(parts []*genai.Part, data []byte, mimeType, tag string) []*genai.Part {
	return append(parts, imagePart(data, mimeType), genai.NewPartFromText(tag))
}
