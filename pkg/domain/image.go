package domain

import "bytes"

// ImageStatus は生成画像のライフサイクル状態です。
// 失敗は永続化せず、直前の状態に戻します。
type ImageStatus string

const (
	StatusPending    ImageStatus = "pending"
	StatusGenerating ImageStatus = "generating"
	StatusCompleted  ImageStatus = "completed"
)

// GeneratedImage は PlanItem ひとつ分の生成結果です。ID は元の PlanItem と一致します。
type GeneratedImage struct {
	ID          string      `json:"id"`
	PlanItem    PlanItem    `json:"plan_item"`
	Data        []byte      `json:"-"`
	MIMEType    string      `json:"mime_type"`
	Status      ImageStatus `json:"status"`
	EditHistory []string    `json:"edit_history"`
}

// NewPendingImage は未生成状態の GeneratedImage を作ります。
func NewPendingImage(item PlanItem) GeneratedImage {
	return GeneratedImage{
		ID:          item.ID,
		PlanItem:    item.Clone(),
		Status:      StatusPending,
		EditHistory: []string{},
	}
}

// NewCompletedImage は生成直後の GeneratedImage を作ります。履歴は空です。
func NewCompletedImage(item PlanItem, data []byte, mimeType string) GeneratedImage {
	return GeneratedImage{
		ID:          item.ID,
		PlanItem:    item.Clone(),
		Data:        data,
		MIMEType:    mimeType,
		Status:      StatusCompleted,
		EditHistory: []string{},
	}
}

// HasData は画像バイト列を保持しているかを返します。
func (g GeneratedImage) HasData() bool {
	return len(g.Data) > 0
}

// ApplyEdit は編集結果で画像を置き換え、履歴に指示を1件だけ追加します。
func (g *GeneratedImage) ApplyEdit(data []byte, mimeType, instruction string) {
	g.Data = data
	if mimeType != "" {
		g.MIMEType = mimeType
	}
	g.EditHistory = append(g.EditHistory, instruction)
	g.Status = StatusCompleted
}

// Clone はバイト列と履歴を含めたディープコピーを返します。
func (g GeneratedImage) Clone() GeneratedImage {
	c := g
	c.PlanItem = g.PlanItem.Clone()
	c.Data = bytes.Clone(g.Data)
	c.EditHistory = append([]string{}, g.EditHistory...)
	return c
}
