package domain

import (
	"bytes"

	"github.com/google/uuid"
)

// ReferenceImage は、生成の入力として使えるアップロード画像または AI 生成画像です。
// UsableAsMaterial は被写体・アイデンティティの素材として、UsableAsStyle は光・色・画風の参照として扱うかを示します。
type ReferenceImage struct {
	ID               string `json:"id"`
	Data             []byte `json:"-"`
	MIMEType         string `json:"mime_type"`
	UsableAsMaterial bool   `json:"usable_as_material"`
	UsableAsStyle    bool   `json:"usable_as_style"`
}

// NewReferenceImage は新しい ID を採番した ReferenceImage を生成します。
func NewReferenceImage(data []byte, mimeType string, material, style bool) ReferenceImage {
	return ReferenceImage{
		ID:               uuid.NewString(),
		Data:             data,
		MIMEType:         mimeType,
		UsableAsMaterial: material,
		UsableAsStyle:    style,
	}
}

// IsUsable は、少なくとも一方のフラグが立っているかを返します。
// どちらも false の参照画像は生成入力から除外されます。
func (r ReferenceImage) IsUsable() bool {
	return r.UsableAsMaterial || r.UsableAsStyle
}

// Clone はバイト列まで含めたディープコピーを返します。
func (r ReferenceImage) Clone() ReferenceImage {
	c := r
	c.Data = bytes.Clone(r.Data)
	return c
}

// References は ReferenceImage のスライスです。
type References []ReferenceImage

// Clone はすべての要素をディープコピーした新しいスライスを返します。
func (rs References) Clone() References {
	if rs == nil {
		return nil
	}
	out := make(References, len(rs))
	for i, r := range rs {
		out[i] = r.Clone()
	}
	return out
}

// FindByID は ID に一致する参照画像を返します。見つからなければ nil です。
func (rs References) FindByID(id string) *ReferenceImage {
	if id == "" {
		return nil
	}
	for i := range rs {
		if rs[i].ID == id {
			return &rs[i]
		}
	}
	return nil
}
