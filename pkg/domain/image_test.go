package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratedImage_ApplyEdit(t *testing.T) {
	t.Run("編集成功で履歴が1件だけ増え、画像が置き換わること", func(t *testing.T) {
		img := NewCompletedImage(PlanItem{ID: "p1", Order: 1}, []byte("old"), "image/jpeg")
		img.ApplyEdit([]byte("new"), "", "make it brighter")

		assert.Equal(t, []byte("new"), img.Data)
		assert.Equal(t, "image/jpeg", img.MIMEType)
		assert.Equal(t, []string{"make it brighter"}, img.EditHistory)
		assert.Equal(t, StatusCompleted, img.Status)

		img.ApplyEdit([]byte("newer"), "image/png", "add a cup")
		assert.Equal(t, []string{"make it brighter", "add a cup"}, img.EditHistory)
		assert.Equal(t, "image/png", img.MIMEType)
	})
}

func TestGeneratedImage_Clone(t *testing.T) {
	t.Run("クローンへの変更が元に影響しないこと", func(t *testing.T) {
		img := NewCompletedImage(PlanItem{ID: "p1", InheritanceFocus: []string{"color"}}, []byte("abc"), "image/jpeg")
		img.EditHistory = append(img.EditHistory, "first")

		c := img.Clone()
		c.Data[0] = 'z'
		c.EditHistory[0] = "changed"
		c.PlanItem.InheritanceFocus[0] = "pose"

		assert.Equal(t, []byte("abc"), img.Data)
		assert.Equal(t, "first", img.EditHistory[0])
		assert.Equal(t, "color", img.PlanItem.InheritanceFocus[0])
	})
}

func TestReferences(t *testing.T) {
	refs := References{
		{ID: "a", Data: []byte{1}, UsableAsStyle: true},
		{ID: "b", Data: []byte{2}},
	}

	t.Run("FindByID", func(t *testing.T) {
		assert.Equal(t, "b", refs.FindByID("b").ID)
		assert.Nil(t, refs.FindByID("x"))
		assert.Nil(t, refs.FindByID(""))
	})

	t.Run("IsUsable はどちらかのフラグで true になること", func(t *testing.T) {
		assert.True(t, refs[0].IsUsable())
		assert.False(t, refs[1].IsUsable())
	})

	t.Run("Clone はバイト列までコピーすること", func(t *testing.T) {
		c := refs.Clone()
		c[0].Data[0] = 9
		c[1].ID = "changed"
		assert.Equal(t, byte(1), refs[0].Data[0])
		assert.Equal(t, "b", refs[1].ID)
	})

	t.Run("NewReferenceImage は ID を採番すること", func(t *testing.T) {
		r := NewReferenceImage([]byte{1}, "image/png", true, true)
		assert.NotEmpty(t, r.ID)
		assert.True(t, r.UsableAsMaterial)
		assert.True(t, r.UsableAsStyle)
	})
}
