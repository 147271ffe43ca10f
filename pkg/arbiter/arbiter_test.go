package arbiter

import (
	"testing"

	"github.com/shouni/go-redset-kit/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ref(id string, material, style bool) domain.ReferenceImage {
	return domain.ReferenceImage{ID: id, Data: []byte(id), MIMEType: "image/png", UsableAsMaterial: material, UsableAsStyle: style}
}

func TestSelectPrimary(t *testing.T) {
	t.Run("BestReferenceID に一致すればフラグや位置に関係なく選ばれること", func(t *testing.T) {
		refs := []domain.ReferenceImage{ref("a", true, true), ref("b", false, false), ref("c", true, false)}
		got := SelectPrimary(refs, &domain.PlanAnalysis{BestReferenceID: "b"})
		require.NotNil(t, got)
		assert.Equal(t, "b", got.ID)
	})

	t.Run("一致しなければ最初の素材参照が選ばれること", func(t *testing.T) {
		refs := []domain.ReferenceImage{ref("a", false, true), ref("b", true, false), ref("c", false, true)}
		got := SelectPrimary(refs, nil)
		require.NotNil(t, got)
		assert.Equal(t, "b", got.ID)

		got = SelectPrimary(refs, &domain.PlanAnalysis{BestReferenceID: "missing"})
		require.NotNil(t, got)
		assert.Equal(t, "b", got.ID)
	})

	t.Run("素材参照がなければ先頭が選ばれること", func(t *testing.T) {
		refs := []domain.ReferenceImage{ref("a", false, true), ref("b", false, false)}
		got := SelectPrimary(refs, &domain.PlanAnalysis{})
		require.NotNil(t, got)
		assert.Equal(t, "a", got.ID)
	})

	t.Run("空なら nil を返すこと", func(t *testing.T) {
		assert.Nil(t, SelectPrimary(nil, &domain.PlanAnalysis{BestReferenceID: "a"}))
	})

	t.Run("同じ入力に対して常に同じ結果になること", func(t *testing.T) {
		refs := []domain.ReferenceImage{ref("a", false, true), ref("b", true, true), ref("c", true, false)}
		analysis := &domain.PlanAnalysis{BestReferenceID: "c"}
		first := SelectPrimary(refs, analysis)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first.ID, SelectPrimary(refs, analysis).ID)
		}
	})

	t.Run("並べ替え後も ID で同じ画像に解決されること", func(t *testing.T) {
		refs := []domain.ReferenceImage{ref("r0", true, true), ref("r1", true, true), ref("r2", false, true), ref("r3", true, false)}
		analysis := &domain.PlanAnalysis{BestReferenceID: refs[2].ID}

		reordered := []domain.ReferenceImage{refs[3], refs[2], refs[1], refs[0]}
		got := SelectPrimary(reordered, analysis)
		require.NotNil(t, got)
		assert.Equal(t, "r2", got.ID)
	})
}

func TestAuxiliaries(t *testing.T) {
	refs := []domain.ReferenceImage{ref("a", true, true), ref("b", true, false), ref("c", false, false), ref("d", false, true)}

	t.Run("主参照と使用不可の参照を除外し、使い道を付与すること", func(t *testing.T) {
		aux := Auxiliaries(refs, &refs[0])
		require.Len(t, aux, 2)
		assert.Equal(t, "b", aux[0].Reference.ID)
		assert.Equal(t, UsageMaterial, aux[0].Usage)
		assert.Equal(t, "d", aux[1].Reference.ID)
		assert.Equal(t, UsageStyle, aux[1].Usage)
	})

	t.Run("主参照が nil なら使用可能な全件を返すこと", func(t *testing.T) {
		aux := Auxiliaries(refs, nil)
		require.Len(t, aux, 3)
		assert.Equal(t, UsageBoth, aux[0].Usage)
	})

	t.Run("Usage の文字列表現", func(t *testing.T) {
		assert.Equal(t, "both", UsageBoth.String())
		assert.Equal(t, "none", Usage(0).String())
		assert.Equal(t, Usage(0), UsageOf(refs[2]))
	})
}
