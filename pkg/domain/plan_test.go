package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan(n int) Plan {
	p := make(Plan, n)
	for i := range p {
		p[i] = PlanItem{ID: string(rune('a' + i)), Order: i + 1, Role: "Page"}
	}
	return p
}

func assertDenseOrder(t *testing.T, p Plan) {
	t.Helper()
	for i, item := range p {
		assert.Equal(t, i+1, item.Order, "item %s", item.ID)
	}
}

func TestPlan_Move(t *testing.T) {
	t.Run("任意の移動後も Order が 1..N で連番になること", func(t *testing.T) {
		const n = 5
		for from := 0; from < n; from++ {
			for to := 0; to < n; to++ {
				moved, err := samplePlan(n).Move(from, to)
				require.NoError(t, err)
				require.Len(t, moved, n)
				assertDenseOrder(t, moved)

				seen := map[string]bool{}
				for _, item := range moved {
					assert.False(t, seen[item.ID], "duplicate %s", item.ID)
					seen[item.ID] = true
				}
				assert.Equal(t, string(rune('a'+from)), moved[to].ID)
			}
		}
	})

	t.Run("元のプランは変更されないこと", func(t *testing.T) {
		p := samplePlan(3)
		_, err := p.Move(0, 2)
		require.NoError(t, err)
		assert.Equal(t, "a", p[0].ID)
		assert.Equal(t, 1, p[0].Order)
	})

	t.Run("範囲外のインデックスはエラーになること", func(t *testing.T) {
		_, err := samplePlan(3).Move(0, 3)
		assert.ErrorIs(t, err, ErrInvalidIndex)
		_, err = samplePlan(3).Move(-1, 0)
		assert.ErrorIs(t, err, ErrInvalidIndex)
	})
}

func TestPlan_IndexOf(t *testing.T) {
	p := samplePlan(3)
	assert.Equal(t, 1, p.IndexOf("b"))
	assert.Equal(t, -1, p.IndexOf("z"))
}

func TestPlanAnalysis_Clone(t *testing.T) {
	a := &PlanAnalysis{Keywords: []string{"tea"}, BestReferenceID: "ref-1"}
	c := a.Clone()
	c.Keywords[0] = "coffee"
	assert.Equal(t, "tea", a.Keywords[0])
	assert.Equal(t, "ref-1", c.BestReferenceID)

	var nilAnalysis *PlanAnalysis
	assert.Nil(t, nilAnalysis.Clone())
}
