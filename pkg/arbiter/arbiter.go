package arbiter

import (
	"github.com/shouni/go-redset-kit/pkg/domain"
)

// Usage は補助参照画像の使い道です。
type Usage int

const (
	UsageMaterial Usage = iota + 1
	UsageStyle
	UsageBoth
)

func (u Usage) String() string {
	switch u {
	case UsageMaterial:
		return "material"
	case UsageStyle:
		return "style"
	case UsageBoth:
		return "both"
	default:
		return "none"
	}
}

// UsageOf は参照画像のフラグから Usage を決めます。どちらも false なら 0 を返します。
func UsageOf(ref domain.ReferenceImage) Usage {
	switch {
	case ref.UsableAsMaterial && ref.UsableAsStyle:
		return UsageBoth
	case ref.UsableAsMaterial:
		return UsageMaterial
	case ref.UsableAsStyle:
		return UsageStyle
	default:
		return 0
	}
}

// Auxiliary は主参照以外の参照画像と、その使い道の組です。
type Auxiliary struct {
	Reference domain.ReferenceImage
	Usage     Usage
}

// SelectPrimary は参照画像群からスタイルとアイデンティティの基準となる主参照を1枚選びます。
// 優先順位は以下の通りで、最初に一致したものを返します。
// 1. analysis.BestReferenceID に一致する参照画像（位置やフラグは問わない）
// 2. UsableAsMaterial が true の最初の参照画像
// 3. 先頭の参照画像
// 4. 参照画像が空なら nil
func SelectPrimary(refs []domain.ReferenceImage, analysis *domain.PlanAnalysis) *domain.ReferenceImage {
	if analysis != nil && analysis.BestReferenceID != "" {
		for i := range refs {
			if refs[i].ID == analysis.BestReferenceID {
				return &refs[i]
			}
		}
	}

	for i := range refs {
		if refs[i].UsableAsMaterial {
			return &refs[i]
		}
	}

	if len(refs) > 0 {
		return &refs[0]
	}
	return nil
}

// Auxiliaries は主参照を除いた、使用可能な参照画像を元の順序で返します。
// フラグが両方 false の参照画像は含めません。
func Auxiliaries(refs []domain.ReferenceImage, primary *domain.ReferenceImage) []Auxiliary {
	var out []Auxiliary
	for _, ref := range refs {
		if !ref.IsUsable() {
			continue
		}
		if primary != nil && ref.ID == primary.ID {
			continue
		}
		out = append(out, Auxiliary{Reference: ref, Usage: UsageOf(ref)})
	}
	return out
}
