package domain

import "fmt"

// Renumber は配列順に Order を 1..N で振り直します。
func (p Plan) Renumber() {
	for i := range p {
		p[i].Order = i + 1
	}
}

// Move は from 番目の要素を to 番目へ移動した新しいプランを返し、Order を振り直します。
func (p Plan) Move(from, to int) (Plan, error) {
	if from < 0 || from >= len(p) || to < 0 || to >= len(p) {
		return nil, fmt.Errorf("%w: move %d -> %d (len=%d)", ErrInvalidIndex, from, to, len(p))
	}

	out := p.Clone()
	item := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append(Plan{item}, out[to:]...)...)
	out.Renumber()
	return out, nil
}

// Clone は各要素をコピーした新しいプランを返します。
func (p Plan) Clone() Plan {
	if p == nil {
		return nil
	}
	out := make(Plan, len(p))
	for i, item := range p {
		out[i] = item.Clone()
	}
	return out
}

// IndexOf は ID に一致する要素の位置を返します。見つからなければ -1 です。
func (p Plan) IndexOf(id string) int {
	for i := range p {
		if p[i].ID == id {
			return i
		}
	}
	return -1
}
