package session

import (
	"sync"
	"time"

	"github.com/shouni/go-redset-kit/pkg/catalog"
	"github.com/shouni/go-redset-kit/pkg/domain"

	"github.com/google/uuid"
)

// Snapshot は直近のプラン生成時点の参照画像・分析・アーキタイプ・アスペクト比です。
// 編集はこのスナップショットだけを読みます。
type Snapshot struct {
	References  []domain.ReferenceImage
	Analysis    *domain.PlanAnalysis
	Archetype   catalog.Kind
	AspectRatio string
	RecordedAt  time.Time
}

func (s Snapshot) clone() Snapshot {
	c := s
	c.References = domain.References(s.References).Clone()
	c.Analysis = s.Analysis.Clone()
	return c
}

// Session は1つの制作セッションのスナップショットを保持します。
// 書き込みはプラン生成の成功時だけで、読み出しは常にコピーを返します。
type Session struct {
	id string

	mu       sync.RWMutex
	snap     Snapshot
	recorded bool
}

// New は新しい ID を採番した空の Session を作ります。
func New() *Session {
	return &Session{id: uuid.NewString()}
}

// ID はセッション ID を返します。
func (s *Session) ID() string {
	return s.id
}

// Record はプラン生成の結果をディープコピーして保存します。
func (s *Session) Record(refs []domain.ReferenceImage, analysis *domain.PlanAnalysis, kind catalog.Kind, aspectRatio string) {
	snap := Snapshot{
		References:  refs,
		Analysis:    analysis,
		Archetype:   kind,
		AspectRatio: aspectRatio,
		RecordedAt:  time.Now(),
	}.clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.recorded = true
}

// Snapshot は保存済みのスナップショットのコピーを返します。まだ記録がなければ false です。
func (s *Session) Snapshot() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.recorded {
		return Snapshot{}, false
	}
	return s.snap.clone(), true
}
