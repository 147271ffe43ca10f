package session

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultTTL は最後にアクセスされてからセッションを破棄するまでの時間です。
const DefaultTTL = 2 * time.Hour

// Store はセッション ID をキーにした、TTL 付きのインメモリ保管庫です。
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewStore は Store を初期化します。ttl が 0 以下なら DefaultTTL を使います。
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		cache: cache.New(ttl, ttl/2),
		ttl:   ttl,
	}
}

// New は新しいセッションを作って登録します。
func (st *Store) New() *Session {
	s := New()
	st.cache.Set(s.ID(), s, st.ttl)
	return s
}

// Get は ID に対応するセッションを返し、有効期限を延長します。
func (st *Store) Get(id string) (*Session, bool) {
	v, ok := st.cache.Get(id)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Session)
	if !ok {
		return nil, false
	}
	st.cache.Set(id, s, st.ttl)
	return s, true
}

// Delete はセッションを破棄します。
func (st *Store) Delete(id string) {
	st.cache.Delete(id)
}

// Count は有効なセッション数を返します。
func (st *Store) Count() int {
	return st.cache.ItemCount()
}
