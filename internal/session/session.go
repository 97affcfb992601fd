// Package session реализует серверное хранилище сессий: непрозрачный
// идентификатор живёт в cookie, значения — на стороне сервера.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Ключи значений, которые ядро магазина хранит в сессии.
const (
	KeyUserID      = "user_id"
	KeyCartID      = "cart_id"
	KeyCart        = "cart"
	KeyCouponCode  = "coupon_code"
	KeyInviteToken = "invite_token"
)

// Session — изменяемое key/value состояние одного посетителя.
// Мутации помечают сессию "грязной", чтобы бэкенд знал, что её надо сохранить.
type Session struct {
	mu     sync.RWMutex
	id     string
	values map[string]any
	dirty  bool
}

// ID возвращает непрозрачный идентификатор сессии.
func (s *Session) ID() string {
	return s.id
}

// Get возвращает значение по ключу.
func (s *Session) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// GetString возвращает строковое значение по ключу или пустую строку.
func (s *Session) GetString(key string) string {
	v, ok := s.Get(key)
	if !ok {
		return ""
	}
	str, _ := v.(string)
	return str
}

// Set записывает значение и помечает сессию изменённой.
func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.dirty = true
}

// Delete удаляет значение; отсутствие ключа — не ошибка.
func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; ok {
		delete(s.values, key)
		s.dirty = true
	}
}

// MarkDirty явно помечает сессию изменённой. Нужен, когда мутируется
// значение-ссылка (например, карта корзины), а не сам ключ.
func (s *Session) MarkDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
}

// Dirty сообщает, были ли изменения с момента последнего сохранения.
func (s *Session) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// ResetDirty снимает флаг изменений после сохранения бэкендом.
func (s *Session) ResetDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
}

// Store — in-memory реестр сессий по идентификатору.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore создаёт пустой реестр сессий.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// New создаёт сессию со свежим идентификатором.
func (st *Store) New() *Session {
	sess := &Session{
		id:     uuid.NewString(),
		values: make(map[string]any),
	}
	st.mu.Lock()
	st.sessions[sess.id] = sess
	st.mu.Unlock()
	return sess
}

// Get возвращает сессию по идентификатору.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[id]
	return sess, ok
}

// GetOrCreate возвращает существующую сессию либо создаёт новую,
// если идентификатор пуст или неизвестен (cookie протухла).
func (st *Store) GetOrCreate(id string) *Session {
	if id != "" {
		if sess, ok := st.Get(id); ok {
			return sess
		}
	}
	return st.New()
}

// Drop удаляет сессию из реестра.
func (st *Store) Drop(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}
