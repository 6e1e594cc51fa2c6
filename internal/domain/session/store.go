package session

import (
	"context"
	"sync"
)

// Store holds conversation state between turns and serializes turns per
// chat. Lock blocks concurrent turns for the same chat only; different
// chats never contend.
type Store interface {
	Get(ctx context.Context, chatID int64) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, chatID int64) error
	Lock(chatID int64)
	Unlock(chatID int64)
}

// MemoryStore keeps sessions in process memory. It is the default when no
// Redis address is configured.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	locks    *chatLocks
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int64]*Session),
		locks:    newChatLocks(),
	}
}

func (m *MemoryStore) Get(ctx context.Context, chatID int64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if !ok {
		return New(chatID), nil
	}
	copy := *s
	return &copy, nil
}

func (m *MemoryStore) Put(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copy := *s
	m.sessions[s.ChatID] = &copy
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, chatID)
	return nil
}

func (m *MemoryStore) Lock(chatID int64)   { m.locks.lock(chatID) }
func (m *MemoryStore) Unlock(chatID int64) { m.locks.unlock(chatID) }

// chatLocks hands out one mutex per chat id with reference counting, so
// the map does not grow with every chat ever seen.
type chatLocks struct {
	mu    sync.Mutex
	locks map[int64]*chatLock
}

type chatLock struct {
	mu   sync.Mutex
	refs int
}

func newChatLocks() *chatLocks {
	return &chatLocks{locks: make(map[int64]*chatLock)}
}

func (c *chatLocks) lock(chatID int64) {
	c.mu.Lock()
	l, ok := c.locks[chatID]
	if !ok {
		l = &chatLock{}
		c.locks[chatID] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()
}

func (c *chatLocks) unlock(chatID int64) {
	c.mu.Lock()
	l := c.locks[chatID]
	l.refs--
	if l.refs == 0 {
		delete(c.locks, chatID)
	}
	c.mu.Unlock()

	l.mu.Unlock()
}
