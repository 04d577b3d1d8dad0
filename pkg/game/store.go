package game

import "sync"

// HighScoreStore persists the best score across sessions.
// An unset high score reads as 0.
type HighScoreStore interface {
	HighScore() (int, error)
	SetHighScore(score int) error
}

// MemoryStore keeps the high score in process memory
type MemoryStore struct {
	mu    sync.Mutex
	score int
	sets  int
}

func NewMemoryStore(initial int) *MemoryStore {
	return &MemoryStore{score: initial}
}

func (m *MemoryStore) HighScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, nil
}

func (m *MemoryStore) SetHighScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = score
	m.sets++
	return nil
}

// Writes returns how many times SetHighScore was called
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}
