// Package store persists the portrait's resting offset, the one piece of
// state that survives between page loads.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// PositionKey is the fixed key the offset is stored under.
const PositionKey = "portraitPosition"

// Position is a 2-D offset in px.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PositionStore loads and saves the portrait offset. Load reports false when
// nothing has been saved yet.
type PositionStore interface {
	Load(ctx context.Context) (Position, bool, error)
	Save(ctx context.Context, pos Position) error
	Close() error
}

func encode(pos Position) (string, error) {
	b, err := json.Marshal(pos)
	if err != nil {
		return "", fmt.Errorf("encoding position: %w", err)
	}
	return string(b), nil
}

func decode(s string) (Position, error) {
	var pos Position
	if err := json.Unmarshal([]byte(s), &pos); err != nil {
		return Position{}, fmt.Errorf("decoding position %q: %w", s, err)
	}
	return pos, nil
}

// Memory keeps the offset in process memory.
type Memory struct {
	mu  sync.Mutex
	pos *Position
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Load(context.Context) (Position, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pos == nil {
		return Position{}, false, nil
	}
	return *m.pos, true, nil
}

func (m *Memory) Save(_ context.Context, pos Position) error {
	m.mu.Lock()
	m.pos = &pos
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }
