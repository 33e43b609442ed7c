package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"phonenix/internal/agentconfig"
)

// Memory keeps configs in process. Entries hold the dictionary form so a
// stored config can not be mutated through a pointer handed out earlier.
type Memory struct {
	configs sync.Map
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(_ context.Context, cfg *agentconfig.AgentConfig) (string, error) {
	id := uuid.NewString()
	m.configs.Store(id, cfg.ToMap())
	return id, nil
}

func (m *Memory) Get(_ context.Context, id string) (*agentconfig.AgentConfig, error) {
	v, ok := m.configs.Load(id)
	if !ok {
		return nil, ErrNotFound
	}
	return agentconfig.AgentConfigFromMap(v.(map[string]any)), nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	if _, loaded := m.configs.LoadAndDelete(id); !loaded {
		return ErrNotFound
	}
	return nil
}
