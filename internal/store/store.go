// Package store keeps serialized agent configurations between sessions, so a
// call placed now can pick up its configuration when the runtime connects.
package store

import (
	"context"
	"errors"

	"phonenix/internal/agentconfig"
)

var ErrNotFound = errors.New("agent config not found")

type Store interface {
	Save(ctx context.Context, cfg *agentconfig.AgentConfig) (string, error)
	Get(ctx context.Context, id string) (*agentconfig.AgentConfig, error)
	Delete(ctx context.Context, id string) error
}
