package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonenix/internal/agentconfig"
)

func testConfig(t *testing.T) *agentconfig.AgentConfig {
	t.Helper()
	cfg, err := agentconfig.NewBuilder().
		WithAgentName("Sarah").
		WithCompany(agentconfig.RealEstateAgency()).
		WithIndustry("real estate").
		WithCallContext(agentconfig.CallContext{Purpose: "Follow up on property inquiry"}).
		Build()
	require.NoError(t, err)
	return cfg
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	cfg := testConfig(t)

	id, err := s.Save(ctx, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	cfg.AgentName = "mutated after save"

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Sarah", got.AgentName)
	assert.Equal(t, "Premier Realty Group", got.Company.Name)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, id), ErrNotFound)
}

func TestPostgresQueries(t *testing.T) {
	cfg := testConfig(t)

	query, args, err := insertQuery("4c1c3f0e-0000-4000-8000-000000000001", cfg)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO agent_configs (id,agent_name,industry,config) VALUES ($1,$2,$3,$4)", query)
	require.Len(t, args, 4)
	assert.Equal(t, "Sarah", args[1])
	assert.Equal(t, "real estate", args[2])

	var stored map[string]any
	require.NoError(t, json.Unmarshal([]byte(args[3].(string)), &stored))
	assert.Equal(t, "Sarah", agentconfig.AgentConfigFromMap(stored).AgentName)

	query, args, err = selectQuery("abc")
	require.NoError(t, err)
	assert.Equal(t, "SELECT config FROM agent_configs WHERE id = $1", query)
	assert.Equal(t, []any{"abc"}, args)

	query, _, err = deleteQuery("abc")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM agent_configs WHERE id = $1", query)
}

func TestPostgresRejectsMalformedIDs(t *testing.T) {
	p := NewPostgres(nil)

	_, err := p.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, p.Delete(context.Background(), "not-a-uuid"), ErrNotFound)
}
