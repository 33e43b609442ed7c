package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRenderNestedYAML(t *testing.T) {
	metadata := `
agent_name: Sarah
company_details:
  name: Acme Realty
  location: Austin, TX
industry: real estate
call_context:
  purpose: follow up on open house
`
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(metadata), 0o644))

	out, err := execute(t, "", "render", "-f", path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "You are Sarah, a "))
	assert.Contains(t, out, "representing Acme Realty")
	assert.Contains(t, out, "Service Area: Austin, TX")
	assert.Contains(t, out, "Purpose: follow up on open house")
}

func TestRenderLegacyFromStdin(t *testing.T) {
	out, err := execute(t, `{}`, "render", "--json")
	require.NoError(t, err)

	var resp map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "legacy", resp["schema"])
	assert.Equal(t, "Professional Assistant", resp["agent_name"])
	assert.Contains(t, resp["system_prompt"], "representing Our Company")
	assert.NotEmpty(t, resp["first_message"])
}

func TestRenderForcedSchema(t *testing.T) {
	metadata := `{"agent_name": "Sarah", "agent_config": {"agent_name": "Mike"}}`

	out, err := execute(t, metadata, "render", "--schema", "legacy")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "You are Mike, a "))

	out, err = execute(t, metadata, "render", "--schema", "nested")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "You are Sarah, a "))

	_, err = execute(t, metadata, "render", "--schema", "v3")
	assert.ErrorContains(t, err, "unknown schema")
}

func TestRenderMalformedInput(t *testing.T) {
	_, err := execute(t, `{"agent_name": `, "render")
	assert.Error(t, err)
}

func TestTemplates(t *testing.T) {
	out, err := execute(t, "", "templates")
	require.NoError(t, err)

	assert.Contains(t, out, "Personalities:\n")
	assert.Contains(t, out, "Companies:\n")
	assert.Contains(t, out, "Industries:\n")
	assert.Contains(t, out, "  real estate\n")
}
