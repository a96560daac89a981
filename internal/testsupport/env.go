package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteAgentsFile marshals v as JSON into a temporary agents file and returns its path.
func WriteAgentsFile(t *testing.T, v any) string {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// AgentsFile builds the agents file document for a model and per-role instructions.
func AgentsFile(modelID string, instructions map[string][]string) map[string]any {
	agents := make(map[string]any, len(instructions))
	for role, list := range instructions {
		agents[role] = map[string]any{"instructions": list}
	}
	return map[string]any{"model_id": modelID, "agents": agents}
}
