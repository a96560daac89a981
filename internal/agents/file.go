package agents

import (
	"encoding/json"
	"io/fs"
	"os"
	"strings"

	"stockagent/pkg/errors"
)

// DefaultModelID is used when no agents file is present.
const DefaultModelID = "llama-3.3-70b-versatile"

// FileConfig mirrors the agents JSON file:
//
//	{"model_id": "...", "agents": {"web_search": {"instructions": ["..."]}, ...}}
type FileConfig struct {
	ModelID string                    `json:"model_id"`
	Agents  map[string]AgentFileEntry `json:"agents"`
}

// AgentFileEntry holds the per-role part of the agents file.
type AgentFileEntry struct {
	Instructions []string `json:"instructions"`
}

// DefaultFileConfig returns a fresh copy of the built-in configuration.
func DefaultFileConfig() *FileConfig {
	return &FileConfig{
		ModelID: DefaultModelID,
		Agents: map[string]AgentFileEntry{
			string(RoleWebSearch): {Instructions: []string{"Always include sources."}},
			string(RoleFinance):   {Instructions: []string{"Use tables to present data."}},
		},
	}
}

// LoadFile reads the agents file at path. A missing file (or empty path) yields
// DefaultFileConfig. A present file must carry model_id and every required role.
func LoadFile(path string, required ...Role) (*FileConfig, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultFileConfig(), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultFileConfig(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read agents file %s", path)
	}

	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Join(errors.ErrInvalidConfig, errors.Wrapf(err, "decode %s", path))
	}

	if err := cfg.Validate(required...); err != nil {
		return nil, errors.Wrapf(err, "agents file %s", path)
	}

	return &cfg, nil
}

// Validate checks that the keys callers depend on are present.
func (c *FileConfig) Validate(required ...Role) error {
	var errs errors.MultiError

	if strings.TrimSpace(c.ModelID) == "" {
		errs.Add(errors.NewValidationError("model_id", "is required", c.ModelID))
	}

	for _, role := range required {
		if _, ok := c.Agents[string(role)]; !ok {
			errs.Add(errors.NewValidationError("agents."+string(role), "is required", nil))
		}
	}

	if errs.HasErrors() {
		return errors.Join(errors.ErrInvalidConfig, errs.ToError())
	}
	return nil
}

// Instructions returns a copy of the instruction list for role.
func (c *FileConfig) Instructions(role Role) []string {
	entry, ok := c.Agents[string(role)]
	if !ok {
		return nil
	}
	return append([]string(nil), entry.Instructions...)
}
