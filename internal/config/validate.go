package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

//go:embed defaults/agent.schema.json
var agentSchemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func agentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("agent.schema.json", agentSchemaJSON)
	})
	return schema, schemaErr
}

// Validate checks cfg against the embedded JSON schema and the rules the
// schema cannot express.
func Validate(cfg AgentConfig) error {
	s, err := agentSchema()
	if err != nil {
		return fmt.Errorf("config: cannot compile schema: %w", err)
	}

	// The schema validator works on generic JSON values.
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: cannot encode config: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("config: cannot decode config: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	seen := make(map[string]bool, len(cfg.Zones))
	for i, z := range cfg.Zones {
		if seen[z.Name] {
			return fmt.Errorf("%w: duplicate zone %q", ErrInvalidConfig, z.Name)
		}
		seen[z.Name] = true
		if z.Name == cfg.Episode.GoalName {
			return fmt.Errorf("%w: zone %q uses the reserved goal name", ErrInvalidConfig, z.Name)
		}
		if i > 0 && z.Bonus <= cfg.Zones[i-1].Bonus {
			return fmt.Errorf("%w: zone %q bonus %.3f must exceed %q bonus %.3f",
				ErrInvalidConfig, z.Name, z.Bonus, cfg.Zones[i-1].Name, cfg.Zones[i-1].Bonus)
		}
	}

	if cfg.PlayArea.MinX >= cfg.PlayArea.MaxX || cfg.PlayArea.MinY >= cfg.PlayArea.MaxY {
		return fmt.Errorf("%w: play_area is empty", ErrInvalidConfig)
	}
	if cfg.Arena.Barrels.MinSpawnSeconds > cfg.Arena.Barrels.MaxSpawnSeconds {
		return fmt.Errorf("%w: min_spawn_seconds exceeds max_spawn_seconds", ErrInvalidConfig)
	}
	return nil
}
