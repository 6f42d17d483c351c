package formats

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed level.schema.json
var levelSchema []byte

const levelSchemaURL = "level.schema.json"

// compiledSchema compiles the embedded level schema once.
var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(levelSchemaURL, bytes.NewReader(levelSchema)); err != nil {
		return nil, err
	}
	return c.Compile(levelSchemaURL)
})

// JSONLevel represents the JSON structure for a level file.
type JSONLevel struct {
	ID         string            `json:"id"`
	Name       string            `json:"name,omitempty"`
	Theme      string            `json:"theme,omitempty"`
	Difficulty string            `json:"difficulty,omitempty"`
	Solution   string            `json:"solution,omitempty"`
	Tiles      []TileEntry       `json:"tiles"`
	Objects    []ObjectEntry     `json:"objects"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ValidateJSON checks data against the embedded level schema.
func ValidateJSON(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile level schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}

// ParseJSON validates and parses a JSON level file.
func ParseJSON(data []byte) (Level, error) {
	if err := ValidateJSON(data); err != nil {
		return Level{}, err
	}

	var jl JSONLevel
	if err := json.Unmarshal(data, &jl); err != nil {
		return Level{}, fmt.Errorf("json unmarshal: %w", err)
	}

	level := newLevel(jl.ID, jl.Name, jl.Theme, jl.Difficulty, jl.Solution, jl.Metadata)
	if err := applyEntries(&level, jl.Tiles, jl.Objects); err != nil {
		return Level{}, err
	}
	return level, nil
}

// MarshalJSON encodes lvl in the JSON level format with tiles and objects in
// position order.
func MarshalJSON(lvl Level) ([]byte, error) {
	jl := JSONLevel{
		ID:         lvl.ID,
		Name:       lvl.Name,
		Theme:      lvl.Theme,
		Difficulty: lvl.Difficulty,
		Solution:   lvl.Solution,
		Tiles:      tileEntries(lvl),
		Objects:    objectEntries(lvl),
		Metadata:   lvl.Metadata,
	}
	return json.MarshalIndent(jl, "", "  ")
}
