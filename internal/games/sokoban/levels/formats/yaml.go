package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID         string            `yaml:"id"`
	Name       string            `yaml:"name"`
	Theme      string            `yaml:"theme,omitempty"`
	Difficulty string            `yaml:"difficulty,omitempty"`
	Solution   string            `yaml:"solution,omitempty"`
	Map        string            `yaml:"map,omitempty"`
	Tiles      []TileEntry       `yaml:"tiles,omitempty"`
	Objects    []ObjectEntry     `yaml:"objects,omitempty"`
	Metadata   map[string]string `yaml:"metadata,omitempty"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}

	level := newLevel(yl.ID, yl.Name, yl.Theme, yl.Difficulty, yl.Solution, yl.Metadata)
	if yl.Map != "" {
		if err := expandMap(&level, yl.Map); err != nil {
			return Level{}, err
		}
	}
	if err := applyEntries(&level, yl.Tiles, yl.Objects); err != nil {
		return Level{}, err
	}

	return level, nil
}
