package levels

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel is the on-disk structure of a .yaml level file.
//
//	id: stairs
//	name: Stairs
//	rows:
//	  - "0000"
//	  - "0120"
//	metadata:
//	  author: qube
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Rows     []string          `yaml:"rows"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// ParseYAML parses a YAML level file. Rows are validated exactly like the
// text format.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("levels: yaml unmarshal: %w", err)
	}

	puzzle, err := ParseRows(yl.Rows)
	if err != nil {
		return Level{}, err
	}

	return Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Puzzle:   puzzle,
		Metadata: yl.Metadata,
	}, nil
}

// MarshalYAML renders a level into the YAML level format.
func MarshalYAML(l Level) ([]byte, error) {
	yl := YAMLLevel{
		ID:       l.ID,
		Name:     l.Name,
		Metadata: l.Metadata,
	}
	for _, row := range l.Puzzle {
		digits := make([]byte, len(row))
		for i, c := range row {
			digits[i] = c.Digit()
		}
		yl.Rows = append(yl.Rows, string(digits))
	}
	return yaml.Marshal(yl)
}
