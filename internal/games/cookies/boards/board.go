// Package boards loads scripted starting boards from YAML files.
package boards

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/cookie-crush/internal/games/cookies/engine"
)

// yamlBoard is the on-disk layout of a board file.
type yamlBoard struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name"`
	Moves int      `yaml:"moves,omitempty"`
	Rows  []string `yaml:"rows"`
}

// Board is a scripted starting layout. Rows use the kind letters of
// engine.Kind.Char; refills after the first cascade stay random.
type Board struct {
	ID       string
	Name     string
	Moves    int
	Rows     []string
	FilePath string
}

// Size returns the side length of the board.
func (b Board) Size() int {
	return len(b.Rows)
}

// Grid builds the engine grid, using f for refills.
func (b Board) Grid(f engine.Factory) (*engine.Grid, error) {
	g, err := engine.GridFromStrings(b.Rows, f)
	if err != nil {
		return nil, fmt.Errorf("board %s: %w", b.ID, err)
	}
	return g, nil
}

// ParseYAML parses a board file. The rows are checked against a throwaway
// factory so a bad file fails here rather than when the game starts.
func ParseYAML(data []byte) (Board, error) {
	var yb yamlBoard
	if err := yaml.Unmarshal(data, &yb); err != nil {
		return Board{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yb.ID == "" {
		return Board{}, fmt.Errorf("board has no id")
	}
	if yb.Moves < 0 {
		return Board{}, fmt.Errorf("board %s: moves %d must not be negative", yb.ID, yb.Moves)
	}

	b := Board{ID: yb.ID, Name: yb.Name, Moves: yb.Moves, Rows: yb.Rows}
	if b.Name == "" {
		b.Name = b.ID
	}
	if _, err := b.Grid(engine.NewRandomFactory(nil, engine.MaxKinds)); err != nil {
		return Board{}, err
	}
	return b, nil
}
