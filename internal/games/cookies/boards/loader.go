package boards

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions lists the board file extensions the loader picks up.
var Extensions = []string{".yaml", ".yml"}

// Loader reads board files from a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a loader rooted at root.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll walks the root and loads every board file, sorted by ID.
// A missing root yields no boards.
func (l *Loader) LoadAll() ([]Board, error) {
	if _, err := os.Stat(l.Root); os.IsNotExist(err) {
		return nil, nil
	}

	var boards []Board
	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isBoardFile(path) {
			return nil
		}
		b, err := LoadFile(path)
		if err != nil {
			return err
		}
		boards = append(boards, b)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(boards, func(i, j int) bool {
		return boards[i].ID < boards[j].ID
	})
	return boards, nil
}

// LoadByID finds the board with the given ID under the root.
func (l *Loader) LoadByID(id string) (Board, error) {
	boards, err := l.LoadAll()
	if err != nil {
		return Board{}, err
	}
	for _, b := range boards {
		if b.ID == id {
			return b, nil
		}
	}
	return Board{}, fmt.Errorf("board not found: %s", id)
}

// Resolve loads ref as a file path when it names a board file, and as an ID
// under the root otherwise.
func (l *Loader) Resolve(ref string) (Board, error) {
	if isBoardFile(ref) {
		if _, err := os.Stat(ref); err == nil {
			return LoadFile(ref)
		}
	}
	return l.LoadByID(ref)
}

// LoadFile loads a single board file.
func LoadFile(path string) (Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Board{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	b, err := ParseYAML(data)
	if err != nil {
		return Board{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	b.FilePath = path
	return b, nil
}

func isBoardFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
