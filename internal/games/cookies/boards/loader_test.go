package boards

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/cookie-crush/internal/games/cookies/engine"
)

const testRoot = "testdata/boards"

func TestLoadAllSortedByID(t *testing.T) {
	boards, err := NewLoader(testRoot).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("LoadAll() returned %d boards, want 2", len(boards))
	}
	if boards[0].ID != "corner" || boards[1].ID != "opening" {
		t.Errorf("LoadAll() ids = %s, %s, want corner, opening", boards[0].ID, boards[1].ID)
	}
}

func TestLoadAllMissingRoot(t *testing.T) {
	boards, err := NewLoader(filepath.Join(t.TempDir(), "none")).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(boards) != 0 {
		t.Errorf("LoadAll() = %d boards, want 0", len(boards))
	}
}

func TestLoadByID(t *testing.T) {
	b, err := NewLoader(testRoot).LoadByID("opening")
	if err != nil {
		t.Fatalf("LoadByID() error = %v", err)
	}
	if b.Name != "Opening" {
		t.Errorf("Name = %q, want %q", b.Name, "Opening")
	}
	if b.Moves != 10 {
		t.Errorf("Moves = %d, want 10", b.Moves)
	}
	if b.Size() != 6 {
		t.Errorf("Size() = %d, want 6", b.Size())
	}
	if b.FilePath != filepath.Join(testRoot, "opening.yaml") {
		t.Errorf("FilePath = %q", b.FilePath)
	}

	if _, err := NewLoader(testRoot).LoadByID("missing"); err == nil {
		t.Error("LoadByID(missing) should fail")
	}
}

func TestResolve(t *testing.T) {
	l := NewLoader(testRoot)

	byPath, err := l.Resolve(filepath.Join(testRoot, "nested", "corner.yml"))
	if err != nil {
		t.Fatalf("Resolve(path) error = %v", err)
	}
	byID, err := l.Resolve("corner")
	if err != nil {
		t.Fatalf("Resolve(id) error = %v", err)
	}
	if byPath.ID != byID.ID {
		t.Errorf("Resolve ids differ: %s vs %s", byPath.ID, byID.ID)
	}
	if byID.Name != "Corner" {
		t.Errorf("Name = %q, want Corner", byID.Name)
	}
}

func TestGridFromBoard(t *testing.T) {
	b, err := LoadFile(filepath.Join(testRoot, "nested", "corner.yml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	g, err := b.Grid(engine.NewRandomFactory(nil, 5))
	if err != nil {
		t.Fatalf("Grid() error = %v", err)
	}
	if g.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", g.Size())
	}
	if got := g.Kind(engine.Pos{Row: 2, Col: 1}); got != engine.KindGrape {
		t.Errorf("Kind(2,1) = %v, want grape", got)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "rows: [unclosed"},
		{"no id", "rows: [SBO, BOG, OGS]"},
		{"negative moves", "id: x\nmoves: -1\nrows: [SBO, BOG, OGS]"},
		{"unknown letter", "id: x\nrows: [SBO, BXG, OGS]"},
		{"ragged rows", "id: x\nrows: [SBO, BOG, OG]"},
		{"too small", "id: x\nrows: [SB, BO]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(tt.data)); err == nil {
				t.Errorf("ParseYAML(%q) should fail", tt.data)
			}
		})
	}
}

func TestParseYAMLDefaultsName(t *testing.T) {
	b, err := ParseYAML([]byte("id: plain\nrows: [SBO, BOG, OGS]"))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if b.Name != "plain" {
		t.Errorf("Name = %q, want plain", b.Name)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "gone.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile() error = %v, want not exist", err)
	}
}
