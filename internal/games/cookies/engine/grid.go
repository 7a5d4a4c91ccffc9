package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Grid size limits.
const (
	MinSize = 3
	MaxSize = 12
)

type cell struct {
	kind   Kind
	marked bool
}

// Grid is a square board of tokens stored row-major. A token's position is its
// cell, so swapping and compacting keep positions in sync by construction.
type Grid struct {
	size    int
	cells   []cell
	factory Factory
}

// NewGrid creates a size x size grid with every cell filled by the factory.
func NewGrid(size int, f Factory) (*Grid, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("engine: grid size %d outside [%d, %d]: %w", size, MinSize, MaxSize, ErrInvalidConfig)
	}
	if f == nil {
		return nil, fmt.Errorf("engine: nil factory: %w", ErrInvalidConfig)
	}
	g := &Grid{size: size, cells: make([]cell, size*size), factory: f}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			g.cells[r*size+c].kind = f.Create(Pos{Row: r, Col: c}).Kind
		}
	}
	return g, nil
}

// GridFromKinds builds a grid from an explicit square layout. The factory is
// used for later refills only.
func GridFromKinds(rows [][]Kind, f Factory) (*Grid, error) {
	size := len(rows)
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("engine: grid size %d outside [%d, %d]: %w", size, MinSize, MaxSize, ErrInvalidConfig)
	}
	if f == nil {
		return nil, fmt.Errorf("engine: nil factory: %w", ErrInvalidConfig)
	}
	g := &Grid{size: size, cells: make([]cell, size*size), factory: f}
	for r, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("engine: row %d has %d cells, want %d: %w", r, len(row), size, ErrInvalidConfig)
		}
		for c, k := range row {
			if !k.Valid() {
				return nil, fmt.Errorf("engine: cell %v has kind %d: %w", P(r, c), k, ErrInvalidConfig)
			}
			g.cells[r*size+c].kind = k
		}
	}
	return g, nil
}

// GridFromStrings builds a grid from rows of kind letters (see Kind.Char),
// e.g. "SSGBLO". Whitespace inside a row is ignored.
func GridFromStrings(rows []string, f Factory) (*Grid, error) {
	kinds := make([][]Kind, len(rows))
	for r, row := range rows {
		row = strings.Join(strings.Fields(row), "")
		kinds[r] = make([]Kind, 0, len(row))
		for _, ch := range row {
			k, ok := ParseKind(string(ch))
			if !ok {
				return nil, fmt.Errorf("engine: row %d: unknown kind %q: %w", r, ch, ErrInvalidConfig)
			}
			kinds[r] = append(kinds[r], k)
		}
	}
	return GridFromKinds(kinds, f)
}

// Size returns the side length of the grid.
func (g *Grid) Size() int {
	return g.size
}

// InBounds reports whether p is a cell of the grid.
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.size && p.Col >= 0 && p.Col < g.size
}

func (g *Grid) idx(p Pos) int {
	return p.Row*g.size + p.Col
}

// At returns the token at p.
func (g *Grid) At(p Pos) (Token, error) {
	if !g.InBounds(p) {
		return Token{}, fmt.Errorf("engine: at %v: %w", p, ErrInvalidPosition)
	}
	return Token{Kind: g.cells[g.idx(p)].kind, Pos: p}, nil
}

// Kind returns the kind at p, or KindNone when p is out of bounds.
func (g *Grid) Kind(p Pos) Kind {
	if !g.InBounds(p) {
		return KindNone
	}
	return g.cells[g.idx(p)].kind
}

// Marked reports whether the cell at p is flagged as cleared.
func (g *Grid) Marked(p Pos) bool {
	if !g.InBounds(p) {
		return false
	}
	return g.cells[g.idx(p)].marked
}

// Swap exchanges the tokens at a and b. It does not check adjacency.
func (g *Grid) Swap(a, b Pos) error {
	if !g.InBounds(a) || !g.InBounds(b) {
		return fmt.Errorf("engine: swap %v and %v: %w", a, b, ErrInvalidPosition)
	}
	ia, ib := g.idx(a), g.idx(b)
	g.cells[ia], g.cells[ib] = g.cells[ib], g.cells[ia]
	return nil
}

// MarkMatched flags the given cells as cleared without removing them.
// Nothing is marked if any position is out of bounds.
func (g *Grid) MarkMatched(set PosSet) error {
	for p := range set {
		if !g.InBounds(p) {
			return fmt.Errorf("engine: mark %v: %w", p, ErrInvalidPosition)
		}
	}
	for p := range set {
		g.cells[g.idx(p)].marked = true
	}
	return nil
}

// MarkedColumns returns the ascending indexes of columns holding marked cells.
func (g *Grid) MarkedColumns() []int {
	var cols []int
	for c := 0; c < g.size; c++ {
		for r := 0; r < g.size; r++ {
			if g.cells[r*g.size+c].marked {
				cols = append(cols, c)
				break
			}
		}
	}
	return cols
}

// CompactColumn removes the marked cells of col, lets the remaining tokens
// fall keeping their order, and refills the vacated top cells. It returns the
// number of new tokens.
func (g *Grid) CompactColumn(col int) (int, error) {
	if col < 0 || col >= g.size {
		return 0, fmt.Errorf("engine: compact column %d: %w", col, ErrInvalidPosition)
	}
	write := g.size - 1
	for read := g.size - 1; read >= 0; read-- {
		c := g.cells[read*g.size+col]
		if c.marked {
			continue
		}
		g.cells[write*g.size+col] = cell{kind: c.kind}
		write--
	}
	filled := write + 1
	for r := 0; r < filled; r++ {
		g.cells[r*g.size+col] = cell{kind: g.factory.Create(Pos{Row: r, Col: col}).Kind}
	}
	return filled, nil
}

// Validate checks that every cell holds a real token and no mark is left over.
func (g *Grid) Validate() error {
	for i, c := range g.cells {
		p := Pos{Row: i / g.size, Col: i % g.size}
		if !c.kind.Valid() {
			return fmt.Errorf("engine: empty cell at %v: %w", p, ErrInvariantViolation)
		}
		if c.marked {
			return fmt.Errorf("engine: stale mark at %v: %w", p, ErrInvariantViolation)
		}
	}
	return nil
}

// Clone returns a deep copy sharing the factory.
func (g *Grid) Clone() *Grid {
	cells := make([]cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{size: g.size, cells: cells, factory: g.factory}
}

// Snapshot returns an immutable copy of the grid for renderers.
func (g *Grid) Snapshot() Snapshot {
	s := Snapshot{
		Size:   g.size,
		Kinds:  make([]Kind, len(g.cells)),
		Marked: make([]bool, len(g.cells)),
	}
	for i, c := range g.cells {
		s.Kinds[i] = c.kind
		s.Marked[i] = c.marked
	}
	return s
}

// String renders the grid as rows of kind letters.
func (g *Grid) String() string {
	return g.Snapshot().String()
}

// Snapshot is a read-only copy of a grid, stored row-major.
type Snapshot struct {
	Size   int
	Kinds  []Kind
	Marked []bool
}

// InBounds reports whether p is inside the snapshot.
func (s Snapshot) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < s.Size && p.Col >= 0 && p.Col < s.Size
}

// At returns the kind at p, or KindNone when out of bounds.
func (s Snapshot) At(p Pos) Kind {
	if !s.InBounds(p) {
		return KindNone
	}
	return s.Kinds[p.Row*s.Size+p.Col]
}

// IsMarked reports whether p was flagged as cleared.
func (s Snapshot) IsMarked(p Pos) bool {
	if !s.InBounds(p) {
		return false
	}
	return s.Marked[p.Row*s.Size+p.Col]
}

// Row returns a copy of the kinds in row r.
func (s Snapshot) Row(r int) []Kind {
	if r < 0 || r >= s.Size {
		return nil
	}
	out := make([]Kind, s.Size)
	copy(out, s.Kinds[r*s.Size:(r+1)*s.Size])
	return out
}

// Column returns a copy of the kinds in column c, top to bottom.
func (s Snapshot) Column(c int) []Kind {
	if c < 0 || c >= s.Size {
		return nil
	}
	out := make([]Kind, s.Size)
	for r := 0; r < s.Size; r++ {
		out[r] = s.Kinds[r*s.Size+c]
	}
	return out
}

// Equal reports whether two snapshots hold the same kinds and marks.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.Size != other.Size || len(s.Kinds) != len(other.Kinds) || len(s.Marked) != len(other.Marked) {
		return false
	}
	for i := range s.Kinds {
		if s.Kinds[i] != other.Kinds[i] || s.Marked[i] != other.Marked[i] {
			return false
		}
	}
	return true
}

// String renders rows of kind letters; marked cells are lower case.
func (s Snapshot) String() string {
	var b strings.Builder
	for r := 0; r < s.Size; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < s.Size; c++ {
			ch := s.Kinds[r*s.Size+c].Char()
			if s.Marked[r*s.Size+c] {
				ch = []rune(strings.ToLower(string(ch)))[0]
			}
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// sortPositions orders positions by row, then column.
func sortPositions(ps []Pos) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Row != ps[j].Row {
			return ps[i].Row < ps[j].Row
		}
		return ps[i].Col < ps[j].Col
	})
}
