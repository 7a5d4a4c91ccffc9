package engine

import (
	"fmt"
	"strings"
)

// Kind is the type of a token. The zero value is an empty cell and never
// appears in a settled grid.
type Kind uint8

const (
	KindNone Kind = iota
	KindStrawberry
	KindGrape
	KindBlueberry
	KindLemon
	KindOrange
	KindMint
)

// MaxKinds is the size of the token palette.
const MaxKinds = int(KindMint)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindStrawberry:
		return "strawberry"
	case KindGrape:
		return "grape"
	case KindBlueberry:
		return "blueberry"
	case KindLemon:
		return "lemon"
	case KindOrange:
		return "orange"
	case KindMint:
		return "mint"
	default:
		return "unknown"
	}
}

// Char returns a single letter for compact text dumps of a grid.
func (k Kind) Char() rune {
	switch k {
	case KindStrawberry:
		return 'S'
	case KindGrape:
		return 'G'
	case KindBlueberry:
		return 'B'
	case KindLemon:
		return 'L'
	case KindOrange:
		return 'O'
	case KindMint:
		return 'M'
	default:
		return '.'
	}
}

// Valid reports whether k is a real token kind.
func (k Kind) Valid() bool {
	return k > KindNone && int(k) <= MaxKinds
}

// ParseKind converts a kind name or its letter to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(s) {
	case "strawberry", "s":
		return KindStrawberry, true
	case "grape", "g":
		return KindGrape, true
	case "blueberry", "b":
		return KindBlueberry, true
	case "lemon", "l":
		return KindLemon, true
	case "orange", "o":
		return KindOrange, true
	case "mint", "m":
		return KindMint, true
	default:
		return KindNone, false
	}
}

// Pos is a grid position. Row 0 is the top row.
type Pos struct {
	Row int
	Col int
}

// P is a convenience constructor for Pos.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Manhattan returns the Manhattan distance to another position.
func (p Pos) Manhattan(other Pos) int {
	dr := p.Row - other.Row
	dc := p.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// Adjacent reports whether other is an orthogonal neighbour of p.
func (p Pos) Adjacent(other Pos) bool {
	return p.Manhattan(other) == 1
}

// Token is one grid cell's game piece. Tokens are values; a token keeps its
// identity only within one resolution step.
type Token struct {
	Kind Kind
	Pos  Pos
}

// PosSet is a set of grid positions.
type PosSet map[Pos]struct{}

// Add inserts p into the set.
func (s PosSet) Add(p Pos) {
	s[p] = struct{}{}
}

// Has reports whether p is in the set.
func (s PosSet) Has(p Pos) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of positions in the set.
func (s PosSet) Len() int {
	return len(s)
}

// Sorted returns the positions ordered by row, then column.
func (s PosSet) Sorted() []Pos {
	out := make([]Pos, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sortPositions(out)
	return out
}
