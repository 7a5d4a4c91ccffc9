package engine

import (
	"testing"
	"time"
)

// patternKind tiles the board so that no two neighbours share a kind.
func patternKind(p Pos) Kind {
	return Kind((p.Row+2*p.Col)%5 + 1)
}

var patternFactory = FactoryFunc(func(p Pos) Token {
	return Token{Kind: patternKind(p), Pos: p}
})

// patternRows is the 6x6 board patternFactory produces.
var patternRows = []string{
	"SBOGLS",
	"GLSBOG",
	"BOGLSB",
	"LSBOGL",
	"OGLSBO",
	"SBOGLS",
}

// scenarioRows is the pattern with row 2 set to [A,A,B,C,D,E].
var scenarioRows = []string{
	"SBOGLS",
	"GLSBOG",
	"SSGBLO",
	"LSBOGL",
	"OGLSBO",
	"SBOGLS",
}

// scriptFactory hands out queued kinds, then the fallback, and records calls.
type scriptFactory struct {
	queue    []Kind
	fallback Kind
	calls    []Pos
}

func newScript(letters string) *scriptFactory {
	f := &scriptFactory{fallback: KindMint}
	for _, ch := range letters {
		k, _ := ParseKind(string(ch))
		f.queue = append(f.queue, k)
	}
	return f
}

func (f *scriptFactory) Create(p Pos) Token {
	f.calls = append(f.calls, p)
	if len(f.queue) == 0 {
		return Token{Kind: f.fallback, Pos: p}
	}
	k := f.queue[0]
	f.queue = f.queue[1:]
	return Token{Kind: k, Pos: p}
}

type recordClock struct {
	sleeps []time.Duration
}

func (c *recordClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
}

func mustGrid(t *testing.T, rows []string, f Factory) *Grid {
	t.Helper()
	g, err := GridFromStrings(rows, f)
	if err != nil {
		t.Fatalf("GridFromStrings() error = %v", err)
	}
	return g
}

// newTestSession starts a pattern game and swaps in rows when given.
func newTestSession(t *testing.T, rows []string, refill Factory, opts ...Option) *Session {
	t.Helper()
	cfg := DefaultConfig()
	s, err := NewSession(cfg, patternFactory, opts...)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	if rows != nil {
		if err := s.UseGrid(mustGrid(t, rows, refill)); err != nil {
			t.Fatalf("UseGrid() error = %v", err)
		}
	}
	return s
}

// hasThreeInLine checks every straight triple directly.
func hasThreeInLine(s Snapshot) bool {
	n := s.Size
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			k := s.At(P(r, c))
			if c+2 < n && s.At(P(r, c+1)) == k && s.At(P(r, c+2)) == k {
				return true
			}
			if r+2 < n && s.At(P(r+1, c)) == k && s.At(P(r+2, c)) == k {
				return true
			}
		}
	}
	return false
}

func rowsOf(s Snapshot) []string {
	out := make([]string, s.Size)
	for r := 0; r < s.Size; r++ {
		var b []rune
		for _, k := range s.Row(r) {
			b = append(b, k.Char())
		}
		out[r] = string(b)
	}
	return out
}

func equalRows(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
