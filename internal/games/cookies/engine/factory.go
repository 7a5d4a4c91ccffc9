package engine

// IntNSource is the part of *math/rand.Rand the token factory needs.
type IntNSource interface {
	Intn(n int) int
}

// Factory creates tokens for grid cells. Implementations must not look at the
// grid: a new token never depends on its neighbours.
type Factory interface {
	Create(p Pos) Token
}

// RandomFactory picks token kinds uniformly from the first n kinds of the palette.
type RandomFactory struct {
	src   IntNSource
	kinds int
}

// NewRandomFactory creates a factory drawing from src. kinds is clamped to
// [1, MaxKinds].
func NewRandomFactory(src IntNSource, kinds int) *RandomFactory {
	if kinds < 1 {
		kinds = 1
	}
	if kinds > MaxKinds {
		kinds = MaxKinds
	}
	return &RandomFactory{src: src, kinds: kinds}
}

// Create returns a new token for p.
func (f *RandomFactory) Create(p Pos) Token {
	return Token{Kind: Kind(f.src.Intn(f.kinds) + 1), Pos: p}
}

// Kinds returns the number of kinds the factory draws from.
func (f *RandomFactory) Kinds() int {
	return f.kinds
}

// FactoryFunc adapts a plain function to the Factory interface.
type FactoryFunc func(p Pos) Token

// Create calls f(p).
func (f FactoryFunc) Create(p Pos) Token {
	return f(p)
}
