package engine

// MinRun is the shortest run that counts as a match.
const MinRun = 3

// Run is a maximal straight line of tokens of one kind.
type Run struct {
	Start      Pos
	Length     int
	Horizontal bool
	Kind       Kind
}

// Positions returns the cells covered by the run.
func (r Run) Positions() []Pos {
	out := make([]Pos, r.Length)
	for i := 0; i < r.Length; i++ {
		if r.Horizontal {
			out[i] = Pos{Row: r.Start.Row, Col: r.Start.Col + i}
		} else {
			out[i] = Pos{Row: r.Start.Row + i, Col: r.Start.Col}
		}
	}
	return out
}

// Swap is a pair of adjacent cells whose exchange forms a match.
type Swap struct {
	A Pos
	B Pos
}

// FindRuns returns every maximal run of MinRun or more, rows first, then
// columns. Empty cells never form a run.
func FindRuns(g *Grid) []Run {
	var runs []Run
	n := g.size
	for r := 0; r < n; r++ {
		runs = scanLine(g, runs, Pos{Row: r}, true)
	}
	for c := 0; c < n; c++ {
		runs = scanLine(g, runs, Pos{Col: c}, false)
	}
	return runs
}

func scanLine(g *Grid, runs []Run, start Pos, horizontal bool) []Run {
	at := func(i int) Pos {
		if horizontal {
			return Pos{Row: start.Row, Col: i}
		}
		return Pos{Row: i, Col: start.Col}
	}
	prev := KindNone
	runLen := 0
	runStart := 0
	flush := func() {
		if prev.Valid() && runLen >= MinRun {
			runs = append(runs, Run{Start: at(runStart), Length: runLen, Horizontal: horizontal, Kind: prev})
		}
	}
	for i := 0; i < g.size; i++ {
		cur := g.cells[g.idx(at(i))].kind
		if cur == prev {
			runLen++
			continue
		}
		flush()
		prev = cur
		runLen = 1
		runStart = i
	}
	flush()
	return runs
}

// FindMatches returns the deduplicated cells of all runs. The set is empty,
// never nil, when the grid has no match.
func FindMatches(g *Grid) PosSet {
	set := PosSet{}
	for _, run := range FindRuns(g) {
		for _, p := range run.Positions() {
			set.Add(p)
		}
	}
	return set
}

// HasMatch reports whether the grid holds at least one run.
func HasMatch(g *Grid) bool {
	return len(FindRuns(g)) > 0
}

// FindSwaps returns every adjacent swap that would create a match involving
// one of the swapped cells. The grid is not modified.
func FindSwaps(g *Grid) []Swap {
	var swaps []Swap
	trial := g.Clone()
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			a := Pos{Row: r, Col: c}
			for _, b := range []Pos{{Row: r, Col: c + 1}, {Row: r + 1, Col: c}} {
				if !g.InBounds(b) || g.Kind(a) == g.Kind(b) {
					continue
				}
				_ = trial.Swap(a, b)
				set := FindMatches(trial)
				if set.Has(a) || set.Has(b) {
					swaps = append(swaps, Swap{A: a, B: b})
				}
				_ = trial.Swap(a, b)
			}
		}
	}
	return swaps
}
