package engine

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func TestStartGame(t *testing.T) {
	s, st, snap, err := StartGame(6, 30, patternFactory)
	if err != nil {
		t.Fatalf("StartGame() error = %v", err)
	}
	if st.Phase != PhaseIdle {
		t.Errorf("Phase = %s, want %s", st.Phase, PhaseIdle)
	}
	if st.Score != 0 || st.MovesRemaining != 30 || st.Moves != 0 {
		t.Errorf("State = %+v, want score 0 and 30 moves", st)
	}
	if st.Selection != nil {
		t.Errorf("Selection = %v, want nil", *st.Selection)
	}
	if snap.Size != 6 || !equalRows(rowsOf(snap), patternRows) {
		t.Errorf("Snapshot = %v, want pattern board", rowsOf(snap))
	}
	if s.Config().PointsPerToken != DefaultPointsPerToken {
		t.Errorf("PointsPerToken = %d, want %d", s.Config().PointsPerToken, DefaultPointsPerToken)
	}
}

func TestStartGameInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"size too small", Config{Size: 2}},
		{"size too large", Config{Size: 13}},
		{"too few kinds", Config{Kinds: 3}},
		{"too many kinds", Config{Kinds: 7}},
		{"negative moves", Config{Moves: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSession(tt.cfg, patternFactory); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("NewSession() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestTapSelectAndDeselect(t *testing.T) {
	s := newTestSession(t, nil, nil)

	st, err := s.Tap(P(1, 1))
	if err != nil {
		t.Fatalf("Tap() error = %v", err)
	}
	if st.Phase != PhaseAwaitingSecondTap || st.Selection == nil || *st.Selection != P(1, 1) {
		t.Errorf("after first tap state = %+v, want selection (1,1)", st)
	}

	st, _ = s.Tap(P(1, 1))
	if st.Phase != PhaseIdle || st.Selection != nil {
		t.Errorf("after same tap state = %+v, want idle without selection", st)
	}
	if st.MovesRemaining != DefaultMoves {
		t.Errorf("MovesRemaining = %d, want %d", st.MovesRemaining, DefaultMoves)
	}
}

func TestTapNonAdjacentReplacesSelection(t *testing.T) {
	s := newTestSession(t, nil, nil)
	_, _ = s.Tap(P(0, 0))

	for _, p := range []Pos{P(1, 1), P(3, 1), P(3, 4)} {
		st, err := s.Tap(p)
		if err != nil {
			t.Fatalf("Tap(%v) error = %v", p, err)
		}
		if st.Phase != PhaseAwaitingSecondTap || *st.Selection != p {
			t.Errorf("Tap(%v) state = %+v, want selection %v", p, st, p)
		}
		if st.MovesRemaining != DefaultMoves {
			t.Errorf("Tap(%v) MovesRemaining = %d, want %d", p, st.MovesRemaining, DefaultMoves)
		}
	}
	if !s.Snapshot().Equal(mustGrid(t, patternRows, patternFactory).Snapshot()) {
		t.Error("non-adjacent taps changed the grid")
	}
}

func TestTapInvalidPosition(t *testing.T) {
	s := newTestSession(t, nil, nil)
	_, _ = s.Tap(P(2, 2))
	before := s.State()

	for _, p := range []Pos{P(-1, 0), P(0, 6), P(6, 6)} {
		st, err := s.Tap(p)
		if !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("Tap(%v) error = %v, want ErrInvalidPosition", p, err)
		}
		if st.Phase != before.Phase || *st.Selection != *before.Selection {
			t.Errorf("Tap(%v) changed state to %+v", p, st)
		}
	}
	if _, err := s.SelectCell(P(9, 9)); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("SelectCell() error = %v, want ErrInvalidPosition", err)
	}
}

func TestUnproductiveSwapCostsMove(t *testing.T) {
	s := newTestSession(t, scenarioRows, newScript(""))

	if _, err := s.SelectCell(P(2, 1)); err != nil {
		t.Fatalf("SelectCell() error = %v", err)
	}
	st, err := s.SelectCell(P(2, 2))
	if err != nil {
		t.Fatalf("SelectCell() error = %v", err)
	}
	if st.Score != 0 {
		t.Errorf("Score = %d, want 0", st.Score)
	}
	if st.MovesRemaining != DefaultMoves-1 || st.Moves != 1 {
		t.Errorf("moves = %d remaining, %d made, want %d and 1", st.MovesRemaining, st.Moves, DefaultMoves-1)
	}
	if st.Phase != PhaseIdle {
		t.Errorf("Phase = %s, want %s", st.Phase, PhaseIdle)
	}
	want := append([]string(nil), scenarioRows...)
	want[2] = "SGSBLO"
	if got := rowsOf(s.Snapshot()); !equalRows(got, want) {
		t.Errorf("grid = %v, want %v", got, want)
	}
}

func TestProductiveSwapScoresAndEmitsFrames(t *testing.T) {
	s := newTestSession(t, scenarioRows, newScript("MLM"))
	var frames []Frame
	cancel := s.Subscribe(func(f Frame) {
		frames = append(frames, f)
	})
	defer cancel()

	_, _ = s.SelectCell(P(1, 2))
	st, err := s.SelectCell(P(2, 2))
	if err != nil {
		t.Fatalf("SelectCell() error = %v", err)
	}
	if st.Score != 30 {
		t.Errorf("Score = %d, want 30", st.Score)
	}
	if st.MovesRemaining != DefaultMoves-1 {
		t.Errorf("MovesRemaining = %d, want %d", st.MovesRemaining, DefaultMoves-1)
	}

	wantPhases := []FramePhase{FrameSwapped, FrameMarked, FrameCompacted, FrameSettled}
	if len(frames) != len(wantPhases) {
		t.Fatalf("got %d frames, want %d", len(frames), len(wantPhases))
	}
	for i, p := range wantPhases {
		if frames[i].Phase != p {
			t.Errorf("frame %d phase = %s, want %s", i, frames[i].Phase, p)
		}
	}
	if got := rowsOf(frames[0].Grid); !equalRows(got, swappedRows) {
		t.Errorf("swap frame = %v, want %v", got, swappedRows)
	}
	if frames[3].ScoreDelta != 30 {
		t.Errorf("settled ScoreDelta = %d, want 30", frames[3].ScoreDelta)
	}
}

func TestSelectCellSleepsFrameDelays(t *testing.T) {
	clock := &recordClock{}
	s := newTestSession(t, scenarioRows, newScript("MLM"), WithClock(clock))
	_, _ = s.SelectCell(P(1, 2))
	_, _ = s.SelectCell(P(2, 2))

	want := []time.Duration{DefaultSwapDelay, DefaultPhaseDelay, DefaultStepDelay}
	if len(clock.sleeps) != len(want) {
		t.Fatalf("sleeps = %v, want %v", clock.sleeps, want)
	}
	for i := range want {
		if clock.sleeps[i] != want[i] {
			t.Errorf("sleep %d = %v, want %v", i, clock.sleeps[i], want[i])
		}
	}
}

func TestTapIgnoredWhileResolving(t *testing.T) {
	s := newTestSession(t, scenarioRows, newScript("MLM"))
	_, _ = s.Tap(P(1, 2))
	st, _ := s.Tap(P(2, 2))
	if st.Phase != PhaseResolving {
		t.Fatalf("Phase = %s, want %s", st.Phase, PhaseResolving)
	}

	before := s.Snapshot()
	for _, p := range []Pos{P(0, 0), P(2, 3), P(5, 5)} {
		got, err := s.Tap(p)
		if err != nil {
			t.Errorf("Tap(%v) error = %v, want nil", p, err)
		}
		if got.Phase != PhaseResolving || got.Selection != nil || got.MovesRemaining != DefaultMoves-1 {
			t.Errorf("Tap(%v) while resolving changed state to %+v", p, got)
		}
	}
	if !s.Snapshot().Equal(before) {
		t.Error("taps while resolving changed the grid")
	}
	if _, ok := s.Hint(); ok {
		t.Error("Hint() while resolving = true, want false")
	}

	for {
		_, ok, err := s.Advance()
		if err != nil {
			t.Fatalf("Advance() error = %v", err)
		}
		if !ok {
			break
		}
	}
	if got := s.State(); got.Phase != PhaseIdle || got.Score != 30 {
		t.Errorf("after cascade state = %+v, want idle with score 30", got)
	}
}

func TestMovesExhaustToGameOver(t *testing.T) {
	s := newTestSession(t, nil, nil)

	for i := 1; i <= DefaultMoves; i++ {
		_, _ = s.SelectCell(P(0, 0))
		st, err := s.SelectCell(P(0, 1))
		if err != nil {
			t.Fatalf("swap %d: SelectCell() error = %v", i, err)
		}
		if st.MovesRemaining != DefaultMoves-i {
			t.Fatalf("swap %d: MovesRemaining = %d, want %d", i, st.MovesRemaining, DefaultMoves-i)
		}
		if st.Score != 0 {
			t.Fatalf("swap %d: Score = %d, want 0", i, st.Score)
		}
		wantPhase := PhaseIdle
		if i == DefaultMoves {
			wantPhase = PhaseGameOver
		}
		if st.Phase != wantPhase {
			t.Fatalf("swap %d: Phase = %s, want %s", i, st.Phase, wantPhase)
		}
	}

	before := s.Snapshot()
	for _, p := range []Pos{P(0, 0), P(0, 1), P(3, 3)} {
		st, err := s.SelectCell(p)
		if err != nil {
			t.Errorf("SelectCell(%v) after game over error = %v", p, err)
		}
		if st.Phase != PhaseGameOver || st.MovesRemaining != 0 || st.Selection != nil {
			t.Errorf("SelectCell(%v) after game over state = %+v", p, st)
		}
	}
	if !s.Snapshot().Equal(before) {
		t.Error("grid changed after game over")
	}
}

func TestRandomPlayInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	cfg := DefaultConfig()
	cfg.Moves = 50
	s, err := NewSession(cfg, NewRandomFactory(rand.New(rand.NewSource(5)), 5))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	prev := s.State()
	for i := 0; i < 2000 && prev.Phase != PhaseGameOver; i++ {
		p := P(rng.Intn(8)-1, rng.Intn(8)-1)
		st, err := s.SelectCell(p)
		if err != nil && !errors.Is(err, ErrInvalidPosition) {
			t.Fatalf("SelectCell(%v) error = %v", p, err)
		}
		if st.Score < prev.Score {
			t.Fatalf("Score went from %d to %d", prev.Score, st.Score)
		}
		if st.MovesRemaining < 0 {
			t.Fatalf("MovesRemaining = %d", st.MovesRemaining)
		}
		used := prev.MovesRemaining - st.MovesRemaining
		if used != 0 && used != 1 {
			t.Fatalf("one tap used %d moves", used)
		}
		if used == 1 && st.Moves != prev.Moves+1 {
			t.Fatalf("Moves = %d, want %d", st.Moves, prev.Moves+1)
		}
		if st.Phase == PhaseIdle && st.Moves > 0 && FindMatches(s.grid).Len() != 0 {
			t.Fatalf("idle grid still has matches:\n%v", s.grid)
		}
		prev = st
	}
	if prev.MovesRemaining+prev.Moves != cfg.Moves {
		t.Errorf("remaining %d + made %d != budget %d", prev.MovesRemaining, prev.Moves, cfg.Moves)
	}
}

func TestRestartDiscardsCascade(t *testing.T) {
	s := newTestSession(t, scenarioRows, newScript("MLM"))
	_, _ = s.Tap(P(1, 2))
	_, _ = s.Tap(P(2, 2))
	if _, ok, _ := s.Advance(); !ok {
		t.Fatal("Advance() = false, want swap frame")
	}
	if f, _, _ := s.Advance(); f.Phase != FrameMarked {
		t.Fatalf("Advance() phase = %s, want %s", f.Phase, FrameMarked)
	}

	st, snap, err := s.Restart()
	if err != nil {
		t.Fatalf("Restart() error = %v", err)
	}
	if st.Phase != PhaseIdle || st.Score != 0 || st.MovesRemaining != DefaultMoves || st.Moves != 0 {
		t.Errorf("Restart() state = %+v, want a fresh game", st)
	}
	if !equalRows(rowsOf(snap), patternRows) {
		t.Errorf("Restart() grid = %v, want fresh pattern board", rowsOf(snap))
	}
	for r := 0; r < snap.Size; r++ {
		for c := 0; c < snap.Size; c++ {
			if snap.IsMarked(P(r, c)) {
				t.Fatalf("cell %v still marked after restart", P(r, c))
			}
		}
	}
	if _, ok, err := s.Advance(); ok || err != nil {
		t.Errorf("Advance() after restart = %v, %v, want false and nil", ok, err)
	}
}

func TestRestartFromSubscriberStopsSelectCell(t *testing.T) {
	s := newTestSession(t, scenarioRows, newScript("MLM"))
	var frames int
	s.Subscribe(func(f Frame) {
		frames++
		if f.Phase == FrameMarked {
			_, _, _ = s.Restart()
		}
	})
	_, _ = s.SelectCell(P(1, 2))
	st, err := s.SelectCell(P(2, 2))
	if err != nil {
		t.Fatalf("SelectCell() error = %v", err)
	}
	if st.Score != 0 || st.Phase != PhaseIdle || st.MovesRemaining != DefaultMoves {
		t.Errorf("state = %+v, want the restarted game", st)
	}
	if frames != 2 {
		t.Errorf("frames = %d, want 2", frames)
	}
}

func TestCascadeFaultEndsGame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 3
	cfg.MaxSteps = 3
	s, err := NewSession(cfg, patternFactory)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	f := newScript("")
	f.fallback = KindStrawberry
	if err := s.UseGrid(mustGrid(t, []string{"SSG", "SGS", "GSS"}, f)); err != nil {
		t.Fatalf("UseGrid() error = %v", err)
	}

	_, _ = s.SelectCell(P(0, 2))
	st, err := s.SelectCell(P(1, 2))
	if !errors.Is(err, ErrCascadeLimit) {
		t.Fatalf("SelectCell() error = %v, want ErrCascadeLimit", err)
	}
	if st.Phase != PhaseGameOver || !errors.Is(st.Fault, ErrInvariantViolation) {
		t.Errorf("state = %+v, want game over with a fault", st)
	}
	if got, _ := s.Tap(P(0, 0)); got.Phase != PhaseGameOver {
		t.Errorf("Tap() after fault phase = %s, want %s", got.Phase, PhaseGameOver)
	}

	st, _, err = s.Restart()
	if err != nil {
		t.Fatalf("Restart() error = %v", err)
	}
	if st.Fault != nil || st.Phase != PhaseIdle {
		t.Errorf("Restart() state = %+v, want idle without fault", st)
	}
}

func TestUseGridAfterPlay(t *testing.T) {
	s := newTestSession(t, nil, nil)
	_, _ = s.SelectCell(P(0, 0))
	_, _ = s.SelectCell(P(0, 1))
	if err := s.UseGrid(mustGrid(t, patternRows, patternFactory)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("UseGrid() error = %v, want ErrInvalidConfig", err)
	}
}

func TestSubscribeCancel(t *testing.T) {
	s := newTestSession(t, nil, nil)
	var a, b int
	cancelA := s.Subscribe(func(Frame) { a++ })
	s.Subscribe(func(Frame) { b++ })

	_, _ = s.SelectCell(P(0, 0))
	_, _ = s.SelectCell(P(0, 1))
	cancelA()
	_, _ = s.SelectCell(P(0, 0))
	_, _ = s.SelectCell(P(0, 1))

	if a != 2 {
		t.Errorf("cancelled subscriber got %d frames, want 2", a)
	}
	if b != 4 {
		t.Errorf("subscriber got %d frames, want 4", b)
	}
}

func TestHintAndClearSelection(t *testing.T) {
	s := newTestSession(t, scenarioRows, newScript(""))
	sw, ok := s.Hint()
	if !ok {
		t.Fatal("Hint() = false, want a swap")
	}
	if sw != (Swap{A: P(1, 1), B: P(1, 2)}) {
		t.Errorf("Hint() = %v, want (1,1)-(1,2)", sw)
	}

	_, _ = s.Tap(P(4, 4))
	st := s.ClearSelection()
	if st.Phase != PhaseIdle || st.Selection != nil {
		t.Errorf("ClearSelection() state = %+v, want idle", st)
	}

	p := newTestSession(t, nil, nil)
	if _, ok := p.Hint(); ok {
		t.Error("Hint() on pattern board = true, want false")
	}
}

func TestStateIsACopy(t *testing.T) {
	s := newTestSession(t, nil, nil)
	st, _ := s.Tap(P(2, 2))
	*st.Selection = P(5, 5)
	if got := s.State(); *got.Selection != P(2, 2) {
		t.Errorf("Selection = %v after editing a copy, want (2,2)", *got.Selection)
	}
}
