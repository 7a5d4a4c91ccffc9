package cookies

import (
	"github.com/vovakirdan/cookie-crush/internal/config"
	"github.com/vovakirdan/cookie-crush/internal/games/cookies/boards"
	"github.com/vovakirdan/cookie-crush/internal/games/cookies/engine"
)

// Preset is a named board setup. Zero fields keep the loaded configuration.
type Preset struct {
	ID          string
	Title       string
	Description string
	Size        int
	Kinds       int
	Moves       int
}

// Presets lists the boards in menu order.
var Presets = []Preset{
	{
		ID:          "classic",
		Title:       "Classic",
		Description: "6x6 board, 30 moves",
	},
	{
		ID:          "blitz",
		Title:       "Blitz",
		Description: "6x6 board, 15 moves",
		Moves:       15,
	},
	{
		ID:          "grand",
		Title:       "Grand",
		Description: "8x8 board, 6 kinds, 40 moves",
		Size:        8,
		Kinds:       6,
		Moves:       40,
	},
}

// PresetByID returns the preset with the given ID.
func PresetByID(id string) (Preset, bool) {
	for _, p := range Presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// Package-level settings applied on every Reset, set by the CLI.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	sizeOverride     int
	movesOverride    int
	startBoard       *boards.Board
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Empty keeps the preset's kinds.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetOverrides forces the board size and move budget. Zero keeps the preset value.
func SetOverrides(size, moves int) {
	sizeOverride = size
	movesOverride = moves
}

// SetStartBoard makes every new game open on b. Nil deals random boards.
func SetStartBoard(b *boards.Board) {
	startBoard = b
}

// EngineConfig merges the YAML config, the preset, the difficulty and the
// overrides into engine settings. Later sources win.
func EngineConfig(cfg config.CookiesConfig, p Preset) engine.Config {
	ec := engine.Config{
		Size:           cfg.Board.Size,
		Kinds:          cfg.Board.Kinds,
		Moves:          cfg.Rules.Moves,
		PointsPerToken: cfg.Rules.PointsPerCookie,
		PhaseDelay:     cfg.Timing.PhaseDelay,
		StepDelay:      cfg.Timing.StepDelay,
		SwapDelay:      cfg.Timing.SwapDelay,
		MaxSteps:       cfg.Rules.MaxCascadeSteps,
	}
	if p.Size > 0 {
		ec.Size = p.Size
	}
	if p.Kinds > 0 {
		ec.Kinds = p.Kinds
	}
	if p.Moves > 0 {
		ec.Moves = p.Moves
	}
	if difficultyPreset != "" {
		ec.Kinds = config.KindsForPreset(difficultyPreset)
	}
	if sizeOverride > 0 {
		ec.Size = sizeOverride
	}
	if startBoard != nil && startBoard.Moves > 0 {
		ec.Moves = startBoard.Moves
	}
	if movesOverride > 0 {
		ec.Moves = movesOverride
	}
	// A scripted board fixes the size.
	if startBoard != nil {
		ec.Size = startBoard.Size()
	}
	return ec.WithDefaults()
}
