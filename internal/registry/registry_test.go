package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/cookie-crush/internal/core"
)

type stubGame struct {
	id string
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Description() string                  { return "a stub board" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-b", func() Game { return &stubGame{id: "stub-b"} })
	Register("stub-a", func() Game { return &stubGame{id: "stub-a"} })

	if !Exists("stub-a") || !Exists("stub-b") {
		t.Fatal("registered games should exist")
	}

	var order []string
	for _, info := range List() {
		if info.ID == "stub-a" || info.ID == "stub-b" {
			order = append(order, info.ID)
			if info.Title != "Stub "+info.ID || info.Description != "a stub board" {
				t.Errorf("info = %+v", info)
			}
		}
	}
	if len(order) != 2 || order[0] != "stub-b" || order[1] != "stub-a" {
		t.Errorf("List() order = %v, expected registration order", order)
	}

	g, err := Create("stub-a")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "stub-a" {
		t.Errorf("ID() = %q, expected stub-a", g.ID())
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-board"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create() error = %v, expected ErrUnknownGame", err)
	}
	if Exists("no-such-board") {
		t.Error("Exists() = true for unknown id")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })
}
