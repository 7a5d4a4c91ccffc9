// Package engine implements the cookie match-3 rules: token generation, the grid
// store, run detection, cascade resolution and the turn state machine.
//
// The package is UI-agnostic and deterministic given its random source. It never
// sleeps on its own and never starts goroutines; callers either pull cascade
// frames one at a time (Session.Advance) or let Session.SelectCell drive them
// through an injected Clock.
package engine
