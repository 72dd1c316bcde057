package searcher

import (
	"santorini/game"
)

// Entry aggregates the playouts through one state. Wins counts playouts the player to move in
// that state did NOT go on to win, so Ratio estimates how likely the mover there is to lose.
type Entry struct {
	Wins     float64
	Playouts float64
}

// Ratio is Wins/Playouts, 0 for an entry without playouts
func (e Entry) Ratio() float64 {
	if e.Playouts == 0 {
		return 0
	}
	return e.Wins / e.Playouts
}

// Table is a transposition table shared by every simulation of one game session. It is owned by
// a single searcher and never accessed concurrently.
type Table struct {
	entries map[game.State]*Entry
}

func NewTable() *Table {
	return &Table{entries: make(map[game.State]*Entry)}
}

func (t *Table) Get(state game.State) (Entry, bool) {
	e, ok := t.entries[state]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// AddNew inserts a fresh entry, an existing entry is left untouched
func (t *Table) AddNew(state game.State) {
	if _, ok := t.entries[state]; !ok {
		t.entries[state] = &Entry{}
	}
}

// RecordOutcome counts one playout through state. States without an entry are not tracked and
// are ignored; it reports whether an entry was updated.
func (t *Table) RecordOutcome(state game.State, moverWon bool) bool {
	e, ok := t.entries[state]
	if !ok {
		return false
	}
	e.Playouts++
	if !moverWon {
		e.Wins++
	}
	return true
}

// Prune removes every entry that can no longer occur after committed: heights only ever grow,
// so any state with a cell lower than in committed is unreachable. Returns the number removed.
func (t *Table) Prune(committed game.State) int {
	removed := 0
	for state := range t.entries {
		if !reachable(state, committed) {
			delete(t.entries, state)
			removed++
		}
	}
	return removed
}

func reachable(state, from game.State) bool {
	for x := 0; x < game.BoardWidth; x++ {
		for y := 0; y < game.BoardWidth; y++ {
			if state.Heights[x][y] < from.Heights[x][y] {
				return false
			}
		}
	}
	return true
}

func (t *Table) Len() int {
	return len(t.entries)
}
