// Package pheromone implements the shared trail field: a sparse mapping from
// (directed edge, trail type) to a decaying scalar strength that agents read
// to bias movement and write as they travel.
package pheromone

import (
	"sort"

	"github.com/talgya/anthive/internal/graph"
)

// TrailType classifies what a trail advertises.
type TrailType uint8

const (
	TrailExploration TrailType = iota
	TrailFood
)

// TrailName returns a human-readable trail type name.
func TrailName(t TrailType) string {
	switch t {
	case TrailFood:
		return "food"
	default:
		return "exploration"
	}
}

const (
	// MaxLevel is the ceiling a single entry's level is clamped to.
	MaxLevel = 5.0

	// MinLevel is the floor below which an entry is dropped from the field.
	MinLevel = 0.01

	// ReverseShare is the fraction of a deposit credited to the opposite
	// direction: the direction of travel gets full credit, the way back half.
	ReverseShare = 0.5
)

type key struct {
	From graph.NodeID
	To   graph.NodeID
	Type TrailType
}

// Entry is one directed trail record. DepositedBy identifies the last actor
// that reinforced it; attribution is for observers only and never feeds back
// into simulation logic.
type Entry struct {
	From        graph.NodeID `json:"from"`
	To          graph.NodeID `json:"to"`
	Type        TrailType    `json:"type"`
	Level       float64      `json:"level"`
	DepositedBy string       `json:"deposited_by"`
}

// Field holds all live trail entries. Entries are created lazily on first
// deposit and removed once decay takes them below MinLevel, so the field
// stays sparse.
type Field struct {
	entries map[key]*Entry
}

// NewField creates an empty pheromone field.
func NewField() *Field {
	return &Field{entries: make(map[key]*Entry)}
}

// Deposit reinforces the (from, to, kind) trail by amount and the reverse
// direction by amount×ReverseShare. Both directions record the depositor.
func (f *Field) Deposit(from, to graph.NodeID, kind TrailType, amount float64, by string) {
	if amount <= 0 || from == to {
		return
	}
	f.raise(from, to, kind, amount, by)
	f.raise(to, from, kind, amount*ReverseShare, by)
}

func (f *Field) raise(from, to graph.NodeID, kind TrailType, amount float64, by string) {
	k := key{From: from, To: to, Type: kind}
	e, ok := f.entries[k]
	if !ok {
		e = &Entry{From: from, To: to, Type: kind}
		f.entries[k] = e
	}
	e.Level += amount
	if e.Level > MaxLevel {
		e.Level = MaxLevel
	}
	e.DepositedBy = by
}

// Level returns the stored strength of a directed trail, or 0 when absent.
func (f *Field) Level(from, to graph.NodeID, kind TrailType) float64 {
	if e, ok := f.entries[key{From: from, To: to, Type: kind}]; ok {
		return e.Level
	}
	return 0
}

// Decay fades every entry by the per-tick factor (1 − rate·dt) and drops
// entries that fall below MinLevel. This is the only path that removes
// entries; field size is bounded by decay dynamics and edge count alone.
func (f *Field) Decay(dt, rate float64) {
	factor := 1 - rate*dt
	if factor < 0 {
		factor = 0
	}
	for k, e := range f.entries {
		e.Level *= factor
		if e.Level < MinLevel {
			delete(f.entries, k)
		}
	}
}

// Size returns the number of live entries.
func (f *Field) Size() int {
	return len(f.entries)
}

// Entries returns a copy of all live entries, ordered deterministically by
// (from, to, type) for stable observation output.
func (f *Field) Entries() []Entry {
	out := make([]Entry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		if out[i].To != out[j].To {
			return out[i].To < out[j].To
		}
		return out[i].Type < out[j].Type
	})
	return out
}
