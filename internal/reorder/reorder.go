// Package reorder implements pure list reordering for columns and cards.
// It is deliberately free of any persistence or rendering concern: callers
// map the results onto position columns and persist them in one batch.
package reorder

import (
	"fmt"

	"github.com/google/uuid"
)

// Placement assigns a dense position to an id within a column
type Placement struct {
	ID       uuid.UUID
	ColumnID uuid.UUID
	Position int
}

// Move removes the element at from and reinserts it at to, returning a new
// slice. The input is never mutated. to is the index in the resulting list.
func Move(ids []uuid.UUID, from, to int) ([]uuid.UUID, error) {
	if from < 0 || from >= len(ids) {
		return nil, fmt.Errorf("source index %d out of range [0,%d)", from, len(ids))
	}
	if to < 0 || to >= len(ids) {
		return nil, fmt.Errorf("destination index %d out of range [0,%d)", to, len(ids))
	}

	moved := ids[from]

	without := make([]uuid.UUID, 0, len(ids)-1)
	without = append(without, ids[:from]...)
	without = append(without, ids[from+1:]...)

	out := make([]uuid.UUID, 0, len(ids))
	out = append(out, without[:to]...)
	out = append(out, moved)
	out = append(out, without[to:]...)
	return out, nil
}

// MoveAcross removes the element at fromIdx in src and inserts it at toIdx in
// dst, returning new slices for both. toIdx may equal len(dst) to append.
func MoveAcross(src, dst []uuid.UUID, fromIdx, toIdx int) (newSrc, newDst []uuid.UUID, err error) {
	if fromIdx < 0 || fromIdx >= len(src) {
		return nil, nil, fmt.Errorf("source index %d out of range [0,%d)", fromIdx, len(src))
	}
	if toIdx < 0 || toIdx > len(dst) {
		return nil, nil, fmt.Errorf("destination index %d out of range [0,%d]", toIdx, len(dst))
	}

	moved := src[fromIdx]

	newSrc = make([]uuid.UUID, 0, len(src)-1)
	newSrc = append(newSrc, src[:fromIdx]...)
	newSrc = append(newSrc, src[fromIdx+1:]...)

	newDst = make([]uuid.UUID, 0, len(dst)+1)
	newDst = append(newDst, dst[:toIdx]...)
	newDst = append(newDst, moved)
	newDst = append(newDst, dst[toIdx:]...)

	return newSrc, newDst, nil
}

// Renumber maps an ordered id list onto dense zero-based placements for the
// given column.
func Renumber(columnID uuid.UUID, ids []uuid.UUID) []Placement {
	placements := make([]Placement, len(ids))
	for i, id := range ids {
		placements[i] = Placement{ID: id, ColumnID: columnID, Position: i}
	}
	return placements
}

// ValidatePermutation verifies that got contains exactly the ids in want, each
// exactly once. Order is not checked.
func ValidatePermutation(want, got []uuid.UUID) error {
	if len(want) != len(got) {
		return fmt.Errorf("expected %d ids, got %d", len(want), len(got))
	}

	seen := make(map[uuid.UUID]bool, len(want))
	for _, id := range want {
		seen[id] = false
	}
	for _, id := range got {
		used, ok := seen[id]
		if !ok {
			return fmt.Errorf("unknown id %s", id)
		}
		if used {
			return fmt.Errorf("duplicate id %s", id)
		}
		seen[id] = true
	}
	return nil
}
