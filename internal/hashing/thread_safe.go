package hashing

import (
	"sync"

	"github.com/lgbarn/tilechess-go/internal/chess"
)

// ThreadSafeDuplicateDetector shares one DuplicateDetector between the
// analysis workers of a batch.
type ThreadSafeDuplicateDetector struct {
	mu sync.Mutex
	d  *DuplicateDetector
}

// DetectorStats is a snapshot of a detector's counters.
type DetectorStats struct {
	Unique     int
	Duplicates int
	Full       bool
}

// NewThreadSafeDuplicateDetector creates a shared detector. maxCapacity of
// 0 means unlimited.
func NewThreadSafeDuplicateDetector(exactMatch bool, maxCapacity int) *ThreadSafeDuplicateDetector {
	return &ThreadSafeDuplicateDetector{d: NewDuplicateDetector(exactMatch, maxCapacity)}
}

// CheckAndAdd reports whether the position was already recorded, recording
// it if not.
func (t *ThreadSafeDuplicateDetector) CheckAndAdd(pieces []chess.Piece, toMove chess.Colour) bool {
	_, dup := t.Record("", pieces, toMove)
	return dup
}

// Record is CheckAndAdd keeping the input name of each first occurrence.
// Which of two concurrent identical inputs counts as first is decided by
// whichever worker gets here first.
func (t *ThreadSafeDuplicateDetector) Record(name string, pieces []chess.Piece, toMove chess.Colour) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.d.Record(name, pieces, toMove)
}

// DuplicateCount returns the number of duplicates detected.
func (t *ThreadSafeDuplicateDetector) DuplicateCount() int {
	return t.Stats().Duplicates
}

// Stats returns the current counters.
func (t *ThreadSafeDuplicateDetector) Stats() DetectorStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return DetectorStats{
		Unique:     t.d.UniqueCount(),
		Duplicates: t.d.DuplicateCount(),
		Full:       t.d.IsFull(),
	}
}

// Reset forgets every recorded position.
func (t *ThreadSafeDuplicateDetector) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.d.Reset()
}
