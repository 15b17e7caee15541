// Package hashing provides Zobrist position hashing and duplicate position
// detection.
package hashing

import (
	"github.com/lgbarn/tilechess-go/internal/chess"
)

// Keys are derived from the piece itself rather than looked up in a random
// table, so hashes are stable across runs and boards of any size.
const (
	weakSalt  uint64 = 0x5bd1e9955bd1e995
	blackSalt uint64 = 1 << 48
)

// splitmix64 is the finaliser of the SplitMix64 generator.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

func pieceKey(p chess.Piece) uint64 {
	return uint64(uint8(p.Cell.I)) |
		uint64(uint8(p.Cell.J))<<8 |
		uint64(p.Colour)<<16 |
		uint64(p.Kind)<<24 |
		1<<40
}

// PlacementHash hashes piece placement only. The result does not depend on
// the order of the snapshot.
func PlacementHash(pieces []chess.Piece) uint64 {
	var h uint64
	for _, p := range pieces {
		h ^= splitmix64(pieceKey(p))
	}
	return h
}

// ZobristHash hashes placement and side to move.
func ZobristHash(pieces []chess.Piece, toMove chess.Colour) uint64 {
	h := PlacementHash(pieces)
	if toMove == chess.Black {
		h ^= splitmix64(blackSalt)
	}
	return h
}

// WeakHash is an additive hash used as a secondary check against Zobrist
// collisions.
func WeakHash(pieces []chess.Piece) uint64 {
	var h uint64
	for _, p := range pieces {
		h += splitmix64(pieceKey(p) ^ weakSalt)
	}
	return h
}

// PositionSignature identifies a position for duplicate detection.
type PositionSignature struct {
	Hash       uint64 // placement hash
	WeakHash   uint64
	PieceCount int
	ToMove     chess.Colour
	Name       string // input that first held the position; not compared
}

// Signature computes the signature of a position.
func Signature(pieces []chess.Piece, toMove chess.Colour) PositionSignature {
	return PositionSignature{
		Hash:       PlacementHash(pieces),
		WeakHash:   WeakHash(pieces),
		PieceCount: len(pieces),
		ToMove:     toMove,
	}
}

// DuplicateDetector tracks seen positions.
type DuplicateDetector struct {
	// hashTable maps placement hashes to the signatures seen with them
	hashTable map[uint64][]PositionSignature
	// exactMatch also requires the side to move to match
	exactMatch bool
	// maxCapacity limits stored signatures (0 = unlimited)
	maxCapacity int
	// stored counts signatures in hashTable
	stored         int
	duplicateCount int
}

// NewDuplicateDetector creates a new duplicate detector.
// maxCapacity of 0 means unlimited capacity.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:   make(map[uint64][]PositionSignature),
		exactMatch:  exactMatch,
		maxCapacity: maxCapacity,
	}
}

// CheckAndAdd checks if a position was seen before and records it.
// Returns true if the position is a duplicate.
func (d *DuplicateDetector) CheckAndAdd(pieces []chess.Piece, toMove chess.Colour) bool {
	_, dup := d.Record("", pieces, toMove)
	return dup
}

// Record is CheckAndAdd that remembers name with a new position. For a
// duplicate it returns the name the position was first recorded under.
// Once the detector is full, new positions are still checked but no
// longer recorded.
func (d *DuplicateDetector) Record(name string, pieces []chess.Piece, toMove chess.Colour) (string, bool) {
	sig := Signature(pieces, toMove)
	sig.Name = name

	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return existing.Name, true
		}
	}

	if d.IsFull() {
		return "", false
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	d.stored++
	return "", false
}

// signaturesMatch checks if two signatures describe the same position.
func (d *DuplicateDetector) signaturesMatch(a, b PositionSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash || a.PieceCount != b.PieceCount {
		return false
	}
	if d.exactMatch && a.ToMove != b.ToMove {
		return false
	}
	return true
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of distinct positions recorded.
func (d *DuplicateDetector) UniqueCount() int {
	return d.stored
}

// IsFull returns true if the detector has reached its capacity limit.
// Always returns false for unlimited capacity (maxCapacity = 0).
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.stored >= d.maxCapacity
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]PositionSignature)
	d.stored = 0
	d.duplicateCount = 0
}
