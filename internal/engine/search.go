package engine

import (
	"sync/atomic"

	"github.com/arcbrook/corvid/internal/board"
)

// Search constants
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128
)

// PVTable stores the principal variation.
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

// Searcher is a single-threaded front end onto a Worker, used where
// SearchMultiPV needs iterative deepening with root-move exclusions and
// doesn't need the Lazy-SMP fan-out that SearchWithLimits/SearchWithUCILimits
// use instead. It owns its own stop flag so Multi-PV analysis can be
// cancelled independently of the main search workers.
type Searcher struct {
	worker   *Worker
	stopFlag atomic.Bool
}

// NewSearcher creates a new single-threaded searcher sharing the engine's
// transposition table and a dedicated per-searcher pawn table.
func NewSearcher(tt *TranspositionTable) *Searcher {
	s := &Searcher{}
	s.worker = NewWorker(-1, tt, NewPawnTable(1), NewSharedHistory(), &s.stopFlag)
	return s
}

// Stop signals the search to stop.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// IsStopped reports whether the last search was cancelled before completion.
func (s *Searcher) IsStopped() bool {
	return s.stopFlag.Load()
}

// Reset resets the searcher for a new search.
func (s *Searcher) Reset() {
	s.stopFlag.Store(false)
	s.worker.Reset()
}

// SetRootHistory sets the repetition-detection history for the next search.
func (s *Searcher) SetRootHistory(hashes []uint64) {
	s.worker.SetRootHistory(hashes)
}

// SetExcludedMoves sets the root moves to skip, for Multi-PV analysis.
func (s *Searcher) SetExcludedMoves(moves []board.Move) {
	s.worker.SetExcludedMoves(moves)
}

// ClearOrderer clears the searcher's move-ordering tables.
func (s *Searcher) ClearOrderer() {
	s.worker.orderer.Clear()
}

// Nodes returns the number of nodes searched.
func (s *Searcher) Nodes() uint64 {
	return s.worker.Nodes()
}

// Search performs an iterative-deepening-free, single-depth search, matching
// the shape SearchMultiPV's own iterative deepening loop drives it with.
func (s *Searcher) Search(pos *board.Position, depth int) (board.Move, int) {
	s.worker.InitSearch(pos)
	return s.worker.SearchDepth(depth, -Infinity, Infinity)
}

// GetPV returns the principal variation from the last search.
func (s *Searcher) GetPV() []board.Move {
	return s.worker.GetPV()
}
