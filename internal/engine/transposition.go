package engine

import (
	"github.com/arcbrook/corvid/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// ttClusterSize is the number of entries sharing one index (cache-line-sized
// bucket); a probe or store scans the whole cluster before giving up.
const ttClusterSize = 3

// rawTTEntry is the packed in-memory shape of one transposition table slot.
// genBoundPV packs the replacement generation (bits 3-7), the "found in a
// PV search" flag (bit 2) and the bound type (bits 0-1) into a single byte,
// Stockfish-style, so the table stays five words wide per entry instead of
// six.
type rawTTEntry struct {
	key        uint16
	move       board.Move
	value      int16
	eval       int16
	depth      int8
	genBoundPV uint8
}

func packGenBoundPV(gen uint8, pv bool, bound TTFlag) uint8 {
	g := (gen << 3) & 0xF8
	b := uint8(bound) & 0x3
	if pv {
		return g | 0x4 | b
	}
	return g | b
}

func (e *rawTTEntry) bound() TTFlag   { return TTFlag(e.genBoundPV & 0x3) }
func (e *rawTTEntry) isPV() bool      { return e.genBoundPV&0x4 != 0 }
func (e *rawTTEntry) generation() uint8 { return e.genBoundPV >> 3 }
func (e *rawTTEntry) occupied() bool  { return e.depth != 0 || e.key != 0 || e.move != board.NoMove }

// relativeAge returns the replacement weight used to pick which cluster slot
// to evict: lower is a better eviction target (shallow, old entries first).
func (e *rawTTEntry) relativeAge(currentGen uint8) int {
	genDiff := int(currentGen) - int(e.generation())
	if genDiff < 0 {
		genDiff += 32 // generation byte wraps at 5 bits
	}
	return int(e.depth) - 8*genDiff
}

type ttCluster struct {
	entries [ttClusterSize]rawTTEntry
}

// TTEntry is the caller-facing view of a probed transposition table slot.
type TTEntry struct {
	BestMove board.Move
	Score    int16
	Eval     int16
	Depth    int8
	Flag     TTFlag
	IsPV     bool
}

// TranspositionTable is a clustered hash table for storing search results.
// It is shared without locks across worker goroutines (see SPEC_FULL.md
// §4.H / §4.K): the key fragment stored in each entry is what protects a
// reader from acting on a torn write from a concurrent goroutine.
type TranspositionTable struct {
	clusters []ttCluster
	mask     uint64
	gen      uint8

	hits   uint64
	probes uint64
}

// NewTranspositionTable creates a transposition table with the given size in MB.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	const clusterSize = uint64(ttClusterSize * 16) // rawTTEntry is 10B; sizing budgets 16B per slot

	numClusters := (uint64(sizeMB) * 1024 * 1024) / clusterSize
	numClusters = roundDownToPowerOf2(numClusters)
	if numClusters == 0 {
		numClusters = 1
	}

	return &TranspositionTable{
		clusters: make([]ttCluster, numClusters),
		mask:     numClusters - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up a position in the transposition table.
// Returns the entry and true if found, otherwise returns empty entry and false.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes++

	cluster := &tt.clusters[hash&tt.mask]
	key := uint16(hash >> 48)

	for i := range cluster.entries {
		e := &cluster.entries[i]
		if e.occupied() && e.key == key {
			tt.hits++
			return TTEntry{
				BestMove: e.move,
				Score:    e.value,
				Eval:     e.eval,
				Depth:    e.depth,
				Flag:     e.bound(),
				IsPV:     e.isPV(),
			}, true
		}
	}

	return TTEntry{}, false
}

// Store saves a position in the transposition table.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int, eval int, flag TTFlag, bestMove board.Move, isPV bool) {
	cluster := &tt.clusters[hash&tt.mask]
	key := uint16(hash >> 48)

	var target *rawTTEntry
	for i := range cluster.entries {
		e := &cluster.entries[i]
		if !e.occupied() {
			target = e
			break
		}
		if e.key == key {
			target = e
			break
		}
		if target == nil || e.relativeAge(tt.gen) < target.relativeAge(tt.gen) {
			target = e
		}
	}

	// Keep the existing move on a re-store of the same key unless we now
	// have an exact bound or no move at all was recorded before.
	move := bestMove
	if target.key == key && bestMove == board.NoMove && target.move != board.NoMove && flag != TTExact {
		move = target.move
	}

	target.key = key
	target.move = move
	target.value = int16(score)
	target.eval = int16(eval)
	target.depth = int8(depth)
	target.genBoundPV = packGenBoundPV(tt.gen, isPV, flag)
}

// NewSearch increments the generation counter for a new search.
// This helps with replacement decisions.
func (tt *TranspositionTable) NewSearch() {
	tt.gen = (tt.gen + 1) & 0x1F
}

// Clear clears the transposition table.
func (tt *TranspositionTable) Clear() {
	for i := range tt.clusters {
		tt.clusters[i] = ttCluster{}
	}
	tt.gen = 0
	tt.hits = 0
	tt.probes = 0
}

// HashFull returns the permille (parts per thousand) of the table that is
// occupied by entries from the current generation, sampled from the first
// 1000 clusters.
func (tt *TranspositionTable) HashFull() int {
	sampleSize := 1000
	if uint64(sampleSize) > uint64(len(tt.clusters)) {
		sampleSize = len(tt.clusters)
	}

	used := 0
	for i := 0; i < sampleSize; i++ {
		for j := range tt.clusters[i].entries {
			e := &tt.clusters[i].entries[j]
			if e.occupied() && e.generation() == tt.gen {
				used++
			}
		}
	}

	return (used * 1000) / (sampleSize * ttClusterSize)
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// Size returns the number of clusters in the table.
func (tt *TranspositionTable) Size() uint64 {
	return uint64(len(tt.clusters))
}

// AdjustScoreFromTT adjusts a score read from the transposition table.
// Mate scores need to be adjusted based on ply distance.
func AdjustScoreFromTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

// AdjustScoreToTT adjusts a score for storage in the transposition table.
func AdjustScoreToTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}
