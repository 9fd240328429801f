package engine

import (
	"testing"

	"github.com/arcbrook/corvid/internal/board"
)

func TestTTStoreProbeRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(1)

	hash := uint64(0x1234567890abcdef)
	move := board.NewMove(board.E2, board.E4)

	tt.Store(hash, 8, 123, 45, TTExact, move, true)

	entry, ok := tt.Probe(hash)
	if !ok {
		t.Fatal("expected to find stored entry")
	}
	if entry.BestMove != move {
		t.Errorf("BestMove = %v, want %v", entry.BestMove, move)
	}
	if entry.Score != 123 {
		t.Errorf("Score = %d, want 123", entry.Score)
	}
	if entry.Eval != 45 {
		t.Errorf("Eval = %d, want 45", entry.Eval)
	}
	if entry.Depth != 8 {
		t.Errorf("Depth = %d, want 8", entry.Depth)
	}
	if entry.Flag != TTExact {
		t.Errorf("Flag = %v, want TTExact", entry.Flag)
	}
	if !entry.IsPV {
		t.Error("IsPV = false, want true")
	}
}

func TestTTProbeMiss(t *testing.T) {
	tt := NewTranspositionTable(1)

	if _, ok := tt.Probe(0xdeadbeef); ok {
		t.Error("expected miss on empty table")
	}
}

func TestTTKeyFragmentDiscriminatesAliases(t *testing.T) {
	tt := NewTranspositionTable(1)

	// Two different full hashes that collide on the cluster index (low bits)
	// must not collide on the stored key fragment (top 16 bits).
	hashA := uint64(0x0001000000000001)
	hashB := uint64(0x0002000000000001)
	if hashA&tt.mask != hashB&tt.mask {
		t.Fatal("test setup invalid: hashes don't share a cluster index")
	}

	moveA := board.NewMove(board.E2, board.E4)
	tt.Store(hashA, 4, 10, 10, TTExact, moveA, false)

	if _, ok := tt.Probe(hashB); ok {
		t.Error("probe for a different key fragment should miss, not alias")
	}
	if entry, ok := tt.Probe(hashA); !ok || entry.BestMove != moveA {
		t.Error("original entry should still be retrievable")
	}
}

func TestTTPreservesMoveOnNonExactRestoreWithNoNewMove(t *testing.T) {
	tt := NewTranspositionTable(1)
	hash := uint64(0xaabbccddeeff0011)
	move := board.NewMove(board.D2, board.D4)

	tt.Store(hash, 6, 50, 50, TTExact, move, false)
	// Re-store same key with no move and a non-exact bound: the earlier move
	// should survive so a later probe still has something to order with.
	tt.Store(hash, 4, 10, 10, TTLowerBound, board.NoMove, false)

	entry, ok := tt.Probe(hash)
	if !ok {
		t.Fatal("expected entry to still be present")
	}
	if entry.BestMove != move {
		t.Errorf("BestMove = %v, want preserved %v", entry.BestMove, move)
	}
}

func TestTTNewSearchAdvancesGeneration(t *testing.T) {
	tt := NewTranspositionTable(1)
	if tt.gen != 0 {
		t.Fatalf("fresh table gen = %d, want 0", tt.gen)
	}
	tt.NewSearch()
	if tt.gen != 1 {
		t.Errorf("gen after one NewSearch = %d, want 1", tt.gen)
	}
	for i := 0; i < 32; i++ {
		tt.NewSearch()
	}
	if tt.gen != 1 {
		t.Errorf("gen after wraparound = %d, want 1 (5-bit wrap)", tt.gen)
	}
}

func TestTTClearResetsState(t *testing.T) {
	tt := NewTranspositionTable(1)
	hash := uint64(0x1111222233334444)
	tt.Store(hash, 1, 1, 1, TTExact, board.NewMove(board.E2, board.E4), false)
	tt.NewSearch()

	tt.Clear()

	if _, ok := tt.Probe(hash); ok {
		t.Error("expected table to be empty after Clear")
	}
	if tt.gen != 0 {
		t.Errorf("gen after Clear = %d, want 0", tt.gen)
	}
}

func TestAdjustScoreToAndFromTT(t *testing.T) {
	cases := []struct {
		name  string
		score int
		ply   int
	}{
		{"mate for us", MateScore - 5, 3},
		{"mate against us", -MateScore + 5, 3},
		{"ordinary score", 120, 10},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			stored := AdjustScoreToTT(c.score, c.ply)
			restored := AdjustScoreFromTT(stored, c.ply)
			if restored != c.score {
				t.Errorf("round trip: got %d, want %d", restored, c.score)
			}
		})
	}
}

func TestTTHashFullAndHitRate(t *testing.T) {
	tt := NewTranspositionTable(1)

	if hf := tt.HashFull(); hf != 0 {
		t.Errorf("HashFull on empty table = %d, want 0", hf)
	}
	if hr := tt.HitRate(); hr != 0 {
		t.Errorf("HitRate with no probes = %f, want 0", hr)
	}

	hash := uint64(0x0102030405060708)
	tt.Store(hash, 5, 0, 0, TTExact, board.NoMove, false)
	tt.Probe(hash)     // hit
	tt.Probe(hash + 1) // miss, different cluster likely

	if hr := tt.HitRate(); hr <= 0 || hr > 100 {
		t.Errorf("HitRate = %f, want in (0, 100]", hr)
	}
}
