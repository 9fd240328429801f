package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/arcbrook/corvid/internal/board"
)

// TestScenarioFoolsMateIsRecognizedAsMate covers the position reached after
// 1.e4 f6 2.d4 g5 3.Qh5#: Black has no legal moves and is in check, so the search
// must report a null move with a mate score rather than trying to search on.
func TestScenarioFoolsMateIsRecognizedAsMate(t *testing.T) {
	pos, err := board.ParseFEN("rnbqkbnr/ppppp2p/5p2/6pQ/3PP3/8/PPP2PPP/RNB1KBNR b KQkq - 1 3")
	if err != nil {
		t.Fatal(err)
	}
	if !pos.IsCheckmate() {
		t.Fatal("test setup invalid: position is not checkmate")
	}

	eng := NewEngine(16)
	move := eng.SearchWithLimits(pos, SearchLimits{Depth: 4})
	if move != board.NoMove {
		t.Errorf("bestmove = %s, want 0000 (no legal moves)", move.String())
	}
}

// TestScenarioMateInOne covers Ra8#, depth 3 from white's side.
func TestScenarioMateInOne(t *testing.T) {
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	eng := NewEngine(16)
	move := eng.SearchWithLimits(pos, SearchLimits{Depth: 3})

	want := board.NewMove(board.A1, board.A8)
	if move != want {
		t.Errorf("bestmove = %s, want %s (Ra8#)", move.String(), want.String())
	}

	undo := pos.MakeMove(move)
	if !pos.IsCheckmate() {
		t.Error("Ra8 does not deliver checkmate")
	}
	pos.UnmakeMove(move, undo)
}

// TestScenarioThreefoldRepetitionIsDetected plays the knight shuffle
// g1f3 g8f6 f3g1 f6g8 g1f3 g8f6 f3g1 f6g8 from the start position, which
// returns to the starting position for the third time, and checks the
// worker-level draw detection a real search would consult mid-tree.
func TestScenarioThreefoldRepetitionIsDetected(t *testing.T) {
	pos := board.NewPosition()
	hashes := []uint64{pos.Hash}

	moves := []board.Move{
		board.NewMove(board.G1, board.F3),
		board.NewMove(board.G8, board.F6),
		board.NewMove(board.F3, board.G1),
		board.NewMove(board.F6, board.G8),
		board.NewMove(board.G1, board.F3),
		board.NewMove(board.G8, board.F6),
		board.NewMove(board.F3, board.G1),
		board.NewMove(board.F6, board.G8),
	}
	for _, m := range moves {
		pos.MakeMove(m)
		hashes = append(hashes, pos.Hash)
	}

	if pos.Hash != board.NewPosition().Hash {
		t.Fatal("test setup invalid: final position does not match the starting position")
	}

	var stopFlag atomic.Bool
	w := NewWorker(0, NewTranspositionTable(1), NewPawnTable(1), NewSharedHistory(), &stopFlag)
	w.SetRootHistory(hashes)
	w.InitSearch(pos)

	if !w.isDraw() {
		t.Error("expected threefold repetition to be recognized as a draw")
	}
}

// TestScenarioFiftyMoveRuleIsDetected checks a non-mate position whose
// halfmove clock has already reached 100 (fifty full moves without a
// capture or pawn push).
func TestScenarioFiftyMoveRuleIsDetected(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 100 75")
	if err != nil {
		t.Fatal(err)
	}
	if pos.IsCheckmate() || pos.IsStalemate() {
		t.Fatal("test setup invalid: position is a mate/stalemate, not a quiet 50-move position")
	}

	var stopFlag atomic.Bool
	w := NewWorker(0, NewTranspositionTable(1), NewPawnTable(1), NewSharedHistory(), &stopFlag)
	w.SetRootHistory([]uint64{pos.Hash})
	w.InitSearch(pos)

	if !w.isDraw() {
		t.Error("expected halfmove clock of 100 to be recognized as a fifty-move draw")
	}
}

// TestScenarioMateInOneTimeBounded is a sanity check that the same mate
// position also resolves correctly under a wall-clock limit instead of a
// depth limit, matching how the UCI "go" command is actually driven.
func TestScenarioMateInOneTimeBounded(t *testing.T) {
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	eng := NewEngine(16)
	move := eng.SearchWithLimits(pos, SearchLimits{MoveTime: 500 * time.Millisecond})

	want := board.NewMove(board.A1, board.A8)
	if move != want {
		t.Errorf("bestmove = %s, want %s (Ra8#)", move.String(), want.String())
	}
}
