package engine

import (
	"testing"

	"github.com/arcbrook/corvid/internal/board"
)

func seePos(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) failed: %v", fen, err)
	}
	return pos
}

func TestSEEWinningPawnTakesRook(t *testing.T) {
	// Black rook on e5 hangs to the white pawn on d4; nothing recaptures.
	pos := seePos(t, "4k3/8/8/4r3/3P4/8/8/4K3 w - - 0 1")
	move := board.NewMove(board.D4, board.E5)

	score := SEE(pos, move)
	if score != RookValue {
		t.Errorf("SEE(dxe5) = %d, want %d", score, RookValue)
	}
}

func TestSEELosingQueenTakesDefendedPawn(t *testing.T) {
	// White queen captures a pawn on e5 that is defended by a black pawn on
	// d6; SEE should recognize the queen is lost for a pawn.
	pos := seePos(t, "4k3/8/3p4/4p3/8/8/8/3QK3 w - - 0 1")
	move := board.NewMove(board.D1, board.E5)

	// Queen (900) is recaptured for a pawn (100): net = +100 (pawn) - 900 (queen) = -800
	want := PawnValue - QueenValue
	if score := SEE(pos, move); score != want {
		t.Errorf("SEE(Qxe5) = %d, want %d", score, want)
	}
}

func TestSEENonCaptureIsZero(t *testing.T) {
	pos := seePos(t, "4k3/8/8/8/3P4/8/8/4K3 w - - 0 1")
	move := board.NewMove(board.D4, board.D5)

	if score := SEE(pos, move); score != 0 {
		t.Errorf("SEE(non-capture) = %d, want 0", score)
	}
}

func TestSEEEqualTrade(t *testing.T) {
	// Pawn takes pawn, recaptured by pawn: net gain 0.
	pos := seePos(t, "4k3/8/3p4/4p3/3P4/8/8/4K3 w - - 0 1")
	move := board.NewMove(board.D4, board.E5)

	if score := SEE(pos, move); score != 0 {
		t.Errorf("SEE(equal pawn trade) = %d, want 0", score)
	}
}
