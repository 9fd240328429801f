package board

import "testing"

func TestGivesCheckDirect(t *testing.T) {
	// Rook on a1 delivers direct check by sliding up the open a-file to a7,
	// one square short of the black king on a8.
	pos, err := ParseFEN("k7/8/8/8/8/8/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	move := NewMove(A1, A7)
	if !pos.GivesCheck(move) {
		t.Error("expected Ra7 to give check")
	}
}

func TestGivesCheckDiscovered(t *testing.T) {
	// Rook on a1, white king on a2 shields a black king on a8; moving the
	// king off the file uncovers a discovered check from the rook.
	pos, err := ParseFEN("k7/8/8/8/8/8/K7/R7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	move := NewMove(A2, B3)
	if !pos.GivesCheck(move) {
		t.Error("expected Kb3 to discover check from the rook on a1")
	}
}

func TestGivesCheckFalseForQuietMove(t *testing.T) {
	pos, err := ParseFEN("k7/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	move := NewMove(E1, E2)
	if pos.GivesCheck(move) {
		t.Error("expected Ke2 not to give check")
	}
}

func TestGivesCheckLeavesPositionUnchanged(t *testing.T) {
	pos, err := ParseFEN("k7/8/8/8/8/8/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	hashBefore := pos.Hash

	pos.GivesCheck(NewMove(A1, A7))

	if pos.Hash != hashBefore {
		t.Errorf("GivesCheck mutated position: hash %016x != %016x", pos.Hash, hashBefore)
	}
	if pos.SideToMove != White {
		t.Errorf("GivesCheck left SideToMove = %v, want White", pos.SideToMove)
	}
}

func TestGivesCheckEnPassantReveals(t *testing.T) {
	// The white pawn on e5 and the black pawn on f5 (just played f7-f5)
	// both stand between the white rook on a5 and the black king on h5.
	// Capturing en passant (exf6) takes both pawns off the fifth rank and
	// reveals check along it, independent of the capturing pawn's own
	// destination square.
	pos, err := ParseFEN("8/8/8/R3Pp1k/8/8/8/4K3 w - f6 0 1")
	if err != nil {
		t.Fatal(err)
	}

	move := NewEnPassant(E5, F6)
	if !pos.GivesCheck(move) {
		t.Error("expected en passant capture to reveal check from the rook on a5")
	}
}
