package board

import "testing"

// TestScenarioEnPassantPinLegality covers two en-passant captures that are
// pseudo-legal but differ on whether performing them actually leaves the
// capturing side's own king in check.
func TestScenarioEnPassantPinLegality(t *testing.T) {
	// Black to move, no pin: ...e4xd3 e.p. is safe.
	safe, err := ParseFEN("8/8/8/2k5/3Pp3/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatal(err)
	}
	epSafe := NewEnPassant(E4, D3)
	if !safe.IsLegal(epSafe) {
		t.Error("expected e4d3 en passant to be legal (no pin)")
	}

	// White to move: capturing e5xd6 e.p. removes the pawn on e5 that was
	// blocking the black rook on h5 from the white king on a5, exposing the
	// king along rank 5.
	pinned, err := ParseFEN("8/8/8/K2pP2r/8/8/8/4k3 w - d6 0 1")
	if err != nil {
		t.Fatal(err)
	}
	epPinned := NewEnPassant(E5, D6)
	if pinned.IsLegal(epPinned) {
		t.Error("expected e5d6 en passant to be illegal: it exposes the white king to the rook on h5")
	}
}

// TestScenarioCastlingBlockedByAttack covers a kingside castle that is
// rejected because the king would pass through an attacked square, not
// because the squares are occupied or castling rights are missing.
func TestScenarioCastlingBlockedByAttack(t *testing.T) {
	pos, err := ParseFEN("5r2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	castle := NewCastling(E1, G1)
	if pos.GeneratePseudoLegalMoves().Contains(castle) {
		t.Error("expected kingside castle to be excluded from generation: f1 is attacked by the rook on f8")
	}
}

// TestScenarioCastlingAllowedWithoutAttack is the control case for
// TestScenarioCastlingBlockedByAttack: with the attacker removed, the same
// castle is generated normally.
func TestScenarioCastlingAllowedWithoutAttack(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	castle := NewCastling(E1, G1)
	if !pos.GeneratePseudoLegalMoves().Contains(castle) {
		t.Error("expected kingside castle to be generated when no square is attacked")
	}
}
