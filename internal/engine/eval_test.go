package engine

import (
	"testing"

	"github.com/arcbrook/corvid/internal/board"
)

func evalPos(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) failed: %v", fen, err)
	}
	return pos
}

func TestEvaluateStartposIsTempoBonusOnly(t *testing.T) {
	// The starting position is perfectly symmetric, so every term besides
	// the side-to-move tempo bonus cancels out.
	pos := board.NewPosition()
	if score := Evaluate(pos); score != tempoBonus {
		t.Errorf("Evaluate(startpos) = %d, want %d (tempo bonus only)", score, tempoBonus)
	}
}

func TestEvaluateSymmetricMirroredPositionsAgree(t *testing.T) {
	// Two color-and-square mirrored positions, each evaluated from its own
	// side to move, must score identically.
	white := evalPos(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	black := evalPos(t, "rnbqkb1r/pppp1ppp/5n2/4p3/4P3/2N5/PPPP1PPP/R1BQKBNR b KQkq - 2 3")

	scoreWhite := Evaluate(white)
	scoreBlack := Evaluate(black)

	if scoreWhite != scoreBlack {
		t.Errorf("mirrored positions scored asymmetrically: white-to-move=%d, black-to-move=%d", scoreWhite, scoreBlack)
	}
}

func TestEvaluateMaterialAdvantageIsPositive(t *testing.T) {
	// White is up a whole rook with an otherwise balanced position.
	pos := evalPos(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	if score := Evaluate(pos); score <= 0 {
		t.Errorf("Evaluate(up a rook) = %d, want > 0", score)
	}
}

func TestEvaluateMaterialDisadvantageIsNegative(t *testing.T) {
	// Same position with colors swapped and black to move: black is up a
	// rook, so black's own-perspective score should be positive.
	pos := evalPos(t, "r3k3/8/8/8/8/8/8/4K3 b - - 0 1")
	if score := Evaluate(pos); score <= 0 {
		t.Errorf("Evaluate(black up a rook, black to move) = %d, want > 0", score)
	}
}
