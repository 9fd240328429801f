// Package engine implements the chess AI search engine.
package engine

import (
	"github.com/arcbrook/corvid/internal/board"
)

// Evaluation constants
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 20000
)

// Piece values array for quick lookup
var pieceValues = [7]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue, 0}

// Passed pawn bonuses by rank (from pawn's perspective)
// Index is the relative rank: 0 = rank 1, 1 = rank 2, 6 = rank 7 (about to promote)
var passedPawnBonus = [8]int{0, 10, 20, 40, 70, 120, 200, 0}

const (
	passedPawnConnectedBonus = 20 // Connected passed pawns
	passedPawnProtectedBonus = 15 // Protected by own pawn
	passedPawnFreePathBonus  = 30 // No blockers in front
)

// Mobility weights per piece type
var mobilityMgWeight = [6]int{0, 4, 5, 2, 1, 0} // Pawn, Knight, Bishop, Rook, Queen, King
var mobilityEgWeight = [6]int{0, 3, 4, 4, 2, 0}

// King safety weights per attacker type
var attackerWeight = [6]int{0, 20, 20, 40, 80, 0} // Pawn, Knight, Bishop, Rook, Queen, King

const (
	pawnShieldBonus      = 10  // Bonus per pawn in front of king
	pawnShieldMissing    = -15 // Penalty per missing shield pawn
	openFileNearKing     = -20 // Penalty for open file near king
	semiOpenFileNearKing = -10 // Penalty for semi-open file
)

// Bishop pair bonus (having two bishops)
const (
	bishopPairMgBonus = 25
	bishopPairEgBonus = 50
)

// Rook on open/semi-open file bonuses
const (
	rookOpenFileMg     = 20
	rookOpenFileEg     = 25
	rookSemiOpenFileMg = 10
	rookSemiOpenFileEg = 15
)

// Pawn structure penalties
const (
	doubledPawnMgPenalty  = -15
	doubledPawnEgPenalty  = -20
	isolatedPawnMgPenalty = -20
	isolatedPawnEgPenalty = -25
	backwardPawnMgPenalty = -15
	backwardPawnEgPenalty = -10
)

// Outpost bonuses
const (
	knightOutpostMg          = 25
	knightOutpostEg          = 15
	knightOutpostProtectedMg = 15
	knightOutpostProtectedEg = 10
	bishopOutpostMg          = 15
	bishopOutpostEg          = 10
)

// Tempo bonus - small advantage for having the move
const tempoBonus = 10

// Threat evaluation constants
const (
	hangingPiecePenalty = -40 // Undefended piece attacked by enemy
	threatByPawnBonus   = 25  // Attacking enemy piece with pawn
	threatByMinorBonus  = 20  // Attacking enemy major with minor
	loosePiecePenalty   = -10 // Undefended piece (potential target)
)

// King tropism weights per piece type (bonus for proximity to enemy king)
var tropismWeight = [6]int{0, 3, 2, 2, 5, 0} // Pawn, Knight, Bishop, Rook, Queen, King

// Passed pawn king distance bonus table
var kingDistanceBonus = [8]int{0, 0, 10, 20, 30, 40, 50, 60}

const passedPawnUnstoppableBonus = 200 // Pawn cannot be caught by enemy king

// Piece coordination constants
const (
	// Rooks on 7th rank
	rookOn7thMg          = 30
	rookOn7thEg          = 40
	rookOn7thWithPawnsMg = 15 // Extra bonus if enemy has pawns on 2nd rank
	rookOn7thWithPawnsEg = 20
	doubleRooksOn7thMg   = 50 // Both rooks on 7th (pig rooks)
	doubleRooksOn7thEg   = 60

	// Connected rooks (defending each other)
	connectedRooksMg = 10
	connectedRooksEg = 15

	// Doubled rooks on file
	doubledRooksOnFileMg = 20
	doubledRooksOnFileEg = 25
)

// Space evaluation constants
const (
	spaceSquareBonus     = 2 // Per safe square in space zone controlled
	spaceBehindPawnBonus = 3 // Extra bonus if behind our pawn chain
	spaceMinPieces       = 3 // Minimum pieces to apply space evaluation
)

// Space zones for each side (central files, ranks 2-5 for white, 4-7 for black)
var (
	whiteSpaceZone = (board.FileC | board.FileD | board.FileE | board.FileF) &
		(board.Rank2 | board.Rank3 | board.Rank4 | board.Rank5)
	blackSpaceZone = (board.FileC | board.FileD | board.FileE | board.FileF) &
		(board.Rank4 | board.Rank5 | board.Rank6 | board.Rank7)
)

// Trapped piece penalties
const (
	// Bad bishop penalty (per blocking pawn on same color)
	badBishopPenaltyMg = -5
	badBishopPenaltyEg = -10

	// Trapped bishop (on a6/h6/a3/h3 corners)
	trappedBishopPenaltyMg = -80
	trappedBishopPenaltyEg = -50

	// Trapped rook (in corner by own king, no castling rights)
	trappedRookPenaltyMg = -50
	trappedRookPenaltyEg = -25

	// Knight on rim penalties
	knightRimPenaltyMg    = -15 // On rim with 3 or fewer moves
	knightRimPenaltyEg    = -10
	knightCornerPenaltyMg = -30 // On corner squares
	knightCornerPenaltyEg = -20
)

// Light and dark square masks
var (
	lightSquares board.Bitboard // Squares where file+rank is odd (a1 is dark)
	darkSquares  board.Bitboard // Squares where file+rank is even
)

// Rim and corner masks for knights
var (
	rimSquares    = board.FileA | board.FileH | board.Rank1 | board.Rank8
	cornerSquares = board.SquareBB(board.A1) | board.SquareBB(board.H1) |
		board.SquareBB(board.A8) | board.SquareBB(board.H8)
)

func init() {
	// Initialize light/dark square masks
	for sq := board.A1; sq <= board.H8; sq++ {
		if (sq.File()+sq.Rank())%2 == 1 {
			lightSquares |= board.SquareBB(sq)
		} else {
			darkSquares |= board.SquareBB(sq)
		}
	}
}

// Piece-Square Tables (PST) for positional evaluation
// Values are from White's perspective; mirrored for Black

// Pawn PST - encourages central control and advancement
var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

// Knight PST - encourages central positioning
var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

// Bishop PST - encourages central diagonals
var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

// Rook PST - encourages 7th rank and open files
var rookPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

// Queen PST - slight central preference
var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

// King PST (middlegame) - encourages castling
var kingMidgamePST = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

// King PST (endgame) - king should be active
var kingEndgamePST = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

// All PSTs combined for easy lookup
var psts = [...][64]int{
	pawnPST, knightPST, bishopPST, rookPST, queenPST, kingMidgamePST,
}

// tapered holds a middlegame/endgame score pair, the standard representation
// for a tapered-eval term: every positional factor contributes a value for
// each game phase, and the two are blended once at the very end.
type tapered struct {
	mg, eg int
}

func (t *tapered) add(d tapered) { t.mg += d.mg; t.eg += d.eg }

// maxPhase is the total phase weight at full material: two pieces of each
// minor/major kind per side (4*1 knight+bishop + 2*2 rook + 1*4 queen = 12
// per side, scaled below to 24 total).
const maxPhase = 24

// phaseWeight scores how much one piece of pt contributes to the game phase
// counter that blends middlegame and endgame term values.
func phaseWeight(pt board.PieceType) int {
	switch pt {
	case board.Knight, board.Bishop:
		return 1
	case board.Rook:
		return 2
	case board.Queen:
		return 4
	default:
		return 0
	}
}

// materialAndPST walks every piece on the board once, folding in material
// value, its piece-square table term, and its contribution to the game
// phase counter - the one pass every other term in Evaluate builds on top of.
func materialAndPST(pos *board.Position) (score tapered, phase int) {
	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}

		for pt := board.Pawn; pt <= board.King; pt++ {
			bb := pos.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()

				pstSq := sq
				if c == board.Black {
					pstSq = sq.Mirror()
				}

				if pt == board.King {
					score.mg += sign * kingMidgamePST[pstSq]
					score.eg += sign * kingEndgamePST[pstSq]
				} else {
					pstValue := psts[pt][pstSq]
					score.mg += sign * (pieceValues[pt] + pstValue)
					score.eg += sign * (pieceValues[pt] + pstValue)
				}

				phase += phaseWeight(pt)
			}
		}
	}
	return score, phase
}

// blend interpolates a tapered score between middlegame and endgame by
// the game phase, adds the side-to-move tempo bonus, and flips the sign so
// the result is always from the mover's own perspective.
func blend(pos *board.Position, score tapered, phase int) int {
	if phase > maxPhase {
		phase = maxPhase
	}
	result := (score.mg*phase+score.eg*(maxPhase-phase))/maxPhase + tempoBonus
	if pos.SideToMove == board.Black {
		return -result
	}
	return result
}

// evalTerm is one independently-computed positional factor folded into the
// overall tapered score by evaluateCore.
type evalTerm func(pos *board.Position) tapered

// mgOnlyTerm lifts a middlegame-only scalar term (king safety, tropism,
// space) into the tapered-term shape so it composes with the rest.
func mgOnlyTerm(f func(*board.Position) int) evalTerm {
	return func(pos *board.Position) tapered { return tapered{mg: f(pos)} }
}

func pairTerm(f func(*board.Position) (int, int)) evalTerm {
	return func(pos *board.Position) tapered {
		mg, eg := f(pos)
		return tapered{mg, eg}
	}
}

// commonTerms are the positional factors shared by both Evaluate and
// EvaluateWithPawnTable; only the pawn structure term differs, since one
// variant consults a cache and the other recomputes from scratch.
var commonTerms = []evalTerm{
	pairTerm(evaluatePassedPawns),
	pairTerm(evaluateMobility),
	mgOnlyTerm(evaluateKingSafety),
	pairTerm(evaluateBishopPair),
	pairTerm(evaluateRooksOnFiles),
	pairTerm(evaluateOutposts),
	pairTerm(evaluateThreats),
}

// evaluateCore runs the material/PST pass plus every shared term, folds in
// pawnStructure (the one term that differs between the cached and uncached
// entry points), and blends the result into a final score.
func evaluateCore(pos *board.Position, pawnStructure evalTerm, extra ...evalTerm) int {
	score, phase := materialAndPST(pos)

	for _, term := range commonTerms {
		score.add(term(pos))
	}
	score.add(pawnStructure(pos))
	for _, term := range extra {
		score.add(term(pos))
	}

	return blend(pos, score, phase)
}

// Evaluate returns the static evaluation of the position from the side to
// move's perspective, recomputing pawn structure from scratch every call.
func Evaluate(pos *board.Position) int {
	return evaluateCore(pos,
		pairTerm(evaluatePawnStructure),
		mgOnlyTerm(evaluateKingTropism),
		mgOnlyTerm(evaluateSpace),
		pairTerm(evaluateTrappedPieces),
	)
}

// EvaluateWithPawnTable is like Evaluate but reads pawn structure from
// pawnTable's cache instead of recomputing it, avoiding the cost on
// positions where no pawn has moved since the cache was filled.
func EvaluateWithPawnTable(pos *board.Position, pawnTable *PawnTable) int {
	return evaluateCore(pos, func(p *board.Position) tapered {
		mg, eg := evaluatePawnStructureWithCache(p, pawnTable)
		return tapered{mg, eg}
	})
}

// EvaluateMaterial returns just the material balance (for quick evaluation).
func EvaluateMaterial(pos *board.Position) int {
	score := 0
	for pt := board.Pawn; pt < board.King; pt++ {
		score += pos.Pieces[board.White][pt].PopCount() * pieceValues[pt]
		score -= pos.Pieces[board.Black][pt].PopCount() * pieceValues[pt]
	}
	if pos.SideToMove == board.Black {
		return -score
	}
	return score
}

// IsEndgame returns true if the position is in the endgame phase.
func IsEndgame(pos *board.Position) bool {
	// Simple heuristic: endgame if both sides have no queens
	// or total material (excluding kings) is low
	whiteQueens := pos.Pieces[board.White][board.Queen].PopCount()
	blackQueens := pos.Pieces[board.Black][board.Queen].PopCount()

	if whiteQueens == 0 && blackQueens == 0 {
		return true
	}

	// Count total non-pawn, non-king material
	whitePieces := pos.Pieces[board.White][board.Knight].PopCount() +
		pos.Pieces[board.White][board.Bishop].PopCount() +
		pos.Pieces[board.White][board.Rook].PopCount()
	blackPieces := pos.Pieces[board.Black][board.Knight].PopCount() +
		pos.Pieces[board.Black][board.Bishop].PopCount() +
		pos.Pieces[board.Black][board.Rook].PopCount()

	return whiteQueens+blackQueens <= 1 && whitePieces+blackPieces <= 4
}

// isPassedPawn checks if a pawn at the given square is a passed pawn.
// A passed pawn has no enemy pawns blocking or attacking its path to promotion.
func isPassedPawn(pos *board.Position, sq board.Square, color board.Color) bool {
	file := sq.File()
	enemyPawns := pos.Pieces[color.Other()][board.Pawn]

	// Create a mask for the files that matter (same file and adjacent files)
	fileMask := board.FileMask[file]
	if file > 0 {
		fileMask |= board.FileMask[file-1]
	}
	if file < 7 {
		fileMask |= board.FileMask[file+1]
	}

	// Create a mask for ranks in front of the pawn
	var frontMask board.Bitboard
	if color == board.White {
		frontMask = board.SquareBB(sq).NorthFill() &^ board.SquareBB(sq)
	} else {
		frontMask = board.SquareBB(sq).SouthFill() &^ board.SquareBB(sq)
	}

	// Check if any enemy pawns are in the blocking zone
	blockingZone := fileMask & frontMask
	return (enemyPawns & blockingZone) == 0
}

// evaluatePassedPawns returns the passed pawn evaluation bonus.
func evaluatePassedPawns(pos *board.Position) (mgBonus, egBonus int) {
	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		pawns := pos.Pieces[color][board.Pawn]
		friendlyPawns := pawns
		enemy := color.Other()

		// Get king positions for distance calculations
		friendlyKingSq := pos.KingSquare[color]
		enemyKingSq := pos.KingSquare[enemy]

		for pawns != 0 {
			sq := pawns.PopLSB()

			if !isPassedPawn(pos, sq, color) {
				continue
			}

			// Get relative rank (0-7 from pawn's perspective)
			relRank := sq.RelativeRank(color)
			file := sq.File()

			// Base bonus by rank
			bonus := passedPawnBonus[relRank]
			egBonusExtra := 0

			// --- King Distance Evaluation (endgame) ---
			// Calculate promotion square
			var promoSq board.Square
			if color == board.White {
				promoSq = board.NewSquare(file, 7)
			} else {
				promoSq = board.NewSquare(file, 0)
			}

			// Friendly king close to pawn is good (can support)
			friendlyKingDist := chebyshevDistance(friendlyKingSq, sq)
			egBonusExtra += kingDistanceBonus[7-minInt(friendlyKingDist, 7)]

			// Enemy king far from promotion square is good
			enemyKingDistToPromo := chebyshevDistance(enemyKingSq, promoSq)
			egBonusExtra += kingDistanceBonus[minInt(enemyKingDistToPromo, 7)]

			// Check if protected by own pawn
			pawnAttackers := board.PawnAttacks(sq, color.Other()) & friendlyPawns
			if pawnAttackers != 0 {
				bonus += passedPawnProtectedBonus
			}

			// Check for connected passed pawns (adjacent file)
			var adjacentFiles board.Bitboard
			if file > 0 {
				adjacentFiles |= board.FileMask[file-1]
			}
			if file < 7 {
				adjacentFiles |= board.FileMask[file+1]
			}
			connectedPawns := friendlyPawns & adjacentFiles
			for temp := connectedPawns; temp != 0; {
				connSq := temp.PopLSB()
				if isPassedPawn(pos, connSq, color) {
					bonus += passedPawnConnectedBonus
					break
				}
			}

			// Check if path is free (no pieces blocking)
			var frontSquares board.Bitboard
			if color == board.White {
				frontSquares = board.SquareBB(sq).NorthFill() &^ board.SquareBB(sq)
			} else {
				frontSquares = board.SquareBB(sq).SouthFill() &^ board.SquareBB(sq)
			}
			frontSquares &= board.FileMask[file] // Only check same file
			pathClear := (frontSquares & pos.AllOccupied) == 0
			if pathClear {
				bonus += passedPawnFreePathBonus
			}

			// --- Unstoppable Passed Pawn Detection ---
			// A pawn is unstoppable if enemy king cannot catch it
			if pathClear && relRank >= 4 { // Only check advanced pawns
				squaresToPromo := 7 - relRank
				enemyKingDistToPawn := chebyshevDistance(enemyKingSq, sq)

				// With the move, pawn can advance; enemy king needs to catch up
				tempoBonus := 0
				if pos.SideToMove == color {
					tempoBonus = 1
				}

				// Pawn is unstoppable if king can't reach path in time
				if enemyKingDistToPawn > squaresToPromo+1-tempoBonus {
					egBonusExtra += passedPawnUnstoppableBonus
				}
			}

			// Endgame bonus is higher (passed pawns more valuable in endgame)
			mgBonus += sign * bonus
			egBonus += sign * (bonus*3/2 + egBonusExtra)
		}
	}

	return mgBonus, egBonus
}

// mobilityKinds are the piece types mobility counts moves for; pawns and
// kings don't get a mobility term (passed-pawn and king-safety terms cover
// their positional value instead).
var mobilityKinds = [...]board.PieceType{board.Knight, board.Bishop, board.Rook, board.Queen}

// pieceAttacksFrom returns pt's attack bitboard from sq given the current
// occupancy, dispatching to the fixed knight table or the magic tables.
func pieceAttacksFrom(pt board.PieceType, sq board.Square, occupied board.Bitboard) board.Bitboard {
	switch pt {
	case board.Knight:
		return board.KnightAttacks(sq)
	case board.Bishop:
		return board.BishopAttacks(sq, occupied)
	case board.Rook:
		return board.RookAttacks(sq, occupied)
	case board.Queen:
		return board.QueenAttacks(sq, occupied)
	default:
		return 0
	}
}

// evaluateMobility scores each side by how many squares its knights,
// bishops, rooks, and queens can safely reach - a square is unsafe if an
// enemy pawn guards it or a friendly piece already sits there.
func evaluateMobility(pos *board.Position) (mgBonus, egBonus int) {
	occupied := pos.AllOccupied

	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		enemyPawns := pos.Pieces[color.Other()][board.Pawn]
		var pawnGuarded board.Bitboard
		if color == board.White {
			pawnGuarded = enemyPawns.SouthEast() | enemyPawns.SouthWest()
		} else {
			pawnGuarded = enemyPawns.NorthEast() | enemyPawns.NorthWest()
		}
		blocked := pawnGuarded | pos.Occupied[color]

		for _, pt := range mobilityKinds {
			pieces := pos.Pieces[color][pt]
			for pieces != 0 {
				sq := pieces.PopLSB()
				count := (pieceAttacksFrom(pt, sq, occupied) &^ blocked).PopCount()
				mgBonus += sign * mobilityMgWeight[pt] * count
				egBonus += sign * mobilityEgWeight[pt] * count
			}
		}
	}

	return mgBonus, egBonus
}

// evaluateKingSafety evaluates king safety for both sides.
// Returns middlegame score (king safety matters less in endgame).
func evaluateKingSafety(pos *board.Position) int {
	var score int
	occupied := pos.AllOccupied

	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		kingSq := pos.KingSquare[color]
		kingFile := kingSq.File()

		// Define king zone (3x3 area around king, extended forward)
		kingZone := board.KingAttacks(kingSq) | board.SquareBB(kingSq)

		// Extend zone forward (toward enemy)
		if color == board.White {
			kingZone |= kingZone.North()
		} else {
			kingZone |= kingZone.South()
		}

		enemy := color.Other()

		// Count attackers to king zone, across every piece kind that has one.
		attackerCount := 0
		attackWeight := 0
		for _, pt := range mobilityKinds {
			pieces := pos.Pieces[enemy][pt]
			for pieces != 0 {
				sq := pieces.PopLSB()
				if pieceAttacksFrom(pt, sq, occupied)&kingZone != 0 {
					attackerCount++
					attackWeight += attackerWeight[pt]
				}
			}
		}

		// Scale attack weight by number of attackers (more attackers = exponentially worse)
		if attackerCount >= 2 {
			attackWeight = attackWeight * attackerCount / 2
		}
		score -= sign * attackWeight

		// Pawn shield evaluation
		ownPawns := pos.Pieces[color][board.Pawn]
		enemyFilePawns := pos.Pieces[enemy][board.Pawn]

		// Define pawn shield area (files around king)
		for f := kingFile - 1; f <= kingFile+1; f++ {
			if f < 0 || f > 7 {
				continue
			}

			filePawns := ownPawns & board.FileMask[f]
			enemyOnFile := enemyFilePawns & board.FileMask[f]

			// Check for shield pawn on second rank
			var shieldRank int
			if color == board.White {
				shieldRank = 1 // Rank 2
			} else {
				shieldRank = 6 // Rank 7
			}

			shieldMask := board.FileMask[f] & board.RankMask[shieldRank]
			if ownPawns&shieldMask != 0 {
				score += sign * pawnShieldBonus
			} else if filePawns == 0 {
				score += sign * pawnShieldMissing
			}

			// Check for open/semi-open files toward king
			if filePawns == 0 && enemyOnFile == 0 {
				score += sign * openFileNearKing
			} else if filePawns == 0 {
				score += sign * semiOpenFileNearKing
			}
		}
	}

	return score
}

// SEE (Static Exchange Evaluation) estimates the result of a capture sequence.
// Returns the estimated material gain/loss from the perspective of the moving side.
// This is a proper implementation that simulates the entire capture sequence.
func SEE(pos *board.Position, m board.Move) int {
	from := m.From()
	to := m.To()

	attacker := pos.PieceAt(from)
	if attacker == board.NoPiece {
		return 0
	}

	// Get initial capture value
	var capturedValue int
	if m.IsEnPassant() {
		capturedValue = PawnValue
	} else {
		victim := pos.PieceAt(to)
		if victim == board.NoPiece {
			return 0 // Not a capture
		}
		capturedValue = pieceValues[victim.Type()]
	}

	// Add promotion bonus if applicable
	if m.IsPromotion() {
		capturedValue += pieceValues[m.Promotion()] - PawnValue
	}

	// Use the swap algorithm for SEE
	// This simulates captures alternating between sides
	return seeSwap(pos, to, from, attacker, capturedValue)
}

// seeSwap performs the SEE swap algorithm.
// It simulates alternating captures on the target square.
func seeSwap(pos *board.Position, target, excludeFrom board.Square, firstAttacker board.Piece, initialGain int) int {
	// Gain array for the swap algorithm
	var gain [32]int
	d := 0 // Depth in swap sequence

	// Start with initial capture gain
	gain[d] = initialGain

	// Occupied bitboard, excluding the initial attacker
	occupied := pos.AllOccupied &^ board.SquareBB(excludeFrom)

	// Current attacker info
	attackerValue := pieceValues[firstAttacker.Type()]
	side := firstAttacker.Color().Other() // Next side to capture

	// Find all attackers and simulate capture sequence
	for {
		d++

		// Gain at this depth is the attacker value minus what opponent gains after
		gain[d] = attackerValue - gain[d-1]

		// If we're clearly winning, we can stop (opponent won't recapture)
		if max(-gain[d-1], gain[d]) < 0 {
			break
		}

		// Find least valuable attacker for this side
		attackerSq, attackerPiece := getLeastValuableAttacker(pos, target, side, occupied)
		if attackerSq == board.NoSquare {
			break // No more attackers
		}

		// Remove attacker from occupied
		occupied &^= board.SquareBB(attackerSq)

		// Update attacker value and switch sides
		attackerValue = pieceValues[attackerPiece.Type()]
		side = side.Other()

		// Check for x-ray attackers revealed
		// (handled implicitly by getLeastValuableAttacker using updated occupied)
	}

	// Negamax the gain array to get final result
	for d--; d > 0; d-- {
		gain[d-1] = -max(-gain[d-1], gain[d])
	}

	return gain[0]
}

// getLeastValuableAttacker finds the cheapest piece of side attacking
// target, the step the SEE swap algorithm repeats for each side in turn.
// Checking in ascending value order (pawn..king) is what makes the swap an
// accurate estimate: a side always recaptures with its cheapest attacker.
// Returns NoSquare if side has no attacker left.
func getLeastValuableAttacker(pos *board.Position, target board.Square, side board.Color, occupied board.Bitboard) (board.Square, board.Piece) {
	bishopAttacks := board.BishopAttacks(target, occupied)
	rookAttacks := board.RookAttacks(target, occupied)

	reaches := func(pt board.PieceType) board.Bitboard {
		switch pt {
		case board.Pawn:
			return board.PawnAttacks(target, side.Other())
		case board.Knight:
			return board.KnightAttacks(target)
		case board.Bishop:
			return bishopAttacks
		case board.Rook:
			return rookAttacks
		case board.Queen:
			return bishopAttacks | rookAttacks
		default: // King
			return board.KingAttacks(target)
		}
	}

	for pt := board.Pawn; pt <= board.King; pt++ {
		attackers := pos.Pieces[side][pt] & reaches(pt) & occupied
		if attackers != 0 {
			return attackers.LSB(), board.NewPiece(pt, side)
		}
	}
	return board.NoSquare, board.NoPiece
}

// max returns the maximum of two integers.
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// evaluateBishopPair returns bonus for having the bishop pair.
func evaluateBishopPair(pos *board.Position) (mgBonus, egBonus int) {
	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		bishops := pos.Pieces[color][board.Bishop]
		if bishops.PopCount() >= 2 {
			mgBonus += sign * bishopPairMgBonus
			egBonus += sign * bishopPairEgBonus
		}
	}
	return mgBonus, egBonus
}

// evaluateRooksOnFiles returns bonus for rooks on open/semi-open files.
func evaluateRooksOnFiles(pos *board.Position) (mgBonus, egBonus int) {
	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		ownPawns := pos.Pieces[color][board.Pawn]
		enemyPawns := pos.Pieces[color.Other()][board.Pawn]

		rooks := pos.Pieces[color][board.Rook]
		for rooks != 0 {
			sq := rooks.PopLSB()
			file := sq.File()
			fileMask := board.FileMask[file]

			hasOwnPawn := (ownPawns & fileMask) != 0
			hasEnemyPawn := (enemyPawns & fileMask) != 0

			if !hasOwnPawn {
				if !hasEnemyPawn {
					// Open file
					mgBonus += sign * rookOpenFileMg
					egBonus += sign * rookOpenFileEg
				} else {
					// Semi-open file
					mgBonus += sign * rookSemiOpenFileMg
					egBonus += sign * rookSemiOpenFileEg
				}
			}
		}
	}
	return mgBonus, egBonus
}

// evaluatePawnStructure evaluates pawn structure defects.
func evaluatePawnStructure(pos *board.Position) (mgPenalty, egPenalty int) {
	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		pawns := pos.Pieces[color][board.Pawn]
		allPawns := pawns

		for pawns != 0 {
			sq := pawns.PopLSB()
			file := sq.File()
			fileMask := board.FileMask[file]

			// Doubled pawns: more than one pawn on same file
			pawnsOnFile := allPawns & fileMask
			if pawnsOnFile.PopCount() > 1 {
				// Only count penalty once per doubled pair
				// Check if this is the forward pawn
				var forwardPawn board.Square
				if color == board.White {
					// White's forward pawn has higher rank
					forwardPawn = pawnsOnFile.MSB()
				} else {
					// Black's forward pawn has lower rank
					forwardPawn = pawnsOnFile.LSB()
				}
				if sq == forwardPawn {
					mgPenalty += sign * doubledPawnMgPenalty
					egPenalty += sign * doubledPawnEgPenalty
				}
			}

			// Isolated pawns: no friendly pawns on adjacent files
			var adjacentFiles board.Bitboard
			if file > 0 {
				adjacentFiles |= board.FileMask[file-1]
			}
			if file < 7 {
				adjacentFiles |= board.FileMask[file+1]
			}
			if (allPawns & adjacentFiles) == 0 {
				mgPenalty += sign * isolatedPawnMgPenalty
				egPenalty += sign * isolatedPawnEgPenalty
				continue // Isolated pawns can't be backward
			}

			// Backward pawns: behind adjacent pawns and can't safely advance
			relRank := sq.RelativeRank(color)
			if relRank > 1 { // Not on starting rank
				// Check if we're behind adjacent pawns
				var behindMask board.Bitboard
				if color == board.White {
					// Ranks below this pawn's rank
					for r := 0; r < sq.Rank(); r++ {
						behindMask |= board.RankMask[r]
					}
				} else {
					// Ranks above this pawn's rank
					for r := sq.Rank() + 1; r < 8; r++ {
						behindMask |= board.RankMask[r]
					}
				}

				adjacentPawns := allPawns & adjacentFiles
				if adjacentPawns != 0 && (adjacentPawns&behindMask) == adjacentPawns {
					// All adjacent pawns are behind us - this pawn is not backward
					continue
				}

				// Check if the stop square is attacked by enemy pawns
				var stopSq board.Square
				if color == board.White {
					stopSq = sq + 8
				} else {
					stopSq = sq - 8
				}
				if stopSq.IsValid() {
					enemyPawnAttacks := board.PawnAttacks(stopSq, color)
					enemyPawns := pos.Pieces[color.Other()][board.Pawn]
					if (enemyPawns & enemyPawnAttacks) != 0 {
						// Stop square is controlled by enemy pawn - this is backward
						mgPenalty += sign * backwardPawnMgPenalty
						egPenalty += sign * backwardPawnEgPenalty
					}
				}
			}
		}
	}
	return mgPenalty, egPenalty
}

// evaluatePawnStructureWithCache evaluates pawn structure using the pawn hash table.
func evaluatePawnStructureWithCache(pos *board.Position, pt *PawnTable) (mgScore, egScore int) {
	if pt == nil {
		return evaluatePawnStructure(pos)
	}

	// Try to get cached evaluation
	if mg, eg, found := pt.Probe(pos.PawnKey); found {
		return mg, eg
	}

	// Compute and cache
	mg, eg := evaluatePawnStructure(pos)
	pt.Store(pos.PawnKey, mg, eg)
	return mg, eg
}

// evaluateOutposts evaluates knight and bishop outposts.
func evaluateOutposts(pos *board.Position) (mgBonus, egBonus int) {
	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		ownPawns := pos.Pieces[color][board.Pawn]
		enemyPawns := pos.Pieces[color.Other()][board.Pawn]

		// Define outpost ranks (4-6 for white, 3-5 for black)
		var outpostRanks board.Bitboard
		if color == board.White {
			outpostRanks = board.RankMask[3] | board.RankMask[4] | board.RankMask[5] // Ranks 4, 5, 6
		} else {
			outpostRanks = board.RankMask[2] | board.RankMask[3] | board.RankMask[4] // Ranks 3, 4, 5
		}

		// A square is an outpost if no enemy pawn, now or after advancing,
		// can ever attack it - i.e. neither adjacent file has an enemy pawn
		// still behind (from color's perspective) that square's rank.
		isOutpost := func(sq board.Square) bool {
			file := sq.File()
			var adjacentFiles board.Bitboard
			if file > 0 {
				adjacentFiles |= board.FileMask[file-1]
			}
			if file < 7 {
				adjacentFiles |= board.FileMask[file+1]
			}

			var behindRanks board.Bitboard
			if color == board.White {
				for r := 0; r <= sq.Rank(); r++ {
					behindRanks |= board.RankMask[r]
				}
			} else {
				for r := sq.Rank(); r < 8; r++ {
					behindRanks |= board.RankMask[r]
				}
			}
			return enemyPawns&adjacentFiles&behindRanks == 0
		}

		knights := pos.Pieces[color][board.Knight] & outpostRanks
		for knights != 0 {
			sq := knights.PopLSB()
			if !isOutpost(sq) {
				continue
			}
			mgBonus += sign * knightOutpostMg
			egBonus += sign * knightOutpostEg

			if board.PawnAttacks(sq, color.Other())&ownPawns != 0 {
				mgBonus += sign * knightOutpostProtectedMg
				egBonus += sign * knightOutpostProtectedEg
			}
		}

		// Bishops on outposts get a smaller, unconditional bonus (no extra
		// credit for being pawn-protected).
		bishops := pos.Pieces[color][board.Bishop] & outpostRanks
		for bishops != 0 {
			if sq := bishops.PopLSB(); isOutpost(sq) {
				mgBonus += sign * bishopOutpostMg
				egBonus += sign * bishopOutpostEg
			}
		}
	}
	return mgBonus, egBonus
}

// evaluateThreats evaluates threats and hanging pieces.
func evaluateThreats(pos *board.Position) (mgBonus, egBonus int) {
	occupied := pos.AllOccupied

	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		enemy := color.Other()

		ourPawnAttacks := computePawnAttacksBB(pos, color)
		ourKnightAttacks := computeKindAttacksBB(pos, color, board.Knight, occupied)
		ourBishopAttacks := computeKindAttacksBB(pos, color, board.Bishop, occupied)
		ourAttacks := ourPawnAttacks | ourKnightAttacks | ourBishopAttacks |
			computeKindAttacksBB(pos, color, board.Rook, occupied) |
			computeKindAttacksBB(pos, color, board.Queen, occupied) |
			board.KingAttacks(pos.KingSquare[color])

		enemyAttacks := allAttacksBB(pos, enemy, occupied)

		// Evaluate threats TO us (penalties)
		ourPieces := pos.Occupied[color] &^ board.SquareBB(pos.KingSquare[color])

		// Hanging pieces: our pieces attacked by enemy but not defended by us
		hangingPieces := ourPieces & enemyAttacks & ^ourAttacks
		hangingCount := hangingPieces.PopCount()
		mgBonus += sign * hangingCount * hangingPiecePenalty
		egBonus += sign * hangingCount * (hangingPiecePenalty * 3 / 2) // Worse in endgame

		// Loose pieces: our pieces not defended (potential future targets)
		loosePieces := ourPieces & ^ourAttacks
		looseCount := loosePieces.PopCount()
		mgBonus += sign * looseCount * loosePiecePenalty

		// Evaluate threats BY us (bonuses)
		enemyPieces := pos.Occupied[enemy] &^ board.SquareBB(pos.KingSquare[enemy])

		// Pawn threats to enemy pieces (very strong)
		pawnThreats := enemyPieces & ourPawnAttacks & ^pos.Pieces[enemy][board.Pawn]
		threatCount := pawnThreats.PopCount()
		mgBonus += sign * threatCount * threatByPawnBonus
		egBonus += sign * threatCount * threatByPawnBonus

		// Minor piece threats to enemy major pieces (rooks/queens)
		minorAttacks := ourKnightAttacks | ourBishopAttacks
		majorPieces := pos.Pieces[enemy][board.Rook] | pos.Pieces[enemy][board.Queen]
		minorThreats := majorPieces & minorAttacks
		threatCount = minorThreats.PopCount()
		mgBonus += sign * threatCount * threatByMinorBonus
		egBonus += sign * threatCount * threatByMinorBonus
	}

	return mgBonus, egBonus
}

// computePawnAttacksBB returns every square color's pawns attack.
func computePawnAttacksBB(pos *board.Position, color board.Color) board.Bitboard {
	pawns := pos.Pieces[color][board.Pawn]
	if color == board.White {
		return pawns.NorthEast() | pawns.NorthWest()
	}
	return pawns.SouthEast() | pawns.SouthWest()
}

// computeKindAttacksBB unions the attack bitboards of every piece of kind
// pt belonging to color - the non-pawn, non-king half of a side's full
// attack map.
func computeKindAttacksBB(pos *board.Position, color board.Color, pt board.PieceType, occupied board.Bitboard) board.Bitboard {
	pieces := pos.Pieces[color][pt]
	var attacks board.Bitboard
	for pieces != 0 {
		attacks |= pieceAttacksFrom(pt, pieces.PopLSB(), occupied)
	}
	return attacks
}

// allAttacksBB returns every square color attacks with any piece, the full
// attack map evaluateThreats compares against to find hanging/loose pieces.
func allAttacksBB(pos *board.Position, color board.Color, occupied board.Bitboard) board.Bitboard {
	attacks := computePawnAttacksBB(pos, color) | board.KingAttacks(pos.KingSquare[color])
	for _, pt := range mobilityKinds {
		attacks |= computeKindAttacksBB(pos, color, pt, occupied)
	}
	return attacks
}

// chebyshevDistance calculates the Chebyshev distance between two squares.
// This is max(|file_diff|, |rank_diff|), representing king moves needed.
func chebyshevDistance(sq1, sq2 board.Square) int {
	f1, r1 := sq1.File(), sq1.Rank()
	f2, r2 := sq2.File(), sq2.Rank()

	fileDiff := f1 - f2
	if fileDiff < 0 {
		fileDiff = -fileDiff
	}
	rankDiff := r1 - r2
	if rankDiff < 0 {
		rankDiff = -rankDiff
	}

	if fileDiff > rankDiff {
		return fileDiff
	}
	return rankDiff
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// evaluateKingTropism calculates bonus for pieces approaching enemy king.
// Returns middlegame score (tropism matters more in attacks).
func evaluateKingTropism(pos *board.Position) int {
	var score int

	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		enemy := color.Other()
		enemyKingSq := pos.KingSquare[enemy]

		// Calculate tropism for each piece type (Knights to Queens)
		for pt := board.Knight; pt <= board.Queen; pt++ {
			pieces := pos.Pieces[color][pt]
			for pieces != 0 {
				sq := pieces.PopLSB()
				dist := chebyshevDistance(sq, enemyKingSq)

				// Closer pieces get higher bonus (inverse relationship)
				// Bonus = weight * (7 - distance)
				if dist < 7 {
					bonus := tropismWeight[pt] * (7 - dist)
					score += sign * bonus
				}
			}
		}
	}

	return score
}

// evaluatePieceCoordination evaluates piece coordination patterns.
func evaluatePieceCoordination(pos *board.Position) (mgBonus, egBonus int) {
	occupied := pos.AllOccupied

	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		enemy := color.Other()
		rooks := pos.Pieces[color][board.Rook]

		// --- Rooks on 7th Rank ---
		var rank7th board.Bitboard
		var enemyPawnRank board.Bitboard
		if color == board.White {
			rank7th = board.Rank7
			enemyPawnRank = board.Rank2
		} else {
			rank7th = board.Rank2
			enemyPawnRank = board.Rank7
		}

		rooksOn7th := rooks & rank7th
		rooksOn7thCount := rooksOn7th.PopCount()

		if rooksOn7thCount > 0 {
			// Base bonus for rook(s) on 7th
			mgBonus += sign * rookOn7thMg * rooksOn7thCount
			egBonus += sign * rookOn7thEg * rooksOn7thCount

			// Extra bonus if enemy has pawns on their 2nd rank
			enemyPawnsOnRank := pos.Pieces[enemy][board.Pawn] & enemyPawnRank
			if enemyPawnsOnRank != 0 {
				mgBonus += sign * rookOn7thWithPawnsMg * rooksOn7thCount
				egBonus += sign * rookOn7thWithPawnsEg * rooksOn7thCount
			}

			// Double rooks on 7th (pig rooks)
			if rooksOn7thCount >= 2 {
				mgBonus += sign * doubleRooksOn7thMg
				egBonus += sign * doubleRooksOn7thEg
			}
		}

		// --- Connected Rooks (defending each other) ---
		rookCount := rooks.PopCount()
		if rookCount >= 2 {
			// Get all rook squares
			tempRooks := rooks
			var rookSquares [2]board.Square
			idx := 0
			for tempRooks != 0 && idx < 2 {
				rookSquares[idx] = tempRooks.PopLSB()
				idx++
			}

			if idx == 2 {
				sq1, sq2 := rookSquares[0], rookSquares[1]
				rookAttacks := board.RookAttacks(sq1, occupied)

				// Check if rooks see each other (connected)
				if rookAttacks.IsSet(sq2) {
					mgBonus += sign * connectedRooksMg
					egBonus += sign * connectedRooksEg

					// Check if doubled on same file
					if sq1.File() == sq2.File() {
						mgBonus += sign * doubledRooksOnFileMg
						egBonus += sign * doubledRooksOnFileEg
					}
				}
			}
		}
	}

	return mgBonus, egBonus
}

// evaluateSpace evaluates space control in the center.
// Returns middlegame bonus only (space matters less in endgame).
func evaluateSpace(pos *board.Position) int {
	var score int

	// Count pieces to determine if space evaluation is relevant
	whitePieceCount := pos.Pieces[board.White][board.Knight].PopCount() +
		pos.Pieces[board.White][board.Bishop].PopCount() +
		pos.Pieces[board.White][board.Rook].PopCount() +
		pos.Pieces[board.White][board.Queen].PopCount()
	blackPieceCount := pos.Pieces[board.Black][board.Knight].PopCount() +
		pos.Pieces[board.Black][board.Bishop].PopCount() +
		pos.Pieces[board.Black][board.Rook].PopCount() +
		pos.Pieces[board.Black][board.Queen].PopCount()

	// Only evaluate space if both sides have enough pieces
	if whitePieceCount < spaceMinPieces && blackPieceCount < spaceMinPieces {
		return 0
	}

	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		// Only evaluate if this side has enough pieces
		pieceCount := whitePieceCount
		if color == board.Black {
			pieceCount = blackPieceCount
		}
		if pieceCount < spaceMinPieces {
			continue
		}

		enemy := color.Other()
		ownPawns := pos.Pieces[color][board.Pawn]
		enemyPawns := pos.Pieces[enemy][board.Pawn]

		// Select appropriate space zone
		var spaceZone board.Bitboard
		if color == board.White {
			spaceZone = whiteSpaceZone
		} else {
			spaceZone = blackSpaceZone
		}

		// Compute squares we control in the space zone
		// Pawn attacks
		var pawnControl board.Bitboard
		if color == board.White {
			pawnControl = ownPawns.NorthEast() | ownPawns.NorthWest()
		} else {
			pawnControl = ownPawns.SouthEast() | ownPawns.SouthWest()
		}

		// Enemy pawn attacks (unsafe squares)
		var enemyPawnAttacks board.Bitboard
		if color == board.White {
			enemyPawnAttacks = enemyPawns.SouthEast() | enemyPawns.SouthWest()
		} else {
			enemyPawnAttacks = enemyPawns.NorthEast() | enemyPawns.NorthWest()
		}

		// Safe space: space zone squares not attacked by enemy pawns
		safeSpace := spaceZone &^ enemyPawnAttacks

		// Squares behind our pawns (protected space)
		var behindPawns board.Bitboard
		if color == board.White {
			behindPawns = ownPawns.SouthFill() // All squares behind white pawns
		} else {
			behindPawns = ownPawns.NorthFill() // All squares behind black pawns
		}

		// Count controlled space squares
		controlledSpace := (pawnControl | behindPawns) & safeSpace
		spaceCount := controlledSpace.PopCount()

		// Bonus for space behind pawn chain
		behindChainSpace := controlledSpace & behindPawns
		behindCount := behindChainSpace.PopCount()

		// Calculate bonus
		bonus := spaceCount*spaceSquareBonus + behindCount*spaceBehindPawnBonus

		score += sign * bonus
	}

	return score
}

// trappedBishopCorner is one fianchetto corner a bishop can be stuck in.
type trappedBishopCorner struct {
	bishopSq           board.Square
	blockerA, blockerB board.Square
}

func trappedBishopCorners(color board.Color) [2]trappedBishopCorner {
	if color == board.White {
		return [2]trappedBishopCorner{
			{board.A6, board.B7, board.B5},
			{board.H6, board.G7, board.G5},
		}
	}
	return [2]trappedBishopCorner{
		{board.A3, board.B2, board.B4},
		{board.H3, board.G2, board.G4},
	}
}

// trappedRookConfig pairs one castling flank with the king squares that
// still block that flank's rook and the corner squares the rook is
// trapped on while blocked.
type trappedRookConfig struct {
	kingBlocking board.Bitboard
	rookCorner   board.Bitboard
	right        board.CastlingRights
}

func trappedRookConfigs(color board.Color) [2]trappedRookConfig {
	if color == board.White {
		return [2]trappedRookConfig{
			{
				kingBlocking: board.SquareBB(board.F1) | board.SquareBB(board.G1),
				rookCorner:   board.SquareBB(board.G1) | board.SquareBB(board.H1),
				right:        board.WhiteKingSideCastle,
			},
			{
				kingBlocking: board.SquareBB(board.B1) | board.SquareBB(board.C1) | board.SquareBB(board.D1),
				rookCorner:   board.SquareBB(board.A1) | board.SquareBB(board.B1),
				right:        board.WhiteQueenSideCastle,
			},
		}
	}
	return [2]trappedRookConfig{
		{
			kingBlocking: board.SquareBB(board.F8) | board.SquareBB(board.G8),
			rookCorner:   board.SquareBB(board.G8) | board.SquareBB(board.H8),
			right:        board.BlackKingSideCastle,
		},
		{
			kingBlocking: board.SquareBB(board.B8) | board.SquareBB(board.C8) | board.SquareBB(board.D8),
			rookCorner:   board.SquareBB(board.A8) | board.SquareBB(board.B8),
			right:        board.BlackQueenSideCastle,
		},
	}
}

// evaluateTrappedPieces evaluates penalties for trapped pieces.
func evaluateTrappedPieces(pos *board.Position) (mgPenalty, egPenalty int) {
	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		enemy := color.Other()
		ownPawns := pos.Pieces[color][board.Pawn]
		enemyPawns := pos.Pieces[enemy][board.Pawn]

		// --- Bad Bishop Evaluation ---
		bishops := pos.Pieces[color][board.Bishop]
		for temp := bishops; temp != 0; {
			sq := temp.PopLSB()

			// Determine if bishop is on light or dark squares
			var bishopColorSquares board.Bitboard
			if lightSquares.IsSet(sq) {
				bishopColorSquares = lightSquares
			} else {
				bishopColorSquares = darkSquares
			}

			// Count own pawns on same color squares as bishop
			blockingPawns := (ownPawns & bishopColorSquares).PopCount()
			if blockingPawns >= 3 {
				mgPenalty += sign * badBishopPenaltyMg * blockingPawns
				egPenalty += sign * badBishopPenaltyEg * blockingPawns
			}

			// --- Trapped Bishop Detection ---
			// A fianchetto-diagonal bishop (a6/h6 for White, a3/h3 for
			// Black) is trapped once the two enemy pawns that would let it
			// escape, or be traded off, are both still in place.
			for _, corner := range trappedBishopCorners(color) {
				if sq == corner.bishopSq && enemyPawns.IsSet(corner.blockerA) && enemyPawns.IsSet(corner.blockerB) {
					mgPenalty += sign * trappedBishopPenaltyMg
					egPenalty += sign * trappedBishopPenaltyEg
				}
			}
		}

		// --- Trapped Rook Detection ---
		// A rook is trapped if its own uncastled king still blocks its
		// escape along the back rank - checked for both flanks at once via
		// trappedRookConfigs.
		kingSquare := pos.KingSquare[color]
		rooks := pos.Pieces[color][board.Rook]

		for _, cfg := range trappedRookConfigs(color) {
			if !cfg.kingBlocking.IsSet(kingSquare) {
				continue
			}
			if rooks&cfg.rookCorner == 0 {
				continue
			}
			if pos.CastlingRights&cfg.right != 0 {
				continue
			}
			mgPenalty += sign * trappedRookPenaltyMg
			egPenalty += sign * trappedRookPenaltyEg
		}

		// --- Knight on Rim Detection ---
		knights := pos.Pieces[color][board.Knight]
		rimKnights := knights & rimSquares
		for temp := rimKnights; temp != 0; {
			sq := temp.PopLSB()

			// Corner knights are worst
			if cornerSquares.IsSet(sq) {
				mgPenalty += sign * knightCornerPenaltyMg
				egPenalty += sign * knightCornerPenaltyEg
				continue
			}

			// Check mobility of rim knight
			attacks := board.KnightAttacks(sq) &^ pos.Occupied[color]
			mobility := attacks.PopCount()

			// Penalize if very low mobility (3 or fewer moves)
			if mobility <= 3 {
				mgPenalty += sign * knightRimPenaltyMg
				egPenalty += sign * knightRimPenaltyEg
			}
		}
	}

	return mgPenalty, egPenalty
}
