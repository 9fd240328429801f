// HalfKAv2_hm feature set for NNUE evaluation.
//
// Feature HalfKAv2_hm: Combination of the position of own king and the
// position of pieces. Position mirrored such that king is always on e..h files.

package features

import "math/bits"

// Square constants
const (
	squareA1 = 0
	squareH1 = 7
	squareA8 = 56
	squareH8 = 63

	squareCount = 64
)

// Color constants
const (
	White = 0
	Black = 1

	colorCount = 2
)

// Piece type constants
const (
	noPieceType = 0
	pawnType    = 1
	knightType  = 2
	bishopType  = 3
	rookType    = 4
	queenType   = 5
	kingType    = 6

	pieceTypeCount = 8
)

// Piece constants (color + type encoded)
const (
	noPiece = 0

	whitePawn   = 1
	whiteKnight = 2
	whiteBishop = 3
	whiteRook   = 4
	whiteQueen  = 5
	whiteKing   = 6

	blackPawn   = 9
	blackKnight = 10
	blackBishop = 11
	blackRook   = 12
	blackQueen  = 13
	blackKing   = 14

	pieceCount = 16
)

// Unique number for each piece type on each square
const (
	psNone        = 0
	psWhitePawn   = 0
	psBlackPawn   = 1 * squareCount
	psWhiteKnight = 2 * squareCount
	psBlackKnight = 3 * squareCount
	psWhiteBishop = 4 * squareCount
	psBlackBishop = 5 * squareCount
	psWhiteRook   = 6 * squareCount
	psBlackRook   = 7 * squareCount
	psWhiteQueen  = 8 * squareCount
	psBlackQueen  = 9 * squareCount
	psKing        = 10 * squareCount
	psCount       = 11 * squareCount
)

// Feature name
const Name = "HalfKAv2_hm(Friend)"

// Hash value embedded in the evaluation file
const HashValue uint32 = 0x7f234cb8

// Number of feature dimensions
const Dimensions = squareCount * psCount / 2 // = 22528

// Maximum number of simultaneously active features
const MaxActiveDimensions = 32

// PieceSquareIndex maps piece to piece-square index for each perspective
// Convention: W - us, B - them. Viewed from other side, W and B are reversed.
var PieceSquareIndex = [colorCount][pieceCount]int{
	// White perspective
	{psNone, psWhitePawn, psWhiteKnight, psWhiteBishop, psWhiteRook, psWhiteQueen, psKing, psNone,
		psNone, psBlackPawn, psBlackKnight, psBlackBishop, psBlackRook, psBlackQueen, psKing, psNone},
	// Black perspective
	{psNone, psBlackPawn, psBlackKnight, psBlackBishop, psBlackRook, psBlackQueen, psKing, psNone,
		psNone, psWhitePawn, psWhiteKnight, psWhiteBishop, psWhiteRook, psWhiteQueen, psKing, psNone},
}

// KingBuckets maps each king square to a bucket index
// The value is pre-multiplied by psCount for efficiency.
var KingBuckets = [squareCount]int{
	28 * psCount, 29 * psCount, 30 * psCount, 31 * psCount, 31 * psCount, 30 * psCount, 29 * psCount, 28 * psCount,
	24 * psCount, 25 * psCount, 26 * psCount, 27 * psCount, 27 * psCount, 26 * psCount, 25 * psCount, 24 * psCount,
	20 * psCount, 21 * psCount, 22 * psCount, 23 * psCount, 23 * psCount, 22 * psCount, 21 * psCount, 20 * psCount,
	16 * psCount, 17 * psCount, 18 * psCount, 19 * psCount, 19 * psCount, 18 * psCount, 17 * psCount, 16 * psCount,
	12 * psCount, 13 * psCount, 14 * psCount, 15 * psCount, 15 * psCount, 14 * psCount, 13 * psCount, 12 * psCount,
	8 * psCount, 9 * psCount, 10 * psCount, 11 * psCount, 11 * psCount, 10 * psCount, 9 * psCount, 8 * psCount,
	4 * psCount, 5 * psCount, 6 * psCount, 7 * psCount, 7 * psCount, 6 * psCount, 5 * psCount, 4 * psCount,
	0 * psCount, 1 * psCount, 2 * psCount, 3 * psCount, 3 * psCount, 2 * psCount, 1 * psCount, 0 * psCount,
}

// OrientTBL orients a square according to perspective
// squareH1 (xor 7) flips horizontally, squareA1 (xor 0) leaves the square as is,
// so a king on files a-d is mirrored onto files e-h.
var OrientTBL = [squareCount]int{
	squareH1, squareH1, squareH1, squareH1, squareA1, squareA1, squareA1, squareA1,
	squareH1, squareH1, squareH1, squareH1, squareA1, squareA1, squareA1, squareA1,
	squareH1, squareH1, squareH1, squareH1, squareA1, squareA1, squareA1, squareA1,
	squareH1, squareH1, squareH1, squareH1, squareA1, squareA1, squareA1, squareA1,
	squareH1, squareH1, squareH1, squareH1, squareA1, squareA1, squareA1, squareA1,
	squareH1, squareH1, squareH1, squareH1, squareA1, squareA1, squareA1, squareA1,
	squareH1, squareH1, squareH1, squareH1, squareA1, squareA1, squareA1, squareA1,
	squareH1, squareH1, squareH1, squareH1, squareA1, squareA1, squareA1, squareA1,
}

// MakeIndex computes the feature index for a piece from a perspective.
func MakeIndex(perspective int, sq int, pc int, ksq int) int {
	flip := 56 * perspective
	return (sq ^ OrientTBL[ksq] ^ flip) + PieceSquareIndex[perspective][pc] + KingBuckets[ksq^flip]
}

// DirtyPiece represents a changed piece for incremental updates.
type DirtyPiece struct {
	From     int // Source square (or noSquare)
	To       int // Destination square (or noSquare if captured)
	Pc       int // The piece that moved
	RemoveSq int // Additional removed piece square (for captures)
	RemovePc int // Additional removed piece (captured piece)
	AddSq    int // Additional added piece square (for promotions/castling)
	AddPc    int // Additional added piece
}

// noSquare represents no square
const noSquare = 64

// RequiresRefresh returns whether the change means a full accumulator refresh is required.
func RequiresRefresh(diff *DirtyPiece, perspective int) bool {
	// King moves require refresh
	pieceType := diff.Pc & 7 // Extract piece type
	pieceColor := diff.Pc >> 3
	return pieceType == kingType && pieceColor == perspective
}

// IndexList is a list of feature indices
type IndexList struct {
	Values [MaxActiveDimensions]int
	Size   int
}

// Push adds an index to the list
func (l *IndexList) Push(idx int) {
	if l.Size < MaxActiveDimensions {
		l.Values[l.Size] = idx
		l.Size++
	}
}

// Clear resets the list
func (l *IndexList) Clear() {
	l.Size = 0
}

// Position interface for getting piece information
type Position interface {
	KingSquare(color int) int
	PieceOn(sq int) int
	Pieces() uint64
}

// PopLSB pops and returns the least significant bit position
func PopLSB(bb *uint64) int {
	if *bb == 0 {
		return -1
	}
	sq := bits.TrailingZeros64(*bb)
	*bb &= *bb - 1
	return sq
}

// AppendActiveIndices gets a list of indices for active features.
func AppendActiveIndices(perspective int, pos Position, active *IndexList) {
	ksq := pos.KingSquare(perspective)
	bb := pos.Pieces()
	for bb != 0 {
		sq := PopLSB(&bb)
		pc := pos.PieceOn(sq)
		if pc != noPiece {
			active.Push(MakeIndex(perspective, sq, pc, ksq))
		}
	}
}

// AppendChangedIndices gets a list of indices for recently changed features.
func AppendChangedIndices(perspective int, ksq int, diff *DirtyPiece, removed, added *IndexList) {
	removed.Push(MakeIndex(perspective, diff.From, diff.Pc, ksq))
	if diff.To != noSquare {
		added.Push(MakeIndex(perspective, diff.To, diff.Pc, ksq))
	}

	if diff.RemoveSq != noSquare {
		removed.Push(MakeIndex(perspective, diff.RemoveSq, diff.RemovePc, ksq))
	}

	if diff.AddSq != noSquare {
		added.Push(MakeIndex(perspective, diff.AddSq, diff.AddPc, ksq))
	}
}

// GetChangedFeatures computes the removed and added feature indices for a move.
// This is a convenience function for incremental accumulator updates.
// Returns slices of feature indices that were removed and added.
func GetChangedFeatures(
	perspective int,
	ksq int,
	fromSq, toSq int,
	movingPiece int,
	capturedPiece int, // noPiece if not a capture
	promotionPiece int, // noPiece if not a promotion
	isEnPassant bool,
	epCaptureSq int, // Square of captured pawn for en passant
	isCastling bool,
	rookFromSq, rookToSq int, // Rook squares for castling
) (removed, added []int) {
	removed = make([]int, 0, 4)
	added = make([]int, 0, 4)

	// Moving piece removed from source square
	removed = append(removed, MakeIndex(perspective, fromSq, movingPiece, ksq))

	// Handle promotions vs regular moves
	if promotionPiece != noPiece {
		// Promotion: add promoted piece at destination
		added = append(added, MakeIndex(perspective, toSq, promotionPiece, ksq))
	} else {
		// Regular move: add moving piece at destination
		added = append(added, MakeIndex(perspective, toSq, movingPiece, ksq))
	}

	// Handle captures
	if capturedPiece != noPiece {
		if isEnPassant {
			// En passant: captured pawn is on different square
			removed = append(removed, MakeIndex(perspective, epCaptureSq, capturedPiece, ksq))
		} else {
			// Normal capture: captured piece is on destination square
			removed = append(removed, MakeIndex(perspective, toSq, capturedPiece, ksq))
		}
	}

	// Handle castling: rook also moves
	if isCastling {
		// Determine rook piece based on perspective
		rookPiece := whiteRook
		if perspective == Black {
			rookPiece = blackRook
		}
		// Actually, rook piece depends on the color of the moving king
		kingColor := movingPiece >> 3 // Extract color from piece
		if kingColor == 1 {           // Black
			rookPiece = blackRook
		} else {
			rookPiece = whiteRook
		}
		removed = append(removed, MakeIndex(perspective, rookFromSq, rookPiece, ksq))
		added = append(added, MakeIndex(perspective, rookToSq, rookPiece, ksq))
	}

	return removed, added
}

// IsKingMove checks if the piece is a king
func IsKingMove(piece int) bool {
	return (piece & 7) == kingType
}
