package board

import "fmt"

// Move packs a chess move into 16 bits:
//
//	bits 0-1:   flag (0=normal, 1=promotion, 2=en passant, 3=castling)
//	bits 2-7:   from square (0-63)
//	bits 8-13:  to square (0-63)
//	bits 14-15: promotion piece, only meaningful when flag is promotion
//	            (0=Knight, 1=Bishop, 2=Rook, 3=Queen)
//
// Putting the flag in the low bits rather than the high bits is an
// arbitrary choice - nothing outside this file ever touches a Move's bits
// directly, everything goes through the accessors below.
type Move uint16

const (
	flagShift    = 0
	fromShift    = 2
	toShift      = 8
	promoShift   = 14
	squareMask   = 0x3F
	flagMask     = 0x3
	promotionIdx = 0x3
)

// Move flags, unshifted - Flag() already masks them down to these values.
const (
	FlagNormal    uint16 = 0
	FlagPromotion uint16 = 1
	FlagEnPassant uint16 = 2
	FlagCastling  uint16 = 3
)

// NoMove represents an absent move (no legal move, or a UCI "0000").
const NoMove Move = 0

// NewMove builds a non-capturing or ordinary capturing move.
func NewMove(from, to Square) Move {
	return Move(from)<<fromShift | Move(to)<<toShift
}

// NewPromotion builds a pawn promotion move, optionally also a capture.
func NewPromotion(from, to Square, promo PieceType) Move {
	idx := promo - Knight
	return Move(from)<<fromShift | Move(to)<<toShift | Move(idx)<<promoShift | Move(FlagPromotion)
}

// NewEnPassant builds an en passant pawn capture.
func NewEnPassant(from, to Square) Move {
	return Move(from)<<fromShift | Move(to)<<toShift | Move(FlagEnPassant)
}

// NewCastling builds a king move representing castling (rook movement is
// derived from the king's from/to squares during MakeMove).
func NewCastling(from, to Square) Move {
	return Move(from)<<fromShift | Move(to)<<toShift | Move(FlagCastling)
}

func (m Move) From() Square {
	return Square((m >> fromShift) & squareMask)
}

func (m Move) To() Square {
	return Square((m >> toShift) & squareMask)
}

func (m Move) Flag() uint16 {
	return uint16(m>>flagShift) & flagMask
}

// Promotion returns the promotion piece type; only meaningful if IsPromotion.
func (m Move) Promotion() PieceType {
	return PieceType((m>>promoShift)&promotionIdx) + Knight
}

func (m Move) IsPromotion() bool { return m.Flag() == FlagPromotion }
func (m Move) IsCastling() bool  { return m.Flag() == FlagCastling }
func (m Move) IsEnPassant() bool { return m.Flag() == FlagEnPassant }

// IsCapture reports whether the move removes an enemy piece from the board.
func (m Move) IsCapture(pos *Position) bool {
	return m.IsEnPassant() || !pos.IsEmpty(m.To())
}

// IsQuiet reports whether the move is neither a capture nor a promotion.
func (m Move) IsQuiet(pos *Position) bool {
	return !m.IsCapture(pos) && !m.IsPromotion()
}

// String renders the move in UCI long algebraic form, e.g. "e2e4", "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		const promoChars = "nbrq"
		s += string(promoChars[m.Promotion()-Knight])
	}
	return s
}

// ParseMove reads a UCI long-algebraic move string against pos, inferring
// castling/en-passant/promotion flags from board state the wire format
// itself doesn't encode.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("move %q: need at least 4 characters", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("move %q: unrecognized promotion piece %q", s, s[4])
		}
		return NewPromotion(from, to, promo), nil
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("move %q: no piece on %s", s, from)
	}

	pt := piece.Type()
	if pt == King && abs(int(to)-int(from)) == 2 {
		return NewCastling(from, to), nil
	}
	if pt == Pawn && to == pos.EnPassant {
		return NewEnPassant(from, to), nil
	}
	return NewMove(from, to), nil
}

// MoveList is a fixed-capacity move buffer, sized generously above any
// reachable legal move count, used to keep move generation allocation-free.
type MoveList struct {
	moves [256]Move
	count int
}

func NewMoveList() *MoveList { return &MoveList{} }

func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

func (ml *MoveList) Len() int          { return ml.count }
func (ml *MoveList) Get(i int) Move    { return ml.moves[i] }
func (ml *MoveList) Set(i int, m Move) { ml.moves[i] = m }
func (ml *MoveList) Clear()            { ml.count = 0 }

func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice exposes the populated prefix of the backing array.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// UndoInfo carries everything MakeMove destructively overwrites, so
// UnmakeMove can restore the position exactly.
type UndoInfo struct {
	CapturedPiece  Piece
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	Hash           uint64
	PawnKey        uint64
	Checkers       Bitboard
	KingSquare     [2]Square
	Pieces         [2][6]Bitboard
	Occupied       [2]Bitboard
	AllOccupied    Bitboard
	Valid          bool
}
