package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is Forsyth-Edwards notation for the initial position of a game.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// fenFields names the six whitespace-separated sections of a FEN record in
// the order ParseFEN expects them.
const (
	fenBoard = iota
	fenActiveColor
	fenCastling
	fenEnPassant
	fenHalfmove
	fenFullmove
	fenMinFields = fenHalfmove // the two clock fields may be omitted
)

// ParseFEN builds a Position from Forsyth-Edwards notation. The halfmove
// clock and fullmove number fields are optional and default to 0 and 1.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < fenMinFields {
		return nil, fmt.Errorf("fen: expected at least %d fields, got %d", fenMinFields, len(fields))
	}

	pos := &Position{EnPassant: NoSquare, FullMoveNumber: 1}
	pos.KingSquare[White] = NoSquare
	pos.KingSquare[Black] = NoSquare

	if err := layOutBoard(pos, fields[fenBoard]); err != nil {
		return nil, err
	}

	switch fields[fenActiveColor] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("fen: side to move must be 'w' or 'b', got %q", fields[fenActiveColor])
	}

	rights, err := parseCastlingField(fields[fenCastling])
	if err != nil {
		return nil, err
	}
	pos.CastlingRights = rights

	if fields[fenEnPassant] != "-" {
		sq, err := ParseSquare(fields[fenEnPassant])
		if err != nil {
			return nil, fmt.Errorf("fen: bad en passant square %q: %w", fields[fenEnPassant], err)
		}
		pos.EnPassant = sq
	}

	if len(fields) > fenHalfmove {
		n, err := strconv.Atoi(fields[fenHalfmove])
		if err != nil {
			return nil, fmt.Errorf("fen: bad halfmove clock %q: %w", fields[fenHalfmove], err)
		}
		pos.HalfMoveClock = n
	}
	if len(fields) > fenFullmove {
		n, err := strconv.Atoi(fields[fenFullmove])
		if err != nil {
			return nil, fmt.Errorf("fen: bad fullmove number %q: %w", fields[fenFullmove], err)
		}
		pos.FullMoveNumber = n
	}

	pos.rebuildOccupancy()
	pos.locateKings()
	pos.UpdateCheckers()
	pos.Hash = pos.ComputeHash()
	pos.PawnKey = pos.ComputePawnKey()

	return pos, nil
}

// layOutBoard places pieces from the "/"-separated rank section of a FEN,
// rank 8 first, onto an otherwise empty Position.
func layOutBoard(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("fen: board section has %d ranks, want 8", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0

		for _, ch := range rankStr {
			if file > 7 {
				return fmt.Errorf("fen: rank %d overflows past the h-file", rank+1)
			}
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece := PieceFromChar(byte(ch))
			if piece == NoPiece {
				return fmt.Errorf("fen: unrecognized piece letter %q", ch)
			}
			pos.placePiece(piece, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return fmt.Errorf("fen: rank %d covers %d files, want 8", rank+1, file)
		}
	}
	return nil
}

// parseCastlingField turns a FEN castling section ("KQkq", "Kq", "-", ...)
// into the corresponding CastlingRights bitmask.
func parseCastlingField(field string) (CastlingRights, error) {
	if field == "-" {
		return NoCastling, nil
	}

	var rights CastlingRights
	for _, ch := range field {
		switch ch {
		case 'K':
			rights |= WhiteKingSideCastle
		case 'Q':
			rights |= WhiteQueenSideCastle
		case 'k':
			rights |= BlackKingSideCastle
		case 'q':
			rights |= BlackQueenSideCastle
		default:
			return 0, fmt.Errorf("fen: unrecognized castling letter %q", ch)
		}
	}
	return rights, nil
}

// ToFEN renders the position back to Forsyth-Edwards notation.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		run := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				run++
				continue
			}
			if run > 0 {
				sb.WriteString(strconv.Itoa(run))
				run = 0
			}
			sb.WriteString(piece.String())
		}
		if run > 0 {
			sb.WriteString(strconv.Itoa(run))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.CastlingRights.String())

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	fmt.Fprintf(&sb, " %d %d", p.HalfMoveClock, p.FullMoveNumber)

	return sb.String()
}

// ComputeHash recomputes the Zobrist hash of the position from scratch,
// independent of any incremental updates MakeMove/UnmakeMove may have
// applied - used after parsing and as a periodic correctness check.
func (p *Position) ComputeHash() uint64 {
	var hash uint64

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				hash ^= pieceKeys[c][pt][sq]
			}
		}
	}

	if p.SideToMove == Black {
		hash ^= sideToMoveKey
	}
	hash ^= castleKeys[p.CastlingRights]
	if p.EnPassant != NoSquare {
		hash ^= epFileKeys[p.EnPassant.File()]
	}

	return hash
}

// ComputePawnKey recomputes the pawn-only hash used to index the pawn
// structure cache, from scratch.
func (p *Position) ComputePawnKey() uint64 {
	var key uint64
	for c := White; c <= Black; c++ {
		bb := p.Pieces[c][Pawn]
		for bb != 0 {
			sq := bb.PopLSB()
			key ^= pieceKeys[c][Pawn][sq]
		}
	}
	return key
}
