package board

import (
	"fmt"
	"math/bits"
)

// Bitboard is a 64-square board packed into one word, one bit per square,
// using the Little-Endian Rank-File mapping: bit 0 is a1, bit 7 is h1,
// bit 56 is a8, bit 63 is h8.
type Bitboard uint64

// Per-file masks, used both directly and via FileMask for a file index.
const (
	FileA Bitboard = 0x0101010101010101 << iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

// Per-rank masks, used both directly and via RankMask for a rank index.
const (
	Rank1 Bitboard = 0x00000000000000FF << (8 * iota)
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const (
	Empty    Bitboard = 0
	Universe Bitboard = ^Bitboard(0)

	// Edge masks guard the wraparound that plain shifts would otherwise
	// introduce at the board boundary (e.g. h-file sliding "east" onto a).
	NotFileA  Bitboard = ^FileA
	NotFileH  Bitboard = ^FileH
	NotFileAB Bitboard = ^(FileA | FileB)
	NotFileGH Bitboard = ^(FileG | FileH)

	Center    Bitboard = (FileD | FileE) & (Rank4 | Rank5)
	BigCenter Bitboard = (FileC | FileD | FileE | FileF) & (Rank3 | Rank4 | Rank5 | Rank6)

	WhiteKingSide  Bitboard = (FileF | FileG | FileH) & (Rank1 | Rank2)
	WhiteQueenSide Bitboard = (FileA | FileB | FileC) & (Rank1 | Rank2)
	BlackKingSide  Bitboard = (FileF | FileG | FileH) & (Rank7 | Rank8)
	BlackQueenSide Bitboard = (FileA | FileB | FileC) & (Rank7 | Rank8)
)

// FileMask indexes a file mask by file number (0 = a, 7 = h).
var FileMask = [8]Bitboard{FileA, FileB, FileC, FileD, FileE, FileF, FileG, FileH}

// RankMask indexes a rank mask by rank number (0 = rank 1, 7 = rank 8).
var RankMask = [8]Bitboard{Rank1, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8}

// SquareBB returns the single-bit bitboard for one square.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// --- single-bit accessors ---

func (b Bitboard) Set(sq Square) Bitboard    { return b | (1 << sq) }
func (b Bitboard) Clear(sq Square) Bitboard  { return b &^ (1 << sq) }
func (b Bitboard) Toggle(sq Square) Bitboard { return b ^ (1 << sq) }
func (b Bitboard) IsSet(sq Square) bool      { return b&(1<<sq) != 0 }

// PopCount returns how many squares are set.
func (b Bitboard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// Empty reports whether no square is set.
func (b Bitboard) Empty() bool { return b == 0 }

// More reports whether at least one square is set.
func (b Bitboard) More() bool { return b != 0 }

// LSB returns the lowest-indexed set square, or NoSquare if none is set.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// MSB returns the highest-indexed set square, or NoSquare if none is set.
func (b Bitboard) MSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLSB clears and returns the lowest-indexed set square; the standard way
// to drain a bitboard square-by-square in move generation and evaluation.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// ForEach visits every set square, lowest index first.
func (b Bitboard) ForEach(f func(Square)) {
	for b != 0 {
		f(b.PopLSB())
	}
}

// Squares materializes every set square into a slice, lowest index first.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.PopCount())
	b.ForEach(func(sq Square) { out = append(out, sq) })
	return out
}

// --- one-step shifts, each masking away the wraparound a plain << or >>
// would introduce at the board edge ---

func (b Bitboard) North() Bitboard     { return b << 8 }
func (b Bitboard) South() Bitboard     { return b >> 8 }
func (b Bitboard) East() Bitboard      { return (b << 1) & NotFileA }
func (b Bitboard) West() Bitboard      { return (b >> 1) & NotFileH }
func (b Bitboard) NorthEast() Bitboard { return (b << 9) & NotFileA }
func (b Bitboard) NorthWest() Bitboard { return (b << 7) & NotFileH }
func (b Bitboard) SouthEast() Bitboard { return (b >> 7) & NotFileA }
func (b Bitboard) SouthWest() Bitboard { return (b >> 9) & NotFileH }

// fillByDoubling spreads every set bit across an entire direction using
// doubling shifts (3 steps covers all 8 ranks: 1, 2, 4 squares at a time).
func fillByDoubling(b Bitboard, step uint, shift func(Bitboard, uint) Bitboard) Bitboard {
	b |= shift(b, step)
	b |= shift(b, step*2)
	b |= shift(b, step*4)
	return b
}

// NorthFill marks every square north of any set bit, the set bits included.
func (b Bitboard) NorthFill() Bitboard {
	return fillByDoubling(b, 8, func(x Bitboard, n uint) Bitboard { return x << n })
}

// SouthFill marks every square south of any set bit, the set bits included.
func (b Bitboard) SouthFill() Bitboard {
	return fillByDoubling(b, 8, func(x Bitboard, n uint) Bitboard { return x >> n })
}

// FileFill marks every square sharing a file with a set bit.
func (b Bitboard) FileFill() Bitboard {
	return b.NorthFill() | b.SouthFill()
}

// String renders the bitboard as an 8x8 ASCII diagram, rank 8 on top, for
// use in debug logging.
func (b Bitboard) String() string {
	var out string
	for rank := 7; rank >= 0; rank-- {
		out += fmt.Sprintf("%d ", rank+1)
		for file := 0; file < 8; file++ {
			if b.IsSet(NewSquare(file, rank)) {
				out += "1 "
			} else {
				out += ". "
			}
		}
		out += "\n"
	}
	out += "  a b c d e f g h\n"
	return out
}
