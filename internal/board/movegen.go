package board

// sliderAndLeaperKinds enumerates the non-pawn, non-king piece types that
// generate moves by looking up an attack bitboard for a square and masking
// it - the knight via its fixed table, bishop/rook/queen via the magic tables.
var sliderAndLeaperKinds = [...]PieceType{Knight, Bishop, Rook, Queen}

// attacksFor returns the attack bitboard for pt sitting on from, given the
// current occupancy - the single dispatch point both move generators walk.
func attacksFor(pt PieceType, from Square, occupied Bitboard) Bitboard {
	switch pt {
	case Knight:
		return KnightAttacks(from)
	case Bishop:
		return BishopAttacks(from, occupied)
	case Rook:
		return RookAttacks(from, occupied)
	case Queen:
		return QueenAttacks(from, occupied)
	default:
		return 0
	}
}

// GenerateLegalMoves generates every legal move available to the side to move.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return p.filterLegalMoves(ml)
}

// GeneratePseudoLegalMoves generates moves without checking whether they
// leave the mover's own king in check.
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return ml
}

// GenerateCaptures generates legal captures and promotions, for quiescence search.
func (p *Position) GenerateCaptures() *MoveList {
	ml := NewMoveList()
	p.generateCaptures(ml)
	return p.filterLegalMoves(ml)
}

// generateAllMoves fills ml with every pseudo-legal move: pawns, then each
// leaper/slider kind against every empty-or-enemy square, then the king,
// then castling.
func (p *Position) generateAllMoves(ml *MoveList) {
	us := p.SideToMove
	occupied := p.AllOccupied
	friendly := p.Occupied[us]

	p.generatePawnMoves(ml, us, p.Occupied[us.Other()], occupied, false)

	for _, pt := range sliderAndLeaperKinds {
		pieces := p.Pieces[us][pt]
		for pieces != 0 {
			from := pieces.PopLSB()
			targets := attacksFor(pt, from, occupied) &^ friendly
			for targets != 0 {
				ml.Add(NewMove(from, targets.PopLSB()))
			}
		}
	}

	p.generateKingMoves(ml, us)
	p.generateCastlingMoves(ml, us)
}

// generateCaptures fills ml with captures, en passant, and every promotion
// (including quiet ones, since a promotion is always worth searching in
// quiescence regardless of whether it also captures).
func (p *Position) generateCaptures(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	enemies := p.Occupied[them]
	occupied := p.AllOccupied

	p.generatePawnMoves(ml, us, enemies, occupied, true)

	for _, pt := range sliderAndLeaperKinds {
		pieces := p.Pieces[us][pt]
		for pieces != 0 {
			from := pieces.PopLSB()
			targets := attacksFor(pt, from, occupied) & enemies
			for targets != 0 {
				ml.Add(NewMove(from, targets.PopLSB()))
			}
		}
	}

	from := p.KingSquare[us]
	targets := KingAttacks(from) & enemies
	for targets != 0 {
		ml.Add(NewMove(from, targets.PopLSB()))
	}
}

// generatePawnMoves covers pushes, captures, promotions, and en passant for
// one side. capturesOnly restricts non-promotion pushes (quiescence doesn't
// want quiet single/double pawn pushes, but still wants every promotion).
func (p *Position) generatePawnMoves(ml *MoveList, us Color, enemies, occupied Bitboard, capturesOnly bool) {
	pawns := p.Pieces[us][Pawn]
	empty := ^occupied

	var attackL, attackR, promotionRank Bitboard
	var pushDir int
	if us == White {
		attackL, attackR, promotionRank, pushDir = pawns.NorthWest()&enemies, pawns.NorthEast()&enemies, Rank8, 8
	} else {
		attackL, attackR, promotionRank, pushDir = pawns.SouthWest()&enemies, pawns.SouthEast()&enemies, Rank1, -8
	}

	addShifted := func(bb Bitboard, offset int, add func(from, to Square)) {
		for bb != 0 {
			to := bb.PopLSB()
			add(Square(int(to)-offset), to)
		}
	}

	if !capturesOnly {
		var push1 Bitboard
		if us == White {
			push1 = pawns.North() & empty
		} else {
			push1 = pawns.South() & empty
		}
		addShifted(push1&^promotionRank, pushDir, func(from, to Square) { ml.Add(NewMove(from, to)) })

		var push2 Bitboard
		if us == White {
			push2 = ((push1 & Rank3).North()) & empty
		} else {
			push2 = ((push1 & Rank6).South()) & empty
		}
		addShifted(push2, 2*pushDir, func(from, to Square) { ml.Add(NewMove(from, to)) })

		addShifted(attackL&^promotionRank, pushDir-1, func(from, to Square) { ml.Add(NewMove(from, to)) })
		addShifted(attackR&^promotionRank, pushDir+1, func(from, to Square) { ml.Add(NewMove(from, to)) })
	} else {
		addShifted(attackL&^promotionRank, pushDir-1, func(from, to Square) { ml.Add(NewMove(from, to)) })
		addShifted(attackR&^promotionRank, pushDir+1, func(from, to Square) { ml.Add(NewMove(from, to)) })
	}

	var pushPromo Bitboard
	if us == White {
		pushPromo = pawns.North() & empty & promotionRank
	} else {
		pushPromo = pawns.South() & empty & promotionRank
	}
	addShifted(pushPromo, pushDir, func(from, to Square) { addPromotions(ml, from, to) })
	addShifted(attackL&promotionRank, pushDir-1, func(from, to Square) { addPromotions(ml, from, to) })
	addShifted(attackR&promotionRank, pushDir+1, func(from, to Square) { addPromotions(ml, from, to) })

	if p.EnPassant != NoSquare {
		epBB := SquareBB(p.EnPassant)
		var epAttackers Bitboard
		if us == White {
			epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for epAttackers != 0 {
			ml.Add(NewEnPassant(epAttackers.PopLSB(), p.EnPassant))
		}
	}
}

// addPromotions adds all four promotion choices for one from/to pair.
func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewPromotion(from, to, Queen))
	ml.Add(NewPromotion(from, to, Rook))
	ml.Add(NewPromotion(from, to, Bishop))
	ml.Add(NewPromotion(from, to, Knight))
}

// generateKingMoves generates ordinary (non-castling) king moves.
func (p *Position) generateKingMoves(ml *MoveList, us Color) {
	from := p.KingSquare[us]
	targets := KingAttacks(from) &^ p.Occupied[us]
	for targets != 0 {
		ml.Add(NewMove(from, targets.PopLSB()))
	}
}

// castlingPath describes one side's castling move: the rights bit that
// must be set, the squares that must be empty, and the squares (including
// the king's start and end) that must not be attacked.
type castlingPath struct {
	right             CastlingRights
	empty             Bitboard
	mustNotBeAttacked [3]Square
	kingFrom, kingTo  Square
}

func castlingPaths(us Color) [2]castlingPath {
	if us == White {
		return [2]castlingPath{
			{WhiteKingSideCastle, SquareBB(F1) | SquareBB(G1), [3]Square{E1, F1, G1}, E1, G1},
			{WhiteQueenSideCastle, SquareBB(B1) | SquareBB(C1) | SquareBB(D1), [3]Square{E1, D1, C1}, E1, C1},
		}
	}
	return [2]castlingPath{
		{BlackKingSideCastle, SquareBB(F8) | SquareBB(G8), [3]Square{E8, F8, G8}, E8, G8},
		{BlackQueenSideCastle, SquareBB(B8) | SquareBB(C8) | SquareBB(D8), [3]Square{E8, D8, C8}, E8, C8},
	}
}

// generateCastlingMoves adds both castling moves still available to us,
// after confirming the squares between king and rook are clear and the
// king doesn't start, pass through, or land on an attacked square.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()
	for _, path := range castlingPaths(us) {
		if p.CastlingRights&path.right == 0 {
			continue
		}
		if p.AllOccupied&path.empty != 0 {
			continue
		}
		safe := true
		for _, sq := range path.mustNotBeAttacked {
			if p.IsSquareAttacked(sq, them) {
				safe = false
				break
			}
		}
		if safe {
			ml.Add(NewCastling(path.kingFrom, path.kingTo))
		}
	}
}

// filterLegalMoves drops every move in ml that leaves its own king in check.
func (p *Position) filterLegalMoves(ml *MoveList) *MoveList {
	result := NewMoveList()
	for i := 0; i < ml.Len(); i++ {
		if m := ml.Get(i); p.IsLegal(m) {
			result.Add(m)
		}
	}
	return result
}

// IsLegal reports whether m is legal in the current position. King moves
// are checked by asking whether the destination is attacked with the king
// itself removed from the occupancy (so the king can't "hide behind
// itself" on a square a slider would otherwise see through); every other
// move is checked by actually making and unmaking it, which is simpler to
// get right than computing pins and discovered checks for every piece kind.
func (p *Position) IsLegal(m Move) bool {
	us := p.SideToMove
	them := us.Other()
	from := m.From()
	ksq := p.KingSquare[us]

	if from == ksq {
		if m.IsCastling() {
			return true
		}
		occ := p.AllOccupied &^ SquareBB(from)
		return p.AttackersByColor(m.To(), them, occ) == 0
	}

	undo := p.MakeMove(m)
	if !undo.Valid {
		return false
	}
	attacked := p.IsSquareAttacked(ksq, them)
	p.UnmakeMove(m, undo)
	return !attacked
}

// MakeMove applies m to the position, updating the incremental hash and
// all cached state, and returns the information UnmakeMove needs to
// reverse it. undo.Valid is false (and the position untouched) if from
// held no piece.
func (p *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		CapturedPiece:  NoPiece,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		Hash:           p.Hash,
		PawnKey:        p.PawnKey,
		Checkers:       p.Checkers,
	}

	us := p.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	piece := p.PieceAt(from)
	if piece == NoPiece {
		return undo
	}
	undo.Valid = true
	pt := piece.Type()

	p.Hash ^= sideToMoveKey
	p.Hash ^= castleKeys[p.CastlingRights]
	if p.EnPassant != NoSquare {
		p.Hash ^= epFileKeys[p.EnPassant.File()]
	}
	p.EnPassant = NoSquare

	if m.IsEnPassant() {
		capturedSq := to - 8
		if us == Black {
			capturedSq = to + 8
		}
		undo.CapturedPiece = p.liftPiece(capturedSq)
		p.Hash ^= pieceKeys[them][Pawn][capturedSq]
	} else if captured := p.PieceAt(to); captured != NoPiece {
		undo.CapturedPiece = captured
		p.liftPiece(to)
		p.Hash ^= pieceKeys[them][captured.Type()][to]
	}

	p.slidePiece(from, to)
	p.Hash ^= pieceKeys[us][pt][from]
	p.Hash ^= pieceKeys[us][pt][to]

	if m.IsPromotion() {
		promoPt := m.Promotion()
		p.Pieces[us][Pawn] &^= SquareBB(to)
		p.Pieces[us][promoPt] |= SquareBB(to)
		p.Hash ^= pieceKeys[us][Pawn][to]
		p.Hash ^= pieceKeys[us][promoPt][to]
	}

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(from, to)
		p.slidePiece(rookFrom, rookTo)
		p.Hash ^= pieceKeys[us][Rook][rookFrom]
		p.Hash ^= pieceKeys[us][Rook][rookTo]
	}

	p.updateCastlingRightsAfter(pt, us, from, to)
	p.Hash ^= castleKeys[p.CastlingRights]

	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		epSquare := Square((int(from) + int(to)) / 2)
		p.EnPassant = epSquare
		p.Hash ^= epFileKeys[epSquare.File()]
	}

	if pt == Pawn || undo.CapturedPiece != NoPiece {
		p.HalfMoveClock = 0
		p.PawnKey = p.ComputePawnKey()
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
	p.UpdateCheckers()
	return undo
}

// castlingRookSquares derives the rook's from/to squares for a king move
// already known to be castling, from the king's own from/to squares.
func castlingRookSquares(kingFrom, kingTo Square) (rookFrom, rookTo Square) {
	rank := kingFrom.Rank()
	if kingTo > kingFrom {
		return NewSquare(7, rank), NewSquare(5, rank)
	}
	return NewSquare(0, rank), NewSquare(3, rank)
}

// updateCastlingRightsAfter strips whichever castling rights a king move,
// or a rook moving off / being captured on its home square, invalidates.
func (p *Position) updateCastlingRightsAfter(pt PieceType, us Color, from, to Square) {
	if pt == King {
		if us == White {
			p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}
	if from == A1 || to == A1 {
		p.CastlingRights &^= WhiteQueenSideCastle
	}
	if from == H1 || to == H1 {
		p.CastlingRights &^= WhiteKingSideCastle
	}
	if from == A8 || to == A8 {
		p.CastlingRights &^= BlackQueenSideCastle
	}
	if from == H8 || to == H8 {
		p.CastlingRights &^= BlackKingSideCastle
	}
}

// UnmakeMove reverses a previously applied MakeMove, given its undo info.
func (p *Position) UnmakeMove(m Move, undo UndoInfo) {
	them := p.SideToMove
	us := them.Other()
	from, to := m.From(), m.To()

	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant
	p.HalfMoveClock = undo.HalfMoveClock
	p.Hash = undo.Hash
	p.PawnKey = undo.PawnKey
	p.Checkers = undo.Checkers
	p.SideToMove = us
	if us == Black {
		p.FullMoveNumber--
	}

	if m.IsPromotion() {
		promoPt := m.Promotion()
		p.Pieces[us][promoPt] &^= SquareBB(to)
		p.Pieces[us][Pawn] |= SquareBB(to)
	}

	p.slidePiece(to, from)

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(from, to)
		p.slidePiece(rookTo, rookFrom)
	}

	if undo.CapturedPiece != NoPiece {
		if m.IsEnPassant() {
			capturedSq := to - 8
			if us == Black {
				capturedSq = to + 8
			}
			p.placePiece(undo.CapturedPiece, capturedSq)
		} else {
			p.placePiece(undo.CapturedPiece, to)
		}
	}
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func (p *Position) HasLegalMoves() bool {
	ml := p.GeneratePseudoLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		if p.IsLegal(ml.Get(i)) {
			return true
		}
	}
	return false
}

func (p *Position) IsCheckmate() bool { return p.InCheck() && !p.HasLegalMoves() }
func (p *Position) IsStalemate() bool { return !p.InCheck() && !p.HasLegalMoves() }

// IsDraw reports whether the position is drawn by stalemate, the 50-move
// rule, or insufficient mating material.
func (p *Position) IsDraw() bool {
	if p.IsStalemate() || p.HalfMoveClock >= 100 {
		return true
	}
	return p.IsInsufficientMaterial()
}

// IsInsufficientMaterial reports whether neither side retains enough
// material to force checkmate: bare kings, a lone minor piece against a
// bare king, or opposite-colored-square-bishops-only endings excluded
// (same-colored bishops can never deliver mate together with a lone king).
func (p *Position) IsInsufficientMaterial() bool {
	if p.Pieces[White][Pawn]|p.Pieces[Black][Pawn] != 0 ||
		p.Pieces[White][Rook]|p.Pieces[Black][Rook] != 0 ||
		p.Pieces[White][Queen]|p.Pieces[Black][Queen] != 0 {
		return false
	}

	wKnights, wBishops := p.Pieces[White][Knight].PopCount(), p.Pieces[White][Bishop].PopCount()
	bKnights, bBishops := p.Pieces[Black][Knight].PopCount(), p.Pieces[Black][Bishop].PopCount()

	if wKnights+wBishops+bKnights+bBishops == 0 {
		return true
	}
	if wKnights+wBishops <= 1 && bKnights+bBishops == 0 {
		return true
	}
	if bKnights+bBishops <= 1 && wKnights+wBishops == 0 {
		return true
	}
	if wKnights == 0 && bKnights == 0 && wBishops == 1 && bBishops == 1 {
		wSq := p.Pieces[White][Bishop].LSB()
		bSq := p.Pieces[Black][Bishop].LSB()
		if squareColor(wSq) == squareColor(bSq) {
			return true
		}
	}
	return false
}

// squareColor returns 0 for a dark square, 1 for a light square.
func squareColor(sq Square) int {
	return int(sq.File()+sq.Rank()) % 2
}
