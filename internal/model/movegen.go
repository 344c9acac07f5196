package model

type direction struct {
	row, col int
}

var (
	orthogonal    = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal      = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	allDirections = append(append([]direction{}, orthogonal...), diagonal...)
	knightJumps   = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

// pawnStartRow is the row a color's pawns are set up on.
func pawnStartRow(c Color) int {
	if c == White {
		return 1
	}
	return NumRows - 2
}

func pawnMoves(p *Piece, regardlessOfKing bool) []Spot {
	board := p.game.board
	forward := p.color.forward()
	moves := []Spot{}

	oneForward := p.spot.Offset(forward, 0)
	if oneForward.IsValid() && board.Occupant(oneForward) == nil &&
		p.IsAvailableSpot(oneForward.Row, oneForward.Col, regardlessOfKing) {
		moves = append(moves, oneForward)
		// the double step is only offered when the single step is
		twoForward := p.spot.Offset(2*forward, 0)
		if p.spot.Row == pawnStartRow(p.color) && twoForward.IsValid() && board.Occupant(twoForward) == nil &&
			p.IsAvailableSpot(twoForward.Row, twoForward.Col, regardlessOfKing) {
			moves = append(moves, twoForward)
		}
	}

	for _, side := range []int{1, -1} {
		attack := p.spot.Offset(forward, side)
		if board.Occupant(attack) != nil && p.IsAvailableSpot(attack.Row, attack.Col, regardlessOfKing) {
			moves = append(moves, attack)
		}
	}
	return moves
}

// slidingMoves walks outward along each direction until it leaves the board.
// When blocking is set the walk also ends on the first occupied spot, which is
// itself a candidate if it holds an opposing piece.
func slidingMoves(p *Piece, dirs []direction, blocking bool, regardlessOfKing bool) []Spot {
	board := p.game.board
	moves := []Spot{}
	for _, dir := range dirs {
		target := p.spot.Offset(dir.row, dir.col)
		for target.IsValid() {
			if p.IsAvailableSpot(target.Row, target.Col, regardlessOfKing) {
				moves = append(moves, target)
			}
			if blocking && board.Occupant(target) != nil {
				break
			}
			target = target.Offset(dir.row, dir.col)
		}
	}
	return moves
}

func steppingMoves(p *Piece, dirs []direction, regardlessOfKing bool) []Spot {
	moves := []Spot{}
	for _, dir := range dirs {
		target := p.spot.Offset(dir.row, dir.col)
		if p.IsAvailableSpot(target.Row, target.Col, regardlessOfKing) {
			moves = append(moves, target)
		}
	}
	return moves
}
