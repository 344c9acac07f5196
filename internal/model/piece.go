package model

import "fmt"

type PieceType string

const (
	Pawn        PieceType = "pawn"
	Rook        PieceType = "rook"
	Knight      PieceType = "knight"
	Bishop      PieceType = "bishop"
	Queen       PieceType = "queen"
	King        PieceType = "king"
	MegaRook    PieceType = "megarook"
	FlipFlopper PieceType = "flipflopper"
)

// PieceTypes lists every variant the engine can create.
var PieceTypes = []PieceType{Pawn, Rook, Knight, Bishop, Queen, King, MegaRook, FlipFlopper}

func (t PieceType) IsValid() bool {
	for _, known := range PieceTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t PieceType) String() string {
	switch t {
	case Pawn:
		return "Pawn"
	case Rook:
		return "Rook"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case MegaRook:
		return "MegaRook"
	case FlipFlopper:
		return "FlipFlopper"
	}
	return "Piece"
}

// Piece is a single game piece. While in play it occupies exactly one spot and
// that spot's occupant is the piece; out of play it has no spot.
type Piece struct {
	id     int
	typ    PieceType
	color  Color
	game   *Game
	spot   Spot
	inPlay bool
	// parity flips on every relocation; FlipFlopper reads it
	parity int
}

func (p *Piece) ID() int { return p.id }
func (p *Piece) Type() PieceType { return p.typ }
func (p *Piece) Color() Color { return p.color }
func (p *Piece) InPlay() bool { return p.inPlay }

// Spot returns the occupied spot and false once the piece is out of play.
func (p *Piece) Spot() (Spot, bool) {
	return p.spot, p.inPlay
}

// MoveParity is 0 when an even number of relocations have been applied to the
// piece and 1 otherwise.
func (p *Piece) MoveParity() int {
	return p.parity
}

func (p *Piece) String() string {
	if p == nil {
		return "<no piece>"
	}
	return p.color.String() + " " + p.typ.String()
}

// moveTo relocates the piece without any legality checks or capture handling.
func (p *Piece) moveTo(s Spot) {
	board := p.game.board
	board.setOccupant(p.spot, nil)
	p.spot = s
	board.setOccupant(s, p)
	p.parity ^= 1
}

func (p *Piece) removeFromPlay() {
	if p.inPlay && p.game.board.Occupant(p.spot) == p {
		p.game.board.setOccupant(p.spot, nil)
	}
	p.spot = Spot{}
	p.inPlay = false
}

// IsAvailableSpot reports whether the piece may end a move on the given
// coordinates. See Game.IsAvailableSpotForPiece.
func (p *Piece) IsAvailableSpot(row, col int, regardlessOfKing bool) bool {
	return p.game.IsAvailableSpotForPiece(p, row, col, regardlessOfKing)
}

// PossibleMoves returns the destinations this piece could move to. Unless
// regardlessOfKing is set, destinations that would leave the mover's king in
// check are excluded.
func (p *Piece) PossibleMoves(regardlessOfKing bool) []Spot {
	if !p.inPlay {
		return nil
	}
	switch p.typ {
	case Pawn:
		return pawnMoves(p, regardlessOfKing)
	case Rook:
		return slidingMoves(p, orthogonal, true, regardlessOfKing)
	case Bishop:
		return slidingMoves(p, diagonal, true, regardlessOfKing)
	case Queen:
		return slidingMoves(p, allDirections, true, regardlessOfKing)
	case King:
		return steppingMoves(p, allDirections, regardlessOfKing)
	case Knight:
		return steppingMoves(p, knightJumps, regardlessOfKing)
	case MegaRook:
		return slidingMoves(p, orthogonal, false, regardlessOfKing)
	case FlipFlopper:
		if p.parity == 1 {
			return steppingMoves(p, allDirections, regardlessOfKing)
		}
		return slidingMoves(p, allDirections, true, regardlessOfKing)
	}
	panic(fmt.Sprintf("no move generator for piece type %q", p.typ))
}

// CanMoveTo reports whether s is among the filtered possible moves.
func (p *Piece) CanMoveTo(s Spot) bool {
	for _, move := range p.PossibleMoves(false) {
		if move == s {
			return true
		}
	}
	return false
}
