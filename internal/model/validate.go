package model

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Validate audits the board against the piece collections and returns every
// inconsistency it finds. A game driven only through its own methods always
// validates.
func (g *Game) Validate() error {
	var result *multierror.Error
	seen := map[*Piece]Color{}

	for _, c := range Colors {
		kings := 0
		for _, piece := range g.pieces[c] {
			if other, dup := seen[piece]; dup {
				result = multierror.Append(result, fmt.Errorf("%s listed for %s and %s", piece, other, c))
			}
			seen[piece] = c
			if piece.color != c {
				result = multierror.Append(result, fmt.Errorf("%s listed under %s", piece, c))
			}
			if !piece.inPlay {
				result = multierror.Append(result, fmt.Errorf("%s listed but not in play", piece))
				continue
			}
			if !piece.spot.IsValid() {
				result = multierror.Append(result, fmt.Errorf("%s stored off the board at %s", piece, piece.spot))
				continue
			}
			if occupant := g.board.Occupant(piece.spot); occupant != piece {
				result = multierror.Append(result, fmt.Errorf("%s at %s but the spot holds %s", piece, piece.spot, occupant))
			}
			if piece.typ == King {
				kings++
			}
		}
		if kings > 1 {
			result = multierror.Append(result, fmt.Errorf("%s has %d kings", c, kings))
		}
	}

	for row := 0; row < NumRows; row++ {
		for col := 0; col < NumCols; col++ {
			occupant := g.board.cells[row][col]
			if occupant == nil {
				continue
			}
			if _, listed := seen[occupant]; !listed {
				result = multierror.Append(result, fmt.Errorf("%s on %s is not in any collection", occupant, NewSpot(row, col)))
			}
			if occupant.spot != NewSpot(row, col) {
				result = multierror.Append(result, fmt.Errorf("%s on %s believes it is on %s", occupant, NewSpot(row, col), occupant.spot))
			}
		}
	}

	if g.inPlay && !g.turn.IsValid() {
		result = multierror.Append(result, fmt.Errorf("game in play with no side to move"))
	}
	return result.ErrorOrNil()
}
