package model

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove       = errors.New("illegal move")
	ErrInvalidSpot       = errors.New("spot is off the board")
	ErrSpotOccupied      = errors.New("spot is occupied")
	ErrUnknownPiece      = errors.New("unknown piece type")
	ErrInvalidColor      = errors.New("invalid color")
	ErrDuplicateKing     = errors.New("side already has a king")
	ErrGameInProgress    = errors.New("game already in progress")
	ErrSimulationFailure = errors.New("simulation failure")
)

// IllegalMoveError is returned by MovePieceTo when a precondition fails. No
// state is changed when it is returned.
type IllegalMoveError struct {
	Piece  *Piece
	Spot   Spot
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("attempt to move %s to %s was invalid: %s", e.Piece, e.Spot, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}
