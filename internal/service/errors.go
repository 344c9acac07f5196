package service

import "github.com/pkg/errors"

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrGameFull      = errors.New("game is full")
	ErrNotAPlayer    = errors.New("player is not seated in this game")
	ErrNotYourTurn   = errors.New("it is not your turn")
	ErrGameNotInPlay = errors.New("game is not in play")
	ErrNoPiece       = errors.New("no piece of yours on that spot")
	ErrWaiting       = errors.New("waiting for an opponent")
)
