package service

import "github.com/benbeisheim/variantchess-backend/internal/model"

type EventType string

const (
	EventGameStarted EventType = "gameStarted"
	EventMoveTaken   EventType = "moveTaken"
	EventCheck       EventType = "check"
	EventGameEnded   EventType = "gameEnded"
)

// Event is a game notification as sent to clients.
type Event struct {
	Type     EventType        `json:"type"`
	Side     model.Color      `json:"side,omitempty"`
	Captured *model.PieceType `json:"captured,omitempty"`
	Outcome  *model.Outcome   `json:"outcome,omitempty"`
}
