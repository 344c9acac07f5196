package ws

import (
	"encoding/json"

	"github.com/benbeisheim/variantchess-backend/internal/model"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	// client to server
	MessageTypeMove    MessageType = "move"
	MessageTypeUndo    MessageType = "undo"
	MessageTypeResign  MessageType = "resign"
	MessageTypeRestart MessageType = "restart"

	// server to client
	MessageTypeGameState MessageType = "gameState"
	MessageTypeEvent     MessageType = "event"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload asks for the piece on From to move to To.
type MovePayload struct {
	From model.Spot `json:"from"`
	To   model.Spot `json:"to"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

func NewMessage(t MessageType, payload interface{}) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: data}, nil
}

func ErrorMessage(err error) Message {
	msg, _ := NewMessage(MessageTypeError, ErrorPayload{Error: err.Error()})
	return msg
}
