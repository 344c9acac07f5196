package controller

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/variantchess-backend/internal/service"
	"github.com/benbeisheim/variantchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// safeConn serializes writes; the game broadcasts from other goroutines.
type safeConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *safeConn) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *safeConn) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals("wsGameID").(string)
	playerID, _ := c.Locals("wsPlayerID").(string)

	conn := &safeConn{conn: c}
	accepted, err := wsc.gameService.RegisterConnection(gameID, playerID, conn)
	if err != nil {
		log.Warnw("failed to register connection", "game", gameID, "player", playerID, "error", err)
		if err := c.WriteJSON(ws.ErrorMessage(err)); err != nil {
			log.Debugw("failed to send error", "game", gameID, "player", playerID, "error", err)
		}
		c.Close()
		return
	}
	if !accepted {
		c.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, conn)
	log.Debugw("websocket connected", "game", gameID, "player", playerID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugw("websocket closed", "game", gameID, "player", playerID, "error", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(conn, gameID, playerID, fmt.Errorf("parse error: %w", err))
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Debugw("websocket message rejected", "game", gameID, "player", playerID, "type", msg.Type, "error", err)
			wsc.sendError(conn, gameID, playerID, err)
		}
	}
}

func (wsc *WebSocketController) sendError(conn service.Conn, gameID, playerID string, cause error) {
	if err := conn.WriteJSON(ws.ErrorMessage(cause)); err != nil {
		log.Debugw("failed to send error", "game", gameID, "player", playerID, "error", err)
	}
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, move.From, move.To)
	case ws.MessageTypeUndo:
		return wsc.gameService.Undo(gameID, playerID)
	case ws.MessageTypeResign:
		return wsc.gameService.Resign(gameID, playerID)
	case ws.MessageTypeRestart:
		return wsc.gameService.Restart(gameID, playerID)
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
