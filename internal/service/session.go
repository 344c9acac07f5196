package service

import (
	"sync"
	"time"

	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/benbeisheim/variantchess-backend/internal/storage"
	"github.com/benbeisheim/variantchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/pkg/errors"
)

// ResultStore receives every finished game.
type ResultStore interface {
	RecordResult(result storage.GameResult) error
	Stats() (*storage.Stats, error)
}

// Session is one hosted game: the engine, its two seats and the connections
// watching it. The engine is not safe for concurrent use, so every call into
// it happens under mu.
type Session struct {
	ID     string
	Layout string

	mu      sync.Mutex
	game    *model.Game
	players map[model.Color]string
	// filled by the listener callbacks while mu is held
	pending []Event
	result  *storage.GameResult

	connections *Connections
	results     ResultStore
	createdAt   time.Time
}

type Players struct {
	White string `json:"white"`
	Black string `json:"black"`
}

// SessionState is what clients see of a session.
type SessionState struct {
	ID      string          `json:"id"`
	Layout  string          `json:"layout"`
	Players Players         `json:"players"`
	Game    model.GameState `json:"game"`
}

func NewSession(id, layout string, results ResultStore) (*Session, error) {
	if _, err := model.LayoutByName(layout); err != nil {
		return nil, err
	}
	s := &Session{
		ID:          id,
		Layout:      layout,
		game:        model.NewGame(),
		players:     make(map[model.Color]string),
		connections: NewConnections(),
		results:     results,
		createdAt:   time.Now(),
	}
	s.game.SetEventListener(s)
	return s, nil
}

func (s *Session) OnGameStarted() {
	s.pending = append(s.pending, Event{Type: EventGameStarted, Side: s.game.TurnColor()})
}

func (s *Session) OnMoveTaken(captured *model.Piece) {
	event := Event{Type: EventMoveTaken, Side: s.game.TurnColor()}
	if captured != nil {
		typ := captured.Type()
		event.Captured = &typ
	}
	s.pending = append(s.pending, event)
}

func (s *Session) OnCheck(side model.Color) {
	s.pending = append(s.pending, Event{Type: EventCheck, Side: side})
}

func (s *Session) OnGameEnded(winner model.Color) {
	outcome, ok := s.game.LastOutcome()
	if !ok {
		outcome = model.Outcome{Winner: winner, Method: model.MethodForfeit}
	}
	s.pending = append(s.pending, Event{Type: EventGameEnded, Side: winner, Outcome: &outcome})
	s.result = &storage.GameResult{
		GameID:  s.ID,
		Layout:  s.Layout,
		White:   s.players[model.White],
		Black:   s.players[model.Black],
		Winner:  outcome.Winner,
		Method:  outcome.Method,
		Plies:   outcome.Plies,
		EndedAt: time.Now(),
	}
}

// do runs op against the engine under the lock, then records any result and
// broadcasts the events and the new state once the lock is released.
func (s *Session) do(op func() error) error {
	s.mu.Lock()
	err := op()
	events := s.pending
	s.pending = nil
	result := s.result
	s.result = nil
	state := s.stateLocked()
	s.mu.Unlock()

	if result != nil && s.results != nil {
		if err := s.results.RecordResult(*result); err != nil {
			log.Errorw("failed to record result", "game", s.ID, "error", err)
		}
	}
	for _, event := range events {
		s.broadcast(ws.MessageTypeEvent, event)
	}
	if err == nil {
		s.broadcast(ws.MessageTypeGameState, state)
	}
	return err
}

func (s *Session) broadcast(t ws.MessageType, payload interface{}) {
	msg, err := ws.NewMessage(t, payload)
	if err != nil {
		log.Errorw("failed to encode message", "game", s.ID, "type", t, "error", err)
		return
	}
	s.connections.Broadcast(msg)
}

// AddPlayer seats the player and starts the game once both seats are taken.
// A player who is already seated gets their color back.
func (s *Session) AddPlayer(playerID string) (model.Color, error) {
	var color model.Color
	err := s.do(func() error {
		if seated, ok := s.colorOf(playerID); ok {
			color = seated
			return nil
		}
		for _, c := range model.Colors {
			if _, taken := s.players[c]; !taken {
				s.players[c] = playerID
				color = c
				log.Infow("player seated", "game", s.ID, "player", playerID, "color", c)
				return s.startIfReady()
			}
		}
		return ErrGameFull
	})
	return color, err
}

func (s *Session) startIfReady() error {
	if len(s.players) < len(model.Colors) || s.game.IsInPlay() {
		return nil
	}
	if _, ended := s.game.LastOutcome(); ended {
		return nil
	}
	layout, err := model.LayoutByName(s.Layout)
	if err != nil {
		return err
	}
	return errors.Wrap(s.game.StartGameWithLayout(layout), "start game")
}

func (s *Session) colorOf(playerID string) (model.Color, bool) {
	for c, seated := range s.players {
		if seated == playerID {
			return c, true
		}
	}
	return model.NoColor, false
}

// seat returns the mover's color once the game is running.
func (s *Session) seat(playerID string) (model.Color, error) {
	color, ok := s.colorOf(playerID)
	if !ok {
		return model.NoColor, ErrNotAPlayer
	}
	if !s.game.IsInPlay() {
		if len(s.players) < len(model.Colors) {
			return color, ErrWaiting
		}
		return color, ErrGameNotInPlay
	}
	return color, nil
}

// Move plays from -> to for the player and hands the turn over.
func (s *Session) Move(playerID string, from, to model.Spot) error {
	return s.do(func() error {
		color, err := s.seat(playerID)
		if err != nil {
			return err
		}
		if s.game.TurnColor() != color {
			return ErrNotYourTurn
		}
		piece := s.game.Board().Occupant(from)
		if piece == nil || piece.Color() != color {
			return errors.Wrapf(ErrNoPiece, "%s", from)
		}
		if !piece.CanMoveTo(to) {
			return &model.IllegalMoveError{Piece: piece, Spot: to, Reason: "not a legal destination"}
		}
		if _, err := s.game.MovePieceTo(piece, to); err != nil {
			return err
		}
		s.game.StartNewTurn()
		return nil
	})
}

// Undo takes back the player's last move, along with any reply to it.
func (s *Session) Undo(playerID string) error {
	return s.do(func() error {
		color, err := s.seat(playerID)
		if err != nil {
			return err
		}
		s.game.UndoLastMoveBy(color)
		return nil
	})
}

func (s *Session) Resign(playerID string) error {
	return s.do(func() error {
		color, err := s.seat(playerID)
		if err != nil {
			return err
		}
		log.Infow("player resigned", "game", s.ID, "player", playerID, "color", color)
		s.game.EndGame(color.Opponent())
		return nil
	})
}

// Restart sets the board up again. Either seated player may ask for it.
func (s *Session) Restart(playerID string) error {
	return s.do(func() error {
		if _, ok := s.colorOf(playerID); !ok {
			return ErrNotAPlayer
		}
		if len(s.players) < len(model.Colors) {
			return ErrWaiting
		}
		return errors.Wrap(s.game.RestartGame(), "restart game")
	})
}

// LegalMoves lists where the piece on from may go. Empty when the spot is empty
// or the game is not running.
func (s *Session) LegalMoves(from model.Spot) []model.Spot {
	s.mu.Lock()
	defer s.mu.Unlock()

	piece := s.game.Board().Occupant(from)
	if piece == nil || !s.game.IsInPlay() {
		return []model.Spot{}
	}
	return piece.PossibleMoves(false)
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() SessionState {
	return SessionState{
		ID:     s.ID,
		Layout: s.Layout,
		Players: Players{
			White: s.players[model.White],
			Black: s.players[model.Black],
		},
		Game: s.game.State(),
	}
}

func (s *Session) IsPlayer(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.colorOf(playerID)
	return ok
}

// Connect registers a connection for the player and sends it the current
// state. Anyone may watch; only seated players may move.
func (s *Session) Connect(playerID string, conn Conn) bool {
	if !s.connections.Register(playerID, conn) {
		return false
	}
	msg, err := ws.NewMessage(ws.MessageTypeGameState, s.State())
	if err != nil {
		log.Errorw("failed to encode message", "game", s.ID, "error", err)
		return true
	}
	s.connections.Send(playerID, msg)
	return true
}

func (s *Session) Disconnect(playerID string, conn Conn) {
	s.connections.Unregister(playerID, conn)
}

func (s *Session) Close() error {
	return s.connections.CloseAll()
}
