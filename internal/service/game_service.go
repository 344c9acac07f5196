package service

import (
	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/benbeisheim/variantchess-backend/internal/storage"
	"github.com/pkg/errors"
)

type GameService struct {
	gameManager *GameManager
	results     ResultStore
}

func NewGameService(gameManager *GameManager, results ResultStore) *GameService {
	return &GameService{
		gameManager: gameManager,
		results:     results,
	}
}

func (gs *GameService) CreateGame(layout string) (string, error) {
	session, err := gs.gameManager.CreateGame(layout)
	if err != nil {
		return "", err
	}
	return session.ID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.NoColor, err
	}
	return session.AddPlayer(playerID)
}

func (gs *GameService) GetGameState(gameID string) (SessionState, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return SessionState{}, err
	}
	return session.State(), nil
}

func (gs *GameService) LegalMoves(gameID string, from model.Spot) ([]model.Spot, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return session.LegalMoves(from), nil
}

func (gs *GameService) HandleMove(gameID string, playerID string, from, to model.Spot) error {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.Move(playerID, from, to)
}

func (gs *GameService) Undo(gameID string, playerID string) error {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.Undo(playerID)
}

func (gs *GameService) Resign(gameID string, playerID string) error {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.Resign(playerID)
}

func (gs *GameService) Restart(gameID string, playerID string) error {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.Restart(playerID)
}

// Stats is empty when no result store is configured.
func (gs *GameService) Stats() (*storage.Stats, error) {
	if gs.results == nil {
		return storage.NewStats(), nil
	}
	stats, err := gs.results.Stats()
	return stats, errors.Wrap(err, "failed to load stats")
}

// RegisterConnection attaches conn to the game and reports whether it was
// accepted; a player already connected keeps the older connection.
func (gs *GameService) RegisterConnection(gameID string, playerID string, conn Conn) (bool, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return false, err
	}
	return session.Connect(playerID, conn), nil
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn Conn) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	session.Disconnect(playerID, conn)
}

func (gs *GameService) Shutdown() error {
	return gs.gameManager.Shutdown()
}
