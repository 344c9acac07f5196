package service

import (
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type GameManager struct {
	sessions      map[string]*Session
	results       ResultStore
	defaultLayout string
	mu            sync.RWMutex
}

func NewGameManager(results ResultStore, defaultLayout string) *GameManager {
	return &GameManager{
		sessions:      make(map[string]*Session),
		results:       results,
		defaultLayout: defaultLayout,
	}
}

// CreateGame hosts a new game with the given layout, or the default layout
// when it is empty.
func (gm *GameManager) CreateGame(layout string) (*Session, error) {
	if layout == "" {
		layout = gm.defaultLayout
	}
	session, err := NewSession(uuid.New().String(), layout, gm.results)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create game")
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.sessions[session.ID] = session
	log.Infow("game created", "game", session.ID, "layout", layout)
	return session, nil
}

func (gm *GameManager) GetGame(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.sessions[gameID]
	if !exists {
		return nil, errors.Wrapf(ErrGameNotFound, "game %s", gameID)
	}
	return session, nil
}

func (gm *GameManager) RemoveGame(gameID string) error {
	gm.mu.Lock()
	session, exists := gm.sessions[gameID]
	delete(gm.sessions, gameID)
	gm.mu.Unlock()

	if !exists {
		return errors.Wrapf(ErrGameNotFound, "game %s", gameID)
	}
	return session.Close()
}

func (gm *GameManager) Len() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.sessions)
}

// Shutdown closes every connection of every game.
func (gm *GameManager) Shutdown() error {
	gm.mu.RLock()
	sessions := make([]*Session, 0, len(gm.sessions))
	for _, session := range gm.sessions {
		sessions = append(sessions, session)
	}
	gm.mu.RUnlock()

	var result *multierror.Error
	for _, session := range sessions {
		if err := session.Close(); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "close game %s", session.ID))
		}
	}
	return result.ErrorOrNil()
}
