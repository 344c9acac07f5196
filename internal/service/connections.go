package service

import (
	"sync"

	"github.com/benbeisheim/variantchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/hashicorp/go-multierror"
)

// Conn is the part of a websocket connection the service writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Connections tracks one live connection per player of a game.
type Connections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewConnections() *Connections {
	return &Connections{
		connections: make(map[string]Conn),
	}
}

// Register keeps an existing connection for the player and reports false when
// conn was turned away.
func (c *Connections) Register(playerID string, conn Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.connections[playerID]; exists {
		return false
	}
	c.connections[playerID] = conn
	return true
}

// Unregister only removes conn if it is still the player's current connection.
func (c *Connections) Unregister(playerID string, conn Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if current, exists := c.connections[playerID]; exists && current == conn {
		delete(c.connections, playerID)
	}
}

func (c *Connections) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.connections)
}

// Send writes to a single player, if connected.
func (c *Connections) Send(playerID string, msg ws.Message) {
	c.mu.RLock()
	conn, ok := c.connections[playerID]
	c.mu.RUnlock()
	if !ok {
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Warnw("dropping connection after failed write", "player", playerID, "error", err)
		c.Unregister(playerID, conn)
	}
}

// Broadcast writes msg to every connection and drops the ones that fail.
func (c *Connections) Broadcast(msg ws.Message) {
	c.mu.RLock()
	active := make(map[string]Conn, len(c.connections))
	for playerID, conn := range c.connections {
		active[playerID] = conn
	}
	c.mu.RUnlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnw("dropping connection after failed write", "player", playerID, "error", err)
			c.Unregister(playerID, conn)
		}
	}
}

// CloseAll closes and forgets every connection.
func (c *Connections) CloseAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var result *multierror.Error
	for playerID, conn := range c.connections {
		if err := conn.Close(); err != nil {
			result = multierror.Append(result, err)
		}
		delete(c.connections, playerID)
	}
	return result.ErrorOrNil()
}
