package model

// EventListener receives game lifecycle notifications. Calls are synchronous
// and happen while the game is mid-operation, so implementations must not call
// back into mutating Game methods.
type EventListener interface {
	OnGameStarted()
	// OnMoveTaken receives the captured piece, or nil.
	OnMoveTaken(captured *Piece)
	OnCheck(side Color)
	// OnGameEnded receives NoColor for a draw.
	OnGameEnded(winner Color)
}

type Method string

const (
	MethodCheckmate Method = "checkmate"
	MethodStalemate Method = "stalemate"
	MethodForfeit   Method = "forfeit"
)

// Outcome describes how the last game ended. Winner is NoColor for a draw.
type Outcome struct {
	Winner Color  `json:"winner"`
	Method Method `json:"method"`
	Plies  int    `json:"plies"`
}

func (o Outcome) IsDraw() bool {
	return o.Winner == NoColor
}

func (g *Game) notifyGameStarted() {
	if g.listener != nil {
		g.listener.OnGameStarted()
	}
}

func (g *Game) notifyMoveTaken(captured *Piece) {
	if g.listener != nil {
		g.listener.OnMoveTaken(captured)
	}
}

func (g *Game) notifyCheck(side Color) {
	if g.listener != nil {
		g.listener.OnCheck(side)
	}
}

func (g *Game) notifyGameEnded(winner Color) {
	if g.listener != nil {
		g.listener.OnGameEnded(winner)
	}
}
