package model

type PieceState struct {
	ID         int       `json:"id"`
	Type       PieceType `json:"type"`
	Color      Color     `json:"color"`
	Spot       Spot      `json:"spot"`
	MoveParity int       `json:"moveParity"`
}

// GameState is a JSON friendly snapshot of a game.
type GameState struct {
	InPlay      bool                          `json:"inPlay"`
	ToMove      Color                         `json:"toMove"`
	Board       [NumRows][NumCols]*PieceState `json:"board"`
	MoveHistory []Ply                         `json:"moveHistory"`
	IsCheck     bool                          `json:"isCheck"`
	Outcome     *Outcome                      `json:"outcome"`
}

func (p *Piece) State() *PieceState {
	return &PieceState{
		ID:         p.id,
		Type:       p.typ,
		Color:      p.color,
		Spot:       p.spot,
		MoveParity: p.parity,
	}
}

func (g *Game) State() GameState {
	state := GameState{
		InPlay:      g.inPlay,
		ToMove:      g.turn,
		MoveHistory: make([]Ply, 0, g.history.len()),
	}
	for row := 0; row < NumRows; row++ {
		for col := 0; col < NumCols; col++ {
			if piece := g.board.cells[row][col]; piece != nil {
				state.Board[row][col] = piece.State()
			}
		}
	}
	for _, entry := range g.history.entries {
		state.MoveHistory = append(state.MoveHistory, entry.Ply())
	}
	if g.inPlay {
		state.IsCheck = g.IsInCheck(g.turn)
	}
	if outcome, ok := g.LastOutcome(); ok {
		state.Outcome = &outcome
	}
	return state
}
