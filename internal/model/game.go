package model

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"
)

// Game owns the board, the in-play pieces of both sides and the move history,
// and sequences turns. It is not safe for concurrent use: legality checks
// temporarily rearrange the board.
//
// A game is driven by calling StartGame, then MovePieceTo followed by
// StartNewTurn for every move (or UndoLastMoveBy). The listener learns when the
// game is over.
type Game struct {
	board    *Board
	pieces   map[Color][]*Piece
	turn     Color
	inPlay   bool
	history  moveHistory
	listener EventListener

	// start is what RestartGame replays
	start   []Placement
	first   Color
	outcome *Outcome
	nextID  int
}

func NewGame() *Game {
	return &Game{
		board: NewBoard(),
		pieces: map[Color][]*Piece{
			White: {},
			Black: {},
		},
		start: StandardLayout.Placements(),
		first: White,
	}
}

func (g *Game) SetEventListener(listener EventListener) {
	g.listener = listener
}

func (g *Game) Board() *Board {
	return g.board
}

// Pieces returns a copy of the in-play pieces of the given color.
func (g *Game) Pieces(c Color) []*Piece {
	out := make([]*Piece, len(g.pieces[c]))
	copy(out, g.pieces[c])
	return out
}

// TurnColor is NoColor while no game is in play.
func (g *Game) TurnColor() Color {
	return g.turn
}

func (g *Game) IsInPlay() bool {
	return g.inPlay
}

func (g *Game) History() []HistoryEntry {
	return g.history.snapshot()
}

// LastOutcome reports how the most recent game ended.
func (g *Game) LastOutcome() (Outcome, bool) {
	if g.outcome == nil {
		return Outcome{}, false
	}
	return *g.outcome, true
}

func (g *Game) StartGame() error {
	return g.StartGameWithLayout(StandardLayout)
}

func (g *Game) StartGameWithLayout(layout Layout) error {
	return g.StartGameFromPlacements(layout.Placements(), White)
}

// StartGameFromPlacements sets up an arbitrary position with first to move.
// A position that is already decided ends the game straight away and only
// OnGameEnded is reported.
func (g *Game) StartGameFromPlacements(placements []Placement, first Color) error {
	if g.inPlay {
		return ErrGameInProgress
	}
	if !first.IsValid() {
		return fmt.Errorf("first to move: %w", ErrInvalidColor)
	}

	g.ClearGame()
	for _, placement := range placements {
		if _, err := g.AddPiece(placement.Type, placement.Color, placement.Spot); err != nil {
			g.ClearGame()
			return fmt.Errorf("place %s %s at %s: %w", placement.Color, placement.Type, placement.Spot, err)
		}
	}

	g.start = append([]Placement(nil), placements...)
	g.first = first
	g.outcome = nil
	g.inPlay = true
	g.turn = first
	log.Infow("game started", "pieces", len(placements), "first", first)

	g.notifyGameStarted()
	g.evaluateTurn()
	return nil
}

// RestartGame clears whatever is on the board and replays the last start.
func (g *Game) RestartGame() error {
	g.ClearGame()
	return g.StartGameFromPlacements(g.start, g.first)
}

// ClearGame returns the game to its unstarted shape. The last outcome is kept.
func (g *Game) ClearGame() {
	for _, c := range Colors {
		for _, piece := range g.pieces[c] {
			piece.removeFromPlay()
		}
		g.pieces[c] = []*Piece{}
	}
	g.board.clear()
	g.history.reset()
	g.turn = NoColor
	g.inPlay = false
}

// StartNewTurn hands the move to the other side and checks whether that side
// is mated, in check or stalemated.
func (g *Game) StartNewTurn() {
	if !g.inPlay {
		return
	}
	if g.turn == NoColor {
		g.turn = g.first
	} else {
		g.turn = g.turn.Opponent()
	}
	g.evaluateTurn()
}

func (g *Game) evaluateTurn() {
	side := g.turn
	switch {
	case g.IsInCheckmate(side):
		g.endGame(side.Opponent(), MethodCheckmate)
	case g.IsInCheck(side):
		log.Debugw("check", "side", side)
		g.notifyCheck(side)
	case g.IsInStalemate(side):
		g.endGame(NoColor, MethodStalemate)
	}
}

// EndGame ends the game with the given winner, NoColor meaning a draw.
func (g *Game) EndGame(winner Color) {
	g.endGame(winner, MethodForfeit)
}

func (g *Game) endGame(winner Color, method Method) {
	g.outcome = &Outcome{Winner: winner, Method: method, Plies: g.history.len()}
	log.Infow("game ended", "winner", winner, "method", method, "plies", g.history.len())
	g.ClearGame()
	g.notifyGameEnded(winner)
}

// MovePieceTo relocates piece to spot, capturing whatever occupies it, and
// returns the captured piece. It only enforces turn order, board bounds and
// that the piece is in play; callers pick destinations from PossibleMoves.
// A piece from another game, a move onto the piece's own spot and a move onto
// a piece of the same side are also rejected with an IllegalMoveError.
func (g *Game) MovePieceTo(piece *Piece, spot Spot) (*Piece, error) {
	if reason := g.illegalMoveReason(piece, spot); reason != "" {
		return nil, &IllegalMoveError{Piece: piece, Spot: spot, Reason: reason}
	}

	from := piece.spot
	captured := g.board.Occupant(spot)
	if captured != nil {
		g.RemovePieceFromPlay(captured)
	}
	piece.moveTo(spot)

	g.history.push(HistoryEntry{
		Side:     piece.color,
		From:     from,
		To:       spot,
		Piece:    piece,
		Captured: captured,
	})
	log.Debugw("move taken", "piece", piece, "from", from, "to", spot, "captured", captured)

	g.notifyMoveTaken(captured)
	return captured, nil
}

func (g *Game) illegalMoveReason(piece *Piece, spot Spot) string {
	switch {
	case piece == nil || piece.game != g:
		return "piece does not belong to this game"
	case !piece.inPlay:
		return "piece is not in play"
	case !g.board.IsValidSpot(spot.Row, spot.Col):
		return "destination is off the board"
	case piece.color != g.turn:
		return fmt.Sprintf("it is not %s's turn", piece.color)
	case spot == piece.spot:
		return "destination is the piece's own spot"
	}
	if occupant := g.board.Occupant(spot); occupant != nil && occupant.color == piece.color {
		return "destination holds a piece of the same side"
	}
	return ""
}

// UndoLastMoveBy takes back the most recent move made by side. If the
// opponent has replied since, the reply is taken back as well. Either way it
// is side's turn afterwards.
func (g *Game) UndoLastMoveBy(side Color) {
	last, ok := g.history.peek()
	if !ok {
		return
	}
	if last.Side == side {
		g.undoLast()
		return
	}
	if g.history.len() < 2 {
		return
	}
	g.undoLast()
	g.undoLast()
}

func (g *Game) undoLast() {
	entry, ok := g.history.pop()
	if !ok {
		return
	}
	entry.Piece.moveTo(entry.From)
	if entry.Captured != nil {
		restored, err := g.AddPiece(entry.Captured.typ, entry.Captured.color, entry.To)
		if err != nil {
			log.Errorw("could not restore captured piece", "piece", entry.Captured, "spot", entry.To, "error", err)
		} else {
			g.history.repoint(entry.Captured, restored)
		}
	}
	g.turn = entry.Side
	log.Debugw("move undone", "piece", entry.Piece, "from", entry.To, "to", entry.From)
}

// AddPiece creates a piece on an empty on-board spot.
func (g *Game) AddPiece(typ PieceType, c Color, spot Spot) (*Piece, error) {
	switch {
	case !typ.IsValid():
		return nil, fmt.Errorf("%w: %q", ErrUnknownPiece, typ)
	case !c.IsValid():
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, c)
	case !spot.IsValid():
		return nil, fmt.Errorf("%w: %s", ErrInvalidSpot, spot)
	case g.board.Occupant(spot) != nil:
		return nil, fmt.Errorf("%w: %s", ErrSpotOccupied, spot)
	case typ == King && g.King(c) != nil:
		return nil, fmt.Errorf("%w: %s", ErrDuplicateKing, c)
	}

	g.nextID++
	piece := &Piece{
		id:     g.nextID,
		typ:    typ,
		color:  c,
		game:   g,
		spot:   spot,
		inPlay: true,
	}
	g.board.setOccupant(spot, piece)
	g.pieces[c] = append(g.pieces[c], piece)
	return piece, nil
}

func (g *Game) RemovePieceFromPlay(piece *Piece) {
	piece.removeFromPlay()
	g.detach(piece)
}

// detach drops piece from its side's collection and returns the index it held,
// or -1.
func (g *Game) detach(piece *Piece) int {
	side := g.pieces[piece.color]
	for i, candidate := range side {
		if candidate == piece {
			g.pieces[piece.color] = append(side[:i:i], side[i+1:]...)
			return i
		}
	}
	return -1
}

func (g *Game) reattach(piece *Piece, index int) {
	side := g.pieces[piece.color]
	if index < 0 || index > len(side) {
		index = len(side)
	}
	restored := make([]*Piece, 0, len(side)+1)
	restored = append(restored, side[:index]...)
	restored = append(restored, piece)
	restored = append(restored, side[index:]...)
	g.pieces[piece.color] = restored
}

// King returns the in-play king of the given color, or nil.
func (g *Game) King(c Color) *Piece {
	for _, piece := range g.pieces[c] {
		if piece.typ == King {
			return piece
		}
	}
	return nil
}

// IsAvailableSpotForPiece reports whether the coordinates are on the board, not
// held by a piece of the same side and, unless regardlessOfKing, whether
// moving there keeps the mover's king out of check.
func (g *Game) IsAvailableSpotForPiece(piece *Piece, row, col int, regardlessOfKing bool) bool {
	if !g.board.IsValidSpot(row, col) {
		return false
	}
	if occupant := g.board.PieceAt(row, col); occupant != nil && occupant.color == piece.color {
		return false
	}
	if !regardlessOfKing && g.MoveWouldPutKingInCheck(piece, NewSpot(row, col)) {
		return false
	}
	return true
}

// PiecesThreatening returns the opposing pieces that could move onto piece's
// spot.
func (g *Game) PiecesThreatening(piece *Piece, regardlessOfKing bool) []*Piece {
	threatening := []*Piece{}
	if !piece.inPlay {
		return threatening
	}
	for _, opponent := range g.Pieces(piece.color.Opponent()) {
		for _, s := range opponent.PossibleMoves(regardlessOfKing) {
			if s == piece.spot {
				threatening = append(threatening, opponent)
				break
			}
		}
	}
	return threatening
}

// IsInCheck uses unfiltered move sets so it never depends on check status
// itself.
func (g *Game) IsInCheck(side Color) bool {
	king := g.King(side)
	if king == nil {
		return false
	}
	for _, opponent := range g.pieces[side.Opponent()] {
		for _, s := range opponent.PossibleMoves(true) {
			if s == king.spot {
				return true
			}
		}
	}
	return false
}

func (g *Game) IsInCheckmate(side Color) bool {
	return g.IsInCheck(side) && !g.hasAnyMove(side)
}

// IsInStalemate also treats two bare kings as a stalemate.
func (g *Game) IsInStalemate(side Color) bool {
	if g.IsInCheck(side) {
		return false
	}
	if g.onlyKingsLeft() {
		return true
	}
	return !g.hasAnyMove(side)
}

func (g *Game) onlyKingsLeft() bool {
	for _, c := range Colors {
		side := g.pieces[c]
		if len(side) != 1 || side[0].typ != King {
			return false
		}
	}
	return true
}

func (g *Game) hasAnyMove(side Color) bool {
	for _, piece := range g.Pieces(side) {
		if len(piece.PossibleMoves(false)) > 0 {
			return true
		}
	}
	return false
}

// MoveWouldPutKingInCheck reports whether moving piece to spot would leave its
// own king in check. The board and both collections are left exactly as they
// were found.
func (g *Game) MoveWouldPutKingInCheck(piece *Piece, spot Spot) bool {
	return g.resultIfPieceMovedTo(piece, spot, func() bool {
		return g.IsInCheck(piece.color)
	})
}

func (g *Game) resultIfPieceMovedTo(piece *Piece, spot Spot, condition func() bool) bool {
	if !piece.inPlay || !spot.IsValid() {
		return false
	}
	if spot == piece.spot {
		return g.evaluate(condition)
	}

	displaced := g.board.Occupant(spot)
	origin := piece.spot
	index := -1
	if displaced != nil {
		index = g.detach(displaced)
	}
	piece.moveTo(spot)

	result := g.evaluate(condition)

	piece.moveTo(origin)
	if displaced != nil {
		if index >= 0 {
			g.reattach(displaced, index)
		}
		g.board.setOccupant(spot, displaced)
	}
	return result
}

// evaluate runs a speculative predicate. A panic counts as false so the
// caller can always restore the board.
func (g *Game) evaluate(condition func() bool) (result bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("speculative condition failed", "error", ErrSimulationFailure, "cause", r)
			result = false
		}
	}()
	return condition()
}
