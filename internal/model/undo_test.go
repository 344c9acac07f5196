package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUndoSingleMove(t *testing.T) {
	g, _ := newStartedGame(t)
	start := grid(g)

	play(t, g, 1, 4, 3, 4)
	g.UndoLastMoveBy(White)

	if diff := cmp.Diff(start, grid(g)); diff != "" {
		t.Errorf("board mismatch (-want +got):\n%s", diff)
	}
	if g.TurnColor() != White {
		t.Errorf("TurnColor = %v; want White", g.TurnColor())
	}
	if len(g.History()) != 0 {
		t.Errorf("history has %d entries", len(g.History()))
	}
	if pawn := g.Board().PieceAt(1, 4); pawn.MoveParity() != 0 {
		t.Errorf("parity = %d after undo", pawn.MoveParity())
	}
}

func TestUndoRestoresCapture(t *testing.T) {
	g, _ := newStartedGame(t)
	play(t, g, 1, 4, 3, 4)
	play(t, g, 6, 3, 4, 3)
	beforeCapture := grid(g)
	play(t, g, 3, 4, 4, 3)

	g.UndoLastMoveBy(White)

	if diff := cmp.Diff(beforeCapture, grid(g)); diff != "" {
		t.Errorf("board mismatch (-want +got):\n%s", diff)
	}
	if len(g.Pieces(Black)) != 16 {
		t.Errorf("Black has %d pieces; want 16", len(g.Pieces(Black)))
	}
	if g.TurnColor() != White {
		t.Errorf("TurnColor = %v; want White", g.TurnColor())
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestUndoTakesBackReply(t *testing.T) {
	g, _ := newStartedGame(t)
	play(t, g, 1, 4, 3, 4)
	play(t, g, 6, 4, 4, 4)
	play(t, g, 0, 6, 2, 5)

	// the last move is White's, so only it is taken back
	g.UndoLastMoveBy(White)
	if g.TurnColor() != White || len(g.History()) != 2 {
		t.Fatalf("after first undo: turn %v, %d entries", g.TurnColor(), len(g.History()))
	}

	// now Black moved last, so Black's reply and White's move both go
	g.UndoLastMoveBy(White)
	if g.TurnColor() != White || len(g.History()) != 0 {
		t.Fatalf("after second undo: turn %v, %d entries", g.TurnColor(), len(g.History()))
	}
	start, _ := newStartedGame(t)
	if diff := cmp.Diff(grid(start), grid(g)); diff != "" {
		t.Errorf("board mismatch (-want +got):\n%s", diff)
	}
}

func TestUndoThroughRecapture(t *testing.T) {
	g, _ := newStartedGame(t)
	play(t, g, 0, 1, 2, 2)
	play(t, g, 6, 3, 4, 3)
	afterReply := grid(g)
	play(t, g, 2, 2, 4, 3)
	play(t, g, 7, 3, 4, 3)

	// queen takes the knight that took the pawn
	g.UndoLastMoveBy(White)
	if diff := cmp.Diff(afterReply, grid(g)); diff != "" {
		t.Errorf("board mismatch after first undo (-want +got):\n%s", diff)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	g.UndoLastMoveBy(White)
	start, _ := newStartedGame(t)
	if diff := cmp.Diff(grid(start), grid(g)); diff != "" {
		t.Errorf("board mismatch after second undo (-want +got):\n%s", diff)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if g.TurnColor() != White {
		t.Errorf("TurnColor = %v; want White", g.TurnColor())
	}
}

func TestUndoFlipFlopperParity(t *testing.T) {
	g, _ := startFrom(t, White,
		at(King, White, 0, 4), at(King, Black, 7, 4),
		at(FlipFlopper, White, 0, 2), at(FlipFlopper, Black, 7, 2),
	)
	play(t, g, 0, 2, 1, 3)
	play(t, g, 7, 2, 6, 1)
	play(t, g, 1, 3, 2, 3)
	play(t, g, 6, 1, 5, 1)
	// the white FlipFlopper has an even count again and moves like a queen
	play(t, g, 2, 3, 5, 6)
	// the black FlipFlopper is also back to queen shape and captures it
	play(t, g, 5, 1, 5, 6)

	g.UndoLastMoveBy(Black)
	restored := g.Board().PieceAt(5, 6)
	if restored == nil || restored.Type() != FlipFlopper || restored.Color() != White {
		t.Fatalf("(5, 6) holds %s", restored)
	}
	// a recreated piece starts over
	if restored.MoveParity() != 0 {
		t.Errorf("restored parity = %d; want 0", restored.MoveParity())
	}
	if g.TurnColor() != Black {
		t.Errorf("TurnColor = %v; want Black", g.TurnColor())
	}

	g.UndoLastMoveBy(Black)
	flip := g.Board().PieceAt(2, 3)
	if flip == nil || flip.Type() != FlipFlopper {
		t.Fatalf("(2, 3) holds %s", flip)
	}
	// the recreated piece counted from zero and stepping back is one relocation
	if flip.MoveParity() != 1 {
		t.Errorf("parity = %d after stepping back; want 1", flip.MoveParity())
	}
}

func TestUndoWithoutHistory(t *testing.T) {
	g, _ := newStartedGame(t)
	before := g.State()

	g.UndoLastMoveBy(White)
	g.UndoLastMoveBy(Black)
	if diff := cmp.Diff(before, g.State()); diff != "" {
		t.Errorf("state changed (-before +after):\n%s", diff)
	}

	// one White move and Black asks to undo: nothing of Black's to take back
	play(t, g, 1, 4, 3, 4)
	afterMove := g.State()
	g.UndoLastMoveBy(Black)
	if diff := cmp.Diff(afterMove, g.State()); diff != "" {
		t.Errorf("state changed (-before +after):\n%s", diff)
	}

	NewGame().UndoLastMoveBy(White)
}
