package model

import (
	"fmt"
	"strings"
)

const (
	NumRows = 8
	NumCols = 8
)

// Spot addresses one cell of the board. Row 0 is White's home row and (0, 0)
// is a dark square. Off-board coordinates are valid Spot values so that offset
// arithmetic never needs a guard, but they are never stored on a Piece.
type Spot struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewSpot(row, col int) Spot {
	return Spot{Row: row, Col: col}
}

func (s Spot) IsValid() bool {
	return 0 <= s.Row && s.Row < NumRows && 0 <= s.Col && s.Col < NumCols
}

// Color is a function of position only.
func (s Spot) Color() Color {
	if (s.Row+s.Col)%2 == 0 {
		return Black
	}
	return White
}

func (s Spot) Offset(rowOffset, colOffset int) Spot {
	return Spot{Row: s.Row + rowOffset, Col: s.Col + colOffset}
}

func (s Spot) String() string {
	return fmt.Sprintf("(%d, %d)", s.Row, s.Col)
}

// Board is the 8x8 grid. It only stores occupancy; pieces and the game drive
// every mutation.
type Board struct {
	cells [NumRows][NumCols]*Piece
}

func NewBoard() *Board {
	return &Board{}
}

func (b *Board) IsValidSpot(row, col int) bool {
	return NewSpot(row, col).IsValid()
}

// Spot returns the spot at the given coordinates and whether it lies on the
// board.
func (b *Board) Spot(row, col int) (Spot, bool) {
	s := NewSpot(row, col)
	return s, s.IsValid()
}

// PieceAt returns nil for empty or off-board coordinates.
func (b *Board) PieceAt(row, col int) *Piece {
	if !b.IsValidSpot(row, col) {
		return nil
	}
	return b.cells[row][col]
}

func (b *Board) IsOccupied(row, col int) bool {
	return b.PieceAt(row, col) != nil
}

func (b *Board) Occupant(s Spot) *Piece {
	return b.PieceAt(s.Row, s.Col)
}

func (b *Board) setOccupant(s Spot, p *Piece) {
	if !s.IsValid() {
		return
	}
	b.cells[s.Row][s.Col] = p
}

func (b *Board) clear() {
	b.cells = [NumRows][NumCols]*Piece{}
}

const (
	ansiDark  = "\u001B[40m\u001B[37m"
	ansiLight = "\u001B[47m\u001B[30m"
	ansiReset = "\u001B[0m"

	cellWidth = 14
)

func pad(s string) string {
	if len(s) >= cellWidth {
		return s
	}
	return s + strings.Repeat(" ", cellWidth-len(s))
}

// String renders the board top row first with ANSI shaded cells.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := NumRows - 1; row >= 0; row-- {
		fmt.Fprintf(&sb, "%d ", row)
		for col := 0; col < NumCols; col++ {
			shade := ansiLight
			if NewSpot(row, col).Color() == Black {
				shade = ansiDark
			}
			label := ""
			if p := b.cells[row][col]; p != nil {
				label = p.String()
			}
			sb.WriteString(shade + pad(label) + ansiReset)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  ")
	for col := 0; col < NumCols; col++ {
		sb.WriteString(pad(fmt.Sprint(col)))
	}
	sb.WriteString("\n\n")
	return sb.String()
}
