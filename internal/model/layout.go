package model

import "fmt"

// RowConfiguration is the starting content of one full row.
type RowConfiguration struct {
	Color  Color
	Row    int
	Pieces [NumCols]PieceType
}

type Layout []RowConfiguration

// Placement puts a single piece on a spot.
type Placement struct {
	Type  PieceType
	Color Color
	Spot  Spot
}

var (
	backRow  = [NumCols]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	frontRow = [NumCols]PieceType{Pawn, Pawn, Pawn, Pawn, Pawn, Pawn, Pawn, Pawn}
	megaRow  = [NumCols]PieceType{MegaRook, Knight, FlipFlopper, Queen, King, FlipFlopper, Knight, MegaRook}
)

// StandardLayout mirrors the two back rows and two pawn rows for each side.
var StandardLayout = Layout{
	{Color: Black, Row: 7, Pieces: backRow},
	{Color: Black, Row: 6, Pieces: frontRow},
	{Color: White, Row: 1, Pieces: frontRow},
	{Color: White, Row: 0, Pieces: backRow},
}

// MegaLayout swaps rooks for MegaRooks and bishops for FlipFloppers.
var MegaLayout = Layout{
	{Color: Black, Row: 7, Pieces: megaRow},
	{Color: Black, Row: 6, Pieces: frontRow},
	{Color: White, Row: 1, Pieces: frontRow},
	{Color: White, Row: 0, Pieces: megaRow},
}

func LayoutByName(name string) (Layout, error) {
	switch name {
	case "", "standard":
		return StandardLayout, nil
	case "mega":
		return MegaLayout, nil
	}
	return nil, fmt.Errorf("unknown layout %q", name)
}

func (l Layout) Placements() []Placement {
	placements := make([]Placement, 0, len(l)*NumCols)
	for _, rowConfiguration := range l {
		for col, typ := range rowConfiguration.Pieces {
			if typ == "" {
				continue
			}
			placements = append(placements, Placement{
				Type:  typ,
				Color: rowConfiguration.Color,
				Spot:  NewSpot(rowConfiguration.Row, col),
			})
		}
	}
	return placements
}
