package model

// HistoryEntry records one executed move so it can be reversed.
type HistoryEntry struct {
	Side     Color
	From     Spot
	To       Spot
	Piece    *Piece
	Captured *Piece
}

// moveHistory is a stack; it grows with every executed move and shrinks only
// through undo.
type moveHistory struct {
	entries []HistoryEntry
}

func (h *moveHistory) push(e HistoryEntry) {
	h.entries = append(h.entries, e)
}

func (h *moveHistory) pop() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

func (h *moveHistory) peek() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

func (h *moveHistory) len() int {
	return len(h.entries)
}

func (h *moveHistory) reset() {
	h.entries = nil
}

// repoint swaps every reference to old for replacement. Undo recreates captured
// pieces as new values, and older entries may still name the captured one.
func (h *moveHistory) repoint(old, replacement *Piece) {
	for i := range h.entries {
		if h.entries[i].Piece == old {
			h.entries[i].Piece = replacement
		}
		if h.entries[i].Captured == old {
			h.entries[i].Captured = replacement
		}
	}
}

func (h *moveHistory) snapshot() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Ply is the serializable form of a HistoryEntry.
type Ply struct {
	Side     Color      `json:"side"`
	Piece    PieceType  `json:"piece"`
	From     Spot       `json:"from"`
	To       Spot       `json:"to"`
	Captured *PieceType `json:"captured"`
}

func (e HistoryEntry) Ply() Ply {
	ply := Ply{Side: e.Side, From: e.From, To: e.To}
	if e.Piece != nil {
		ply.Piece = e.Piece.typ
	}
	if e.Captured != nil {
		captured := e.Captured.typ
		ply.Captured = &captured
	}
	return ply
}
