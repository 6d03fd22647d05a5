package entity

// Session is the per-browser view model: the move history, the cursor into it
// and the presentation order of the move list.
type Session struct {
	ID          string  `json:"id"`
	History     []Board `json:"history"`
	CurrentMove int     `json:"current_move"`
	Ascending   bool    `json:"ascending"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:          id,
		History:     []Board{{}},
		CurrentMove: 0,
		Ascending:   true,
	}
}

// CurrentBoard returns the board the cursor points at.
func (that *Session) CurrentBoard() Board {
	return that.History[that.CurrentMove]
}

// IsValidMove reports whether move is an existing history position.
func (that *Session) IsValidMove(move int) bool {
	return move >= 0 && move < len(that.History)
}

// Reset starts a new game, keeping the sort preference.
func (that *Session) Reset() {
	that.History = []Board{{}}
	that.CurrentMove = 0
}
