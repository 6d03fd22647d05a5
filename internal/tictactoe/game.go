package tictactoe

import "github.com/rocketscienceinc/tictactoe-web/internal/entity"

// Game applies user events to a session.
type Game struct {
	session *entity.Session
}

func NewGame(session *entity.Session) *Game {
	return &Game{session: session}
}

func (that *Game) Session() *entity.Session {
	return that.session
}

// Play reports whether the move changed the session.
func (that *Game) Play(cell int) bool {
	before := len(that.session.History)
	beforeMove := that.session.CurrentMove

	that.session.History, that.session.CurrentMove = ApplyMove(that.session.History, that.session.CurrentMove, cell)

	return len(that.session.History) != before || that.session.CurrentMove != beforeMove
}

func (that *Game) JumpTo(move int) {
	that.session.CurrentMove = JumpTo(move)
}

func (that *Game) ToggleSortOrder() {
	that.session.Ascending = ToggleSortOrder(that.session.Ascending)
}

// SquareView is one rendered square.
type SquareView struct {
	Index   int         `json:"index"`
	Value   entity.Cell `json:"value"`
	Winning bool        `json:"winning"`
}

// View is everything a renderer needs after a state change.
type View struct {
	Board       entity.Board `json:"board"`
	Squares     []SquareView `json:"squares"`
	Status      string       `json:"status"`
	WinningLine []int        `json:"winning_line"`
	Moves       []MoveEntry  `json:"moves"`
	CurrentMove int          `json:"current_move"`
	Ascending   bool         `json:"ascending"`
	SortLabel   string       `json:"sort_label"`
}

// View projects the session. Nothing derived here is stored.
func (that *Game) View() View {
	board := that.session.CurrentBoard()

	var winning [entity.BoardCells]bool
	var winningLine []int
	if line, ok := entity.FindWinningLine(board); ok {
		winningLine = line[:]
		for _, idx := range line {
			winning[idx] = true
		}
	}

	squares := make([]SquareView, entity.BoardCells)
	for i, cell := range board {
		squares[i] = SquareView{Index: i, Value: cell, Winning: winning[i]}
	}

	return View{
		Board:       board,
		Squares:     squares,
		Status:      Status(board, that.session.CurrentMove),
		WinningLine: winningLine,
		Moves:       MoveList(len(that.session.History), that.session.Ascending),
		CurrentMove: that.session.CurrentMove,
		Ascending:   that.session.Ascending,
		SortLabel:   SortLabel(that.session.Ascending),
	}
}
