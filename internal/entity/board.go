package entity

import "strings"

// Cell is the content of one square of the board.
type Cell string

const (
	EmptyCell Cell = ""
	PlayerX   Cell = "X"
	PlayerO   Cell = "O"
)

const (
	BoardSide  = 3
	BoardCells = BoardSide * BoardSide
)

// WinCombos lists every winning triple in search order: rows top to bottom,
// columns left to right, then the two diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a row-major snapshot of the grid, index = row*3 + col.
type Board [BoardCells]Cell

// IsValidCell reports whether cell addresses a square of the board.
func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardCells
}

// FindWinner returns the symbol of the first complete triple.
func FindWinner(board Board) (Cell, bool) {
	combo, ok := findCompleteCombo(board)
	if !ok {
		return EmptyCell, false
	}

	return board[combo[0]], true
}

// FindWinningLine returns the indices of the same triple FindWinner reports.
func FindWinningLine(board Board) ([3]int, bool) {
	return findCompleteCombo(board)
}

func findCompleteCombo(board Board) ([3]int, bool) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return combo, true
		}
	}

	return [3]int{}, false
}

// IsDraw reports a full board without a winner.
func IsDraw(board Board) bool {
	if _, ok := FindWinner(board); ok {
		return false
	}

	return board.IsFull()
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that Board) IsEmpty(cell int) bool {
	return that[cell] == EmptyCell
}

// Count returns how many squares hold the given cell value.
func (that Board) Count(value Cell) int {
	n := 0
	for _, cell := range that {
		if cell == value {
			n++
		}
	}

	return n
}

// String renders the board as nine characters, '.' for empty squares.
func (that Board) String() string {
	var sb strings.Builder
	sb.Grow(BoardCells)

	for _, cell := range that {
		if cell == EmptyCell {
			sb.WriteByte('.')
			continue
		}
		sb.WriteString(string(cell))
	}

	return sb.String()
}

// ParseBoard is the inverse of Board.String. Unknown characters read as empty.
func ParseBoard(s string) Board {
	var board Board
	for i := 0; i < len(s) && i < BoardCells; i++ {
		switch s[i] {
		case 'X':
			board[i] = PlayerX
		case 'O':
			board[i] = PlayerO
		}
	}

	return board
}
