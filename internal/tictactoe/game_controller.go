package tictactoe

import (
	"strconv"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const (
	statusWinner = "Winner: "
	statusDraw   = "It's a draw"
	statusNext   = "Next player: "

	labelGameStart = "Go to game start"
	labelMove      = "Go to move #"

	sortAscending  = "Ascending"
	sortDescending = "Descending"
)

// ApplyMove plays cell on the board at currentMove. Future positions after
// currentMove are discarded. Moves on a finished board, on an occupied or
// out-of-range cell are no-ops and return the inputs unchanged.
func ApplyMove(history []entity.Board, currentMove, cell int) ([]entity.Board, int) {
	if currentMove < 0 || currentMove >= len(history) || !entity.IsValidCell(cell) {
		return history, currentMove
	}

	board := history[currentMove]
	if _, finished := entity.FindWinner(board); finished || !board.IsEmpty(cell) {
		return history, currentMove
	}

	board[cell] = NextPlayer(currentMove)

	// full slice expression: appending must never overwrite the caller's future states
	newHistory := append(history[:currentMove+1:currentMove+1], board)

	return newHistory, len(newHistory) - 1
}

// JumpTo moves the cursor. The move list only offers existing positions.
func JumpTo(move int) int {
	return move
}

func ToggleSortOrder(ascending bool) bool {
	return !ascending
}

// NextPlayer returns X on even move counts and O on odd ones.
func NextPlayer(currentMove int) entity.Cell {
	if currentMove%2 == 0 {
		return entity.PlayerX
	}
	return entity.PlayerO
}

// Status is recomputed from the board on every call.
func Status(board entity.Board, currentMove int) string {
	if winner, ok := entity.FindWinner(board); ok {
		return statusWinner + string(winner)
	}

	if board.IsFull() {
		return statusDraw
	}

	return statusNext + string(NextPlayer(currentMove))
}

// MoveEntry is one button of the history list.
type MoveEntry struct {
	Label string `json:"label"`
	Move  int    `json:"move"`
}

// MoveList labels every history position. Descending order reverses the
// list but every label keeps its real move number.
func MoveList(historyLen int, ascending bool) []MoveEntry {
	moves := make([]MoveEntry, 0, historyLen)

	for i := 0; i < historyLen; i++ {
		move := i
		if !ascending {
			move = historyLen - 1 - i
		}

		moves = append(moves, MoveEntry{
			Label: moveLabel(move),
			Move:  move,
		})
	}

	return moves
}

func moveLabel(move int) string {
	if move > 0 {
		return labelMove + strconv.Itoa(move)
	}
	return labelGameStart
}

func SortLabel(ascending bool) string {
	if ascending {
		return sortAscending
	}
	return sortDescending
}
