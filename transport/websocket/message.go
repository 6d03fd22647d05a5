package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

const (
	actionConnect   = "connect"
	actionCellClick = "cell:click"
	actionJump      = "history:jump"
	actionSort      = "sort:toggle"
	actionReset     = "game:reset"
)

// Message is one frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload carries request arguments from the client and the view or error
// back to it.
type Payload struct {
	Cell  *int            `json:"cell,omitempty"`
	Move  *int            `json:"move,omitempty"`
	View  *tictactoe.View `json:"view,omitempty"`
	Error string          `json:"error,omitempty"`
}
