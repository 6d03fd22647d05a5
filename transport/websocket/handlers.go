package websocket

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

func (that *Server) handleConnect(ctx context.Context, sessionID string, _ *Payload) (tictactoe.View, error) {
	return that.game.GetView(ctx, sessionID)
}

func (that *Server) handleCellClick(ctx context.Context, sessionID string, payload *Payload) (tictactoe.View, error) {
	if payload.Cell == nil {
		return tictactoe.View{}, fmt.Errorf("%w: cell is required", apperror.ErrInvalidCell)
	}

	return that.game.ClickCell(ctx, sessionID, *payload.Cell)
}

func (that *Server) handleJump(ctx context.Context, sessionID string, payload *Payload) (tictactoe.View, error) {
	if payload.Move == nil {
		return tictactoe.View{}, fmt.Errorf("%w: move is required", apperror.ErrInvalidMove)
	}

	return that.game.JumpTo(ctx, sessionID, *payload.Move)
}

func (that *Server) handleSort(ctx context.Context, sessionID string, _ *Payload) (tictactoe.View, error) {
	return that.game.ToggleSortOrder(ctx, sessionID)
}

func (that *Server) handleReset(ctx context.Context, sessionID string, _ *Payload) (tictactoe.View, error) {
	return that.game.Reset(ctx, sessionID)
}
