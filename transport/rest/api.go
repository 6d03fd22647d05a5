package rest

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-web/transport/session"
)

type apiHandlers struct {
	logger *slog.Logger
	game   gameUseCase
}

func newAPIHandlers(logger *slog.Logger, game gameUseCase) *apiHandlers {
	return &apiHandlers{
		logger: logger.With("handler", "api"),
		game:   game,
	}
}

func (that *apiHandlers) GetView(c *gin.Context) {
	view, err := that.game.GetView(c.Request.Context(), session.ID(c))
	that.respond(c, "GetView", view, err)
}

func (that *apiHandlers) ClickCell(c *gin.Context) {
	var req cellRequest
	if err := c.ShouldBindUri(&req); err != nil {
		that.respond(c, "ClickCell", tictactoe.View{}, fmt.Errorf("%w: %s", apperror.ErrInvalidCell, c.Param("cell")))
		return
	}

	view, err := that.game.ClickCell(c.Request.Context(), session.ID(c), req.Cell)
	that.respond(c, "ClickCell", view, err)
}

func (that *apiHandlers) JumpTo(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindUri(&req); err != nil {
		that.respond(c, "JumpTo", tictactoe.View{}, fmt.Errorf("%w: %s", apperror.ErrInvalidMove, c.Param("move")))
		return
	}

	view, err := that.game.JumpTo(c.Request.Context(), session.ID(c), req.Move)
	that.respond(c, "JumpTo", view, err)
}

func (that *apiHandlers) ToggleSortOrder(c *gin.Context) {
	view, err := that.game.ToggleSortOrder(c.Request.Context(), session.ID(c))
	that.respond(c, "ToggleSortOrder", view, err)
}

func (that *apiHandlers) Reset(c *gin.Context) {
	view, err := that.game.Reset(c.Request.Context(), session.ID(c))
	that.respond(c, "Reset", view, err)
}

func (that *apiHandlers) respond(c *gin.Context, method string, view tictactoe.View, err error) {
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			that.logger.Error("request failed", "method", method, "error", err)
		}

		c.JSON(status, errorResponse{Error: publicMessage(err)})
		return
	}

	c.JSON(http.StatusOK, view)
}
