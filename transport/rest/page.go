package rest

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-web/transport/session"
)

const gamePath = "/game/tictactoe"

//go:embed templates/*.html
var templatesFS embed.FS

func mustParseTemplates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"rows":     boardRows,
		"gamePath": func() string { return gamePath },
	}).ParseFS(templatesFS, "templates/*.html"))
}

// boardRows splits the squares into rows of the board side.
func boardRows(squares []tictactoe.SquareView) [][]tictactoe.SquareView {
	rows := make([][]tictactoe.SquareView, 0, entity.BoardSide)
	for i := 0; i+entity.BoardSide <= len(squares); i += entity.BoardSide {
		rows = append(rows, squares[i:i+entity.BoardSide])
	}

	return rows
}

type pageHandlers struct {
	logger *slog.Logger
	game   gameUseCase
}

func newPageHandlers(logger *slog.Logger, game gameUseCase) *pageHandlers {
	return &pageHandlers{
		logger: logger.With("handler", "page"),
		game:   game,
	}
}

func (that *pageHandlers) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", nil)
}

func (that *pageHandlers) Game(c *gin.Context) {
	view, err := that.game.GetView(c.Request.Context(), session.ID(c))
	if err != nil {
		that.fail(c, "Game", err)
		return
	}

	c.HTML(http.StatusOK, "game.html", view)
}

func (that *pageHandlers) ClickCell(c *gin.Context) {
	var req cellRequest
	if err := c.ShouldBindUri(&req); err != nil {
		that.fail(c, "ClickCell", fmt.Errorf("%w: %s", apperror.ErrInvalidCell, c.Param("cell")))
		return
	}

	_, err := that.game.ClickCell(c.Request.Context(), session.ID(c), req.Cell)
	that.redirect(c, "ClickCell", err)
}

func (that *pageHandlers) JumpTo(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindUri(&req); err != nil {
		that.fail(c, "JumpTo", fmt.Errorf("%w: %s", apperror.ErrInvalidMove, c.Param("move")))
		return
	}

	_, err := that.game.JumpTo(c.Request.Context(), session.ID(c), req.Move)
	that.redirect(c, "JumpTo", err)
}

func (that *pageHandlers) ToggleSortOrder(c *gin.Context) {
	_, err := that.game.ToggleSortOrder(c.Request.Context(), session.ID(c))
	that.redirect(c, "ToggleSortOrder", err)
}

func (that *pageHandlers) Reset(c *gin.Context) {
	_, err := that.game.Reset(c.Request.Context(), session.ID(c))
	that.redirect(c, "Reset", err)
}

// redirect follows the post/redirect/get pattern back to the game page.
func (that *pageHandlers) redirect(c *gin.Context, method string, err error) {
	if err != nil {
		that.fail(c, method, err)
		return
	}

	c.Redirect(http.StatusSeeOther, gamePath)
}

func (that *pageHandlers) fail(c *gin.Context, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
	}

	c.String(status, publicMessage(err))
}
