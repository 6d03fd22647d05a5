package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-web/transport/session"
)

type gameUseCase interface {
	GetView(ctx context.Context, sessionID string) (tictactoe.View, error)

	ClickCell(ctx context.Context, sessionID string, cell int) (tictactoe.View, error)
	JumpTo(ctx context.Context, sessionID string, move int) (tictactoe.View, error)
	ToggleSortOrder(ctx context.Context, sessionID string) (tictactoe.View, error)
	Reset(ctx context.Context, sessionID string) (tictactoe.View, error)
}

var errMalformedMessage = errors.New("malformed message")

type handlerFunc func(ctx context.Context, sessionID string, payload *Payload) (tictactoe.View, error)

type Server struct {
	logger   *slog.Logger
	game     gameUseCase
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, game gameUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		game:   game,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionCellClick] = server.handleCellClick
	server.handlers[actionJump] = server.handleJump
	server.handlers[actionSort] = server.handleSort
	server.handlers[actionReset] = server.handleReset

	return server
}

// Handle upgrades the request and serves messages until the client leaves.
// The session id comes from the cookie middleware in front of it.
func (that *Server) Handle(c *gin.Context) {
	log := that.logger.With("method", "Handle")

	sessionID := session.ID(c)

	// the upgrader writes its own response, so the session cookie is passed on
	header := http.Header{"Set-Cookie": c.Writer.Header().Values("Set-Cookie")}

	conn, err := that.upgrader.Upgrade(c.Writer, c.Request, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("WebSocket connection established", "session_id", sessionID)

	if err = that.handleMessages(c.Request.Context(), conn, sessionID); err != nil {
		log.Error("error handling messages", "session_id", sessionID, "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, sessionID string) error {
	log := that.logger.With("method", "handleMessages", "session_id", sessionID)

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("client disconnected")
				return nil
			}

			if isDecodeError(err) {
				log.Warn("failed to unmarshal message", "error", err)
				if err = that.sendError(conn, "", fmt.Errorf("%w: %w", errMalformedMessage, err)); err != nil {
					return err
				}
				continue
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		view, err := that.process(ctx, sessionID, &message)
		if err != nil {
			log.Warn("error processing message", "action", message.Action, "error", err)
			if err = that.sendError(conn, message.Action, err); err != nil {
				return err
			}
			continue
		}

		if err = that.sendMessage(conn, message.Action, Payload{View: &view}); err != nil {
			return err
		}
	}
}

func (that *Server) process(ctx context.Context, sessionID string, message *Message) (tictactoe.View, error) {
	handler, ok := that.handlers[message.Action]
	if !ok {
		return tictactoe.View{}, fmt.Errorf("%w: %q", apperror.ErrUnknownAction, message.Action)
	}

	var payload Payload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return tictactoe.View{}, fmt.Errorf("%w: %w", errMalformedMessage, err)
		}
	}

	return handler(ctx, sessionID, &payload)
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload Payload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// sendError answers with a client facing error text.
func (that *Server) sendError(conn *websocket.Conn, action string, err error) error {
	text := http.StatusText(http.StatusInternalServerError)

	switch {
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, apperror.ErrUnknownAction):
		text = err.Error()
	case errors.Is(err, errMalformedMessage):
		text = errMalformedMessage.Error()
	}

	return that.sendMessage(conn, action, Payload{Error: text})
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
