package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-web/transport/session"
)

const testCookie = "ttt_session"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	game := usecase.NewGameUseCase(logger, repository.NewMemorySessionRepository(time.Hour))

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/ws", session.Middleware(testCookie, time.Hour), New(logger, game).Handle)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	return srv
}

func dial(t *testing.T, srv *httptest.Server, header http.Header) (*websocket.Conn, *http.Response) {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn, resp
}

func send(t *testing.T, conn *websocket.Conn, action string, payload any) Payload {
	t.Helper()

	msg := Message{Action: action}
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		msg.Payload = raw
	}
	require.NoError(t, conn.WriteJSON(msg))

	return receive(t, conn, action)
}

func receive(t *testing.T, conn *websocket.Conn, action string) Payload {
	t.Helper()

	var reply Message
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, action, reply.Action)

	var payload Payload
	require.NoError(t, json.Unmarshal(reply.Payload, &payload))

	return payload
}

func TestServer_Game(t *testing.T) {
	t.Run("Connect returns the current view", func(t *testing.T) {
		conn, resp := dial(t, newTestServer(t), nil)

		// Then: the upgrade response carries a session cookie
		require.NotEmpty(t, resp.Cookies())
		assert.Equal(t, testCookie, resp.Cookies()[0].Name)

		// When: connecting
		reply := send(t, conn, "connect", nil)

		// Then: an empty game is returned
		require.NotNil(t, reply.View)
		assert.Empty(t, reply.Error)
		assert.Equal(t, "Next player: X", reply.View.Status)
	})

	t.Run("Win, jump and sort", func(t *testing.T) {
		conn, _ := dial(t, newTestServer(t), nil)

		// When: X 0, O 3, X 1, O 4, X 2
		var reply Payload
		for _, cell := range []int{0, 3, 1, 4, 2} {
			reply = send(t, conn, "cell:click", map[string]int{"cell": cell})
		}

		// Then: X wins on the top row
		require.NotNil(t, reply.View)
		assert.Equal(t, "Winner: X", reply.View.Status)
		assert.Equal(t, []int{0, 1, 2}, reply.View.WinningLine)

		// When: jumping back to move 4
		reply = send(t, conn, "history:jump", map[string]int{"move": 4})

		// Then: the game is open again
		require.NotNil(t, reply.View)
		assert.Equal(t, "Next player: X", reply.View.Status)

		// When: toggling the sort order
		reply = send(t, conn, "sort:toggle", nil)

		// Then: the list starts with the last move
		require.NotNil(t, reply.View)
		assert.Equal(t, 5, reply.View.Moves[0].Move)

		// When: resetting
		reply = send(t, conn, "game:reset", nil)

		// Then: only the start remains
		require.NotNil(t, reply.View)
		assert.Len(t, reply.View.Moves, 1)
	})

	t.Run("Session survives reconnects", func(t *testing.T) {
		srv := newTestServer(t)
		first, resp := dial(t, srv, nil)
		send(t, first, "cell:click", map[string]int{"cell": 4})

		// When: reconnecting with the same cookie
		header := http.Header{}
		header.Add("Cookie", testCookie+"="+resp.Cookies()[0].Value)
		second, _ := dial(t, srv, header)
		reply := send(t, second, "connect", nil)

		// Then: the move is still there
		require.NotNil(t, reply.View)
		assert.Equal(t, "....X....", reply.View.Board.String())
	})
}

func TestServer_Errors(t *testing.T) {
	conn, _ := dial(t, newTestServer(t), nil)

	t.Run("Unknown action", func(t *testing.T) {
		reply := send(t, conn, "game:surrender", nil)

		assert.Nil(t, reply.View)
		assert.Contains(t, reply.Error, "unknown action")
	})

	t.Run("Missing cell", func(t *testing.T) {
		reply := send(t, conn, "cell:click", nil)

		assert.Contains(t, reply.Error, "invalid cell index")
	})

	t.Run("Out of range cell", func(t *testing.T) {
		reply := send(t, conn, "cell:click", map[string]int{"cell": 9})

		assert.Contains(t, reply.Error, "invalid cell index")
	})

	t.Run("Jump past the end", func(t *testing.T) {
		reply := send(t, conn, "history:jump", map[string]int{"move": 3})

		assert.Contains(t, reply.Error, "invalid history position")
	})

	t.Run("Malformed payload", func(t *testing.T) {
		reply := send(t, conn, "cell:click", map[string]string{"cell": "center"})

		assert.Equal(t, "malformed message", reply.Error)
	})

	t.Run("Malformed frame keeps the connection open", func(t *testing.T) {
		// When: sending text that is not JSON
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
		reply := receive(t, conn, "")

		// Then: an error comes back and the next message still works
		assert.Equal(t, "malformed message", reply.Error)
		assert.NotNil(t, send(t, conn, "connect", nil).View)
	})
}
