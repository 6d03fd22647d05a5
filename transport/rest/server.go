package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-web/internal/config"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-web/transport/session"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	GetView(ctx context.Context, sessionID string) (tictactoe.View, error)

	ClickCell(ctx context.Context, sessionID string, cell int) (tictactoe.View, error)
	JumpTo(ctx context.Context, sessionID string, move int) (tictactoe.View, error)
	ToggleSortOrder(ctx context.Context, sessionID string) (tictactoe.View, error)
	Reset(ctx context.Context, sessionID string) (tictactoe.View, error)
}

type Server struct {
	logger *slog.Logger
	engine *gin.Engine
}

// New builds the gin engine. Extra handlers (the websocket endpoint) are
// mounted with Handle and share the session middleware.
func New(logger *slog.Logger, conf *config.Config, game gameUseCase) *Server {
	log := logger.With("component", "rest")

	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(log))
	engine.SetHTMLTemplate(mustParseTemplates())

	engine.GET("/ping", pingHandler)

	sessions := engine.Group("/", session.Middleware(conf.Session.Cookie, conf.Session.TTL))

	pages := newPageHandlers(log, game)
	sessions.GET("/", pages.Home)
	sessions.GET(gamePath, pages.Game)
	sessions.POST(gamePath+"/cells/:cell", pages.ClickCell)
	sessions.POST(gamePath+"/history/:move", pages.JumpTo)
	sessions.POST(gamePath+"/sort", pages.ToggleSortOrder)
	sessions.POST(gamePath+"/reset", pages.Reset)

	api := newAPIHandlers(log, game)
	sessions.GET("/api/game", api.GetView)
	sessions.POST("/api/game/cells/:cell", api.ClickCell)
	sessions.POST("/api/game/history/:move", api.JumpTo)
	sessions.POST("/api/game/sort", api.ToggleSortOrder)
	sessions.POST("/api/game/reset", api.Reset)

	return &Server{
		logger: log,
		engine: engine,
	}
}

// Handle mounts a handler behind the session middleware.
func (that *Server) Handle(method, path string, conf *config.Config, handler gin.HandlerFunc) {
	that.engine.Handle(method, path, session.Middleware(conf.Session.Cookie, conf.Session.TTL), handler)
}

func (that *Server) Handler() http.Handler {
	return that.engine
}

// Start - starts HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.DebugContext(c.Request.Context(), "request served",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
