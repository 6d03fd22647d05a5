package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

var tracer = otel.Tracer("github.com/rocketscienceinc/tictactoe-web/internal/usecase")

var ErrEmptySessionID = errors.New("session id is empty")

type GameUseCase interface {
	GetView(ctx context.Context, sessionID string) (tictactoe.View, error)

	ClickCell(ctx context.Context, sessionID string, cell int) (tictactoe.View, error)
	JumpTo(ctx context.Context, sessionID string, move int) (tictactoe.View, error)
	ToggleSortOrder(ctx context.Context, sessionID string) (tictactoe.View, error)
	Reset(ctx context.Context, sessionID string) (tictactoe.View, error)
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
}

type gameUseCase struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
}

func NewGameUseCase(logger *slog.Logger, sessionRepo sessionRepo) GameUseCase {
	return &gameUseCase{
		logger:      logger.With("component", "game_usecase"),
		sessionRepo: sessionRepo,
	}
}

func (that *gameUseCase) GetView(ctx context.Context, sessionID string) (tictactoe.View, error) {
	return that.apply(ctx, "GetView", sessionID, func(*tictactoe.Game) error {
		return nil
	})
}

func (that *gameUseCase) ClickCell(ctx context.Context, sessionID string, cell int) (tictactoe.View, error) {
	if !entity.IsValidCell(cell) {
		return tictactoe.View{}, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	return that.apply(ctx, "ClickCell", sessionID, func(game *tictactoe.Game) error {
		if !game.Play(cell) {
			that.logger.DebugContext(ctx, "move ignored", "session_id", sessionID, "cell", cell)
		}
		return nil
	}, attribute.Int("game.cell", cell))
}

func (that *gameUseCase) JumpTo(ctx context.Context, sessionID string, move int) (tictactoe.View, error) {
	return that.apply(ctx, "JumpTo", sessionID, func(game *tictactoe.Game) error {
		if !game.Session().IsValidMove(move) {
			return fmt.Errorf("%w: move %d", apperror.ErrInvalidMove, move)
		}

		game.JumpTo(move)
		return nil
	}, attribute.Int("game.move", move))
}

func (that *gameUseCase) ToggleSortOrder(ctx context.Context, sessionID string) (tictactoe.View, error) {
	return that.apply(ctx, "ToggleSortOrder", sessionID, func(game *tictactoe.Game) error {
		game.ToggleSortOrder()
		return nil
	})
}

func (that *gameUseCase) Reset(ctx context.Context, sessionID string) (tictactoe.View, error) {
	return that.apply(ctx, "Reset", sessionID, func(game *tictactoe.Game) error {
		game.Session().Reset()
		return nil
	})
}

// apply loads the session, runs one event and saves the result. Saving also
// refreshes the session ttl, so it happens even for no-op events.
func (that *gameUseCase) apply(
	ctx context.Context,
	method, sessionID string,
	event func(game *tictactoe.Game) error,
	attrs ...attribute.KeyValue,
) (tictactoe.View, error) {
	ctx, span := tracer.Start(ctx, "usecase."+method, trace.WithAttributes(
		append(attrs, attribute.String("session.id", sessionID))...,
	))
	defer span.End()

	log := that.logger.With("method", method, "session_id", sessionID)

	session, err := that.getOrCreateSession(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load session")
		return tictactoe.View{}, err
	}

	game := tictactoe.NewGame(session)
	if err = event(game); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return tictactoe.View{}, err
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to save session")
		return tictactoe.View{}, fmt.Errorf("failed to save session: %w", err)
	}

	view := game.View()
	log.DebugContext(ctx, "session updated",
		"board", session.CurrentBoard().String(),
		"current_move", session.CurrentMove,
		"history_len", len(session.History),
		"status", view.Status,
	)

	return view, nil
}

func (that *gameUseCase) getOrCreateSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}

	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		that.logger.InfoContext(ctx, "starting new session", "session_id", sessionID)
		return entity.NewSession(sessionID), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return session, nil
}
