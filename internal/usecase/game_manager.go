package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	Get(ctx context.Context) (*entity.Game, error)
}

type arbiter interface {
	RequestAutomatedMove(ctx context.Context, board entity.Board, mark string, strategy tictactoe.Strategy) (entity.Board, entity.Outcome, error)
}

// GameManager owns the session bookkeeping around the arbiter: loading the live game,
// advancing the turn and saving the result.
type GameManager struct {
	logger *slog.Logger

	// mu serializes load-modify-save of the live game.
	mu sync.Mutex

	gameRepo gameRepo
	arbiter  arbiter
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, arbiter arbiter) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
		arbiter:  arbiter,
	}
}

// Reset replaces the live game with an empty board and X to move.
func (that *GameManager) Reset(ctx context.Context) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.reset(ctx)
}

// GetGame returns the live game, starting one when none exists yet.
func (that *GameManager) GetGame(ctx context.Context) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.getGame(ctx)
}

func (that *GameManager) reset(ctx context.Context) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString())

	if err := that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game reset", "gameID", game.ID)

	return game, nil
}

func (that *GameManager) getGame(ctx context.Context) (*entity.Game, error) {
	game, err := that.gameRepo.Get(ctx)
	if errors.Is(err, apperror.ErrNotFound) {
		return that.reset(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn plays the mark whose turn it is at (row, col).
func (that *GameManager) MakeTurn(ctx context.Context, row, col int) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGame(ctx)
	if err != nil {
		return nil, err
	}

	if game.IsFinished() {
		return game, apperror.ErrGameFinished
	}

	board, outcome, err := tictactoe.ApplyMove(game.Board, game.Turn, entity.Move{Row: row, Col: col})
	if err != nil {
		return game, fmt.Errorf("failed make turn: %w", err)
	}

	game.Board = board
	game.ApplyOutcome(outcome)
	if !outcome.IsFinished() {
		game.Turn = entity.Opponent(game.Turn)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// ComputerTurn lets the arbiter move for mark, or for the current turn when mark is empty.
// With autoPlay the turn stays with mark so the caller can keep driving the same side.
func (that *GameManager) ComputerTurn(ctx context.Context, mark string, autoPlay bool, strategy tictactoe.Strategy) (*entity.Game, error) {
	log := that.logger.With("method", "ComputerTurn")

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGame(ctx)
	if err != nil {
		return nil, err
	}

	if mark == "" {
		mark = game.Turn
	}

	board, outcome, err := that.arbiter.RequestAutomatedMove(ctx, game.Board, mark, strategy)
	if err != nil {
		return game, fmt.Errorf("failed computer turn: %w", err)
	}

	game.Board = board
	game.ApplyOutcome(outcome)

	switch {
	case outcome.IsFinished(), autoPlay:
		game.Turn = mark
	default:
		game.Turn = entity.Opponent(mark)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	log.Info("computer made a turn", "gameID", game.ID, "mark", mark, "strategy", strategy, "status", game.Status)

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
