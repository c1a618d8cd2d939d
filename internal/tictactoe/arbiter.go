package tictactoe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
)

// Strategy selects where automated moves come from.
type Strategy string

const (
	StrategyMinimax Strategy = "minimax"
	StrategyLLM     Strategy = "llm"

	strategyOllama = "ollama"
)

// ParseStrategy maps a transport value to a Strategy. Unknown values fall back to minimax.
func ParseStrategy(value string) Strategy {
	switch value {
	case string(StrategyLLM), strategyOllama:
		return StrategyLLM
	default:
		return StrategyMinimax
	}
}

type searcher interface {
	BestMove(board entity.Board, mark string) (entity.Move, bool)
}

type suggester interface {
	SuggestMove(ctx context.Context, board entity.Board, mark string) (entity.Move, bool)
}

// ApplyMove places mark at move on a copy of board and reports the resulting outcome.
// On error the returned board is the unchanged input.
func ApplyMove(board entity.Board, mark string, move entity.Move) (entity.Board, entity.Outcome, error) {
	if err := validateMove(board, mark, move); err != nil {
		return board, board.Status(), fmt.Errorf("invalid turn: %w", err)
	}

	next := board.Place(move, mark)

	return next, next.Status(), nil
}

// validateMove - checks if the move is valid.
func validateMove(board entity.Board, mark string, move entity.Move) error {
	if !entity.IsValidMark(mark) {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if !move.InRange() {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrInvalidCell, move.Row, move.Col)
	}

	if board.At(move) != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// Arbiter chooses and applies automated moves.
type Arbiter struct {
	logger *slog.Logger

	engine    searcher
	suggester suggester
}

func NewArbiter(logger *slog.Logger, engine searcher, suggester suggester) *Arbiter {
	return &Arbiter{
		logger:    logger.With("component", "arbiter"),
		engine:    engine,
		suggester: suggester,
	}
}

// RequestAutomatedMove picks a move for mark with the given strategy and applies it.
// It returns apperror.ErrNoValidMove without touching the board when the game is already decided.
func (that *Arbiter) RequestAutomatedMove(ctx context.Context, board entity.Board, mark string, strategy Strategy) (entity.Board, entity.Outcome, error) {
	log := that.logger.With("method", "RequestAutomatedMove", "mark", mark, "strategy", strategy)

	if !entity.IsValidMark(mark) {
		return board, board.Status(), fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if board.Status().IsFinished() {
		return board, board.Status(), apperror.ErrNoValidMove
	}

	var (
		move entity.Move
		ok   bool
	)

	switch strategy {
	case StrategyLLM:
		move, ok = that.suggester.SuggestMove(ctx, board, mark)
	default:
		move, ok = that.engine.BestMove(board, mark)
	}

	if !ok {
		return board, board.Status(), apperror.ErrNoValidMove
	}

	log.Debug("automated move chosen", "row", move.Row, "col", move.Col)

	return ApplyMove(board, mark, move)
}
