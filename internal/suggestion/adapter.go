// Package suggestion asks an external chat model for a move and falls back to search when the answer is unusable.
package suggestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
)

type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type searcher interface {
	BestMove(board entity.Board, mark string) (entity.Move, bool)
}

type Adapter struct {
	logger *slog.Logger

	completer completer
	fallback  searcher
}

func NewAdapter(logger *slog.Logger, completer completer, fallback searcher) *Adapter {
	return &Adapter{
		logger:    logger.With("component", "suggestion"),
		completer: completer,
		fallback:  fallback,
	}
}

// SuggestMove returns the model's move when it is a legal cell, and the search engine's move otherwise.
// It only returns false when the fallback has no move either.
func (that *Adapter) SuggestMove(ctx context.Context, board entity.Board, mark string) (entity.Move, bool) {
	log := that.logger.With("method", "SuggestMove", "mark", mark)

	move, err := that.suggest(ctx, board, mark)
	if err == nil {
		log.Info("using suggested move", "row", move.Row, "col", move.Col)
		return move, true
	}

	log.Warn("suggestion rejected, falling back to minimax", "error", err)

	return that.fallback.BestMove(board, mark)
}

func (that *Adapter) suggest(ctx context.Context, board entity.Board, mark string) (entity.Move, error) {
	prompt, err := BuildPrompt(board, mark)
	if err != nil {
		return entity.Move{}, err
	}

	text, err := that.completer.Complete(ctx, prompt)
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to get completion: %w", err)
	}

	that.logger.Debug("raw suggestion", "text", text)

	move, err := ParseMove(text)
	if err != nil {
		return entity.Move{}, err
	}

	if err = validate(board, move); err != nil {
		return entity.Move{}, err
	}

	return move, nil
}
