package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
)

// memoryGame keeps the live game in process. Games are copied in and out so callers never share a board.
type memoryGame struct {
	mu   sync.RWMutex
	game *entity.Game
}

func NewMemoryGameRepository() GameRepository {
	return &memoryGame{}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	stored := *game

	that.mu.Lock()
	that.game = &stored
	that.mu.Unlock()

	return nil
}

func (that *memoryGame) Get(_ context.Context) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if that.game == nil {
		return nil, ErrGameNotFound
	}

	game := *that.game

	return &game, nil
}

func (that *memoryGame) Delete(_ context.Context) error {
	that.mu.Lock()
	that.game = nil
	that.mu.Unlock()

	return nil
}
