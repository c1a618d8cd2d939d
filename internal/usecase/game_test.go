package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/repository"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/tictactoe"
)

var (
	errRedisDown     = errors.New("redis down")
	errStorageIsFull = errors.New("storage is full")
)

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	return that.Called(ctx, game).Error(0)
}

func (that *mockGameRepo) Get(ctx context.Context) (*entity.Game, error) {
	args := that.Called(ctx)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

type mockArbiter struct {
	mock.Mock
}

func (that *mockArbiter) RequestAutomatedMove(ctx context.Context, board entity.Board, mark string, strategy tictactoe.Strategy) (entity.Board, entity.Outcome, error) {
	args := that.Called(ctx, board, mark, strategy)
	return args.Get(0).(entity.Board), args.Get(1).(entity.Outcome), args.Error(2)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newManager wires a GameManager with in-memory storage and the real minimax engine.
func newManager(t *testing.T, game *entity.Game) (*GameManager, repository.GameRepository) {
	t.Helper()

	repo := repository.NewMemoryGameRepository()
	if game != nil {
		require.NoError(t, repo.CreateOrUpdate(context.Background(), game))
	}

	logger := discardLogger()
	arbiter := tictactoe.NewArbiter(logger, minimax.NewEngine(), nil)

	return NewGameManager(logger, repo, arbiter), repo
}

func TestGameManager_Reset(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores a fresh game", func(t *testing.T) {
		// Given: a finished game in storage
		finished := entity.NewGame("old")
		finished.Status = entity.StatusFinished
		manager, repo := newManager(t, finished)

		// When: resetting
		game, err := manager.Reset(ctx)

		// Then: a new empty game with X to move replaces it
		require.NoError(t, err)
		assert.NotEqual(t, "old", game.ID)
		assert.Equal(t, entity.Board{}, game.Board)
		assert.Equal(t, entity.PlayerX, game.Turn)

		stored, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, game, stored)
	})

	t.Run("Returns error if the repository fails", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(errStorageIsFull).Once()
		manager := NewGameManager(discardLogger(), repo, &mockArbiter{})

		game, err := manager.Reset(ctx)

		require.ErrorIs(t, err, errStorageIsFull)
		assert.Nil(t, game)
		repo.AssertExpectations(t)
	})
}

func TestGameManager_GetGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a game when none is stored", func(t *testing.T) {
		manager, repo := newManager(t, nil)

		game, err := manager.GetGame(ctx)

		require.NoError(t, err)
		assert.True(t, game.IsOngoing())
		_, err = repo.Get(ctx)
		require.NoError(t, err)
	})

	t.Run("Returns error if storage is down", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("Get", ctx).Return(nil, errRedisDown).Once()
		manager := NewGameManager(discardLogger(), repo, &mockArbiter{})

		game, err := manager.GetGame(ctx)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful turn passes the turn to the opponent", func(t *testing.T) {
		// Given: a new game
		manager, repo := newManager(t, entity.NewGame("g1"))

		// When: X plays the center
		game, err := manager.MakeTurn(ctx, 1, 1)

		// Then: the board is updated, O moves next and the game is saved
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, game.Board[1][1])
		assert.Equal(t, entity.PlayerO, game.Turn)

		stored, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, game, stored)
	})

	t.Run("Winning turn finishes the game and keeps the winner's turn", func(t *testing.T) {
		start := entity.NewGame("g2")
		start.Board = entity.Board{
			{entity.PlayerX, entity.PlayerX, entity.EmptyCell},
			{entity.PlayerO, entity.PlayerO, entity.EmptyCell},
			{entity.EmptyCell, entity.EmptyCell, entity.EmptyCell},
		}
		manager, _ := newManager(t, start)

		game, err := manager.MakeTurn(ctx, 0, 2)

		require.NoError(t, err)
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.PlayerX, game.Winner)
		assert.Equal(t, entity.PlayerX, game.Turn)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: X already holds the corner
		start := entity.NewGame("g3")
		start.Board[0][0] = entity.PlayerX
		start.Turn = entity.PlayerO
		manager, repo := newManager(t, start)

		// When: O plays the same cell
		game, err := manager.MakeTurn(ctx, 0, 0)

		// Then: ErrCellOccupied is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, entity.PlayerO, game.Turn)

		stored, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, start, stored)
	})

	t.Run("Error on invalid cell", func(t *testing.T) {
		manager, _ := newManager(t, entity.NewGame("g4"))

		_, err := manager.MakeTurn(ctx, 3, 3)

		require.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Concurrent turns never lose an update", func(t *testing.T) {
		// Given: a new game
		manager, repo := newManager(t, entity.NewGame("g6"))

		// When: every cell is played at once
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
		)
		for _, cell := range (entity.Board{}).EmptyCells() {
			wg.Add(1)
			go func(cell entity.Move) {
				defer wg.Done()
				if _, err := manager.MakeTurn(ctx, cell.Row, cell.Col); err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
				}
			}(cell)
		}
		wg.Wait()

		// Then: the stored board holds exactly one mark per accepted turn
		stored, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Positive(t, succeeded)
		assert.Equal(t, succeeded, 9-len(stored.Board.EmptyCells()))
	})

	t.Run("Move After Game Finished", func(t *testing.T) {
		start := entity.NewGame("g5")
		start.Status = entity.StatusFinished
		start.Winner = entity.PlayerX
		manager, _ := newManager(t, start)

		_, err := manager.MakeTurn(ctx, 2, 2)

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestGameManager_ComputerTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults to the current turn and passes the turn on", func(t *testing.T) {
		// Given: X played the corner and it is O's turn
		start := entity.NewGame("g1")
		start.Board[0][0] = entity.PlayerX
		start.Turn = entity.PlayerO
		manager, _ := newManager(t, start)

		// When: the computer moves without an explicit mark
		game, err := manager.ComputerTurn(ctx, "", false, tictactoe.StrategyMinimax)

		// Then: O took the only non-losing reply and X moves next
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerO, game.Board[1][1])
		assert.Equal(t, entity.PlayerX, game.Turn)
	})

	t.Run("Auto play keeps the turn on the same mark", func(t *testing.T) {
		manager, _ := newManager(t, entity.NewGame("g2"))

		game, err := manager.ComputerTurn(ctx, entity.PlayerX, true, tictactoe.StrategyMinimax)

		require.NoError(t, err)
		assert.Len(t, game.Board.EmptyCells(), 8)
		assert.Equal(t, entity.PlayerX, game.Turn)
	})

	t.Run("Passes the strategy through to the arbiter", func(t *testing.T) {
		// Given: an arbiter that places O in the center
		repo := repository.NewMemoryGameRepository()
		require.NoError(t, repo.CreateOrUpdate(ctx, entity.NewGame("g3")))
		arbiter := &mockArbiter{}
		after := entity.Board{}.Place(entity.Move{Row: 1, Col: 1}, entity.PlayerO)
		arbiter.On("RequestAutomatedMove", ctx, entity.Board{}, entity.PlayerO, tictactoe.StrategyLLM).
			Return(after, after.Status(), nil).
			Once()
		manager := NewGameManager(discardLogger(), repo, arbiter)

		// When: asking for an LLM move for O
		game, err := manager.ComputerTurn(ctx, entity.PlayerO, false, tictactoe.StrategyLLM)

		// Then: the arbiter's board is stored
		require.NoError(t, err)
		assert.Equal(t, after, game.Board)
		assert.Equal(t, entity.PlayerX, game.Turn)
		arbiter.AssertExpectations(t)
	})

	t.Run("Finished game reports no valid move", func(t *testing.T) {
		start := entity.NewGame("g4")
		start.Board = entity.Board{
			{entity.PlayerX, entity.PlayerX, entity.PlayerX},
			{entity.PlayerO, entity.PlayerO, entity.EmptyCell},
			{entity.EmptyCell, entity.EmptyCell, entity.EmptyCell},
		}
		manager, repo := newManager(t, start)

		_, err := manager.ComputerTurn(ctx, entity.PlayerO, false, tictactoe.StrategyMinimax)

		require.ErrorIs(t, err, apperror.ErrNoValidMove)
		stored, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, start.Board, stored.Board)
	})

	t.Run("Computer win keeps the turn on the winner", func(t *testing.T) {
		start := entity.NewGame("g5")
		start.Board = entity.Board{
			{entity.PlayerO, entity.PlayerO, entity.EmptyCell},
			{entity.PlayerX, entity.PlayerX, entity.EmptyCell},
			{entity.PlayerX, entity.EmptyCell, entity.EmptyCell},
		}
		start.Turn = entity.PlayerO
		manager, _ := newManager(t, start)

		game, err := manager.ComputerTurn(ctx, "", false, tictactoe.StrategyMinimax)

		require.NoError(t, err)
		assert.Equal(t, entity.PlayerO, game.Winner)
		assert.Equal(t, entity.PlayerO, game.Turn)
	})
}
