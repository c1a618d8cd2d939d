package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/config"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/repository"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/suggestion"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-arbiter/transport/rest"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameRepo, closeStorage, err := newGameRepository(ctx, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	engine := minimax.NewEngine()
	adapter := suggestion.NewAdapter(logger, suggestion.NewClient(conf.Suggestion), engine)
	arbiter := tictactoe.NewArbiter(logger, engine, adapter)
	gameUseCase := usecase.NewGameManager(logger, gameRepo, arbiter)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage, "model", conf.Suggestion.Model)
	if err = rest.New(logger, gameUseCase).Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func newGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func(), error) {
	if conf.Storage != config.StorageRedis {
		return repository.NewMemoryGameRepository(), func() {}, nil
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeStorage := func() {
		if err := redisStorage.Close(); err != nil {
			slog.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewGameRepository(redisStorage), closeStorage, nil
}
