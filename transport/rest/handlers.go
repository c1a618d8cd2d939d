package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/tictactoe"
)

const winnerDraw = "draw"

type gameUseCase interface {
	Reset(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context) (*entity.Game, error)
	MakeTurn(ctx context.Context, row, col int) (*entity.Game, error)
	ComputerTurn(ctx context.Context, mark string, autoPlay bool, strategy tictactoe.Strategy) (*entity.Game, error)
}

type moveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type computerMoveRequest struct {
	Player   string `json:"player"`
	AutoPlay bool   `json:"auto_play"`
	AIType   string `json:"ai_type"`
}

type gameResponse struct {
	Success       bool          `json:"success"`
	Board         *entity.Board `json:"board,omitempty"`
	Winner        string        `json:"winner,omitempty"`
	CurrentPlayer string        `json:"currentPlayer,omitempty"`
	Message       string        `json:"message,omitempty"`
}

type handlers struct {
	logger *slog.Logger

	gameUseCase gameUseCase
}

func newHandlers(logger *slog.Logger, gameUseCase gameUseCase) *handlers {
	return &handlers{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
	}
}

func (that *handlers) state(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.GetGame(r.Context())
	if err != nil {
		that.writeError(w, "state", err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *handlers) reset(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.Reset(r.Context())
	if err != nil {
		that.writeError(w, "reset", err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *handlers) makeMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Row == nil || req.Col == nil {
		writeJSON(w, http.StatusBadRequest, gameResponse{Message: "Request must contain row and col."})
		return
	}

	game, err := that.gameUseCase.MakeTurn(r.Context(), *req.Row, *req.Col)
	if err != nil {
		that.writeError(w, "makeMove", err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *handlers) computerMove(w http.ResponseWriter, r *http.Request) {
	// an empty body, chunked or not, asks for the defaults
	var req computerMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, gameResponse{Message: "Malformed request body."})
		return
	}

	game, err := that.gameUseCase.ComputerTurn(r.Context(), req.Player, req.AutoPlay, tictactoe.ParseStrategy(req.AIType))
	if err != nil {
		that.writeError(w, "computerMove", err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(game))
}

// writeError maps game rule violations to a failed response and everything else to a 500.
func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	resp := gameResponse{}

	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		resp.Message = "Invalid move, cell already taken."
	case errors.Is(err, apperror.ErrInvalidCell):
		resp.Message = "Invalid move, cell is out of range."
	case errors.Is(err, apperror.ErrGameFinished):
		resp.Message = "Game is already finished."
	case errors.Is(err, apperror.ErrNoValidMove):
		resp.Message = "No valid moves or game ended."
	case errors.Is(err, apperror.ErrInvalidMark):
		writeJSON(w, http.StatusBadRequest, gameResponse{Message: "Player must be X or O."})
		return
	default:
		that.logger.Error("request failed", "method", method, "error", err)
		writeJSON(w, http.StatusInternalServerError, gameResponse{Message: "Internal Server Error"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func newGameResponse(game *entity.Game) gameResponse {
	board := game.Board
	resp := gameResponse{
		Success:       true,
		Board:         &board,
		CurrentPlayer: game.Turn,
	}

	switch game.Winner {
	case entity.PlayerX, entity.PlayerO:
		resp.Winner = game.Winner
	case entity.PlayerTie:
		resp.Winner = winnerDraw
	}

	return resp
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
