package apperror

import "errors"

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrInvalidMark  = errors.New("invalid player mark")
	ErrNoValidMove  = errors.New("no valid moves or game ended")
	ErrNotFound     = errors.New("not found")
)
