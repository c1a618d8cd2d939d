package suggestion

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
)

var (
	ErrNoCoordinates = errors.New("no row/col pair in suggestion")
	ErrOutOfRange    = errors.New("suggested cell is out of range")

	rowPattern = regexp.MustCompile(`(?i)row\s*(\d+)`)
	colPattern = regexp.MustCompile(`(?i)col\s*(\d+)`)
)

// ParseMove finds the first "row N" and "col N" tokens in free-form text.
func ParseMove(text string) (entity.Move, error) {
	rowMatch := rowPattern.FindStringSubmatch(text)
	colMatch := colPattern.FindStringSubmatch(text)
	if rowMatch == nil || colMatch == nil {
		return entity.Move{}, fmt.Errorf("%w: %q", ErrNoCoordinates, text)
	}

	row, err := strconv.Atoi(rowMatch[1])
	if err != nil {
		return entity.Move{}, fmt.Errorf("%w: row %s", ErrOutOfRange, rowMatch[1])
	}

	col, err := strconv.Atoi(colMatch[1])
	if err != nil {
		return entity.Move{}, fmt.Errorf("%w: col %s", ErrOutOfRange, colMatch[1])
	}

	move := entity.Move{Row: row, Col: col}
	if !move.InRange() {
		return entity.Move{}, fmt.Errorf("%w: row %d, col %d", ErrOutOfRange, row, col)
	}

	return move, nil
}

// validate checks that a parsed suggestion can be played on board.
func validate(board entity.Board, move entity.Move) error {
	if board.At(move) != entity.EmptyCell {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrCellOccupied, move.Row, move.Col)
	}

	return nil
}
