package entity

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

const boardSize = 3

// lines lists every winning line in scan order: rows, columns, primary diagonal, anti-diagonal.
var lines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a 3x3 grid addressed as [row][col]. It is an array, so assignment copies it.
type Board [boardSize][boardSize]string

// Move addresses a single cell.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Outcome is the status of a board: ongoing, or finished with a winner mark or PlayerTie.
type Outcome struct {
	Status string `json:"status"`
	Winner string `json:"winner,omitempty"`
}

func (that Outcome) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that Outcome) IsDraw() bool {
	return that.IsFinished() && that.Winner == PlayerTie
}

func (that Move) InRange() bool {
	return that.Row >= 0 && that.Row < boardSize && that.Col >= 0 && that.Col < boardSize
}

// IsValidMark reports whether mark is one of the two player marks.
func IsValidMark(mark string) bool {
	return mark == PlayerX || mark == PlayerO
}

// Opponent returns the other player's mark.
func Opponent(mark string) string {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Board) At(move Move) string {
	return that[move.Row][move.Col]
}

// IsLegal reports whether move is inside the board and addresses an empty cell.
func (that Board) IsLegal(move Move) bool {
	return move.InRange() && that.At(move) == EmptyCell
}

// Place returns a copy of the board with mark written at move. The receiver is left untouched.
func (that Board) Place(move Move, mark string) Board {
	that[move.Row][move.Col] = mark
	return that
}

// EmptyCells lists free cells in row-major order.
func (that Board) EmptyCells() []Move {
	moves := make([]Move, 0, boardSize*boardSize)
	for row := range boardSize {
		for col := range boardSize {
			if that[row][col] == EmptyCell {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}

	return moves
}

// Winner returns the mark of the first completed line found by the scan order of lines.
func (that Board) Winner() (string, bool) {
	for _, line := range lines {
		a, b, c := that.At(line[0]), that.At(line[1]), that.At(line[2])
		if a != EmptyCell && a == b && b == c {
			return a, true
		}
	}

	return "", false
}

func (that Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

// Status reports the outcome of the board. A completed line wins even when the board is full.
func (that Board) Status() Outcome {
	if winner, ok := that.Winner(); ok {
		return Outcome{Status: StatusFinished, Winner: winner}
	}

	// the game will continue until all the squares are full
	if that.IsFull() {
		return Outcome{Status: StatusFinished, Winner: PlayerTie}
	}

	return Outcome{Status: StatusOngoing}
}
