package suggestion

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
)

const rowSeparator = "---+-----+---"

var promptTemplate = template.Must(template.New("prompt").Parse(`
You are an expert Tic-Tac-Toe player.
You are '{{.Mark}}' and your opponent is '{{.Opponent}}'.

Goal: Get three of your marks in a row (horizontal, vertical, or diagonal).
If your opponent can win next turn, block them.

Current board (empty spaces shown as [row,col]):
{{.Board}}
Available moves: {{.Available}}

Follow this strategy strictly:
1. If you can win in one move, take that move.
2. If the opponent can win next, block them.
3. Take the center if available.
4. Take a corner if available.
5. Otherwise, take an edge.

Example:
If the board is:
X | O | [0,2]
[1,0] | X | O
O | [2,1] | [2,2]
Then you should reply exactly:
row 2, col 2

Now, based on the above, respond with ONLY the move, in this format:
row X, col Y
`))

type promptData struct {
	Mark      string
	Opponent  string
	Board     string
	Available string
}

// BuildPrompt describes the rules, the board and the expected answer format for mark.
func BuildPrompt(board entity.Board, mark string) (string, error) {
	data := promptData{
		Mark:      mark,
		Opponent:  entity.Opponent(mark),
		Board:     RenderBoard(board),
		Available: strings.Join(availableMoves(board), ", "),
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}

	return buf.String(), nil
}

// RenderBoard draws the board as text, showing empty cells by their coordinates.
func RenderBoard(board entity.Board) string {
	var sb strings.Builder
	for row := range board {
		cells := make([]string, 0, len(board[row]))
		for col, cell := range board[row] {
			if cell == entity.EmptyCell {
				cells = append(cells, fmt.Sprintf("[%d,%d]", row, col))
				continue
			}
			cells = append(cells, " "+cell+" ")
		}

		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteByte('\n')
		if row < len(board)-1 {
			sb.WriteString(rowSeparator)
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func availableMoves(board entity.Board) []string {
	cells := board.EmptyCells()
	moves := make([]string, 0, len(cells))
	for _, move := range cells {
		moves = append(moves, fmt.Sprintf("row %d, col %d", move.Row, move.Col))
	}

	return moves
}
