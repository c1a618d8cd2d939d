// Package minimax picks provably optimal tic-tac-toe moves by walking the full game tree.
//
// Leaf scores are not discounted by depth, so a win five plies away scores the same as a
// win on the next move. Among equally scored first moves the engine picks one at random.
package minimax

import (
	"math"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
)

const (
	ScoreWin  = 10
	ScoreLoss = -10
	ScoreDraw = 0
)

// ScoredMove is a first-ply move together with its minimax value for the mark to move.
type ScoredMove struct {
	Move  entity.Move
	Score int
}

type Engine struct {
	intN func(n int) int
}

type Option func(*Engine)

// WithRand makes tie-breaking draw from r instead of the global source.
func WithRand(r *rand.Rand) Option {
	return func(that *Engine) {
		that.intN = r.IntN
	}
}

func NewEngine(opts ...Option) *Engine {
	engine := &Engine{intN: rand.IntN}
	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// BestMove returns an optimal move for mark. It returns false when the board is already decided.
func (that *Engine) BestMove(board entity.Board, mark string) (entity.Move, bool) {
	if board.Status().IsFinished() {
		return entity.Move{}, false
	}

	scored := that.ScoreMoves(board, mark)

	bestScore := math.MinInt
	best := make([]entity.Move, 0, len(scored))
	for _, candidate := range scored {
		switch {
		case candidate.Score > bestScore:
			bestScore = candidate.Score
			best = append(best[:0], candidate.Move)
		case candidate.Score == bestScore:
			best = append(best, candidate.Move)
		}
	}

	if len(best) == 0 {
		return entity.Move{}, false
	}

	return best[that.intN(len(best))], true
}

// ScoreMoves scores every empty cell as a first move for mark, in row-major order.
func (that *Engine) ScoreMoves(board entity.Board, mark string) []ScoredMove {
	cells := board.EmptyCells()
	scored := make([]ScoredMove, 0, len(cells))
	for _, move := range cells {
		scored = append(scored, ScoredMove{
			Move:  move,
			Score: score(board.Place(move, mark), mark, entity.Opponent(mark)),
		})
	}

	return scored
}

// score evaluates board from self's point of view with toMove about to play.
// board is passed by value, so each branch works on its own copy.
func score(board entity.Board, self, toMove string) int {
	if winner, ok := board.Winner(); ok {
		if winner == self {
			return ScoreWin
		}
		return ScoreLoss
	}

	if board.IsFull() {
		return ScoreDraw
	}

	next := entity.Opponent(toMove)

	if toMove == self {
		best := math.MinInt
		for _, move := range board.EmptyCells() {
			best = max(best, score(board.Place(move, toMove), self, next))
		}
		return best
	}

	best := math.MaxInt
	for _, move := range board.EmptyCells() {
		best = min(best, score(board.Place(move, toMove), self, next))
	}
	return best
}
