package entity

// Game is the live session: the board, whose mark moves next and the last known outcome.
type Game struct {
	ID     string `json:"id"`
	Board  Board  `json:"board"`
	Winner string `json:"winner"`
	Status string `json:"status"`
	Turn   string `json:"player_turn"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Board:  Board{},
		Turn:   PlayerX,
		Status: StatusOngoing,
	}
}

// ApplyOutcome copies outcome into the game's status fields.
func (that *Game) ApplyOutcome(outcome Outcome) {
	that.Status = outcome.Status
	that.Winner = outcome.Winner
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}
