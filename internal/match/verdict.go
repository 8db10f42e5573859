package match

import (
	"encoding/json"

	"github.com/mrsobakin/seabattle/internal/game"
)

type Reason int

const (
	// Opponent fleet was sunk.
	ReasonNormal Reason = iota
	// Loser gave up or closed the input.
	ReasonForfeit
	// Loser ran out of move clock.
	ReasonClockExpired
)

func (r Reason) String() string {
	switch r {
	case ReasonNormal:
		return "normal"
	case ReasonForfeit:
		return "forfeit"
	case ReasonClockExpired:
		return "clock"
	default:
		panic("invalid reason")
	}
}

func (r Reason) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

type Verdict struct {
	GameID string    `json:"game_id"`
	Winner game.Side `json:"winner"`
	Reason Reason    `json:"reason"`
	Shots  int       `json:"shots"`
}
