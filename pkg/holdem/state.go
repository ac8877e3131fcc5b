package holdem

import (
	"sort"

	"holdempoker-server/pkg/deck"
)

// State is a serializable snapshot of the table. Snapshots are pure reads:
// taking one never mutates the table, and taking two in a row yields the same
// result.
type State struct {
	Name         string        `json:"name"`
	Status       Status        `json:"status"`
	MaxSeats     int           `json:"maxSeats"`
	SmallBlind   int           `json:"smallBlind"`
	BigBlind     int           `json:"bigBlind"`
	HandNumber   int           `json:"handNumber"`
	DealerSeat   int           `json:"dealerSeat"`
	Community    []*deck.Card  `json:"community"`
	Pot          int           `json:"pot"`
	Pots         []*PotEntry   `json:"pots"`
	Seats        []*SeatState  `json:"seats"`
	Viewers      []int64       `json:"viewers"`
	CurrentTurn  int64         `json:"currentTurn"`
	LegalActions []LegalAction `json:"legalActions,omitempty"`
	LastPayouts  map[int64]int `json:"lastPayouts,omitempty"`
}

// SeatState is one seat in a snapshot. HoleCards is only populated for the
// requesting player's own seat.
type SeatState struct {
	SeatNumber int          `json:"seatNumber"`
	PlayerID   int64        `json:"playerId"`
	Stack      int          `json:"stack"`
	RoundBet   int          `json:"roundBet"`
	BetInHand  int          `json:"betInHand"`
	Status     HandStatus   `json:"status"`
	LastAction *Action      `json:"lastAction"`
	HoleCards  []*deck.Card `json:"holeCards,omitempty"`
}

// State returns a snapshot of the table. Pass zero for the public snapshot with
// every hole card hidden; pass a player's id to include that player's own hole
// cards and, when they are in turn, their legal actions.
func (t *Table) State(playerID int64) *State {
	potTotal := 0
	var pots []*PotEntry
	if t.pot != nil {
		potTotal = t.pot.Total()
		pots = t.pot.Pots()
	}

	var currentTurn int64
	var legalActions []LegalAction
	if t.round != nil {
		potTotal += t.round.PendingTotal()

		if player := t.round.CurrentTurn(); player != nil {
			currentTurn = player.ID()
			if playerID != 0 && playerID == player.ID() {
				legalActions = t.round.LegalActions()
			}
		}
	}

	seats := make([]*SeatState, 0, len(t.seats))
	for _, player := range t.seatedInOrder() {
		seat := &SeatState{
			SeatNumber: player.SeatNumber(),
			PlayerID:   player.ID(),
			Stack:      player.Stack().Amount(),
			BetInHand:  player.BetInHand(),
			Status:     player.Status(),
			LastAction: player.LastAction(),
		}

		if t.round != nil {
			seat.RoundBet = t.round.Contribution(player.ID())
		}

		if playerID != 0 && playerID == player.ID() {
			seat.HoleCards = player.HoleCards()
		}

		seats = append(seats, seat)
	}

	viewers := make([]int64, 0, len(t.viewers))
	for id := range t.viewers {
		viewers = append(viewers, id)
	}
	sort.Slice(viewers, func(i, j int) bool { return viewers[i] < viewers[j] })

	var lastPayouts map[int64]int
	if len(t.lastPayouts) > 0 {
		lastPayouts = make(map[int64]int, len(t.lastPayouts))
		for id, amount := range t.lastPayouts {
			lastPayouts[id] = amount
		}
	}

	return &State{
		Name:         t.options.Name,
		Status:       t.status,
		MaxSeats:     t.options.MaxSeats,
		SmallBlind:   t.options.SmallBlind,
		BigBlind:     t.options.BigBlind,
		HandNumber:   t.handNumber,
		DealerSeat:   t.dealerSeat,
		Community:    t.community.Clone(),
		Pot:          potTotal,
		Pots:         pots,
		Seats:        seats,
		Viewers:      viewers,
		CurrentTurn:  currentTurn,
		LegalActions: legalActions,
		LastPayouts:  lastPayouts,
	}
}
