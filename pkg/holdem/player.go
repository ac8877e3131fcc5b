package holdem

import (
	"encoding/json"

	"holdempoker-server/pkg/deck"
)

// HandStatus is a player's status within the current hand
type HandStatus string

// hand status constants
const (
	StatusActive            HandStatus = "active"
	StatusFolded            HandStatus = "folded"
	StatusAllIn             HandStatus = "allIn"
	StatusWaitingForNewHand HandStatus = "waitingForNewHand"
	StatusSittingOut        HandStatus = "sittingOut"
)

// MarshalJSON encodes the status into JSON
func (s HandStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// Player is a player's seat state at a single table. The same player identity may
// hold an independent Player record at several tables at once.
type Player struct {
	id         int64
	seatNumber int
	stack      *ChipStack
	holeCards  deck.Hand

	// betInHand is the cumulative amount wagered across the whole hand.
	// It resets each hand, not each street.
	betInHand  int
	status     HandStatus
	lastAction *Action
}

func newPlayer(id int64, seatNumber, buyIn int) *Player {
	return &Player{
		id:         id,
		seatNumber: seatNumber,
		stack:      NewChipStack(buyIn),
		status:     StatusWaitingForNewHand,
	}
}

// ID returns the player's identity
func (p *Player) ID() int64 {
	return p.id
}

// SeatNumber returns the player's seat number
func (p *Player) SeatNumber() int {
	return p.seatNumber
}

// Stack returns the player's table chip stack
func (p *Player) Stack() *ChipStack {
	return p.stack
}

// HoleCards returns the player's hole cards
func (p *Player) HoleCards() deck.Hand {
	return p.holeCards.Clone()
}

// Status returns the player's status in the current hand
func (p *Player) Status() HandStatus {
	return p.status
}

// LastAction returns the player's most recent action this hand, or nil
func (p *Player) LastAction() *Action {
	return p.lastAction
}

// BetInHand returns the cumulative amount the player has wagered this hand
func (p *Player) BetInHand() int {
	return p.betInHand
}

// InHand returns true if the player was dealt in and has not folded
func (p *Player) InHand() bool {
	return p.status == StatusActive || p.status == StatusAllIn
}

// CanAct returns true if the player may still act this hand
func (p *Player) CanAct() bool {
	return p.status == StatusActive
}

func (p *Player) dealCard(card *deck.Card) {
	p.holeCards.AddCard(card)
}

// wager moves chips from the stack into the hand. Marks the player all-in
// when the stack empties.
func (p *Player) wager(amount int) error {
	if err := p.stack.Remove(amount); err != nil {
		return err
	}

	p.betInHand += amount
	if p.stack.Amount() == 0 {
		p.status = StatusAllIn
	}

	return nil
}

func (p *Player) fold() {
	p.status = StatusFolded
}

// resetForNewHand clears the player's per-hand state ahead of a deal
func (p *Player) resetForNewHand() {
	p.holeCards = nil
	p.betInHand = 0
	p.lastAction = nil

	if p.stack.Amount() == 0 {
		p.status = StatusSittingOut
		return
	}

	p.status = StatusActive
}

// resetAfterHand returns the player to the between-hands state
func (p *Player) resetAfterHand() {
	p.holeCards = nil
	p.betInHand = 0
	p.lastAction = nil

	if p.stack.Amount() == 0 {
		p.status = StatusSittingOut
		return
	}

	p.status = StatusWaitingForNewHand
}
