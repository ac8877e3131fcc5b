package holdem

import (
	"github.com/sirupsen/logrus"
)

// RoundStatus is the status of a betting round
type RoundStatus string

// round status constants
const (
	RoundInProgress      RoundStatus = "inProgress"
	RoundCompleted       RoundStatus = "completed"
	RoundNoActivePlayers RoundStatus = "noActivePlayers"
)

// LegalAction is an action hint for the in-turn player
type LegalAction struct {
	Action Action `json:"action"`

	// Amount is the amount needed to call, or the minimum total for a bet
	// or raise. Zero when the action carries no amount.
	Amount int `json:"amount,omitempty"`
}

// BettingRound drives a single street of wagering. The turn order is fixed at
// construction; the round closes once the action returns to the opener or last
// raiser with every active player's contribution matching the current bet.
type BettingRound struct {
	players    []*Player
	indexes    map[int64]int
	pot        *Pot
	smallBlind int
	bigBlind   int
	logger     logrus.FieldLogger

	contributions map[int64]int
	currentMax    int
	lastRaise     int
	turnIndex     int
	closingIndex  int
	status        RoundStatus
	started       bool
	collected     bool
}

// NewBettingRound returns a betting round for the players in the given turn
// order. For pre-flop the order must start with the small blind; post-flop it
// must start with the first active seat left of the dealer.
func NewBettingRound(players []*Player, pot *Pot, smallBlind, bigBlind int, logger logrus.FieldLogger) *BettingRound {
	if len(players) < 2 {
		panic("a betting round requires at least two players")
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	indexes := make(map[int64]int, len(players))
	for i, player := range players {
		indexes[player.ID()] = i
	}

	return &BettingRound{
		players:       players,
		indexes:       indexes,
		pot:           pot,
		smallBlind:    smallBlind,
		bigBlind:      bigBlind,
		logger:        logger,
		contributions: make(map[int64]int),
		status:        RoundInProgress,
	}
}

// Start begins the round. Pre-flop the first two players post the blinds,
// forced all-in if they cannot cover them, and the action starts under the gun;
// post-flop the action starts at the head of the turn order.
func (r *BettingRound) Start(preFlop bool) {
	if r.started {
		panic("betting round already started")
	}
	r.started = true

	firstActor := 0
	if preFlop {
		r.postBlind(r.players[0], r.smallBlind)
		r.postBlind(r.players[1], r.bigBlind)

		r.currentMax = r.bigBlind
		r.lastRaise = r.bigBlind

		firstActor = 2 % len(r.players)
	}

	r.closingIndex = firstActor
	r.turnIndex = firstActor

	if !r.players[firstActor].CanAct() {
		r.advanceTurn()
	}
}

// postBlind posts a forced blind, going all-in when the stack cannot cover it
func (r *BettingRound) postBlind(player *Player, amount int) {
	if stack := player.Stack().Amount(); amount > stack {
		amount = stack
	}

	r.contribute(player, amount)

	r.logger.WithFields(logrus.Fields{
		"playerId": player.ID(),
		"amount":   amount,
	}).Debug("posted blind")
}

// ProcessAction applies an action for the player. A violated precondition
// returns a RuleError and leaves the round untouched.
func (r *BettingRound) ProcessAction(playerID int64, action Action, amount int) error {
	if r.status != RoundInProgress {
		return ErrRoundOver
	}

	index, ok := r.indexes[playerID]
	if !ok {
		return ErrNotInHand
	}

	player := r.players[index]
	switch player.Status() {
	case StatusFolded:
		return newRuleError("you have already folded")
	case StatusAllIn:
		return newRuleError("you are all-in and cannot act")
	}

	if r.turnIndex != index {
		return ErrNotYourTurn
	}

	var err error
	switch action {
	case Fold:
		player.fold()
	case Check:
		err = r.check(player)
	case Call:
		err = r.call(player)
	case Bet:
		err = r.bet(player, amount)
	case Raise:
		err = r.raise(player, amount)
	case AllIn:
		r.allIn(player)
	default:
		return newRuleError("unsupported action: %s", action)
	}

	if err != nil {
		return err
	}

	a := action
	player.lastAction = &a

	r.logger.WithFields(logrus.Fields{
		"playerId": playerID,
		"action":   string(action),
	}).Info(action.LogMessage(r.contributions[playerID]))

	r.advanceTurn()
	return nil
}

func (r *BettingRound) check(player *Player) error {
	if r.contributions[player.ID()] != r.currentMax {
		return ErrCheckLiveBet
	}

	return nil
}

func (r *BettingRound) call(player *Player) error {
	need := r.currentMax - r.contributions[player.ID()]
	if need <= 0 {
		return ErrCallWithoutBet
	}

	if !player.Stack().CanAfford(need) {
		return newRuleError("you cannot afford to call ${%d}", need)
	}

	r.contribute(player, need)
	return nil
}

func (r *BettingRound) bet(player *Player, amount int) error {
	if r.currentMax > 0 {
		return ErrBetWithLiveBet
	}

	if amount <= 0 {
		return newRuleError("your bet must be a positive amount")
	}

	if !player.Stack().CanAfford(amount) {
		return newRuleError("you cannot afford to bet ${%d}", amount)
	}

	r.contribute(player, amount)

	r.currentMax = amount
	r.lastRaise = amount
	r.closingIndex = r.indexes[player.ID()]
	return nil
}

// raise treats amount as the player's new total contribution for the round.
// A raise below the minimum is only allowed when it puts the player all-in,
// and such a short raise does not move the closing point.
func (r *BettingRound) raise(player *Player, amount int) error {
	if r.currentMax == 0 {
		return ErrRaiseWithoutBet
	}

	contribution := r.contributions[player.ID()]
	if amount <= r.currentMax {
		return newRuleError("your raise to ${%d} must exceed the current bet of ${%d}", amount, r.currentMax)
	}

	delta := amount - contribution
	if !player.Stack().CanAfford(delta) {
		return newRuleError("you cannot afford to raise to ${%d}", amount)
	}

	raiseSize := amount - r.currentMax
	isAllIn := delta == player.Stack().Amount()
	if raiseSize < r.MinRaise() && !isAllIn {
		return newRuleError("the minimum raise is ${%d} over the current bet of ${%d}", r.MinRaise(), r.currentMax)
	}

	if raiseSize >= r.MinRaise() {
		r.lastRaise = raiseSize
		r.closingIndex = r.indexes[player.ID()]
	}

	r.contribute(player, delta)
	r.currentMax = amount
	return nil
}

// allIn moves the player's entire stack in. When it outgrows the current bet by
// a full raise it reopens the action; a short all-in raises the amount to call
// without moving the closing point.
func (r *BettingRound) allIn(player *Player) {
	delta := player.Stack().Amount()
	newContribution := r.contributions[player.ID()] + delta

	if newContribution > r.currentMax {
		if raiseSize := newContribution - r.currentMax; raiseSize >= r.MinRaise() {
			r.lastRaise = raiseSize
			r.closingIndex = r.indexes[player.ID()]
		}

		r.currentMax = newContribution
	}

	r.contribute(player, delta)
}

// contribute moves chips from the player's stack into their round contribution.
// The amount must already be validated as affordable.
func (r *BettingRound) contribute(player *Player, amount int) {
	if err := player.wager(amount); err != nil {
		panic(err)
	}

	r.contributions[player.ID()] += amount
}

// advanceTurn moves the action to the next player who can act. The round
// completes when the action returns to the closing point with every active
// player matched, or when nobody is left to act.
func (r *BettingRound) advanceTurn() {
	if r.nonFoldedCount() <= 1 {
		r.status = RoundNoActivePlayers
		return
	}

	n := len(r.players)
	index := r.turnIndex
	for step := 0; step < n; step++ {
		index = (index + 1) % n

		if index == r.closingIndex && r.allActiveMatched() {
			r.status = RoundCompleted
			return
		}

		if r.players[index].CanAct() {
			r.turnIndex = index
			return
		}
	}

	r.status = RoundCompleted
}

func (r *BettingRound) nonFoldedCount() int {
	count := 0
	for _, player := range r.players {
		if player.InHand() {
			count++
		}
	}

	return count
}

func (r *BettingRound) allActiveMatched() bool {
	for _, player := range r.players {
		if player.CanAct() && r.contributions[player.ID()] != r.currentMax {
			return false
		}
	}

	return true
}

// EndRound folds the round's contributions into the pot. The round must have
// reached a terminal status.
func (r *BettingRound) EndRound() error {
	if r.status == RoundInProgress {
		return ErrRoundNotOver
	}

	if r.collected {
		return ErrRoundOver
	}

	r.pot.CollectRound(r.players, r.contributions)
	r.contributions = make(map[int64]int)
	r.collected = true
	return nil
}

// Status returns the round status
func (r *BettingRound) Status() RoundStatus {
	return r.status
}

// CurrentTurn returns the player whose turn it is, or nil once the round is over
func (r *BettingRound) CurrentTurn() *Player {
	if r.status != RoundInProgress {
		return nil
	}

	return r.players[r.turnIndex]
}

// CurrentMax returns the largest round contribution that must be matched
func (r *BettingRound) CurrentMax() int {
	return r.currentMax
}

// MinRaise returns the minimum legal raise size over the current bet
func (r *BettingRound) MinRaise() int {
	if r.lastRaise > r.bigBlind {
		return r.lastRaise
	}

	return r.bigBlind
}

// Contribution returns the amount the player has put in this round
func (r *BettingRound) Contribution(playerID int64) int {
	return r.contributions[playerID]
}

// PendingTotal returns the chips wagered this round but not yet collected
func (r *BettingRound) PendingTotal() int {
	total := 0
	for _, amount := range r.contributions {
		total += amount
	}

	return total
}

// Players returns the round's turn order
func (r *BettingRound) Players() []*Player {
	return r.players
}

// LegalActions returns the actions currently available to the in-turn player,
// or nil when the round is over
func (r *BettingRound) LegalActions() []LegalAction {
	player := r.CurrentTurn()
	if player == nil {
		return nil
	}

	actions := []LegalAction{{Action: Fold}}

	contribution := r.contributions[player.ID()]
	need := r.currentMax - contribution
	stack := player.Stack().Amount()

	if need == 0 {
		actions = append(actions, LegalAction{Action: Check})
	} else if player.Stack().CanAfford(need) {
		actions = append(actions, LegalAction{Action: Call, Amount: need})
	}

	if r.currentMax == 0 {
		minBet := r.bigBlind
		if minBet > stack {
			minBet = stack
		}

		actions = append(actions, LegalAction{Action: Bet, Amount: minBet})
	} else if stack > need {
		actions = append(actions, LegalAction{Action: Raise, Amount: r.currentMax + r.MinRaise()})
	}

	actions = append(actions, LegalAction{Action: AllIn, Amount: stack})
	return actions
}
