package holdem

import (
	"sort"

	"github.com/sirupsen/logrus"

	"holdempoker-server/internal/rng"
	"holdempoker-server/pkg/deck"
	"holdempoker-server/pkg/holdem/handeval"
)

// Status is the table's lifecycle status
type Status string

// table status constants
const (
	StatusWaitingForPlayers Status = "waitingForPlayers"
	StatusReadyToStart      Status = "readyToStart"
	StatusInProgress        Status = "inProgress"
	StatusGameOver          Status = "gameOver"
)

// Options configures a table
type Options struct {
	Name       string `json:"name"`
	MaxSeats   int    `json:"maxSeats"`
	SmallBlind int    `json:"smallBlind"`
	BigBlind   int    `json:"bigBlind"`

	// Seed makes every shuffle deterministic; leave zero outside of tests
	Seed int64 `json:"-"`
}

// Table runs the hand lifecycle for a single Texas Hold'em table. A Table is
// not safe for concurrent use; the owner must serialize all calls.
type Table struct {
	options Options
	logger  logrus.FieldLogger

	status  Status
	seats   map[int]*Player
	viewers map[int64]bool

	dealerSeat  int
	handNumber  int
	community   deck.Hand
	d           *deck.Deck
	pot         *Pot
	round       *BettingRound
	handPlayers []*Player
	lastPayouts map[int64]int

	// newDeck builds the shuffled deck for each hand; replaceable in tests
	newDeck func() *deck.Deck
}

// NewTable returns a table for the given options
func NewTable(options Options, logger logrus.FieldLogger) (*Table, error) {
	if options.BigBlind <= 0 {
		return nil, newRuleError("the big blind must be a positive amount")
	}

	if options.SmallBlind <= 0 {
		options.SmallBlind = options.BigBlind / 2
	}

	if options.MaxSeats <= 0 {
		options.MaxSeats = 10
	} else if options.MaxSeats < 2 {
		return nil, newRuleError("a table requires at least two seats")
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	table := &Table{
		options: options,
		logger:  logger.WithField("table", options.Name),
		status:  StatusWaitingForPlayers,
		seats:   make(map[int]*Player),
		viewers: make(map[int64]bool),
	}
	table.newDeck = table.shuffledDeck

	return table, nil
}

func (t *Table) shuffledDeck() *deck.Deck {
	d := deck.New()
	if t.options.Seed != 0 {
		d.SetSeed(t.options.Seed + int64(t.handNumber))
	} else {
		d.SetSeed(rng.Crypto{}.Int63())
	}
	d.Shuffle()

	return d
}

// Options returns the table's configuration
func (t *Table) Options() Options {
	return t.options
}

// Status returns the table's lifecycle status
func (t *Table) Status() Status {
	return t.status
}

// HandNumber returns the number of the current hand
func (t *Table) HandNumber() int {
	return t.handNumber
}

// HasPlayer returns true if the player is seated at the table
func (t *Table) HasPlayer(playerID int64) bool {
	return t.playerByID(playerID) != nil
}

// TakeSeat seats the player with the given buy-in already withdrawn from their
// off-table balance by the caller. Any spectator relation is dropped.
func (t *Table) TakeSeat(playerID int64, seatNumber, buyIn int) error {
	if t.status == StatusGameOver {
		return ErrGameOver
	}

	if seatNumber < 1 || seatNumber > t.options.MaxSeats {
		return newRuleError("seat %d does not exist at this table", seatNumber)
	}

	if _, ok := t.seats[seatNumber]; ok {
		return ErrSeatTaken
	}

	if t.playerByID(playerID) != nil {
		return ErrAlreadySeated
	}

	if buyIn <= 0 {
		return newRuleError("the buy-in must be a positive amount")
	}

	t.seats[seatNumber] = newPlayer(playerID, seatNumber, buyIn)
	delete(t.viewers, playerID)

	t.logger.WithFields(logrus.Fields{
		"playerId": playerID,
		"seat":     seatNumber,
		"buyIn":    buyIn,
	}).Info("player took a seat")

	if t.status != StatusInProgress {
		t.recomputeStatus()
	}

	return nil
}

// Leave removes the player from the table and returns the stack to cash out.
// A player still in a live hand must finish it first.
func (t *Table) Leave(playerID int64) (int, error) {
	player := t.playerByID(playerID)
	if player == nil {
		return 0, ErrPlayerNotAtTable
	}

	if t.status == StatusInProgress && player.InHand() {
		return 0, ErrLeaveMidHand
	}

	delete(t.seats, player.SeatNumber())
	cashOut := player.Stack().Amount()

	t.logger.WithFields(logrus.Fields{
		"playerId": playerID,
		"cashOut":  cashOut,
	}).Info("player left the table")

	if t.status != StatusInProgress {
		t.recomputeStatus()
	}

	return cashOut, nil
}

// AddViewer registers a spectator. Seated players cannot also view.
func (t *Table) AddViewer(playerID int64) error {
	if t.playerByID(playerID) != nil {
		return ErrSeatedAsViewer
	}

	if t.viewers[playerID] {
		return ErrAlreadyViewing
	}

	t.viewers[playerID] = true
	return nil
}

// RemoveViewer drops a spectator
func (t *Table) RemoveViewer(playerID int64) {
	delete(t.viewers, playerID)
}

// StartNewHand deals a fresh hand: the button moves to the next funded seat,
// every funded player is dealt two cards, and the pre-flop betting round starts
// with the blinds posted.
func (t *Table) StartNewHand() error {
	switch t.status {
	case StatusInProgress:
		return ErrHandInProgress
	case StatusGameOver:
		return ErrGameOver
	case StatusWaitingForPlayers:
		return ErrNotEnoughPlayers
	}

	eligible := t.fundedInSeatOrder()
	if len(eligible) < 2 {
		return ErrNotEnoughPlayers
	}

	t.handNumber++

	for _, player := range t.seatedInOrder() {
		player.resetForNewHand()
	}

	t.advanceDealer(eligible)

	t.d = t.newDeck()
	t.community = deck.Hand{}
	t.pot = NewPot()
	t.lastPayouts = nil
	t.handPlayers = eligible

	// two hole cards each, one at a time, starting left of the dealer
	dealOrder := t.orderFromDealer(eligible)
	for i := 0; i < 2; i++ {
		for _, player := range dealOrder {
			card, err := t.d.Draw()
			if err != nil {
				panic(err)
			}

			player.dealCard(card)
		}
	}

	t.logger.WithFields(logrus.Fields{
		"handNumber": t.handNumber,
		"dealerSeat": t.dealerSeat,
		"players":    len(eligible),
	}).Info("hand started")

	round := NewBettingRound(t.preFlopOrder(eligible), t.pot, t.options.SmallBlind, t.options.BigBlind, t.logger)
	t.round = round
	t.status = StatusInProgress
	round.Start(true)

	// the blinds can force everyone all-in before anyone acts
	t.advanceIfRoundOver()
	return nil
}

// ProcessPlayerAction forwards a player's action to the live betting round and
// advances the hand when the round reaches a terminal status
func (t *Table) ProcessPlayerAction(playerID int64, action Action, amount int) error {
	if t.status != StatusInProgress || t.round == nil {
		return ErrNoActiveRound
	}

	if err := t.round.ProcessAction(playerID, action, amount); err != nil {
		return err
	}

	t.advanceIfRoundOver()
	return nil
}

func (t *Table) advanceIfRoundOver() {
	if t.round != nil && t.round.Status() != RoundInProgress {
		t.finishRound()
	}
}

// finishRound collects the completed round into the pot and advances the hand:
// an immediate payout on a fold-out, the next street otherwise, running the
// board out without betting when fewer than two players can still act.
func (t *Table) finishRound() {
	if err := t.round.EndRound(); err != nil {
		panic(err)
	}
	t.round = nil

	if winner := t.soleRemainingPlayer(); winner != nil {
		t.payoutFoldOut(winner)
		return
	}

	for {
		if len(t.community) == 5 {
			t.showdown()
			return
		}

		t.dealStreet()

		canAct := t.orderFromDealer(t.playersWhoCanAct())
		if len(canAct) >= 2 {
			round := NewBettingRound(canAct, t.pot, t.options.SmallBlind, t.options.BigBlind, t.logger)
			t.round = round
			round.Start(false)
			return
		}
	}
}

// dealStreet burns a card and reveals the flop, turn, or river
func (t *Table) dealStreet() {
	if _, err := t.d.Draw(); err != nil {
		panic(err)
	}

	reveal := 1
	if len(t.community) == 0 {
		reveal = 3
	}

	for i := 0; i < reveal; i++ {
		card, err := t.d.Draw()
		if err != nil {
			panic(err)
		}

		t.community.AddCard(card)
	}

	t.logger.WithField("community", t.community.String()).Info("community cards dealt")
}

// showdown evaluates every remaining hand and pays each pot to its winners
func (t *Table) showdown() {
	results := make(map[int64]*handeval.Result)
	for _, player := range t.handPlayers {
		if !player.InHand() {
			continue
		}

		result, err := handeval.Evaluate(player.holeCards, t.community)
		if err != nil {
			panic(err)
		}

		results[player.ID()] = result
	}

	remainderOrder := make([]int64, 0, len(t.handPlayers))
	for _, player := range t.orderFromDealer(t.handPlayers) {
		remainderOrder = append(remainderOrder, player.ID())
	}

	payouts := t.pot.Distribute(results, remainderOrder)
	for playerID, amount := range payouts {
		t.playerByID(playerID).Stack().Add(amount)

		t.logger.WithFields(logrus.Fields{
			"playerId": playerID,
			"amount":   amount,
			"hand":     results[playerID].String(),
		}).Info("pot paid out")
	}

	t.lastPayouts = payouts
	t.endHand()
}

// payoutFoldOut pays the whole pot to the last player standing without
// revealing or evaluating any hands
func (t *Table) payoutFoldOut(winner *Player) {
	amount := t.pot.Total()
	winner.Stack().Add(amount)

	t.logger.WithFields(logrus.Fields{
		"playerId": winner.ID(),
		"amount":   amount,
	}).Info("pot paid out on fold-out")

	t.lastPayouts = map[int64]int{winner.ID(): amount}
	t.endHand()
}

// endHand clears the per-hand state and returns the table to a between-hands
// status
func (t *Table) endHand() {
	t.community = nil
	t.d = nil
	t.pot = nil
	t.round = nil
	t.handPlayers = nil

	for _, player := range t.seatedInOrder() {
		player.resetAfterHand()
	}

	t.status = StatusWaitingForPlayers
	t.recomputeStatus()

	t.logger.WithField("handNumber", t.handNumber).Info("hand ended")
}

func (t *Table) recomputeStatus() {
	seated := len(t.seats)
	funded := len(t.fundedInSeatOrder())

	switch {
	case seated < 2:
		t.status = StatusWaitingForPlayers
	case funded < 2:
		t.status = StatusGameOver
	default:
		t.status = StatusReadyToStart
	}
}

// soleRemainingPlayer returns the only non-folded player in the hand, or nil
// when the hand is still contested
func (t *Table) soleRemainingPlayer() *Player {
	var winner *Player
	for _, player := range t.handPlayers {
		if !player.InHand() {
			continue
		}

		if winner != nil {
			return nil
		}

		winner = player
	}

	return winner
}

func (t *Table) playerByID(playerID int64) *Player {
	for _, player := range t.seats {
		if player.ID() == playerID {
			return player
		}
	}

	return nil
}

// seatedInOrder returns every seated player in seat-number order
func (t *Table) seatedInOrder() []*Player {
	players := make([]*Player, 0, len(t.seats))
	for _, player := range t.seats {
		players = append(players, player)
	}

	sort.Slice(players, func(i, j int) bool {
		return players[i].SeatNumber() < players[j].SeatNumber()
	})

	return players
}

// fundedInSeatOrder returns the seated players with chips, in seat-number order
func (t *Table) fundedInSeatOrder() []*Player {
	players := make([]*Player, 0, len(t.seats))
	for _, player := range t.seatedInOrder() {
		if player.Stack().Amount() > 0 {
			players = append(players, player)
		}
	}

	return players
}

// playersWhoCanAct returns the hand's players still able to wager, in seat order
func (t *Table) playersWhoCanAct() []*Player {
	players := make([]*Player, 0, len(t.handPlayers))
	for _, player := range t.handPlayers {
		if player.CanAct() {
			players = append(players, player)
		}
	}

	return players
}

// advanceDealer moves the button to the next funded seat, wrapping around
func (t *Table) advanceDealer(eligible []*Player) {
	for _, player := range eligible {
		if player.SeatNumber() > t.dealerSeat {
			t.dealerSeat = player.SeatNumber()
			return
		}
	}

	t.dealerSeat = eligible[0].SeatNumber()
}

// orderFromDealer rotates a seat-ordered list so it starts with the first seat
// left of the dealer
func (t *Table) orderFromDealer(players []*Player) []*Player {
	if len(players) == 0 {
		return players
	}

	split := 0
	for i, player := range players {
		if player.SeatNumber() > t.dealerSeat {
			split = i
			break
		}
	}

	ordered := make([]*Player, 0, len(players))
	ordered = append(ordered, players[split:]...)
	ordered = append(ordered, players[:split]...)

	return ordered
}

// preFlopOrder returns the pre-flop turn order: the small blind first. With two
// players the dealer posts the small blind and acts first.
func (t *Table) preFlopOrder(eligible []*Player) []*Player {
	ordered := t.orderFromDealer(eligible)
	if len(ordered) == 2 {
		return []*Player{ordered[1], ordered[0]}
	}

	return ordered
}
