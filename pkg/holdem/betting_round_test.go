package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestRound(players ...*Player) (*BettingRound, *Pot) {
	pot := NewPot()
	return NewBettingRound(players, pot, 5, 10, nil), pot
}

func TestBettingRound_checkAround(t *testing.T) {
	a := assert.New(t)

	p1 := activePlayer(1, 1, 500)
	p2 := activePlayer(2, 2, 500)
	p3 := activePlayer(3, 3, 500)

	round, pot := newTestRound(p1, p2, p3)
	round.Start(false)

	a.Equal(p1, round.CurrentTurn())
	a.NoError(round.ProcessAction(1, Check, 0))
	a.NoError(round.ProcessAction(2, Check, 0))
	a.Equal(RoundInProgress, round.Status())
	a.NoError(round.ProcessAction(3, Check, 0))

	// three checks close the round with nothing wagered
	a.Equal(RoundCompleted, round.Status())
	a.Equal(0, round.PendingTotal())
	a.Nil(round.CurrentTurn())

	a.NoError(round.EndRound())
	a.Equal(0, pot.Total())
}

func TestBettingRound_betAndCalls(t *testing.T) {
	a := assert.New(t)

	p1 := activePlayer(1, 1, 500)
	p2 := activePlayer(2, 2, 500)
	p3 := activePlayer(3, 3, 500)

	round, pot := newTestRound(p1, p2, p3)
	round.Start(false)

	a.NoError(round.ProcessAction(1, Bet, 50))
	a.Equal(50, round.CurrentMax())
	a.NoError(round.ProcessAction(2, Call, 0))
	a.NoError(round.ProcessAction(3, Call, 0))

	a.Equal(RoundCompleted, round.Status())
	a.Equal(150, round.PendingTotal())
	a.Equal(450, p1.Stack().Amount())
	a.Equal(450, p2.Stack().Amount())
	a.Equal(450, p3.Stack().Amount())

	a.NoError(round.EndRound())
	a.Equal(150, pot.Total())
	a.Equal(0, round.PendingTotal())
}

func TestBettingRound_turnLegality(t *testing.T) {
	a := assert.New(t)

	p1 := activePlayer(1, 1, 500)
	p2 := activePlayer(2, 2, 500)

	round, _ := newTestRound(p1, p2)
	round.Start(false)

	a.Equal(ErrNotYourTurn, round.ProcessAction(2, Check, 0))
	a.Equal(500, p2.Stack().Amount())
	a.Equal(0, round.Contribution(2))
	a.Equal(p1, round.CurrentTurn())

	a.Equal(ErrNotInHand, round.ProcessAction(99, Check, 0))
}

func TestBettingRound_illegalActions(t *testing.T) {
	a := assert.New(t)

	p1 := activePlayer(1, 1, 500)
	p2 := activePlayer(2, 2, 500)
	p3 := activePlayer(3, 3, 500)

	round, _ := newTestRound(p1, p2, p3)
	round.Start(false)

	a.Equal(ErrCallWithoutBet, round.ProcessAction(1, Call, 0))
	a.Equal(ErrRaiseWithoutBet, round.ProcessAction(1, Raise, 50))

	a.NoError(round.ProcessAction(1, Bet, 50))
	a.Equal(ErrCheckLiveBet, round.ProcessAction(2, Check, 0))
	a.Equal(ErrBetWithLiveBet, round.ProcessAction(2, Bet, 100))

	err := round.ProcessAction(2, Bet, 0)
	a.Error(err)

	a.NoError(round.ProcessAction(2, Fold, 0))
	a.Equal(StatusFolded, p2.Status())

	// a folded player can no longer act
	a.EqualError(round.ProcessAction(2, Call, 0), "you have already folded")
}

func TestBettingRound_minRaise(t *testing.T) {
	a := assert.New(t)

	p1 := activePlayer(1, 1, 1000)
	p2 := activePlayer(2, 2, 1000)
	p3 := activePlayer(3, 3, 1000)

	round, _ := newTestRound(p1, p2, p3)
	round.Start(false)

	a.NoError(round.ProcessAction(1, Bet, 50))
	a.Equal(50, round.MinRaise())

	// a raise to 90 is only 40 over the bet; the minimum raise is 50
	err := round.ProcessAction(2, Raise, 90)
	a.Error(err)
	a.IsType(RuleError(""), err)
	a.Equal(1000, p2.Stack().Amount())

	a.NoError(round.ProcessAction(2, Raise, 100))
	a.Equal(100, round.CurrentMax())
	a.Equal(50, round.MinRaise())

	a.Error(round.ProcessAction(3, Raise, 149))
	a.NoError(round.ProcessAction(3, Raise, 150))
	a.Equal(150, round.CurrentMax())
}

func TestBettingRound_raiseReopensAction(t *testing.T) {
	a := assert.New(t)

	p1 := activePlayer(1, 1, 1000)
	p2 := activePlayer(2, 2, 1000)

	round, _ := newTestRound(p1, p2)
	round.Start(false)

	a.NoError(round.ProcessAction(1, Bet, 50))
	a.NoError(round.ProcessAction(2, Raise, 150))
	a.Equal(RoundInProgress, round.Status())
	a.Equal(p1, round.CurrentTurn())

	a.NoError(round.ProcessAction(1, Call, 0))
	a.Equal(RoundCompleted, round.Status())
	a.Equal(300, round.PendingTotal())
}

func TestBettingRound_shortAllInDoesNotReopen(t *testing.T) {
	a := assert.New(t)

	p1 := activePlayer(1, 1, 500)
	p2 := activePlayer(2, 2, 70)

	round, _ := newTestRound(p1, p2)
	round.Start(false)

	a.NoError(round.ProcessAction(1, Bet, 50))

	// p2's all-in raise to 70 is below the minimum raise of 50, allowed
	// only because it is an all-in
	a.NoError(round.ProcessAction(2, Raise, 70))
	a.Equal(StatusAllIn, p2.Status())
	a.Equal(70, round.CurrentMax())

	// p1 only needs to call the short raise; the round then closes without
	// p1 getting a fresh raise
	a.Equal(p1, round.CurrentTurn())
	a.NoError(round.ProcessAction(1, Call, 0))
	a.Equal(RoundCompleted, round.Status())
	a.Equal(140, round.PendingTotal())
}

func TestBettingRound_allInAction(t *testing.T) {
	a := assert.New(t)

	p1 := activePlayer(1, 1, 500)
	p2 := activePlayer(2, 2, 200)
	p3 := activePlayer(3, 3, 500)

	round, _ := newTestRound(p1, p2, p3)
	round.Start(false)

	a.NoError(round.ProcessAction(1, Bet, 50))

	// a full all-in raise reopens the action
	a.NoError(round.ProcessAction(2, AllIn, 0))
	a.Equal(200, round.CurrentMax())
	a.Equal(StatusAllIn, p2.Status())

	a.NoError(round.ProcessAction(3, Call, 0))
	a.Equal(RoundInProgress, round.Status())
	a.Equal(p1, round.CurrentTurn())

	a.NoError(round.ProcessAction(1, Call, 0))
	a.Equal(RoundCompleted, round.Status())
	a.Equal(600, round.PendingTotal())
}

func TestBettingRound_foldOut(t *testing.T) {
	a := assert.New(t)

	p1 := activePlayer(1, 1, 500)
	p2 := activePlayer(2, 2, 500)
	p3 := activePlayer(3, 3, 500)

	round, _ := newTestRound(p1, p2, p3)
	round.Start(false)

	a.NoError(round.ProcessAction(1, Bet, 50))
	a.NoError(round.ProcessAction(2, Fold, 0))
	a.NoError(round.ProcessAction(3, Fold, 0))

	a.Equal(RoundNoActivePlayers, round.Status())
}

func TestBettingRound_preFlopBlinds(t *testing.T) {
	a := assert.New(t)

	p1 := activePlayer(1, 1, 500)
	p2 := activePlayer(2, 2, 500)
	p3 := activePlayer(3, 3, 500)

	round, pot := newTestRound(p1, p2, p3)
	round.Start(true)

	a.Equal(5, round.Contribution(1))
	a.Equal(10, round.Contribution(2))
	a.Equal(10, round.CurrentMax())

	// under the gun acts first
	a.Equal(p3, round.CurrentTurn())
	a.NoError(round.ProcessAction(3, Call, 0))
	a.NoError(round.ProcessAction(1, Call, 0))
	a.Equal(RoundInProgress, round.Status())

	// the big blind has the option
	a.Equal(p2, round.CurrentTurn())
	a.NoError(round.ProcessAction(2, Check, 0))
	a.Equal(RoundCompleted, round.Status())

	a.NoError(round.EndRound())
	a.Equal(30, pot.Total())
}

func TestBettingRound_bigBlindRaiseOption(t *testing.T) {
	a := assert.New(t)

	p1 := activePlayer(1, 1, 500)
	p2 := activePlayer(2, 2, 500)
	p3 := activePlayer(3, 3, 500)

	round, _ := newTestRound(p1, p2, p3)
	round.Start(true)

	a.NoError(round.ProcessAction(3, Call, 0))
	a.NoError(round.ProcessAction(1, Call, 0))
	a.NoError(round.ProcessAction(2, Raise, 20))
	a.Equal(RoundInProgress, round.Status())

	a.NoError(round.ProcessAction(3, Call, 0))
	a.NoError(round.ProcessAction(1, Call, 0))
	a.Equal(RoundCompleted, round.Status())
	a.Equal(60, round.PendingTotal())
}

func TestBettingRound_headsUpBlinds(t *testing.T) {
	a := assert.New(t)

	// heads-up the list starts with the dealer, who posts the small blind
	// and acts first
	p1 := activePlayer(1, 1, 500)
	p2 := activePlayer(2, 2, 500)

	round, _ := newTestRound(p1, p2)
	round.Start(true)

	a.Equal(5, round.Contribution(1))
	a.Equal(10, round.Contribution(2))
	a.Equal(p1, round.CurrentTurn())

	a.NoError(round.ProcessAction(1, Call, 0))
	a.Equal(p2, round.CurrentTurn())
	a.NoError(round.ProcessAction(2, Check, 0))
	a.Equal(RoundCompleted, round.Status())
}

func TestBettingRound_shortBlindForcesAllIn(t *testing.T) {
	a := assert.New(t)

	p1 := activePlayer(1, 1, 3)
	p2 := activePlayer(2, 2, 500)

	round, _ := newTestRound(p1, p2)
	round.Start(true)

	a.Equal(StatusAllIn, p1.Status())
	a.Equal(3, round.Contribution(1))
	a.Equal(10, round.CurrentMax())

	// only the big blind can act; their check closes the round
	a.Equal(p2, round.CurrentTurn())
	a.NoError(round.ProcessAction(2, Check, 0))
	a.Equal(RoundCompleted, round.Status())
}

func TestBettingRound_endRoundBeforeTerminal(t *testing.T) {
	a := assert.New(t)

	p1 := activePlayer(1, 1, 500)
	p2 := activePlayer(2, 2, 500)

	round, _ := newTestRound(p1, p2)
	round.Start(false)

	a.Equal(ErrRoundNotOver, round.EndRound())

	a.NoError(round.ProcessAction(1, Check, 0))
	a.NoError(round.ProcessAction(2, Check, 0))
	a.NoError(round.EndRound())
	a.Equal(ErrRoundOver, round.EndRound())
}

func TestBettingRound_legalActions(t *testing.T) {
	a := assert.New(t)

	p1 := activePlayer(1, 1, 500)
	p2 := activePlayer(2, 2, 500)

	round, _ := newTestRound(p1, p2)
	round.Start(false)

	actions := round.LegalActions()
	a.Equal([]LegalAction{
		{Action: Fold},
		{Action: Check},
		{Action: Bet, Amount: 10},
		{Action: AllIn, Amount: 500},
	}, actions)

	a.NoError(round.ProcessAction(1, Bet, 50))

	actions = round.LegalActions()
	a.Equal([]LegalAction{
		{Action: Fold},
		{Action: Call, Amount: 50},
		{Action: Raise, Amount: 100},
		{Action: AllIn, Amount: 500},
	}, actions)
}
