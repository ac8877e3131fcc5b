package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"holdempoker-server/pkg/deck"
	"holdempoker-server/pkg/holdem/handeval"
)

func activePlayer(id int64, seat, stack int) *Player {
	p := newPlayer(id, seat, stack)
	p.resetForNewHand()
	return p
}

func mustEvaluate(t *testing.T, hole, community string) *handeval.Result {
	t.Helper()

	result, err := handeval.Evaluate(deck.CardsFromString(hole), deck.CardsFromString(community))
	assert.NoError(t, err)

	return result
}

func TestPot_singlePot(t *testing.T) {
	a := assert.New(t)

	p1 := activePlayer(1, 1, 500)
	p2 := activePlayer(2, 2, 500)
	a.NoError(p1.wager(100))
	a.NoError(p2.wager(100))

	pot := NewPot()
	pot.CollectRound([]*Player{p1, p2}, map[int64]int{1: 100, 2: 100})

	a.Equal(200, pot.Total())

	pots := pot.Pots()
	a.Equal(1, len(pots))
	a.Equal(200, pots[0].Amount)
	a.Equal(0, pots[0].CapLevel)
	a.Equal([]int64{1, 2}, pots[0].Eligible)
}

func TestPot_sidePotLayering(t *testing.T) {
	a := assert.New(t)

	// A is all-in for 50; B and C each contribute 150
	pA := activePlayer(1, 1, 50)
	pB := activePlayer(2, 2, 500)
	pC := activePlayer(3, 3, 500)

	a.NoError(pA.wager(50))
	a.Equal(StatusAllIn, pA.Status())
	a.NoError(pB.wager(150))
	a.NoError(pC.wager(150))

	pot := NewPot()
	pot.CollectRound([]*Player{pA, pB, pC}, map[int64]int{1: 50, 2: 150, 3: 150})

	a.Equal(350, pot.Total())

	pots := pot.Pots()
	a.Equal(2, len(pots))

	a.Equal(150, pots[0].Amount)
	a.Equal(50, pots[0].CapLevel)
	a.Equal([]int64{1, 2, 3}, pots[0].Eligible)

	a.Equal(200, pots[1].Amount)
	a.Equal(0, pots[1].CapLevel)
	a.Equal([]int64{2, 3}, pots[1].Eligible)
}

func TestPot_foldedChipsStayIn(t *testing.T) {
	a := assert.New(t)

	p1 := activePlayer(1, 1, 500)
	p2 := activePlayer(2, 2, 500)
	p3 := activePlayer(3, 3, 500)

	a.NoError(p1.wager(50))
	p1.fold()
	a.NoError(p2.wager(150))
	a.NoError(p3.wager(150))

	pot := NewPot()
	pot.CollectRound([]*Player{p1, p2, p3}, map[int64]int{1: 50, 2: 150, 3: 150})

	pots := pot.Pots()
	a.Equal(1, len(pots))
	a.Equal(350, pots[0].Amount)
	a.Equal([]int64{2, 3}, pots[0].Eligible)
}

func TestPot_multipleRounds(t *testing.T) {
	a := assert.New(t)

	p1 := activePlayer(1, 1, 500)
	p2 := activePlayer(2, 2, 500)

	pot := NewPot()

	a.NoError(p1.wager(10))
	a.NoError(p2.wager(10))
	pot.CollectRound([]*Player{p1, p2}, map[int64]int{1: 10, 2: 10})

	a.NoError(p1.wager(40))
	a.NoError(p2.wager(40))
	pot.CollectRound([]*Player{p1, p2}, map[int64]int{1: 40, 2: 40})

	a.Equal(100, pot.Total())

	pots := pot.Pots()
	a.Equal(1, len(pots))
	a.Equal(100, pots[0].Amount)
}

func TestPot_Distribute_sidePotEligibility(t *testing.T) {
	a := assert.New(t)

	// A holds the best hand but is only eligible for the main pot
	pA := activePlayer(1, 1, 50)
	pB := activePlayer(2, 2, 500)
	pC := activePlayer(3, 3, 500)

	a.NoError(pA.wager(50))
	a.NoError(pB.wager(150))
	a.NoError(pC.wager(150))

	pot := NewPot()
	pot.CollectRound([]*Player{pA, pB, pC}, map[int64]int{1: 50, 2: 150, 3: 150})

	community := "10s,11s,12s,4c,5d"
	results := map[int64]*handeval.Result{
		1: mustEvaluate(t, "13s,14s", community), // royal flush
		2: mustEvaluate(t, "14c,10c", community), // pair of tens
		3: mustEvaluate(t, "9h,2h", community),   // queen high
	}

	payouts := pot.Distribute(results, []int64{2, 3, 1})

	a.Equal(map[int64]int{
		1: 150,
		2: 200,
	}, payouts)
}

func TestPot_Distribute_remainder(t *testing.T) {
	a := assert.New(t)

	p1 := activePlayer(1, 1, 500)
	p2 := activePlayer(2, 2, 500)
	p3 := activePlayer(3, 3, 500)

	a.NoError(p1.wager(5))
	a.NoError(p2.wager(5))
	a.NoError(p3.wager(5))
	p3.fold()

	pot := NewPot()
	pot.CollectRound([]*Player{p1, p2, p3}, map[int64]int{1: 5, 2: 5, 3: 5})

	// the board plays for both remaining players, so the ${15} pot splits
	// and the odd chip goes to the first winner clockwise from the dealer
	community := "14c,14d,9h,9c,5s"
	results := map[int64]*handeval.Result{
		1: mustEvaluate(t, "2c,3c", community),
		2: mustEvaluate(t, "2d,3d", community),
	}

	payouts := pot.Distribute(results, []int64{3, 2, 1})

	a.Equal(map[int64]int{
		1: 7,
		2: 8,
	}, payouts)
}

func TestPot_Distribute_missingResultPanics(t *testing.T) {
	a := assert.New(t)

	p1 := activePlayer(1, 1, 500)
	p2 := activePlayer(2, 2, 500)
	a.NoError(p1.wager(10))
	a.NoError(p2.wager(10))

	pot := NewPot()
	pot.CollectRound([]*Player{p1, p2}, map[int64]int{1: 10, 2: 10})

	results := map[int64]*handeval.Result{
		1: mustEvaluate(t, "2c,3c", "14c,14d,9h,9c,5s"),
	}

	a.Panics(func() {
		pot.Distribute(results, []int64{1, 2})
	})
}
