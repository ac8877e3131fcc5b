package holdem

import (
	"fmt"
	"sort"

	"holdempoker-server/pkg/holdem/handeval"
)

// Pot is the cumulative contribution ledger for a single hand. Completed betting
// rounds are folded in with CollectRound; the main/side pot layering is derived
// from the all-in cap levels whenever it is needed.
type Pot struct {
	order         []int64
	contributions map[int64]*potContribution
}

type potContribution struct {
	amount int
	folded bool

	// capLevel is the player's total contribution at the moment they went
	// all-in; zero for players who can still wager
	capLevel int
}

// PotEntry is one layer of the pot breakdown. The top layer has no cap.
type PotEntry struct {
	Amount   int     `json:"amount"`
	CapLevel int     `json:"capLevel"`
	Eligible []int64 `json:"eligible"`
}

// NewPot returns an empty pot
func NewPot() *Pot {
	return &Pot{
		order:         make([]int64, 0),
		contributions: make(map[int64]*potContribution),
	}
}

// CollectRound folds a completed betting round's wagers into the pot.
// players must contain every player dealt into the hand in seat order;
// roundAmounts holds each player's contribution for the round just ended.
func (p *Pot) CollectRound(players []*Player, roundAmounts map[int64]int) {
	for _, player := range players {
		pc, ok := p.contributions[player.ID()]
		if !ok {
			pc = &potContribution{}
			p.contributions[player.ID()] = pc
			p.order = append(p.order, player.ID())
		}

		pc.amount += roundAmounts[player.ID()]

		switch player.Status() {
		case StatusFolded:
			pc.folded = true
		case StatusAllIn:
			pc.capLevel = pc.amount
		}
	}
}

// Total returns the total amount collected into the pot
func (p *Pot) Total() int {
	total := 0
	for _, pc := range p.contributions {
		total += pc.amount
	}

	return total
}

// Pots returns the main and side pot layering. Each distinct all-in cap level
// closes off a layer; contributions above the highest cap form the final,
// uncapped layer. Players below a layer's level are not eligible for it.
func (p *Pot) Pots() []*PotEntry {
	maxAmount := 0
	capSet := make(map[int]bool)
	for _, pc := range p.contributions {
		if pc.amount > maxAmount {
			maxAmount = pc.amount
		}

		if !pc.folded && pc.capLevel > 0 {
			capSet[pc.capLevel] = true
		}
	}

	if maxAmount == 0 {
		return []*PotEntry{}
	}

	levels := make([]int, 0, len(capSet)+1)
	for level := range capSet {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	if len(levels) == 0 || levels[len(levels)-1] < maxAmount {
		levels = append(levels, maxAmount)
	}

	entries := make([]*PotEntry, 0, len(levels))
	prev := 0
	for i, level := range levels {
		amount := 0
		eligible := make([]int64, 0)
		for _, id := range p.order {
			pc := p.contributions[id]

			contrib := pc.amount
			if contrib > level {
				contrib = level
			}

			if contrib > prev {
				amount += contrib - prev
			}

			if !pc.folded && pc.amount >= level {
				eligible = append(eligible, id)
			}
		}

		if amount == 0 {
			prev = level
			continue
		}

		capLevel := level
		if i == len(levels)-1 && !capSet[level] {
			capLevel = 0
		}

		entries = append(entries, &PotEntry{
			Amount:   amount,
			CapLevel: capLevel,
			Eligible: eligible,
		})

		prev = level
	}

	return entries
}

// Distribute determines the payout for every pot layer independently. results
// holds the evaluated hand of every non-folded player; remainderOrder lists the
// player ids clockwise from the dealer and decides who receives the odd chip
// when a split does not divide evenly.
//
// Paying out a pot with no eligible winner, or losing chips to rounding, means
// the ledger is corrupt and panics.
func (p *Pot) Distribute(results map[int64]*handeval.Result, remainderOrder []int64) map[int64]int {
	payouts := make(map[int64]int)

	for _, entry := range p.Pots() {
		winners := make([]int64, 0, len(entry.Eligible))
		var best *handeval.Result
		for _, id := range entry.Eligible {
			result, ok := results[id]
			if !ok {
				panic(fmt.Sprintf("no hand result for eligible player %d", id))
			}

			if best == nil {
				best = result
				winners = append(winners, id)
				continue
			}

			if cmp := result.Compare(best); cmp > 0 {
				best = result
				winners = winners[:0]
				winners = append(winners, id)
			} else if cmp == 0 {
				winners = append(winners, id)
			}
		}

		if len(winners) == 0 {
			panic("pot has no eligible winner")
		}

		share := entry.Amount / len(winners)
		remainder := entry.Amount % len(winners)

		for _, id := range winners {
			payouts[id] += share
		}

		if remainder > 0 {
			payouts[firstInOrder(winners, remainderOrder)] += remainder
		}
	}

	total := 0
	for _, amount := range payouts {
		total += amount
	}

	if total != p.Total() {
		panic(fmt.Sprintf("distributed ${%d} from a pot of ${%d}", total, p.Total()))
	}

	return payouts
}

// firstInOrder returns the first id in order that is present in ids
func firstInOrder(ids []int64, order []int64) int64 {
	present := make(map[int64]bool, len(ids))
	for _, id := range ids {
		present[id] = true
	}

	for _, id := range order {
		if present[id] {
			return id
		}
	}

	// remainderOrder must cover every player in the hand
	panic("no winner found in remainder order")
}
