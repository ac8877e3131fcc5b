// Package handeval picks the best five-card poker hand out of hole and community cards.
package handeval

import (
	"errors"
	"sort"

	"holdempoker-server/pkg/deck"
)

// ErrNotEnoughCards is returned when fewer than five cards are available to evaluate
var ErrNotEnoughCards = errors.New("evaluate requires at least five cards")

// Result is the strength of the best five-card hand
type Result struct {
	Category Category     `json:"category"`
	Cards    []*deck.Card `json:"cards"`

	// tiebreak ranks in comparison order, i.e., for a full house the
	// three-of-a-kind rank comes before the pair rank
	tiebreak []int
}

func (r *Result) String() string {
	return r.Category.String()
}

// Compare returns a positive number if r beats o, a negative number if o beats r,
// and zero when the hands are an exact tie and would split the pot
func (r *Result) Compare(o *Result) int {
	if r.Category != o.Category {
		return int(r.Category) - int(o.Category)
	}

	for i, rank := range r.tiebreak {
		if rank != o.tiebreak[i] {
			return rank - o.tiebreak[i]
		}
	}

	return 0
}

// Evaluate returns the best five-card hand that can be made from the player's hole
// cards plus the community cards. Every five-card subset is ranked and the strongest
// one wins.
func Evaluate(hole, community []*deck.Card) (*Result, error) {
	cards := make([]*deck.Card, 0, len(hole)+len(community))
	cards = append(cards, hole...)
	cards = append(cards, community...)

	if len(cards) < 5 {
		return nil, ErrNotEnoughCards
	}

	var best *Result
	eachCombination(len(cards), 5, func(indexes []int) {
		subset := make([]*deck.Card, 5)
		for i, idx := range indexes {
			subset[i] = cards[idx]
		}

		result := rankFive(subset)
		if best == nil || result.Compare(best) > 0 {
			best = result
		}
	})

	return best, nil
}

// eachCombination calls fn with every k-subset of [0,n) in lexicographic order
func eachCombination(n, k int, fn func(indexes []int)) {
	indexes := make([]int, k)
	for i := range indexes {
		indexes[i] = i
	}

	for {
		fn(indexes)

		// advance the rightmost index that can still move
		i := k - 1
		for i >= 0 && indexes[i] == n-k+i {
			i--
		}

		if i < 0 {
			return
		}

		indexes[i]++
		for j := i + 1; j < k; j++ {
			indexes[j] = indexes[j-1] + 1
		}
	}
}

type sortByRank []*deck.Card

func (s sortByRank) Len() int {
	return len(s)
}

func (s sortByRank) Less(i, j int) bool {
	return s[i].Rank < s[j].Rank
}

func (s sortByRank) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// rankFive ranks exactly five cards
func rankFive(cards []*deck.Card) *Result {
	sorted := make([]*deck.Card, 5)
	copy(sorted, cards)
	sort.Sort(sort.Reverse(sortByRank(sorted)))

	flush := true
	for _, card := range sorted[1:] {
		if card.Suit != sorted[0].Suit {
			flush = false
			break
		}
	}

	straightHigh := straightHighCard(sorted)

	if straightHigh > 0 && flush {
		category := StraightFlush
		if straightHigh == deck.Ace {
			category = RoyalFlush
		}

		return &Result{
			Category: category,
			Cards:    sorted,
			tiebreak: []int{straightHigh},
		}
	}

	groups := groupByRank(sorted)

	switch {
	case groups[0].count == 4:
		return &Result{
			Category: FourOfAKind,
			Cards:    sorted,
			tiebreak: []int{groups[0].rank, groups[1].rank},
		}
	case groups[0].count == 3 && groups[1].count == 2:
		return &Result{
			Category: FullHouse,
			Cards:    sorted,
			tiebreak: []int{groups[0].rank, groups[1].rank},
		}
	case flush:
		return &Result{
			Category: Flush,
			Cards:    sorted,
			tiebreak: ranksOf(sorted),
		}
	case straightHigh > 0:
		return &Result{
			Category: Straight,
			Cards:    sorted,
			tiebreak: []int{straightHigh},
		}
	case groups[0].count == 3:
		return &Result{
			Category: ThreeOfAKind,
			Cards:    sorted,
			tiebreak: []int{groups[0].rank, groups[1].rank, groups[2].rank},
		}
	case groups[0].count == 2 && groups[1].count == 2:
		return &Result{
			Category: TwoPair,
			Cards:    sorted,
			tiebreak: []int{groups[0].rank, groups[1].rank, groups[2].rank},
		}
	case groups[0].count == 2:
		return &Result{
			Category: OnePair,
			Cards:    sorted,
			tiebreak: []int{groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank},
		}
	}

	return &Result{
		Category: HighCard,
		Cards:    sorted,
		tiebreak: ranksOf(sorted),
	}
}

// straightHighCard returns the high card of a straight, or 0 when the five
// cards do not form one. Cards must already be sorted by rank, high first.
// The wheel (A-5-4-3-2) counts with a high card of five.
func straightHighCard(sorted []*deck.Card) int {
	consecutive := true
	for i := 1; i < 5; i++ {
		if sorted[i].Rank != sorted[i-1].Rank-1 {
			consecutive = false
			break
		}
	}

	if consecutive {
		return sorted[0].Rank
	}

	if sorted[0].Rank == deck.Ace &&
		sorted[1].Rank == 5 &&
		sorted[2].Rank == 4 &&
		sorted[3].Rank == 3 &&
		sorted[4].Rank == 2 {
		return 5
	}

	return 0
}

type rankGroup struct {
	rank  int
	count int
}

// groupByRank groups the cards by rank, biggest group first, with ties broken by rank.
// Cards must already be sorted by rank, high first.
func groupByRank(sorted []*deck.Card) []rankGroup {
	groups := make([]rankGroup, 0, 5)
	for _, card := range sorted {
		if n := len(groups); n > 0 && groups[n-1].rank == card.Rank {
			groups[n-1].count++
			continue
		}

		groups = append(groups, rankGroup{rank: card.Rank, count: 1})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].count > groups[j].count
	})

	return groups
}

func ranksOf(cards []*deck.Card) []int {
	ranks := make([]int, len(cards))
	for i, card := range cards {
		ranks[i] = card.Rank
	}

	return ranks
}
