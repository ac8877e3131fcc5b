package deck

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func Test_constants(t *testing.T) {
	assert.Equal(t, 11, Jack)
	assert.Equal(t, 12, Queen)
	assert.Equal(t, 13, King)
	assert.Equal(t, 14, Ace)
}

func TestCard_String(t *testing.T) {
	card := Card{
		Rank: 2,
		Suit: Hearts,
	}

	assert.Equal(t, "2♡", card.String())

	card = Card{
		Rank: 11,
		Suit: Clubs,
	}

	assert.Equal(t, "J♣", card.String())

	card = Card{
		Rank: 12,
		Suit: Diamonds,
	}

	assert.Equal(t, "Q♢", card.String())

	card = Card{
		Rank: 13,
		Suit: Spades,
	}

	assert.Equal(t, "K♠", card.String())

	card = Card{
		Rank: 14,
		Suit: Spades,
	}

	assert.Equal(t, "A♠", card.String())
}

func TestCard_AceLowRank(t *testing.T) {
	assert.Equal(t, 1, CardFromString("14s").AceLowRank())
	assert.Equal(t, 13, CardFromString("13s").AceLowRank())
	assert.Equal(t, 2, CardFromString("2s").AceLowRank())
}

func TestCardFromString(t *testing.T) {
	a := assert.New(t)

	a.Equal(Card{Rank: 14, Suit: Spades}, *CardFromString("14s"))
	a.Equal(Card{Rank: 2, Suit: Clubs}, *CardFromString("2c"))
	a.Equal(Card{Rank: 10, Suit: Diamonds}, *CardFromString("10d"))
	a.Equal(Card{Rank: 11, Suit: Hearts}, *CardFromString("11h"))
	a.Nil(CardFromString(""))

	a.PanicsWithValue("could not parse card: 15s", func() {
		CardFromString("15s")
	})

	a.PanicsWithValue("could not parse card: 2x", func() {
		CardFromString("2x")
	})
}

func TestCardsFromString(t *testing.T) {
	a := assert.New(t)

	cards := CardsFromString("2c,14s")
	a.Equal(2, len(cards))
	a.Equal(Card{Rank: 2, Suit: Clubs}, *cards[0])
	a.Equal(Card{Rank: 14, Suit: Spades}, *cards[1])

	a.Equal(0, len(CardsFromString("")))
}

func TestCardsToString(t *testing.T) {
	cards := []*Card{
		{Rank: 2, Suit: Clubs},
		{Rank: 14, Suit: Spades},
		{Rank: 10, Suit: Hearts},
		{Rank: 11, Suit: Diamonds},
	}

	assert.Equal(t, "2c,14s,10h,11d", CardsToString(cards))
	assert.Equal(t, "", CardsToString([]*Card{}))
}
