package holdem

import "encoding/json"

// ChipStack is a non-negative amount of chips. Every chip movement in the engine
// goes through one.
type ChipStack struct {
	amount int
}

// NewChipStack returns a chip stack with the given starting amount
func NewChipStack(amount int) *ChipStack {
	if amount < 0 {
		panic("chip stack cannot start negative")
	}

	return &ChipStack{amount: amount}
}

// Amount returns the current amount
func (c *ChipStack) Amount() int {
	return c.amount
}

// Add adds chips to the stack
func (c *ChipStack) Add(amount int) {
	if amount < 0 {
		panic("cannot add a negative amount")
	}

	c.amount += amount
}

// Remove takes chips from the stack. A removal larger than the stack is a rule
// violation and leaves the stack untouched.
func (c *ChipStack) Remove(amount int) error {
	if amount < 0 {
		panic("cannot remove a negative amount")
	}

	if amount > c.amount {
		return newRuleError("you do not have enough chips (have ${%d}, need ${%d})", c.amount, amount)
	}

	c.amount -= amount
	return nil
}

// CanAfford returns true if the stack covers the amount
func (c *ChipStack) CanAfford(amount int) bool {
	return amount <= c.amount
}

// MarshalJSON encodes the stack as its amount
func (c *ChipStack) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.amount)
}
