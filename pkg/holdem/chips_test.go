package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChipStack(t *testing.T) {
	a := assert.New(t)

	stack := NewChipStack(100)
	a.Equal(100, stack.Amount())

	stack.Add(50)
	a.Equal(150, stack.Amount())

	a.NoError(stack.Remove(150))
	a.Equal(0, stack.Amount())

	err := stack.Remove(1)
	a.Error(err)
	a.IsType(RuleError(""), err)
	a.Equal(0, stack.Amount())

	stack.Add(25)
	a.True(stack.CanAfford(25))
	a.False(stack.CanAfford(26))
}

func TestChipStack_invariants(t *testing.T) {
	a := assert.New(t)

	a.Panics(func() { NewChipStack(-1) })
	a.Panics(func() { NewChipStack(10).Add(-1) })
	a.Panics(func() { _ = NewChipStack(10).Remove(-1) })
}
