package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionFromString(t *testing.T) {
	a := assert.New(t)

	action, err := ActionFromString("raise")
	a.NoError(err)
	a.Equal(Raise, action)

	_, err = ActionFromString("splash-the-pot")
	a.EqualError(err, "unknown action for identifier: splash-the-pot")
}

func TestAction_String(t *testing.T) {
	a := assert.New(t)

	a.Equal("Fold", Fold.String())
	a.Equal("All-in", AllIn.String())
	a.True(Check.IsValid())
	a.False(Action("bogus").IsValid())

	a.Equal("raised to ${50}", Raise.LogMessage(50))
	a.Equal("checked", Check.LogMessage(0))
}
