package holdem

import (
	"errors"
	"fmt"
)

// RuleError is an error caused by a player attempting something the rules forbid.
// These are safe to send back to the originating player and never mutate state.
type RuleError string

func (e RuleError) Error() string {
	return string(e)
}

func newRuleError(format string, a ...interface{}) RuleError {
	return RuleError(fmt.Sprintf(format, a...))
}

// rule errors
var (
	ErrNotYourTurn     = RuleError("it is not your turn")
	ErrNotInHand       = RuleError("you are not in the hand")
	ErrSeatTaken       = RuleError("that seat is already taken")
	ErrAlreadySeated   = RuleError("you are already seated at this table")
	ErrAlreadyViewing  = RuleError("you are already viewing this table")
	ErrSeatedAsViewer  = RuleError("you cannot view a table you are seated at")
	ErrLeaveMidHand    = RuleError("you cannot leave in the middle of a hand")
	ErrCheckLiveBet    = RuleError("you cannot check with an active bet")
	ErrCallWithoutBet  = RuleError("you cannot call without an active bet")
	ErrBetWithLiveBet  = RuleError("there is already a bet; you must raise")
	ErrRaiseWithoutBet = RuleError("there is no bet to raise; you must bet")
)

// programmer-facing errors
var (
	ErrRoundNotOver     = errors.New("betting round is not over")
	ErrRoundOver        = errors.New("betting round is over")
	ErrNoActiveRound    = errors.New("no betting round is active")
	ErrHandInProgress   = errors.New("a hand is in progress")
	ErrNotEnoughPlayers = errors.New("not enough players with chips to start a hand")
	ErrGameOver         = errors.New("the game is over")
	ErrPlayerNotAtTable = errors.New("player is not at the table")
)
