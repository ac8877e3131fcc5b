package room

import (
	"context"
	"errors"

	"holdempoker-server/pkg/model"
)

// Bankroll moves chips between a player's off-table balance and the table.
// The dealer performs these transfers around engine calls; the engine itself
// never touches storage.
type Bankroll interface {
	// Withdraw takes amount chips out of the player's balance
	Withdraw(ctx context.Context, playerID int64, amount int, reason string) error

	// Deposit returns amount chips to the player's balance
	Deposit(ctx context.Context, playerID int64, amount int, reason string) error
}

type databaseBankroll struct {
	tableUUID string
}

func (b *databaseBankroll) Withdraw(ctx context.Context, playerID int64, amount int, reason string) error {
	if amount <= 0 {
		return errors.New("amount must be greater than zero")
	}

	_, err := model.AdjustBalance(ctx, playerID, -amount, reason, b.tableUUID)
	return err
}

func (b *databaseBankroll) Deposit(ctx context.Context, playerID int64, amount int, reason string) error {
	if amount <= 0 {
		return errors.New("amount must be greater than zero")
	}

	_, err := model.AdjustBalance(ctx, playerID, amount, reason, b.tableUUID)
	return err
}
