package model

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"holdempoker-server/pkg/db"
	"holdempoker-server/pkg/token"
)

// tableCreationCoolDown is how long non-admins must wait before creating another table
const tableCreationCoolDown = time.Minute

const inviteCodeLength = 8

const tableColumns = `
tables.uuid,
tables.name,
tables.player_id,
tables.invite_code,
tables.small_blind,
tables.big_blind,
tables.max_seats,
tables.created`

// TableOptions are the stakes and size of a new table
type TableOptions struct {
	SmallBlind int `json:"smallBlind"`
	BigBlind   int `json:"bigBlind"`
	MaxSeats   int `json:"maxSeats"`
}

// Table is a record in the `tables` table
// The live hand state lives with the dealer; this is only the configuration
type Table struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
	// PlayerID is who created the table
	PlayerID   int64     `json:"playerId"`
	InviteCode string    `json:"inviteCode"`
	SmallBlind int       `json:"smallBlind"`
	BigBlind   int       `json:"bigBlind"`
	MaxSeats   int       `json:"maxSeats"`
	Created    time.Time `json:"created"`
}

// CreateTable creates a new table
func (p *Player) CreateTable(ctx context.Context, name string, opts TableOptions) (*Table, error) {
	if opts.BigBlind <= 0 {
		return nil, UserError("big blind must be greater than zero")
	}

	if opts.SmallBlind <= 0 {
		opts.SmallBlind = opts.BigBlind / 2
	}

	if opts.SmallBlind > opts.BigBlind {
		return nil, UserError("small blind cannot exceed the big blind")
	}

	if opts.MaxSeats <= 0 {
		opts.MaxSeats = 10
	}

	if opts.MaxSeats < 2 || opts.MaxSeats > 10 {
		return nil, UserError("tables seat between 2 and 10 players")
	}

	if err := p.canCreateTable(ctx); err != nil {
		return nil, err
	}

	inviteCode, err := token.Generate(inviteCodeLength)
	if err != nil {
		return nil, err
	}

	u := uuid.New().String()
	const query = `
INSERT INTO tables (uuid, name, player_id, invite_code, small_blind, big_blind, max_seats)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created`

	var created time.Time
	row := db.Instance().QueryRowContext(ctx, query, u, name, p.ID, inviteCode, opts.SmallBlind, opts.BigBlind, opts.MaxSeats)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}

	return &Table{
		UUID:       u,
		Name:       name,
		PlayerID:   p.ID,
		InviteCode: inviteCode,
		SmallBlind: opts.SmallBlind,
		BigBlind:   opts.BigBlind,
		MaxSeats:   opts.MaxSeats,
		Created:    created,
	}, nil
}

// canCreateTable will see if the user is allowed to create a table
// returns nil if the user can create a table
func (p *Player) canCreateTable(ctx context.Context) error {
	// site admins can always create a table
	if p.IsSiteAdmin {
		return nil
	}

	const query = `
SELECT COUNT(*)
FROM tables
WHERE player_id = $1
  AND created >= $2 AT TIME ZONE 'UTC'`

	row := db.Instance().QueryRowContext(ctx, query, p.ID, time.Now().In(time.UTC).Add(tableCreationCoolDown*-1))
	var count int
	if err := row.Scan(&count); err != nil {
		return err
	}

	if count > 0 {
		return UserError("you must wait before you create another table")
	}

	return nil
}

func getTableByRow(row db.Scanner) (*Table, error) {
	var t Table
	if err := row.Scan(&t.UUID, &t.Name, &t.PlayerID, &t.InviteCode, &t.SmallBlind, &t.BigBlind,
		&t.MaxSeats, &t.Created); err != nil {
		return nil, err
	}

	return &t, nil
}

// GetTableByUUID returns a table by its UUID
func GetTableByUUID(ctx context.Context, uuid string) (*Table, error) {
	const query = `
SELECT ` + tableColumns + `
FROM tables
WHERE uuid = $1`

	row := db.Instance().QueryRowContext(ctx, query, uuid)
	return getTableByRow(row)
}

// GetTables returns the most recently created tables
func GetTables(ctx context.Context, offset int64, limit int) ([]*Table, error) {
	const query = `
SELECT ` + tableColumns + `
FROM tables
ORDER BY created DESC
OFFSET $1
LIMIT $2`

	rows, err := db.Instance().QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*Table, 0)
	for rows.Next() {
		tbl, err := getTableByRow(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, tbl)
	}

	return records, nil
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		logrus.WithError(err).Error("could not rollback transaction")
	}
}
