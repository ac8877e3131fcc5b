package room

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"holdempoker-server/pkg/holdem"
	"holdempoker-server/pkg/model"
)

// Dealer owns the live hand state for a single table. All engine access
// happens inside the run loop, so the holdem.Table never needs a lock.
type Dealer struct {
	pitBoss  *PitBoss
	table    *model.Table
	game     *holdem.Table
	bankroll Bankroll
	logger   logrus.FieldLogger

	clients map[*Client]bool
	lock    sync.RWMutex

	execInRunLoop chan func()
	stateChanged  chan struct{}
	close         chan bool
}

// NewDealer creates a new dealer for the table
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, tbl *model.Table) (*Dealer, error) {
	logger := logrus.WithFields(logrus.Fields{
		"uuid": tbl.UUID,
		"name": tbl.Name,
	})

	game, err := holdem.NewTable(holdem.Options{
		Name:       tbl.Name,
		MaxSeats:   tbl.MaxSeats,
		SmallBlind: tbl.SmallBlind,
		BigBlind:   tbl.BigBlind,
	}, logger)
	if err != nil {
		return nil, err
	}

	return &Dealer{
		pitBoss:       pitBoss,
		table:         tbl,
		game:          game,
		bankroll:      &databaseBankroll{tableUUID: tbl.UUID},
		logger:        logger,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan struct{}, 256),
		close:         make(chan bool),
	}, nil
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case <-d.stateChanged:
			d.broadcastState()
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.execInRunLoop <- func() {
		if !d.game.HasPlayer(client.player.ID) {
			// a reconnect may already be viewing
			_ = d.game.AddViewer(client.player.ID)
		}
	}
	d.stateChanged <- struct{}{}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) {
	d.lock.Lock()
	delete(d.clients, client)
	d.lock.Unlock()

	d.execInRunLoop <- func() {
		if !d.game.HasPlayer(client.player.ID) && !d.connected(client.player.ID) {
			d.game.RemoveViewer(client.player.ID)
		}
	}
	d.stateChanged <- struct{}{}
}

// connected reports whether any client for the player remains
func (d *Dealer) connected(playerID int64) bool {
	d.lock.RLock()
	defer d.lock.RUnlock()

	for client := range d.clients {
		if client.player.ID == playerID {
			return true
		}
	}

	return false
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	d.execInRunLoop <- func() {
		d.handleMessage(c, msg)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) handleMessage(c *Client, msg *PayloadIn) {
	playerID := c.player.ID
	log := d.logger.WithFields(logrus.Fields{
		"player": playerID,
		"action": msg.Action,
	})

	var err error
	switch msg.Action {
	case "takeSeat":
		err = d.takeSeat(playerID, msg.Seat, msg.Amount)
	case "leave":
		err = d.leave(playerID)
	case "startHand":
		err = d.game.StartNewHand()
	default:
		var action holdem.Action
		if action, err = holdem.ActionFromString(msg.Action); err == nil {
			err = d.game.ProcessPlayerAction(playerID, action, msg.Amount)
		}
	}

	if err != nil {
		log.WithError(err).Debug("rejected client action")
		c.Send(newErrorResponse(msg.Context, err))
		return
	}

	log.Info("performed client action")
	c.Send(OK(msg.Context))
	d.stateChanged <- struct{}{}
}

func (d *Dealer) takeSeat(playerID int64, seat, buyIn int) error {
	if buyIn <= 0 {
		return model.UserError("buy-in must be greater than zero")
	}

	ctx := context.Background()
	if err := d.bankroll.Withdraw(ctx, playerID, buyIn, "buy-in"); err != nil {
		return err
	}

	if err := d.game.TakeSeat(playerID, seat, buyIn); err != nil {
		if derr := d.bankroll.Deposit(ctx, playerID, buyIn, "buy-in refund"); derr != nil {
			d.logger.WithError(derr).WithField("player", playerID).Error("could not refund buy-in")
		}

		return err
	}

	return nil
}

func (d *Dealer) leave(playerID int64) error {
	cashOut, err := d.game.Leave(playerID)
	if err != nil {
		return err
	}

	if cashOut > 0 {
		if err := d.bankroll.Deposit(context.Background(), playerID, cashOut, "cash-out"); err != nil {
			d.logger.WithError(err).WithFields(logrus.Fields{
				"player": playerID,
				"amount": cashOut,
			}).Error("could not credit cash-out")
		}
	}

	// a still-connected player becomes a spectator
	if d.connected(playerID) {
		_ = d.game.AddViewer(playerID)
	}

	return nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) broadcastState() {
	for _, client := range d.Clients() {
		state := d.game.State(client.player.ID)
		if !client.Send(&Response{Key: "state", Data: state}) {
			d.logger.WithField("client", client.String()).Warn("dropped state update")
		}
	}
}
