package history

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"
)

// Postgres writes rounds to the rounds and round_seats tables
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns a new Postgres recorder
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Record inserts the round and its seats in a single transaction
func (p *Postgres) Record(ctx context.Context, round *Round) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	commit := false
	defer func() {
		if !commit {
			if err := tx.Rollback(); err != nil {
				logrus.WithError(err).Error("could not rollback transaction")
			}
		}
	}()

	const query = `
INSERT INTO rounds (uuid, started, ended, dealer_hand, dealer_value)
VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, query, round.UUID, round.Started, round.Ended, round.DealerHand.String(), round.DealerValue); err != nil {
		return err
	}

	const seatQuery = `
INSERT INTO round_seats (round_uuid, session_id, seat, hand, value, blackjack, result, abandoned)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, seat := range round.Seats {
		result := sql.NullString{String: string(seat.Result), Valid: seat.Result != ""}
		if _, err := tx.ExecContext(ctx, seatQuery, round.UUID, int64(seat.SessionID), seat.Seat, seat.Hand.String(), seat.Value, seat.Blackjack, result, seat.Abandoned); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	commit = true
	return nil
}

// Count returns how many rounds are stored
func (p *Postgres) Count(ctx context.Context) (int64, error) {
	var count int64
	row := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rounds`)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
