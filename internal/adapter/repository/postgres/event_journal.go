package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/srgjo27/rac_reservation/internal/core/domain"
)

type EventJournal struct {
	db *sql.DB
}

func NewEventJournal(db *sql.DB) *EventJournal {
	return &EventJournal{db: db}
}

func (r *EventJournal) AppendEvents(ctx context.Context, events []domain.ReservationEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	query := `
	INSERT INTO reservation_events (id, run_id, kind, passenger_id, berth_class, seat_label, occurred_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare event statement: %w", err)
	}

	defer stmt.Close()

	for _, ev := range events {
		_, err := stmt.ExecContext(ctx,
			ev.ID,
			ev.RunID,
			string(ev.Kind),
			int64(ev.PassengerID),
			nullString(string(ev.Class)),
			nullString(ev.SeatLabel),
			ev.OccurredAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert event %s: %w", ev.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
