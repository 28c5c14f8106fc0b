package postgres

import (
	"context"
	"fmt"

	"hamcrew-club/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var counterColumns = map[models.Counter]string{
	models.CounterAttend: "attend_count",
	models.CounterHost:   "host_count",
}

type batchOp func(ctx context.Context, tx *sqlx.Tx) error

// batch копит операции и выполняет их в одной транзакции
type batch struct {
	db  *sqlx.DB
	ops []batchOp
	err error
}

func newBatch(db *sqlx.DB) *batch {
	return &batch{db: db}
}

func (b *batch) CreateEvent(event *models.Event) {
	event.ID = uuid.NewString()
	b.ops = append(b.ops, func(ctx context.Context, tx *sqlx.Tx) error {
		query := `
			INSERT INTO hamcrew.events
			(id, date, time, location, host_id, host, attendees_ids, attendees_names, image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING created_at
		`
		return tx.QueryRowContext(
			ctx,
			query,
			event.ID,
			event.Date,
			event.Time,
			event.Location,
			event.HostID,
			event.Host,
			pq.Array(event.AttendeesIDs),
			pq.Array(event.AttendeesNames),
			event.ImageURL,
		).Scan(&event.CreatedAt)
	})
}

func (b *batch) IncrementCounter(memberID string, counter models.Counter, delta int) {
	column, ok := counterColumns[counter]
	if !ok {
		b.err = fmt.Errorf("unknown counter %q", counter)
		return
	}
	b.ops = append(b.ops, func(ctx context.Context, tx *sqlx.Tx) error {
		// upsert повторяет merge-семантику документной БД
		query := fmt.Sprintf(`
			INSERT INTO hamcrew.members (id, name, %[1]s) VALUES ($1, '', $2)
			ON CONFLICT (id) DO UPDATE SET %[1]s = hamcrew.members.%[1]s + EXCLUDED.%[1]s
		`, column)
		_, err := tx.ExecContext(ctx, query, memberID, delta)
		return err
	})
}

func (b *batch) SetAttendance(attendance *models.Attendance) {
	attendance.ID = models.AttendanceID(attendance.MemberID, attendance.Date)
	b.ops = append(b.ops, func(ctx context.Context, tx *sqlx.Tx) error {
		return tx.QueryRowContext(
			ctx,
			upsertAttendanceQuery,
			attendance.ID,
			attendance.MemberID,
			attendance.Date,
			attendance.EventID,
			attendance.Status,
		).Scan(&attendance.CreatedAt)
	})
}

func (b *batch) Commit(ctx context.Context) error {
	if b.err != nil {
		return b.err
	}

	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}

	for _, op := range b.ops {
		if err := op(ctx, tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("batch write: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}
