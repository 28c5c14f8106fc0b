package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hamcrew-club/internal/models"
	"hamcrew-club/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const eventColumns = `id, date, time, location, host_id, host, attendees_ids, attendees_names,
	image_url, created_at, updated_at`

// eventRow - строка events; массивы читаются через pq.StringArray
type eventRow struct {
	ID             string         `db:"id"`
	Date           string         `db:"date"`
	Time           string         `db:"time"`
	Location       string         `db:"location"`
	HostID         string         `db:"host_id"`
	Host           string         `db:"host"`
	AttendeesIDs   pq.StringArray `db:"attendees_ids"`
	AttendeesNames pq.StringArray `db:"attendees_names"`
	ImageURL       string         `db:"image_url"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      *time.Time     `db:"updated_at"`
}

func (row eventRow) toModel() models.Event {
	return models.Event{
		ID:             row.ID,
		Date:           row.Date,
		Time:           row.Time,
		Location:       row.Location,
		HostID:         row.HostID,
		Host:           row.Host,
		AttendeesIDs:   []string(row.AttendeesIDs),
		AttendeesNames: []string(row.AttendeesNames),
		ImageURL:       row.ImageURL,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var row eventRow
	query := `SELECT ` + eventColumns + ` FROM hamcrew.events WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	event := row.toModel()
	return &event, nil
}

func (r *eventRepository) GetByDateRange(ctx context.Context, start, end string) ([]models.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM hamcrew.events
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC, time ASC
	`
	return r.selectEvents(ctx, query, start, end)
}

func (r *eventRepository) GetByAttendee(ctx context.Context, memberID, start, end string) ([]models.Event, error) {
	if start == "" || end == "" {
		query := `
			SELECT ` + eventColumns + `
			FROM hamcrew.events
			WHERE $1 = ANY(attendees_ids)
			ORDER BY date ASC, time ASC
		`
		return r.selectEvents(ctx, query, memberID)
	}
	query := `
		SELECT ` + eventColumns + `
		FROM hamcrew.events
		WHERE $1 = ANY(attendees_ids) AND date >= $2 AND date <= $3
		ORDER BY date ASC, time ASC
	`
	return r.selectEvents(ctx, query, memberID, start, end)
}

func (r *eventRepository) GetByHost(ctx context.Context, hostID, start, end string) ([]models.Event, error) {
	if start == "" || end == "" {
		query := `
			SELECT ` + eventColumns + `
			FROM hamcrew.events
			WHERE host_id = $1
			ORDER BY date ASC, time ASC
		`
		return r.selectEvents(ctx, query, hostID)
	}
	query := `
		SELECT ` + eventColumns + `
		FROM hamcrew.events
		WHERE host_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC, time ASC
	`
	return r.selectEvents(ctx, query, hostID, start, end)
}

func (r *eventRepository) selectEvents(ctx context.Context, query string, args ...interface{}) ([]models.Event, error) {
	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	events := make([]models.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toModel())
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE hamcrew.events
		SET date = $1, time = $2, location = $3, host_id = $4, host = $5,
		    attendees_ids = $6, attendees_names = $7, image_url = $8, updated_at = CURRENT_TIMESTAMP
		WHERE id = $9
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx,
		query,
		event.Date,
		event.Time,
		event.Location,
		event.HostID,
		event.Host,
		pq.Array(event.AttendeesIDs),
		pq.Array(event.AttendeesNames),
		event.ImageURL,
		event.ID,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("update event %s: %w", event.ID, err)
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hamcrew.events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
