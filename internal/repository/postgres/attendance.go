package postgres

import (
	"context"

	"hamcrew-club/internal/models"
	"hamcrew-club/internal/repository"

	"github.com/jmoiron/sqlx"
)

const upsertAttendanceQuery = `
	INSERT INTO hamcrew.attendances (id, member_id, date, event_id, status)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE
	SET event_id = EXCLUDED.event_id, status = EXCLUDED.status, created_at = CURRENT_TIMESTAMP
	RETURNING created_at
`

type attendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sqlx.DB) repository.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) GetByMember(ctx context.Context, memberID, start, end string) ([]models.Attendance, error) {
	var list []models.Attendance
	if start == "" || end == "" {
		query := `
			SELECT id, member_id, date, event_id, status, created_at
			FROM hamcrew.attendances
			WHERE member_id = $1
			ORDER BY date ASC
		`
		err := r.db.SelectContext(ctx, &list, query, memberID)
		return list, err
	}

	query := `
		SELECT id, member_id, date, event_id, status, created_at
		FROM hamcrew.attendances
		WHERE member_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`
	err := r.db.SelectContext(ctx, &list, query, memberID, start, end)
	return list, err
}

func (r *attendanceRepository) Set(ctx context.Context, attendance *models.Attendance) error {
	attendance.ID = models.AttendanceID(attendance.MemberID, attendance.Date)
	return r.db.QueryRowContext(
		ctx,
		upsertAttendanceQuery,
		attendance.ID,
		attendance.MemberID,
		attendance.Date,
		attendance.EventID,
		attendance.Status,
	).Scan(&attendance.CreatedAt)
}

func (r *attendanceRepository) Delete(ctx context.Context, memberID, date string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM hamcrew.attendances WHERE id = $1`, models.AttendanceID(memberID, date))
	return err
}
