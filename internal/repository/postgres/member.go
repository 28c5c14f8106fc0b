package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hamcrew-club/internal/models"
	"hamcrew-club/internal/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const memberColumns = `id, name, birthdate, phone, join_date, gender, status, activity_area, residence,
	memo, exit_date, attend_count, host_count, status_updated_at, created_at, updated_at`

type memberRepository struct {
	db *sqlx.DB
}

func NewMemberRepository(db *sqlx.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	query := `
		INSERT INTO hamcrew.members
		(id, name, birthdate, phone, join_date, gender, status, activity_area, residence,
		 memo, exit_date, attend_count, host_count, status_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at
	`
	return r.db.QueryRowContext(
		ctx,
		query,
		member.ID,
		member.Name,
		member.Birthdate,
		member.Phone,
		member.JoinDate,
		member.Gender,
		member.Status,
		member.ActivityArea,
		member.Residence,
		member.Memo,
		member.ExitDate,
		member.AttendCount,
		member.HostCount,
		member.StatusUpdatedAt,
	).Scan(&member.CreatedAt)
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	var member models.Member
	query := `SELECT ` + memberColumns + ` FROM hamcrew.members WHERE id = $1`
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) GetAll(ctx context.Context) ([]*models.Member, error) {
	var members []*models.Member
	query := `SELECT ` + memberColumns + ` FROM hamcrew.members ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &members, query); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *memberRepository) FindByPhone(ctx context.Context, phone string) ([]*models.Member, error) {
	var members []*models.Member
	query := `SELECT ` + memberColumns + ` FROM hamcrew.members WHERE phone = $1`
	if err := r.db.SelectContext(ctx, &members, query, phone); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	query := `
		UPDATE hamcrew.members
		SET name = $1, birthdate = $2, phone = $3, join_date = $4, gender = $5, status = $6,
		    activity_area = $7, residence = $8, memo = $9, exit_date = $10,
		    status_updated_at = $11, updated_at = CURRENT_TIMESTAMP
		WHERE id = $12
		RETURNING attend_count, host_count, updated_at
	`
	err := r.db.QueryRowContext(
		ctx,
		query,
		member.Name,
		member.Birthdate,
		member.Phone,
		member.JoinDate,
		member.Gender,
		member.Status,
		member.ActivityArea,
		member.Residence,
		member.Memo,
		member.ExitDate,
		member.StatusUpdatedAt,
		member.ID,
	).Scan(&member.AttendCount, &member.HostCount, &member.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("update member %s: %w", member.ID, err)
	}
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hamcrew.members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
