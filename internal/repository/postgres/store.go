package postgres

import (
	"context"
	_ "embed"

	"hamcrew-club/internal/repository"

	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var Schema string

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Migrate создаёт схему, если её ещё нет
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, Schema)
	return err
}

func (s *Store) Members() repository.MemberRepository         { return NewMemberRepository(s.db) }
func (s *Store) Events() repository.EventRepository           { return NewEventRepository(s.db) }
func (s *Store) Attendances() repository.AttendanceRepository { return NewAttendanceRepository(s.db) }
func (s *Store) NewBatch() repository.Batch                   { return newBatch(s.db) }

func (s *Store) Close(ctx context.Context) error {
	return s.db.Close()
}
