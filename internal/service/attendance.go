package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pitchside/platform/internal/domain"
	"github.com/pitchside/platform/internal/repository"
)

// AttendanceService marks and lists per-session attendance.
type AttendanceService struct {
	pool       *pgxpool.Pool
	sessions   repository.SessionRepository
	attendance repository.AttendanceRepository
}

// NewAttendanceService creates an AttendanceService.
func NewAttendanceService(pool *pgxpool.Pool, sessions repository.SessionRepository,
	attendance repository.AttendanceRepository) *AttendanceService {
	return &AttendanceService{pool: pool, sessions: sessions, attendance: attendance}
}

// Mark upserts one (session, player) attendance record. Resubmitting is
// idempotent: the pair keeps exactly one record with the latest status.
func (s *AttendanceService) Mark(ctx context.Context, sessionID, playerID uuid.UUID, status domain.AttendanceStatus) error {
	if err := domain.ValidateAttendanceStatus(status); err != nil {
		return err
	}

	found, err := s.sessions.FindByID(ctx, s.pool, sessionID)
	if err != nil {
		return domain.ErrDependency("find session", err)
	}
	if found == nil {
		return domain.ErrNotFound("session", sessionID.String())
	}

	record := domain.AttendanceRecord{SessionID: sessionID, PlayerID: playerID, Status: status}
	if err := s.attendance.Upsert(ctx, s.pool, record); err != nil {
		return domain.ErrDependency("upsert attendance", err)
	}
	return nil
}

// List returns the marked records. Players with no record are "not yet
// marked", which callers must not conflate with absent.
func (s *AttendanceService) List(ctx context.Context, sessionID uuid.UUID) ([]domain.AttendanceRecord, error) {
	records, err := s.attendance.ListBySession(ctx, s.pool, sessionID)
	if err != nil {
		return nil, domain.ErrDependency("list attendance", err)
	}
	return records, nil
}
