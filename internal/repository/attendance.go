package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pitchside/platform/internal/domain"
)

type attendanceRepo struct{}

// NewAttendanceRepository returns a pgx-backed AttendanceRepository.
func NewAttendanceRepository() AttendanceRepository {
	return &attendanceRepo{}
}

// Upsert is keyed by (session, player): resubmitting the same pair
// leaves exactly one record with the latest status.
func (r *attendanceRepo) Upsert(ctx context.Context, db DBTX, record domain.AttendanceRecord) error {
	_, err := db.Exec(ctx, `
		INSERT INTO attendance (session_id, player_id, status, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (session_id, player_id)
		DO UPDATE SET status = EXCLUDED.status, updated_at = now()`,
		record.SessionID, record.PlayerID, string(record.Status))
	if err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

func (r *attendanceRepo) ListBySession(ctx context.Context, db DBTX, sessionID uuid.UUID) ([]domain.AttendanceRecord, error) {
	rows, err := db.Query(ctx, `
		SELECT session_id, player_id, status, updated_at
		FROM attendance WHERE session_id = $1 ORDER BY player_id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	var records []domain.AttendanceRecord
	for rows.Next() {
		var rec domain.AttendanceRecord
		if err := rows.Scan(&rec.SessionID, &rec.PlayerID, &rec.Status, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
