package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pitchside/platform/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// TeamRepository provides access to teams and their rosters.
type TeamRepository interface {
	// FindByID returns a team by ID.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Team, error)

	// ListPlayers returns the active roster ordered by name.
	ListPlayers(ctx context.Context, db DBTX, teamID uuid.UUID) ([]domain.Player, error)

	// FindPlayer returns a player by ID, or nil.
	FindPlayer(ctx context.Context, db DBTX, playerID uuid.UUID) (*domain.Player, error)
}

// SessionRepository provides access to sessions and match details.
type SessionRepository interface {
	// Create inserts a new session.
	Create(ctx context.Context, db DBTX, session *domain.Session) error

	// Delete removes a session. Used only as the compensating step when
	// match-detail persistence fails after the session insert.
	Delete(ctx context.Context, db DBTX, id uuid.UUID) error

	// FindByID returns a session by ID.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Session, error)

	// ListByTeamAndTheme returns the team's sessions with the given
	// theme, ordered by date ascending.
	ListByTeamAndTheme(ctx context.Context, db DBTX, teamID uuid.UUID, theme string) ([]domain.Session, error)

	// ListThemes returns the distinct non-empty themes across the
	// permitted teams, sorted.
	ListThemes(ctx context.Context, db DBTX, teamIDs []uuid.UUID, allTeams bool) ([]string, error)

	// FindPreviousMatch returns the most recent match-kind session for
	// the team strictly before the given date, or nil.
	FindPreviousMatch(ctx context.Context, db DBTX, teamID uuid.UUID, before time.Time) (*domain.Session, error)

	// CreateMatchDetails inserts the match details row.
	CreateMatchDetails(ctx context.Context, db DBTX, details *domain.MatchDetails) error

	// FindMatchDetails returns the match details for a session, or nil.
	FindMatchDetails(ctx context.Context, db DBTX, sessionID uuid.UUID) (*domain.MatchDetails, error)

	// UpdateCachedScore refreshes the display-cache goals columns from
	// the event-log-derived score.
	UpdateCachedScore(ctx context.Context, db DBTX, sessionID uuid.UUID, score domain.Score) error
}

// LineupRepository provides access to committed lineups.
type LineupRepository interface {
	// List returns the committed lineup for a session.
	List(ctx context.Context, db DBTX, sessionID uuid.UUID) ([]domain.LineupEntry, error)

	// Replace supersedes the session's lineup with the given entries.
	// Must run inside the caller's transaction: readers never observe
	// the transient empty lineup between delete and insert.
	Replace(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, entries []domain.LineupEntry) error

	// CountStarters returns the number of committed starter entries.
	CountStarters(ctx context.Context, db DBTX, sessionID uuid.UUID) (int, error)
}

// MatchEventRepository provides access to the append-only match event log.
type MatchEventRepository interface {
	// Insert appends an event and returns the stored row. Events are
	// never updated or deleted.
	Insert(ctx context.Context, db DBTX, event *domain.MatchEvent) (*domain.MatchEvent, error)

	// ListBySession returns events ordered by minute ascending with the
	// insertion-order tie-break.
	ListBySession(ctx context.Context, db DBTX, sessionID uuid.UUID) ([]domain.MatchEvent, error)
}

// RatingRepository provides access to per-coach rating entries.
type RatingRepository interface {
	// Upsert writes one entry keyed by (session, player, coach, category).
	Upsert(ctx context.Context, db DBTX, entry domain.RatingEntry) error

	// ListBySession returns all coaches' entries for a session.
	ListBySession(ctx context.Context, db DBTX, sessionID uuid.UUID) ([]domain.RatingEntry, error)

	// ListByPlayer returns a player's entries across all sessions.
	ListByPlayer(ctx context.Context, db DBTX, playerID uuid.UUID) ([]domain.RatingEntry, error)
}

// AttendanceRepository provides access to attendance records.
type AttendanceRepository interface {
	// Upsert writes the record keyed by (session, player), superseding
	// any earlier status.
	Upsert(ctx context.Context, db DBTX, record domain.AttendanceRecord) error

	// ListBySession returns the marked records for a session.
	ListBySession(ctx context.Context, db DBTX, sessionID uuid.UUID) ([]domain.AttendanceRecord, error)
}

// OutboxRow is an outbox draft with its sequence ID, used by the publisher.
type OutboxRow struct {
	SeqID int64
	domain.OutboxDraft
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event, within the same transaction as the
	// write it describes.
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns pending events for the publisher.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]OutboxRow, error)

	// MarkPublished stamps published_at on delivered events.
	MarkPublished(ctx context.Context, db DBTX, ids []int64) error
}
