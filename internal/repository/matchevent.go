package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pitchside/platform/internal/domain"
)

type matchEventRepo struct{}

// NewMatchEventRepository returns a pgx-backed MatchEventRepository.
func NewMatchEventRepository() MatchEventRepository {
	return &matchEventRepo{}
}

// Insert appends an event. No update or delete exists on this table.
func (r *matchEventRepo) Insert(ctx context.Context, db DBTX, event *domain.MatchEvent) (*domain.MatchEvent, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO match_events
		  (session_id, event_type, minute, player_id, assist_player_id,
		   goal_type, goal_context, is_own_goal, player_in_id, player_out_id,
		   sub_reason, card_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10,
		        NULLIF($11, ''), NULLIF($12, ''), now())
		RETURNING id, created_at`,
		event.SessionID, string(event.Type), event.Minute, event.PlayerID, event.AssistPlayerID,
		string(event.GoalType), string(event.GoalContext), event.IsOwnGoal,
		event.PlayerInID, event.PlayerOutID, string(event.SubReason), event.CardReason)

	stored := *event
	if err := row.Scan(&stored.ID, &stored.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert match event: %w", err)
	}
	return &stored, nil
}

// ListBySession orders by minute with the serial id as the stable
// insertion-order tie-break.
func (r *matchEventRepo) ListBySession(ctx context.Context, db DBTX, sessionID uuid.UUID) ([]domain.MatchEvent, error) {
	rows, err := db.Query(ctx, `
		SELECT id, session_id, event_type, minute, player_id, assist_player_id,
		       COALESCE(goal_type, ''), COALESCE(goal_context, ''), is_own_goal,
		       player_in_id, player_out_id, COALESCE(sub_reason, ''),
		       COALESCE(card_reason, ''), created_at
		FROM match_events
		WHERE session_id = $1
		ORDER BY minute ASC, id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list match events: %w", err)
	}
	defer rows.Close()

	var events []domain.MatchEvent
	for rows.Next() {
		var e domain.MatchEvent
		err := rows.Scan(&e.ID, &e.SessionID, &e.Type, &e.Minute, &e.PlayerID, &e.AssistPlayerID,
			&e.GoalType, &e.GoalContext, &e.IsOwnGoal,
			&e.PlayerInID, &e.PlayerOutID, &e.SubReason, &e.CardReason, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan match event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
