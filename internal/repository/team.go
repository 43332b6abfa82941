package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pitchside/platform/internal/domain"
)

type teamRepo struct{}

// NewTeamRepository returns a pgx-backed TeamRepository.
func NewTeamRepository() TeamRepository {
	return &teamRepo{}
}

func (r *teamRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Team, error) {
	row := db.QueryRow(ctx, `
		SELECT id, name, age_group, created_at FROM teams WHERE id = $1`, id)

	var t domain.Team
	err := row.Scan(&t.ID, &t.Name, &t.AgeGroup, &t.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan team: %w", err)
	}
	return &t, nil
}

func (r *teamRepo) FindPlayer(ctx context.Context, db DBTX, playerID uuid.UUID) (*domain.Player, error) {
	row := db.QueryRow(ctx, `
		SELECT id, team_id, name, date_of_birth, active, created_at
		FROM players WHERE id = $1`, playerID)

	var p domain.Player
	err := row.Scan(&p.ID, &p.TeamID, &p.Name, &p.DateOfBirth, &p.Active, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan player: %w", err)
	}
	return &p, nil
}

func (r *teamRepo) ListPlayers(ctx context.Context, db DBTX, teamID uuid.UUID) ([]domain.Player, error) {
	rows, err := db.Query(ctx, `
		SELECT id, team_id, name, date_of_birth, active, created_at
		FROM players
		WHERE team_id = $1 AND active
		ORDER BY name ASC`, teamID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.ID, &p.TeamID, &p.Name, &p.DateOfBirth, &p.Active, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
