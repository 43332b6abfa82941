package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pitchside/platform/internal/domain"
	"github.com/pitchside/platform/internal/repository"
)

// RosterService serves team rosters with fuzzy name search.
type RosterService struct {
	pool   *pgxpool.Pool
	teams  repository.TeamRepository
	logger *slog.Logger
}

// NewRosterService creates a RosterService.
func NewRosterService(pool *pgxpool.Pool, teams repository.TeamRepository, logger *slog.Logger) *RosterService {
	return &RosterService{pool: pool, teams: teams, logger: logger}
}

// Players returns the active roster, fuzzy-filtered by query when one is
// given. Matches are ranked best-first; an empty query returns everyone
// in name order.
func (s *RosterService) Players(ctx context.Context, teamID uuid.UUID, query string) ([]domain.Player, error) {
	team, err := s.teams.FindByID(ctx, s.pool, teamID)
	if err != nil {
		return nil, domain.ErrDependency("find team", err)
	}
	if team == nil {
		return nil, domain.ErrNotFound("team", teamID.String())
	}

	players, err := s.teams.ListPlayers(ctx, s.pool, teamID)
	if err != nil {
		return nil, domain.ErrDependency("list players", err)
	}
	if query == "" {
		if players == nil {
			players = []domain.Player{}
		}
		return players, nil
	}

	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Sort(ranks)

	matched := make([]domain.Player, 0, len(ranks))
	for _, rank := range ranks {
		matched = append(matched, players[rank.OriginalIndex])
	}
	return matched, nil
}

// Player returns one player with a team check, for player-scoped reads.
func (s *RosterService) Player(ctx context.Context, teamID, playerID uuid.UUID) (*domain.Player, error) {
	player, err := s.teams.FindPlayer(ctx, s.pool, playerID)
	if err != nil {
		return nil, domain.ErrDependency("find player", err)
	}
	if player == nil || player.TeamID != teamID {
		return nil, domain.ErrNotFound("player", playerID.String())
	}
	return player, nil
}
