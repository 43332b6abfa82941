package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pitchside/platform/internal/domain"
	"github.com/pitchside/platform/internal/rating"
	"github.com/pitchside/platform/internal/repository"
	"github.com/pitchside/platform/internal/trend"
)

// TrendService serves cross-session reporting: theme listing, rating
// trends and relative-age quartiles.
type TrendService struct {
	pool     *pgxpool.Pool
	sessions repository.SessionRepository
	ratings  repository.RatingRepository
	teams    repository.TeamRepository
	logger   *slog.Logger
}

// NewTrendService creates a TrendService.
func NewTrendService(pool *pgxpool.Pool, sessions repository.SessionRepository,
	ratings repository.RatingRepository, teams repository.TeamRepository, logger *slog.Logger) *TrendService {
	return &TrendService{pool: pool, sessions: sessions, ratings: ratings, teams: teams, logger: logger}
}

// Themes returns the distinct sorted theme labels across the permitted
// teams. Directors pass allTeams; for coaches an empty permitted set
// means no data, not an error.
func (s *TrendService) Themes(ctx context.Context, permittedTeams []uuid.UUID, allTeams bool) ([]string, error) {
	if !allTeams && len(permittedTeams) == 0 {
		return []string{}, nil
	}
	themes, err := s.sessions.ListThemes(ctx, s.pool, permittedTeams, allTeams)
	if err != nil {
		return nil, domain.ErrDependency("list themes", err)
	}
	if themes == nil {
		themes = []string{}
	}
	return themes, nil
}

// TrendReport is the trend query response: session aggregates ordered by
// date plus the first-vs-last deltas.
type TrendReport struct {
	TeamID   uuid.UUID                 `json:"team_id"`
	Theme    string                    `json:"theme"`
	Sessions []rating.SessionAggregate `json:"sessions"`
	Report   trend.Report              `json:"report"`
}

// SessionSummaries aggregates each matching session and analyzes the
// sequence. No matching sessions is an explicit empty result, not an
// error; a missing theme is the caller's fault.
func (s *TrendService) SessionSummaries(ctx context.Context, teamID uuid.UUID, theme string) (*TrendReport, error) {
	if theme == "" {
		return nil, domain.ErrValidation("theme is required")
	}

	team, err := s.teams.FindByID(ctx, s.pool, teamID)
	if err != nil {
		return nil, domain.ErrDependency("find team", err)
	}
	if team == nil {
		return nil, domain.ErrNotFound("team", teamID.String())
	}

	sessions, err := s.sessions.ListByTeamAndTheme(ctx, s.pool, teamID, theme)
	if err != nil {
		return nil, domain.ErrDependency("list sessions", err)
	}

	aggregates := make([]rating.SessionAggregate, 0, len(sessions))
	for _, sess := range sessions {
		entries, err := s.ratings.ListBySession(ctx, s.pool, sess.ID)
		if err != nil {
			return nil, domain.ErrDependency("list session ratings", err)
		}
		aggregates = append(aggregates, rating.SessionSummary(sess, entries))
	}

	return &TrendReport{
		TeamID:   teamID,
		Theme:    theme,
		Sessions: aggregates,
		Report:   trend.Analyze(aggregates),
	}, nil
}

// QuartileBucket groups roster players sharing a relative-age quartile.
type QuartileBucket struct {
	Quartile trend.Quartile  `json:"quartile"`
	Players  []domain.Player `json:"players"`
}

// RelativeAgeBuckets classifies the team's active roster into the four
// birth-month quartiles, oldest first.
func (s *TrendService) RelativeAgeBuckets(ctx context.Context, teamID uuid.UUID) ([]QuartileBucket, error) {
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

	byQuartile := make(map[trend.Quartile][]domain.Player)
	for _, p := range players {
		q := trend.RelativeAgeQuartile(p.DateOfBirth)
		byQuartile[q] = append(byQuartile[q], p)
	}

	buckets := make([]QuartileBucket, 0, 4)
	for _, q := range []trend.Quartile{trend.Q1, trend.Q2, trend.Q3, trend.Q4} {
		buckets = append(buckets, QuartileBucket{Quartile: q, Players: byQuartile[q]})
	}
	return buckets, nil
}
