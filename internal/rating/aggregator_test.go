package rating

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pitchside/platform/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(player, coach uuid.UUID, cat domain.Category, value int) domain.RatingEntry {
	return domain.RatingEntry{PlayerID: player, CoachID: coach, Category: cat, Value: value}
}

func TestPlayerAverages_IgnoresNotAssessed(t *testing.T) {
	player := uuid.New()
	coach := uuid.New()

	avgs := PlayerAverages([]domain.RatingEntry{
		entry(player, coach, domain.CategoryPassing, 0),
		entry(player, coach, domain.CategoryPassing, 0),
		entry(player, coach, domain.CategoryPassing, 3),
		entry(player, coach, domain.CategoryPassing, 5),
	})

	avg := avgs[domain.CategoryPassing]
	require.True(t, avg.Defined())
	assert.Equal(t, 4.0, avg.Value)
	assert.Equal(t, 2, avg.Count)
}

func TestPlayerAverages_AllNotAssessedIsUndefined(t *testing.T) {
	player := uuid.New()
	coach := uuid.New()

	avgs := PlayerAverages([]domain.RatingEntry{
		entry(player, coach, domain.CategoryShooting, 0),
		entry(player, coach, domain.CategoryShooting, 0),
	})

	avg, ok := avgs[domain.CategoryShooting]
	assert.False(t, ok)
	assert.False(t, avg.Defined())
	assert.Zero(t, avg.Value)
}

func TestCoachView_OnlyThatCoach(t *testing.T) {
	player := uuid.New()
	me := uuid.New()
	other := uuid.New()

	avgs := CoachView([]domain.RatingEntry{
		entry(player, me, domain.CategoryFitness, 4),
		entry(player, other, domain.CategoryFitness, 1),
	}, me)

	avg := avgs[domain.CategoryFitness]
	require.True(t, avg.Defined())
	assert.Equal(t, 4.0, avg.Value)
	assert.Equal(t, 1, avg.Count)
}

func TestSessionSummary_TwoLevelAveraging(t *testing.T) {
	// Player A rated 5 by two coaches, player B rated 1 by one coach.
	// The session average must be (5+1)/2 = 3.0, not the flat (5+5+1)/3.
	playerA := uuid.New()
	playerB := uuid.New()
	coach1 := uuid.New()
	coach2 := uuid.New()

	agg := SessionSummary(domain.Session{ID: uuid.New()}, []domain.RatingEntry{
		entry(playerA, coach1, domain.CategoryPassing, 5),
		entry(playerA, coach2, domain.CategoryPassing, 5),
		entry(playerB, coach1, domain.CategoryPassing, 1),
	})

	avg := agg.Categories[domain.CategoryPassing]
	require.True(t, avg.Defined())
	assert.Equal(t, 3.0, avg.Value)
	assert.Equal(t, 2, avg.Count)
	assert.Equal(t, 2, agg.PlayerCount)
}

func TestSessionSummary_CoachDisagreementAveragedWithinPlayer(t *testing.T) {
	player := uuid.New()
	coach1 := uuid.New()
	coach2 := uuid.New()

	agg := SessionSummary(domain.Session{ID: uuid.New()}, []domain.RatingEntry{
		entry(player, coach1, domain.CategoryAttitude, 2),
		entry(player, coach2, domain.CategoryAttitude, 4),
	})

	avg := agg.Categories[domain.CategoryAttitude]
	assert.Equal(t, 3.0, avg.Value)
	assert.Equal(t, 1, avg.Count) // one player contributed
}

func TestOverall_ExcludesUndefinedCategories(t *testing.T) {
	categories := CategoryAverages{
		domain.CategoryPassing:  {Value: 4.0, Count: 2},
		domain.CategoryShooting: {Value: 2.0, Count: 1},
	}

	overall := Overall(categories)
	require.True(t, overall.Defined())
	assert.Equal(t, 3.0, overall.Value)
	assert.Equal(t, 2, overall.Count)
}

func TestOverall_NoDefinedCategories(t *testing.T) {
	overall := Overall(CategoryAverages{})
	assert.False(t, overall.Defined())
}

func TestSessionSummary_EmptyEntries(t *testing.T) {
	agg := SessionSummary(domain.Session{ID: uuid.New()}, nil)
	assert.Empty(t, agg.Categories)
	assert.False(t, agg.Overall.Defined())
	assert.Zero(t, agg.PlayerCount)
}
