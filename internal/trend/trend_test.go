package trend

import (
	"testing"
	"time"

	"github.com/pitchside/platform/internal/domain"
	"github.com/pitchside/platform/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggWithOverall(value float64, count int) rating.SessionAggregate {
	return rating.SessionAggregate{Overall: rating.Average{Value: value, Count: count}}
}

func TestAnalyze_OverallSkipsUndefinedSessions(t *testing.T) {
	// [undefined, 3.0, undefined, 4.2] => delta +1.2, "up".
	report := Analyze([]rating.SessionAggregate{
		aggWithOverall(0, 0),
		aggWithOverall(3.0, 3),
		aggWithOverall(0, 0),
		aggWithOverall(4.2, 5),
	})

	require.True(t, report.Overall.Defined)
	assert.InDelta(t, 1.2, report.Overall.Value, 1e-9)
	assert.Equal(t, DirectionUp, report.Overall.Direction)
	assert.Equal(t, 3.0, report.Overall.First)
	assert.Equal(t, 4.2, report.Overall.Last)
	assert.Equal(t, 4, report.Sessions)
}

func TestAnalyze_SingleDefinedPointIsUndefined(t *testing.T) {
	report := Analyze([]rating.SessionAggregate{
		aggWithOverall(0, 0),
		aggWithOverall(3.5, 2),
	})

	assert.False(t, report.Overall.Defined)
	assert.Empty(t, report.Overall.Direction)
}

func TestAnalyze_PerCategoryDeltas(t *testing.T) {
	first := rating.SessionAggregate{Categories: rating.CategoryAverages{
		domain.CategoryPassing:  {Value: 2.0, Count: 4},
		domain.CategoryShooting: {Value: 3.0, Count: 2},
	}}
	last := rating.SessionAggregate{Categories: rating.CategoryAverages{
		domain.CategoryPassing: {Value: 3.5, Count: 4},
		// shooting unrated in the last session
	}}

	report := Analyze([]rating.SessionAggregate{first, last})

	passing := report.Categories[domain.CategoryPassing]
	require.True(t, passing.Defined)
	assert.InDelta(t, 1.5, passing.Value, 1e-9)
	assert.Equal(t, DirectionUp, passing.Direction)

	shooting := report.Categories[domain.CategoryShooting]
	assert.False(t, shooting.Defined, "one defined point is not a trend")
}

func TestClassify_ThresholdIsExact(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  Direction
	}{
		{"clearly up", 1.2, DirectionUp},
		{"just above band", 0.10001, DirectionUp},
		{"upper band edge inclusive", 0.1, DirectionFlat},
		{"zero", 0, DirectionFlat},
		{"lower band edge inclusive", -0.1, DirectionFlat},
		{"just below band", -0.10001, DirectionDown},
		{"clearly down", -2.0, DirectionDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.value))
		})
	}
}

func TestRelativeAgeQuartile(t *testing.T) {
	tests := []struct {
		name string
		dob  string
		want Quartile
	}{
		{"february is Q1", "2015-02-10", Q1},
		{"september is Q3", "2015-09-01", Q3},
		{"march boundary stays Q1", "2015-03-31", Q1},
		{"april boundary moves to Q2", "2015-04-01", Q2},
		{"january cohort cutoff", "2015-01-01", Q1},
		{"december is Q4", "2015-12-31", Q4},
		{"july is Q3", "2010-07-15", Q3},
		{"year is irrelevant", "1999-05-20", Q2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dob, err := time.Parse("2006-01-02", tt.dob)
			require.NoError(t, err)
			assert.Equal(t, tt.want, RelativeAgeQuartile(dob))
		})
	}
}
