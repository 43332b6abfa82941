// Package trend computes cross-session development trends: first-vs-last
// rating deltas for one team and theme, and relative-age quartile
// classification from date of birth.
package trend

import (
	"time"

	"github.com/pitchside/platform/internal/domain"
	"github.com/pitchside/platform/internal/rating"
)

// Direction labels a delta after rounding-noise absorption.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// flatBand absorbs floating rounding noise: deltas within ±0.1
// (inclusive) classify as flat.
const flatBand = 0.1

// Delta is the first-vs-last change of one category across a session
// sequence. Undefined when fewer than two sessions define the category.
type Delta struct {
	Value     float64   `json:"value"`
	Defined   bool      `json:"defined"`
	Direction Direction `json:"direction,omitempty"`
	First     float64   `json:"first,omitempty"`
	Last      float64   `json:"last,omitempty"`
}

// Report holds the per-category and overall deltas for a date-ordered
// session sequence.
type Report struct {
	Categories map[domain.Category]Delta `json:"categories"`
	Overall    Delta                     `json:"overall"`
	Sessions   int                       `json:"sessions"`
}

// Analyze computes deltas over aggregates ordered by session date
// ascending. For each category, the first and last sessions where the
// category has samples bound the delta; sessions without samples for
// that category are skipped.
func Analyze(aggregates []rating.SessionAggregate) Report {
	report := Report{
		Categories: make(map[domain.Category]Delta, len(domain.Categories())),
		Sessions:   len(aggregates),
	}

	for _, cat := range domain.Categories() {
		report.Categories[cat] = delta(aggregates, func(a rating.SessionAggregate) rating.Average {
			return a.Categories[cat]
		})
	}
	report.Overall = delta(aggregates, func(a rating.SessionAggregate) rating.Average {
		return a.Overall
	})

	return report
}

// Classify labels a delta value: up above +0.1, down below -0.1, flat in
// the inclusive band between.
func Classify(value float64) Direction {
	switch {
	case value > flatBand:
		return DirectionUp
	case value < -flatBand:
		return DirectionDown
	default:
		return DirectionFlat
	}
}

func delta(aggregates []rating.SessionAggregate, pick func(rating.SessionAggregate) rating.Average) Delta {
	var defined []float64
	for _, agg := range aggregates {
		if avg := pick(agg); avg.Defined() {
			defined = append(defined, avg.Value)
		}
	}
	if len(defined) < 2 {
		return Delta{}
	}

	first, last := defined[0], defined[len(defined)-1]
	value := last - first
	return Delta{
		Value:     value,
		Defined:   true,
		Direction: Classify(value),
		First:     first,
		Last:      last,
	}
}

// Quartile is a relative-age quartile within a January-cohort age group.
type Quartile string

const (
	Q1 Quartile = "Q1" // oldest: born January-March
	Q2 Quartile = "Q2"
	Q3 Quartile = "Q3"
	Q4 Quartile = "Q4" // youngest: born October-December
)

// RelativeAgeQuartile buckets a date of birth by birth month, assuming a
// 1 January cohort cut-off. Depends only on the month, never the year.
func RelativeAgeQuartile(dateOfBirth time.Time) Quartile {
	switch month := dateOfBirth.Month(); {
	case month <= time.March:
		return Q1
	case month <= time.June:
		return Q2
	case month <= time.September:
		return Q3
	default:
		return Q4
	}
}
