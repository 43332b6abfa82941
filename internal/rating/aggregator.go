// Package rating reduces raw per-player, per-category ratings into
// averages at coach, player and session granularity. A value of 0 means
// "not assessed" and never contributes to any average.
package rating

import (
	"time"

	"github.com/google/uuid"
	"github.com/pitchside/platform/internal/domain"
)

// Average is a possibly-undefined mean. Count is the number of samples
// that contributed; an Average with Count 0 is undefined, not zero.
type Average struct {
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// Defined reports whether any samples contributed.
func (a Average) Defined() bool { return a.Count > 0 }

// CategoryAverages maps each rated category to its average.
type CategoryAverages map[domain.Category]Average

// SessionAggregate is the derived per-session summary consumed by the
// trend analyzer. Not stored; recomputed from rating entries.
type SessionAggregate struct {
	SessionID   uuid.UUID        `json:"session_id"`
	Date        time.Time        `json:"date"`
	Theme       string           `json:"theme,omitempty"`
	Categories  CategoryAverages `json:"categories"`
	Overall     Average          `json:"overall"`
	PlayerCount int              `json:"player_count"`
}

// CoachView averages one coach's entries per category. Used when a
// session is displayed back to the coach who rated it: other coaches'
// entries are not mixed in.
func CoachView(entries []domain.RatingEntry, coachID uuid.UUID) CategoryAverages {
	scoped := entries[:0:0]
	for _, e := range entries {
		if e.CoachID == coachID {
			scoped = append(scoped, e)
		}
	}
	return flatAverages(scoped)
}

// PlayerAverages pools all coaches' entries for one player scope (one
// session, or across sessions) into flat per-category averages.
func PlayerAverages(entries []domain.RatingEntry) CategoryAverages {
	return flatAverages(entries)
}

// SessionSummary computes the pooled two-level session aggregate: first
// average within each player across coaches, then average those
// per-player results across players. A category rated by two coaches for
// one player therefore carries the same weight as a category rated by
// one coach each for several players.
func SessionSummary(session domain.Session, entries []domain.RatingEntry) SessionAggregate {
	byPlayer := make(map[uuid.UUID][]domain.RatingEntry)
	for _, e := range entries {
		byPlayer[e.PlayerID] = append(byPlayer[e.PlayerID], e)
	}
	perPlayer := make(map[uuid.UUID]CategoryAverages, len(byPlayer))
	for id, playerEntries := range byPlayer {
		perPlayer[id] = flatAverages(playerEntries)
	}

	categories := make(CategoryAverages, len(domain.Categories()))
	for _, cat := range domain.Categories() {
		var sum float64
		var n int
		for _, avgs := range perPlayer {
			if avg, ok := avgs[cat]; ok && avg.Defined() {
				sum += avg.Value
				n++
			}
		}
		if n > 0 {
			categories[cat] = Average{Value: sum / float64(n), Count: n}
		}
	}

	return SessionAggregate{
		SessionID:   session.ID,
		Date:        session.Date,
		Theme:       session.Theme,
		Categories:  categories,
		Overall:     Overall(categories),
		PlayerCount: len(byPlayer),
	}
}

// Overall is the mean of the defined category averages. Categories with
// no samples are excluded, never treated as zero. Count is the number of
// defined categories.
func Overall(categories CategoryAverages) Average {
	var sum float64
	var n int
	for _, avg := range categories {
		if avg.Defined() {
			sum += avg.Value
			n++
		}
	}
	if n == 0 {
		return Average{}
	}
	return Average{Value: sum / float64(n), Count: n}
}

// flatAverages computes the per-category mean of all non-zero values.
func flatAverages(entries []domain.RatingEntry) CategoryAverages {
	sums := make(map[domain.Category]int)
	counts := make(map[domain.Category]int)
	for _, e := range entries {
		if e.Value <= 0 {
			continue
		}
		sums[e.Category] += e.Value
		counts[e.Category]++
	}

	avgs := make(CategoryAverages, len(counts))
	for cat, n := range counts {
		avgs[cat] = Average{Value: float64(sums[cat]) / float64(n), Count: n}
	}
	return avgs
}
