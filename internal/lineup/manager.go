// Package lineup maintains the working set of lineup entries for a
// session before they are committed, enforcing the starter cap derived
// from the team's age group.
package lineup

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pitchside/platform/internal/domain"
)

// positionPriority orders starters for formation slot assignment:
// goalkeeper first, then defense, midfield, attack. Unknown or empty
// codes sort last.
var positionPriority = map[string]int{
	"GK": 0,
	"RB": 1, "CB": 2, "LB": 3, "RWB": 4, "LWB": 5,
	"DM": 6, "RM": 7, "CM": 8, "LM": 9, "AM": 10,
	"RW": 11, "LW": 12, "ST": 13, "CF": 14,
}

// formations maps a formation name to its ordered position codes,
// goalkeeper first. Templates exist per squad size (7, 9, 11-a-side).
var formations = map[string][]string{
	// 7-a-side
	"2-3-1": {"GK", "RB", "LB", "RM", "CM", "LM", "ST"},
	"3-2-1": {"GK", "RB", "CB", "LB", "RM", "LM", "ST"},
	// 9-a-side
	"3-3-2": {"GK", "RB", "CB", "LB", "RM", "CM", "LM", "ST", "ST"},
	"3-4-1": {"GK", "RB", "CB", "LB", "RM", "CM", "CM", "LM", "ST"},
	// 11-a-side
	"4-4-2": {"GK", "RB", "CB", "CB", "LB", "RM", "CM", "CM", "LM", "ST", "ST"},
	"4-3-3": {"GK", "RB", "CB", "CB", "LB", "CM", "CM", "CM", "RW", "ST", "LW"},
	"3-5-2": {"GK", "CB", "CB", "CB", "RM", "DM", "CM", "AM", "LM", "ST", "ST"},
}

// FormationNames returns the known formation names for a squad size.
func FormationNames(squadSize int) []string {
	var names []string
	for name, codes := range formations {
		if len(codes) == squadSize {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// RequiredSquadSize is a step function of the numeric age-group band:
// band <= 11 plays 7-a-side, band 12 plays 9-a-side, bands 13-17 play
// 11-a-side. Unparseable labels default to 11-a-side.
func RequiredSquadSize(ageGroupLabel string) int {
	band := ageBand(ageGroupLabel)
	switch {
	case band <= 0:
		return 11
	case band <= 11:
		return 7
	case band == 12:
		return 9
	case band <= 17:
		return 11
	default:
		return 11
	}
}

func ageBand(label string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, label)
	band, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return band
}

// FieldPatch updates individual lineup entry fields. Nil fields are
// left untouched.
type FieldPatch struct {
	Position    *string
	ShirtNumber *int
	IsCaptain   *bool
}

// Manager holds the uncommitted lineup for one session. Not safe for
// concurrent use; one coach drives one lineup at a time.
type Manager struct {
	sessionID uuid.UUID
	required  int
	entries   map[uuid.UUID]*domain.LineupEntry
	order     []uuid.UUID
}

// NewManager creates an empty lineup manager for a session with the
// given required squad size.
func NewManager(sessionID uuid.UUID, requiredSize int) *Manager {
	return &Manager{
		sessionID: sessionID,
		required:  requiredSize,
		entries:   make(map[uuid.UUID]*domain.LineupEntry),
	}
}

// RequiredSize returns the starter count needed for completeness.
func (m *Manager) RequiredSize() int { return m.required }

// AddPlayer inserts a player with no position or shirt assigned.
// Adding a starter beyond the required squad size fails with ROSTER_FULL.
// Adding a player twice fails with a conflict.
func (m *Manager) AddPlayer(playerID uuid.UUID, role domain.LineupRole) error {
	if err := domain.ValidateLineupRole(role); err != nil {
		return err
	}
	if _, exists := m.entries[playerID]; exists {
		return domain.ErrConflict("player already in lineup")
	}
	if role == domain.RoleStarter && m.StarterCount() >= m.required {
		return domain.ErrRosterFull(m.required)
	}

	m.entries[playerID] = &domain.LineupEntry{
		SessionID: m.sessionID,
		PlayerID:  playerID,
		Role:      role,
	}
	m.order = append(m.order, playerID)
	return nil
}

// RemovePlayer drops any existing entry for the player unconditionally.
func (m *Manager) RemovePlayer(playerID uuid.UUID) {
	if _, exists := m.entries[playerID]; !exists {
		return
	}
	delete(m.entries, playerID)
	for i, id := range m.order {
		if id == playerID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// SetField patches position, shirt number or captain flag on an
// existing entry. Shirt-number uniqueness is not validated.
func (m *Manager) SetField(playerID uuid.UUID, patch FieldPatch) error {
	entry, exists := m.entries[playerID]
	if !exists {
		return domain.ErrNotFound("lineup entry", playerID.String())
	}
	if patch.Position != nil {
		entry.Position = *patch.Position
	}
	if patch.ShirtNumber != nil {
		entry.ShirtNumber = patch.ShirtNumber
	}
	if patch.IsCaptain != nil {
		entry.IsCaptain = *patch.IsCaptain
	}
	return nil
}

// ApplyFormation assigns the named formation's position codes to the
// current starters, ordered by their current position code under the
// fixed priority (goalkeeper first, then defense, midfield, attack).
// Starters re-sort on every call, so a second application is idempotent
// only while the starter set is unchanged.
func (m *Manager) ApplyFormation(name string) error {
	codes, ok := formations[name]
	if !ok {
		return domain.ErrValidation("unknown formation: " + name)
	}

	starters := m.starters()
	sort.SliceStable(starters, func(i, j int) bool {
		return m.priority(starters[i].Position) < m.priority(starters[j].Position)
	})

	n := len(starters)
	if len(codes) < n {
		n = len(codes)
	}
	for i := 0; i < n; i++ {
		starters[i].Position = codes[i]
	}
	return nil
}

func (m *Manager) priority(position string) int {
	if p, ok := positionPriority[position]; ok {
		return p
	}
	return len(positionPriority)
}

// StarterCount returns the number of starter entries.
func (m *Manager) StarterCount() int {
	count := 0
	for _, entry := range m.entries {
		if entry.Role == domain.RoleStarter {
			count++
		}
	}
	return count
}

// IsComplete reports whether the starter count equals the required
// squad size exactly.
func (m *Manager) IsComplete() bool {
	return m.StarterCount() == m.required
}

// LoadPrevious wholesale replaces the current lineup with another
// session's committed lineup. Roster membership is not re-validated.
func (m *Manager) LoadPrevious(previous []domain.LineupEntry) {
	m.entries = make(map[uuid.UUID]*domain.LineupEntry, len(previous))
	m.order = m.order[:0]
	for _, entry := range previous {
		copied := entry
		copied.SessionID = m.sessionID
		m.entries[copied.PlayerID] = &copied
		m.order = append(m.order, copied.PlayerID)
	}
}

// Entries returns the lineup in insertion order.
func (m *Manager) Entries() []domain.LineupEntry {
	out := make([]domain.LineupEntry, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.entries[id])
	}
	return out
}

func (m *Manager) starters() []*domain.LineupEntry {
	var out []*domain.LineupEntry
	for _, id := range m.order {
		if entry := m.entries[id]; entry.Role == domain.RoleStarter {
			out = append(out, entry)
		}
	}
	return out
}
