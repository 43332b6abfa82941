package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/platform/internal/domain"
	"github.com/pitchside/platform/internal/repository"
)

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr(id uuid.UUID) *uuid.UUID { return &id }

type fakeSessionRepo struct {
	sessions    map[uuid.UUID]*domain.Session
	details     map[uuid.UUID]*domain.MatchDetails
	scores      map[uuid.UUID]domain.Score
	deleted     []uuid.UUID
	failDetails bool
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions: make(map[uuid.UUID]*domain.Session),
		details:  make(map[uuid.UUID]*domain.MatchDetails),
		scores:   make(map[uuid.UUID]domain.Score),
	}
}

func (f *fakeSessionRepo) Create(_ context.Context, _ repository.DBTX, s *domain.Session) error {
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, _ repository.DBTX, id uuid.UUID) error {
	delete(f.sessions, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSessionRepo) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.Session, error) {
	return f.sessions[id], nil
}

func (f *fakeSessionRepo) ListByTeamAndTheme(context.Context, repository.DBTX, uuid.UUID, string) ([]domain.Session, error) {
	return nil, nil
}

func (f *fakeSessionRepo) ListThemes(context.Context, repository.DBTX, []uuid.UUID, bool) ([]string, error) {
	return nil, nil
}

func (f *fakeSessionRepo) FindPreviousMatch(context.Context, repository.DBTX, uuid.UUID, time.Time) (*domain.Session, error) {
	return nil, nil
}

func (f *fakeSessionRepo) CreateMatchDetails(_ context.Context, _ repository.DBTX, d *domain.MatchDetails) error {
	if f.failDetails {
		return errors.New("details insert failed")
	}
	f.details[d.SessionID] = d
	return nil
}

func (f *fakeSessionRepo) FindMatchDetails(_ context.Context, _ repository.DBTX, sessionID uuid.UUID) (*domain.MatchDetails, error) {
	return f.details[sessionID], nil
}

func (f *fakeSessionRepo) UpdateCachedScore(_ context.Context, _ repository.DBTX, sessionID uuid.UUID, score domain.Score) error {
	f.scores[sessionID] = score
	return nil
}

type fakeEventRepo struct {
	events []domain.MatchEvent
	nextID int64
}

func (f *fakeEventRepo) Insert(_ context.Context, _ repository.DBTX, event *domain.MatchEvent) (*domain.MatchEvent, error) {
	f.nextID++
	stored := *event
	stored.ID = f.nextID
	f.events = append(f.events, stored)
	return &stored, nil
}

func (f *fakeEventRepo) ListBySession(_ context.Context, _ repository.DBTX, sessionID uuid.UUID) ([]domain.MatchEvent, error) {
	var out []domain.MatchEvent
	for _, e := range f.events {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeOutboxRepo struct {
	drafts  []domain.OutboxDraft
	failing bool
}

func (f *fakeOutboxRepo) Insert(_ context.Context, _ repository.DBTX, draft domain.OutboxDraft) error {
	if f.failing {
		return errors.New("outbox insert failed")
	}
	f.drafts = append(f.drafts, draft)
	return nil
}

func (f *fakeOutboxRepo) FetchUnpublished(context.Context, repository.DBTX, int) ([]repository.OutboxRow, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkPublished(context.Context, repository.DBTX, []int64) error {
	return nil
}

func (f *fakeOutboxRepo) byType(t domain.EventType) []domain.OutboxDraft {
	var out []domain.OutboxDraft
	for _, d := range f.drafts {
		if d.EventType == t {
			out = append(out, d)
		}
	}
	return out
}

type fakeRatingRepo struct {
	entries      []domain.RatingEntry
	failCategory domain.Category
}

func (f *fakeRatingRepo) Upsert(_ context.Context, _ repository.DBTX, entry domain.RatingEntry) error {
	if f.failCategory != "" && entry.Category == f.failCategory {
		return errors.New("rating write failed")
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeRatingRepo) ListBySession(_ context.Context, _ repository.DBTX, sessionID uuid.UUID) ([]domain.RatingEntry, error) {
	var out []domain.RatingEntry
	for _, e := range f.entries {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRatingRepo) ListByPlayer(_ context.Context, _ repository.DBTX, playerID uuid.UUID) ([]domain.RatingEntry, error) {
	var out []domain.RatingEntry
	for _, e := range f.entries {
		if e.PlayerID == playerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func scoredGoalEvent(sessionID uuid.UUID, minute int) domain.MatchEvent {
	return domain.MatchEvent{
		SessionID:      sessionID,
		Type:           domain.EventGoal,
		Minute:         minute,
		GoalType:       domain.GoalScored,
		GoalContext:    domain.ContextOpenPlay,
		PlayerID:       ptr(uuid.New()),
		AssistPlayerID: ptr(uuid.New()),
	}
}

func TestRecordEvent_CardBroadcastsDerivedScore(t *testing.T) {
	sessionID := uuid.New()
	sessions := newFakeSessionRepo()
	events := &fakeEventRepo{}
	outbox := &fakeOutboxRepo{}
	svc := &MatchEventService{sessions: sessions, events: events, outbox: outbox, logger: noopLogger()}

	ctx := context.Background()
	goal := scoredGoalEvent(sessionID, 11)
	_, _, err := svc.recordInTx(ctx, nil, &goal)
	require.NoError(t, err)

	card := domain.MatchEvent{
		SessionID: sessionID,
		Type:      domain.EventYellowCard,
		Minute:    30,
		PlayerID:  ptr(uuid.New()),
	}
	stored, score, err := svc.recordInTx(ctx, nil, &card)
	require.NoError(t, err)
	require.NotNil(t, stored)

	// A booking never resets the live score.
	assert.Equal(t, domain.Score{GoalsFor: 1, GoalsAgainst: 0}, score)

	// Only the goal touched the display cache and the score topic.
	assert.Len(t, outbox.byType(domain.EventScoreChanged), 1)
	assert.Len(t, outbox.byType(domain.EventMatchEventRecorded), 2)
	assert.Equal(t, domain.Score{GoalsFor: 1, GoalsAgainst: 0}, sessions.scores[sessionID])
}

func TestRecordEvent_GoalRefreshesScoreCache(t *testing.T) {
	sessionID := uuid.New()
	sessions := newFakeSessionRepo()
	events := &fakeEventRepo{}
	outbox := &fakeOutboxRepo{}
	svc := &MatchEventService{sessions: sessions, events: events, outbox: outbox, logger: noopLogger()}

	conceded := domain.MatchEvent{
		SessionID:   sessionID,
		Type:        domain.EventGoal,
		Minute:      52,
		GoalType:    domain.GoalConceded,
		GoalContext: domain.ContextCorner,
	}
	stored, score, err := svc.recordInTx(context.Background(), nil, &conceded)
	require.NoError(t, err)
	assert.NotZero(t, stored.ID)

	assert.Equal(t, domain.Score{GoalsFor: 0, GoalsAgainst: 1}, score)
	assert.Equal(t, domain.Score{GoalsFor: 0, GoalsAgainst: 1}, sessions.scores[sessionID])
	require.Len(t, outbox.byType(domain.EventScoreChanged), 1)
}

func TestCreateSession_EmitsOutboxEvent(t *testing.T) {
	sessions := newFakeSessionRepo()
	outbox := &fakeOutboxRepo{}
	svc := &SessionService{sessions: sessions, outbox: outbox, logger: noopLogger()}

	created, err := svc.CreateSession(context.Background(), CreateSessionInput{
		TeamID: uuid.New(),
		Date:   time.Now(),
		Kind:   domain.KindTraining,
		Theme:  "pressing",
	})
	require.NoError(t, err)

	drafts := outbox.byType(domain.EventSessionCreated)
	require.Len(t, drafts, 1)
	assert.Equal(t, created.ID.String(), drafts[0].AggregateID)
	assert.Equal(t, created.TeamID.String(), drafts[0].PartitionKey)
}

func TestCreateSession_CompensatesFailedDetails(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.failDetails = true
	outbox := &fakeOutboxRepo{}
	svc := &SessionService{sessions: sessions, outbox: outbox, logger: noopLogger()}

	_, err := svc.CreateSession(context.Background(), CreateSessionInput{
		TeamID: uuid.New(),
		Date:   time.Now(),
		Kind:   domain.KindMatch,
		Match:  &CreateMatchDetails{Opposition: "Rovers", Venue: domain.VenueHome},
	})
	require.Error(t, err)

	assert.Len(t, sessions.deleted, 1, "half-created session must be rolled back")
	assert.Empty(t, sessions.sessions)
	assert.Empty(t, outbox.drafts)
}

func TestCreateSession_CompensatesFailedOutbox(t *testing.T) {
	sessions := newFakeSessionRepo()
	outbox := &fakeOutboxRepo{failing: true}
	svc := &SessionService{sessions: sessions, outbox: outbox, logger: noopLogger()}

	_, err := svc.CreateSession(context.Background(), CreateSessionInput{
		TeamID: uuid.New(),
		Date:   time.Now(),
		Kind:   domain.KindTraining,
	})
	require.Error(t, err)
	assert.Len(t, sessions.deleted, 1)
	assert.Empty(t, sessions.sessions)
}

func TestUpsertRatings_Validation(t *testing.T) {
	svc := &RatingService{ratings: &fakeRatingRepo{}, logger: noopLogger()}
	ctx := context.Background()
	sessionID, coachID, playerID := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name     string
		coachID  uuid.UUID
		values   map[domain.Category]int
		wantCode string
	}{
		{"missing coach", uuid.Nil, map[domain.Category]int{domain.CategoryPassing: 3}, "UNAUTHORIZED"},
		{"empty values", coachID, nil, "VALIDATION_ERROR"},
		{"unknown category", coachID, map[domain.Category]int{"swagger": 3}, "VALIDATION_ERROR"},
		{"value out of range", coachID, map[domain.Category]int{domain.CategoryPassing: 6}, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Upsert(ctx, sessionID, tt.coachID, playerID, tt.values)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, err.(*domain.AppError).Code)
		})
	}
}

func TestWriteRatingEntries_StampsActingCoach(t *testing.T) {
	repo := &fakeRatingRepo{}
	svc := &RatingService{ratings: repo, logger: noopLogger()}
	sessionID, coachID, playerID := uuid.New(), uuid.New(), uuid.New()

	err := svc.writeEntries(context.Background(), nil, sessionID, coachID, playerID,
		map[domain.Category]int{domain.CategoryPassing: 4, domain.CategoryShooting: 5})
	require.NoError(t, err)

	require.Len(t, repo.entries, 2)
	for _, e := range repo.entries {
		assert.Equal(t, coachID, e.CoachID)
		assert.Equal(t, sessionID, e.SessionID)
		assert.Equal(t, playerID, e.PlayerID)
	}
}

func TestWriteRatingEntries_StopsOnWriteFailure(t *testing.T) {
	repo := &fakeRatingRepo{failCategory: domain.CategoryShooting}
	svc := &RatingService{ratings: repo, logger: noopLogger()}

	err := svc.writeEntries(context.Background(), nil, uuid.New(), uuid.New(), uuid.New(),
		map[domain.Category]int{domain.CategoryShooting: 5})
	require.Error(t, err)
	assert.Empty(t, repo.entries)
}
