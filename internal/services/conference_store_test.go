package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"confadmin/config"
	"confadmin/internal/domain"
	"confadmin/internal/metrics"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// backendCall is one request seen by fakeConferenceBackend.
type backendCall struct {
	op           string
	conf         *domain.Conference
	currentTitle string
}

// fakeConferenceBackend implements domain.ConferenceBackend for tests. By default every
// post echoes the payload back.
type fakeConferenceBackend struct {
	mu      sync.Mutex
	calls   []backendCall
	err     error
	respond func(op string, conf *domain.Conference) *domain.Conference
	all     []*domain.Conference
	allErr  error
}

func (f *fakeConferenceBackend) post(op string, conf *domain.Conference, currentTitle string) (*domain.Conference, error) {
	f.mu.Lock()
	f.calls = append(f.calls, backendCall{op: op, conf: conf.Clone(), currentTitle: currentTitle})
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.respond != nil {
		return f.respond(op, conf.Clone()), nil
	}
	return conf.Clone(), nil
}

func (f *fakeConferenceBackend) CreateConference(_ context.Context, conf *domain.Conference) (*domain.Conference, error) {
	return f.post(domain.OpCreateConference, conf, "")
}

func (f *fakeConferenceBackend) ChangeActiveConference(_ context.Context, conf *domain.Conference) (*domain.Conference, error) {
	return f.post(domain.OpChangeActiveConference, conf, "")
}

func (f *fakeConferenceBackend) ChangeDefaultConference(_ context.Context, conf *domain.Conference) (*domain.Conference, error) {
	return f.post(domain.OpChangeDefaultConference, conf, "")
}

func (f *fakeConferenceBackend) UpdateConference(_ context.Context, req domain.UpdateConferenceRequest) (*domain.Conference, error) {
	return f.post(domain.OpUpdateConference, req.Conference, req.CurrentTitle)
}

func (f *fakeConferenceBackend) ChangeTimeSlot(_ context.Context, conf *domain.Conference) (*domain.Conference, error) {
	return f.post(domain.OpChangeTimeSlot, conf, "")
}

func (f *fakeConferenceBackend) AddRoom(_ context.Context, conf *domain.Conference) (*domain.Conference, error) {
	return f.post(domain.OpAddRoom, conf, "")
}

func (f *fakeConferenceBackend) UpdateConferenceRooms(_ context.Context, conf *domain.Conference) (*domain.Conference, error) {
	return f.post(domain.OpUpdateConferenceRooms, conf, "")
}

func (f *fakeConferenceBackend) GetAllConferences(_ context.Context) ([]*domain.Conference, error) {
	f.mu.Lock()
	f.calls = append(f.calls, backendCall{op: domain.OpGetAllConferences})
	f.mu.Unlock()
	if f.allErr != nil {
		return nil, f.allErr
	}
	return cloneAll(f.all), nil
}

func (f *fakeConferenceBackend) opCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeConferenceBackend) lastCall(t *testing.T) backendCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls, "expected a backend call")
	return f.calls[len(f.calls)-1]
}

// fakeJournal implements domain.SyncJournal for tests.
type fakeJournal struct {
	mu      sync.Mutex
	entries []*domain.SyncEntry
	err     error
}

func (f *fakeJournal) Record(_ context.Context, entry *domain.SyncEntry) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeJournal) ListRecent(_ context.Context, limit int) ([]*domain.SyncEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries, nil
}

func (f *fakeJournal) ListFailed(_ context.Context, limit int) ([]*domain.SyncEntry, error) {
	return nil, nil
}

// fakeNotifier implements domain.SyncNotifier for tests.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []*domain.SyncFailedEmailData
	err  error
}

func (f *fakeNotifier) NotifySyncFailed(_ context.Context, data *domain.SyncFailedEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, data)
	return f.err
}

type storeFixture struct {
	store    domain.ConferenceService
	backend  *fakeConferenceBackend
	journal  *fakeJournal
	notifier *fakeNotifier
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()
	f := &storeFixture{
		backend:  &fakeConferenceBackend{},
		journal:  &fakeJournal{},
		notifier: &fakeNotifier{},
	}
	f.store = NewConferenceStore(f.backend, ConferenceStoreOptions{
		Journal:  f.journal,
		Notifier: f.notifier,
		Clock:    clockwork.NewFakeClockAt(testNow),
		Logger:   testLogger,
		Timeout:  time.Second,
	})
	return f
}

func (f *storeFixture) create(t *testing.T, titles ...string) {
	t.Helper()
	for _, title := range titles {
		_, err := f.store.CreateConference(context.Background(), title, "2024-05-01", "2024-05-03")
		require.NoError(t, err)
	}
}

func titles(confs []*domain.Conference) []string {
	out := make([]string, len(confs))
	for i, c := range confs {
		out[i] = c.Title
	}
	return out
}

func countFlags(confs []*domain.Conference) (active, def int) {
	for _, c := range confs {
		if c.LastActive {
			active++
		}
		if c.Default {
			def++
		}
	}
	return active, def
}

func TestConferenceStore_CreateConference(t *testing.T) {
	f := newStoreFixture(t)
	f.create(t, "A", "B")

	confs := f.store.Conferences()
	assert.Equal(t, []string{"A", "B"}, titles(confs))
	active, def := countFlags(confs)
	assert.Equal(t, 1, active)
	assert.Equal(t, 1, def)
	assert.True(t, confs[1].LastActive)
	assert.True(t, confs[1].Default)

	assert.Equal(t, "B", f.store.ActiveConference().Title)
	assert.Equal(t, "B", f.store.DefaultConference().Title)

	call := f.backend.lastCall(t)
	assert.Equal(t, domain.OpCreateConference, call.op)
	assert.Equal(t, "B", call.conf.Title)
	assert.Equal(t, domain.DateRange{Start: "2024-05-01", End: "2024-05-03"}, call.conf.DateRange)
	assert.True(t, call.conf.LastActive)
	assert.True(t, call.conf.Default)

	require.Len(t, f.journal.entries, 2)
	assert.Equal(t, domain.SyncStatusOK, f.journal.entries[1].Status)
	assert.Equal(t, "B", f.journal.entries[1].ConferenceTitle)
	assert.Equal(t, testNow, f.journal.entries[1].CreatedAt)
	assert.NotEmpty(t, f.journal.entries[1].RequestID)
}

func TestConferenceStore_CreateConference_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{name: "empty title", title: ""},
		{name: "blank title", title: "   "},
		{name: "duplicate title", title: "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newStoreFixture(t)
			f.create(t, "A")
			calls := f.backend.opCount()

			_, err := f.store.CreateConference(context.Background(), tt.title, "", "")
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, calls, f.backend.opCount())
			assert.Len(t, f.store.Conferences(), 1)
		})
	}
}

func TestConferenceStore_ChangeActiveConf(t *testing.T) {
	f := newStoreFixture(t)
	f.create(t, "A", "B")

	got, err := f.store.ChangeActiveConf(context.Background(), "A")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "A", got.Title)

	assert.Equal(t, "A", f.store.ActiveConference().Title)
	assert.Equal(t, "B", f.store.DefaultConference().Title)

	confs := f.store.Conferences()
	assert.True(t, confs[0].LastActive)
	assert.False(t, confs[1].LastActive)
	assert.False(t, confs[0].Default)
	assert.True(t, confs[1].Default)

	call := f.backend.lastCall(t)
	assert.Equal(t, domain.OpChangeActiveConference, call.op)
	assert.Equal(t, "A", call.conf.Title)
	assert.True(t, call.conf.LastActive)
}

func TestConferenceStore_ChangeDefaultConf(t *testing.T) {
	f := newStoreFixture(t)
	f.create(t, "A", "B")

	_, err := f.store.ChangeDefaultConf(context.Background(), "A")
	require.NoError(t, err)

	assert.Equal(t, "B", f.store.ActiveConference().Title)
	assert.Equal(t, "A", f.store.DefaultConference().Title)
	active, def := countFlags(f.store.Conferences())
	assert.Equal(t, 1, active)
	assert.Equal(t, 1, def)

	call := f.backend.lastCall(t)
	assert.Equal(t, domain.OpChangeDefaultConference, call.op)
	assert.True(t, call.conf.Default)
}

func TestConferenceStore_UnknownConference(t *testing.T) {
	tests := []struct {
		name string
		call func(s domain.ConferenceService) error
	}{
		{"change active", func(s domain.ConferenceService) error {
			_, err := s.ChangeActiveConf(context.Background(), "missing")
			return err
		}},
		{"change default", func(s domain.ConferenceService) error {
			_, err := s.ChangeDefaultConf(context.Background(), "missing")
			return err
		}},
		{"update", func(s domain.ConferenceService) error {
			_, err := s.UpdateConference(context.Background(), "missing", "New", "", "")
			return err
		}},
		{"add timeslot", func(s domain.ConferenceService) error {
			_, err := s.AddTimeslot(context.Background(), "0900", "1000", "missing", "2024-05-01")
			return err
		}},
		{"add room", func(s domain.ConferenceService) error {
			_, err := s.AddRoom(context.Background(), "missing", "Hall")
			return err
		}},
		{"move room", func(s domain.ConferenceService) error {
			_, err := s.MoveRoom(context.Background(), "missing", "Hall", domain.DirectionLater)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newStoreFixture(t)
			f.create(t, "A")
			calls := f.backend.opCount()

			err := tt.call(f.store)
			require.ErrorIs(t, err, domain.ErrNotFound)
			assert.Contains(t, err.Error(), "missing")
			assert.Equal(t, calls, f.backend.opCount())
		})
	}
}

func TestConferenceStore_UpdateConference(t *testing.T) {
	f := newStoreFixture(t)
	f.create(t, "A")

	got, err := f.store.UpdateConference(context.Background(), "A", "A2", "2024-06-01", "2024-06-02")
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Title)

	call := f.backend.lastCall(t)
	assert.Equal(t, domain.OpUpdateConference, call.op)
	assert.Equal(t, "A", call.currentTitle)
	assert.Equal(t, "A2", call.conf.Title)
	assert.Equal(t, domain.DateRange{Start: "2024-06-01", End: "2024-06-02"}, call.conf.DateRange)

	assert.Equal(t, []string{"A2"}, titles(f.store.Conferences()))
	assert.Equal(t, "A2", f.store.ActiveConference().Title)
	assert.Equal(t, "A2", f.store.DefaultConference().Title)

	_, err = f.store.ChangeActiveConf(context.Background(), "A")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConferenceStore_UpdateConference_TitleConflict(t *testing.T) {
	f := newStoreFixture(t)
	f.create(t, "A", "B")

	_, err := f.store.UpdateConference(context.Background(), "A", "B", "", "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.store.UpdateConference(context.Background(), "A", "A", "2024-07-01", "2024-07-02")
	require.NoError(t, err)
}

// assignSlotIDs plays the backend's part of giving new slots an ID.
func assignSlotIDs(_ string, conf *domain.Conference) *domain.Conference {
	for i := range conf.Days {
		for j := range conf.Days[i].TimeSlots {
			s := &conf.Days[i].TimeSlots[j]
			if s.ID == "" {
				s.ID = conf.Days[i].Date + "/" + s.Start
			}
		}
	}
	conf.ID = "conf-" + conf.Title
	return conf
}

func TestConferenceStore_AddTimeslot(t *testing.T) {
	f := newStoreFixture(t)
	f.backend.respond = assignSlotIDs
	f.create(t, "A")

	got, err := f.store.AddTimeslot(context.Background(), "1000", "1100", "A", "2024-05-02")
	require.NoError(t, err)
	require.Len(t, got.Days, 1)
	assert.Equal(t, "2024-05-02", got.Days[0].Date)
	assert.Equal(t, []domain.TimeSlot{{ID: "2024-05-02/1000", Start: "1000", End: "1100"}}, got.Days[0].TimeSlots)

	call := f.backend.lastCall(t)
	assert.Equal(t, domain.OpChangeTimeSlot, call.op)
	assert.Empty(t, call.conf.Days[0].TimeSlots[0].ID)

	_, err = f.store.AddTimeslot(context.Background(), "0900", "1000", "A", "2024-05-02")
	require.NoError(t, err)
	_, err = f.store.AddTimeslot(context.Background(), "0900", "1000", "A", "2024-05-01")
	require.NoError(t, err)

	conf := f.store.Conferences()[0]
	assert.Equal(t, "conf-A", conf.ID)
	assert.True(t, conf.LastActive)
	assert.True(t, conf.Default)
	require.Len(t, conf.Days, 2)
	assert.Equal(t, "2024-05-01", conf.Days[0].Date)
	assert.Equal(t, "2024-05-02", conf.Days[1].Date)
	require.Len(t, conf.Days[1].TimeSlots, 2)
	assert.Equal(t, "1000", conf.Days[1].TimeSlots[0].End)
	assert.Equal(t, "1100", conf.Days[1].TimeSlots[1].End)

	slot, err := f.store.FindSlotByID("2024-05-02/1000")
	require.NoError(t, err)
	assert.Equal(t, "1100", slot.End)

	date, err := f.store.FindDateBySlot("2024-05-01/0900")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", date)
}

func TestConferenceStore_AddTimeslot_PublishesActiveAfterResponse(t *testing.T) {
	tests := []struct {
		name          string
		conferences   []string
		target        string
		wantPublished []string
	}{
		{name: "active conference", conferences: []string{"A"}, target: "A", wantPublished: []string{"2024-05-01/0900"}},
		{name: "inactive conference", conferences: []string{"A", "B"}, target: "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newStoreFixture(t)
			f.create(t, tt.conferences...)

			var inFlight *domain.Conference
			f.backend.respond = func(op string, conf *domain.Conference) *domain.Conference {
				if op == domain.OpChangeTimeSlot {
					inFlight = f.store.ActiveConference()
				}
				return assignSlotIDs(op, conf)
			}
			before := f.store.ActiveConference()

			var published []string
			replayed := false
			unsubscribe := f.store.SubscribeActive(func(c *domain.Conference) {
				if !replayed {
					replayed = true
					return
				}
				for _, d := range c.Days {
					for _, s := range d.TimeSlots {
						published = append(published, s.ID)
					}
				}
			})
			defer unsubscribe()

			_, err := f.store.AddTimeslot(context.Background(), "0900", "1000", tt.target, "2024-05-01")
			require.NoError(t, err)

			assert.Equal(t, before, inFlight)
			assert.Equal(t, tt.wantPublished, published)
			assert.Equal(t, tt.conferences[len(tt.conferences)-1], f.store.ActiveConference().Title)
		})
	}
}

func TestConferenceStore_AddTimeslot_EmptyResponseKeepsLocalState(t *testing.T) {
	f := newStoreFixture(t)
	f.backend.respond = func(op string, conf *domain.Conference) *domain.Conference {
		if op == domain.OpChangeTimeSlot {
			return nil
		}
		return conf
	}
	f.create(t, "A")

	got, err := f.store.AddTimeslot(context.Background(), "0900", "1000", "A", "2024-05-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Days, 1)
	assert.Empty(t, got.Days[0].TimeSlots[0].ID)

	assert.Len(t, f.store.Conferences()[0].Days, 1)
}

func TestConferenceStore_AddTimeslot_RequiresDate(t *testing.T) {
	f := newStoreFixture(t)
	f.create(t, "A")

	_, err := f.store.AddTimeslot(context.Background(), "0900", "1000", "A", "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConferenceStore_FindSlot_Errors(t *testing.T) {
	f := newStoreFixture(t)

	_, err := f.store.FindSlotByID("s1")
	require.ErrorIs(t, err, domain.ErrNoActiveConference)
	_, err = f.store.FindDateBySlot("s1")
	require.ErrorIs(t, err, domain.ErrNoActiveConference)

	f.create(t, "A")

	_, err = f.store.FindSlotByID("s1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.store.FindDateBySlot("")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConferenceStore_AddRoom(t *testing.T) {
	f := newStoreFixture(t)
	f.create(t, "A")

	got, err := f.store.AddRoom(context.Background(), "A", "Hall 1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Hall 1"}, got.Rooms)

	call := f.backend.lastCall(t)
	assert.Equal(t, domain.OpAddRoom, call.op)
	assert.Equal(t, []string{"Hall 1"}, call.conf.Rooms)
	assert.Equal(t, []string{"Hall 1"}, f.store.ActiveConference().Rooms)

	_, err = f.store.AddRoom(context.Background(), "A", "Hall 1")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.store.AddRoom(context.Background(), "A", " ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConferenceStore_MoveRoom(t *testing.T) {
	tests := []struct {
		name      string
		room      string
		direction domain.Direction
		wantRooms []string
		wantCall  bool
	}{
		{name: "later", room: "B", direction: domain.DirectionLater, wantRooms: []string{"A", "C", "B"}, wantCall: true},
		{name: "earlier", room: "B", direction: domain.DirectionEarlier, wantRooms: []string{"B", "A", "C"}, wantCall: true},
		{name: "unknown direction moves earlier", room: "C", direction: "x", wantRooms: []string{"A", "C", "B"}, wantCall: true},
		{name: "first room earlier", room: "A", direction: domain.DirectionEarlier, wantRooms: []string{"A", "B", "C"}},
		{name: "last room later", room: "C", direction: domain.DirectionLater, wantRooms: []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newStoreFixture(t)
			f.create(t, "Conf")
			for _, room := range []string{"A", "B", "C"} {
				_, err := f.store.AddRoom(context.Background(), "Conf", room)
				require.NoError(t, err)
			}
			calls := f.backend.opCount()

			got, err := f.store.MoveRoom(context.Background(), "Conf", tt.room, tt.direction)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRooms, f.store.Conferences()[0].Rooms)

			if tt.wantCall {
				require.NotNil(t, got)
				assert.Equal(t, tt.wantRooms, got.Rooms)
				call := f.backend.lastCall(t)
				assert.Equal(t, domain.OpUpdateConferenceRooms, call.op)
				assert.Equal(t, tt.wantRooms, call.conf.Rooms)
				assert.Equal(t, tt.wantRooms, f.store.ActiveConference().Rooms)
			} else {
				assert.Nil(t, got)
				assert.Equal(t, calls, f.backend.opCount())
			}
		})
	}
}

func TestConferenceStore_MoveRoom_UnknownRoom(t *testing.T) {
	f := newStoreFixture(t)
	f.create(t, "Conf")

	_, err := f.store.MoveRoom(context.Background(), "Conf", "Nowhere", domain.DirectionLater)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConferenceStore_GetAllConferences(t *testing.T) {
	f := newStoreFixture(t)
	f.backend.all = []*domain.Conference{
		{Title: "X", Default: true, Days: []domain.Day{
			{Date: "2024-05-02", TimeSlots: []domain.TimeSlot{{ID: "b", End: "1200"}, {ID: "a", End: "1000"}}},
			{Date: "2024-05-01"},
		}},
		{Title: "Y", LastActive: true},
		{Title: "Z", LastActive: true, Default: true},
	}

	got, err := f.store.GetAllConferences(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y", "Z"}, titles(got))
	assert.Equal(t, "2024-05-01", got[0].Days[0].Date)
	assert.Equal(t, "a", got[0].Days[1].TimeSlots[0].ID)

	assert.Equal(t, "Y", f.store.ActiveConference().Title)
	assert.Equal(t, "X", f.store.DefaultConference().Title)

	active, def := countFlags(f.store.Conferences())
	assert.Equal(t, 1, active)
	assert.Equal(t, 1, def)

	assert.Empty(t, f.journal.entries)
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.ConferencesLoaded))
}

func TestConferenceStore_GetAllConferences_NoFlagsKeepsSelection(t *testing.T) {
	f := newStoreFixture(t)
	f.create(t, "A")
	f.backend.all = []*domain.Conference{{Title: "Q"}}

	_, err := f.store.GetAllConferences(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Q"}, titles(f.store.Conferences()))
	assert.Equal(t, "A", f.store.ActiveConference().Title)
	assert.Equal(t, "A", f.store.DefaultConference().Title)
}

func TestConferenceStore_GetAllConferences_Error(t *testing.T) {
	f := newStoreFixture(t)
	f.create(t, "A")
	f.backend.allErr = errors.New("unreachable")

	_, err := f.store.GetAllConferences(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"A"}, titles(f.store.Conferences()))
}

func TestConferenceStore_GetAllConferences_NullConference(t *testing.T) {
	f := newStoreFixture(t)
	f.create(t, "A")
	f.backend.all = []*domain.Conference{{Title: "Q", LastActive: true}, nil}

	var err error
	require.NotPanics(t, func() {
		_, err = f.store.GetAllConferences(context.Background())
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "null conference at index 1")
	assert.Equal(t, []string{"A"}, titles(f.store.Conferences()))
	assert.Equal(t, "A", f.store.ActiveConference().Title)
}

func TestConferenceStore_PushFailureKeepsLocalEdit(t *testing.T) {
	f := newStoreFixture(t)
	f.create(t, "A")
	backendErr := &domain.BackendError{Op: domain.OpAddRoom, StatusCode: 500}
	f.backend.err = backendErr
	before := testutil.ToFloat64(metrics.SyncFailuresTotal.WithLabelValues(domain.OpAddRoom))

	ctx := config.WithRequestID(context.Background(), "req-7")
	got, err := f.store.AddRoom(ctx, "A", "Hall")
	require.ErrorIs(t, err, backendErr)
	assert.Nil(t, got)

	assert.Equal(t, []string{"Hall"}, f.store.Conferences()[0].Rooms)
	assert.Equal(t, []string{"Hall"}, f.store.ActiveConference().Rooms)

	last := f.journal.entries[len(f.journal.entries)-1]
	assert.Equal(t, domain.SyncStatusFailed, last.Status)
	assert.Equal(t, domain.OpAddRoom, last.Operation)
	assert.Equal(t, "req-7", last.RequestID)
	assert.Contains(t, last.Error, "status 500")

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, domain.OpAddRoom, f.notifier.sent[0].Operation)
	assert.Equal(t, "A", f.notifier.sent[0].ConferenceTitle)
	assert.Equal(t, "req-7", f.notifier.sent[0].RequestID)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.SyncFailuresTotal.WithLabelValues(domain.OpAddRoom)))
}

func TestConferenceStore_JournalAndNotifierErrorsAreNotReturned(t *testing.T) {
	f := newStoreFixture(t)
	f.journal.err = errors.New("db down")
	f.notifier.err = errors.New("smtp down")

	_, err := f.store.CreateConference(context.Background(), "A", "", "")
	require.NoError(t, err)

	f.backend.err = errors.New("backend down")
	_, err = f.store.AddRoom(context.Background(), "A", "Hall")
	require.EqualError(t, err, "backend down")
	assert.Len(t, f.notifier.sent, 1)
}

func TestConferenceStore_WithoutCollaborators(t *testing.T) {
	store := NewConferenceStore(&fakeConferenceBackend{err: errors.New("down")}, ConferenceStoreOptions{})

	_, err := store.CreateConference(context.Background(), "A", "", "")
	require.Error(t, err)
	assert.Equal(t, "A", store.ActiveConference().Title)
}

func TestConferenceStore_Subscriptions(t *testing.T) {
	f := newStoreFixture(t)

	var active, def []string
	record := func(dst *[]string) func(*domain.Conference) {
		return func(c *domain.Conference) {
			if c == nil {
				*dst = append(*dst, "<nil>")
				return
			}
			*dst = append(*dst, c.Title)
		}
	}
	unsubActive := f.store.SubscribeActive(record(&active))
	unsubDefault := f.store.SubscribeDefault(record(&def))

	f.create(t, "A", "B")
	_, err := f.store.ChangeActiveConf(context.Background(), "A")
	require.NoError(t, err)

	assert.Equal(t, []string{"<nil>", "A", "B", "A"}, active)
	assert.Equal(t, []string{"<nil>", "A", "B"}, def)

	unsubActive()
	unsubDefault()
	_, err = f.store.ChangeActiveConf(context.Background(), "B")
	require.NoError(t, err)
	assert.Len(t, active, 4)
}

func TestConferenceStore_ReturnsCopies(t *testing.T) {
	f := newStoreFixture(t)
	f.create(t, "A")

	f.store.Conferences()[0].Title = "mutated"
	f.store.ActiveConference().Rooms = append(f.store.ActiveConference().Rooms, "x")

	assert.Equal(t, "A", f.store.Conferences()[0].Title)
	assert.Empty(t, f.store.ActiveConference().Rooms)
}

func TestConferenceStore_SortConfSlotsAndDays(t *testing.T) {
	f := newStoreFixture(t)
	conf := &domain.Conference{Days: []domain.Day{
		{Date: "2024-05-02", TimeSlots: []domain.TimeSlot{{End: "1100"}, {End: "0900"}}},
		{Date: "2024-05-01"},
	}}

	got := f.store.SortConfSlotsAndDays(conf)
	assert.Same(t, conf, got)
	assert.Equal(t, "2024-05-01", got.Days[0].Date)
	assert.Equal(t, "0900", got.Days[1].TimeSlots[0].End)
}
