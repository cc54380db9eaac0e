package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"confadmin/config"
	"confadmin/internal/domain"
	"confadmin/internal/metrics"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// conferenceStore holds the admin's working copy of the conferences and pushes every edit
// to the backend. Edits are applied locally before the push and are not rolled back when
// the push fails.
//
// mu guards conferences and the selection flags on them. It is never held across a
// backend call or while publishing to the selection cells.
type conferenceStore struct {
	mu          sync.Mutex
	conferences []*domain.Conference

	active *Selection[*domain.Conference]
	def    *Selection[*domain.Conference]

	backend        domain.ConferenceBackend
	journal        domain.SyncJournal
	notifier       domain.SyncNotifier
	clock          clockwork.Clock
	logger         *slog.Logger
	contextTimeout time.Duration
}

// ConferenceStoreOptions carries the optional collaborators of the store.
type ConferenceStoreOptions struct {
	Journal  domain.SyncJournal
	Notifier domain.SyncNotifier
	Clock    clockwork.Clock
	Logger   *slog.Logger
	// Timeout bounds each backend call. Zero leaves the caller's context as is.
	Timeout time.Duration
}

func NewConferenceStore(backend domain.ConferenceBackend, opts ConferenceStoreOptions) domain.ConferenceService {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &conferenceStore{
		active:         NewSelection[*domain.Conference](nil),
		def:            NewSelection[*domain.Conference](nil),
		backend:        backend,
		journal:        opts.Journal,
		notifier:       opts.Notifier,
		clock:          opts.Clock,
		logger:         opts.Logger,
		contextTimeout: opts.Timeout,
	}
}

func (s *conferenceStore) CreateConference(ctx context.Context, title, start, end string) (*domain.Conference, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("conference title is required: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	if _, err := s.find(title); err == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("conference %q already exists: %w", title, domain.ErrInvalidInput)
	}
	conf := domain.NewConference(title, start, end)
	s.conferences = append(s.conferences, conf)
	s.selectActive(conf)
	s.selectDefault(conf)
	snapshot := conf.Clone()
	metrics.ConferencesLoaded.Set(float64(len(s.conferences)))
	s.mu.Unlock()

	s.active.Publish(snapshot.Clone())
	s.def.Publish(snapshot.Clone())

	return s.push(ctx, domain.OpCreateConference, title, func(ctx context.Context) (*domain.Conference, error) {
		return s.backend.CreateConference(ctx, snapshot)
	})
}

func (s *conferenceStore) ChangeActiveConf(ctx context.Context, title string) (*domain.Conference, error) {
	s.mu.Lock()
	conf, err := s.find(title)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.selectActive(conf)
	snapshot := conf.Clone()
	s.mu.Unlock()

	s.active.Publish(snapshot.Clone())

	return s.push(ctx, domain.OpChangeActiveConference, title, func(ctx context.Context) (*domain.Conference, error) {
		return s.backend.ChangeActiveConference(ctx, snapshot)
	})
}

func (s *conferenceStore) ChangeDefaultConf(ctx context.Context, title string) (*domain.Conference, error) {
	s.mu.Lock()
	conf, err := s.find(title)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.selectDefault(conf)
	snapshot := conf.Clone()
	s.mu.Unlock()

	s.def.Publish(snapshot.Clone())

	return s.push(ctx, domain.OpChangeDefaultConference, title, func(ctx context.Context) (*domain.Conference, error) {
		return s.backend.ChangeDefaultConference(ctx, snapshot)
	})
}

func (s *conferenceStore) UpdateConference(ctx context.Context, currentTitle, newTitle, start, end string) (*domain.Conference, error) {
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return nil, fmt.Errorf("conference title is required: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	conf, err := s.find(currentTitle)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if newTitle != currentTitle {
		if _, err := s.find(newTitle); err == nil {
			s.mu.Unlock()
			return nil, fmt.Errorf("conference %q already exists: %w", newTitle, domain.ErrInvalidInput)
		}
	}
	conf.Title = newTitle
	conf.DateRange = domain.DateRange{Start: start, End: end}
	snapshot := conf.Clone()
	s.mu.Unlock()

	s.republish(snapshot)

	return s.push(ctx, domain.OpUpdateConference, currentTitle, func(ctx context.Context) (*domain.Conference, error) {
		return s.backend.UpdateConference(ctx, domain.UpdateConferenceRequest{CurrentTitle: currentTitle, Conference: snapshot})
	})
}

// AddTimeslot adds a slot to the day with the given date, creating the day if needed.
// Unlike the other edits it adopts the backend's response, which carries the new slot's ID.
func (s *conferenceStore) AddTimeslot(ctx context.Context, start, end, confTitle, date string) (*domain.Conference, error) {
	if date == "" {
		return nil, fmt.Errorf("date is required: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	conf, err := s.find(confTitle)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	slot := domain.TimeSlot{Start: start, End: end}
	if i, ok := conf.DayIndex(date); ok {
		conf.Days[i].TimeSlots = append(conf.Days[i].TimeSlots, slot)
	} else {
		conf.Days = append(conf.Days, domain.Day{Date: date, TimeSlots: []domain.TimeSlot{slot}})
	}
	snapshot := conf.Clone()
	s.mu.Unlock()

	canonical, err := s.push(ctx, domain.OpChangeTimeSlot, confTitle, func(ctx context.Context) (*domain.Conference, error) {
		return s.backend.ChangeTimeSlot(ctx, snapshot)
	})
	if err != nil {
		return nil, err
	}
	if canonical == nil {
		return snapshot, nil
	}
	domain.SortSlotsAndDays(canonical)

	s.mu.Lock()
	adopted := false
	for i, c := range s.conferences {
		if c == conf {
			// Selection may have moved while the request was in flight.
			canonical.LastActive = c.LastActive
			canonical.Default = c.Default
			s.conferences[i] = canonical
			adopted = true
			break
		}
	}
	out := canonical.Clone()
	s.mu.Unlock()

	if adopted {
		s.republish(out)
	}
	return out, nil
}

func (s *conferenceStore) SortConfSlotsAndDays(conf *domain.Conference) *domain.Conference {
	return domain.SortSlotsAndDays(conf)
}

func (s *conferenceStore) FindSlotByID(id string) (domain.TimeSlot, error) {
	active := s.active.Value()
	if active == nil {
		return domain.TimeSlot{}, domain.ErrNoActiveConference
	}
	slot, _, ok := active.FindSlot(id)
	if !ok {
		return domain.TimeSlot{}, fmt.Errorf("slot %q: %w", id, domain.ErrNotFound)
	}
	return slot, nil
}

func (s *conferenceStore) FindDateBySlot(id string) (string, error) {
	active := s.active.Value()
	if active == nil {
		return "", domain.ErrNoActiveConference
	}
	_, date, ok := active.FindSlot(id)
	if !ok {
		return "", fmt.Errorf("slot %q: %w", id, domain.ErrNotFound)
	}
	return date, nil
}

func (s *conferenceStore) AddRoom(ctx context.Context, confTitle, room string) (*domain.Conference, error) {
	room = strings.TrimSpace(room)
	if room == "" {
		return nil, fmt.Errorf("room name is required: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	conf, err := s.find(confTitle)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if _, ok := conf.RoomIndex(room); ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("room %q already exists in %q: %w", room, confTitle, domain.ErrInvalidInput)
	}
	if conf.Rooms == nil {
		conf.Rooms = []string{}
	}
	conf.Rooms = append(conf.Rooms, room)
	snapshot := conf.Clone()
	s.mu.Unlock()

	s.republish(snapshot)

	return s.push(ctx, domain.OpAddRoom, confTitle, func(ctx context.Context) (*domain.Conference, error) {
		return s.backend.AddRoom(ctx, snapshot)
	})
}

// MoveRoom swaps room with its neighbour: the next one for DirectionLater, the previous
// one for any other direction. When there is no neighbour on that side nothing changes,
// no request is sent, and MoveRoom returns (nil, nil).
func (s *conferenceStore) MoveRoom(ctx context.Context, confTitle, room string, direction domain.Direction) (*domain.Conference, error) {
	s.mu.Lock()
	conf, err := s.find(confTitle)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	from, ok := conf.RoomIndex(room)
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("room %q in %q: %w", room, confTitle, domain.ErrNotFound)
	}
	to := from - 1
	if direction == domain.DirectionLater {
		to = from + 1
	}
	if to < 0 || to > len(conf.Rooms)-1 {
		s.mu.Unlock()
		return nil, nil
	}
	conf.Rooms[from], conf.Rooms[to] = conf.Rooms[to], conf.Rooms[from]
	snapshot := conf.Clone()
	s.mu.Unlock()

	s.republish(snapshot)

	return s.push(ctx, domain.OpUpdateConferenceRooms, confTitle, func(ctx context.Context) (*domain.Conference, error) {
		return s.backend.UpdateConferenceRooms(ctx, snapshot)
	})
}

// GetAllConferences replaces the local list with the backend's. The active and default
// cells are re-derived from the fetched flags; a cell with no flagged conference keeps
// its previous value.
func (s *conferenceStore) GetAllConferences(ctx context.Context) ([]*domain.Conference, error) {
	ctx = s.withRequestID(ctx)
	if s.contextTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.contextTimeout)
		defer cancel()
	}

	fetched, err := s.backend.GetAllConferences(ctx)
	if err != nil {
		return nil, err
	}
	for i, conf := range fetched {
		if conf == nil {
			return nil, fmt.Errorf("%s: null conference at index %d", domain.OpGetAllConferences, i)
		}
		domain.SortSlotsAndDays(conf)
	}

	s.mu.Lock()
	s.conferences = fetched
	var active, def *domain.Conference
	for _, c := range fetched {
		if active == nil && c.LastActive {
			active = c
		}
		if def == nil && c.Default {
			def = c
		}
	}
	if active != nil {
		s.selectActive(active)
	}
	if def != nil {
		s.selectDefault(def)
	}
	out := cloneAll(fetched)
	activeSnap, defSnap := active.Clone(), def.Clone()
	metrics.ConferencesLoaded.Set(float64(len(fetched)))
	s.mu.Unlock()

	if activeSnap != nil {
		s.active.Publish(activeSnap)
	}
	if defSnap != nil {
		s.def.Publish(defSnap)
	}
	s.logger.InfoContext(ctx, "conferences loaded", "count", len(out))
	return out, nil
}

func (s *conferenceStore) Conferences() []*domain.Conference {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.conferences)
}

func (s *conferenceStore) ActiveConference() *domain.Conference {
	return s.active.Value().Clone()
}

func (s *conferenceStore) DefaultConference() *domain.Conference {
	return s.def.Value().Clone()
}

// SubscribeActive calls fn with the current active conference and again on every change.
// The conference passed to fn is shared between subscribers and must not be modified.
func (s *conferenceStore) SubscribeActive(fn func(*domain.Conference)) func() {
	return s.active.Subscribe(fn)
}

// SubscribeDefault is SubscribeActive for the default conference.
func (s *conferenceStore) SubscribeDefault(fn func(*domain.Conference)) func() {
	return s.def.Subscribe(fn)
}

// find returns the conference with the given title. Callers hold mu.
func (s *conferenceStore) find(title string) (*domain.Conference, error) {
	for _, c := range s.conferences {
		if c.Title == title {
			return c, nil
		}
	}
	return nil, fmt.Errorf("conference %q: %w", title, domain.ErrNotFound)
}

// selectActive clears the active flag on every conference and sets it on conf.
// It is the only place the flag is written, so at most one conference carries it.
// Callers hold mu.
func (s *conferenceStore) selectActive(conf *domain.Conference) {
	for _, c := range s.conferences {
		c.LastActive = c == conf
	}
}

// selectDefault is selectActive for the default flag. Callers hold mu.
func (s *conferenceStore) selectDefault(conf *domain.Conference) {
	for _, c := range s.conferences {
		c.Default = c == conf
	}
}

// republish refreshes whichever selection cells snapshot is flagged for.
func (s *conferenceStore) republish(snapshot *domain.Conference) {
	if snapshot.LastActive {
		s.active.Publish(snapshot.Clone())
	}
	if snapshot.Default {
		s.def.Publish(snapshot.Clone())
	}
}

// push runs one backend call with a request ID and the store timeout, then journals the
// outcome. A failed push is also counted and reported to the notifier; the local edit stays.
func (s *conferenceStore) push(ctx context.Context, op, title string, call func(context.Context) (*domain.Conference, error)) (*domain.Conference, error) {
	ctx = s.withRequestID(ctx)
	requestID, _ := config.RequestID(ctx)
	callCtx := ctx
	if s.contextTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.contextTimeout)
		defer cancel()
	}

	resp, err := call(callCtx)
	s.record(ctx, domain.NewSyncEntry(requestID, op, title, err, s.clock.Now()))
	if err != nil {
		metrics.SyncFailuresTotal.WithLabelValues(op).Inc()
		s.notify(ctx, op, title, requestID, err)
		return nil, err
	}
	return resp, nil
}

func (s *conferenceStore) withRequestID(ctx context.Context) context.Context {
	if _, ok := config.RequestID(ctx); ok {
		return ctx
	}
	return config.WithRequestID(ctx, uuid.NewString())
}

func (s *conferenceStore) record(ctx context.Context, entry *domain.SyncEntry) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Record(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.ErrorContext(ctx, "failed to record sync journal entry", "operation", entry.Operation, "err", err)
	}
}

func (s *conferenceStore) notify(ctx context.Context, op, title, requestID string, cause error) {
	if s.notifier == nil {
		return
	}
	data := &domain.SyncFailedEmailData{
		Operation:       op,
		ConferenceTitle: title,
		RequestID:       requestID,
		Error:           cause.Error(),
	}
	if err := s.notifier.NotifySyncFailed(context.WithoutCancel(ctx), data); err != nil {
		s.logger.ErrorContext(ctx, "failed to send sync failure alert", "operation", op, "err", err)
	}
}

func cloneAll(confs []*domain.Conference) []*domain.Conference {
	out := make([]*domain.Conference, len(confs))
	for i, c := range confs {
		out[i] = c.Clone()
	}
	return out
}
