package domain

import (
	"context"
	"slices"
	"strings"
)

// DateRange is the first and last day of a conference, as the backend stores them.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TimeSlot is a start/end pair within a day. ID is empty until the backend persists it.
// swagger:model TimeSlot
type TimeSlot struct {
	ID    string `json:"_id,omitempty"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Day owns the time slots scheduled on a single date. Date is unique within a conference.
// swagger:model Day
type Day struct {
	Date      string     `json:"date"`
	TimeSlots []TimeSlot `json:"timeSlots"`
}

// Conference is the unit the admin edits. Title is the lookup key.
// LastActive and Default are single-selection flags across the whole collection.
// swagger:model Conference
type Conference struct {
	ID         string    `json:"_id,omitempty"`
	Title      string    `json:"title"`
	DateRange  DateRange `json:"dateRange"`
	LastActive bool      `json:"lastActive"`
	Default    bool      `json:"default"`
	Days       []Day     `json:"days,omitempty"`
	Rooms      []string  `json:"rooms,omitempty"`
}

// NewConference returns a conference with both selection flags set, ready to be appended
// after the existing conferences have been cleared.
func NewConference(title, start, end string) *Conference {
	return &Conference{
		Title:      title,
		DateRange:  DateRange{Start: start, End: end},
		LastActive: true,
		Default:    true,
	}
}

// Clone returns a deep copy so callers can hand it out without sharing slices.
func (c *Conference) Clone() *Conference {
	if c == nil {
		return nil
	}
	out := *c
	if c.Days != nil {
		out.Days = make([]Day, len(c.Days))
		for i, d := range c.Days {
			out.Days[i] = Day{Date: d.Date, TimeSlots: slices.Clone(d.TimeSlots)}
		}
	}
	out.Rooms = slices.Clone(c.Rooms)
	return &out
}

// DayIndex returns the index of the day with the given date.
func (c *Conference) DayIndex(date string) (int, bool) {
	i := slices.IndexFunc(c.Days, func(d Day) bool { return d.Date == date })
	return i, i >= 0
}

// RoomIndex returns the index of the named room.
func (c *Conference) RoomIndex(room string) (int, bool) {
	i := slices.Index(c.Rooms, room)
	return i, i >= 0
}

// FindSlot scans every day for the slot with the given ID and returns it with the owning date.
// Slots without an ID never match.
func (c *Conference) FindSlot(id string) (TimeSlot, string, bool) {
	if id == "" {
		return TimeSlot{}, "", false
	}
	for _, d := range c.Days {
		for _, s := range d.TimeSlots {
			if s.ID == id {
				return s, d.Date, true
			}
		}
	}
	return TimeSlot{}, "", false
}

// SortSlotsAndDays orders each day's slots by end time and then the days by date.
// Both sorts are stable and compare the raw strings, so repeated calls are no-ops.
func SortSlotsAndDays(c *Conference) *Conference {
	if c == nil {
		return nil
	}
	for i := range c.Days {
		slices.SortStableFunc(c.Days[i].TimeSlots, func(a, b TimeSlot) int {
			return strings.Compare(a.End, b.End)
		})
	}
	slices.SortStableFunc(c.Days, func(a, b Day) int {
		return strings.Compare(a.Date, b.Date)
	})
	return c
}

// UpdateConferenceRequest is the body of /api/updateconference. CurrentTitle lets the
// backend locate the record by its old key.
type UpdateConferenceRequest struct {
	CurrentTitle string      `json:"currentTitle"`
	Conference   *Conference `json:"conference"`
}

// Backend operation names, used for routing, logging, metrics and the sync journal.
const (
	OpCreateConference        = "createConference"
	OpChangeActiveConference  = "changeActiveConf"
	OpChangeDefaultConference = "changeDefaultConf"
	OpUpdateConference        = "updateConference"
	OpChangeTimeSlot          = "changeTimeSlot"
	OpAddRoom                 = "addRoom"
	OpUpdateConferenceRooms   = "updateConfRooms"
	OpGetAllConferences       = "getAllConferences"
)

// ConferenceBackend is the remote CRUD API that owns the canonical conference records.
type ConferenceBackend interface {
	CreateConference(ctx context.Context, conf *Conference) (*Conference, error)
	ChangeActiveConference(ctx context.Context, conf *Conference) (*Conference, error)
	ChangeDefaultConference(ctx context.Context, conf *Conference) (*Conference, error)
	UpdateConference(ctx context.Context, req UpdateConferenceRequest) (*Conference, error)
	ChangeTimeSlot(ctx context.Context, conf *Conference) (*Conference, error)
	AddRoom(ctx context.Context, conf *Conference) (*Conference, error)
	UpdateConferenceRooms(ctx context.Context, conf *Conference) (*Conference, error)
	GetAllConferences(ctx context.Context) ([]*Conference, error)
}

// Direction is the way MoveRoom shifts a room. DirectionLater is "+"; any other value
// moves the room earlier.
type Direction string

const (
	DirectionLater   Direction = "+"
	DirectionEarlier Direction = "-"
)

// ConferenceService is the admin-side state manager over ConferenceBackend.
type ConferenceService interface {
	CreateConference(ctx context.Context, title, start, end string) (*Conference, error)
	ChangeActiveConf(ctx context.Context, title string) (*Conference, error)
	ChangeDefaultConf(ctx context.Context, title string) (*Conference, error)
	UpdateConference(ctx context.Context, currentTitle, newTitle, start, end string) (*Conference, error)
	AddTimeslot(ctx context.Context, start, end, confTitle, date string) (*Conference, error)
	AddRoom(ctx context.Context, confTitle, room string) (*Conference, error)
	MoveRoom(ctx context.Context, confTitle, room string, direction Direction) (*Conference, error)
	GetAllConferences(ctx context.Context) ([]*Conference, error)
	SortConfSlotsAndDays(conf *Conference) *Conference
	FindSlotByID(id string) (TimeSlot, error)
	FindDateBySlot(id string) (string, error)
	Conferences() []*Conference
	ActiveConference() *Conference
	DefaultConference() *Conference
	SubscribeActive(fn func(*Conference)) (unsubscribe func())
	SubscribeDefault(fn func(*Conference)) (unsubscribe func())
}
