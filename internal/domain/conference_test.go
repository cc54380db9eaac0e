package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortSlotsAndDays(t *testing.T) {
	tests := []struct {
		name      string
		conf      *Conference
		wantDays  []string
		wantSlots map[string][]string
	}{
		{
			name: "days out of order",
			conf: &Conference{Days: []Day{
				{Date: "2020-02-02"},
				{Date: "2020-01-01"},
			}},
			wantDays:  []string{"2020-01-01", "2020-02-02"},
			wantSlots: map[string][]string{"2020-01-01": {}, "2020-02-02": {}},
		},
		{
			name: "slots ordered by end time",
			conf: &Conference{Days: []Day{
				{Date: "2020-01-01", TimeSlots: []TimeSlot{
					{Start: "1100", End: "1200"},
					{Start: "0900", End: "1000"},
					{Start: "1000", End: "1100"},
				}},
			}},
			wantDays:  []string{"2020-01-01"},
			wantSlots: map[string][]string{"2020-01-01": {"1000", "1100", "1200"}},
		},
		{
			name:      "no days",
			conf:      &Conference{Title: "empty"},
			wantDays:  []string{},
			wantSlots: map[string][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortSlotsAndDays(tt.conf)
			require.Same(t, tt.conf, got)
			days := []string{}
			for _, d := range got.Days {
				days = append(days, d.Date)
				ends := []string{}
				for _, s := range d.TimeSlots {
					ends = append(ends, s.End)
				}
				assert.Equal(t, tt.wantSlots[d.Date], ends)
			}
			assert.Equal(t, tt.wantDays, days)
		})
	}
}

func TestSortSlotsAndDays_Idempotent(t *testing.T) {
	conf := &Conference{Days: []Day{
		{Date: "2020-03-01", TimeSlots: []TimeSlot{{ID: "b", End: "1000"}, {ID: "a", End: "1000"}, {ID: "c", End: "0900"}}},
		{Date: "2020-01-01", TimeSlots: []TimeSlot{{ID: "d", End: "1700"}}},
	}}
	once := SortSlotsAndDays(conf).Clone()
	twice := SortSlotsAndDays(SortSlotsAndDays(conf.Clone()))
	assert.Equal(t, once, twice)
	// stable: equal end times keep their relative order
	assert.Equal(t, []TimeSlot{{ID: "c", End: "0900"}, {ID: "b", End: "1000"}, {ID: "a", End: "1000"}}, once.Days[1].TimeSlots)
}

func TestConference_Clone(t *testing.T) {
	orig := &Conference{
		Title: "Conf",
		Days:  []Day{{Date: "2020-01-01", TimeSlots: []TimeSlot{{Start: "0900", End: "1000"}}}},
		Rooms: []string{"A"},
	}
	cp := orig.Clone()
	cp.Days[0].TimeSlots[0].End = "1100"
	cp.Rooms[0] = "B"
	cp.Title = "Other"

	assert.Equal(t, "1000", orig.Days[0].TimeSlots[0].End)
	assert.Equal(t, []string{"A"}, orig.Rooms)
	assert.Equal(t, "Conf", orig.Title)
	assert.Nil(t, (*Conference)(nil).Clone())
}

func TestConference_FindSlot(t *testing.T) {
	conf := &Conference{Days: []Day{
		{Date: "2020-01-01", TimeSlots: []TimeSlot{{Start: "0900", End: "1000"}}},
		{Date: "2020-01-02", TimeSlots: []TimeSlot{{ID: "slot-1", Start: "0900", End: "1000"}}},
	}}

	slot, date, ok := conf.FindSlot("slot-1")
	require.True(t, ok)
	assert.Equal(t, "2020-01-02", date)
	assert.Equal(t, "slot-1", slot.ID)

	_, _, ok = conf.FindSlot("missing")
	assert.False(t, ok)

	_, _, ok = conf.FindSlot("")
	assert.False(t, ok, "unsaved slots have no ID and must not match")
}

func TestNewSyncEntry(t *testing.T) {
	ok := NewSyncEntry("req-1", "addRoom", "Conf", nil, testTime)
	assert.Equal(t, SyncStatusOK, ok.Status)
	assert.Empty(t, ok.Error)

	failed := NewSyncEntry("req-2", "addRoom", "Conf", &BackendError{Op: "addRoom", StatusCode: 500}, testTime)
	assert.Equal(t, SyncStatusFailed, failed.Status)
	assert.Equal(t, "addRoom: backend returned status 500", failed.Error)
}

var testTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
