package caldav

import (
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav/caldav"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calendarObject(build func(event *ical.Event)) *caldav.CalendarObject {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//Cadence//Import Test//EN")

	event := ical.NewEvent()
	build(event)
	cal.Children = append(cal.Children, event.Component)

	return &caldav.CalendarObject{Path: "/calendars/test/event.ics", Data: cal}
}

func TestObjectToTask(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	obj := calendarObject(func(event *ical.Event) {
		event.Props.SetText(ical.PropUID, "standup-20250616")
		event.Props.SetText(ical.PropSummary, "Daily standup")
		event.Props.SetDateTime(ical.PropDateTimeStamp, start.Add(-48*time.Hour))
		event.Props.SetDateTime(ical.PropDateTimeStart, start)
		event.Props.SetDateTime(ical.PropDateTimeEnd, end)
		event.Props.SetText("CATEGORIES", "work")
		event.Props.SetText("RRULE", "FREQ=WEEKLY")
		event.Props.Add(ical.NewProp("ATTENDEE"))
		event.Props.Add(ical.NewProp("ATTENDEE"))
	})

	task, ok := objectToTask(obj, userID)

	require.True(t, ok)
	assert.Equal(t, userID, task.UserID)
	assert.Equal(t, "Daily standup", task.Title)
	assert.False(t, task.Completed)
	require.NotNil(t, task.StartDate)
	assert.True(t, task.StartDate.Equal(start))
	require.NotNil(t, task.EndDate)
	assert.True(t, task.EndDate.Equal(end))
	assert.True(t, task.CreatedAt.Equal(start.Add(-48*time.Hour)))
	assert.Equal(t, "work", task.Category)
	assert.Equal(t, 2, task.Attendees)
	assert.Equal(t, "FREQ=WEEKLY", task.RecurringPatternID)
}

func TestObjectToTask_DeterministicID(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)

	build := func(event *ical.Event) {
		event.Props.SetText(ical.PropUID, "same-uid")
		event.Props.SetDateTime(ical.PropDateTimeStart, start)
	}

	first, ok := objectToTask(calendarObject(build), userID)
	require.True(t, ok)
	second, ok := objectToTask(calendarObject(build), userID)
	require.True(t, ok)

	assert.Equal(t, first.ID, second.ID, "re-import must hit the same task row")
}

func TestObjectToTask_CompletedStatus(t *testing.T) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)

	obj := calendarObject(func(event *ical.Event) {
		event.Props.SetText(ical.PropUID, "done-event")
		event.Props.SetDateTime(ical.PropDateTimeStart, start)
		event.Props.SetText(ical.PropStatus, "COMPLETED")
	})

	task, ok := objectToTask(obj, uuid.New())
	require.True(t, ok)
	assert.True(t, task.Completed)
	assert.Equal(t, "done-event", task.Title, "UID stands in for a missing summary")
}

func TestObjectToTask_SkipsUnplaceableEvents(t *testing.T) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)

	t.Run("missing UID", func(t *testing.T) {
		obj := calendarObject(func(event *ical.Event) {
			event.Props.SetDateTime(ical.PropDateTimeStart, start)
		})
		_, ok := objectToTask(obj, uuid.New())
		assert.False(t, ok)
	})

	t.Run("missing DTSTART", func(t *testing.T) {
		obj := calendarObject(func(event *ical.Event) {
			event.Props.SetText(ical.PropUID, "floating")
		})
		_, ok := objectToTask(obj, uuid.New())
		assert.False(t, ok)
	})

	t.Run("nil data", func(t *testing.T) {
		_, ok := objectToTask(&caldav.CalendarObject{}, uuid.New())
		assert.False(t, ok)
	})
}
