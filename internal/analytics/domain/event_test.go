package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduledTask(start time.Time) Task {
	return Task{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Title:     "standup",
		CreatedAt: start.AddDate(0, 0, -1),
		StartDate: &start,
	}
}

func TestNormalizeEvent_Defaults(t *testing.T) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)

	event, ok := NormalizeEvent(scheduledTask(start))

	require.True(t, ok)
	assert.Equal(t, start, event.Start)
	assert.Equal(t, start.Add(DefaultEventDuration), event.End)
	assert.Equal(t, GeneralCategory, event.Category)
	assert.Equal(t, PriorityMedium, event.Priority)
	assert.False(t, event.Collaborative)
	assert.False(t, event.Recurring)
}

func TestNormalizeEvent_DueDateFallback(t *testing.T) {
	due := time.Date(2025, 6, 16, 17, 0, 0, 0, time.UTC)
	task := Task{ID: uuid.New(), DueDate: &due}

	event, ok := NormalizeEvent(task)

	require.True(t, ok)
	assert.Equal(t, due, event.Start)
	assert.Equal(t, due.Add(time.Hour), event.End)
}

func TestNormalizeEvent_StartDateWinsOverDueDate(t *testing.T) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	due := start.Add(8 * time.Hour)
	task := scheduledTask(start)
	task.DueDate = &due

	event, ok := NormalizeEvent(task)

	require.True(t, ok)
	assert.Equal(t, start, event.Start)
}

func TestNormalizeEvent_ExplicitFields(t *testing.T) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	task := scheduledTask(start)
	task.EndDate = &end
	task.Category = "work"
	task.Priority = PriorityHigh
	task.Attendees = 3
	task.RecurringPatternID = "weekly"

	event, ok := NormalizeEvent(task)

	require.True(t, ok)
	assert.Equal(t, end, event.End)
	assert.Equal(t, 90*time.Minute, event.Duration())
	assert.Equal(t, "work", event.Category)
	assert.Equal(t, PriorityHigh, event.Priority)
	assert.True(t, event.Collaborative)
	assert.True(t, event.Recurring)
}

func TestNormalizeEvent_CollaborativeThreshold(t *testing.T) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)

	solo := scheduledTask(start)
	solo.Collaborators = []string{"ana"}
	event, _ := NormalizeEvent(solo)
	assert.False(t, event.Collaborative, "a single participant is not collaborative")

	pair := scheduledTask(start)
	pair.Collaborators = []string{"ana", "ben"}
	event, _ = NormalizeEvent(pair)
	assert.True(t, event.Collaborative)
}

func TestNormalizeEvent_Unschedulable(t *testing.T) {
	_, ok := NormalizeEvent(Task{ID: uuid.New()})
	assert.False(t, ok)
}

func TestNormalizeEvents_DropsUnschedulable(t *testing.T) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)

	events := NormalizeEvents([]Task{
		scheduledTask(start),
		{ID: uuid.New()},
		scheduledTask(start.Add(time.Hour)),
	})

	assert.Len(t, events, 2)
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	event := func(start, end time.Time) Event { return Event{Start: start, End: end} }

	a := event(base, base.Add(2*time.Hour))
	b := event(base.Add(time.Hour), base.Add(3*time.Hour))
	touching := event(base.Add(2*time.Hour), base.Add(3*time.Hour))

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a), "overlap is symmetric")
	assert.False(t, a.Overlaps(touching), "touching intervals do not overlap")
	assert.False(t, touching.Overlaps(a))
}

func TestParsePriority(t *testing.T) {
	assert.Equal(t, PriorityHigh, ParsePriority("High"))
	assert.Equal(t, PriorityLow, ParsePriority(" low "))
	assert.Equal(t, PriorityMedium, ParsePriority("MEDIUM"))
	assert.Equal(t, PriorityNone, ParsePriority("urgent"))
	assert.Equal(t, PriorityNone, ParsePriority(""))
}

func TestCategoryOrDefault(t *testing.T) {
	assert.Equal(t, UncategorizedLabel, Task{}.CategoryOrDefault())
	assert.Equal(t, "work", Task{Category: "work"}.CategoryOrDefault())
}
