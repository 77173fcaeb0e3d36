package domain

import "time"

// GeneralCategory is the default category for normalized calendar events.
// Distinct from the task-side UncategorizedLabel on purpose.
const GeneralCategory = "general"

// DefaultEventDuration is applied when a record carries a start but no end.
const DefaultEventDuration = time.Hour

// Event is a normalized calendar event. After NormalizeEvent both Start and
// End are always populated.
type Event struct {
	ID        string
	Title     string
	Completed bool
	CreatedAt time.Time
	Start     time.Time
	End       time.Time
	Category  string
	Priority  Priority

	// Collaborative is set when the record names more than one participant.
	Collaborative bool
	Recurring     bool
}

// Duration returns the event length.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Overlaps reports whether two events share any interval of time.
func (e Event) Overlaps(other Event) bool {
	return e.Start.Before(other.End) && other.Start.Before(e.End)
}

// NormalizeEvent maps a raw task record into an Event, applying the default
// duration, category and priority rules. The second return value is false
// when the record has neither a start nor a due date and cannot be placed on
// a calendar.
func NormalizeEvent(t Task) (Event, bool) {
	var start time.Time
	switch {
	case t.StartDate != nil:
		start = *t.StartDate
	case t.DueDate != nil:
		start = *t.DueDate
	default:
		return Event{}, false
	}

	end := start.Add(DefaultEventDuration)
	if t.EndDate != nil {
		end = *t.EndDate
	}

	category := t.Category
	if category == "" {
		category = GeneralCategory
	}

	priority := t.Priority
	if priority == PriorityNone {
		priority = PriorityMedium
	}

	participants := len(t.Collaborators)
	if t.Attendees > participants {
		participants = t.Attendees
	}

	return Event{
		ID:            t.ID.String(),
		Title:         t.Title,
		Completed:     t.Completed,
		CreatedAt:     t.CreatedAt,
		Start:         start,
		End:           end,
		Category:      category,
		Priority:      priority,
		Collaborative: participants > 1,
		Recurring:     t.RecurringPatternID != "",
	}, true
}

// NormalizeEvents maps every schedulable task into an event, dropping
// records without a calendar placement.
func NormalizeEvents(tasks []Task) []Event {
	events := make([]Event, 0, len(tasks))
	for _, t := range tasks {
		if e, ok := NormalizeEvent(t); ok {
			events = append(events, e)
		}
	}
	return events
}
