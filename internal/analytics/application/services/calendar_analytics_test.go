package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
)

func newCalendarAnalytics() *CalendarAnalytics {
	a := NewCalendarAnalytics(nil)
	a.now = func() time.Time { return fixedNow }
	return a
}

func makeEvent(start time.Time, opts ...taskOpt) domain.Task {
	t := domain.Task{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Title:     "event",
		CreatedAt: start.AddDate(0, 0, -2),
		StartDate: &start,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func withTitle(title string) taskOpt {
	return func(t *domain.Task) { t.Title = title }
}

func withEnd(end time.Time) taskOpt {
	return func(t *domain.Task) { t.EndDate = &end }
}

func withCollaborators(names ...string) taskOpt {
	return func(t *domain.Task) { t.Collaborators = names }
}

func withRecurrence(id string) taskOpt {
	return func(t *domain.Task) { t.RecurringPatternID = id }
}

func TestCalendarMetrics(t *testing.T) {
	analytics := newCalendarAnalytics()
	analytics.Load([]domain.Task{
		makeEvent(fixedNow.AddDate(0, 0, 1), withCategory("work"), withCollaborators("ana", "ben")),
		makeEvent(fixedNow.AddDate(0, 0, -1), completed(), withCategory("work")),
		makeEvent(fixedNow.AddDate(0, 0, -2), withRecurrence("weekly-standup")),
	})

	metrics := analytics.Metrics(nil)

	assert.Equal(t, 3, metrics.TotalEvents)
	assert.Equal(t, 1, metrics.CompletedEvents)
	assert.Equal(t, 1, metrics.UpcomingEvents)
	assert.Equal(t, 1, metrics.OverdueEvents)
	assert.Equal(t, 33, metrics.CompletionRate)
	assert.Equal(t, 0.1, metrics.AverageEventsPerDay, "3 events over the default 30-day window")
	assert.Equal(t, 2, metrics.EventsByCategory["work"])
	assert.Equal(t, 1, metrics.EventsByCategory[domain.GeneralCategory])
	assert.Equal(t, 3, metrics.EventsByPriority[string(domain.PriorityMedium)])
	assert.Equal(t, 1, metrics.CollaborativeEvents)
	assert.Equal(t, 1, metrics.RecurringEvents)
}

func TestCalendarMetrics_EmptySnapshot(t *testing.T) {
	analytics := newCalendarAnalytics()
	analytics.Load(nil)

	metrics := analytics.Metrics(nil)

	assert.Equal(t, 0, metrics.TotalEvents)
	assert.Equal(t, 0, metrics.CompletionRate)
	assert.Equal(t, float64(0), metrics.AverageEventsPerDay)
	assert.Equal(t, domain.NoDataLabel, metrics.MostProductiveDay)
}

func TestCalendarMetrics_Idempotent(t *testing.T) {
	analytics := newCalendarAnalytics()
	analytics.Load([]domain.Task{
		makeEvent(fixedNow.AddDate(0, 0, 1), withCategory("work")),
		makeEvent(fixedNow.AddDate(0, 0, 2), completed()),
	})

	window := &domain.DateRange{Start: fixedNow.AddDate(0, 0, -7), End: fixedNow.AddDate(0, 0, 7)}
	first := analytics.Metrics(window)
	second := analytics.Metrics(window)

	assert.Equal(t, first, second)
}

func TestCalendarMetrics_RangeFilter(t *testing.T) {
	analytics := newCalendarAnalytics()
	analytics.Load([]domain.Task{
		makeEvent(fixedNow.AddDate(0, 0, 1)),
		makeEvent(fixedNow.AddDate(0, 0, 20)),
	})

	window := &domain.DateRange{Start: fixedNow, End: fixedNow.AddDate(0, 0, 7)}
	metrics := analytics.Metrics(window)

	assert.Equal(t, 1, metrics.TotalEvents)
	assert.Equal(t, 0.14, metrics.AverageEventsPerDay, "1 event over a 7-day window")
}

func TestTimeAnalysis(t *testing.T) {
	analytics := newCalendarAnalytics()
	analytics.Load([]domain.Task{
		makeEvent(time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)),  // Monday, Summer
		makeEvent(time.Date(2025, 6, 16, 14, 0, 0, 0, time.UTC)), // Monday
		makeEvent(time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)),   // Monday, Winter
	})

	analysis := analytics.TimeAnalysis(nil)

	assert.Equal(t, 2, analysis.Hourly[9])
	assert.Equal(t, 1, analysis.Hourly[14])
	assert.NotContains(t, analysis.Hourly, 10, "empty buckets are absent")
	assert.Equal(t, 3, analysis.Daily["Monday"])
	assert.Equal(t, 3, analysis.Monthly["June"]+analysis.Monthly["January"])
	assert.Equal(t, 2, analysis.Seasonal["Summer"])
	assert.Equal(t, 1, analysis.Seasonal["Winter"])
}

func TestTimeAnalysis_WeekNumberLabels(t *testing.T) {
	analytics := newCalendarAnalytics()
	analytics.Load([]domain.Task{
		makeEvent(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)),
	})

	analysis := analytics.TimeAnalysis(nil)
	assert.Equal(t, 1, analysis.Weekly["Week 1"])
}

func TestInsights_OptimalMeetingTimesFallback(t *testing.T) {
	analytics := newCalendarAnalytics()
	analytics.Load([]domain.Task{
		makeEvent(time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC), completed()),
	})

	insights := analytics.Insights(nil)
	assert.Equal(t, []int{9, 10, 14, 15}, insights.OptimalMeetingTimes)
}

func TestInsights_PeakProductivityHours(t *testing.T) {
	analytics := newCalendarAnalytics()
	tasks := []domain.Task{}
	for i := 0; i < 3; i++ {
		tasks = append(tasks, makeEvent(time.Date(2025, 6, 16+i, 10, 0, 0, 0, time.UTC), completed()))
	}
	tasks = append(tasks, makeEvent(time.Date(2025, 6, 16, 15, 0, 0, 0, time.UTC), completed()))
	tasks = append(tasks, makeEvent(time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)))
	analytics.Load(tasks)

	insights := analytics.Insights(nil)

	require.NotEmpty(t, insights.PeakProductivityHours)
	assert.Equal(t, 10, insights.PeakProductivityHours[0])
	assert.NotContains(t, insights.PeakProductivityHours, 8, "pending events do not count")
}

func TestInsights_WorkLifeBalance(t *testing.T) {
	t.Run("ratio with both sides", func(t *testing.T) {
		analytics := newCalendarAnalytics()
		analytics.Load([]domain.Task{
			makeEvent(fixedNow.AddDate(0, 0, 1), withCategory("Work")),
			makeEvent(fixedNow.AddDate(0, 0, 2), withCategory("meeting")),
			makeEvent(fixedNow.AddDate(0, 0, 3), withCategory("office")),
			makeEvent(fixedNow.AddDate(0, 0, 4), withCategory("family")),
			makeEvent(fixedNow.AddDate(0, 0, 5), withCategory("health")),
		})

		balance := analytics.Insights(nil).WorkLifeBalance
		assert.Equal(t, 3, balance.WorkEvents)
		assert.Equal(t, 2, balance.PersonalEvents)
		assert.Equal(t, 1.5, balance.Ratio)
	})

	t.Run("no personal events falls back to the raw work count", func(t *testing.T) {
		analytics := newCalendarAnalytics()
		analytics.Load([]domain.Task{
			makeEvent(fixedNow.AddDate(0, 0, 1), withCategory("work")),
			makeEvent(fixedNow.AddDate(0, 0, 2), withCategory("work")),
		})

		balance := analytics.Insights(nil).WorkLifeBalance
		assert.Equal(t, float64(2), balance.Ratio)
	})
}

func TestInsights_FocusTimeBlocks(t *testing.T) {
	morning := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	lateAfternoon := time.Date(2025, 6, 16, 15, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 16, 16, 30, 0, 0, time.UTC)

	analytics := newCalendarAnalytics()
	analytics.Load([]domain.Task{
		makeEvent(morning, withEnd(morning.Add(time.Hour))),
		makeEvent(lateAfternoon, withEnd(lateAfternoon.Add(time.Hour))), // 5h gap after the first
		makeEvent(evening),                                              // only 30m after the second
	})

	blocks := analytics.Insights(nil).FocusTimeBlocks

	require.Len(t, blocks, 1)
	assert.Equal(t, "Monday", blocks[0].Day)
	assert.Equal(t, "10:00", blocks[0].StartTime)
	assert.Equal(t, "15:00", blocks[0].EndTime)
	assert.Equal(t, 5.0, blocks[0].Duration)
}

func TestHealthScore_Weighting(t *testing.T) {
	assert.Equal(t, 100, overallHealthScore(100, 100, 100, 100, 100))
	assert.Equal(t, 0, overallHealthScore(0, 0, 0, 0, 0))
	assert.Equal(t, 30, overallHealthScore(0, 100, 0, 0, 0), "completion carries 30%")
}

func TestHealthScore(t *testing.T) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)

	analytics := newCalendarAnalytics()
	analytics.Load([]domain.Task{
		// Short, completed, collaborative, planned two days ahead.
		makeEvent(start, completed(), withCollaborators("ana", "ben")),
		makeEvent(start.AddDate(0, 0, 1), completed(), withCollaborators("ana", "ben")),
	})

	score := analytics.HealthScore(nil)

	assert.Equal(t, 100, score.CompletionRate)
	assert.Equal(t, 100, score.TimeManagement)
	assert.Equal(t, 100, score.Collaboration)
	assert.Equal(t, 100, score.Planning)
	assert.GreaterOrEqual(t, score.Score, 80)
	for _, factor := range []int{score.EventDistribution, score.CompletionRate, score.TimeManagement, score.Collaboration, score.Planning} {
		assert.GreaterOrEqual(t, factor, 0)
		assert.LessOrEqual(t, factor, 100)
	}
}

func TestHealthScore_EmptyCalendarPlanningDefault(t *testing.T) {
	analytics := newCalendarAnalytics()
	analytics.Load(nil)

	score := analytics.HealthScore(nil)
	assert.Equal(t, 100, score.Planning, "no events means nothing was planned late")
	assert.Equal(t, 0, score.CompletionRate)
}

func TestBurnoutRisk_Calendar(t *testing.T) {
	t.Run("weekend and late night pressure", func(t *testing.T) {
		saturdayNight := time.Date(2025, 6, 21, 22, 0, 0, 0, time.UTC)

		analytics := newCalendarAnalytics()
		analytics.Load([]domain.Task{
			makeEvent(saturdayNight),
			makeEvent(saturdayNight.Add(time.Hour)),
		})

		risk := analytics.BurnoutRisk(nil)

		assert.Equal(t, 100, risk.WeekendWork)
		assert.Equal(t, 100, risk.LateNightEvents)
		assert.Equal(t, 100, risk.NoBreaks, "back-to-back events with no gap")
		assert.Equal(t, domain.RiskMedium, risk.Level)
		assert.NotEmpty(t, risk.Suggestions)
	})

	t.Run("quiet calendar is low risk", func(t *testing.T) {
		analytics := newCalendarAnalytics()
		analytics.Load([]domain.Task{
			makeEvent(time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)),
		})

		risk := analytics.BurnoutRisk(nil)
		assert.Equal(t, 0, risk.Score)
		assert.Equal(t, domain.RiskLow, risk.Level)
		assert.Equal(t, []string{"Your calendar looks well balanced"}, risk.Suggestions)
	})

	t.Run("long day detection", func(t *testing.T) {
		dayStart := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
		dayEnd := time.Date(2025, 6, 16, 19, 30, 0, 0, time.UTC)

		analytics := newCalendarAnalytics()
		analytics.Load([]domain.Task{
			makeEvent(dayStart),
			makeEvent(dayEnd),
		})

		risk := analytics.BurnoutRisk(nil)
		assert.Equal(t, 100, risk.LongDays, "span exceeds ten hours")
	})
}

func TestForecast(t *testing.T) {
	analytics := newCalendarAnalytics()
	tasks := []domain.Task{}
	// Seven events tomorrow make it a predicted busy day.
	for i := 0; i < 7; i++ {
		tasks = append(tasks, makeEvent(fixedNow.AddDate(0, 0, 1).Add(time.Duration(i)*time.Hour)))
	}
	// A past event never enters the forecast.
	tasks = append(tasks, makeEvent(fixedNow.AddDate(0, 0, -1)))
	analytics.Load(tasks)

	forecast := analytics.Forecast()

	assert.Equal(t, 10.0, forecast.NextWeekLoad, "(7/7)*10")
	assert.InDelta(t, 1.17, forecast.NextMonthLoad, 0.001)
	assert.Contains(t, forecast.PredictedBusyDays, domain.DayKey(fixedNow.AddDate(0, 0, 1)))
	require.Len(t, forecast.RecommendedBreaks, 5)
	assert.NotContains(t, forecast.RecommendedBreaks, domain.DayKey(fixedNow.AddDate(0, 0, 1)))
}

func TestForecast_ConflictDetectionSymmetry(t *testing.T) {
	start := fixedNow.AddDate(0, 0, 2)
	first := makeEvent(start, withTitle("planning"), withEnd(start.Add(2*time.Hour)))
	second := makeEvent(start.Add(time.Hour), withTitle("review"))

	for name, ordered := range map[string][]domain.Task{
		"forward":  {first, second},
		"reversed": {second, first},
	} {
		t.Run(name, func(t *testing.T) {
			analytics := newCalendarAnalytics()
			analytics.Load(ordered)

			forecast := analytics.Forecast()

			require.Len(t, forecast.ConflictRisks, 1)
			conflict := forecast.ConflictRisks[0]
			assert.Equal(t, domain.DayKey(start), conflict.Date)
			assert.GreaterOrEqual(t, conflict.ConflictCount, 1)
			assert.Contains(t, conflict.Events, "planning")
			assert.Contains(t, conflict.Events, "review")
		})
	}
}

func TestForecast_NonOverlappingEventsNoConflict(t *testing.T) {
	start := fixedNow.AddDate(0, 0, 2)

	analytics := newCalendarAnalytics()
	analytics.Load([]domain.Task{
		makeEvent(start, withEnd(start.Add(time.Hour))),
		// Touching intervals do not overlap.
		makeEvent(start.Add(time.Hour), withEnd(start.Add(2*time.Hour))),
	})

	assert.Empty(t, analytics.Forecast().ConflictRisks)
}

func TestLoad_ReplacesSnapshot(t *testing.T) {
	analytics := newCalendarAnalytics()
	analytics.Load([]domain.Task{
		makeEvent(fixedNow.AddDate(0, 0, 1)),
		makeEvent(fixedNow.AddDate(0, 0, 2)),
	})
	require.Equal(t, 2, analytics.Metrics(nil).TotalEvents)

	analytics.Load([]domain.Task{makeEvent(fixedNow.AddDate(0, 0, 3))})
	assert.Equal(t, 1, analytics.Metrics(nil).TotalEvents)
}

func TestLoad_DropsUnscheduledRecords(t *testing.T) {
	analytics := newCalendarAnalytics()
	analytics.Load([]domain.Task{
		makeEvent(fixedNow.AddDate(0, 0, 1)),
		makeTask(fixedNow.Add(-time.Hour)), // no start or due date
	})

	assert.Equal(t, 1, analytics.Metrics(nil).TotalEvents)
}
