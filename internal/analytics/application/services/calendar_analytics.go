package services

import (
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
)

const (
	defaultRangeDays  = 30
	focusBlockMinGap  = 2 * time.Hour
	maxFocusBlocks    = 10
	shortEventMax     = time.Hour
	longEventMin      = 3 * time.Hour
	overbookedPerDay  = 8
	longDaySpan       = 10 * time.Hour
	minBreakGap       = 15 * time.Minute
	planningLeadTime  = 24 * time.Hour
	maxConflictDays   = 5
	maxRecommendedOff = 5
)

// Health score weights. Load-bearing constants, do not tune.
const (
	weightDistribution   = 0.2
	weightCompletion     = 0.3
	weightTimeManagement = 0.25
	weightCollaboration  = 0.15
	weightPlanning       = 0.1
)

// meetingCandidateHours are the hours considered for optimal meeting slots.
var meetingCandidateHours = []int{9, 10, 11, 14, 15, 16}

// fallbackMeetingHours are suggested when no candidate hour stands out.
var fallbackMeetingHours = []int{9, 10, 14, 15}

var workCategories = map[string]bool{
	"work": true, "meeting": true, "business": true, "office": true,
}

var personalCategories = map[string]bool{
	"personal": true, "family": true, "health": true, "hobby": true, "social": true,
}

// CalendarAnalytics answers report queries against one loaded event
// snapshot. Load replaces the snapshot wholesale and queries never mutate
// it, so any number of queries may follow a completed Load. The engine is
// not safe for a Load racing an in-flight query; callers needing a
// consistent snapshot serialize Load against queries.
type CalendarAnalytics struct {
	logger *slog.Logger
	now    func() time.Time
	events []domain.Event
}

// NewCalendarAnalytics creates a calendar analytics engine with an empty
// snapshot.
func NewCalendarAnalytics(logger *slog.Logger) *CalendarAnalytics {
	if logger == nil {
		logger = slog.Default()
	}
	return &CalendarAnalytics{
		logger: logger,
		now:    time.Now,
	}
}

// Load normalizes the given records and replaces the current snapshot.
// Records without a start or due date are dropped.
func (a *CalendarAnalytics) Load(tasks []domain.Task) {
	a.events = domain.NormalizeEvents(tasks)
	a.logger.Debug("calendar snapshot loaded", "events", len(a.events), "records", len(tasks))
}

// Report runs every query against the loaded snapshot.
func (a *CalendarAnalytics) Report(r *domain.DateRange) domain.CalendarReport {
	return domain.CalendarReport{
		Metrics:      a.Metrics(r),
		TimeAnalysis: a.TimeAnalysis(r),
		Insights:     a.Insights(r),
		HealthScore:  a.HealthScore(r),
		BurnoutRisk:  a.BurnoutRisk(r),
		Forecast:     a.Forecast(),
	}
}

func (a *CalendarAnalytics) inRange(r *domain.DateRange) []domain.Event {
	if r == nil {
		return a.events
	}
	events := make([]domain.Event, 0, len(a.events))
	for _, e := range a.events {
		if r.Contains(e.Start) {
			events = append(events, e)
		}
	}
	return events
}

func rangeDays(r *domain.DateRange) int {
	if r == nil {
		return defaultRangeDays
	}
	return r.Days()
}

// Metrics computes the headline counters for the optionally ranged snapshot.
func (a *CalendarAnalytics) Metrics(r *domain.DateRange) domain.CalendarMetrics {
	events := a.inRange(r)
	now := a.now()

	metrics := domain.CalendarMetrics{
		TotalEvents:      len(events),
		EventsByCategory: make(map[string]int),
		EventsByPriority: make(map[string]int),
	}

	for _, e := range events {
		switch {
		case e.Completed:
			metrics.CompletedEvents++
		case e.Start.After(now):
			metrics.UpcomingEvents++
		case e.Start.Before(now):
			metrics.OverdueEvents++
		}

		metrics.EventsByCategory[e.Category]++
		metrics.EventsByPriority[string(e.Priority)]++
		if e.Collaborative {
			metrics.CollaborativeEvents++
		}
		if e.Recurring {
			metrics.RecurringEvents++
		}
	}

	if metrics.TotalEvents > 0 {
		metrics.CompletionRate = domain.RoundPercent(float64(metrics.CompletedEvents) / float64(metrics.TotalEvents) * 100)
	}
	metrics.AverageEventsPerDay = domain.Round2(float64(metrics.TotalEvents) / float64(rangeDays(r)))

	timeAnalysis := a.TimeAnalysis(r)
	metrics.MostProductiveDay = busiestDay(timeAnalysis.Daily)
	metrics.PeakHour = busiestHour(timeAnalysis.Hourly)

	return metrics
}

// TimeAnalysis breaks event counts down by hour, weekday, week, month and
// season. Only buckets with events appear.
func (a *CalendarAnalytics) TimeAnalysis(r *domain.DateRange) domain.TimeAnalysis {
	analysis := domain.TimeAnalysis{
		Hourly:   make(map[int]int),
		Daily:    make(map[string]int),
		Weekly:   make(map[string]int),
		Monthly:  make(map[string]int),
		Seasonal: make(map[string]int),
	}

	for _, e := range a.inRange(r) {
		analysis.Hourly[e.Start.Hour()]++
		analysis.Daily[e.Start.Weekday().String()]++
		analysis.Weekly["Week "+strconv.Itoa(domain.WeekNumber(e.Start))]++
		analysis.Monthly[e.Start.Month().String()]++
		analysis.Seasonal[domain.Season(e.Start)]++
	}
	return analysis
}

// Insights derives the qualitative findings for the ranged snapshot.
func (a *CalendarAnalytics) Insights(r *domain.DateRange) domain.ProductivityInsights {
	events := a.inRange(r)

	completedByHour := make(map[int]int)
	byWeekday := make(map[time.Weekday][]domain.Event)
	weekdayCounts := make(map[time.Weekday]int)

	for _, e := range events {
		if e.Completed {
			completedByHour[e.Start.Hour()]++
		}
		day := e.Start.Weekday()
		byWeekday[day] = append(byWeekday[day], e)
		weekdayCounts[day]++
	}

	busy, free := classifyDays(weekdayCounts, len(events))

	return domain.ProductivityInsights{
		PeakProductivityHours: topHours(completedByHour, 3),
		OptimalMeetingTimes:   optimalMeetingTimes(completedByHour),
		BusyDays:              busy,
		FreeDays:              free,
		WorkLifeBalance:       workLifeBalance(events),
		FocusTimeBlocks:       focusTimeBlocks(byWeekday),
	}
}

// HealthScore computes the five 0-100 factors and their weighted composite.
func (a *CalendarAnalytics) HealthScore(r *domain.DateRange) domain.CalendarHealthScore {
	events := a.inRange(r)

	weekdayCounts := make(map[time.Weekday]int)
	for _, e := range events {
		weekdayCounts[e.Start.Weekday()]++
	}
	busy, free := classifyDays(weekdayCounts, len(events))

	score := domain.CalendarHealthScore{
		EventDistribution: int(domain.Clamp(80-10*float64(len(busy))+5*float64(len(free)), 0, 100)),
		Planning:          100,
		Recommendations:   []string{},
	}

	if n := len(events); n > 0 {
		completed, short, long, collaborative, planned := 0, 0, 0, 0, 0
		for _, e := range events {
			if e.Completed {
				completed++
			}
			if e.Duration() <= shortEventMax {
				short++
			}
			if e.Duration() > longEventMin {
				long++
			}
			if e.Collaborative {
				collaborative++
			}
			if e.Start.Sub(e.CreatedAt) >= planningLeadTime {
				planned++
			}
		}
		fn := float64(n)
		score.CompletionRate = domain.RoundPercent(float64(completed) / fn * 100)
		score.TimeManagement = int(domain.Clamp(60+40*float64(short)/fn-30*float64(long)/fn, 0, 100))
		score.Collaboration = int(math.Min(100, math.Round(2*float64(collaborative)/fn*100)))
		score.Planning = domain.RoundPercent(float64(planned) / fn * 100)
	}

	score.Score = overallHealthScore(
		score.EventDistribution,
		score.CompletionRate,
		score.TimeManagement,
		score.Collaboration,
		score.Planning,
	)

	if score.EventDistribution < 70 {
		score.Recommendations = append(score.Recommendations, "Spread events more evenly across the week")
	}
	if score.CompletionRate < 80 {
		score.Recommendations = append(score.Recommendations, "Complete or reschedule events you cannot attend")
	}
	if score.TimeManagement < 70 {
		score.Recommendations = append(score.Recommendations, "Prefer shorter events, long blocks crowd out focus time")
	}
	if score.Collaboration < 60 {
		score.Recommendations = append(score.Recommendations, "Consider more collaborative sessions")
	}
	if score.Planning < 70 {
		score.Recommendations = append(score.Recommendations, "Plan events at least a day ahead")
	}
	return score
}

// overallHealthScore applies the fixed factor weights.
func overallHealthScore(distribution, completion, timeManagement, collaboration, planning int) int {
	return domain.RoundPercent(
		float64(distribution)*weightDistribution +
			float64(completion)*weightCompletion +
			float64(timeManagement)*weightTimeManagement +
			float64(collaboration)*weightCollaboration +
			float64(planning)*weightPlanning,
	)
}

// BurnoutRisk averages five calendar pressure indicators.
func (a *CalendarAnalytics) BurnoutRisk(r *domain.DateRange) domain.CalendarBurnoutRisk {
	events := a.inRange(r)
	risk := domain.CalendarBurnoutRisk{
		Level:       domain.RiskLow,
		Suggestions: []string{},
	}

	byDay := make(map[string][]domain.Event)
	for _, e := range events {
		key := domain.DayKey(e.Start)
		byDay[key] = append(byDay[key], e)
	}

	if len(byDay) > 0 {
		overbooked, long := 0, 0
		for _, day := range byDay {
			if len(day) > overbookedPerDay {
				overbooked++
			}
			first, last := day[0].Start, day[0].End
			for _, e := range day[1:] {
				if e.Start.Before(first) {
					first = e.Start
				}
				if e.End.After(last) {
					last = e.End
				}
			}
			if last.Sub(first) > longDaySpan {
				long++
			}
		}
		totalDays := float64(len(byDay))
		risk.OverBooking = domain.RoundPercent(float64(overbooked) / totalDays * 100)
		risk.LongDays = domain.RoundPercent(float64(long) / totalDays * 100)
	}

	// Gap check runs over the globally sorted list, so pairs spanning
	// midnight count as missing breaks too. Known approximation.
	if len(events) > 1 {
		sorted := make([]domain.Event, len(events))
		copy(sorted, events)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

		tight := 0
		for i := 1; i < len(sorted); i++ {
			if sorted[i].Start.Sub(sorted[i-1].End) < minBreakGap {
				tight++
			}
		}
		risk.NoBreaks = domain.RoundPercent(float64(tight) / float64(len(sorted)-1) * 100)
	}

	if n := len(events); n > 0 {
		weekend, late := 0, 0
		for _, e := range events {
			if wd := e.Start.Weekday(); wd == time.Saturday || wd == time.Sunday {
				weekend++
			}
			if h := e.Start.Hour(); h >= 20 || h <= 6 {
				late++
			}
		}
		risk.WeekendWork = domain.RoundPercent(float64(weekend) / float64(n) * 100)
		risk.LateNightEvents = domain.RoundPercent(float64(late) / float64(n) * 100)
	}

	risk.Score = domain.RoundPercent(float64(risk.OverBooking+risk.LongDays+risk.NoBreaks+risk.WeekendWork+risk.LateNightEvents) / 5)
	switch {
	case risk.Score >= 70:
		risk.Level = domain.RiskHigh
	case risk.Score >= 30:
		risk.Level = domain.RiskMedium
	}

	if risk.OverBooking > 70 {
		risk.Suggestions = append(risk.Suggestions, "Avoid stacking more than a handful of events on one day")
	}
	if risk.LongDays > 70 {
		risk.Suggestions = append(risk.Suggestions, "Shorten your longest days, a ten-hour span leaves no recovery time")
	}
	if risk.NoBreaks > 70 {
		risk.Suggestions = append(risk.Suggestions, "Leave breathing room between back-to-back events")
	}
	if risk.WeekendWork > 50 {
		risk.Suggestions = append(risk.Suggestions, "Protect your weekends from scheduled work")
	}
	if risk.LateNightEvents > 50 {
		risk.Suggestions = append(risk.Suggestions, "Move late-night events into daytime hours")
	}
	if len(risk.Suggestions) == 0 {
		risk.Suggestions = append(risk.Suggestions, "Your calendar looks well balanced")
	}
	return risk
}

// Forecast always projects the next 7 and 30 days from "now", ignoring any
// caller-supplied range.
func (a *CalendarAnalytics) Forecast() domain.CalendarForecast {
	now := a.now()
	weekEnd := now.AddDate(0, 0, 7)
	monthEnd := now.AddDate(0, 0, 30)

	var next7, next30 int
	byDay := make(map[string][]domain.Event)
	for _, e := range a.events {
		if !e.Start.After(now) {
			continue
		}
		if e.Start.Before(weekEnd) {
			next7++
		}
		if e.Start.Before(monthEnd) {
			next30++
			byDay[domain.DayKey(e.Start)] = append(byDay[domain.DayKey(e.Start)], e)
		}
	}

	forecast := domain.CalendarForecast{
		NextWeekLoad:      domain.Round2(math.Min(100, float64(next7)/7*10)),
		NextMonthLoad:     domain.Round2(math.Min(100, float64(next30)/30*5)),
		PredictedBusyDays: []string{},
		RecommendedBreaks: []string{},
		ConflictRisks:     []domain.ConflictRisk{},
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	avgPerDay := float64(next30) / 30
	for _, day := range days {
		if float64(len(byDay[day])) > avgPerDay*1.5 {
			forecast.PredictedBusyDays = append(forecast.PredictedBusyDays, day)
		}
	}

	for i := 1; i <= 30 && len(forecast.RecommendedBreaks) < maxRecommendedOff; i++ {
		day := domain.DayKey(domain.StartOfDay(now).AddDate(0, 0, i))
		if len(byDay[day]) == 0 {
			forecast.RecommendedBreaks = append(forecast.RecommendedBreaks, day)
		}
	}

	for _, day := range days {
		if conflict, ok := dayConflicts(day, byDay[day]); ok {
			forecast.ConflictRisks = append(forecast.ConflictRisks, conflict)
		}
	}
	sort.SliceStable(forecast.ConflictRisks, func(i, j int) bool {
		return forecast.ConflictRisks[i].ConflictCount > forecast.ConflictRisks[j].ConflictCount
	})
	if len(forecast.ConflictRisks) > maxConflictDays {
		forecast.ConflictRisks = forecast.ConflictRisks[:maxConflictDays]
	}

	return forecast
}

// dayConflicts pairwise-checks one day's events for interval overlap.
func dayConflicts(day string, events []domain.Event) (domain.ConflictRisk, bool) {
	conflict := domain.ConflictRisk{Date: day}
	seen := make(map[string]bool)

	for i := 0; i < len(events); i++ {
		for j := i + 1; j < len(events); j++ {
			if !events[i].Overlaps(events[j]) {
				continue
			}
			conflict.ConflictCount++
			for _, title := range []string{events[i].Title, events[j].Title} {
				if !seen[title] {
					seen[title] = true
					conflict.Events = append(conflict.Events, title)
				}
			}
		}
	}
	return conflict, conflict.ConflictCount > 0
}

// Helpers

func busiestDay(daily map[string]int) string {
	best := domain.NoDataLabel
	max := 0
	for day := time.Sunday; day <= time.Saturday; day++ {
		if count := daily[day.String()]; count > max {
			max = count
			best = day.String()
		}
	}
	return best
}

func busiestHour(hourly map[int]int) int {
	best, max := 0, 0
	for h := 0; h < 24; h++ {
		if hourly[h] > max {
			max = hourly[h]
			best = h
		}
	}
	return best
}

// topHours returns up to n hours ordered by descending count, ties broken by
// the earlier hour.
func topHours(byHour map[int]int, n int) []int {
	hours := make([]int, 0, len(byHour))
	for h := 0; h < 24; h++ {
		if byHour[h] > 0 {
			hours = append(hours, h)
		}
	}
	sort.SliceStable(hours, func(i, j int) bool { return byHour[hours[i]] > byHour[hours[j]] })
	if len(hours) > n {
		hours = hours[:n]
	}
	return hours
}

// optimalMeetingTimes keeps candidate hours that outperform both immediate
// neighbors, falling back to a fixed set when none do.
func optimalMeetingTimes(completedByHour map[int]int) []int {
	optimal := []int{}
	for _, h := range meetingCandidateHours {
		if completedByHour[h] > completedByHour[h-1]+completedByHour[h+1] {
			optimal = append(optimal, h)
		}
	}
	if len(optimal) == 0 {
		return append([]int{}, fallbackMeetingHours...)
	}
	return optimal
}

// classifyDays splits weekdays into busy (>1.2x the daily average) and free
// (<0.5x).
func classifyDays(weekdayCounts map[time.Weekday]int, total int) (busy, free []string) {
	busy, free = []string{}, []string{}
	avg := float64(total) / 7
	for day := time.Sunday; day <= time.Saturday; day++ {
		count := float64(weekdayCounts[day])
		switch {
		case count > avg*1.2:
			busy = append(busy, day.String())
		case count < avg*0.5:
			free = append(free, day.String())
		}
	}
	return busy, free
}

func workLifeBalance(events []domain.Event) domain.WorkLifeBalance {
	balance := domain.WorkLifeBalance{}
	for _, e := range events {
		category := strings.ToLower(e.Category)
		if workCategories[category] {
			balance.WorkEvents++
		}
		if personalCategories[category] {
			balance.PersonalEvents++
		}
	}
	if balance.PersonalEvents > 0 {
		balance.Ratio = domain.Round2(float64(balance.WorkEvents) / float64(balance.PersonalEvents))
	} else {
		balance.Ratio = float64(balance.WorkEvents)
	}
	return balance
}

// focusTimeBlocks finds gaps of at least two hours between adjacent events
// per weekday, in discovery order, capped at ten blocks.
func focusTimeBlocks(byWeekday map[time.Weekday][]domain.Event) []domain.FocusTimeBlock {
	blocks := []domain.FocusTimeBlock{}
	for day := time.Sunday; day <= time.Saturday; day++ {
		events := byWeekday[day]
		if len(events) < 2 {
			continue
		}
		sorted := make([]domain.Event, len(events))
		copy(sorted, events)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

		for i := 1; i < len(sorted); i++ {
			gap := sorted[i].Start.Sub(sorted[i-1].End)
			if gap < focusBlockMinGap {
				continue
			}
			blocks = append(blocks, domain.FocusTimeBlock{
				Day:       day.String(),
				StartTime: sorted[i-1].End.Format("15:04"),
				EndTime:   sorted[i].Start.Format("15:04"),
				Duration:  domain.Round2(gap.Hours()),
			})
			if len(blocks) == maxFocusBlocks {
				return blocks
			}
		}
	}
	return blocks
}

