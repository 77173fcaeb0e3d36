// Package services contains the analytics engines for the analytics bounded
// context.
package services

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
)

const (
	trendWeeks      = 12
	predictionWeeks = 4
	streakLookback  = 365
)

// TaskAnalytics derives a full productivity report from a flat task list.
// Generate is a pure batch pass: same input, same output, no side effects.
type TaskAnalytics struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewTaskAnalytics creates a new task analytics engine.
func NewTaskAnalytics(logger *slog.Logger) *TaskAnalytics {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskAnalytics{
		logger: logger,
		now:    time.Now,
	}
}

// Generate computes the full report. An empty task list yields a zeroed
// report, never an error.
func (a *TaskAnalytics) Generate(tasks []domain.Task) domain.Report {
	now := a.now()

	stats := a.taskStats(tasks, now)
	categories := a.categoryStats(tasks)
	trends := a.weeklyTrends(tasks, now)

	report := domain.Report{
		TaskStats:         stats,
		CategoryStats:     categories,
		PriorityStats:     a.priorityStats(tasks),
		ProductivityStats: a.productivityStats(tasks, now),
		TimeStats:         a.timeStats(tasks, now),
		Trends:            trends,
		Prediction:        a.prediction(tasks, stats, categories, trends),
		Insights:          a.advancedInsights(tasks, stats, categories),
		CompletionTrends:  a.completionTrends(tasks),
	}

	a.logger.Debug("task report generated",
		"tasks", stats.Total,
		"completed", stats.Completed,
		"burnout_level", report.Prediction.BurnoutRisk.Level,
	)
	return report
}

func (a *TaskAnalytics) taskStats(tasks []domain.Task, now time.Time) domain.TaskStats {
	stats := domain.TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			stats.Completed++
			continue
		}
		if t.DueDate != nil && t.DueDate.Before(now) {
			stats.Overdue++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.CompletionRate = domain.Round2(float64(stats.Completed) / float64(stats.Total) * 100)
	}
	return stats
}

func (a *TaskAnalytics) categoryStats(tasks []domain.Task) []domain.CategoryStat {
	totals := make(map[string]*domain.CategoryStat)
	order := []string{}
	for _, t := range tasks {
		category := t.CategoryOrDefault()
		stat, ok := totals[category]
		if !ok {
			stat = &domain.CategoryStat{Category: category}
			totals[category] = stat
			order = append(order, category)
		}
		stat.Total++
		if t.Completed {
			stat.Completed++
		}
	}

	stats := make([]domain.CategoryStat, 0, len(order))
	for _, category := range order {
		stat := *totals[category]
		stat.Percentage = domain.RoundPercent(float64(stat.Completed) / float64(stat.Total) * 100)
		stats = append(stats, stat)
	}
	// Stable so ties keep their first-encountered order.
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Total > stats[j].Total })
	return stats
}

func (a *TaskAnalytics) priorityStats(tasks []domain.Task) domain.PriorityStats {
	var stats domain.PriorityStats
	for _, t := range tasks {
		switch t.Priority {
		case domain.PriorityHigh:
			stats.High++
		case domain.PriorityMedium:
			stats.Medium++
		case domain.PriorityLow:
			stats.Low++
		}
	}
	return stats
}

func (a *TaskAnalytics) productivityStats(tasks []domain.Task, now time.Time) domain.ProductivityStats {
	stats := domain.ProductivityStats{MostProductiveDay: domain.NoDataLabel}

	startOfToday := domain.StartOfDay(now)
	startOfWeek := domain.StartOfWeek(now)
	startOfMonth := domain.StartOfMonth(now)

	var ageDaysSum float64
	var completedCount int
	dayCounts := make(map[string]int)
	dayOrder := []string{}
	completedDays := make(map[string]bool)

	for _, t := range tasks {
		if !t.Completed {
			continue
		}
		completedCount++

		if !t.CreatedAt.Before(startOfToday) {
			stats.CompletedToday++
		}
		if !t.CreatedAt.Before(startOfWeek) {
			stats.CompletedThisWeek++
		}
		if !t.CreatedAt.Before(startOfMonth) {
			stats.CompletedThisMonth++
		}

		ageDaysSum += now.Sub(t.CreatedAt).Hours() / 24

		weekday := t.CreatedAt.Weekday().String()
		if _, seen := dayCounts[weekday]; !seen {
			dayOrder = append(dayOrder, weekday)
		}
		dayCounts[weekday]++

		completedDays[domain.DayKey(t.CreatedAt)] = true
	}

	if completedCount > 0 {
		stats.AverageCompletionTime = domain.Round2(ageDaysSum / float64(completedCount))

		// Stable sort keeps first-encountered weekday ahead on ties.
		sort.SliceStable(dayOrder, func(i, j int) bool {
			return dayCounts[dayOrder[i]] > dayCounts[dayOrder[j]]
		})
		stats.MostProductiveDay = dayOrder[0]
	}

	stats.CurrentStreak = a.currentStreak(completedDays, startOfToday)
	return stats
}

// currentStreak counts consecutive days with at least one completion,
// walking backward from today. A completion-free today does not break the
// streak; any other gap does.
func (a *TaskAnalytics) currentStreak(completedDays map[string]bool, startOfToday time.Time) int {
	streak := 0
	for i := 0; i < streakLookback; i++ {
		day := startOfToday.AddDate(0, 0, -i)
		if completedDays[domain.DayKey(day)] {
			streak++
			continue
		}
		if i == 0 {
			continue
		}
		break
	}
	return streak
}

func (a *TaskAnalytics) timeStats(tasks []domain.Task, now time.Time) domain.TimeStats {
	var stats domain.TimeStats

	for _, t := range tasks {
		stats.HourlyDistribution[t.CreatedAt.Hour()]++
	}

	startOfToday := domain.StartOfDay(now)
	stats.DailyDistribution = make([]domain.DayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		day := startOfToday.AddDate(0, 0, -i)
		count := 0
		for _, t := range tasks {
			if domain.DayKey(t.CreatedAt) == domain.DayKey(day) {
				count++
			}
		}
		stats.DailyDistribution = append(stats.DailyDistribution, domain.DayCount{
			Day:   day.Format("Mon"),
			Count: count,
		})
	}

	stats.MonthlyDistribution = make([]domain.MonthCount, 0, 6)
	for i := 5; i >= 0; i-- {
		month := domain.StartOfMonth(now).AddDate(0, -i, 0)
		count := 0
		for _, t := range tasks {
			if t.CreatedAt.Year() == month.Year() && t.CreatedAt.Month() == month.Month() {
				count++
			}
		}
		stats.MonthlyDistribution = append(stats.MonthlyDistribution, domain.MonthCount{
			Month: month.Format("Jan"),
			Count: count,
		})
	}

	return stats
}

// weeklyTrends buckets the last twelve rolling weeks, oldest first. The
// newest bucket covers the seven days ending at "now".
func (a *TaskAnalytics) weeklyTrends(tasks []domain.Task, now time.Time) []domain.TrendPoint {
	trends := make([]domain.TrendPoint, 0, trendWeeks)
	for i := trendWeeks - 1; i >= 0; i-- {
		start := now.AddDate(0, 0, -(i+1)*7)
		end := now.AddDate(0, 0, -i*7)

		point := domain.TrendPoint{Period: start.Format("Jan 2")}
		for _, t := range tasks {
			if t.CreatedAt.Before(start) || !t.CreatedAt.Before(end) {
				continue
			}
			point.Created++
			if t.Completed {
				point.Completed++
			}
		}
		if point.Created > 0 {
			point.CompletionRate = domain.RoundPercent(float64(point.Completed) / float64(point.Created) * 100)
		}
		trends = append(trends, point)
	}
	return trends
}

func (a *TaskAnalytics) prediction(
	tasks []domain.Task,
	stats domain.TaskStats,
	categories []domain.CategoryStat,
	trends []domain.TrendPoint,
) domain.Prediction {
	recent := trends[len(trends)-predictionWeeks:]

	var completedSum, rateSum float64
	for _, point := range recent {
		completedSum += float64(point.Completed)
		rateSum += float64(point.CompletionRate)
	}
	avgCompleted := completedSum / predictionWeeks
	avgRate := rateSum / predictionWeeks

	var variance float64
	for _, point := range recent {
		diff := float64(point.CompletionRate) - avgRate
		variance += diff * diff
	}
	variance /= predictionWeeks

	return domain.Prediction{
		NextWeek: domain.NextWeekPrediction{
			ExpectedCompleted: domain.Round2(avgCompleted),
			ExpectedRate:      domain.Round2(avgRate),
			Confidence:        domain.Round2(domain.Clamp(1-variance/1000, 0.3, 0.95)),
		},
		BurnoutRisk:         a.burnoutRisk(tasks, stats, trends),
		GoalRecommendations: a.goalRecommendations(categories, avgCompleted),
	}
}

// burnoutRisk scores four independent checks additively: 30 + 25 + 20 + 15.
func (a *TaskAnalytics) burnoutRisk(tasks []domain.Task, stats domain.TaskStats, trends []domain.TrendPoint) domain.BurnoutRisk {
	risk := domain.BurnoutRisk{
		Level:       domain.RiskLow,
		Factors:     []string{},
		Suggestions: []string{},
	}

	if stats.Overdue > 5 {
		risk.Score += 30
		risk.Factors = append(risk.Factors, "High number of overdue tasks")
		risk.Suggestions = append(risk.Suggestions, "Reschedule or break down overdue tasks")
	}

	if stats.Pending > 0 {
		highPending := 0
		for _, t := range tasks {
			if !t.Completed && t.Priority == domain.PriorityHigh {
				highPending++
			}
		}
		if float64(highPending)/float64(stats.Pending) > 0.5 {
			risk.Score += 25
			risk.Factors = append(risk.Factors, "Most pending tasks are high priority")
			risk.Suggestions = append(risk.Suggestions, "Delegate or defer some high-priority work")
		}
	}

	last3 := trends[len(trends)-3:]
	if last3[1].CompletionRate < last3[0].CompletionRate &&
		last3[2].CompletionRate < last3[1].CompletionRate {
		risk.Score += 20
		risk.Factors = append(risk.Factors, "Completion rate declining for three weeks")
		risk.Suggestions = append(risk.Suggestions, "Reduce weekly commitments until the trend recovers")
	}

	var createdSum int
	for _, point := range trends {
		createdSum += point.Created
	}
	avgCreated := float64(createdSum) / float64(len(trends))
	if float64(trends[len(trends)-1].Created) > avgCreated*1.5 {
		risk.Score += 15
		risk.Factors = append(risk.Factors, "Task intake well above your usual pace")
		risk.Suggestions = append(risk.Suggestions, "Slow down on taking in new tasks this week")
	}

	switch {
	case risk.Score >= 60:
		risk.Level = domain.RiskHigh
	case risk.Score >= 30:
		risk.Level = domain.RiskMedium
	}

	if len(risk.Factors) == 0 {
		risk.Suggestions = append(risk.Suggestions, "Maintain your current balance between work and rest")
	}
	return risk
}

func (a *TaskAnalytics) goalRecommendations(categories []domain.CategoryStat, avgWeeklyCompleted float64) domain.GoalRecommendations {
	daily := int(math.Round(avgWeeklyCompleted / 7))
	if daily < 1 {
		daily = 1
	}

	focus := []string{}
	for _, stat := range categories {
		if stat.Total >= 3 && stat.Percentage < 60 {
			focus = append(focus, stat.Category)
			if len(focus) == 3 {
				break
			}
		}
	}
	if len(focus) == 0 {
		focus = append(focus, "Maintain consistency across categories")
	}

	return domain.GoalRecommendations{
		DailyTarget:  daily,
		WeeklyTarget: int(math.Round(avgWeeklyCompleted * 1.1)),
		FocusAreas:   focus,
	}
}

func (a *TaskAnalytics) advancedInsights(tasks []domain.Task, stats domain.TaskStats, categories []domain.CategoryStat) domain.AdvancedInsights {
	return domain.AdvancedInsights{
		WorkloadBalance: a.workloadBalance(stats),
		TimeManagement:  a.timeManagement(tasks),
		CategoryBalance: a.categoryBalance(categories),
	}
}

func (a *TaskAnalytics) workloadBalance(stats domain.TaskStats) domain.WorkloadBalance {
	score := 50.0

	switch {
	case stats.CompletionRate > 80:
		score += 25
	case stats.CompletionRate > 60:
		score += 10
	case stats.CompletionRate < 40:
		score -= 20
	}

	if stats.Total > 0 {
		pendingRatio := float64(stats.Pending) / float64(stats.Total)
		if pendingRatio < 0.3 {
			score += 15
		} else if pendingRatio > 0.7 {
			score -= 15
		}
	}

	balance := domain.WorkloadBalance{Score: int(domain.Clamp(score, 0, 100))}
	switch {
	case balance.Score >= 70:
		balance.Status = domain.WorkloadOptimal
		balance.Recommendation = "Workload is well balanced, keep the current pace"
	case balance.Score >= 50:
		balance.Status = domain.WorkloadOverloaded
		balance.Recommendation = "Consider deferring or delegating lower-priority tasks"
	default:
		balance.Status = domain.WorkloadUnderutilized
		balance.Recommendation = "There is room to take on more work or raise your targets"
	}
	return balance
}

func (a *TaskAnalytics) timeManagement(tasks []domain.Task) domain.TimeManagement {
	var hourly [24]int
	for _, t := range tasks {
		hourly[t.CreatedAt.Hour()]++
	}

	hours := make([]int, 24)
	for h := range hours {
		hours[h] = h
	}
	sort.SliceStable(hours, func(i, j int) bool { return hourly[hours[i]] > hourly[hours[j]] })
	peaks := hours[:3]

	tm := domain.TimeManagement{
		PeakHours:   peaks,
		Suggestions: []string{},
	}
	if len(tasks) > 0 {
		peakCount := hourly[peaks[0]] + hourly[peaks[1]] + hourly[peaks[2]]
		tm.Efficiency = domain.RoundPercent(float64(peakCount) / float64(len(tasks)) * 100)
	}

	if tm.Efficiency < 50 {
		tm.Suggestions = append(tm.Suggestions, "Task activity is scattered across the day, try batching work into your peak hours")
	}
	for _, h := range peaks {
		if h < 6 || h > 22 {
			tm.Suggestions = append(tm.Suggestions, "Peak activity falls outside typical working hours, watch your rest schedule")
			break
		}
	}
	return tm
}

func (a *TaskAnalytics) categoryBalance(categories []domain.CategoryStat) domain.CategoryBalance {
	neglected := ""
	lowest := 101
	for _, stat := range categories {
		if stat.Total >= 3 && stat.Percentage < lowest {
			lowest = stat.Percentage
			neglected = stat.Category
		}
	}

	balance := domain.CategoryBalance{MostNeglected: neglected}
	switch {
	case neglected == "":
		balance.Recommendation = "Not enough tasks per category to assess balance yet"
	case lowest < 50:
		balance.Recommendation = "Completion is lagging in " + neglected + ", consider giving it dedicated time"
	default:
		balance.Recommendation = "Good balance across categories"
	}
	return balance
}

func (a *TaskAnalytics) completionTrends(tasks []domain.Task) []domain.DailyTrend {
	type dayAgg struct {
		completed int
		total     int
	}
	byDay := make(map[string]*dayAgg)
	for _, t := range tasks {
		key := domain.DayKey(t.CreatedAt)
		agg, ok := byDay[key]
		if !ok {
			agg = &dayAgg{}
			byDay[key] = agg
		}
		agg.total++
		if t.Completed {
			agg.completed++
		}
	}

	dates := make([]string, 0, len(byDay))
	for date := range byDay {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	trends := make([]domain.DailyTrend, 0, len(dates))
	for _, date := range dates {
		agg := byDay[date]
		trends = append(trends, domain.DailyTrend{
			Date:      date,
			Completed: agg.completed,
			Total:     agg.total,
			Rate:      domain.RoundPercent(float64(agg.completed) / float64(agg.total) * 100),
		})
	}
	return trends
}
