package domain

// Report is the full productivity report derived from a flat task list.
// Every field is a value object recomputed per call; nothing here carries
// behavior or identity.
type Report struct {
	TaskStats         TaskStats         `json:"taskStats"`
	CategoryStats     []CategoryStat    `json:"categoryStats"`
	PriorityStats     PriorityStats     `json:"priorityStats"`
	ProductivityStats ProductivityStats `json:"productivityStats"`
	TimeStats         TimeStats         `json:"timeStats"`
	Trends            []TrendPoint      `json:"trends"`
	Prediction        Prediction        `json:"prediction"`
	Insights          AdvancedInsights  `json:"insights"`
	CompletionTrends  []DailyTrend      `json:"completionTrends"`
}

// TaskStats are the headline counters.
type TaskStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
	// CompletionRate is a percentage rounded to two decimals, 0 when the
	// list is empty.
	CompletionRate float64 `json:"completionRate"`
}

// CategoryStat is one per-category bucket, sorted descending by total.
type CategoryStat struct {
	Category   string `json:"category"`
	Total      int    `json:"total"`
	Completed  int    `json:"completed"`
	Percentage int    `json:"percentage"`
}

// PriorityStats counts tasks per priority level. Records without a
// recognized priority are not counted in any bucket.
type PriorityStats struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// NoDataLabel is the sentinel for day-level stats with no completed tasks.
const NoDataLabel = "No data"

// ProductivityStats describe completed-task activity, bucketed by creation
// time.
type ProductivityStats struct {
	CompletedToday     int `json:"completedToday"`
	CompletedThisWeek  int `json:"completedThisWeek"`
	CompletedThisMonth int `json:"completedThisMonth"`
	// AverageCompletionTime is the mean age of completed tasks in days.
	AverageCompletionTime float64 `json:"averageCompletionTime"`
	MostProductiveDay     string  `json:"mostProductiveDay"`
	CurrentStreak         int     `json:"currentStreak"`
}

// TimeStats hold the three fixed-size activity histograms.
type TimeStats struct {
	HourlyDistribution  [24]int      `json:"hourlyDistribution"`
	DailyDistribution   []DayCount   `json:"dailyDistribution"`
	MonthlyDistribution []MonthCount `json:"monthlyDistribution"`
}

// DayCount is one bucket of the last-7-days histogram, oldest first.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// MonthCount is one bucket of the last-6-months histogram, oldest first.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// TrendPoint is one weekly bucket of the 12-week trend, oldest first.
type TrendPoint struct {
	Period         string `json:"period"`
	Completed      int    `json:"completed"`
	Created        int    `json:"created"`
	CompletionRate int    `json:"completionRate"`
}

// Prediction bundles the forward-looking estimates.
type Prediction struct {
	NextWeek            NextWeekPrediction  `json:"nextWeek"`
	BurnoutRisk         BurnoutRisk         `json:"burnoutRisk"`
	GoalRecommendations GoalRecommendations `json:"goalRecommendations"`
}

// NextWeekPrediction extrapolates the last four trend buckets.
type NextWeekPrediction struct {
	ExpectedCompleted float64 `json:"expectedCompleted"`
	ExpectedRate      float64 `json:"expectedRate"`
	// Confidence is in [0.3, 0.95]; lower week-to-week variance means
	// higher confidence.
	Confidence float64 `json:"confidence"`
}

// BurnoutRisk is the additive-scored risk assessment.
type BurnoutRisk struct {
	Score       int      `json:"score"`
	Level       string   `json:"level"`
	Factors     []string `json:"factors"`
	Suggestions []string `json:"suggestions"`
}

// Risk levels shared by both engines.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// GoalRecommendations suggest completion targets and categories to focus on.
type GoalRecommendations struct {
	DailyTarget  int      `json:"dailyTarget"`
	WeeklyTarget int      `json:"weeklyTarget"`
	FocusAreas   []string `json:"focusAreas"`
}

// AdvancedInsights are the qualitative read on the same numbers.
type AdvancedInsights struct {
	WorkloadBalance WorkloadBalance `json:"workloadBalance"`
	TimeManagement  TimeManagement  `json:"timeManagement"`
	CategoryBalance CategoryBalance `json:"categoryBalance"`
}

// WorkloadBalance scores how sustainable the current load looks.
type WorkloadBalance struct {
	Score          int    `json:"score"`
	Status         string `json:"status"`
	Recommendation string `json:"recommendation"`
}

// Workload status labels.
const (
	WorkloadOptimal       = "optimal"
	WorkloadOverloaded    = "overloaded"
	WorkloadUnderutilized = "underutilized"
)

// TimeManagement reports the top activity hours and how concentrated work is.
type TimeManagement struct {
	PeakHours   []int    `json:"peakHours"`
	Efficiency  int      `json:"efficiency"`
	Suggestions []string `json:"suggestions"`
}

// CategoryBalance names the category that is falling behind.
type CategoryBalance struct {
	MostNeglected  string `json:"mostNeglected"`
	Recommendation string `json:"recommendation"`
}

// DailyTrend is one calendar-day bucket of the day-granularity trend.
type DailyTrend struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Rate      int    `json:"rate"`
}
