package domain

// CalendarReport bundles all six calendar queries over one loaded snapshot.
type CalendarReport struct {
	Metrics      CalendarMetrics      `json:"metrics"`
	TimeAnalysis TimeAnalysis         `json:"timeAnalysis"`
	Insights     ProductivityInsights `json:"insights"`
	HealthScore  CalendarHealthScore  `json:"healthScore"`
	BurnoutRisk  CalendarBurnoutRisk  `json:"burnoutRisk"`
	Forecast     CalendarForecast     `json:"forecast"`
}

// CalendarMetrics are the headline calendar counters.
type CalendarMetrics struct {
	TotalEvents         int            `json:"totalEvents"`
	CompletedEvents     int            `json:"completedEvents"`
	UpcomingEvents      int            `json:"upcomingEvents"`
	OverdueEvents       int            `json:"overdueEvents"`
	CompletionRate      int            `json:"completionRate"`
	AverageEventsPerDay float64        `json:"averageEventsPerDay"`
	MostProductiveDay   string         `json:"mostProductiveDay"`
	PeakHour            int            `json:"peakHour"`
	EventsByCategory    map[string]int `json:"eventsByCategory"`
	EventsByPriority    map[string]int `json:"eventsByPriority"`
	CollaborativeEvents int            `json:"collaborativeEvents"`
	RecurringEvents     int            `json:"recurringEvents"`
}

// TimeAnalysis breaks event counts down across five time dimensions. Keys
// are present only for buckets with at least one event.
type TimeAnalysis struct {
	Hourly   map[int]int    `json:"hourly"`
	Daily    map[string]int `json:"daily"`
	Weekly   map[string]int `json:"weekly"`
	Monthly  map[string]int `json:"monthly"`
	Seasonal map[string]int `json:"seasonal"`
}

// ProductivityInsights are the qualitative calendar findings.
type ProductivityInsights struct {
	PeakProductivityHours []int            `json:"peakProductivityHours"`
	OptimalMeetingTimes   []int            `json:"optimalMeetingTimes"`
	BusyDays              []string         `json:"busyDays"`
	FreeDays              []string         `json:"freeDays"`
	WorkLifeBalance       WorkLifeBalance  `json:"workLifeBalance"`
	FocusTimeBlocks       []FocusTimeBlock `json:"focusTimeBlocks"`
}

// WorkLifeBalance compares work-flavored and personal-flavored categories.
type WorkLifeBalance struct {
	WorkEvents     int `json:"workEvents"`
	PersonalEvents int `json:"personalEvents"`
	// Ratio is workEvents/personalEvents, or the raw work count when there
	// are no personal events.
	Ratio float64 `json:"ratio"`
}

// FocusTimeBlock is a gap of at least two hours between adjacent events on
// the same weekday.
type FocusTimeBlock struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	// Duration is in hours, rounded to two decimals.
	Duration float64 `json:"duration"`
}

// CalendarHealthScore is the weighted composite 0-100 score.
type CalendarHealthScore struct {
	Score             int      `json:"score"`
	EventDistribution int      `json:"eventDistribution"`
	CompletionRate    int      `json:"completionRate"`
	TimeManagement    int      `json:"timeManagement"`
	Collaboration     int      `json:"collaboration"`
	Planning          int      `json:"planning"`
	Recommendations   []string `json:"recommendations"`
}

// CalendarBurnoutRisk averages five 0-100 indicators.
type CalendarBurnoutRisk struct {
	Score           int      `json:"score"`
	Level           string   `json:"level"`
	OverBooking     int      `json:"overBooking"`
	LongDays        int      `json:"longDays"`
	NoBreaks        int      `json:"noBreaks"`
	WeekendWork     int      `json:"weekendWork"`
	LateNightEvents int      `json:"lateNightEvents"`
	Suggestions     []string `json:"suggestions"`
}

// CalendarForecast looks at the next 7 and 30 days from "now".
type CalendarForecast struct {
	NextWeekLoad      float64        `json:"nextWeekLoad"`
	NextMonthLoad     float64        `json:"nextMonthLoad"`
	PredictedBusyDays []string       `json:"predictedBusyDays"`
	RecommendedBreaks []string       `json:"recommendedBreaks"`
	ConflictRisks     []ConflictRisk `json:"conflictRisks"`
}

// ConflictRisk reports overlapping events on one day.
type ConflictRisk struct {
	Date          string   `json:"date"`
	ConflictCount int      `json:"conflictCount"`
	Events        []string `json:"events"`
}
