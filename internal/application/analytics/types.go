package analytics

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Vidyuzz/film-cost-flow-sub000/internal/domain"
)

// DepartmentBreakdown is one row of a project summary: the department budget
// against its non-cancelled spend.
type DepartmentBreakdown struct {
	DepartmentID    uuid.UUID       `json:"department_id"`
	Name            string          `json:"name"`
	Budget          decimal.Decimal `json:"budget"`
	Spent           decimal.Decimal `json:"spent"`
	Remaining       decimal.Decimal `json:"remaining"`
	VariancePercent float64         `json:"variance_percent"`
}

type ProjectSummary struct {
	ProjectID       uuid.UUID             `json:"project_id"`
	Title           string                `json:"title"`
	Currency        string                `json:"currency"`
	TotalBudget     decimal.Decimal       `json:"total_budget"`
	TotalSpent      decimal.Decimal       `json:"total_spent"`
	RemainingBudget decimal.Decimal       `json:"remaining_budget"`
	VariancePercent float64               `json:"variance_percent"`
	Departments     []DepartmentBreakdown `json:"departments"`
}

// DepartmentSpend is one department's share of a daily cost report.
type DepartmentSpend struct {
	DepartmentID uuid.UUID       `json:"department_id"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
}

type DailyCostReport struct {
	ProjectID       uuid.UUID         `json:"project_id"`
	Date            string            `json:"date"`
	ByDepartment    []DepartmentSpend `json:"by_department"`
	PettyCashDebits decimal.Decimal   `json:"petty_cash_debits"`
	Total           decimal.Decimal   `json:"total"`
}

// TagCount is an issue tag with its mention count, ordered by descending
// count with ties broken by first appearance.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// ProductionDaySummary places one day's spend against the project's average
// spend per shoot day: ProjectDayAverage is non-cancelled day-tied spend over
// the number of shoot days, and SpendVsAveragePercent is this day's deviation
// from it (0 when the average is zero).
type ProductionDaySummary struct {
	ShootDayID            uuid.UUID             `json:"shoot_day_id"`
	Date                  string                `json:"date"`
	Status                domain.ShootDayStatus `json:"status"`
	TotalSpent            decimal.Decimal       `json:"total_spent"`
	ProjectDayAverage     decimal.Decimal       `json:"project_day_average"`
	SpendVsAveragePercent float64               `json:"spend_vs_average_percent"`
	ScheduleTotal         int                   `json:"schedule_total"`
	ScheduleDone          int                   `json:"schedule_done"`
	CompletionPercent     float64               `json:"completion_percent"`
	FeedbackCount         int                   `json:"feedback_count"`
	AverageRating         float64               `json:"average_rating"`
	TopIssueTags          []TagCount            `json:"top_issue_tags"`
	PropsOut              int                   `json:"props_out"`
	PropsReturned         int                   `json:"props_returned"`
	PropsOverdue          int                   `json:"props_overdue"`
}

type ScheduleAdherenceReport struct {
	ShootDayID        uuid.UUID `json:"shoot_day_id"`
	Total             int       `json:"total"`
	Planned           int       `json:"planned"`
	InProgress        int       `json:"in_progress"`
	Done              int       `json:"done"`
	Dropped           int       `json:"dropped"`
	CompletionPercent float64   `json:"completion_percent"`
	DroppedPercent    float64   `json:"dropped_percent"`
}

// CustodyRow is one checkout with its read-time status.
type CustodyRow struct {
	CheckoutID   uuid.UUID             `json:"checkout_id"`
	PropID       uuid.UUID             `json:"prop_id"`
	PropName     string                `json:"prop_name"`
	CheckedOutBy string                `json:"checked_out_by"`
	DueReturn    string                `json:"due_return"`
	Status       domain.CheckoutStatus `json:"status"`
}

type PropsCustodyReport struct {
	ShootDayID uuid.UUID    `json:"shoot_day_id"`
	Rows       []CustodyRow `json:"rows"`
	Out        int          `json:"out"`
	Returned   int          `json:"returned"`
	Overdue    int          `json:"overdue"`
}

// CrewRating is one crew member's aggregated feedback for a day.
type CrewRating struct {
	CrewID        uuid.UUID `json:"crew_id"`
	Name          string    `json:"name"`
	FeedbackCount int       `json:"feedback_count"`
	AverageRating float64   `json:"average_rating"`
}

type CrewPerformanceReport struct {
	ShootDayID     uuid.UUID    `json:"shoot_day_id"`
	Crew           []CrewRating `json:"crew"`
	AnonymousCount int          `json:"anonymous_count"`
	DayAverage     float64      `json:"day_average"`
}
