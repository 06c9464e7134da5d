package analytics

import (
	"context"
	"testing"

	"github.com/Vidyuzz/film-cost-flow-sub000/internal/domain"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/infrastructure/database"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type analyticsFixture struct {
	svc     *Service
	db      *gorm.DB
	project *domain.Project
	dept    *domain.Department
}

func setupAnalyticsTest(t *testing.T) analyticsFixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	project := &domain.Project{Title: "Paper Kites", Currency: "INR", TotalBudget: decimal.NewFromInt(100000)}
	require.NoError(t, db.Create(project).Error)
	dept := &domain.Department{ProjectID: project.ID, Name: "Camera", BudgetAmount: decimal.NewFromInt(100000)}
	require.NoError(t, db.Create(dept).Error)

	return analyticsFixture{svc: &Service{DB: db}, db: db, project: project, dept: dept}
}

func (f analyticsFixture) addExpense(t *testing.T, amount int64, date string, status domain.ExpenseStatus) *domain.Expense {
	expense := &domain.Expense{
		ProjectID: f.project.ID, DepartmentID: f.dept.ID,
		Date: date, Amount: decimal.NewFromInt(amount),
		PaymentMethod: domain.PaymentCash, Status: status,
	}
	require.NoError(t, f.db.Create(expense).Error)
	return expense
}

func TestProjectSummary_ExcludesCancelled(t *testing.T) {
	f := setupAnalyticsTest(t)
	f.addExpense(t, 20000, "2026-03-01", domain.ExpenseSubmitted)
	f.addExpense(t, 10000, "2026-03-01", domain.ExpensePaid)
	f.addExpense(t, 99999, "2026-03-01", domain.ExpenseCancelled)

	summary, err := f.svc.ProjectSummary(context.Background(), f.project.ID)
	require.NoError(t, err)
	assert.True(t, summary.TotalSpent.Equal(decimal.NewFromInt(30000)))
	assert.True(t, summary.RemainingBudget.Equal(decimal.NewFromInt(70000)))
	assert.InDelta(t, -70.0, summary.VariancePercent, 0.001)

	require.Len(t, summary.Departments, 1)
	assert.True(t, summary.Departments[0].Spent.Equal(decimal.NewFromInt(30000)))
}

func TestProjectSummary_ZeroBudgetZeroVariance(t *testing.T) {
	f := setupAnalyticsTest(t)
	require.NoError(t, f.db.Model(f.project).Update("total_budget", decimal.Zero).Error)
	f.addExpense(t, 5000, "2026-03-01", domain.ExpensePaid)

	summary, err := f.svc.ProjectSummary(context.Background(), f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.VariancePercent)
}

func TestProjectSummary_EmptyProjectZeroed(t *testing.T) {
	f := setupAnalyticsTest(t)

	summary, err := f.svc.ProjectSummary(context.Background(), f.project.ID)
	require.NoError(t, err)
	assert.True(t, summary.TotalSpent.IsZero())
	assert.True(t, summary.RemainingBudget.Equal(f.project.TotalBudget))
}

func TestProjectSummary_UnknownProject(t *testing.T) {
	f := setupAnalyticsTest(t)

	_, err := f.svc.ProjectSummary(context.Background(), uuid.New())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

// Two calls with no writes in between return the same numbers.
func TestProjectSummary_Repeatable(t *testing.T) {
	f := setupAnalyticsTest(t)
	f.addExpense(t, 1234, "2026-03-01", domain.ExpensePaid)

	first, err := f.svc.ProjectSummary(context.Background(), f.project.ID)
	require.NoError(t, err)
	second, err := f.svc.ProjectSummary(context.Background(), f.project.ID)
	require.NoError(t, err)
	assert.True(t, first.TotalSpent.Equal(second.TotalSpent))
	assert.Equal(t, first.VariancePercent, second.VariancePercent)
}

func TestDailyCostReport_ExactDateAndPettyCashBucket(t *testing.T) {
	f := setupAnalyticsTest(t)
	f.addExpense(t, 3000, "2026-03-01", domain.ExpensePaid)
	f.addExpense(t, 700, "2026-03-02", domain.ExpensePaid)
	f.addExpense(t, 9000, "2026-03-01", domain.ExpenseCancelled)

	float := &domain.PettyCashFloat{
		ProjectID: f.project.ID, OwnerUserID: "pa-1",
		IssuedAmount: decimal.NewFromInt(5000), Balance: decimal.NewFromInt(4500),
	}
	require.NoError(t, f.db.Create(float).Error)
	require.NoError(t, f.db.Create(&domain.PettyCashTxn{
		FloatID: float.ID, Date: "2026-03-01", Amount: decimal.NewFromInt(500), Type: domain.TxnDebit,
	}).Error)
	require.NoError(t, f.db.Create(&domain.PettyCashTxn{
		FloatID: float.ID, Date: "2026-03-01", Amount: decimal.NewFromInt(200), Type: domain.TxnCredit,
	}).Error)

	report, err := f.svc.DailyCostReport(context.Background(), f.project.ID, "2026-03-01")
	require.NoError(t, err)
	assert.True(t, report.PettyCashDebits.Equal(decimal.NewFromInt(500)), "credits excluded")
	assert.True(t, report.Total.Equal(decimal.NewFromInt(3500)))
	require.Len(t, report.ByDepartment, 1)
	assert.True(t, report.ByDepartment[0].Amount.Equal(decimal.NewFromInt(3000)))
}

func TestDailyCostReport_BadDate(t *testing.T) {
	f := setupAnalyticsTest(t)
	_, err := f.svc.DailyCostReport(context.Background(), f.project.ID, "01-03-2026")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestProductionDaySummary_TopTagsTieKeepsFirstSeen(t *testing.T) {
	f := setupAnalyticsTest(t)
	day := &domain.ShootDay{ProjectID: f.project.ID, Date: "2026-03-01", Status: domain.ShootDayOpen}
	require.NoError(t, f.db.Create(day).Error)

	addFeedback := func(rating int, tags string) {
		require.NoError(t, f.db.Create(&domain.CrewFeedback{
			ShootDayID: day.ID, IsAnonymous: true, Rating: rating,
			Tags: datatypes.JSON([]byte(tags)),
		}).Error)
	}
	addFeedback(4, `["food","transport"]`)
	addFeedback(2, `["transport","delay"]`)
	addFeedback(3, `["food"]`)

	summary, err := f.svc.ProductionDaySummary(context.Background(), day.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.FeedbackCount)
	assert.InDelta(t, 3.0, summary.AverageRating, 0.001)

	// food and transport both count 2; food was seen first. delay counts 1.
	require.Len(t, summary.TopIssueTags, 3)
	assert.Equal(t, TagCount{Tag: "food", Count: 2}, summary.TopIssueTags[0])
	assert.Equal(t, TagCount{Tag: "transport", Count: 2}, summary.TopIssueTags[1])
	assert.Equal(t, TagCount{Tag: "delay", Count: 1}, summary.TopIssueTags[2])
}

// The day summary carries the project's average spend per shoot day and this
// day's deviation from it, so a costly day stands out without opening the
// project report.
func TestProductionDaySummary_DayAverageContext(t *testing.T) {
	f := setupAnalyticsTest(t)
	day1 := &domain.ShootDay{ProjectID: f.project.ID, Date: "2026-03-01", Status: domain.ShootDayOpen}
	require.NoError(t, f.db.Create(day1).Error)
	day2 := &domain.ShootDay{ProjectID: f.project.ID, Date: "2026-03-02", Status: domain.ShootDayOpen}
	require.NoError(t, f.db.Create(day2).Error)

	addDayExpense := func(dayID uuid.UUID, amount int64, status domain.ExpenseStatus) {
		require.NoError(t, f.db.Create(&domain.Expense{
			ProjectID: f.project.ID, DepartmentID: f.dept.ID, ShootDayID: &dayID,
			Date: "2026-03-01", Amount: decimal.NewFromInt(amount),
			PaymentMethod: domain.PaymentCash, Status: status,
		}).Error)
	}
	addDayExpense(day1.ID, 3000, domain.ExpensePaid)
	addDayExpense(day2.ID, 1000, domain.ExpensePaid)
	addDayExpense(day1.ID, 9999, domain.ExpenseCancelled)
	// Spend not tied to a shoot day stays out of the per-day average.
	f.addExpense(t, 500, "2026-03-01", domain.ExpensePaid)

	summary, err := f.svc.ProductionDaySummary(context.Background(), day1.ID)
	require.NoError(t, err)
	assert.True(t, summary.TotalSpent.Equal(decimal.NewFromInt(3000)))
	assert.True(t, summary.ProjectDayAverage.Equal(decimal.NewFromInt(2000)), "average: %s", summary.ProjectDayAverage)
	assert.InDelta(t, 50.0, summary.SpendVsAveragePercent, 0.001)

	quiet, err := f.svc.ProductionDaySummary(context.Background(), day2.ID)
	require.NoError(t, err)
	assert.InDelta(t, -50.0, quiet.SpendVsAveragePercent, 0.001)
}

func TestProductionDaySummary_NoSpendZeroAverage(t *testing.T) {
	f := setupAnalyticsTest(t)
	day := &domain.ShootDay{ProjectID: f.project.ID, Date: "2026-03-01", Status: domain.ShootDayOpen}
	require.NoError(t, f.db.Create(day).Error)

	summary, err := f.svc.ProductionDaySummary(context.Background(), day.ID)
	require.NoError(t, err)
	assert.True(t, summary.ProjectDayAverage.IsZero())
	assert.Equal(t, 0.0, summary.SpendVsAveragePercent)
}

func TestScheduleAdherenceReport_Percentages(t *testing.T) {
	f := setupAnalyticsTest(t)
	day := &domain.ShootDay{ProjectID: f.project.ID, Date: "2026-03-01", Status: domain.ShootDayOpen}
	require.NoError(t, f.db.Create(day).Error)

	for _, status := range []domain.ScheduleStatus{
		domain.ScheduleDone, domain.ScheduleDone, domain.ScheduleDropped, domain.SchedulePlanned,
	} {
		require.NoError(t, f.db.Create(&domain.ScheduleItem{
			ShootDayID: day.ID, Scene: "1", Shot: "1", Status: status, Assignees: datatypes.JSON([]byte("[]")),
		}).Error)
	}

	report, err := f.svc.ScheduleAdherenceReport(context.Background(), day.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.Done)
	assert.Equal(t, 1, report.Dropped)
	assert.InDelta(t, 50.0, report.CompletionPercent, 0.001)
	assert.InDelta(t, 25.0, report.DroppedPercent, 0.001)
}

func TestCrewPerformanceReport_AnonymousCountedSeparately(t *testing.T) {
	f := setupAnalyticsTest(t)
	day := &domain.ShootDay{ProjectID: f.project.ID, Date: "2026-03-01", Status: domain.ShootDayOpen}
	require.NoError(t, f.db.Create(day).Error)
	member := &domain.Crew{ProjectID: f.project.ID, Name: "R. Iyer", Role: "Gaffer"}
	require.NoError(t, f.db.Create(member).Error)

	require.NoError(t, f.db.Create(&domain.CrewFeedback{
		ShootDayID: day.ID, CrewID: &member.ID, Rating: 5, Tags: datatypes.JSON([]byte("[]")),
	}).Error)
	require.NoError(t, f.db.Create(&domain.CrewFeedback{
		ShootDayID: day.ID, CrewID: &member.ID, Rating: 3, Tags: datatypes.JSON([]byte("[]")),
	}).Error)
	require.NoError(t, f.db.Create(&domain.CrewFeedback{
		ShootDayID: day.ID, IsAnonymous: true, Rating: 1, Tags: datatypes.JSON([]byte("[]")),
	}).Error)

	report, err := f.svc.CrewPerformanceReport(context.Background(), day.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.AnonymousCount)
	require.Len(t, report.Crew, 1)
	assert.Equal(t, "R. Iyer", report.Crew[0].Name)
	assert.Equal(t, 2, report.Crew[0].FeedbackCount)
	assert.InDelta(t, 4.0, report.Crew[0].AverageRating, 0.001)
	assert.InDelta(t, 3.0, report.DayAverage, 0.001)
}
