package importexport

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/budgets"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/expenses"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/domain"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/infrastructure/database"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupImportTest(t *testing.T) (*Service, *gorm.DB, *domain.Project) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	project := &domain.Project{Title: "Salt Flats", Currency: "INR", TotalBudget: decimal.NewFromInt(800000)}
	require.NoError(t, db.Create(project).Error)

	svc := &Service{
		DB:       db,
		Budgets:  &budgets.Service{DB: db},
		Expenses: &expenses.Service{DB: db},
	}
	return svc, db, project
}

func TestImportBudget_DepartmentsAndLines(t *testing.T) {
	svc, db, project := setupImportTest(t)

	csvText := strings.Join([]string{
		"Department,LineItem,BudgetAmount",
		"Camera,,150000",
		"Camera,Lenses,40000",
		"Art,Set dressing,25000",
	}, "\n")

	result, err := svc.ImportBudget(context.Background(), project.ID, strings.NewReader(csvText))
	require.NoError(t, err)
	assert.Equal(t, 3, result.Imported)
	assert.Empty(t, result.Errors)

	var depts []domain.Department
	require.NoError(t, db.Where("project_id = ?", project.ID).Order("created_at, id").Find(&depts).Error)
	require.Len(t, depts, 2)
	assert.Equal(t, "Camera", depts[0].Name)
	assert.True(t, depts[0].BudgetAmount.Equal(decimal.NewFromInt(150000)))

	var lines []domain.BudgetLine
	require.NoError(t, db.Find(&lines).Error)
	assert.Len(t, lines, 2)
}

// A bad row is reported with its line number while the rest of the batch
// commits.
func TestImportBudget_BadRowDoesNotAbortBatch(t *testing.T) {
	svc, db, project := setupImportTest(t)

	csvText := strings.Join([]string{
		"Department,LineItem,BudgetAmount",
		"Camera,,150000",
		",orphan line,500",
		"Camera,Lenses,not-a-number",
		"Sound,,30000",
	}, "\n")

	result, err := svc.ImportBudget(context.Background(), project.ID, strings.NewReader(csvText))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 3, result.Errors[0].Line)
	assert.Equal(t, 4, result.Errors[1].Line)

	var count int64
	require.NoError(t, db.Model(&domain.Department{}).Where("project_id = ?", project.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestImportBudget_MissingHeader(t *testing.T) {
	svc, _, project := setupImportTest(t)

	_, err := svc.ImportBudget(context.Background(), project.ID, strings.NewReader("Name,Amount\nCamera,100\n"))
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestImportExpenses_DefaultsAndVendorCreation(t *testing.T) {
	svc, db, project := setupImportTest(t)
	dept := &domain.Department{ProjectID: project.ID, Name: "Camera", BudgetAmount: decimal.NewFromInt(100000)}
	require.NoError(t, db.Create(dept).Error)

	csvText := strings.Join([]string{
		"Date,Department,Description,Amount,PaymentMethod,TaxRate,Vendor",
		"2026-03-01,Camera,tripod rental,1200,UPI,18,Acme Rentals",
		"2026-03-02,Camera,tape,150,,,",
		"2026-03-03,Lighting,gels,300,Cash,0,",
	}, "\n")

	result, err := svc.ImportExpenses(context.Background(), project.ID, strings.NewReader(csvText))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 4, result.Errors[0].Line, "unknown department rejected by line")

	list, err := svc.Expenses.List(context.Background(), project.ID, expenses.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.PaymentUPI, list[0].PaymentMethod)
	assert.NotNil(t, list[0].VendorID)
	assert.Equal(t, domain.PaymentCash, list[1].PaymentMethod, "payment method defaults to Cash")
	assert.Nil(t, list[1].VendorID)

	var vendor domain.Vendor
	require.NoError(t, db.First(&vendor, "name = ?", "Acme Rentals").Error)
}

func TestExportExpenses_SkipsCancelled(t *testing.T) {
	svc, db, project := setupImportTest(t)
	dept := &domain.Department{ProjectID: project.ID, Name: "Camera", BudgetAmount: decimal.NewFromInt(100000)}
	require.NoError(t, db.Create(dept).Error)

	live := &domain.Expense{
		ProjectID: project.ID, DepartmentID: dept.ID, Date: "2026-03-01",
		Description: "tripod", Amount: decimal.NewFromInt(1200),
		PaymentMethod: domain.PaymentUPI, Status: domain.ExpensePaid,
	}
	require.NoError(t, db.Create(live).Error)
	cancelled := &domain.Expense{
		ProjectID: project.ID, DepartmentID: dept.ID, Date: "2026-03-01",
		Description: "voided", Amount: decimal.NewFromInt(9999),
		PaymentMethod: domain.PaymentCash, Status: domain.ExpenseCancelled,
	}
	require.NoError(t, db.Create(cancelled).Error)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportExpenses(context.Background(), project.ID, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2, "header plus one live expense")
	assert.Equal(t, []string{"Date", "Department", "Description", "Amount", "TaxRate", "PaymentMethod", "Status"}, records[0])
	assert.Equal(t, "tripod", records[1][2])
	assert.Equal(t, "1200.00", records[1][3])
	assert.Equal(t, "Camera", records[1][1])
}

// Exported rows import back cleanly into a fresh project.
func TestExportThenImportRoundTrip(t *testing.T) {
	svc, db, project := setupImportTest(t)
	dept := &domain.Department{ProjectID: project.ID, Name: "Camera", BudgetAmount: decimal.NewFromInt(100000)}
	require.NoError(t, db.Create(dept).Error)
	require.NoError(t, db.Create(&domain.Expense{
		ProjectID: project.ID, DepartmentID: dept.ID, Date: "2026-03-01",
		Description: "tripod", Amount: decimal.NewFromInt(1200),
		PaymentMethod: domain.PaymentUPI, Status: domain.ExpensePaid,
	}).Error)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportExpenses(context.Background(), project.ID, &buf))

	fresh := &domain.Project{Title: "Copy", Currency: "INR", TotalBudget: decimal.NewFromInt(1000)}
	require.NoError(t, db.Create(fresh).Error)
	require.NoError(t, db.Create(&domain.Department{
		ProjectID: fresh.ID, Name: "Camera", BudgetAmount: decimal.NewFromInt(1000),
	}).Error)

	result, err := svc.ImportExpenses(context.Background(), fresh.ID, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Empty(t, result.Errors)
}
