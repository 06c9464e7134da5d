package router

import (
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/analytics"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/budgets"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/crew"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/expenses"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/importexport"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/pettycash"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/projects"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/props"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/shootdays"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/vendors"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/config"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/infrastructure/database"
	budgetshdl "github.com/Vidyuzz/film-cost-flow-sub000/internal/interfaces/handlers/budgets"
	crewhdl "github.com/Vidyuzz/film-cost-flow-sub000/internal/interfaces/handlers/crew"
	expenseshdl "github.com/Vidyuzz/film-cost-flow-sub000/internal/interfaces/handlers/expenses"
	importexporthdl "github.com/Vidyuzz/film-cost-flow-sub000/internal/interfaces/handlers/importexport"
	pettycashhdl "github.com/Vidyuzz/film-cost-flow-sub000/internal/interfaces/handlers/pettycash"
	projectshdl "github.com/Vidyuzz/film-cost-flow-sub000/internal/interfaces/handlers/projects"
	propshdl "github.com/Vidyuzz/film-cost-flow-sub000/internal/interfaces/handlers/props"
	reportshdl "github.com/Vidyuzz/film-cost-flow-sub000/internal/interfaces/handlers/reports"
	shootdayshdl "github.com/Vidyuzz/film-cost-flow-sub000/internal/interfaces/handlers/shootdays"
	vendorshdl "github.com/Vidyuzz/film-cost-flow-sub000/internal/interfaces/handlers/vendors"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration, opening and migrating the store along the way.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.Actor())

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, err
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	// Projects
	projectService := &projects.Service{DB: db}
	projectHandlers := &projectshdl.Handlers{Service: projectService}
	v1.Post("/projects", projectHandlers.Create)
	v1.Get("/projects", projectHandlers.List)
	v1.Get("/projects/:projectID", projectHandlers.Get)
	v1.Patch("/projects/:projectID", projectHandlers.Update)
	v1.Delete("/projects/:projectID", projectHandlers.Delete)

	// Departments and budget lines
	budgetService := &budgets.Service{DB: db}
	budgetHandlers := &budgetshdl.Handlers{Service: budgetService}
	v1.Post("/projects/:projectID/departments", budgetHandlers.CreateDepartment)
	v1.Get("/projects/:projectID/departments", budgetHandlers.ListDepartments)
	v1.Patch("/departments/:id", budgetHandlers.UpdateDepartment)
	v1.Delete("/departments/:id", budgetHandlers.DeleteDepartment)
	v1.Post("/projects/:projectID/budget-lines", budgetHandlers.CreateBudgetLine)
	v1.Get("/projects/:projectID/budget-lines", budgetHandlers.ListBudgetLines)
	v1.Patch("/budget-lines/:id", budgetHandlers.UpdateBudgetLine)
	v1.Delete("/budget-lines/:id", budgetHandlers.DeleteBudgetLine)

	// Vendors (project-independent registry)
	vendorService := &vendors.Service{DB: db}
	vendorHandlers := &vendorshdl.Handlers{Service: vendorService}
	v1.Post("/vendors", vendorHandlers.Create)
	v1.Get("/vendors", vendorHandlers.List)
	v1.Get("/vendors/:id", vendorHandlers.Get)
	v1.Patch("/vendors/:id", vendorHandlers.Update)
	v1.Delete("/vendors/:id", vendorHandlers.Delete)

	// Expenses
	expenseService := &expenses.Service{DB: db}
	expenseHandlers := &expenseshdl.Handlers{Service: expenseService}
	v1.Post("/projects/:projectID/expenses", expenseHandlers.Create)
	v1.Get("/projects/:projectID/expenses", expenseHandlers.List)
	v1.Get("/expenses/:id", expenseHandlers.Get)
	v1.Patch("/expenses/:id", expenseHandlers.Update)
	v1.Delete("/expenses/:id", expenseHandlers.Cancel)

	// Petty cash
	cashService := &pettycash.Service{DB: db}
	cashHandlers := &pettycashhdl.Handlers{Service: cashService}
	v1.Post("/projects/:projectID/floats", cashHandlers.CreateFloat)
	v1.Get("/projects/:projectID/floats", cashHandlers.ListFloats)
	v1.Get("/floats/:id", cashHandlers.GetFloat)
	v1.Post("/floats/:id/txns", cashHandlers.ApplyTxn)
	v1.Get("/floats/:id/txns", cashHandlers.ListTxns)

	// Shoot days and schedule
	dayService := &shootdays.Service{DB: db}
	dayHandlers := &shootdayshdl.Handlers{Service: dayService}
	v1.Post("/projects/:projectID/shoot-days", dayHandlers.Create)
	v1.Get("/projects/:projectID/shoot-days", dayHandlers.List)
	v1.Get("/shoot-days/:id", dayHandlers.Get)
	v1.Patch("/shoot-days/:id", dayHandlers.Update)
	v1.Delete("/shoot-days/:id", dayHandlers.Delete)
	v1.Post("/shoot-days/:id/lock", dayHandlers.Lock)
	v1.Post("/shoot-days/:id/unlock", dayHandlers.Unlock)
	v1.Post("/shoot-days/:id/schedule-items", dayHandlers.CreateScheduleItem)
	v1.Get("/shoot-days/:id/schedule-items", dayHandlers.ListScheduleItems)
	v1.Patch("/schedule-items/:id", dayHandlers.UpdateScheduleItem)
	v1.Delete("/schedule-items/:id", dayHandlers.DeleteScheduleItem)

	// Crew and feedback
	crewService := &crew.Service{DB: db}
	crewHandlers := &crewhdl.Handlers{Service: crewService}
	v1.Post("/projects/:projectID/crew", crewHandlers.Create)
	v1.Get("/projects/:projectID/crew", crewHandlers.List)
	v1.Patch("/crew/:id", crewHandlers.Update)
	v1.Delete("/crew/:id", crewHandlers.Delete)
	v1.Post("/shoot-days/:id/feedback", crewHandlers.CreateFeedback)
	v1.Get("/shoot-days/:id/feedback", crewHandlers.ListFeedback)

	// Props and custody
	propService := &props.Service{DB: db}
	propHandlers := &propshdl.Handlers{Service: propService}
	v1.Post("/projects/:projectID/props", propHandlers.Create)
	v1.Get("/projects/:projectID/props", propHandlers.List)
	v1.Patch("/props/:id", propHandlers.Update)
	v1.Delete("/props/:id", propHandlers.Delete)
	v1.Post("/props/:id/checkouts", propHandlers.Checkout)
	v1.Post("/checkouts/:id/return", propHandlers.Return)
	v1.Get("/shoot-days/:id/checkouts", propHandlers.ListCheckouts)

	// Reports
	analyticsService := &analytics.Service{DB: db}
	reportHandlers := &reportshdl.Handlers{Service: analyticsService}
	v1.Get("/projects/:projectID/reports/summary", reportHandlers.ProjectSummary)
	v1.Get("/projects/:projectID/reports/daily-cost", reportHandlers.DailyCostReport)
	v1.Get("/shoot-days/:id/reports/summary", reportHandlers.ProductionDaySummary)
	v1.Get("/shoot-days/:id/reports/schedule", reportHandlers.ScheduleAdherence)
	v1.Get("/shoot-days/:id/reports/props", reportHandlers.PropsCustody)
	v1.Get("/shoot-days/:id/reports/crew", reportHandlers.CrewPerformance)

	// CSV import and export
	ieService := &importexport.Service{DB: db, Budgets: budgetService, Expenses: expenseService}
	ieHandlers := &importexporthdl.Handlers{
		Service:  ieService,
		Reports:  analyticsService,
		Renderer: importexport.CSVRenderer{},
	}
	v1.Post("/projects/:projectID/import/budget", ieHandlers.ImportBudget)
	v1.Post("/projects/:projectID/import/expenses", ieHandlers.ImportExpenses)
	v1.Get("/projects/:projectID/export/expenses.csv", ieHandlers.ExportExpenses)
	v1.Get("/projects/:projectID/export/summary.csv", ieHandlers.ExportProjectSummary)
	v1.Get("/projects/:projectID/export/daily-cost.csv", ieHandlers.ExportDailyCost)

	return app, db, nil
}
