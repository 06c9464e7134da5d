package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/Vidyuzz/film-cost-flow-sub000/internal/domain"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service computes derived reports. Every call re-reads the store: there is
// no cache, so two calls with no intervening mutation return equal results.
// Missing or empty data yields zeroed aggregates, never an error.
type Service struct {
	DB *gorm.DB
}

// variancePercent is (spent - budget) / budget * 100, with 0 for a zero
// budget to avoid the division.
func variancePercent(spent, budget decimal.Decimal) float64 {
	if budget.IsZero() {
		return 0
	}
	f, _ := spent.Sub(budget).Div(budget).Mul(decimal.NewFromInt(100)).Float64()
	return f
}

func (s *Service) ProjectSummary(ctx context.Context, projectID uuid.UUID) (*ProjectSummary, error) {
	db := s.DB.WithContext(ctx)
	var project domain.Project
	if err := db.First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, err
	}

	var expenses []domain.Expense
	if err := db.Where("project_id = ? AND status <> ?", projectID, domain.ExpenseCancelled).Find(&expenses).Error; err != nil {
		return nil, err
	}
	var departments []domain.Department
	if err := db.Where("project_id = ?", projectID).Order("created_at, id").Find(&departments).Error; err != nil {
		return nil, err
	}

	totalSpent := decimal.Zero
	spentByDept := map[uuid.UUID]decimal.Decimal{}
	for _, e := range expenses {
		totalSpent = totalSpent.Add(e.Amount)
		spentByDept[e.DepartmentID] = spentByDept[e.DepartmentID].Add(e.Amount)
	}

	breakdown := make([]DepartmentBreakdown, 0, len(departments))
	for _, d := range departments {
		spent := spentByDept[d.ID]
		breakdown = append(breakdown, DepartmentBreakdown{
			DepartmentID:    d.ID,
			Name:            d.Name,
			Budget:          d.BudgetAmount,
			Spent:           spent,
			Remaining:       d.BudgetAmount.Sub(spent),
			VariancePercent: variancePercent(spent, d.BudgetAmount),
		})
	}

	return &ProjectSummary{
		ProjectID:       project.ID,
		Title:           project.Title,
		Currency:        project.Currency,
		TotalBudget:     project.TotalBudget,
		TotalSpent:      totalSpent,
		RemainingBudget: project.TotalBudget.Sub(totalSpent),
		VariancePercent: variancePercent(totalSpent, project.TotalBudget),
		Departments:     breakdown,
	}, nil
}

// DailyCostReport sums non-cancelled expenses and petty-cash debits whose
// date equals the given date exactly (no range semantics).
func (s *Service) DailyCostReport(ctx context.Context, projectID uuid.UUID, date string) (*DailyCostReport, error) {
	if !validation.IsValidDate(date) {
		return nil, apperr.Validation("date must be YYYY-MM-DD")
	}
	db := s.DB.WithContext(ctx)

	var expenses []domain.Expense
	if err := db.Where("project_id = ? AND date = ? AND status <> ?", projectID, date, domain.ExpenseCancelled).
		Order("created_at, id").Find(&expenses).Error; err != nil {
		return nil, err
	}
	var departments []domain.Department
	if err := db.Where("project_id = ?", projectID).Order("created_at, id").Find(&departments).Error; err != nil {
		return nil, err
	}

	spentByDept := map[uuid.UUID]decimal.Decimal{}
	total := decimal.Zero
	for _, e := range expenses {
		spentByDept[e.DepartmentID] = spentByDept[e.DepartmentID].Add(e.Amount)
		total = total.Add(e.Amount)
	}
	byDept := make([]DepartmentSpend, 0)
	for _, d := range departments {
		amount, ok := spentByDept[d.ID]
		if !ok {
			continue
		}
		byDept = append(byDept, DepartmentSpend{DepartmentID: d.ID, Name: d.Name, Amount: amount})
	}

	var txns []domain.PettyCashTxn
	if err := db.Joins("JOIN petty_cash_floats ON petty_cash_floats.id = petty_cash_txns.float_id").
		Where("petty_cash_floats.project_id = ? AND petty_cash_txns.date = ? AND petty_cash_txns.type = ?",
			projectID, date, domain.TxnDebit).
		Find(&txns).Error; err != nil {
		return nil, err
	}
	pettyCash := decimal.Zero
	for _, t := range txns {
		pettyCash = pettyCash.Add(t.Amount)
	}

	return &DailyCostReport{
		ProjectID:       projectID,
		Date:            date,
		ByDepartment:    byDept,
		PettyCashDebits: pettyCash,
		Total:           total.Add(pettyCash),
	}, nil
}

func (s *Service) ProductionDaySummary(ctx context.Context, shootDayID uuid.UUID) (*ProductionDaySummary, error) {
	db := s.DB.WithContext(ctx)
	var day domain.ShootDay
	if err := db.First(&day, "id = ?", shootDayID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Shoot day not found")
		}
		return nil, err
	}

	var expenses []domain.Expense
	if err := db.Where("shoot_day_id = ? AND status <> ?", shootDayID, domain.ExpenseCancelled).Find(&expenses).Error; err != nil {
		return nil, err
	}
	totalSpent := decimal.Zero
	for _, e := range expenses {
		totalSpent = totalSpent.Add(e.Amount)
	}

	dayAverage, err := s.projectDayAverage(ctx, day.ProjectID)
	if err != nil {
		return nil, err
	}

	var items []domain.ScheduleItem
	if err := db.Where("shoot_day_id = ?", shootDayID).Find(&items).Error; err != nil {
		return nil, err
	}
	done := 0
	for _, it := range items {
		if it.Status == domain.ScheduleDone {
			done++
		}
	}
	completion := 0.0
	if len(items) > 0 {
		completion = float64(done) / float64(len(items)) * 100
	}

	var feedback []domain.CrewFeedback
	if err := db.Where("shoot_day_id = ?", shootDayID).Order("created_at, id").Find(&feedback).Error; err != nil {
		return nil, err
	}
	avgRating := 0.0
	if len(feedback) > 0 {
		sum := 0
		for _, f := range feedback {
			sum += f.Rating
		}
		avgRating = float64(sum) / float64(len(feedback))
	}

	var checkouts []domain.PropCheckout
	if err := db.Where("shoot_day_id = ?", shootDayID).Find(&checkouts).Error; err != nil {
		return nil, err
	}
	out, returned, overdue := countCheckouts(checkouts)

	return &ProductionDaySummary{
		ShootDayID:            day.ID,
		Date:                  day.Date,
		Status:                day.Status,
		TotalSpent:            totalSpent,
		ProjectDayAverage:     dayAverage,
		SpendVsAveragePercent: variancePercent(totalSpent, dayAverage),
		ScheduleTotal:         len(items),
		ScheduleDone:          done,
		CompletionPercent:     completion,
		FeedbackCount:         len(feedback),
		AverageRating:         avgRating,
		TopIssueTags:          topTags(feedback),
		PropsOut:              out,
		PropsReturned:         returned,
		PropsOverdue:          overdue,
	}, nil
}

// projectDayAverage is the project's non-cancelled day-tied spend divided by
// its number of shoot days (zero when the project has no shoot days).
func (s *Service) projectDayAverage(ctx context.Context, projectID uuid.UUID) (decimal.Decimal, error) {
	db := s.DB.WithContext(ctx)
	var dayCount int64
	if err := db.Model(&domain.ShootDay{}).Where("project_id = ?", projectID).Count(&dayCount).Error; err != nil {
		return decimal.Zero, err
	}
	if dayCount == 0 {
		return decimal.Zero, nil
	}
	var tied []domain.Expense
	if err := db.Where("project_id = ? AND shoot_day_id IS NOT NULL AND status <> ?",
		projectID, domain.ExpenseCancelled).Find(&tied).Error; err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, e := range tied {
		total = total.Add(e.Amount)
	}
	return total.Div(decimal.NewFromInt(dayCount)), nil
}

// topTags ranks issue tags by descending mention count; ties keep first-seen
// order.
func topTags(feedback []domain.CrewFeedback) []TagCount {
	counts := map[string]int{}
	order := []string{}
	for _, f := range feedback {
		if len(f.Tags) == 0 {
			continue
		}
		var tags []string
		if err := json.Unmarshal(f.Tags, &tags); err != nil {
			continue
		}
		for _, tag := range tags {
			if tag == "" {
				continue
			}
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}
	ranked := make([]TagCount, 0, len(order))
	for _, tag := range order {
		ranked = append(ranked, TagCount{Tag: tag, Count: counts[tag]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

func countCheckouts(checkouts []domain.PropCheckout) (out, returned, overdue int) {
	today := validation.Today()
	for _, c := range checkouts {
		switch c.EffectiveStatus(today) {
		case domain.CheckoutOut:
			out++
		case domain.CheckoutReturned:
			returned++
		case domain.CheckoutOverdue:
			overdue++
		}
	}
	return out, returned, overdue
}

func (s *Service) ScheduleAdherenceReport(ctx context.Context, shootDayID uuid.UUID) (*ScheduleAdherenceReport, error) {
	var items []domain.ScheduleItem
	if err := s.DB.WithContext(ctx).Where("shoot_day_id = ?", shootDayID).Find(&items).Error; err != nil {
		return nil, err
	}
	report := &ScheduleAdherenceReport{ShootDayID: shootDayID, Total: len(items)}
	for _, it := range items {
		switch it.Status {
		case domain.SchedulePlanned:
			report.Planned++
		case domain.ScheduleInProgress:
			report.InProgress++
		case domain.ScheduleDone:
			report.Done++
		case domain.ScheduleDropped:
			report.Dropped++
		}
	}
	if report.Total > 0 {
		report.CompletionPercent = float64(report.Done) / float64(report.Total) * 100
		report.DroppedPercent = float64(report.Dropped) / float64(report.Total) * 100
	}
	return report, nil
}

func (s *Service) PropsCustodyReport(ctx context.Context, shootDayID uuid.UUID) (*PropsCustodyReport, error) {
	db := s.DB.WithContext(ctx)
	var checkouts []domain.PropCheckout
	if err := db.Where("shoot_day_id = ?", shootDayID).Order("created_at, id").Find(&checkouts).Error; err != nil {
		return nil, err
	}

	propNames := map[uuid.UUID]string{}
	if len(checkouts) > 0 {
		ids := make([]uuid.UUID, 0, len(checkouts))
		for _, c := range checkouts {
			ids = append(ids, c.PropID)
		}
		var props []domain.Prop
		if err := db.Where("id IN ?", ids).Find(&props).Error; err != nil {
			return nil, err
		}
		for _, p := range props {
			propNames[p.ID] = p.Name
		}
	}

	today := validation.Today()
	report := &PropsCustodyReport{ShootDayID: shootDayID, Rows: make([]CustodyRow, 0, len(checkouts))}
	for _, c := range checkouts {
		status := c.EffectiveStatus(today)
		report.Rows = append(report.Rows, CustodyRow{
			CheckoutID:   c.ID,
			PropID:       c.PropID,
			PropName:     propNames[c.PropID],
			CheckedOutBy: c.CheckedOutBy,
			DueReturn:    c.DueReturn,
			Status:       status,
		})
		switch status {
		case domain.CheckoutOut:
			report.Out++
		case domain.CheckoutReturned:
			report.Returned++
		case domain.CheckoutOverdue:
			report.Overdue++
		}
	}
	return report, nil
}

func (s *Service) CrewPerformanceReport(ctx context.Context, shootDayID uuid.UUID) (*CrewPerformanceReport, error) {
	db := s.DB.WithContext(ctx)
	var feedback []domain.CrewFeedback
	if err := db.Where("shoot_day_id = ?", shootDayID).Order("created_at, id").Find(&feedback).Error; err != nil {
		return nil, err
	}

	type agg struct {
		count int
		sum   int
	}
	perCrew := map[uuid.UUID]*agg{}
	order := []uuid.UUID{}
	anonymous := 0
	total := 0
	for _, f := range feedback {
		total += f.Rating
		if f.IsAnonymous || f.CrewID == nil {
			anonymous++
			continue
		}
		a, ok := perCrew[*f.CrewID]
		if !ok {
			a = &agg{}
			perCrew[*f.CrewID] = a
			order = append(order, *f.CrewID)
		}
		a.count++
		a.sum += f.Rating
	}

	crewNames := map[uuid.UUID]string{}
	if len(order) > 0 {
		var members []domain.Crew
		if err := db.Where("id IN ?", order).Find(&members).Error; err != nil {
			return nil, err
		}
		for _, m := range members {
			crewNames[m.ID] = m.Name
		}
	}

	report := &CrewPerformanceReport{ShootDayID: shootDayID, Crew: make([]CrewRating, 0, len(order)), AnonymousCount: anonymous}
	for _, id := range order {
		a := perCrew[id]
		report.Crew = append(report.Crew, CrewRating{
			CrewID:        id,
			Name:          crewNames[id],
			FeedbackCount: a.count,
			AverageRating: float64(a.sum) / float64(a.count),
		})
	}
	if len(feedback) > 0 {
		report.DayAverage = float64(total) / float64(len(feedback))
	}
	return report, nil
}
