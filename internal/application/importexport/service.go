package importexport

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/budgets"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/expenses"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/domain"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service adapts CSV rows into store commands and store data into CSV text.
// A bad row never aborts the batch: good rows are committed, bad rows are
// reported per line.
type Service struct {
	DB       *gorm.DB
	Budgets  *budgets.Service
	Expenses *expenses.Service
}

// RowError reports one rejected CSV line (1-based, header is line 1).
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type ImportResult struct {
	Imported int        `json:"imported"`
	Errors   []RowError `json:"errors"`
}

// ImportBudget reads rows of {Department, LineItem, BudgetAmount}. LineItem
// is optional; a row without one sets the department budget, a row with one
// adds a budget line under the department (created on first mention).
func (s *Service) ImportBudget(ctx context.Context, projectID uuid.UUID, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, apperr.Validation("missing CSV header")
	}
	cols := indexColumns(header)
	if _, ok := cols["department"]; !ok {
		return nil, apperr.Validation("CSV header must include Department")
	}
	if _, ok := cols["budgetamount"]; !ok {
		return nil, apperr.Validation("CSV header must include BudgetAmount")
	}

	result := &ImportResult{Errors: []RowError{}}
	deptByName := map[string]uuid.UUID{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Errors = append(result.Errors, RowError{Line: line, Message: "malformed CSV row"})
			continue
		}
		deptName := field(record, cols, "department")
		lineItem := field(record, cols, "lineitem")
		amountRaw := field(record, cols, "budgetamount")
		if deptName == "" {
			result.Errors = append(result.Errors, RowError{Line: line, Message: "Department is required"})
			continue
		}
		amount, err := decimal.NewFromString(amountRaw)
		if err != nil || amount.IsNegative() {
			result.Errors = append(result.Errors, RowError{Line: line, Message: fmt.Sprintf("invalid BudgetAmount %q", amountRaw)})
			continue
		}

		deptID, ok := deptByName[deptName]
		if !ok {
			existing, err := s.findDepartment(ctx, projectID, deptName)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				deptID = existing.ID
			} else {
				deptAmount := decimal.Zero
				if lineItem == "" {
					deptAmount = amount
				}
				dept, err := s.Budgets.CreateDepartment(ctx, projectID, budgets.CreateDepartmentInput{Name: deptName, BudgetAmount: deptAmount})
				if err != nil {
					result.Errors = append(result.Errors, RowError{Line: line, Message: err.Error()})
					continue
				}
				deptID = dept.ID
			}
			deptByName[deptName] = deptID
		}

		if lineItem == "" {
			if _, err := s.Budgets.UpdateDepartment(ctx, deptID, budgets.UpdateDepartmentInput{BudgetAmount: &amount}); err != nil {
				result.Errors = append(result.Errors, RowError{Line: line, Message: err.Error()})
				continue
			}
		} else {
			_, err := s.Budgets.CreateBudgetLine(ctx, projectID, budgets.CreateBudgetLineInput{
				DepartmentID: deptID,
				Name:         lineItem,
				BudgetAmount: amount,
			})
			if err != nil {
				result.Errors = append(result.Errors, RowError{Line: line, Message: err.Error()})
				continue
			}
		}
		result.Imported++
	}
	return result, nil
}

// ImportExpenses reads rows of {Date, Department, Description, Amount,
// PaymentMethod, TaxRate, Vendor}. PaymentMethod defaults to Cash, TaxRate
// to 0; Vendor is matched by name and created on first mention.
func (s *Service) ImportExpenses(ctx context.Context, projectID uuid.UUID, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, apperr.Validation("missing CSV header")
	}
	cols := indexColumns(header)
	for _, required := range []string{"date", "department", "amount"} {
		if _, ok := cols[required]; !ok {
			return nil, apperr.Validation("CSV header must include Date, Department and Amount")
		}
	}

	result := &ImportResult{Errors: []RowError{}}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Errors = append(result.Errors, RowError{Line: line, Message: "malformed CSV row"})
			continue
		}
		deptName := field(record, cols, "department")
		dept, err := s.findDepartment(ctx, projectID, deptName)
		if err != nil {
			return nil, err
		}
		if dept == nil {
			result.Errors = append(result.Errors, RowError{Line: line, Message: fmt.Sprintf("unknown department %q", deptName)})
			continue
		}
		amount, err := decimal.NewFromString(field(record, cols, "amount"))
		if err != nil {
			result.Errors = append(result.Errors, RowError{Line: line, Message: "invalid Amount"})
			continue
		}
		taxRate := 0.0
		if raw := field(record, cols, "taxrate"); raw != "" {
			taxRate, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				result.Errors = append(result.Errors, RowError{Line: line, Message: "invalid TaxRate"})
				continue
			}
		}
		method := domain.PaymentMethod(field(record, cols, "paymentmethod"))
		if method == "" {
			method = domain.PaymentCash
		}
		var vendorID *uuid.UUID
		if vendorName := field(record, cols, "vendor"); vendorName != "" {
			id, err := s.findOrCreateVendor(ctx, vendorName)
			if err != nil {
				result.Errors = append(result.Errors, RowError{Line: line, Message: err.Error()})
				continue
			}
			vendorID = &id
		}

		_, err = s.Expenses.Create(ctx, projectID, expenses.CreateExpenseInput{
			DepartmentID:  dept.ID,
			VendorID:      vendorID,
			Date:          field(record, cols, "date"),
			Description:   field(record, cols, "description"),
			Amount:        amount,
			TaxRate:       taxRate,
			PaymentMethod: method,
		})
		if err != nil {
			result.Errors = append(result.Errors, RowError{Line: line, Message: err.Error()})
			continue
		}
		result.Imported++
	}
	return result, nil
}

// ExportExpenses writes all non-cancelled expenses of a project as CSV.
func (s *Service) ExportExpenses(ctx context.Context, projectID uuid.UUID, w io.Writer) error {
	list, err := s.Expenses.List(ctx, projectID, expenses.ListFilter{})
	if err != nil {
		return err
	}
	deptNames, err := s.departmentNames(ctx, projectID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Date", "Department", "Description", "Amount", "TaxRate", "PaymentMethod", "Status"}); err != nil {
		return err
	}
	for _, e := range list {
		if e.Status == domain.ExpenseCancelled {
			continue
		}
		record := []string{
			e.Date,
			deptNames[e.DepartmentID],
			e.Description,
			e.Amount.StringFixed(2),
			strconv.FormatFloat(e.TaxRate, 'f', -1, 64),
			string(e.PaymentMethod),
			string(e.Status),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func (s *Service) findDepartment(ctx context.Context, projectID uuid.UUID, name string) (*domain.Department, error) {
	if name == "" {
		return nil, nil
	}
	var dept domain.Department
	err := s.DB.WithContext(ctx).Where("project_id = ? AND name = ?", projectID, name).First(&dept).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (s *Service) findOrCreateVendor(ctx context.Context, name string) (uuid.UUID, error) {
	var vendor domain.Vendor
	err := s.DB.WithContext(ctx).Where("name = ?", name).First(&vendor).Error
	if err == nil {
		return vendor.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	}
	vendor = domain.Vendor{Name: name, Contacts: []byte("[]")}
	if err := s.DB.WithContext(ctx).Create(&vendor).Error; err != nil {
		return uuid.Nil, err
	}
	return vendor.ID, nil
}

func (s *Service) departmentNames(ctx context.Context, projectID uuid.UUID) (map[uuid.UUID]string, error) {
	var depts []domain.Department
	if err := s.DB.WithContext(ctx).Where("project_id = ?", projectID).Find(&depts).Error; err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(depts))
	for _, d := range depts {
		names[d.ID] = d.Name
	}
	return names, nil
}

// indexColumns maps normalized header names to their position. Comparison is
// case-insensitive and ignores spaces, so "Budget Amount" and "budgetamount"
// both match.
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(h), " ", ""))
		cols[key] = i
	}
	return cols
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
