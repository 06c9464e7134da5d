package props

import (
	"context"
	"testing"

	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/shootdays"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/domain"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/infrastructure/database"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type propFixture struct {
	svc     *Service
	days    *shootdays.Service
	db      *gorm.DB
	project *domain.Project
	day     *domain.ShootDay
}

func setupPropTest(t *testing.T) propFixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	project := &domain.Project{Title: "Iron Lake", Currency: "INR", TotalBudget: decimal.NewFromInt(400000)}
	require.NoError(t, db.Create(project).Error)

	days := &shootdays.Service{DB: db}
	day, err := days.Create(context.Background(), project.ID, shootdays.CreateShootDayInput{Date: "2026-03-10"})
	require.NoError(t, err)

	return propFixture{svc: &Service{DB: db}, days: days, db: db, project: project, day: day}
}

func TestCheckout_OnlyOnceAtATime(t *testing.T) {
	f := setupPropTest(t)
	prop, err := f.svc.Create(context.Background(), f.project.ID, CreatePropInput{Name: "Vintage radio"})
	require.NoError(t, err)

	checkout, err := f.svc.Checkout(context.Background(), prop.ID, CheckoutInput{
		ShootDayID: f.day.ID, CheckedOutBy: "props-master", DueReturn: "2099-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutOut, checkout.Status)

	_, err = f.svc.Checkout(context.Background(), prop.ID, CheckoutInput{
		ShootDayID: f.day.ID, CheckedOutBy: "runner", DueReturn: "2099-01-01",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	_, err = f.svc.Return(context.Background(), checkout.ID)
	require.NoError(t, err)

	_, err = f.svc.Checkout(context.Background(), prop.ID, CheckoutInput{
		ShootDayID: f.day.ID, CheckedOutBy: "runner", DueReturn: "2099-01-01",
	})
	assert.NoError(t, err, "returned prop can go out again")
}

func TestReturn_IsTerminal(t *testing.T) {
	f := setupPropTest(t)
	prop, err := f.svc.Create(context.Background(), f.project.ID, CreatePropInput{Name: "Prop sword"})
	require.NoError(t, err)
	checkout, err := f.svc.Checkout(context.Background(), prop.ID, CheckoutInput{
		ShootDayID: f.day.ID, CheckedOutBy: "props-master", DueReturn: "2099-01-01",
	})
	require.NoError(t, err)

	returned, err := f.svc.Return(context.Background(), checkout.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutReturned, returned.Status)
	assert.NotNil(t, returned.ReturnedAt)

	_, err = f.svc.Return(context.Background(), checkout.ID)
	assert.Error(t, err)
}

// Overdue is never written to the store: the stored status stays "out" and
// the view layer derives overdue from the due date at read time.
func TestOverdue_DerivedNotStored(t *testing.T) {
	f := setupPropTest(t)
	prop, err := f.svc.Create(context.Background(), f.project.ID, CreatePropInput{Name: "Lantern"})
	require.NoError(t, err)
	checkout, err := f.svc.Checkout(context.Background(), prop.ID, CheckoutInput{
		ShootDayID: f.day.ID, CheckedOutBy: "props-master", DueReturn: "2020-01-01",
	})
	require.NoError(t, err)

	var stored domain.PropCheckout
	require.NoError(t, f.db.First(&stored, "id = ?", checkout.ID).Error)
	assert.Equal(t, domain.CheckoutOut, stored.Status)

	views, err := f.svc.ListCheckouts(context.Background(), f.day.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, domain.CheckoutOverdue, views[0].EffectiveStatus)

	// Returning an overdue prop works and clears the derived state.
	returned, err := f.svc.Return(context.Background(), checkout.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutReturned, returned.Status)
}

func TestCheckout_LockedDayRejected(t *testing.T) {
	f := setupPropTest(t)
	prop, err := f.svc.Create(context.Background(), f.project.ID, CreatePropInput{Name: "Umbrella"})
	require.NoError(t, err)

	_, err = f.days.Lock(context.Background(), f.day.ID)
	require.NoError(t, err)

	_, err = f.svc.Checkout(context.Background(), prop.ID, CheckoutInput{
		ShootDayID: f.day.ID, CheckedOutBy: "runner", DueReturn: "2099-01-01",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindLocked))
}

func TestDeleteProp_ConflictWhileOut(t *testing.T) {
	f := setupPropTest(t)
	prop, err := f.svc.Create(context.Background(), f.project.ID, CreatePropInput{Name: "Clock"})
	require.NoError(t, err)
	checkout, err := f.svc.Checkout(context.Background(), prop.ID, CheckoutInput{
		ShootDayID: f.day.ID, CheckedOutBy: "runner", DueReturn: "2099-01-01",
	})
	require.NoError(t, err)

	err = f.svc.Delete(context.Background(), prop.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	_, err = f.svc.Return(context.Background(), checkout.ID)
	require.NoError(t, err)
	assert.NoError(t, f.svc.Delete(context.Background(), prop.ID))
}
