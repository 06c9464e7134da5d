package pettycash

import (
	"context"
	"testing"

	"github.com/Vidyuzz/film-cost-flow-sub000/internal/domain"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/infrastructure/database"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCashTest(t *testing.T) (*Service, *domain.Project) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	project := &domain.Project{Title: "Night Shoot", Currency: "INR", TotalBudget: decimal.NewFromInt(500000)}
	require.NoError(t, db.Create(project).Error)

	return &Service{DB: db}, project
}

func TestCreateFloat_StartsAtIssuedAmount(t *testing.T) {
	s, project := setupCashTest(t)

	float, err := s.CreateFloat(context.Background(), project.ID, CreateFloatInput{
		OwnerUserID:  "prod-asst-1",
		IssuedAmount: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	assert.True(t, float.Balance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, float.IssuedAmount.Equal(decimal.NewFromInt(1000)))
}

func TestCreateFloat_RequiresOwner(t *testing.T) {
	s, project := setupCashTest(t)

	_, err := s.CreateFloat(context.Background(), project.ID, CreateFloatInput{
		IssuedAmount: decimal.NewFromInt(1000),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestApplyTxn_DebitAndCreditAdjustBalance(t *testing.T) {
	s, project := setupCashTest(t)
	float, err := s.CreateFloat(context.Background(), project.ID, CreateFloatInput{
		OwnerUserID:  "prod-asst-1",
		IssuedAmount: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	_, err = s.ApplyTxn(context.Background(), float.ID, ApplyTxnInput{
		Date: "2026-02-10", Amount: decimal.NewFromInt(300), Type: domain.TxnDebit, Note: "chai",
	})
	require.NoError(t, err)

	got, err := s.GetFloat(context.Background(), float.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(700)), "balance after debit: %s", got.Balance)

	_, err = s.ApplyTxn(context.Background(), float.ID, ApplyTxnInput{
		Date: "2026-02-11", Amount: decimal.NewFromInt(500), Type: domain.TxnCredit, Note: "top up",
	})
	require.NoError(t, err)

	got, err = s.GetFloat(context.Background(), float.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(1200)))
}

// A debit that would overdraw is rejected before anything is written: the
// balance stays put and no transaction row appears.
func TestApplyTxn_OverdraftRejectedWithoutSideEffects(t *testing.T) {
	s, project := setupCashTest(t)
	float, err := s.CreateFloat(context.Background(), project.ID, CreateFloatInput{
		OwnerUserID:  "prod-asst-1",
		IssuedAmount: decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	_, err = s.ApplyTxn(context.Background(), float.ID, ApplyTxnInput{
		Date: "2026-02-10", Amount: decimal.NewFromInt(250), Type: domain.TxnDebit,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindInsufficientBalance))

	got, err := s.GetFloat(context.Background(), float.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(200)))

	txns, err := s.ListTxns(context.Background(), float.ID)
	require.NoError(t, err)
	assert.Len(t, txns, 0)
}

func TestApplyTxn_DebitToExactlyZeroAllowed(t *testing.T) {
	s, project := setupCashTest(t)
	float, err := s.CreateFloat(context.Background(), project.ID, CreateFloatInput{
		OwnerUserID:  "prod-asst-1",
		IssuedAmount: decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	_, err = s.ApplyTxn(context.Background(), float.ID, ApplyTxnInput{
		Date: "2026-02-10", Amount: decimal.NewFromInt(200), Type: domain.TxnDebit,
	})
	require.NoError(t, err)

	got, err := s.GetFloat(context.Background(), float.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero())
}

func TestApplyTxn_Validation(t *testing.T) {
	s, project := setupCashTest(t)
	float, err := s.CreateFloat(context.Background(), project.ID, CreateFloatInput{
		OwnerUserID:  "prod-asst-1",
		IssuedAmount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = s.ApplyTxn(context.Background(), float.ID, ApplyTxnInput{
		Date: "2026-02-10", Amount: decimal.Zero, Type: domain.TxnDebit,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "zero amount")

	_, err = s.ApplyTxn(context.Background(), float.ID, ApplyTxnInput{
		Date: "2026-02-10", Amount: decimal.NewFromInt(10), Type: "withdrawal",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "bad type")

	_, err = s.ApplyTxn(context.Background(), float.ID, ApplyTxnInput{
		Date: "10/02/2026", Amount: decimal.NewFromInt(10), Type: domain.TxnDebit,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "bad date")
}

// Replaying the ledger from the issued amount always lands on the stored
// balance.
func TestLedgerReplayMatchesBalance(t *testing.T) {
	s, project := setupCashTest(t)
	float, err := s.CreateFloat(context.Background(), project.ID, CreateFloatInput{
		OwnerUserID:  "prod-asst-1",
		IssuedAmount: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	amounts := []struct {
		amount int64
		typ    domain.TxnType
	}{
		{150, domain.TxnDebit},
		{70, domain.TxnDebit},
		{400, domain.TxnCredit},
		{600, domain.TxnDebit},
	}
	for _, a := range amounts {
		_, err := s.ApplyTxn(context.Background(), float.ID, ApplyTxnInput{
			Date: "2026-02-12", Amount: decimal.NewFromInt(a.amount), Type: a.typ,
		})
		require.NoError(t, err)
	}

	txns, err := s.ListTxns(context.Background(), float.ID)
	require.NoError(t, err)
	replay := float.IssuedAmount
	for _, txn := range txns {
		if txn.Type == domain.TxnDebit {
			replay = replay.Sub(txn.Amount)
		} else {
			replay = replay.Add(txn.Amount)
		}
	}

	got, err := s.GetFloat(context.Background(), float.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(replay))
}
