package crew

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

type crewFixture struct {
	svc     *Service
	days    *shootdays.Service
	db      *gorm.DB
	project *domain.Project
	day     *domain.ShootDay
}

func setupCrewTest(t *testing.T) crewFixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	project := &domain.Project{Title: "Blue Hour", Currency: "INR", TotalBudget: decimal.NewFromInt(300000)}
	require.NoError(t, db.Create(project).Error)

	days := &shootdays.Service{DB: db}
	day, err := days.Create(context.Background(), project.ID, shootdays.CreateShootDayInput{Date: "2026-03-20"})
	require.NoError(t, err)

	return crewFixture{svc: &Service{DB: db}, days: days, db: db, project: project, day: day}
}

func TestCreateFeedback_CrewOrAnonymousExclusive(t *testing.T) {
	f := setupCrewTest(t)
	member, err := f.svc.Create(context.Background(), f.project.ID, CreateCrewInput{Name: "S. Rao", Role: "Focus puller"})
	require.NoError(t, err)

	_, err = f.svc.CreateFeedback(context.Background(), f.day.ID, CreateFeedbackInput{
		CrewID: &member.ID, IsAnonymous: true, Rating: 4,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "both crew and anonymous")

	_, err = f.svc.CreateFeedback(context.Background(), f.day.ID, CreateFeedbackInput{Rating: 4})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "neither crew nor anonymous")

	named, err := f.svc.CreateFeedback(context.Background(), f.day.ID, CreateFeedbackInput{
		CrewID: &member.ID, Rating: 4, Comment: "solid day",
	})
	require.NoError(t, err)
	assert.False(t, named.IsAnonymous)

	anon, err := f.svc.CreateFeedback(context.Background(), f.day.ID, CreateFeedbackInput{
		IsAnonymous: true, Rating: 2, Tags: []string{"delay"},
	})
	require.NoError(t, err)
	assert.Nil(t, anon.CrewID)
}

func TestCreateFeedback_RatingRange(t *testing.T) {
	f := setupCrewTest(t)

	_, err := f.svc.CreateFeedback(context.Background(), f.day.ID, CreateFeedbackInput{IsAnonymous: true, Rating: 0})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = f.svc.CreateFeedback(context.Background(), f.day.ID, CreateFeedbackInput{IsAnonymous: true, Rating: 6})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCreateFeedback_LockedDayRejected(t *testing.T) {
	f := setupCrewTest(t)
	_, err := f.days.Lock(context.Background(), f.day.ID)
	require.NoError(t, err)

	_, err = f.svc.CreateFeedback(context.Background(), f.day.ID, CreateFeedbackInput{IsAnonymous: true, Rating: 3})
	assert.True(t, apperr.IsKind(err, apperr.KindLocked))
}

func TestDeleteCrew_ConflictWhileFeedbackExists(t *testing.T) {
	f := setupCrewTest(t)
	member, err := f.svc.Create(context.Background(), f.project.ID, CreateCrewInput{Name: "S. Rao", Role: "Focus puller"})
	require.NoError(t, err)
	_, err = f.svc.CreateFeedback(context.Background(), f.day.ID, CreateFeedbackInput{CrewID: &member.ID, Rating: 5})
	require.NoError(t, err)

	err = f.svc.Delete(context.Background(), member.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}
