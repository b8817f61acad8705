package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/refinance-service/internal/application/dto"
	"github.com/bibbank/refinance-service/internal/application/usecase"
	"github.com/bibbank/refinance-service/internal/domain/event"
	"github.com/bibbank/refinance-service/internal/domain/model"
	"github.com/bibbank/refinance-service/internal/domain/service"
	"github.com/bibbank/refinance-service/internal/domain/valueobject"
)

func seedEvaluated(t *testing.T, repo *mockApplicationRepository) dto.ApplicationResponse {
	t.Helper()
	resp, err := newSubmitUseCase(repo, &mockEventPublisher{}).Execute(context.Background(), dto.SubmitApplicationRequest{
		Contact:   contact(),
		Applicant: approvableApplicant(),
	})
	require.NoError(t, err)
	return resp
}

func TestReevaluateApplication_Execute(t *testing.T) {
	t.Run("re-runs the engine at a new rate", func(t *testing.T) {
		repo := &mockApplicationRepository{}
		app := seedEvaluated(t, repo)
		publisher := &mockEventPublisher{}
		recorder := &mockRecorder{}
		uc := usecase.NewReevaluateApplicationUseCase(repo, publisher, newEvaluator(), recorder).WithClock(clock)

		rate := decimal.RequireFromString("4.1")
		resp, err := uc.Execute(context.Background(), dto.ReevaluateApplicationRequest{
			ApplicationID: app.ID,
			RatePercent:   &rate,
		})

		require.NoError(t, err)
		assert.Equal(t, "4.1", resp.Application.RatePercent.String())
		assert.True(t, resp.IncomeBreakdown.Total.Equal(decimal.NewFromInt(9_900)))
		assert.Equal(t, []string{event.TypeEligibilityEvaluated}, publisher.types())
		assert.Equal(t, []string{"reevaluate"}, recorder.decisions)
	})

	t.Run("keeps the stored rate when none is given", func(t *testing.T) {
		repo := &mockApplicationRepository{}
		app := seedEvaluated(t, repo)
		uc := usecase.NewReevaluateApplicationUseCase(repo, &mockEventPublisher{}, newEvaluator(), nil)

		resp, err := uc.Execute(context.Background(), dto.ReevaluateApplicationRequest{ApplicationID: app.ID})

		require.NoError(t, err)
		assert.Equal(t, "3.55", resp.Application.RatePercent.String())
	})

	t.Run("refuses a lead without intake", func(t *testing.T) {
		repo := &mockApplicationRepository{}
		lead := seedLead(t, repo)
		uc := usecase.NewReevaluateApplicationUseCase(repo, &mockEventPublisher{}, newEvaluator(), nil)

		_, err := uc.Execute(context.Background(), dto.ReevaluateApplicationRequest{ApplicationID: lead.ID()})

		assert.ErrorIs(t, err, valueobject.ErrInvalidStageTransition)
	})
}

func TestUpdateApplicationStatus_Execute(t *testing.T) {
	t.Run("overrides the status", func(t *testing.T) {
		repo := &mockApplicationRepository{}
		app := seedEvaluated(t, repo)
		publisher := &mockEventPublisher{}
		uc := usecase.NewUpdateApplicationStatusUseCase(repo, publisher)

		resp, err := uc.Execute(context.Background(), dto.UpdateStatusRequest{ApplicationID: app.ID, Status: "rejected"})

		require.NoError(t, err)
		assert.Equal(t, "REJECTED", resp.Status)
		assert.Equal(t, []string{event.TypeStatusChanged}, publisher.types())
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		uc := usecase.NewUpdateApplicationStatusUseCase(&mockApplicationRepository{}, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.UpdateStatusRequest{ApplicationID: "x", Status: "MAYBE"})

		assert.ErrorIs(t, err, usecase.ErrInvalidRequest)
	})
}

func TestSetLinkSent_Execute(t *testing.T) {
	repo := &mockApplicationRepository{}
	lead := seedLead(t, repo)
	publisher := &mockEventPublisher{}
	uc := usecase.NewSetLinkSentUseCase(repo, publisher)

	resp, err := uc.Execute(context.Background(), dto.SetLinkSentRequest{ApplicationID: lead.ID(), Sent: true})

	require.NoError(t, err)
	assert.True(t, resp.LinkSent)
	assert.Empty(t, publisher.publishedEvents)
}

func TestTrashApplication_Execute(t *testing.T) {
	t.Run("moves an application to trash", func(t *testing.T) {
		repo := &mockApplicationRepository{}
		lead := seedLead(t, repo)
		publisher := &mockEventPublisher{}
		uc := usecase.NewTrashApplicationUseCase(repo, publisher).WithClock(clock)

		resp, err := uc.Execute(context.Background(), dto.GetApplicationRequest{ApplicationID: lead.ID()})

		require.NoError(t, err)
		assert.Equal(t, "TRASH", resp.Stage)
		require.NotNil(t, resp.DeletedAt)
		assert.Equal(t, fixedNow, *resp.DeletedAt)
		assert.Equal(t, []string{event.TypeStageChanged}, publisher.types())
	})

	t.Run("refuses to trash twice", func(t *testing.T) {
		repo := &mockApplicationRepository{}
		lead := seedLead(t, repo)
		uc := usecase.NewTrashApplicationUseCase(repo, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.GetApplicationRequest{ApplicationID: lead.ID()})
		require.NoError(t, err)
		_, err = uc.Execute(context.Background(), dto.GetApplicationRequest{ApplicationID: lead.ID()})

		assert.ErrorIs(t, err, valueobject.ErrInvalidStageTransition)
	})
}

func TestPurgeTrash_Execute(t *testing.T) {
	t.Run("purges applications older than the retention period", func(t *testing.T) {
		var gotCutoff time.Time
		repo := &mockApplicationRepository{
			purgeTrashedFunc: func(_ context.Context, cutoff time.Time) (int, error) {
				gotCutoff = cutoff
				return 3, nil
			},
		}
		uc := usecase.NewPurgeTrashUseCase(repo, nil).WithClock(clock)

		resp, err := uc.Execute(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, resp.Purged)
		assert.Equal(t, fixedNow.Add(-model.TrashRetention), gotCutoff)
	})

	t.Run("wraps repository errors", func(t *testing.T) {
		repo := &mockApplicationRepository{
			purgeTrashedFunc: func(context.Context, time.Time) (int, error) {
				return 0, errors.New("database unavailable")
			},
		}
		uc := usecase.NewPurgeTrashUseCase(repo, nil)

		_, err := uc.Execute(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "purge trashed applications")
	})
}

func TestCompareSavings_Execute(t *testing.T) {
	uc := usecase.NewCompareSavingsUseCase(service.NewSavingsCalculator())

	t.Run("compares a valid current loan", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.CompareSavingsRequest{
			Balance:            dec(300_000),
			CurrentRatePercent: decimal.RequireFromString("4.5"),
			CurrentInstallment: dec(2_000),
			NewRatePercent:     decimal.RequireFromString("3.5"),
			NewTenureYears:     25,
		})

		require.NoError(t, err)
		assert.True(t, resp.Valid)
		assert.True(t, resp.MonthlySaving.IsPositive())
		assert.True(t, resp.RemainingMonths.IsPositive())
		assert.Len(t, resp.Schedule, 25)
	})

	t.Run("flags an installment that never repays the loan", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.CompareSavingsRequest{
			Balance:            dec(300_000),
			CurrentRatePercent: dec(6),
			CurrentInstallment: dec(1_000),
			NewRatePercent:     decimal.RequireFromString("3.5"),
			NewTenureYears:     25,
		})

		require.NoError(t, err)
		assert.False(t, resp.Valid)
		assert.NotEmpty(t, resp.InvalidReason)
	})

	t.Run("rejects a tenure out of range", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), dto.CompareSavingsRequest{
			Balance:        dec(300_000),
			NewTenureYears: 50,
		})

		assert.ErrorIs(t, err, model.ErrTenureOutOfRange)
	})
}
