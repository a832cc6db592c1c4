package calendar_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"portail-rh/internal/domain"
	"portail-rh/internal/mocks"
	"portail-rh/internal/service/calendar"
)

func TestCalendarService_Month(t *testing.T) {
	ctx := context.Background()

	t.Run("queries the whole month", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		svc := calendar.NewService(reqRepo)

		entries := []domain.CalendarEntry{
			{RequestID: uuid.New(), UserID: uuid.New(), UserName: "Fatima B.", Type: domain.TypeCongeAnnuel},
		}

		from := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
		reqRepo.On("ListApprovedBetween", ctx, from, to).Return(entries, nil).Once()

		got, err := svc.Month(ctx, 2025, 5)

		assert.NoError(t, err)
		assert.Len(t, got, 1)
		reqRepo.AssertExpectations(t)
	})

	t.Run("empty month returns empty slice not nil", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		svc := calendar.NewService(reqRepo)

		reqRepo.On("ListApprovedBetween", ctx, mock.Anything, mock.Anything).Return([]domain.CalendarEntry(nil), nil).Once()

		got, err := svc.Month(ctx, 2025, 2)

		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("invalid month rejected", func(t *testing.T) {
		svc := calendar.NewService(new(mocks.RequestRepository))

		for _, m := range []int{0, 13, -1} {
			_, err := svc.Month(ctx, 2025, m)
			assert.ErrorIs(t, err, calendar.ErrInvalidMonth)
		}

		_, err := svc.Month(ctx, 1800, 5)
		assert.ErrorIs(t, err, calendar.ErrInvalidMonth)
	})
}
