package calendar

import (
	"context"
	"errors"
	"time"

	"portail-rh/internal/domain"
	"portail-rh/internal/repository"
)

var ErrInvalidMonth = errors.New("invalid year or month")

type Service interface {
	Month(ctx context.Context, year, month int) ([]domain.CalendarEntry, error)
}

type service struct {
	reqRepo repository.RequestRepository
}

func NewService(reqRepo repository.RequestRepository) Service {
	return &service{reqRepo: reqRepo}
}

// Month returns approved absences overlapping the given month, so an
// entry spanning a month boundary shows up in both months.
func (s *service) Month(ctx context.Context, year, month int) ([]domain.CalendarEntry, error) {
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	entries, err := s.reqRepo.ListApprovedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.CalendarEntry{}
	}
	return entries, nil
}
