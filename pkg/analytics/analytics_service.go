package analytics

import (
	"context"
	"food-tracker/domain"
	"time"
)

type (
	AnalyticsService interface {
		Summarize(ctx context.Context, userID string, period string) (domain.AnalyticsResponse, error)
	}

	analyticsService struct {
		analyticsRepository AnalyticsRepository
		now                 func() time.Time
	}
)

func NewAnalyticsService(analyticsRepository AnalyticsRepository) AnalyticsService {
	return &analyticsService{
		analyticsRepository: analyticsRepository,
		now:                 time.Now,
	}
}

func (s *analyticsService) Summarize(ctx context.Context, userID string, period string) (domain.AnalyticsResponse, error) {
	p, err := domain.ParseAnalyticsPeriod(period)
	if err != nil {
		return domain.AnalyticsResponse{}, err
	}

	start := p.WindowStart(s.now())
	totals, err := s.analyticsRepository.SummarizeLogs(ctx, userID, start)
	if err != nil {
		return domain.AnalyticsResponse{}, err
	}

	res := domain.AnalyticsResponse{
		Period:    p,
		StartDate: domain.FormatDate(start),
		Analytics: make(map[domain.LogAction]domain.ActionSummary, len(domain.LogActions)),
	}
	for _, action := range domain.LogActions {
		res.Analytics[action] = domain.ActionSummary{}
	}
	for _, t := range totals {
		if _, known := res.Analytics[t.Action]; !known {
			continue
		}
		res.Analytics[t.Action] = domain.ActionSummary{
			Count:         t.Count,
			TotalQuantity: t.TotalQuantity,
		}
		res.TotalLoggedItems += t.Count
		res.TotalQuantityProcessed += t.TotalQuantity
	}
	return res, nil
}
