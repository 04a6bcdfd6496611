package analytics

import (
	"context"
	"food-tracker/entities"
	"food-tracker/pkg/database"
	"time"

	"gorm.io/gorm"
)

type (
	AnalyticsRepository interface {
		// SummarizeLogs totals a user's logs per action. A nil since covers all time.
		SummarizeLogs(ctx context.Context, userID string, since *time.Time) ([]entities.ActionTotal, error)
	}

	analyticsRepository struct {
		db *gorm.DB
	}
)

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) SummarizeLogs(ctx context.Context, userID string, since *time.Time) ([]entities.ActionTotal, error) {
	query := database.Conn(ctx, r.db).Model(&entities.UsageLog{}).
		Select("action, COUNT(*) AS count, COALESCE(SUM(quantity), 0) AS total_quantity").
		Where("user_id = ?", userID)
	if since != nil {
		query = query.Where("action_date >= ?", since.Format("2006-01-02"))
	}

	var totals []entities.ActionTotal
	if err := query.Group("action").Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}
