package foodlog

import (
	"context"
	"food-tracker/domain"
	"food-tracker/entities"
	"food-tracker/pkg/database"

	"gorm.io/gorm"
)

type (
	FoodLogRepository interface {
		CreateLog(ctx context.Context, log *entities.UsageLog) error
		GetLogByID(ctx context.Context, id string) (*entities.UsageLog, error)
		GetLogs(ctx context.Context, userID string, filter domain.FoodLogFilter) ([]*entities.UsageLog, error)
		DeleteLog(ctx context.Context, id string) error
	}

	foodLogRepository struct {
		db *gorm.DB
	}
)

func NewFoodLogRepository(db *gorm.DB) FoodLogRepository {
	return &foodLogRepository{db: db}
}

func (r *foodLogRepository) CreateLog(ctx context.Context, log *entities.UsageLog) error {
	return database.Conn(ctx, r.db).Create(log).Error
}

func (r *foodLogRepository) GetLogByID(ctx context.Context, id string) (*entities.UsageLog, error) {
	var log entities.UsageLog
	if err := database.Conn(ctx, r.db).Where("id = ?", id).First(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *foodLogRepository) GetLogs(ctx context.Context, userID string, filter domain.FoodLogFilter) ([]*entities.UsageLog, error) {
	query := database.Conn(ctx, r.db).Where("user_id = ?", userID)
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.FoodID != "" {
		query = query.Where("food_id = ?", filter.FoodID)
	}

	var logs []*entities.UsageLog
	if err := query.Order("action_date desc").Order("created_at desc").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *foodLogRepository) DeleteLog(ctx context.Context, id string) error {
	return database.Conn(ctx, r.db).Where("id = ?", id).Delete(&entities.UsageLog{}).Error
}
