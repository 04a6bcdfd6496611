package food

import (
	"context"
	"food-tracker/domain"
	"food-tracker/entities"
	"food-tracker/pkg/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	FoodRepository interface {
		AddFoodItem(ctx context.Context, food *entities.Food) error
		GetFoodItemByID(ctx context.Context, id string) (*entities.Food, error)
		// GetFoodItemForUpdate locks the row until the surrounding transaction ends.
		GetFoodItemForUpdate(ctx context.Context, id string) (*entities.Food, error)
		GetFoodItemsByIDs(ctx context.Context, ids []string) ([]*entities.Food, error)
		GetFoodItems(ctx context.Context, userID string) ([]*entities.Food, error)
		GetFoodItemsByStatus(ctx context.Context, userID string, status domain.FoodStatus) ([]*entities.Food, error)
		// UpdateFoodItem writes food only if its version is unchanged since it was read.
		UpdateFoodItem(ctx context.Context, food *entities.Food) error
		DeleteFoodItem(ctx context.Context, id string) error
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) AddFoodItem(ctx context.Context, food *entities.Food) error {
	return database.Conn(ctx, r.db).Create(food).Error
}

func (r *foodRepository) GetFoodItemByID(ctx context.Context, id string) (*entities.Food, error) {
	var food entities.Food
	if err := database.Conn(ctx, r.db).Where("id = ?", id).First(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *foodRepository) GetFoodItemForUpdate(ctx context.Context, id string) (*entities.Food, error) {
	var food entities.Food
	if err := database.Conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *foodRepository) GetFoodItemsByIDs(ctx context.Context, ids []string) ([]*entities.Food, error) {
	var foods []*entities.Food
	if len(ids) == 0 {
		return foods, nil
	}
	if err := database.Conn(ctx, r.db).Where("id IN ?", ids).Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *foodRepository) GetFoodItems(ctx context.Context, userID string) ([]*entities.Food, error) {
	var foods []*entities.Food
	if err := database.Conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *foodRepository) GetFoodItemsByStatus(ctx context.Context, userID string, status domain.FoodStatus) ([]*entities.Food, error) {
	var foods []*entities.Food
	if err := database.Conn(ctx, r.db).
		Where("user_id = ? AND status = ?", userID, status).
		Order("expiry_date asc").
		Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *foodRepository) UpdateFoodItem(ctx context.Context, food *entities.Food) error {
	res := database.Conn(ctx, r.db).Model(&entities.Food{}).
		Where("id = ? AND version = ?", food.ID, food.Version).
		Updates(map[string]interface{}{
			"category":         food.Category,
			"name":             food.Name,
			"quantity":         food.Quantity,
			"unit":             food.Unit,
			"purchase_date":    food.PurchaseDate,
			"expiry_date":      food.ExpiryDate,
			"storage_location": food.StorageLocation,
			"status":           food.Status,
			"reason_of_waste":  food.ReasonOfWaste,
			"image_url":        food.ImageURL,
			"version":          gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrFoodItemConflict
	}
	food.Version++
	return nil
}

func (r *foodRepository) DeleteFoodItem(ctx context.Context, id string) error {
	return database.Conn(ctx, r.db).Where("id = ?", id).Delete(&entities.Food{}).Error
}
