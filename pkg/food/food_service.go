package food

import (
	"context"
	"errors"
	"food-tracker/domain"
	"food-tracker/entities"
	"food-tracker/internal/utils/mailing"
	"food-tracker/internal/utils/storage"
	"food-tracker/pkg/database"
	"food-tracker/pkg/user"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FoodService interface {
		AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (domain.FoodItemResponse, error)
		GetFoodItems(ctx context.Context, userID string) (domain.FoodInventoryResponse, error)
		GetFoodItemByID(ctx context.Context, id string, userID string) (domain.FoodItemResponse, error)
		UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, userID string) (domain.FoodItemResponse, error)
		UpdateStatus(ctx context.Context, id string, req domain.UpdateFoodStatusRequest, userID string) (domain.FoodItemResponse, error)
		DeleteFoodItem(ctx context.Context, id string, userID string) error
		GetExpiryAlerts(ctx context.Context, userID string) (domain.ExpiryAlertsResponse, error)
		SendExpiryAlerts(ctx context.Context, userID string) (domain.ExpiryAlertsResponse, error)
		UploadFoodImage(ctx context.Context, id string, req domain.UploadFoodImageRequest, userID string) (domain.FoodItemResponse, error)

		// Consume takes quantity out of the food under a row lock. It joins the
		// transaction in ctx, if any, so callers can append their own records
		// atomically with the ledger change.
		Consume(ctx context.Context, userID string, foodID string, quantity float64, action domain.LogAction, reason string) (*entities.Food, error)
	}

	foodService struct {
		foodRepository FoodRepository
		userRepository user.UserRepository
		transactor     database.Transactor
		s3             storage.AwsS3
		mailer         mailing.Mailer
		now            func() time.Time
	}
)

func NewFoodService(
	foodRepository FoodRepository,
	userRepository user.UserRepository,
	transactor database.Transactor,
	s3 storage.AwsS3,
	mailer mailing.Mailer,
) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		userRepository: userRepository,
		transactor:     transactor,
		s3:             s3,
		mailer:         mailer,
		now:            time.Now,
	}
}

func (s *foodService) today() time.Time {
	return domain.DateOf(s.now())
}

func (s *foodService) AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (domain.FoodItemResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrParseUUID
	}
	if req.Quantity <= 0 {
		return domain.FoodItemResponse{}, domain.ErrInvalidQuantity
	}

	purchaseDate, err := domain.ParseDate(req.PurchaseDate)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}
	expiryDate, err := domain.ParseDate(req.ExpiryDate)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	food := &entities.Food{
		ID:              uuid.New(),
		UserID:          userUUID,
		Category:        strings.TrimSpace(req.Category),
		Name:            strings.TrimSpace(req.Name),
		Quantity:        req.Quantity,
		Unit:            req.Unit,
		PurchaseDate:    purchaseDate,
		ExpiryDate:      expiryDate,
		StorageLocation: req.StorageLocation,
		Status:          domain.FoodStatusAvailable,
		Version:         1,
	}
	if err := s.foodRepository.AddFoodItem(ctx, food); err != nil {
		return domain.FoodItemResponse{}, err
	}

	return toFoodItemResponse(food, s.today()), nil
}

func (s *foodService) GetFoodItems(ctx context.Context, userID string) (domain.FoodInventoryResponse, error) {
	foods, err := s.foodRepository.GetFoodItems(ctx, userID)
	if err != nil {
		return domain.FoodInventoryResponse{}, err
	}
	return BuildInventory(foods, s.today()), nil
}

func (s *foodService) GetFoodItemByID(ctx context.Context, id string, userID string) (domain.FoodItemResponse, error) {
	food, err := s.getOwnedFood(ctx, id, userID, false)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}
	return toFoodItemResponse(food, s.today()), nil
}

func (s *foodService) UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, userID string) (domain.FoodItemResponse, error) {
	var food *entities.Food
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		food, err = s.getOwnedFood(ctx, id, userID, true)
		if err != nil {
			return err
		}

		if req.Name != nil {
			food.Name = strings.TrimSpace(*req.Name)
		}
		if req.Category != nil {
			food.Category = strings.TrimSpace(*req.Category)
		}
		if req.Unit != nil {
			food.Unit = *req.Unit
		}
		if req.StorageLocation != nil {
			food.StorageLocation = *req.StorageLocation
		}
		if req.Quantity != nil {
			if *req.Quantity < 0 {
				return domain.ErrNegativeQuantity
			}
			food.Quantity = *req.Quantity
		}
		if req.ExpiryDate != nil {
			expiryDate, err := domain.ParseDate(*req.ExpiryDate)
			if err != nil {
				return err
			}
			food.ExpiryDate = expiryDate
		}

		reason := ""
		if req.WastedReason != nil {
			reason = strings.TrimSpace(*req.WastedReason)
		}
		if req.Status != nil {
			status, err := domain.ParseFoodStatus(*req.Status)
			if err != nil {
				return err
			}
			ApplyStatus(food, status, reason)
		} else if reason != "" && food.Status == domain.FoodStatusWasted {
			food.ReasonOfWaste = reason
		}

		return s.foodRepository.UpdateFoodItem(ctx, food)
	})
	if err != nil {
		return domain.FoodItemResponse{}, err
	}
	return toFoodItemResponse(food, s.today()), nil
}

func (s *foodService) UpdateStatus(ctx context.Context, id string, req domain.UpdateFoodStatusRequest, userID string) (domain.FoodItemResponse, error) {
	status, err := domain.ParseFoodStatus(req.Status)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	var food *entities.Food
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		food, err = s.getOwnedFood(ctx, id, userID, true)
		if err != nil {
			return err
		}
		ApplyStatus(food, status, strings.TrimSpace(req.Reason))
		return s.foodRepository.UpdateFoodItem(ctx, food)
	})
	if err != nil {
		return domain.FoodItemResponse{}, err
	}
	return toFoodItemResponse(food, s.today()), nil
}

func (s *foodService) DeleteFoodItem(ctx context.Context, id string, userID string) error {
	food, err := s.getOwnedFood(ctx, id, userID, false)
	if err != nil {
		return err
	}

	if err := s.foodRepository.DeleteFoodItem(ctx, id); err != nil {
		return err
	}

	if food.ImageURL != "" && s.s3 != nil {
		if key := s.s3.GetObjectKeyFromLink(food.ImageURL); key != "" {
			if err := s.s3.DeleteFile(ctx, key); err != nil {
				log.Warnf("failed to delete image %s of food %s: %v", key, id, err)
			}
		}
	}
	return nil
}

func (s *foodService) GetExpiryAlerts(ctx context.Context, userID string) (domain.ExpiryAlertsResponse, error) {
	foods, err := s.foodRepository.GetFoodItemsByStatus(ctx, userID, domain.FoodStatusAvailable)
	if err != nil {
		return domain.ExpiryAlertsResponse{}, err
	}
	return BuildAlerts(foods, s.today()), nil
}

// SendExpiryAlerts mails the current alert list to the owner. Nothing is sent
// when there is nothing to report.
func (s *foodService) SendExpiryAlerts(ctx context.Context, userID string) (domain.ExpiryAlertsResponse, error) {
	alerts, err := s.GetExpiryAlerts(ctx, userID)
	if err != nil {
		return domain.ExpiryAlertsResponse{}, err
	}
	if alerts.TotalAlerts == 0 {
		return alerts, nil
	}

	owner, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ExpiryAlertsResponse{}, domain.ErrUserNotFound
		}
		return domain.ExpiryAlertsResponse{}, err
	}
	if owner.Email == "" {
		return domain.ExpiryAlertsResponse{}, domain.ErrNoAlertRecipient
	}

	body, err := mailing.RenderExpiryAlerts(owner.Name, alerts)
	if err != nil {
		return domain.ExpiryAlertsResponse{}, err
	}
	if err := s.mailer.SendMail(owner.Email, "Food expiry alert", body); err != nil {
		return domain.ExpiryAlertsResponse{}, err
	}
	return alerts, nil
}

func (s *foodService) UploadFoodImage(ctx context.Context, id string, req domain.UploadFoodImageRequest, userID string) (domain.FoodItemResponse, error) {
	if req.Image == nil {
		return domain.FoodItemResponse{}, domain.NewValidationError("image is required")
	}

	var food *entities.Food
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		food, err = s.getOwnedFood(ctx, id, userID, true)
		if err != nil {
			return err
		}

		var key string
		if existing := s.s3.GetObjectKeyFromLink(food.ImageURL); existing != "" {
			key, err = s.s3.UpdateFile(ctx, existing, req.Image, storage.AllowImage...)
		} else {
			key, err = s.s3.UploadFile(ctx, food.ID.String(), req.Image, "food", storage.AllowImage...)
		}
		if err != nil {
			return err
		}

		food.ImageURL = s.s3.GetPublicLinkKey(key)
		return s.foodRepository.UpdateFoodItem(ctx, food)
	})
	if err != nil {
		return domain.FoodItemResponse{}, err
	}
	return toFoodItemResponse(food, s.today()), nil
}

func (s *foodService) Consume(ctx context.Context, userID string, foodID string, quantity float64, action domain.LogAction, reason string) (*entities.Food, error) {
	var food *entities.Food
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		food, err = s.getOwnedFood(ctx, foodID, userID, true)
		if err != nil {
			return err
		}
		if err := ApplyConsumption(food, quantity, action, reason); err != nil {
			return err
		}
		return s.foodRepository.UpdateFoodItem(ctx, food)
	})
	if err != nil {
		return nil, err
	}
	return food, nil
}

// getOwnedFood loads food and checks it belongs to userID. With lock set the
// row stays locked until the surrounding transaction ends.
func (s *foodService) getOwnedFood(ctx context.Context, id string, userID string, lock bool) (*entities.Food, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrParseUUID
	}

	var (
		food *entities.Food
		err  error
	)
	if lock {
		food, err = s.foodRepository.GetFoodItemForUpdate(ctx, id)
	} else {
		food, err = s.foodRepository.GetFoodItemByID(ctx, id)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, err
	}

	if food.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return food, nil
}
