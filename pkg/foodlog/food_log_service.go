package foodlog

import (
	"context"
	"errors"
	"food-tracker/domain"
	"food-tracker/entities"
	"food-tracker/internal/metrics"
	"food-tracker/pkg/database"
	"food-tracker/pkg/food"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FoodLogService interface {
		CreateLog(ctx context.Context, req domain.CreateFoodLogRequest, userID string) (domain.FoodLogResponse, error)
		GetLogs(ctx context.Context, userID string, action string, foodID string) ([]domain.FoodLogResponse, error)
		GetLogByID(ctx context.Context, id string, userID string) (domain.FoodLogResponse, error)
		DeleteLog(ctx context.Context, id string, userID string) error

		// Record consumes quantity from the food and appends the matching log
		// entry in one transaction, joining the one in ctx if present.
		Record(ctx context.Context, entry Entry) (*entities.UsageLog, error)
	}

	// Entry is one consumption event to record.
	Entry struct {
		UserID     string
		FoodID     string
		Action     domain.LogAction
		Quantity   float64
		ActionDate time.Time
		Reason     string
		Remarks    string
	}

	foodLogService struct {
		foodLogRepository FoodLogRepository
		foodRepository    food.FoodRepository
		foodService       food.FoodService
		transactor        database.Transactor
		now               func() time.Time
	}
)

func NewFoodLogService(
	foodLogRepository FoodLogRepository,
	foodRepository food.FoodRepository,
	foodService food.FoodService,
	transactor database.Transactor,
) FoodLogService {
	return &foodLogService{
		foodLogRepository: foodLogRepository,
		foodRepository:    foodRepository,
		foodService:       foodService,
		transactor:        transactor,
		now:               time.Now,
	}
}

func (s *foodLogService) CreateLog(ctx context.Context, req domain.CreateFoodLogRequest, userID string) (domain.FoodLogResponse, error) {
	action, err := domain.ParseLogAction(req.Action)
	if err != nil {
		return domain.FoodLogResponse{}, err
	}
	if req.Quantity <= 0 {
		return domain.FoodLogResponse{}, domain.ErrInvalidQuantity
	}

	today := domain.DateOf(s.now())
	actionDate := today
	parsed, err := domain.ParseDate(req.ActionDate)
	if err != nil {
		return domain.FoodLogResponse{}, err
	}
	if parsed != nil {
		if parsed.After(today) {
			return domain.FoodLogResponse{}, domain.ErrActionDateInTheFuture
		}
		actionDate = *parsed
	}

	log, err := s.Record(ctx, Entry{
		UserID:     userID,
		FoodID:     req.FoodID,
		Action:     action,
		Quantity:   req.Quantity,
		ActionDate: actionDate,
		Reason:     strings.TrimSpace(req.Reason),
		Remarks:    strings.TrimSpace(req.Remarks),
	})
	if err != nil {
		return domain.FoodLogResponse{}, err
	}
	metrics.RecordUsageLog(string(log.Action), log.Quantity)

	return s.enrichOne(ctx, log)
}

func (s *foodLogService) Record(ctx context.Context, entry Entry) (*entities.UsageLog, error) {
	userUUID, err := uuid.Parse(entry.UserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	var log *entities.UsageLog
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		consumed, err := s.foodService.Consume(ctx, entry.UserID, entry.FoodID, entry.Quantity, entry.Action, entry.Reason)
		if err != nil {
			return err
		}

		log = &entities.UsageLog{
			ID:         uuid.New(),
			UserID:     userUUID,
			FoodID:     consumed.ID,
			Action:     entry.Action,
			Quantity:   entry.Quantity,
			ActionDate: domain.DateOf(entry.ActionDate),
			Reason:     entry.Reason,
			Remarks:    entry.Remarks,
		}
		return s.foodLogRepository.CreateLog(ctx, log)
	})
	if err != nil {
		return nil, err
	}
	return log, nil
}

func (s *foodLogService) GetLogs(ctx context.Context, userID string, action string, foodID string) ([]domain.FoodLogResponse, error) {
	filter := domain.FoodLogFilter{FoodID: strings.TrimSpace(foodID)}
	if strings.TrimSpace(action) != "" {
		parsed, err := domain.ParseLogAction(action)
		if err != nil {
			return nil, err
		}
		filter.Action = parsed
	}
	if filter.FoodID != "" {
		if _, err := uuid.Parse(filter.FoodID); err != nil {
			return nil, domain.ErrParseUUID
		}
	}

	logs, err := s.foodLogRepository.GetLogs(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, logs)
}

func (s *foodLogService) GetLogByID(ctx context.Context, id string, userID string) (domain.FoodLogResponse, error) {
	log, err := s.getOwnedLog(ctx, id, userID)
	if err != nil {
		return domain.FoodLogResponse{}, err
	}
	return s.enrichOne(ctx, log)
}

// DeleteLog removes the record only; the quantity it consumed stays consumed.
func (s *foodLogService) DeleteLog(ctx context.Context, id string, userID string) error {
	if _, err := s.getOwnedLog(ctx, id, userID); err != nil {
		return err
	}
	return s.foodLogRepository.DeleteLog(ctx, id)
}

func (s *foodLogService) getOwnedLog(ctx context.Context, id string, userID string) (*entities.UsageLog, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrParseUUID
	}
	log, err := s.foodLogRepository.GetLogByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodLogNotFound
		}
		return nil, err
	}
	if log.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedFoodLog
	}
	return log, nil
}

func (s *foodLogService) enrichOne(ctx context.Context, log *entities.UsageLog) (domain.FoodLogResponse, error) {
	res, err := s.enrich(ctx, []*entities.UsageLog{log})
	if err != nil {
		return domain.FoodLogResponse{}, err
	}
	return res[0], nil
}

// enrich attaches each food's current name; deleted food yields a nil name.
func (s *foodLogService) enrich(ctx context.Context, logs []*entities.UsageLog) ([]domain.FoodLogResponse, error) {
	ids := make([]string, 0, len(logs))
	seen := make(map[string]bool, len(logs))
	for _, l := range logs {
		id := l.FoodID.String()
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	foods, err := s.foodRepository.GetFoodItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(foods))
	for _, f := range foods {
		names[f.ID.String()] = f.Name
	}

	res := make([]domain.FoodLogResponse, 0, len(logs))
	for _, l := range logs {
		item := domain.FoodLogResponse{
			ID:         l.ID.String(),
			FoodID:     l.FoodID.String(),
			Action:     l.Action,
			Quantity:   l.Quantity,
			ActionDate: l.ActionDate.Format(domain.DateLayout),
			Reason:     l.Reason,
			Remarks:    l.Remarks,
		}
		if name, ok := names[item.FoodID]; ok {
			item.FoodName = &name
		}
		res = append(res, item)
	}
	return res, nil
}
