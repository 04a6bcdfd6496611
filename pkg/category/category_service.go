package category

import (
	"context"
	"errors"
	"food-tracker/domain"
	"food-tracker/entities"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CategoryService interface {
		CreateCategory(ctx context.Context, req domain.CreateCategoryRequest, userID string) (domain.Category, error)
		GetCategories(ctx context.Context, userID string) ([]domain.Category, error)
		DeleteCategory(ctx context.Context, id string, userID string) error
	}

	categoryService struct {
		categoryRepository CategoryRepository
	}
)

func NewCategoryService(categoryRepository CategoryRepository) CategoryService {
	return &categoryService{categoryRepository: categoryRepository}
}

func (s *categoryService) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest, userID string) (domain.Category, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Category{}, domain.ErrParseUUID
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Category{}, domain.NewValidationError("category name is required")
	}

	category := &entities.Category{
		ID:     uuid.New(),
		UserID: userUUID,
		Name:   name,
	}
	if err := s.categoryRepository.CreateCategory(ctx, category); err != nil {
		return domain.Category{}, err
	}
	return domain.Category{ID: category.ID.String(), Name: category.Name}, nil
}

func (s *categoryService) GetCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.categoryRepository.GetCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		res = append(res, domain.Category{ID: c.ID.String(), Name: c.Name})
	}
	return res, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id string, userID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrParseUUID
	}

	category, err := s.categoryRepository.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCategoryNotFound
		}
		return err
	}
	if category.UserID.String() != userID {
		return domain.ErrUnauthorizedCategory
	}
	return s.categoryRepository.DeleteCategory(ctx, id)
}
