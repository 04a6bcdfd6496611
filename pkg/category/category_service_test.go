package category

import (
	"context"
	"testing"

	"food-tracker/domain"
	"food-tracker/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) CreateCategory(ctx context.Context, category *entities.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockCategoryRepository) GetCategoryByID(ctx context.Context, id string) (*entities.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *mockCategoryRepository) GetCategories(ctx context.Context, userID string) ([]*entities.Category, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*entities.Category), args.Error(1)
}

func (m *mockCategoryRepository) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestCreateCategory(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := NewCategoryService(repo)
	userID := uuid.NewString()

	repo.On("CreateCategory", mock.Anything, mock.MatchedBy(func(c *entities.Category) bool {
		return c.Name == "Dairy" && c.UserID.String() == userID
	})).Return(nil).Once()

	res, err := svc.CreateCategory(context.Background(), domain.CreateCategoryRequest{Name: " Dairy "}, userID)
	require.NoError(t, err)
	assert.Equal(t, "Dairy", res.Name)
	assert.NotEmpty(t, res.ID)
	repo.AssertExpectations(t)
}

func TestCreateCategory_BlankName(t *testing.T) {
	svc := NewCategoryService(new(mockCategoryRepository))

	_, err := svc.CreateCategory(context.Background(), domain.CreateCategoryRequest{Name: "  "}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetCategories(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := NewCategoryService(repo)

	repo.On("GetCategories", mock.Anything, "u1").Return([]*entities.Category{
		{ID: uuid.New(), Name: "Dairy"},
		{ID: uuid.New(), Name: "Produce"},
	}, nil).Once()

	res, err := svc.GetCategories(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Produce", res[1].Name)
}

func TestDeleteCategory(t *testing.T) {
	owner := uuid.New()
	id := uuid.NewString()

	tests := []struct {
		name    string
		userID  string
		found   *entities.Category
		findErr error
		want    error
		deletes bool
	}{
		{"owner deletes", owner.String(), &entities.Category{UserID: owner}, nil, nil, true},
		{"other owner", uuid.NewString(), &entities.Category{UserID: owner}, nil, domain.ErrUnauthorizedCategory, false},
		{"missing", owner.String(), nil, gorm.ErrRecordNotFound, domain.ErrCategoryNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockCategoryRepository)
			svc := NewCategoryService(repo)

			if tt.found != nil {
				repo.On("GetCategoryByID", mock.Anything, id).Return(tt.found, nil).Once()
			} else {
				repo.On("GetCategoryByID", mock.Anything, id).Return(nil, tt.findErr).Once()
			}
			if tt.deletes {
				repo.On("DeleteCategory", mock.Anything, id).Return(nil).Once()
			}

			err := svc.DeleteCategory(context.Background(), id, tt.userID)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
			repo.AssertExpectations(t)
		})
	}
}
