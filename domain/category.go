package domain

var (
	MessageSuccessCreateCategory = "category added successfully"
	MessageSuccessGetCategories  = "categories retrieved successfully"
	MessageSuccessDeleteCategory = "category deleted successfully"

	MessageFailedCreateCategory = "failed to add category"
	MessageFailedGetCategories  = "failed to retrieve categories"
	MessageFailedDeleteCategory = "failed to delete category"

	ErrCategoryNotFound     = NewNotFoundError("category not found")
	ErrUnauthorizedCategory = NewForbiddenError("unauthorized access to category")
)

type (
	CreateCategoryRequest struct {
		Name string `json:"category" validate:"required,max=20"`
	}

	Category struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
)
