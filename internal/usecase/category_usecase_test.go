package usecase

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAdminCreateCategory_RequiresName(t *testing.T) {
	categories := new(categoryRepoMock)
	uc := NewCategoryUsecase(categories)

	_, err := uc.AdminCreateCategory(context.Background(), 1, AdminCategoryInput{Name: "   "})
	assertHTTPError(t, err, http.StatusBadRequest, "Category name is required")
	categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// name重複はDBのunique違反として500（既存エラーメッセージを維持）
func TestAdminCreateCategory_DuplicateName(t *testing.T) {
	categories := new(categoryRepoMock)
	uc := NewCategoryUsecase(categories)

	categories.On("Create", mock.Anything, mock.Anything).Return(int64(0), assert.AnError)

	_, err := uc.AdminCreateCategory(context.Background(), 1, AdminCategoryInput{Name: "Groceries"})
	assertHTTPError(t, err, http.StatusInternalServerError, "Failed to create category. Category name may already exist.")
}

func TestAdminUpdateCategory_NotFound(t *testing.T) {
	categories := new(categoryRepoMock)
	uc := NewCategoryUsecase(categories)

	categories.On("FindByID", mock.Anything, int64(999)).Return(model.Category{}, repo.ErrNotFound)

	_, err := uc.AdminUpdateCategory(context.Background(), 1, 999, AdminCategoryInput{Name: "Groceries"})
	assertHTTPError(t, err, http.StatusNotFound, "Category not found")
}

func TestGetCategory(t *testing.T) {
	categories := new(categoryRepoMock)
	uc := NewCategoryUsecase(categories)

	categories.On("FindByID", mock.Anything, int64(3)).Return(model.Category{ID: 3, Name: "Groceries"}, nil)

	out, err := uc.GetCategory(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, "Groceries", out.Name)
}
