package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-inventory-api/internal/apperr"
	"go-inventory-api/internal/service"
)

func TestCategoryCreate(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := service.NewCategoryService(repo)
	userID := uuid.New()

	category, err := svc.Create(context.Background(), "Electronics", userID)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, category.ID)
	assert.Equal(t, "Electronics", category.Name)
	assert.Equal(t, userID.String(), category.CreatedBy)
}

func TestCategoryCreateDuplicateName(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := service.NewCategoryService(repo)
	userID := uuid.New()

	_, err := svc.Create(context.Background(), "Electronics", userID)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "Electronics", userID)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestCategoryCreateBlankName(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := service.NewCategoryService(repo)

	_, err := svc.Create(context.Background(), "   ", uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestCategoryUpdateKeepsOwnName(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := service.NewCategoryService(repo)
	userID := uuid.New()

	category, err := svc.Create(context.Background(), "Electronics", userID)
	require.NoError(t, err)

	// Renaming to the name it already holds is not a conflict.
	updated, err := svc.Update(context.Background(), category.ID, "Electronics", userID)
	require.NoError(t, err)
	assert.Equal(t, "Electronics", updated.Name)
}

func TestCategoryUpdateConflictsWithOther(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := service.NewCategoryService(repo)
	userID := uuid.New()

	_, err := svc.Create(context.Background(), "Electronics", userID)
	require.NoError(t, err)
	other, err := svc.Create(context.Background(), "Furniture", userID)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), other.ID, "Electronics", userID)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestCategoryDeleteRejectedWhenReferenced(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := service.NewCategoryService(repo)
	userID := uuid.New()

	category, err := svc.Create(context.Background(), "Electronics", userID)
	require.NoError(t, err)
	repo.productRef[category.ID] = 3

	err = svc.Delete(context.Background(), category.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsReferentialConflict(err))

	// Still listed.
	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCategoryDeleteUnreferenced(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := service.NewCategoryService(repo)

	category, err := svc.Create(context.Background(), "Electronics", uuid.New())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), category.ID))

	_, err = svc.GetByID(context.Background(), category.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCategoryDeleteUnknown(t *testing.T) {
	svc := service.NewCategoryService(newFakeCategoryRepo())

	err := svc.Delete(context.Background(), uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}
