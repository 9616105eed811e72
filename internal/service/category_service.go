package service

import (
	"context"

	"github.com/google/uuid"

	"go-inventory-api/internal/apperr"
	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
)

type CategoryService interface {
	Create(ctx context.Context, name string, userID uuid.UUID) (*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, name string, userID uuid.UUID) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(ctx context.Context, name string, userID uuid.UUID) (*model.Category, error) {
	category := &model.Category{Name: name}
	category.CreatedBy = userID.String()
	category.UpdatedBy = userID.String()
	if err := category.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.categoryRepo.FindByName(name)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Validation("name", "unique")
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, name string, userID uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	category.Name = name
	category.UpdatedBy = userID.String()
	if err := category.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.categoryRepo.FindByName(name)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, apperr.Validation("name", "unique")
	}
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete rejects categories still referenced by products. The caller has to
// reassign or remove the products first.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		return err
	}
	refs, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return &apperr.ReferentialConflictError{
			Entity: "category",
			Reason: "referenced by existing products",
		}
	}
	return s.categoryRepo.Delete(id)
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	return s.categoryRepo.FindByID(id)
}
