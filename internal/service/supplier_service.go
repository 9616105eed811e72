package service

import (
	"context"

	"github.com/google/uuid"

	"go-inventory-api/internal/apperr"
	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
)

type SupplierService interface {
	Create(ctx context.Context, supplier *model.Supplier, userID uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, supplier *model.Supplier, userID uuid.UUID) (*model.Supplier, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.Supplier, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
}

func NewSupplierService(supplierRepo repository.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo}
}

func (s *supplierService) Create(ctx context.Context, supplier *model.Supplier, userID uuid.UUID) error {
	if err := supplier.Validate(); err != nil {
		return err
	}
	supplier.CreatedBy = userID.String()
	supplier.UpdatedBy = userID.String()
	return s.supplierRepo.Create(supplier)
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, req *model.Supplier, userID uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	supplier.Name = req.Name
	supplier.ContactInfo = req.ContactInfo
	supplier.Address = req.Address
	supplier.UpdatedBy = userID.String()
	if err := supplier.Validate(); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Delete rejects suppliers referenced by transactions so purchase history
// keeps resolving.
func (s *supplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.supplierRepo.FindByID(id); err != nil {
		return err
	}
	refs, err := s.supplierRepo.CountTransactions(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return &apperr.ReferentialConflictError{
			Entity: "supplier",
			Reason: "referenced by existing transactions",
		}
	}
	return s.supplierRepo.Delete(id)
}

func (s *supplierService) List(ctx context.Context) ([]model.Supplier, error) {
	return s.supplierRepo.FindAll()
}

func (s *supplierService) GetByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	return s.supplierRepo.FindByID(id)
}
