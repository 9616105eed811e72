package service

import (
	"context"

	"github.com/google/uuid"

	"go-inventory-api/internal/apperr"
	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/pkg/validator"
)

type ProductList struct {
	Products   []model.Product `json:"products"`
	TotalPages int             `json:"total_pages"`
	Page       int             `json:"page"`
}

type ProductListParams struct {
	Search   string
	Status   string
	Category string
	Page     int
	Size     int
}

type ProductService interface {
	Create(ctx context.Context, req model.CreateProductRequest, userID uuid.UUID) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateProductRequest, userID uuid.UUID) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params ProductListParams) (*ProductList, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

type productService struct {
	productRepo       repository.ProductRepository
	categoryRepo      repository.CategoryRepository
	txRepo            repository.TransactionRepository
	lowStockThreshold int
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	txRepo repository.TransactionRepository,
	lowStockThreshold int,
) ProductService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 5
	}
	return &productService{
		productRepo:       productRepo,
		categoryRepo:      categoryRepo,
		txRepo:            txRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

func (s *productService) Create(ctx context.Context, req model.CreateProductRequest, userID uuid.UUID) (*model.Product, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return nil, err
	}

	product := &model.Product{
		SKU:           req.SKU,
		Name:          req.Name,
		Price:         req.Price,
		StockQuantity: req.Stock,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		CategoryID:    req.CategoryID,
	}
	product.CreatedBy = userID.String()
	product.UpdatedBy = userID.String()
	if err := product.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindBySKU(req.SKU)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Validation("sku", "unique")
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*req.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update edits the non-quantity fields. Stock quantity is owned by the
// ledger and is never writable through this path.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req model.UpdateProductRequest, userID uuid.UUID) (*model.Product, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.SKU != product.SKU {
		existing, err := s.productRepo.FindBySKU(req.SKU)
		if err != nil && !apperr.IsNotFound(err) {
			return nil, err
		}
		if existing != nil {
			return nil, apperr.Validation("sku", "unique")
		}
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*req.CategoryID); err != nil {
			return nil, err
		}
	}

	product.SKU = req.SKU
	product.Name = req.Name
	product.Price = req.Price
	product.Description = req.Description
	product.ImageURL = req.ImageURL
	product.CategoryID = req.CategoryID
	product.UpdatedBy = userID.String()
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete soft-deletes the product. Products referenced by historical
// transaction lines cannot be deleted; the lines carry name/SKU snapshots,
// but the deny policy keeps stock history resolvable.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return err
	}
	refs, err := s.txRepo.CountLinesByProduct(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return &apperr.ReferentialConflictError{
			Entity: "product",
			Reason: "referenced by existing transaction lines",
		}
	}
	return s.productRepo.Delete(id)
}

func (s *productService) List(ctx context.Context, params ProductListParams) (*ProductList, error) {
	if params.Size < 0 {
		return nil, apperr.Validation("size", "non-negative")
	}
	if params.Size == 0 {
		params.Size = DefaultPageSize
	}
	if params.Page == 0 {
		params.Page = 1
	}

	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	filtered, err := FilterProducts(products, ProductFilter{
		Search:   params.Search,
		Status:   params.Status,
		Category: params.Category,
	}, s.lowStockThreshold)
	if err != nil {
		return nil, err
	}

	return &ProductList{
		Products:   Paginate(filtered, params.Page, params.Size),
		TotalPages: TotalPages(len(filtered), params.Size),
		Page:       params.Page,
	}, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}
