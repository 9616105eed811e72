package service

import (
	"context"

	"github.com/google/uuid"

	"go-inventory-api/internal/apperr"
	"go-inventory-api/internal/ledger"
	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/pkg/validator"
)

// allowedTransitions is the status state machine. COMPLETED -> COMPLETED is
// handled separately as an idempotent no-op; CANCELLED is terminal.
var allowedTransitions = map[model.TransactionStatus][]model.TransactionStatus{
	model.StatusPending:    {model.StatusProcessing, model.StatusCancelled},
	model.StatusProcessing: {model.StatusCompleted, model.StatusCancelled},
	model.StatusCompleted:  {model.StatusCancelled},
}

func transitionAllowed(from, to model.TransactionStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type TransactionList struct {
	Transactions []model.Transaction `json:"transactions"`
	TotalPages   int                 `json:"total_pages"`
	Page         int                 `json:"page"`
}

type TransactionListParams struct {
	Month int
	Year  int
	Page  int
	Size  int
}

type TransactionService interface {
	Create(ctx context.Context, req model.CreateTransactionRequest, userID uuid.UUID) (*model.Transaction, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.TransactionStatus, userID uuid.UUID) (*model.Transaction, error)
	List(ctx context.Context, params TransactionListParams) (*TransactionList, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
}

type transactionService struct {
	txRepo       repository.TransactionRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	stockLedger  *ledger.Ledger
	reporting    *ReportingClock
}

func NewTransactionService(
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	stockLedger *ledger.Ledger,
	reporting *ReportingClock,
) TransactionService {
	return &transactionService{
		txRepo:       txRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		stockLedger:  stockLedger,
		reporting:    reporting,
	}
}

// Create validates the request, snapshots unit prices and product identity
// into the lines, recomputes totals and persists the transaction as PENDING.
// No stock is touched here; stock moves only when the transaction completes.
func (s *transactionService) Create(ctx context.Context, req model.CreateTransactionRequest, userID uuid.UUID) (*model.Transaction, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return nil, err
	}

	if req.Type.NeedsSupplier() {
		if req.SupplierID == nil {
			return nil, apperr.Validation("supplier_id", "required")
		}
		if _, err := s.supplierRepo.FindByID(*req.SupplierID); err != nil {
			return nil, err
		}
	} else if req.SupplierID != nil {
		return nil, apperr.Validation("supplier_id", "not allowed for sales")
	}

	ids := make([]uuid.UUID, 0, len(req.Lines))
	for _, line := range req.Lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	lines := make([]model.TransactionLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, apperr.NotFound("product", line.ProductID.String())
		}
		lines = append(lines, model.TransactionLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			ProductSKU:  product.SKU,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
		})
	}

	tx := &model.Transaction{
		Type:        req.Type,
		Status:      model.StatusPending,
		Description: req.Description,
		Note:        req.Note,
		SupplierID:  req.SupplierID,
		UserID:      &userID,
		Lines:       lines,
	}
	tx.CreatedBy = userID.String()
	tx.UpdatedBy = userID.String()
	tx.RecomputeTotals()

	if err := s.txRepo.Create(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// UpdateStatus drives the state machine. Stock is applied exactly once when
// the transaction reaches COMPLETED and reversed with a compensating batch
// when a COMPLETED transaction is cancelled. The status write commits inside
// the same persistence unit as the stock batch, so a failure on either side
// leaves both the stock and the transaction exactly as they were.
func (s *transactionService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.TransactionStatus, userID uuid.UUID) (*model.Transaction, error) {
	if !status.Valid() {
		return nil, apperr.Validation("status", "oneof")
	}

	tx, err := s.txRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	from := tx.Status

	// Re-applying COMPLETED has zero additional stock effect.
	if from == model.StatusCompleted && status == model.StatusCompleted {
		return tx, nil
	}

	if !transitionAllowed(from, status) {
		return nil, &apperr.InvalidTransitionError{From: string(from), To: string(status)}
	}

	tx.Status = status
	tx.UpdatedBy = userID.String()
	persist := func(ctx context.Context) error {
		return s.txRepo.UpdateStatus(ctx, tx)
	}

	switch {
	case status == model.StatusCompleted:
		if _, err := s.stockLedger.ApplyBatchThen(ctx, tx.StockDeltas(), persist); err != nil {
			return nil, err
		}
	case from == model.StatusCompleted && status == model.StatusCancelled:
		// May fail with insufficient stock when intervening sales already
		// consumed a restocked purchase; the cancellation then does not happen.
		if _, err := s.stockLedger.ApplyBatchThen(ctx, tx.ReverseStockDeltas(), persist); err != nil {
			return nil, err
		}
	default:
		if err := persist(ctx); err != nil {
			return nil, err
		}
	}
	return tx, nil
}

func (s *transactionService) List(ctx context.Context, params TransactionListParams) (*TransactionList, error) {
	if params.Size < 0 {
		return nil, apperr.Validation("size", "non-negative")
	}
	if params.Size == 0 {
		params.Size = DefaultPageSize
	}
	if params.Page == 0 {
		params.Page = 1
	}

	var (
		transactions []model.Transaction
		err          error
	)
	if params.Month != 0 || params.Year != 0 {
		start, end, perr := s.reporting.MonthBounds(params.Month, params.Year)
		if perr != nil {
			return nil, perr
		}
		transactions, err = s.txRepo.FindByPeriod(start, end)
	} else {
		transactions, err = s.txRepo.FindAll()
	}
	if err != nil {
		return nil, err
	}

	return &TransactionList{
		Transactions: Paginate(transactions, params.Page, params.Size),
		TotalPages:   TotalPages(len(transactions), params.Size),
		Page:         params.Page,
	}, nil
}

func (s *transactionService) GetByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	return s.txRepo.FindByID(id)
}
