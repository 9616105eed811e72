package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-inventory-api/internal/apperr"
	"go-inventory-api/internal/model"
)

// In-memory repository fakes backing the engine tests. They share a single
// stockTable so the ledger store and the product repository observe the same
// quantities, like rows in one database.

type stockTable struct {
	mu         sync.Mutex
	quantities map[uuid.UUID]int
}

func newStockTable() *stockTable {
	return &stockTable{quantities: make(map[uuid.UUID]int)}
}

func (t *stockTable) get(id uuid.UUID) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.quantities[id]
}

// UpdateStock implements ledger.Store. A failing then callback rolls the
// quantity writes back, mirroring the database transaction.
func (t *stockTable) UpdateStock(ctx context.Context, ids []uuid.UUID, compute func(current map[uuid.UUID]int) (map[uuid.UUID]int, error), then func(ctx context.Context) error) (map[uuid.UUID]int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current := make(map[uuid.UUID]int, len(ids))
	for _, id := range ids {
		if qty, ok := t.quantities[id]; ok {
			current[id] = qty
		}
	}
	next, err := compute(current)
	if err != nil {
		return nil, err
	}
	for id, qty := range next {
		t.quantities[id] = qty
	}
	if then != nil {
		if err := then(ctx); err != nil {
			for id, qty := range current {
				t.quantities[id] = qty
			}
			return nil, err
		}
	}
	return next, nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]model.Product
	stock    *stockTable
}

func newFakeProductRepo(stock *stockTable) *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]model.Product), stock: stock}
}

func (r *fakeProductRepo) add(name, sku string, price decimal.Decimal, qty int) model.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := model.Product{SKU: sku, Name: name, Price: price, StockQuantity: qty}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	r.products[p.ID] = p
	r.stock.mu.Lock()
	r.stock.quantities[p.ID] = qty
	r.stock.mu.Unlock()
	return p
}

func (r *fakeProductRepo) Create(product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.ID] = *product
	r.stock.mu.Lock()
	r.stock.quantities[product.ID] = product.StockQuantity
	r.stock.mu.Unlock()
	return nil
}

func (r *fakeProductRepo) FindAll() ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		p.StockQuantity = r.stock.get(p.ID)
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, apperr.NotFound("product", id.String())
	}
	p.StockQuantity = r.stock.get(id)
	return &p, nil
}

func (r *fakeProductRepo) FindBySKU(sku string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			return &p, nil
		}
	}
	return nil, apperr.NotFound("product", sku)
}

func (r *fakeProductRepo) FindByIDs(ids []uuid.UUID) (map[uuid.UUID]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uuid.UUID]model.Product)
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

type fakeSupplierRepo struct {
	mu        sync.Mutex
	suppliers map[uuid.UUID]model.Supplier
	txRefs    map[uuid.UUID]int64
}

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{
		suppliers: make(map[uuid.UUID]model.Supplier),
		txRefs:    make(map[uuid.UUID]int64),
	}
}

func (r *fakeSupplierRepo) add(name string) model.Supplier {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := model.Supplier{Name: name}
	s.ID = uuid.New()
	r.suppliers[s.ID] = s
	return s
}

func (r *fakeSupplierRepo) Create(supplier *model.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	r.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *fakeSupplierRepo) FindAll() ([]model.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSupplierRepo) FindByID(id uuid.UUID) (*model.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.suppliers[id]
	if !ok {
		return nil, apperr.NotFound("supplier", id.String())
	}
	return &s, nil
}

func (r *fakeSupplierRepo) Update(supplier *model.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *fakeSupplierRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.suppliers, id)
	return nil
}

func (r *fakeSupplierRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.suppliers)), nil
}

func (r *fakeSupplierRepo) CountTransactions(id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.txRefs[id], nil
}

type fakeTransactionRepo struct {
	mu           sync.Mutex
	transactions map[uuid.UUID]model.Transaction
	linesByProd  map[uuid.UUID]int64
	statusErr    error // returned by the next UpdateStatus, then cleared
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{
		transactions: make(map[uuid.UUID]model.Transaction),
		linesByProd:  make(map[uuid.UUID]int64),
	}
}

func (r *fakeTransactionRepo) Create(tx *model.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	for i := range tx.Lines {
		if tx.Lines[i].ID == uuid.Nil {
			tx.Lines[i].ID = uuid.New()
		}
		tx.Lines[i].TransactionID = tx.ID
		r.linesByProd[tx.Lines[i].ProductID]++
	}
	r.transactions[tx.ID] = *tx
	return nil
}

func (r *fakeTransactionRepo) FindAll() ([]model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Transaction, 0, len(r.transactions))
	for _, tx := range r.transactions {
		out = append(out, tx)
	}
	return out, nil
}

func (r *fakeTransactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.transactions[id]
	if !ok {
		return nil, apperr.NotFound("transaction", id.String())
	}
	return &tx, nil
}

func (r *fakeTransactionRepo) FindByPeriod(start, end time.Time) ([]model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Transaction, 0)
	for _, tx := range r.transactions {
		if !tx.CreatedAt.Before(start) && tx.CreatedAt.Before(end) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) UpdateStatus(ctx context.Context, tx *model.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.statusErr; err != nil {
		r.statusErr = nil
		return err
	}
	stored, ok := r.transactions[tx.ID]
	if !ok {
		return apperr.NotFound("transaction", tx.ID.String())
	}
	stored.Status = tx.Status
	stored.UpdatedBy = tx.UpdatedBy
	r.transactions[tx.ID] = stored
	return nil
}

func (r *fakeTransactionRepo) CountByType() (map[model.TransactionType]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[model.TransactionType]int64{
		model.TypeSale:             0,
		model.TypePurchase:         0,
		model.TypeReturnToSupplier: 0,
	}
	for _, tx := range r.transactions {
		counts[tx.Type]++
	}
	return counts, nil
}

func (r *fakeTransactionRepo) SumAmountByTypeAndStatus(txType model.TransactionType, status model.TransactionStatus) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, tx := range r.transactions {
		if tx.Type == txType && tx.Status == status {
			sum = sum.Add(tx.TotalPrice)
		}
	}
	return sum, nil
}

func (r *fakeTransactionRepo) CountLinesByProduct(productID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.linesByProd[productID], nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]model.Category
	productRef map[uuid.UUID]int64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories: make(map[uuid.UUID]model.Category),
		productRef: make(map[uuid.UUID]int64),
	}
}

func (r *fakeCategoryRepo) Create(category *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	r.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) FindAll() ([]model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, apperr.NotFound("category", id.String())
	}
	return &c, nil
}

func (r *fakeCategoryRepo) FindByName(name string) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, apperr.NotFound("category", name)
}

func (r *fakeCategoryRepo) Update(category *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) CountProducts(id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.productRef[id], nil
}
