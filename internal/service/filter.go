package service

import (
	"strings"

	"go-inventory-api/internal/apperr"
	"go-inventory-api/internal/model"
)

// Stock status filter values as exposed on the product listing.
const (
	StockFilterAll        = "all"
	StockFilterInStock    = "in-stock"
	StockFilterLowStock   = "low-stock"
	StockFilterOutOfStock = "out-of-stock"
)

// DefaultPageSize matches the listing views.
const DefaultPageSize = 10

// ProductFilter is the search/status/category triple of the product listing.
// Empty values match everything.
type ProductFilter struct {
	Search   string
	Status   string
	Category string
}

// FilterProducts applies the filter, preserving input order. Search matches
// case-insensitively against name or SKU; the stock status classes are
// derived from lowStockThreshold (quantity above it is in stock, 1..threshold
// is low stock, zero is out of stock); category matches case-insensitively on
// the category name.
func FilterProducts(products []model.Product, f ProductFilter, lowStockThreshold int) ([]model.Product, error) {
	status := f.Status
	if status == "" {
		status = StockFilterAll
	}
	switch status {
	case StockFilterAll, StockFilterInStock, StockFilterLowStock, StockFilterOutOfStock:
	default:
		return nil, apperr.Validation("status", "oneof")
	}

	search := strings.ToLower(f.Search)
	category := strings.ToLower(f.Category)

	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		if !matchesStockStatus(p.StockQuantity, status, lowStockThreshold) {
			continue
		}
		if category != "" && category != "all" &&
			strings.ToLower(p.CategoryName()) != category {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

func matchesStockStatus(quantity int, status string, threshold int) bool {
	switch status {
	case StockFilterInStock:
		return quantity > threshold
	case StockFilterLowStock:
		return quantity > 0 && quantity <= threshold
	case StockFilterOutOfStock:
		return quantity == 0
	default:
		return true
	}
}

// Paginate slices out one page. Pages are 1-indexed; out-of-range page
// numbers yield an empty slice, not an error.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages is ceil(total/size), zero for an empty collection.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
