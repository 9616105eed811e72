package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"go-inventory-api/internal/cache"
	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
)

const statsCacheKey = "dashboard:stats"

// DashboardStats is the scalar overview shown on the dashboard. Every value
// is derived from the persisted collections on demand; nothing is kept in
// ambient counters.
type DashboardStats struct {
	TransactionCounts     map[model.TransactionType]int64 `json:"transaction_counts"`
	CompletedSalesRevenue decimal.Decimal                 `json:"completed_sales_revenue"`
	TotalProducts         int64                           `json:"total_products"`
	TotalSuppliers        int64                           `json:"total_suppliers"`
}

type DashboardService interface {
	GetRollup(ctx context.Context, month, year int) ([]DayBucket, error)
	GetStats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	txRepo       repository.TransactionRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	reporting    *ReportingClock
	statsCache   cache.Cache // nil disables caching
	cacheTTL     time.Duration
}

func NewDashboardService(
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	reporting *ReportingClock,
	statsCache cache.Cache,
	cacheTTL time.Duration,
) DashboardService {
	return &dashboardService{
		txRepo:       txRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		reporting:    reporting,
		statsCache:   statsCache,
		cacheTTL:     cacheTTL,
	}
}

// GetRollup returns the zero-filled per-day rollup for the month.
func (s *dashboardService) GetRollup(ctx context.Context, month, year int) ([]DayBucket, error) {
	start, end, err := s.reporting.MonthBounds(month, year)
	if err != nil {
		return nil, err
	}
	transactions, err := s.txRepo.FindByPeriod(start, end)
	if err != nil {
		return nil, err
	}
	return s.reporting.DailyRollup(transactions, month, year)
}

func (s *dashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	if s.statsCache != nil {
		var cached DashboardStats
		if ok, err := s.statsCache.Get(ctx, statsCacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	counts, err := s.txRepo.CountByType()
	if err != nil {
		return nil, err
	}
	revenue, err := s.txRepo.SumAmountByTypeAndStatus(model.TypeSale, model.StatusCompleted)
	if err != nil {
		return nil, err
	}
	totalProducts, err := s.productRepo.Count()
	if err != nil {
		return nil, err
	}
	totalSuppliers, err := s.supplierRepo.Count()
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TransactionCounts:     counts,
		CompletedSalesRevenue: revenue,
		TotalProducts:         totalProducts,
		TotalSuppliers:        totalSuppliers,
	}

	if s.statsCache != nil {
		_ = s.statsCache.Set(ctx, statsCacheKey, stats, s.cacheTTL)
	}
	return stats, nil
}
