package service

import (
	"fmt"

	"transitdesk/internal/repository"
)

// DashboardCounts summarises platform volumes for the back-office landing page
type DashboardCounts struct {
	Operators    int `json:"operators"`
	Buses        int `json:"buses"`
	Routes       int `json:"routes"`
	Discounts    int `json:"discounts"`
	Transactions int `json:"transactions"`
}

// DashboardService aggregates entity counts
type DashboardService struct {
	operators    *repository.OperatorRepository
	buses        *repository.BusRepository
	routes       *repository.RouteRepository
	discounts    *repository.DiscountRepository
	transactions *repository.TransactionRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	operators *repository.OperatorRepository,
	buses *repository.BusRepository,
	routes *repository.RouteRepository,
	discounts *repository.DiscountRepository,
	transactions *repository.TransactionRepository,
) *DashboardService {
	return &DashboardService{
		operators:    operators,
		buses:        buses,
		routes:       routes,
		discounts:    discounts,
		transactions: transactions,
	}
}

// Counts returns the current entity totals
func (s *DashboardService) Counts() (*DashboardCounts, error) {
	counts := &DashboardCounts{}
	var err error

	if counts.Operators, err = s.operators.Count(); err != nil {
		return nil, fmt.Errorf("failed to count operators: %w", err)
	}
	if counts.Buses, err = s.buses.Count(); err != nil {
		return nil, fmt.Errorf("failed to count buses: %w", err)
	}
	if counts.Routes, err = s.routes.Count(); err != nil {
		return nil, fmt.Errorf("failed to count routes: %w", err)
	}
	if counts.Discounts, err = s.discounts.Count(); err != nil {
		return nil, fmt.Errorf("failed to count discounts: %w", err)
	}
	if counts.Transactions, err = s.transactions.Count(); err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	return counts, nil
}
