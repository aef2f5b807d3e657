package handlers

import (
	"net/http"

	"transitdesk/internal/query"
	"transitdesk/internal/repository"
)

var discountQueryOptions = query.Options{
	Filters: []query.FilterRule{
		{Param: "code", Field: "code", Kind: query.KindContains},
		{Param: "validFrom", Field: "valid_from", Kind: query.KindDateFrom},
		{Param: "validTo", Field: "valid_to", Kind: query.KindDateTo},
	},
	SortFields: map[string]string{
		"code":      "code",
		"percent":   "percent",
		"createdAt": "created_at",
	},
	DefaultSort: query.SortKey{Field: "created_at", Direction: query.Desc},
}

var transactionQueryOptions = query.Options{
	Filters: []query.FilterRule{
		{Param: "reference", Field: "reference", Kind: query.KindContains},
		{Param: "status", Field: "status", Kind: query.KindInSet},
		{Param: "operatorId", Field: "operator_id", Kind: query.KindEquals},
		{Param: "createdFrom", Field: "created_at", Kind: query.KindDateFrom},
		{Param: "createdTo", Field: "created_at", Kind: query.KindDateTo},
	},
	SortFields: map[string]string{
		"reference": "reference",
		"amount":    "amount_cents",
		"createdAt": "created_at",
	},
	DefaultSort: query.SortKey{Field: "created_at", Direction: query.Desc},
}

// CommerceHandler serves discount and transaction listings
type CommerceHandler struct {
	discountRepo    *repository.DiscountRepository
	transactionRepo *repository.TransactionRepository
}

// NewCommerceHandler creates a new commerce handler
func NewCommerceHandler(discountRepo *repository.DiscountRepository, transactionRepo *repository.TransactionRepository) *CommerceHandler {
	return &CommerceHandler{
		discountRepo:    discountRepo,
		transactionRepo: transactionRepo,
	}
}

// ListDiscounts returns one page of discount codes
func (h *CommerceHandler) ListDiscounts(w http.ResponseWriter, r *http.Request) {
	spec := query.Build(r.URL.Query(), discountQueryOptions)

	page, err := h.discountRepo.List(spec)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list discounts", "Discount list error", err)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

// ListTransactions returns one page of ticket transactions
func (h *CommerceHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	spec := query.Build(r.URL.Query(), transactionQueryOptions)

	page, err := h.transactionRepo.List(spec)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list transactions", "Transaction list error", err)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}
