package handlers

import (
	"net/http"

	"transitdesk/internal/query"
	"transitdesk/internal/repository"
)

var busQueryOptions = query.Options{
	Filters: []query.FilterRule{
		{Param: "name", Field: "name", Kind: query.KindContains},
		{Param: "registration", Field: "registration", Kind: query.KindContains},
		{Param: "class", Field: "class", Kind: query.KindInSet},
		{Param: "operatorId", Field: "operator_id", Kind: query.KindEquals},
	},
	SortFields: map[string]string{
		"name":      "name",
		"capacity":  "capacity",
		"createdAt": "created_at",
	},
	DefaultSort: query.SortKey{Field: "name", Direction: query.Asc},
}

var routeQueryOptions = query.Options{
	Filters: []query.FilterRule{
		{Param: "name", Field: "name", Kind: query.KindContains},
		{Param: "origin", Field: "origin", Kind: query.KindContains},
		{Param: "destination", Field: "destination", Kind: query.KindContains},
	},
	SortFields: map[string]string{
		"name":      "name",
		"origin":    "origin",
		"createdAt": "created_at",
	},
	DefaultSort: query.SortKey{Field: "name", Direction: query.Asc},
}

// FleetHandler serves bus and route listings
type FleetHandler struct {
	busRepo   *repository.BusRepository
	routeRepo *repository.RouteRepository
}

// NewFleetHandler creates a new fleet handler
func NewFleetHandler(busRepo *repository.BusRepository, routeRepo *repository.RouteRepository) *FleetHandler {
	return &FleetHandler{
		busRepo:   busRepo,
		routeRepo: routeRepo,
	}
}

// ListBuses returns one page of buses
func (h *FleetHandler) ListBuses(w http.ResponseWriter, r *http.Request) {
	spec := query.Build(r.URL.Query(), busQueryOptions)

	page, err := h.busRepo.List(spec)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list buses", "Bus list error", err)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

// GetBus returns a single bus by ID
func (h *FleetHandler) GetBus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid bus ID", "", nil)
		return
	}

	bus, err := h.busRepo.GetByID(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get bus", "Bus get error", err)
		return
	}
	if bus == nil {
		respondWithError(w, http.StatusNotFound, "Bus not found", "", nil)
		return
	}
	respondWithJSON(w, http.StatusOK, bus)
}

// ListRoutes returns one page of routes with operator names resolved
func (h *FleetHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	spec := query.Build(r.URL.Query(), routeQueryOptions)

	page, err := h.routeRepo.List(spec)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list routes", "Route list error", err)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}
