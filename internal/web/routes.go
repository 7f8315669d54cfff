package web

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/evcraddock/estate-office/internal/client"
	"github.com/evcraddock/estate-office/internal/contract"
)

func (s *Server) routes() {
	m := s.mux

	m.HandleFunc("GET /health", s.handleHealth)

	m.HandleFunc("GET /api/contacts", handleList(s.contacts.List))
	m.HandleFunc("GET /api/contacts/{id}", handleGet("Contact", s.contacts.GetByID))
	m.HandleFunc("POST /api/contacts", handleCreate("Contact", s.contacts.Create))
	m.HandleFunc("PUT /api/contacts/{id}", handleUpdate("Contact", s.contacts.Update))
	m.HandleFunc("DELETE /api/contacts/{id}", handleDelete("Contact", s.contacts.Delete))

	m.HandleFunc("GET /api/clients", handleList(s.clients.List))
	m.HandleFunc("GET /api/clients/{id}", handleGet("Client", s.clients.GetByID))
	m.HandleFunc("GET /api/clients/type/{type}", s.handleClientsByType)
	m.HandleFunc("POST /api/clients", handleCreate("Client", s.clients.Create))
	m.HandleFunc("PUT /api/clients/{id}", handleUpdate("Client", s.clients.Update))
	m.HandleFunc("DELETE /api/clients/{id}", handleDelete("Client", s.clients.Delete))

	m.HandleFunc("GET /api/agents", handleList(s.agents.List))
	m.HandleFunc("GET /api/agents/{id}", handleGet("Agent", s.agents.GetByID))
	m.HandleFunc("GET /api/agents/department/{department}", handleListBy("department", s.agents.ByDepartment))
	m.HandleFunc("POST /api/agents", handleCreate("Agent", s.agents.Create))
	m.HandleFunc("PUT /api/agents/{id}", handleUpdate("Agent", s.agents.Update))
	m.HandleFunc("DELETE /api/agents/{id}", handleDelete("Agent", s.agents.Delete))

	m.HandleFunc("GET /api/estates", handleList(s.estates.List))
	m.HandleFunc("GET /api/estates/{id}", handleGet("Estate", s.estates.GetByID))
	m.HandleFunc("GET /api/estates/type/{type}", handleListBy("type", s.estates.ByType))
	m.HandleFunc("GET /api/estates/status/{status}", handleListBy("status", s.estates.ByStatus))
	m.HandleFunc("GET /api/estates/price-range", s.handleEstatesByPriceRange)
	m.HandleFunc("POST /api/estates", handleCreate("Estate", s.estates.Create))
	m.HandleFunc("PUT /api/estates/{id}", handleUpdate("Estate", s.estates.Update))
	m.HandleFunc("DELETE /api/estates/{id}", handleDelete("Estate", s.estates.Delete))

	m.HandleFunc("GET /api/contracts", handleList(s.contracts.List))
	m.HandleFunc("GET /api/contracts/{id}", handleGet("Contract", s.contracts.GetByID))
	m.HandleFunc("GET /api/contracts/status/{status}", handleListBy("status", s.contracts.ByStatus))
	m.HandleFunc("GET /api/contracts/type/{type}", handleListBy("type", s.contracts.ByType))
	m.HandleFunc("GET /api/contracts/client/{clientId}", handleListByID("clientId", "client", s.contracts.ByClient))
	m.HandleFunc("GET /api/contracts/estate/{estateId}", handleListByID("estateId", "estate", s.contracts.ByEstate))
	m.HandleFunc("GET /api/contracts/agent/{agentId}", handleListByID("agentId", "agent", s.contracts.ByAgent))
	m.HandleFunc("GET /api/contracts/active", handleList(s.activeContracts))
	m.HandleFunc("GET /api/contracts/expiring", s.handleExpiringContracts)
	m.HandleFunc("POST /api/contracts", handleCreate("Contract", s.contracts.Create))
	m.HandleFunc("PUT /api/contracts/{id}", handleUpdate("Contract", s.contracts.Update))
	m.HandleFunc("DELETE /api/contracts/{id}", handleDelete("Contract", s.contracts.Delete))

	m.HandleFunc("GET /api/requests", handleList(s.requests.List))
	m.HandleFunc("GET /api/requests/{id}", handleGet("Request", s.requests.GetByID))
	m.HandleFunc("GET /api/requests/type/{type}", handleListBy("type", s.requests.ByType))
	m.HandleFunc("GET /api/requests/client/{clientId}", handleListByID("clientId", "client", s.requests.ByClient))
	m.HandleFunc("POST /api/requests", handleCreate("Request", s.requests.Create))
	m.HandleFunc("PUT /api/requests/{id}", handleUpdate("Request", s.requests.Update))
	m.HandleFunc("DELETE /api/requests/{id}", handleDelete("Request", s.requests.Delete))

	m.HandleFunc("GET /api/offers", handleList(s.offers.List))
	m.HandleFunc("GET /api/offers/{id}", handleGet("Offer", s.offers.GetByID))
	m.HandleFunc("GET /api/offers/type/{type}", handleListBy("type", s.offers.ByType))
	m.HandleFunc("GET /api/offers/client/{clientId}", handleListByID("clientId", "client", s.offers.ByClient))
	m.HandleFunc("GET /api/offers/agent/{agentId}", handleListByID("agentId", "agent", s.offers.ByAgent))
	m.HandleFunc("POST /api/offers", handleCreate("Offer", s.offers.Create))
	m.HandleFunc("PUT /api/offers/{id}", handleUpdate("Offer", s.offers.Update))
	m.HandleFunc("DELETE /api/offers/{id}", handleDelete("Offer", s.offers.Delete))

	m.HandleFunc("GET /api/dashboard/stats/overall", handleStats("overall", s.dashboard.Overall))
	m.HandleFunc("GET /api/dashboard/stats/clients", handleStats("client", s.dashboard.Clients))
	m.HandleFunc("GET /api/dashboard/stats/estates", handleStats("estate", s.dashboard.Estates))
	m.HandleFunc("GET /api/dashboard/stats/contracts", handleStats("contract", s.dashboard.Contracts))
	m.HandleFunc("GET /api/dashboard/stats/requests", handleStats("request", s.dashboard.Requests))
	m.HandleFunc("GET /api/dashboard/stats/offers", handleStats("offer", s.dashboard.Offers))
	m.HandleFunc("GET /api/dashboard/stats/recent-activities", s.handleRecentActivities)
}

func (s *Server) handleClientsByType(w http.ResponseWriter, r *http.Request) {
	t := client.Type(r.PathValue("type"))
	if !t.IsValid() {
		apiError(w, `Invalid client type. Must be "tenant" or "renter"`, http.StatusBadRequest)
		return
	}
	clients, err := s.clients.ByType(r.Context(), t)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	apiJSON(w, nonNil(clients), http.StatusOK)
}

func (s *Server) handleEstatesByPriceRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	minStr, maxStr := q.Get("minPrice"), q.Get("maxPrice")
	if minStr == "" || maxStr == "" {
		apiError(w, "Both minPrice and maxPrice are required", http.StatusBadRequest)
		return
	}
	minPrice, errMin := strconv.ParseFloat(minStr, 64)
	maxPrice, errMax := strconv.ParseFloat(maxStr, 64)
	if errMin != nil || errMax != nil {
		apiError(w, "Invalid price range format", http.StatusBadRequest)
		return
	}
	if minPrice > maxPrice {
		apiError(w, "minPrice cannot be greater than maxPrice", http.StatusBadRequest)
		return
	}

	estates, err := s.estates.ByPriceRange(r.Context(), minPrice, maxPrice)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	apiJSON(w, nonNil(estates), http.StatusOK)
}

func (s *Server) activeContracts(ctx context.Context) ([]*contract.Contract, error) {
	return s.contracts.Active(ctx, s.now())
}

// handleExpiringContracts lists active contracts ending within ?days=N
// days. A missing, unparsable or non-positive value uses the default
// window; larger values are clamped to MaxExpiringDays.
func (s *Server) handleExpiringContracts(w http.ResponseWriter, r *http.Request) {
	days := contract.DefaultExpiringDays
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = min(n, contract.MaxExpiringDays)
		}
	}

	contracts, err := s.contracts.ExpiringSoon(r.Context(), s.now(), days)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	apiJSON(w, nonNil(contracts), http.StatusOK)
}

// handleStats serves one dashboard aggregate. Failures are reported as
// "Failed to fetch <kind> statistics" without detail.
func handleStats[T any](kind string, stats func(context.Context) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := stats(r.Context())
		if err != nil {
			statsError(w, r, kind, err)
			return
		}
		apiJSON(w, result, http.StatusOK)
	}
}

func (s *Server) handleRecentActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := s.dashboard.RecentActivities(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "fetching recent activities", "error", err)
		apiError(w, "Failed to fetch recent activities", http.StatusInternalServerError)
		return
	}
	apiJSON(w, activities, http.StatusOK)
}

func statsError(w http.ResponseWriter, r *http.Request, kind string, err error) {
	slog.ErrorContext(r.Context(), "fetching statistics", "kind", kind, "error", err)
	apiError(w, "Failed to fetch "+kind+" statistics", http.StatusInternalServerError)
}
