// Package http exposes the catalog over a chi router.
package http

import (
	"log/slog"
	"net/http"

	"github.com/dejobratic/vestuario/internal/catalog/app"
	"github.com/dejobratic/vestuario/internal/catalog/readmodel"
	"github.com/dejobratic/vestuario/internal/database"
	"github.com/go-chi/chi/v5"
)

// Handler exposes HTTP endpoints for the catalog.
type Handler struct {
	service      *app.Service
	logger       *slog.Logger
	defaultLimit int
}

type Options struct {
	DefaultPageSize int
}

func NewHandler(service *app.Service, logger *slog.Logger, opts Options) *Handler {
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = readmodel.DefaultLimit
	}
	return &Handler{service: service, logger: logger, defaultLimit: opts.DefaultPageSize}
}

// Register binds every catalog route to r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.health)
	r.Get("/readyz", h.ready)

	pages := []string{"paginadas", "paginados"}

	mountCollection(r, h, h.service.Garments, collection{slug: "roupas", pageAlts: pages, filter: garmentFilter})
	mountCollection(r, h, h.service.Suppliers, collection{slug: "fornecedores", pageAlts: pages, filter: supplierFilter})
	mountCollection(r, h, h.service.Customers, collection{slug: "clientes", pageAlts: pages, filter: customerFilter})
	mountCollection(r, h, h.service.Orders, collection{slug: "pedidos", pageAlts: pages, filter: orderFilter})
	mountCollection(r, h, h.service.LineItems, collection{
		slug:     "itensPedido",
		aliases:  []string{"itensPedidos"},
		pageAlts: pages,
		filter:   lineItemFilter,
	})

	r.Get("/fornecedores/{id}/roupas", h.supplierGarments)
	r.Get("/clientes/{id}/pedidos", h.customerOrders)
	r.Get("/pedidos/{id}/itens", h.orderItems)

	r.Get("/roupas/busca", h.searchGarments)
	r.Get("/fornecedores/busca", h.searchSuppliers)

	r.Get("/pedidos/filtro/ano", h.ordersByYear)
	r.Get("/pedidos/filtro/intervalo", h.ordersBetween)

	r.Get("/fornecedores/roupas/contagem", h.garmentCountBySupplier)
	r.Get("/pedidos/contagem", h.orderCountByStatus)

	r.Get("/roupas/ordenadas", h.sortedGarments)
	r.Get("/clientes/ordenados", h.sortedCustomers)

	r.Get("/pedidos/detalhados", h.orderDetails)
	r.Get("/roupas/fornecedores", h.garmentsWithSupplier)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	if err := database.CheckHealth(r.Context(), h.service); err != nil {
		h.logger.WarnContext(r.Context(), "readiness check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handler) supplierGarments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	items, err := h.service.Garments.ChildrenOf(r.Context(), "fornecedor_id", id)
	h.ok(w, r, items, err)
}

func (h *Handler) customerOrders(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	items, err := h.service.Orders.ChildrenOf(r.Context(), "cliente_id", id)
	h.ok(w, r, items, err)
}

func (h *Handler) orderItems(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	items, err := h.service.LineItems.ChildrenOf(r.Context(), "pedido_id", id)
	h.ok(w, r, items, err)
}

func (h *Handler) searchGarments(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.SearchGarmentsByName(r.Context(), r.URL.Query().Get("nome"))
	h.ok(w, r, items, err)
}

func (h *Handler) searchSuppliers(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.SearchSuppliersByCity(r.Context(), r.URL.Query().Get("cidade"))
	h.ok(w, r, items, err)
}

func (h *Handler) ordersByYear(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	p.Required("ano")
	year := p.Int("ano")
	if err := p.Err(); err != nil {
		h.fail(w, r, err)
		return
	}
	items, err := h.service.OrdersByYear(r.Context(), *year)
	h.ok(w, r, items, err)
}

func (h *Handler) ordersBetween(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	p.Required("data_inicio")
	p.Required("data_fim")
	start := p.Date("data_inicio")
	end := p.Date("data_fim")
	if err := p.Err(); err != nil {
		h.fail(w, r, err)
		return
	}
	items, err := h.service.OrdersBetween(r.Context(), *start, *end)
	h.ok(w, r, items, err)
}

func (h *Handler) garmentCountBySupplier(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.GarmentCountBySupplier(r.Context())
	h.ok(w, r, groups, err)
}

func (h *Handler) orderCountByStatus(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.OrderCountByStatus(r.Context())
	h.ok(w, r, groups, err)
}

func (h *Handler) sortedGarments(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	dir := p.Direction()
	if err := p.Err(); err != nil {
		h.fail(w, r, err)
		return
	}
	items, err := h.service.Garments.Sorted(r.Context(), dir)
	h.ok(w, r, items, err)
}

func (h *Handler) sortedCustomers(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	dir := p.Direction()
	if err := p.Err(); err != nil {
		h.fail(w, r, err)
		return
	}
	items, err := h.service.Customers.Sorted(r.Context(), dir)
	h.ok(w, r, items, err)
}

func (h *Handler) orderDetails(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.OrderDetails(r.Context())
	h.ok(w, r, details, err)
}

func (h *Handler) garmentsWithSupplier(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.GarmentsWithSupplier(r.Context())
	h.ok(w, r, rows, err)
}

