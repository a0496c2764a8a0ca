package inventory

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pharmaguide/pharmaguide-backend/internal/web"
)

// Handler exposes inventory HTTP endpoints.
type Handler struct {
	service Service
	paging  web.Paging
}

func NewHandler(service Service, paging web.Paging) *Handler {
	return &Handler{service: service, paging: paging}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/inventories", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{product_id}/{pharmacy_id}", h.get)
		r.Put("/{product_id}/{pharmacy_id}", h.update)
		r.Patch("/{product_id}/{pharmacy_id}", h.update)
		r.Delete("/{product_id}/{pharmacy_id}", h.delete)
	})
}

func key(r *http.Request) (productID, pharmacyID int64, err error) {
	if productID, err = web.Int64Param(r, "product_id"); err != nil {
		return 0, 0, err
	}
	if pharmacyID, err = web.Int64Param(r, "pharmacy_id"); err != nil {
		return 0, 0, err
	}
	return productID, pharmacyID, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := h.paging.Parse(r)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	out, err := h.service.ListInventories(r.Context(), skip, limit)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	productID, pharmacyID, err := key(r)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	inv, err := h.service.GetInventory(r.Context(), productID, pharmacyID)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, inv)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateInventoryRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.Error(w, r, err)
		return
	}
	inv, err := h.service.CreateInventory(r.Context(), req)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, inv)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	productID, pharmacyID, err := key(r)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	var patch Patch
	if err := web.DecodeJSON(r, &patch); err != nil {
		web.Error(w, r, err)
		return
	}
	inv, err := h.service.UpdateInventory(r.Context(), productID, pharmacyID, patch)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, inv)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	productID, pharmacyID, err := key(r)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	if err := h.service.DeleteInventory(r.Context(), productID, pharmacyID); err != nil {
		web.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
