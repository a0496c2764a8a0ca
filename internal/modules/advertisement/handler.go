package advertisement

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pharmaguide/pharmaguide-backend/internal/web"
)

type Handler struct {
	service   Service
	paging    web.Paging
	maxUpload int64
}

func NewHandler(service Service, paging web.Paging, maxUpload int64) *Handler {
	return &Handler{service: service, paging: paging, maxUpload: maxUpload}
}

// RegisterRoutes mounts the advertisement endpoints. Writes take multipart
// forms with an optional "file" part.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/advertisements", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Patch("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := h.paging.Parse(r)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	out, err := h.service.List(r.Context(), skip, limit)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := web.Int64Param(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, a)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	patch, err := h.readForm(w, r)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	req := CreateRequest{Owner: patch.Owner, File: patch.File}
	if patch.Title != nil {
		req.Title = *patch.Title
	}
	if patch.Description != nil {
		req.Description = *patch.Description
	}
	a, err := h.service.Create(r.Context(), req)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, a)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := web.Int64Param(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	patch, err := h.readForm(w, r)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	a, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, a)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := web.Int64Param(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		web.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) readForm(w http.ResponseWriter, r *http.Request) (Patch, error) {
	var p Patch
	if err := web.ParseMultipart(w, r, h.maxUpload); err != nil {
		return p, err
	}
	owner, err := web.FormInt64(r, "owner")
	if err != nil {
		return p, err
	}
	file, err := web.FormFile(r, "file")
	if err != nil {
		return p, err
	}
	p.Title = web.FormString(r, "advertisement_title")
	p.Description = web.FormString(r, "advertisement_description")
	p.Owner = owner
	p.File = file
	return p, nil
}
