package pharmacy

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
	"github.com/pharmaguide/pharmaguide-backend/internal/web"
)

// Handler exposes pharmacy HTTP endpoints.
type Handler struct {
	service   Service
	paging    web.Paging
	maxUpload int64
}

func NewHandler(service Service, paging web.Paging, maxUpload int64) *Handler {
	return &Handler{service: service, paging: paging, maxUpload: maxUpload}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/pharmacies", func(r chi.Router) {
		// Image endpoints, multipart
		r.Get("/images", h.listImages)
		r.Post("/images", h.createImage)
		r.Get("/images/{name}", h.getImage)
		r.Put("/images/{name}", h.updateImage)
		r.Patch("/images/{name}", h.updateImage)
		r.Delete("/images/{name}", h.deleteImage)

		r.Get("/", h.listPharmacies)
		r.Post("/", h.createPharmacy)
		r.Get("/{id}", h.getPharmacy)
		r.Put("/{id}", h.updatePharmacy)
		r.Patch("/{id}", h.updatePharmacy)
		r.Delete("/{id}", h.deletePharmacy)
	})
}

func (h *Handler) listPharmacies(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := h.paging.Parse(r)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	out, err := h.service.ListPharmacies(r.Context(), skip, limit)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, out)
}

func (h *Handler) getPharmacy(w http.ResponseWriter, r *http.Request) {
	id, err := web.Int64Param(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	p, err := h.service.GetPharmacy(r.Context(), id)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, p)
}

func (h *Handler) createPharmacy(w http.ResponseWriter, r *http.Request) {
	var req CreatePharmacyRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.Error(w, r, err)
		return
	}
	p, err := h.service.CreatePharmacy(r.Context(), req)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, p)
}

func (h *Handler) updatePharmacy(w http.ResponseWriter, r *http.Request) {
	id, err := web.Int64Param(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	var patch PharmacyPatch
	if err := web.DecodeJSON(r, &patch); err != nil {
		web.Error(w, r, err)
		return
	}
	p, err := h.service.UpdatePharmacy(r.Context(), id, patch)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, p)
}

func (h *Handler) deletePharmacy(w http.ResponseWriter, r *http.Request) {
	id, err := web.Int64Param(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	if err := h.service.DeletePharmacy(r.Context(), id); err != nil {
		web.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listImages(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := h.paging.Parse(r)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	out, err := h.service.ListImages(r.Context(), skip, limit)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, out)
}

func (h *Handler) getImage(w http.ResponseWriter, r *http.Request) {
	img, err := h.service.GetImage(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, img)
}

func (h *Handler) createImage(w http.ResponseWriter, r *http.Request) {
	patch, err := h.readImageForm(w, r)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	if patch.PharmacyID == nil {
		web.Error(w, r, apperr.Invalid("pharmacy_id is required"))
		return
	}
	img, err := h.service.CreateImage(r.Context(), CreateImageRequest{PharmacyID: *patch.PharmacyID, File: patch.File})
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, img)
}

func (h *Handler) updateImage(w http.ResponseWriter, r *http.Request) {
	patch, err := h.readImageForm(w, r)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	img, err := h.service.UpdateImage(r.Context(), chi.URLParam(r, "name"), patch)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, img)
}

func (h *Handler) deleteImage(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteImage(r.Context(), chi.URLParam(r, "name")); err != nil {
		web.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) readImageForm(w http.ResponseWriter, r *http.Request) (ImagePatch, error) {
	var patch ImagePatch
	if err := web.ParseMultipart(w, r, h.maxUpload); err != nil {
		return patch, err
	}
	id, err := web.FormInt64(r, "pharmacy_id")
	if err != nil {
		return patch, err
	}
	file, err := web.FormFile(r, "file")
	if err != nil {
		return patch, err
	}
	patch.PharmacyID = id
	patch.File = file
	return patch, nil
}
