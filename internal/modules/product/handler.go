package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
	"github.com/pharmaguide/pharmaguide-backend/internal/web"
)

// Handler exposes product catalog endpoints.
type Handler struct {
	service   Service
	paging    web.Paging
	maxUpload int64
}

func NewHandler(service Service, paging web.Paging, maxUpload int64) *Handler {
	return &Handler{service: service, paging: paging, maxUpload: maxUpload}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/links", h.listLinks)
			r.Post("/links", h.createLink)
			r.Get("/links/{product_id}/{category_id}", h.getLink)
			r.Put("/links/{product_id}/{category_id}", h.updateLink)
			r.Patch("/links/{product_id}/{category_id}", h.updateLink)
			r.Delete("/links/{product_id}/{category_id}", h.deleteLink)

			r.Get("/", h.listCategories)
			r.Post("/", h.createCategory)
			r.Get("/{id}", h.getCategory)
			r.Put("/{id}", h.updateCategory)
			r.Patch("/{id}", h.updateCategory)
			r.Delete("/{id}", h.deleteCategory)
		})

		r.Get("/images", h.listImages)
		r.Post("/images", h.createImage)
		r.Get("/images/{name}", h.getImage)
		r.Put("/images/{name}", h.updateImage)
		r.Patch("/images/{name}", h.updateImage)
		r.Delete("/images/{name}", h.deleteImage)

		r.Get("/", h.listProducts)
		r.Post("/", h.createProduct)
		r.Get("/{id}", h.getProduct)
		r.Put("/{id}", h.updateProduct)
		r.Patch("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
	})
}

// ---- Product ----

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := h.paging.Parse(r)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	products, err := h.service.ListProducts(r.Context(), skip, limit)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := web.Int64Param(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	p, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, p)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.Error(w, r, err)
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := web.Int64Param(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	var patch ProductPatch
	if err := web.DecodeJSON(r, &patch); err != nil {
		web.Error(w, r, err)
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), id, patch)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := web.Int64Param(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		web.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Category ----

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := h.paging.Parse(r)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	out, err := h.service.ListCategories(r.Context(), skip, limit)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, out)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := web.Int64Param(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	c, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, c)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.Error(w, r, err)
		return
	}
	c, err := h.service.CreateCategory(r.Context(), req)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, c)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := web.Int64Param(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	var patch CategoryPatch
	if err := web.DecodeJSON(r, &patch); err != nil {
		web.Error(w, r, err)
		return
	}
	c, err := h.service.UpdateCategory(r.Context(), id, patch)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, c)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := web.Int64Param(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		web.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Link ----

func linkKey(r *http.Request) (productID, categoryID int64, err error) {
	if productID, err = web.Int64Param(r, "product_id"); err != nil {
		return 0, 0, err
	}
	if categoryID, err = web.Int64Param(r, "category_id"); err != nil {
		return 0, 0, err
	}
	return productID, categoryID, nil
}

func (h *Handler) listLinks(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := h.paging.Parse(r)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	out, err := h.service.ListLinks(r.Context(), skip, limit)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, out)
}

func (h *Handler) getLink(w http.ResponseWriter, r *http.Request) {
	productID, categoryID, err := linkKey(r)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	l, err := h.service.GetLink(r.Context(), productID, categoryID)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, l)
}

func (h *Handler) createLink(w http.ResponseWriter, r *http.Request) {
	var req CreateLinkRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.Error(w, r, err)
		return
	}
	l, err := h.service.CreateLink(r.Context(), req)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, l)
}

func (h *Handler) updateLink(w http.ResponseWriter, r *http.Request) {
	productID, categoryID, err := linkKey(r)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	var patch LinkPatch
	if err := web.DecodeJSON(r, &patch); err != nil {
		web.Error(w, r, err)
		return
	}
	l, err := h.service.UpdateLink(r.Context(), productID, categoryID, patch)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, l)
}

func (h *Handler) deleteLink(w http.ResponseWriter, r *http.Request) {
	productID, categoryID, err := linkKey(r)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	if err := h.service.DeleteLink(r.Context(), productID, categoryID); err != nil {
		web.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Image ----

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
	if patch.ProductID == nil {
		web.Error(w, r, apperr.Invalid("product_id is required"))
		return
	}
	img, err := h.service.CreateImage(r.Context(), CreateImageRequest{ProductID: *patch.ProductID, File: patch.File})
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
	id, err := web.FormInt64(r, "product_id")
	if err != nil {
		return patch, err
	}
	file, err := web.FormFile(r, "file")
	if err != nil {
		return patch, err
	}
	patch.ProductID = id
	patch.File = file
	return patch, nil
}
