package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pharmaguide/pharmaguide-backend/internal/web"
)

// Handler exposes user and user type endpoints.
type Handler struct {
	service Service
	paging  web.Paging
}

func NewHandler(service Service, paging web.Paging) *Handler {
	return &Handler{service: service, paging: paging}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Get("/types", h.listUserTypes)
		r.Post("/types", h.createUserType)
		r.Get("/types/{id}", h.getUserType)
		r.Put("/types/{id}", h.updateUserType)
		r.Patch("/types/{id}", h.updateUserType)
		r.Delete("/types/{id}", h.deleteUserType)

		r.Get("/", h.listUsers)
		r.Post("/", h.createUser)
		r.Get("/{id}", h.getUser)
		r.Put("/{id}", h.updateUser)
		r.Patch("/{id}", h.updateUser)
		r.Delete("/{id}", h.deleteUser)
	})
}

func (h *Handler) listUserTypes(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := h.paging.Parse(r)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	types, err := h.service.ListUserTypes(r.Context(), skip, limit)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, types)
}

func (h *Handler) getUserType(w http.ResponseWriter, r *http.Request) {
	id, err := web.Int64Param(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	t, err := h.service.GetUserType(r.Context(), id)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, t)
}

func (h *Handler) createUserType(w http.ResponseWriter, r *http.Request) {
	var req CreateUserTypeRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.Error(w, r, err)
		return
	}
	t, err := h.service.CreateUserType(r.Context(), req)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, t)
}

func (h *Handler) updateUserType(w http.ResponseWriter, r *http.Request) {
	id, err := web.Int64Param(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	var patch UserTypePatch
	if err := web.DecodeJSON(r, &patch); err != nil {
		web.Error(w, r, err)
		return
	}
	t, err := h.service.UpdateUserType(r.Context(), id, patch)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, t)
}

func (h *Handler) deleteUserType(w http.ResponseWriter, r *http.Request) {
	id, err := web.Int64Param(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	if err := h.service.DeleteUserType(r.Context(), id); err != nil {
		web.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := h.paging.Parse(r)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	users, err := h.service.ListUsers(r.Context(), skip, limit)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, users)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := web.Int64Param(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, user)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.Error(w, r, err)
		return
	}
	user, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, user)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := web.Int64Param(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	var patch UserPatch
	if err := web.DecodeJSON(r, &patch); err != nil {
		web.Error(w, r, err)
		return
	}
	user, err := h.service.UpdateUser(r.Context(), id, patch)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, user)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := web.Int64Param(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		web.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
