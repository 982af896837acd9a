package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/crm"
	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type ContactHandler struct {
	UC *usecase.ContactUseCase
}

func NewContactHandler(uc *usecase.ContactUseCase) *ContactHandler {
	return &ContactHandler{UC: uc}
}

// List (GET /contacts?status=&tag=&q=)
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.UC.List(crm.ContactFilter{
		Status: entity.ContactStatus(q.Get("status")),
		Tag:    q.Get("tag"),
		Search: q.Get("q"),
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input entity.ContactInput
	if err := decodeStrict(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido: "+err.Error())
		return
	}

	c, err := h.UC.Create(input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch entity.ContactPatch
	if err := decodeStrict(r, &patch); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido: "+err.Error())
		return
	}

	c, err := h.UC.Update(id, patch)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Delete always answers 204; deleting an unknown id is not an error.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Delete(chi.URLParam(r, "id")); err != nil {
		writeUseCaseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Leads (GET /contacts/{id}/leads) lists leads matched by email or company.
func (h *ContactHandler) Leads(w http.ResponseWriter, r *http.Request) {
	out, err := h.UC.Leads(chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
