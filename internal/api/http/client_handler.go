package http

import (
	"net/http"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/service"
)

type ClientHandler struct {
	clients service.ClientService
}

func NewClientHandler(clients service.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var client domain.Client
	if err := decodeBody(r, &client); err != nil {
		respondError(w, err)
		return
	}
	if err := h.clients.Create(r.Context(), actorFrom(r), &client); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	client, err := h.clients.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	var client domain.Client
	if err := decodeBody(r, &client); err != nil {
		respondError(w, err)
		return
	}
	client.ID = id
	if err := h.clients.Update(r.Context(), actorFrom(r), &client); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	if err := h.clients.Delete(r.Context(), actorFrom(r), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)
	clients, total, err := h.clients.List(r.Context(), r.URL.Query().Get("search"), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pageResponse{Items: clients, Total: total, Page: page, PageSize: pageSize})
}
