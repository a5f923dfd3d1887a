package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cmartsolutions/bookstore-api/services"
	"github.com/cmartsolutions/bookstore-api/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookHandler handles book catalog requests
type BookHandler struct {
	svc    services.BookService
	logger *zap.Logger
}

// NewBookHandler creates a new BookHandler
func NewBookHandler(svc services.BookService, logger *zap.Logger) *BookHandler {
	return &BookHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /Books
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.ListBooks(r.Context())
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, books)
}

// Get handles GET /Books/{id}
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseBookID(w, r)
	if !ok {
		return
	}

	book, err := h.svc.GetBook(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, book)
}

// Create handles POST /Books/add-one
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.BookInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteBadRequest(w, "Book cannot be null.")
		return
	}

	book, err := h.svc.AddBook(r.Context(), input)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}
	_ = utils.WriteCreated(w, book)
}

// CreateBulk handles POST /Books/bulk-add
func (h *BookHandler) CreateBulk(w http.ResponseWriter, r *http.Request) {
	var inputs []services.BookInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		utils.WriteBadRequest(w, "Book list cannot be null or empty.")
		return
	}

	books, err := h.svc.AddBooks(r.Context(), inputs)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}
	_ = utils.WriteCreated(w, books)
}

// Update handles PUT /Books/{id}
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseBookID(w, r)
	if !ok {
		return
	}

	var input services.BookInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteBadRequest(w, "Book data cannot be null.")
		return
	}

	if err := h.svc.UpdateBook(r.Context(), id, input); err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}
	utils.WriteNoContent(w)
}

// Patch handles PATCH /Books/{id}
func (h *BookHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := parseBookID(w, r)
	if !ok {
		return
	}

	var patch services.BookPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.WriteBadRequest(w, "Patch data cannot be null.")
		return
	}

	if err := h.svc.PatchBook(r.Context(), id, patch); err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}
	utils.WriteNoContent(w)
}

// Delete handles DELETE /Books/{id}
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseBookID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteBook(r.Context(), id); err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}
	utils.WriteNoContent(w)
}

func parseBookID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		utils.WriteBadRequest(w, "Book ID cannot be null or empty.")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.WriteBadRequest(w, "Invalid book ID.")
		return uuid.Nil, false
	}
	return id, true
}
