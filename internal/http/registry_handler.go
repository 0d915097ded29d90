package http

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bookregistry/internal/author"
	"bookregistry/internal/httpx"
	"bookregistry/internal/registry"
)

type RegistryHandler struct {
	svc     *registry.Service
	authors author.Repository
}

func NewRegistryHandler(svc *registry.Service, authors author.Repository) *RegistryHandler {
	return &RegistryHandler{svc: svc, authors: authors}
}

type registerBookReq struct {
	Title          string `json:"title"`
	ISBN           string `json:"isbn"`
	ContentHash    string `json:"content_hash"` // hex encoded
	RoyaltyPercent int    `json:"royalty_percent"`
}

type transferReq struct {
	NewOwner string `json:"new_owner"`
}

type bookResponse struct {
	ID             uint64 `json:"id"`
	Title          string `json:"title"`
	ISBN           string `json:"isbn"`
	ContentHash    string `json:"content_hash"`
	RoyaltyPercent int    `json:"royalty_percent"`
	Owner          string `json:"owner"`
	CreatedAt      string `json:"created_at"`
}

func toBookResponse(rec registry.Record) bookResponse {
	return bookResponse{
		ID:             rec.ID,
		Title:          rec.Title,
		ISBN:           rec.ISBN,
		ContentHash:    hex.EncodeToString(rec.ContentHash),
		RoyaltyPercent: rec.RoyaltyPercent,
		Owner:          rec.Owner,
		CreatedAt:      rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// @Summary Register a book
// @Description Register a new book record under the calling author
// @Tags books
// @Accept json
// @Produce json
// @Param book body registerBookReq true "Book registration data"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *RegistryHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	hash, err := hex.DecodeString(req.ContentHash)
	if err != nil || len(hash) == 0 {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "content_hash must be non-empty hex", nil)
		return
	}

	caller := httpx.AuthorIDFrom(r)

	id, err := h.svc.Register(r.Context(), registry.RegisterInput{
		Title:          req.Title,
		ISBN:           req.ISBN,
		ContentHash:    hash,
		RoyaltyPercent: req.RoyaltyPercent,
	}, caller)
	if err != nil {
		writeRegistryError(r, w, err)
		return
	}

	httpx.JSONSuccessCreated(r, w, map[string]any{"id": id})
}

// @Summary Transfer book ownership
// @Description Hand a book record over to another author; only the current owner may do this
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book id"
// @Param transfer body transferReq true "New owner"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id}/transfer [post]
func (h *RegistryHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(r, w)
	if !ok {
		return
	}

	var req transferReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if req.NewOwner == "" {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "new_owner is required", nil)
		return
	}

	// Identity validation belongs to the identity source, not the registry.
	exists, err := h.authors.Exists(r.Context(), req.NewOwner)
	if err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if !exists {
		httpx.JSONError(r, w, http.StatusBadRequest, "UNKNOWN_OWNER", "new_owner is not a registered author", nil)
		return
	}

	caller := httpx.AuthorIDFrom(r)
	if err := h.svc.TransferOwnership(r.Context(), id, req.NewOwner, caller); err != nil {
		writeRegistryError(r, w, err)
		return
	}

	httpx.JSONSuccess(r, w, map[string]any{"transferred": true})
}

// @Summary Get book details
// @Description Get a single book record by id
// @Tags books
// @Produce json
// @Param id path int true "Book id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *RegistryHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(r, w)
	if !ok {
		return
	}

	rec, found, err := h.svc.GetDetails(r.Context(), id)
	if err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if !found {
		httpx.JSONError(r, w, http.StatusNotFound, "NOT_FOUND", "No book with that id", nil)
		return
	}

	httpx.JSONSuccess(r, w, toBookResponse(rec))
}

// @Summary Check book ownership
// @Description Report whether the given identity currently owns the book; false for unknown ids
// @Tags books
// @Produce json
// @Param id path int true "Book id"
// @Param identity query string true "Identity to check"
// @Success 200 {object} httpx.SuccessResponse
// @Router /books/{id}/owner [get]
func (h *RegistryHandler) IsOwner(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(r, w)
	if !ok {
		return
	}

	identity := r.URL.Query().Get("identity")
	if identity == "" {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "identity query parameter is required", nil)
		return
	}

	isOwner, err := h.svc.IsOwner(r.Context(), id, identity)
	if err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(r, w, map[string]any{"is_owner": isOwner})
}

func bookID(r *http.Request, w http.ResponseWriter) (uint64, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "id must be a positive integer", nil)
		return 0, false
	}
	return id, true
}

// writeRegistryError maps the registry taxonomy onto HTTP statuses. Validation
// failures are 422, uniqueness conflicts 409, mirroring the usual
// unprocessable/conflict split.
func writeRegistryError(r *http.Request, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrInvalidTitle):
		httpx.JSONError(r, w, http.StatusUnprocessableEntity, "INVALID_TITLE", "Title must not be empty", nil)
	case errors.Is(err, registry.ErrInvalidISBN):
		httpx.JSONError(r, w, http.StatusUnprocessableEntity, "INVALID_ISBN", "ISBN must be at least 13 characters", nil)
	case errors.Is(err, registry.ErrInvalidRoyalty):
		httpx.JSONError(r, w, http.StatusUnprocessableEntity, "INVALID_ROYALTY", "Royalty percent must be between 0 and 100", nil)
	case errors.Is(err, registry.ErrBookAlreadyExists):
		httpx.JSONError(r, w, http.StatusConflict, "BOOK_ALREADY_EXISTS", "A book with this title and ISBN is already registered", nil)
	case errors.Is(err, registry.ErrContentHashExists):
		httpx.JSONError(r, w, http.StatusConflict, "CONTENT_HASH_EXISTS", "A book with this content hash is already registered", nil)
	case errors.Is(err, registry.ErrUnauthorized):
		httpx.JSONError(r, w, http.StatusForbidden, "UNAUTHORIZED", "Caller is not the book owner", nil)
	case errors.Is(err, registry.ErrNotFound):
		httpx.JSONError(r, w, http.StatusNotFound, "NOT_FOUND", "No book with that id", nil)
	default:
		httpx.JSONError(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
