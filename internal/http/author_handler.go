package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"bookregistry/internal/auth"
	"bookregistry/internal/author"
	"bookregistry/internal/httpx"
)

const tokenTTL = 24 * time.Hour

type AuthorHandler struct {
	repo   author.Repository
	secret string
}

func NewAuthorHandler(repo author.Repository, secret string) *AuthorHandler {
	return &AuthorHandler{repo: repo, secret: secret}
}

type signupReq struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password_strength"`
}

// @Summary Register new author
// @Description Create an author account; the account id is the identity that owns book records
// @Tags authors
// @Accept json
// @Produce json
// @Param author body signupReq true "Author registration data"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /authors/register [post]
func (h *AuthorHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req signupReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	newAuthor := &author.Author{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
	}
	if err := h.repo.Create(r.Context(), newAuthor); err != nil {
		if errors.Is(err, author.ErrEmailTaken) {
			httpx.JSONError(r, w, http.StatusConflict, "ALREADY_EXISTS", "Email already exists", nil)
			return
		}
		httpx.JSONError(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessCreated(r, w, map[string]any{
		"id":    newAuthor.ID,
		"name":  newAuthor.Name,
		"email": newAuthor.Email,
	})
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// @Summary Login author
// @Description Authenticate an author and issue a bearer token
// @Tags authors
// @Accept json
// @Produce json
// @Param login body loginReq true "Login credentials"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /authors/login [post]
func (h *AuthorHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	a, err := h.repo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, author.ErrNotFound) {
			httpx.JSONError(r, w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
			return
		}
		httpx.JSONError(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	if !auth.VerifyPassword(a.Password, req.Password) {
		httpx.JSONError(r, w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
		return
	}

	token, err := auth.GenerateToken(h.secret, a.ID, tokenTTL)
	if err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(r, w, map[string]any{
		"token": token,
		"author": map[string]any{
			"id":    a.ID,
			"name":  a.Name,
			"email": a.Email,
		},
	})
}
