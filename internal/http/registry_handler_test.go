package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookregistry/internal/author"
	"bookregistry/internal/httpx"
	"bookregistry/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHash = "6861736820636f6e74656e74206f6e65" // "hash content one"

type registryFixture struct {
	handler *RegistryHandler
	svc     *registry.Service
	authors *author.MemoryRepo
	ownerID string
	otherID string
}

func newRegistryFixture(t *testing.T) *registryFixture {
	t.Helper()

	authors := author.NewMemoryRepo()
	owner := &author.Author{Name: "Owner", Email: "owner@example.com"}
	other := &author.Author{Name: "Other", Email: "other@example.com"}
	require.NoError(t, authors.Create(context.Background(), owner))
	require.NoError(t, authors.Create(context.Background(), other))

	svc := registry.NewService(registry.NewMemoryStore())
	return &registryFixture{
		handler: NewRegistryHandler(svc, authors),
		svc:     svc,
		authors: authors,
		ownerID: owner.ID,
		otherID: other.ID,
	}
}

func asAuthor(r *http.Request, authorID string) *http.Request {
	return r.WithContext(httpx.ContextWithAuthor(r.Context(), authorID))
}

func postJSON(t *testing.T, path string, body map[string]any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func registerBody(mutate func(map[string]any)) map[string]any {
	body := map[string]any{
		"title":           "Test Book",
		"isbn":            "1234567890123",
		"content_hash":    testHash,
		"royalty_percent": 10,
	}
	if mutate != nil {
		mutate(body)
	}
	return body
}

func TestRegistryHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		mutate         func(map[string]any)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "success",
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "empty title",
			mutate:         func(b map[string]any) { b["title"] = "" },
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "INVALID_TITLE",
		},
		{
			name:           "short isbn",
			mutate:         func(b map[string]any) { b["isbn"] = "abc" },
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "INVALID_ISBN",
		},
		{
			name:           "royalty over 100",
			mutate:         func(b map[string]any) { b["royalty_percent"] = 101 },
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "INVALID_ROYALTY",
		},
		{
			name:           "negative royalty",
			mutate:         func(b map[string]any) { b["royalty_percent"] = -1 },
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "INVALID_ROYALTY",
		},
		{
			name:           "malformed content hash",
			mutate:         func(b map[string]any) { b["content_hash"] = "not-hex" },
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fix := newRegistryFixture(t)

			w := httptest.NewRecorder()
			r := asAuthor(postJSON(t, "/books", registerBody(tt.mutate)), fix.ownerID)
			fix.handler.Register(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				var resp httpx.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.expectedCode, resp.Error.Code)
			}
		})
	}
}

func TestRegistryHandler_Register_Duplicates(t *testing.T) {
	fix := newRegistryFixture(t)

	w := httptest.NewRecorder()
	fix.handler.Register(w, asAuthor(postJSON(t, "/books", registerBody(nil)), fix.ownerID))
	require.Equal(t, http.StatusCreated, w.Code)

	// Same (title, isbn) again: duplicate listing.
	w = httptest.NewRecorder()
	fix.handler.Register(w, asAuthor(postJSON(t, "/books", registerBody(nil)), fix.ownerID))
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp httpx.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "BOOK_ALREADY_EXISTS", resp.Error.Code)

	// Different listing, same content hash.
	w = httptest.NewRecorder()
	fix.handler.Register(w, asAuthor(postJSON(t, "/books", registerBody(func(b map[string]any) {
		b["title"] = "Different Listing"
		b["isbn"] = "9999999999999"
	})), fix.ownerID))
	assert.Equal(t, http.StatusConflict, w.Code)

	resp = httpx.ErrorResponse{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "CONTENT_HASH_EXISTS", resp.Error.Code)
}

func TestRegistryHandler_Register_AssignsSequentialIDs(t *testing.T) {
	fix := newRegistryFixture(t)

	for i := 1; i <= 3; i++ {
		w := httptest.NewRecorder()
		fix.handler.Register(w, asAuthor(postJSON(t, "/books", registerBody(func(b map[string]any) {
			b["title"] = "Book " + string(rune('0'+i))
			b["content_hash"] = testHash[:len(testHash)-2] + string(rune('0'+i)) + "0"
		})), fix.ownerID))
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Data struct {
				ID uint64 `json:"id"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, uint64(i), resp.Data.ID)
	}
}

func TestRegistryHandler_Transfer(t *testing.T) {
	fix := newRegistryFixture(t)

	w := httptest.NewRecorder()
	fix.handler.Register(w, asAuthor(postJSON(t, "/books", registerBody(nil)), fix.ownerID))
	require.Equal(t, http.StatusCreated, w.Code)

	// Owner hands the book to the other author.
	w = httptest.NewRecorder()
	r := asAuthor(postJSON(t, "/books/1/transfer", map[string]any{"new_owner": fix.otherID}), fix.ownerID)
	r.SetPathValue("id", "1")
	fix.handler.Transfer(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	rec, ok, err := fix.svc.GetDetails(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, fix.otherID, rec.Owner)

	// The previous owner may not transfer it again.
	w = httptest.NewRecorder()
	r = asAuthor(postJSON(t, "/books/1/transfer", map[string]any{"new_owner": fix.ownerID}), fix.ownerID)
	r.SetPathValue("id", "1")
	fix.handler.Transfer(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp httpx.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
}

func TestRegistryHandler_Transfer_Errors(t *testing.T) {
	fix := newRegistryFixture(t)

	w := httptest.NewRecorder()
	fix.handler.Register(w, asAuthor(postJSON(t, "/books", registerBody(nil)), fix.ownerID))
	require.Equal(t, http.StatusCreated, w.Code)

	tests := []struct {
		name           string
		id             string
		body           map[string]any
		caller         string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "unknown book id",
			id:             "999",
			body:           map[string]any{"new_owner": fix.otherID},
			caller:         fix.ownerID,
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name:           "unknown new owner",
			id:             "1",
			body:           map[string]any{"new_owner": "no-such-author"},
			caller:         fix.ownerID,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "UNKNOWN_OWNER",
		},
		{
			name:           "missing new owner",
			id:             "1",
			body:           map[string]any{},
			caller:         fix.ownerID,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
		{
			name:           "non-numeric id",
			id:             "abc",
			body:           map[string]any{"new_owner": fix.otherID},
			caller:         fix.ownerID,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := asAuthor(postJSON(t, "/books/"+tt.id+"/transfer", tt.body), tt.caller)
			r.SetPathValue("id", tt.id)
			fix.handler.Transfer(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp httpx.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
		})
	}
}

func TestRegistryHandler_GetDetails(t *testing.T) {
	fix := newRegistryFixture(t)

	w := httptest.NewRecorder()
	fix.handler.Register(w, asAuthor(postJSON(t, "/books", registerBody(nil)), fix.ownerID))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/books/1", nil)
	r.SetPathValue("id", "1")
	fix.handler.GetDetails(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data bookResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, uint64(1), resp.Data.ID)
	assert.Equal(t, "Test Book", resp.Data.Title)
	assert.Equal(t, "1234567890123", resp.Data.ISBN)
	assert.Equal(t, testHash, resp.Data.ContentHash)
	assert.Equal(t, fix.ownerID, resp.Data.Owner)

	// Absent id: 404, not an error payload surprise.
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/books/999", nil)
	r.SetPathValue("id", "999")
	fix.handler.GetDetails(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegistryHandler_IsOwner(t *testing.T) {
	fix := newRegistryFixture(t)

	w := httptest.NewRecorder()
	fix.handler.Register(w, asAuthor(postJSON(t, "/books", registerBody(nil)), fix.ownerID))
	require.Equal(t, http.StatusCreated, w.Code)

	check := func(id, identity string) (int, bool) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/books/"+id+"/owner?identity="+identity, nil)
		r.SetPathValue("id", id)
		fix.handler.IsOwner(w, r)

		var resp struct {
			Data struct {
				IsOwner bool `json:"is_owner"`
			} `json:"data"`
		}
		_ = json.NewDecoder(w.Body).Decode(&resp)
		return w.Code, resp.Data.IsOwner
	}

	status, isOwner := check("1", fix.ownerID)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, isOwner)

	status, isOwner = check("1", fix.otherID)
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, isOwner)

	// Unknown id collapses to false, still a 200.
	status, isOwner = check("999", fix.ownerID)
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, isOwner)
}
