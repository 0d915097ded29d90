package testutil

import (
	"time"

	"bookregistry/internal/auth"
	"bookregistry/internal/registry"
)

// TestRecord is a registered book fixture for tests.
var TestRecord = registry.Record{
	ID:             1,
	Title:          "Test Book Title",
	ISBN:           "9780123456789",
	ContentHash:    []byte("32bytescontenthashabcdefg"),
	RoyaltyPercent: 10,
	Owner:          "test-author-id-123",
	CreatedAt:      time.Now().UTC(),
}

// GenerateTestToken issues a bearer token for testing authenticated routes.
func GenerateTestToken(secret, authorID string) string {
	token, _ := auth.GenerateToken(secret, authorID, time.Hour)
	return token
}

// GenerateExpiredToken issues a token that is already past its expiry.
func GenerateExpiredToken(secret, authorID string) string {
	token, _ := auth.GenerateToken(secret, authorID, -time.Hour)
	return token
}
