package utils

import (
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateBookingReference(t *testing.T) {
	t.Run("Matches the EDU-date-suffix shape", func(t *testing.T) {
		reference, err := GenerateBookingReference()

		assert.Nil(t, err)
		pattern := regexp.MustCompile(`^EDU-\d{8}-[A-HJ-NP-Z2-9]{6}$`)
		assert.True(t, pattern.MatchString(reference), "unexpected reference %q", reference)
		assert.Contains(t, reference, time.Now().Format("20060102"))
	})

	t.Run("Two references differ", func(t *testing.T) {
		first, err := GenerateBookingReference()
		assert.Nil(t, err)
		second, err := GenerateBookingReference()
		assert.Nil(t, err)

		assert.NotEqual(t, first, second)
	})
}

func TestGenerateInvoiceNumber(t *testing.T) {
	number := GenerateInvoiceNumber(42)

	assert.Equal(t, "INV-"+time.Now().Format("200601")+"-00042", number)
}

func TestGenerateTransactionID(t *testing.T) {
	transactionID := GenerateTransactionID()

	assert.True(t, strings.HasPrefix(transactionID, "txn_"))
	assert.NotContains(t, transactionID, "-")
	assert.Len(t, transactionID, len("txn_")+32)
}

func TestBuildPaginationRequest(t *testing.T) {
	t.Run("Reads page and page_size from the query", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/sessions?page=3&page_size=25", nil)

		pagination := BuildPaginationRequest(req)

		assert.Equal(t, 3, pagination.Page)
		assert.Equal(t, 25, pagination.PageSize)
	})

	t.Run("Falls back to the defaults on garbage input", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/sessions?page=zero&page_size=-5", nil)

		pagination := BuildPaginationRequest(req)

		assert.Equal(t, 1, pagination.Page)
		assert.Equal(t, 10, pagination.PageSize)
	})
}

func TestBuildPaginationResponse(t *testing.T) {
	t.Run("Middle page links both ways", func(t *testing.T) {
		pagination := BuildPaginationResponse(50, 2, 10, "/sessions")

		assert.Equal(t, 50, pagination.Total)
		assert.Equal(t, "/sessions?page=3&page_size=10", pagination.NextURL)
		assert.Equal(t, "/sessions?page=1&page_size=10", pagination.PrevURL)
	})

	t.Run("Last page has no next link", func(t *testing.T) {
		pagination := BuildPaginationResponse(50, 5, 10, "/sessions")

		assert.Empty(t, pagination.NextURL)
		assert.Equal(t, "/sessions?page=4&page_size=10", pagination.PrevURL)
	})

	t.Run("First page has no previous link", func(t *testing.T) {
		pagination := BuildPaginationResponse(50, 1, 10, "/sessions")

		assert.Equal(t, "/sessions?page=2&page_size=10", pagination.NextURL)
		assert.Empty(t, pagination.PrevURL)
	})
}

func TestSessionJWTRoundTrip(t *testing.T) {
	secret := "test-secret"

	t.Run("A generated token parses back to its session id", func(t *testing.T) {
		token, err := GenerateSessionJWT("auth-session-1", secret, 1)
		assert.Nil(t, err)

		sessionID, err := ParseSessionJWT(token, secret)
		assert.Nil(t, err)
		assert.Equal(t, "auth-session-1", sessionID)
	})

	t.Run("A token signed with another secret is rejected", func(t *testing.T) {
		token, err := GenerateSessionJWT("auth-session-1", "other-secret", 1)
		assert.Nil(t, err)

		sessionID, err := ParseSessionJWT(token, secret)
		assert.NotNil(t, err)
		assert.Empty(t, sessionID)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	assert.Nil(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPasswordHash("s3cret-password", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}
