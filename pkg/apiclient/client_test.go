package apiclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonProblemErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.GetUser(1)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Title)
	assert.Contains(t, apiErr.Detail, "upstream exploded")
}

func TestProblemStatusOverriddenByResponseCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		// Body status intentionally disagrees with the HTTP status.
		_ = json.NewEncoder(w).Encode(APIError{Title: "Unprocessable Entity", Status: 400, Detail: "bad role"})
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.CreateUser(&CreateUserRequest{Name: "x", Email: "x@example.com", Password: "longenoughpw"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.True(t, apiErr.IsValidationError())
}

func TestWithTokenReturnsIndependentClient(t *testing.T) {
	base := New("http://localhost:1")
	derived := base.WithToken("abc")

	assert.Empty(t, base.token)
	assert.Equal(t, "abc", derived.token)
	assert.Equal(t, base.baseURL, derived.baseURL)
}

func TestPagination(t *testing.T) {
	q := pagination(50, 100)
	assert.Equal(t, "50", q.Get("limit"))
	assert.Equal(t, "100", q.Get("offset"))

	assert.Empty(t, pagination(0, 0))
}
