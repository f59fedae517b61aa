package apiclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/users", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "alice", r.URL.Query().Get("q"))
		assert.Equal(t, "admin", r.URL.Query().Get("role"))
		assert.Equal(t, "desc", r.URL.Query().Get("order"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(UserPage{
			Users: []User{
				{ID: 1, Name: "Alice", Email: "alice@example.com", Role: "admin"},
			},
			Total: 1,
		})
	}))
	defer server.Close()

	client := New(server.URL).WithToken("test-token")
	page, err := client.ListUsers(ListUsersOptions{
		Query:      "alice",
		Role:       "admin",
		Descending: true,
		Limit:      25,
	})
	require.NoError(t, err)
	require.Len(t, page.Users, 1)
	assert.Equal(t, uint(1), page.Users[0].ID)
	assert.Equal(t, "alice@example.com", page.Users[0].Email)
	assert.Equal(t, int64(1), page.Total)
}

func TestGetUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/users/42", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(User{ID: 42, Name: "Bob", Email: "bob@example.com", Role: "user"})
	}))
	defer server.Close()

	client := New(server.URL).WithToken("test-token")
	user, err := client.GetUser(42)
	require.NoError(t, err)
	assert.Equal(t, uint(42), user.ID)
	assert.Equal(t, "Bob", user.Name)
}

func TestGetUserNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(APIError{
			Title:  "Not Found",
			Status: http.StatusNotFound,
			Detail: "user not found",
		})
	}))
	defer server.Close()

	client := New(server.URL).WithToken("test-token")
	_, err := client.GetUser(999)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
	assert.Equal(t, "Not Found: user not found", apiErr.Error())
}

func TestCreateUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/users", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CreateUserRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Carol", req.Name)
		assert.Equal(t, "carol@example.com", req.Email)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(User{ID: 3, Name: req.Name, Email: req.Email, Role: "user"})
	}))
	defer server.Close()

	client := New(server.URL).WithToken("test-token")
	user, err := client.CreateUser(&CreateUserRequest{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(3), user.ID)
	assert.Equal(t, "user", user.Role)
}

func TestCreateUserConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(APIError{
			Title:  "Conflict",
			Status: http.StatusConflict,
			Detail: "email already registered",
		})
	}))
	defer server.Close()

	client := New(server.URL).WithToken("test-token")
	_, err := client.CreateUser(&CreateUserRequest{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "correct horse battery",
	})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsConflict())
}

func TestUpdateUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/users/7", r.URL.Path)

		var req UpdateUserRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.Role)
		assert.Equal(t, "admin", *req.Role)
		assert.Nil(t, req.Name)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(User{ID: 7, Name: "Dave", Email: "dave@example.com", Role: "admin"})
	}))
	defer server.Close()

	role := "admin"
	client := New(server.URL).WithToken("test-token")
	user, err := client.UpdateUser(7, &UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)
}

func TestDeleteUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/users/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := New(server.URL).WithToken("test-token")
	require.NoError(t, client.DeleteUser(7))
}
