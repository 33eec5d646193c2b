package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"useradmin/internal/client"
	"useradmin/internal/errors"
	"useradmin/internal/handler"
	"useradmin/internal/model"
	"useradmin/internal/repository"
	"useradmin/internal/router"
	"useradmin/internal/service"
)

// newDirectory starts the full server stack over a file store seeded with doc.
func newDirectory(t *testing.T, doc string) *client.Client {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	if doc != "" {
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	}
	repo, err := repository.NewFileUserRepository(path)
	require.NoError(t, err)

	e := echo.New()
	require.NoError(t, router.Register(e, handler.NewUserHandler(service.NewUserService(repo, nil))))
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return client.New(srv.URL)
}

func TestClient_CreateThenList(t *testing.T) {
	c := newDirectory(t, "")
	ctx := context.Background()

	created, err := c.CreateUser(ctx, model.User{Name: "Marty McFly", Email: "marty.mcfly@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	another, err := c.CreateUser(ctx, model.User{Name: "Doc Brown", Email: "doc@example.com"})
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, another.ID)

	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	matches := 0
	for _, u := range users {
		if u.Name == "Marty McFly" && u.Email == "marty.mcfly@example.com" {
			matches++
			assert.Equal(t, created.ID, u.ID)
		}
	}
	assert.Equal(t, 1, matches)

	got, err := c.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)
}

func TestClient_UpdateExistingUser(t *testing.T) {
	c := newDirectory(t, `{"users":[{"id":"1","name":"Alex Jimenez","email":"alex@domain.com"}]}`)
	ctx := context.Background()

	updated, err := c.UpdateUser(ctx, model.User{ID: "1", Name: "Alex McFly", Email: "alex.mcfly@domain.com"})
	require.NoError(t, err)
	assert.Equal(t, model.User{ID: "1", Name: "Alex McFly", Email: "alex.mcfly@domain.com"}, *updated)

	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.User{{ID: "1", Name: "Alex McFly", Email: "alex.mcfly@domain.com"}}, users)
}

func TestClient_DeleteOnlyRecord(t *testing.T) {
	c := newDirectory(t, `{"users":[{"id":"1","name":"Alex Jimenez","email":"alex@domain.com"}]}`)
	ctx := context.Background()

	ok, err := c.DeleteUser(ctx, model.User{ID: "1"})
	require.NoError(t, err)
	assert.True(t, ok)

	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestClient_DeleteUnknownLeavesOthers(t *testing.T) {
	c := newDirectory(t, `{"users":[{"id":"1","name":"Alex","email":"alex@domain.com"},{"id":"2","name":"Sam","email":"sam@domain.com"}]}`)
	ctx := context.Background()

	_, err := c.DeleteUser(ctx, model.User{ID: "3"})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "user not found", apiErr.Message)

	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestClient_InvalidEmailNeverReachesServer(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()
	c := client.New(srv.URL)
	ctx := context.Background()

	_, err := c.CreateUser(ctx, model.User{Name: "Alex Jimenez", Email: "Alex Jimenez@domain.com"})
	assert.ErrorIs(t, err, errors.ErrInvalidEmail)

	_, err = c.UpdateUser(ctx, model.User{ID: "1", Name: "Alex Jimenez", Email: "Alex Jimenez@domain.com"})
	assert.ErrorIs(t, err, errors.ErrInvalidEmail)

	assert.Equal(t, int32(0), hits.Load())
}

func TestClient_FallbackMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()
	c := client.New(srv.URL)
	ctx := context.Background()

	_, err := c.ListUsers(ctx)
	assert.EqualError(t, err, "An error occurred while fetching users.")

	_, err = c.GetUser(ctx, "7")
	assert.EqualError(t, err, "An error occurred while fetching user with ID: 7.")

	_, err = c.CreateUser(ctx, model.User{Name: "A", Email: "a@b.co"})
	assert.EqualError(t, err, "An error occurred while creating a new user.")

	_, err = c.UpdateUser(ctx, model.User{ID: "7", Name: "A"})
	assert.EqualError(t, err, "An error occurred while updating user with ID: 7.")

	_, err = c.DeleteUser(ctx, model.User{ID: "7"})
	assert.EqualError(t, err, "An error occurred while deleting user with ID: 7.")
}

func TestClient_TransportFailureUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := client.New(url).ListUsers(context.Background())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, "An error occurred while fetching users.", apiErr.Message)
	assert.Error(t, apiErr.Unwrap())
}

func TestClient_StoreFailureSurfacesServerMessage(t *testing.T) {
	c := newDirectory(t, `not json`)

	_, err := c.ListUsers(context.Background())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Internal server error", apiErr.Message)
}

func TestClient_SendsHeaders(t *testing.T) {
	var (
		mu               sync.Mutex
		gotAuth, gotType string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"users":[]}`))
	}))
	defer srv.Close()

	_, err := client.New(srv.URL, client.WithToken("secret")).ListUsers(context.Background())
	require.NoError(t, err)
	mu.Lock()
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "application/json", gotType)
	mu.Unlock()

	_, err = client.New(srv.URL).ListUsers(context.Background())
	require.NoError(t, err)
	mu.Lock()
	assert.Empty(t, gotAuth)
	mu.Unlock()
}
