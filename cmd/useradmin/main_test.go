package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"useradmin/internal/handler"
	"useradmin/internal/repository"
	"useradmin/internal/router"
	"useradmin/internal/service"
)

const seeded = `{"users":[
	{"id":"1","name":"Alex Jimenez","email":"alex@domain.com"},
	{"id":"2","name":"Bea Ortiz","email":"bea@domain.com"}
]}`

func startServer(t *testing.T, doc string) (string, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	repo, err := repository.NewFileUserRepository(path)
	require.NoError(t, err)

	e := echo.New()
	require.NoError(t, router.Register(e, handler.NewUserHandler(service.NewUserService(repo, nil))))
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv.URL, path
}

// run executes the root command with args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	errorHandled = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestCLI_List(t *testing.T) {
	url, _ := startServer(t, seeded)

	out, err := run(t, "--api", url, "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Alex Jimenez")
	assert.Contains(t, out, "bea@domain.com")
	assert.Contains(t, out, "page 1 of 1, 2 users")
}

func TestCLI_ListPageOutOfRange(t *testing.T) {
	url, _ := startServer(t, seeded)

	_, err := run(t, "--api", url, "list", "--page", "2")

	assert.ErrorContains(t, err, "out of range")
}

func TestCLI_Get(t *testing.T) {
	url, _ := startServer(t, seeded)

	out, err := run(t, "--api", url, "get", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "Bea Ortiz")
}

func TestCLI_Create(t *testing.T) {
	url, path := startServer(t, seeded)

	out, err := run(t, "--api", url, "create", "--name", "Marty McFly", "--email", "marty@example.com")

	require.NoError(t, err)
	assert.Contains(t, out, "User created successfully")
	doc, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "marty@example.com")
}

func TestCLI_CreateInvalidEmail(t *testing.T) {
	url, path := startServer(t, seeded)

	_, err := run(t, "--api", url, "create", "--name", "Marty", "--email", "not-an-email")

	assert.ErrorContains(t, err, "Invalid email format")
	doc, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(doc), "Marty")
}

func TestCLI_UpdateKeepsUnsetFields(t *testing.T) {
	url, path := startServer(t, seeded)

	out, err := run(t, "--api", url, "update", "1", "--name", "Alex McFly")

	require.NoError(t, err)
	assert.Contains(t, out, "User updated successfully")
	doc, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "Alex McFly")
	assert.Contains(t, string(doc), "alex@domain.com")
}

func TestCLI_Delete(t *testing.T) {
	url, path := startServer(t, seeded)

	out, err := run(t, "--api", url, "delete", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "User deleted successfully")
	doc, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(doc), "Bea Ortiz")
}

func TestCLI_UnknownUser(t *testing.T) {
	url, _ := startServer(t, seeded)

	_, err := run(t, "--api", url, "delete", "42")

	assert.ErrorContains(t, err, `user "42" not found`)
	assert.False(t, errorHandled)
}

func TestCLI_ServerDown(t *testing.T) {
	closed := httptest.NewServer(nil)
	closed.Close()

	out, err := run(t, "--api", closed.URL, "list")

	require.Error(t, err)
	assert.True(t, errorHandled)
	assert.Contains(t, out, "Error fetching users:")
}
