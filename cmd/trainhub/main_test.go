package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/trainhub/internal/app/repositories/memory"
	"github.com/yigit/trainhub/internal/bootstrap"
	"github.com/yigit/trainhub/internal/config"
	"github.com/yigit/trainhub/internal/pages"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
	"github.com/yigit/trainhub/internal/pkg/auth"
	"github.com/yigit/trainhub/internal/seed"
)

// newConsoleEnv starts a seeded server and writes a client config pointing at it
func newConsoleEnv(t *testing.T) string {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Mode = "production"
	cfg.JWT.BcryptCost = bcrypt.MinCost
	repos := memory.NewRepositories()
	require.NoError(t, seed.CreateDefaultData(context.Background(), repos, auth.NewPasswords(cfg.JWT.BcryptCost), zerolog.Nop()))
	deps := bootstrap.BuildDependencies(cfg, repos, zerolog.Nop())
	ts := httptest.NewServer(bootstrap.SetupRouter(cfg, deps))
	t.Cleanup(ts.Close)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf("client:\n  base_url: %s/api\n  session_dir: %s\n  read_retries: 0\n", ts.URL, filepath.Join(dir, "session"))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp(strings.NewReader(""), &out, &errOut)
	err := app.Run(append([]string{"trainhub", "--config", cfgPath}, args...))
	return out.String(), err
}

func TestLogin(t *testing.T) {
	cfgPath := newConsoleEnv(t)

	_, err := run(t, cfgPath, "login", "-u", "mohamed", "-p", "nope")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	out, err := run(t, cfgPath, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")

	out, err = run(t, cfgPath, "login", "-u", "mohamed", "-p", "admin123")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Mohamed Admin (Admin)")
	assert.Contains(t, out, "Home: Dashboard")

	out, err = run(t, cfgPath, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "mohamed")

	out, err = run(t, cfgPath, "nav")
	require.NoError(t, err)
	for _, title := range []string{"Dashboard", "Students", "Trainers", "Courses", "Registrations", "Grades"} {
		assert.Contains(t, out, title)
	}

	_, err = run(t, cfgPath, "logout")
	require.NoError(t, err)
	_, err = run(t, cfgPath, "courses", "list")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestLogin_promptsForPassword(t *testing.T) {
	cfgPath := newConsoleEnv(t)

	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func() (string, error) { return "trainer123", nil }

	out, err := run(t, cfgPath, "login", "--username", "ali")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Ali Trainer (Trainer)")
}

func TestResources_admin(t *testing.T) {
	cfgPath := newConsoleEnv(t)
	_, err := run(t, cfgPath, "login", "-u", "mohamed", "-p", "admin123")
	require.NoError(t, err)

	out, err := run(t, cfgPath, "courses", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "JAVA101")
	assert.Contains(t, out, pages.NotAssigned)

	out, err = run(t, cfgPath, "students", "add",
		"--set", "matricule=E2024099",
		"--set", "nom=Doe",
		"--set", "prenom=Jane",
		"--set", "email=jane.doe@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "[success] Student created successfully")

	out, err = run(t, cfgPath, "students", "list", "--search", "DOE")
	require.NoError(t, err)
	assert.Contains(t, out, "E2024099")
	assert.NotContains(t, out, "E2024001")

	_, err = run(t, cfgPath, "students", "add", "--set", "nom=Doe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input")

	out, err = run(t, cfgPath, "courses", "edit", "--set", "titre=Java, the basics", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "[success]")
	out, err = run(t, cfgPath, "courses", "list", "-q", "the basics")
	require.NoError(t, err)
	assert.Contains(t, out, "JAVA101")

	out, err = run(t, cfgPath, "registrations", "cancel", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "[success] Registration cancelled successfully")

	out, err = run(t, cfgPath, "registrations", "list")
	require.NoError(t, err)
	assert.Contains(t, out, pages.EmptyRegistrations)

	_, err = run(t, cfgPath, "grades", "delete", "42")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	out, err = run(t, cfgPath, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Courses:        3")
	assert.Contains(t, out, "average 15.5")
}

func TestResources_roleGates(t *testing.T) {
	cfgPath := newConsoleEnv(t)
	_, err := run(t, cfgPath, "login", "-u", "saleh", "-p", "student123")
	require.NoError(t, err)

	_, err = run(t, cfgPath, "students", "list")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = run(t, cfgPath, "courses", "add", "--set", "code=X1", "--set", "titre=X")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = run(t, cfgPath, "registrations", "cancel", "1")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	out, err := run(t, cfgPath, "dashboard")
	require.NoError(t, err)
	assert.NotContains(t, out, "Students:")
}
