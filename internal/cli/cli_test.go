package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wizardpacs/adminkit/internal/cli"
)

const token = "tok-cli"

// fakeAPI is the slice of the backend the commands touch.
type fakeAPI struct {
	mu      sync.Mutex
	revoked bool
	scopes  []string
}

func (f *fakeAPI) handler() http.Handler {
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["usernameOrEmail"] != "ada" || body["password"] != "s3cret" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"token": token})
		})

		r.Group(func(r chi.Router) {
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					f.mu.Lock()
					ok := !f.revoked && r.Header.Get("Authorization") == "Bearer "+token
					f.scopes = append(f.scopes, r.Header.Get("X-Organization-Id"))
					f.mu.Unlock()
					if !ok {
						writeJSON(w, http.StatusUnauthorized, map[string]string{})
						return
					}
					next.ServeHTTP(w, r)
				})
			})
			r.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]any{
					"id": "u-1", "username": "ada", "name": "Ada Admin", "email": "ada@example.com",
					"role": "ADMIN", "activo": true, "organizationId": "org-1",
				})
			})
			r.Get("/auth/test", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("ok"))
			})
			r.Get("/users", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, []map[string]any{
					{"id": "u-1", "username": "ada", "name": "Ada Admin", "role": "ADMIN", "activo": true},
					{"id": "u-2", "username": "grace", "name": "Grace Tech", "role": "USER", "activo": false},
				})
			})
			r.Get("/organizations", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, []map[string]any{
					{"id": "org-1", "name": "Clinica Norte"},
					{"id": "org-2", "name": "Clinica Sur"},
				})
			})
			r.Get("/pacs/studies/search", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, []map[string]any{
					{"id": "s-1", "patientId": r.URL.Query().Get("patientId"), "modality": "CT", "studyDate": "2026-02-14"},
				})
			})
			r.Get("/pacs/studies/stats", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]any{"totalStudies": 42})
			})
			r.Get("/pacs/dicom-nodes/stats", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]any{"totalNodes": 3, "activeNodes": 2, "inactiveNodes": 1})
			})
			r.Get("/pacs/engine/status", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "engine offline"})
			})
			r.Post("/pacs/dicom-nodes/{id}/toggle", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]any{"id": chi.URLParam(r, "id"), "aeTitle": "ARCHIVE", "active": false})
			})
			r.Post("/pacs/dicom-nodes/{id}/echo", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]any{"success": chi.URLParam(r, "id") == "n-1", "message": "Echo successful"})
			})
		})
	})
	return r
}

type env struct {
	t       *testing.T
	api     *fakeAPI
	vars    map[string]string
	session string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	session := filepath.Join(t.TempDir(), "session.json")
	return &env{
		t:       t,
		api:     api,
		session: session,
		vars: map[string]string{
			"PACS_API_BASE_URL":   srv.URL + "/api",
			"PACS_STORAGE_DRIVER": "file",
			"PACS_STORAGE_FILE":   session,
		},
	}
}

type result struct {
	code   int
	stdout string
	stderr string
}

func (e *env) run(stdin string, args ...string) result {
	e.t.Helper()
	var out, errOut bytes.Buffer
	args = append([]string{"--color", "never", "--env-file", ""}, args...)
	code := cli.Execute(context.Background(), args, cli.Streams{
		In:  strings.NewReader(stdin),
		Out: &out,
		Err: &errOut,
	}, cli.WithEnvironment(e.vars), cli.WithVersion("1.2.3"))
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func (e *env) login() {
	e.t.Helper()
	res := e.run("s3cret\n", "login", "-u", "ada", "--password-stdin")
	require.Equal(e.t, 0, res.code, res.stderr)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	res := e.run("", "version", "--short")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "1.2.3\n", res.stdout)

	res = e.run("", "version")
	assert.Contains(t, res.stdout, "pacsadmin version 1.2.3")
}

func TestSessionPersistsAcrossInvocations(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	res := e.run("s3cret\n", "login", "-u", "ada", "--password-stdin")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Logged in as Ada Admin (ADMIN)")
	assert.Contains(t, res.stdout, "Organization: org-1")

	info, err := os.Stat(e.session)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	res = e.run("", "whoami", "--check")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Ada Admin (ADMIN)")
	assert.Contains(t, res.stdout, "organization: org-1")
	assert.NotContains(t, res.stdout, token, "credentials are never printed")

	res = e.run("", "-o", "json", "whoami")
	require.Equal(t, 0, res.code, res.stderr)
	var who map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &who))
	assert.Equal(t, "u-1", who["id"])

	res = e.run("", "logout")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "Logged out.")

	res = e.run("", "whoami")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "not logged in")

	res = e.run("", "logout")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "Not logged in.")
}

func TestLogin_Failures(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	res := e.run("wrong\n", "login", "-u", "ada", "--password-stdin")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "[warning] Session expired. Please sign in again. (HTTP 401)")
	assert.NotContains(t, res.stderr, "Error:", "the notice is the only report")

	res = e.run("", "login", "-u", "ada")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "password is required")

	res = e.run("", "login", "--password", "s3cret")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "--username is required")

	res = e.run("", "whoami")
	assert.Equal(t, 1, res.code)
}

func TestOrgSelection(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.login()

	res := e.run("", "org", "use", "clinica sur")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Using organization Clinica Sur (org-2)")

	res = e.run("", "org", "show")
	assert.Equal(t, "org-2\n", res.stdout)

	res = e.run("", "orgs", "list")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Clinica Norte")
	assert.Regexp(t, `\*\W+org-2`, res.stdout)

	res = e.run("", "org", "use", "nowhere")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "tenant not found")

	res = e.run("", "org", "use", "--clear")
	require.Equal(t, 0, res.code)
	res = e.run("", "org", "show")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "no organization selected")

	e.api.mu.Lock()
	defer e.api.mu.Unlock()
	assert.Contains(t, e.api.scopes, "org-2")
}

func TestResourceCommands(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.login()

	res := e.run("", "users", "list")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "grace")
	assert.Contains(t, res.stdout, "Grace Tech")

	res = e.run("", "-o", "json", "users", "list")
	require.Equal(t, 0, res.code, res.stderr)
	var users []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &users))
	assert.Len(t, users, 2)

	res = e.run("", "studies", "search", "--patient-id", "P-9", "--date", "2026-02-14")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "P-9")

	res = e.run("", "studies", "search", "--date", "14/02/2026")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid --date")

	res = e.run("", "nodes", "echo", "n-1")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Echo successful")

	res = e.run("", "nodes", "echo", "n-2")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "echo failed")

	res = e.run("", "nodes", "toggle", "n-2")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Node ARCHIVE disabled")
}

func TestDashboard_PartialFailure(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.login()

	res := e.run("", "dashboard")
	assert.Equal(t, 1, res.code, "the engine section failed")
	assert.Contains(t, res.stdout, "total: 42")
	assert.Contains(t, res.stdout, "total: 3  active: 2  inactive: 1")
	assert.Contains(t, res.stdout, "unavailable")
	assert.Contains(t, res.stderr, "[error] Internal server error. Contact the administrator. (HTTP 500)")
}

func TestSessionExpiresMidCommand(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.login()

	e.api.mu.Lock()
	e.api.revoked = true
	e.api.mu.Unlock()

	res := e.run("", "users", "list")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Session ended (auth_expired)")

	res = e.run("", "whoami")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "not logged in", "the invalidation was persisted")
}

func TestMetricsFile(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.login()

	path := filepath.Join(t.TempDir(), "pacsadmin.prom")
	res := e.run("", "--metrics-file", path, "users", "list")
	require.Equal(t, 0, res.code, res.stderr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `adminkit_requests_total{kind="ok",method="GET"} 1`)
}

func TestEnvFile(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	dotenv := filepath.Join(t.TempDir(), ".env")
	content := "PACS_API_BASE_URL=" + e.vars["PACS_API_BASE_URL"] + "\n"
	require.NoError(t, os.WriteFile(dotenv, []byte(content), 0o600))
	delete(e.vars, "PACS_API_BASE_URL")

	var out, errOut bytes.Buffer
	code := cli.Execute(context.Background(),
		[]string{"--color", "never", "--env-file", dotenv, "login", "-u", "ada", "--password-stdin"},
		cli.Streams{In: strings.NewReader("s3cret\n"), Out: &out, Err: &errOut},
		cli.WithEnvironment(e.vars),
	)
	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, out.String(), "Logged in as Ada Admin")
}

func TestInvalidFlags(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	res := e.run("", "-o", "yaml", "whoami")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, `invalid output "yaml"`)

	res = e.run("", "--color", "sometimes", "whoami")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid color mode")

	e.vars["PACS_STORAGE_DRIVER"] = "floppy"
	res = e.run("", "whoami")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error:")
}
