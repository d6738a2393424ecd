package pacs_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"

	"github.com/wizardpacs/adminkit/pkg/apiclient"
	"github.com/wizardpacs/adminkit/pkg/notify"
	"github.com/wizardpacs/adminkit/pkg/pacs"
	"github.com/wizardpacs/adminkit/pkg/session"
	"github.com/wizardpacs/adminkit/pkg/storage"
)

const (
	validToken = "tok-1"
	password   = "s3cret"
)

var ada = pacs.User{
	ID:             "u-1",
	Email:          "ada@example.com",
	Username:       "ada",
	Name:           "Ada Admin",
	Role:           pacs.RoleAdmin,
	Active:         true,
	OrganizationID: "org-1",
}

// backend is a fake administration API.
type backend struct {
	mu       sync.Mutex
	token    string
	loginTok string
	revoked  bool
	users    map[string]pacs.User
	orgs     []pacs.Organization
	scopes   []string
	queries  []string
}

func newBackend() *backend {
	return &backend{
		token:    validToken,
		loginTok: validToken,
		users:    map[string]pacs.User{ada.ID: ada},
		orgs: []pacs.Organization{
			{ID: "org-1", Name: "Clinica Norte"},
			{ID: "org-2", Name: "Clinica Sur", Description: "south campus"},
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *backend) revoke() {
	b.mu.Lock()
	b.revoked = true
	b.mu.Unlock()
}

func (b *backend) seenScopes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.scopes...)
}

func (b *backend) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		ok := !b.revoked && r.Header.Get("Authorization") == "Bearer "+b.token
		b.scopes = append(b.scopes, r.Header.Get(apiclient.HeaderOrganizationID))
		b.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Full authentication is required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *backend) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", b.login)

		r.Group(func(r chi.Router) {
			r.Use(b.requireToken)

			r.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, ada)
			})
			r.Get("/auth/test", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				_, _ = w.Write([]byte("Auth OK"))
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", b.listUsers)
				r.Post("/", b.createUser)
				r.Get("/{id}", b.getUser)
				r.Delete("/{id}", b.deleteUser)
			})
			r.Get("/organizations", func(w http.ResponseWriter, r *http.Request) {
				b.mu.Lock()
				defer b.mu.Unlock()
				writeJSON(w, http.StatusOK, b.orgs)
			})
			r.Get("/organizations/{id}", func(w http.ResponseWriter, r *http.Request) {
				b.mu.Lock()
				defer b.mu.Unlock()
				for _, o := range b.orgs {
					if o.ID == chi.URLParam(r, "id") {
						writeJSON(w, http.StatusOK, o)
						return
					}
				}
				writeJSON(w, http.StatusNotFound, map[string]string{"message": "Organization not found"})
			})
			r.Put("/organizations/{id}", func(w http.ResponseWriter, r *http.Request) {
				var in pacs.Organization
				if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Name) == "" {
					writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": "Validation failed", "errors": map[string]string{"name": "required"}})
					return
				}
				b.mu.Lock()
				defer b.mu.Unlock()
				for i, o := range b.orgs {
					if o.ID == chi.URLParam(r, "id") {
						in.ID = o.ID
						b.orgs[i] = in
						writeJSON(w, http.StatusOK, in)
						return
					}
				}
				writeJSON(w, http.StatusNotFound, map[string]string{"message": "Organization not found"})
			})

			r.Route("/pacs", func(r chi.Router) {
				r.Get("/studies", func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, http.StatusOK, []pacs.Study{{ID: "s-1", StudyInstanceUID: "1.2.3", Modality: "CT"}})
				})
				r.Get("/studies/search", func(w http.ResponseWriter, r *http.Request) {
					b.mu.Lock()
					b.queries = append(b.queries, r.URL.RawQuery)
					b.mu.Unlock()
					writeJSON(w, http.StatusOK, []pacs.Study{{ID: "s-2", PatientID: r.URL.Query().Get("patientId"), Modality: r.URL.Query().Get("modality")}})
				})
				r.Get("/studies/stats", func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, http.StatusOK, pacs.StudyStats{TotalStudies: 42, Timestamp: 1700000000000})
				})
				r.Get("/dicom-nodes", func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, http.StatusOK, []pacs.DicomNode{
						{ID: "n-1", AETitle: "CT_SCANNER", NodeType: pacs.NodeSCU, Active: true},
						{ID: "n-2", AETitle: "ARCHIVE", NodeType: pacs.NodeSCP},
					})
				})
				r.Get("/dicom-nodes/active", func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, http.StatusOK, []pacs.DicomNode{{ID: "n-1", AETitle: "CT_SCANNER", NodeType: pacs.NodeSCU, Active: true}})
				})
				r.Get("/dicom-nodes/stats", func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, http.StatusOK, pacs.NodeStats{TotalNodes: 2, ActiveNodes: 1, InactiveNodes: 1, SCUNodes: 1, SCPNodes: 1})
				})
				r.Post("/dicom-nodes/batch-echo", func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, http.StatusOK, pacs.BatchEchoResult{
						Results:      map[string]bool{"CT_SCANNER": true},
						TotalTested:  1,
						SuccessCount: 1,
					})
				})
				r.Post("/dicom-nodes/{id}/echo", func(w http.ResponseWriter, r *http.Request) {
					if chi.URLParam(r, "id") != "n-1" {
						writeJSON(w, http.StatusNotFound, map[string]string{"message": "DICOM node not found"})
						return
					}
					writeJSON(w, http.StatusOK, pacs.EchoResult{Success: true, Message: "Echo successful"})
				})
				r.Post("/dicom-nodes/{id}/toggle", func(w http.ResponseWriter, r *http.Request) {
					if chi.URLParam(r, "id") != "n-2" {
						writeJSON(w, http.StatusNotFound, map[string]string{"message": "DICOM node not found"})
						return
					}
					writeJSON(w, http.StatusOK, pacs.DicomNode{ID: "n-2", AETitle: "ARCHIVE", NodeType: pacs.NodeSCP, Active: true})
				})
				r.Get("/engine/status", func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, http.StatusOK, map[string]any{"online": true, "version": "1.4.2"})
				})
			})
		})
	})
	return r
}

func (b *backend) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UsernameOrEmail string `json:"usernameOrEmail"`
		Password        string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad request"})
		return
	}
	login := strings.ToLower(req.UsernameOrEmail)
	if (login != ada.Username && login != ada.Email) || req.Password != password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
		return
	}
	b.mu.Lock()
	tok := b.loginTok
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

func (b *backend) listUsers(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]pacs.User, 0, len(b.users))
	for _, u := range b.users {
		out = append(out, u)
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *backend) getUser(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[chi.URLParam(r, "id")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "User not found"})
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (b *backend) createUser(w http.ResponseWriter, r *http.Request) {
	var in pacs.NewUser
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "invalid body"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.Username == in.Username {
			writeJSON(w, http.StatusConflict, map[string]any{
				"message": "Username already exists",
				"errors":  map[string]string{"username": "already taken"},
			})
			return
		}
	}
	u := pacs.User{ID: "u-" + in.Username, Email: in.Email, Username: in.Username, Name: in.Name, Role: in.Role, Active: in.Active}
	b.users[u.ID] = u
	writeJSON(w, http.StatusCreated, u)
}

func (b *backend) deleteUser(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.users, chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

type fixture struct {
	backend *backend
	store   *session.Store
	api     *apiclient.Client
	notices *notify.Recorder
	auth    *pacs.Authenticator
	client  *pacs.Client
}

func newFixture(t *testing.T, opts ...pacs.AuthOption) *fixture {
	t.Helper()

	b := newBackend()
	srv := httptest.NewServer(b.routes())
	t.Cleanup(srv.Close)

	f := &fixture{
		backend: b,
		store:   session.New(storage.NewMemory()),
		notices: &notify.Recorder{},
	}
	api, err := apiclient.New(apiclient.Config{BaseURL: srv.URL + "/api"}, f.store, apiclient.WithNotifier(f.notices))
	require.NoError(t, err)
	f.api = api
	f.auth = pacs.NewAuthenticator(api, f.store, opts...)
	f.client = pacs.NewClient(api)
	return f
}

// loggedIn returns a fixture whose store holds the backend's valid token.
func loggedIn(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	require.NoError(t, f.store.Login(session.Identity{ID: ada.ID, Role: ada.Role}, session.Credential{Value: validToken}, "org-1"))
	return f
}
