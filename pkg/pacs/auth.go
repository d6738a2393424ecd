package pacs

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/wizardpacs/adminkit/pkg/apiclient"
	"github.com/wizardpacs/adminkit/pkg/apierror"
	"github.com/wizardpacs/adminkit/pkg/logger"
	"github.com/wizardpacs/adminkit/pkg/session"
)

// Authentication endpoints.
const (
	PathLogin           = "/auth/login"
	PathAuthTest        = "/auth/test"
	DefaultIdentityPath = "/auth/me"
)

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Authenticator runs the login flow against the backend and records the
// result in the session store.
type Authenticator struct {
	api          *apiclient.Client
	store        *session.Store
	identityPath string
	logger       *slog.Logger
	now          func() time.Time
}

// NewAuthenticator panics if api or store is nil.
func NewAuthenticator(api *apiclient.Client, store *session.Store, opts ...AuthOption) *Authenticator {
	if api == nil || store == nil {
		panic("pacs: api client and session store are required")
	}
	a := &Authenticator{
		api:          api,
		store:        store,
		identityPath: DefaultIdentityPath,
		logger:       logger.Discard(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With(logger.Component("pacs.auth"))
	return a
}

// Login exchanges the user's credentials for a token, fetches the identity
// that token belongs to and logs the store in. Backend failures are returned
// as *apierror.Failure and leave the store Anonymous.
//
// A re-login from Authenticated sends the login request under the current
// session, like any other call. A 401 there (a wrong password, or a revoked
// token) ends the current session. Any other failure leaves it untouched.
func (a *Authenticator) Login(ctx context.Context, usernameOrEmail, password string) (session.Session, error) {
	usernameOrEmail = strings.TrimSpace(usernameOrEmail)
	if usernameOrEmail == "" || password == "" {
		return a.store.Snapshot(), ErrMissingCredentials
	}

	// Re-login from Authenticated goes straight to Login.
	if !a.store.IsAuthenticated() {
		if err := a.store.BeginAuthentication(); err != nil {
			return a.store.Snapshot(), err
		}
	}

	identity, credential, err := a.exchange(ctx, usernameOrEmail, password)
	if err != nil {
		a.store.FailAuthentication()
		a.logger.WarnContext(ctx, "login failed", logger.Error(err))
		return a.store.Snapshot(), err
	}

	var scope []string
	if a.store.Snapshot().TenantScope == "" && identity.OrganizationID != "" {
		scope = append(scope, identity.OrganizationID)
	}
	if err := a.store.Login(identity, credential, scope...); err != nil {
		a.store.FailAuthentication()
		return a.store.Snapshot(), err
	}

	snap := a.store.Snapshot()
	a.logger.InfoContext(ctx, "logged in",
		logger.UserID(identity.ID),
		logger.Role(identity.Role),
		logger.TenantScope(snap.TenantScope),
	)
	return snap, nil
}

func (a *Authenticator) exchange(ctx context.Context, usernameOrEmail, password string) (session.Identity, session.Credential, error) {
	out, err := apiclient.Post[loginResponse](ctx, a.api, PathLogin, loginRequest{
		UsernameOrEmail: usernameOrEmail,
		Password:        password,
	})
	if err != nil {
		return session.Identity{}, session.Credential{}, err
	}
	if !out.OK() {
		return session.Identity{}, session.Credential{}, out.Failure
	}
	if out.Value.Token == "" {
		return session.Identity{}, session.Credential{}, apierror.New(apierror.Unknown, out.Status, nil, ErrEmptyToken)
	}
	credential := session.Credential{Value: out.Value.Token, AcquiredAt: a.now()}

	// The store is not Authenticated yet, so the new token is sent explicitly.
	me, err := apiclient.Execute[User](ctx, a.api, apiclient.Request{
		Method:     http.MethodGet,
		Path:       a.identityPath,
		Credential: credential.Value,
	})
	if err != nil {
		return session.Identity{}, session.Credential{}, err
	}
	if !me.OK() {
		return session.Identity{}, session.Credential{}, me.Failure
	}
	if me.Value.ID == "" {
		return session.Identity{}, session.Credential{}, apierror.New(apierror.Unknown, me.Status, nil, ErrInvalidIdentity)
	}
	return identityOf(me.Value), credential, nil
}

// Logout ends the session locally. The backend keeps no session state.
func (a *Authenticator) Logout() {
	a.store.Logout()
}

// Check asks the backend whether the current credential is still accepted.
// A rejected credential invalidates the session as a side effect.
func (a *Authenticator) Check(ctx context.Context) (bool, error) {
	out, err := apiclient.Get[apiclient.NoContent](ctx, a.api, PathAuthTest, nil)
	if err != nil {
		return false, err
	}
	return out.OK(), nil
}

func identityOf(u User) session.Identity {
	name := u.Name
	if name == "" {
		name = u.Username
	}
	return session.Identity{
		ID:             u.ID,
		DisplayName:    name,
		Role:           u.Role,
		Active:         u.Active,
		Email:          u.Email,
		Username:       u.Username,
		OrganizationID: u.OrganizationID,
	}
}
