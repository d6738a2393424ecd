package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/wizardpacs/adminkit/pkg/logger"
	"github.com/wizardpacs/adminkit/pkg/storage"
)

// Store is the single source of truth for the client session.
// Every exported method is atomic with respect to the others.
type Store struct {
	mu         sync.RWMutex
	state      State
	credential *Credential
	identity   *Identity
	scope      string
	generation uint64
	restored   bool

	adapter storage.Adapter
	logger  *slog.Logger
	now     func() time.Time

	lmu       sync.Mutex
	listeners []subscription
	lastID    uint64
}

type subscription struct {
	id uint64
	fn Listener
}

// New creates an anonymous store persisting through adapter.
// Call Restore once before use to load a previous session.
// Panics if adapter is nil.
func New(adapter storage.Adapter, opts ...Option) *Store {
	if adapter == nil {
		panic("session: storage adapter is required")
	}

	s := &Store{
		adapter: adapter,
		logger:  logger.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("session"))
	return s
}

// Snapshot returns a deep copy of the current session.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// IsAuthenticated reports whether the store is currently Authenticated.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == Authenticated
}

// Login transitions to Authenticated, replacing any previous session.
// An optional tenant scope replaces the current one; without it the current
// scope is kept. Calling Login again with identical arguments changes nothing.
func (s *Store) Login(identity Identity, credential Credential, tenantScope ...string) error {
	if identity.ID == "" {
		return ErrInvalidIdentity
	}
	if credential.Value == "" {
		return ErrInvalidCredential
	}
	if credential.AcquiredAt.IsZero() {
		credential.AcquiredAt = s.now()
	}

	s.mu.Lock()
	from := s.state
	to, err := next(from, evLogin)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	scope := s.scope
	if len(tenantScope) > 0 {
		scope = tenantScope[0]
	}

	if from == Authenticated &&
		s.credential.Value == credential.Value &&
		*s.identity == identity &&
		s.scope == scope {
		s.mu.Unlock()
		return nil
	}

	s.state = to
	s.credential = &credential
	s.identity = &identity
	scopeChanged := s.scope != scope
	s.scope = scope
	s.generation++

	s.persistAuth()
	if scopeChanged {
		s.persistScope()
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("session authenticated",
		logger.UserID(identity.ID),
		logger.Role(identity.Role),
		logger.TenantScope(scope))
	s.emit(Event{Kind: EventLogin, From: from, To: to, Snapshot: snap})
	return nil
}

// Logout ends the session and clears everything persisted, tenant scope
// included. It is a no-op when already Anonymous.
func (s *Store) Logout() {
	s.mu.Lock()
	changed, from := s.endLocked(evLogout)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if !changed {
		return
	}
	s.logger.Info("session logged out")
	s.emit(Event{Kind: EventLogout, From: from, To: Anonymous, Snapshot: snap})
}

// Invalidate forcibly ends the session. It reports whether a session was
// actually ended; a second call returns false.
func (s *Store) Invalidate(reason Reason) bool {
	s.mu.Lock()
	changed, from := s.endLocked(evInvalidate)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if !changed {
		return false
	}
	s.logger.Warn("session invalidated", logger.Reason(string(reason)))
	s.emit(Event{Kind: EventInvalidated, From: from, To: Anonymous, Reason: reason, Snapshot: snap})
	return true
}

// InvalidateCredential invalidates the session only while it still holds
// the credential with the given value. A rejection of an older credential
// leaves a newer session untouched.
func (s *Store) InvalidateCredential(value string, reason Reason) bool {
	s.mu.Lock()
	if s.state != Authenticated || value == "" || s.credential.Value != value {
		s.mu.Unlock()
		return false
	}
	changed, from := s.endLocked(evInvalidate)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if !changed {
		return false
	}
	s.logger.Warn("session invalidated", logger.Reason(string(reason)))
	s.emit(Event{Kind: EventInvalidated, From: from, To: Anonymous, Reason: reason, Snapshot: snap})
	return true
}

// UpdateIdentity merges the non-nil fields of patch into the current
// identity. It never authenticates; outside Authenticated it does nothing.
func (s *Store) UpdateIdentity(patch IdentityPatch) bool {
	s.mu.Lock()
	if _, err := next(s.state, evUpdate); err != nil {
		s.mu.Unlock()
		return false
	}

	id := *s.identity
	if !patch.apply(&id) {
		s.mu.Unlock()
		return false
	}
	s.identity = &id
	s.persistIdentity()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(Event{Kind: EventIdentity, From: Authenticated, To: Authenticated, Snapshot: snap})
	return true
}

// SetTenantScope selects an organization, or clears it with "".
// It works in every state.
func (s *Store) SetTenantScope(id string) {
	s.mu.Lock()
	from := s.state
	to, err := next(from, evSetScope)
	if err != nil || s.scope == id {
		s.mu.Unlock()
		return
	}
	s.scope = id
	s.persistScope()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Debug("tenant scope changed", logger.TenantScope(id))
	s.emit(Event{Kind: EventTenantScope, From: from, To: to, Snapshot: snap})
}

// BeginAuthentication marks a credential request as in flight.
func (s *Store) BeginAuthentication() error {
	s.mu.Lock()
	from := s.state
	to, err := next(from, evBegin)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = to
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(Event{Kind: EventAuthenticating, From: from, To: to, Snapshot: snap})
	return nil
}

// FailAuthentication returns an in-flight authentication to Anonymous.
// Outside Authenticating it does nothing.
func (s *Store) FailAuthentication() {
	s.mu.Lock()
	from := s.state
	to, err := next(from, evFail)
	if err != nil {
		s.mu.Unlock()
		return
	}
	s.state = to
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(Event{Kind: EventAuthFailed, From: from, To: to, Snapshot: snap})
}

// Restore loads the persisted session. It runs once; later calls return
// the current snapshot. The result is Authenticated only when a credential
// and a well-formed identity are both present; anything partial or corrupt
// is purged. Tenant scope is restored on its own.
func (s *Store) Restore() Session {
	s.mu.Lock()
	if s.restored {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	s.restored = true
	from := s.state

	if scope, ok := s.read(storage.KeyTenantScope); ok && s.scope == "" {
		s.scope = scope
	}

	if from == Anonymous {
		s.restoreAuthLocked()
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if snap.State != from {
		s.logger.Info("session restored", logger.UserID(snap.Identity.ID), logger.TenantScope(snap.TenantScope))
	}
	s.emit(Event{Kind: EventRestored, From: from, To: snap.State, Snapshot: snap})
	return snap
}

func (s *Store) restoreAuthLocked() {
	token, hasToken := s.read(storage.KeyCredential)
	raw, hasIdentity := s.read(storage.KeyIdentity)
	if !hasToken && !hasIdentity {
		return
	}

	identity, ok := decodeIdentity(raw)
	if !hasToken || token == "" || !hasIdentity || !ok {
		s.logger.Warn("persisted session incomplete or corrupt, discarding",
			slog.Bool("has_credential", hasToken && token != ""),
			slog.Bool("identity_valid", ok))
		s.clearAuth()
		return
	}

	cred := Credential{Value: token}
	if at, ok := s.read(storage.KeyCredentialAcquiredAt); ok {
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			cred.AcquiredAt = t
		}
	}

	s.state = Authenticated
	s.credential = &cred
	s.identity = &identity
	s.generation++
}

// Subscribe registers fn for every subsequent event and returns a func that
// removes it.
func (s *Store) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	s.lmu.Lock()
	id := s.nextListenerID()
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.lmu.Lock()
			defer s.lmu.Unlock()
			for i, l := range s.listeners {
				if l.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) nextListenerID() uint64 {
	s.lastID++
	return s.lastID
}

func (s *Store) emit(ev Event) {
	s.lmu.Lock()
	ls := make([]subscription, len(s.listeners))
	copy(ls, s.listeners)
	s.lmu.Unlock()

	for _, l := range ls {
		s.notify(l.fn, ev)
	}
}

func (s *Store) notify(fn Listener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("session listener panicked", slog.Any("panic", r), logger.Event(string(ev.Kind)))
		}
	}()
	fn(ev)
}

// endLocked moves to Anonymous and clears persistence. Caller holds mu.
func (s *Store) endLocked(ev event) (bool, State) {
	from := s.state
	if from == Anonymous {
		return false, from
	}
	to, err := next(from, ev)
	if err != nil {
		return false, from
	}
	s.state = to
	s.credential = nil
	s.identity = nil
	s.scope = ""
	s.generation++
	s.clearAuth()
	s.remove(storage.KeyTenantScope)
	return true, from
}

func (s *Store) snapshotLocked() Session {
	return Session{
		State:       s.state,
		Credential:  s.credential,
		Identity:    s.identity,
		TenantScope: s.scope,
		Generation:  s.generation,
	}.clone()
}

func (s *Store) persistAuth() {
	s.write(storage.KeyCredential, s.credential.Value)
	s.write(storage.KeyCredentialAcquiredAt, s.credential.AcquiredAt.UTC().Format(time.RFC3339Nano))
	s.persistIdentity()
}

func (s *Store) persistIdentity() {
	raw, err := encodeIdentity(*s.identity)
	if err != nil {
		s.logger.Warn("identity not persisted", logger.Error(err))
		return
	}
	s.write(storage.KeyIdentity, raw)
}

func (s *Store) persistScope() {
	if s.scope == "" {
		s.remove(storage.KeyTenantScope)
		return
	}
	s.write(storage.KeyTenantScope, s.scope)
}

func (s *Store) clearAuth() {
	s.remove(storage.KeyCredential)
	s.remove(storage.KeyCredentialAcquiredAt)
	s.remove(storage.KeyIdentity)
}

// read, write and remove shield the store from adapters that break the
// no-panic contract.
func (s *Store) read(key string) (v string, ok bool) {
	defer s.recoverAdapter("read", key)
	return s.adapter.Read(key)
}

func (s *Store) write(key, value string) {
	defer s.recoverAdapter("write", key)
	s.adapter.Write(key, value)
}

func (s *Store) remove(key string) {
	defer s.recoverAdapter("remove", key)
	s.adapter.Remove(key)
}

func (s *Store) recoverAdapter(op, key string) {
	if r := recover(); r != nil {
		s.logger.Error("storage adapter panicked",
			slog.String("op", op),
			slog.String("key", key),
			slog.Any("panic", r))
	}
}
