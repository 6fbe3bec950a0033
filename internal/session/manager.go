package session

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tasker-hq/tasker-go/internal/token"
	"github.com/tasker-hq/tasker-go/internal/tokenstore"
)

// State is the read model consumers render from. It is a value snapshot;
// mutate nothing, re-read instead.
type State struct {
	Roles           []string
	UserID          int64
	Email           string
	Username        string
	FullName        string
	IsAdmin         bool
	IsManager       bool
	IsLoading       bool
	IsAuthenticated bool
}

// Manager derives the current authentication state from the token store and
// keeps it in sync with every store change, local or cross-process. It never
// mutates tokens itself except to drop ones that are expired or undecodable.
type Manager struct {
	store  tokenstore.Store
	codec  *token.Codec
	logger *zap.Logger
	clock  func() time.Time

	mu          sync.RWMutex
	state       State
	subscribers map[int]func(State)
	nextSubID   int
	unsubscribe func()
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock overrides the wall clock used for expiry checks.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) { m.clock = clock }
}

// NewManager builds a manager in the Loading state. Call Start to perform
// the initial resolution and begin tracking store changes.
func NewManager(store tokenstore.Store, codec *token.Codec, logger *zap.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		store:       store,
		codec:       codec,
		logger:      logger,
		clock:       time.Now,
		state:       State{IsLoading: true},
		subscribers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start resolves the initial state and subscribes to store changes.
func (m *Manager) Start() {
	m.unsubscribe = m.store.Subscribe(m.Resolve)
	m.Resolve()
}

// Stop detaches the manager from the store.
func (m *Manager) Stop() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Snapshot returns the current state.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Subscribe registers fn to receive every state change and returns the
// matching unsubscribe function. fn runs outside the manager's lock.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}
}

// Resolve re-derives the full state from the store. It runs once per store
// notification and is safe to call repeatedly: no deltas are applied, so a
// duplicate pass for the same mutation lands on the same state.
func (m *Manager) Resolve() {
	next := State{}

	if tok := m.store.AccessToken(); tok != "" {
		claims := m.codec.Decode(tok)
		switch {
		case claims == nil:
			m.logger.Debug("stored token is not decodable; dropping session")
			m.store.ClearAccessToken()
		case claims.Expired(m.clock()):
			m.logger.Debug("stored token is expired; dropping session")
			m.store.ClearAccessToken()
		default:
			roles := token.Roles(claims)
			next = State{
				Roles:           roles,
				UserID:          claims.UserID,
				Email:           claims.Email,
				Username:        claims.Username,
				FullName:        claims.FullName,
				IsAdmin:         token.IsAdmin(roles),
				IsManager:       token.IsManager(roles),
				IsAuthenticated: true,
			}
		}
	}

	m.mu.Lock()
	m.state = next
	fns := make([]func(State), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
}
