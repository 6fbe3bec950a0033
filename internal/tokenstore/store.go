package tokenstore

import "sync"

// Storage keys shared by every persistent backend. Absence of a key means
// "no token".
const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

// Store holds the access/refresh token pair and notifies subscribers on any
// mutation. An empty string means no token is stored. Subscribers cannot
// tell which slot changed; they are expected to re-derive state in full.
type Store interface {
	AccessToken() string
	SetAccessToken(token string)
	// ClearAccessToken removes both the access and the refresh token.
	ClearAccessToken()

	RefreshToken() string
	SetRefreshToken(token string)
	ClearRefreshToken()

	// Subscribe registers fn to run after every mutation and returns the
	// matching unsubscribe function. fn must be safe to call from other
	// goroutines for backends with a cross-process change signal.
	Subscribe(fn func()) (unsubscribe func())
}

// notifier fans one change signal out to the in-process subscriber list.
type notifier struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]func()
}

func newNotifier() *notifier {
	return &notifier{listeners: make(map[int]func())}
}

func (n *notifier) subscribe(fn func()) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.listeners, id)
		n.mu.Unlock()
	}
}

func (n *notifier) publish() {
	n.mu.RLock()
	fns := make([]func(), 0, len(n.listeners))
	for _, fn := range n.listeners {
		fns = append(fns, fn)
	}
	n.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
