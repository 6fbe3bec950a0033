package tokenstore

// DisabledStore is the store used where no credential storage is available
// or wanted (CI, scripted one-off calls). Reads always report no token and
// writes are dropped, mirroring how a non-interactive rendering context
// treats browser storage: absent, not an error.
type DisabledStore struct{}

// NewDisabledStore returns the always-empty store.
func NewDisabledStore() DisabledStore { return DisabledStore{} }

func (DisabledStore) AccessToken() string        { return "" }
func (DisabledStore) SetAccessToken(string)      {}
func (DisabledStore) ClearAccessToken()          {}
func (DisabledStore) RefreshToken() string       { return "" }
func (DisabledStore) SetRefreshToken(string)     {}
func (DisabledStore) ClearRefreshToken()         {}
func (DisabledStore) Subscribe(func()) func()    { return func() {} }
