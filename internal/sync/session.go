package sync

import (
	"context"
	"sync"

	"github.com/yunhang/cloudnav/internal/api"
	"github.com/yunhang/cloudnav/internal/models"
	"github.com/yunhang/cloudnav/internal/store"
)

// Session holds the write credential for the remote store. The token lives in
// memory and is mirrored to the local cache so it survives restarts. It is
// passed explicitly to the controller rather than kept as package state.
type Session struct {
	mu     sync.Mutex
	token  string
	store  *store.Store
	remote *api.Client
}

func NewSession(st *store.Store, remote *api.Client) *Session {
	return &Session{
		token:  st.Token(),
		store:  st,
		remote: remote,
	}
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Login sends the candidate token bundled with the current snapshot, so a
// first login also performs the initial push. The token is only persisted
// once the remote store accepts it.
func (s *Session) Login(ctx context.Context, password string, snap *models.Snapshot) error {
	if err := s.remote.PushSnapshot(ctx, snap, password); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = password
	s.mu.Unlock()

	return s.store.SaveToken(password)
}

// Invalidate clears the token from memory and persistent storage. Called when
// a push comes back 401; the user has to re-authenticate.
func (s *Session) Invalidate() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	s.store.ClearToken()
}
