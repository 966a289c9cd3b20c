package sync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunhang/cloudnav/internal/api"
	"github.com/yunhang/cloudnav/internal/models"
	"github.com/yunhang/cloudnav/internal/store"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func collectEvents() (func(Event), chan Event) {
	ch := make(chan Event, 32)
	return func(e Event) { ch <- e }, ch
}

func awaitStatus(t *testing.T, ch chan Event, want Status) Event {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case e := <-ch:
			if e.Status == want {
				return e
			}
		case <-deadline:
			t.Fatalf("timed out waiting for status %q", want)
		}
	}
}

func TestApplyUpdateWritesCacheWithoutToken(t *testing.T) {
	st := testStore(t)
	remote := api.NewClient("")
	session := NewSession(st, remote)
	notify, events := collectEvents()
	c := NewController(st, remote, session, notify)

	links := []models.LinkItem{{ID: "1", Title: "a", URL: "https://a"}}
	cats := []models.Category{{ID: "common", Name: "常用"}}
	require.NoError(t, c.ApplyUpdate(links, cats))

	got, err := st.LoadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, links, got.Links)

	// No token, no remote configured: no push, no status traffic.
	assert.Equal(t, StatusIdle, c.Status())
	assert.Empty(t, events)
}

func TestOptimisticWriteOrdering(t *testing.T) {
	// A slow remote must not affect what lands in the local cache: the last
	// ApplyUpdate wins there regardless of push latency or outcome.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	st := testStore(t)
	remote := api.NewClient(srv.URL)
	session := NewSession(st, remote)
	require.NoError(t, session.Login(context.Background(), "pw", &models.Snapshot{}))

	notify, _ := collectEvents()
	c := NewController(st, remote, session, notify)

	l1 := []models.LinkItem{{ID: "1", Title: "first", URL: "https://1"}}
	l2 := []models.LinkItem{{ID: "2", Title: "second", URL: "https://2"}}
	cats := []models.Category{{ID: "common", Name: "常用"}}

	require.NoError(t, c.ApplyUpdate(l1, cats))
	require.NoError(t, c.ApplyUpdate(l2, cats))

	got, err := st.LoadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, l2, got.Links)

	c.Wait()

	got, err = st.LoadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, l2, got.Links)
}

func TestPushSuccessTransitionsSavingSavedIdle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	st := testStore(t)
	remote := api.NewClient(srv.URL)
	session := NewSession(st, remote)
	require.NoError(t, session.Login(context.Background(), "pw", &models.Snapshot{}))

	notify, events := collectEvents()
	c := NewController(st, remote, session, notify)
	c.SavedRevert = 10 * time.Millisecond

	require.NoError(t, c.ApplyUpdate(nil, []models.Category{{ID: "common", Name: "常用"}}))

	awaitStatus(t, events, StatusSaving)
	awaitStatus(t, events, StatusSaved)
	awaitStatus(t, events, StatusIdle)
}

func TestPushFailureIsStickyAndKeepsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	st := testStore(t)
	remote := api.NewClient(srv.URL)
	st.SaveToken("pw")
	session := NewSession(st, remote)

	notify, events := collectEvents()
	c := NewController(st, remote, session, notify)

	require.NoError(t, c.ApplyUpdate(nil, []models.Category{{ID: "common", Name: "常用"}}))

	e := awaitStatus(t, events, StatusError)
	assert.False(t, e.AuthRequired)
	assert.Error(t, e.Err)

	// Generic failure does not invalidate the credential.
	assert.True(t, session.Authenticated())
	assert.Equal(t, StatusError, c.Status())
}

func Test401ClearsTokenAndStopsPushing(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	st := testStore(t)
	remote := api.NewClient(srv.URL)
	st.SaveToken("expired")
	session := NewSession(st, remote)

	notify, events := collectEvents()
	c := NewController(st, remote, session, notify)

	cats := []models.Category{{ID: "common", Name: "常用"}}
	require.NoError(t, c.ApplyUpdate(nil, cats))

	e := awaitStatus(t, events, StatusError)
	assert.True(t, e.AuthRequired)
	assert.ErrorIs(t, e.Err, api.ErrUnauthorized)

	// Token cleared from memory and persistent storage.
	assert.False(t, session.Authenticated())
	assert.Empty(t, st.Token())

	// Subsequent updates stay local until a new login succeeds.
	before := requests.Load()
	require.NoError(t, c.ApplyUpdate(nil, cats))
	c.Wait()
	assert.Equal(t, before, requests.Load())
}

func TestLoginPersistsTokenOnlyOnSuccess(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusUnauthorized)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	st := testStore(t)
	remote := api.NewClient(srv.URL)
	session := NewSession(st, remote)

	err := session.Login(context.Background(), "pw", &models.Snapshot{})
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.False(t, session.Authenticated())
	assert.Empty(t, st.Token())

	status.Store(http.StatusOK)
	require.NoError(t, session.Login(context.Background(), "pw", &models.Snapshot{}))
	assert.True(t, session.Authenticated())
	assert.Equal(t, "pw", st.Token())
}
