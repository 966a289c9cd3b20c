package sync

import (
	"context"
	"sync"
	"time"

	"github.com/yunhang/cloudnav/internal/api"
	"github.com/yunhang/cloudnav/internal/models"
	"github.com/yunhang/cloudnav/internal/store"
)

// Status is the process-wide sync indicator. Transient, never persisted.
type Status string

const (
	StatusIdle   Status = "idle"
	StatusSaving Status = "saving"
	StatusSaved  Status = "saved"
	StatusError  Status = "error"
)

// Event is delivered to the notify callback on every status transition.
// AuthRequired marks the 401 path, which needs credential re-entry rather
// than a plain retry.
type Event struct {
	Status       Status
	Err          error
	AuthRequired bool
}

// Controller makes every mutation durable locally and attempts to make it
// durable remotely without blocking the caller. Local state is authoritative
// for the session: a failed push never rolls anything back. No queue is kept;
// the next mutation naturally re-pushes the latest snapshot.
type Controller struct {
	store   *store.Store
	remote  *api.Client
	session *Session
	notify  func(Event)

	// SavedRevert is how long the "saved" state is shown before reverting
	// to idle.
	SavedRevert time.Duration

	mu          sync.Mutex
	status      Status
	revertTimer *time.Timer
	inflight    sync.WaitGroup
}

func NewController(st *store.Store, remote *api.Client, session *Session, notify func(Event)) *Controller {
	if notify == nil {
		notify = func(Event) {}
	}
	return &Controller{
		store:       st,
		remote:      remote,
		session:     session,
		notify:      notify,
		SavedRevert: 2 * time.Second,
		status:      StatusIdle,
	}
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// ApplyUpdate takes complete replacement snapshots, writes them to the local
// cache synchronously, and fires a remote push when a token is present. The
// returned error covers only the cache write; push outcomes arrive via the
// notify callback.
func (c *Controller) ApplyUpdate(links []models.LinkItem, categories []models.Category) error {
	snap := &models.Snapshot{Links: links, Categories: categories}

	if err := c.store.SaveSnapshot(snap); err != nil {
		return err
	}

	token := c.session.Token()
	if token == "" || !c.remote.IsConfigured() {
		return nil
	}

	c.setStatus(StatusSaving, nil, false)
	c.inflight.Add(1)
	go func(snap *models.Snapshot, token string) {
		defer c.inflight.Done()
		c.push(snap, token)
	}(snap.Clone(), token)

	return nil
}

// Wait blocks until all in-flight pushes resolve. Used on shutdown so the
// last mutation reaches the remote store.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) push(snap *models.Snapshot, token string) {
	err := c.remote.PushSnapshot(context.Background(), snap, token)
	switch {
	case err == nil:
		c.setStatus(StatusSaved, nil, false)
		c.scheduleRevert()
	case err == api.ErrUnauthorized:
		c.session.Invalidate()
		c.setStatus(StatusError, err, true)
	default:
		c.setStatus(StatusError, err, false)
	}
}

func (c *Controller) setStatus(status Status, err error, authRequired bool) {
	c.mu.Lock()
	if c.revertTimer != nil {
		c.revertTimer.Stop()
		c.revertTimer = nil
	}
	c.status = status
	c.mu.Unlock()

	c.notify(Event{Status: status, Err: err, AuthRequired: authRequired})
}

// scheduleRevert flips saved back to idle after the display delay, unless a
// newer push changed the status in the meantime.
func (c *Controller) scheduleRevert() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.revertTimer = time.AfterFunc(c.SavedRevert, func() {
		c.mu.Lock()
		if c.status != StatusSaved {
			c.mu.Unlock()
			return
		}
		c.status = StatusIdle
		c.mu.Unlock()

		c.notify(Event{Status: StatusIdle})
	})
}
