package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DeletionTTL is how long a deletion request stays confirmable. Letting it
// lapse is the cancellation path: nothing is deleted.
const DeletionTTL = 2 * time.Minute

type pendingDeletion struct {
	key       string
	expiresAt time.Time
}

// DeletionRequests tracks the two-phase delete protocol: requesting a
// deletion issues a single-use token, and only a confirmation carrying that
// token actually removes the record. The map is guarded because handlers
// run concurrently under the HTTP server.
type DeletionRequests struct {
	mu      sync.Mutex
	now     func() time.Time
	pending map[string]pendingDeletion
}

func NewDeletionRequests() *DeletionRequests {
	return &DeletionRequests{
		now:     time.Now,
		pending: make(map[string]pendingDeletion),
	}
}

// Issue registers a deletion request for the given storage key and returns
// the confirmation token with its expiry.
func (d *DeletionRequests) Issue(key string) (string, time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.sweepLocked()

	token := uuid.NewString()
	expiresAt := d.now().Add(DeletionTTL)
	d.pending[token] = pendingDeletion{key: key, expiresAt: expiresAt}

	return token, expiresAt
}

// Confirm consumes the token if it matches the key and has not expired.
// A failed confirmation leaves the pending request untouched only when the
// token was never issued; a consumed or expired token is gone either way.
func (d *DeletionRequests) Confirm(key, token string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.pending[token]
	if !ok {
		return ErrDeletionNotPending
	}

	delete(d.pending, token)

	if p.key != key || d.now().After(p.expiresAt) {
		return ErrDeletionNotPending
	}

	return nil
}

func (d *DeletionRequests) sweepLocked() {
	now := d.now()
	for token, p := range d.pending {
		if now.After(p.expiresAt) {
			delete(d.pending, token)
		}
	}
}
