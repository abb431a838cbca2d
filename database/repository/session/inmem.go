// File: skybook/database/repository/session/inmem.go
package sessionRepo

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"skybook/models"
)

// InMemorySessionRepo is a map-backed Repository with the same conflict and
// expiry semantics as the Redis implementation. Used by tests and by local
// development without a Redis instance.
type InMemorySessionRepo struct {
	mu   sync.Mutex
	ttl  time.Duration
	docs map[string]inmemDoc
}

type inmemDoc struct {
	payload   []byte
	version   int64
	expiresAt time.Time
}

func NewInMemorySessionRepo(ttl time.Duration) *InMemorySessionRepo {
	return &InMemorySessionRepo{ttl: ttl, docs: make(map[string]inmemDoc)}
}

func (r *InMemorySessionRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok || time.Now().After(doc.expiresAt) {
		delete(r.docs, id)
		return nil, ErrNotFound
	}
	var sess models.Session
	if err := json.Unmarshal(doc.payload, &sess); err != nil {
		delete(r.docs, id)
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (r *InMemorySessionRepo) Save(ctx context.Context, sess *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, exists := r.docs[sess.ID]
	if exists && time.Now().After(doc.expiresAt) {
		delete(r.docs, sess.ID)
		exists = false
	}
	if exists {
		if doc.version != sess.Version {
			return ErrConflict
		}
	} else if sess.Version != 0 {
		return ErrConflict
	}

	next := sess.Version + 1
	sess.Version = next
	payload, err := json.Marshal(sess)
	if err != nil {
		sess.Version = next - 1
		return err
	}
	r.docs[sess.ID] = inmemDoc{
		payload:   payload,
		version:   next,
		expiresAt: time.Now().Add(r.ttl),
	}
	return nil
}

func (r *InMemorySessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, id)
	return nil
}
