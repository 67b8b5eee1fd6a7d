package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrDraftNotFound = errors.New("draft not found")

// DraftStore keeps in-flight wizard machines keyed by their session id.
// Drafts live in redis with a TTL when configured, otherwise in an
// in-process map. Either way they expire; there is no save-and-resume
// beyond the in-flight session.
type DraftStore struct {
	redis *redis.Client
	ttl   time.Duration

	mu  sync.Mutex
	mem map[string]memDraft
}

type memDraft struct {
	data      []byte
	expiresAt time.Time
}

func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{
		redis: client,
		ttl:   ttl,
		mem:   map[string]memDraft{},
	}
}

func (s *DraftStore) Save(ctx context.Context, m *Machine) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if s.redis != nil {
		return s.redis.Set(ctx, draftKey(m.ID), data, s.ttl).Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem[m.ID] = memDraft{data: data, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *DraftStore) Load(ctx context.Context, id string) (*Machine, error) {
	var data []byte
	if s.redis != nil {
		raw, err := s.redis.Get(ctx, draftKey(id)).Bytes()
		if err == redis.Nil {
			return nil, ErrDraftNotFound
		}
		if err != nil {
			return nil, err
		}
		data = raw
	} else {
		s.mu.Lock()
		entry, ok := s.mem[id]
		if ok && time.Now().After(entry.expiresAt) {
			delete(s.mem, id)
			ok = false
		}
		s.mu.Unlock()
		if !ok {
			return nil, ErrDraftNotFound
		}
		data = entry.data
	}

	var m Machine
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Errors == nil {
		m.Errors = map[string]string{}
	}
	return &m, nil
}

func (s *DraftStore) Delete(ctx context.Context, id string) error {
	if s.redis != nil {
		return s.redis.Del(ctx, draftKey(id)).Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.mem, id)
	return nil
}

func draftKey(id string) string {
	return "admission:draft:" + id
}
