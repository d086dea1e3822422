package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/lk16/flippy/reversi/internal/game"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix  = "session:"
	maxUpdateAttempts = 5
)

var (
	// ErrNotFound is returned for unknown or expired sessions.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a session kept changing during an update.
	ErrConflict = errors.New("conflict")
)

// SessionStore keeps game sessions between requests.
type SessionStore interface {
	// Create stores a new session and returns its ID.
	Create(ctx context.Context, session *game.Session) (string, error)

	// Get loads a session.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Update loads a session, calls fn and stores the result. Nothing is stored if fn fails.
	// Updates of the same session are serialised.
	Update(ctx context.Context, id string, fn func(*game.Session) error) (*game.Session, error)
}

func encodeSession(session *game.Session) ([]byte, error) {
	data, err := sonic.Marshal(session.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("error marshaling session: %w", err)
	}
	return data, nil
}

func decodeSession(data []byte) (*game.Session, error) {
	var snapshot game.Snapshot
	if err := sonic.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("error unmarshaling session: %w", err)
	}

	session, err := game.Restore(snapshot)
	if err != nil {
		return nil, fmt.Errorf("error restoring session: %w", err)
	}

	return session, nil
}

// RedisSessionStore stores sessions as JSON snapshots in Redis.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a RedisSessionStore. Sessions expire ttl after their last update.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Create stores a new session.
func (s *RedisSessionStore) Create(ctx context.Context, session *game.Session) (string, error) {
	id := uuid.New().String()

	data, err := encodeSession(session)
	if err != nil {
		return "", err
	}

	if err = s.client.Set(ctx, sessionKey(id), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("error storing session: %w", err)
	}

	return id, nil
}

// Get loads a session.
func (s *RedisSessionStore) Get(ctx context.Context, id string) (*game.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("error getting session: %w", err)
	}

	return decodeSession(data)
}

// Update uses WATCH so concurrent updates of one session never overwrite each other.
func (s *RedisSessionStore) Update(
	ctx context.Context,
	id string,
	fn func(*game.Session) error,
) (*game.Session, error) {
	key := sessionKey(id)

	for range maxUpdateAttempts {
		var updated *game.Session

		txf := func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					return fmt.Errorf("session %s: %w", id, ErrNotFound)
				}
				return fmt.Errorf("error getting session: %w", err)
			}

			session, err := decodeSession(data)
			if err != nil {
				return err
			}

			if err = fn(session); err != nil {
				return err
			}

			data, err = encodeSession(session)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, data, s.ttl)
				return nil
			})
			if err != nil {
				return err
			}

			updated = session
			return nil
		}

		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}

		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("session %s: %w", id, ErrConflict)
}

// MemorySessionStore keeps sessions in process memory.
type MemorySessionStore struct {
	// data stores snapshots, so callers never share a session
	data map[string]memoryEntry

	// dataMutex protects data
	dataMutex sync.Mutex

	ttl time.Duration
	now func() time.Time
}

type memoryEntry struct {
	snapshot game.Snapshot
	expires  time.Time
}

// NewMemorySessionStore creates a MemorySessionStore. A ttl of zero disables expiry.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		data: make(map[string]memoryEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Create stores a new session.
func (s *MemorySessionStore) Create(_ context.Context, session *game.Session) (string, error) {
	id := uuid.New().String()

	s.dataMutex.Lock()
	defer s.dataMutex.Unlock()

	s.sweep()
	s.put(id, session)
	return id, nil
}

// Get loads a session.
func (s *MemorySessionStore) Get(_ context.Context, id string) (*game.Session, error) {
	s.dataMutex.Lock()
	defer s.dataMutex.Unlock()

	return s.lookup(id)
}

// Update holds the store lock while fn runs.
func (s *MemorySessionStore) Update(
	_ context.Context,
	id string,
	fn func(*game.Session) error,
) (*game.Session, error) {
	s.dataMutex.Lock()
	defer s.dataMutex.Unlock()

	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	if err = fn(session); err != nil {
		return nil, err
	}

	s.put(id, session)
	return session, nil
}

// Len returns the number of stored sessions. Expired sessions are counted until the next Create.
func (s *MemorySessionStore) Len() int {
	s.dataMutex.Lock()
	defer s.dataMutex.Unlock()

	return len(s.data)
}

// lookup assumes dataMutex is locked.
func (s *MemorySessionStore) lookup(id string) (*game.Session, error) {
	entry, ok := s.data[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}

	if s.ttl > 0 && s.now().After(entry.expires) {
		delete(s.data, id)
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}

	session, err := game.Restore(entry.snapshot)
	if err != nil {
		return nil, fmt.Errorf("error restoring session: %w", err)
	}

	return session, nil
}

// sweep removes expired sessions. It assumes dataMutex is locked.
func (s *MemorySessionStore) sweep() {
	if s.ttl <= 0 {
		return
	}

	now := s.now()
	for id, entry := range s.data {
		if now.After(entry.expires) {
			delete(s.data, id)
		}
	}
}

// put assumes dataMutex is locked.
func (s *MemorySessionStore) put(id string, session *game.Session) {
	s.data[id] = memoryEntry{
		snapshot: session.Snapshot(),
		expires:  s.now().Add(s.ttl),
	}
}
