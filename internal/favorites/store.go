// Package favorites tracks liked product and artisan ids per session.
// Guests get favorites too; nothing here requires authentication.
package favorites

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
)

type Kind string

const (
	KindProduct Kind = "product"
	KindArtisan Kind = "artisan"
)

func (k Kind) Valid() bool {
	return k == KindProduct || k == KindArtisan
}

type Store interface {
	// Toggle flips the favorite and reports the new state.
	Toggle(ctx context.Context, sessionID string, kind Kind, id int64) (bool, error)
	List(ctx context.Context, sessionID string, kind Kind) ([]int64, error)
	IsFavorite(ctx context.Context, sessionID string, kind Kind, id int64) (bool, error)
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Toggle(ctx context.Context, sessionID string, kind Kind, id int64) (bool, error) {
	key := favoritesKey(sessionID, kind)
	member := strconv.FormatInt(id, 10)

	liked, err := s.client.SIsMember(ctx, key, member).Result()
	if err != nil {
		return false, fmt.Errorf("redis sismember failed: %w", err)
	}

	if liked {
		if err := s.client.SRem(ctx, key, member).Err(); err != nil {
			return false, fmt.Errorf("redis srem failed: %w", err)
		}
		return false, nil
	}
	if err := s.client.SAdd(ctx, key, member).Err(); err != nil {
		return false, fmt.Errorf("redis sadd failed: %w", err)
	}
	return true, nil
}

func (s *RedisStore) List(ctx context.Context, sessionID string, kind Kind) ([]int64, error) {
	members, err := s.client.SMembers(ctx, favoritesKey(sessionID, kind)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers failed: %w", err)
	}

	ids := make([]int64, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue // skip malformed members rather than failing the list
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *RedisStore) IsFavorite(ctx context.Context, sessionID string, kind Kind, id int64) (bool, error) {
	liked, err := s.client.SIsMember(ctx, favoritesKey(sessionID, kind), strconv.FormatInt(id, 10)).Result()
	if err != nil {
		return false, fmt.Errorf("redis sismember failed: %w", err)
	}
	return liked, nil
}

func favoritesKey(sessionID string, kind Kind) string {
	return fmt.Sprintf("favorites:%s:%s", kind, sessionID)
}

// MemoryStore is an in-process fallback used when redis is not configured.
type MemoryStore struct {
	mu   sync.Mutex
	sets map[string]map[int64]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[string]map[int64]struct{})}
}

func (s *MemoryStore) Toggle(_ context.Context, sessionID string, kind Kind, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := favoritesKey(sessionID, kind)
	set, ok := s.sets[key]
	if !ok {
		set = make(map[int64]struct{})
		s.sets[key] = set
	}
	if _, liked := set[id]; liked {
		delete(set, id)
		return false, nil
	}
	set[id] = struct{}{}
	return true, nil
}

func (s *MemoryStore) List(_ context.Context, sessionID string, kind Kind) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.sets[favoritesKey(sessionID, kind)]
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *MemoryStore) IsFavorite(_ context.Context, sessionID string, kind Kind, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.sets[favoritesKey(sessionID, kind)]
	_, liked := set[id]
	return liked, nil
}
