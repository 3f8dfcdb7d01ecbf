package repository

import (
	"context"
	"sync"

	"todo_service/internal/models"

	"github.com/cespare/xxhash/v2"
)

// DefaultShards is used when a non-positive shard count is requested.
const DefaultShards = 32

type userShard struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

// ShardedUserStore keeps users in memory, split across independently locked
// shards. A username always maps to the same shard, so per-key operations are
// serialized while distinct keys mostly proceed in parallel. With one shard it
// degenerates to a single global lock.
type ShardedUserStore struct {
	shards []*userShard
}

var _ UserStore = (*ShardedUserStore)(nil)

func NewShardedUserStore(shards int) *ShardedUserStore {
	if shards <= 0 {
		shards = DefaultShards
	}
	s := &ShardedUserStore{shards: make([]*userShard, shards)}
	for i := range s.shards {
		s.shards[i] = &userShard{users: make(map[string]*models.User)}
	}
	return s
}

func (s *ShardedUserStore) shardFor(username string) *userShard {
	return s.shards[xxhash.Sum64String(username)%uint64(len(s.shards))]
}

// Register inserts a user with an empty todo list unless the name is taken.
func (s *ShardedUserStore) Register(_ context.Context, username, passwordHash string) error {
	sh := s.shardFor(username)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, ok := sh.users[username]; ok {
		return ErrAlreadyExists
	}
	sh.users[username] = &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Todos:        make(map[int64]models.TodoItem),
	}
	return nil
}

// Get returns a snapshot; mutating it does not affect the store.
func (s *ShardedUserStore) Get(_ context.Context, username string) (models.User, error) {
	sh := s.shardFor(username)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	u, ok := sh.users[username]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u.Clone(), nil
}

// UpsertTodo inserts item or replaces the entry with the same id.
func (s *ShardedUserStore) UpsertTodo(_ context.Context, username string, item models.TodoItem) error {
	sh := s.shardFor(username)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	u, ok := sh.users[username]
	if !ok {
		return ErrNotFound
	}
	u.Todos[item.ID] = item
	return nil
}
