package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Conversations are short-lived; abandoned ones expire on their own.
const stateTTL = 24 * time.Hour

// RedisStateStore persists conversation state as JSON blobs with a TTL.
type RedisStateStore struct {
	client *redis.Client
}

// NewRedisStateStore creates a redis-backed state store.
func NewRedisStateStore(client *redis.Client) *RedisStateStore {
	if client == nil {
		panic("conversation: redis client cannot be nil")
	}
	return &RedisStateStore{client: client}
}

func stateKey(conversationID string) string {
	return fmt.Sprintf("conversation:%s", conversationID)
}

// Load fetches and decodes the stored state.
func (s *RedisStateStore) Load(ctx context.Context, conversationID string) (*State, error) {
	data, err := s.client.Get(ctx, stateKey(conversationID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("conversation: failed to load state: %w", err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("conversation: failed to decode state: %w", err)
	}
	return &st, nil
}

// Save encodes and persists the state, refreshing its TTL.
func (s *RedisStateStore) Save(ctx context.Context, conversationID string, st *State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("conversation: failed to marshal state: %w", err)
	}
	if err := s.client.Set(ctx, stateKey(conversationID), data, stateTTL).Err(); err != nil {
		return fmt.Errorf("conversation: failed to persist state: %w", err)
	}
	return nil
}

// Delete removes the conversation.
func (s *RedisStateStore) Delete(ctx context.Context, conversationID string) error {
	if err := s.client.Del(ctx, stateKey(conversationID)).Err(); err != nil {
		return fmt.Errorf("conversation: failed to delete state: %w", err)
	}
	return nil
}

var _ StateStore = (*RedisStateStore)(nil)
