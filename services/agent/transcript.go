// File: services/agent/transcript.go
package agent

import (
	"context"
	"encoding/json"
	"time"

	"hebelki/utils"

	"github.com/go-redis/redis/v8"
)

// maxTranscriptEntries bounds how much history a conversation replays into
// the model. Older turns fall off the front.
const maxTranscriptEntries = 40

// TranscriptEntry is one conversation turn. Role is "user" or "model".
type TranscriptEntry struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// TranscriptStore persists the rolling conversation history that seeds each
// new model turn.
type TranscriptStore interface {
	Load(ctx context.Context, businessID, conversationID string) ([]TranscriptEntry, error)
	Append(ctx context.Context, businessID, conversationID string, entries ...TranscriptEntry) error
	Clear(ctx context.Context, businessID, conversationID string) error
}

// RedisTranscriptStore keeps transcripts in the cache Redis next to the
// intent state, under the same conversation TTL.
type RedisTranscriptStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTranscriptStore builds a store on the shared cache client.
func NewRedisTranscriptStore() *RedisTranscriptStore {
	return &RedisTranscriptStore{client: utils.GetCacheClient(), ttl: utils.ConversationTTL}
}

func transcriptKey(businessID, conversationID string) string {
	return utils.TranscriptPrefix + businessID + ":" + conversationID
}

func (s *RedisTranscriptStore) Load(ctx context.Context, businessID, conversationID string) ([]TranscriptEntry, error) {
	data, err := s.client.Get(ctx, transcriptKey(businessID, conversationID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []TranscriptEntry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *RedisTranscriptStore) Append(ctx context.Context, businessID, conversationID string, entries ...TranscriptEntry) error {
	existing, err := s.Load(ctx, businessID, conversationID)
	if err != nil {
		return err
	}
	merged := append(existing, entries...)
	if len(merged) > maxTranscriptEntries {
		merged = merged[len(merged)-maxTranscriptEntries:]
	}
	b, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, transcriptKey(businessID, conversationID), b, s.ttl).Err()
}

func (s *RedisTranscriptStore) Clear(ctx context.Context, businessID, conversationID string) error {
	return s.client.Del(ctx, transcriptKey(businessID, conversationID)).Err()
}
