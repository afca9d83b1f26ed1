// File: services/agent/intent.go
package agent

import (
	"context"
	"encoding/json"
	"time"

	"hebelki/models"
	"hebelki/utils"

	"github.com/go-redis/redis/v8"
)

// IntentStore persists the advisory booking-flow state of a conversation.
// A lost or stale entry costs nothing but a slightly less primed next turn.
type IntentStore interface {
	Get(ctx context.Context, businessID, conversationID string) (*models.ConversationIntent, error)
	Set(ctx context.Context, businessID, conversationID string, intent *models.ConversationIntent) error
	Clear(ctx context.Context, businessID, conversationID string) error
}

// RedisIntentStore keeps intent state in the cache Redis with the
// conversation TTL, so abandoned conversations clean themselves up.
type RedisIntentStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisIntentStore builds a store on the shared cache client.
func NewRedisIntentStore() *RedisIntentStore {
	return &RedisIntentStore{client: utils.GetCacheClient(), ttl: utils.ConversationTTL}
}

func intentKey(businessID, conversationID string) string {
	return utils.IntentPrefix + businessID + ":" + conversationID
}

func (s *RedisIntentStore) Get(ctx context.Context, businessID, conversationID string) (*models.ConversationIntent, error) {
	data, err := s.client.Get(ctx, intentKey(businessID, conversationID)).Result()
	if err == redis.Nil {
		return &models.ConversationIntent{State: models.IntentIdle}, nil
	}
	if err != nil {
		return nil, err
	}
	var intent models.ConversationIntent
	if err := json.Unmarshal([]byte(data), &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (s *RedisIntentStore) Set(ctx context.Context, businessID, conversationID string, intent *models.ConversationIntent) error {
	b, err := json.Marshal(intent)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, intentKey(businessID, conversationID), b, s.ttl).Err()
}

func (s *RedisIntentStore) Clear(ctx context.Context, businessID, conversationID string) error {
	return s.client.Del(ctx, intentKey(businessID, conversationID)).Err()
}

// advanceIntent folds one successful tool call into the conversation's
// booking-flow state. Failed calls leave the state alone, and tools outside
// the booking funnel neither advance nor reset it.
func advanceIntent(intent *models.ConversationIntent, tool ToolName, args map[string]interface{}, result *ToolResult) *models.ConversationIntent {
	if result == nil || !result.Success {
		return intent
	}
	customerID := intent.CustomerID
	switch tool {
	case ToolListServices:
		return &models.ConversationIntent{State: models.IntentBrowsingServices, CustomerID: customerID}
	case ToolCheckAvailability:
		return &models.ConversationIntent{
			State:        models.IntentCheckingSlots,
			ServiceID:    argString(args, "serviceId"),
			SelectedDate: argString(args, "date"),
			CustomerID:   customerID,
		}
	case ToolCreateHold:
		next := &models.ConversationIntent{
			State:      models.IntentHoldActive,
			ServiceID:  argString(args, "serviceId"),
			HoldID:     argString(result.Data, "holdId"),
			CustomerID: customerID,
		}
		if raw := argString(result.Data, "expiresAt"); raw != "" {
			if t, err := time.Parse(time.RFC3339, raw); err == nil {
				next.HoldExpiresAt = &t
			}
		}
		return next
	case ToolConfirmBooking:
		if id := argString(result.Data, "customerId"); id != "" {
			customerID = id
		}
		return &models.ConversationIntent{State: models.IntentIdle, CustomerID: customerID}
	}
	return intent
}
