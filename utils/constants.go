// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// IntentPrefix is the prefix for conversation intent keys.
const IntentPrefix = "agent:intent:"

// TranscriptPrefix is the prefix for conversation transcript keys.
const TranscriptPrefix = "agent:history:"

// ConversationTTL is how long idle conversation state survives in Redis.
const ConversationTTL = 24 * time.Hour
