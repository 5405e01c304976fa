package constants

import "time"

// Date layout for reservation start/end dates in requests and responses.
const DateLayout = "2006-01-02"

// Token lifetime when TOKEN_TTL_MINUTES is not set.
const DefaultTokenTTLMinutes = 60 * 24

// Cache keys and TTLs
const (
	PropertyListCacheKey = "properties:all"
	PropertyListCacheTTL = 10 * time.Minute
)
