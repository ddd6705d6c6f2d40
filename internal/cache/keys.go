package cache

import "strings"

const (
	GlobalKeyPrefix = "cartridgequiz"
)

// GenerateCacheKey builds a namespaced cache key for an object type and
// identifier, e.g. cartridgequiz:session:01H....
func GenerateCacheKey(objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// SessionKey is the cache key holding a serialized quiz session.
func SessionKey(sessionID string) string {
	return GenerateCacheKey("session", sessionID)
}
