package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Cache is the response cache consumed by the fetch layer. Every operation
// is session-scoped: resource names one fetched URL, scope ties the entry
// to the session that fetched it.
type Cache interface {
	Get(scope, resource string) ([]byte, bool)
	Set(scope, resource string, value []byte) error
	Delete(scope, resource string) error
	Clear() error
}

// key derives the storage key for a resource fetched by a session. The
// scope is the session's bearer token: it lives exactly as long as the
// session and is unique per login, so entries written by one session are
// unreachable from any other, including across process restarts. Hashing
// keeps the token itself out of memory maps and file names.
func key(scope, resource string) string {
	hash := sha256.Sum256(fmt.Appendf(nil, "%s|%s", scope, resource))
	return "framap:v2:" + hex.EncodeToString(hash[:])
}
