// Package cache memoizes calculator responses at the API boundary. The
// calculation core itself stays cache-free so it remains safe under
// arbitrary concurrent invocation; only fully-serialized results are ever
// stored here.
package cache

// Cache is a string key/value store with best-effort semantics: a miss or
// a failed write only costs a recomputation.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
