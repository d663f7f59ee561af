package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a cache key of the form prefix:hash(parts...). The board
// name and the option payload both enter the hash, so two boards never share
// an option key even for identical documents.
func hashKey(prefix string, parts ...any) string {
	raw, _ := json.Marshal(parts)
	return prefix + ":" + Hash(raw)
}

// Hash returns the full 64-character hex SHA-256 of data. Option documents
// are content-addressed with it: an unchanged document hashes to the same
// key and skips re-emission.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
