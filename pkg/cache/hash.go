package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a namespaced cache key from arbitrary parts, e.g. the
// layout key from (items hash, geometry opts). Format: prefix:sha256(parts).
// The full 64-hex-char digest is kept: layout and artifact keys for
// near-identical configs differ by a single float, so truncation would
// invite silent cross-config hits.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash returns the SHA-256 of data as a 64-character hex string. Used for
// item-list and layout content hashes, where byte-identical JSON must map
// to the same key across runs and hosts.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
