package querycache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Key scopes for the two query families every entity exposes.
const (
	scopeList   = "list"
	scopeDetail = "detail"
)

// fingerprintLen is the number of hex characters kept from the SHA256
// filter digest. 16 characters (64 bits) is plenty for a per-process
// cache that holds at most a few thousand entries.
const fingerprintLen = 16

// keySeparator joins key parts into the store's map index. The unit
// separator cannot appear in entity names, scopes, ids, or hex digests,
// so distinct tuples never collide.
const keySeparator = "\x1f"

// Key is an ordered, immutable query key tuple: [entity, scope,
// qualifiers...]. Keys are built through the factory functions below so
// that keys for the same logical resource stay prefix-compatible.
type Key []string

// String renders the key for logs and error messages.
func (k Key) String() string {
	return strings.Join(k, "/")
}

// index returns the collision-free map index for the key.
func (k Key) index() string {
	return strings.Join(k, keySeparator)
}

// HasPrefix reports whether k starts with the given prefix tuple.
// Every key is a prefix of itself; the empty key is a prefix of all.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, part := range prefix {
		if k[i] != part {
			return false
		}
	}
	return true
}

// All returns the root key covering every cached query for an entity.
func All(entity string) Key {
	return Key{entity}
}

// Lists returns the key covering all list queries for an entity,
// regardless of filters.
func Lists(entity string) Key {
	return Key{entity, scopeList}
}

// List returns the key for a filtered list query. Filters are included
// by value: deep-equal filter structs fingerprint identically, distinct
// filters produce distinct keys.
func List(entity string, filters any) Key {
	return Key{entity, scopeList, Fingerprint(filters)}
}

// Details returns the key covering all detail queries for an entity.
func Details(entity string) Key {
	return Key{entity, scopeDetail}
}

// Detail returns the key for a single resource's detail query.
func Detail(entity, id string) Key {
	return Key{entity, scopeDetail, id}
}

// Fingerprint derives a deterministic digest for a filter value.
// Filter types are flat tagged structs, which encoding/json serializes
// in declaration order, so structural equality implies equal digests.
// A nil filter fingerprints to a fixed marker distinct from any digest.
func Fingerprint(filters any) string {
	if filters == nil {
		return "unfiltered"
	}
	data, err := json.Marshal(filters)
	if err != nil {
		// Filter structs are plain data; marshal failure means a
		// programming error. Fall back to a shared bucket rather than
		// panicking in a cache path.
		return "unfingerprintable"
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}
