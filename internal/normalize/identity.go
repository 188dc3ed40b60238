package normalize

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// Identity key prefixes mark provenance: "ba:" for provider-supplied
// reference numbers, "hx:" for the content-hash fallback.
const (
	refKeyPrefix  = "ba:"
	hashKeyPrefix = "hx:"
	hashKeyLen    = 16
)

// refFields in priority order; both spellings of each occur in the wild.
var refFields = []string{"refnr", "refNr", "hashId", "hashID"}

// IdentityKey computes the stable identity of a raw record. Two records with
// the same reference number collide regardless of which field variant carried
// it; two records without one collide iff their lowercased
// title/company/location agree (the same posting re-surfaced).
func IdentityKey(r Raw) string {
	if ref := providerRef(r); ref != "" {
		return refKeyPrefix + ref
	}
	tuple := strings.ToLower(Title(r)) + "|" +
		strings.ToLower(Company(r)) + "|" +
		strings.ToLower(Location(r))
	sum := sha1.Sum([]byte(tuple))
	return hashKeyPrefix + hex.EncodeToString(sum[:])[:hashKeyLen]
}

func providerRef(r Raw) string {
	for _, k := range refFields {
		if s := strings.TrimSpace(asString(r[k])); s != "" {
			return s
		}
	}
	return ""
}
