package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Digest returns the hex SHA-256 of data. Generator input and file cache
// paths are both addressed by it.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// generatorKey returns "gen:<generator>:<digest>" where the digest covers
// the JSON form of params and the digest of input. Params that cannot be
// encoded as JSON fall back to their Go syntax representation.
func generatorKey(generator string, params any, input []byte) string {
	encoded, err := json.Marshal(params)
	if err != nil {
		encoded = fmt.Appendf(nil, "%#v", params)
	}
	doc, _ := json.Marshal([]string{string(encoded), Digest(input)})
	return fmt.Sprintf("gen:%s:%s", generator, Digest(doc))
}
