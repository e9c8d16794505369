// Package digest provides the hashing support for committing to the content
// of a block.
package digest

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Algorithm represents a cryptographic hash function used to produce the
// digest of a block.
type Algorithm string

// Set of supported algorithms.
const (
	SHA256    Algorithm = "sha256"
	Keccak256 Algorithm = "keccak256"
)

// Parse converts the name of an algorithm into an Algorithm value.
func Parse(name string) (Algorithm, error) {
	switch alg := Algorithm(strings.ToLower(name)); alg {
	case SHA256, Keccak256:
		return alg, nil
	default:
		return "", fmt.Errorf("unknown digest algorithm %q", name)
	}
}

// Length returns the number of hex characters in a digest produced by
// the algorithm.
func (a Algorithm) Length() int {
	return 64
}

// String implements the fmt.Stringer interface.
func (a Algorithm) String() string {
	return string(a)
}

// Hex feeds the parts through the hash function in the order provided and
// returns the lower-case hex encoding of the result with no 0x prefix. An
// unknown algorithm falls back to SHA256.
func (a Algorithm) Hex(parts ...string) string {
	switch a {
	case Keccak256:
		data := make([][]byte, len(parts))
		for i, part := range parts {
			data[i] = []byte(part)
		}
		return common.Bytes2Hex(crypto.Keccak256(data...))

	default:
		h := sha256.New()
		for _, part := range parts {
			h.Write([]byte(part))
		}
		return common.Bytes2Hex(h.Sum(nil))
	}
}
