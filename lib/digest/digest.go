// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
)

// Size is the length of a digest in bytes.
const Size = 32

// Digest is a BLAKE3 keyed hash.
type Digest [Size]byte

// Domain selects the key a digest is computed under.
type Domain int

const (
	// Input is an unmodified cartridge image as supplied by the user.
	Input Domain = iota

	// Output is a randomized image.
	Output

	// Patch is a diff resource, hashed after decompression.
	Patch
)

// domainKey is a 32-byte BLAKE3 key. The values are the ASCII domain
// name zero-padded to 32 bytes so they are readable in hex dumps.
// Changing a key invalidates every stored digest in its domain.
type domainKey [32]byte

var domainKeys = map[Domain]domainKey{
	Input: {
		'c', 'o', 'i', 'n', 's', 'h', 'u', 'f', 'f', 'l', 'e', '.', 'i', 'm', 'a', 'g',
		'e', '.', 'i', 'n', 'p', 'u', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0,
	},
	Output: {
		'c', 'o', 'i', 'n', 's', 'h', 'u', 'f', 'f', 'l', 'e', '.', 'i', 'm', 'a', 'g',
		'e', '.', 'o', 'u', 't', 'p', 'u', 't', 0, 0, 0, 0, 0, 0, 0, 0,
	},
	Patch: {
		'c', 'o', 'i', 'n', 's', 'h', 'u', 'f', 'f', 'l', 'e', '.', 'p', 'a', 't', 'c',
		'h', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	},
}

func (d Domain) String() string {
	switch d {
	case Input:
		return "input"
	case Output:
		return "output"
	case Patch:
		return "patch"
	default:
		return fmt.Sprintf("domain(%d)", int(d))
	}
}

func newHasher(domain Domain) *blake3.Hasher {
	key, ok := domainKeys[domain]
	if !ok {
		panic("digest: unknown domain " + domain.String())
	}
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("digest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}

// Sum hashes data in domain.
func Sum(domain Domain, data []byte) Digest {
	hasher := newHasher(domain)
	hasher.Write(data)
	var result Digest
	copy(result[:], hasher.Sum(nil))
	return result
}

// SumReader streams reader through the hash in domain.
func SumReader(domain Domain, reader io.Reader) (Digest, error) {
	hasher := newHasher(domain)
	if _, err := io.Copy(hasher, reader); err != nil {
		return Digest{}, fmt.Errorf("hashing %s content: %w", domain, err)
	}
	var result Digest
	copy(result[:], hasher.Sum(nil))
	return result, nil
}

// String returns the lowercase hex encoding.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 12 hex characters.
func (d Digest) Short() string {
	return d.String()[:12]
}

// IsZero reports whether d is the zero value, which no hash produces in
// practice and which marks an absent digest.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Parse decodes a 64-character hex digest.
func Parse(text string) (Digest, error) {
	var result Digest
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return result, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != Size {
		return result, fmt.Errorf("digest is %d bytes, want %d", len(decoded), Size)
	}
	copy(result[:], decoded)
	return result, nil
}
