package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"rillint/internal/lint"
	"rillint/internal/version"
)

// Digest is a SHA-256 sum used as a cache key.
type Digest [32]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// combineDigest: H(content || part1 || part2 ...). parts уже в детерминированном порядке.
func combineDigest(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Fingerprint hashes everything besides file content that changes what a
// check run reports: the effective level of every lint and the tool version.
func Fingerprint(reg *lint.Registry, levels *lint.Levels) Digest {
	h := sha256.New()
	_, _ = h.Write([]byte(version.Plain()))
	_, _ = h.Write([]byte{0})
	for _, l := range reg.Lints() {
		_, _ = h.Write([]byte(l.Name))
		_, _ = h.Write([]byte{'=', byte(levels.Of(l)), 0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// fileKey is the cache key of one file under one configuration. The syntax
// error limit is part of it since it changes what the parser reports.
func fileKey(content [32]byte, fingerprint Digest, maxErrors uint) Digest {
	var params Digest
	binary.BigEndian.PutUint16(params[0:], diskCacheSchemaVersion)
	binary.BigEndian.PutUint64(params[2:], uint64(maxErrors))
	return combineDigest(Digest(content), fingerprint, params)
}
