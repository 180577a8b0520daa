// Package id generates lexicographically sortable identifiers for
// deliverables and stored attachments.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"strings"
	"time"
)

// Crockford's Base32 alphabet (excludes I, L, O, U to avoid confusion).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const (
	ulidLen      = 26
	timestampLen = 10
)

// ErrInvalidULID is returned by ULIDTime for malformed input.
var ErrInvalidULID = errors.New("id: invalid ULID")

// NewULID generates a ULID for the current time.
// Returns a 26-character string: 10 chars timestamp (48-bit ms) + 16 chars random (80-bit).
func NewULID() string {
	return NewULIDAt(time.Now())
}

// NewULIDAt generates a ULID whose timestamp part encodes t.
// Useful with injected clocks so that IDs sort with the recorded creation time.
func NewULIDAt(t time.Time) string {
	randomBytes := make([]byte, 10)
	if _, err := rand.Read(randomBytes); err != nil {
		// Degraded but still unique enough within a process.
		binary.BigEndian.PutUint64(randomBytes[:8], uint64(time.Now().UnixNano()))
	}
	return encode(uint64(t.UnixMilli()), randomBytes)
}

// ULIDTime extracts the millisecond timestamp encoded in a ULID.
func ULIDTime(s string) (time.Time, error) {
	if len(s) != ulidLen {
		return time.Time{}, ErrInvalidULID
	}
	var ms uint64
	for i := range timestampLen {
		v := strings.IndexByte(crockfordBase32, s[i])
		if v < 0 {
			return time.Time{}, ErrInvalidULID
		}
		ms = ms<<5 | uint64(v)
	}
	for i := timestampLen; i < ulidLen; i++ {
		if strings.IndexByte(crockfordBase32, s[i]) < 0 {
			return time.Time{}, ErrInvalidULID
		}
	}
	return time.UnixMilli(int64(ms)).UTC(), nil
}

func encode(ms uint64, rb []byte) string {
	var ulid [ulidLen]byte

	// 48-bit timestamp in 10 chars; the top two bits of ulid[0] are always zero.
	for i := timestampLen - 1; i >= 0; i-- {
		ulid[i] = crockfordBase32[ms&0x1F]
		ms >>= 5
	}

	// 80 random bits in 16 chars, 5 bytes per 8 chars.
	for g := range 2 {
		b := rb[g*5 : g*5+5]
		v := uint64(b[0])<<32 | uint64(b[1])<<24 | uint64(b[2])<<16 | uint64(b[3])<<8 | uint64(b[4])
		off := timestampLen + g*8
		for i := 7; i >= 0; i-- {
			ulid[off+i] = crockfordBase32[v&0x1F]
			v >>= 5
		}
	}

	return string(ulid[:])
}
