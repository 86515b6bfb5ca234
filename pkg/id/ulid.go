// Package id generates identifiers for requests and messages.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	"github.com/google/uuid"
)

// Crockford's Base32 alphabet (excludes I, L, O, U to avoid confusion).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewULID returns a 26-character ULID: 48-bit millisecond timestamp followed
// by 80 random bits. ULIDs sort lexicographically by creation time, which
// keeps request IDs ordered in logs.
func NewULID() string {
	return ulidAt(time.Now())
}

func ulidAt(t time.Time) string {
	var raw [16]byte

	ms := uint64(t.UnixMilli())
	for i := 5; i >= 0; i-- {
		raw[i] = byte(ms)
		ms >>= 8
	}

	if _, err := rand.Read(raw[6:]); err != nil {
		// Degraded but unique enough for correlation.
		binary.BigEndian.PutUint64(raw[6:14], uint64(t.UnixNano()))
	}

	// 128 bits are written as 26 base32 chars; the first char holds only 3 bits.
	var out [26]byte
	var acc uint32
	bits := uint(2) // pad 128 bits to 130
	idx := 0
	for _, b := range raw {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out[idx] = crockfordBase32[(acc>>bits)&0x1F]
			idx++
		}
	}
	return string(out[:])
}

// NewMessageID returns a random UUIDv4 used to reference a sent message
// when the provider does not return its own ID.
func NewMessageID() string {
	return uuid.NewString()
}
