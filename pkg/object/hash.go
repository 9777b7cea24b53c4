package object

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
)

// Hash is a 40-character lowercase hex-encoded SHA-1 digest. It is the
// content address of an object's envelope bytes.
type Hash string

// RawHashLen is the length of a binary object hash in bytes.
const RawHashLen = sha1.Size

// HashFromRaw converts a 20-byte binary digest to its hex Hash form.
// The conversion is fixed-width: leading zero bytes survive the round trip.
func HashFromRaw(raw []byte) (Hash, error) {
	if len(raw) != RawHashLen {
		return "", fmt.Errorf("hash from raw: got %d bytes, want %d", len(raw), RawHashLen)
	}
	return Hash(hex.EncodeToString(raw)), nil
}

// Raw converts h to its 20-byte binary form.
func (h Hash) Raw() ([RawHashLen]byte, error) {
	var out [RawHashLen]byte
	if len(h) != 2*RawHashLen {
		return out, fmt.Errorf("hash %q: got %d hex chars, want %d", h, len(h), 2*RawHashLen)
	}
	raw, err := hex.DecodeString(string(h))
	if err != nil {
		return out, fmt.Errorf("hash %q: %w", h, err)
	}
	copy(out[:], raw)
	return out, nil
}

// Valid reports whether h is a fully resolved hash: exactly 40 lowercase
// hex characters.
func (h Hash) Valid() bool {
	if len(h) != 2*RawHashLen {
		return false
	}
	for i := 0; i < len(h); i++ {
		c := h[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// envelope returns the hashed and stored byte form of an object payload:
// "<type> <decimal length>\x00<payload>".
func envelope(t Type, payload []byte) []byte {
	header := string(t) + " " + strconv.Itoa(len(payload))
	out := make([]byte, 0, len(header)+1+len(payload))
	out = append(out, header...)
	out = append(out, 0)
	out = append(out, payload...)
	return out
}

// HashOf computes the content address of obj without touching storage.
func HashOf(obj Object) (Hash, error) {
	payload, err := Marshal(obj)
	if err != nil {
		return "", err
	}
	sum := sha1.Sum(envelope(obj.Type(), payload))
	return Hash(hex.EncodeToString(sum[:])), nil
}
