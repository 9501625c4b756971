package mouflon

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"sync"
	"unicode/utf8"
)

// Decoder reverses the keystream obfuscation applied to concealed
// segment identifiers. Masks are derived once per distinct decode key
// and cached for the process lifetime.
type Decoder struct {
	mu    sync.RWMutex
	masks map[string][]byte
}

func NewDecoder() *Decoder {
	return &Decoder{masks: make(map[string][]byte)}
}

func (d *Decoder) mask(decodeKey string) []byte {
	d.mu.RLock()
	mask, ok := d.masks[decodeKey]
	d.mu.RUnlock()
	if ok {
		return mask
	}
	sum := sha256.Sum256([]byte(decodeKey))
	d.mu.Lock()
	d.masks[decodeKey] = sum[:]
	d.mu.Unlock()
	return sum[:]
}

// Decode base64-decodes the payload and XORs it against the cycled key
// mask. Stored payloads omit base64 padding and the origin encoder
// always needs exactly two padding characters back, so two are appended
// unconditionally; payloads whose true padding differs fail with
// ErrPayloadDecode even under the correct key.
func (d *Decoder) Decode(payload, decodeKey string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(payload + "==")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPayloadDecode, err)
	}
	mask := d.mask(decodeKey)
	identifier := make([]byte, len(raw))
	for i, b := range raw {
		identifier[i] = b ^ mask[i%len(mask)]
	}
	if !utf8.Valid(identifier) {
		return "", ErrTextDecode
	}
	return string(identifier), nil
}
