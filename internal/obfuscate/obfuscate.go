// Package obfuscate implements the reversible encoding used for passwords
// in the remote store. This is deliberate obfuscation, not cryptography:
// the store format requires the original value to be recoverable for the
// login comparison.
package obfuscate

import (
	"encoding/base64"
	"fmt"
)

const pad = "trolley.storage.v1"

// Encode obfuscates a plaintext value for storage.
func Encode(plain string) string {
	data := []byte(plain)
	for i := range data {
		data[i] ^= pad[i%len(pad)]
	}
	return base64.StdEncoding.EncodeToString(data)
}

// Decode recovers the plaintext from a stored value.
func Decode(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("malformed stored password: %w", err)
	}
	for i := range data {
		data[i] ^= pad[i%len(pad)]
	}
	return string(data), nil
}
