// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// GenerateSecureToken returns a URL-safe, unguessable random token of the
// given byte length.
//
// It is used for session identifiers and one-shot CSRF tokens.
func GenerateSecureToken(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// TokensEqual compares two opaque tokens in constant time.
//
// Used by the CSRF guard so a mismatch never leaks timing information about
// how many leading bytes matched.
func TokensEqual(a, b string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
