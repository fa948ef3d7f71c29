// Package signature implements the PhonePe X-VERIFY scheme: a SHA256 digest
// over the request material plus the shared salt key, suffixed with the salt
// index so the gateway knows which key rotation to verify against.
package signature

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// Sign produces the X-VERIFY value for a pay request. The digest covers the
// base64 payload, the endpoint path, and the salt key, in that order.
func Sign(payloadBase64, endpointPath, saltKey, saltIndex string) string {
	sum := sha256.Sum256([]byte(payloadBase64 + endpointPath + saltKey))
	return fmt.Sprintf("%s###%s", hex.EncodeToString(sum[:]), saltIndex)
}

// SignStatusCheck produces the X-VERIFY value for a status GET. There is no
// payload component; signing the path alone is deliberate and distinct from
// Sign.
func SignStatusCheck(endpointPath, saltKey, saltIndex string) string {
	sum := sha256.Sum256([]byte(endpointPath + saltKey))
	return fmt.Sprintf("%s###%s", hex.EncodeToString(sum[:]), saltIndex)
}

// VerifyCallback recomputes the callback signature over the base64 body and
// compares it with the received header. The comparison is constant-time; any
// mismatch means the callback must be rejected outright.
func VerifyCallback(base64Body, receivedHeader, saltKey, saltIndex string) bool {
	sum := sha256.Sum256([]byte(base64Body + saltKey))
	expected := fmt.Sprintf("%s###%s", hex.EncodeToString(sum[:]), saltIndex)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(receivedHeader)) == 1
}
