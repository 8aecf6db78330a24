package application

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// decodeAttachment base64-decodes (MIME alphabet, per spec.md §4.3) an
// inline attachment payload, enforcing the configured byte cap before
// returning the decoded bytes and their SHA-256 digest.
//
// ok=false with tooLarge and badBase64 both false means the payload was
// empty (a warning, not a fatal problem); tooLarge or badBase64 set means
// the payload was too large or not valid base64, and the caller decides
// fatal vs warning per call site.
func decodeAttachment(raw string, maxBytes int) (data []byte, sha256Hex string, ok bool, tooLarge bool, badBase64 bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, "", false, false, false
	}
	decoded, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, "", false, false, true
	}
	if len(decoded) == 0 {
		return nil, "", false, false, false
	}
	if maxBytes > 0 && len(decoded) > maxBytes {
		return nil, "", false, true, false
	}
	digest := sha256.Sum256(decoded)
	return decoded, hex.EncodeToString(digest[:]), true, false, false
}
