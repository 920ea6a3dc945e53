package event

import (
	"encoding/base64"
	"encoding/hex"

	"eventcore/internal/streamerr"
)

// decodeBase64/decodeBase16 back a string-kind, base64/base16-tagged event
// into bytes for a byte-string-target Get. encoding/base64 and encoding/hex
// are used directly: no pack example reaches for a third-party codec for
// these, and the standard library's implementation is the idiomatic choice.
func decodeBase64(s string, urlSafe bool) ([]byte, error) {
	enc := base64.StdEncoding
	if urlSafe {
		enc = base64.URLEncoding
	}
	b, err := enc.DecodeString(s)
	if err != nil {
		return nil, streamerr.Wrap(streamerr.NotByteString, "invalid base64", err)
	}
	return b, nil
}

func decodeBase16(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, streamerr.Wrap(streamerr.NotByteString, "invalid base16", err)
	}
	return b, nil
}
