package cursor

import (
	"sync"

	"golang.org/x/mod/semver"

	"eventcore/internal/streamerr"
)

// minSupported/maxSupportedExclusive bound the decoder format versions this
// core understands. A decoder declaring a major version outside
// [minSupported, maxSupportedExclusive) cannot drive a Cursor.
const (
	minSupported         = "v1.0.0"
	maxSupportedExclusive = "v2.0.0"
)

var (
	registryMu sync.Mutex
	registry   = map[string]string{}
)

// Register records the format version a named decoder implementation
// declares, ahead of constructing any Cursor for it. Re-registering the
// same name overwrites its declared version.
func Register(name string, formatVersion string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = formatVersion
}

// lookupVersion returns the version registered for name, or "" if none was
// ever registered.
func lookupVersion(name string) string {
	registryMu.Lock()
	defer registryMu.Unlock()
	return registry[name]
}

// NewVersioned constructs a Cursor for the named decoder, refusing to do so
// if that name previously Register'd a format version outside the range
// this core supports. A name that never called Register is treated as
// compatible — version negotiation is opt-in enrichment, not a requirement
// every Decoder must satisfy.
func NewVersioned(name string, decoder Decoder) (*Cursor, error) {
	v := lookupVersion(name)
	if v == "" {
		return New(decoder), nil
	}
	if !semver.IsValid(v) {
		return nil, streamerr.New(streamerr.UnsupportedVersion, "decoder "+name+" declared an invalid semver: "+v)
	}
	if semver.Compare(v, minSupported) < 0 || semver.Compare(v, maxSupportedExclusive) >= 0 {
		return nil, streamerr.New(streamerr.UnsupportedVersion, "decoder "+name+" declared unsupported format version "+v)
	}
	return New(decoder), nil
}
