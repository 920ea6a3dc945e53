// Package event defines the immutable record that captures one parse event
// plus the typed accessors that convert its payload into a requested Go
// type. An Event is only valid until the owning cursor's next pull: string
// and byte-string payloads are non-owning views into decoder-owned memory.
package event

import (
	"math"
	"strconv"
	"time"

	"eventcore/internal/semtag"
	"eventcore/internal/streamerr"
)

// timeConverter is populated by internal/dateconv's init, the same
// driver-registration idiom internal/provenance/drivers.go uses for its SQL
// backends: event cannot import dateconv directly (dateconv imports event
// for the Event type), so dateconv registers itself here instead.
var timeConverter func(Event) (time.Time, error)

// RegisterTimeConverter installs the conversion Get[time.Time] dispatches
// to. Called from internal/dateconv's init; not meant for other callers.
func RegisterTimeConverter(fn func(Event) (time.Time, error)) {
	timeConverter = fn
}

// Kind discriminates the payload carried by an Event.
type Kind int

const (
	BeginObject Kind = iota
	EndObject
	BeginArray
	EndArray
	Name
	String
	ByteString
	Null
	Bool
	Int64
	Uint64
	Half
	Double
)

func (k Kind) String() string {
	switch k {
	case BeginObject:
		return "begin_object"
	case EndObject:
		return "end_object"
	case BeginArray:
		return "begin_array"
	case EndArray:
		return "end_array"
	case Name:
		return "name"
	case String:
		return "string"
	case ByteString:
		return "byte_string"
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	case Half:
		return "half"
	case Double:
		return "double"
	default:
		return "unknown"
	}
}

// Event is one atomic parse step: a discriminated union selected by Kind,
// carrying a semantic Tag and, when Tag is semtag.Ext, an ExtTag. View
// payloads (StringView, ByteView) are non-owning and valid only until the
// owning cursor's next Next() call.
type Event struct {
	Kind       Kind
	Tag        semtag.Tag
	ExtTag     uint64
	BoolVal    bool
	Int64Val   int64
	Uint64Val  uint64
	HalfBits   uint16
	DoubleVal  float64
	StringView string
	ByteView   []byte
	Length     int // announced container length for BeginObject/BeginArray; 0 = unknown
}

// Size returns the length of a string/byte-string view, or the announced
// container length for BeginObject/BeginArray.
func (e Event) Size() int {
	switch e.Kind {
	case Name, String:
		return len(e.StringView)
	case ByteString:
		return len(e.ByteView)
	case BeginObject, BeginArray:
		return e.Length
	default:
		return 0
	}
}

// asDouble widens any numeric scalar kind to float64, the common path every
// floating-target and half-float conversion routes through.
func (e Event) asDouble() (float64, bool) {
	switch e.Kind {
	case Int64:
		return float64(e.Int64Val), true
	case Uint64:
		return float64(e.Uint64Val), true
	case Double:
		return e.DoubleVal, true
	case Half:
		return halfToFloat64(e.HalfBits), true
	case Bool:
		if e.BoolVal {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// halfToFloat64 decodes IEEE-754 binary16 bits per the standard sign/
// exponent/mantissa layout, widening through float32's bit pattern.
func halfToFloat64(bits uint16) float64 {
	sign := uint32(bits>>15) & 1
	exp := uint32(bits>>10) & 0x1F
	frac := uint32(bits) & 0x3FF

	var f32bits uint32
	switch {
	case exp == 0 && frac == 0:
		f32bits = sign << 31
	case exp == 0x1F:
		f32bits = (sign << 31) | (0xFF << 23) | (frac << 13)
	case exp == 0:
		// subnormal half: normalize by shifting the mantissa until the
		// implicit leading bit appears, adjusting the exponent to match.
		e32 := int32(0)
		for frac&0x400 == 0 {
			frac <<= 1
			e32--
		}
		frac &= 0x3FF
		exp32 := uint32(int32(127-15+1) + e32)
		f32bits = (sign << 31) | (exp32 << 23) | (frac << 13)
	default:
		exp32 := exp - 15 + 127
		f32bits = (sign << 31) | (exp32 << 23) | (frac << 13)
	}
	return float64(math.Float32frombits(f32bits))
}

// Get converts the event's payload to T, dispatched by Kind and the
// semantic Tag. It reports failure as a *streamerr.StreamError via the
// returned error rather than panicking.
func Get[T any](e Event) (T, error) {
	var zero T
	switch any(zero).(type) {
	case string:
		v, err := getString(e)
		return any(v).(T), err
	case []byte:
		v, err := getByteString(e)
		return any(v).(T), err
	case int64:
		v, err := getInt64(e)
		return any(v).(T), err
	case int:
		v, err := getInt64(e)
		return any(int(v)).(T), err
	case uint64:
		v, err := getUint64(e)
		return any(v).(T), err
	case float64:
		v, err := getDouble(e)
		return any(v).(T), err
	case bool:
		v, err := getBool(e)
		return any(v).(T), err
	case time.Time:
		v, err := getTime(e)
		return any(v).(T), err
	default:
		return zero, streamerr.New(streamerr.NotString, "unsupported Get target type")
	}
}

func getTime(e Event) (time.Time, error) {
	if timeConverter == nil {
		return time.Time{}, streamerr.New(streamerr.NotDateTime, "no date/time converter registered; import internal/dateconv")
	}
	return timeConverter(e)
}

func getString(e Event) (string, error) {
	switch e.Kind {
	case String:
		if e.Tag == semtag.Base64 || e.Tag == semtag.Base64URL || e.Tag == semtag.Base16 {
			// the view already holds decoded text for a string-kind event;
			// base64/base16 decoding only applies when converting *to*
			// bytes (getByteString), not when the target is itself string.
			return e.StringView, nil
		}
		return e.StringView, nil
	case ByteString:
		return string(e.ByteView), nil
	case Bool:
		if e.BoolVal {
			return "true", nil
		}
		return "false", nil
	case Int64:
		return strconv.FormatInt(e.Int64Val, 10), nil
	case Uint64:
		return strconv.FormatUint(e.Uint64Val, 10), nil
	case Double:
		return strconv.FormatFloat(e.DoubleVal, 'g', -1, 64), nil
	case Half:
		return strconv.FormatFloat(halfToFloat64(e.HalfBits), 'g', -1, 64), nil
	case Null:
		return "", nil
	default:
		return "", streamerr.New(streamerr.NotString, "event kind "+e.Kind.String()+" has no string conversion")
	}
}

func getInt64(e Event) (int64, error) {
	switch e.Kind {
	case Int64:
		return e.Int64Val, nil
	case Uint64:
		return int64(e.Uint64Val), nil
	case Double:
		return int64(e.DoubleVal), nil
	case Half:
		return int64(halfToFloat64(e.HalfBits)), nil
	case Bool:
		if e.BoolVal {
			return 1, nil
		}
		return 0, nil
	case String:
		v, err := strconv.ParseInt(e.StringView, 10, 64)
		if err != nil {
			return 0, streamerr.Wrap(streamerr.NotInteger, "string is not a decimal integer", err)
		}
		return v, nil
	default:
		return 0, streamerr.New(streamerr.NotInteger, "event kind "+e.Kind.String()+" has no integer conversion")
	}
}

func getUint64(e Event) (uint64, error) {
	v, err := getInt64(e)
	if err != nil {
		return 0, err
	}
	return uint64(v), nil
}

func getDouble(e Event) (float64, error) {
	if v, ok := e.asDouble(); ok {
		return v, nil
	}
	if e.Kind == String {
		v, err := strconv.ParseFloat(e.StringView, 64)
		if err != nil {
			return 0, streamerr.Wrap(streamerr.NotDouble, "string is not a float", err)
		}
		return v, nil
	}
	return 0, streamerr.New(streamerr.NotDouble, "event kind "+e.Kind.String()+" has no double conversion")
}

func getBool(e Event) (bool, error) {
	switch e.Kind {
	case Bool:
		return e.BoolVal, nil
	case Int64:
		return e.Int64Val != 0, nil
	case Uint64:
		return e.Uint64Val != 0, nil
	case Double:
		return e.DoubleVal != 0, nil
	case Half:
		return halfToFloat64(e.HalfBits) != 0, nil
	default:
		return false, streamerr.New(streamerr.NotBool, "event kind "+e.Kind.String()+" has no bool conversion")
	}
}

func getByteString(e Event) ([]byte, error) {
	switch e.Kind {
	case ByteString:
		return e.ByteView, nil
	case String:
		switch e.Tag {
		case semtag.Base64, semtag.Base64URL:
			return decodeBase64(e.StringView, e.Tag == semtag.Base64URL)
		case semtag.Base16:
			return decodeBase16(e.StringView)
		}
	}
	return nil, streamerr.New(streamerr.NotByteString, "event kind "+e.Kind.String()+" with tag "+e.Tag.String()+" has no byte-string conversion")
}

// StringView returns the raw string view, valid only for kind=string.
func StringView(e Event) (string, error) {
	if e.Kind != String {
		return "", streamerr.New(streamerr.NotStringView, "event kind "+e.Kind.String()+" is not a string view")
	}
	return e.StringView, nil
}

// ByteStringView returns the raw byte view, valid only for kind=byte_string.
func ByteStringView(e Event) ([]byte, error) {
	if e.Kind != ByteString {
		return nil, streamerr.New(streamerr.NotByteStringView, "event kind "+e.Kind.String()+" is not a byte-string view")
	}
	return e.ByteView, nil
}
