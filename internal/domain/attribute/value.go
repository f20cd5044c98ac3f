package attribute

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind tags a Value at the typed API boundary. The ledger itself stores only
// the string encoding.
type Kind string

const (
	KindText   Kind = "text"
	KindNumber Kind = "number"
	KindBool   Kind = "bool"
	KindJSON   Kind = "json"
	KindTags   Kind = "tags"
)

// Value is a tagged attribute value. Construct one with Text, Number, Bool,
// JSON, or Tags; Encode produces the canonical ledger string (booleans as
// "0"/"1", JSON and tag lists serialized).
type Value struct {
	kind    Kind
	text    string
	number  float64
	boolean bool
	raw     json.RawMessage
	tags    []string
}

func Text(s string) Value            { return Value{kind: KindText, text: s} }
func Number(f float64) Value         { return Value{kind: KindNumber, number: f} }
func Bool(b bool) Value              { return Value{kind: KindBool, boolean: b} }
func JSON(raw json.RawMessage) Value { return Value{kind: KindJSON, raw: raw} }
func Tags(tags []string) Value       { return Value{kind: KindTags, tags: tags} }

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

// Encode returns the ledger string encoding of the value.
func (v Value) Encode() (string, error) {
	switch v.kind {
	case KindText:
		return v.text, nil
	case KindNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64), nil
	case KindBool:
		if v.boolean {
			return "1", nil
		}
		return "0", nil
	case KindJSON:
		if !json.Valid(v.raw) {
			return "", fmt.Errorf("invalid json value")
		}
		return string(v.raw), nil
	case KindTags:
		data, err := json.Marshal(v.tags)
		if err != nil {
			return "", fmt.Errorf("encoding tags: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown value kind %q", v.kind)
	}
}

// Decode interprets a ledger string as the given kind.
func Decode(kind Kind, encoded string) (Value, error) {
	switch kind {
	case KindText:
		return Text(encoded), nil
	case KindNumber:
		f, err := strconv.ParseFloat(encoded, 64)
		if err != nil {
			return Value{}, fmt.Errorf("decoding number: %w", err)
		}
		return Number(f), nil
	case KindBool:
		switch encoded {
		case "1":
			return Bool(true), nil
		case "0":
			return Bool(false), nil
		default:
			return Value{}, fmt.Errorf("decoding bool: want \"0\" or \"1\", got %q", encoded)
		}
	case KindJSON:
		if !json.Valid([]byte(encoded)) {
			return Value{}, fmt.Errorf("decoding json: invalid document")
		}
		return JSON(json.RawMessage(encoded)), nil
	case KindTags:
		var tags []string
		if err := json.Unmarshal([]byte(encoded), &tags); err != nil {
			return Value{}, fmt.Errorf("decoding tags: %w", err)
		}
		return Tags(tags), nil
	default:
		return Value{}, fmt.Errorf("unknown value kind %q", kind)
	}
}

// AsText returns the text payload; zero value for other kinds.
func (v Value) AsText() string { return v.text }

// AsNumber returns the numeric payload; zero value for other kinds.
func (v Value) AsNumber() float64 { return v.number }

// AsBool returns the boolean payload; false for other kinds.
func (v Value) AsBool() bool { return v.boolean }

// AsJSON returns the raw JSON payload; nil for other kinds.
func (v Value) AsJSON() json.RawMessage { return v.raw }

// AsTags returns the tag list payload; nil for other kinds.
func (v Value) AsTags() []string { return v.tags }
