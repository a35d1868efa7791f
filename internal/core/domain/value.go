package domain

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ValueKind enumerates the JSON value variants.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
)

// Member is a single object field. Member order mirrors the payload text so
// schema synthesis can emit columns in submission order.
type Member struct {
	Key   string
	Value Value
}

// Value is a tagged variant over the JSON value space. Numbers keep their raw
// literal, which is what distinguishes an integer from a real.
type Value struct {
	Kind    ValueKind
	Members []Member
	Items   []Value
	Str     string
	Num     string
	Bool    bool
}

// ParseJSON decodes raw payload bytes into a Value tree. Any syntax problem,
// including trailing data after the first value, is reported as a malformed
// payload.
func ParseJSON(raw []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, WrapError(ErrMalformedPayload, "parse payload", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, WrapError(ErrMalformedPayload, "parse payload", errors.New("trailing data after value"))
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case string:
		return Value{Kind: KindString, Str: t}, nil
	case json.Number:
		return Value{Kind: KindNumber, Num: t.String()}, nil
	case bool:
		return Value{Kind: KindBool, Bool: t}, nil
	case nil:
		return Value{Kind: KindNull}, nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := Value{Kind: KindObject}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key %v is not a string", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		obj.Members = append(obj.Members, Member{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	arr := Value{Kind: KindArray}
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		arr.Items = append(arr.Items, item)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return arr, nil
}

// IsInteger reports whether a number literal has no fractional or exponent
// part. Only meaningful for KindNumber.
func (v Value) IsInteger() bool {
	return v.Kind == KindNumber && !strings.ContainsAny(v.Num, ".eE")
}

// Canonical renders the value as compact JSON with recursively sorted object
// keys, so structurally identical payloads hash identically regardless of
// member order in the submitted text.
func (v Value) Canonical() string {
	var b strings.Builder
	v.writeCanonical(&b)
	return b.String()
}

func (v Value) writeCanonical(b *strings.Builder) {
	switch v.Kind {
	case KindObject:
		members := make([]Member, len(v.Members))
		copy(members, v.Members)
		sort.SliceStable(members, func(i, j int) bool { return members[i].Key < members[j].Key })
		b.WriteByte('{')
		for i, m := range members {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSONString(b, m.Key)
			b.WriteByte(':')
			m.Value.writeCanonical(b)
		}
		b.WriteByte('}')
	case KindArray:
		b.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			item.writeCanonical(b)
		}
		b.WriteByte(']')
	case KindString:
		writeJSONString(b, v.Str)
	case KindNumber:
		b.WriteString(v.Num)
	case KindBool:
		if v.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	default:
		b.WriteString("null")
	}
}

func writeJSONString(b *strings.Builder, s string) {
	encoded, err := json.Marshal(s)
	if err != nil {
		// Strings always marshal; keep the compiler and the reader honest.
		b.WriteString(`""`)
		return
	}
	b.Write(encoded)
}

// ContentHash returns the first n hex characters of the SHA-1 digest of the
// canonical rendering. n outside (0, 40) yields the full digest.
func (v Value) ContentHash(n int) string {
	sum := sha1.Sum([]byte(v.Canonical()))
	digest := hex.EncodeToString(sum[:])
	if n > 0 && n < len(digest) {
		return digest[:n]
	}
	return digest
}
