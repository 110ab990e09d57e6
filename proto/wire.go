// Package proto holds hand-maintained wire types for the Android
// check-in and MCS protobuf message sets. The real .proto sources are
// not part of this module (they are generated elsewhere and assumed to
// exist, per the upstream GCM/MCS wire format); these types carry their
// own Marshal/Unmarshal pair in the same style protoc-gen-gogo produces,
// built on top of google.golang.org/protobuf's low-level wire primitives
// instead of full descriptor-based reflection.
package proto

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBoolField(b []byte, num protowire.Number, v bool) []byte {
	var x uint64
	if v {
		x = 1
	}
	return appendVarintField(b, num, x)
}

func appendStringField(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendMessageField(b []byte, num protowire.Number, msg []byte) []byte {
	return appendBytesField(b, num, msg)
}

// field is one decoded top-level field of a message.
type field struct {
	num protowire.Number
	typ protowire.Type
	raw []byte
	u64 uint64
}

// parseFields splits data into its top-level fields without interpreting
// nested messages; callers decode sub-messages by recursing on raw.
func parseFields(data []byte) ([]field, error) {
	var fields []field
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("proto: invalid tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("proto: invalid varint field %d: %w", num, protowire.ParseError(n))
			}
			fields = append(fields, field{num: num, typ: typ, u64: v})
			data = data[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("proto: invalid length-delimited field %d: %w", num, protowire.ParseError(n))
			}
			fields = append(fields, field{num: num, typ: typ, raw: v})
			data = data[n:]
		case protowire.Fixed32Type:
			_, n := protowire.ConsumeFixed32(data)
			if n < 0 {
				return nil, fmt.Errorf("proto: invalid fixed32 field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		case protowire.Fixed64Type:
			_, n := protowire.ConsumeFixed64(data)
			if n < 0 {
				return nil, fmt.Errorf("proto: invalid fixed64 field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		default:
			return nil, fmt.Errorf("proto: unsupported wire type %d on field %d", typ, num)
		}
	}
	return fields, nil
}

func lastString(fields []field, num protowire.Number) (string, bool) {
	var out string
	var ok bool
	for _, f := range fields {
		if f.num == num && f.typ == protowire.BytesType {
			out, ok = string(f.raw), true
		}
	}
	return out, ok
}

func lastBytes(fields []field, num protowire.Number) ([]byte, bool) {
	var out []byte
	var ok bool
	for _, f := range fields {
		if f.num == num && f.typ == protowire.BytesType {
			out, ok = f.raw, true
		}
	}
	return out, ok
}

func lastVarint(fields []field, num protowire.Number) (uint64, bool) {
	var out uint64
	var ok bool
	for _, f := range fields {
		if f.num == num && f.typ == protowire.VarintType {
			out, ok = f.u64, true
		}
	}
	return out, ok
}

func repeatedBytes(fields []field, num protowire.Number) [][]byte {
	var out [][]byte
	for _, f := range fields {
		if f.num == num && f.typ == protowire.BytesType {
			out = append(out, f.raw)
		}
	}
	return out
}
