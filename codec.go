package api

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
)

// Every encoded object starts with a one byte tag, then its fields in
// declaration order. Integers are little endian.

type encodeFunc func(b *cryptobyte.Builder)

type decodeFunc func(s *cryptobyte.String) bool

func marshal(tag byte, fields ...encodeFunc) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddUint8(tag)
	for _, f := range fields {
		f(&b)
	}
	return b.Bytes()
}

func unmarshal(data []byte, tag byte, name string, fields ...decodeFunc) error {
	s := cryptobyte.String(data)
	var t uint8
	if !s.ReadUint8(&t) || t != tag {
		return errors.Wrapf(ErrInvalidEncoding, "%s: tag", name)
	}
	for _, f := range fields {
		if !f(&s) {
			return errors.Wrapf(ErrInvalidEncoding, "%s: field", name)
		}
	}
	if !s.Empty() {
		return errors.Wrapf(ErrInvalidEncoding, "%s: trailing bytes", name)
	}
	return nil
}

// versionTag returns the leading tag of data, or 0xff when data is empty so
// that no version matches.
func versionTag(data []byte) byte {
	if len(data) == 0 {
		return 0xff
	}
	return data[0]
}

func addBytes(buf []byte) encodeFunc {
	return func(b *cryptobyte.Builder) {
		b.AddBytes(buf)
	}
}

func readBytes(out []byte) decodeFunc {
	return func(s *cryptobyte.String) bool {
		return s.CopyBytes(out)
	}
}

func addUint32(v uint32) encodeFunc {
	return func(b *cryptobyte.Builder) {
		b.AddBytes(binary.LittleEndian.AppendUint32(nil, v))
	}
}

func readUint32(out *uint32) decodeFunc {
	return func(s *cryptobyte.String) bool {
		var buf []byte
		if !s.ReadBytes(&buf, 4) {
			return false
		}
		*out = binary.LittleEndian.Uint32(buf)
		return true
	}
}

func addUint64(v uint64) encodeFunc {
	return func(b *cryptobyte.Builder) {
		b.AddBytes(binary.LittleEndian.AppendUint64(nil, v))
	}
}

func readUint64(out *uint64) decodeFunc {
	return func(s *cryptobyte.String) bool {
		var buf []byte
		if !s.ReadBytes(&buf, 8) {
			return false
		}
		*out = binary.LittleEndian.Uint64(buf)
		return true
	}
}

// decodeInto allocates a fresh value and decodes into it.
func decodeInto[T any, PT interface {
	*T
	Decode(s *cryptobyte.String) bool
}](out **T) decodeFunc {
	return func(s *cryptobyte.String) bool {
		v := PT(new(T))
		if !v.Decode(s) {
			return false
		}
		*out = (*T)(v)
		return true
	}
}
