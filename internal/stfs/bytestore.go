package stfs

import (
	"encoding/binary"
	"unicode/utf16"
)

// byteStore wraps the raw package buffer with bounds-checked big-endian reads
// plus the handful of fixed-offset accessors and writes the header paths need.
// STFS is big-endian throughout except for a few little-endian quirks handled
// explicitly at the call sites.
type byteStore struct {
	buf []byte
}

func (s byteStore) size() int64 {
	return int64(len(s.buf))
}

func (s byteStore) check(off, n int64) error {
	if off < 0 || n < 0 || off+n > int64(len(s.buf)) {
		return &BoundsError{Offset: off, Length: n, Size: int64(len(s.buf))}
	}
	return nil
}

func (s byteStore) uint8(off int64) (uint8, error) {
	if err := s.check(off, 1); err != nil {
		return 0, err
	}
	return s.buf[off], nil
}

func (s byteStore) uint16(off int64) (uint16, error) {
	if err := s.check(off, 2); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(s.buf[off:]), nil
}

func (s byteStore) uint24(off int64) (uint32, error) {
	if err := s.check(off, 3); err != nil {
		return 0, err
	}
	return uint32(s.buf[off])<<16 | uint32(s.buf[off+1])<<8 | uint32(s.buf[off+2]), nil
}

func (s byteStore) uint32(off int64) (uint32, error) {
	if err := s.check(off, 4); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(s.buf[off:]), nil
}

func (s byteStore) bytes(off, n int64) ([]byte, error) {
	if err := s.check(off, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, s.buf[off:off+n])
	return out, nil
}

// reverse24 swaps the byte order of a 24-bit value. A few fields in this
// format store their 24-bit integers reversed relative to every other
// big-endian field; callers re-reverse after the generic read.
func reverse24(v uint32) uint32 {
	return (v&0xFF)<<16 | (v & 0xFF00) | v>>16
}

// Header accessors. Open guarantees the buffer holds at least the full
// metadata header, so reads below that watermark cannot fail and skip the
// bounds check.

func (s byteStore) headerUint32(off int64) uint32 {
	return binary.BigEndian.Uint32(s.buf[off:])
}

// headerString decodes a fixed-width UTF-16BE header field, stopping at the
// first NUL code unit.
func (s byteStore) headerString(off, width int64) string {
	units := make([]uint16, 0, width/2)
	for i := int64(0); i+1 < width; i += 2 {
		u := binary.BigEndian.Uint16(s.buf[off+i:])
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units))
}

func (s byteStore) putUint32(off int64, v uint32) {
	binary.BigEndian.PutUint32(s.buf[off:], v)
}

func (s byteStore) zero(off, n int64) {
	clear(s.buf[off : off+n])
}
