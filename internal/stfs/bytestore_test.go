package stfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteStoreReads(t *testing.T) {
	t.Parallel()

	s := byteStore{buf: []byte{0x12, 0x34, 0x56, 0x78, 0x9A}}

	v8, err := s.uint8(4)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x9A), v8)

	v16, err := s.uint16(1)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x3456), v16)

	v24, err := s.uint24(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x123456), v24)

	v32, err := s.uint32(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v32)

	b, err := s.bytes(2, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x56, 0x78, 0x9A}, b)
}

func TestByteStoreBounds(t *testing.T) {
	t.Parallel()

	s := byteStore{buf: make([]byte, 8)}

	for _, tt := range []struct {
		name string
		err  error
	}{
		{"past end", func() error { _, err := s.uint32(6); return err }()},
		{"negative offset", func() error { _, err := s.uint8(-1); return err }()},
		{"negative length", func() error { _, err := s.bytes(0, -1); return err }()},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, ErrOutOfBounds)

			var boundsErr *BoundsError
			require.ErrorAs(t, tt.err, &boundsErr)
			assert.Equal(t, int64(8), boundsErr.Size)
		})
	}
}

func TestReverse24(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint32(0x563412), reverse24(0x123456))
	assert.Equal(t, uint32(0xFFFFFF), reverse24(0xFFFFFF))
	assert.Equal(t, uint32(0x010000), reverse24(0x000001))
	assert.Equal(t, uint32(0x123456), reverse24(reverse24(0x123456)))
}
