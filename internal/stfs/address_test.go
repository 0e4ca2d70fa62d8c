package stfs

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openVariant loads a minimal package whose header size selects the given
// hash-table variant.
func openVariant(tb testing.TB, shift uint32) *Container {
	tb.Helper()

	buf := make([]byte, MinSize)
	binary.BigEndian.PutUint32(buf[0:], MagicCON)
	headerSize := uint32(headerSizeShift0)
	if shift == 1 {
		headerSize = headerSizeShift1
	}
	binary.BigEndian.PutUint32(buf[offHeaderSize:], headerSize)

	c, err := Open(buf)
	require.NoError(tb, err)
	require.Equal(tb, shift, c.shift, "unexpected table size variant")
	return c
}

func TestDataOffsetBelowFirstBoundary(t *testing.T) {
	t.Parallel()

	for _, shift := range []uint32{0, 1} {
		c := openVariant(t, shift)
		for b := Block(0); b < blocksPerTable; b++ {
			assert.Equal(t, int64(dataRegionBase)+int64(b)*blockSize, c.DataOffset(b),
				"shift %d block %d", shift, b)
		}
	}
}

func TestDataOffsetBoundaryCorrections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shift uint32
		block Block
		want  int64
	}{
		// First block past the 0xAA boundary skips the interspersed hash
		// table plus the level-1 table slot.
		{0, 0xAA, dataRegionBase + (0xAA+2)*blockSize},
		{1, 0xAA, dataRegionBase + (0xAA+4)*blockSize},
		// 0x70E4 = 0xAA * 0xAA, the level-1 boundary.
		{0, 0x70E4, dataRegionBase + (0x70E4+0xAB+2)*blockSize},
		{1, 0x70E4, dataRegionBase + (0x70E4+2*(0xAB+2))*blockSize},
	}
	for _, tt := range tests {
		c := openVariant(t, tt.shift)
		assert.Equal(t, tt.want, c.DataOffset(tt.block), "shift %d block 0x%X", tt.shift, tt.block)
	}
}

func TestDataOffsetStrictlyIncreasing(t *testing.T) {
	t.Parallel()

	for _, shift := range []uint32{0, 1} {
		c := openVariant(t, shift)
		prev := c.DataOffset(0)
		// Range crosses both the 0xAA and the 0x70E4 boundaries.
		for b := Block(1); b < 0x70E4+0x200; b++ {
			off := c.DataOffset(b)
			require.Greater(t, off, prev, "shift %d block %d", shift, b)
			prev = off
		}
	}
}

func TestChainRecordOffsetFirstRegion(t *testing.T) {
	t.Parallel()

	t.Run("shift 0", func(t *testing.T) {
		t.Parallel()
		c := openVariant(t, 0)
		for b := Block(0); b < blocksPerTable; b++ {
			assert.Equal(t, int64(0xB000)+int64(b)*chainRecordSize, c.ChainRecordOffset(b))
		}
	})

	t.Run("shift 1", func(t *testing.T) {
		t.Parallel()
		c := openVariant(t, 1)
		for b := Block(0); b < blocksPerTable; b++ {
			assert.Equal(t, int64(0xA000)+int64(b)*chainRecordSize, c.ChainRecordOffset(b))
		}
	})
}

func TestChainRecordOffsetLaterRegions(t *testing.T) {
	t.Parallel()

	c := openVariant(t, 0)

	// Region 1's table backs onto block step 0xAB plus the level-1 slot.
	want := int64(0xB000) + 0xAC*blockSize
	assert.Equal(t, want, c.ChainRecordOffset(0xAA))
	assert.Equal(t, want+chainRecordSize, c.ChainRecordOffset(0xAB))

	// The record slot wraps at each region boundary.
	region2 := int64(0xB000) + (2*0xAB+1)*blockSize
	assert.Equal(t, region2, c.ChainRecordOffset(2*blocksPerTable))
}
