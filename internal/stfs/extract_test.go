package stfs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pattern fills n bytes with a deterministic sequence seeded per block so
// adjacent blocks are distinguishable.
func pattern(seed byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = seed + byte(i)
	}
	return out
}

func TestExtractSingleFullBlock(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 8)
	want := pattern(0x10, blockSize)
	f.setData(2, want)
	f.fillChainRecord(2, 0xFF) // single-block chain must not read the record
	c := f.open()

	data, err := c.Extract(Entry{Name: "one.bin", Size: blockSize, StartBlock: 2, BlockCount: 1})
	require.NoError(t, err)
	assert.True(t, bytes.Equal(want, data), "extracted bytes differ")
}

func TestExtractPartialFinalBlock(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 8)
	first := pattern(0x20, blockSize)
	second := pattern(0x30, blockSize)
	f.setData(3, first)
	f.setData(5, second)
	f.setChain(3, 5)
	f.setChain(5, ChainTerminator)
	c := f.open()

	data, err := c.Extract(Entry{Name: "two.bin", Size: 5000, StartBlock: 3, BlockCount: 2})
	require.NoError(t, err)
	require.Len(t, data, 5000)
	assert.True(t, bytes.Equal(first, data[:blockSize]))
	assert.True(t, bytes.Equal(second[:904], data[blockSize:]))
}

func TestExtractTruncatedChain(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 8)
	f.setData(1, pattern(0x40, blockSize))
	// Chain ends after one block although the entry declares two.
	f.setChain(1, ChainTerminator)
	c := f.open()

	data, err := c.Extract(Entry{Name: "short.bin", Size: 5000, StartBlock: 1, BlockCount: 2})
	assert.ErrorIs(t, err, ErrTruncatedData)
	assert.Len(t, data, blockSize, "short contents must still be returned")
}

func TestExtractDirectory(t *testing.T) {
	t.Parallel()

	c := newFixture(t, 2).open()
	_, err := c.Extract(Entry{Name: "dir", IsDirectory: true})
	assert.ErrorIs(t, err, ErrNotAFile)
}

func TestExtractEmptyFile(t *testing.T) {
	t.Parallel()

	c := newFixture(t, 2).open()
	data, err := c.Extract(Entry{Name: "empty", Size: 0, StartBlock: ChainTerminator})
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestExtractBlockOutsideBuffer(t *testing.T) {
	t.Parallel()

	c := newFixture(t, 2).open()
	_, err := c.Extract(Entry{Name: "bogus", Size: 100, StartBlock: 0x9000, BlockCount: 1})
	assert.ErrorIs(t, err, ErrMalformedContainer)
}
