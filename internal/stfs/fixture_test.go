package stfs

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// headerSizeShift0 rounds up to 0xB000, selecting the single-block hash-table
// variant; headerSizeShift1 rounds to 0xA000 and selects the doubled variant.
const (
	headerSizeShift0 = 0xA344
	headerSizeShift1 = 0x971A
)

// fixture builds a synthetic single-variant (shift 0) package in memory. All
// offsets used by its helpers are hardcoded from the format layout rather
// than computed through the code under test, so they stay valid only for
// blocks below the first 0xAA boundary.
type fixture struct {
	tb  testing.TB
	buf []byte
}

// newFixture allocates a package large enough for the given number of data
// blocks, with a LIVE magic tag and a shift-0 header size.
func newFixture(tb testing.TB, blocks int) *fixture {
	tb.Helper()

	size := dataRegionBase + blocks*blockSize
	if size < MinSize {
		size = MinSize
	}
	buf := make([]byte, size)
	binary.BigEndian.PutUint32(buf[0:], MagicLIVE)
	binary.BigEndian.PutUint32(buf[offHeaderSize:], headerSizeShift0)
	return &fixture{tb: tb, buf: buf}
}

// chainRecordAt returns the fixture-side offset of a block's chain record:
// the first hash table sits one block below the data region on shift 0.
func chainRecordAt(b Block) int {
	return 0xB000 + int(b)*chainRecordSize
}

// dataAt returns the fixture-side payload offset of a block below the first
// boundary.
func dataAt(b Block) int {
	return dataRegionBase + int(b)*blockSize
}

// setChain writes the next-block pointer into b's chain record.
func (f *fixture) setChain(b, next Block) {
	f.tb.Helper()
	off := chainRecordAt(b) + chainNextOffset
	f.buf[off] = byte(next >> 16)
	f.buf[off+1] = byte(next >> 8)
	f.buf[off+2] = byte(next)
}

// fillChainRecord fills b's whole chain record with a garbage byte.
func (f *fixture) fillChainRecord(b Block, v byte) {
	f.tb.Helper()
	off := chainRecordAt(b)
	for i := 0; i < chainRecordSize; i++ {
		f.buf[off+i] = v
	}
}

// setFileTable writes the volume descriptor's file table fields, which the
// format stores little-endian.
func (f *fixture) setFileTable(start Block, count uint16) {
	f.tb.Helper()
	f.buf[offTableBlockCount] = byte(count)
	f.buf[offTableBlockCount+1] = byte(count >> 8)
	f.buf[offTableStartBlock] = byte(start)
	f.buf[offTableStartBlock+1] = byte(start >> 8)
	f.buf[offTableStartBlock+2] = byte(start >> 16)
}

// setData copies data into block b's payload.
func (f *fixture) setData(b Block, data []byte) {
	f.tb.Helper()
	require.LessOrEqual(f.tb, len(data), blockSize, "data exceeds one block")
	copy(f.buf[dataAt(b):], data)
}

// entrySpec describes one file table record for the fixture.
type entrySpec struct {
	Name       string
	Dir        bool
	RawNameLen byte // used verbatim when nonzero
	Parent     uint16
	Size       uint32
	Start      Block
	Blocks     uint32
}

// putEntry writes a 64-byte file table record into the given slot of block b.
func (f *fixture) putEntry(b Block, slot int, e entrySpec) {
	f.tb.Helper()
	require.Less(f.tb, len(e.Name), entryNameWidth+1, "name too long for record")

	rec := f.buf[dataAt(b)+slot*tableRecordSize:]
	copy(rec, e.Name)
	rawLen := e.RawNameLen
	if rawLen == 0 {
		rawLen = byte(len(e.Name))
		if e.Dir {
			rawLen |= entryFlagDirectory
		}
	}
	rec[entryNameLenOffset] = rawLen

	// The two 24-bit block fields are stored byte-reversed: low byte first.
	rec[entryBlocksOffset] = byte(e.Blocks)
	rec[entryBlocksOffset+1] = byte(e.Blocks >> 8)
	rec[entryBlocksOffset+2] = byte(e.Blocks >> 16)
	rec[entryStartOffset] = byte(e.Start)
	rec[entryStartOffset+1] = byte(e.Start >> 8)
	rec[entryStartOffset+2] = byte(e.Start >> 16)

	binary.BigEndian.PutUint16(rec[entryParentOffset:], e.Parent)
	binary.BigEndian.PutUint32(rec[entrySizeOffset:], e.Size)
}

// open loads the fixture, failing the test on error.
func (f *fixture) open() *Container {
	f.tb.Helper()
	c, err := Open(f.buf)
	require.NoError(f.tb, err, "Open failed on fixture")
	return c
}
