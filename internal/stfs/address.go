package stfs

// DataOffset returns the physical byte offset of the 4 KiB payload for
// logical block b.
//
// Data blocks are contiguous from the base of the data region except that a
// hash table (one or two blocks wide, per the shift variant) is inserted
// after every 0xAA blocks, and a higher-level table after every 0x70E4. The
// correction terms skip over those inserted blocks; blocks below the first
// boundary need none.
func (c *Container) DataOffset(b Block) int64 {
	n := uint32(b)
	adjust := int64(0)
	if n >= blocksPerTable {
		adjust += int64((n/blocksPerTable + 1) << c.shift)
	}
	if n >= blocksPerL1Table {
		adjust += int64((n/blocksPerL1Table + 1) << c.shift)
	}
	return dataRegionBase + (int64(n)+adjust)*blockSize
}

// ChainRecordOffset returns the physical byte offset of the 24-byte chain
// record for logical block b.
//
// Each hash table covers the 0xAA blocks that follow it and holds one record
// per block. The first table sits immediately below the data region; later
// tables are placed in the same block space as the data, so locating one
// applies the same two boundary corrections as DataOffset.
func (c *Container) ChainRecordOffset(b Block) int64 {
	n := uint32(b)
	record := int64(n%blocksPerTable) * chainRecordSize

	var table int64
	if n >= blocksPerTable {
		table = int64(n/blocksPerTable) * int64(blocksPerTable+1<<c.shift)
		table += int64((n/blocksPerL1Table + 1) << c.shift)
		if n >= blocksPerL1Table {
			table += int64(1 << c.shift)
		}
	}

	firstTable := int64(dataRegionBase) - int64(1<<c.shift)*blockSize
	return firstTable + table*blockSize + record
}
