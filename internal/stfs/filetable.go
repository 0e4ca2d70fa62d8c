package stfs

import (
	"bytes"
	"fmt"
	"strings"
)

// File table record layout, 0x40 bytes per record.
const (
	entryNameWidth     = 0x28
	entryNameLenOffset = 0x28
	entryBlocksOffset  = 0x29 // 24-bit, byte-reversed
	entryStartOffset   = 0x2F // 24-bit, byte-reversed
	entryParentOffset  = 0x32
	entrySizeOffset    = 0x34

	entryFlagDirectory = 0x80
)

// Entry is one parsed row of the package's file table.
type Entry struct {
	// Name is the entry's own name, not its path. ASCII, at most 63 bytes,
	// cut at the first NUL in the fixed-width name field.
	Name string

	// Flags holds the top two bits of the raw name-length byte.
	Flags       uint8
	IsDirectory bool

	// ParentIndex points at the containing directory's position in the file
	// table, or RootParent for entries in the package root.
	ParentIndex uint16

	// Size is the file length in bytes; zero for directories.
	Size uint32

	// StartBlock is the first logical block of the entry's chain.
	StartBlock Block

	// BlockCount is the chain length the table declares. Treated as an upper
	// bound when walking; the chain terminator is authoritative.
	BlockCount uint32
}

// FileTable parses the package's file table, caching the result on first
// success. Parsing is all-or-nothing: no partial table is ever returned.
func (c *Container) FileTable() ([]Entry, error) {
	if c.table == nil {
		table, err := c.parseFileTable()
		if err != nil {
			return nil, err
		}
		c.table = table
	}
	return c.table, nil
}

func (c *Container) parseFileTable() ([]Entry, error) {
	if c.tableBlocks == 0 {
		return nil, fmt.Errorf("%w: file table has no blocks", ErrMalformedContainer)
	}
	if uint32(c.tableStart) >= uint32(ChainTerminator) {
		return nil, &FieldError{
			Err:    ErrMalformedContainer,
			Field:  "file table start block",
			Offset: offTableStartBlock,
			Got:    uint64(c.tableStart),
		}
	}

	blocks, err := c.Chain(c.tableStart, c.tableBlocks)
	if err != nil {
		return nil, fmt.Errorf("resolving file table chain: %w", err)
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: file table chain is empty", ErrMalformedContainer)
	}

	table := make([]Entry, 0, len(blocks)*blockSize/tableRecordSize)
	for _, b := range blocks {
		base := c.DataOffset(b)
		for rec := int64(0); rec+tableRecordSize <= blockSize; rec += tableRecordSize {
			raw, err := c.store.bytes(base+rec, tableRecordSize)
			if err != nil {
				return nil, fmt.Errorf("%w: file table block %d: %v", ErrMalformedContainer, b, err)
			}
			// A record starting with a zero byte ends the whole table, not
			// just this block.
			if raw[0] == 0 {
				return table, nil
			}
			table = append(table, decodeEntry(raw))
		}
	}

	return table, nil
}

func decodeEntry(raw []byte) Entry {
	rawLen := raw[entryNameLenOffset]
	nameLen := int(rawLen & 0x3F)
	if nameLen > entryNameWidth {
		nameLen = entryNameWidth
	}
	name := raw[:nameLen]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}

	blocks := uint32(raw[entryBlocksOffset])<<16 |
		uint32(raw[entryBlocksOffset+1])<<8 |
		uint32(raw[entryBlocksOffset+2])
	start := uint32(raw[entryStartOffset])<<16 |
		uint32(raw[entryStartOffset+1])<<8 |
		uint32(raw[entryStartOffset+2])

	return Entry{
		Name:        string(name),
		Flags:       rawLen >> 6,
		IsDirectory: rawLen&entryFlagDirectory != 0,
		ParentIndex: uint16(raw[entryParentOffset])<<8 | uint16(raw[entryParentOffset+1]),
		Size: uint32(raw[entrySizeOffset])<<24 |
			uint32(raw[entrySizeOffset+1])<<16 |
			uint32(raw[entrySizeOffset+2])<<8 |
			uint32(raw[entrySizeOffset+3]),
		// These two 24-bit fields are stored byte-reversed relative to every
		// other 24-bit field in the format. Format quirk, not a bug.
		StartBlock: Block(reverse24(start)),
		BlockCount: reverse24(blocks),
	}
}

// Path returns the slash-joined path of the file table entry at index,
// resolving ParentIndex links up to the root sentinel. The walk is bounded by
// the table size so that a cycle in the parent links is reported instead of
// looping.
func (c *Container) Path(index int) (string, error) {
	table, err := c.FileTable()
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(table) {
		return "", fmt.Errorf("%w: entry index %d outside table of %d entries", ErrMalformedContainer, index, len(table))
	}

	parts := []string{table[index].Name}
	parent := table[index].ParentIndex
	for steps := 0; parent != RootParent; steps++ {
		if steps >= len(table) {
			return "", fmt.Errorf("%w: parent cycle at entry %d", ErrMalformedContainer, index)
		}
		if int(parent) >= len(table) {
			return "", fmt.Errorf("%w: parent index %d outside table of %d entries", ErrMalformedContainer, parent, len(table))
		}
		parts = append(parts, table[parent].Name)
		parent = table[parent].ParentIndex
	}

	// parts is leaf-to-root; flip it.
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/"), nil
}
