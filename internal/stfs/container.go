package stfs

// Package magic tags, big-endian over the first four bytes.
const (
	MagicCON  uint32 = 0x434F4E20 // "CON ", console-signed
	MagicLIVE uint32 = 0x4C495645 // "LIVE", Xbox Live-signed
	MagicPIRS uint32 = 0x50495253 // "PIRS", Microsoft-signed
)

// Fixed layout constants of the format.
const (
	// MinSize is the smallest valid package: the metadata header through the
	// end of the title thumbnail region.
	MinSize = 0x971A

	dataRegionBase   = 0xC000
	blockSize        = 0x1000
	chainRecordSize  = 0x18
	blocksPerTable   = 0xAA   // data blocks covered by one hash table
	blocksPerL1Table = 0x70E4 // data blocks covered by one level-1 table

	tableRecordSize = 0x40
)

// Block is a logical 24-bit index into the package's data-block space.
type Block uint32

// ChainTerminator marks the end of a block chain.
const ChainTerminator Block = 0xFFFFFF

// RootParent is the parent index of entries that live in the package root.
const RootParent uint16 = 0xFFFF

// Metadata header offsets.
const (
	offSignatureStart = 0x004
	offSignatureEnd   = 0x22C

	offContentID  = 0x32C
	offHeaderSize = 0x340

	offContentType = 0x344
	offMediaID     = 0x354
	offTitleID     = 0x360

	offTableBlockCount = 0x37C // uint16, little-endian
	offTableStartBlock = 0x37E // 24-bit, little-endian

	offDisplayName = 0x411
	offDescription = 0xD11
	offPublisher   = 0x1611
	offTitleName   = 0x1691

	offThumbnailSize      = 0x1712
	offTitleThumbnailSize = 0x1716
	offThumbnail          = 0x171A
	offTitleThumbnail     = 0x571A
	maxThumbnailSize      = 0x4000

	utf16FieldWidth = 0x80
)

// Container is a loaded STFS package: the raw buffer plus the state derived
// from its header. Obtain one via Open; a Container that exists is always in
// a loaded, validated state.
type Container struct {
	store byteStore
	magic uint32

	// shift selects between the two hash-table size variants. 0 means one
	// hash block per table position, 1 means two. Derived once from the
	// header-size field and immutable afterwards; all address translation
	// depends on it.
	shift uint32

	tableStart  Block
	tableBlocks uint32

	table []Entry
}

// Open validates data as an STFS package and returns a Container over it.
// The buffer is retained, not copied; the Container reads (and, for Resign,
// writes) it in place.
func Open(data []byte) (*Container, error) {
	if len(data) < MinSize {
		return nil, &FieldError{
			Err:    ErrUnrecognizedFormat,
			Field:  "package size",
			Offset: 0,
			Want:   MinSize,
			Got:    uint64(len(data)),
		}
	}

	s := byteStore{buf: data}
	magic := s.headerUint32(0)
	switch magic {
	case MagicCON, MagicLIVE, MagicPIRS:
	default:
		return nil, &FieldError{
			Err:    ErrUnrecognizedFormat,
			Field:  "magic tag",
			Offset: 0,
			Got:    uint64(magic),
		}
	}

	c := &Container{
		store: s,
		magic: magic,
	}

	// Header sizes that round up to 0xB000 leave room for a single hash
	// block per table position; anything else (console packages round to
	// 0xA000) uses the doubled variant.
	headerSize := s.headerUint32(offHeaderSize)
	if ((headerSize+0xFFF)&0xF000)>>12 == 0xB {
		c.shift = 0
	} else {
		c.shift = 1
	}

	// The volume descriptor stores these two fields little-endian, unlike
	// the rest of the header.
	c.tableBlocks = uint32(s.buf[offTableBlockCount]) | uint32(s.buf[offTableBlockCount+1])<<8
	c.tableStart = Block(uint32(s.buf[offTableStartBlock]) |
		uint32(s.buf[offTableStartBlock+1])<<8 |
		uint32(s.buf[offTableStartBlock+2])<<16)

	return c, nil
}

// Magic returns the package's type tag.
func (c *Container) Magic() uint32 {
	return c.magic
}

// Type returns the package's type tag as its four-character name.
func (c *Container) Type() string {
	return string([]byte{byte(c.magic >> 24), byte(c.magic >> 16), byte(c.magic >> 8), byte(c.magic)})
}

// Size returns the package length in bytes.
func (c *Container) Size() int64 {
	return c.store.size()
}

// Bytes returns the underlying buffer. Mutations made through Resign are
// visible here; persisting them is the caller's job.
func (c *Container) Bytes() []byte {
	return c.store.buf
}
