package stfs

import "fmt"

// Offset of the next-block pointer inside a chain record: a 0x14-byte block
// hash, one status byte, then the 24-bit pointer.
const chainNextOffset = 0x15

// Chain returns the ordered sequence of physical blocks in the chain that
// starts at start.
//
// expectedCount is the block count declared by the file table. It is an upper
// bound, not a guarantee: the chain's own terminator is authoritative, so the
// result may be shorter. A terminator or self-referencing next pointer ends
// the walk early, which also bounds traversal of corrupt chains. The result
// never contains the terminator and never exceeds expectedCount entries; with
// expectedCount of one the start block is returned without reading any chain
// record.
func (c *Container) Chain(start Block, expectedCount uint32) ([]Block, error) {
	if expectedCount == 0 {
		return nil, nil
	}

	blocks := make([]Block, 1, expectedCount)
	blocks[0] = start

	for uint32(len(blocks)) < expectedCount {
		current := blocks[len(blocks)-1]
		next, err := c.nextBlock(current)
		if err != nil {
			return nil, err
		}
		if next == ChainTerminator || next == current {
			break
		}
		blocks = append(blocks, next)
	}

	return blocks, nil
}

// nextBlock reads the next-block pointer from the chain record of b.
func (c *Container) nextBlock(b Block) (Block, error) {
	next, err := c.store.uint24(c.ChainRecordOffset(b) + chainNextOffset)
	if err != nil {
		return 0, fmt.Errorf("%w: chain record for block %d: %v", ErrMalformedContainer, b, err)
	}
	return Block(next), nil
}
