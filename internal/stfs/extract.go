package stfs

import "fmt"

// Extract returns the contents of a file entry by walking its block chain and
// concatenating the block payloads, trimming the final partial block to the
// declared size.
//
// If the chain ends before the declared size is satisfied, the bytes read so
// far are returned together with ErrTruncatedData; short output is never
// produced silently.
func (c *Container) Extract(e Entry) ([]byte, error) {
	if e.IsDirectory {
		return nil, fmt.Errorf("%w: %s", ErrNotAFile, e.Name)
	}
	if e.Size == 0 {
		return []byte{}, nil
	}

	blocks, err := c.Chain(e.StartBlock, e.BlockCount)
	if err != nil {
		return nil, fmt.Errorf("resolving chain for %s: %w", e.Name, err)
	}

	out := make([]byte, 0, e.Size)
	remaining := int64(e.Size)
	for _, b := range blocks {
		if remaining <= 0 {
			break
		}
		n := remaining
		if n > blockSize {
			n = blockSize
		}
		chunk, err := c.store.bytes(c.DataOffset(b), n)
		if err != nil {
			return nil, fmt.Errorf("%w: data block %d for %s: %v", ErrMalformedContainer, b, e.Name, err)
		}
		out = append(out, chunk...)
		remaining -= blockSize
	}

	if remaining > 0 {
		return out, fmt.Errorf("%w: %s: chain ended %d bytes short of declared size %d",
			ErrTruncatedData, e.Name, remaining, e.Size)
	}
	return out, nil
}
