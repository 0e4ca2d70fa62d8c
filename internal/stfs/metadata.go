package stfs

import "fmt"

// Fixed-offset metadata accessors. All of these live inside the region that
// Open's minimum-size check guarantees, so the plain reads cannot go out of
// bounds. None of them touch the block address space.

// ContentType returns the raw content-type code.
func (c *Container) ContentType() uint32 {
	return c.store.headerUint32(offContentType)
}

// TitleID returns the title identifier of the owning game.
func (c *Container) TitleID() uint32 {
	return c.store.headerUint32(offTitleID)
}

// MediaID returns the package's media identifier.
func (c *Container) MediaID() uint32 {
	return c.store.headerUint32(offMediaID)
}

// ContentID returns the 20-byte content identifier hash as uppercase hex.
func (c *Container) ContentID() string {
	return fmt.Sprintf("%X", c.store.buf[offContentID:offContentID+20])
}

// DisplayName returns the package's display name.
func (c *Container) DisplayName() string {
	return c.store.headerString(offDisplayName, utf16FieldWidth)
}

// Description returns the package's description.
func (c *Container) Description() string {
	return c.store.headerString(offDescription, utf16FieldWidth)
}

// Publisher returns the publisher name.
func (c *Container) Publisher() string {
	return c.store.headerString(offPublisher, utf16FieldWidth)
}

// TitleName returns the owning game's title.
func (c *Container) TitleName() string {
	return c.store.headerString(offTitleName, utf16FieldWidth)
}

// Thumbnail returns the package thumbnail image bytes, or nil when the
// package carries none.
func (c *Container) Thumbnail() ([]byte, error) {
	return c.thumbnail(offThumbnailSize, offThumbnail)
}

// TitleThumbnail returns the title thumbnail image bytes, or nil when the
// package carries none.
func (c *Container) TitleThumbnail() ([]byte, error) {
	return c.thumbnail(offTitleThumbnailSize, offTitleThumbnail)
}

func (c *Container) thumbnail(sizeOff, dataOff int64) ([]byte, error) {
	size := int64(c.store.headerUint32(sizeOff))
	if size == 0 {
		return nil, nil
	}
	if size > maxThumbnailSize {
		return nil, &FieldError{
			Err:    ErrMalformedContainer,
			Field:  "thumbnail size",
			Offset: sizeOff,
			Want:   maxThumbnailSize,
			Got:    uint64(size),
		}
	}
	return c.store.bytes(dataOff, size)
}
