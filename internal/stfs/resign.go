package stfs

// Resign overwrites the package's type tag and zeroes the signature region.
//
// This is a cosmetic operation: no signature is generated, so the result only
// passes on targets that skip signature checks. The mutation happens in the
// Container's buffer; the caller persists it via Bytes.
func (c *Container) Resign(tag uint32) error {
	switch tag {
	case MagicCON, MagicLIVE, MagicPIRS:
	default:
		return &FieldError{
			Err:   ErrUnrecognizedFormat,
			Field: "resign tag",
			Got:   uint64(tag),
		}
	}

	c.store.putUint32(0, tag)
	c.store.zero(offSignatureStart, offSignatureEnd-offSignatureStart)
	c.magic = tag
	return nil
}
