package jxlio

// Must* wrappers panic on error instead of propagating it. They exist for call
// sites deep in bitstream parsing where a read failure is already guarded by an
// outer recoverable boundary (e.g. a speculative parse that retries on NeedMoreInput).

func (br *Bitreader) MustReadBits(bits uint32) uint64 {
	b, err := br.ReadBits(bits)
	if err != nil {
		panic("unable to read bits")
	}
	return b
}

func (br *Bitreader) MustReadBool() bool {
	b, err := br.ReadBool()
	if err != nil {
		panic("unable to read bool")
	}
	return b
}

func (br *Bitreader) MustReadEnum() int32 {
	v, err := br.ReadEnum()
	if err != nil {
		panic("unable to read enum")
	}
	return v
}

func (br *Bitreader) MustReadF16() float32 {
	v, err := br.ReadF16()
	if err != nil {
		panic("unable to read F16")
	}
	return v
}

func (br *Bitreader) MustReadU32(c0 int, u0 int, c1 int, u1 int, c2 int, u2 int, c3 int, u3 int) uint32 {
	v, err := br.ReadU32(c0, u0, c1, u1, c2, u2, c3, u3)
	if err != nil {
		panic("unable to read U32")
	}
	return v
}

func (br *Bitreader) MustReadU64() uint64 {
	v, err := br.ReadU64()
	if err != nil {
		panic("unable to read U64")
	}
	return v
}

func (br *Bitreader) MustShowBits(bits int) uint64 {
	v, err := br.ShowBits(bits)
	if err != nil {
		panic("unable to show bits")
	}
	return v
}

func (br *Bitreader) MustSkipBits(bits uint32) {
	if err := br.SkipBits(bits); err != nil {
		panic("unable to skip bits")
	}
}

// Reset rewinds the reader to the start of the underlying stream.
func (br *Bitreader) Reset() error {
	_, err := br.Seek(0, 0)
	return err
}
