package frame

// TotalSectionBytes returns the sum of every TOC entry's byte length,
// i.e. the number of section bytes the frame still needs available in
// the reader before DecodeFrame can run to completion. Populated by
// ReadTOC.
func (f *Frame) TotalSectionBytes() uint32 {
	var total uint32
	for _, l := range f.tocLengths {
		total += l
	}
	return total
}

// NumSections reports how many TOC entries (independently decodable
// sections) this frame has.
func (f *Frame) NumSections() int {
	return len(f.tocLengths)
}

// TOCLengths returns a copy of the per-TOC-entry byte lengths parsed by
// ReadTOC, used by core.SectionManager to check per-section byte-range
// availability before handing sections to DecodeFrame.
func (f *Frame) TOCLengths() []uint32 {
	out := make([]uint32, len(f.tocLengths))
	copy(out, f.tocLengths)
	return out
}
