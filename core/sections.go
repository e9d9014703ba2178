package core

import (
	"errors"

	"github.com/kpfaulkner/jxlstream/jxlio"
)

// SectionInfo describes one independently decodable byte range within a
// frame's TOC (component table's C5).
type SectionInfo struct {
	Index int
	Size  uint32
}

// SectionManager implements the per-frame section-arrival bookkeeping: given
// a frame's TOC and the codestream bytes currently buffered, it tracks which
// sections have fully arrived and reports readiness deterministically from
// byte-range arithmetic instead of attempting a decode and classifying the
// failure.
//
// frame.Frame.DecodeFrame has no incremental per-section entry point - it
// reads every TOC buffer sequentially off one shared reader inside its own
// setupBitReaders - so unlike a true streaming section dispatcher this
// cannot hand sections to the inner decoder one at a time as they complete.
// What it can do, and does, is decide deterministically whether the full
// batch is safe to hand over yet, replacing the previous approach of just
// calling DecodeFrame and reclassifying whatever panic or error came back
// as a shortage. See DESIGN.md's C4/C5 ledger entry.
type SectionManager struct {
	sections        []SectionInfo
	sectionReceived []bool
}

// NewSectionManager builds a manager from a frame's parsed TOC lengths.
func NewSectionManager(tocLengths []uint32) *SectionManager {
	sections := make([]SectionInfo, len(tocLengths))
	for i, l := range tocLengths {
		sections[i] = SectionInfo{Index: i, Size: l}
	}
	return &SectionManager{
		sections:        sections,
		sectionReceived: make([]bool, len(tocLengths)),
	}
}

func (sm *SectionManager) NumSections() int {
	return len(sm.sections)
}

func (sm *SectionManager) NumReceived() int {
	n := 0
	for _, r := range sm.sectionReceived {
		if r {
			n++
		}
	}
	return n
}

// Update probes, in TOC order, how many trailing sections are now fully
// available in the held window by attempting to skip each one's byte span
// from the reader's current position without consuming any bytes. Sections
// in a frame's TOC are laid out back-to-back in bitstream order, so
// received sections are always a contiguous prefix; a gap can never occur,
// since bytes for a frame arrive in file order. Returns the
// newly-completed SectionInfo values in index order.
func (sm *SectionManager) Update(br *jxlio.Bitreader) []SectionInfo {
	var newly []SectionInfo
	var offset uint32
	for i, s := range sm.sections {
		if sm.sectionReceived[i] {
			offset += s.Size
			continue
		}
		if !br.PeekSkippable(offset + s.Size) {
			break
		}
		sm.sectionReceived[i] = true
		newly = append(newly, s)
		offset += s.Size
	}
	return newly
}

func (sm *SectionManager) AllReceived() bool {
	return sm.NumReceived() == len(sm.sections)
}

// AllReadsWithinBounds reports whether every section this manager tracks is
// fully covered by bytes already supplied to the decoder. Calling
// ProcessSections before this is true would have the inner decoder read
// past the end of the held window.
func (sm *SectionManager) AllReadsWithinBounds() bool {
	return sm.AllReceived()
}

var errSectionsNotReceived = errors.New("insufficient section bytes buffered for this frame")

// ProcessSections hands the batch to the inner decoder once every section
// has been marked received. It gives the frame-stage driver one explicit
// call site that won't attempt the decode call until AllReadsWithinBounds
// is true.
func (sm *SectionManager) ProcessSections(decode func() error) error {
	if !sm.AllReadsWithinBounds() {
		return errSectionsNotReceived
	}
	return decode()
}
