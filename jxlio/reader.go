package jxlio

// BitReader is the bitstream abstraction threaded through header, frame and
// entropy decoding. Bitreader is the concrete pektezol/bitreader-backed
// implementation; testcommon.BitReaderRecorder wraps one for call recording
// in tests.
type BitReader interface {
	ReadBits(bits uint32) (uint64, error)
	ReadBool() (bool, error)
	ReadByte() (uint8, error)
	ReadBytesToBuffer(buffer []uint8, numBytes uint32) error
	ReadByteArrayWithOffsetAndLength(buffer []byte, offset int64, length uint32) error
	ReadEnum() (int32, error)
	ReadF16() (float32, error)
	ReadICCVarint() (int32, error)
	ReadU32(c0, u0, c1, u1, c2, u2, c3, u3 int) (uint32, error)
	ReadU64() (uint64, error)
	ReadU8() (int, error)
	ReadBytesUint64(noBytes int) (uint64, error)

	MustReadBits(bits uint32) uint64
	MustReadBool() bool
	MustReadEnum() int32
	MustReadF16() float32
	MustReadU32(c0, u0, c1, u1, c2, u2, c3, u3 int) uint32
	MustReadU64() uint64
	MustShowBits(bits int) uint64

	ShowBits(bits int) (uint64, error)
	SkipBits(bits uint32) error
	Skip(bytes uint32) error
	ZeroPadToByte() error

	GetBitsCount() uint64
	BitsRead() uint64
	AtEnd() bool
	Seek(offset int64, whence int) (int64, error)
	Reset() error
}

var _ BitReader = (*Bitreader)(nil)
