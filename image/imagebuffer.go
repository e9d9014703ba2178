package image

import "fmt"

const (
	TYPE_INT   = 0
	TYPE_FLOAT = 1
)

// ImageBuffer holds one decoded channel's samples, either as integers (raw
// decoded values) or as normalized floats. Only one of IntBuffer/FloatBuffer
// is authoritative at a time; bufferType says which.
type ImageBuffer struct {
	Width  int32
	Height int32

	bufferType int
	BufferType int

	// image data can be either float or int based. Keep separate buffers and just
	// reference each one as required. If conversion will be required then that might get
	// expensive, but will optimise/revisit later.
	FloatBuffer [][]float32
	IntBuffer   [][]int32
}

// NewImageBuffer allocates a zeroed buffer of the given type and dimensions.
func NewImageBuffer(t int, height int32, width int32) (*ImageBuffer, error) {
	if t != TYPE_INT && t != TYPE_FLOAT {
		return nil, fmt.Errorf("unknown image buffer type %d", t)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("illegal image buffer dimensions %dx%d", width, height)
	}

	ib := &ImageBuffer{
		Width:      width,
		Height:     height,
		bufferType: t,
		BufferType: t,
	}

	if t == TYPE_INT {
		ib.IntBuffer = make([][]int32, height)
		for y := range ib.IntBuffer {
			ib.IntBuffer[y] = make([]int32, width)
		}
	} else {
		ib.FloatBuffer = make([][]float32, height)
		for y := range ib.FloatBuffer {
			ib.FloatBuffer[y] = make([]float32, width)
		}
	}
	return ib, nil
}

// NewImageBufferFromInts wraps an existing int32 matrix as an ImageBuffer.
func NewImageBufferFromInts(buffer [][]int32) *ImageBuffer {
	height := int32(len(buffer))
	width := int32(0)
	if height > 0 {
		width = int32(len(buffer[0]))
	}
	return &ImageBuffer{
		Width:      width,
		Height:     height,
		bufferType: TYPE_INT,
		BufferType: TYPE_INT,
		IntBuffer:  buffer,
	}
}

// NewImageBufferFromFloats wraps an existing float32 matrix as an ImageBuffer.
func NewImageBufferFromFloats(buffer [][]float32) *ImageBuffer {
	height := int32(len(buffer))
	width := int32(0)
	if height > 0 {
		width = int32(len(buffer[0]))
	}
	return &ImageBuffer{
		Width:       width,
		Height:      height,
		bufferType:  TYPE_FLOAT,
		BufferType:  TYPE_FLOAT,
		FloatBuffer: buffer,
	}
}

// NewImageBufferFromImageBuffer deep-copies another ImageBuffer.
func NewImageBufferFromImageBuffer(other *ImageBuffer) *ImageBuffer {
	ib := &ImageBuffer{
		Width:      other.Width,
		Height:     other.Height,
		bufferType: other.bufferType,
		BufferType: other.BufferType,
	}
	if other.IntBuffer != nil {
		ib.IntBuffer = make([][]int32, len(other.IntBuffer))
		for y, row := range other.IntBuffer {
			ib.IntBuffer[y] = append([]int32(nil), row...)
		}
	}
	if other.FloatBuffer != nil {
		ib.FloatBuffer = make([][]float32, len(other.FloatBuffer))
		for y, row := range other.FloatBuffer {
			ib.FloatBuffer[y] = append([]float32(nil), row...)
		}
	}
	return ib
}

// Equals compares two ImageBuffers and returns true if they are equal.
func (ib *ImageBuffer) Equals(other ImageBuffer) bool {
	if ib.Width != other.Width || ib.Height != other.Height || ib.bufferType != other.bufferType {
		return false
	}
	if ib.IsInt() {
		return compareMatrix2D(ib.IntBuffer, other.IntBuffer)
	}
	return compareMatrix2DFloat(ib.FloatBuffer, other.FloatBuffer)
}

func compareMatrix2D(a, b [][]int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func compareMatrix2DFloat(a, b [][]float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func (ib *ImageBuffer) IsFloat() bool {
	return ib.bufferType == TYPE_FLOAT
}

func (ib *ImageBuffer) IsInt() bool {
	return ib.bufferType == TYPE_INT
}

// castToFloatBuffer replaces FloatBuffer with IntBuffer normalized by maxValue
// and flips the buffer's active type to float.
func (ib *ImageBuffer) castToFloatBuffer(maxValue int32) error {
	if maxValue <= 0 {
		return fmt.Errorf("illegal max value %d", maxValue)
	}
	ib.FloatBuffer = make([][]float32, len(ib.IntBuffer))
	scale := 1.0 / float32(maxValue)
	for y, row := range ib.IntBuffer {
		floatRow := make([]float32, len(row))
		for x, v := range row {
			floatRow[x] = float32(v) * scale
		}
		ib.FloatBuffer[y] = floatRow
	}
	ib.bufferType = TYPE_FLOAT
	ib.BufferType = TYPE_FLOAT
	return nil
}

// castToIntBuffer replaces IntBuffer with FloatBuffer scaled by maxValue and
// flips the buffer's active type to int.
func (ib *ImageBuffer) castToIntBuffer(maxValue int32) error {
	if maxValue <= 0 {
		return fmt.Errorf("illegal max value %d", maxValue)
	}
	ib.IntBuffer = make([][]int32, len(ib.FloatBuffer))
	for y, row := range ib.FloatBuffer {
		intRow := make([]int32, len(row))
		for x, v := range row {
			intRow[x] = int32(v*float32(maxValue) + 0.5)
		}
		ib.IntBuffer[y] = intRow
	}
	ib.bufferType = TYPE_INT
	ib.BufferType = TYPE_INT
	return nil
}

// CastToFloatIfMax converts an int-typed buffer to a normalized float buffer.
// No-op if the buffer is already float.
func (ib *ImageBuffer) CastToFloatIfMax(maxValue int32) error {
	if ib.IsInt() {
		return ib.castToFloatBuffer(maxValue)
	}
	return nil
}

// CastToIntIfMax converts a float-typed buffer to a maxValue-scaled int buffer.
// No-op if the buffer is already int.
func (ib *ImageBuffer) CastToIntIfMax(maxValue int32) error {
	if ib.IsFloat() {
		return ib.castToIntBuffer(maxValue)
	}
	return nil
}

// Clamp restricts sample values to [0, maxValue] for int buffers, or [0, 1]
// for float buffers.
func (ib *ImageBuffer) Clamp(maxValue int32) error {
	if ib.IsInt() {
		for _, row := range ib.IntBuffer {
			for x, v := range row {
				if v < 0 {
					row[x] = 0
				} else if v > maxValue {
					row[x] = maxValue
				}
			}
		}
		return nil
	}
	for _, row := range ib.FloatBuffer {
		for x, v := range row {
			if v < 0 {
				row[x] = 0
			} else if v > 1 {
				row[x] = 1
			}
		}
	}
	return nil
}

// ImageBufferSliceEquals compares two slices of ImageBuffer element-wise.
func ImageBufferSliceEquals(a []ImageBuffer, b []ImageBuffer) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}
