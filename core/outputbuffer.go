package core

import (
	"errors"

	"github.com/kpfaulkner/jxlstream/bundle"
	"github.com/kpfaulkner/jxlstream/color"
	image2 "github.com/kpfaulkner/jxlstream/image"
)

// ScanlineWriter is the streaming float32 output path: a caller that wants
// native-endian float32 RGB/RGBA rows as they become available implements
// this instead of waiting for a whole *JXLImage. CallerData is opaque,
// caller-owned state threaded through unchanged.
type ScanlineWriter interface {
	WriteScanline(x, y, count int, pixels []float32, callerData interface{}) error
}

// OutputAdapter is the component table's C7: it converts a composited
// still into a raw 8-bit-per-channel buffer or a float32 ScanlineWriter.
// The third output path, a *JXLImage handed to a plain callback, is
// dispatched by StreamDecoder.finalizeStill and not by this type.
type OutputAdapter struct {
	header *bundle.ImageHeader
}

func NewOutputAdapter(header *bundle.ImageHeader) *OutputAdapter {
	return &OutputAdapter{header: header}
}

// RowStride computes the byte stride of one row for the given channel
// count and bit depth, ceil-dividing to bytes and rounding up to the given
// byte alignment.
func RowStride(width, channels, bitsPerSample, alignment int) int {
	bitsPerPixel := channels * bitsPerSample
	bytesPerPixel := (bitsPerPixel + 7) / 8
	stride := width * bytesPerPixel
	if alignment > 1 {
		stride = ((stride + alignment - 1) / alignment) * alignment
	}
	return stride
}

// WriteRaw8 writes a composited still into a caller-supplied raw
// 8-bit-per-channel RGB/RGBA buffer, bypassing the float/JXLImage
// conversion path entirely.
func (a *OutputAdapter) WriteRaw8(dst []byte, buffer []image2.ImageBuffer, wantAlpha bool) error {
	if a.header.ColorEncoding.ColorEncoding == color.CE_GRAY {
		return errors.New("raw RGB/RGBA output buffer requested for a grayscale source")
	}
	if len(buffer) < 3 {
		return errors.New("insufficient channel buffers for RGB output")
	}
	channels := 3
	if wantAlpha {
		channels = 4
	}
	width := int(buffer[0].Width)
	height := int(buffer[0].Height)
	stride := RowStride(width, channels, 8, 1)
	if len(dst) < stride*height {
		return errors.New("raw output buffer too small")
	}
	for y := 0; y < height; y++ {
		row := y * stride
		for x := 0; x < width; x++ {
			off := row + x*channels
			dst[off+0] = sample8(&buffer[0], x, y)
			dst[off+1] = sample8(&buffer[1], x, y)
			dst[off+2] = sample8(&buffer[2], x, y)
			if wantAlpha {
				if len(buffer) > 3 {
					dst[off+3] = sample8(&buffer[3], x, y)
				} else {
					dst[off+3] = 255
				}
			}
		}
	}
	return nil
}

func sample8(b *image2.ImageBuffer, x, y int) byte {
	if b.IsFloat() {
		v := b.FloatBuffer[y][x] * 255
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return byte(v)
	}
	v := b.IntBuffer[y][x]
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return byte(v)
}

// WriteScanlines streams a composited still to a ScanlineWriter one row at
// a time, for native-endian float32 RGB/RGBA callers.
func (a *OutputAdapter) WriteScanlines(w ScanlineWriter, buffer []image2.ImageBuffer, wantAlpha bool, callerData interface{}) error {
	if a.header.ColorEncoding.ColorEncoding == color.CE_GRAY {
		return errors.New("RGB/RGBA scanline callback requested for a grayscale source")
	}
	if len(buffer) < 3 {
		return errors.New("insufficient channel buffers for RGB output")
	}
	channels := 3
	if wantAlpha {
		channels = 4
	}
	width := int(buffer[0].Width)
	height := int(buffer[0].Height)
	row := make([]float32, width*channels)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := x * channels
			row[off+0] = sampleFloat(&buffer[0], x, y)
			row[off+1] = sampleFloat(&buffer[1], x, y)
			row[off+2] = sampleFloat(&buffer[2], x, y)
			if wantAlpha {
				if len(buffer) > 3 {
					row[off+3] = sampleFloat(&buffer[3], x, y)
				} else {
					row[off+3] = 1
				}
			}
		}
		if err := w.WriteScanline(0, y, width, row, callerData); err != nil {
			return err
		}
	}
	return nil
}

func sampleFloat(b *image2.ImageBuffer, x, y int) float32 {
	if b.IsFloat() {
		return b.FloatBuffer[y][x]
	}
	const maxVal = float32((1 << 8) - 1)
	return float32(b.IntBuffer[y][x]) / maxVal
}
