package pnm

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/kpfaulkner/jxlstream/color"
	image2 "github.com/kpfaulkner/jxlstream/image"
)

// decodePFM parses a Pf/PF header (width/height separated by a single
// whitespace byte, then a scale-factor line whose sign gives the
// endianness) and un-flips the bottom-up scanlines into top-down
// row-major float buffers.
func decodePFM(br *bufio.Reader, color3 bool) (*Image, error) {
	width, err := readPFMUint(br)
	if err != nil {
		return nil, err
	}
	height, err := readPFMUint(br)
	if err != nil {
		return nil, err
	}
	scaleTok, err := readPFMToken(br)
	if err != nil {
		return nil, err
	}
	scale, ok := ParseSigned(scaleTok)
	if !ok {
		return nil, fmt.Errorf("pfm: invalid scale factor %q", scaleTok)
	}
	byteOrder := binary.ByteOrder(binary.BigEndian)
	if scale < 0 {
		byteOrder = binary.LittleEndian
	}

	channels := 1
	kind := KindPFMGray
	if color3 {
		channels = 3
		kind = KindPFMColor
	}

	buffers := make([]image2.ImageBuffer, channels)
	for c := range buffers {
		ib, err := image2.NewImageBuffer(image2.TYPE_FLOAT, int32(height), int32(width))
		if err != nil {
			return nil, err
		}
		buffers[c] = *ib
	}

	raw := make([]byte, int(width)*channels*4)
	for y := int(height) - 1; y >= 0; y-- {
		if _, err := io.ReadFull(br, raw); err != nil {
			return nil, fmt.Errorf("pfm: reading scanline: %w", err)
		}
		pos := 0
		for x := 0; x < int(width); x++ {
			for c := 0; c < channels; c++ {
				bits := byteOrder.Uint32(raw[pos : pos+4])
				buffers[c].FloatBuffer[y][x] = math.Float32frombits(bits)
				pos += 4
			}
		}
	}

	ce := color.CE_RGB
	if !color3 {
		ce = color.CE_GRAY
	}
	return &Image{
		Kind:          kind,
		Width:         uint32(width),
		Height:        uint32(height),
		Gray:          !color3,
		BitsPerSample: 32,
		ColorEncoding: ce,
		Buffer:        buffers,
	}, nil
}

// EncodePFM writes img out as Pf/PF: the textual "width height\nscale\n"
// header (scale is always 1.0, i.e. big-endian) followed by bottom-up
// raw scanlines, per §4.8's encoder contract.
func (img *Image) EncodePFM(w io.Writer) error {
	magic := "PF"
	channels := 3
	if img.Gray {
		magic = "Pf"
		channels = 1
	}
	header := fmt.Sprintf("%s\n%d %d\n1.0\n", magic, img.Width, img.Height)
	if _, err := w.Write([]byte(header)); err != nil {
		return err
	}

	raw := make([]byte, int(img.Width)*channels*4)
	for y := int(img.Height) - 1; y >= 0; y-- {
		pos := 0
		for x := 0; x < int(img.Width); x++ {
			for c := 0; c < channels; c++ {
				binary.BigEndian.PutUint32(raw[pos:pos+4], math.Float32bits(img.Buffer[c].FloatBuffer[y][x]))
				pos += 4
			}
		}
		if _, err := w.Write(raw); err != nil {
			return err
		}
	}
	return nil
}

func readPFMUint(br *bufio.Reader) (uint64, error) {
	tok, err := readPFMToken(br)
	if err != nil {
		return 0, err
	}
	v, ok := ParseUnsigned(tok)
	if !ok {
		return 0, fmt.Errorf("pfm: invalid unsigned token %q", tok)
	}
	return v, nil
}

// readPFMToken reads one field, which ends at the first space, LF or CR
// byte after it. Spaces, LFs and CRs before a field are skipped, so a run
// of whitespace between fields is accepted rather than rejected. Tabs and
// '#' comments are not treated as separators.
func readPFMToken(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err != nil {
			return "", fmt.Errorf("pfm: reading header token: %w", err)
		}
		if b == ' ' || b == '\n' || b == '\r' {
			if sb.Len() == 0 {
				continue
			}
			return sb.String(), nil
		}
		sb.WriteByte(b)
	}
}
