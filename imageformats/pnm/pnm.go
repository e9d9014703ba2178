// Package pnm implements the portable-anymap family (PBM/PGM/PPM), the
// floating-point PFM variant and the first-frame of the Y4M container -
// a self-contained, text-header-plus-raw-pixels sibling to the PNG
// writer already living alongside the JPEG XL decoder.
package pnm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/kpfaulkner/jxlstream/color"
	image2 "github.com/kpfaulkner/jxlstream/image"
)

// Kind identifies which of the family's magic numbers produced an Image.
type Kind int

const (
	KindPBM Kind = iota
	KindPGM
	KindPPM
	KindPFMGray
	KindPFMColor
	KindY4M
)

// Hints carries the two caller-supplied decode hints from §6: a
// color_space descriptor and/or an ICC profile path. Both are optional;
// if neither is given, decode assumes sRGB matching the magic's gray/
// color kind.
type Hints struct {
	ColorSpace  string
	ICCPathname string
}

// Image is the decoded raster plus enough metadata to round-trip it or
// feed it to the rest of the module. Buffer follows the same [channel]
// [y][x] layout as core.JXLImage.Buffer/image2.ImageBuffer so the two
// packages can exchange rasters without a conversion step.
type Image struct {
	Kind          Kind
	Width         uint32
	Height        uint32
	Gray          bool
	MaxVal        uint32 // 0 for the PFM variants, which carry no integer max.
	BitsPerSample uint32
	Buffer        []image2.ImageBuffer
	ColorEncoding int32 // color.CE_GRAY / color.CE_RGB, set from the magic or the color_space hint
	ICCProfile    []byte

	// Y4MSubsampling is only meaningful for KindY4M: one of "4:4:4",
	// "4:2:2", "4:2:0" (the default when the C field is absent).
	Y4MSubsampling string
}

// ParseUnsigned parses a run of ASCII digits into an unsigned integer.
// It accepts no sign, no leading/trailing whitespace and no empty
// string - the boundary cases spec.md's testable-properties table
// exercises directly.
func ParseUnsigned(s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseSigned parses an optionally-signed decimal number (integer or
// floating point) into a float64. A bare "+" or "-" with no digits is
// rejected, matching the boundary-value table.
func ParseSigned(s string) (float64, bool) {
	if s == "" || s == "+" || s == "-" {
		return 0, false
	}
	body := s
	if body[0] == '+' || body[0] == '-' {
		body = body[1:]
	}
	if body == "" {
		return 0, false
	}
	sawDigit := false
	for _, r := range body {
		switch {
		case r >= '0' && r <= '9':
			sawDigit = true
		case r == '.':
			// allowed, validated fully by ParseFloat below
		default:
			return 0, false
		}
	}
	if !sawDigit {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Decode sniffs the first two bytes of r and dispatches to the matching
// format. Hints only affect the PBM/PGM/PPM path (§6's color_space=/
// icc_pathname= hints); PFM and Y4M ignore them since neither format has
// a place to stash a mismatching hint against.
func Decode(r io.Reader, hints Hints) (*Image, error) {
	br := bufio.NewReader(r)
	magic, err := peekMagic(br)
	if err != nil {
		return nil, err
	}

	switch magic {
	case "P4":
		return decodePNM(br, KindPBM, hints)
	case "P5":
		return decodePNM(br, KindPGM, hints)
	case "P6":
		return decodePNM(br, KindPPM, hints)
	case "Pf":
		return decodePFM(br, false)
	case "PF":
		return decodePFM(br, true)
	case "YU":
		return decodeY4M(br)
	default:
		return nil, fmt.Errorf("pnm: unrecognized magic %q", magic)
	}
}

func peekMagic(br *bufio.Reader) (string, error) {
	b, err := br.Peek(2)
	if err != nil {
		return "", fmt.Errorf("pnm: reading magic: %w", err)
	}
	if _, err := br.Discard(2); err != nil {
		return "", err
	}
	return string(b), nil
}

// decodePNM handles P4/P5/P6: width, height, and (for P5/P6) MaxVal,
// each separated by whitespace runs that may contain "#...\n" comments,
// followed by exactly one whitespace byte and then the raw raster.
func decodePNM(br *bufio.Reader, kind Kind, hints Hints) (*Image, error) {
	width, err := readPNMUint(br)
	if err != nil {
		return nil, err
	}
	height, err := readPNMUint(br)
	if err != nil {
		return nil, err
	}

	var maxVal uint64 = 1
	if kind != KindPBM {
		maxVal, err = readPNMUint(br)
		if err != nil {
			return nil, err
		}
		if maxVal == 0 || maxVal > 65535 {
			return nil, fmt.Errorf("pnm: MaxVal %d out of range (0,65536)", maxVal)
		}
	}
	// The single mandatory whitespace byte after the last header field.
	if _, err := br.ReadByte(); err != nil {
		return nil, fmt.Errorf("pnm: reading header terminator: %w", err)
	}

	gray := kind == KindPBM || kind == KindPGM
	channels := 1
	if !gray {
		channels = 3
	}
	bitsPerSample := bitsForMaxVal(maxVal)

	img := &Image{
		Kind:          kind,
		Width:         uint32(width),
		Height:        uint32(height),
		Gray:          gray,
		MaxVal:        uint32(maxVal),
		BitsPerSample: bitsPerSample,
		ColorEncoding: color.CE_RGB,
	}
	if gray {
		img.ColorEncoding = color.CE_GRAY
	}

	if err := applyHints(img, hints); err != nil {
		return nil, err
	}

	buffers := make([]image2.ImageBuffer, channels)
	for c := range buffers {
		ib, err := image2.NewImageBuffer(image2.TYPE_INT, int32(height), int32(width))
		if err != nil {
			return nil, err
		}
		buffers[c] = *ib
	}

	if kind == KindPBM {
		if err := readPBMBits(br, buffers[0], int(width), int(height)); err != nil {
			return nil, err
		}
	} else {
		bytesPerSample := 1
		if maxVal > 255 {
			bytesPerSample = 2
		}
		row := make([]byte, int(width)*channels*bytesPerSample)
		for y := 0; y < int(height); y++ {
			if _, err := io.ReadFull(br, row); err != nil {
				return nil, fmt.Errorf("pnm: reading raster row %d: %w", y, err)
			}
			pos := 0
			for x := 0; x < int(width); x++ {
				for c := 0; c < channels; c++ {
					var v int32
					if bytesPerSample == 1 {
						v = int32(row[pos])
						pos++
					} else {
						v = int32(row[pos])<<8 | int32(row[pos+1])
						pos += 2
					}
					buffers[c].IntBuffer[y][x] = v
				}
			}
		}
	}

	img.Buffer = buffers
	return img, nil
}

// readPBMBits unpacks P4's 1-bit-per-pixel, MSB-first, row-padded-to-a-
// byte raster into 0/1 samples.
func readPBMBits(br *bufio.Reader, dst image2.ImageBuffer, width, height int) error {
	bytesPerRow := (width + 7) / 8
	row := make([]byte, bytesPerRow)
	for y := 0; y < height; y++ {
		if _, err := io.ReadFull(br, row); err != nil {
			return fmt.Errorf("pnm: reading PBM row %d: %w", y, err)
		}
		for x := 0; x < width; x++ {
			bit := (row[x/8] >> uint(7-x%8)) & 1
			// PBM's 1 bit means black; represent as a 0/1 max-val-1 sample
			// where 0 is black, matching P5's all-white-is-MaxVal sense.
			if bit == 1 {
				dst.IntBuffer[y][x] = 0
			} else {
				dst.IntBuffer[y][x] = 1
			}
		}
	}
	return nil
}

func bitsForMaxVal(maxVal uint64) uint32 {
	return uint32(math.Ceil(math.Log2(float64(maxVal + 1))))
}

// readPNMUint reads one whitespace/comment-delimited unsigned numeric
// token and parses it with ParseUnsigned.
func readPNMUint(br *bufio.Reader) (uint64, error) {
	tok, err := readPNMToken(br)
	if err != nil {
		return 0, err
	}
	v, ok := ParseUnsigned(tok)
	if !ok {
		return 0, fmt.Errorf("pnm: invalid unsigned token %q", tok)
	}
	return v, nil
}

// readPNMToken skips leading whitespace and "#...\n" comments, then
// reads up to (but not including) the next whitespace byte.
func readPNMToken(br *bufio.Reader) (string, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return "", fmt.Errorf("pnm: reading header: %w", err)
		}
		if isPNMSpace(b) {
			continue
		}
		if b == '#' {
			if _, err := br.ReadString('\n'); err != nil {
				return "", fmt.Errorf("pnm: reading comment: %w", err)
			}
			continue
		}
		var sb strings.Builder
		sb.WriteByte(b)
		for {
			b, err := br.ReadByte()
			if err != nil {
				return "", fmt.Errorf("pnm: reading header token: %w", err)
			}
			if isPNMSpace(b) {
				if err := br.UnreadByte(); err != nil {
					return "", err
				}
				return sb.String(), nil
			}
			sb.WriteByte(b)
		}
	}
}

func isPNMSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// applyHints implements §6's color_space=/icc_pathname= hint handling:
// a mismatch between the descriptor's gray/color kind and the parsed
// magic is a policy rejection, not silently ignored.
func applyHints(img *Image, hints Hints) error {
	if hints.ColorSpace != "" {
		wantsGray := strings.EqualFold(hints.ColorSpace, "gray") || strings.EqualFold(hints.ColorSpace, "grey")
		wantsColor := strings.EqualFold(hints.ColorSpace, "rgb") || strings.EqualFold(hints.ColorSpace, "srgb")
		if (wantsGray && !img.Gray) || (wantsColor && img.Gray) {
			return fmt.Errorf("pnm: color_space hint %q does not match %s image", hints.ColorSpace, kindName(img.Kind))
		}
	}
	if hints.ICCPathname != "" {
		data, err := os.ReadFile(hints.ICCPathname)
		if err != nil {
			return fmt.Errorf("pnm: reading icc_pathname: %w", err)
		}
		img.ICCProfile = data
	}
	return nil
}

func kindName(k Kind) string {
	switch k {
	case KindPBM:
		return "PBM"
	case KindPGM:
		return "PGM"
	case KindPPM:
		return "PPM"
	case KindPFMGray:
		return "PFM (gray)"
	case KindPFMColor:
		return "PFM (color)"
	case KindY4M:
		return "Y4M"
	default:
		return "unknown"
	}
}

// EncodePNM writes img back out as P4/P5/P6, matching the encoder
// contract in §4.8: a small textual header followed directly by the raw
// raster, never an ICC profile. Alpha channels cannot be represented and
// are rejected rather than silently dropped.
func (img *Image) EncodePNM(w io.Writer) error {
	if len(img.Buffer) > 3 {
		return errors.New("pnm: cannot encode an image with extra (alpha) channels")
	}
	var magic string
	switch {
	case img.Gray && img.MaxVal == 1:
		magic = "P4"
	case img.Gray:
		magic = "P5"
	default:
		magic = "P6"
	}

	header := make([]byte, 0, 200)
	header = append(header, magic...)
	header = append(header, '\n')
	header = append(header, fmt.Sprintf("%d %d\n", img.Width, img.Height)...)
	if magic != "P4" {
		header = append(header, fmt.Sprintf("%d\n", img.MaxVal)...)
	}
	if _, err := w.Write(header); err != nil {
		return err
	}

	channels := len(img.Buffer)
	if magic == "P4" {
		return writePBMBits(w, img.Buffer[0], int(img.Width), int(img.Height))
	}

	twoBytes := img.MaxVal > 255
	row := make([]byte, int(img.Width)*channels*boolToInt(twoBytes, 2, 1))
	for y := 0; y < int(img.Height); y++ {
		pos := 0
		for x := 0; x < int(img.Width); x++ {
			for c := 0; c < channels; c++ {
				v := img.Buffer[c].IntBuffer[y][x]
				if twoBytes {
					row[pos] = byte(v >> 8)
					row[pos+1] = byte(v)
					pos += 2
				} else {
					row[pos] = byte(v)
					pos++
				}
			}
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writePBMBits(w io.Writer, src image2.ImageBuffer, width, height int) error {
	bytesPerRow := (width + 7) / 8
	row := make([]byte, bytesPerRow)
	for y := 0; y < height; y++ {
		for i := range row {
			row[i] = 0
		}
		for x := 0; x < width; x++ {
			if src.IntBuffer[y][x] == 0 {
				row[x/8] |= 1 << uint(7-x%8)
			}
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func boolToInt(b bool, t, f int) int {
	if b {
		return t
	}
	return f
}
