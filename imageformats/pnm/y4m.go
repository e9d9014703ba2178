package pnm

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kpfaulkner/jxlstream/color"
	image2 "github.com/kpfaulkner/jxlstream/image"
)

// decodeY4M parses the YUV4MPEG2 stream header and the first "FRAME\n"
// payload only; per the open question this module preserves from the
// source, additional frames in a multi-frame Y4M file are ignored
// rather than exposed as a sequence.
func decodeY4M(br *bufio.Reader) (*Image, error) {
	// peekMagic already consumed "YU"; the remainder of the signature
	// word ("V4MPEG2") precedes the space-delimited field list.
	rest, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("y4m: reading stream header: %w", err)
	}
	rest = "YU" + rest
	fields := strings.Fields(rest)
	if len(fields) == 0 || fields[0] != "YUV4MPEG2" {
		return nil, fmt.Errorf("y4m: missing YUV4MPEG2 signature word")
	}

	var width, height uint64
	haveWidth, haveHeight := false, false
	subsampling := "4:2:0"
	for _, f := range fields[1:] {
		if f == "" {
			continue
		}
		switch f[0] {
		case 'W':
			v, ok := ParseUnsigned(f[1:])
			if !ok {
				return nil, fmt.Errorf("y4m: invalid W field %q", f)
			}
			width, haveWidth = v, true
		case 'H':
			v, ok := ParseUnsigned(f[1:])
			if !ok {
				return nil, fmt.Errorf("y4m: invalid H field %q", f)
			}
			height, haveHeight = v, true
		case 'I':
			if f != "Ip" {
				return nil, fmt.Errorf("y4m: only progressive (Ip) interlacing is supported, got %q", f)
			}
		case 'C':
			switch f {
			case "C4:4:4", "C4:2:2", "C4:2:0":
				subsampling = f[1:]
			default:
				return nil, fmt.Errorf("y4m: unsupported chroma subsampling %q", f)
			}
		case 'F', 'A', 'X':
			// frame rate, aspect ratio and extension fields: ignored.
		default:
			return nil, fmt.Errorf("y4m: unrecognized header field %q", f)
		}
	}
	if !haveWidth || !haveHeight {
		return nil, fmt.Errorf("y4m: stream header missing W/H")
	}

	frameTag, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("y4m: reading frame marker: %w", err)
	}
	if !strings.HasPrefix(frameTag, "FRAME") {
		return nil, fmt.Errorf("y4m: expected FRAME marker, got %q", frameTag)
	}

	cw, ch := chromaDims(uint32(width), uint32(height), subsampling)

	yPlane, err := image2.NewImageBuffer(image2.TYPE_FLOAT, int32(height), int32(width))
	if err != nil {
		return nil, err
	}
	cbPlane, err := image2.NewImageBuffer(image2.TYPE_FLOAT, int32(ch), int32(cw))
	if err != nil {
		return nil, err
	}
	crPlane, err := image2.NewImageBuffer(image2.TYPE_FLOAT, int32(ch), int32(cw))
	if err != nil {
		return nil, err
	}

	if err := readY4MPlane(br, yPlane, int(width), int(height)); err != nil {
		return nil, err
	}
	if err := readY4MPlane(br, cbPlane, int(cw), int(ch)); err != nil {
		return nil, err
	}
	if err := readY4MPlane(br, crPlane, int(cw), int(ch)); err != nil {
		return nil, err
	}

	// Y goes to plane 1, Cb/Cr demuxed to planes 0/2, matching the
	// module's YCbCr channel ordering used elsewhere for DoYCbCr frames.
	return &Image{
		Kind:           KindY4M,
		Width:          uint32(width),
		Height:         uint32(height),
		Gray:           false,
		BitsPerSample:  8,
		ColorEncoding:  color.CE_RGB,
		Buffer:         []image2.ImageBuffer{*cbPlane, *yPlane, *crPlane},
		Y4MSubsampling: subsampling,
	}, nil
}

// readY4MPlane reads one plane of unsigned byte samples and applies the
// (value-128)/255 convention from §4.8.
func readY4MPlane(r io.Reader, dst *image2.ImageBuffer, width, height int) error {
	row := make([]byte, width)
	for y := 0; y < height; y++ {
		if _, err := io.ReadFull(r, row); err != nil {
			return fmt.Errorf("y4m: reading plane row %d: %w", y, err)
		}
		for x := 0; x < width; x++ {
			dst.FloatBuffer[y][x] = (float32(row[x]) - 128) / 255
		}
	}
	return nil
}

func chromaDims(width, height uint32, subsampling string) (uint32, uint32) {
	switch subsampling {
	case "4:4:4":
		return width, height
	case "4:2:2":
		return (width + 1) / 2, height
	default: // "4:2:0"
		return (width + 1) / 2, (height + 1) / 2
	}
}
