package imageformats

import (
	"io"

	"github.com/kpfaulkner/jxlstream/color"
	"github.com/kpfaulkner/jxlstream/core"
	"github.com/kpfaulkner/jxlstream/imageformats/pnm"
)

// WritePFM writes a decoded still out in the PFM float format. It is a
// thin bonus entry point over pnm.Image.EncodePFM for callers already
// holding a core.JXLImage rather than a pnm.Image - the two share the
// same per-channel [y][x] buffer layout, so no pixel conversion is
// needed, just a struct reshape.
func WritePFM(jxlImage *core.JXLImage, output io.Writer) error {
	gray := jxlImage.ColorEncoding == color.CE_GRAY
	img := &pnm.Image{
		Width:         jxlImage.Width,
		Height:        jxlImage.Height,
		Gray:          gray,
		BitsPerSample: 32,
		ColorEncoding: jxlImage.ColorEncoding,
		Buffer:        jxlImage.Buffer,
	}
	if gray {
		img.Kind = pnm.KindPFMGray
	} else {
		img.Kind = pnm.KindPFMColor
	}
	return img.EncodePFM(output)
}
