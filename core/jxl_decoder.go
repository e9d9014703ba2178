package core

import (
	"io"

	"github.com/kpfaulkner/jxlstream/bundle"
	"github.com/kpfaulkner/jxlstream/options"
)

// JXLDecoder is a one-shot convenience wrapper around StreamDecoder for
// callers that already hold the whole file in memory (or behind a
// ReadSeeker) and don't need the push-pull streaming contract directly -
// image.RegisterFormat's Decode/DecodeConfig hooks are exactly this case.
// It drives StreamDecoder's ProcessInput loop to completion in one call.
type JXLDecoder struct {
	in   io.Reader
	sd   *StreamDecoder
	opts *options.JXLOptions
}

func NewJXLDecoder(in io.Reader, opts *options.JXLOptions) *JXLDecoder {
	return &JXLDecoder{
		in:   in,
		opts: opts,
	}
}

// Decode reads the entire input and drives the streaming decoder through
// basic-info, headers and every frame, returning the composited last
// still. This never blocks on NeedMoreInput because the whole file is
// handed to SetInput up front (StreamDecoder still copies it into its own
// codestream buffer, as it does for streamed input).
func (jxl *JXLDecoder) Decode() (*JXLImage, error) {
	data, err := io.ReadAll(jxl.in)
	if err != nil {
		return nil, err
	}

	sd := NewStreamDecoder(jxl.opts)
	sd.SubscribeEvents(MaskBasicInfo | MaskColorEncoding | MaskExtensions | MaskFullImage)
	sd.SetImageOutput(func(img *JXLImage) error {
		return nil
	})
	if err := sd.SetInput(data); err != nil {
		return nil, err
	}
	jxl.sd = sd

	for {
		ev, err := sd.ProcessInput()
		if err != nil {
			return nil, err
		}
		switch ev {
		case EventSuccess:
			return sd.LastImage(), nil
		case EventNeedMoreInput:
			return nil, io.ErrUnexpectedEOF
		case EventNeedImageOutBuffer, EventNeedPreviewOutBuffer:
			return nil, errUsageViolation("Decode", io.ErrUnexpectedEOF)
		default:
			// informative event (BasicInfo/ColorEncoding/Extensions/Frame...),
			// nothing to surface through this one-shot wrapper; keep driving.
		}
	}
}

// GetImageHeader decodes only as far as the basic-info/header events and
// returns the parsed header, without driving any frame decode.
func (jxl *JXLDecoder) GetImageHeader() (*bundle.ImageHeader, error) {
	data, err := io.ReadAll(jxl.in)
	if err != nil {
		return nil, err
	}

	sd := NewStreamDecoder(jxl.opts)
	sd.SubscribeEvents(MaskBasicInfo)
	if err := sd.SetInput(data); err != nil {
		return nil, err
	}

	for {
		ev, err := sd.ProcessInput()
		if err != nil {
			return nil, err
		}
		switch ev {
		case EventBasicInfo:
			return sd.BasicInfo(), nil
		case EventNeedMoreInput:
			return nil, io.ErrUnexpectedEOF
		case EventSuccess:
			return sd.BasicInfo(), nil
		}
	}
}
