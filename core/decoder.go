package core

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kpfaulkner/jxlstream/bundle"
	"github.com/kpfaulkner/jxlstream/color"
	"github.com/kpfaulkner/jxlstream/frame"
	image2 "github.com/kpfaulkner/jxlstream/image"
	"github.com/kpfaulkner/jxlstream/jxlio"
	"github.com/kpfaulkner/jxlstream/options"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Stage is the coarse decoder lifecycle state. It is monotonic except for
// Reset/Rewind, which restart it at StageInited.
type Stage int

const (
	StageInited Stage = iota
	StageStarted
	StageFinished
	StageError
)

// FrameStageKind is the per-frame sub-state driven by ProcessInput while a
// still is being produced.
type FrameStageKind int

const (
	FrameStageHeader FrameStageKind = iota
	FrameStageTOC
	FrameStageFull
	FrameStageFullOutput
)

const boxHeaderMinSize = 8 // 4B size + 4B type; +8 more if size==1 (extended size)

// box type tags, big-endian ASCII packed into a uint32, matching the
// constants already established for the one-shot box reader.
const (
	tagJXLC = 0x6a786c63 // "jxlc"
	tagJXLP = 0x6a786c70 // "jxlp"
	tagJBRD = 0x6a627264 // "jbrd"
)

// StreamDecoder is the push-pull streaming front-end described by the
// component table: it owns signature classification (C1), box walking
// (C2), header pulls (C3), the frame-stage state machine (C4), frame
// dependency tracking (C6) and dispatches into the output adapter (C7).
// It never blocks: every public entry point either makes progress and
// returns an Event, or returns EventNeedMoreInput/EventNeedImageOutBuffer
// and waits to be re-invoked.
//
// A StreamDecoder is not safe for concurrent use; exactly one goroutine
// may own it at a time, matching the single-threaded cooperative model in
// the concurrency design.
type StreamDecoder struct {
	opts *options.JXLOptions

	stage Stage

	gotSignature  bool
	gotBasicInfo  bool
	gotAllHeaders bool
	postHeaders   bool

	haveContainer       bool
	firstCodestreamSeen bool
	lastCodestreamSeen  bool

	// input currently held between SetInput and ReleaseInput.
	input     []byte
	inputHeld bool

	// absPos is the absolute file offset corresponding to input[0].
	absPos int64

	// codestream is the owned, growing accumulation buffer of pure
	// codestream bytes (box framing and jxlp indices already stripped).
	// consumed is how many of its leading bytes have already been fully
	// parsed (header or frame data); bytes before it may be trimmed.
	codestream []byte
	consumed   int

	// box-walk state, only meaningful when haveContainer is true.
	skippingBox              bool
	skipBoxLeft              int64
	jxlpAnySeen              bool
	inJbrd                   bool
	jbrdConsumed             int
	pendingCodestreamPayload int64

	level       int32
	imageHeader *bundle.ImageHeader

	eventsWanted     uint32
	origEventsWanted uint32
	pending          []Event

	// compositor reuses the teacher's per-still compositing machinery
	// (patches/blend/colour-transform/orientation) verbatim; this
	// StreamDecoder only supplies it frames one at a time instead of in
	// one tight loop.
	comp   *JXLCodestreamDecoder
	matrix *color.OpsinInverseMatrix

	// reader is the single long-lived bit reader driving header and frame
	// parsing once headers are known. It is discarded (set to nil) the
	// moment any parse attempt against it reports a byte shortage; the
	// next attempt rebuilds it from scratch over the (now larger)
	// codestream buffer and deterministically replays every
	// already-finalized frame to fast-forward back to the same position.
	// See DESIGN.md: the vendored bit-reader's own byte-position counters
	// are unused/unreliable in this snapshot, so this module does not
	// trust them for checkpointing.
	reader          *jxlio.Bitreader
	finalizedFrames int

	frameStage  FrameStageKind
	curFrame    *frame.Frame
	curHeader   frame.FrameHeader
	frameSize   uint32 // sum of this frame's TOC group sizes; informational only
	canvas      []image2.ImageBuffer
	curSections *SectionManager

	isLastOfStill bool
	isLastTotal   bool

	skipFrames    int
	skippingFrame bool
	// stillStart is true when the next internal frame begins a new still;
	// that is the only point at which skippingFrame is (re)decided from
	// skipFrames, per spec.md §4.4's "decrement skip_frames only on the
	// last-of-still boundary".
	stillStart bool

	internalFrames int
	externalFrames int

	slots         *SlotTracker
	frameRequired map[int32]bool

	invisibleFrames int64
	visibleFrames   int

	previewOutSet bool
	imageOutSet   bool

	// cpuBudgetSpent accumulates the pixel count of every frame decoded so
	// far (§5's running-sum cap), compared against 5x MemoryLimitBase.
	cpuBudgetSpent uint64

	// output buffer path (C7): set by the caller in response to
	// EventNeedImageOutBuffer/EventNeedPreviewOutBuffer. Exactly one of
	// rawImageOut/scanlineWriter/imageOutCallback is consulted per still,
	// in that priority order (§4.4's "output-buffer path selection").
	rawImageOut        []byte
	rawImageWantAlpha  bool
	scanlineWriter     ScanlineWriter
	scanlineWantAlpha  bool
	scanlineCallerData interface{}

	imageOutCallback       func(img *JXLImage) error
	previewOutCallback     func(img *JXLImage) error
	lastImage              *JXLImage
	lastPreview            *JXLImage
	awaitingImageOutBuffer bool
}

// NewStreamDecoder creates a StreamDecoder ready for SetInput/ProcessInput.
// opts may be nil, in which case defaults are used.
func NewStreamDecoder(opts *options.JXLOptions) *StreamDecoder {
	sd := &StreamDecoder{}
	sd.opts = options.NewJXLOptions(opts)
	sd.resetState()
	return sd
}

func (sd *StreamDecoder) resetState() {
	sd.stage = StageInited
	sd.gotSignature = false
	sd.gotBasicInfo = false
	sd.gotAllHeaders = false
	sd.postHeaders = false
	sd.haveContainer = false
	sd.firstCodestreamSeen = false
	sd.lastCodestreamSeen = false
	sd.input = nil
	sd.inputHeld = false
	sd.absPos = 0
	sd.codestream = nil
	sd.consumed = 0
	sd.skippingBox = false
	sd.skipBoxLeft = 0
	sd.jxlpAnySeen = false
	sd.inJbrd = false
	sd.jbrdConsumed = 0
	sd.level = 5
	sd.imageHeader = nil
	sd.pending = nil
	sd.comp = &JXLCodestreamDecoder{options: *sd.opts}
	sd.matrix = nil
	sd.reader = nil
	sd.finalizedFrames = 0
	sd.frameStage = FrameStageHeader
	sd.curFrame = nil
	sd.curHeader = frame.FrameHeader{}
	sd.frameSize = 0
	sd.canvas = nil
	sd.curSections = nil
	sd.frameRequired = nil
	sd.isLastOfStill = false
	sd.isLastTotal = false
	sd.skippingFrame = false
	sd.stillStart = true
	sd.internalFrames = 0
	sd.externalFrames = 0
	sd.invisibleFrames = 0
	sd.visibleFrames = 0
	sd.cpuBudgetSpent = 0
	sd.previewOutSet = false
	sd.imageOutSet = false
	sd.rawImageOut = nil
	sd.rawImageWantAlpha = false
	sd.scanlineWriter = nil
	sd.scanlineWantAlpha = false
	sd.scanlineCallerData = nil
	sd.imageOutCallback = nil
	sd.previewOutCallback = nil
	sd.lastImage = nil
	sd.lastPreview = nil
	sd.awaitingImageOutBuffer = false
	if sd.slots == nil {
		sd.slots = NewSlotTracker()
	}
}

// Reset returns an error-tainted (or merely used) decoder to a freshly
// usable state. The thread pool and event subscription are caller-owned
// and must be reapplied; skip-frames bookkeeping (the slot tracker) is
// also cleared per spec, since Reset discards all learned state.
func (sd *StreamDecoder) Reset() {
	sd.skipFrames = 0
	sd.slots = NewSlotTracker()
	sd.frameRequired = nil
	sd.resetState()
}

// Rewind restarts parsing from byte 0 of the original stream while
// preserving skip_frames bookkeeping and the learned frame dependency
// tables, per the spec's cancellation/resumption contract.
func (sd *StreamDecoder) Rewind() {
	savedSkip := sd.skipFrames
	savedSlots := sd.slots
	savedOrig := sd.origEventsWanted
	sd.resetState()
	sd.skipFrames = savedSkip
	sd.slots = savedSlots
	sd.eventsWanted = savedOrig
	sd.origEventsWanted = savedOrig
}

// SubscribeEvents sets the bitmask of informative events the caller wants
// delivered. It may be called at any time; per-frame bits re-arm at every
// still boundary via orig_events_wanted.
func (sd *StreamDecoder) SubscribeEvents(mask uint32) {
	sd.eventsWanted = mask
	sd.origEventsWanted = mask
}

// SkipFrames is additive: the running skip count only ever grows, since
// previously skipped frames cannot be un-skipped.
func (sd *StreamDecoder) SkipFrames(n int) {
	sd.skipFrames += n
}

// SetInput hands the decoder a caller-owned byte range. It is a usage
// violation to call this twice without an intervening ReleaseInput.
func (sd *StreamDecoder) SetInput(data []byte) error {
	if sd.inputHeld {
		return errUsageViolation("SetInput", errors.New("SetInput called without intervening ReleaseInput"))
	}
	sd.input = data
	sd.inputHeld = true
	return nil
}

// ReleaseInput reports how many bytes of the held input are still
// unconsumed, so the caller knows where to resume. After this call no
// input is held until the next SetInput.
func (sd *StreamDecoder) ReleaseInput() int {
	unconsumed := len(sd.input)
	sd.input = nil
	sd.inputHeld = false
	return unconsumed
}

// SizeHint mirrors §6: 48 (max container prefix) + 50 (max basic-info
// prefix) until basic info is known, zero thereafter.
func (sd *StreamDecoder) SizeHint() int {
	if sd.gotBasicInfo {
		return 0
	}
	return 48 + 50
}

func (sd *StreamDecoder) queue(e Event) {
	sd.pending = append(sd.pending, e)
}

// ProcessInput drives the state machine forward by as much as the
// currently held input (plus whatever has already been buffered
// internally) allows, and returns the next event in canonical order. It
// never blocks: if progress stalls on missing bytes or a missing output
// buffer, it returns the corresponding suspension event immediately.
func (sd *StreamDecoder) ProcessInput() (Event, error) {
	if sd.opts.Tracer != nil {
		var span trace.Span
		_, span = sd.opts.Tracer.Start(context.Background(), "ProcessInput")
		defer span.End()
		ev, err := sd.processInput()
		span.SetAttributes(attribute.String("jxl.event", ev.String()))
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		return ev, err
	}
	return sd.processInput()
}

func (sd *StreamDecoder) processInput() (Event, error) {
	if sd.stage == StageError {
		return EventError, errUsageViolation("ProcessInput", errors.New("decoder is in Error stage; call Reset"))
	}
	if sd.stage == StageFinished {
		return EventSuccess, nil
	}

	if len(sd.pending) > 0 {
		e := sd.pending[0]
		sd.pending = sd.pending[1:]
		return e, nil
	}

	sd.stage = StageStarted

	for {
		if !sd.gotSignature {
			res, consumed, err := sd.classifySignature()
			if err != nil {
				return sd.fail(errFormatViolation("signature", err))
			}
			switch res {
			case SignatureNotEnoughBytes:
				return EventNeedMoreInput, nil
			case SignatureInvalid:
				return sd.fail(errFormatViolation("signature", errors.New("invalid JPEG XL signature")))
			case SignatureContainer:
				sd.haveContainer = true
				sd.advanceAbs(consumed)
				sd.gotSignature = true
			case SignatureCodestream:
				// The 0xFF 0x0A marker is itself the first two bits of
				// the codestream bit-level grammar (ParseImageHeader
				// re-reads it), so unlike the container case we do not
				// strip it here - only classify.
				sd.haveContainer = false
				sd.firstCodestreamSeen = true
				sd.lastCodestreamSeen = true
				sd.gotSignature = true
			}
			continue
		}

		if sd.haveContainer && sd.boxWalkPending() {
			progressed, ev, err := sd.stepBoxWalk()
			if err != nil {
				return sd.fail(err)
			}
			if ev != EventNone {
				return ev, nil
			}
			if progressed {
				continue
			}
			// Box walk stalled on missing bytes: fall through and try
			// to make header/frame progress with whatever codestream
			// has already been aggregated. If that also stalls, the
			// step below reports NeedMoreInput for us.
		}

		if !sd.haveContainer {
			// Raw codestream: everything currently held is codestream.
			sd.appendRawCodestream()
		}

		if !sd.gotBasicInfo || !sd.gotAllHeaders {
			ev, err := sd.stepHeaders()
			if err != nil {
				return sd.fail(err)
			}
			if ev != EventNone {
				return ev, nil
			}
			continue
		}

		ev, err := sd.stepFrame()
		if err != nil {
			return sd.fail(err)
		}
		if ev != EventNone {
			if ev == EventSuccess {
				sd.stage = StageFinished
			}
			return ev, nil
		}
	}
}

func (sd *StreamDecoder) fail(err error) (Event, error) {
	var de *DecodeError
	if errors.As(err, &de) && de.Kind == KindTransientInputShortage {
		return EventNeedMoreInput, nil
	}
	sd.stage = StageError
	return EventError, err
}

func (sd *StreamDecoder) advanceAbs(n int) {
	sd.input = sd.input[n:]
	sd.absPos += int64(n)
}

// classifySignature looks at the first (up to 12) bytes of the currently
// held input and classifies them per C1. The owned codestream buffer is
// not consulted.
func (sd *StreamDecoder) classifySignature() (SignatureResult, int, error) {
	window := sd.input
	if len(window) > 12 {
		window = window[:12]
	}
	res, n := ClassifySignature(window)
	return res, n, nil
}

// boxWalkPending reports whether there is still box-walk work that could
// yield more codestream bytes or a box-level event: either the final
// codestream part has not yet been seen, or we are mid-box (a partial
// codestream payload, an unknown box being skipped, or a jbrd payload
// being buffered).
func (sd *StreamDecoder) boxWalkPending() bool {
	return !sd.lastCodestreamSeen || sd.pendingCodestreamPayload > 0 || sd.skippingBox || sd.inJbrd
}

// appendRawCodestream moves everything currently held into the owned
// codestream buffer. See DESIGN.md for why this module always copies
// instead of operating zero-copy on the caller's buffer: the black-box
// bundle/frame parsers require a seekable reader, and the restart-whole-
// phase resumption strategy needs a stable backing array to re-seek into.
func (sd *StreamDecoder) appendRawCodestream() {
	if len(sd.input) == 0 {
		return
	}
	sd.codestream = append(sd.codestream, sd.input...)
	sd.advanceAbs(len(sd.input))
}

// stepBoxWalk advances the container box walker by whatever is currently
// available in sd.input, appending codestream-bearing box payloads to
// sd.codestream. It returns progressed=false (caller should report
// NeedMoreInput) when the held window is too short to make any progress.
func (sd *StreamDecoder) stepBoxWalk() (bool, Event, error) {
	if sd.pendingCodestreamPayload > 0 {
		take := int64(len(sd.input))
		if take > sd.pendingCodestreamPayload {
			take = sd.pendingCodestreamPayload
		}
		if take == 0 {
			return false, EventNone, nil
		}
		sd.codestream = append(sd.codestream, sd.input[:take]...)
		sd.advanceAbs(int(take))
		sd.pendingCodestreamPayload -= take
		return true, EventNone, nil
	}

	if sd.skippingBox {
		n := int64(len(sd.input))
		if n > sd.skipBoxLeft {
			n = sd.skipBoxLeft
		}
		if n == 0 {
			return false, EventNone, nil
		}
		sd.advanceAbs(int(n))
		sd.skipBoxLeft -= n
		if sd.skipBoxLeft == 0 {
			sd.skippingBox = false
		}
		return true, EventNone, nil
	}

	if sd.inJbrd {
		// jbrd reconstruction is delivered as a single opaque payload;
		// the JPEG-reconstruction byte emission itself is out of scope
		// (§1), so we only pass over its payload (skipBoxLeft bytes) and
		// surface its presence once all of it has arrived.
		n := int64(len(sd.input))
		if n > sd.skipBoxLeft {
			n = sd.skipBoxLeft
		}
		if n == 0 && sd.skipBoxLeft > 0 {
			return false, EventNone, nil
		}
		sd.advanceAbs(int(n))
		if sd.skipBoxLeft -= n; sd.skipBoxLeft > 0 {
			return true, EventNone, nil
		}
		sd.inJbrd = false
		if sd.eventsWanted&MaskJpegReconstruction != 0 {
			sd.eventsWanted &^= MaskJpegReconstruction
			return true, EventJpegReconstruction, nil
		}
		return true, EventNone, nil
	}

	if len(sd.input) < 8 {
		return false, EventNone, nil
	}

	size := uint64(binary.BigEndian.Uint32(sd.input[0:4]))
	tag := binary.BigEndian.Uint32(sd.input[4:8])
	headerLen := 8
	if size == 1 {
		if len(sd.input) < 16 {
			return false, EventNone, nil
		}
		size = binary.BigEndian.Uint64(sd.input[8:16])
		headerLen = 16
	}

	var contentsSize int64 = -1 // -1 means "to end of file", only legal for the final box
	if size != 0 {
		if size < uint64(headerLen) {
			return false, EventNone, errFormatViolation("box", fmt.Errorf("box size %d smaller than its own header", size))
		}
		contentsSize = int64(size) - int64(headerLen)
	}

	switch tag {
	case tagJXLP:
		if len(sd.input) < headerLen+4 {
			return false, EventNone, nil
		}
		index := binary.BigEndian.Uint32(sd.input[headerLen : headerLen+4])
		isFinal := index&0x80000000 != 0
		if contentsSize < 0 && !isFinal {
			// "a jxlp box with box_size=0 (unbounded) but without the
			// final-bit set" - the spec preserves the source's
			// rejection of this.
			return false, EventNone, errFormatViolation("box", errors.New("non-final jxlp box has unbounded size"))
		}
		payloadLen := contentsSize - 4
		sd.advanceAbs(headerLen + 4)
		if err := sd.consumeBoxPayload(payloadLen); err != nil {
			return false, EventNone, err
		}
		if payloadLen < 0 {
			// unbounded final part: everything else currently/ever held is codestream.
			sd.lastCodestreamSeen = true
			return true, EventNone, nil
		}
		sd.jxlpAnySeen = true
		sd.firstCodestreamSeen = true
		if isFinal {
			sd.lastCodestreamSeen = true
		}
		return true, EventNone, nil

	case tagJXLC:
		sd.advanceAbs(headerLen)
		if err := sd.consumeBoxPayload(contentsSize); err != nil {
			return false, EventNone, err
		}
		sd.firstCodestreamSeen = true
		sd.lastCodestreamSeen = true
		return true, EventNone, nil

	case tagJBRD:
		if sd.eventsWanted&MaskJpegReconstruction == 0 && sd.origEventsWanted&MaskJpegReconstruction == 0 {
			sd.advanceAbs(headerLen)
			return sd.skipRestOfBox(contentsSize)
		}
		sd.advanceAbs(headerLen)
		sd.inJbrd = true
		sd.skipBoxLeft = contentsSize
		if contentsSize < 0 {
			sd.skipBoxLeft = int64(^uint64(0) >> 1)
		}
		return true, EventNone, nil

	default:
		sd.advanceAbs(headerLen)
		return sd.skipRestOfBox(contentsSize)
	}
}

func (sd *StreamDecoder) skipRestOfBox(contentsSize int64) (bool, Event, error) {
	if contentsSize < 0 {
		// unknown trailing box with no codestream relevance: nothing
		// further to do with it; treat remaining input as consumed box
		// filler up to whatever arrives. Since it can never become a
		// codestream box, just sink it.
		sd.skippingBox = true
		sd.skipBoxLeft = int64(^uint64(0) >> 1)
		return true, EventNone, nil
	}
	n := contentsSize
	if n == 0 {
		return true, EventNone, nil
	}
	sd.skippingBox = true
	sd.skipBoxLeft = n
	return true, EventNone, nil
}

// SetImageOutput supplies the callback the decoder invokes once a still is
// fully composited, in response to EventNeedImageOutBuffer. It corresponds
// to the output-buffer adapter (C7): the caller owns the pixel storage, the
// callback just copies/consumes the finished JXLImage.
func (sd *StreamDecoder) SetImageOutput(cb func(img *JXLImage) error) {
	sd.imageOutCallback = cb
	sd.imageOutSet = sd.rawImageOut != nil || sd.scanlineWriter != nil || sd.imageOutCallback != nil
}

// SetRawImageOutput supplies a raw 8-bit-per-channel RGB/RGBA buffer for
// the output adapter (C7) to write directly into, bypassing the
// JXLImage/ICC conversion path entirely - the first leg of §4.4's
// "output-buffer path selection". Passing a nil buf clears it.
func (sd *StreamDecoder) SetRawImageOutput(buf []byte, wantAlpha bool) {
	sd.rawImageOut = buf
	sd.rawImageWantAlpha = wantAlpha
	if buf != nil {
		sd.scanlineWriter = nil
	}
	sd.imageOutSet = sd.rawImageOut != nil || sd.scanlineWriter != nil || sd.imageOutCallback != nil
}

// SetScanlineImageOutput supplies a float32 ScanlineWriter the output
// adapter streams composited rows to as they become available, for
// native-endian float32 RGB/RGBA callers - the second leg of §4.4's
// "output-buffer path selection". Passing a nil w clears it.
func (sd *StreamDecoder) SetScanlineImageOutput(w ScanlineWriter, wantAlpha bool, callerData interface{}) {
	sd.scanlineWriter = w
	sd.scanlineWantAlpha = wantAlpha
	sd.scanlineCallerData = callerData
	if w != nil {
		sd.rawImageOut = nil
	}
	sd.imageOutSet = sd.rawImageOut != nil || sd.scanlineWriter != nil || sd.imageOutCallback != nil
}

// SetPreviewOutput supplies the callback invoked when a preview image has
// been located, in response to EventNeedPreviewOutBuffer.
func (sd *StreamDecoder) SetPreviewOutput(cb func(img *JXLImage) error) {
	sd.previewOutCallback = cb
	sd.previewOutSet = cb != nil
}

// BasicInfo exposes the parsed image header once EventBasicInfo has been
// delivered. It returns nil beforehand.
func (sd *StreamDecoder) BasicInfo() *bundle.ImageHeader {
	return sd.imageHeader
}

// LastImage returns the most recently finalized still, valid once
// EventFullImage has been delivered for it.
func (sd *StreamDecoder) LastImage() *JXLImage {
	return sd.lastImage
}

// safeCall runs fn, converting both returned errors and panics raised by
// the panicking Must* accessors in the bundle/frame packages into a
// classified DecodeError. The black-box parsers signal "not enough bytes"
// either via a returned io.EOF-flavoured error or, from a Must* accessor,
// by panicking - this is the single seam that turns either into
// EventNeedMoreInput instead of crashing the caller's process.
func (sd *StreamDecoder) safeCall(stage string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = classifyPanic(stage, r)
		}
	}()
	if ferr := fn(); ferr != nil {
		err = classifyErr(stage, ferr)
	}
	return err
}

func classifyErr(stage string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		// Already classified by the closure itself (e.g. a policy
		// rejection raised mid-decode); don't let the shortage heuristic
		// second-guess it.
		return err
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errNeedMoreInput(stage, err)
	}
	if looksLikeShortage(err.Error()) {
		return errNeedMoreInput(stage, err)
	}
	return errFormatViolation(stage, err)
}

func classifyPanic(stage string, r interface{}) error {
	if err, ok := r.(error); ok {
		return classifyErr(stage, err)
	}
	msg := fmt.Sprintf("%v", r)
	if looksLikeShortage(msg) {
		return errNeedMoreInput(stage, errors.New(msg))
	}
	return errFormatViolation(stage, errors.New(msg))
}

// looksLikeShortage is the heuristic boundary between "ran out of bytes,
// ask again later" and "the bytes we have are malformed": the vendored
// bit reader and the Must* accessors built on it do not expose a typed
// sentinel for the former, only message text and index-out-of-range
// panics from reading past a short buffer.
func looksLikeShortage(msg string) bool {
	low := strings.ToLower(msg)
	for _, needle := range []string{"eof", "index out of range", "short", "insufficient", "out of bound"} {
		if strings.Contains(low, needle) {
			return true
		}
	}
	return false
}

// decideStillSkip reports whether the still about to start (the
// externalFrames-th one, 0-indexed) falls within the running skip_frames
// count. It is pure so the "decide once per still, not once per internal
// frame" semantics can be tested without constructing a real frame
// bitstream.
func decideStillSkip(externalFrames, skipFrames int) bool {
	return int32(externalFrames) < int32(skipFrames)
}

// cpuBudgetExceeded reports whether adding a frame of framePixels pixels
// to the running spent total would exceed limit, along with what the new
// total would be. limit == 0 means no cap is configured.
func cpuBudgetExceeded(spent, framePixels, limit uint64) (bool, uint64) {
	total := spent + framePixels
	if limit == 0 {
		return false, total
	}
	return total > limit, total
}

// lfGlobalReaderAdapter bridges frame.NewLFGlobalWithReaderFunc's
// interface-typed signature to the concrete frame.NewLFGlobalWithReader
// constructor. DecodeFrame always hands this module the bit reader and
// frame it itself constructed, so the type assertions below cannot fail
// in practice; they exist because the functional type is expressed in
// terms of the Framer/BitReader interfaces while the real constructor
// predates them.
func lfGlobalReaderAdapter(reader jxlio.BitReader, parent frame.Framer, _ frame.NewHFBlockContextFunc) (*frame.LFGlobal, error) {
	concreteReader, ok := reader.(*jxlio.Bitreader)
	if !ok {
		return nil, errors.New("lfGlobalReaderAdapter: reader is not *jxlio.Bitreader")
	}
	concreteParent, ok := parent.(*frame.Frame)
	if !ok {
		return nil, errors.New("lfGlobalReaderAdapter: parent is not *frame.Frame")
	}
	return frame.NewLFGlobalWithReader(concreteReader, concreteParent)
}

// ensureReader lazily (re)builds the long-lived bit reader over the
// current codestream buffer, replaying the header parse and every
// already-finalized frame so the reader ends up positioned exactly where
// the next unparsed byte begins. See the reader field's doc comment for
// why this module replays instead of seeking to a saved offset.
func (sd *StreamDecoder) ensureReader() error {
	if sd.reader != nil {
		return nil
	}
	sd.reader = jxlio.NewBitreader(bytes.NewReader(sd.codestream))
	if !sd.gotBasicInfo {
		return nil
	}
	if err := sd.safeCall("replay-header", func() error {
		_, perr := bundle.ParseImageHeader(sd.reader, sd.level)
		return perr
	}); err != nil {
		sd.reader = nil
		return err
	}
	if sd.imageHeader.PreviewSize != nil {
		if err := sd.safeCall("replay-preview", func() error {
			return sd.skipOneFrame()
		}); err != nil {
			sd.reader = nil
			return err
		}
	}
	for i := 0; i < sd.finalizedFrames; i++ {
		if err := sd.safeCall("replay-frame", func() error {
			return sd.skipOneFrame()
		}); err != nil {
			sd.reader = nil
			return err
		}
	}
	return nil
}

// skipOneFrame reads exactly one frame header plus its TOC and skips its
// encoded data without touching pixels. It is used both for the real
// preview pass (this module does not decode preview pixels, only
// accounts for their byte span) and for fast-forwarding sd.reader during
// ensureReader's replay.
func (sd *StreamDecoder) skipOneFrame() error {
	popts := options.NewJXLOptions(sd.opts)
	popts.ParseOnly = true
	f := frame.NewFrameWithReader(sd.reader, sd.imageHeader, popts)
	if _, err := f.ReadFrameHeader(); err != nil {
		return err
	}
	if err := f.ReadTOC(); err != nil {
		return err
	}
	return f.SkipFrameData()
}

// stepHeaders drives basic-info/metadata parsing (C3) and, once that
// succeeds, the preview frame if one is present. It queues the
// informative events in canonical order and returns the first.
func (sd *StreamDecoder) stepHeaders() (Event, error) {
	if err := sd.ensureReader(); err != nil {
		return EventNone, err
	}

	if !sd.gotBasicInfo {
		var hdr *bundle.ImageHeader
		if err := sd.safeCall("header", func() error {
			var perr error
			hdr, perr = bundle.ParseImageHeader(sd.reader, sd.level)
			return perr
		}); err != nil {
			sd.reader = nil
			return EventNone, err
		}

		if sd.opts.MemoryLimitBase != 0 {
			budget := uint64(hdr.Size.Width) * uint64(hdr.Size.Height)
			if budget > sd.opts.MemoryLimitBase {
				return sd.fail(errPolicyRejection("header", fmt.Errorf("xsize*ysize %d exceeds memory limit %d", budget, sd.opts.MemoryLimitBase)))
			}
		}

		sd.imageHeader = hdr
		sd.comp.imageHeader = hdr
		sd.comp.reference = make([][]image2.ImageBuffer, 4)
		sd.comp.lfBuffer = make([][]image2.ImageBuffer, 5)
		sd.canvas = make([]image2.ImageBuffer, hdr.GetColourChannelCount()+len(hdr.ExtraChannelInfo))

		if hdr.XybEncoded {
			ce := hdr.ColorEncoding
			m, merr := hdr.OpsinInverseMatrix.GetMatrix(ce.Prim, ce.White)
			if merr != nil {
				return sd.fail(errFormatViolation("header", merr))
			}
			sd.matrix = m
		}

		sd.gotBasicInfo = true
		if sd.eventsWanted&MaskBasicInfo != 0 {
			sd.queue(EventBasicInfo)
		}
		if sd.eventsWanted&MaskColorEncoding != 0 {
			sd.queue(EventColorEncoding)
		}
		if sd.eventsWanted&MaskExtensions != 0 && hdr.Extensions != nil && hdr.Extensions.ExtensionsKey != 0 {
			sd.queue(EventExtensions)
		}
	}

	if !sd.gotAllHeaders {
		if sd.imageHeader.PreviewSize != nil {
			if err := sd.safeCall("preview", func() error {
				return sd.skipOneFrame()
			}); err != nil {
				sd.reader = nil
				return EventNone, err
			}
			if sd.eventsWanted&MaskPreviewImage != 0 {
				sd.queue(EventPreviewImage)
			}
		}
		sd.gotAllHeaders = true
		sd.postHeaders = true
		log.Debugf("jxlstream: headers parsed, size=%dx%d", sd.imageHeader.Size.Width, sd.imageHeader.Size.Height)
	}

	if len(sd.pending) > 0 {
		e := sd.pending[0]
		sd.pending = sd.pending[1:]
		return e, nil
	}
	return EventNone, nil
}

// stepFrame drives exactly one internal codestream frame through
// header/TOC/section-check/decode/compose (C4+C5, via SectionManager),
// reusing the compositor's patch/blend/colour-transform/transpose methods
// (kept, byte-for-byte, from the teacher's per-still loop) and recording
// its dependency bitmasks in the slot tracker (C6). skip_frames is
// decided once per still (stillStart/skippingFrame), not per internal
// frame, so a still built from several internal frames (patches, LF,
// blend sub-frames) is skipped or kept as one unit. It queues Frame, and
// on the still's last internal frame (is_last_total || duration > 0)
// FullImage and - only on the truly last internal frame - Success.
func (sd *StreamDecoder) stepFrame() (Event, error) {
	if !sd.postHeaders {
		return EventNone, errUsageViolation("frame", errors.New("stepFrame invoked before headers finished parsing"))
	}
	if err := sd.ensureReader(); err != nil {
		return EventNone, err
	}

	if sd.awaitingImageOutBuffer {
		if !sd.imageOutSet {
			return EventNeedImageOutBuffer, nil
		}
		if err := sd.finalizeStill(); err != nil {
			return sd.fail(err)
		}
		return sd.drainAfterFullImage()
	}

	comp := sd.comp
	thisIndex := int32(sd.finalizedFrames)

	// The skip/keep decision for a still is made once, at its first
	// internal frame, and held for every internal frame belonging to it -
	// skip_frames counts stills, not internal codestream frames.
	if sd.stillStart {
		sd.skippingFrame = decideStillSkip(sd.externalFrames, sd.skipFrames)
		sd.stillStart = false
	}
	skipThis := sd.skippingFrame
	if skipThis && sd.frameRequired != nil && sd.frameRequired[thisIndex] {
		skipThis = false // still needed as a dependency of a kept frame
	}

	sd.frameStage = FrameStageHeader
	var header frame.FrameHeader
	var imgFrame *frame.Frame
	err := sd.safeCall("frame", func() error {
		imgFrame = frame.NewFrameWithReader(sd.reader, sd.imageHeader, sd.opts)
		var ferr error
		header, ferr = imgFrame.ReadFrameHeader()
		if ferr != nil {
			return ferr
		}
		if comp.lfBuffer[header.LfLevel] == nil && header.Flags&frame.USE_LF_FRAME != 0 {
			return errors.New("frame references an LF level that was never produced")
		}

		sd.frameStage = FrameStageTOC
		if ferr = imgFrame.ReadTOC(); ferr != nil {
			return ferr
		}
		sd.frameSize = imgFrame.TotalSectionBytes()

		if sd.opts.ParseOnly || skipThis {
			return imgFrame.SkipFrameData()
		}

		sections := NewSectionManager(imgFrame.TOCLengths())
		sections.Update(sd.reader)
		sd.curSections = sections

		if exceeded, spent := cpuBudgetExceeded(sd.cpuBudgetSpent, uint64(header.Width)*uint64(header.Height), sd.opts.CPULimitBase); exceeded {
			return errPolicyRejection("frame", fmt.Errorf("running pixel budget %d exceeds CPU limit %d", spent, sd.opts.CPULimitBase))
		}

		sd.frameStage = FrameStageFull
		if ferr = sections.ProcessSections(func() error {
			return imgFrame.DecodeFrame(comp.lfBuffer[header.LfLevel], lfGlobalReaderAdapter)
		}); ferr != nil {
			return ferr
		}
		sd.cpuBudgetSpent += uint64(header.Width) * uint64(header.Height)
		if header.LfLevel > 0 {
			comp.lfBuffer[header.LfLevel-1] = imgFrame.Buffer
		}
		save := (header.SaveAsReference != 0 || header.Duration == 0) && !header.IsLast && header.FrameType != frame.LF_FRAME
		if imgFrame.IsVisible() {
			sd.visibleFrames++
			sd.invisibleFrames = 0
		} else {
			sd.invisibleFrames++
		}
		if ferr = imgFrame.InitializeNoise(int64(sd.visibleFrames)<<32 | sd.invisibleFrames); ferr != nil {
			return ferr
		}
		if ferr = imgFrame.Upsample(); ferr != nil {
			return ferr
		}
		if save && header.SaveBeforeCT {
			comp.reference[header.SaveAsReference] = imgFrame.Buffer
		}
		if ferr = comp.computePatches(imgFrame); ferr != nil {
			return ferr
		}
		if ferr = imgFrame.RenderSplines(); ferr != nil {
			return ferr
		}
		if ferr = imgFrame.SynthesizeNoise(); ferr != nil {
			return ferr
		}
		if ferr = comp.performColourTransforms(sd.matrix, imgFrame); ferr != nil {
			return ferr
		}
		if header.FrameType == frame.REGULAR_FRAME || header.FrameType == frame.SKIP_PROGRESSIVE {
			if ferr = comp.blendFrame(sd.canvas, imgFrame); ferr != nil {
				return ferr
			}
		}
		if save && !header.SaveBeforeCT {
			comp.reference[header.SaveAsReference] = sd.canvas
		}
		return nil
	})
	if err != nil {
		sd.reader = nil
		return EventNone, err
	}

	sd.curFrame = imgFrame
	sd.curHeader = header
	save := (header.SaveAsReference != 0 || header.Duration == 0) && !header.IsLast && header.FrameType != frame.LF_FRAME
	var savedAs uint8
	if save {
		savedAs = 1 << uint(header.SaveAsReference&0x7)
	}
	var references uint8
	if imgFrame.LfGlobal != nil {
		for _, p := range imgFrame.LfGlobal.Patches {
			if p.Ref >= 0 && p.Ref < 8 {
				references |= 1 << uint(p.Ref)
			}
		}
	}
	sd.slots.RecordFrame(savedAs, references)
	if sd.frameRequired == nil && sd.skipFrames > 0 {
		sd.frameRequired = sd.slots.RequiredFrames(thisIndex)
	}
	sd.finalizedFrames++
	sd.internalFrames++

	if !skipThis && sd.eventsWanted&MaskFrame != 0 && imgFrame.IsVisible() {
		sd.queue(EventFrame)
	}

	// is_last_of_still = is_last_total || duration > 0: a mid-animation
	// frame with a nonzero duration ends its still even though the
	// codestream continues, while is_last_total only ever holds on the
	// true last internal frame.
	isLastOfStill := header.IsLast || header.Duration > 0
	if isLastOfStill {
		sd.isLastOfStill = true
		sd.isLastTotal = header.IsLast
		sd.externalFrames++
		sd.stillStart = true
		sd.frameStage = FrameStageFullOutput
		sd.awaitingImageOutBuffer = true
		if !sd.imageOutSet {
			if len(sd.pending) > 0 {
				e := sd.pending[0]
				sd.pending = sd.pending[1:]
				return e, nil
			}
			return EventNeedImageOutBuffer, nil
		}
		if err := sd.finalizeStill(); err != nil {
			return sd.fail(err)
		}
		return sd.drainAfterFullImage()
	}

	if len(sd.pending) > 0 {
		e := sd.pending[0]
		sd.pending = sd.pending[1:]
		return e, nil
	}
	return EventNone, nil
}

// drainAfterFullImage queues FullImage/Success once finalizeStill has run
// and returns whichever of the pending/just-queued events sorts first.
func (sd *StreamDecoder) drainAfterFullImage() (Event, error) {
	sd.awaitingImageOutBuffer = false
	sd.eventsWanted |= sd.origEventsWanted & perFrameMask
	if sd.origEventsWanted&MaskFullImage != 0 {
		sd.queue(EventFullImage)
	}
	// Success only follows the truly last FullImage; an animation's
	// intermediate stills (duration > 0, IsLast still false) loop back
	// into stepFrame for the next still instead.
	if sd.isLastTotal {
		sd.queue(EventSuccess)
	}
	if len(sd.pending) == 0 {
		// This still's events weren't subscribed to and it wasn't the
		// last one; fall through so the caller's next ProcessInput call
		// resumes at the following still's first internal frame.
		return EventNone, nil
	}
	e := sd.pending[0]
	sd.pending = sd.pending[1:]
	return e, nil
}

// finalizeStill zero-pads the reader to a byte boundary, applies the
// EXIF-orientation transpose, records the result as LastImage and hands
// it to the first output path the caller set (raw buffer, scanline
// writer, or image-output callback), exactly like the teacher's one-shot
// decode() did at the end of its per-still loop - just invoked once per
// still instead of once per file.
func (sd *StreamDecoder) finalizeStill() error {
	if err := sd.reader.ZeroPadToByte(); err != nil {
		return errFormatViolation("finalize", err)
	}

	orientation := sd.imageHeader.Orientation
	if sd.opts.KeepOrientation {
		orientation = 1
	}
	oriented := make([]image2.ImageBuffer, len(sd.canvas))
	for i := range oriented {
		var err error
		oriented[i], err = sd.comp.transposeBuffer(sd.canvas[i], orientation)
		if err != nil {
			return errFormatViolation("finalize", err)
		}
	}

	img, err := NewJXLImageWithBuffer(oriented, *sd.imageHeader)
	if err != nil {
		return errFormatViolation("finalize", err)
	}
	sd.lastImage = img

	adapter := NewOutputAdapter(sd.imageHeader)
	switch {
	case sd.rawImageOut != nil:
		if err := adapter.WriteRaw8(sd.rawImageOut, oriented, sd.rawImageWantAlpha); err != nil {
			return errFormatViolation("finalize", err)
		}
	case sd.scanlineWriter != nil:
		if err := adapter.WriteScanlines(sd.scanlineWriter, oriented, sd.scanlineWantAlpha, sd.scanlineCallerData); err != nil {
			return errFormatViolation("finalize", err)
		}
	case sd.imageOutCallback != nil:
		if err := sd.imageOutCallback(img); err != nil {
			return errFormatViolation("finalize", err)
		}
	}
	return nil
}

// FlushImage writes the most recently finalized still (LastImage) into the
// raw 8-bit output buffer. It requires a buffer set via SetRawImageOutput,
// an image with no extra channels, a VarDCT current frame header and a
// finalized still; anything else is a usage violation. It does not render
// pixels of a frame that is still partway through decoding, and it does
// not check whether that frame's DC has been decoded.
func (sd *StreamDecoder) FlushImage() error {
	if sd.rawImageOut == nil {
		return errUsageViolation("FlushImage", errors.New("no raster image output buffer has been supplied"))
	}
	if sd.imageHeader == nil || len(sd.imageHeader.ExtraChannelInfo) > 0 {
		return errUsageViolation("FlushImage", errors.New("flush is only supported for frames without extra channels"))
	}
	if sd.curHeader.Encoding != frame.VARDCT {
		return errUsageViolation("FlushImage", errors.New("flush is only supported mid-VarDCT-frame"))
	}
	if sd.lastImage == nil {
		return errUsageViolation("FlushImage", errors.New("no decoded frame available to flush"))
	}
	adapter := NewOutputAdapter(sd.imageHeader)
	return adapter.WriteRaw8(sd.rawImageOut, sd.lastImage.Buffer, sd.rawImageWantAlpha)
}

// consumeBoxPayload appends as much of a codestream-bearing box's payload
// as is currently available into sd.codestream, and leaves the remainder
// to be picked up across future ProcessInput calls via skippingBox-style
// bookkeeping reused as a generic "bytes still owed" counter.
func (sd *StreamDecoder) consumeBoxPayload(payloadLen int64) error {
	if payloadLen < 0 {
		// unbounded: box runs to EOF; everything further supplied is codestream.
		sd.codestream = append(sd.codestream, sd.input...)
		sd.advanceAbs(len(sd.input))
		return nil
	}
	take := int64(len(sd.input))
	if take > payloadLen {
		take = payloadLen
	}
	sd.codestream = append(sd.codestream, sd.input[:take]...)
	remaining := payloadLen - take
	sd.advanceAbs(int(take))
	if remaining > 0 {
		// The rest of this box's payload will arrive in a later
		// ProcessInput call; stepBoxWalk drains pendingCodestreamPayload
		// before it ever looks for the next box header.
		sd.pendingCodestreamPayload = remaining
	}
	return nil
}
