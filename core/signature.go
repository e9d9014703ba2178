package core

// SignatureResult is the outcome of inspecting the first bytes of a
// candidate JPEG XL stream.
type SignatureResult int

const (
	SignatureNotEnoughBytes SignatureResult = iota
	SignatureInvalid
	SignatureCodestream
	SignatureContainer
)

// containerMagic is the 12-byte ISO-BMFF-style JPEG XL container
// signature: size(12) + "JXL " + CRLF + 0x87 + LF.
var containerMagic = []byte{0x00, 0x00, 0x00, 0x0C, 0x4A, 0x58, 0x4C, 0x20, 0x0D, 0x0A, 0x87, 0x0A}

// codestreamMarker is the second byte of the 2-byte raw-codestream
// signature (0xFF 0x0A).
const codestreamMarker = 0x0A

// ClassifySignature inspects up to 12 bytes at the current read
// position and reports whether they form a raw codestream signature, a
// container signature, or neither. It never blocks: if the window is
// too short to decide, it reports SignatureNotEnoughBytes along with 0
// consumed bytes so the caller can ask again once more input arrives.
//
// On a successful match, the second return value is the number of
// bytes the caller should advance its read cursor past.
func ClassifySignature(window []byte) (SignatureResult, int) {
	if len(window) == 0 {
		return SignatureNotEnoughBytes, 0
	}

	switch window[0] {
	case 0xFF:
		if len(window) < 2 {
			return SignatureNotEnoughBytes, 0
		}
		if window[1] == codestreamMarker {
			return SignatureCodestream, 2
		}
		return SignatureInvalid, 0
	case 0x00:
		if len(window) < len(containerMagic) {
			// Only declare NotEnoughBytes while the prefix we do have
			// still matches; otherwise this can never become valid.
			for i := 0; i < len(window); i++ {
				if window[i] != containerMagic[i] {
					return SignatureInvalid, 0
				}
			}
			return SignatureNotEnoughBytes, 0
		}
		for i := 0; i < len(containerMagic); i++ {
			if window[i] != containerMagic[i] {
				return SignatureInvalid, 0
			}
		}
		return SignatureContainer, len(containerMagic)
	default:
		return SignatureInvalid, 0
	}
}
