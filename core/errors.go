package core

import "fmt"

// ErrorKind classifies why ProcessInput (or another public entry point)
// failed, per the error-handling design: transient shortages and missing
// output buffers are recoverable by the caller; format violations, policy
// rejections and usage violations leave the decoder in an absorbing error
// state (except usage violations, which leave the stage unchanged).
type ErrorKind int

const (
	KindTransientInputShortage ErrorKind = iota
	KindMissingOutputBuffer
	KindFormatViolation
	KindPolicyRejection
	KindUsageViolation
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransientInputShortage:
		return "TransientInputShortage"
	case KindMissingOutputBuffer:
		return "MissingOutputBuffer"
	case KindFormatViolation:
		return "FormatViolation"
	case KindPolicyRejection:
		return "PolicyRejection"
	case KindUsageViolation:
		return "UsageViolation"
	default:
		return "Unknown"
	}
}

// DecodeError wraps an underlying error with the kind and stage it was
// raised in, so callers (and internal dispatch) can use errors.As to
// recover the classification without string matching.
type DecodeError struct {
	Kind  ErrorKind
	Stage string
	Err   error
}

func NewDecodeError(kind ErrorKind, stage string, err error) *DecodeError {
	return &DecodeError{Kind: kind, Stage: stage, Err: err}
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s at %s: %v", e.Kind, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s at %s", e.Kind, e.Stage)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// errNeedMoreInput is returned internally by the speculative parse
// attempts in the header/frame/box readers when the currently held
// window runs out before a value can be fully decoded. ProcessInput
// catches it via errors.As and converts it to EventNeedMoreInput.
func errNeedMoreInput(stage string, err error) *DecodeError {
	return NewDecodeError(KindTransientInputShortage, stage, err)
}

func errFormatViolation(stage string, err error) *DecodeError {
	return NewDecodeError(KindFormatViolation, stage, err)
}

func errPolicyRejection(stage string, err error) *DecodeError {
	return NewDecodeError(KindPolicyRejection, stage, err)
}

func errUsageViolation(stage string, err error) *DecodeError {
	return NewDecodeError(KindUsageViolation, stage, err)
}
