package options

import "go.opentelemetry.io/otel/trace"

// ThreadPool is a caller-supplied collaborator for parallel section
// decoding. The decoder never constructs one itself; thread-pool
// implementation is out of scope for this module.
type ThreadPool interface {
	Submit(task func())
	Wait()
}

type JXLOptions struct {
	debug           bool
	ParseOnly       bool
	RenderVarblocks bool

	// EventsWanted is the subscribed-events bitmask (core.Event bits).
	EventsWanted uint32

	// MemoryLimitBase and CPULimitBase are the two process-scope caps
	// from the resource model: MemoryLimitBase bounds xsize*ysize at
	// basic-info and frame-header time, CPULimitBase bounds the running
	// sum of per-frame pixel counts to 5x the memory budget.
	MemoryLimitBase uint64
	CPULimitBase    uint64

	// KeepOrientation disables the EXIF-orientation transpose in the
	// output buffer adapter.
	KeepOrientation bool

	ThreadPool ThreadPool

	// Tracer, when set, wraps each ProcessInput stage transition in an
	// OpenTelemetry span. Nil (the default) disables tracing entirely so
	// it never competes with the logrus-based default logging path.
	Tracer trace.Tracer
}

func NewJXLOptions(options *JXLOptions) *JXLOptions {

	opt := &JXLOptions{
		MemoryLimitBase: 1 << 28,
	}
	if options != nil {
		opt.debug = options.debug
		opt.ParseOnly = options.ParseOnly
		opt.RenderVarblocks = options.RenderVarblocks
		opt.EventsWanted = options.EventsWanted
		opt.KeepOrientation = options.KeepOrientation
		opt.ThreadPool = options.ThreadPool
		opt.Tracer = options.Tracer
		if options.MemoryLimitBase != 0 {
			opt.MemoryLimitBase = options.MemoryLimitBase
		}
		if options.CPULimitBase != 0 {
			opt.CPULimitBase = options.CPULimitBase
		} else {
			opt.CPULimitBase = 5 * opt.MemoryLimitBase
		}
	} else {
		opt.CPULimitBase = 5 * opt.MemoryLimitBase
	}
	return opt
}
