package profile

// Tag is the build tag that enables profiling.
const Tag = "pprof"

// Stopper stops a running profile and flushes its output.
type Stopper interface{ Stop() }

// Profiler configures a single profiling session.
type Profiler struct {
	Mode  string // one of [Modes]; empty disables profiling
	Path  string // output directory
	Quiet bool
}

// Start begins profiling and returns a handle to stop it. Unknown or empty
// modes, and builds without the pprof tag, return a no-op. Both Start and
// Stop are always safe to call.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
