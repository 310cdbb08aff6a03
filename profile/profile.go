package profile

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

// Profiler describes one profiling session.
type Profiler struct {
	// Mode is one of [Modes]. An empty or unknown mode disables profiling.
	Mode string
	// Path is the output directory. Empty selects the working directory.
	Path string
	// Quiet suppresses the start and stop messages of the profiler.
	Quiet bool
}

// Start begins profiling and returns the handle that ends it. Start and Stop
// are always safe to call; without the pprof build tag both do nothing.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

// Enabled reports whether Start would profile.
func (p Profiler) Enabled() bool {
	for _, m := range Modes() {
		if m == p.Mode {
			return true
		}
	}

	return false
}

type ignore struct{}

func (ignore) Stop() {}
