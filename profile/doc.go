// Package profile provides optional runtime profiling for tuxedo.
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof .
//
// Without the tag every [Profiler] is a no-op and [Modes] is empty.
//
// # Modes
//
// With the tag the following modes of [github.com/pkg/profile] are available:
//
//   - allocs:    memory allocations, including freed objects
//   - block:     blocking on synchronization primitives
//   - clock:     wall-clock time (fgprof)
//   - cpu:       CPU time
//   - goroutine: goroutine stacks
//   - heap:      live heap objects
//   - mem:       memory allocations, sampled
//   - mutex:     mutex contention
//   - thread:    thread creation
//   - trace:     execution trace
//
// # Usage
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/tuxedo"}
//	defer p.Start().Stop()
//
// Profiles are written to Path with the mode as file name (cpu.pprof,
// mem.pprof, ...). The command line exposes the same settings as
// --pprof-mode and --pprof-dir:
//
//	tuxedo --pprof-mode cpu generate ./site
//	go tool pprof -http=: ~/.cache/tuxedo/pprof/cpu.pprof
//
// Rendering a large tree under the cpu mode shows where the pattern matcher
// spends its time; the allocs mode shows the cost of scope snapshots.
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
